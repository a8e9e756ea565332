package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
	"lendhub.backend/pkg/crypto"
	"lendhub.backend/pkg/jwt"
	"lendhub.backend/pkg/utils"
)

// AuthUsecase handles registration and authentication
type AuthUsecase struct {
	userRepo   domainRepos.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo domainRepos.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user. The role is fixed here and never changes
// afterwards; lenders must supply a funding policy. KYC starts
// unverified regardless of role.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	if !input.Role.Valid() {
		return nil, domainerrors.BadRequest("role must be admin, lender or borrower")
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.NewAppError(409, "ERR_ALREADY_EXISTS", "email already registered", domainerrors.ErrAlreadyExists)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	var profile *entities.LenderProfile
	if input.Role == entities.UserRoleLender {
		if input.MaxAmount == nil || input.InterestRate == nil {
			return nil, domainerrors.BadRequest("lenders must provide maxAmount and interestRate")
		}
		if *input.MaxAmount < 0 || *input.InterestRate < 0 {
			return nil, domainerrors.BadRequest("maxAmount and interestRate must not be negative")
		}
		profile = &entities.LenderProfile{
			MaxAmount:    *input.MaxAmount,
			InterestRate: *input.InterestRate,
		}
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Role:         input.Role,
		KYCVerified:  false,
		KYCDocuments: entities.KYCDocuments{
			PAN:     input.PAN,
			Aadhaar: input.Aadhaar,
			IDProof: input.IDProof,
		},
		LenderProfile: profile,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid credentials")
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// GetUserByID resolves the authenticated actor
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// ChangePassword verifies the current password and stores a new hash
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "user not found")
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.Unauthorized("current password is incorrect")
	}

	newHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, userID, newHash)
}
