package usecases

import (
	"context"

	"github.com/google/uuid"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
)

// UserUsecase handles profile reads and updates
type UserUsecase struct {
	userRepo domainRepos.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo domainRepos.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// GetProfile returns the actor's own profile
func (u *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return user, nil
}

// UpdateProfile updates the actor's name and, for lenders, the funding
// policy. Non-lenders cannot grow a lender profile through this path;
// the role stays whatever registration fixed it to.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}

	if input.Name != "" {
		user.Name = input.Name
	}

	if user.Role == entities.UserRoleLender && user.LenderProfile != nil {
		if input.MaxAmount != nil {
			if *input.MaxAmount < 0 {
				return nil, domainerrors.BadRequest("maxAmount must not be negative")
			}
			user.LenderProfile.MaxAmount = *input.MaxAmount
		}
		if input.InterestRate != nil {
			if *input.InterestRate < 0 {
				return nil, domainerrors.BadRequest("interestRate must not be negative")
			}
			user.LenderProfile.InterestRate = *input.InterestRate
		}
	}

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}
