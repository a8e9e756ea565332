package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	"lendhub.backend/internal/infrastructure/models"
)

// UserRepository implements identity directory operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		KYCVerified:  user.KYCVerified,
		KYCPan:       user.KYCDocuments.PAN,
		KYCAadhaar:   user.KYCDocuments.Aadhaar,
		KYCIDProof:   user.KYCDocuments.IDProof,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if user.LenderProfile != nil {
		m.MaxAmount = &user.LenderProfile.MaxAmount
		m.InterestRate = &user.LenderProfile.InterestRate
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// FindVerifiedLenders returns KYC-verified lenders in directory
// iteration order. Ordering by created_at with id as tie-break keeps
// first-fit matching deterministic.
func (r *UserRepository) FindVerifiedLenders(ctx context.Context) ([]*entities.User, error) {
	var ms []models.User
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("role = ? AND kyc_verified = ?", string(entities.UserRoleLender), true).
		Order("created_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	var lenders []*entities.User
	for _, m := range ms {
		model := m
		lenders = append(lenders, toUserEntity(&model))
	}
	return lenders, nil
}

// SetKYCVerified flips the KYC flag on. Already-verified users are left
// untouched so the flag never flaps.
func (r *UserRepository) SetKYCVerified(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"kyc_verified":    true,
			"kyc_verified_at": now,
			"updated_at":      now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateProfile updates the mutable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":       user.Name,
		"updated_at": time.Now(),
	}
	if user.LenderProfile != nil {
		updates["max_amount"] = user.LenderProfile.MaxAmount
		updates["interest_rate"] = user.LenderProfile.InterestRate
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with optional search filter
func (r *UserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	var ms []models.User
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var users []*entities.User
	for _, m := range ms {
		model := m
		users = append(users, toUserEntity(&model))
	}
	return users, nil
}

func toUserEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		PasswordHash:  m.PasswordHash,
		Role:          entities.UserRole(m.Role),
		KYCVerified:   m.KYCVerified,
		KYCVerifiedAt: null.TimeFromPtr(m.KYCVerifiedAt),
		KYCDocuments: entities.KYCDocuments{
			PAN:     m.KYCPan,
			Aadhaar: m.KYCAadhaar,
			IDProof: m.KYCIDProof,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.MaxAmount != nil && m.InterestRate != nil {
		u.LenderProfile = &entities.LenderProfile{
			MaxAmount:    *m.MaxAmount,
			InterestRate: *m.InterestRate,
		}
	}
	return u
}
