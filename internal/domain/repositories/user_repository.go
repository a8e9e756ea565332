package repositories

import (
	"context"

	"github.com/google/uuid"
	"lendhub.backend/internal/domain/entities"
)

// UserRepository defines identity directory operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// FindVerifiedLenders returns KYC-verified lenders in directory
	// iteration order (created_at ascending, id as tie-break). The
	// matching engine depends on this ordering being stable.
	FindVerifiedLenders(ctx context.Context) ([]*entities.User, error)
	// SetKYCVerified flips the KYC flag on. The flag never reverts.
	SetKYCVerified(ctx context.Context, id uuid.UUID) error
	UpdateProfile(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	List(ctx context.Context, search string) ([]*entities.User, error)
}
