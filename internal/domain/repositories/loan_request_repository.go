package repositories

import (
	"context"

	"github.com/google/uuid"
	"lendhub.backend/internal/domain/entities"
)

// LoanRequestRepository defines loan ledger operations
type LoanRequestRepository interface {
	Create(ctx context.Context, loan *entities.LoanRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanRequest, error)
	FindByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*entities.LoanRequest, error)
	// FindByLender returns loans matched with the lender, excluding the
	// given status when set (the lender dashboard hides loans that were
	// reset back to open).
	FindByLender(ctx context.Context, lenderID uuid.UUID, excludeStatus entities.LoanRequestStatus) ([]*entities.LoanRequest, error)
	FindOpen(ctx context.Context) ([]*entities.LoanRequest, error)
	List(ctx context.Context) ([]*entities.LoanRequest, error)
	// Update persists the full mutable state of the loan guarded by its
	// version; it returns ErrConflict when a concurrent mutation won.
	Update(ctx context.Context, loan *entities.LoanRequest) error
}
