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

// LoanRequestRepository implements loan ledger operations
type LoanRequestRepository struct {
	db *gorm.DB
}

// NewLoanRequestRepository creates a new loan request repository
func NewLoanRequestRepository(db *gorm.DB) *LoanRequestRepository {
	return &LoanRequestRepository{db: db}
}

// Create persists a new loan request
func (r *LoanRequestRepository) Create(ctx context.Context, loan *entities.LoanRequest) error {
	m := toLoanModel(loan)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	loan.CreatedAt = m.CreatedAt
	loan.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a loan request by ID
func (r *LoanRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanRequest, error) {
	var m models.LoanRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toLoanEntity(&m), nil
}

// FindByBorrower returns all loans owned by the borrower
func (r *LoanRequestRepository) FindByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*entities.LoanRequest, error) {
	var ms []models.LoanRequest
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toLoanEntities(ms), nil
}

// FindByLender returns loans matched with the lender, excluding the
// given status when set.
func (r *LoanRequestRepository) FindByLender(ctx context.Context, lenderID uuid.UUID, excludeStatus entities.LoanRequestStatus) ([]*entities.LoanRequest, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("matched_with = ?", lenderID).
		Order("created_at DESC")
	if excludeStatus != "" {
		query = query.Where("status <> ?", string(excludeStatus))
	}

	var ms []models.LoanRequest
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toLoanEntities(ms), nil
}

// FindOpen returns loans awaiting a match, oldest first
func (r *LoanRequestRepository) FindOpen(ctx context.Context) ([]*entities.LoanRequest, error) {
	var ms []models.LoanRequest
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ?", string(entities.LoanStatusOpen)).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toLoanEntities(ms), nil
}

// List returns every loan request, newest first
func (r *LoanRequestRepository) List(ctx context.Context) ([]*entities.LoanRequest, error) {
	var ms []models.LoanRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toLoanEntities(ms), nil
}

// Update persists the mutable state of the loan guarded by its version.
// A concurrent writer bumps the version first, making this a no-op that
// surfaces as ErrConflict.
func (r *LoanRequestRepository) Update(ctx context.Context, loan *entities.LoanRequest) error {
	var matchedWith *uuid.UUID
	if id, ok := loan.MatchedLenderID(); ok {
		matchedWith = &id
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.LoanRequest{}).
		Where("id = ? AND version = ?", loan.ID, loan.Version).
		Updates(map[string]interface{}{
			"status":            string(loan.Status),
			"matched_with":      matchedWith,
			"borrower_accepted": loan.BorrowerAccepted,
			"lender_accepted":   loan.LenderAccepted,
			"version":           loan.Version + 1,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the record vanished or a concurrent mutation won.
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.LoanRequest{}).
			Where("id = ?", loan.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConflict
	}
	loan.Version++
	return nil
}

func toLoanModel(loan *entities.LoanRequest) *models.LoanRequest {
	m := &models.LoanRequest{
		ID:               loan.ID,
		BorrowerID:       loan.BorrowerID,
		Amount:           loan.Amount,
		InterestRate:     loan.InterestRate,
		PeriodMonths:     loan.PeriodMonths,
		Status:           string(loan.Status),
		BorrowerAccepted: loan.BorrowerAccepted,
		LenderAccepted:   loan.LenderAccepted,
		Version:          loan.Version,
	}
	if id, ok := loan.MatchedLenderID(); ok {
		m.MatchedWith = &id
	}
	return m
}

func toLoanEntity(m *models.LoanRequest) *entities.LoanRequest {
	loan := &entities.LoanRequest{
		ID:               m.ID,
		BorrowerID:       m.BorrowerID,
		Amount:           m.Amount,
		InterestRate:     m.InterestRate,
		PeriodMonths:     m.PeriodMonths,
		Status:           entities.LoanRequestStatus(m.Status),
		BorrowerAccepted: m.BorrowerAccepted,
		LenderAccepted:   m.LenderAccepted,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.MatchedWith != nil {
		loan.MatchedWith = null.StringFrom(m.MatchedWith.String())
	}
	return loan
}

func toLoanEntities(ms []models.LoanRequest) []*entities.LoanRequest {
	var loans []*entities.LoanRequest
	for _, m := range ms {
		model := m
		loans = append(loans, toLoanEntity(&model))
	}
	return loans
}
