package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
)

func TestLoanRequestRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createLoanRequestTable(t, db)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	loan := &entities.LoanRequest{
		ID:           uuid.New(),
		BorrowerID:   uuid.New(),
		Amount:       5000,
		InterestRate: 10,
		PeriodMonths: 12,
		Status:       entities.LoanStatusOpen,
	}
	require.NoError(t, repo.Create(ctx, loan))

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, loan.BorrowerID, got.BorrowerID)
	require.Equal(t, entities.LoanStatusOpen, got.Status)
	require.Equal(t, 0, got.Version)
	require.False(t, got.MatchedWith.Valid)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLoanRequestRepository_UpdateBumpsVersion(t *testing.T) {
	db := newTestDB(t)
	createLoanRequestTable(t, db)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	loan := &entities.LoanRequest{
		ID:           uuid.New(),
		BorrowerID:   uuid.New(),
		Amount:       5000,
		InterestRate: 10,
		PeriodMonths: 12,
		Status:       entities.LoanStatusOpen,
	}
	require.NoError(t, repo.Create(ctx, loan))

	lenderID := uuid.New()
	loan.SetMatch(lenderID)
	require.NoError(t, repo.Update(ctx, loan))
	require.Equal(t, 1, loan.Version)

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, entities.LoanStatusMatched, got.Status)
	matched, ok := got.MatchedLenderID()
	require.True(t, ok)
	require.Equal(t, lenderID, matched)
	require.Equal(t, 1, got.Version)
}

func TestLoanRequestRepository_UpdateStaleVersionConflicts(t *testing.T) {
	db := newTestDB(t)
	createLoanRequestTable(t, db)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	loan := &entities.LoanRequest{
		ID:           uuid.New(),
		BorrowerID:   uuid.New(),
		Amount:       5000,
		InterestRate: 10,
		PeriodMonths: 12,
		Status:       entities.LoanStatusOpen,
	}
	require.NoError(t, repo.Create(ctx, loan))

	// Two readers load version 0; the slower writer must lose.
	stale, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)

	loan.SetMatch(uuid.New())
	require.NoError(t, repo.Update(ctx, loan))

	stale.SetMatch(uuid.New())
	err = repo.Update(ctx, stale)
	require.ErrorIs(t, err, domainerrors.ErrConflict)

	// The winning match must be untouched.
	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	winner, _ := loan.MatchedLenderID()
	current, _ := got.MatchedLenderID()
	require.Equal(t, winner, current)
}

func TestLoanRequestRepository_UpdateMissingLoan(t *testing.T) {
	db := newTestDB(t)
	createLoanRequestTable(t, db)
	repo := NewLoanRequestRepository(db)

	ghost := &entities.LoanRequest{ID: uuid.New(), Status: entities.LoanStatusOpen}
	err := repo.Update(context.Background(), ghost)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLoanRequestRepository_UpdateClearsMatchOnReset(t *testing.T) {
	db := newTestDB(t)
	createLoanRequestTable(t, db)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	loan := &entities.LoanRequest{
		ID:           uuid.New(),
		BorrowerID:   uuid.New(),
		Amount:       5000,
		InterestRate: 10,
		PeriodMonths: 12,
		Status:       entities.LoanStatusOpen,
	}
	require.NoError(t, repo.Create(ctx, loan))
	loan.SetMatch(uuid.New())
	require.NoError(t, repo.Update(ctx, loan))

	loan.ResetToOpen()
	require.NoError(t, repo.Update(ctx, loan))

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, entities.LoanStatusOpen, got.Status)
	require.False(t, got.MatchedWith.Valid)
	require.False(t, got.BorrowerAccepted)
	require.False(t, got.LenderAccepted)
}

func TestLoanRequestRepository_FindOpenOldestFirst(t *testing.T) {
	db := newTestDB(t)
	createLoanRequestTable(t, db)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	older := uuid.New()
	newer := uuid.New()
	base := time.Now().Add(-time.Hour)
	mustExec(t, db, `INSERT INTO loan_requests (id, borrower_id, amount, interest_rate, period_months, status, version, created_at, updated_at) VALUES (?, ?, 1000, 10, 6, 'open', 0, ?, ?)`,
		newer.String(), uuid.New().String(), base.Add(time.Minute), base.Add(time.Minute))
	mustExec(t, db, `INSERT INTO loan_requests (id, borrower_id, amount, interest_rate, period_months, status, version, created_at, updated_at) VALUES (?, ?, 2000, 10, 6, 'open', 0, ?, ?)`,
		older.String(), uuid.New().String(), base, base)
	mustExec(t, db, `INSERT INTO loan_requests (id, borrower_id, amount, interest_rate, period_months, status, version, created_at, updated_at) VALUES (?, ?, 3000, 10, 6, 'matched', 0, ?, ?)`,
		uuid.New().String(), uuid.New().String(), base, base)

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	require.Equal(t, older, open[0].ID)
	require.Equal(t, newer, open[1].ID)
}

func TestLoanRequestRepository_FindByLenderExcludesStatus(t *testing.T) {
	db := newTestDB(t)
	createLoanRequestTable(t, db)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	lenderID := uuid.New()
	now := time.Now()
	mustExec(t, db, `INSERT INTO loan_requests (id, borrower_id, amount, interest_rate, period_months, status, matched_with, version, created_at, updated_at) VALUES (?, ?, 1000, 10, 6, 'matched', ?, 0, ?, ?)`,
		uuid.New().String(), uuid.New().String(), lenderID.String(), now, now)
	mustExec(t, db, `INSERT INTO loan_requests (id, borrower_id, amount, interest_rate, period_months, status, matched_with, version, created_at, updated_at) VALUES (?, ?, 2000, 10, 6, 'accepted', ?, 0, ?, ?)`,
		uuid.New().String(), uuid.New().String(), lenderID.String(), now, now)
	// A reset loan retains no lender reference, but guard the exclusion anyway.
	mustExec(t, db, `INSERT INTO loan_requests (id, borrower_id, amount, interest_rate, period_months, status, matched_with, version, created_at, updated_at) VALUES (?, ?, 3000, 10, 6, 'open', ?, 0, ?, ?)`,
		uuid.New().String(), uuid.New().String(), lenderID.String(), now, now)

	loans, err := repo.FindByLender(ctx, lenderID, entities.LoanStatusOpen)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	for _, loan := range loans {
		require.NotEqual(t, entities.LoanStatusOpen, loan.Status)
	}
}

func TestLoanRequestRepository_FindByBorrower(t *testing.T) {
	db := newTestDB(t)
	createLoanRequestTable(t, db)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	borrowerID := uuid.New()
	now := time.Now()
	mustExec(t, db, `INSERT INTO loan_requests (id, borrower_id, amount, interest_rate, period_months, status, version, created_at, updated_at) VALUES (?, ?, 1000, 10, 6, 'open', 0, ?, ?)`,
		uuid.New().String(), borrowerID.String(), now, now)
	mustExec(t, db, `INSERT INTO loan_requests (id, borrower_id, amount, interest_rate, period_months, status, version, created_at, updated_at) VALUES (?, ?, 2000, 10, 6, 'open', 0, ?, ?)`,
		uuid.New().String(), uuid.New().String(), now, now)

	loans, err := repo.FindByBorrower(ctx, borrowerID)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.Equal(t, borrowerID, loans[0].BorrowerID)
}
