package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
	"lendhub.backend/pkg/utils"
)

// LoanUsecase governs the loan lifecycle state machine:
// open → matched → accepted, with matched → open as the reset path when
// either side rejects.
type LoanUsecase struct {
	loanRepo domainRepos.LoanRequestRepository
	userRepo domainRepos.UserRepository
	uow      domainRepos.UnitOfWork
	engine   *MatchingEngine
	policy   *AccessPolicy
}

// NewLoanUsecase creates a new loan usecase
func NewLoanUsecase(
	loanRepo domainRepos.LoanRequestRepository,
	userRepo domainRepos.UserRepository,
	uow domainRepos.UnitOfWork,
	engine *MatchingEngine,
	policy *AccessPolicy,
) *LoanUsecase {
	return &LoanUsecase{
		loanRepo: loanRepo,
		userRepo: userRepo,
		uow:      uow,
		engine:   engine,
		policy:   policy,
	}
}

// CreateLoanOutput reports the created loan and whether the matching
// engine paired it immediately.
type CreateLoanOutput struct {
	Loan    *entities.LoanRequest `json:"loan"`
	Matched bool                  `json:"matched"`
}

// Create validates and persists a new loan request for the acting
// borrower, then attempts an automatic match inside the same
// transaction so the record is never observable matched without its
// lender reference.
func (u *LoanUsecase) Create(ctx context.Context, actor *entities.User, input *entities.CreateLoanInput) (*CreateLoanOutput, error) {
	if !u.policy.CanCreateLoan(actor) {
		if actor.Role == entities.UserRoleBorrower {
			return nil, domainerrors.Forbidden("KYC not verified, cannot create loan request")
		}
		return nil, domainerrors.Forbidden("only borrowers can create loan requests")
	}
	if err := validateLoanInput(input); err != nil {
		return nil, err
	}

	loan := &entities.LoanRequest{
		ID:           utils.GenerateUUIDv7(),
		BorrowerID:   actor.ID,
		Amount:       input.Amount,
		InterestRate: input.InterestRate,
		PeriodMonths: input.PeriodMonths,
		Status:       entities.LoanStatusOpen,
	}

	var matched bool
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.loanRepo.Create(txCtx, loan); err != nil {
			return err
		}
		lender, err := u.engine.AttemptMatch(txCtx, loan)
		if err != nil {
			return err
		}
		matched = lender != nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.resolveParties(ctx, loan)
	return &CreateLoanOutput{Loan: loan, Matched: matched}, nil
}

// ListOpen returns the matching pool, visible to lenders only.
func (u *LoanUsecase) ListOpen(ctx context.Context, actor *entities.User) ([]*entities.LoanRequest, error) {
	if !u.policy.CanViewOpenLoans(actor) {
		return nil, domainerrors.Forbidden("only lenders can view open loan requests")
	}
	loans, err := u.loanRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		u.resolveParties(ctx, loan)
	}
	return loans, nil
}

// ExpressInterest lets a lender manually claim an open loan. Unlike the
// automatic path the lender does not need to satisfy the loan's rate
// and amount; both sides still have to consent afterwards.
func (u *LoanUsecase) ExpressInterest(ctx context.Context, actor *entities.User, loanID uuid.UUID) (*entities.LoanRequest, error) {
	if !u.policy.CanExpressInterest(actor) {
		return nil, domainerrors.Forbidden("only lenders can express interest")
	}

	loan, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, notFoundOr(err, "loan request not found")
	}
	if loan.Status != entities.LoanStatusOpen {
		return nil, domainerrors.Conflict("loan request is not open")
	}

	loan.SetMatch(actor.ID)
	if err := u.loanRepo.Update(ctx, loan); err != nil {
		return nil, conflictOr(err)
	}

	u.resolveParties(ctx, loan)
	return loan, nil
}

// Respond applies one side's answer to an active match. An accept sets
// that side's consent flag and finalizes to accepted once both flags
// hold. A reject always wins: it dissolves the match and returns the
// loan to the pool, regardless of any consent recorded earlier, even
// after the loan has finalized to accepted.
func (u *LoanUsecase) Respond(ctx context.Context, actor *entities.User, loanID uuid.UUID, action entities.RespondAction) (*entities.LoanRequest, error) {
	if action != entities.RespondAccept && action != entities.RespondReject {
		return nil, domainerrors.BadRequest("action must be accept or reject")
	}

	loan, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, notFoundOr(err, "loan request not found")
	}
	if !u.policy.CanRespond(actor, loan) {
		return nil, domainerrors.Forbidden("not a party to this loan request")
	}
	// Matched and accepted loans both carry a match the parties can
	// still answer; open and admin_review loans do not.
	if loan.Status != entities.LoanStatusMatched && loan.Status != entities.LoanStatusAccepted {
		return nil, domainerrors.Conflict("loan request has no active match")
	}

	accepted := action == entities.RespondAccept
	switch actor.Role {
	case entities.UserRoleBorrower:
		loan.BorrowerAccepted = accepted
	case entities.UserRoleLender:
		loan.LenderAccepted = accepted
	}

	// Finalize check runs after the acting side's flag update; a reject
	// overrides any previously recorded consent.
	if action == entities.RespondReject {
		loan.ResetToOpen()
	} else if loan.BorrowerAccepted && loan.LenderAccepted {
		loan.Status = entities.LoanStatusAccepted
	}

	if err := u.loanRepo.Update(ctx, loan); err != nil {
		return nil, conflictOr(err)
	}

	u.resolveParties(ctx, loan)
	return loan, nil
}

// Get returns a single loan request, visible to its borrower, its
// matched lender, and admins.
func (u *LoanUsecase) Get(ctx context.Context, actor *entities.User, loanID uuid.UUID) (*entities.LoanRequest, error) {
	loan, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, notFoundOr(err, "loan request not found")
	}
	if !u.policy.CanRespond(actor, loan) && !u.policy.CanAdminister(actor) {
		return nil, domainerrors.Forbidden("not a party to this loan request")
	}
	u.resolveParties(ctx, loan)
	return loan, nil
}

// ListByBorrower returns the loans a user owns as borrower. Visible to
// the user themselves and to admins.
func (u *LoanUsecase) ListByBorrower(ctx context.Context, actor *entities.User, userID uuid.UUID) ([]*entities.LoanRequest, error) {
	if !u.policy.CanViewOwnDashboard(actor, userID) {
		return nil, domainerrors.Forbidden("access denied to this user's borrowed loans")
	}
	loans, err := u.loanRepo.FindByBorrower(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		u.resolveParties(ctx, loan)
	}
	return loans, nil
}

// ListByLender returns the loans matched with a lender, excluding open
// ones: a loan reset back to the pool no longer belongs on the lender's
// dashboard.
func (u *LoanUsecase) ListByLender(ctx context.Context, actor *entities.User, userID uuid.UUID) ([]*entities.LoanRequest, error) {
	if !u.policy.CanViewOwnDashboard(actor, userID) {
		return nil, domainerrors.Forbidden("access denied to this user's lent loans")
	}
	loans, err := u.loanRepo.FindByLender(ctx, userID, entities.LoanStatusOpen)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		u.resolveParties(ctx, loan)
	}
	return loans, nil
}

// resolveParties fills in borrower/lender summaries. Lookups are best
// effort; a missing directory entry leaves the summary empty.
func (u *LoanUsecase) resolveParties(ctx context.Context, loan *entities.LoanRequest) {
	if borrower, err := u.userRepo.GetByID(ctx, loan.BorrowerID); err == nil {
		loan.Borrower = borrower.Summary()
	}
	if lenderID, ok := loan.MatchedLenderID(); ok {
		if lender, err := u.userRepo.GetByID(ctx, lenderID); err == nil {
			loan.Lender = lender.Summary()
		}
	}
}

func validateLoanInput(input *entities.CreateLoanInput) error {
	if input.Amount <= 0 {
		return domainerrors.BadRequest("amount must be positive")
	}
	if input.InterestRate < 0 {
		return domainerrors.BadRequest("interest rate must not be negative")
	}
	if input.PeriodMonths <= 0 {
		return domainerrors.BadRequest("period months must be positive")
	}
	return nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(message)
	}
	return err
}

func conflictOr(err error) error {
	if errors.Is(err, domainerrors.ErrConflict) {
		return domainerrors.Conflict("loan request was modified concurrently")
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("loan request not found")
	}
	return err
}
