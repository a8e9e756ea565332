package usecases

import (
	"context"

	"github.com/google/uuid"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
)

// AdminUsecase handles administrative operations: the KYC verification
// pass-through, platform-wide listings, and the review flag.
type AdminUsecase struct {
	userRepo domainRepos.UserRepository
	loanRepo domainRepos.LoanRequestRepository
	policy   *AccessPolicy
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo domainRepos.UserRepository,
	loanRepo domainRepos.LoanRequestRepository,
	policy *AccessPolicy,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo: userRepo,
		loanRepo: loanRepo,
		policy:   policy,
	}
}

// VerifyKYC marks a user's KYC as verified. The flag only moves one
// way; verifying an already verified user is a no-op success.
func (u *AdminUsecase) VerifyKYC(ctx context.Context, actor *entities.User, userID uuid.UUID) error {
	if !u.policy.CanAdminister(actor) {
		return domainerrors.Forbidden("admin only")
	}
	if err := u.userRepo.SetKYCVerified(ctx, userID); err != nil {
		return notFoundOr(err, "user not found")
	}
	return nil
}

// ListLoanRequests returns every loan request with resolved parties
func (u *AdminUsecase) ListLoanRequests(ctx context.Context, actor *entities.User) ([]*entities.LoanRequest, error) {
	if !u.policy.CanAdminister(actor) {
		return nil, domainerrors.Forbidden("admin only")
	}
	loans, err := u.loanRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		if borrower, err := u.userRepo.GetByID(ctx, loan.BorrowerID); err == nil {
			loan.Borrower = borrower.Summary()
		}
		if lenderID, ok := loan.MatchedLenderID(); ok {
			if lender, err := u.userRepo.GetByID(ctx, lenderID); err == nil {
				loan.Lender = lender.Summary()
			}
		}
	}
	return loans, nil
}

// ListUsers lists all users with an optional search filter
func (u *AdminUsecase) ListUsers(ctx context.Context, actor *entities.User, search string) ([]*entities.User, error) {
	if !u.policy.CanAdminister(actor) {
		return nil, domainerrors.Forbidden("admin only")
	}
	return u.userRepo.List(ctx, search)
}

// FlagForReview pulls a loan out of the matching pool for manual
// inspection. This is the only producer of the admin_review status.
func (u *AdminUsecase) FlagForReview(ctx context.Context, actor *entities.User, loanID uuid.UUID) (*entities.LoanRequest, error) {
	if !u.policy.CanAdminister(actor) {
		return nil, domainerrors.Forbidden("admin only")
	}

	loan, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, notFoundOr(err, "loan request not found")
	}
	if loan.Status == entities.LoanStatusAccepted {
		return nil, domainerrors.Conflict("accepted loans cannot be sent to review")
	}

	// A flagged loan leaves the pool; any tentative match is dissolved
	// so matched_with never dangles outside matched/accepted.
	loan.ResetToOpen()
	loan.Status = entities.LoanStatusAdminReview
	if err := u.loanRepo.Update(ctx, loan); err != nil {
		return nil, conflictOr(err)
	}
	return loan, nil
}
