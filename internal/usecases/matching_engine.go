package usecases

import (
	"context"
	"errors"

	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
)

// MatchingEngine pairs open loan requests with verified lenders using a
// first-fit policy: the scan walks the lender directory in iteration
// order and takes the first candidate whose funding policy covers the
// request. No ranking by rate or capacity takes place; determinism is
// the point.
type MatchingEngine struct {
	userRepo domainRepos.UserRepository
	loanRepo domainRepos.LoanRequestRepository
}

// NewMatchingEngine creates a new matching engine
func NewMatchingEngine(
	userRepo domainRepos.UserRepository,
	loanRepo domainRepos.LoanRequestRepository,
) *MatchingEngine {
	return &MatchingEngine{
		userRepo: userRepo,
		loanRepo: loanRepo,
	}
}

// AttemptMatch scans verified lenders and claims the first eligible one
// for the loan. The caller must hand in a loan in open status; the
// engine does not re-check it. On success the loan is persisted as
// matched and the selected lender is returned. When no lender
// qualifies the loan is left untouched and (nil, nil) is returned; no
// candidate is a valid outcome, not a failure. A lost write race
// surfaces as ErrConflict.
func (e *MatchingEngine) AttemptMatch(ctx context.Context, loan *entities.LoanRequest) (*entities.User, error) {
	lenders, err := e.userRepo.FindVerifiedLenders(ctx)
	if err != nil {
		return nil, err
	}

	candidate := firstFit(lenders, loan)
	if candidate == nil {
		return nil, nil
	}

	loan.SetMatch(candidate.ID)
	if err := e.loanRepo.Update(ctx, loan); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("loan was modified concurrently")
		}
		return nil, err
	}
	return candidate, nil
}

// firstFit returns the first lender whose policy covers the request:
// enough capacity for the principal and a required rate at or below the
// borrower's offer. A lender with zero capacity never qualifies for a
// positive amount.
func firstFit(lenders []*entities.User, loan *entities.LoanRequest) *entities.User {
	for _, l := range lenders {
		if l.LenderProfile == nil {
			continue
		}
		if l.LenderProfile.MaxAmount >= loan.Amount && l.LenderProfile.InterestRate <= loan.InterestRate {
			return l
		}
	}
	return nil
}
