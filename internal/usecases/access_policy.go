package usecases

import (
	"github.com/google/uuid"
	"lendhub.backend/internal/domain/entities"
)

// AccessPolicy holds the stateless role and ownership predicates gating
// loan lifecycle operations. Every mutating usecase evaluates the
// relevant predicate before touching the ledger.
type AccessPolicy struct{}

// NewAccessPolicy creates the policy
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanCreateLoan allows KYC-verified borrowers to open loan requests.
func (p *AccessPolicy) CanCreateLoan(actor *entities.User) bool {
	return actor.Role == entities.UserRoleBorrower && actor.KYCVerified
}

// CanViewOpenLoans allows lenders to browse the matching pool.
func (p *AccessPolicy) CanViewOpenLoans(actor *entities.User) bool {
	return actor.Role == entities.UserRoleLender
}

// CanExpressInterest allows lenders to claim an open loan manually.
func (p *AccessPolicy) CanExpressInterest(actor *entities.User) bool {
	return actor.Role == entities.UserRoleLender
}

// CanRespond allows the owning borrower or the currently matched lender
// to answer an active match.
func (p *AccessPolicy) CanRespond(actor *entities.User, loan *entities.LoanRequest) bool {
	if actor.Role == entities.UserRoleBorrower {
		return loan.BorrowerID == actor.ID
	}
	if actor.Role == entities.UserRoleLender {
		lenderID, ok := loan.MatchedLenderID()
		return ok && lenderID == actor.ID
	}
	return false
}

// CanAdminister allows admins only.
func (p *AccessPolicy) CanAdminister(actor *entities.User) bool {
	return actor.Role == entities.UserRoleAdmin
}

// CanViewOwnDashboard allows a user to read their own dashboard, and
// admins to read anyone's.
func (p *AccessPolicy) CanViewOwnDashboard(actor *entities.User, targetUserID uuid.UUID) bool {
	return actor.ID == targetUserID || actor.Role == entities.UserRoleAdmin
}
