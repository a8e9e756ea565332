package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// LoanRequestStatus represents the lifecycle status of a loan request
type LoanRequestStatus string

const (
	LoanStatusOpen     LoanRequestStatus = "open"
	LoanStatusMatched  LoanRequestStatus = "matched"
	LoanStatusAccepted LoanRequestStatus = "accepted"
	// LoanStatusRejected is kept for wire compatibility with legacy
	// records; no transition produces it. A reject resets the loan to
	// open so it returns to the matching pool.
	LoanStatusRejected LoanRequestStatus = "rejected"
	// LoanStatusAdminReview is set only by the admin review flag and
	// removes the loan from the matching pool.
	LoanStatusAdminReview LoanRequestStatus = "admin_review"
)

// RespondAction is a party's answer to an active match.
type RespondAction string

const (
	RespondAccept RespondAction = "accept"
	RespondReject RespondAction = "reject"
)

// LoanRequest represents a borrower's request for funding.
//
// Invariants:
//   - MatchedWith is set iff Status is matched or accepted.
//   - Status accepted implies both accepted flags are true.
//   - Status open implies no match and both accepted flags false.
type LoanRequest struct {
	ID               uuid.UUID         `json:"id"`
	BorrowerID       uuid.UUID         `json:"borrowerId"`
	Amount           float64           `json:"amount"`
	InterestRate     float64           `json:"interestRate"`
	PeriodMonths     int               `json:"periodMonths"`
	Status           LoanRequestStatus `json:"status"`
	MatchedWith      null.String       `json:"matchedWith"`
	BorrowerAccepted bool              `json:"borrowerAccepted"`
	LenderAccepted   bool              `json:"lenderAccepted"`
	Version          int               `json:"-"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`

	// Resolved summaries for API responses, populated by the usecase
	// layer when the caller may see them.
	Borrower *UserSummary `json:"borrower,omitempty"`
	Lender   *UserSummary `json:"lender,omitempty"`
}

// MatchedLenderID returns the matched lender id, if any.
func (l *LoanRequest) MatchedLenderID() (uuid.UUID, bool) {
	if !l.MatchedWith.Valid {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(l.MatchedWith.String)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SetMatch pairs the loan with a lender.
func (l *LoanRequest) SetMatch(lenderID uuid.UUID) {
	l.MatchedWith = null.StringFrom(lenderID.String())
	l.Status = LoanStatusMatched
}

// ResetToOpen dissolves the active match and returns the loan to the
// matching pool.
func (l *LoanRequest) ResetToOpen() {
	l.Status = LoanStatusOpen
	l.MatchedWith = null.String{}
	l.BorrowerAccepted = false
	l.LenderAccepted = false
}

// CreateLoanInput represents input for creating a loan request
type CreateLoanInput struct {
	Amount       float64 `json:"amount" binding:"required"`
	InterestRate float64 `json:"interestRate"`
	PeriodMonths int     `json:"periodMonths" binding:"required"`
}

// RespondInput represents a party's response to a match
type RespondInput struct {
	Action RespondAction `json:"action" binding:"required"`
}
