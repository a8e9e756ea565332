package entities

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestLoanRequest_MatchedLenderID(t *testing.T) {
	loan := &LoanRequest{}
	_, ok := loan.MatchedLenderID()
	assert.False(t, ok)

	lenderID := uuid.New()
	loan.SetMatch(lenderID)
	got, ok := loan.MatchedLenderID()
	assert.True(t, ok)
	assert.Equal(t, lenderID, got)

	loan.MatchedWith = null.StringFrom("garbage")
	_, ok = loan.MatchedLenderID()
	assert.False(t, ok)
}

func TestLoanRequest_ResetToOpen(t *testing.T) {
	loan := &LoanRequest{Status: LoanStatusMatched}
	loan.SetMatch(uuid.New())
	loan.BorrowerAccepted = true
	loan.LenderAccepted = true

	loan.ResetToOpen()

	assert.Equal(t, LoanStatusOpen, loan.Status)
	assert.False(t, loan.MatchedWith.Valid)
	assert.False(t, loan.BorrowerAccepted)
	assert.False(t, loan.LenderAccepted)
}

func TestLoanRequest_MarshalMatchedWith(t *testing.T) {
	loan := &LoanRequest{Status: LoanStatusOpen}
	raw, err := json.Marshal(loan)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"matchedWith":null`)

	lenderID := uuid.New()
	loan.SetMatch(lenderID)
	raw, err = json.Marshal(loan)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"matchedWith":"`+lenderID.String()+`"`)
}

func TestUserRole_Valid(t *testing.T) {
	assert.True(t, UserRoleAdmin.Valid())
	assert.True(t, UserRoleLender.Valid())
	assert.True(t, UserRoleBorrower.Valid())
	assert.False(t, UserRole("superuser").Valid())
	assert.False(t, UserRole("").Valid())
}
