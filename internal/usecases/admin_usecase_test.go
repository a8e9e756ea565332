package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	"lendhub.backend/internal/usecases"
)

func newAdminUsecaseForTest(userRepo *MockUserRepository, loanRepo *MockLoanRequestRepository) *usecases.AdminUsecase {
	return usecases.NewAdminUsecase(userRepo, loanRepo, usecases.NewAccessPolicy())
}

func adminUser() *entities.User {
	return &entities.User{ID: uuid.New(), Role: entities.UserRoleAdmin}
}

func TestAdminUsecase_VerifyKYC(t *testing.T) {
	userRepo := new(MockUserRepository)
	loanRepo := new(MockLoanRequestRepository)
	uc := newAdminUsecaseForTest(userRepo, loanRepo)

	targetID := uuid.New()
	userRepo.On("SetKYCVerified", context.Background(), targetID).Return(nil).Once()

	assert.NoError(t, uc.VerifyKYC(context.Background(), adminUser(), targetID))

	err := uc.VerifyKYC(context.Background(), &entities.User{Role: entities.UserRoleLender}, targetID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAdminUsecase_VerifyKYC_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAdminUsecaseForTest(userRepo, new(MockLoanRequestRepository))

	targetID := uuid.New()
	userRepo.On("SetKYCVerified", context.Background(), targetID).Return(domainerrors.ErrNotFound).Once()

	err := uc.VerifyKYC(context.Background(), adminUser(), targetID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAdminUsecase_ListLoanRequests_AdminOnly(t *testing.T) {
	userRepo := new(MockUserRepository)
	loanRepo := new(MockLoanRequestRepository)
	uc := newAdminUsecaseForTest(userRepo, loanRepo)

	_, err := uc.ListLoanRequests(context.Background(), &entities.User{Role: entities.UserRoleBorrower})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	loanRepo.On("List", context.Background()).Return([]*entities.LoanRequest{}, nil).Once()
	loans, err := uc.ListLoanRequests(context.Background(), adminUser())
	assert.NoError(t, err)
	assert.Empty(t, loans)
}

func TestAdminUsecase_ListUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAdminUsecaseForTest(userRepo, new(MockLoanRequestRepository))

	userRepo.On("List", context.Background(), "alice").Return([]*entities.User{{Name: "Alice"}}, nil).Once()

	users, err := uc.ListUsers(context.Background(), adminUser(), "alice")
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = uc.ListUsers(context.Background(), &entities.User{Role: entities.UserRoleLender}, "")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAdminUsecase_FlagForReview_DissolvesMatch(t *testing.T) {
	userRepo := new(MockUserRepository)
	loanRepo := new(MockLoanRequestRepository)
	uc := newAdminUsecaseForTest(userRepo, loanRepo)

	loan := matchedLoan(uuid.New(), uuid.New())
	loan.BorrowerAccepted = true

	loanRepo.On("GetByID", context.Background(), loan.ID).Return(loan, nil).Once()
	loanRepo.On("Update", context.Background(), loan).Return(nil).Once()

	got, err := uc.FlagForReview(context.Background(), adminUser(), loan.ID)
	assert.NoError(t, err)
	assert.Equal(t, entities.LoanStatusAdminReview, got.Status)
	assert.False(t, got.MatchedWith.Valid)
	assert.False(t, got.BorrowerAccepted)
	assert.False(t, got.LenderAccepted)
}

func TestAdminUsecase_FlagForReview_AcceptedLoanConflicts(t *testing.T) {
	userRepo := new(MockUserRepository)
	loanRepo := new(MockLoanRequestRepository)
	uc := newAdminUsecaseForTest(userRepo, loanRepo)

	loan := matchedLoan(uuid.New(), uuid.New())
	loan.Status = entities.LoanStatusAccepted

	loanRepo.On("GetByID", context.Background(), loan.ID).Return(loan, nil).Once()

	_, err := uc.FlagForReview(context.Background(), adminUser(), loan.ID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	loanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
