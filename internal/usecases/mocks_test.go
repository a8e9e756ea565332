package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"lendhub.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindVerifiedLenders(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) SetKYCVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock LoanRequestRepository
type MockLoanRequestRepository struct {
	mock.Mock
}

func (m *MockLoanRequestRepository) Create(ctx context.Context, loan *entities.LoanRequest) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoanRequest), args.Error(1)
}

func (m *MockLoanRequestRepository) FindByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*entities.LoanRequest, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanRequest), args.Error(1)
}

func (m *MockLoanRequestRepository) FindByLender(ctx context.Context, lenderID uuid.UUID, excludeStatus entities.LoanRequestStatus) ([]*entities.LoanRequest, error) {
	args := m.Called(ctx, lenderID, excludeStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanRequest), args.Error(1)
}

func (m *MockLoanRequestRepository) FindOpen(ctx context.Context) ([]*entities.LoanRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanRequest), args.Error(1)
}

func (m *MockLoanRequestRepository) List(ctx context.Context) ([]*entities.LoanRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanRequest), args.Error(1)
}

func (m *MockLoanRequestRepository) Update(ctx context.Context, loan *entities.LoanRequest) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
