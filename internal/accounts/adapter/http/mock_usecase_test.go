package http_test

import (
	"context"

	"memberhub/internal/accounts/domain/model"
	"memberhub/internal/accounts/usecase"

	"github.com/stretchr/testify/mock"
)

// mockAccountUsecase implements usecase.AccountUsecaseInterface for handler
// and middleware tests.
type mockAccountUsecase struct {
	mock.Mock
}

func (m *mockAccountUsecase) SignUp(ctx context.Context, form usecase.SignupForm) (*model.Session, string, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.Session), args.String(1), args.Error(2)
}

func (m *mockAccountUsecase) Login(ctx context.Context, form usecase.LoginForm) (*model.Session, string, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.Session), args.String(1), args.Error(2)
}

func (m *mockAccountUsecase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockAccountUsecase) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockAccountUsecase) PromoteUser(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockAccountUsecase) DemoteUser(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockAccountUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

var _ usecase.AccountUsecaseInterface = (*mockAccountUsecase)(nil)
