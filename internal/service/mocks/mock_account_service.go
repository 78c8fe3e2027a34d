package mocks

import (
	"context"

	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAccountService) RegisterClient(ctx context.Context, in service.ClientRegisterInput) (*service.ClientAuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClientAuthResult), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string, want model.Role) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password, want)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAccountService) Profile(ctx context.Context, caller auth.Principal) (*model.Client, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockAccountService) ListClients(ctx context.Context, caller auth.Principal, limit, offset int) (*service.ListResult[model.Client], error) {
	args := m.Called(ctx, caller, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Client]), args.Error(1)
}

func (m *MockAccountService) SetClientActive(ctx context.Context, caller auth.Principal, clientID string, active bool) error {
	args := m.Called(ctx, caller, clientID, active)
	return args.Error(0)
}
