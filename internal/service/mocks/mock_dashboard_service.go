package mocks

import (
	"context"

	"bizportal/internal/auth"
	"bizportal/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) AdminStats(ctx context.Context, caller auth.Principal) (*model.AdminStats, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminStats), args.Error(1)
}

func (m *MockDashboardService) ClientStats(ctx context.Context, caller auth.Principal) (*model.ClientStats, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientStats), args.Error(1)
}
