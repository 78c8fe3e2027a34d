package mocks

import (
	"context"

	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, caller auth.Principal, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, caller auth.Principal, limit, offset int) (*service.ListResult[model.Project], error) {
	args := m.Called(ctx, caller, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Project]), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, caller auth.Principal, id string) (*model.Project, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, caller auth.Principal, id string, in service.UpdateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) AppendUpdate(ctx context.Context, caller auth.Principal, id, message string) (*model.Project, error) {
	args := m.Called(ctx, caller, id, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, caller auth.Principal, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
