package mocks

import (
	"context"

	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockClientDocumentService struct {
	mock.Mock
}

func (m *MockClientDocumentService) Upload(ctx context.Context, caller auth.Principal, in service.ClientUploadInput) (*model.ClientDocument, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientDocument), args.Error(1)
}

func (m *MockClientDocumentService) List(ctx context.Context, caller auth.Principal, projectID string, limit, offset int) (*service.ListResult[model.ClientDocument], error) {
	args := m.Called(ctx, caller, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.ClientDocument]), args.Error(1)
}

func (m *MockClientDocumentService) Get(ctx context.Context, caller auth.Principal, id string) (*model.ClientDocument, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientDocument), args.Error(1)
}

func (m *MockClientDocumentService) Update(ctx context.Context, caller auth.Principal, id string, in service.ClientDocumentUpdateInput) (*model.ClientDocument, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientDocument), args.Error(1)
}

func (m *MockClientDocumentService) Delete(ctx context.Context, caller auth.Principal, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockClientDocumentService) DownloadURL(ctx context.Context, caller auth.Principal, id string) (string, error) {
	args := m.Called(ctx, caller, id)
	return args.String(0), args.Error(1)
}

type MockAdminDocumentService struct {
	mock.Mock
}

func (m *MockAdminDocumentService) Upload(ctx context.Context, caller auth.Principal, in service.AdminUploadInput) (*model.AdminDocument, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminDocument), args.Error(1)
}

func (m *MockAdminDocumentService) List(ctx context.Context, caller auth.Principal, limit, offset int) (*service.ListResult[model.AdminDocument], error) {
	args := m.Called(ctx, caller, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.AdminDocument]), args.Error(1)
}

func (m *MockAdminDocumentService) Delete(ctx context.Context, caller auth.Principal, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
