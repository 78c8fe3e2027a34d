package mocks

import (
	"context"

	"bizportal/internal/model"
	"bizportal/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockClientDocumentRepository struct {
	mock.Mock
}

func (m *MockClientDocumentRepository) Create(ctx context.Context, doc *model.ClientDocument) (*model.ClientDocument, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientDocument), args.Error(1)
}

func (m *MockClientDocumentRepository) ListByClient(ctx context.Context, clientID, projectID string, pq repository.PageQuery) (*repository.PageResult[model.ClientDocument], error) {
	args := m.Called(ctx, clientID, projectID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ClientDocument]), args.Error(1)
}

func (m *MockClientDocumentRepository) FindForClient(ctx context.Context, clientID, id string) (*model.ClientDocument, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientDocument), args.Error(1)
}

func (m *MockClientDocumentRepository) Update(ctx context.Context, doc *model.ClientDocument) (*model.ClientDocument, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientDocument), args.Error(1)
}

func (m *MockClientDocumentRepository) Delete(ctx context.Context, clientID, id string) error {
	args := m.Called(ctx, clientID, id)
	return args.Error(0)
}

type MockAdminDocumentRepository struct {
	mock.Mock
}

func (m *MockAdminDocumentRepository) Create(ctx context.Context, doc *model.AdminDocument) (*model.AdminDocument, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminDocument), args.Error(1)
}

func (m *MockAdminDocumentRepository) ListByUploader(ctx context.Context, adminID string, pq repository.PageQuery) (*repository.PageResult[model.AdminDocument], error) {
	args := m.Called(ctx, adminID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.AdminDocument]), args.Error(1)
}

func (m *MockAdminDocumentRepository) FindForUploader(ctx context.Context, adminID, id string) (*model.AdminDocument, error) {
	args := m.Called(ctx, adminID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminDocument), args.Error(1)
}

func (m *MockAdminDocumentRepository) Delete(ctx context.Context, adminID, id string) error {
	args := m.Called(ctx, adminID, id)
	return args.Error(0)
}
