package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"bizportal/internal/apperr"
	"bizportal/internal/model"
	"bizportal/internal/repository"
	repoMocks "bizportal/internal/repository/mocks"
	storeMocks "bizportal/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memAdminDocs struct {
	mu   sync.Mutex
	rows map[string]model.AdminDocument
}

func newMemAdminDocs() *memAdminDocs {
	return &memAdminDocs{rows: map[string]model.AdminDocument{}}
}

func (m *memAdminDocs) Create(_ context.Context, d *model.AdminDocument) (*model.AdminDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[d.ID] = *d
	out := *d
	return &out, nil
}

func (m *memAdminDocs) ListByUploader(_ context.Context, adminID string, _ repository.PageQuery) (*repository.PageResult[model.AdminDocument], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []model.AdminDocument{}
	for _, d := range m.rows {
		if d.UploadedBy == adminID {
			items = append(items, d)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return &repository.PageResult[model.AdminDocument]{Items: items, Total: len(items)}, nil
}

func (m *memAdminDocs) FindForUploader(_ context.Context, adminID, id string) (*model.AdminDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.UploadedBy != adminID {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (m *memAdminDocs) Delete(_ context.Context, adminID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.UploadedBy != adminID {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func TestAdminDocumentService_PerAdminPools(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	docs := newMemAdminDocs()
	svc := NewAdminDocumentService(mStore, docs, DocumentOptions{})

	mStore.On("Put", mock.Anything, mock.MatchedBy(func(k string) bool {
		return strings.HasPrefix(k, "business-documents/admin-a-root/")
	}), mock.Anything, mock.Anything).Return(putInfo, nil)
	mStore.On("Delete", mock.Anything, mock.Anything).Return(nil)

	up, err := svc.Upload(ctx, root, AdminUploadInput{
		File:     FileInput{Reader: strings.NewReader("signed"), Filename: `C:\scans\Contract.pdf`, ContentType: "application/pdf", Size: 6},
		Title:    "MSA",
		Category: "Contracts",
		Project:  "Acme rollout",
	})
	require.NoError(t, err)
	assert.Equal(t, root.AccountID, up.UploadedBy)
	assert.Equal(t, "Contract.pdf", up.FileName)
	assert.Equal(t, "Contracts", up.Category)
	assert.Equal(t, blake3Hex("signed"), up.Checksum)
	assert.Equal(t, int64(6), up.FileSize)

	mine, err := svc.List(ctx, root, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, mine.Total)
	assert.Equal(t, up.ID, mine.Items[0].ID)

	theirs, err := svc.List(ctx, ops, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, theirs.Total)

	assert.ErrorIs(t, svc.Delete(ctx, ops, up.ID), apperr.ErrNotFound)
	mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	require.NoError(t, svc.Delete(ctx, root, up.ID))
	mStore.AssertCalled(t, "Delete", mock.Anything, up.ObjectKey)

	mine, err = svc.List(ctx, root, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, mine.Total)
}

func TestAdminDocumentService_Errors(t *testing.T) {
	ctx := context.Background()
	file := FileInput{Reader: strings.NewReader("x"), Filename: "a.pdf", ContentType: "application/pdf", Size: 1}

	t.Run("client caller is forbidden", func(t *testing.T) {
		svc := NewAdminDocumentService(new(storeMocks.MockStorage), new(repoMocks.MockAdminDocumentRepository), DocumentOptions{})

		_, err := svc.Upload(ctx, alice, AdminUploadInput{File: file, Title: "t"})
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		_, err = svc.List(ctx, alice, 0, 0)
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		assert.ErrorIs(t, svc.Delete(ctx, alice, "d-1"), apperr.ErrForbidden)
	})

	t.Run("metadata failure removes the object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockAdminDocumentRepository)
		svc := NewAdminDocumentService(mStore, mDocs, DocumentOptions{})

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(putInfo, nil)
		mDocs.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := svc.Upload(ctx, root, AdminUploadInput{File: file, Title: "t"})

		assert.EqualError(t, err, "db save failed: insert failed")
		mStore.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("storage delete failure keeps the row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockAdminDocumentRepository)
		svc := NewAdminDocumentService(mStore, mDocs, DocumentOptions{})

		mDocs.On("FindForUploader", ctx, root.AccountID, "d-1").Return(&model.AdminDocument{ID: "d-1", ObjectKey: "k"}, nil)
		mStore.On("Delete", ctx, "k").Return(errors.New("s3 down"))

		assert.ErrorIs(t, svc.Delete(ctx, root, "d-1"), apperr.ErrUpstream)
		mDocs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
