package service

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"bizportal/internal/apperr"
	"bizportal/internal/model"
	"bizportal/internal/repository"
	repoMocks "bizportal/internal/repository/mocks"
	"bizportal/internal/storage"
	storeMocks "bizportal/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func pdf(content string) FileInput {
	return FileInput{
		Reader:      strings.NewReader(content),
		Filename:    "Quote Q1.PDF",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
	}
}

func putInfo(_ context.Context, key string, _ io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
	return storage.ObjectInfo{Key: key, URL: "http://files.local/portal/" + key, Size: opt.Size, ContentType: opt.ContentType}
}

func blake3Hex(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// memClientDocs is an owner-scoped in-memory ClientDocumentRepository.
type memClientDocs struct {
	mu   sync.Mutex
	rows map[string]model.ClientDocument
}

func newMemClientDocs() *memClientDocs {
	return &memClientDocs{rows: map[string]model.ClientDocument{}}
}

func (m *memClientDocs) Create(_ context.Context, d *model.ClientDocument) (*model.ClientDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[d.ID] = *d
	out := *d
	return &out, nil
}

func (m *memClientDocs) ListByClient(_ context.Context, clientID, projectID string, _ repository.PageQuery) (*repository.PageResult[model.ClientDocument], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []model.ClientDocument{}
	for _, d := range m.rows {
		if d.ClientID != clientID {
			continue
		}
		if projectID != "" && (d.ProjectID == nil || *d.ProjectID != projectID) {
			continue
		}
		items = append(items, d)
	}
	return &repository.PageResult[model.ClientDocument]{Items: items, Total: len(items)}, nil
}

func (m *memClientDocs) FindForClient(_ context.Context, clientID, id string) (*model.ClientDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.ClientID != clientID {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (m *memClientDocs) Update(_ context.Context, d *model.ClientDocument) (*model.ClientDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[d.ID]
	if !ok || cur.ClientID != d.ClientID {
		return nil, sql.ErrNoRows
	}
	m.rows[d.ID] = *d
	out := *d
	return &out, nil
}

func (m *memClientDocs) Delete(_ context.Context, clientID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.ClientID != clientID {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func TestClientDocumentService_Upload(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	opts := DocumentOptions{Now: fixedClock(now)}

	t.Run("stores bytes then metadata", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockClientDocumentRepository)
		mProjects := new(repoMocks.MockProjectRepository)
		svc := NewClientDocumentService(mStore, mDocs, mProjects, opts)

		mProjects.On("FindForClient", ctx, alice.AccountID, "p-1").Return(&model.Project{ID: "p-1", ClientID: alice.AccountID}, nil)
		mStore.On("Put", ctx, mock.MatchedBy(func(k string) bool {
			return strings.HasPrefix(k, "client-documents/c-alice/project-p-1/") && strings.HasSuffix(k, ".pdf")
		}), mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
			return o.ContentType == "application/pdf" && o.Metadata["original-filename"] == "Quote Q1.PDF"
		})).Return(putInfo, nil)

		var saved *model.ClientDocument
		mDocs.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*model.ClientDocument)
		}).Return(&model.ClientDocument{ID: "d-1"}, nil)

		_, err := svc.Upload(ctx, alice, ClientUploadInput{
			File:      pdf("%PDF-1.7 quote"),
			Title:     " Q1 quote ",
			Category:  "Invoice",
			Tags:      []string{"q1", " q1 ", "", "finance"},
			ProjectID: "p-1",
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, alice.AccountID, saved.ClientID)
		assert.Equal(t, "Q1 quote", saved.Title)
		assert.Equal(t, model.CategoryInvoice, saved.Category)
		assert.Equal(t, []string{"q1", "finance"}, saved.Tags)
		require.NotNil(t, saved.ProjectID)
		assert.Equal(t, "p-1", *saved.ProjectID)
		assert.Equal(t, blake3Hex("%PDF-1.7 quote"), saved.Checksum)
		assert.Equal(t, int64(len("%PDF-1.7 quote")), saved.FileSize)
		assert.Equal(t, "http://files.local/portal/"+saved.ObjectKey, saved.FileURL)
		assert.Equal(t, alice.Email, saved.UploadedBy)
		assert.Equal(t, now, saved.UploadedAt)
		mStore.AssertExpectations(t)
	})

	t.Run("foreign project is rejected before storing", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockClientDocumentRepository)
		mProjects := new(repoMocks.MockProjectRepository)
		svc := NewClientDocumentService(mStore, mDocs, mProjects, opts)

		mProjects.On("FindForClient", ctx, alice.AccountID, "p-bob").Return(nil, sql.ErrNoRows)

		_, err := svc.Upload(ctx, alice, ClientUploadInput{File: pdf("x"), Title: "t", ProjectID: "p-bob"})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, "project not found", apperr.Message(err))
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mDocs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	invalid := []struct {
		name string
		in   ClientUploadInput
		msg  string
	}{
		{"no title", ClientUploadInput{File: pdf("x")}, "title is required"},
		{"no file", ClientUploadInput{Title: "t"}, "file is required"},
		{"empty file", ClientUploadInput{Title: "t", File: FileInput{Reader: strings.NewReader(""), ContentType: "application/pdf"}}, "file is empty"},
		{"too large", ClientUploadInput{Title: "t", File: FileInput{Reader: strings.NewReader("x"), ContentType: "application/pdf", Size: DefaultMaxUploadBytes + 1}},
			"file exceeds the 10485760 byte limit"},
		{"executable", ClientUploadInput{Title: "t", File: FileInput{Reader: strings.NewReader("MZ"), ContentType: "application/x-msdownload", Size: 2}}, ""},
		{"unknown category", ClientUploadInput{Title: "t", File: pdf("x"), Category: "memo"}, ""},
	}
	for _, tt := range invalid {
		t.Run("validation - "+tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			svc := NewClientDocumentService(mStore, new(repoMocks.MockClientDocumentRepository), new(repoMocks.MockProjectRepository), opts)

			_, err := svc.Upload(ctx, alice, tt.in)

			assert.ErrorIs(t, err, apperr.ErrValidation)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, apperr.Message(err))
			}
			mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockClientDocumentRepository)
		svc := NewClientDocumentService(mStore, mDocs, new(repoMocks.MockProjectRepository), opts)

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("s3 down"))

		_, err := svc.Upload(ctx, alice, ClientUploadInput{File: pdf("x"), Title: "t"})

		assert.ErrorIs(t, err, apperr.ErrUpstream)
		mDocs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("metadata failure removes the object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockClientDocumentRepository)
		svc := NewClientDocumentService(mStore, mDocs, new(repoMocks.MockProjectRepository), opts)

		var key string
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			key = args.String(1)
		}).Return(putInfo, nil)
		mDocs.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := svc.Upload(ctx, alice, ClientUploadInput{File: pdf("x"), Title: "t"})

		assert.EqualError(t, err, "db save failed: insert failed")
		mStore.AssertCalled(t, "Delete", ctx, key)
	})

	t.Run("rollback failure is reported", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockClientDocumentRepository)
		svc := NewClientDocumentService(mStore, mDocs, new(repoMocks.MockProjectRepository), opts)

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(putInfo, nil)
		mDocs.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
		mStore.On("Delete", ctx, mock.Anything).Return(errors.New("s3 down"))

		_, err := svc.Upload(ctx, alice, ClientUploadInput{File: pdf("x"), Title: "t"})

		assert.EqualError(t, err, "db save failed: insert failed; rollback delete failed: s3 down")
	})

	t.Run("admin caller is forbidden", func(t *testing.T) {
		svc := NewClientDocumentService(new(storeMocks.MockStorage), new(repoMocks.MockClientDocumentRepository), new(repoMocks.MockProjectRepository), opts)
		_, err := svc.Upload(ctx, root, ClientUploadInput{File: pdf("x"), Title: "t"})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestClientDocumentService_ListForeignProject(t *testing.T) {
	ctx := context.Background()
	mDocs := new(repoMocks.MockClientDocumentRepository)
	mProjects := new(repoMocks.MockProjectRepository)
	svc := NewClientDocumentService(new(storeMocks.MockStorage), mDocs, mProjects, DocumentOptions{})

	mProjects.On("FindForClient", ctx, alice.AccountID, "p-bob").Return(nil, sql.ErrNoRows)

	_, err := svc.List(ctx, alice, "p-bob", 0, 0)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	mDocs.AssertNotCalled(t, "ListByClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClientDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	doc := &model.ClientDocument{ID: "d-1", ClientID: alice.AccountID, ObjectKey: "client-documents/c-alice/k.pdf"}

	t.Run("removes object then row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockClientDocumentRepository)
		svc := NewClientDocumentService(mStore, mDocs, nil, DocumentOptions{})

		mDocs.On("FindForClient", ctx, alice.AccountID, "d-1").Return(doc, nil)
		mStore.On("Delete", ctx, doc.ObjectKey).Return(nil)
		mDocs.On("Delete", ctx, alice.AccountID, "d-1").Return(nil)

		require.NoError(t, svc.Delete(ctx, alice, "d-1"))
		mStore.AssertExpectations(t)
		mDocs.AssertExpectations(t)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockClientDocumentRepository)
		svc := NewClientDocumentService(mStore, mDocs, nil, DocumentOptions{})

		mDocs.On("FindForClient", ctx, alice.AccountID, "d-1").Return(doc, nil)
		mStore.On("Delete", ctx, doc.ObjectKey).Return(errors.New("s3 down"))

		err := svc.Delete(ctx, alice, "d-1")

		assert.ErrorIs(t, err, apperr.ErrUpstream)
		assert.Equal(t, "failed to delete document from storage", apperr.Message(err))
		mDocs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign document", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockClientDocumentRepository)
		svc := NewClientDocumentService(mStore, mDocs, nil, DocumentOptions{})

		mDocs.On("FindForClient", ctx, bob.AccountID, "d-1").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, bob, "d-1"), apperr.ErrNotFound)
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestClientDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mDocs := new(repoMocks.MockClientDocumentRepository)
	svc := NewClientDocumentService(mStore, mDocs, nil, DocumentOptions{PresignExpiry: 5 * time.Minute})

	doc := &model.ClientDocument{ID: "d-1", ClientID: alice.AccountID, ObjectKey: "k"}
	mDocs.On("FindForClient", ctx, alice.AccountID, "d-1").Return(doc, nil)
	mDocs.On("FindForClient", ctx, alice.AccountID, "d-2").Return(&model.ClientDocument{ID: "d-2", ObjectKey: "k2"}, nil)
	mStore.On("PresignGet", ctx, "k", 5*time.Minute).Return("http://files.local/k?sig=1", nil)
	mStore.On("PresignGet", ctx, "k2", 5*time.Minute).Return("", errors.New("no creds"))

	u, err := svc.DownloadURL(ctx, alice, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "http://files.local/k?sig=1", u)

	_, err = svc.DownloadURL(ctx, alice, "d-2")
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestClientDocumentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mProjects := new(repoMocks.MockProjectRepository)
	docs := newMemClientDocs()
	svc := NewClientDocumentService(mStore, docs, mProjects, DocumentOptions{})

	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(putInfo, nil)
	mStore.On("Delete", mock.Anything, mock.Anything).Return(nil)
	mProjects.On("FindForClient", ctx, alice.AccountID, "p-1").Return(&model.Project{ID: "p-1"}, nil)
	mProjects.On("FindForClient", ctx, alice.AccountID, "p-bob").Return(nil, sql.ErrNoRows)

	d, err := svc.Upload(ctx, alice, ClientUploadInput{File: pdf("report body"), Title: "Report", Category: model.CategoryReport})
	require.NoError(t, err)
	assert.Nil(t, d.ProjectID)

	list, err := svc.List(ctx, alice, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	other, err := svc.List(ctx, bob, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, other.Total)

	_, err = svc.Get(ctx, bob, d.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	pid := "p-1"
	d, err = svc.Update(ctx, alice, d.ID, ClientDocumentUpdateInput{ProjectID: &pid})
	require.NoError(t, err)
	require.NotNil(t, d.ProjectID)
	assert.Equal(t, "p-1", *d.ProjectID)

	byProject, err := svc.List(ctx, alice, "p-1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, byProject.Total)

	foreign := "p-bob"
	_, err = svc.Update(ctx, alice, d.ID, ClientDocumentUpdateInput{ProjectID: &foreign})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	detach := ""
	title := "Final report"
	d, err = svc.Update(ctx, alice, d.ID, ClientDocumentUpdateInput{ProjectID: &detach, Title: &title})
	require.NoError(t, err)
	assert.Nil(t, d.ProjectID)
	assert.Equal(t, "Final report", d.Title)

	_, err = svc.Update(ctx, bob, d.ID, ClientDocumentUpdateInput{Title: &title})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, bob, d.ID), apperr.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, alice, d.ID))

	_, err = svc.Get(ctx, alice, d.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
