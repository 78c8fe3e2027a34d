package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"bizportal/internal/apperr"
	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/repository"
	"bizportal/internal/storage"
)

// ClientUploadInput is a client document upload. ProjectID is optional.
type ClientUploadInput struct {
	File        FileInput
	Title       string
	Description string
	Category    model.DocumentCategory
	Tags        []string
	ProjectID   string
}

// ClientDocumentUpdateInput is a metadata patch; nil fields are left
// unchanged and an empty ProjectID detaches the document from its project.
type ClientDocumentUpdateInput struct {
	Title       *string
	Description *string
	Category    *model.DocumentCategory
	Tags        []string
	ProjectID   *string
}

// ClientDocumentService defines the tenant document use cases. Every method
// is scoped to the calling client, and any project reference must belong to
// that client too.
type ClientDocumentService interface {
	// Upload stores the bytes first and the metadata second. If the metadata
	// cannot be saved the object is removed again.
	Upload(ctx context.Context, caller auth.Principal, in ClientUploadInput) (*model.ClientDocument, error)

	// List returns the caller's documents, optionally limited to one of the
	// caller's projects.
	List(ctx context.Context, caller auth.Principal, projectID string, limit, offset int) (*ListResult[model.ClientDocument], error)

	Get(ctx context.Context, caller auth.Principal, id string) (*model.ClientDocument, error)
	Update(ctx context.Context, caller auth.Principal, id string, in ClientDocumentUpdateInput) (*model.ClientDocument, error)

	// Delete removes the object, then the row. An object store failure
	// aborts the operation and keeps the row.
	Delete(ctx context.Context, caller auth.Principal, id string) error

	// DownloadURL returns a short-lived pre-signed GET link.
	DownloadURL(ctx context.Context, caller auth.Principal, id string) (string, error)
}

// DocumentOptions tune the document services.
type DocumentOptions struct {
	MaxBytes      int64
	PresignExpiry time.Duration
	Now           func() time.Time
}

func (o DocumentOptions) withDefaults() DocumentOptions {
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxUploadBytes
	}
	if o.PresignExpiry <= 0 {
		o.PresignExpiry = 15 * time.Minute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type clientDocumentService struct {
	store    storage.Storage
	docs     repository.ClientDocumentRepository
	projects repository.ProjectRepository
	opts     DocumentOptions
}

// NewClientDocumentService constructs a new ClientDocumentService.
func NewClientDocumentService(store storage.Storage, docs repository.ClientDocumentRepository, projects repository.ProjectRepository, opts DocumentOptions) ClientDocumentService {
	return &clientDocumentService{store: store, docs: docs, projects: projects, opts: opts.withDefaults()}
}

// ownProject verifies that projectID belongs to the caller.
func (s *clientDocumentService) ownProject(ctx context.Context, caller auth.Principal, projectID string) error {
	if _, err := s.projects.FindForClient(ctx, caller.AccountID, projectID); err != nil {
		return notFound(err, "project")
	}
	return nil
}

func parseCategory(c model.DocumentCategory) (model.DocumentCategory, error) {
	if c == "" {
		return model.CategoryOther, nil
	}
	c = model.DocumentCategory(strings.ToLower(string(c)))
	if !c.Valid() {
		return "", apperr.Validation("category must be one of contract, invoice, report, proposal, other")
	}
	return c, nil
}

func (s *clientDocumentService) Upload(ctx context.Context, caller auth.Principal, in ClientUploadInput) (*model.ClientDocument, error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := validateFile(in.File, s.opts.MaxBytes); err != nil {
		return nil, err
	}
	category, err := parseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	projectID := strings.TrimSpace(in.ProjectID)
	if projectID != "" {
		if err := s.ownProject(ctx, caller, projectID); err != nil {
			return nil, err
		}
	}

	key := storage.ClientDocumentKey(caller.AccountID, projectID, in.File.Filename)
	obj, err := putObject(ctx, s.store, key, in.File)
	if err != nil {
		return nil, err
	}

	doc := &model.ClientDocument{
		ID:          uuid.NewString(),
		ClientID:    caller.AccountID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Tags:        cleanTags(in.Tags),
		FileURL:     obj.info.URL,
		ObjectKey:   obj.info.Key,
		Checksum:    obj.checksum,
		FileType:    mediaType(in.File.ContentType),
		FileSize:    obj.size,
		UploadedBy:  caller.Email,
		UploadedAt:  s.opts.Now().UTC(),
	}
	if projectID != "" {
		doc.ProjectID = &projectID
	}

	out, err := s.docs.Create(ctx, doc)
	if err != nil {
		return nil, rollbackObject(ctx, s.store, obj.info.Key, err)
	}
	return out, nil
}

func (s *clientDocumentService) List(ctx context.Context, caller auth.Principal, projectID string, limit, offset int) (*ListResult[model.ClientDocument], error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	projectID = strings.TrimSpace(projectID)
	if projectID != "" {
		if err := s.ownProject(ctx, caller, projectID); err != nil {
			return nil, err
		}
	}
	pq := pageQuery(limit, offset)
	res, err := s.docs.ListByClient(ctx, caller.AccountID, projectID, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *clientDocumentService) Get(ctx context.Context, caller auth.Principal, id string) (*model.ClientDocument, error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	doc, err := s.docs.FindForClient(ctx, caller.AccountID, id)
	if err != nil {
		return nil, notFound(err, "document")
	}
	return doc, nil
}

func (s *clientDocumentService) Update(ctx context.Context, caller auth.Principal, id string, in ClientDocumentUpdateInput) (*model.ClientDocument, error) {
	doc, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := requireText("title", *in.Title); err != nil {
			return nil, err
		}
		doc.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		doc.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		c, err := parseCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		doc.Category = c
	}
	if in.Tags != nil {
		doc.Tags = cleanTags(in.Tags)
	}
	if in.ProjectID != nil {
		pid := strings.TrimSpace(*in.ProjectID)
		if pid == "" {
			doc.ProjectID = nil
		} else {
			if err := s.ownProject(ctx, caller, pid); err != nil {
				return nil, err
			}
			doc.ProjectID = &pid
		}
	}

	doc.ClientID = caller.AccountID
	out, err := s.docs.Update(ctx, doc)
	if err != nil {
		return nil, notFound(err, "document")
	}
	return out, nil
}

func (s *clientDocumentService) Delete(ctx context.Context, caller auth.Principal, id string) error {
	doc, err := s.Get(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.ObjectKey); err != nil {
		return apperr.Upstream("failed to delete document from storage", err)
	}
	return notFound(s.docs.Delete(ctx, caller.AccountID, id), "document")
}

func (s *clientDocumentService) DownloadURL(ctx context.Context, caller auth.Principal, id string) (string, error) {
	doc, err := s.Get(ctx, caller, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, doc.ObjectKey, s.opts.PresignExpiry)
	if err != nil {
		return "", apperr.Upstream("failed to create download link", err)
	}
	return u, nil
}
