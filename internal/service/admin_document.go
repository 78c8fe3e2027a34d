package service

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"

	"bizportal/internal/apperr"
	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/repository"
	"bizportal/internal/storage"
)

// AdminUploadInput is an internal document upload. Category and Project are free text.
type AdminUploadInput struct {
	File        FileInput
	Title       string
	Description string
	Category    string
	Project     string
}

// AdminDocumentService manages internal documents. Each admin sees and
// deletes only the documents they uploaded.
type AdminDocumentService interface {
	Upload(ctx context.Context, caller auth.Principal, in AdminUploadInput) (*model.AdminDocument, error)
	List(ctx context.Context, caller auth.Principal, limit, offset int) (*ListResult[model.AdminDocument], error)
	Delete(ctx context.Context, caller auth.Principal, id string) error
}

type adminDocumentService struct {
	store storage.Storage
	docs  repository.AdminDocumentRepository
	opts  DocumentOptions
}

// NewAdminDocumentService constructs a new AdminDocumentService.
func NewAdminDocumentService(store storage.Storage, docs repository.AdminDocumentRepository, opts DocumentOptions) AdminDocumentService {
	return &adminDocumentService{store: store, docs: docs, opts: opts.withDefaults()}
}

func (s *adminDocumentService) Upload(ctx context.Context, caller auth.Principal, in AdminUploadInput) (*model.AdminDocument, error) {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := validateFile(in.File, s.opts.MaxBytes); err != nil {
		return nil, err
	}

	key := storage.AdminDocumentKey(caller.AccountID, in.File.Filename)
	obj, err := putObject(ctx, s.store, key, in.File)
	if err != nil {
		return nil, err
	}

	doc := &model.AdminDocument{
		ID:          uuid.NewString(),
		UploadedBy:  caller.AccountID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Project:     strings.TrimSpace(in.Project),
		FileURL:     obj.info.URL,
		FileName:    path.Base(strings.ReplaceAll(in.File.Filename, "\\", "/")),
		ObjectKey:   obj.info.Key,
		Checksum:    obj.checksum,
		FileSize:    obj.size,
		FileType:    mediaType(in.File.ContentType),
		CreatedAt:   s.opts.Now().UTC(),
	}
	out, err := s.docs.Create(ctx, doc)
	if err != nil {
		return nil, rollbackObject(ctx, s.store, obj.info.Key, err)
	}
	return out, nil
}

func (s *adminDocumentService) List(ctx context.Context, caller auth.Principal, limit, offset int) (*ListResult[model.AdminDocument], error) {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	pq := pageQuery(limit, offset)
	res, err := s.docs.ListByUploader(ctx, caller.AccountID, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *adminDocumentService) Delete(ctx context.Context, caller auth.Principal, id string) error {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	doc, err := s.docs.FindForUploader(ctx, caller.AccountID, id)
	if err != nil {
		return notFound(err, "document")
	}
	if err := s.store.Delete(ctx, doc.ObjectKey); err != nil {
		return apperr.Upstream("failed to delete document from storage", err)
	}
	return notFound(s.docs.Delete(ctx, caller.AccountID, id), "document")
}
