package repository

import (
	"context"

	"bizportal/internal/model"
)

// ClientDocumentRepository persists client document metadata, scoped by clientID.
type ClientDocumentRepository interface {
	Create(ctx context.Context, doc *model.ClientDocument) (*model.ClientDocument, error)

	// ListByClient returns the client's documents, newest first. A non-empty
	// projectID additionally restricts the result to that project.
	ListByClient(ctx context.Context, clientID, projectID string, pq PageQuery) (*PageResult[model.ClientDocument], error)

	FindForClient(ctx context.Context, clientID, id string) (*model.ClientDocument, error)

	// Update writes title, description, category, tags and project_id.
	Update(ctx context.Context, doc *model.ClientDocument) (*model.ClientDocument, error)

	// Delete returns sql.ErrNoRows if nothing matched.
	Delete(ctx context.Context, clientID, id string) error
}

// AdminDocumentRepository persists admin document metadata, scoped by uploader.
type AdminDocumentRepository interface {
	Create(ctx context.Context, doc *model.AdminDocument) (*model.AdminDocument, error)
	ListByUploader(ctx context.Context, adminID string, pq PageQuery) (*PageResult[model.AdminDocument], error)
	FindForUploader(ctx context.Context, adminID, id string) (*model.AdminDocument, error)

	// Delete returns sql.ErrNoRows if nothing matched.
	Delete(ctx context.Context, adminID, id string) error
}
