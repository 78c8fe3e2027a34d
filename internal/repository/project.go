package repository

import (
	"context"

	"bizportal/internal/model"
)

// ProjectRepository persists projects. Every method is scoped by clientID.
type ProjectRepository interface {
	// Create inserts a project. p.ClientID must already be stamped.
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// ListByClient returns the client's projects, newest first.
	ListByClient(ctx context.Context, clientID string, pq PageQuery) (*PageResult[model.Project], error)

	// FindForClient returns the project only if it belongs to clientID.
	FindForClient(ctx context.Context, clientID, id string) (*model.Project, error)

	// Update writes mutable fields of p where id and client_id both match.
	Update(ctx context.Context, p *model.Project) (*model.Project, error)

	// AppendUpdate atomically appends u to the project's update log.
	AppendUpdate(ctx context.Context, clientID, id string, u model.ProjectUpdate) (*model.Project, error)

	// Delete removes the project where id and client_id both match.
	// Returns sql.ErrNoRows if nothing matched.
	Delete(ctx context.Context, clientID, id string) error
}
