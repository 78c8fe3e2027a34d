package repository

import (
	"context"
	"time"

	"bizportal/internal/model"
)

// DashboardRepository answers aggregate queries for the dashboards.
// An empty clientID means "all tenants".
type DashboardRepository interface {
	// CountClients counts client accounts created in [from, to). Zero times are open bounds.
	CountClients(ctx context.Context, from, to time.Time) (int, error)
	CountAdmins(ctx context.Context) (int, error)
	ProjectStatusCounts(ctx context.Context, clientID string) (map[model.ProjectStatus]int, error)
	CountClientDocuments(ctx context.Context, clientID string) (int, error)
	CountAdminDocuments(ctx context.Context, adminID string) (int, error)
	// ProjectsByMonth counts all projects created since the given time, grouped by calendar month (UTC).
	ProjectsByMonth(ctx context.Context, since time.Time) ([]model.MonthCount, error)
}
