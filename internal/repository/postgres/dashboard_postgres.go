package postgres

import (
	"context"
	"database/sql"
	"time"

	"bizportal/internal/model"
	"bizportal/internal/repository"
)

// DashboardPostgres is a PostgreSQL implementation of repository.DashboardRepository.
type DashboardPostgres struct {
	db *sql.DB
}

// NewDashboardPostgres creates a new DashboardPostgres repository.
func NewDashboardPostgres(db *sql.DB) *DashboardPostgres {
	return &DashboardPostgres{db: db}
}

var _ repository.DashboardRepository = (*DashboardPostgres)(nil)

func (r *DashboardPostgres) count(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountClients counts client accounts created within [from, to).
func (r *DashboardPostgres) CountClients(ctx context.Context, from, to time.Time) (int, error) {
	const q = `
		SELECT COUNT(*) FROM accounts
		WHERE role = 'client'
			AND ($1::timestamptz IS NULL OR created_at >= $1)
			AND ($2::timestamptz IS NULL OR created_at < $2)
	`
	return r.count(ctx, q, nullTime(from), nullTime(to))
}

// CountAdmins counts admin accounts.
func (r *DashboardPostgres) CountAdmins(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM accounts WHERE role = 'admin'`)
}

// ProjectStatusCounts groups projects by status, for one client or for all.
func (r *DashboardPostgres) ProjectStatusCounts(ctx context.Context, clientID string) (map[model.ProjectStatus]int, error) {
	q := `SELECT status, COUNT(*) FROM projects GROUP BY status`
	var args []any
	if clientID != "" {
		q = `SELECT status, COUNT(*) FROM projects WHERE client_id = $1 GROUP BY status`
		args = append(args, clientID)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.ProjectStatus]int, len(model.ProjectStatuses))
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[model.ProjectStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountClientDocuments counts client documents, for one client or for all.
func (r *DashboardPostgres) CountClientDocuments(ctx context.Context, clientID string) (int, error) {
	if clientID == "" {
		return r.count(ctx, `SELECT COUNT(*) FROM client_documents`)
	}
	return r.count(ctx, `SELECT COUNT(*) FROM client_documents WHERE client_id = $1`, clientID)
}

// CountAdminDocuments counts documents uploaded by adminID.
func (r *DashboardPostgres) CountAdminDocuments(ctx context.Context, adminID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM admin_documents WHERE uploaded_by = $1`, adminID)
}

// ProjectsByMonth counts projects created since the given time per UTC calendar month.
func (r *DashboardPostgres) ProjectsByMonth(ctx context.Context, since time.Time) ([]model.MonthCount, error) {
	const q = `
		SELECT EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC')::int AS y,
			EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS m,
			COUNT(*)
		FROM projects
		WHERE created_at >= $1
		GROUP BY y, m
		ORDER BY y, m
	`
	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MonthCount, 0)
	for rows.Next() {
		var mc model.MonthCount
		if err := rows.Scan(&mc.Year, &mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
