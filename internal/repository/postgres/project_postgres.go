package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bizportal/internal/model"
	"bizportal/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
type ProjectPostgres struct {
	db *sql.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `id, client_id, name, service, description, status, progress,
		submission_date, expected_completion, timeline, updates, created_at, updated_at`

func scanProject(s rowScanner) (*model.Project, error) {
	var p model.Project
	var status string
	var timeline, updates []byte
	if err := s.Scan(
		&p.ID,
		&p.ClientID,
		&p.Name,
		&p.Service,
		&p.Description,
		&status,
		&p.Progress,
		&p.SubmissionDate,
		&p.ExpectedCompletion,
		&timeline,
		&updates,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = model.ProjectStatus(status)

	var err error
	if p.Timeline, err = fromJSON[model.TimelinePhase](timeline); err != nil {
		return nil, fmt.Errorf("decode timeline: %w", err)
	}
	if p.Updates, err = fromJSON[model.ProjectUpdate](updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return &p, nil
}

// Create inserts a new project row and returns the stored record.
func (r *ProjectPostgres) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	timeline, err := toJSON(p.Timeline)
	if err != nil {
		return nil, err
	}
	updates, err := toJSON(p.Updates)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO projects (id, client_id, name, service, description, status, progress,
			submission_date, expected_completion, timeline, updates, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11::jsonb, $12, $13)
		RETURNING ` + projectColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.ClientID,
		p.Name,
		p.Service,
		p.Description,
		string(p.Status),
		p.Progress,
		p.SubmissionDate,
		p.ExpectedCompletion,
		timeline,
		updates,
		p.CreatedAt,
		p.UpdatedAt,
	)
	out, err := scanProject(row)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return out, nil
}

// ListByClient returns the client's projects using LIMIT/OFFSET pagination and a total count.
func (r *ProjectPostgres) ListByClient(ctx context.Context, clientID string, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	const qCount = `SELECT COUNT(*) FROM projects WHERE client_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, clientID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, clientID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Project]{Items: items, Total: total}, nil
}

// FindForClient fetches a project by id and owner.
func (r *ProjectPostgres) FindForClient(ctx context.Context, clientID, id string) (*model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND client_id = $2`
	return scanProject(r.db.QueryRowContext(ctx, q, id, clientID))
}

// Update rewrites the mutable columns of an owned project.
func (r *ProjectPostgres) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	timeline, err := toJSON(p.Timeline)
	if err != nil {
		return nil, err
	}

	const q = `
		UPDATE projects
		SET name = $3, service = $4, description = $5, status = $6, progress = $7,
			expected_completion = $8, timeline = $9::jsonb, updated_at = $10
		WHERE id = $1 AND client_id = $2
		RETURNING ` + projectColumns
	return scanProject(r.db.QueryRowContext(ctx, q,
		p.ID,
		p.ClientID,
		p.Name,
		p.Service,
		p.Description,
		string(p.Status),
		p.Progress,
		p.ExpectedCompletion,
		timeline,
		p.UpdatedAt,
	))
}

// AppendUpdate appends one entry to the updates array in a single statement.
func (r *ProjectPostgres) AppendUpdate(ctx context.Context, clientID, id string, u model.ProjectUpdate) (*model.Project, error) {
	entry, err := toJSON([]model.ProjectUpdate{u})
	if err != nil {
		return nil, err
	}

	const q = `
		UPDATE projects
		SET updates = updates || $3::jsonb, updated_at = $4
		WHERE id = $1 AND client_id = $2
		RETURNING ` + projectColumns
	return scanProject(r.db.QueryRowContext(ctx, q, id, clientID, entry, u.Date))
}

// Delete removes an owned project.
func (r *ProjectPostgres) Delete(ctx context.Context, clientID, id string) error {
	const q = `DELETE FROM projects WHERE id = $1 AND client_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, clientID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
