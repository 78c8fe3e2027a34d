package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bizportal/internal/model"
	"bizportal/internal/repository"
)

// ClientDocumentPostgres is a PostgreSQL implementation of repository.ClientDocumentRepository.
type ClientDocumentPostgres struct {
	db *sql.DB
}

// NewClientDocumentPostgres creates a new ClientDocumentPostgres repository.
func NewClientDocumentPostgres(db *sql.DB) *ClientDocumentPostgres {
	return &ClientDocumentPostgres{db: db}
}

var _ repository.ClientDocumentRepository = (*ClientDocumentPostgres)(nil)

const clientDocumentColumns = `id, client_id, project_id, title, description, category, tags,
		file_url, object_key, checksum, file_type, file_size, uploaded_by, uploaded_at`

func scanClientDocument(s rowScanner) (*model.ClientDocument, error) {
	var d model.ClientDocument
	var projectID sql.NullString
	var category string
	var tags []byte
	if err := s.Scan(
		&d.ID,
		&d.ClientID,
		&projectID,
		&d.Title,
		&d.Description,
		&category,
		&tags,
		&d.FileURL,
		&d.ObjectKey,
		&d.Checksum,
		&d.FileType,
		&d.FileSize,
		&d.UploadedBy,
		&d.UploadedAt,
	); err != nil {
		return nil, err
	}
	if projectID.Valid {
		d.ProjectID = &projectID.String
	}
	d.Category = model.DocumentCategory(category)

	var err error
	if d.Tags, err = fromJSON[string](tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &d, nil
}

// Create inserts a new client document row and returns the stored record.
func (r *ClientDocumentPostgres) Create(ctx context.Context, d *model.ClientDocument) (*model.ClientDocument, error) {
	tags, err := toJSON(d.Tags)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO client_documents (id, client_id, project_id, title, description, category, tags,
			file_url, object_key, checksum, file_type, file_size, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + clientDocumentColumns
	row := r.db.QueryRowContext(ctx, q,
		d.ID,
		d.ClientID,
		nullString(d.ProjectID),
		d.Title,
		d.Description,
		string(d.Category),
		tags,
		d.FileURL,
		d.ObjectKey,
		d.Checksum,
		d.FileType,
		d.FileSize,
		d.UploadedBy,
		d.UploadedAt,
	)
	out, err := scanClientDocument(row)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return out, nil
}

// ListByClient returns the client's documents, optionally restricted to one project.
func (r *ClientDocumentPostgres) ListByClient(ctx context.Context, clientID, projectID string, pq repository.PageQuery) (*repository.PageResult[model.ClientDocument], error) {
	where := `WHERE client_id = $1`
	args := []any{clientID}
	if projectID != "" {
		where += ` AND project_id = $2`
		args = append(args, projectID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM client_documents `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(`
		SELECT %s
		FROM client_documents
		%s
		ORDER BY uploaded_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, clientDocumentColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ClientDocument, 0)
	for rows.Next() {
		d, err := scanClientDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.ClientDocument]{Items: items, Total: total}, nil
}

// FindForClient fetches a document by id and owner.
func (r *ClientDocumentPostgres) FindForClient(ctx context.Context, clientID, id string) (*model.ClientDocument, error) {
	const q = `SELECT ` + clientDocumentColumns + ` FROM client_documents WHERE id = $1 AND client_id = $2`
	return scanClientDocument(r.db.QueryRowContext(ctx, q, id, clientID))
}

// Update rewrites the editable metadata of an owned document.
func (r *ClientDocumentPostgres) Update(ctx context.Context, d *model.ClientDocument) (*model.ClientDocument, error) {
	tags, err := toJSON(d.Tags)
	if err != nil {
		return nil, err
	}

	const q = `
		UPDATE client_documents
		SET title = $3, description = $4, category = $5, tags = $6::jsonb, project_id = $7
		WHERE id = $1 AND client_id = $2
		RETURNING ` + clientDocumentColumns
	return scanClientDocument(r.db.QueryRowContext(ctx, q,
		d.ID,
		d.ClientID,
		d.Title,
		d.Description,
		string(d.Category),
		tags,
		nullString(d.ProjectID),
	))
}

// Delete removes an owned document row.
func (r *ClientDocumentPostgres) Delete(ctx context.Context, clientID, id string) error {
	const q = `DELETE FROM client_documents WHERE id = $1 AND client_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, clientID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// AdminDocumentPostgres is a PostgreSQL implementation of repository.AdminDocumentRepository.
type AdminDocumentPostgres struct {
	db *sql.DB
}

// NewAdminDocumentPostgres creates a new AdminDocumentPostgres repository.
func NewAdminDocumentPostgres(db *sql.DB) *AdminDocumentPostgres {
	return &AdminDocumentPostgres{db: db}
}

var _ repository.AdminDocumentRepository = (*AdminDocumentPostgres)(nil)

const adminDocumentColumns = `id, uploaded_by, title, description, category, project,
		file_url, file_name, object_key, checksum, file_size, file_type, created_at`

func scanAdminDocument(s rowScanner) (*model.AdminDocument, error) {
	var d model.AdminDocument
	if err := s.Scan(
		&d.ID,
		&d.UploadedBy,
		&d.Title,
		&d.Description,
		&d.Category,
		&d.Project,
		&d.FileURL,
		&d.FileName,
		&d.ObjectKey,
		&d.Checksum,
		&d.FileSize,
		&d.FileType,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new admin document row and returns the stored record.
func (r *AdminDocumentPostgres) Create(ctx context.Context, d *model.AdminDocument) (*model.AdminDocument, error) {
	const q = `
		INSERT INTO admin_documents (id, uploaded_by, title, description, category, project,
			file_url, file_name, object_key, checksum, file_size, file_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + adminDocumentColumns
	row := r.db.QueryRowContext(ctx, q,
		d.ID,
		d.UploadedBy,
		d.Title,
		d.Description,
		d.Category,
		d.Project,
		d.FileURL,
		d.FileName,
		d.ObjectKey,
		d.Checksum,
		d.FileSize,
		d.FileType,
		d.CreatedAt,
	)
	out, err := scanAdminDocument(row)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return out, nil
}

// ListByUploader returns documents uploaded by adminID, newest first.
func (r *AdminDocumentPostgres) ListByUploader(ctx context.Context, adminID string, pq repository.PageQuery) (*repository.PageResult[model.AdminDocument], error) {
	const qCount = `SELECT COUNT(*) FROM admin_documents WHERE uploaded_by = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, adminID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + adminDocumentColumns + `
		FROM admin_documents
		WHERE uploaded_by = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, adminID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AdminDocument, 0)
	for rows.Next() {
		d, err := scanAdminDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.AdminDocument]{Items: items, Total: total}, nil
}

// FindForUploader fetches a document by id and uploader.
func (r *AdminDocumentPostgres) FindForUploader(ctx context.Context, adminID, id string) (*model.AdminDocument, error) {
	const q = `SELECT ` + adminDocumentColumns + ` FROM admin_documents WHERE id = $1 AND uploaded_by = $2`
	return scanAdminDocument(r.db.QueryRowContext(ctx, q, id, adminID))
}

// Delete removes an admin document row owned by adminID.
func (r *AdminDocumentPostgres) Delete(ctx context.Context, adminID, id string) error {
	const q = `DELETE FROM admin_documents WHERE id = $1 AND uploaded_by = $2`
	res, err := r.db.ExecContext(ctx, q, id, adminID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
