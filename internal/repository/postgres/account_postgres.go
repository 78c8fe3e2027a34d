package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bizportal/internal/model"
	"bizportal/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
type AccountPostgres struct {
	db *sql.DB
}

// NewAccountPostgres creates a new AccountPostgres repository.
func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

const accountColumns = `id, name, email, password_hash, role, is_active, created_at, updated_at`

const clientColumns = `a.id, a.name, a.email, a.password_hash, a.role, a.is_active, a.created_at, a.updated_at,
		p.company_name, p.phone_number, p.street, p.city, p.state, p.zip_code, p.country,
		p.industry, p.company_size, p.website, p.tax_id, p.registration_number`

func scanAccount(s rowScanner) (*model.Account, error) {
	var a model.Account
	var role string
	if err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&role,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Role = model.Role(role)
	return &a, nil
}

func scanClient(s rowScanner) (*model.Client, error) {
	var c model.Client
	var role string
	if err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.PasswordHash,
		&role,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.CompanyName,
		&c.PhoneNumber,
		&c.Address.Street,
		&c.Address.City,
		&c.Address.State,
		&c.Address.ZipCode,
		&c.Address.Country,
		&c.Industry,
		&c.CompanySize,
		&c.Website,
		&c.TaxID,
		&c.RegistrationNumber,
	); err != nil {
		return nil, err
	}
	c.Role = model.Role(role)
	return &c, nil
}

const insertAccount = `
		INSERT INTO accounts (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + accountColumns

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func createAccount(ctx context.Context, q queryRower, acc *model.Account) (*model.Account, error) {
	row := q.QueryRowContext(ctx, insertAccount,
		acc.ID,
		acc.Name,
		acc.Email,
		acc.PasswordHash,
		string(acc.Role),
		acc.IsActive,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	out, err := scanAccount(row)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return out, nil
}

// Create inserts a new account row and returns the stored record.
func (r *AccountPostgres) Create(ctx context.Context, acc *model.Account) (*model.Account, error) {
	return createAccount(ctx, r.db, acc)
}

// CreateClient inserts the account and profile rows in one transaction.
func (r *AccountPostgres) CreateClient(ctx context.Context, c *model.Client) (*model.Client, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	acc, err := createAccount(ctx, tx, &c.Account)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO client_profiles (account_id, company_name, phone_number, street, city, state, zip_code, country,
			industry, company_size, website, tax_id, registration_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	if _, err := tx.ExecContext(ctx, q,
		acc.ID,
		c.CompanyName,
		c.PhoneNumber,
		c.Address.Street,
		c.Address.City,
		c.Address.State,
		c.Address.ZipCode,
		c.Address.Country,
		c.Industry,
		c.CompanySize,
		c.Website,
		c.TaxID,
		c.RegistrationNumber,
	); err != nil {
		return nil, mapWriteErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &model.Client{Account: *acc, ClientProfile: c.ClientProfile}, nil
}

// FindByEmail looks up an account by case-insensitive email.
func (r *AccountPostgres) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`
	return scanAccount(r.db.QueryRowContext(ctx, q, email))
}

// FindClient fetches a client account with its profile.
func (r *AccountPostgres) FindClient(ctx context.Context, id string) (*model.Client, error) {
	const q = `
		SELECT ` + clientColumns + `
		FROM accounts a
		JOIN client_profiles p ON p.account_id = a.id
		WHERE a.id = $1 AND a.role = 'client'
	`
	return scanClient(r.db.QueryRowContext(ctx, q, id))
}

// ListClients returns client accounts using LIMIT/OFFSET pagination and a total count.
func (r *AccountPostgres) ListClients(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Client], error) {
	const qCount = `SELECT COUNT(*) FROM accounts WHERE role = 'client'`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + clientColumns + `
		FROM accounts a
		JOIN client_profiles p ON p.account_id = a.id
		WHERE a.role = 'client'
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Client]{Items: items, Total: total}, nil
}

// SetClientActive updates is_active on a client account.
func (r *AccountPostgres) SetClientActive(ctx context.Context, id string, active bool) error {
	const q = `UPDATE accounts SET is_active = $2, updated_at = now() WHERE id = $1 AND role = 'client'`
	res, err := r.db.ExecContext(ctx, q, id, active)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
