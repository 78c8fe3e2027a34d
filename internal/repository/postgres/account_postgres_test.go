package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"bizportal/internal/model"
	"bizportal/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountCols = []string{"id", "name", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}

var clientCols = append(append([]string{}, accountCols...),
	"company_name", "phone_number", "street", "city", "state", "zip_code", "country",
	"industry", "company_size", "website", "tax_id", "registration_number")

func newClient(now time.Time) *model.Client {
	return &model.Client{
		Account: model.Account{
			ID:           "c-1",
			Name:         "Asha",
			Email:        "asha@acme.test",
			PasswordHash: "hash",
			Role:         model.RoleClient,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		ClientProfile: model.ClientProfile{
			CompanyName: "Acme",
			PhoneNumber: "+91 900",
			Address: model.Address{
				Street: "1 Main", City: "Pune", State: "MH", ZipCode: "411001", Country: "India",
			},
			CompanySize: "11-50",
		},
	}
}

func clientRow(c *model.Client) *sqlmock.Rows {
	return sqlmock.NewRows(clientCols).AddRow(
		c.ID, c.Name, c.Email, c.PasswordHash, string(c.Role), c.IsActive, c.CreatedAt, c.UpdatedAt,
		c.CompanyName, c.PhoneNumber, c.Address.Street, c.Address.City, c.Address.State, c.Address.ZipCode, c.Address.Country,
		c.Industry, c.CompanySize, c.Website, c.TaxID, c.RegistrationNumber,
	)
}

func TestAccountPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountPostgres(db)
	now := time.Now().UTC()
	acc := &model.Account{
		ID: "a-1", Name: "Root", Email: "root@bizportal.test", PasswordHash: "hash",
		Role: model.RoleAdmin, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO accounts").
			WithArgs(acc.ID, acc.Name, acc.Email, acc.PasswordHash, "admin", true, now, now).
			WillReturnRows(sqlmock.NewRows(accountCols).
				AddRow(acc.ID, acc.Name, acc.Email, acc.PasswordHash, "admin", true, now, now))

		out, err := repo.Create(context.Background(), acc)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, out.Role)
		assert.Equal(t, "hash", out.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO accounts").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_accounts_email"})

		out, err := repo.Create(context.Background(), acc)

		assert.Nil(t, out)
		assert.ErrorIs(t, err, repository.ErrDuplicateKey)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_CreateClient(t *testing.T) {
	now := time.Now().UTC()

	t.Run("commits both rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		c := newClient(now)
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO accounts").
			WillReturnRows(sqlmock.NewRows(accountCols).
				AddRow(c.ID, c.Name, c.Email, c.PasswordHash, "client", true, now, now))
		mock.ExpectExec("INSERT INTO client_profiles").
			WithArgs(c.ID, "Acme", "+91 900", "1 Main", "Pune", "MH", "411001", "India", "", "11-50", "", "", "").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		out, err := NewAccountPostgres(db).CreateClient(context.Background(), c)

		require.NoError(t, err)
		assert.Equal(t, "Acme", out.CompanyName)
		assert.Equal(t, model.RoleClient, out.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on profile failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		c := newClient(now)
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO accounts").
			WillReturnRows(sqlmock.NewRows(accountCols).
				AddRow(c.ID, c.Name, c.Email, c.PasswordHash, "client", true, now, now))
		mock.ExpectExec("INSERT INTO client_profiles").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		out, err := NewAccountPostgres(db).CreateClient(context.Background(), c)

		assert.Nil(t, out)
		assert.EqualError(t, err, "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountPostgres(db)
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE lower\(email\) = lower\(\$1\)`).
			WithArgs("Asha@Acme.test").
			WillReturnRows(sqlmock.NewRows(accountCols).
				AddRow("c-1", "Asha", "asha@acme.test", "hash", "client", false, now, now))

		acc, err := repo.FindByEmail(context.Background(), "Asha@Acme.test")

		require.NoError(t, err)
		assert.Equal(t, "c-1", acc.ID)
		assert.False(t, acc.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts").
			WithArgs("nobody@acme.test").
			WillReturnError(sql.ErrNoRows)

		acc, err := repo.FindByEmail(context.Background(), "nobody@acme.test")

		assert.Nil(t, acc)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestAccountPostgres_FindClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := newClient(time.Now().UTC())
	mock.ExpectQuery("SELECT (.+) FROM accounts a JOIN client_profiles p (.+) WHERE a.id = \\$1 AND a.role = 'client'").
		WithArgs("c-1").
		WillReturnRows(clientRow(c))

	out, err := NewAccountPostgres(db).FindClient(context.Background(), "c-1")

	require.NoError(t, err)
	assert.Equal(t, "Pune", out.Address.City)
	assert.Equal(t, "11-50", out.CompanySize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_ListClients(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := newClient(time.Now().UTC())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM accounts WHERE role = 'client'").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT (.+) FROM accounts a (.+) ORDER BY a.created_at DESC").
		WithArgs(1, 2).
		WillReturnRows(clientRow(c))

	res, err := NewAccountPostgres(db).ListClients(context.Background(), repository.PageQuery{Limit: 1, Offset: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_SetClientActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountPostgres(db)

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts SET is_active").
			WithArgs("c-1", false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetClientActive(context.Background(), "c-1", false))
	})

	t.Run("admin or missing id", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts SET is_active").
			WithArgs("a-1", true).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetClientActive(context.Background(), "a-1", true), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
