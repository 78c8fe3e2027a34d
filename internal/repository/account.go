package repository

import (
	"context"

	"bizportal/internal/model"
)

// AccountRepository persists accounts of both roles and client profiles.
// Emails share one namespace across roles and are stored lower-cased.
type AccountRepository interface {
	// Create inserts an account without a profile.
	// Returns ErrDuplicateKey when the email is taken.
	Create(ctx context.Context, acc *model.Account) (*model.Account, error)

	// CreateClient inserts a client account and its profile atomically.
	// Returns ErrDuplicateKey when the email is taken.
	CreateClient(ctx context.Context, c *model.Client) (*model.Client, error)

	// FindByEmail returns the account including its password hash.
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	// FindClient returns a client account joined with its profile.
	FindClient(ctx context.Context, id string) (*model.Client, error)

	// ListClients returns client accounts, newest first.
	ListClients(ctx context.Context, pq PageQuery) (*PageResult[model.Client], error)

	// SetClientActive flips is_active on a client account.
	// Returns sql.ErrNoRows if no client account has that id.
	SetClientActive(ctx context.Context, id string, active bool) error
}
