package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the final step, so a run that stopped part
// way is retried on the next boot. Every step is idempotent.
const sentinelTable = "public.schema_migrations"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_accounts",
		SQL: `CREATE TABLE IF NOT EXISTS accounts (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL,
  password_hash TEXT        NOT NULL,
  role          TEXT        NOT NULL CHECK (role IN ('admin', 'client')),
  is_active     BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_unique_index_accounts_email",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_accounts_email ON accounts (lower(email));`,
	},
	{
		Name: "create_index_accounts_role_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_accounts_role_created_at ON accounts (role, created_at);`,
	},
	{
		Name: "create_table_client_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS client_profiles (
  account_id          UUID PRIMARY KEY REFERENCES accounts (id) ON DELETE CASCADE,
  company_name        TEXT NOT NULL,
  phone_number        TEXT NOT NULL,
  street              TEXT NOT NULL,
  city                TEXT NOT NULL,
  state               TEXT NOT NULL,
  zip_code            TEXT NOT NULL,
  country             TEXT NOT NULL,
  industry            TEXT NOT NULL DEFAULT '',
  company_size        TEXT NOT NULL DEFAULT '',
  website             TEXT NOT NULL DEFAULT '',
  tax_id              TEXT NOT NULL DEFAULT '',
  registration_number TEXT NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
  id                  UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id           UUID        NOT NULL REFERENCES accounts (id),
  name                TEXT        NOT NULL,
  service             TEXT        NOT NULL,
  description         TEXT        NOT NULL,
  status              TEXT        NOT NULL DEFAULT 'Submitted'
                      CHECK (status IN ('Submitted', 'In Progress', 'In Review', 'Completed')),
  progress            INTEGER     NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
  submission_date     TIMESTAMPTZ NOT NULL DEFAULT now(),
  expected_completion TIMESTAMPTZ NOT NULL,
  timeline            JSONB       NOT NULL DEFAULT '[]'::jsonb,
  updates             JSONB       NOT NULL DEFAULT '[]'::jsonb,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_projects_client_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_projects_client_created_at ON projects (client_id, created_at DESC);`,
	},
	{
		Name: "create_table_client_documents",
		SQL: `CREATE TABLE IF NOT EXISTS client_documents (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id   UUID        NOT NULL REFERENCES accounts (id),
  project_id  UUID        REFERENCES projects (id) ON DELETE SET NULL,
  title       TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  category    TEXT        NOT NULL DEFAULT 'other'
              CHECK (category IN ('contract', 'invoice', 'report', 'proposal', 'other')),
  tags        JSONB       NOT NULL DEFAULT '[]'::jsonb,
  file_url    TEXT        NOT NULL,
  object_key  TEXT        NOT NULL UNIQUE,
  checksum    TEXT        NOT NULL,
  file_type   TEXT        NOT NULL,
  file_size   BIGINT      NOT NULL CHECK (file_size >= 0),
  uploaded_by TEXT        NOT NULL,
  uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_client_documents_client_uploaded_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_client_documents_client_uploaded_at ON client_documents (client_id, uploaded_at DESC);`,
	},
	{
		Name: "create_table_admin_documents",
		SQL: `CREATE TABLE IF NOT EXISTS admin_documents (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  uploaded_by UUID        NOT NULL REFERENCES accounts (id),
  title       TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  category    TEXT        NOT NULL DEFAULT '',
  project     TEXT        NOT NULL DEFAULT '',
  file_url    TEXT        NOT NULL,
  file_name   TEXT        NOT NULL,
  object_key  TEXT        NOT NULL UNIQUE,
  checksum    TEXT        NOT NULL,
  file_size   BIGINT      NOT NULL CHECK (file_size >= 0),
  file_type   TEXT        NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_admin_documents_uploader_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_admin_documents_uploader_created_at ON admin_documents (uploaded_by, created_at DESC);`,
	},
	// keep last
	{
		Name: "create_table_schema_migrations",
		SQL: `CREATE TABLE IF NOT EXISTS schema_migrations (
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// EnsureMigrated checks if the sentinel table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass($1) IS NOT NULL"
	if err := db.QueryRowContext(ctx, query, sentinelTable).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
