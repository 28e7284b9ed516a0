package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createClaimsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create claims table")
	}

	if err := r.createFactCheckerUsersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create fact_checker_users table")
	}

	if err := r.createFactCheckerVotesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create fact_checker_votes table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createClaimsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS claims (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			claim_text TEXT NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'pending',
			explanation TEXT,
			truth_count INTEGER NOT NULL DEFAULT 0,
			false_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createFactCheckerUsersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS fact_checker_users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			organization VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(50) NOT NULL DEFAULT 'fact_checker',
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createFactCheckerVotesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS fact_checker_votes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			claim_id UUID NOT NULL REFERENCES claims(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES fact_checker_users(id) ON DELETE CASCADE,
			vote VARCHAR(8) NOT NULL CHECK (vote IN ('true', 'false')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (claim_id, user_id)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_claims_status ON claims(status)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_claim_id ON fact_checker_votes(claim_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_user_id ON fact_checker_votes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON fact_checker_users(email)`,
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
