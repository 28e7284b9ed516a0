package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
	"github.com/vishwajithsandaru/govhack-2025-factshield/ports"
)

// UserRepositoryImpl implements UserRepository for PostgreSQL
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// GetByID retrieves a user by their ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.FactCheckerUser, error) {
	var user models.FactCheckerUser
	err := r.db.GetContext(ctx, &user, `
		SELECT id, name, email, organization, role, password_hash, created_at
		FROM fact_checker_users
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("user", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email. Emails are stored lowercase.
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.FactCheckerUser, error) {
	var user models.FactCheckerUser
	err := r.db.GetContext(ctx, &user, `
		SELECT id, name, email, organization, role, password_hash, created_at
		FROM fact_checker_users
		WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("user", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user; the email unique constraint rejects duplicates
func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.FactCheckerUser) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO fact_checker_users (id, name, email, organization, role, password_hash, created_at)
		VALUES (:id, :name, :email, :organization, :role, :password_hash, NOW())
	`, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return core.ErrEmailTaken
		}
		return err
	}
	return nil
}
