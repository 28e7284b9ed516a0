package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

// UserRepository defines the interface for fact-checker user lookups
type UserRepository interface {
	// GetByID retrieves a user by ID; an error wrapping core.ErrNotFound
	// if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.FactCheckerUser, error)

	// GetByEmail retrieves a user by email (unique); an error wrapping
	// core.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.FactCheckerUser, error)

	// Create inserts a new user; email uniqueness is enforced by the store
	Create(ctx context.Context, user *models.FactCheckerUser) error
}
