package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

// ClaimRepository defines the interface for durable claim storage
type ClaimRepository interface {
	// Create stores a new claim with status pending and zero counters
	Create(ctx context.Context, claim *models.Claim) error

	// Get retrieves a claim by ID; an error wrapping core.ErrNotFound
	// if absent.
	Get(ctx context.Context, id uuid.UUID) (*models.Claim, error)

	// List returns claims, optionally filtered by status. Ordering is
	// stable by claim id.
	List(ctx context.Context, status *models.ClaimStatus) ([]*models.Claim, error)

	// SetJudgment records the outcome of automated judgment: the
	// post-transition status and the oracle's explanation.
	SetJudgment(ctx context.Context, id uuid.UUID, status models.ClaimStatus, explanation string) error

	// ListEscalatedExcludingVoter returns escalated_manual claims with no
	// vote by userID, ordered by claim id, paginated by offset/limit.
	//
	// Pagination has no snapshot isolation: concurrent writes between
	// pages may skip or duplicate rows.
	ListEscalatedExcludingVoter(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Claim, error)
}
