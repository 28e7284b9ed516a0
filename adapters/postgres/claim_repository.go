package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
	"github.com/vishwajithsandaru/govhack-2025-factshield/ports"
)

// ClaimRepositoryImpl implements ClaimRepository for PostgreSQL
type ClaimRepositoryImpl struct {
	db *sqlx.DB
}

// NewClaimRepository creates a new PostgreSQL claim repository
func NewClaimRepository(db *sqlx.DB) ports.ClaimRepository {
	return &ClaimRepositoryImpl{db: db}
}

// Create stores a new claim with status pending and zero counters
func (r *ClaimRepositoryImpl) Create(ctx context.Context, claim *models.Claim) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO claims (id, claim_text, status, explanation, truth_count, false_count, created_at, updated_at)
		VALUES (:id, :claim_text, :status, :explanation, :truth_count, :false_count, NOW(), NOW())
	`, claim)
	return err
}

// Get retrieves a claim by ID
func (r *ClaimRepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.GetContext(ctx, &claim, `
		SELECT id, claim_text, status, explanation, truth_count, false_count, created_at, updated_at
		FROM claims
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("claim", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// List returns claims, optionally filtered by status, ordered by id
func (r *ClaimRepositoryImpl) List(ctx context.Context, status *models.ClaimStatus) ([]*models.Claim, error) {
	claims := []*models.Claim{}
	if status != nil {
		err := r.db.SelectContext(ctx, &claims, `
			SELECT id, claim_text, status, explanation, truth_count, false_count, created_at, updated_at
			FROM claims
			WHERE status = $1
			ORDER BY id
		`, *status)
		return claims, err
	}

	err := r.db.SelectContext(ctx, &claims, `
		SELECT id, claim_text, status, explanation, truth_count, false_count, created_at, updated_at
		FROM claims
		ORDER BY id
	`)
	return claims, err
}

// SetJudgment records the post-judgment status and explanation
func (r *ClaimRepositoryImpl) SetJudgment(ctx context.Context, id uuid.UUID, status models.ClaimStatus, explanation string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE claims
		SET status = $2, explanation = $3, updated_at = NOW()
		WHERE id = $1
	`, id, status, explanation)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return core.NewNotFoundError("claim", id.String())
	}
	return nil
}

// ListEscalatedExcludingVoter returns escalated claims the user has not
// voted on, ordered by claim id. The anti-join against the vote ledger
// is the reviewer-queue contract: a fact-checker only sees unvoted items.
func (r *ClaimRepositoryImpl) ListEscalatedExcludingVoter(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Claim, error) {
	claims := []*models.Claim{}
	err := r.db.SelectContext(ctx, &claims, `
		SELECT c.id, c.claim_text, c.status, c.explanation, c.truth_count, c.false_count, c.created_at, c.updated_at
		FROM claims c
		WHERE c.status = $1
		  AND NOT EXISTS (
			SELECT 1 FROM fact_checker_votes v
			WHERE v.claim_id = c.id AND v.user_id = $2
		  )
		ORDER BY c.id
		LIMIT $3 OFFSET $4
	`, models.StatusEscalated, userID, limit, offset)
	return claims, err
}
