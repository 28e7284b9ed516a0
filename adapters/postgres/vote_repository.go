package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
	"github.com/vishwajithsandaru/govhack-2025-factshield/ports"
)

// pqUniqueViolation is the PostgreSQL error code for unique_violation
const pqUniqueViolation = "23505"

// VoteRepositoryImpl implements VoteRepository for PostgreSQL
type VoteRepositoryImpl struct {
	db *sqlx.DB
}

// NewVoteRepository creates a new PostgreSQL vote repository
func NewVoteRepository(db *sqlx.DB) ports.VoteRepository {
	return &VoteRepositoryImpl{db: db}
}

// Cast inserts the vote and bumps the claim counter in one transaction.
// The claim row is locked first so the status check and the counter
// update see a consistent state; duplicate votes are rejected by the
// UNIQUE(claim_id, user_id) constraint rather than a separate read, so
// two racing votes from the same user cannot both pass.
func (r *VoteRepositoryImpl) Cast(ctx context.Context, claimID, userID uuid.UUID, value models.VoteValue) (*models.VoteReceipt, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status models.ClaimStatus
	err = tx.GetContext(ctx, &status, `
		SELECT status FROM claims WHERE id = $1 FOR UPDATE
	`, claimID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("claim", claimID.String())
	}
	if err != nil {
		return nil, err
	}

	if status != models.StatusEscalated {
		return nil, core.ErrVotingClosed
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO fact_checker_votes (id, claim_id, user_id, vote, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, core.NewID(), claimID, userID, value)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, core.ErrAlreadyVoted
		}
		return nil, err
	}

	counter := "false_count"
	if value == models.VoteTrue {
		counter = "truth_count"
	}

	receipt := models.VoteReceipt{ClaimID: claimID, UserID: userID, Vote: value}
	err = tx.QueryRowxContext(ctx, `
		UPDATE claims
		SET `+counter+` = `+counter+` + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING truth_count, false_count
	`, claimID).Scan(&receipt.TruthCount, &receipt.FalseCount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// HasVoted reports whether the user has a ledger entry for the claim
func (r *VoteRepositoryImpl) HasVoted(ctx context.Context, claimID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM fact_checker_votes WHERE claim_id = $1 AND user_id = $2
		)
	`, claimID, userID)
	return exists, err
}

// CountForClaim returns the number of ledger entries for the claim
func (r *VoteRepositoryImpl) CountForClaim(ctx context.Context, claimID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM fact_checker_votes WHERE claim_id = $1
	`, claimID)
	return count, err
}
