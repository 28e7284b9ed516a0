package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

// VoteRepository defines the interface for the append-only vote ledger
type VoteRepository interface {
	// Cast records a vote and increments the matching counter on the
	// claim as one atomic unit. The claim must be escalated_manual at
	// the time of the attempt (core.ErrVotingClosed otherwise) and the
	// (claim, user) pair must not have voted before (core.ErrAlreadyVoted
	// on a duplicate - the existing vote is never overwritten). The
	// uniqueness check is enforced by the store itself, so two racing
	// votes from the same user cannot both be accepted.
	Cast(ctx context.Context, claimID, userID uuid.UUID, value models.VoteValue) (*models.VoteReceipt, error)

	// HasVoted reports whether userID has a ledger entry for claimID
	HasVoted(ctx context.Context, claimID, userID uuid.UUID) (bool, error)

	// CountForClaim returns the ledger cardinality for a claim
	CountForClaim(ctx context.Context, claimID uuid.UUID) (int, error)
}
