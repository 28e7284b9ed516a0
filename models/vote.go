package models

import (
	"time"

	"github.com/google/uuid"
)

// VoteValue is a fact-checker's judgment on an escalated claim
type VoteValue string

const (
	VoteTrue  VoteValue = "true"
	VoteFalse VoteValue = "false"
)

// ParseVoteValue validates and normalizes a raw vote string
func ParseVoteValue(raw string) (VoteValue, bool) {
	switch VoteValue(raw) {
	case VoteTrue:
		return VoteTrue, true
	case VoteFalse:
		return VoteFalse, true
	}
	return "", false
}

// Vote is one immutable ledger entry. The pair (ClaimID, UserID) is
// unique: a user gets exactly one vote per claim, ever.
type Vote struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ClaimID   uuid.UUID `json:"claim_id" db:"claim_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Value     VoteValue `json:"vote" db:"vote"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// VoteReceipt is returned after a vote is accepted; it carries the
// claim's updated tallies.
type VoteReceipt struct {
	ClaimID    uuid.UUID `json:"claim_id"`
	UserID     uuid.UUID `json:"user_id"`
	Vote       VoteValue `json:"vote"`
	TruthCount int       `json:"truth_count"`
	FalseCount int       `json:"false_count"`
}
