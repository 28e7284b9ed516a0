package models

import (
	"time"

	"github.com/google/uuid"
)

// ClaimStatus represents the lifecycle state of a claim
type ClaimStatus string

const (
	// StatusPending is the only legal initial status; it means automated
	// judgment has not completed for the claim yet.
	StatusPending ClaimStatus = "pending"
	StatusTrue    ClaimStatus = "true"
	StatusFalse   ClaimStatus = "false"
	// StatusEscalated marks claims the oracle could not decide; these are
	// the only claims that accept fact-checker votes.
	StatusEscalated ClaimStatus = "escalated_manual"
	// StatusUnknown is the terminal fallback for unrecognized oracle output.
	StatusUnknown ClaimStatus = "unknown"
)

// Valid reports whether s is one of the known claim statuses
func (s ClaimStatus) Valid() bool {
	switch s {
	case StatusPending, StatusTrue, StatusFalse, StatusEscalated, StatusUnknown:
		return true
	}
	return false
}

// Terminal reports whether the status accepts no further input in this core.
// escalated_manual accepts votes; pending accepts judgment.
func (s ClaimStatus) Terminal() bool {
	switch s {
	case StatusTrue, StatusFalse, StatusUnknown:
		return true
	}
	return false
}

// Claim represents a factual statement submitted for verification
type Claim struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Text        string      `json:"claim" db:"claim_text"`
	Status      ClaimStatus `json:"status" db:"status"`
	Explanation *string     `json:"explanation" db:"explanation"`
	TruthCount  int         `json:"truth_count" db:"truth_count"`
	FalseCount  int         `json:"false_count" db:"false_count"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// ClaimView is the public read shape returned by every claim endpoint
type ClaimView struct {
	ID          uuid.UUID `json:"id"`
	Claim       string    `json:"claim"`
	Status      string    `json:"status"`
	Explanation *string   `json:"explanation"`
	TruthCount  int       `json:"truth_count"`
	FalseCount  int       `json:"false_count"`
}

// View projects the claim into its public read shape
func (c *Claim) View() ClaimView {
	return ClaimView{
		ID:          c.ID,
		Claim:       c.Text,
		Status:      string(c.Status),
		Explanation: c.Explanation,
		TruthCount:  c.TruthCount,
		FalseCount:  c.FalseCount,
	}
}
