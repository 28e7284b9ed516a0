package core

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID creates a new unique identifier. UUID v7 is preferred for
// time-ordered, sortable IDs with a v4 fallback for compatibility.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id
}

// ParseID parses a string into a UUID, rejecting empty input with a
// resource-specific message.
func ParseID(resource, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("%s ID cannot be empty", resource)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID %q: %w", resource, s, err)
	}
	return id, nil
}
