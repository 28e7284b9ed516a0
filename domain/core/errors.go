package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound = errors.New("resource not found")

	// Lifecycle errors
	ErrAlreadyVoted  = errors.New("user already voted on this claim")
	ErrEmailTaken    = errors.New("email already registered")
	ErrVotingClosed  = errors.New("voting allowed only on escalated_manual claims")
	ErrAlreadyJudged = errors.New("claim already judged")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyVoted) || errors.Is(err, ErrEmailTaken)
}

func IsPolicyError(err error) bool {
	return errors.Is(err, ErrVotingClosed) || errors.Is(err, ErrAlreadyJudged)
}
