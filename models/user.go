package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a fact-checker's privilege tier
type Role string

const (
	RoleFactChecker       Role = "fact_checker"
	RoleSeniorFactChecker Role = "senior_fact_checker"
)

// FactCheckerUser represents an authenticated human reviewer.
// Users are created by seeding or an admin process; this core never
// mutates or deletes them.
type FactCheckerUser struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Organization string    `json:"org" db:"organization"`
	Role         Role      `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserView is the shape returned from signin (no password hash)
type UserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Org   string    `json:"org"`
	Role  string    `json:"role"`
}

// View projects the user into its public shape
func (u *FactCheckerUser) View() UserView {
	return UserView{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Org:   u.Organization,
		Role:  string(u.Role),
	}
}
