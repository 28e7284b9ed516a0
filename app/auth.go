package app

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/auth"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
	"github.com/vishwajithsandaru/govhack-2025-factshield/ports"
)

// SignInResult carries the issued token and the user it belongs to
type SignInResult struct {
	AccessToken string          `json:"access_token"`
	User        models.UserView `json:"user"`
}

// AuthService is the access layer gate: it verifies credentials,
// issues bearer tokens, and resolves tokens back to users for
// privileged operations.
type AuthService struct {
	users  ports.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService creates the access layer
func NewAuthService(users ports.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// SignIn verifies email+password and returns a signed bearer token.
// Unknown email and wrong password produce the same error; callers
// cannot probe which emails exist.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.ValidationError("email and password required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.Unauthorized("invalid credentials")
		}
		return nil, errors.Wrap(err, "user lookup failed")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "token issuance failed")
	}

	return &SignInResult{AccessToken: token, User: user.View()}, nil
}

// Authenticate resolves a bearer token to the user it was issued to.
// Pure function of (token, user store): verification failure, expiry,
// and a deleted user all collapse to an UNAUTHORIZED error.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.FactCheckerUser, error) {
	userID, _, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.Unauthorized("user not found")
		}
		return nil, errors.Wrap(err, "user lookup failed")
	}
	return user, nil
}

// HashPassword produces a bcrypt hash for seeding and admin tooling
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "password hashing failed")
	}
	return string(hash), nil
}
