package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwajithsandaru/govhack-2025-factshield/domain/core"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/auth"
	apperrors "github.com/vishwajithsandaru/govhack-2025-factshield/internal/errors"
	"github.com/vishwajithsandaru/govhack-2025-factshield/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *models.FactCheckerUser) {
	t.Helper()
	repo := newFakeUserRepo()
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	user := &models.FactCheckerUser{
		ID:           core.NewID(),
		Email:        "alice@example.com",
		Name:         "Alice",
		Role:         models.RoleFactChecker,
		PasswordHash: hash,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)
	return NewAuthService(repo, tokens), user
}

func TestSignIn_HappyPath(t *testing.T) {
	svc, user := newAuthFixture(t)

	result, err := svc.SignIn(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, user.Email, result.User.Email)

	// The issued token resolves back to the same user.
	resolved, err := svc.Authenticate(context.Background(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestSignIn_NormalizesEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.SignIn(context.Background(), "  ALICE@Example.COM ", "hunter2")
	assert.NoError(t, err)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	result, err := svc.SignIn(context.Background(), "alice@example.com", "wrong")
	assert.Nil(t, result)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.GetCode(err))
}

func TestSignIn_UnknownEmailSameError(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, wrongPass := svc.SignIn(context.Background(), "alice@example.com", "wrong")
	_, noUser := svc.SignIn(context.Background(), "nobody@example.com", "hunter2")

	// Identical messages: callers cannot enumerate registered emails.
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestSignIn_MissingFields(t *testing.T) {
	svc, _ := newAuthFixture(t)

	for _, tc := range []struct{ email, password string }{
		{"", "hunter2"},
		{"alice@example.com", ""},
		{"", ""},
	} {
		_, err := svc.SignIn(context.Background(), tc.email, tc.password)
		assert.Equal(t, apperrors.CodeValidationError, apperrors.GetCode(err))
	}
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	svc, _ := newAuthFixture(t)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := svc.Authenticate(context.Background(), token)
		assert.Equal(t, apperrors.CodeUnauthorized, apperrors.GetCode(err), "token %q", token)
	}
}

func TestAuthenticate_RejectsExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	user := &models.FactCheckerUser{
		ID:           core.NewID(),
		Email:        "bob@example.com",
		Name:         "Bob",
		Role:         models.RoleSeniorFactChecker,
		PasswordHash: hash,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	expired := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := expired.Issue(user)
	require.NoError(t, err)

	svc := NewAuthService(repo, auth.NewTokenManager("test-secret", 2*time.Hour))
	_, err = svc.Authenticate(context.Background(), token)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.GetCode(err))
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	svc, user := newAuthFixture(t)

	result, err := svc.SignIn(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)

	// Token remains cryptographically valid but the user is gone.
	freshRepo := newFakeUserRepo()
	svc.users = freshRepo
	_ = user

	_, err = svc.Authenticate(context.Background(), result.AccessToken)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.GetCode(err))
}
