package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*authUseCase, *fakeUserRepo, *fakeSessions) {
	users, sessions := newFakeUserRepo(), newFakeSessions()
	uc := NewAuthUseCase(users, sessions, time.Hour, zap.NewNop()).(*authUseCase)
	uc.cost = bcrypt.MinCost
	return uc, users, sessions
}

func TestAuth_SignupApproveLogin(t *testing.T) {
	ctx := context.Background()
	uc, users, sessions := newAuthFixture()
	uc.newToken = func() string { return "tok-1" }

	require.NoError(t, uc.RequestSignup(ctx, "Ada", " Ada@Example.com ", "correct horse"))

	pending, err := uc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ada@example.com", pending[0].Email)
	assert.NotEqual(t, "correct horse", pending[0].PasswordHash)

	_, err = uc.Login(ctx, "ada@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "pending users cannot log in")

	u, err := uc.Approve(ctx, pending[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.Len(t, users.pending, 0)

	_, err = uc.Login(ctx, "ada@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	s, err := uc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, "Ada", s.Username)
	assert.Equal(t, time.Hour, sessions.ttls["tok-1"])

	got, err := uc.Authenticate(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)

	require.NoError(t, uc.Logout(ctx, "tok-1"))
	_, err = uc.Authenticate(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuth_SignupValidation(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	assert.ErrorIs(t, uc.RequestSignup(ctx, "", "a@b.co", "longenough"), ErrInvalidInput)
	assert.ErrorIs(t, uc.RequestSignup(ctx, "A", "not-an-email", "longenough"), ErrInvalidInput)
	assert.ErrorIs(t, uc.RequestSignup(ctx, "A", "a@b.co", "short"), ErrInvalidInput)

	require.NoError(t, uc.RequestSignup(ctx, "A", "a@b.co", "longenough"))
	assert.ErrorIs(t, uc.RequestSignup(ctx, "A", "a@b.co", "longenough"), repository.ErrConflict)
}

func TestAuth_ApproveRejectMissing(t *testing.T) {
	uc, _, _ := newAuthFixture()
	_, err := uc.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, uc.Reject(context.Background(), 42), repository.ErrNotFound)
}

func TestAuth_ExpiredSession(t *testing.T) {
	uc, _, sessions := newAuthFixture()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	require.NoError(t, sessions.Save(context.Background(), &entity.Session{Token: "old", ExpiresAt: now.Add(-time.Minute)}, time.Hour))

	_, err := uc.Authenticate(context.Background(), "old")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = uc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuth_EnsureAdminIdempotent(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "root@example.com", "supersecret"))
	require.NoError(t, uc.EnsureAdmin(ctx, "root@example.com", "other"))
	assert.Len(t, users.users, 1)

	s, err := uc.Login(ctx, "root@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, s.Role)
}
