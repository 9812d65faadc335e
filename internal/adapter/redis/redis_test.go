package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestQueueRepo_FIFO(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewQueueRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Push(ctx, "/inbox/a.pdf"))
	require.NoError(t, repo.Push(ctx, "/inbox/b.pdf"))

	size, err := repo.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	first, err := repo.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/inbox/a.pdf", first)

	second, err := repo.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/inbox/b.pdf", second)

	_, err = repo.Pop(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepo_SaveFindDelete(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewSessionRepo(client)
	ctx := context.Background()

	s := &entity.Session{Token: "tok-1", UserID: 7, Username: "admin", Role: entity.RoleAdmin}
	require.NoError(t, repo.Save(ctx, s, time.Hour))

	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "tok-1", "raw token must not be stored in the key")
	}

	got, err := repo.Find(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	require.NoError(t, repo.Delete(ctx, "tok-1"))
	_, err = repo.Find(ctx, "tok-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepo_Expires(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewSessionRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Session{Token: "tok-2"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Find(ctx, "tok-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSearchCacheRepo(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewSearchCacheRepo(client)
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, found)

	results := []entity.SearchResult{{Type: entity.SearchTypeCompany, ID: 1, Title: "Acme"}}
	require.NoError(t, repo.Set(ctx, "acme", results, 30*time.Second))

	got, found, err := repo.Get(ctx, "  ACME ")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, results, got)

	mr.FastForward(time.Minute)
	_, found, err = repo.Get(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, found)
}
