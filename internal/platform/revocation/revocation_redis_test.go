package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messagely/internal/feature/auth/domain/entity"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewRevocationRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRevocationRedis(client, "revoked")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "revoked", repo.prefix)
}

func TestRevocationRedis_Revoke(t *testing.T) {
	t.Parallel()

	t.Run("stores the id with the remaining lifetime", func(t *testing.T) {
		t.Parallel()
		client, mr := setupTestRedis(t)
		repo := NewRevocationRedis(client, "revoked")
		now := time.Now()
		repo.now = func() time.Time { return now }

		err := repo.Revoke(context.Background(), &entity.RevokedToken{
			ID: "jti-1", Username: "alice", RevokedAt: now, ExpiresAt: now.Add(30 * time.Minute),
		})
		require.NoError(t, err)

		val, err := mr.Get("revoked:jti-1")
		require.NoError(t, err)
		assert.Equal(t, "alice", val)
		assert.Equal(t, 30*time.Minute, mr.TTL("revoked:jti-1"))
	})

	t.Run("already expired token is not stored", func(t *testing.T) {
		t.Parallel()
		client, mr := setupTestRedis(t)
		repo := NewRevocationRedis(client, "revoked")
		now := time.Now()
		repo.now = func() time.Time { return now }

		err := repo.Revoke(context.Background(), &entity.RevokedToken{
			ID: "jti-old", Username: "alice", RevokedAt: now, ExpiresAt: now.Add(-time.Minute),
		})

		require.NoError(t, err)
		assert.False(t, mr.Exists("revoked:jti-old"))
	})
}

func TestRevocationRedis_IsRevoked(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRevocationRedis(client, "revoked")
	ctx := context.Background()

	require.NoError(t, repo.Revoke(ctx, &entity.RevokedToken{
		ID: "jti-1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour),
	}))

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	// The entry disappears with the token's lifetime
	mr.FastForward(2 * time.Hour)
	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationRedis_ConnectionError(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRevocationRedis(client, "revoked")
	mr.Close()

	_, err := repo.IsRevoked(context.Background(), "jti-1")

	assert.Error(t, err)
}

func TestRevocationRedis_DeleteExpired(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewRevocationRedis(client, "revoked")

	n, err := repo.DeleteExpired(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, n)
}
