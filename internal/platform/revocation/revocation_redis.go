// Package revocation provides the Redis-backed token deny-list.
package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"messagely/internal/feature/auth/domain/entity"
	"messagely/internal/feature/auth/usecase"
)

// RevocationRedis implements usecase.RevocationStore using Redis.
// Each revoked token id is a key that expires together with the token.
type RevocationRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ usecase.RevocationStore = (*RevocationRedis)(nil)

// NewRevocationRedis creates a new RevocationRedis instance.
func NewRevocationRedis(client *redis.Client, prefix string) *RevocationRedis {
	return &RevocationRedis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// tokenKey returns the Redis key for a revoked token id.
func (r *RevocationRedis) tokenKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Revoke stores the token id until the token's own expiry.
// A token that has already expired is rejected by verification, so nothing is stored.
func (r *RevocationRedis) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	ttl := token.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.tokenKey(token.ID), token.Username, ttl).Err()
}

// IsRevoked reports whether the token id is on the deny-list.
func (r *RevocationRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.tokenKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpired removes expired entries (handled by Redis TTL).
func (r *RevocationRedis) DeleteExpired(ctx context.Context) (int64, error) {
	// Redis handles expiration automatically via TTL
	return 0, nil
}
