// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "messagely/internal/feature/auth/adapters"
	"messagely/internal/feature/auth/usecase"
	"messagely/internal/platform/cache"
	"messagely/internal/platform/revocation"
)

// NewRevocationStore creates a RevocationStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewRevocationStore(rdb *redis.Client, db *gorm.DB) usecase.RevocationStore {
	if rdb != nil {
		return revocation.NewRevocationRedis(rdb, "revoked")
	}
	return authadapters.NewRevocationGorm(db)
}

// NewUserRepository returns the GORM user repository, wrapped with the Redis
// directory cache when Redis is available.
func NewUserRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) cache.UserRepository {
	repo := authadapters.NewUserGorm(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingUserRepository(rdb, ttl, repo, "users")
}
