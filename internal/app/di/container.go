package di

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"messagely/internal/app/router"
	"messagely/internal/config"
	authhandler "messagely/internal/feature/auth/transport/handler"
	authusecase "messagely/internal/feature/auth/usecase"
	messageadapters "messagely/internal/feature/messages/adapters"
	messagehandler "messagely/internal/feature/messages/transport/handler"
	messageusecase "messagely/internal/feature/messages/usecase"
	userhandler "messagely/internal/feature/users/transport/handler"
	userusecase "messagely/internal/feature/users/usecase"
	"messagely/internal/platform/http/handler"
	"messagely/internal/platform/http/middleware"
	jwtmw "messagely/internal/platform/jwt"
	"messagely/internal/platform/password"
	"messagely/internal/shared/ratelimiter"
)

var _ middleware.Limiter = (*ratelimiter.RateLimiter)(nil)

// Infra holds the connections opened by main. Redis and Events may be nil.
type Infra struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Events messageusecase.EventPublisher
	Logger *slog.Logger
}

// App is the assembled HTTP application plus the parts main maintains in the background.
type App struct {
	Router      *gin.Engine
	Revocations authusecase.RevocationStore
	AuthLimiter *ratelimiter.RateLimiter
}

// BuildApp wires repositories, use cases and handlers into a router.
func BuildApp(cfg *config.Config, infra Infra) (*App, error) {
	sqlDB, err := infra.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Repository
	userRepo := NewUserRepository(infra.Redis, infra.DB, cfg.Redis.UserCacheTTL)
	messageRepo := messageadapters.NewMessageGorm(infra.DB)
	revocations := NewRevocationStore(infra.Redis, infra.DB)

	// Platform services
	hasher := password.NewBcryptHasher(cfg.Bcrypt.Cost)
	tokens := jwtmw.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	authLimiter := ratelimiter.NewRateLimiter(cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens, revocations)
	usersUC := userusecase.NewUsersUsecase(userRepo, messageRepo)
	messagesUC := messageusecase.NewMessagesUsecase(messageRepo, userRepo, infra.Events)

	// Handler
	r := router.NewRouter(infra.Logger, router.Handlers{
		Health:       handler.NewHealthHandler(sqlDB),
		Auth:         authhandler.NewAuthHandler(authUC),
		Users:        userhandler.NewUserHandler(usersUC),
		Messages:     messagehandler.NewMessageHandler(messagesUC),
		Authenticate: jwtmw.AuthRequired(tokens, revocations),
		AuthLimiter:  authLimiter,
	})

	return &App{Router: r, Revocations: revocations, AuthLimiter: authLimiter}, nil
}
