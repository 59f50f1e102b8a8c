package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authhandler "messagely/internal/feature/auth/transport/handler"
	messagehandler "messagely/internal/feature/messages/transport/handler"
	userhandler "messagely/internal/feature/users/transport/handler"
	"messagely/internal/platform/http/handler"
	"messagely/internal/platform/http/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *authhandler.AuthHandler
	Users    *userhandler.UserHandler
	Messages *messagehandler.MessageHandler

	// Authenticate is the session authenticator for protected routes.
	Authenticate gin.HandlerFunc
	// AuthLimiter throttles /auth requests per client IP.
	AuthLimiter middleware.Limiter
}

func NewRouter(logger *slog.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimit(h.AuthLimiter))
	{
		// 新規ユーザー登録
		authGroup.POST("/register", h.Auth.Register)
		// ログイン（JWT 発行）
		authGroup.POST("/login", h.Auth.Login)
		// ログアウト（トークン失効）
		authGroup.POST("/logout", h.Authenticate, h.Auth.Logout)
	}

	// 認証必須のルート
	protected := r.Group("/")
	protected.Use(h.Authenticate)
	{
		protected.GET("/users", h.Users.List)
		protected.GET("/users/:username", h.Users.Get)
		protected.GET("/users/:username/to", h.Users.MessagesTo)
		protected.GET("/users/:username/from", h.Users.MessagesFrom)

		protected.GET("/messages/:id", h.Messages.Get)
		protected.POST("/messages", h.Messages.Create)
		protected.POST("/messages/:id/read", h.Messages.MarkRead)
	}

	return r
}
