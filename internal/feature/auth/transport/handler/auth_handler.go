// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"messagely/internal/feature/auth/transport/http/dto"
	"messagely/internal/feature/auth/usecase"
	"messagely/internal/platform/http/respond"
	jwtmw "messagely/internal/platform/jwt"
	"messagely/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、JWTトークンを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (string, error)
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, username, password string) (string, error)
	// Logout は提示されたトークンを失効させます。
	Logout(ctx context.Context, tokenID, username string, expiresAt time.Time) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー・ユーザー名重複時は400を返却
// - 成功時はJWTトークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, respond.ErrorResponse{Error: "registration failed"})
		return
	}
	token, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		switch apperr.CodeOf(err) {
		case apperr.CodeInvalidArgument, apperr.CodeAlreadyExists:
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("register failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, respond.ErrorResponse{Error: "registration failed"})
		default:
			respond.Error(c, err)
		}
		return
	}
	slog.Info("user registration successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー・認証失敗時は400を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, respond.ErrorResponse{Error: "invalid username or password"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if apperr.CodeOf(err) != apperr.CodeUnauthenticated {
			respond.Error(c, err)
			return
		}
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, respond.ErrorResponse{Error: "invalid username or password"})
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Logout revokes the bearer token of the current request and returns 204.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("authentication required"))
		return
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.auth.Logout(c.Request.Context(), claims.ID, claims.Username, expiresAt); err != nil {
		respond.Error(c, err)
		return
	}
	slog.Info("user logout successful", "username", claims.Username, "remote_addr", c.ClientIP())
	c.Status(http.StatusNoContent)
}
