// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	authentity "messagely/internal/feature/auth/domain/entity"
	msgentity "messagely/internal/feature/messages/domain/entity"
	"messagely/internal/feature/users/transport/http/dto"
	"messagely/internal/platform/http/respond"
)

// UsersUsecase はユーザー操作のユースケースを定義します。
type UsersUsecase interface {
	List(ctx context.Context) ([]authentity.User, error)
	Get(ctx context.Context, username string) (*authentity.User, error)
	MessagesTo(ctx context.Context, username string) ([]*msgentity.Message, error)
	MessagesFrom(ctx context.Context, username string) ([]*msgentity.Message, error)
}

// UserHandler はユーザー関連のHTTPリクエストを処理します。
type UserHandler struct {
	users UsersUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UsersUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List は GET /users を処理します。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserSummaries(users))
}

// Get は GET /users/:username を処理します。本人のみ閲覧できます。
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserDetail(user))
}

// MessagesTo は GET /users/:username/to を処理します。
func (h *UserHandler) MessagesTo(c *gin.Context) {
	messages, err := h.users.MessagesTo(c.Request.Context(), c.Param("username"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReceivedMessages(messages))
}

// MessagesFrom は GET /users/:username/from を処理します。
func (h *UserHandler) MessagesFrom(c *gin.Context) {
	messages, err := h.users.MessagesFrom(c.Request.Context(), c.Param("username"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSentMessages(messages))
}
