// Package handler はmessagesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messagely/internal/feature/messages/domain/entity"
	"messagely/internal/feature/messages/transport/http/dto"
	"messagely/internal/platform/http/respond"
	"messagely/internal/shared/apperr"
)

// MessagesUsecase はメッセージ操作のユースケースを定義します。
type MessagesUsecase interface {
	Get(ctx context.Context, id int64) (*entity.Message, error)
	Create(ctx context.Context, toUsername, body string) (*entity.Message, error)
	MarkRead(ctx context.Context, id int64) (*entity.Message, error)
}

// MessageHandler はメッセージ関連のHTTPリクエストを処理します。
type MessageHandler struct {
	messages MessagesUsecase
}

// NewMessageHandler はMessageHandlerの新しいインスタンスを生成します。
func NewMessageHandler(messages MessagesUsecase) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// parseID reads the :id path parameter. Only positive integers are valid ids.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidArg("message id must be a positive integer")
	}
	return id, nil
}

// Get は GET /messages/:id を処理します。
// - idが数値でない場合は400
// - メッセージが存在しない場合は404、当事者でない場合は403
func (h *MessageHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	msg, err := h.messages.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageDetail(msg))
}

// Create は POST /messages を処理します。送信者は認証済みのユーザーです。
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create message validation failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, apperr.InvalidArg("to_username and body are required"))
		return
	}
	msg, err := h.messages.Create(c.Request.Context(), req.ToUsername, req.Body)
	if err != nil {
		respond.Error(c, err)
		return
	}
	slog.Info("message sent", "message_id", msg.ID, "from", msg.FromUsername, "to", msg.ToUsername)
	c.JSON(http.StatusCreated, dto.NewMessageCreated(msg))
}

// MarkRead は POST /messages/:id/read を処理します。受信者のみ実行できます。
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	msg, err := h.messages.MarkRead(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRead{ID: msg.ID, ReadAt: msg.ReadAt})
}
