package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"messagely/internal/feature/messages/domain/entity"
	"messagely/internal/feature/messages/usecase"
)

// messageGorm はMessageRepositoryインターフェースのGORM実装です。
type messageGorm struct {
	db *gorm.DB
}

// messageGormがMessageRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MessageRepository = (*messageGorm)(nil)

// NewMessageGorm は指定されたgorm.DB接続でmessageGormの新しいインスタンスを生成します。
func NewMessageGorm(db *gorm.DB) *messageGorm {
	return &messageGorm{db: db}
}

// selectProfile limits preloaded users to their public columns.
func selectProfile(db *gorm.DB) *gorm.DB {
	return db.Select("username", "first_name", "last_name", "phone")
}

// Create inserts the message and sets its generated ID.
func (r *messageGorm) Create(ctx context.Context, m *entity.Message) error {
	model := newMessageModel(m)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}
	m.ID = model.ID
	return nil
}

// FindByID returns the message with both correspondent profiles.
// It returns usecase.ErrMessageNotFound when no row has that id.
func (r *messageGorm) FindByID(ctx context.Context, id int64) (*entity.Message, error) {
	var model MessageModel
	err := r.db.WithContext(ctx).
		Preload("FromUser", selectProfile).
		Preload("ToUser", selectProfile).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMessageNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// ListTo returns the messages received by username, oldest first, with sender profiles.
func (r *messageGorm) ListTo(ctx context.Context, username string) ([]*entity.Message, error) {
	return r.list(ctx, "to_username = ?", "FromUser", username)
}

// ListFrom returns the messages sent by username, oldest first, with recipient profiles.
func (r *messageGorm) ListFrom(ctx context.Context, username string) ([]*entity.Message, error) {
	return r.list(ctx, "from_username = ?", "ToUser", username)
}

func (r *messageGorm) list(ctx context.Context, where, preload, username string) ([]*entity.Message, error) {
	var models []MessageModel
	err := r.db.WithContext(ctx).
		Preload(preload, selectProfile).
		Where(where, username).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	messages := make([]*entity.Message, 0, len(models))
	for i := range models {
		messages = append(messages, models[i].ToEntity())
	}
	return messages, nil
}

// MarkRead sets read_at only if it is still NULL and returns the stored read_at.
// A message that was already read keeps its original timestamp.
func (r *messageGorm) MarkRead(ctx context.Context, id int64, at time.Time) (time.Time, error) {
	res := r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at)
	if res.Error != nil {
		return time.Time{}, res.Error
	}
	if res.RowsAffected > 0 {
		return at, nil
	}

	// 既読済み、または存在しない
	var model MessageModel
	if err := r.db.WithContext(ctx).Select("id", "read_at").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, usecase.ErrMessageNotFound
		}
		return time.Time{}, err
	}
	if model.ReadAt == nil {
		return time.Time{}, fmt.Errorf("message %d: read_at not set after update", id)
	}
	return *model.ReadAt, nil
}
