package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"messagely/internal/feature/auth/domain/entity"
	"messagely/internal/feature/auth/usecase"
)

// revocationGorm stores revoked token ids in the revoked_tokens table.
// It is used when Redis is not configured.
type revocationGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.RevocationStore = (*revocationGorm)(nil)

// NewRevocationGorm creates a database-backed revocation store.
func NewRevocationGorm(db *gorm.DB) *revocationGorm {
	return &revocationGorm{db: db, now: time.Now}
}

// Revoke records the token id. Revoking the same id twice is not an error.
func (r *revocationGorm) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(token).Error
}

// IsRevoked reports whether tokenID has an unexpired deny-list entry.
func (r *revocationGorm) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	// 毎リクエスト呼ばれるため、未検出をエラーにしない Find を使う
	var token entity.RevokedToken
	res := r.db.WithContext(ctx).Where("id = ?", tokenID).Limit(1).Find(&token)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return !token.IsExpired(r.now()), nil
}

// DeleteExpired removes entries whose token has expired and returns how many were removed.
func (r *revocationGorm) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", r.now()).
		Delete(&entity.RevokedToken{})
	return res.RowsAffected, res.Error
}
