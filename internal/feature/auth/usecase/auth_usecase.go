package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"messagely/internal/feature/auth/domain/entity"
	"messagely/internal/platform/password"
	"messagely/internal/shared/apperr"
)

// fallbackDummyHash はダミーハッシュの生成に失敗した場合に使う固定のbcryptハッシュです。
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the credential store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrUsernameTaken if the username exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns ErrUserNotFound if the user does not exist.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// UpdateLastLogin sets last_login_at for username.
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// TokenIssuer issues signed bearer tokens.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// RevocationStore persists logged-out token ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, token *entity.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// RegisterInput is the profile submitted at registration.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// authUsecase implements registration, login and logout.
type authUsecase struct {
	users       UserRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	revocations RevocationStore
	now         func() time.Time
	dummyHash   string
}

// NewAuthUsecase creates a new authUsecase. revocations may be nil, which disables logout.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, revocations RevocationStore) *authUsecase {
	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ（設定されたコストで生成）
	dummy, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		dummy = fallbackDummyHash
	}
	return &authUsecase{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		now:         time.Now,
		dummyHash:   dummy,
	}
}

func validateRegistration(in RegisterInput) error {
	if in.Username == "" {
		return ErrUsernameRequired
	}
	if in.Password == "" {
		return ErrPasswordRequired
	}
	if len(in.Password) > password.MaxLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Register creates the user with a hashed password and returns a token for them.
// joined_at and last_login_at are both set to the registration time.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := validateRegistration(in); err != nil {
		return "", err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, "failed to hash password", err)
	}

	now := u.now()
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: hashed,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		JoinedAt:     now,
		LastLoginAt:  now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}

	return u.issue(user.Username)
}

// Login はユーザーを認証し、成功時にトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, plaintext string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}

	passwordHash := u.dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	ok, verifyErr := u.hasher.Verify(plaintext, passwordHash)
	if verifyErr != nil {
		slog.Warn("stored password hash is unreadable", "error", verifyErr, "username", username)
	}

	// ユーザー未検出・パスワード不一致・ハッシュ破損はすべて同じエラーにする
	if err != nil || verifyErr != nil || !ok {
		return "", ErrInvalidCredentials
	}

	if err := u.users.UpdateLastLogin(ctx, user.Username, u.now()); err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, "failed to update last login", err)
	}

	return u.issue(user.Username)
}

// Logout revokes the token identified by tokenID until expiresAt.
func (u *authUsecase) Logout(ctx context.Context, tokenID, username string, expiresAt time.Time) error {
	if u.revocations == nil {
		return apperr.Internal("logout is not available")
	}
	if tokenID == "" {
		return apperr.InvalidArg("token has no id")
	}
	entry := &entity.RevokedToken{
		ID:        tokenID,
		Username:  username,
		RevokedAt: u.now(),
		ExpiresAt: expiresAt,
	}
	if err := u.revocations.Revoke(ctx, entry); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to revoke token", err)
	}
	return nil
}

func (u *authUsecase) issue(username string) (string, error) {
	token, err := u.tokens.Issue(username)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, "failed to generate token", err)
	}
	return token, nil
}
