package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRedisClient_Success は到達可能なRedisに接続できることを検証します。
func TestNewRedisClient_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

// TestNewRedisClient_RequiresPassword はパスワードが一致しない場合にエラーとなることを検証します。
func TestNewRedisClient_RequiresPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	_, err := NewRedisClient(context.Background(), mr.Addr(), "wrong")
	assert.Error(t, err)

	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "secret")
	require.NoError(t, err)
	_ = rdb.Close()
}

// TestNewRedisClient_Unreachable は停止済みのRedisに対してエラーが返されることを検証します。
func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), addr, "")
	assert.Nil(t, rdb)
	assert.Error(t, err)
}

// TestNewRedisClient_EmptyAddr は空のアドレスが拒否されることを検証します。
func TestNewRedisClient_EmptyAddr(t *testing.T) {
	rdb, err := NewRedisClient(context.Background(), "", "")
	assert.Nil(t, rdb)
	assert.Error(t, err)
}
