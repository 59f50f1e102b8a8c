package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below minimum", 1, bcrypt.MinCost},
		{"in range", 6, 6},
		{"above maximum", 40, bcrypt.MaxCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewBcryptHasher(tt.cost).cost)
		})
	}
}

func TestBcryptHasher_HashVerify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	for _, plaintext := range []string{"secret1", "", "pässwörd with spaces", "x"} {
		hash, err := h.Hash(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, hash)

		ok, err := h.Verify(plaintext, hash)
		require.NoError(t, err)
		assert.True(t, ok, "verify(%q, hash(%q))", plaintext, plaintext)
	}
}

func TestBcryptHasher_VerifyMismatch(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	ok, err := h.Verify("secret2", hash)
	assert.NoError(t, err, "mismatch is not an error")
	assert.False(t, ok)
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "not-a-hash", "$2a$10$short"} {
		ok, err := h.Verify("secret1", hash)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrMalformedHash, "hash %q", hash)
	}
}

func TestBcryptHasher_HashTooLong(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	long := make([]byte, MaxLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := h.Hash(string(long))
	assert.Error(t, err)
}
