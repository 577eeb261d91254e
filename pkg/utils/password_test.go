package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "bcrypt hash expected")
	assert.True(t, CheckPassword("Secret123", hash))
	assert.False(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_SaltVaries(t *testing.T) {
	h1, err := HashPassword("Secret123")
	require.NoError(t, err)
	h2, err := HashPassword("Secret123")
	require.NoError(t, err)

	// salt 随机，两次哈希不应相同，但都能校验通过
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword("Secret123", h1))
	assert.True(t, CheckPassword("Secret123", h2))
}

func TestNewTempPassword(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		pw, err := NewTempPassword()
		require.NoError(t, err)
		assert.Len(t, pw, TempPasswordLen)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lower: %s", pw)
		assert.True(t, strings.ContainsAny(pw, upperChars), "missing upper: %s", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit: %s", pw)
		assert.NotContains(t, pw, "0")
		assert.NotContains(t, pw, "O")
		assert.NotContains(t, pw, "l")
		seen[pw] = struct{}{}
	}
	assert.Len(t, seen, 50, "temp passwords should not repeat")
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
}
