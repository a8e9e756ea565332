package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery-staple", hash)

	assert.True(t, CheckPassword("correct-horse-battery-staple", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("correct-horse-battery-staple", "not-a-hash"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestGenerateRandomToken(t *testing.T) {
	tok, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.Len(t, tok, 64) // hex-encoded

	other, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
