package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, salt, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEmpty(t, salt)

	assert.True(t, VerifyPassword("Sup3rSecret", hash, salt))
	assert.False(t, VerifyPassword("wrong", hash, salt))
	assert.False(t, VerifyPassword("Sup3rSecret", hash, "bogus-salt"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, salt1, err := HashPassword("same-password")
	require.NoError(t, err)
	hash2, salt2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword_MalformedStoredValues(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-base64!!", "also-not-base64!!"))
}
