package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrcell_backend/pkg/apperrors"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.True(t, CheckPasswordHash("correct-horse-battery", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ValidatePassword("short1!"), apperrors.ErrWeakPassword)
	assert.NoError(t, ValidatePassword("long-enough-1"))
}

func TestGenerateSessionToken_Unique(t *testing.T) {
	t.Parallel()

	a, err := GenerateSessionToken()
	require.NoError(t, err)
	b, err := GenerateSessionToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 40, "32 байта энтропии в base64")
}
