package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	require.NotEqual(t, "secret1", hashed)

	// The embedded random salt makes every hash unique.
	hashedAgain, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, hashed, hashedAgain)
}

func TestCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret1")
	require.NoError(t, err)

	require.True(t, CheckPassword(hashed, "secret1"))
	require.False(t, CheckPassword(hashed, "wrong"))
	require.False(t, CheckPassword(hashed, ""))
	require.False(t, CheckPassword("not-a-bcrypt-hash", "secret1"))
}
