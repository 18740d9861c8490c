package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Issue("user-123", "alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserId)
	require.Equal(t, "alice@x.com", claims.Email)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue("user-123", "alice@x.com")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	require.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Issue("user-123", "alice@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyMalformedToken(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := manager.Verify(token)
		require.Error(t, err)
	}
}
