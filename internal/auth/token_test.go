package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	token, err := tm.GenerateToken("user-1")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), token.ExpiresAt, time.Minute)

	claims, err := tm.ParseToken(token.Value)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).GenerateToken("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ParseToken(token.Value)
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issued }

	token, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(token.Value)
	require.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).ParseToken("not-a-jwt")
	require.Error(t, err)
}
