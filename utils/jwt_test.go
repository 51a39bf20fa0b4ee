package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWTService_TokenPairRoundTrip(t *testing.T) {
	t.Parallel()

	j := NewJWTService("test-secret")

	pair, err := j.GenerateTokenPair("507f1f77bcf86cd799439011", "jane@example.com", "user")
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := j.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	require.Equal(t, "jane@example.com", claims.Email)
	require.Equal(t, "user", claims.Role)
	require.Equal(t, "access", claims.TokenType)
	require.Equal(t, "lifetag", claims.Issuer)

	refreshClaims, err := j.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestJWTService_RefreshRequiresRefreshToken(t *testing.T) {
	t.Parallel()

	j := NewJWTService("test-secret")

	pair, err := j.GenerateTokenPair("507f1f77bcf86cd799439011", "jane@example.com", "user")
	require.NoError(t, err)

	// An access token must not be usable as a refresh token
	_, err = j.RefreshToken(pair.AccessToken)
	require.Error(t, err)

	newPair, err := j.RefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newPair.AccessToken)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	pair, err := NewJWTService("secret-a").GenerateTokenPair("id", "e@x.com", "user")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(pair.AccessToken)
	require.Error(t, err)
}
