package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")
	require.NoError(t, InitJWTSecret())

	access, refresh, err := GenerateTokenPair(42, "alice")
	require.NoError(t, err)

	claims, err := VerifyJWTOfType(access, TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["user_id"])
	require.Equal(t, "alice", claims["username"])

	_, err = VerifyJWTOfType(refresh, TokenTypeRefresh)
	require.NoError(t, err)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")
	require.NoError(t, InitJWTSecret())

	access, refresh, err := GenerateTokenPair(42, "alice")
	require.NoError(t, err)

	_, err = VerifyJWTOfType(refresh, TokenTypeAccess)
	require.Error(t, err)

	_, err = VerifyJWTOfType(access, TokenTypeRefresh)
	require.Error(t, err)
}

func TestTamperedTokenIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")
	require.NoError(t, InitJWTSecret())

	access, err := GenerateAccessToken(42, "alice")
	require.NoError(t, err)

	_, err = VerifyJWT(access + "x")
	require.Error(t, err)
}
