package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", 42, "admin", 1)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "admin", claims["role"])

	// bare token without the Bearer prefix also parses
	claims, err = ParseAuth(tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
}

func TestParseAuth_Rejects(t *testing.T) {
	tok, err := Issue("secret", 1, "user", 1)
	require.NoError(t, err)

	_, err = ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer "+tok, "other-secret")
	require.Error(t, err)
}
