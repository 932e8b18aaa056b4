package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEmpty(t, tok.String(), "token %d missing a string representation", tok)
	}
}

func TestTokenGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "'**='", STARSTAR_EQ.GoString())
	require.Equal(t, "def", DEF.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}

func TestIsKeyword(t *testing.T) {
	require.True(t, DEF.IsKeyword())
	require.True(t, YIELD_FROM.IsKeyword())
	require.False(t, PLUS.IsKeyword())
	require.False(t, IDENT.IsKeyword())
}
