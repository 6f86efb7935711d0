package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		if k.String() == "" {
			t.Errorf("missing string representation of kind %d", k)
		}
	}
}

func TestKindGoString(t *testing.T) {
	require.Equal(t, "':='", ASSIGN.GoString())
	require.Equal(t, "'program'", PROGRAM.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
	require.Equal(t, "end of file", EOF.GoString())
}

func TestLookup(t *testing.T) {
	for word, kind := range keywords {
		require.Equal(t, kind, Lookup(word))
	}
	require.Equal(t, IDENT, Lookup("x"))
	require.Equal(t, IDENT, Lookup("Program"), "keywords are case-sensitive")
}
