package scanner_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/nlang/plzero/lang/scanner"
	"github.com/nlang/plzero/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]token.Token, string) {
	t.Helper()
	var trace bytes.Buffer
	s := scanner.New([]byte(src), &trace)

	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, trace.String()
}

func TestKeywordsAndIdents(t *testing.T) {
	toks, _ := scanAll(t, "program x while Program")
	kinds := []token.Kind{token.PROGRAM, token.IDENT, token.WHILE, token.IDENT, token.EOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		require.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
	require.Equal(t, "Program", toks[3].Lexeme, "keywords are case-sensitive")
}

func TestPunctuatorsLongestMatch(t *testing.T) {
	toks, _ := scanAll(t, ":= <= <> >= .. < = > : ; . ( ) [ ] , * + -")
	want := []token.Kind{
		token.ASSIGN, token.LE, token.NE, token.GE, token.DOTDOT,
		token.LT, token.EQ, token.GT, token.COLON, token.SEMI, token.DOT,
		token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK,
		token.COMMA, token.STAR, token.PLUS, token.MINUS, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		require.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestLineCounting(t *testing.T) {
	toks, _ := scanAll(t, "program p\n;\nbegin\nend.")
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[2].Line) // SEMI
	require.Equal(t, 3, toks[3].Line) // BEGIN
}

func TestCommentNotNestable(t *testing.T) {
	toks, _ := scanAll(t, "begin (* (* *) end *) write")
	// the comment ends at the first *), so "end", "*", ")" and "write" are
	// all real tokens that follow it.
	want := []token.Kind{token.BEGIN, token.END, token.STAR, token.RPAREN, token.WRITE, token.EOF}
	require.Len(t, toks, len(want))
	for i, k := range want {
		require.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestIntegerOverflowDropped(t *testing.T) {
	toks, trace := scanAll(t, "9999999999 1")
	require.Len(t, toks, 2) // overflow dropped, "1" then EOF
	require.Equal(t, token.INTCONST, toks[0].Kind)
	require.Equal(t, "1", toks[0].Lexeme)
	require.Contains(t, trace, "**** Invalid integer constant: 9999999999")
}

func TestCharConst(t *testing.T) {
	toks, _ := scanAll(t, "'x' ''")
	require.Equal(t, token.CHARCONST, toks[0].Kind)
	require.Equal(t, "'x'", toks[0].Lexeme)
	require.Equal(t, token.EOF, toks[1].Kind, "the empty char const is dropped, not returned")
}

func TestInvalidCharConstDropped(t *testing.T) {
	_, trace := scanAll(t, "''")
	require.Contains(t, trace, "**** Invalid character constant: ''")
}

func TestTokenTrace(t *testing.T) {
	_, trace := scanAll(t, "var")
	require.Contains(t, trace, fmt.Sprintf("TOKEN: %-12sLEXEME: var\n", token.VAR))
}
