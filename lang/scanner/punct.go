package scanner

import "github.com/nlang/plzero/lang/token"

var singleCharPunct = map[byte]token.Kind{
	'(': token.LPAREN,
	')': token.RPAREN,
	'*': token.STAR,
	'+': token.PLUS,
	',': token.COMMA,
	'-': token.MINUS,
	'.': token.DOT,
	':': token.COLON,
	';': token.SEMI,
	'<': token.LT,
	'=': token.EQ,
	'>': token.GT,
	'[': token.LBRACK,
	']': token.RBRACK,
}

// scanPunct consumes the longest-matching punctuator at the current
// position. ok is false if the current character starts no punctuator at
// all, in which case the caller drops it as an unrecognized character.
func (s *Scanner) scanPunct() (kind token.Kind, lit string, ok bool) {
	c, c1 := s.cur(), s.peek(1)

	switch {
	case c == '.' && c1 == '.':
		s.advance()
		s.advance()
		return token.DOTDOT, "..", true
	case c == ':' && c1 == '=':
		s.advance()
		s.advance()
		return token.ASSIGN, ":=", true
	case c == '<' && c1 == '=':
		s.advance()
		s.advance()
		return token.LE, "<=", true
	case c == '<' && c1 == '>':
		s.advance()
		s.advance()
		return token.NE, "<>", true
	case c == '>' && c1 == '=':
		s.advance()
		s.advance()
		return token.GE, ">=", true
	}

	if k, found := singleCharPunct[c]; found {
		s.advance()
		return k, string(c), true
	}
	return token.ILLEGAL, "", false
}
