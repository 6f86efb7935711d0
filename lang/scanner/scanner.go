// Some of the scanner package is structured after the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"fmt"
	"io"

	"github.com/nlang/plzero/lang/token"
)

// Scanner produces a lazy, forward-only stream of tokens from an ASCII
// source buffer. It is not safe for concurrent use and is not
// restartable: construct a new Scanner per source buffer.
type Scanner struct {
	src   []byte
	trace io.Writer // trace stream: accepted-token lines and lexical diagnostics

	off  int // byte offset of the current (not yet consumed) character
	line int // 1-based line of s.off
}

// New returns a Scanner over src. Accepted tokens and non-aborting lexical
// diagnostics are written to trace as they are produced; trace may be
// io.Discard to suppress them.
func New(src []byte, trace io.Writer) *Scanner {
	if trace == nil {
		trace = io.Discard
	}
	return &Scanner{src: src, trace: trace, off: 0, line: 1}
}

func (s *Scanner) cur() byte {
	if s.off >= len(s.src) {
		return 0
	}
	return s.src[s.off]
}

func (s *Scanner) peek(ahead int) byte {
	if s.off+ahead >= len(s.src) {
		return 0
	}
	return s.src[s.off+ahead]
}

func (s *Scanner) atEOF() bool { return s.off >= len(s.src) }

// advance consumes the current character, tracking line numbers.
func (s *Scanner) advance() {
	if s.atEOF() {
		return
	}
	if s.src[s.off] == '\n' {
		s.line++
	}
	s.off++
}

// Next returns the next token in the source, or a token.EOF token once the
// input is exhausted. Malformed integer and character literals, and any
// other unrecognized character, are diagnosed (or silently dropped, for
// stray unknown characters) and never returned: Next keeps scanning until
// it has a real token to return.
func (s *Scanner) Next() token.Token {
	for {
		s.skipWhitespaceAndComments()
		if s.atEOF() {
			return token.Token{Kind: token.EOF, Line: s.line}
		}

		line := s.line
		c := s.cur()

		switch {
		case isLetter(c):
			lit := s.scanIdent()
			return s.emit(token.Lookup(lit), lit, line)

		case isDigit(c):
			lit, ok := s.scanNumber()
			if !ok {
				continue
			}
			return s.emit(token.INTCONST, lit, line)

		case c == '\'':
			lit, ok := s.scanCharConst()
			if !ok {
				continue
			}
			return s.emit(token.CHARCONST, lit, line)

		default:
			if kind, lit, ok := s.scanPunct(); ok {
				return s.emit(kind, lit, line)
			}
			// unrecognized character: dropped silently, no diagnostic defined
			s.advance()
			continue
		}
	}
}

// emit writes the accepted-token trace line and returns the token.
func (s *Scanner) emit(kind token.Kind, lexeme string, line int) token.Token {
	fmt.Fprintf(s.trace, "TOKEN: %-12sLEXEME: %s\n", kind, lexeme)
	return token.Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// diagnose writes a non-aborting lexical diagnostic: these carry no line
// number, matching the source they were ported from.
func (s *Scanner) diagnose(format string, args ...any) {
	fmt.Fprintf(s.trace, "**** "+format+"\n", args...)
}

func (s *Scanner) scanIdent() string {
	start := s.off
	for isLetter(s.cur()) || isDigit(s.cur()) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
