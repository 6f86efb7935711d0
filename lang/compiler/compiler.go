// Package compiler implements the single-pass scan-parse-check-emit
// pipeline: it drives a scanner.Scanner, maintains a symtab.ScopeStack and
// symtab.ProcedureStack, and streams VM instructions directly as each
// construct is recognized. There is no intermediate AST; a construct is
// type-checked and emitted in the same recursive-descent call that parses
// it.
package compiler

import (
	"fmt"
	"io"

	"github.com/nlang/plzero/lang/scanner"
	"github.com/nlang/plzero/lang/symtab"
	"github.com/nlang/plzero/lang/token"
)

// Diagnostic is a single aborting error: a line number and a message. The
// compiler never attempts recovery; the first Diagnostic ends compilation.
type Diagnostic struct {
	Line    int
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("Line %d: %s", d.Line, d.Message)
}

// abortSignal is the sentinel panic value used to unwind the recursive
// descent back to Compile on the first Diagnostic. It is never observed
// outside this package.
type abortSignal struct{ diag *Diagnostic }

// Compile scans, parses, type-checks and emits src in a single pass.
// Accepted tokens and (when debug is true) grammar-rule lines are written
// to trace; VM instructions are written to code. Compile returns the first
// Diagnostic encountered, or nil on success.
func Compile(src []byte, trace, code io.Writer, debug bool) (err *Diagnostic) {
	if trace == nil {
		trace = io.Discard
	}
	if code == nil {
		code = io.Discard
	}

	c := &Compiler{
		scan:   scanner.New(src, trace),
		trace:  trace,
		code:   code,
		debug:  debug,
		labels: symtab.NewLabels(),
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(abortSignal)
			if !ok {
				panic(r)
			}
			err = sig.diag
		}
	}()

	c.advance()
	c.scopes.Open()
	c.program()
	return nil
}

// Compiler holds all state for one compilation: the token lookahead, the
// scope/procedure stacks, the label allocator, and the two output streams.
type Compiler struct {
	scan *scanner.Scanner
	tok  token.Token

	trace io.Writer
	code  io.Writer
	debug bool

	scopes symtab.ScopeStack
	procs  symtab.ProcedureStack
	labels *symtab.Labels
}

// advance discards the current lookahead token and reads the next one.
func (c *Compiler) advance() {
	c.tok = c.scan.Next()
}

// expect verifies the current token has kind and consumes it, aborting
// with a syntax error otherwise.
func (c *Compiler) expect(kind token.Kind) token.Token {
	if c.tok.Kind != kind {
		c.syntaxError()
	}
	t := c.tok
	c.advance()
	return t
}

// abort raises a Diagnostic at line and unwinds to Compile.
func (c *Compiler) abort(line int, format string, args ...any) {
	panic(abortSignal{diag: &Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)}})
}

// syntaxError aborts with the fixed "syntax error" message at the current
// token's line.
func (c *Compiler) syntaxError() {
	c.abort(c.tok.Line, "syntax error")
}

// declare inserts e into the innermost open scope, aborting with
// "Multiply defined identifier" on a same-scope collision.
func (c *Compiler) declare(line int, e *symtab.Entry) {
	if !c.scopes.Declare(e) {
		c.abort(line, "Multiply defined identifier")
	}
}

// lookup resolves name from the innermost scope outward, aborting with
// "Unidentified identifier" if nothing matches.
func (c *Compiler) lookup(line int, name string) *symtab.Entry {
	e, ok := c.scopes.Lookup(name)
	if !ok {
		c.abort(line, "Unidentified identifier")
	}
	return e
}

// rule writes a grammar-rule line (LHS -> RHS) when debug tracing is on.
func (c *Compiler) rule(lhs, rhs string) {
	if !c.debug {
		return
	}
	fmt.Fprintf(c.trace, "%s -> %s\n", lhs, rhs)
}
