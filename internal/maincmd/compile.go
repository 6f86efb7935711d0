package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"
	"github.com/nlang/plzero/lang/compiler"
)

// Compile runs the full scan/parse/type-check/emit pipeline over each file:
// the trace stream (token trace and, with -debug, grammar-rule lines) goes
// to stderr unless -suppress is set, and the code stream goes to stdout.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFiles(stdio, c.Debug, c.Suppress, args...)
}

// CompileFiles compiles each file independently (the spec excludes linking
// multiple compilation units, so each file is its own program). Unlike
// TokenizeFiles, which stops at the first unreadable file, it keeps going
// after a failing file and returns the first error seen, if any.
func CompileFiles(stdio mainer.Stdio, debug, suppress bool, files ...string) error {
	trace := stdio.Stderr
	if suppress {
		trace = io.Discard
	}

	var firstErr error
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if diag := compiler.Compile(src, trace, stdio.Stdout, debug); diag != nil {
			fmt.Fprintln(stdio.Stderr, diag)
			if firstErr == nil {
				firstErr = diag
			}
		}
	}
	return firstErr
}
