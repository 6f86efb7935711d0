package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/nlang/plzero/lang/scanner"
	"github.com/nlang/plzero/lang/token"
)

// Tokenize runs only the scanner phase, printing the `TOKEN: ... LEXEME:
// ...` trace for each file to stdout.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles scans each file in turn and writes its token trace to
// stdio.Stdout. It stops at the first file it cannot read.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		s := scanner.New(src, stdio.Stdout)
		for {
			if tok := s.Next(); tok.Kind == token.EOF {
				break
			}
		}
	}
	return nil
}
