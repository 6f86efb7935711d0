package compiler_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/nlang/plzero/internal/filetest"
	"github.com/nlang/plzero/lang/compiler"
	"github.com/stretchr/testify/require"
)

var updateTests = flag.Bool("test.update-compiler-tests", false, "update the golden .want/.err files for TestCompile")

// TestCompile runs every testdata/*.pl0 source through Compile and checks
// its output against a golden file: a successful compilation's code stream
// is diffed against <name>.want, a diagnostic's message against <name>.err.
// Exactly one of the two golden files is expected to exist per source.
func TestCompile(t *testing.T) {
	const dir = "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".pl0") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			require.NoError(t, err)

			var code bytes.Buffer
			diag := compiler.Compile(src, nil, &code, false)

			if diag != nil {
				// Compile streams code as it recognizes each construct, so a
				// diagnostic raised partway through a block leaves whatever was
				// already emitted in code; only the diagnostic itself is golden
				// here.
				filetest.DiffErrors(t, fi, diag.Error()+"\n", dir, updateTests)
				return
			}
			filetest.DiffOutput(t, fi, code.String(), dir, updateTests)
		})
	}
}

func TestCompileDebugTracesGrammarRules(t *testing.T) {
	var trace, code bytes.Buffer
	diag := compiler.Compile([]byte("program p;\nbegin\nend.\n"), &trace, &code, true)
	require.Nil(t, diag)
	require.Contains(t, trace.String(), "PROG -> program IDENT ; BLOCK .")
	require.Contains(t, trace.String(), "COMPOUND -> begin STMT STMTLST end")
}

func TestCompileNilWritersDiscardOutput(t *testing.T) {
	// Compile must tolerate nil trace/code writers (callers that only care
	// about the returned Diagnostic) by discarding instead of panicking.
	diag := compiler.Compile([]byte("program p;\nbegin\nend.\n"), nil, nil, false)
	require.Nil(t, diag)
}
