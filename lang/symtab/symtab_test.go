package symtab_test

import (
	"testing"

	"github.com/nlang/plzero/lang/symtab"
	"github.com/stretchr/testify/require"
)

func TestScopeStackShadowingAndDuplicates(t *testing.T) {
	var ss symtab.ScopeStack
	ss.Open()
	require.True(t, ss.Declare(&symtab.Entry{Name: "x", Kind: symtab.SimpleVar, Type: symtab.Integer}))
	require.False(t, ss.Declare(&symtab.Entry{Name: "x", Kind: symtab.SimpleVar, Type: symtab.Char}),
		"redeclaring in the same scope must fail")

	ss.Open()
	require.True(t, ss.Declare(&symtab.Entry{Name: "x", Kind: symtab.SimpleVar, Type: symtab.Boolean}),
		"shadowing an outer scope is allowed")

	e, ok := ss.Lookup("x")
	require.True(t, ok)
	require.Equal(t, symtab.Boolean, e.Type, "lookup finds the innermost match")

	ss.Close()
	e, ok = ss.Lookup("x")
	require.True(t, ok)
	require.Equal(t, symtab.Integer, e.Type, "closing a scope un-shadows the outer entry")
}

func TestScopeStackLookupMiss(t *testing.T) {
	var ss symtab.ScopeStack
	ss.Open()
	_, ok := ss.Lookup("nope")
	require.False(t, ok)
}

func TestProcedureStack(t *testing.T) {
	var ps symtab.ProcedureStack
	program := &symtab.Entry{Name: "p", Kind: symtab.ProgramKind, Label: symtab.ProgramLabel, Level: 0, FrameSize: 20}
	ps.Push(program)
	require.Equal(t, 1, ps.Depth())
	require.Same(t, program, ps.Top())

	proc := &symtab.Entry{Name: "q", Kind: symtab.ProcedureKind, Level: 1}
	ps.Push(proc)
	require.Equal(t, 2, ps.Depth())
	require.Same(t, proc, ps.Top())

	ps.Pop()
	require.Same(t, program, ps.Top())
}

func TestLabelsStartAtFour(t *testing.T) {
	l := symtab.NewLabels()
	require.Equal(t, "L.4", l.New())
	require.Equal(t, "L.5", l.New())
	require.Equal(t, "L.6", l.New())
}

func TestArrayEntryLength(t *testing.T) {
	e := &symtab.Entry{Kind: symtab.ArrayVar, Bounds: [2]int{5, 9}}
	require.Equal(t, 5, e.Length())
}
