package compiler

import (
	"fmt"

	"github.com/nlang/plzero/lang/symtab"
)

// emitLabelDef writes one label definition line ("<label>:") to the code
// stream, unindented.
func (c *Compiler) emitLabelDef(label string) {
	fmt.Fprintf(c.code, "%s:\n", label)
}

// emit writes one two-space-indented instruction line to the code stream.
func (c *Compiler) emit(format string, args ...any) {
	fmt.Fprintf(c.code, "  "+format+"\n", args...)
}

func (c *Compiler) emitInit() {
	c.emit("init %s, 20, %s, %s, %s", symtab.LabelBSS, symtab.LabelStack, symtab.LabelEntry, symtab.ProgramLabel)
}

func (c *Compiler) emitBSS(n int) { c.emit("bss %d", n) }

func (c *Compiler) emitSave(level int) { c.emit("save %d, 0", level) }

func (c *Compiler) emitASP(n int) { c.emit("asp %d", n) }

func (c *Compiler) emitLA(off, level int) { c.emit("la %d, %d", off, level) }

func (c *Compiler) emitLC(n int) { c.emit("lc %d", n) }

func (c *Compiler) emitST() { c.emit("st") }

func (c *Compiler) emitDeref() { c.emit("deref") }

func (c *Compiler) emitIRead() { c.emit("iread") }

func (c *Compiler) emitCRead() { c.emit("cread") }

func (c *Compiler) emitIWrite() { c.emit("iwrite") }

func (c *Compiler) emitCWrite() { c.emit("cwrite") }

func (c *Compiler) emitAdd() { c.emit("add") }

func (c *Compiler) emitSub() { c.emit("sub") }

func (c *Compiler) emitMul() { c.emit("mul") }

func (c *Compiler) emitDiv() { c.emit("div") }

func (c *Compiler) emitAnd() { c.emit("and") }

func (c *Compiler) emitOr() { c.emit("or") }

func (c *Compiler) emitNot() { c.emit("not") }

func (c *Compiler) emitNeg() { c.emit("neg") }

// emitRelOp emits one of the six comparison mnemonics, e.g. ".lt.".
func (c *Compiler) emitRelOp(mnemonic string) { c.emit(".%s.", mnemonic) }

func (c *Compiler) emitJF(label string) { c.emit("jf %s", label) }

func (c *Compiler) emitJP(label string) { c.emit("jp %s", label) }

func (c *Compiler) emitJS(label string) { c.emit("js %s", label) }

func (c *Compiler) emitJI() { c.emit("ji") }

func (c *Compiler) emitPush(level int) { c.emit("push %d, 0", level) }

func (c *Compiler) emitPop(level int) { c.emit("pop %d, 0", level) }

func (c *Compiler) emitHalt() { c.emit("halt") }

func (c *Compiler) emitEnd() { c.emit("end") }

// emitProcCall emits the static-link push/js/pop sequence for a call from
// the currently-open frame to callee. For a direct-child call (the only
// reachable case where callee.Level > caller.Level) this still produces
// one push and one pop, matching the documented scenario: the range runs
// from the caller's level down to whichever of the two levels is
// shallower, inclusive, then back up.
func (c *Compiler) emitProcCall(callee *symtab.Entry) {
	caller := c.procs.Top()
	lvl := caller.Level
	if callee.Level < lvl {
		lvl = callee.Level
	}
	for i := caller.Level; i >= lvl; i-- {
		c.emitPush(i)
	}
	c.emitJS(callee.Label)
	for i := lvl; i <= caller.Level; i++ {
		c.emitPop(i)
	}
}
