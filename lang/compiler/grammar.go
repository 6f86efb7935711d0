package compiler

import (
	"github.com/nlang/plzero/lang/symtab"
	"github.com/nlang/plzero/lang/token"
)

// program parses PROG := program IDENT ';' BLOCK '.' , declaring the global
// scope's single PROGRAM entry before the rest of the block is seen (so the
// program name is taken in the global scope, and so BLOCK can look up the
// currently-open frame on the procedure stack). The program name is not
// callable: only PROCEDURE entries become call statements.
func (c *Compiler) program() {
	c.rule("PROG", "program IDENT ; BLOCK .")
	c.expect(token.PROGRAM)

	line := c.tok.Line
	name := c.expect(token.IDENT).Lexeme

	entry := &symtab.Entry{
		Name: name, Kind: symtab.ProgramKind, Type: symtab.ProgramType,
		Label: symtab.ProgramLabel, Level: 0, FrameSize: 20,
	}
	c.declare(line, entry)
	c.procs.Push(entry)

	c.expect(token.SEMI)
	c.block()
	c.expect(token.DOT)
}

// block parses BLOCK := VARDECPART PROCDECPART STMTPART. Immediately after
// the variable declarations, if this is the outermost block (only the
// PROGRAM frame is open), it emits the fixed init/BSS/entry preamble.
func (c *Compiler) block() {
	c.rule("BLOCK", "VARDECPART PROCDECPART STMTPART")
	c.varDeclPart()

	if c.procs.Depth() == 1 {
		prog := c.procs.Top()
		c.emitInit()
		c.emitLabelDef(symtab.LabelBSS)
		c.emitBSS(prog.FrameSize)
		c.emitLabelDef(symtab.LabelEntry)
	}

	c.procDeclPart()
	c.stmtPart()
}

func (c *Compiler) varDeclPart() {
	if c.tok.Kind == token.VAR {
		c.rule("VARDECPART", "var VARDEC ; VARDECLST")
		c.advance()
		c.varDecl()
		c.expect(token.SEMI)
		c.varDeclList()
		return
	}
	c.rule("VARDECPART", "epsilon")
}

func (c *Compiler) varDeclList() {
	if c.tok.Kind == token.IDENT {
		c.rule("VARDECLST", "VARDEC ; VARDECLST")
		c.varDecl()
		c.expect(token.SEMI)
		c.varDeclList()
		return
	}
	c.rule("VARDECLST", "epsilon")
}

// varDecl parses VARDEC := IDENT IDENTLST ':' TYPE, collecting all names
// declared together before assigning each an offset in declaration order.
func (c *Compiler) varDecl() {
	c.rule("VARDEC", "IDENT IDENTLST : TYPE")

	type pending struct {
		line int
		name string
	}
	var names []pending

	line := c.tok.Line
	names = append(names, pending{line, c.expect(token.IDENT).Lexeme})
	names = append(names, c.identList()...)

	c.expect(token.COLON)
	kind, simple, bounds, base := c.typeSpec()

	proc := c.procs.Top()
	for _, n := range names {
		e := &symtab.Entry{Name: n.name, Level: proc.Level, Offset: proc.FrameSize}
		if kind == symtab.ArrayVar {
			e.Kind = symtab.ArrayVar
			e.Type = symtab.Array
			e.Bounds = bounds
			e.BaseType = base
			proc.FrameSize += e.Length()
		} else {
			e.Kind = symtab.SimpleVar
			e.Type = simple
			proc.FrameSize++
		}
		c.declare(n.line, e)
	}
}

type namedIdent struct {
	line int
	name string
}

func (c *Compiler) identList() []namedIdent {
	if c.tok.Kind == token.COMMA {
		c.rule("IDENTLST", ", IDENT IDENTLST")
		c.advance()
		line := c.tok.Line
		name := c.expect(token.IDENT).Lexeme
		return append([]namedIdent{{line, name}}, c.identList()...)
	}
	c.rule("IDENTLST", "epsilon")
	return nil
}

// typeSpec parses TYPE := SIMPLE | ARRAY, returning enough information for
// varDecl to build the right kind of Entry.
func (c *Compiler) typeSpec() (kind symtab.Kind, simple symtab.Type, bounds [2]int, base symtab.Type) {
	c.rule("TYPE", "SIMPLE | ARRAY")
	if c.tok.Kind == token.ARRAY {
		bounds, base = c.arrayType()
		return symtab.ArrayVar, 0, bounds, base
	}
	return symtab.SimpleVar, c.simpleType(), bounds, base
}

func (c *Compiler) simpleType() symtab.Type {
	c.rule("SIMPLE", "integer | char | boolean")
	switch c.tok.Kind {
	case token.INTEGER:
		c.advance()
		return symtab.Integer
	case token.CHAR:
		c.advance()
		return symtab.Char
	case token.BOOLEAN:
		c.advance()
		return symtab.Boolean
	default:
		c.syntaxError()
		return 0
	}
}

func (c *Compiler) arrayType() (bounds [2]int, base symtab.Type) {
	c.rule("ARRAY", "array [ INTCONST .. INTCONST ] of SIMPLE")
	c.expect(token.ARRAY)
	c.expect(token.LBRACK)
	bounds = c.idxRange()
	c.expect(token.RBRACK)
	c.expect(token.OF)
	base = c.simpleType()
	return bounds, base
}

// idxRange parses INTCONST '..' INTCONST, aborting if the bounds are
// reversed.
func (c *Compiler) idxRange() [2]int {
	c.rule("IDX", "INTCONST .. INTCONST")
	line := c.tok.Line
	left := c.intConstValue()
	c.expect(token.DOTDOT)
	right := c.intConstValue()
	if left > right {
		c.abort(line, "Start index must be less than or equal to end index of array")
	}
	return [2]int{left, right}
}

func (c *Compiler) intConstValue() int {
	lex := c.expect(token.INTCONST).Lexeme
	n := 0
	for i := 0; i < len(lex); i++ {
		n = n*10 + int(lex[i]-'0')
	}
	return n
}

func (c *Compiler) procDeclPart() {
	if c.tok.Kind == token.PROCEDURE {
		c.rule("PROCDECPART", "PROCDEC ; PROCDECPART")
		c.procDecl()
		c.expect(token.SEMI)
		c.procDeclPart()
		return
	}
	c.rule("PROCDECPART", "epsilon")
}

// procDecl parses PROCDEC := procedure IDENT ';' BLOCK. The procedure's own
// name is declared into the currently-open ENCLOSING scope, before its own
// scope and frame are opened, so that a call to itself resolves through
// the normal scope chain.
func (c *Compiler) procDecl() {
	c.rule("PROCDEC", "procedure IDENT ; BLOCK")
	c.expect(token.PROCEDURE)

	line := c.tok.Line
	name := c.expect(token.IDENT).Lexeme

	enclosing := c.procs.Top()
	entry := &symtab.Entry{
		Name: name, Kind: symtab.ProcedureKind, Type: symtab.ProcedureType,
		Label: c.labels.New(), Level: enclosing.Level + 1, FrameSize: 0,
	}
	c.declare(line, entry)

	c.expect(token.SEMI)

	c.scopes.Open()
	c.procs.Push(entry)
	c.block()
	c.procs.Pop()
	c.scopes.Close()
}

// stmtPart parses STMTPART := COMPOUND, wrapping it with the prologue and
// epilogue appropriate to whether the currently-open frame is the program
// or a procedure.
func (c *Compiler) stmtPart() {
	c.rule("STMTPART", "COMPOUND")
	proc := c.procs.Top()
	c.emitLabelDef(proc.Label)

	isProgram := proc.Kind == symtab.ProgramKind
	if !isProgram {
		c.emitSave(proc.Level)
		if proc.FrameSize > 0 {
			c.emitASP(proc.FrameSize)
		}
	}

	c.compound()

	if !isProgram {
		if proc.FrameSize > 0 {
			c.emitASP(-proc.FrameSize)
		}
		c.emitJI()
		return
	}

	c.emitHalt()
	c.emitLabelDef(symtab.LabelStack)
	c.emitBSS(500)
	c.emitEnd()
}

func (c *Compiler) compound() {
	c.rule("COMPOUND", "begin STMT STMTLST end")
	c.expect(token.BEGIN)
	c.stmt()
	c.stmtList()
	c.expect(token.END)
}

func (c *Compiler) stmtList() {
	if c.tok.Kind == token.SEMI {
		c.rule("STMTLST", "; STMT STMTLST")
		c.advance()
		c.stmt()
		c.stmtList()
		return
	}
	c.rule("STMTLST", "epsilon")
}

// stmt dispatches on the current token. An IDENT is classified by lookup:
// PROCEDURE resolves to PROCSTMT (and the call's push/js/pop sequence is
// emitted here, before consuming the identifier), anything else to ASSIGN.
func (c *Compiler) stmt() {
	switch c.tok.Kind {
	case token.IDENT:
		line := c.tok.Line
		entry := c.lookup(line, c.tok.Lexeme)
		if entry.Kind == symtab.ProcedureKind {
			c.rule("STMT", "PROCSTMT")
			c.emitProcCall(entry)
			c.procStmt()
			return
		}
		c.rule("STMT", "ASSIGN")
		c.assign(entry)
	case token.READ:
		c.rule("STMT", "READ")
		c.read()
	case token.WRITE:
		c.rule("STMT", "WRITE")
		c.write()
	case token.IF:
		c.rule("STMT", "IF")
		c.condition()
	case token.WHILE:
		c.rule("STMT", "WHILE")
		c.whileStmt()
	case token.BEGIN:
		c.rule("STMT", "COMPOUND")
		c.compound()
	default:
		// Empty statement: lets `begin end` and a trailing `;` before `end`
		// compile. Anything that isn't actually a valid statement boundary
		// still fails, just at the next expect call instead of here.
		c.rule("STMT", "epsilon")
	}
}

// assign parses ASSIGN := VARIABLE ':=' EXPR. entry is the already-looked-up
// symbol for the leading identifier (the caller peeked it to decide this
// was an assignment and not a procedure call); la is emitted against it
// before the rest of the variable reference (and any array index) is
// parsed.
func (c *Compiler) assign(entry *symtab.Entry) {
	c.rule("ASSIGN", "VARIABLE := EXPR")
	line := c.tok.Line
	c.emitLA(entry.Offset, entry.Level)
	varType := c.variable(entry)

	c.expect(token.ASSIGN)
	exprType := c.expr()
	c.emitST()

	switch {
	case varType == symtab.Array:
		c.abort(line, "Array variable must be indexed")
	case exprType == symtab.Array:
		c.abort(line, "Array variable must be indexed")
	case exprType == symtab.ProcedureType:
		c.abort(line, "Procedure/variable mismatch")
	case varType != exprType:
		c.abort(line, "Expression must be of same type as variable")
	}
}

func (c *Compiler) procStmt() {
	c.rule("PROCSTMT", "IDENT")
	c.expect(token.IDENT)
}

func (c *Compiler) read() {
	c.rule("READ", "read ( VARIABLE INPUTLST )")
	c.expect(token.READ)
	c.expect(token.LPAREN)
	c.inputVar()
	c.inputList()
	c.expect(token.RPAREN)
}

func (c *Compiler) inputList() {
	if c.tok.Kind == token.COMMA {
		c.rule("INPUTLST", ", VARIABLE INPUTLST")
		c.advance()
		c.inputVar()
		c.inputList()
		return
	}
	c.rule("INPUTLST", "epsilon")
}

// inputVar parses one read target. The declared (unindexed) type of the
// entry selects iread vs. cread before the variable reference (including
// any index) is parsed; an array entry therefore emits neither, even when
// indexed, matching the reference compiler's own behavior for that case.
func (c *Compiler) inputVar() {
	c.rule("INPUTVAR", "VARIABLE")
	line := c.tok.Line
	entry := c.lookup(line, c.tok.Lexeme)
	c.emitLA(entry.Offset, entry.Level)
	switch entry.Type {
	case symtab.Integer:
		c.emitIRead()
	case symtab.Char:
		c.emitCRead()
	}
	c.emitST()

	varType := c.variable(entry)
	if varType != symtab.Integer && varType != symtab.Char {
		c.abort(line, "Input variable must be of type integer or char")
	}
}

func (c *Compiler) write() {
	c.rule("WRITE", "write ( EXPR OUTPUTLST )")
	c.expect(token.WRITE)
	c.expect(token.LPAREN)
	c.output()
	c.outputList()
	c.expect(token.RPAREN)
}

func (c *Compiler) outputList() {
	if c.tok.Kind == token.COMMA {
		c.rule("OUTPUTLST", ", EXPR OUTPUTLST")
		c.advance()
		c.output()
		c.outputList()
		return
	}
	c.rule("OUTPUTLST", "epsilon")
}

func (c *Compiler) output() {
	c.rule("OUTPUT", "EXPR")
	line := c.tok.Line
	exprType := c.expr()
	switch exprType {
	case symtab.Integer:
		c.emitIWrite()
	case symtab.Char:
		c.emitCWrite()
	default:
		c.abort(line, "Output expression must be of type integer or char")
	}
}

// condition parses IF := if EXPR then STMT (else STMT)? . The else/post
// labels are allocated right after the condition, jf is emitted against
// the else label, then the then-branch, jp to the post label, the else
// label definition, the (possibly empty) else branch, and the post label
// definition.
func (c *Compiler) condition() {
	c.rule("IF", "if EXPR then STMT ELSEPART")
	c.expect(token.IF)

	line := c.tok.Line
	condType := c.expr()
	elseLabel := c.labels.New()
	postLabel := c.labels.New()
	c.emitJF(elseLabel)
	if condType != symtab.Boolean {
		c.abort(line, "Expression must be of type boolean")
	}

	c.expect(token.THEN)
	c.stmt()
	c.emitJP(postLabel)
	c.emitLabelDef(elseLabel)
	c.elsePart()
	c.emitLabelDef(postLabel)
}

func (c *Compiler) elsePart() {
	if c.tok.Kind == token.ELSE {
		c.rule("ELSEPART", "else STMT")
		c.advance()
		c.stmt()
		return
	}
	c.rule("ELSEPART", "epsilon")
}

// whileStmt parses WHILE := while EXPR do STMT.
func (c *Compiler) whileStmt() {
	c.rule("WHILE", "while EXPR do STMT")
	c.expect(token.WHILE)

	topLabel := c.labels.New()
	c.emitLabelDef(topLabel)

	line := c.tok.Line
	condType := c.expr()
	postLabel := c.labels.New()
	c.emitJF(postLabel)
	if condType != symtab.Boolean {
		c.abort(line, "Expression must be of type boolean")
	}

	c.expect(token.DO)
	c.stmt()
	c.emitJP(topLabel)
	c.emitLabelDef(postLabel)
}

// expr parses EXPR := SIMPLEEXPR (RELOP SIMPLEEXPR)? . The relop mnemonic
// is emitted after both operands, following the type check.
func (c *Compiler) expr() symtab.Type {
	c.rule("EXPR", "SIMPLEEXPR OPEXPR")
	leftType := c.simpleExpr()

	if !isRelOp(c.tok.Kind) {
		return leftType
	}

	opLine := c.tok.Line
	mnemonic := c.relOp()
	rightType := c.simpleExpr()
	if leftType != rightType {
		c.abort(opLine, "Expressions must both be int, or both char, or both boolean")
	}
	c.emitRelOp(mnemonic)
	return symtab.Boolean
}

func isRelOp(k token.Kind) bool {
	switch k {
	case token.LT, token.LE, token.NE, token.EQ, token.GT, token.GE:
		return true
	}
	return false
}

func (c *Compiler) relOp() string {
	c.rule("RELOP", c.tok.Kind.GoString())
	defer c.advance()
	switch c.tok.Kind {
	case token.LT:
		return "lt"
	case token.LE:
		return "le"
	case token.NE:
		return "ne"
	case token.EQ:
		return "eq"
	case token.GT:
		return "gt"
	default:
		return "ge"
	}
}

// simpleExpr parses SIMPLEEXPR := TERM (ADDOP TERM)*. The reported type of
// the whole chain is the accumulated running type after each operator,
// which is also what each step type-checks against.
func (c *Compiler) simpleExpr() symtab.Type {
	c.rule("SIMPLEEXPR", "TERM ADDOPLST")
	t := c.term()
	return c.addOpList(t)
}

func (c *Compiler) addOpList(leftType symtab.Type) symtab.Type {
	if c.tok.Kind != token.PLUS && c.tok.Kind != token.MINUS && c.tok.Kind != token.OR {
		c.rule("ADDOPLST", "epsilon")
		return leftType
	}
	c.rule("ADDOPLST", "ADDOP TERM ADDOPLST")
	line := c.tok.Line
	mnemonic, arithmetic := c.addOp()
	rightType := c.term()

	switch {
	case arithmetic && (leftType != symtab.Integer || rightType != symtab.Integer):
		c.abort(line, "Expression must be of type integer")
	case !arithmetic && (leftType != symtab.Boolean || rightType != symtab.Boolean):
		c.abort(line, "Expression must be of type boolean")
	}
	switch mnemonic {
	case "add":
		c.emitAdd()
	case "sub":
		c.emitSub()
	case "or":
		c.emitOr()
	}
	return c.addOpList(rightType)
}

// addOp returns the instruction mnemonic and whether the operator is
// arithmetic (+/-, requiring INTEGER) as opposed to logical (or, requiring
// BOOLEAN).
func (c *Compiler) addOp() (mnemonic string, arithmetic bool) {
	c.rule("ADDOP", c.tok.Kind.GoString())
	defer c.advance()
	switch c.tok.Kind {
	case token.PLUS:
		return "add", true
	case token.MINUS:
		return "sub", true
	default:
		return "or", false
	}
}

func (c *Compiler) term() symtab.Type {
	c.rule("TERM", "FACTOR MULTOPLST")
	t := c.factor()
	return c.multOpList(t)
}

func (c *Compiler) multOpList(leftType symtab.Type) symtab.Type {
	if c.tok.Kind != token.STAR && c.tok.Kind != token.DIV && c.tok.Kind != token.AND {
		c.rule("MULTOPLST", "epsilon")
		return leftType
	}
	c.rule("MULTOPLST", "MULOP FACTOR MULTOPLST")
	line := c.tok.Line
	mnemonic, arithmetic := c.mulOp()
	rightType := c.factor()

	switch {
	case arithmetic && (leftType != symtab.Integer || rightType != symtab.Integer):
		c.abort(line, "Expression must be of type integer")
	case !arithmetic && (leftType != symtab.Boolean || rightType != symtab.Boolean):
		c.abort(line, "Expression must be of type boolean")
	}
	switch mnemonic {
	case "mul":
		c.emitMul()
	case "div":
		c.emitDiv()
	case "and":
		c.emitAnd()
	}
	return c.multOpList(rightType)
}

// mulOp returns the instruction mnemonic and whether the operator is
// arithmetic (*/div, requiring INTEGER) as opposed to logical (and,
// requiring BOOLEAN).
func (c *Compiler) mulOp() (mnemonic string, arithmetic bool) {
	c.rule("MULOP", c.tok.Kind.GoString())
	defer c.advance()
	switch c.tok.Kind {
	case token.STAR:
		return "mul", true
	case token.DIV:
		return "div", true
	default:
		return "and", false
	}
}

// factor parses FACTOR := SIGN VARIABLE | CONST | '(' EXPR ')' | not FACTOR.
// For the signed-variable alternative, la/deref are emitted against the
// looked-up entry before the rest of the variable reference (and any
// index) is parsed, matching the order used by assign and inputVar.
func (c *Compiler) factor() symtab.Type {
	switch {
	case c.tok.Kind == token.PLUS || c.tok.Kind == token.MINUS || c.tok.Kind == token.IDENT:
		c.rule("FACTOR", "SIGN VARIABLE")
		line := c.tok.Line
		negative := c.sign()

		if c.tok.Kind != token.IDENT {
			c.syntaxError()
		}
		entry := c.lookup(c.tok.Line, c.tok.Lexeme)
		c.emitLA(entry.Offset, entry.Level)
		c.emitDeref()
		varType := c.variable(entry)

		if negative {
			if varType != symtab.Integer {
				c.abort(line, "Expression must be of type integer")
			}
			c.emitNeg()
		}
		return varType

	case c.tok.Kind == token.INTCONST || c.tok.Kind == token.CHARCONST ||
		c.tok.Kind == token.TRUE || c.tok.Kind == token.FALSE:
		c.rule("FACTOR", "CONST")
		return c.constLit()

	case c.tok.Kind == token.LPAREN:
		c.rule("FACTOR", "( EXPR )")
		c.advance()
		t := c.expr()
		c.expect(token.RPAREN)
		return t

	case c.tok.Kind == token.NOT:
		c.rule("FACTOR", "not FACTOR")
		line := c.tok.Line
		c.advance()
		t := c.factor()
		c.emitNot()
		if t != symtab.Boolean {
			c.abort(line, "Expression must be of type boolean")
		}
		return symtab.Boolean

	default:
		c.syntaxError()
		return 0
	}
}

// sign parses SIGN := '+' | '-' | epsilon, returning true for a leading
// '-'. Only a variable may be signed; a sign before a constant is not part
// of this grammar (constants are unsigned, an asymmetry preserved from the
// language this was modeled on).
func (c *Compiler) sign() bool {
	switch c.tok.Kind {
	case token.PLUS:
		c.rule("SIGN", "+")
		c.advance()
		return false
	case token.MINUS:
		c.rule("SIGN", "-")
		c.advance()
		return true
	default:
		c.rule("SIGN", "epsilon")
		return false
	}
}

// variable parses IDENT ('[' EXPR ']')? for an identifier the caller has
// already resolved to entry (the caller needed the entry's offset/level to
// emit la before this point). Returns BaseType when indexed, Type
// otherwise.
func (c *Compiler) variable(entry *symtab.Entry) symtab.Type {
	c.rule("VARIABLE", "IDENT IDXVAR")
	line := c.tok.Line
	c.advance() // consume IDENT

	if entry.Kind != symtab.ArrayVar && c.tok.Kind == token.LBRACK {
		c.abort(line, "Indexed variable must be of array type")
	}

	if c.idxVar() {
		return entry.BaseType
	}
	return entry.Type
}

func (c *Compiler) idxVar() bool {
	if c.tok.Kind != token.LBRACK {
		c.rule("IDXVAR", "epsilon")
		return false
	}
	c.rule("IDXVAR", "[ EXPR ]")
	line := c.tok.Line
	c.advance()
	exprType := c.expr()
	switch exprType {
	case symtab.ProcedureType:
		c.abort(line, "Procedure/variable mismatch")
	case symtab.Integer:
		// ok
	default:
		c.abort(line, "Index expression must be of type integer")
	}
	c.expect(token.RBRACK)
	return true
}

// constLit parses CONST := INTCONST | CHARCONST | true | false.
func (c *Compiler) constLit() symtab.Type {
	switch c.tok.Kind {
	case token.INTCONST:
		c.rule("CONST", "INTCONST")
		c.emitLC(c.intConstValue())
		return symtab.Integer
	case token.CHARCONST:
		c.rule("CONST", "CHARCONST")
		lex := c.tok.Lexeme
		c.emitLC(int(lex[1]))
		c.advance()
		return symtab.Char
	default:
		c.rule("CONST", "BOOLCONST")
		return c.boolConst()
	}
}

func (c *Compiler) boolConst() symtab.Type {
	switch c.tok.Kind {
	case token.TRUE:
		c.rule("BOOLCONST", "true")
		c.emitLC(1)
		c.advance()
	case token.FALSE:
		c.rule("BOOLCONST", "false")
		c.emitLC(0)
		c.advance()
	default:
		c.syntaxError()
	}
	return symtab.Boolean
}
