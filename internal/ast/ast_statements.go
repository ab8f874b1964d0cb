package ast

import "github.com/gotsc/gotsc/internal/token"

// DeclKind distinguishes var/let/const on a VariableDeclarationList.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
)

// VariableStatementData backs a top-level `var/let/const ...;` statement.
type VariableStatementData struct {
	DeclarationList NodeIndex
	Modifiers       Modifiers
}

func (t *Tree) AddVariableStatement(pos, end uint32, list NodeIndex, mods Modifiers) NodeIndex {
	d := t.varStmt.Add(VariableStatementData{DeclarationList: list, Modifiers: mods})
	return t.addNode(KindVariableStatement, pos, end, d)
}

func (t *Tree) GetVariableStatement(i NodeIndex) (VariableStatementData, bool) {
	n := t.Node(i)
	if n.Kind != KindVariableStatement {
		return VariableStatementData{}, false
	}
	return t.varStmt.Get(n.Data), true
}

type VariableDeclarationListData struct {
	Declarations ListIndex
	Flags        DeclKind
}

func (t *Tree) AddVariableDeclarationList(pos, end uint32, decls ListIndex, flags DeclKind) NodeIndex {
	d := t.varDeclList.Add(VariableDeclarationListData{Declarations: decls, Flags: flags})
	return t.addNode(KindVariableDeclarationList, pos, end, d)
}

func (t *Tree) GetVariableDeclarationList(i NodeIndex) (VariableDeclarationListData, bool) {
	n := t.Node(i)
	if n.Kind != KindVariableDeclarationList {
		return VariableDeclarationListData{}, false
	}
	return t.varDeclList.Get(n.Data), true
}

// VariableDeclarationData backs one `name: Type = init` binding, where Name
// may be a plain identifier or a destructuring pattern.
type VariableDeclarationData struct {
	Name        NodeIndex
	Type        NodeIndex
	Initializer NodeIndex
	Definite    bool // `let x!: number` definite-assignment assertion
}

func (t *Tree) AddVariableDeclaration(pos, end uint32, name, typ, init NodeIndex, definite bool) NodeIndex {
	d := t.varDecl.Add(VariableDeclarationData{Name: name, Type: typ, Initializer: init, Definite: definite})
	return t.addNode(KindVariableDeclaration, pos, end, d)
}

func (t *Tree) GetVariableDeclaration(i NodeIndex) (VariableDeclarationData, bool) {
	n := t.Node(i)
	if n.Kind != KindVariableDeclaration {
		return VariableDeclarationData{}, false
	}
	return t.varDecl.Get(n.Data), true
}

type IfData struct {
	Condition, Then, Else NodeIndex
}

func (t *Tree) AddIf(pos, end uint32, cond, then, els NodeIndex) NodeIndex {
	d := t.ifStmt.Add(IfData{Condition: cond, Then: then, Else: els})
	return t.addNode(KindIfStatement, pos, end, d)
}

func (t *Tree) GetIf(i NodeIndex) (IfData, bool) {
	n := t.Node(i)
	if n.Kind != KindIfStatement {
		return IfData{}, false
	}
	return t.ifStmt.Get(n.Data), true
}

// ForData backs the classic three-clause `for (init; cond; incr) stmt`. Any
// clause may be arena.None.
type ForData struct {
	Initializer, Condition, Incrementor, Statement NodeIndex
}

func (t *Tree) AddFor(pos, end uint32, d ForData) NodeIndex {
	idx := t.forStmt.Add(d)
	return t.addNode(KindForStatement, pos, end, idx)
}

func (t *Tree) GetFor(i NodeIndex) (ForData, bool) {
	n := t.Node(i)
	if n.Kind != KindForStatement {
		return ForData{}, false
	}
	return t.forStmt.Get(n.Data), true
}

// ForInOfData backs `for (x in/of expr) stmt`, spec's "for await (...of...)"
// being the only legal IsAwait=true combination (enforced by the parser).
type ForInOfData struct {
	Initializer, Expr, Statement NodeIndex
	IsOf, IsAwait                bool
}

func (t *Tree) AddForInOf(kind Kind, pos, end uint32, d ForInOfData) NodeIndex {
	idx := t.forInOf.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetForInOf(i NodeIndex) (ForInOfData, bool) {
	n := t.Node(i)
	if n.Kind != KindForInStatement && n.Kind != KindForOfStatement {
		return ForInOfData{}, false
	}
	return t.forInOf.Get(n.Data), true
}

type WhileData struct {
	Condition, Statement NodeIndex
}

func (t *Tree) AddWhile(pos, end uint32, cond, stmt NodeIndex) NodeIndex {
	d := t.whileStmt.Add(WhileData{Condition: cond, Statement: stmt})
	return t.addNode(KindWhileStatement, pos, end, d)
}

func (t *Tree) GetWhile(i NodeIndex) (WhileData, bool) {
	n := t.Node(i)
	if n.Kind != KindWhileStatement {
		return WhileData{}, false
	}
	return t.whileStmt.Get(n.Data), true
}

type DoData struct {
	Statement, Condition NodeIndex
}

func (t *Tree) AddDo(pos, end uint32, stmt, cond NodeIndex) NodeIndex {
	d := t.doStmt.Add(DoData{Statement: stmt, Condition: cond})
	return t.addNode(KindDoStatement, pos, end, d)
}

func (t *Tree) GetDo(i NodeIndex) (DoData, bool) {
	n := t.Node(i)
	if n.Kind != KindDoStatement {
		return DoData{}, false
	}
	return t.doStmt.Get(n.Data), true
}

type BlockData struct {
	Statements ListIndex
}

func (t *Tree) AddBlock(kind Kind, pos, end uint32, stmts ListIndex) NodeIndex {
	d := t.block.Add(BlockData{Statements: stmts})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetBlock(i NodeIndex) (BlockData, bool) {
	n := t.Node(i)
	if n.Kind != KindBlock && n.Kind != KindModuleBlock {
		return BlockData{}, false
	}
	return t.block.Get(n.Data), true
}

type ExprStmtData struct {
	Expr NodeIndex
}

func (t *Tree) AddExpressionStatement(pos, end uint32, expr NodeIndex) NodeIndex {
	d := t.exprStmt.Add(ExprStmtData{Expr: expr})
	return t.addNode(KindExpressionStatement, pos, end, d)
}

func (t *Tree) GetExpressionStatement(i NodeIndex) (ExprStmtData, bool) {
	n := t.Node(i)
	if n.Kind != KindExpressionStatement {
		return ExprStmtData{}, false
	}
	return t.exprStmt.Get(n.Data), true
}

type ReturnData struct {
	Expr NodeIndex
}

func (t *Tree) AddReturn(pos, end uint32, expr NodeIndex) NodeIndex {
	d := t.returnStmt.Add(ReturnData{Expr: expr})
	return t.addNode(KindReturnStatement, pos, end, d)
}

func (t *Tree) GetReturn(i NodeIndex) (ReturnData, bool) {
	n := t.Node(i)
	if n.Kind != KindReturnStatement {
		return ReturnData{}, false
	}
	return t.returnStmt.Get(n.Data), true
}

type ThrowData struct {
	Expr NodeIndex
}

func (t *Tree) AddThrow(pos, end uint32, expr NodeIndex) NodeIndex {
	d := t.throwStmt.Add(ThrowData{Expr: expr})
	return t.addNode(KindThrowStatement, pos, end, d)
}

func (t *Tree) GetThrow(i NodeIndex) (ThrowData, bool) {
	n := t.Node(i)
	if n.Kind != KindThrowStatement {
		return ThrowData{}, false
	}
	return t.throwStmt.Get(n.Data), true
}

// JumpData backs break/continue, with Label possibly arena.None.
type JumpData struct {
	Label NodeIndex
}

func (t *Tree) AddJump(kind Kind, pos, end uint32, label NodeIndex) NodeIndex {
	d := t.jump.Add(JumpData{Label: label})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetJump(i NodeIndex) (JumpData, bool) {
	n := t.Node(i)
	if n.Kind != KindBreakStatement && n.Kind != KindContinueStatement {
		return JumpData{}, false
	}
	return t.jump.Get(n.Data), true
}

type LabeledData struct {
	Label, Statement NodeIndex
}

func (t *Tree) AddLabeled(pos, end uint32, label, stmt NodeIndex) NodeIndex {
	d := t.labeled.Add(LabeledData{Label: label, Statement: stmt})
	return t.addNode(KindLabeledStatement, pos, end, d)
}

func (t *Tree) GetLabeled(i NodeIndex) (LabeledData, bool) {
	n := t.Node(i)
	if n.Kind != KindLabeledStatement {
		return LabeledData{}, false
	}
	return t.labeled.Get(n.Data), true
}

type SwitchData struct {
	Expr    NodeIndex
	Clauses ListIndex
}

func (t *Tree) AddSwitch(pos, end uint32, expr NodeIndex, clauses ListIndex) NodeIndex {
	d := t.switchStmt.Add(SwitchData{Expr: expr, Clauses: clauses})
	return t.addNode(KindSwitchStatement, pos, end, d)
}

func (t *Tree) GetSwitch(i NodeIndex) (SwitchData, bool) {
	n := t.Node(i)
	if n.Kind != KindSwitchStatement {
		return SwitchData{}, false
	}
	return t.switchStmt.Get(n.Data), true
}

// CaseClauseData backs both `case expr:` (KindCaseClause) and `default:`
// (KindDefaultClause, where Expr is arena.None).
type CaseClauseData struct {
	Expr       NodeIndex
	Statements ListIndex
}

func (t *Tree) AddCaseClause(kind Kind, pos, end uint32, expr NodeIndex, stmts ListIndex) NodeIndex {
	d := t.caseClause.Add(CaseClauseData{Expr: expr, Statements: stmts})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetCaseClause(i NodeIndex) (CaseClauseData, bool) {
	n := t.Node(i)
	if n.Kind != KindCaseClause && n.Kind != KindDefaultClause {
		return CaseClauseData{}, false
	}
	return t.caseClause.Get(n.Data), true
}

type TryData struct {
	TryBlock, CatchClause, FinallyBlock NodeIndex
}

func (t *Tree) AddTry(pos, end uint32, tryBlock, catch, finallyBlock NodeIndex) NodeIndex {
	d := t.tryStmt.Add(TryData{TryBlock: tryBlock, CatchClause: catch, FinallyBlock: finallyBlock})
	return t.addNode(KindTryStatement, pos, end, d)
}

func (t *Tree) GetTry(i NodeIndex) (TryData, bool) {
	n := t.Node(i)
	if n.Kind != KindTryStatement {
		return TryData{}, false
	}
	return t.tryStmt.Get(n.Data), true
}

// CatchClauseData backs `catch (param) block`; Param is arena.None for a
// parameterless catch.
type CatchClauseData struct {
	Param NodeIndex
	Type  NodeIndex // annotation on the catch variable, if any (must be `any`/`unknown`)
	Block NodeIndex
}

func (t *Tree) AddCatchClause(pos, end uint32, param, typ, block NodeIndex) NodeIndex {
	d := t.catchClause.Add(CatchClauseData{Param: param, Type: typ, Block: block})
	return t.addNode(KindCatchClause, pos, end, d)
}

func (t *Tree) GetCatchClause(i NodeIndex) (CatchClauseData, bool) {
	n := t.Node(i)
	if n.Kind != KindCatchClause {
		return CatchClauseData{}, false
	}
	return t.catchClause.Get(n.Data), true
}

// AddSimpleStatement covers KindDebuggerStatement/KindEmptyStatement, which
// carry no data beyond span and kind.
func (t *Tree) AddSimpleStatement(kind Kind, pos, end uint32) NodeIndex {
	return t.addNode(kind, pos, end, 0)
}

// restrictedProductionKinds lists the statement kinds whose ASI rule
// requires the continuation token to be on the SAME line (spec §4.4's
// "restricted productions": return/throw/break/continue; postfix ++/-- is
// not a statement keyword and is not listed here). Exposed so the parser's can_parse_semicolon helper can special
// case them without duplicating the token kind list.
var restrictedProductionKinds = map[token.Kind]bool{
	token.ReturnKeyword:   true,
	token.ThrowKeyword:    true,
	token.BreakKeyword:    true,
	token.ContinueKeyword: true,
}

// IsRestrictedProductionKeyword reports whether kw begins a restricted
// production under ASI (spec §4.4).
func IsRestrictedProductionKeyword(kw token.Kind) bool {
	return restrictedProductionKinds[kw]
}
