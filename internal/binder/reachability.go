package binder

import "github.com/gotsc/gotsc/internal/ast"

// anchor records a control-flow point of interest for the checker's
// narrowing pass (spec §4.5's last bullet): branches, loops, throws, and
// labeled jumps all affect which declarations are definitely assigned or
// narrowed on a given path, but deciding that is the checker's job.
func (b *binder) anchor(kind AnchorKind, node ast.NodeIndex) {
	b.result.Anchors = append(b.result.Anchors, CFGAnchor{Kind: kind, Node: node})
}

// terminatesFlow is a conservative, local approximation of "does this
// statement always leave the enclosing block via return/throw/break/
// continue". It only looks at a statement's own shape, never at what loops
// or switches around it, so it cannot see that `while (true) { ... }`
// without a break always diverges or that a switch covers every case —
// those require the full CFG the checker builds over the binder's anchors
// (spec §4.6). Used solely to seed bindStatementList's per-statement
// Reachable flag, not to emit any diagnostic itself.
func (b *binder) terminatesFlow(n ast.NodeIndex) bool {
	if n.IsNone() {
		return false
	}
	switch b.tree.Node(n).Kind {
	case ast.KindReturnStatement, ast.KindThrowStatement,
		ast.KindBreakStatement, ast.KindContinueStatement:
		return true

	case ast.KindBlock:
		d, _ := b.tree.GetBlock(n)
		for _, s := range b.tree.List(d.Statements).Items {
			if b.terminatesFlow(s) {
				return true
			}
		}
		return false

	case ast.KindIfStatement:
		d, _ := b.tree.GetIf(n)
		if d.Else.IsNone() {
			return false
		}
		return b.terminatesFlow(d.Then) && b.terminatesFlow(d.Else)

	case ast.KindTryStatement:
		d, _ := b.tree.GetTry(n)
		if !d.FinallyBlock.IsNone() && b.terminatesFlow(d.FinallyBlock) {
			return true
		}
		if !b.terminatesFlow(d.TryBlock) {
			return false
		}
		if d.CatchClause.IsNone() {
			return true
		}
		cc, ok := b.tree.GetCatchClause(d.CatchClause)
		if !ok {
			return false
		}
		return b.terminatesFlow(cc.Block)

	case ast.KindLabeledStatement:
		d, _ := b.tree.GetLabeled(n)
		return b.terminatesFlow(d.Statement)

	default:
		return false
	}
}
