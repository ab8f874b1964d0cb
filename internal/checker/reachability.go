package checker

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/diagnostics"
)

// CheckReachability walks root's statement list tracking whether control
// flow can still reach each statement, superseding the binder's
// approximate per-statement Reachable map (spec §4.5's map is a cheap
// upper bound; this is the real flow-sensitive pass spec §4.6 wants wired
// to a diagnostic). A statement found unreachable is reported once, at
// CodeUnreachableCode, unless Options.AllowUnreachableCode suppresses it.
func (c *Checker) CheckReachability(root ast.NodeIndex) {
	sf, ok := c.Tree.GetSourceFile(root)
	if !ok {
		return
	}
	c.reachStatements(c.Tree.List(sf.Statements).Items, true)
}

// reachStatements walks a statement list in order, returning whether
// control can fall off the end of the list.
func (c *Checker) reachStatements(stmts []ast.NodeIndex, reachable bool) bool {
	for _, s := range stmts {
		if !reachable && isExecutableStatement(c.Tree.Node(s).Kind) {
			if !c.Opts.AllowUnreachableCode {
				c.addErrorf(diagnostics.CodeUnreachableCode, s, "Unreachable code detected.")
			}
		}
		reachable = c.reachStatement(s, reachable)
	}
	return reachable
}

// reachStatement reports any unreachable statement nested inside s and
// returns whether control falls through past s.
func (c *Checker) reachStatement(s ast.NodeIndex, reachable bool) bool {
	switch c.Tree.Node(s).Kind {
	case ast.KindBlock:
		b, _ := c.Tree.GetBlock(s)
		return c.reachStatements(c.Tree.List(b.Statements).Items, reachable)

	case ast.KindIfStatement:
		d, _ := c.Tree.GetIf(s)
		thenEnd := c.reachStatement(d.Then, reachable)
		if d.Else.IsNone() {
			return reachable || thenEnd
		}
		elseEnd := c.reachStatement(d.Else, reachable)
		return thenEnd || elseEnd

	case ast.KindReturnStatement, ast.KindThrowStatement, ast.KindBreakStatement, ast.KindContinueStatement:
		return false

	case ast.KindWhileStatement:
		d, _ := c.Tree.GetWhile(s)
		c.reachStatement(d.Statement, reachable)
		if isLiteralTrue(c.Tree, d.Condition) && !containsBreak(c.Tree, d.Statement) {
			return false
		}
		return true

	case ast.KindDoStatement:
		d, _ := c.Tree.GetDo(s)
		bodyEnd := c.reachStatement(d.Statement, reachable)
		if isLiteralTrue(c.Tree, d.Condition) && !containsBreak(c.Tree, d.Statement) {
			return false
		}
		return bodyEnd || true

	case ast.KindForStatement:
		d, _ := c.Tree.GetFor(s)
		c.reachStatement(d.Statement, reachable)
		if d.Condition.IsNone() && !containsBreak(c.Tree, d.Statement) {
			return false
		}
		return true

	case ast.KindForInStatement, ast.KindForOfStatement:
		d, _ := c.Tree.GetForInOf(s)
		c.reachStatement(d.Statement, reachable)
		return true

	case ast.KindSwitchStatement:
		d, _ := c.Tree.GetSwitch(s)
		clauses := c.Tree.List(d.Clauses).Items
		hasDefault := false
		anyFallsThrough := false
		for _, cl := range clauses {
			cd, _ := c.Tree.GetCaseClause(cl)
			if cd.Expr.IsNone() {
				hasDefault = true
			}
			clauseEnd := c.reachStatements(c.Tree.List(cd.Statements).Items, true)
			if clauseEnd {
				anyFallsThrough = true
			}
		}
		if !hasDefault {
			return true
		}
		return anyFallsThrough

	case ast.KindTryStatement:
		d, _ := c.Tree.GetTry(s)
		tryEnd := c.reachStatement(d.TryBlock, reachable)
		combined := tryEnd
		if !d.CatchClause.IsNone() {
			cc, _ := c.Tree.GetCatchClause(d.CatchClause)
			catchEnd := c.reachStatement(cc.Block, true)
			combined = combined || catchEnd
		}
		if !d.FinallyBlock.IsNone() {
			finallyEnd := c.reachStatement(d.FinallyBlock, true)
			if !finallyEnd {
				return false
			}
		}
		return combined

	case ast.KindLabeledStatement:
		d, _ := c.Tree.GetLabeled(s)
		return c.reachStatement(d.Statement, reachable)

	case ast.KindFunctionDeclaration:
		fn, _ := c.Tree.GetFunction(s)
		if !fn.Body.IsNone() && !fn.ConciseBody {
			c.reachStatement(fn.Body, true)
		}
		return reachable

	case ast.KindClassDeclaration:
		class, _ := c.Tree.GetClass(s)
		for _, m := range c.Tree.List(class.Members).Items {
			switch c.Tree.Node(m).Kind {
			case ast.KindMethodDeclaration, ast.KindConstructorDeclaration, ast.KindGetAccessor, ast.KindSetAccessor:
				md, _ := c.Tree.GetMethodDecl(m)
				if !md.Body.IsNone() {
					c.reachStatement(md.Body, true)
				}
			}
		}
		return reachable

	default:
		return reachable
	}
}

// isExecutableStatement reports whether kind produces runtime effect at
// the point it appears, so a copy of it found with reachable=false is a
// real unreachable-code diagnostic rather than a hoisted declaration that
// tsc also lets pass silently.
func isExecutableStatement(kind ast.Kind) bool {
	switch kind {
	case ast.KindFunctionDeclaration, ast.KindInterfaceDeclaration, ast.KindTypeAliasDeclaration,
		ast.KindEmptyStatement:
		return false
	default:
		return true
	}
}

func isLiteralTrue(tree *ast.Tree, node ast.NodeIndex) bool {
	return !node.IsNone() && tree.Node(node).Kind == ast.KindTrueLiteral
}

// containsBreak reports whether an unlabeled break reachable from node
// would target node's own loop, stopping the scan at any nested
// loop/switch (which would consume the break itself) or function
// boundary, mirroring declarations.go's collectReturnTypes walk.
func containsBreak(tree *ast.Tree, node ast.NodeIndex) bool {
	found := false
	var walk func(ast.NodeIndex)
	walk = func(n ast.NodeIndex) {
		if n.IsNone() || found {
			return
		}
		switch tree.Node(n).Kind {
		case ast.KindBreakStatement:
			j, _ := tree.GetJump(n)
			if j.Label.IsNone() {
				found = true
			}
		case ast.KindWhileStatement, ast.KindDoStatement, ast.KindForStatement,
			ast.KindForInStatement, ast.KindForOfStatement, ast.KindSwitchStatement,
			ast.KindFunctionDeclaration, ast.KindFunctionExpression, ast.KindArrowFunction, ast.KindClassDeclaration:
			return
		case ast.KindBlock:
			b, _ := tree.GetBlock(n)
			for _, st := range tree.List(b.Statements).Items {
				walk(st)
			}
		case ast.KindIfStatement:
			d, _ := tree.GetIf(n)
			walk(d.Then)
			walk(d.Else)
		case ast.KindTryStatement:
			d, _ := tree.GetTry(n)
			walk(d.TryBlock)
			if !d.CatchClause.IsNone() {
				cc, _ := tree.GetCatchClause(d.CatchClause)
				walk(cc.Block)
			}
			walk(d.FinallyBlock)
		case ast.KindLabeledStatement:
			d, _ := tree.GetLabeled(n)
			walk(d.Statement)
		}
	}
	walk(node)
	return found
}
