package checker

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/types"
)

// checkStatement drives type_of over one statement and whatever it
// declares, recursing into nested statement lists and function/class
// bodies so every reachable expression gets forced through TypeOf at
// least once (spec §4.6's "force type_of across every statement" check
// entry point, grounded on the teacher's AnalyzeSourceFile walking every
// top-level declaration then descending into bodies).
func (c *Checker) checkStatement(stmt ast.NodeIndex) {
	if stmt.IsNone() {
		return
	}
	switch c.Tree.Node(stmt).Kind {
	case ast.KindVariableStatement:
		c.checkVariableStatement(stmt)

	case ast.KindExpressionStatement:
		es, _ := c.Tree.GetExpressionStatement(stmt)
		c.TypeOf(es.Expr)

	case ast.KindIfStatement:
		d, _ := c.Tree.GetIf(stmt)
		c.TypeOf(d.Condition)
		c.checkStatement(d.Then)
		c.checkStatement(d.Else)

	case ast.KindWhileStatement:
		d, _ := c.Tree.GetWhile(stmt)
		c.TypeOf(d.Condition)
		c.checkStatement(d.Statement)

	case ast.KindDoStatement:
		d, _ := c.Tree.GetDo(stmt)
		c.checkStatement(d.Statement)
		c.TypeOf(d.Condition)

	case ast.KindForStatement:
		d, _ := c.Tree.GetFor(stmt)
		c.checkForInit(d.Initializer)
		if !d.Condition.IsNone() {
			c.TypeOf(d.Condition)
		}
		if !d.Incrementor.IsNone() {
			c.TypeOf(d.Incrementor)
		}
		c.checkStatement(d.Statement)

	case ast.KindForInStatement, ast.KindForOfStatement:
		d, _ := c.Tree.GetForInOf(stmt)
		c.checkForInit(d.Initializer)
		c.TypeOf(d.Expr)
		c.checkStatement(d.Statement)

	case ast.KindReturnStatement:
		c.checkReturnStatement(stmt)

	case ast.KindThrowStatement:
		d, _ := c.Tree.GetThrow(stmt)
		c.TypeOf(d.Expr)

	case ast.KindBlock:
		b, _ := c.Tree.GetBlock(stmt)
		for _, s := range c.Tree.List(b.Statements).Items {
			c.checkStatement(s)
		}

	case ast.KindTryStatement:
		d, _ := c.Tree.GetTry(stmt)
		c.checkStatement(d.TryBlock)
		if !d.CatchClause.IsNone() {
			cc, _ := c.Tree.GetCatchClause(d.CatchClause)
			if !cc.Param.IsNone() {
				sym := c.resolveSym(cc.Param)
				c.SymbolType(sym)
			}
			if !cc.Type.IsNone() {
				c.resolveTypeNode(cc.Type)
			}
			c.checkStatement(cc.Block)
		}
		if !d.FinallyBlock.IsNone() {
			c.checkStatement(d.FinallyBlock)
		}

	case ast.KindSwitchStatement:
		d, _ := c.Tree.GetSwitch(stmt)
		c.TypeOf(d.Expr)
		for _, cl := range c.Tree.List(d.Clauses).Items {
			cd, _ := c.Tree.GetCaseClause(cl)
			if !cd.Expr.IsNone() {
				c.TypeOf(cd.Expr)
			}
			for _, s := range c.Tree.List(cd.Statements).Items {
				c.checkStatement(s)
			}
		}

	case ast.KindLabeledStatement:
		d, _ := c.Tree.GetLabeled(stmt)
		c.checkStatement(d.Statement)

	case ast.KindFunctionDeclaration:
		c.checkFunctionLike(stmt)

	case ast.KindClassDeclaration:
		c.checkClassLike(stmt)

	case ast.KindInterfaceDeclaration:
		id, _ := c.Tree.GetInterface(stmt)
		c.DeclaredType(c.resolveSym(id.Name))

	case ast.KindTypeAliasDeclaration:
		ta, _ := c.Tree.GetTypeAlias(stmt)
		c.DeclaredType(c.resolveSym(ta.Name))

	case ast.KindEnumDeclaration:
		e, _ := c.Tree.GetEnum(stmt)
		sym := c.resolveSym(e.Name)
		c.SymbolType(sym)
		c.DeclaredType(sym)

	case ast.KindModuleDeclaration:
		m, _ := c.Tree.GetModule(stmt)
		if !m.Body.IsNone() {
			b, ok := c.Tree.GetBlock(m.Body)
			if ok {
				for _, s := range c.Tree.List(b.Statements).Items {
					c.checkStatement(s)
				}
			}
		}

	default:
		// Import/export/debugger/empty statements carry no type_of work.
	}
}

// checkForInit handles a for-loop's Initializer clause, which is either a
// KindVariableDeclarationList (not itself a KindVariableStatement) or a
// plain expression, or arena.None for `for (;;)`.
func (c *Checker) checkForInit(node ast.NodeIndex) {
	if node.IsNone() {
		return
	}
	if list, ok := c.Tree.GetVariableDeclarationList(node); ok {
		c.checkVariableDeclarationList(list)
		return
	}
	c.TypeOf(node)
}

func (c *Checker) checkVariableStatement(stmt ast.NodeIndex) {
	vs, _ := c.Tree.GetVariableStatement(stmt)
	list, ok := c.Tree.GetVariableDeclarationList(vs.DeclarationList)
	if !ok {
		return
	}
	c.checkVariableDeclarationList(list)
}

func (c *Checker) checkVariableDeclarationList(list ast.VariableDeclarationListData) {
	for _, decl := range c.Tree.List(list.Declarations).Items {
		d, ok := c.Tree.GetVariableDeclaration(decl)
		if !ok {
			continue
		}
		if sym := c.resolveSym(d.Name); sym != nil {
			c.SymbolType(sym)
		}
		if !d.Type.IsNone() && !d.Initializer.IsNone() {
			declT := c.resolveTypeNode(d.Type)
			initT := c.TypeOf(d.Initializer)
			if !c.Types.Assignable(initT, declT, c.Opts.StrictNullChecks) {
				c.addErrorf(diagnostics.CodeTypeNotAssignable, d.Initializer,
					"Type '%s' is not assignable to type '%s'.", c.Types.String(initT), c.Types.String(declT))
			}
		}
	}
}

func (c *Checker) checkReturnStatement(stmt ast.NodeIndex) {
	r, _ := c.Tree.GetReturn(stmt)
	var t types.TypeId
	if r.Expr.IsNone() {
		t = types.Undefined
	} else {
		t = c.TypeOf(r.Expr)
	}
	if len(c.enclosingFunctionReturn) == 0 {
		return
	}
	target := c.enclosingFunctionReturn[len(c.enclosingFunctionReturn)-1]
	if target == types.Any {
		return
	}
	if !c.Types.Assignable(t, target, c.Opts.StrictNullChecks) {
		c.addErrorf(diagnostics.CodeTypeNotAssignable, stmt,
			"Type '%s' is not assignable to type '%s'.", c.Types.String(t), c.Types.String(target))
	}
}

// checkFunctionLike checks a function declaration/expression/arrow
// function's own body, pushing its declared return type (or types.Any,
// when inferred, so inference can never conflict with itself) onto
// enclosingFunctionReturn for nested return statements to check against.
func (c *Checker) checkFunctionLike(node ast.NodeIndex) {
	fn, ok := c.Tree.GetFunction(node)
	if !ok {
		return
	}
	if !fn.Name.IsNone() {
		if sym := c.resolveSym(fn.Name); sym != nil {
			c.SymbolType(sym)
		}
	}
	c.checkFunctionBody(fn.Params, fn.ReturnType, fn.Body, fn.ConciseBody)
}

// checkMethodLike mirrors checkFunctionLike for a class/interface member
// (method, constructor, accessor), whose params/return/body live in
// MethodDeclData rather than FunctionData.
func (c *Checker) checkMethodLike(node ast.NodeIndex) {
	md, ok := c.Tree.GetMethodDecl(node)
	if !ok {
		return
	}
	c.checkFunctionBody(md.Params, md.ReturnType, md.Body, false)
}

// checkFunctionBody checks a parameter list and body shared by both
// function-like and method-like declarations.
func (c *Checker) checkFunctionBody(params ast.ListIndex, returnType, body ast.NodeIndex, concise bool) {
	for _, p := range c.Tree.List(params).Items {
		if pd, ok := c.Tree.GetParameter(p); ok {
			if sym := c.resolveSym(pd.Name); sym != nil {
				c.SymbolType(sym)
			}
		}
	}

	var ret types.TypeId = types.Any
	if !returnType.IsNone() {
		ret = c.resolveTypeNode(returnType)
	}
	c.enclosingFunctionReturn = append(c.enclosingFunctionReturn, ret)
	defer func() { c.enclosingFunctionReturn = c.enclosingFunctionReturn[:len(c.enclosingFunctionReturn)-1] }()

	if body.IsNone() {
		return
	}
	if concise {
		c.TypeOf(body)
		return
	}
	c.checkStatement(body)
}

// checkClassLike checks every member body of a class declaration/
// expression: method/constructor/accessor bodies get the same
// enclosingFunctionReturn treatment as standalone functions, and property
// initializers are forced through TypeOf.
func (c *Checker) checkClassLike(node ast.NodeIndex) {
	class, ok := c.Tree.GetClass(node)
	if !ok {
		return
	}
	if !class.Name.IsNone() {
		if sym := c.resolveSym(class.Name); sym != nil {
			c.SymbolType(sym)
			c.DeclaredType(sym)
		}
	}
	for _, m := range c.Tree.List(class.Members).Items {
		switch c.Tree.Node(m).Kind {
		case ast.KindPropertyDeclaration:
			pd, _ := c.Tree.GetPropertyDecl(m)
			if !pd.Initializer.IsNone() {
				initT := c.TypeOf(pd.Initializer)
				if !pd.Type.IsNone() {
					declT := c.resolveTypeNode(pd.Type)
					if !c.Types.Assignable(initT, declT, c.Opts.StrictNullChecks) {
						c.addErrorf(diagnostics.CodeTypeNotAssignable, pd.Initializer,
							"Type '%s' is not assignable to type '%s'.", c.Types.String(initT), c.Types.String(declT))
					}
				}
			}
		case ast.KindMethodDeclaration, ast.KindConstructorDeclaration, ast.KindGetAccessor, ast.KindSetAccessor:
			c.checkMethodLike(m)
		}
	}
}
