package binder_test

import (
	"testing"

	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/binder"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/parser"
)

func bindSource(t *testing.T, src string) (*binder.Result, *diagnostics.Bag) {
	t.Helper()
	in := atom.New()
	diags := &diagnostics.Bag{}
	tree, root := parser.ParseSourceFile("test.ts", src, in, diags, false)
	res := binder.Bind(tree, "test.ts", root, diags)
	return res, diags
}

// topStatements returns the top-level statements of the bound file.
func topStatements(t *testing.T, res *binder.Result) []ast.NodeIndex {
	t.Helper()
	sf, ok := res.Tree.GetSourceFile(res.Root.Node)
	if !ok {
		t.Fatalf("bind result root is not a source file")
	}
	return res.Tree.List(sf.Statements).Items
}

// bodyStatements returns the statements of a function declaration's body.
func bodyStatements(t *testing.T, res *binder.Result, fn ast.NodeIndex) []ast.NodeIndex {
	t.Helper()
	fd, ok := res.Tree.GetFunction(fn)
	if !ok {
		t.Fatalf("node %d is not a function", fn)
	}
	blk, ok := res.Tree.GetBlock(fd.Body)
	if !ok {
		t.Fatalf("function %d has no block body", fn)
	}
	return res.Tree.List(blk.Statements).Items
}

// exprOf returns the expression of an expression statement.
func exprOf(t *testing.T, res *binder.Result, stmt ast.NodeIndex) ast.NodeIndex {
	t.Helper()
	es, ok := res.Tree.GetExpressionStatement(stmt)
	if !ok {
		t.Fatalf("node %d is not an expression statement", stmt)
	}
	return es.Expr
}

func TestBindVariableReferenceResolves(t *testing.T) {
	res, diags := bindSource(t, `let x = 1; x;`)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Sorted())
	}
	if len(res.Symbols) == 0 {
		t.Fatalf("expected at least one resolved symbol")
	}
	stmts := topStatements(t, res)
	vs, _ := res.Tree.GetVariableStatement(stmts[0])
	list, _ := res.Tree.GetVariableDeclarationList(vs.DeclarationList)
	vd, _ := res.Tree.GetVariableDeclaration(res.Tree.List(list.Declarations).Items[0])
	declSym := res.Symbols[vd.Name]
	refSym := res.Symbols[exprOf(t, res, stmts[1])]
	if declSym == nil || refSym != declSym {
		t.Fatalf("reference x should resolve to the symbol declared by let x, got decl=%p ref=%p", declSym, refSym)
	}
}

func TestBindFunctionHoistedForwardReference(t *testing.T) {
	// Calling f before its declaration must resolve: function declarations
	// hoist into the enclosing scope.
	res, diags := bindSource(t, `f(); function f() {}`)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Sorted())
	}
	stmts := topStatements(t, res)
	call, _ := res.Tree.GetCallExpr(exprOf(t, res, stmts[0]))
	if res.Symbols[call.Callee] == nil {
		t.Fatalf("call to f before its declaration should resolve to the hoisted function")
	}
}

func TestBindVarHoistedAcrossStatements(t *testing.T) {
	res, diags := bindSource(t, `function g() { x = 1; var x; }`)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Sorted())
	}
	inner := bodyStatements(t, res, topStatements(t, res)[0])
	assign, _ := res.Tree.GetBinaryExpr(exprOf(t, res, inner[0]))
	if res.Symbols[assign.Left] == nil {
		t.Fatalf("x = 1 before var x should resolve to the hoisted var")
	}
}

func TestBindClassAndInterfaceMerge(t *testing.T) {
	_, diags := bindSource(t, `
		class Box {}
		interface Box { extra: number }
	`)
	if diags.HasErrors() {
		t.Fatalf("class+interface merge should be legal, got: %v", diags.Sorted())
	}
}

func TestBindDuplicateClassIsConflict(t *testing.T) {
	_, diags := bindSource(t, `
		class Box {}
		class Box {}
	`)
	if !diags.HasErrors() {
		t.Fatalf("expected a duplicate-declaration error for two class Box declarations")
	}
	found := false
	for _, d := range diags.Sorted() {
		if d.Code == diagnostics.CodeDuplicateDeclaration || d.Code == diagnostics.CodeConflictingMerge {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeDuplicateDeclaration or CodeConflictingMerge, got: %v", diags.Sorted())
	}
}

func TestBindFunctionOverloadsMergeLegally(t *testing.T) {
	_, diags := bindSource(t, `
		function f(x: number): number;
		function f(x: string): string;
		function f(x: any): any { return x; }
	`)
	if diags.HasErrors() {
		t.Fatalf("overload signatures should merge without error, got: %v", diags.Sorted())
	}
}

func TestBindNamedFunctionExpressionScopedToOwnBody(t *testing.T) {
	// The inner name `self` must not leak into the enclosing scope. An
	// unresolved reference is not itself a binder-level error (that is the
	// checker's concern), so this checks that the outer `self` reference is
	// left without a recorded symbol.
	res, _ := bindSource(t, `
		const f = function self() { return self; };
		self;
	`)
	if res == nil {
		t.Fatalf("expected a non-nil bind result")
	}
	outer := exprOf(t, res, topStatements(t, res)[1])
	if res.Symbols[outer] != nil {
		t.Fatalf("function expression name self leaked into the enclosing scope")
	}
}

func TestBindLetTemporalDeadZoneNotHoisted(t *testing.T) {
	res, _ := bindSource(t, `{ y; let y = 1; }`)
	if res == nil {
		t.Fatalf("expected a non-nil bind result")
	}
	blk, _ := res.Tree.GetBlock(topStatements(t, res)[0])
	ref := exprOf(t, res, res.Tree.List(blk.Statements).Items[0])
	if res.Symbols[ref] != nil {
		t.Fatalf("reference to y before let y should not resolve: let is not hoisted")
	}
}

func TestBindReachabilityAfterReturn(t *testing.T) {
	res, _ := bindSource(t, `
		function f() {
			return 1;
			2;
		}
	`)
	found := false
	for reachable := range res.Reachable {
		_ = reachable
		found = true
	}
	if !found {
		t.Fatalf("expected at least one statement to have a recorded reachability flag")
	}
	inner := bodyStatements(t, res, topStatements(t, res)[0])
	if !res.Reachable[inner[0]] || res.Reachable[inner[1]] {
		t.Fatalf("expected return reachable and the statement after it unreachable, got %v, %v",
			res.Reachable[inner[0]], res.Reachable[inner[1]])
	}
}

func TestBindThrowRecordsAnchor(t *testing.T) {
	res, _ := bindSource(t, `function f() { throw new Error("x"); }`)
	sawThrow := false
	for _, a := range res.Anchors {
		if a.Kind == binder.AnchorThrow {
			sawThrow = true
		}
	}
	if !sawThrow {
		t.Fatalf("expected a throw statement to record an AnchorThrow")
	}
}

func TestBindNamespaceMergesWithClass(t *testing.T) {
	_, diags := bindSource(t, `
		class C {}
		namespace C { export const x = 1; }
	`)
	if diags.HasErrors() {
		t.Fatalf("namespace+class merge should be legal, got: %v", diags.Sorted())
	}
}

func TestBindTypeAliasReferencesOwnTypeParameter(t *testing.T) {
	res, diags := bindSource(t, `type Box<T> = { value: T };`)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Sorted())
	}
	ta, _ := res.Tree.GetTypeAlias(topStatements(t, res)[0])
	tp, _ := res.Tree.GetTypeParameter(res.Tree.List(ta.TypeParams).Items[0])
	lit, _ := res.Tree.GetElements(ta.Type)
	prop, _ := res.Tree.GetPropertyDecl(res.Tree.List(lit.Elements).Items[0])
	ref, _ := res.Tree.GetTypeReference(prop.Type)
	declSym := res.Symbols[tp.Name]
	if declSym == nil || res.Symbols[ref.Name] != declSym {
		t.Fatalf("T in the alias body should resolve to the alias's own type parameter")
	}
}
