package checker

import (
	"sort"
	"strings"

	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/binder"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/token"
	"github.com/gotsc/gotsc/internal/types"
)

// CheckSound runs the sound-mode pass (spec §9's open question, resolved
// by exposing each of the original's four unsoundness checks behind its
// own 9000-series code): mutable-array covariance, excess properties
// leaking through an alias, any-escapes, and method-parameter bivariant
// overrides. It re-walks the statement tree independently of
// checkStatement (mirroring reachability.go's own walk) rather than
// threading Opts.Sound through the main pass, so turning Sound off costs
// nothing in the common path.
func (c *Checker) CheckSound(root ast.NodeIndex) {
	sf, ok := c.Tree.GetSourceFile(root)
	if !ok {
		return
	}
	for _, s := range c.Tree.List(sf.Statements).Items {
		c.soundStatement(s)
	}
}

func (c *Checker) soundStatement(s ast.NodeIndex) {
	if s.IsNone() {
		return
	}
	switch c.Tree.Node(s).Kind {
	case ast.KindVariableStatement:
		vs, _ := c.Tree.GetVariableStatement(s)
		list, ok := c.Tree.GetVariableDeclarationList(vs.DeclarationList)
		if !ok {
			return
		}
		for _, decl := range c.Tree.List(list.Declarations).Items {
			d, ok := c.Tree.GetVariableDeclaration(decl)
			if !ok || d.Type.IsNone() || d.Initializer.IsNone() {
				continue
			}
			c.checkSoundAssignment(c.TypeOf(d.Initializer), c.resolveTypeNode(d.Type), d.Initializer)
		}

	case ast.KindExpressionStatement:
		es, _ := c.Tree.GetExpressionStatement(s)
		if c.Tree.Node(es.Expr).Kind == ast.KindBinaryExpression {
			data, _ := c.Tree.GetBinaryExpr(es.Expr)
			if data.Operator == token.Equals {
				c.checkSoundAssignment(c.TypeOf(data.Right), c.TypeOf(data.Left), data.Right)
			}
		}

	case ast.KindReturnStatement:
		r, _ := c.Tree.GetReturn(s)
		if !r.Expr.IsNone() && len(c.enclosingFunctionReturn) > 0 {
			target := c.enclosingFunctionReturn[len(c.enclosingFunctionReturn)-1]
			if target != types.Any {
				c.checkSoundAssignment(c.TypeOf(r.Expr), target, r.Expr)
			}
		}

	case ast.KindBlock:
		b, _ := c.Tree.GetBlock(s)
		for _, st := range c.Tree.List(b.Statements).Items {
			c.soundStatement(st)
		}
	case ast.KindIfStatement:
		d, _ := c.Tree.GetIf(s)
		c.soundStatement(d.Then)
		c.soundStatement(d.Else)
	case ast.KindWhileStatement:
		d, _ := c.Tree.GetWhile(s)
		c.soundStatement(d.Statement)
	case ast.KindDoStatement:
		d, _ := c.Tree.GetDo(s)
		c.soundStatement(d.Statement)
	case ast.KindForStatement:
		d, _ := c.Tree.GetFor(s)
		c.soundStatement(d.Statement)
	case ast.KindForInStatement, ast.KindForOfStatement:
		d, _ := c.Tree.GetForInOf(s)
		c.soundStatement(d.Statement)
	case ast.KindSwitchStatement:
		d, _ := c.Tree.GetSwitch(s)
		for _, cl := range c.Tree.List(d.Clauses).Items {
			cd, _ := c.Tree.GetCaseClause(cl)
			for _, st := range c.Tree.List(cd.Statements).Items {
				c.soundStatement(st)
			}
		}
	case ast.KindTryStatement:
		d, _ := c.Tree.GetTry(s)
		c.soundStatement(d.TryBlock)
		if !d.CatchClause.IsNone() {
			cc, _ := c.Tree.GetCatchClause(d.CatchClause)
			c.soundStatement(cc.Block)
		}
		c.soundStatement(d.FinallyBlock)
	case ast.KindLabeledStatement:
		d, _ := c.Tree.GetLabeled(s)
		c.soundStatement(d.Statement)

	case ast.KindFunctionDeclaration:
		c.soundFunctionBody(s)

	case ast.KindClassDeclaration:
		c.soundClass(s)
	}
}

func (c *Checker) soundFunctionBody(node ast.NodeIndex) {
	fn, ok := c.Tree.GetFunction(node)
	if !ok || fn.Body.IsNone() || fn.ConciseBody {
		return
	}
	ret := types.Any
	if !fn.ReturnType.IsNone() {
		ret = c.resolveTypeNode(fn.ReturnType)
	}
	c.enclosingFunctionReturn = append(c.enclosingFunctionReturn, ret)
	c.soundStatement(fn.Body)
	c.enclosingFunctionReturn = c.enclosingFunctionReturn[:len(c.enclosingFunctionReturn)-1]
}

// soundClass checks every property initializer and method body of a
// class for the three assignment-site unsoundnesses, and additionally
// scans the class's own method overrides against its base class for
// parameter bivariance (spec §9's "method-parameter bivariance" check,
// which needs the override relationship rather than a single assignment
// site).
func (c *Checker) soundClass(node ast.NodeIndex) {
	class, ok := c.Tree.GetClass(node)
	if !ok {
		return
	}
	for _, m := range c.Tree.List(class.Members).Items {
		switch c.Tree.Node(m).Kind {
		case ast.KindPropertyDeclaration:
			pd, _ := c.Tree.GetPropertyDecl(m)
			if !pd.Type.IsNone() && !pd.Initializer.IsNone() {
				c.checkSoundAssignment(c.TypeOf(pd.Initializer), c.resolveTypeNode(pd.Type), pd.Initializer)
			}
		case ast.KindMethodDeclaration, ast.KindConstructorDeclaration, ast.KindGetAccessor, ast.KindSetAccessor:
			md, _ := c.Tree.GetMethodDecl(m)
			if !md.Body.IsNone() {
				ret := types.Any
				if !md.ReturnType.IsNone() {
					ret = c.resolveTypeNode(md.ReturnType)
				}
				c.enclosingFunctionReturn = append(c.enclosingFunctionReturn, ret)
				c.soundStatement(md.Body)
				c.enclosingFunctionReturn = c.enclosingFunctionReturn[:len(c.enclosingFunctionReturn)-1]
			}
		}
	}
	c.checkMethodBivariance(class)
}

// checkMethodBivariance resolves class's `extends` base (if any) and
// compares each same-named method override's parameter types against the
// base's: TypeScript historically accepts a narrowed parameter (method
// syntax is checked bivariantly) even though that is unsound under
// strict contravariance, which is exactly the gap sound mode closes.
func (c *Checker) checkMethodBivariance(class ast.ClassData) {
	baseSym := c.resolveExtendsSymbol(class.Heritage)
	if baseSym == nil {
		return
	}
	baseKey := c.Types.Key(c.DeclaredType(baseSym))
	if baseKey.Kind != types.KindObject && baseKey.Kind != types.KindObjectWithIndex {
		return
	}
	baseShape := c.Types.Objects.Get(baseKey.Object)

	for _, m := range c.Tree.List(class.Members).Items {
		if c.Tree.Node(m).Kind != ast.KindMethodDeclaration {
			continue
		}
		md, _ := c.Tree.GetMethodDecl(m)
		name := c.nameOfPropertyKey(md.Name)
		idx, ok := baseShape.MemberIndex[name]
		if !ok {
			continue
		}
		baseMember := baseShape.Members[idx]
		baseCallKey := c.Types.Key(baseMember.Type)
		if baseCallKey.Kind != types.KindCallable {
			continue
		}
		baseSig := c.Types.Callables.Get(baseCallKey.Callable)
		overrideSig := c.signatureShapeOf(md)

		n := len(baseSig.Parameters)
		if len(overrideSig.Parameters) < n {
			n = len(overrideSig.Parameters)
		}
		for i := 0; i < n; i++ {
			baseParam := baseSig.Parameters[i].Type
			overrideParam := overrideSig.Parameters[i].Type
			contravariantOK := c.Types.Assignable(baseParam, overrideParam, c.Opts.StrictNullChecks)
			bivariantOK := c.Types.Assignable(overrideParam, baseParam, c.Opts.StrictNullChecks)
			if !contravariantOK && bivariantOK {
				c.addErrorf(diagnostics.CodeSoundMethodBivariance, m,
					"Method '%s' narrows parameter %d from '%s' to '%s'; only accepted because method parameters are checked bivariantly outside sound mode.",
					c.Atoms.Resolve(name), i+1, c.Types.String(baseParam), c.Types.String(overrideParam))
			}
		}
	}
}

func (c *Checker) resolveExtendsSymbol(heritage ast.ListIndex) *binder.Symbol {
	for _, h := range c.Tree.List(heritage).Items {
		hd, ok := c.Tree.GetHeritageClause(h)
		if !ok || !hd.IsExtends {
			continue
		}
		typeRefs := c.Tree.List(hd.Types).Items
		if len(typeRefs) == 0 {
			continue
		}
		ref, ok := c.Tree.GetTypeReference(typeRefs[0])
		if !ok {
			continue
		}
		return c.resolveSym(ref.Name)
	}
	return nil
}

// checkSoundAssignment applies the three assignment-site sound-mode
// checks to one source-to-target typing: any-escape, mutable-array
// covariance, and excess properties surviving an alias.
func (c *Checker) checkSoundAssignment(source, target types.TypeId, node ast.NodeIndex) {
	if source == types.Any && target != types.Any && target != types.Unknown {
		c.addErrorf(diagnostics.CodeSoundAnyEscape, node,
			"Type 'any' flows into declared type '%s'; sound mode requires an explicit assertion.", c.Types.String(target))
	}

	sKey := c.Types.Key(source)
	tKey := c.Types.Key(target)

	if sKey.Kind == types.KindArray && tKey.Kind == types.KindArray &&
		sKey.Elem != tKey.Elem && !c.Types.Identical(sKey.Elem, tKey.Elem) &&
		c.Types.Assignable(sKey.Elem, tKey.Elem, c.Opts.StrictNullChecks) {
		c.addErrorf(diagnostics.CodeSoundMutableArrayCovariance, node,
			"Array element type '%s' is only covariantly assignable to '%s'; mutable arrays are invariant in sound mode.",
			c.Types.String(sKey.Elem), c.Types.String(tKey.Elem))
	}

	isObjectLike := func(k types.TypeKey) bool {
		return k.Kind == types.KindObject || k.Kind == types.KindObjectWithIndex
	}
	if isObjectLike(sKey) && isObjectLike(tKey) {
		if excess := c.excessMembers(sKey.Object, tKey.Object); len(excess) > 0 {
			names := make([]string, len(excess))
			for i, a := range excess {
				names[i] = c.Atoms.Resolve(a)
			}
			sort.Strings(names)
			c.addErrorf(diagnostics.CodeSoundExcessPropertyViaAlias, node,
				"Object type has excess propert%s %s not present in target type '%s'; sound mode checks this even through an intermediate alias.",
				pluralSuffix(len(names)), strings.Join(names, ", "), c.Types.String(target))
		}
	}
}

// excessMembers returns member names present in source but absent from
// target (and not covered by target's string index signature).
func (c *Checker) excessMembers(source, target types.ObjectShapeId) []atom.Atom {
	srcShape := c.Types.Objects.Get(source)
	tgtShape := c.Types.Objects.Get(target)
	var out []atom.Atom
	for _, m := range srcShape.Members {
		if _, ok := tgtShape.MemberIndex[m.Name]; ok {
			continue
		}
		if tgtShape.StringIndex != nil {
			continue
		}
		out = append(out, m.Name)
	}
	return out
}

func pluralSuffix(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
