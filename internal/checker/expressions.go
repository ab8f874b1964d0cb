package checker

import (
	"strconv"

	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/types"
)

// typeOfExpression dispatches type_of over every expression-shaped Kind
// (spec §4.6). It is always called through TypeOf, never directly, so the
// memo/cycle machinery already wraps every recursive call below.
func (c *Checker) typeOfExpression(node ast.NodeIndex) types.TypeId {
	n := c.Tree.Node(node)
	switch n.Kind {
	case ast.KindIdentifier:
		return c.typeOfIdentifier(node)

	case ast.KindNumericLiteral:
		lit, _ := c.Tree.GetLiteral(node)
		return c.Types.Intern(types.TypeKey{Kind: types.KindLiteralNumber, LitNumber: normalizeNumericText(c.Atoms.Resolve(lit.Text))})
	case ast.KindBigIntLiteral:
		lit, _ := c.Tree.GetLiteral(node)
		return c.Types.Intern(types.TypeKey{Kind: types.KindLiteralBigInt, LitBigInt: c.Atoms.Resolve(lit.Text)})
	case ast.KindStringLiteral, ast.KindNoSubstitutionTemplateLiteral:
		lit, _ := c.Tree.GetLiteral(node)
		return c.Types.Intern(types.TypeKey{Kind: types.KindLiteralString, LitString: c.Atoms.Resolve(lit.Text)})
	case ast.KindTrueLiteral:
		return c.Types.Intern(types.TypeKey{Kind: types.KindLiteralBoolean, LitBool: true})
	case ast.KindFalseLiteral:
		return c.Types.Intern(types.TypeKey{Kind: types.KindLiteralBoolean, LitBool: false})
	case ast.KindNullLiteral:
		return types.Null
	case ast.KindUndefinedLiteral:
		return types.Undefined
	case ast.KindThisExpression, ast.KindSuperExpression:
		// A nominal `this` type needs the enclosing class's shape, which the
		// checker does not yet track a stack for; widen to any rather than
		// silently mis-type every method body.
		return types.Any
	case ast.KindRegularExpressionLiteral:
		return types.ObjectT

	case ast.KindArrayLiteralExpression:
		return c.typeOfArrayLiteral(node)
	case ast.KindObjectLiteralExpression:
		return c.typeOfObjectLiteral(node)

	case ast.KindPropertyAccessExpression, ast.KindElementAccessExpression:
		return c.typeOfAccess(node)
	case ast.KindCallExpression, ast.KindNewExpression:
		return c.typeOfCall(node)

	case ast.KindBinaryExpression:
		return c.typeOfBinary(node)
	case ast.KindPrefixUnaryExpression, ast.KindPostfixUnaryExpression:
		return c.typeOfUnary(node)
	case ast.KindConditionalExpression:
		return c.typeOfConditional(node)

	case ast.KindParenthesizedExpression:
		data, _ := c.Tree.GetUnaryLike(node)
		return c.TypeOf(data.Expr)
	case ast.KindSpreadElement:
		data, _ := c.Tree.GetUnaryLike(node)
		return c.TypeOf(data.Expr)
	case ast.KindNonNullExpression:
		data, _ := c.Tree.GetUnaryLike(node)
		return c.nonNull(c.TypeOf(data.Expr))
	case ast.KindTypeOfExpression:
		return types.StringT
	case ast.KindVoidExpression:
		return types.Undefined
	case ast.KindDeleteExpression:
		return types.BooleanT
	case ast.KindAwaitExpression:
		data, _ := c.Tree.GetUnaryLike(node)
		return c.unwrapPromise(c.TypeOf(data.Expr))
	case ast.KindYieldExpression:
		y, _ := c.Tree.GetYield(node)
		if y.Expr.IsNone() {
			return types.Undefined
		}
		return c.TypeOf(y.Expr)

	case ast.KindFunctionExpression, ast.KindArrowFunction:
		c.checkFunctionLike(node)
		return c.typeOfFunctionLike(node)
	case ast.KindClassExpression:
		c.checkClassLike(node)
		return types.Any

	case ast.KindAsExpression, ast.KindSatisfiesExpression:
		cast, _ := c.Tree.GetTypeCast(node)
		target := c.resolveTypeNode(cast.Type)
		if n.Kind == ast.KindAsExpression {
			return target
		}
		// `satisfies` does not change the expression's static type.
		return c.TypeOf(cast.Expr)

	case ast.KindTemplateExpression:
		return types.StringT
	case ast.KindTaggedTemplateExpression:
		return types.Any

	default:
		return types.Any
	}
}

func (c *Checker) typeOfIdentifier(node ast.NodeIndex) types.TypeId {
	sym := c.resolveSym(node)
	if sym == nil {
		id, _ := c.Tree.GetIdentifier(node)
		c.addErrorf(diagnostics.CodeCannotFindName, node, "Cannot find name '%s'.", c.Atoms.Resolve(id.Text))
		return types.Any
	}
	return c.SymbolType(sym)
}

// nonNull strips null/undefined from an expression's type, spec §4.6's
// effect for the `!` postfix operator; kept as its own helper since the
// inline dispatch above needs it without a bogus typeof tag.
func (c *Checker) nonNull(t types.TypeId) types.TypeId {
	key := c.Types.Key(t)
	if key.Kind != types.KindUnion {
		if t == types.Null || t == types.Undefined {
			return types.Never
		}
		return t
	}
	kept := make([]types.TypeId, 0, len(key.Set))
	for _, m := range key.Set {
		if m != types.Null && m != types.Undefined {
			kept = append(kept, m)
		}
	}
	return c.Types.MakeUnion(kept)
}

func (c *Checker) unwrapPromise(t types.TypeId) types.TypeId {
	key := c.Types.Key(t)
	if key.Kind == types.KindTypeReference && len(key.Args) == 1 {
		if key.RefSymbol != nil && c.Atoms.Resolve(key.RefSymbol.Name) == "Promise" {
			return key.Args[0]
		}
	}
	return t
}

func (c *Checker) typeOfArrayLiteral(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetElements(node)
	list := c.Tree.List(data.Elements)
	if len(list.Items) == 0 {
		return c.Types.MakeArray(types.Any)
	}
	members := make([]types.TypeId, 0, len(list.Items))
	for _, el := range list.Items {
		if c.Tree.Node(el).Kind == ast.KindSpreadElement {
			spread, _ := c.Tree.GetUnaryLike(el)
			elemT := c.Types.Key(c.TypeOf(spread.Expr)).Elem
			members = append(members, elemT)
			continue
		}
		members = append(members, c.Types.Widen(c.TypeOf(el)))
	}
	return c.Types.MakeArray(c.Types.MakeUnion(members))
}

func (c *Checker) typeOfObjectLiteral(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetElements(node)
	list := c.Tree.List(data.Elements)
	members := make([]types.Member, 0, len(list.Items))
	for _, el := range list.Items {
		pa, ok := c.Tree.GetPropertyAssignment(el)
		if !ok {
			continue
		}
		switch c.Tree.Node(el).Kind {
		case ast.KindSpreadAssignment:
			spreadT := c.TypeOf(pa.Initializer)
			key := c.Types.Key(spreadT)
			if key.Kind == types.KindObject || key.Kind == types.KindObjectWithIndex {
				shape := c.Types.Objects.Get(key.Object)
				members = append(members, shape.Members...)
			}
		default:
			name := c.nameOfPropertyKey(pa.Name)
			initT := c.TypeOf(pa.Initializer)
			if c.Tree.Node(el).Kind == ast.KindShorthandPropertyAssignment {
				initT = c.typeOfIdentifier(pa.Name)
			}
			members = append(members, types.Member{Name: name, Type: c.Types.Widen(initT)})
		}
	}
	return c.Types.MakeObject(types.ObjectShape{Members: members})
}

// nameOfPropertyKey extracts the member name an object-literal key/property
// name node carries. Computed keys (`[expr]: v`) are not yet given a static
// name; they fall back to the empty atom, which cannot collide with a real
// identifier member since the scanner never produces one.
func (c *Checker) nameOfPropertyKey(node ast.NodeIndex) atom.Atom {
	if id, ok := c.Tree.GetIdentifier(node); ok {
		return id.Text
	}
	if lit, ok := c.Tree.GetLiteral(node); ok {
		return lit.Text
	}
	return atom.Empty
}

func (c *Checker) typeOfAccess(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetAccessExpr(node)
	objT := c.TypeOf(data.Expr)
	if data.OptionalChain {
		objT = c.nonNull(objT)
	}
	var keyT types.TypeId
	if c.Tree.Node(node).Kind == ast.KindPropertyAccessExpression {
		id, ok := c.Tree.GetIdentifier(data.NameOrIndex)
		if !ok {
			return types.Any
		}
		keyT = c.Types.Intern(types.TypeKey{Kind: types.KindLiteralString, LitString: c.Atoms.Resolve(id.Text)})
	} else {
		keyT = c.TypeOf(data.NameOrIndex)
	}

	objKey := c.Types.Key(objT)
	if objKey.Kind == types.KindArray {
		if keyT == types.NumberT || c.Types.Key(keyT).Kind == types.KindLiteralNumber {
			if c.Opts.NoUncheckedIndexedAccess {
				return c.Types.MakeUnion([]types.TypeId{objKey.Elem, types.Undefined})
			}
			return objKey.Elem
		}
	}
	if objKey.Kind == types.KindObject || objKey.Kind == types.KindObjectWithIndex {
		resolved, ok := c.Types.IndexSignatureResolve(objKey.Object, keyT)
		if ok {
			return resolved
		}
		if c.Tree.Node(node).Kind == ast.KindPropertyAccessExpression {
			id, _ := c.Tree.GetIdentifier(data.NameOrIndex)
			c.addErrorf(diagnostics.CodePropertyMissing, node, "Property '%s' does not exist on type '%s'.", c.Atoms.Resolve(id.Text), c.Types.String(objT))
		}
		return types.Any
	}
	if objT == types.Any || objT == types.Unknown {
		return types.Any
	}
	return types.Any
}

func (c *Checker) typeOfCall(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetCallExpr(node)
	calleeT := c.TypeOf(data.Callee)
	key := c.Types.Key(calleeT)

	var candidates []types.CallableShapeId
	switch key.Kind {
	case types.KindCallable:
		candidates = []types.CallableShapeId{key.Callable}
	case types.KindObject, types.KindObjectWithIndex:
		shape := c.Types.Objects.Get(key.Object)
		if c.Tree.Node(node).Kind == ast.KindNewExpression {
			candidates = shape.ConstructSignatures
		} else {
			candidates = shape.CallSignatures
		}
	}
	if len(candidates) == 0 {
		if calleeT == types.Any || calleeT == types.Unknown {
			return types.Any
		}
		c.addErrorf(diagnostics.CodeNoOverloadMatches, node, "This expression is not callable.")
		return types.Any
	}

	argList := c.Tree.List(data.Arguments)
	argTypes := make([]types.TypeId, len(argList.Items))
	for i, a := range argList.Items {
		argTypes[i] = c.TypeOf(a)
	}
	chosen, ok := c.Types.ResolveOverload(candidates, argTypes, c.Opts.StrictNullChecks)
	if !ok {
		c.addErrorf(diagnostics.CodeNoOverloadMatches, node, "No overload matches this call.")
		return types.Any
	}
	shape := c.Types.Callables.Get(chosen)
	if c.Tree.Node(node).Kind == ast.KindNewExpression {
		return calleeT
	}
	return shape.ReturnType
}

func normalizeNumericText(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return s
}

// typeOfBinary, typeOfUnary, and typeOfConditional (the operator-driven
// dispatch table this file's switch above calls into) live in operators.go
// alongside the token.Kind constants they need.
