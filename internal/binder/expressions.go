package binder

import "github.com/gotsc/gotsc/internal/ast"

// bindExpression resolves every identifier reference reachable from n and
// recurses into every child expression. It never allocates a Symbol —
// only declarations do that.
func (b *binder) bindExpression(n ast.NodeIndex) {
	if n.IsNone() {
		return
	}
	node := b.tree.Node(n)
	switch node.Kind {
	case ast.KindIdentifier:
		if name, ok := b.identifierAtom(n); ok {
			b.resolveReference(n, name, MeaningValue)
		}

	case ast.KindThisExpression, ast.KindSuperExpression, ast.KindPrivateIdentifier,
		ast.KindNumericLiteral, ast.KindBigIntLiteral, ast.KindStringLiteral,
		ast.KindNoSubstitutionTemplateLiteral, ast.KindRegularExpressionLiteral,
		ast.KindTrueLiteral, ast.KindFalseLiteral, ast.KindNullLiteral,
		ast.KindUndefinedLiteral, ast.KindOmittedExpression, ast.KindJSXText:
		// leaves; no nested references

	case ast.KindArrayLiteralExpression, ast.KindObjectLiteralExpression:
		d, _ := b.tree.GetElements(n)
		for _, el := range b.tree.List(d.Elements).Items {
			b.bindExpression(el)
		}

	case ast.KindPropertyAssignment, ast.KindShorthandPropertyAssignment, ast.KindSpreadAssignment:
		d, _ := b.tree.GetPropertyAssignment(n)
		if node.Kind == ast.KindShorthandPropertyAssignment {
			// `{ x }` means `{ x: x }`: the name is itself the value reference.
			if name, ok := b.identifierAtom(d.Name); ok {
				b.resolveReference(d.Name, name, MeaningValue)
			}
		} else {
			b.bindMemberName(d.Name)
		}
		b.bindExpression(d.Initializer)

	case ast.KindPropertyAccessExpression, ast.KindElementAccessExpression:
		d, _ := b.tree.GetAccessExpr(n)
		b.bindExpression(d.Expr)
		if node.Kind == ast.KindElementAccessExpression {
			b.bindExpression(d.NameOrIndex)
		}
		// `.name` on the right is not independently resolved.

	case ast.KindCallExpression, ast.KindNewExpression, ast.KindTaggedTemplateExpression:
		d, _ := b.tree.GetCallExpr(n)
		b.bindExpression(d.Callee)
		for _, ta := range b.tree.List(d.TypeArgs).Items {
			b.bindType(ta)
		}
		for _, a := range b.tree.List(d.Arguments).Items {
			b.bindExpression(a)
		}

	case ast.KindTemplateExpression:
		d, _ := b.tree.GetTemplateExpr(n)
		for _, span := range b.tree.List(d.Spans).Items {
			sd, ok := b.tree.GetTemplateSpan(span)
			if !ok {
				continue
			}
			b.bindExpression(sd.Expr)
		}

	case ast.KindParenthesizedExpression, ast.KindVoidExpression, ast.KindDeleteExpression,
		ast.KindTypeOfExpression, ast.KindAwaitExpression, ast.KindNonNullExpression,
		ast.KindSpreadElement:
		d, _ := b.tree.GetUnaryLike(n)
		b.bindExpression(d.Expr)

	case ast.KindFunctionExpression, ast.KindArrowFunction:
		b.bindFunctionLike(n, false)

	case ast.KindClassExpression:
		b.bindClass(n)

	case ast.KindPrefixUnaryExpression, ast.KindPostfixUnaryExpression:
		d, _ := b.tree.GetUnaryExpr(n)
		b.bindExpression(d.Operand)

	case ast.KindBinaryExpression:
		d, _ := b.tree.GetBinaryExpr(n)
		b.bindExpression(d.Left)
		b.bindExpression(d.Right)

	case ast.KindConditionalExpression:
		d, _ := b.tree.GetConditionalExpr(n)
		b.anchor(AnchorBranch, n)
		b.bindExpression(d.Condition)
		b.bindExpression(d.WhenTrue)
		b.bindExpression(d.WhenFalse)

	case ast.KindAsExpression, ast.KindSatisfiesExpression:
		d, _ := b.tree.GetTypeCast(n)
		b.bindExpression(d.Expr)
		b.bindType(d.Type)

	case ast.KindYieldExpression:
		d, _ := b.tree.GetYield(n)
		b.bindExpression(d.Expr)

	case ast.KindJSXElement, ast.KindJSXSelfClosingElement, ast.KindJSXFragment:
		b.bindJSXElement(n)

	case ast.KindJSXExpression:
		d, _ := b.tree.GetJSXExpression(n)
		b.bindExpression(d.Expr)
	}
}

func (b *binder) bindJSXElement(n ast.NodeIndex) {
	d, ok := b.tree.GetJSXElement(n)
	if !ok {
		return
	}
	if !d.OpeningElement.IsNone() {
		b.bindJSXOpeningElement(d.OpeningElement)
	}
	for _, child := range b.tree.List(d.Children).Items {
		b.bindExpression(child)
	}
}

func (b *binder) bindJSXOpeningElement(n ast.NodeIndex) {
	d, ok := b.tree.GetJSXOpeningElement(n)
	if !ok {
		return
	}
	b.bindJSXTagName(d.TagName)
	for _, ta := range b.tree.List(d.TypeArgs).Items {
		b.bindType(ta)
	}
	for _, attr := range b.tree.List(d.Attributes).Items {
		b.bindJSXAttribute(attr)
	}
}

// bindJSXTagName resolves a JSX tag as a value reference: `<Foo/>` looks up
// `Foo` the same way a call expression would, while a lowercase intrinsic
// tag (`<div/>`) resolves to nothing and is left for the checker to treat
// as a host element rather than a missing identifier.
func (b *binder) bindJSXTagName(n ast.NodeIndex) {
	if n.IsNone() {
		return
	}
	switch b.tree.Node(n).Kind {
	case ast.KindIdentifier:
		if name, ok := b.identifierAtom(n); ok {
			b.resolveReference(n, name, MeaningValue)
		}
	case ast.KindPropertyAccessExpression:
		b.bindExpression(n)
	}
}

func (b *binder) bindJSXAttribute(n ast.NodeIndex) {
	d, ok := b.tree.GetJSXAttribute(n)
	if !ok {
		return
	}
	if b.tree.Node(n).Kind == ast.KindJSXSpreadAttribute {
		b.bindExpression(d.SpreadExpr)
		return
	}
	b.bindExpression(d.Initializer)
}
