package ast

import (
	"github.com/gotsc/gotsc/internal/arena"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/token"
)

// IdentifierData backs KindIdentifier and KindPrivateIdentifier.
type IdentifierData struct {
	Text atom.Atom
}

// AddIdentifier records a bare or private identifier.
func (t *Tree) AddIdentifier(kind Kind, pos, end uint32, text atom.Atom) NodeIndex {
	d := t.identifiers.Add(IdentifierData{Text: text})
	return t.addNode(kind, pos, end, d)
}

// GetIdentifier returns the identifier data for i, or false if i is not an
// identifier-shaped node.
func (t *Tree) GetIdentifier(i NodeIndex) (IdentifierData, bool) {
	n := t.Node(i)
	if n.Kind != KindIdentifier && n.Kind != KindPrivateIdentifier {
		return IdentifierData{}, false
	}
	return t.identifiers.Get(n.Data), true
}

// LiteralData backs numeric, bigint, string, and no-substitution template
// literals. Text is the raw (unescaped) source text; the scanner already
// classified the shape via token.Flags recorded at parse time on Flags.
type LiteralData struct {
	Text  atom.Atom
	Flags token.Flags
}

func (t *Tree) AddLiteral(kind Kind, pos, end uint32, text atom.Atom, flags token.Flags) NodeIndex {
	d := t.literals.Add(LiteralData{Text: text, Flags: flags})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetLiteral(i NodeIndex) (LiteralData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindNumericLiteral, KindBigIntLiteral, KindStringLiteral, KindNoSubstitutionTemplateLiteral:
		return t.literals.Get(n.Data), true
	default:
		return LiteralData{}, false
	}
}

// AddKeywordLiteral records a node whose meaning is entirely carried by its
// Kind (true/false/null/undefined/this/super) with no side data.
func (t *Tree) AddKeywordLiteral(kind Kind, pos, end uint32) NodeIndex {
	return t.addNode(kind, pos, end, arena.None)
}

// RegexData backs KindRegularExpressionLiteral. Flags is the validated
// regex-flag bitset (spec §4.2's per-flag validation).
type RegexData struct {
	Pattern atom.Atom
	Flags   token.Flags
}

func (t *Tree) AddRegex(pos, end uint32, pattern atom.Atom, flags token.Flags) NodeIndex {
	d := t.regexes.Add(RegexData{Pattern: pattern, Flags: flags})
	return t.addNode(KindRegularExpressionLiteral, pos, end, d)
}

func (t *Tree) GetRegex(i NodeIndex) (RegexData, bool) {
	n := t.Node(i)
	if n.Kind != KindRegularExpressionLiteral {
		return RegexData{}, false
	}
	return t.regexes.Get(n.Data), true
}

// BinaryExprData backs KindBinaryExpression.
type BinaryExprData struct {
	Operator    token.Kind
	Left, Right NodeIndex
}

func (t *Tree) AddBinaryExpr(pos, end uint32, op token.Kind, left, right NodeIndex) NodeIndex {
	d := t.binary.Add(BinaryExprData{Operator: op, Left: left, Right: right})
	return t.addNode(KindBinaryExpression, pos, end, d)
}

func (t *Tree) GetBinaryExpr(i NodeIndex) (BinaryExprData, bool) {
	n := t.Node(i)
	if n.Kind != KindBinaryExpression {
		return BinaryExprData{}, false
	}
	return t.binary.Get(n.Data), true
}

// UnaryExprData backs prefix and postfix unary expressions.
type UnaryExprData struct {
	Operator token.Kind
	Operand  NodeIndex
}

func (t *Tree) AddUnaryExpr(kind Kind, pos, end uint32, op token.Kind, operand NodeIndex) NodeIndex {
	d := t.unary.Add(UnaryExprData{Operator: op, Operand: operand})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetUnaryExpr(i NodeIndex) (UnaryExprData, bool) {
	n := t.Node(i)
	if n.Kind != KindPrefixUnaryExpression && n.Kind != KindPostfixUnaryExpression {
		return UnaryExprData{}, false
	}
	return t.unary.Get(n.Data), true
}

// UnaryLikeData is a one-child wrapper shared by spread elements,
// parenthesized expressions, void/delete/typeof/await expressions.
type UnaryLikeData struct {
	Expr NodeIndex
}

func (t *Tree) AddUnaryLike(kind Kind, pos, end uint32, expr NodeIndex) NodeIndex {
	switch kind {
	case KindSpreadElement:
		d := t.spread.Add(UnaryLikeData{Expr: expr})
		return t.addNode(kind, pos, end, d)
	case KindParenthesizedExpression, KindVoidExpression, KindDeleteExpression,
		KindTypeOfExpression, KindAwaitExpression, KindNonNullExpression:
		d := t.paren.Add(UnaryLikeData{Expr: expr})
		return t.addNode(kind, pos, end, d)
	default:
		panic("ast: AddUnaryLike: unsupported kind")
	}
}

func (t *Tree) GetUnaryLike(i NodeIndex) (UnaryLikeData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindSpreadElement:
		return t.spread.Get(n.Data), true
	case KindParenthesizedExpression, KindVoidExpression, KindDeleteExpression,
		KindTypeOfExpression, KindAwaitExpression, KindNonNullExpression:
		return t.paren.Get(n.Data), true
	default:
		return UnaryLikeData{}, false
	}
}

// ConditionalExprData backs KindConditionalExpression (`c ? a : b`).
type ConditionalExprData struct {
	Condition, WhenTrue, WhenFalse NodeIndex
}

func (t *Tree) AddConditionalExpr(pos, end uint32, cond, whenTrue, whenFalse NodeIndex) NodeIndex {
	d := t.conditional.Add(ConditionalExprData{Condition: cond, WhenTrue: whenTrue, WhenFalse: whenFalse})
	return t.addNode(KindConditionalExpression, pos, end, d)
}

func (t *Tree) GetConditionalExpr(i NodeIndex) (ConditionalExprData, bool) {
	n := t.Node(i)
	if n.Kind != KindConditionalExpression {
		return ConditionalExprData{}, false
	}
	return t.conditional.Get(n.Data), true
}

// CallExprData backs call and new expressions.
type CallExprData struct {
	Callee       NodeIndex
	TypeArgs     ListIndex
	Arguments    ListIndex
	OptionalChain bool
}

func (t *Tree) AddCallExpr(kind Kind, pos, end uint32, callee NodeIndex, typeArgs, args ListIndex, optional bool) NodeIndex {
	d := t.call.Add(CallExprData{Callee: callee, TypeArgs: typeArgs, Arguments: args, OptionalChain: optional})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetCallExpr(i NodeIndex) (CallExprData, bool) {
	n := t.Node(i)
	if n.Kind != KindCallExpression && n.Kind != KindNewExpression {
		return CallExprData{}, false
	}
	return t.call.Get(n.Data), true
}

// AccessExprData backs property and element access, both plain and
// optional-chained (`a.b`, `a?.b`, `a[b]`, `a?.[b]`).
type AccessExprData struct {
	Expr         NodeIndex
	NameOrIndex  NodeIndex
	OptionalChain bool
}

func (t *Tree) AddAccessExpr(kind Kind, pos, end uint32, expr, nameOrIndex NodeIndex, optional bool) NodeIndex {
	d := t.access.Add(AccessExprData{Expr: expr, NameOrIndex: nameOrIndex, OptionalChain: optional})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetAccessExpr(i NodeIndex) (AccessExprData, bool) {
	n := t.Node(i)
	if n.Kind != KindPropertyAccessExpression && n.Kind != KindElementAccessExpression {
		return AccessExprData{}, false
	}
	return t.access.Get(n.Data), true
}

// TemplateExprData backs `head ${expr} middle ${expr} tail` expressions.
type TemplateExprData struct {
	Head  NodeIndex // literal node (TemplateHead text)
	Spans ListIndex // list of TemplateSpan nodes
}

// TemplateSpanData backs one `${expr} literalPart` span.
type TemplateSpanData struct {
	Expr    NodeIndex
	Literal NodeIndex
}

func (t *Tree) AddTemplateExpr(pos, end uint32, head NodeIndex, spans ListIndex) NodeIndex {
	d := t.template.Add(TemplateExprData{Head: head, Spans: spans})
	return t.addNode(KindTemplateExpression, pos, end, d)
}

func (t *Tree) GetTemplateExpr(i NodeIndex) (TemplateExprData, bool) {
	n := t.Node(i)
	if n.Kind != KindTemplateExpression {
		return TemplateExprData{}, false
	}
	return t.template.Get(n.Data), true
}

func (t *Tree) AddTemplateSpan(pos, end uint32, expr, literal NodeIndex) NodeIndex {
	d := t.templateSpan.Add(TemplateSpanData{Expr: expr, Literal: literal})
	return t.addNode(KindTemplateSpan, pos, end, d)
}

func (t *Tree) GetTemplateSpan(i NodeIndex) (TemplateSpanData, bool) {
	n := t.Node(i)
	if n.Kind != KindTemplateSpan {
		return TemplateSpanData{}, false
	}
	return t.templateSpan.Get(n.Data), true
}

// TypeCastData backs `as`/`satisfies` expressions.
type TypeCastData struct {
	Expr NodeIndex
	Type NodeIndex
}

func (t *Tree) AddTypeCast(kind Kind, pos, end uint32, expr, typ NodeIndex) NodeIndex {
	d := t.typeCast.Add(TypeCastData{Expr: expr, Type: typ})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetTypeCast(i NodeIndex) (TypeCastData, bool) {
	n := t.Node(i)
	if n.Kind != KindAsExpression && n.Kind != KindSatisfiesExpression {
		return TypeCastData{}, false
	}
	return t.typeCast.Get(n.Data), true
}

// YieldData backs `yield` and `yield*`.
type YieldData struct {
	Expr     NodeIndex
	Delegate bool
}

func (t *Tree) AddYield(pos, end uint32, expr NodeIndex, delegate bool) NodeIndex {
	d := t.yield_.Add(YieldData{Expr: expr, Delegate: delegate})
	return t.addNode(KindYieldExpression, pos, end, d)
}

func (t *Tree) GetYield(i NodeIndex) (YieldData, bool) {
	n := t.Node(i)
	if n.Kind != KindYieldExpression {
		return YieldData{}, false
	}
	return t.yield_.Get(n.Data), true
}

// ElementsData is a generic "ordered list of children" shape shared by array
// literals, object literals, tuple types, union/intersection types, and type
// literal member lists — any construct that is purely "a List plus a kind
// tag" needs nothing else.
type ElementsData struct {
	Elements ListIndex
}

func (t *Tree) AddElements(kind Kind, pos, end uint32, elements ListIndex) NodeIndex {
	switch kind {
	case KindArrayLiteralExpression:
		idx := t.arrayLit.Add(ElementsData{Elements: elements})
		return t.addNode(kind, pos, end, idx)
	case KindObjectLiteralExpression:
		idx := t.objectLit.Add(ElementsData{Elements: elements})
		return t.addNode(kind, pos, end, idx)
	case KindTupleType:
		idx := t.tupleType.Add(ElementsData{Elements: elements})
		return t.addNode(kind, pos, end, idx)
	case KindUnionType, KindIntersectionType:
		idx := t.unionType.Add(ElementsData{Elements: elements})
		return t.addNode(kind, pos, end, idx)
	case KindTypeLiteral:
		idx := t.typeLiteral.Add(ElementsData{Elements: elements})
		return t.addNode(kind, pos, end, idx)
	default:
		panic("ast: AddElements: unsupported kind")
	}
}

func (t *Tree) GetElements(i NodeIndex) (ElementsData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindArrayLiteralExpression:
		return t.arrayLit.Get(n.Data), true
	case KindObjectLiteralExpression:
		return t.objectLit.Get(n.Data), true
	case KindTupleType:
		return t.tupleType.Get(n.Data), true
	case KindUnionType, KindIntersectionType:
		return t.unionType.Get(n.Data), true
	case KindTypeLiteral:
		return t.typeLiteral.Get(n.Data), true
	default:
		return ElementsData{}, false
	}
}

// PropertyAssignmentData backs object literal members: `k: v`, `k` shorthand,
// `...spread`, each distinguished by Kind.
type PropertyAssignmentData struct {
	Name        NodeIndex
	Initializer NodeIndex
}

func (t *Tree) AddPropertyAssignment(kind Kind, pos, end uint32, name, initializer NodeIndex) NodeIndex {
	d := t.propAssign.Add(PropertyAssignmentData{Name: name, Initializer: initializer})
	return t.addNode(kind, pos, end, d)
}

func (t *Tree) GetPropertyAssignment(i NodeIndex) (PropertyAssignmentData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindPropertyAssignment, KindShorthandPropertyAssignment, KindSpreadAssignment:
		return t.propAssign.Get(n.Data), true
	default:
		return PropertyAssignmentData{}, false
	}
}
