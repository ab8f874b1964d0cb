package ast

import "github.com/gotsc/gotsc/internal/token"

// QualifiedNameData backs `A.B.C` used as a type-space name (namespace or
// interface qualification), distinct from PropertyAccessExpression which is
// value-space.
type QualifiedNameData struct {
	Left  NodeIndex
	Right NodeIndex // identifier
}

func (t *Tree) AddQualifiedName(pos, end uint32, left, right NodeIndex) NodeIndex {
	d := t.qualifiedName.Add(QualifiedNameData{Left: left, Right: right})
	return t.addNode(KindQualifiedName, pos, end, d)
}

func (t *Tree) GetQualifiedName(i NodeIndex) (QualifiedNameData, bool) {
	n := t.Node(i)
	if n.Kind != KindQualifiedName {
		return QualifiedNameData{}, false
	}
	return t.qualifiedName.Get(n.Data), true
}

// TypeReferenceData backs `Name<Args>` and the bare keyword type nodes
// (Any/Unknown/Number/String/Boolean/Void/Never/Object/Symbol/BigInt/
// Undefined/Null), which carry their keyword in Keyword with Name left None.
type TypeReferenceData struct {
	Name     NodeIndex // identifier or KindQualifiedName
	TypeArgs ListIndex
	Keyword  token.Kind
}

func (t *Tree) AddTypeReference(pos, end uint32, d TypeReferenceData) NodeIndex {
	idx := t.typeRef.Add(d)
	return t.addNode(KindTypeReference, pos, end, idx)
}

func (t *Tree) AddKeywordType(pos, end uint32, keyword token.Kind) NodeIndex {
	idx := t.typeRef.Add(TypeReferenceData{Keyword: keyword})
	return t.addNode(KindKeywordType, pos, end, idx)
}

func (t *Tree) GetTypeReference(i NodeIndex) (TypeReferenceData, bool) {
	n := t.Node(i)
	if n.Kind != KindTypeReference && n.Kind != KindKeywordType {
		return TypeReferenceData{}, false
	}
	return t.typeRef.Get(n.Data), true
}

// UnaryLikeTypeData wraps a single child type node, shared by ArrayType
// (`T[]`), ParenthesizedType, TypeQuery (`typeof x`), and LiteralType (a
// literal expression used in type position, e.g. `"a" | "b"`'s members).
type UnaryLikeTypeData struct {
	Type NodeIndex // for ArrayType/ParenthesizedType/TypeQuery
	Expr NodeIndex // for LiteralType: the literal or unary-minus numeric literal
}

func (t *Tree) AddUnaryLikeType(kind Kind, pos, end uint32, child NodeIndex) NodeIndex {
	var d UnaryLikeTypeData
	switch kind {
	case KindLiteralType:
		d.Expr = child
		idx := t.literalType.Add(d)
		return t.addNode(kind, pos, end, idx)
	case KindArrayType, KindParenthesizedType, KindTypeQuery:
		d.Type = child
		idx := t.arrayType.Add(d)
		return t.addNode(kind, pos, end, idx)
	default:
		panic("ast: AddUnaryLikeType: unsupported kind")
	}
}

func (t *Tree) GetUnaryLikeType(i NodeIndex) (UnaryLikeTypeData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindLiteralType:
		return t.literalType.Get(n.Data), true
	case KindArrayType, KindParenthesizedType, KindTypeQuery:
		return t.arrayType.Get(n.Data), true
	default:
		return UnaryLikeTypeData{}, false
	}
}

// NamedTupleMemberData backs a labeled tuple element, `name?: T` or
// `...name: T`, inside a TupleType's Elements list.
type NamedTupleMemberData struct {
	Name      NodeIndex
	Type      NodeIndex
	Optional  bool
	DotDotDot bool
}

func (t *Tree) AddNamedTupleMember(pos, end uint32, d NamedTupleMemberData) NodeIndex {
	idx := t.namedTupleMember.Add(d)
	return t.addNode(KindNamedTupleMember, pos, end, idx)
}

func (t *Tree) GetNamedTupleMember(i NodeIndex) (NamedTupleMemberData, bool) {
	n := t.Node(i)
	if n.Kind != KindNamedTupleMember {
		return NamedTupleMemberData{}, false
	}
	return t.namedTupleMember.Get(n.Data), true
}

// TypeOperatorData backs `keyof T`, `readonly T`, and `unique T`.
type TypeOperatorData struct {
	Operator token.Kind
	Type     NodeIndex
}

func (t *Tree) AddTypeOperator(pos, end uint32, op token.Kind, ty NodeIndex) NodeIndex {
	d := t.typeOperator.Add(TypeOperatorData{Operator: op, Type: ty})
	return t.addNode(KindTypeOperator, pos, end, d)
}

func (t *Tree) GetTypeOperator(i NodeIndex) (TypeOperatorData, bool) {
	n := t.Node(i)
	if n.Kind != KindTypeOperator {
		return TypeOperatorData{}, false
	}
	return t.typeOperator.Get(n.Data), true
}

// FunctionTypeData backs `(params) => T` and `new (params) => T`.
type FunctionTypeData struct {
	TypeParams ListIndex
	Params     ListIndex
	ReturnType NodeIndex
}

func (t *Tree) AddFunctionType(kind Kind, pos, end uint32, d FunctionTypeData) NodeIndex {
	idx := t.fnType.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetFunctionType(i NodeIndex) (FunctionTypeData, bool) {
	n := t.Node(i)
	if n.Kind != KindFunctionType && n.Kind != KindConstructorType {
		return FunctionTypeData{}, false
	}
	return t.fnType.Get(n.Data), true
}

// ConditionalTypeData backs `Check extends Extends ? True : False`.
type ConditionalTypeData struct {
	CheckType   NodeIndex
	ExtendsType NodeIndex
	TrueType    NodeIndex
	FalseType   NodeIndex
}

func (t *Tree) AddConditionalType(pos, end uint32, d ConditionalTypeData) NodeIndex {
	idx := t.condType.Add(d)
	return t.addNode(KindConditionalType, pos, end, idx)
}

func (t *Tree) GetConditionalType(i NodeIndex) (ConditionalTypeData, bool) {
	n := t.Node(i)
	if n.Kind != KindConditionalType {
		return ConditionalTypeData{}, false
	}
	return t.condType.Get(n.Data), true
}

// InferTypeData backs `infer T` / `infer T extends C` inside a conditional
// type's ExtendsType.
type InferTypeData struct {
	TypeParam NodeIndex // KindTypeParameter
}

func (t *Tree) AddInferType(pos, end uint32, typeParam NodeIndex) NodeIndex {
	d := t.inferType.Add(InferTypeData{TypeParam: typeParam})
	return t.addNode(KindInferType, pos, end, d)
}

func (t *Tree) GetInferType(i NodeIndex) (InferTypeData, bool) {
	n := t.Node(i)
	if n.Kind != KindInferType {
		return InferTypeData{}, false
	}
	return t.inferType.Get(n.Data), true
}

// MappedTypeData backs `{ [K in Keys]: T }`, with optional `+/-readonly` and
// `+/-?` modifier adjustments and an optional `as NameType` remapping clause.
type MappedTypeData struct {
	TypeParam     NodeIndex // KindTypeParameter, its Constraint holds Keys
	NameType      NodeIndex // the `as` clause, or arena.None
	Type          NodeIndex
	ReadonlyToken token.Kind // Plus/Minus/Readonly or Invalid for none
	QuestionToken token.Kind // Plus/Minus/Question or Invalid for none
}

func (t *Tree) AddMappedType(pos, end uint32, d MappedTypeData) NodeIndex {
	idx := t.mappedType.Add(d)
	return t.addNode(KindMappedType, pos, end, idx)
}

func (t *Tree) GetMappedType(i NodeIndex) (MappedTypeData, bool) {
	n := t.Node(i)
	if n.Kind != KindMappedType {
		return MappedTypeData{}, false
	}
	return t.mappedType.Get(n.Data), true
}

// IndexedAccessTypeData backs `T[K]`.
type IndexedAccessTypeData struct {
	ObjectType NodeIndex
	IndexType  NodeIndex
}

func (t *Tree) AddIndexedAccessType(pos, end uint32, obj, index NodeIndex) NodeIndex {
	d := t.indexedAccessType.Add(IndexedAccessTypeData{ObjectType: obj, IndexType: index})
	return t.addNode(KindIndexedAccessType, pos, end, d)
}

func (t *Tree) GetIndexedAccessType(i NodeIndex) (IndexedAccessTypeData, bool) {
	n := t.Node(i)
	if n.Kind != KindIndexedAccessType {
		return IndexedAccessTypeData{}, false
	}
	return t.indexedAccessType.Get(n.Data), true
}

// TemplateLiteralTypeData backs `` `head${T}middle${U}tail` `` in type
// position, mirroring TemplateExprData's Head/Spans shape.
type TemplateLiteralTypeData struct {
	Head  NodeIndex
	Spans ListIndex // list of KindTemplateLiteralTypeSpan
}

func (t *Tree) AddTemplateLiteralType(pos, end uint32, head NodeIndex, spans ListIndex) NodeIndex {
	d := t.templateLitType.Add(TemplateLiteralTypeData{Head: head, Spans: spans})
	return t.addNode(KindTemplateLiteralType, pos, end, d)
}

func (t *Tree) GetTemplateLiteralType(i NodeIndex) (TemplateLiteralTypeData, bool) {
	n := t.Node(i)
	if n.Kind != KindTemplateLiteralType {
		return TemplateLiteralTypeData{}, false
	}
	return t.templateLitType.Get(n.Data), true
}

// TemplateLiteralTypeSpanData backs one `${Type}literal` span; reuses
// TemplateSpanData's shape (Expr holds the type node, Literal the following
// string-literal-like chunk).
func (t *Tree) AddTemplateLiteralTypeSpan(pos, end uint32, ty, literal NodeIndex) NodeIndex {
	d := t.templateSpan.Add(TemplateSpanData{Expr: ty, Literal: literal})
	return t.addNode(KindTemplateLiteralTypeSpan, pos, end, d)
}

// GetTemplateLiteralTypeSpan returns the span data for one hole of a
// template literal type; Expr holds the type node, Literal the following
// literal chunk (mirrors GetTemplateSpan, which only accepts the
// expression-position KindTemplateSpan kind).
func (t *Tree) GetTemplateLiteralTypeSpan(i NodeIndex) (TemplateSpanData, bool) {
	n := t.Node(i)
	if n.Kind != KindTemplateLiteralTypeSpan {
		return TemplateSpanData{}, false
	}
	return t.templateSpan.Get(n.Data), true
}

// ImportTypeData backs `import("mod").Name<Args>`, with IsTypeOf set for
// `import("mod")` used as `typeof import(...)`.
type ImportTypeData struct {
	Argument  NodeIndex // the string-literal argument
	Qualifier NodeIndex // identifier or QualifiedName after the `.`, or None
	TypeArgs  ListIndex
	IsTypeOf  bool
}

func (t *Tree) AddImportType(pos, end uint32, d ImportTypeData) NodeIndex {
	idx := t.importType.Add(d)
	return t.addNode(KindImportType, pos, end, idx)
}

func (t *Tree) GetImportType(i NodeIndex) (ImportTypeData, bool) {
	n := t.Node(i)
	if n.Kind != KindImportType {
		return ImportTypeData{}, false
	}
	return t.importType.Get(n.Data), true
}

