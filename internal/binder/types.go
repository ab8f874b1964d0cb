package binder

import "github.com/gotsc/gotsc/internal/ast"

// bindType resolves every type-name reference reachable from n, pushing a
// scope wherever a construct introduces its own type parameters (function
// types, conditional-type `infer` bindings, mapped types).
func (b *binder) bindType(n ast.NodeIndex) {
	if n.IsNone() {
		return
	}
	switch b.tree.Node(n).Kind {
	case ast.KindKeywordType:
		// leaf

	case ast.KindTypeReference:
		d, _ := b.tree.GetTypeReference(n)
		b.bindTypeName(d.Name)
		for _, ta := range b.tree.List(d.TypeArgs).Items {
			b.bindType(ta)
		}

	case ast.KindQualifiedName:
		d, _ := b.tree.GetQualifiedName(n)
		b.bindTypeName(d.Left)
		// Right is a member name on the left, not independently resolved.

	case ast.KindArrayType, ast.KindParenthesizedType:
		d, _ := b.tree.GetUnaryLikeType(n)
		b.bindType(d.Type)

	case ast.KindTypeQuery:
		d, _ := b.tree.GetUnaryLikeType(n)
		b.bindTypeQueryOperand(d.Type)

	case ast.KindLiteralType:
		d, _ := b.tree.GetUnaryLikeType(n)
		b.bindExpression(d.Expr)

	case ast.KindTupleType:
		d, _ := b.tree.GetElements(n)
		for _, el := range b.tree.List(d.Elements).Items {
			b.bindType(el)
		}

	case ast.KindNamedTupleMember:
		d, _ := b.tree.GetNamedTupleMember(n)
		b.bindType(d.Type)

	case ast.KindUnionType, ast.KindIntersectionType:
		d, _ := b.tree.GetElements(n)
		for _, el := range b.tree.List(d.Elements).Items {
			b.bindType(el)
		}

	case ast.KindTypeLiteral:
		d, _ := b.tree.GetElements(n)
		b.pushScope(ScopeClass, n)
		for _, el := range b.tree.List(d.Elements).Items {
			b.bindClassMember(el)
		}
		b.popScope()

	case ast.KindTypeOperator:
		d, _ := b.tree.GetTypeOperator(n)
		b.bindType(d.Type)

	case ast.KindFunctionType, ast.KindConstructorType:
		d, _ := b.tree.GetFunctionType(n)
		b.pushScope(ScopeTypeParameters, n)
		b.bindTypeParameters(d.TypeParams)
		b.bindParameters(d.Params)
		b.bindType(d.ReturnType)
		b.popScope()

	case ast.KindConditionalType:
		d, _ := b.tree.GetConditionalType(n)
		b.bindType(d.CheckType)
		b.pushScope(ScopeConditionalExtends, n)
		b.bindType(d.ExtendsType)
		// `infer` bindings introduced in ExtendsType are visible in TrueType
		// only, per real TypeScript's conditional-type scoping.
		b.bindType(d.TrueType)
		b.popScope()
		b.bindType(d.FalseType)

	case ast.KindInferType:
		d, _ := b.tree.GetInferType(n)
		tp, ok := b.tree.GetTypeParameter(d.TypeParam)
		if ok {
			b.declareName(tp.Name, MeaningType, 0, d.TypeParam)
			b.bindType(tp.Constraint)
		}

	case ast.KindMappedType:
		d, _ := b.tree.GetMappedType(n)
		b.pushScope(ScopeTypeParameters, n)
		tp, ok := b.tree.GetTypeParameter(d.TypeParam)
		if ok {
			b.declareName(tp.Name, MeaningType, 0, d.TypeParam)
			b.bindType(tp.Constraint) // the `in Keys` clause
		}
		b.bindType(d.NameType)
		b.bindType(d.Type)
		b.popScope()

	case ast.KindIndexedAccessType:
		d, _ := b.tree.GetIndexedAccessType(n)
		b.bindType(d.ObjectType)
		b.bindType(d.IndexType)

	case ast.KindTemplateLiteralType:
		d, _ := b.tree.GetTemplateLiteralType(n)
		for _, span := range b.tree.List(d.Spans).Items {
			sd, ok := b.tree.GetTemplateLiteralTypeSpan(span)
			if !ok {
				continue
			}
			b.bindType(sd.Expr)
		}

	case ast.KindImportType:
		d, _ := b.tree.GetImportType(n)
		b.bindTypeName(d.Qualifier)
		for _, ta := range b.tree.List(d.TypeArgs).Items {
			b.bindType(ta)
		}
	}
}

// bindTypeName resolves an identifier or qualified-name used as a type
// reference's name, in type-or-namespace meaning (a namespace can qualify
// a nested type: `NS.Type`).
func (b *binder) bindTypeName(n ast.NodeIndex) {
	if n.IsNone() {
		return
	}
	switch b.tree.Node(n).Kind {
	case ast.KindIdentifier:
		if name, ok := b.identifierAtom(n); ok {
			b.resolveReference(n, name, MeaningType|MeaningNamespace)
		}
	case ast.KindQualifiedName:
		d, _ := b.tree.GetQualifiedName(n)
		b.bindTypeName(d.Left)
	}
}

// bindTypeQueryOperand resolves `typeof x` / `typeof A.B.C`'s left operand
// in value-or-namespace meaning, since `typeof` always starts from a value
// or namespace binding, never a type.
func (b *binder) bindTypeQueryOperand(n ast.NodeIndex) {
	if n.IsNone() {
		return
	}
	switch b.tree.Node(n).Kind {
	case ast.KindIdentifier:
		if name, ok := b.identifierAtom(n); ok {
			b.resolveReference(n, name, MeaningValue|MeaningNamespace)
		}
	case ast.KindQualifiedName:
		d, _ := b.tree.GetQualifiedName(n)
		b.bindTypeQueryOperand(d.Left)
	}
}
