package checker

import (
	"github.com/gotsc/gotsc/internal/arena"
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/binder"
	"github.com/gotsc/gotsc/internal/token"
	"github.com/gotsc/gotsc/internal/types"
)

// resolveTypeNode resolves a type-annotation AST node into a TypeId (spec
// §4.6's type_of_type_node), the type-space counterpart of typeOfExpression.
func (c *Checker) resolveTypeNode(node ast.NodeIndex) types.TypeId {
	if node.IsNone() {
		return types.Any
	}
	switch c.Tree.Node(node).Kind {
	case ast.KindKeywordType:
		return c.resolveKeywordType(node)
	case ast.KindTypeReference:
		return c.resolveTypeReference(node)
	case ast.KindArrayType:
		data, _ := c.Tree.GetUnaryLikeType(node)
		return c.Types.MakeArray(c.resolveTypeNode(data.Type))
	case ast.KindTupleType:
		return c.resolveTupleType(node)
	case ast.KindUnionType:
		return c.Types.MakeUnion(c.resolveTypeList(node))
	case ast.KindIntersectionType:
		return c.Types.MakeIntersection(c.resolveTypeList(node))
	case ast.KindTypeLiteral:
		return c.resolveTypeLiteral(node)
	case ast.KindFunctionType, ast.KindConstructorType:
		fd, _ := c.Tree.GetFunctionType(node)
		return c.Types.MakeCallable(types.CallableShape{
			Parameters: c.callableParametersOf(fd.Params),
			ReturnType: c.resolveTypeNode(fd.ReturnType),
		})
	case ast.KindConditionalType:
		cd, _ := c.Tree.GetConditionalType(node)
		return c.Types.Intern(types.TypeKey{
			Kind:    types.KindConditional,
			Check:   c.resolveTypeNode(cd.CheckType),
			Extends: c.resolveTypeNode(cd.ExtendsType),
			True:    c.resolveTypeNode(cd.TrueType),
			False:   c.resolveTypeNode(cd.FalseType),
		})
	case ast.KindMappedType:
		return c.resolveMappedType(node)
	case ast.KindIndexedAccessType:
		id, _ := c.Tree.GetIndexedAccessType(node)
		return c.Types.Intern(types.TypeKey{
			Kind:    types.KindIndexedAccess,
			Object2: c.resolveTypeNode(id.ObjectType),
			Index:   c.resolveTypeNode(id.IndexType),
		})
	case ast.KindLiteralType:
		return c.resolveLiteralType(node)
	case ast.KindTemplateLiteralType:
		return c.resolveTemplateLiteralType(node)
	case ast.KindTypeOperator:
		return c.resolveTypeOperator(node)
	case ast.KindTypeQuery:
		data, _ := c.Tree.GetUnaryLikeType(node)
		sym := c.resolveSym(data.Type)
		if sym == nil {
			return types.Any
		}
		return c.SymbolType(sym)
	case ast.KindParenthesizedType:
		data, _ := c.Tree.GetUnaryLikeType(node)
		return c.resolveTypeNode(data.Type)
	case ast.KindImportType:
		// Dynamic `import("mod").Name` types need a host module resolver this
		// checker does not carry; widen to any rather than guess a shape.
		return types.Any
	default:
		return types.Any
	}
}

func (c *Checker) resolveKeywordType(node ast.NodeIndex) types.TypeId {
	ref, _ := c.Tree.GetTypeReference(node)
	switch ref.Keyword {
	case token.AnyKeyword:
		return types.Any
	case token.UnknownKeyword:
		return types.Unknown
	case token.NeverKeyword:
		return types.Never
	case token.VoidKeyword:
		return types.Void
	case token.NullKeyword:
		return types.Null
	case token.UndefinedKeyword:
		return types.Undefined
	case token.StringKeyword:
		return types.StringT
	case token.NumberKeyword:
		return types.NumberT
	case token.BigIntKeyword:
		return types.BigIntT
	case token.BooleanKeyword:
		return types.BooleanT
	case token.SymbolKeyword:
		return types.SymbolT
	case token.ObjectKeyword:
		return types.ObjectT
	default:
		return types.Any
	}
}

// resolveTypeReference resolves `Name<Args>`, following the symbol into
// type space (DeclaredType) and instantiating its type parameters against
// the supplied arguments, if any (spec §4.6 generic instantiation).
func (c *Checker) resolveTypeReference(node ast.NodeIndex) types.TypeId {
	ref, _ := c.Tree.GetTypeReference(node)
	sym := c.resolveSym(ref.Name)
	if sym == nil {
		return types.Any
	}
	base := c.DeclaredType(sym)
	argList := c.Tree.List(ref.TypeArgs)
	if len(argList.Items) == 0 {
		return base
	}
	args := make([]types.TypeId, len(argList.Items))
	for i, a := range argList.Items {
		args[i] = c.resolveTypeNode(a)
	}
	return c.instantiateWithArgs(sym, base, args)
}

// instantiateWithArgs substitutes def's own declared type-parameter list
// with args, in declaration order, over base.
func (c *Checker) instantiateWithArgs(def *binder.Symbol, base types.TypeId, args []types.TypeId) types.TypeId {
	typeParams := c.typeParamsOf(def)
	if len(typeParams) == 0 {
		return base
	}
	subst := make(map[types.TypeId]types.TypeId, len(typeParams))
	for i, tpSym := range typeParams {
		if i >= len(args) {
			break
		}
		tpId := c.Types.Intern(types.TypeKey{Kind: types.KindTypeParameter, Def: types.DefId{Sym: tpSym}})
		subst[tpId] = args[i]
	}
	return c.Types.Instantiate(base, subst)
}

func (c *Checker) typeParamsOf(sym *binder.Symbol) []*binder.Symbol {
	var list ast.ListIndex
	found := false
	for _, d := range sym.Declarations {
		switch c.Tree.Node(d).Kind {
		case ast.KindClassDeclaration, ast.KindClassExpression:
			cd, _ := c.Tree.GetClass(d)
			list, found = cd.TypeParams, true
		case ast.KindInterfaceDeclaration:
			id, _ := c.Tree.GetInterface(d)
			list, found = id.TypeParams, true
		case ast.KindTypeAliasDeclaration:
			ta, _ := c.Tree.GetTypeAlias(d)
			list, found = ta.TypeParams, true
		}
		if found {
			break
		}
	}
	if !found {
		return nil
	}
	items := c.Tree.List(list).Items
	out := make([]*binder.Symbol, 0, len(items))
	for _, tp := range items {
		out = append(out, c.resolveSym(tp))
	}
	return out
}

func (c *Checker) resolveTypeList(node ast.NodeIndex) []types.TypeId {
	data, _ := c.Tree.GetElements(node)
	items := c.Tree.List(data.Elements).Items
	out := make([]types.TypeId, len(items))
	for i, el := range items {
		out[i] = c.resolveTypeNode(el)
	}
	return out
}

func (c *Checker) resolveTupleType(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetElements(node)
	items := c.Tree.List(data.Elements).Items
	elems := make([]types.TupleElement, 0, len(items))
	for _, el := range items {
		if named, ok := c.Tree.GetNamedTupleMember(el); ok {
			elems = append(elems, types.TupleElement{
				Type:     c.resolveTypeNode(named.Type),
				Optional: named.Optional,
				Rest:     named.DotDotDot,
			})
			continue
		}
		elems = append(elems, types.TupleElement{Type: c.resolveTypeNode(el)})
	}
	return c.Types.MakeTuple(elems, false)
}

func (c *Checker) resolveTypeLiteral(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetElements(node)
	var members []types.Member
	var callSigs, ctorSigs []types.CallableShapeId
	var stringIndex, numberIndex *types.IndexInfo
	for _, m := range c.Tree.List(data.Elements).Items {
		switch c.Tree.Node(m).Kind {
		case ast.KindPropertyDeclaration:
			pd, _ := c.Tree.GetPropertyDecl(m)
			members = append(members, types.Member{
				Name:     c.nameOfPropertyKey(pd.Name),
				Type:     c.typeOfClassMemberType(pd.Type, arena.None),
				Optional: pd.Optional,
				Readonly: pd.Modifiers.Has(ast.ModReadonly),
			})
		case ast.KindMethodDeclaration, ast.KindGetAccessor, ast.KindSetAccessor:
			md, _ := c.Tree.GetMethodDecl(m)
			members = append(members, types.Member{
				Name:     c.nameOfPropertyKey(md.Name),
				Type:     c.Types.MakeCallable(c.signatureShapeOf(md)),
				Optional: md.Optional,
			})
		case ast.KindIndexSignature:
			isig, _ := c.Tree.GetIndexSignature(m)
			info := &types.IndexInfo{KeyType: c.resolveTypeNode(isig.ParamType), ValueType: c.resolveTypeNode(isig.Type)}
			if info.KeyType == types.NumberT {
				numberIndex = info
			} else {
				stringIndex = info
			}
		case ast.KindCallSignature:
			md, _ := c.Tree.GetMethodDecl(m)
			callSigs = append(callSigs, c.Types.Callables.Intern(c.signatureShapeOf(md)))
		case ast.KindConstructSignature:
			md, _ := c.Tree.GetMethodDecl(m)
			ctorSigs = append(ctorSigs, c.Types.Callables.Intern(c.signatureShapeOf(md)))
		}
	}
	return c.Types.MakeObject(types.ObjectShape{Members: members, CallSignatures: callSigs, ConstructSignatures: ctorSigs, StringIndex: stringIndex, NumberIndex: numberIndex})
}

func (c *Checker) resolveMappedType(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetMappedType(node)
	tp, _ := c.Tree.GetTypeParameter(data.TypeParam)
	constraint := c.resolveTypeNode(tp.Constraint)
	valueType := c.resolveTypeNode(data.Type)
	var nameType types.TypeId
	if !data.NameType.IsNone() {
		nameType = c.resolveTypeNode(data.NameType)
	}
	paramSym := c.resolveSym(data.TypeParam)
	param := c.Types.Intern(types.TypeKey{Kind: types.KindTypeParameter, Def: types.DefId{Sym: paramSym}, Constraint: constraint})
	return c.Types.Intern(types.TypeKey{
		Kind:      types.KindMapped,
		Param:     param,
		Constraint: constraint,
		NameType:  nameType,
		ValueType: valueType,
		Modifiers: mappedModifiersOf(data),
	})
}

func mappedModifiersOf(data ast.MappedTypeData) types.MappedModifiers {
	var m types.MappedModifiers
	switch data.ReadonlyToken {
	case token.Plus:
		m.ReadonlyPlus = true
	case token.Minus:
		m.ReadonlyMinus = true
	case token.ReadonlyKeyword:
		m.ReadonlyPlus = true
	}
	switch data.QuestionToken {
	case token.Plus:
		m.OptionalPlus = true
	case token.Minus:
		m.OptionalMinus = true
	case token.Question:
		m.OptionalPlus = true
	}
	return m
}

func (c *Checker) resolveLiteralType(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetUnaryLikeType(node)
	expr := data.Expr
	if c.Tree.Node(expr).Kind == ast.KindPrefixUnaryExpression {
		u, _ := c.Tree.GetUnaryExpr(expr)
		if u.Operator == token.Minus {
			if lit, ok := c.Tree.GetLiteral(u.Operand); ok {
				text := "-" + c.Atoms.Resolve(lit.Text)
				return c.Types.Intern(types.TypeKey{Kind: types.KindLiteralNumber, LitNumber: normalizeNumericText(text)})
			}
		}
	}
	return c.TypeOf(expr)
}

func (c *Checker) resolveTemplateLiteralType(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetTemplateLiteralType(node)
	var parts []types.TemplateLiteralPart
	if lit, ok := c.Tree.GetLiteral(data.Head); ok {
		parts = append(parts, types.TemplateLiteralPart{Literal: c.Atoms.Resolve(lit.Text)})
	}
	for _, s := range c.Tree.List(data.Spans).Items {
		span, ok := c.Tree.GetTemplateLiteralTypeSpan(s)
		if !ok {
			continue
		}
		parts = append(parts, types.TemplateLiteralPart{Type: c.resolveTypeNode(span.Expr)})
		if lit, ok := c.Tree.GetLiteral(span.Literal); ok {
			parts = append(parts, types.TemplateLiteralPart{Literal: c.Atoms.Resolve(lit.Text)})
		}
	}
	return c.Types.Intern(types.TypeKey{Kind: types.KindTemplateLiteral, Parts: parts})
}

func (c *Checker) resolveTypeOperator(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetTypeOperator(node)
	switch data.Operator {
	case token.KeyOfKeyword:
		return c.Types.Intern(types.TypeKey{Kind: types.KindIndex, Of: c.resolveTypeNode(data.Type)})
	case token.UniqueKeyword:
		return types.SymbolT
	case token.ReadonlyKeyword:
		return c.resolveTypeNode(data.Type)
	default:
		return c.resolveTypeNode(data.Type)
	}
}
