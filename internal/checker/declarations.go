package checker

import (
	"strconv"

	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/binder"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/types"
)

// typeOfDeclaration computes sym's value-space type (spec §4.6's
// type_of_declaration). It is only ever reached through SymbolType's
// memoLookup, which has already installed an in-progress marker for sym, so
// a declaration that refers back to itself (a recursive function calling
// itself, a self-initializing variable) sees types.Any rather than
// recursing forever.
func (c *Checker) typeOfDeclaration(sym *binder.Symbol) types.TypeId {
	switch {
	case sym.Flags.Has(binder.FlagFunction):
		return c.valueOfFunctionSymbol(sym)
	case sym.Flags.Has(binder.FlagClass):
		return c.valueOfClassSymbol(sym)
	case sym.Flags.Has(binder.FlagRegularEnum | binder.FlagConstEnum):
		return c.typeOfEnumSymbol(sym)
	case sym.Flags.Has(binder.FlagVariable | binder.FlagBlockScopedVariable):
		return c.valueOfVariableSymbol(sym)
	case sym.Flags.Has(binder.FlagParameter):
		return c.typeOfParameterSymbol(sym)
	case sym.Flags.Has(binder.FlagNamespace):
		return c.Types.Intern(types.TypeKey{Kind: types.KindModuleNamespace, ModuleSymbol: sym})
	default:
		return types.Any
	}
}

// typeOfTypeDeclaration computes sym's type-space meaning: what a
// TypeReference to sym resolves to. A type alias whose own body refers back
// to sym (spec §9's recursive type aliases) resolves the inner reference
// through DeclaredType's memoLookup, which returns types.Any for the
// in-progress entry rather than looping; the outer call above still
// finishes and caches the real shape.
func (c *Checker) typeOfTypeDeclaration(sym *binder.Symbol) types.TypeId {
	switch {
	case sym.Flags.Has(binder.FlagClass):
		return c.instanceOfClassSymbol(sym)
	case sym.Flags.Has(binder.FlagInterface):
		return c.typeOfInterfaceSymbol(sym)
	case sym.Flags.Has(binder.FlagTypeAlias):
		return c.typeOfAliasSymbol(sym)
	case sym.Flags.Has(binder.FlagRegularEnum | binder.FlagConstEnum):
		return c.typeOfEnumSymbol(sym)
	default:
		return types.Any
	}
}

func (c *Checker) valueOfVariableSymbol(sym *binder.Symbol) types.TypeId {
	decl, ok := c.Tree.GetVariableDeclaration(sym.ValueDeclaration)
	if !ok {
		return types.Any
	}
	if !decl.Type.IsNone() {
		return c.resolveTypeNode(decl.Type)
	}
	if !decl.Initializer.IsNone() {
		return c.Types.Widen(c.TypeOf(decl.Initializer))
	}
	if c.Opts.NoImplicitAny {
		c.addErrorf(diagnostics.CodeImplicitAny, sym.ValueDeclaration, "Variable '%s' implicitly has an 'any' type.", c.symName(sym))
	}
	return types.Any
}

func (c *Checker) typeOfParameterSymbol(sym *binder.Symbol) types.TypeId {
	param, ok := c.Tree.GetParameter(sym.ValueDeclaration)
	if !ok {
		return types.Any
	}
	if !param.Type.IsNone() {
		t := c.resolveTypeNode(param.Type)
		if param.Optional {
			return c.Types.MakeUnion([]types.TypeId{t, types.Undefined})
		}
		return t
	}
	if !param.Initializer.IsNone() {
		return c.Types.Widen(c.TypeOf(param.Initializer))
	}
	if c.Opts.NoImplicitAny {
		c.addErrorf(diagnostics.CodeImplicitAny, sym.ValueDeclaration, "Parameter '%s' implicitly has an 'any' type.", c.symName(sym))
	}
	return types.Any
}

func (c *Checker) valueOfFunctionSymbol(sym *binder.Symbol) types.TypeId {
	shape := c.callableShapeOf(sym.ValueDeclaration)
	return c.Types.MakeCallable(shape)
}

// typeOfFunctionLike gives a function/arrow expression node its callable
// type directly, for contexts (a callback argument, an IIFE) where there is
// no enclosing Symbol to memoize through.
func (c *Checker) typeOfFunctionLike(node ast.NodeIndex) types.TypeId {
	return c.Types.MakeCallable(c.callableShapeOf(node))
}

func (c *Checker) callableShapeOf(node ast.NodeIndex) types.CallableShape {
	fn, ok := c.Tree.GetFunction(node)
	if !ok {
		return types.CallableShape{ReturnType: types.Any}
	}
	params := c.callableParametersOf(fn.Params)
	var ret types.TypeId
	if !fn.ReturnType.IsNone() {
		ret = c.resolveTypeNode(fn.ReturnType)
	} else if !fn.Body.IsNone() {
		ret = c.inferReturnType(fn)
	} else {
		ret = types.Any
	}
	// An async function's declared return type is left unwrapped: this
	// checker models Promise structurally only through unwrapPromise's
	// name-sniffing fallback (spec's Non-goals exclude lib.d.ts modeling),
	// so there is no Promise Symbol to build a faithful TypeReference<T>
	// around here.
	return types.CallableShape{Parameters: params, ReturnType: ret}
}

func (c *Checker) inferReturnType(fn ast.FunctionData) types.TypeId {
	if fn.ConciseBody {
		return c.Types.Widen(c.TypeOf(fn.Body))
	}
	returns := c.collectReturnTypes(fn.Body)
	if len(returns) == 0 {
		return types.Undefined
	}
	return c.Types.MakeUnion(returns)
}

func (c *Checker) collectReturnTypes(block ast.NodeIndex) []types.TypeId {
	var out []types.TypeId
	var walk func(ast.NodeIndex)
	walk = func(n ast.NodeIndex) {
		if n.IsNone() {
			return
		}
		switch c.Tree.Node(n).Kind {
		case ast.KindReturnStatement:
			r, _ := c.Tree.GetReturn(n)
			if r.Expr.IsNone() {
				out = append(out, types.Undefined)
			} else {
				out = append(out, c.Types.Widen(c.TypeOf(r.Expr)))
			}
		case ast.KindFunctionExpression, ast.KindArrowFunction, ast.KindFunctionDeclaration, ast.KindClassDeclaration:
			// Do not cross into a nested function's own return statements.
			return
		case ast.KindBlock:
			b, _ := c.Tree.GetBlock(n)
			for _, s := range c.Tree.List(b.Statements).Items {
				walk(s)
			}
		case ast.KindIfStatement:
			d, _ := c.Tree.GetIf(n)
			walk(d.Then)
			walk(d.Else)
		case ast.KindWhileStatement:
			d, _ := c.Tree.GetWhile(n)
			walk(d.Statement)
		case ast.KindForStatement:
			d, _ := c.Tree.GetFor(n)
			walk(d.Statement)
		case ast.KindTryStatement:
			d, _ := c.Tree.GetTry(n)
			walk(d.TryBlock)
			if !d.CatchClause.IsNone() {
				cc, _ := c.Tree.GetCatchClause(d.CatchClause)
				walk(cc.Block)
			}
			walk(d.FinallyBlock)
		}
	}
	walk(block)
	return out
}

func (c *Checker) callableParametersOf(list ast.ListIndex) []types.CallableParameter {
	items := c.Tree.List(list).Items
	out := make([]types.CallableParameter, 0, len(items))
	for _, p := range items {
		pd, ok := c.Tree.GetParameter(p)
		if !ok {
			continue
		}
		name := c.nameOfPropertyKey(pd.Name)
		out = append(out, types.CallableParameter{
			Name:     name,
			Type:     c.typeOfParameterLike(pd),
			Optional: pd.Optional || !pd.Initializer.IsNone(),
			Rest:     pd.DotDotDot,
		})
	}
	return out
}

func (c *Checker) typeOfParameterLike(pd ast.ParameterData) types.TypeId {
	if !pd.Type.IsNone() {
		return c.resolveTypeNode(pd.Type)
	}
	if !pd.Initializer.IsNone() {
		return c.Types.Widen(c.TypeOf(pd.Initializer))
	}
	return types.Any
}

func (c *Checker) valueOfClassSymbol(sym *binder.Symbol) types.TypeId {
	instance := c.instanceOfClassSymbol(sym)
	ctorShape := types.CallableShape{ReturnType: instance}
	for _, d := range sym.Declarations {
		class, ok := c.Tree.GetClass(d)
		if !ok {
			continue
		}
		for _, m := range c.Tree.List(class.Members).Items {
			if c.Tree.Node(m).Kind != ast.KindConstructorDeclaration {
				continue
			}
			md, _ := c.Tree.GetMethodDecl(m)
			ctorShape.Parameters = c.callableParametersOf(md.Params)
		}
	}
	return c.Types.MakeObject(types.ObjectShape{
		ConstructSignatures: []types.CallableShapeId{c.Types.Callables.Intern(ctorShape)},
		NominalSymbol:       sym,
	})
}

func (c *Checker) instanceOfClassSymbol(sym *binder.Symbol) types.TypeId {
	var members []types.Member
	var callSigs, ctorSigs []types.CallableShapeId
	var stringIndex, numberIndex *types.IndexInfo

	for _, d := range sym.Declarations {
		class, ok := c.Tree.GetClass(d)
		if !ok {
			continue
		}
		for _, m := range c.Tree.List(class.Members).Items {
			switch c.Tree.Node(m).Kind {
			case ast.KindPropertyDeclaration:
				pd, _ := c.Tree.GetPropertyDecl(m)
				members = append(members, types.Member{
					Name:      c.nameOfPropertyKey(pd.Name),
					Type:      c.typeOfClassMemberType(pd.Type, pd.Initializer),
					Optional:  pd.Optional,
					Readonly:  pd.Modifiers.Has(ast.ModReadonly),
					Declaring: c.declaringSymbolFor(sym, pd.Modifiers),
				})
			case ast.KindMethodDeclaration, ast.KindGetAccessor, ast.KindSetAccessor:
				md, _ := c.Tree.GetMethodDecl(m)
				shape := types.CallableShape{Parameters: c.callableParametersOf(md.Params)}
				if !md.ReturnType.IsNone() {
					shape.ReturnType = c.resolveTypeNode(md.ReturnType)
				} else {
					shape.ReturnType = types.Any
				}
				members = append(members, types.Member{
					Name:      c.nameOfPropertyKey(md.Name),
					Type:      c.Types.MakeCallable(shape),
					Optional:  md.Optional,
					Declaring: c.declaringSymbolFor(sym, md.Modifiers),
				})
			case ast.KindIndexSignature:
				isig, _ := c.Tree.GetIndexSignature(m)
				info := &types.IndexInfo{KeyType: c.resolveTypeNode(isig.ParamType), ValueType: c.resolveTypeNode(isig.Type), Readonly: isig.Modifiers.Has(ast.ModReadonly)}
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
	}
	return c.Types.MakeObject(types.ObjectShape{
		Members:             members,
		CallSignatures:      callSigs,
		ConstructSignatures: ctorSigs,
		StringIndex:         stringIndex,
		NumberIndex:         numberIndex,
		NominalSymbol:       sym,
	})
}

func (c *Checker) signatureShapeOf(md ast.MethodDeclData) types.CallableShape {
	ret := types.TypeId(types.Any)
	if !md.ReturnType.IsNone() {
		ret = c.resolveTypeNode(md.ReturnType)
	}
	return types.CallableShape{Parameters: c.callableParametersOf(md.Params), ReturnType: ret}
}

// declaringSymbolFor returns owner when a member carries a private/protected
// modifier, so Assignable's nominal carve-out (spec §4.6) rejects an
// otherwise-structurally-identical object from a different class.
func (c *Checker) declaringSymbolFor(owner *binder.Symbol, mods ast.Modifiers) *binder.Symbol {
	if mods.Has(ast.ModPrivate | ast.ModProtected) {
		return owner
	}
	return nil
}

func (c *Checker) typeOfClassMemberType(typeNode, init ast.NodeIndex) types.TypeId {
	if !typeNode.IsNone() {
		return c.resolveTypeNode(typeNode)
	}
	if !init.IsNone() {
		return c.Types.Widen(c.TypeOf(init))
	}
	return types.Any
}

func (c *Checker) typeOfInterfaceSymbol(sym *binder.Symbol) types.TypeId {
	var members []types.Member
	var callSigs, ctorSigs []types.CallableShapeId
	var stringIndex, numberIndex *types.IndexInfo

	for _, d := range sym.Declarations {
		iface, ok := c.Tree.GetInterface(d)
		if !ok {
			continue
		}
		for _, m := range c.Tree.List(iface.Members).Items {
			switch c.Tree.Node(m).Kind {
			case ast.KindPropertyDeclaration:
				pd, _ := c.Tree.GetPropertyDecl(m)
				members = append(members, types.Member{Name: c.nameOfPropertyKey(pd.Name), Type: c.typeOfClassMemberType(pd.Type, pd.Initializer), Optional: pd.Optional, Readonly: pd.Modifiers.Has(ast.ModReadonly)})
			case ast.KindMethodDeclaration, ast.KindGetAccessor, ast.KindSetAccessor:
				md, _ := c.Tree.GetMethodDecl(m)
				members = append(members, types.Member{Name: c.nameOfPropertyKey(md.Name), Type: c.Types.MakeCallable(c.signatureShapeOf(md)), Optional: md.Optional})
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
	}
	return c.Types.MakeObject(types.ObjectShape{Members: members, CallSignatures: callSigs, ConstructSignatures: ctorSigs, StringIndex: stringIndex, NumberIndex: numberIndex, NominalSymbol: sym})
}

func (c *Checker) typeOfAliasSymbol(sym *binder.Symbol) types.TypeId {
	if len(sym.Declarations) == 0 {
		return types.Any
	}
	alias, ok := c.Tree.GetTypeAlias(sym.Declarations[0])
	if !ok {
		return types.Any
	}
	return c.resolveTypeNode(alias.Type)
}

func (c *Checker) typeOfEnumSymbol(sym *binder.Symbol) types.TypeId {
	members := make(map[atom.Atom]types.EnumMemberValue)
	var next float64
	for _, d := range sym.Declarations {
		e, ok := c.Tree.GetEnum(d)
		if !ok {
			continue
		}
		for _, m := range c.Tree.List(e.Members).Items {
			em, ok := c.Tree.GetEnumMember(m)
			if !ok {
				continue
			}
			name := c.nameOfPropertyKey(em.Name)
			if em.Initializer.IsNone() {
				members[name] = types.EnumMemberValue{Name: name, NumberValue: next}
				next++
				continue
			}
			initT := c.TypeOf(em.Initializer)
			key := c.Types.Key(initT)
			switch key.Kind {
			case types.KindLiteralString:
				members[name] = types.EnumMemberValue{Name: name, StringValue: key.LitString, IsString: true}
			case types.KindLiteralNumber:
				v, _ := strconv.ParseFloat(key.LitNumber, 64)
				members[name] = types.EnumMemberValue{Name: name, NumberValue: v}
				next = v + 1
			default:
				members[name] = types.EnumMemberValue{Name: name, NumberValue: next}
				next++
			}
		}
	}
	return c.Types.Intern(types.TypeKey{Kind: types.KindEnum, Def: types.DefId{Sym: sym}, EnumMembers: members})
}

func (c *Checker) symName(sym *binder.Symbol) string {
	if c.Atoms == nil {
		return "?"
	}
	return c.Atoms.Resolve(sym.Name)
}
