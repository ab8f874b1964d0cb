package ast

import "github.com/gotsc/gotsc/internal/arena"

// Modifiers is a bitset of declaration modifiers. The parser validates
// uniqueness, ordering, and host legality (spec §4.4) before setting these;
// by the time a Modifiers value reaches the binder/checker it is assumed
// well-formed.
type Modifiers uint32

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModReadonly
	ModAbstract
	ModAsync
	ModExport
	ModDefault
	ModDeclare
	ModOverride
	ModAccessor
	ModConst   // `const enum`
	ModIn      // variance annotation on a type parameter
	ModOut
)

func (m Modifiers) Has(f Modifiers) bool { return m&f != 0 }

// FunctionFlags marks generator/async on function-shaped declarations.
type FunctionFlags uint8

const (
	FuncGenerator FunctionFlags = 1 << iota
	FuncAsync
	FuncArrow
)

func (f FunctionFlags) Has(g FunctionFlags) bool { return f&g != 0 }

// FunctionData backs function declarations/expressions and arrow functions.
// Name is arena.None for anonymous function expressions and always None for
// arrow functions.
type FunctionData struct {
	Name       NodeIndex
	TypeParams ListIndex
	Params     ListIndex
	ReturnType NodeIndex
	Body       NodeIndex // block, or an expression for a concise-body arrow
	Flags      FunctionFlags
	Modifiers  Modifiers
	ConciseBody bool // true when Body is an expression, not a block
}

func (t *Tree) AddFunction(kind Kind, pos, end uint32, d FunctionData) NodeIndex {
	idx := t.function.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetFunction(i NodeIndex) (FunctionData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunction,
		KindMethodDeclaration, KindConstructorDeclaration, KindGetAccessor, KindSetAccessor:
		return t.function.Get(n.Data), true
	default:
		return FunctionData{}, false
	}
}

// ParameterData backs one function parameter.
type ParameterData struct {
	Name        NodeIndex // identifier or binding pattern
	Type        NodeIndex
	Initializer NodeIndex
	DotDotDot   bool
	Optional    bool
	Modifiers   Modifiers // parameter properties: public/private/protected/readonly
}

func (t *Tree) AddParameter(pos, end uint32, d ParameterData) NodeIndex {
	idx := t.parameter.Add(d)
	return t.addNode(KindParameter, pos, end, idx)
}

func (t *Tree) GetParameter(i NodeIndex) (ParameterData, bool) {
	n := t.Node(i)
	if n.Kind != KindParameter {
		return ParameterData{}, false
	}
	return t.parameter.Get(n.Data), true
}

// ClassData backs class declarations and class expressions.
type ClassData struct {
	Name       NodeIndex
	TypeParams ListIndex
	Heritage   ListIndex // list of KindHeritageClause nodes
	Members    ListIndex
	Modifiers  Modifiers
}

func (t *Tree) AddClass(kind Kind, pos, end uint32, d ClassData) NodeIndex {
	idx := t.classDecl.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetClass(i NodeIndex) (ClassData, bool) {
	n := t.Node(i)
	if n.Kind != KindClassDeclaration && n.Kind != KindClassExpression {
		return ClassData{}, false
	}
	return t.classDecl.Get(n.Data), true
}

// HeritageClauseData backs `extends X` / `implements X, Y`.
type HeritageClauseData struct {
	IsExtends bool
	Types     ListIndex // list of KindTypeReference (or KindCallExpression for expression-with-type-args extends)
}

func (t *Tree) AddHeritageClause(pos, end uint32, isExtends bool, types ListIndex) NodeIndex {
	d := t.heritage.Add(HeritageClauseData{IsExtends: isExtends, Types: types})
	return t.addNode(KindHeritageClause, pos, end, d)
}

func (t *Tree) GetHeritageClause(i NodeIndex) (HeritageClauseData, bool) {
	n := t.Node(i)
	if n.Kind != KindHeritageClause {
		return HeritageClauseData{}, false
	}
	return t.heritage.Get(n.Data), true
}

// PropertyDeclData backs a class or type-literal property.
type PropertyDeclData struct {
	Name        NodeIndex
	Type        NodeIndex
	Initializer NodeIndex
	Optional    bool
	Modifiers   Modifiers
}

func (t *Tree) AddPropertyDecl(pos, end uint32, d PropertyDeclData) NodeIndex {
	idx := t.propDecl.Add(d)
	return t.addNode(KindPropertyDeclaration, pos, end, idx)
}

func (t *Tree) GetPropertyDecl(i NodeIndex) (PropertyDeclData, bool) {
	n := t.Node(i)
	if n.Kind != KindPropertyDeclaration {
		return PropertyDeclData{}, false
	}
	return t.propDecl.Get(n.Data), true
}

// MethodDeclData backs a class or type-literal method/accessor, including
// call/construct signatures (which leave Name as arena.None).
type MethodDeclData struct {
	Name       NodeIndex
	TypeParams ListIndex
	Params     ListIndex
	ReturnType NodeIndex
	Body       NodeIndex // arena.None for interface/type-literal signatures
	Optional   bool
	Modifiers  Modifiers
	Flags      FunctionFlags
}

func (t *Tree) AddMethodDecl(kind Kind, pos, end uint32, d MethodDeclData) NodeIndex {
	idx := t.methodDecl.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetMethodDecl(i NodeIndex) (MethodDeclData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindMethodDeclaration, KindConstructorDeclaration, KindGetAccessor, KindSetAccessor,
		KindCallSignature, KindConstructSignature:
		return t.methodDecl.Get(n.Data), true
	default:
		return MethodDeclData{}, false
	}
}

// IndexSignatureData backs `[key: K]: V` members.
type IndexSignatureData struct {
	ParamName NodeIndex
	ParamType NodeIndex
	Type      NodeIndex
	Modifiers Modifiers
}

func (t *Tree) AddIndexSignature(pos, end uint32, d IndexSignatureData) NodeIndex {
	idx := t.indexSig.Add(d)
	return t.addNode(KindIndexSignature, pos, end, idx)
}

func (t *Tree) GetIndexSignature(i NodeIndex) (IndexSignatureData, bool) {
	n := t.Node(i)
	if n.Kind != KindIndexSignature {
		return IndexSignatureData{}, false
	}
	return t.indexSig.Get(n.Data), true
}

// InterfaceData backs an interface declaration.
type InterfaceData struct {
	Name       NodeIndex
	TypeParams ListIndex
	Heritage   ListIndex
	Members    ListIndex
}

func (t *Tree) AddInterface(pos, end uint32, d InterfaceData) NodeIndex {
	idx := t.interfaceDecl.Add(d)
	return t.addNode(KindInterfaceDeclaration, pos, end, idx)
}

func (t *Tree) GetInterface(i NodeIndex) (InterfaceData, bool) {
	n := t.Node(i)
	if n.Kind != KindInterfaceDeclaration {
		return InterfaceData{}, false
	}
	return t.interfaceDecl.Get(n.Data), true
}

// TypeAliasData backs `type Name<T> = ...`.
type TypeAliasData struct {
	Name       NodeIndex
	TypeParams ListIndex
	Type       NodeIndex
}

func (t *Tree) AddTypeAlias(pos, end uint32, d TypeAliasData) NodeIndex {
	idx := t.typeAlias.Add(d)
	return t.addNode(KindTypeAliasDeclaration, pos, end, idx)
}

func (t *Tree) GetTypeAlias(i NodeIndex) (TypeAliasData, bool) {
	n := t.Node(i)
	if n.Kind != KindTypeAliasDeclaration {
		return TypeAliasData{}, false
	}
	return t.typeAlias.Get(n.Data), true
}

// EnumData backs `[const] enum Name { ... }`.
type EnumData struct {
	Name    NodeIndex
	Members ListIndex
	Const   bool
}

func (t *Tree) AddEnum(pos, end uint32, d EnumData) NodeIndex {
	idx := t.enumDecl.Add(d)
	return t.addNode(KindEnumDeclaration, pos, end, idx)
}

func (t *Tree) GetEnum(i NodeIndex) (EnumData, bool) {
	n := t.Node(i)
	if n.Kind != KindEnumDeclaration {
		return EnumData{}, false
	}
	return t.enumDecl.Get(n.Data), true
}

type EnumMemberData struct {
	Name        NodeIndex
	Initializer NodeIndex
}

func (t *Tree) AddEnumMember(pos, end uint32, name, init NodeIndex) NodeIndex {
	d := t.enumMember.Add(EnumMemberData{Name: name, Initializer: init})
	return t.addNode(KindEnumMember, pos, end, d)
}

func (t *Tree) GetEnumMember(i NodeIndex) (EnumMemberData, bool) {
	n := t.Node(i)
	if n.Kind != KindEnumMember {
		return EnumMemberData{}, false
	}
	return t.enumMember.Get(n.Data), true
}

// ModuleData backs `namespace N { }` / `module "m" { }` / `declare global { }`.
type ModuleData struct {
	Name    NodeIndex // identifier, qualified name, or string literal
	Body    NodeIndex // KindModuleBlock, or arena.None for `declare module "x";`
	Modifiers Modifiers
	IsGlobal bool
}

func (t *Tree) AddModule(pos, end uint32, d ModuleData) NodeIndex {
	idx := t.moduleDecl.Add(d)
	return t.addNode(KindModuleDeclaration, pos, end, idx)
}

func (t *Tree) GetModule(i NodeIndex) (ModuleData, bool) {
	n := t.Node(i)
	if n.Kind != KindModuleDeclaration {
		return ModuleData{}, false
	}
	return t.moduleDecl.Get(n.Data), true
}

// TypeParameterData backs `<T extends C = D>` entries.
type TypeParameterData struct {
	Name       NodeIndex
	Constraint NodeIndex
	Default    NodeIndex
	Modifiers  Modifiers // in/out variance annotations
}

func (t *Tree) AddTypeParameter(pos, end uint32, d TypeParameterData) NodeIndex {
	idx := t.typeParam.Add(d)
	return t.addNode(KindTypeParameter, pos, end, idx)
}

func (t *Tree) GetTypeParameter(i NodeIndex) (TypeParameterData, bool) {
	n := t.Node(i)
	if n.Kind != KindTypeParameter {
		return TypeParameterData{}, false
	}
	return t.typeParam.Get(n.Data), true
}

// BindingElementData backs one element of an array/object destructuring
// pattern, including default values and rest elements.
type BindingElementData struct {
	PropertyName NodeIndex // object pattern key; arena.None for array patterns
	Name         NodeIndex // identifier or nested pattern
	Initializer  NodeIndex
	DotDotDot    bool
}

func (t *Tree) AddBindingElement(kind Kind, pos, end uint32, d BindingElementData) NodeIndex {
	idx := t.bindingElem.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetBindingElement(i NodeIndex) (BindingElementData, bool) {
	n := t.Node(i)
	if n.Kind != KindBindingElement {
		return BindingElementData{}, false
	}
	return t.bindingElem.Get(n.Data), true
}

// SourceFileData backs the single KindSourceFile root node per Tree.
type SourceFileData struct {
	Statements ListIndex
}

func (t *Tree) AddSourceFile(pos, end uint32, stmts ListIndex) NodeIndex {
	d := t.sourceFile.Add(SourceFileData{Statements: stmts})
	return t.addNode(KindSourceFile, pos, end, d)
}

func (t *Tree) GetSourceFile(i NodeIndex) (SourceFileData, bool) {
	n := t.Node(i)
	if n.Kind != KindSourceFile {
		return SourceFileData{}, false
	}
	return t.sourceFile.Get(n.Data), true
}

var _ = arena.None // arena referenced for doc purposes in comments above
