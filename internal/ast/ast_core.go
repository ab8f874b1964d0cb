// Package ast defines the TypeScript abstract syntax tree: a Kind-tagged,
// 16-byte Node record held in package arena's append-only pools, plus one
// strongly typed side-pool per node family (spec §3, §4.3, §9 "AST shape").
//
// There is deliberately no deep tree of heap-allocated variant objects here:
// every child reference is a NodeIndex, and the data for a node of kind K
// lives in the Pool selected by K, not inline in the Node itself.
package ast

import (
	"github.com/gotsc/gotsc/internal/arena"
	"github.com/gotsc/gotsc/internal/token"
)

// NodeIndex is an opaque handle into a Tree's node vector. The zero value,
// NodeIndex(arena.None), represents a missing subterm left by parser error
// recovery.
type NodeIndex = arena.Index

// ListIndex is an opaque handle into a Tree's list pool.
type ListIndex = arena.Index

// Kind tags which side-pool a Node's Data field indexes into.
type Kind uint16

const (
	KindInvalid Kind = iota

	// Names and literals.
	KindIdentifier
	KindPrivateIdentifier
	KindNumericLiteral
	KindBigIntLiteral
	KindStringLiteral
	KindNoSubstitutionTemplateLiteral
	KindRegularExpressionLiteral
	KindTrueLiteral
	KindFalseLiteral
	KindNullLiteral
	KindUndefinedLiteral
	KindThisExpression
	KindSuperExpression

	// Expressions.
	KindArrayLiteralExpression
	KindObjectLiteralExpression
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindSpreadAssignment
	KindPropertyAccessExpression
	KindElementAccessExpression
	KindCallExpression
	KindNewExpression
	KindTaggedTemplateExpression
	KindTemplateExpression
	KindTemplateSpan
	KindParenthesizedExpression
	KindFunctionExpression
	KindArrowFunction
	KindClassExpression
	KindPrefixUnaryExpression
	KindPostfixUnaryExpression
	KindBinaryExpression
	KindConditionalExpression
	KindSpreadElement
	KindAsExpression
	KindSatisfiesExpression
	KindNonNullExpression
	KindTypeOfExpression
	KindVoidExpression
	KindDeleteExpression
	KindAwaitExpression
	KindYieldExpression
	KindOmittedExpression // elided array-literal element: [ , x]
	KindJSXElement
	KindJSXSelfClosingElement
	KindJSXFragment
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXAttribute
	KindJSXSpreadAttribute
	KindJSXExpression
	KindJSXText

	// Patterns (binding targets).
	KindArrayBindingPattern
	KindObjectBindingPattern
	KindBindingElement

	// Statements.
	KindBlock
	KindExpressionStatement
	KindVariableStatement
	KindVariableDeclarationList
	KindVariableDeclaration
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindWhileStatement
	KindDoStatement
	KindBreakStatement
	KindContinueStatement
	KindReturnStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindSwitchStatement
	KindCaseClause
	KindDefaultClause
	KindLabeledStatement
	KindDebuggerStatement
	KindEmptyStatement

	// Declarations.
	KindFunctionDeclaration
	KindClassDeclaration
	KindInterfaceDeclaration
	KindTypeAliasDeclaration
	KindEnumDeclaration
	KindEnumMember
	KindModuleDeclaration
	KindModuleBlock
	KindParameter
	KindPropertyDeclaration
	KindMethodDeclaration
	KindConstructorDeclaration
	KindGetAccessor
	KindSetAccessor
	KindIndexSignature
	KindCallSignature
	KindConstructSignature
	KindHeritageClause
	KindTypeParameter

	// Modules / imports / exports.
	KindImportDeclaration
	KindImportClause
	KindNamespaceImport
	KindNamedImports
	KindImportSpecifier
	KindExportDeclaration
	KindExportAssignment
	KindNamedExports
	KindExportSpecifier
	KindImportEqualsDeclaration

	// Type nodes.
	KindKeywordType // Any/Unknown/Number/String/Boolean/Void/Never/Object/Symbol/BigInt/Undefined/Null
	KindTypeReference
	KindArrayType
	KindTupleType
	KindNamedTupleMember
	KindUnionType
	KindIntersectionType
	KindTypeOperator // keyof / readonly / unique
	KindTypeLiteral
	KindFunctionType
	KindConstructorType
	KindConditionalType
	KindInferType
	KindMappedType
	KindIndexedAccessType
	KindLiteralType
	KindTemplateLiteralType
	KindTemplateLiteralTypeSpan
	KindParenthesizedType
	KindTypeQuery
	KindImportType
	KindQualifiedName

	// Top level.
	KindSourceFile

	maxKind
)

// Node is the cache-dense 16-byte AST record (spec §3): a kind tag, an
// opaque index into the kind-specific side-pool, and the node's source
// span. It carries no pointers and no variant payload of its own.
type Node struct {
	Kind Kind
	Data arena.Index
	Pos  uint32
	End  uint32
}

// Span returns the node's source span.
func (n Node) Span() token.Span { return token.Span{Pos: n.Pos, End: n.End} }

// Tree owns every node produced while parsing one source file. Tree never
// reallocates or removes an entry: NodeIndex values handed out during
// parsing stay valid for the Tree's lifetime (spec's "Arena indices are
// never invalidated" invariant).
type Tree struct {
	File string
	Text string

	nodes arena.Pool[Node]
	lists arena.Pool[arena.List]

	identifiers  arena.Pool[IdentifierData]
	literals     arena.Pool[LiteralData]
	regexes      arena.Pool[RegexData]

	binary     arena.Pool[BinaryExprData]
	unary      arena.Pool[UnaryExprData]
	conditional arena.Pool[ConditionalExprData]
	call       arena.Pool[CallExprData]
	access     arena.Pool[AccessExprData]
	template   arena.Pool[TemplateExprData]
	templateSpan arena.Pool[TemplateSpanData]
	spread     arena.Pool[UnaryLikeData]
	typeCast   arena.Pool[TypeCastData]
	paren      arena.Pool[UnaryLikeData]
	yield_     arena.Pool[YieldData]
	arrayLit   arena.Pool[ElementsData]
	objectLit  arena.Pool[ElementsData]
	propAssign arena.Pool[PropertyAssignmentData]

	jsxElement arena.Pool[JSXElementData]
	jsxOpening arena.Pool[JSXOpeningElementData]
	jsxAttr    arena.Pool[JSXAttributeData]

	function   arena.Pool[FunctionData]
	parameter  arena.Pool[ParameterData]
	classDecl  arena.Pool[ClassData]
	heritage   arena.Pool[HeritageClauseData]
	propDecl   arena.Pool[PropertyDeclData]
	methodDecl arena.Pool[MethodDeclData]
	indexSig   arena.Pool[IndexSignatureData]
	interfaceDecl arena.Pool[InterfaceData]
	typeAlias  arena.Pool[TypeAliasData]
	enumDecl   arena.Pool[EnumData]
	enumMember arena.Pool[EnumMemberData]
	moduleDecl arena.Pool[ModuleData]
	typeParam  arena.Pool[TypeParameterData]
	bindingElem arena.Pool[BindingElementData]

	importDecl arena.Pool[ImportDeclData]
	importClause arena.Pool[ImportClauseData]
	namespaceImport arena.Pool[NamespaceImportData]
	namedImports arena.Pool[ElementsData]
	importSpec arena.Pool[ImportSpecifierData]
	exportDecl arena.Pool[ExportDeclData]
	exportAssign arena.Pool[ExportAssignmentData]
	namedExports arena.Pool[ElementsData]
	exportSpec arena.Pool[ExportSpecifierData]
	importEquals arena.Pool[ImportEqualsData]
	qualifiedName arena.Pool[QualifiedNameData]

	varStmt    arena.Pool[VariableStatementData]
	varDeclList arena.Pool[VariableDeclarationListData]
	varDecl    arena.Pool[VariableDeclarationData]
	ifStmt     arena.Pool[IfData]
	forStmt    arena.Pool[ForData]
	forInOf    arena.Pool[ForInOfData]
	whileStmt  arena.Pool[WhileData]
	doStmt     arena.Pool[DoData]
	block      arena.Pool[BlockData]
	exprStmt   arena.Pool[ExprStmtData]
	returnStmt arena.Pool[ReturnData]
	throwStmt  arena.Pool[ThrowData]
	jump       arena.Pool[JumpData]
	labeled    arena.Pool[LabeledData]
	switchStmt arena.Pool[SwitchData]
	caseClause arena.Pool[CaseClauseData]
	tryStmt    arena.Pool[TryData]
	catchClause arena.Pool[CatchClauseData]

	typeRef    arena.Pool[TypeReferenceData]
	arrayType  arena.Pool[UnaryLikeTypeData]
	tupleType  arena.Pool[ElementsData]
	namedTupleMember arena.Pool[NamedTupleMemberData]
	unionType  arena.Pool[ElementsData]
	typeOperator arena.Pool[TypeOperatorData]
	typeLiteral arena.Pool[ElementsData]
	fnType     arena.Pool[FunctionTypeData]
	condType   arena.Pool[ConditionalTypeData]
	inferType  arena.Pool[InferTypeData]
	mappedType arena.Pool[MappedTypeData]
	indexedAccessType arena.Pool[IndexedAccessTypeData]
	literalType arena.Pool[UnaryLikeTypeData]
	templateLitType arena.Pool[TemplateLiteralTypeData]
	importType arena.Pool[ImportTypeData]

	sourceFile arena.Pool[SourceFileData]
}

// NewTree creates an empty Tree for one source file. Every side-pool is
// pre-seeded with its None sentinel at index 0 (arena.NewPool), so the zero
// NodeIndex never aliases a real node in any pool.
func NewTree(file, text string) *Tree {
	t := &Tree{File: file, Text: text}

	t.nodes = *arena.NewPool[Node]()
	t.lists = *arena.NewPool[arena.List]()

	t.identifiers = *arena.NewPool[IdentifierData]()
	t.literals = *arena.NewPool[LiteralData]()
	t.regexes = *arena.NewPool[RegexData]()

	t.binary = *arena.NewPool[BinaryExprData]()
	t.unary = *arena.NewPool[UnaryExprData]()
	t.conditional = *arena.NewPool[ConditionalExprData]()
	t.call = *arena.NewPool[CallExprData]()
	t.access = *arena.NewPool[AccessExprData]()
	t.template = *arena.NewPool[TemplateExprData]()
	t.templateSpan = *arena.NewPool[TemplateSpanData]()
	t.spread = *arena.NewPool[UnaryLikeData]()
	t.typeCast = *arena.NewPool[TypeCastData]()
	t.paren = *arena.NewPool[UnaryLikeData]()
	t.yield_ = *arena.NewPool[YieldData]()
	t.arrayLit = *arena.NewPool[ElementsData]()
	t.objectLit = *arena.NewPool[ElementsData]()
	t.propAssign = *arena.NewPool[PropertyAssignmentData]()

	t.jsxElement = *arena.NewPool[JSXElementData]()
	t.jsxOpening = *arena.NewPool[JSXOpeningElementData]()
	t.jsxAttr = *arena.NewPool[JSXAttributeData]()

	t.function = *arena.NewPool[FunctionData]()
	t.parameter = *arena.NewPool[ParameterData]()
	t.classDecl = *arena.NewPool[ClassData]()
	t.heritage = *arena.NewPool[HeritageClauseData]()
	t.propDecl = *arena.NewPool[PropertyDeclData]()
	t.methodDecl = *arena.NewPool[MethodDeclData]()
	t.indexSig = *arena.NewPool[IndexSignatureData]()
	t.interfaceDecl = *arena.NewPool[InterfaceData]()
	t.typeAlias = *arena.NewPool[TypeAliasData]()
	t.enumDecl = *arena.NewPool[EnumData]()
	t.enumMember = *arena.NewPool[EnumMemberData]()
	t.moduleDecl = *arena.NewPool[ModuleData]()
	t.typeParam = *arena.NewPool[TypeParameterData]()
	t.bindingElem = *arena.NewPool[BindingElementData]()

	t.importDecl = *arena.NewPool[ImportDeclData]()
	t.importClause = *arena.NewPool[ImportClauseData]()
	t.namespaceImport = *arena.NewPool[NamespaceImportData]()
	t.namedImports = *arena.NewPool[ElementsData]()
	t.importSpec = *arena.NewPool[ImportSpecifierData]()
	t.exportDecl = *arena.NewPool[ExportDeclData]()
	t.exportAssign = *arena.NewPool[ExportAssignmentData]()
	t.namedExports = *arena.NewPool[ElementsData]()
	t.exportSpec = *arena.NewPool[ExportSpecifierData]()
	t.importEquals = *arena.NewPool[ImportEqualsData]()
	t.qualifiedName = *arena.NewPool[QualifiedNameData]()

	t.varStmt = *arena.NewPool[VariableStatementData]()
	t.varDeclList = *arena.NewPool[VariableDeclarationListData]()
	t.varDecl = *arena.NewPool[VariableDeclarationData]()
	t.ifStmt = *arena.NewPool[IfData]()
	t.forStmt = *arena.NewPool[ForData]()
	t.forInOf = *arena.NewPool[ForInOfData]()
	t.whileStmt = *arena.NewPool[WhileData]()
	t.doStmt = *arena.NewPool[DoData]()
	t.block = *arena.NewPool[BlockData]()
	t.exprStmt = *arena.NewPool[ExprStmtData]()
	t.returnStmt = *arena.NewPool[ReturnData]()
	t.throwStmt = *arena.NewPool[ThrowData]()
	t.jump = *arena.NewPool[JumpData]()
	t.labeled = *arena.NewPool[LabeledData]()
	t.switchStmt = *arena.NewPool[SwitchData]()
	t.caseClause = *arena.NewPool[CaseClauseData]()
	t.tryStmt = *arena.NewPool[TryData]()
	t.catchClause = *arena.NewPool[CatchClauseData]()

	t.typeRef = *arena.NewPool[TypeReferenceData]()
	t.arrayType = *arena.NewPool[UnaryLikeTypeData]()
	t.tupleType = *arena.NewPool[ElementsData]()
	t.namedTupleMember = *arena.NewPool[NamedTupleMemberData]()
	t.unionType = *arena.NewPool[ElementsData]()
	t.typeOperator = *arena.NewPool[TypeOperatorData]()
	t.typeLiteral = *arena.NewPool[ElementsData]()
	t.fnType = *arena.NewPool[FunctionTypeData]()
	t.condType = *arena.NewPool[ConditionalTypeData]()
	t.inferType = *arena.NewPool[InferTypeData]()
	t.mappedType = *arena.NewPool[MappedTypeData]()
	t.indexedAccessType = *arena.NewPool[IndexedAccessTypeData]()
	t.literalType = *arena.NewPool[UnaryLikeTypeData]()
	t.templateLitType = *arena.NewPool[TemplateLiteralTypeData]()
	t.importType = *arena.NewPool[ImportTypeData]()

	t.sourceFile = *arena.NewPool[SourceFileData]()

	return t
}

func (t *Tree) addNode(kind Kind, pos, end uint32, data arena.Index) NodeIndex {
	return t.nodes.Add(Node{Kind: kind, Data: data, Pos: pos, End: end})
}

// Node returns the node record at i.
func (t *Tree) Node(i NodeIndex) Node { return t.nodes.Get(i) }

// NodeCount returns the number of real nodes in the tree.
func (t *Tree) NodeCount() int { return t.nodes.Len() }

// NewList interns an ordered sequence of children as a list, returning a
// ListIndex. Used for argument lists, statement lists, heritage lists, etc.
func (t *Tree) NewList(items []NodeIndex, trailingComma bool) ListIndex {
	return t.lists.Add(arena.List{Items: items, HasTrailingComma: trailingComma})
}

// List returns the list at i.
func (t *Tree) List(i ListIndex) arena.List { return t.lists.Get(i) }

// EmptyList is the canonical handle for "no list" (distinct from an empty
// but present list): callers test i == arena.None.
const EmptyList = arena.None
