package binder

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/token"
)

// binder carries the mutable state of one Bind call: the tree being walked,
// the scope currently in scope, and the accumulating Result.
type binder struct {
	tree   *ast.Tree
	file   string
	diags  *diagnostics.Bag
	scope  *Scope
	labels []atom.Atom
	result *Result
}

func (b *binder) span(n ast.NodeIndex) token.Span { return b.tree.Node(n).Span() }

func (b *binder) pushScope(kind ScopeKind, node ast.NodeIndex) {
	b.scope = newScope(kind, node, b.scope)
}

func (b *binder) popScope() {
	b.scope = b.scope.outer
}

// bindMemberName binds a member/property name only when it is computed
// (the AST has no dedicated ComputedPropertyName kind: a computed name is
// stored as whatever expression produced it, while a literal name is an
// Identifier/PrivateIdentifier/StringLiteral/NumericLiteral). A literal
// name is never a value reference, so it is left alone.
func (b *binder) bindMemberName(name ast.NodeIndex) {
	if name.IsNone() {
		return
	}
	switch b.tree.Node(name).Kind {
	case ast.KindIdentifier, ast.KindPrivateIdentifier, ast.KindStringLiteral,
		ast.KindNumericLiteral, ast.KindNoSubstitutionTemplateLiteral:
		return
	default:
		b.bindExpression(name)
	}
}

func (b *binder) identifierAtom(n ast.NodeIndex) (atom.Atom, bool) {
	if n.IsNone() {
		return 0, false
	}
	id, ok := b.tree.GetIdentifier(n)
	if !ok {
		return 0, false
	}
	return id.Text, true
}

// declareName resolves nameNode to an Atom and declares it in the current
// scope, recording node -> symbol for the declaration identifier (spec
// §4.5) and diagnosing an illegal merge.
func (b *binder) declareName(nameNode ast.NodeIndex, meaning Meaning, flags SymbolFlags, declNode ast.NodeIndex) *Symbol {
	name, ok := b.identifierAtom(nameNode)
	if !ok {
		return nil
	}
	existing := b.scope.LookupLocal(name, meaning)
	sym, merged := b.scope.declare(name, meaning, flags, declNode)
	if !merged {
		code := diagnostics.CodeConflictingMerge
		if existing != nil && existing.Flags&kindMask == flags&kindMask {
			code = diagnostics.CodeDuplicateDeclaration
		}
		b.diags.Addf(code, b.file, b.span(declNode), "Cannot redeclare %q in this scope.", name)
	}
	b.result.Symbols[nameNode] = sym
	return sym
}

// resolveReference looks up name starting from the current scope and, if
// found, records node -> symbol; otherwise it leaves the reference
// unresolved (cross-file import resolution happens downstream of the
// binder, per spec §4.5).
func (b *binder) resolveReference(node ast.NodeIndex, name atom.Atom, meaning Meaning) {
	sym := b.scope.Lookup(name, meaning)
	if sym != nil {
		b.result.Symbols[node] = sym
	}
}

func flagsFromModifiers(m ast.Modifiers) SymbolFlags {
	var f SymbolFlags
	if m.Has(ast.ModReadonly) {
		f |= FlagReadonly
	}
	if m.Has(ast.ModStatic) {
		f |= FlagStatic
	}
	if m.Has(ast.ModAbstract) {
		f |= FlagAbstract
	}
	if m.Has(ast.ModExport) {
		f |= FlagExported
	}
	if m.Has(ast.ModDeclare) {
		f |= FlagAmbient
	}
	if m.Has(ast.ModDefault) {
		f |= FlagDefaultExport
	}
	return f
}

// bindStatementList implements the binder's declare-then-resolve pass for
// one list of statements sharing a scope: every hoistable declaration in
// the list is declared first (so later-declared functions/classes/types
// are visible to earlier statements, per spec §4.5's same-scope forward
// reference requirement), then every statement is bound in source order
// while reachability is tracked.
func (b *binder) bindStatementList(list ast.ListIndex) {
	items := b.tree.List(list).Items

	for _, n := range items {
		b.hoistStatement(n)
	}

	reachable := true
	for _, n := range items {
		b.result.Reachable[n] = reachable
		b.bindStatement(n)
		if reachable && b.terminatesFlow(n) {
			reachable = false
		}
	}
}

// hoistStatement declares the name(s) introduced by one statement, without
// descending into bodies (those are bound, in their own pushed scope,
// during the sequential pass).
func (b *binder) hoistStatement(n ast.NodeIndex) {
	node := b.tree.Node(n)
	switch node.Kind {
	case ast.KindFunctionDeclaration:
		d, _ := b.tree.GetFunction(n)
		b.declareName(d.Name, MeaningValue, flagsFromModifiers(d.Modifiers)|FlagFunction, n)

	case ast.KindClassDeclaration:
		d, _ := b.tree.GetClass(n)
		b.declareName(d.Name, MeaningValue|MeaningType, flagsFromModifiers(d.Modifiers)|FlagClass, n)

	case ast.KindInterfaceDeclaration:
		d, _ := b.tree.GetInterface(n)
		b.declareName(d.Name, MeaningType, FlagInterface, n)

	case ast.KindTypeAliasDeclaration:
		d, _ := b.tree.GetTypeAlias(n)
		b.declareName(d.Name, MeaningType, FlagTypeAlias, n)

	case ast.KindEnumDeclaration:
		d, _ := b.tree.GetEnum(n)
		flag := FlagRegularEnum
		if d.Const {
			flag = FlagConstEnum
		}
		b.declareName(d.Name, MeaningValue|MeaningType, flag, n)

	case ast.KindModuleDeclaration:
		d, _ := b.tree.GetModule(n)
		if !d.IsGlobal && !d.Name.IsNone() {
			b.declareName(d.Name, MeaningValue|MeaningNamespace, flagsFromModifiers(d.Modifiers)|FlagNamespace, n)
		}

	case ast.KindVariableStatement:
		// `var` is function/file-scoped and must be visible to earlier
		// statements in this list, so it hoists here. `let`/`const` are
		// block-scoped and deliberately NOT hoisted (no temporal-dead-zone
		// forward visibility): they are declared in the sequential pass,
		// in bindVariableDeclarationList.
		d, _ := b.tree.GetVariableStatement(n)
		if list, ok := b.tree.GetVariableDeclarationList(d.DeclarationList); ok && list.Flags == ast.DeclVar {
			b.hoistVariableDeclarationList(d.DeclarationList, flagsFromModifiers(d.Modifiers))
		}

	case ast.KindImportDeclaration:
		b.hoistImportDeclaration(n)

	case ast.KindImportEqualsDeclaration:
		d, _ := b.tree.GetImportEquals(n)
		b.declareName(d.Name, MeaningValue|MeaningNamespace, FlagImport, n)
	}
}

func (b *binder) hoistVariableDeclarationList(listNode ast.NodeIndex, stmtFlags SymbolFlags) {
	d, ok := b.tree.GetVariableDeclarationList(listNode)
	if !ok {
		return
	}
	flags := stmtFlags
	if d.Flags == ast.DeclVar {
		flags |= FlagVariable
	} else {
		flags |= FlagBlockScopedVariable
	}
	for _, decl := range b.tree.List(d.Declarations).Items {
		vd, ok := b.tree.GetVariableDeclaration(decl)
		if !ok {
			continue
		}
		b.hoistBindingName(vd.Name, flags, decl)
	}
}

// hoistBindingName declares every identifier introduced by a (possibly
// destructuring) binding target.
func (b *binder) hoistBindingName(nameNode ast.NodeIndex, flags SymbolFlags, declNode ast.NodeIndex) {
	if nameNode.IsNone() {
		return
	}
	switch b.tree.Node(nameNode).Kind {
	case ast.KindIdentifier:
		b.declareName(nameNode, MeaningValue, flags, declNode)
	case ast.KindArrayBindingPattern, ast.KindObjectBindingPattern:
		elems, _ := b.tree.GetElements(nameNode)
		for _, el := range b.tree.List(elems.Elements).Items {
			if el.IsNone() {
				continue // elided array-pattern slot
			}
			be, ok := b.tree.GetBindingElement(el)
			if !ok {
				continue
			}
			b.hoistBindingName(be.Name, flags, declNode)
		}
	}
}

func (b *binder) hoistImportDeclaration(n ast.NodeIndex) {
	d, _ := b.tree.GetImportDecl(n)
	if d.ImportClause.IsNone() {
		return
	}
	clause, ok := b.tree.GetImportClause(d.ImportClause)
	if !ok {
		return
	}
	if !clause.Name.IsNone() {
		b.declareName(clause.Name, MeaningValue|MeaningType, FlagImport, n)
	}
	if clause.NamedBindings.IsNone() {
		return
	}
	switch b.tree.Node(clause.NamedBindings).Kind {
	case ast.KindNamespaceImport:
		ns, _ := b.tree.GetNamespaceImport(clause.NamedBindings)
		b.declareName(ns.Name, MeaningValue|MeaningNamespace|MeaningType, FlagImport, n)
	case ast.KindNamedImports:
		named, _ := b.tree.GetNamedImports(clause.NamedBindings)
		for _, spec := range b.tree.List(named.Elements).Items {
			sd, ok := b.tree.GetImportSpecifier(spec)
			if !ok {
				continue
			}
			b.declareName(sd.Name, MeaningValue|MeaningType, FlagImport, spec)
		}
	}
}
