package ast

// ImportDeclData backs `import ... from "specifier";` and the bare
// `import "specifier";` form (ImportClause left as arena.None).
type ImportDeclData struct {
	ImportClause NodeIndex // KindImportClause, or arena.None for a bare side-effect import
	ModuleSpecifier NodeIndex // string literal
	Attributes ListIndex // import attributes/assertions, KindPropertyAssignment list
}

func (t *Tree) AddImportDecl(pos, end uint32, d ImportDeclData) NodeIndex {
	idx := t.importDecl.Add(d)
	return t.addNode(KindImportDeclaration, pos, end, idx)
}

func (t *Tree) GetImportDecl(i NodeIndex) (ImportDeclData, bool) {
	n := t.Node(i)
	if n.Kind != KindImportDeclaration {
		return ImportDeclData{}, false
	}
	return t.importDecl.Get(n.Data), true
}

// ImportClauseData backs the `Default, { Named }` portion between `import`
// and `from`.
type ImportClauseData struct {
	Name          NodeIndex // default import identifier, or arena.None
	NamedBindings NodeIndex // KindNamespaceImport or KindNamedImports, or arena.None
	TypeOnly      bool
}

func (t *Tree) AddImportClause(pos, end uint32, d ImportClauseData) NodeIndex {
	idx := t.importClause.Add(d)
	return t.addNode(KindImportClause, pos, end, idx)
}

func (t *Tree) GetImportClause(i NodeIndex) (ImportClauseData, bool) {
	n := t.Node(i)
	if n.Kind != KindImportClause {
		return ImportClauseData{}, false
	}
	return t.importClause.Get(n.Data), true
}

// NamespaceImportData backs `* as Name`.
type NamespaceImportData struct {
	Name NodeIndex
}

func (t *Tree) AddNamespaceImport(pos, end uint32, name NodeIndex) NodeIndex {
	d := t.namespaceImport.Add(NamespaceImportData{Name: name})
	return t.addNode(KindNamespaceImport, pos, end, d)
}

func (t *Tree) GetNamespaceImport(i NodeIndex) (NamespaceImportData, bool) {
	n := t.Node(i)
	if n.Kind != KindNamespaceImport {
		return NamespaceImportData{}, false
	}
	return t.namespaceImport.Get(n.Data), true
}

// AddNamedImports/AddNamedExports back `{ Specifier, ... }` on either side of
// an import/export clause; both reuse ElementsData since they are just an
// ordered list of specifier nodes.
func (t *Tree) AddNamedImports(pos, end uint32, elements ListIndex) NodeIndex {
	d := t.namedImports.Add(ElementsData{Elements: elements})
	return t.addNode(KindNamedImports, pos, end, d)
}

func (t *Tree) GetNamedImports(i NodeIndex) (ElementsData, bool) {
	n := t.Node(i)
	if n.Kind != KindNamedImports {
		return ElementsData{}, false
	}
	return t.namedImports.Get(n.Data), true
}

func (t *Tree) AddNamedExports(pos, end uint32, elements ListIndex) NodeIndex {
	d := t.namedExports.Add(ElementsData{Elements: elements})
	return t.addNode(KindNamedExports, pos, end, d)
}

func (t *Tree) GetNamedExports(i NodeIndex) (ElementsData, bool) {
	n := t.Node(i)
	if n.Kind != KindNamedExports {
		return ElementsData{}, false
	}
	return t.namedExports.Get(n.Data), true
}

// ImportSpecifierData backs one `Name` or `PropertyName as Name` entry
// inside a NamedImports or NamedExports list (ExportSpecifier reuses the
// identical shape via ExportSpecifierData below, kept distinct so the
// checker can tell import- and export-space specifiers apart by node Kind
// alone).
type ImportSpecifierData struct {
	PropertyName NodeIndex // arena.None when there is no `as` clause
	Name         NodeIndex
	TypeOnly     bool
}

func (t *Tree) AddImportSpecifier(pos, end uint32, d ImportSpecifierData) NodeIndex {
	idx := t.importSpec.Add(d)
	return t.addNode(KindImportSpecifier, pos, end, idx)
}

func (t *Tree) GetImportSpecifier(i NodeIndex) (ImportSpecifierData, bool) {
	n := t.Node(i)
	if n.Kind != KindImportSpecifier {
		return ImportSpecifierData{}, false
	}
	return t.importSpec.Get(n.Data), true
}

type ExportSpecifierData struct {
	PropertyName NodeIndex
	Name         NodeIndex
	TypeOnly     bool
}

func (t *Tree) AddExportSpecifier(pos, end uint32, d ExportSpecifierData) NodeIndex {
	idx := t.exportSpec.Add(d)
	return t.addNode(KindExportSpecifier, pos, end, idx)
}

func (t *Tree) GetExportSpecifier(i NodeIndex) (ExportSpecifierData, bool) {
	n := t.Node(i)
	if n.Kind != KindExportSpecifier {
		return ExportSpecifierData{}, false
	}
	return t.exportSpec.Get(n.Data), true
}

// ExportDeclData backs `export { Named } from "mod";`, `export * from "mod";`,
// and `export * as ns from "mod";`. ExportClause is arena.None for a bare
// `export *`; IsStarExport distinguishes `export *` from `export {}`.
type ExportDeclData struct {
	ExportClause    NodeIndex // KindNamedExports, or arena.None
	ModuleSpecifier NodeIndex // string literal, or arena.None for a local re-export
	IsStarExport    bool
	StarAsName      NodeIndex // identifier for `export * as ns`, or arena.None
	TypeOnly        bool
}

func (t *Tree) AddExportDecl(pos, end uint32, d ExportDeclData) NodeIndex {
	idx := t.exportDecl.Add(d)
	return t.addNode(KindExportDeclaration, pos, end, idx)
}

func (t *Tree) GetExportDecl(i NodeIndex) (ExportDeclData, bool) {
	n := t.Node(i)
	if n.Kind != KindExportDeclaration {
		return ExportDeclData{}, false
	}
	return t.exportDecl.Get(n.Data), true
}

// ExportAssignmentData backs `export = Expr;` (IsExportEquals true) and
// `export default Expr;` (IsExportEquals false).
type ExportAssignmentData struct {
	Expr            NodeIndex
	IsExportEquals  bool
}

func (t *Tree) AddExportAssignment(pos, end uint32, d ExportAssignmentData) NodeIndex {
	idx := t.exportAssign.Add(d)
	return t.addNode(KindExportAssignment, pos, end, idx)
}

func (t *Tree) GetExportAssignment(i NodeIndex) (ExportAssignmentData, bool) {
	n := t.Node(i)
	if n.Kind != KindExportAssignment {
		return ExportAssignmentData{}, false
	}
	return t.exportAssign.Get(n.Data), true
}

// ImportEqualsData backs `import Name = require("mod");` and
// `import Name = A.B.C;`.
type ImportEqualsData struct {
	Name            NodeIndex
	ModuleReference NodeIndex // KindCallExpression (require) or an entity name
	IsTypeOnly      bool
	Modifiers       Modifiers
}

func (t *Tree) AddImportEquals(pos, end uint32, d ImportEqualsData) NodeIndex {
	idx := t.importEquals.Add(d)
	return t.addNode(KindImportEqualsDeclaration, pos, end, idx)
}

func (t *Tree) GetImportEquals(i NodeIndex) (ImportEqualsData, bool) {
	n := t.Node(i)
	if n.Kind != KindImportEqualsDeclaration {
		return ImportEqualsData{}, false
	}
	return t.importEquals.Get(n.Data), true
}
