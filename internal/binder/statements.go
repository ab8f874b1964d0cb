package binder

import "github.com/gotsc/gotsc/internal/ast"

// bindStatement is the sequential (non-hoisting) half of binding one
// statement: it pushes whatever scope the statement introduces, resolves
// its expressions/types, and recurses into nested statement lists.
func (b *binder) bindStatement(n ast.NodeIndex) {
	if n.IsNone() {
		return
	}
	node := b.tree.Node(n)
	switch node.Kind {
	case ast.KindBlock:
		d, _ := b.tree.GetBlock(n)
		b.pushScope(ScopeBlock, n)
		b.bindStatementList(d.Statements)
		b.popScope()

	case ast.KindExpressionStatement:
		d, _ := b.tree.GetExpressionStatement(n)
		b.bindExpression(d.Expr)

	case ast.KindVariableStatement:
		d, _ := b.tree.GetVariableStatement(n)
		// `var` names were hoisted already; only let/const still need to
		// be declared here, but Type/Initializer are always bound here.
		b.bindVariableDeclarationList(d.DeclarationList, true)

	case ast.KindIfStatement:
		d, _ := b.tree.GetIf(n)
		b.anchor(AnchorBranch, n)
		b.bindExpression(d.Condition)
		b.bindStatement(d.Then)
		b.bindStatement(d.Else)

	case ast.KindForStatement:
		d, _ := b.tree.GetFor(n)
		b.anchor(AnchorLoop, n)
		b.pushScope(ScopeBlock, n)
		b.bindForInitializer(d.Initializer)
		b.bindExpression(d.Condition)
		b.bindExpression(d.Incrementor)
		b.bindStatement(d.Statement)
		b.popScope()

	case ast.KindForInStatement, ast.KindForOfStatement:
		d, _ := b.tree.GetForInOf(n)
		b.anchor(AnchorLoop, n)
		b.pushScope(ScopeBlock, n)
		b.bindForInitializer(d.Initializer)
		b.bindExpression(d.Expr)
		b.bindStatement(d.Statement)
		b.popScope()

	case ast.KindWhileStatement:
		d, _ := b.tree.GetWhile(n)
		b.anchor(AnchorLoop, n)
		b.bindExpression(d.Condition)
		b.bindStatement(d.Statement)

	case ast.KindDoStatement:
		d, _ := b.tree.GetDo(n)
		b.anchor(AnchorLoop, n)
		b.bindStatement(d.Statement)
		b.bindExpression(d.Condition)

	case ast.KindBreakStatement, ast.KindContinueStatement:
		// Label legality against the enclosing label stack is a parser/
		// checker concern; the binder only records the jump as a CFG
		// anchor for the narrowing pass.
		b.anchor(AnchorLabeledJump, n)

	case ast.KindReturnStatement:
		d, _ := b.tree.GetReturn(n)
		b.bindExpression(d.Expr)

	case ast.KindThrowStatement:
		d, _ := b.tree.GetThrow(n)
		b.anchor(AnchorThrow, n)
		b.bindExpression(d.Expr)

	case ast.KindTryStatement:
		d, _ := b.tree.GetTry(n)
		b.bindStatement(d.TryBlock)
		if !d.CatchClause.IsNone() {
			b.bindCatchClause(d.CatchClause)
		}
		if !d.FinallyBlock.IsNone() {
			b.bindStatement(d.FinallyBlock)
		}

	case ast.KindSwitchStatement:
		d, _ := b.tree.GetSwitch(n)
		b.anchor(AnchorBranch, n)
		b.bindExpression(d.Expr)
		b.pushScope(ScopeBlock, n)
		for _, clause := range b.tree.List(d.Clauses).Items {
			cd, ok := b.tree.GetCaseClause(clause)
			if !ok {
				continue
			}
			b.bindExpression(cd.Expr)
			b.bindStatementList(cd.Statements)
		}
		b.popScope()

	case ast.KindLabeledStatement:
		d, _ := b.tree.GetLabeled(n)
		if name, ok := b.identifierAtom(d.Label); ok {
			b.labels = append(b.labels, name)
			b.bindStatement(d.Statement)
			b.labels = b.labels[:len(b.labels)-1]
		} else {
			b.bindStatement(d.Statement)
		}

	case ast.KindDebuggerStatement, ast.KindEmptyStatement:
		// no data

	case ast.KindFunctionDeclaration:
		b.bindFunctionLike(n, true)

	case ast.KindClassDeclaration:
		b.bindClass(n)

	case ast.KindInterfaceDeclaration:
		b.bindInterface(n)

	case ast.KindTypeAliasDeclaration:
		b.bindTypeAlias(n)

	case ast.KindEnumDeclaration:
		b.bindEnum(n)

	case ast.KindModuleDeclaration:
		b.bindModule(n)

	case ast.KindImportDeclaration, ast.KindImportEqualsDeclaration:
		// Local names were declared during hoisting; the module specifier
		// itself is resolved by the host's module resolver, downstream of
		// the binder (spec §4.5).

	case ast.KindExportDeclaration:
		b.bindExportDeclaration(n)

	case ast.KindExportAssignment:
		d, _ := b.tree.GetExportAssignment(n)
		b.bindExpression(d.Expr)
	}
}

func (b *binder) bindForInitializer(init ast.NodeIndex) {
	if init.IsNone() {
		return
	}
	if b.tree.Node(init).Kind == ast.KindVariableDeclarationList {
		// Not part of any enclosing hoistStatement pass, so var/let/const
		// are all declared here regardless of DeclKind.
		b.bindVariableDeclarationList(init, false)
		return
	}
	b.bindExpression(init)
}

// bindVariableDeclarationList binds every declaration in listNode. When
// skipDeclareIfVar is true and the list is `var`-kinded, names were
// already declared by the enclosing hoist pass and are not redeclared
// here — only their type annotation and initializer are bound.
func (b *binder) bindVariableDeclarationList(listNode ast.NodeIndex, skipDeclareIfVar bool) {
	d, ok := b.tree.GetVariableDeclarationList(listNode)
	if !ok {
		return
	}
	flags := FlagBlockScopedVariable
	if d.Flags == ast.DeclVar {
		flags = FlagVariable
	}
	skipDeclare := skipDeclareIfVar && d.Flags == ast.DeclVar

	for _, decl := range b.tree.List(d.Declarations).Items {
		vd, ok := b.tree.GetVariableDeclaration(decl)
		if !ok {
			continue
		}
		if !skipDeclare {
			b.declareBindingPattern(vd.Name, flags, decl)
		}
		b.bindType(vd.Type)
		b.bindExpression(vd.Initializer)
	}
}

// declareBindingPattern declares every identifier in a (possibly
// destructuring) binding target and binds each element's default-value
// initializer.
func (b *binder) declareBindingPattern(nameNode ast.NodeIndex, flags SymbolFlags, declNode ast.NodeIndex) {
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
			b.declareBindingPattern(be.Name, flags, declNode)
			b.bindExpression(be.Initializer)
		}
	}
}

func (b *binder) bindCatchClause(n ast.NodeIndex) {
	d, ok := b.tree.GetCatchClause(n)
	if !ok {
		return
	}
	b.pushScope(ScopeBlock, n)
	if !d.Param.IsNone() {
		b.declareBindingPattern(d.Param, FlagBlockScopedVariable, n)
	}
	b.bindType(d.Type)
	b.bindStatement(d.Block)
	b.popScope()
}

// bindFunctionLike binds a function declaration, function expression, or
// arrow function. topLevelAlreadyHoisted is true for a KindFunctionDeclaration
// reached from bindStatement, whose name was declared by the enclosing
// hoist pass; a named KindFunctionExpression instead declares its own name
// inside its own pushed scope, where only the function body can see it.
func (b *binder) bindFunctionLike(n ast.NodeIndex, topLevelAlreadyHoisted bool) {
	d, ok := b.tree.GetFunction(n)
	if !ok {
		return
	}
	kind := b.tree.Node(n).Kind
	if !topLevelAlreadyHoisted && kind == ast.KindFunctionDeclaration && !d.Name.IsNone() {
		b.declareName(d.Name, MeaningValue, flagsFromModifiers(d.Modifiers)|FlagFunction, n)
	}

	b.pushScope(ScopeFunction, n)
	if kind == ast.KindFunctionExpression && !d.Name.IsNone() {
		b.declareName(d.Name, MeaningValue, FlagFunction, n)
	}
	b.bindTypeParameters(d.TypeParams)
	b.bindParameters(d.Params)
	b.bindType(d.ReturnType)
	if !d.Body.IsNone() {
		if d.ConciseBody {
			b.bindExpression(d.Body)
		} else if blk, ok := b.tree.GetBlock(d.Body); ok {
			b.bindStatementList(blk.Statements)
		}
	}
	b.popScope()
}

// bindParameters declares every parameter name (binding patterns included)
// in the already-pushed function scope. Constructor parameter properties
// (public/private/protected/readonly modifiers) are not additionally
// synthesized as class members here — see DESIGN.md.
func (b *binder) bindParameters(list ast.ListIndex) {
	for _, p := range b.tree.List(list).Items {
		pd, ok := b.tree.GetParameter(p)
		if !ok {
			continue
		}
		b.declareBindingPattern(pd.Name, FlagParameter, p)
		b.bindType(pd.Type)
		b.bindExpression(pd.Initializer)
	}
}

func (b *binder) bindTypeParameters(list ast.ListIndex) {
	for _, tp := range b.tree.List(list).Items {
		td, ok := b.tree.GetTypeParameter(tp)
		if !ok {
			continue
		}
		b.declareName(td.Name, MeaningType, 0, tp)
		b.bindType(td.Constraint)
		b.bindType(td.Default)
	}
}

func (b *binder) bindClass(n ast.NodeIndex) {
	d, ok := b.tree.GetClass(n)
	if !ok {
		return
	}
	kind := b.tree.Node(n).Kind
	b.pushScope(ScopeClass, n)
	if kind == ast.KindClassExpression && !d.Name.IsNone() {
		b.declareName(d.Name, MeaningValue, FlagClass, n)
	}
	b.bindTypeParameters(d.TypeParams)
	b.bindHeritageClauses(d.Heritage)
	for _, m := range b.tree.List(d.Members).Items {
		b.bindClassMember(m)
	}
	b.popScope()
}

func (b *binder) bindHeritageClauses(heritage ast.ListIndex) {
	for _, h := range b.tree.List(heritage).Items {
		hd, ok := b.tree.GetHeritageClause(h)
		if !ok {
			continue
		}
		for _, ty := range b.tree.List(hd.Types).Items {
			if b.tree.Node(ty).Kind == ast.KindCallExpression {
				// `extends Base(...)`'s expression-with-type-arguments form
				b.bindExpression(ty)
			} else {
				b.bindType(ty)
			}
		}
	}
}

func (b *binder) bindClassMember(m ast.NodeIndex) {
	if m.IsNone() {
		return
	}
	switch b.tree.Node(m).Kind {
	case ast.KindPropertyDeclaration:
		d, _ := b.tree.GetPropertyDecl(m)
		b.bindMemberName(d.Name)
		b.bindType(d.Type)
		b.bindExpression(d.Initializer)

	case ast.KindMethodDeclaration, ast.KindConstructorDeclaration, ast.KindGetAccessor,
		ast.KindSetAccessor, ast.KindCallSignature, ast.KindConstructSignature:
		b.bindMethodLike(m)

	case ast.KindIndexSignature:
		d, _ := b.tree.GetIndexSignature(m)
		b.pushScope(ScopeFunction, m)
		b.declareName(d.ParamName, MeaningValue, FlagParameter, m)
		b.bindType(d.ParamType)
		b.bindType(d.Type)
		b.popScope()
	}
}

func (b *binder) bindMethodLike(m ast.NodeIndex) {
	d, ok := b.tree.GetMethodDecl(m)
	if !ok {
		return
	}
	b.bindMemberName(d.Name)
	b.pushScope(ScopeFunction, m)
	b.bindTypeParameters(d.TypeParams)
	b.bindParameters(d.Params)
	b.bindType(d.ReturnType)
	if !d.Body.IsNone() {
		if blk, ok := b.tree.GetBlock(d.Body); ok {
			b.bindStatementList(blk.Statements)
		}
	}
	b.popScope()
}

func (b *binder) bindInterface(n ast.NodeIndex) {
	d, ok := b.tree.GetInterface(n)
	if !ok {
		return
	}
	b.pushScope(ScopeClass, n)
	b.bindTypeParameters(d.TypeParams)
	b.bindHeritageClauses(d.Heritage)
	for _, m := range b.tree.List(d.Members).Items {
		b.bindClassMember(m)
	}
	b.popScope()
}

func (b *binder) bindTypeAlias(n ast.NodeIndex) {
	d, ok := b.tree.GetTypeAlias(n)
	if !ok {
		return
	}
	b.pushScope(ScopeTypeParameters, n)
	b.bindTypeParameters(d.TypeParams)
	b.bindType(d.Type)
	b.popScope()
}

func (b *binder) bindEnum(n ast.NodeIndex) {
	d, ok := b.tree.GetEnum(n)
	if !ok {
		return
	}
	b.pushScope(ScopeClass, n)
	for _, mem := range b.tree.List(d.Members).Items {
		md, ok := b.tree.GetEnumMember(mem)
		if !ok {
			continue
		}
		b.bindMemberName(md.Name)
		b.declareName(md.Name, MeaningValue, 0, mem)
		b.bindExpression(md.Initializer)
	}
	b.popScope()
}

func (b *binder) bindModule(n ast.NodeIndex) {
	d, ok := b.tree.GetModule(n)
	if !ok {
		return
	}
	b.pushScope(ScopeModule, n)
	if !d.Body.IsNone() {
		if blk, ok := b.tree.GetBlock(d.Body); ok {
			b.bindStatementList(blk.Statements)
		}
	}
	b.popScope()
}

func (b *binder) bindExportDeclaration(n ast.NodeIndex) {
	d, ok := b.tree.GetExportDecl(n)
	if !ok {
		return
	}
	if !d.ModuleSpecifier.IsNone() || d.ExportClause.IsNone() {
		// `export { x } from "mod"` / `export * [as ns] from "mod"`: the
		// names live in the resolved module, outside the binder's
		// structural (scope-only) phase, per spec §4.5.
		return
	}
	named, ok := b.tree.GetNamedExports(d.ExportClause)
	if !ok {
		return
	}
	for _, spec := range b.tree.List(named.Elements).Items {
		sd, ok := b.tree.GetExportSpecifier(spec)
		if !ok {
			continue
		}
		local := sd.PropertyName
		if local.IsNone() {
			local = sd.Name
		}
		if name, ok := b.identifierAtom(local); ok {
			b.resolveReference(local, name, MeaningValue|MeaningType|MeaningNamespace)
		}
	}
}
