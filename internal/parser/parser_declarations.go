package parser

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/token"
)

var modifierKeywords = map[token.Kind]ast.Modifiers{
	token.PublicKeyword:    ast.ModPublic,
	token.PrivateKeyword:   ast.ModPrivate,
	token.ProtectedKeyword: ast.ModProtected,
	token.StaticKeyword:    ast.ModStatic,
	token.ReadonlyKeyword:  ast.ModReadonly,
	token.AbstractKeyword:  ast.ModAbstract,
	token.AsyncKeyword:     ast.ModAsync,
	token.ExportKeyword:    ast.ModExport,
	token.DefaultKeyword:   ast.ModDefault,
	token.DeclareKeyword:   ast.ModDeclare,
	token.OverrideKeyword:  ast.ModOverride,
	token.AccessorKeyword:  ast.ModAccessor,
}

// parseModifiers consumes the leading run of modifier keywords on a
// declaration/parameter/class member, stopping the moment a modifier-shaped
// keyword is actually being used as the member's own name (`static(): void`,
// a method literally named `static`).
func (p *Parser) parseModifiers(isParameter bool) ast.Modifiers {
	var mods ast.Modifiers
	for {
		bit, isModifier := modifierKeywords[p.tok.Kind]
		if !isModifier || !p.modifierCanFollow() {
			return mods
		}
		if mods.Has(bit) {
			p.error(diagnostics.CodeDuplicateModifier, "duplicate modifier")
		}
		mods |= bit
		p.next()
	}
}

// modifierCanFollow peeks one token ahead without consuming, reporting
// whether the current modifier-shaped keyword is followed by something
// that could itself start a member/parameter (as opposed to being the
// member's own name or a terminator).
func (p *Parser) modifierCanFollow() bool {
	save := p.scan.Save()
	savedTok := p.tok
	p.next()
	ok := !p.at(token.OpenParen) && !p.at(token.Equals) && !p.at(token.Colon) &&
		!p.at(token.Semicolon) && !p.at(token.CloseBrace) && !p.at(token.Question) &&
		!p.at(token.LessThan) && !p.at(token.EOF) && !p.tok.Flags.Has(token.PrecedingLineBreak)
	p.scan.Restore(save)
	p.tok = savedTok
	return ok
}

func (p *Parser) parseFunctionDeclaration(start uint32, mods ast.Modifiers) ast.NodeIndex {
	p.next() // `function`
	generator := p.optional(token.Asterisk)
	var name ast.NodeIndex = none
	if p.at(token.Identifier) {
		name = p.parseIdentifierExpr()
	}
	typeParams := p.tryParseTypeParameters()
	ctx := p.ctx
	if generator {
		p.ctx |= CtxYield
	}
	if mods.Has(ast.ModAsync) {
		p.ctx |= CtxAwait
	}
	params := p.parseParameterList()
	var returnType ast.NodeIndex = none
	if p.optional(token.Colon) {
		returnType = p.parseType()
	}
	var body ast.NodeIndex = none
	if p.at(token.OpenBrace) {
		body = p.parseFunctionBody()
	} else {
		p.parseSemicolon() // overload signature / ambient declaration
	}
	p.ctx = ctx

	flags := ast.FunctionFlags(0)
	if generator {
		flags |= ast.FuncGenerator
	}
	if mods.Has(ast.ModAsync) {
		flags |= ast.FuncAsync
	}
	return p.tree.AddFunction(ast.KindFunctionDeclaration, start, p.prevPos(), ast.FunctionData{
		Name: name, TypeParams: typeParams, Params: params, ReturnType: returnType, Body: body,
		Flags: flags, Modifiers: mods,
	})
}

func (p *Parser) parseClassDeclaration(start uint32, mods ast.Modifiers) ast.NodeIndex {
	return p.parseClassLike(start, mods, ast.KindClassDeclaration)
}

func (p *Parser) parseClassExpression() ast.NodeIndex {
	return p.parseClassLike(p.pos(), 0, ast.KindClassExpression)
}

func (p *Parser) parseClassLike(start uint32, mods ast.Modifiers, kind ast.Kind) ast.NodeIndex {
	p.next() // `class`
	var name ast.NodeIndex = none
	if p.at(token.Identifier) {
		name = p.parseIdentifierExpr()
	}
	typeParams := p.tryParseTypeParameters()
	heritage := p.parseHeritageClauses()
	ctx := p.ctx
	p.ctx |= CtxInClass
	members := p.parseClassMembers()
	p.ctx = ctx
	return p.tree.AddClass(kind, start, p.prevPos(), ast.ClassData{
		Name: name, TypeParams: typeParams, Heritage: heritage, Members: members, Modifiers: mods,
	})
}

func (p *Parser) parseHeritageClauses() ast.ListIndex {
	var clauses []ast.NodeIndex
	for p.at(token.ExtendsKeyword) || p.at(token.ImplementsKeyword) {
		start := p.pos()
		isExtends := p.at(token.ExtendsKeyword)
		p.next()
		var types []ast.NodeIndex
		for {
			types = append(types, p.parseTypeReferenceOrPredicate(p.pos()))
			if !p.optional(token.Comma) {
				break
			}
		}
		list := p.tree.NewList(types, false)
		clauses = append(clauses, p.tree.AddHeritageClause(start, p.prevPos(), isExtends, list))
	}
	if len(clauses) == 0 {
		return ast.EmptyList
	}
	return p.tree.NewList(clauses, false)
}

func (p *Parser) parseClassMembers() ast.ListIndex {
	p.expect(token.OpenBrace)
	var members []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		if p.optional(token.Semicolon) {
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect(token.CloseBrace)
	return p.tree.NewList(members, false)
}

func (p *Parser) parseClassMember() ast.NodeIndex {
	start := p.pos()
	mods := p.parseModifiers(false)
	generator := p.optional(token.Asterisk)

	getSet := token.Kind(0)
	if p.at(token.GetKeyword) || p.at(token.SetKeyword) {
		save := p.scan.Save()
		savedTok := p.tok
		kw := p.tok.Kind
		p.next()
		if !p.at(token.OpenParen) && !p.at(token.Equals) && !p.at(token.Semicolon) && !p.at(token.CloseBrace) {
			getSet = kw
		} else {
			p.scan.Restore(save)
			p.tok = savedTok
		}
	}

	if p.at(token.OpenBracket) && p.looksLikeIndexSignature() {
		sig := p.parseIndexSignature(start, mods)
		p.parseSemicolon()
		return sig
	}

	isConstructor := p.at(token.Identifier) && p.tok.Text == "constructor"
	name := p.parsePropertyName()
	optional := p.optional(token.Question)
	p.optional(token.Exclamation) // definite-assignment assertion on a field

	if getSet != 0 {
		kind := ast.KindGetAccessor
		if getSet == token.SetKeyword {
			kind = ast.KindSetAccessor
		}
		typeParams := p.tryParseTypeParameters()
		params := p.parseParameterList()
		var ret ast.NodeIndex = none
		if p.optional(token.Colon) {
			ret = p.parseType()
		}
		body := p.parseMemberBody(mods)
		return p.tree.AddMethodDecl(kind, start, p.prevPos(), ast.MethodDeclData{
			Name: name, TypeParams: typeParams, Params: params, ReturnType: ret,
			Body: body, Optional: optional, Modifiers: mods,
		})
	}

	if p.at(token.OpenParen) || p.at(token.LessThan) {
		kind := ast.KindMethodDeclaration
		if isConstructor {
			kind = ast.KindConstructorDeclaration
		}
		typeParams := p.tryParseTypeParameters()
		ctx := p.ctx
		if isConstructor {
			p.ctx |= CtxConstructorParams
		}
		params := p.parseParameterList()
		p.ctx = ctx
		var ret ast.NodeIndex = none
		if p.optional(token.Colon) {
			ret = p.parseType()
		}
		innerCtx := p.ctx
		if generator {
			innerCtx |= CtxYield
		}
		if mods.Has(ast.ModAsync) {
			innerCtx |= CtxAwait
		}
		p.ctx = innerCtx
		body := p.parseMemberBody(mods)
		p.ctx = ctx

		flags := ast.FunctionFlags(0)
		if generator {
			flags |= ast.FuncGenerator
		}
		if mods.Has(ast.ModAsync) {
			flags |= ast.FuncAsync
		}
		return p.tree.AddMethodDecl(kind, start, p.prevPos(), ast.MethodDeclData{
			Name: name, TypeParams: typeParams, Params: params, ReturnType: ret,
			Body: body, Optional: optional, Modifiers: mods, Flags: flags,
		})
	}

	var ty ast.NodeIndex = none
	if p.optional(token.Colon) {
		ty = p.parseType()
	}
	var init ast.NodeIndex = none
	if p.optional(token.Equals) {
		init = p.parseAssignmentExpression()
	}
	p.parseSemicolon()
	return p.tree.AddPropertyDecl(start, p.prevPos(), ast.PropertyDeclData{
		Name: name, Type: ty, Initializer: init, Optional: optional, Modifiers: mods,
	})
}

// parseMemberBody parses a method/accessor/constructor body, or treats a
// bare `;` as an ambient/overload-signature member with no body.
func (p *Parser) parseMemberBody(mods ast.Modifiers) ast.NodeIndex {
	if p.at(token.OpenBrace) {
		return p.parseFunctionBody()
	}
	p.parseSemicolon()
	return none
}

func (p *Parser) parseInterfaceDeclaration(start uint32) ast.NodeIndex {
	p.next() // `interface`
	name := p.parseIdentifierExpr()
	typeParams := p.tryParseTypeParameters()
	var heritage ast.ListIndex = ast.EmptyList
	if p.at(token.ExtendsKeyword) {
		heritage = p.parseHeritageClauses()
	}
	p.expect(token.OpenBrace)
	var members []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		members = append(members, p.parseTypeMember())
		p.optional(token.Semicolon)
		p.optional(token.Comma)
	}
	p.expect(token.CloseBrace)
	return p.tree.AddInterface(start, p.prevPos(), ast.InterfaceData{
		Name: name, TypeParams: typeParams, Heritage: heritage, Members: p.tree.NewList(members, false),
	})
}

func (p *Parser) parseTypeAliasDeclaration(start uint32) ast.NodeIndex {
	p.next() // `type`
	name := p.parseIdentifierExpr()
	typeParams := p.tryParseTypeParameters()
	p.expect(token.Equals)
	ty := p.parseType()
	p.parseSemicolon()
	return p.tree.AddTypeAlias(start, p.prevPos(), ast.TypeAliasData{Name: name, TypeParams: typeParams, Type: ty})
}

func (p *Parser) parseEnumDeclaration(start uint32, isConst bool) ast.NodeIndex {
	p.next() // `enum`
	name := p.parseIdentifierExpr()
	p.expect(token.OpenBrace)
	var members []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		mStart := p.pos()
		mName := p.parsePropertyName()
		var init ast.NodeIndex = none
		if p.optional(token.Equals) {
			init = p.parseAssignmentExpression()
		}
		members = append(members, p.tree.AddEnumMember(mStart, p.prevPos(), mName, init))
		if !p.optional(token.Comma) {
			break
		}
	}
	p.expect(token.CloseBrace)
	return p.tree.AddEnum(start, p.prevPos(), ast.EnumData{
		Name: name, Members: p.tree.NewList(members, false), Const: isConst,
	})
}

func (p *Parser) parseModuleDeclaration(start uint32, mods ast.Modifiers) ast.NodeIndex {
	isGlobal := p.at(token.GlobalKeyword)
	var name ast.NodeIndex
	if isGlobal {
		name = p.parseIdentifierExpr()
	} else {
		p.next() // `namespace` / `module`
		if p.at(token.StringLiteral) {
			text, fl := p.internAtom(p.tok.Text), p.tok.Flags
			end := p.tok.Span.End
			nStart := p.pos()
			p.next()
			name = p.tree.AddLiteral(ast.KindStringLiteral, nStart, end, text, fl)
		} else {
			name = p.parseEntityName()
		}
	}
	var body ast.NodeIndex = none
	if p.at(token.OpenBrace) {
		bStart := p.pos()
		p.expect(token.OpenBrace)
		var stmts []ast.NodeIndex
		for !p.at(token.CloseBrace) && !p.at(token.EOF) {
			stmts = append(stmts, p.parseStatement())
		}
		p.expect(token.CloseBrace)
		body = p.tree.AddBlock(ast.KindModuleBlock, bStart, p.prevPos(), p.tree.NewList(stmts, false))
	} else {
		p.parseSemicolon()
	}
	return p.tree.AddModule(start, p.prevPos(), ast.ModuleData{
		Name: name, Body: body, Modifiers: mods, IsGlobal: isGlobal,
	})
}

func (p *Parser) parseImportDeclaration(start uint32) ast.NodeIndex {
	p.next() // `import`

	if p.at(token.Identifier) && !p.tok.Flags.Has(token.PrecedingLineBreak) {
		save := p.scan.Save()
		savedTok := p.tok
		name := p.parseIdentifierExpr()
		if p.optional(token.Equals) {
			ref := p.parseModuleReference()
			p.parseSemicolon()
			return p.tree.AddImportEquals(start, p.prevPos(), ast.ImportEqualsData{Name: name, ModuleReference: ref})
		}
		p.scan.Restore(save)
		p.tok = savedTok
	}

	if p.at(token.StringLiteral) {
		spec := p.parsePrimaryExpression()
		p.parseSemicolon()
		return p.tree.AddImportDecl(start, p.prevPos(), ast.ImportDeclData{ModuleSpecifier: spec})
	}

	typeOnly := false
	if p.at(token.TypeKeyword) {
		save := p.scan.Save()
		savedTok := p.tok
		p.next()
		if p.at(token.Identifier) || p.at(token.OpenBrace) || p.at(token.Asterisk) {
			typeOnly = true
		} else {
			p.scan.Restore(save)
			p.tok = savedTok
		}
	}

	clauseStart := p.pos()
	var defaultName ast.NodeIndex = none
	var namedBindings ast.NodeIndex = none
	if p.at(token.Identifier) {
		defaultName = p.parseIdentifierExpr()
		p.optional(token.Comma)
	}
	if p.at(token.Asterisk) {
		nsStart := p.pos()
		p.next()
		p.expect(token.AsKeyword)
		nsName := p.parseIdentifierExpr()
		namedBindings = p.tree.AddNamespaceImport(nsStart, p.prevPos(), nsName)
	} else if p.at(token.OpenBrace) {
		namedBindings = p.parseNamedImports()
	}
	clause := p.tree.AddImportClause(clauseStart, p.prevPos(), ast.ImportClauseData{
		Name: defaultName, NamedBindings: namedBindings, TypeOnly: typeOnly,
	})
	p.expect(token.FromKeyword)
	spec := p.parsePrimaryExpression()
	p.parseSemicolon()
	return p.tree.AddImportDecl(start, p.prevPos(), ast.ImportDeclData{ImportClause: clause, ModuleSpecifier: spec})
}

func (p *Parser) parseModuleReference() ast.NodeIndex {
	if p.at(token.RequireKeyword) {
		start := p.pos()
		p.next()
		p.expect(token.OpenParen)
		arg := p.parsePrimaryExpression()
		p.expect(token.CloseParen)
		args := p.tree.NewList([]ast.NodeIndex{arg}, false)
		callee := p.tree.AddIdentifier(ast.KindIdentifier, start, p.prevPos(), p.internAtom("require"))
		return p.tree.AddCallExpr(ast.KindCallExpression, start, p.prevPos(), callee, ast.EmptyList, args, false)
	}
	return p.parseEntityName()
}

func (p *Parser) parseNamedImports() ast.NodeIndex {
	start := p.pos()
	p.next() // `{`
	var items []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		items = append(items, p.parseImportSpecifier())
		if !p.optional(token.Comma) {
			break
		}
	}
	p.expect(token.CloseBrace)
	return p.tree.AddNamedImports(start, p.prevPos(), p.tree.NewList(items, false))
}

func (p *Parser) parseImportSpecifier() ast.NodeIndex {
	start := p.pos()
	typeOnly := false
	if p.at(token.TypeKeyword) {
		save := p.scan.Save()
		savedTok := p.tok
		p.next()
		if !p.at(token.AsKeyword) && !p.at(token.Comma) && !p.at(token.CloseBrace) {
			typeOnly = true
		} else {
			p.scan.Restore(save)
			p.tok = savedTok
		}
	}
	name := p.parseIdentifierName()
	var propertyName ast.NodeIndex = none
	if p.optional(token.AsKeyword) {
		propertyName = name
		name = p.parseIdentifierName()
	}
	return p.tree.AddImportSpecifier(start, p.prevPos(), ast.ImportSpecifierData{
		PropertyName: propertyName, Name: name, TypeOnly: typeOnly,
	})
}

func (p *Parser) parseExportDeclaration(start uint32, mods ast.Modifiers) ast.NodeIndex {
	p.next() // `export`

	if p.optional(token.Equals) {
		expr := p.parseExpression()
		p.parseSemicolon()
		return p.tree.AddExportAssignment(start, p.prevPos(), ast.ExportAssignmentData{Expr: expr, IsExportEquals: true})
	}
	if p.at(token.DefaultKeyword) {
		p.next()
		var expr ast.NodeIndex
		switch {
		case p.at(token.FunctionKeyword):
			expr = p.parseFunctionDeclaration(start, 0)
		case p.at(token.AsyncKeyword):
			p.next()
			expr = p.parseFunctionDeclaration(start, ast.ModAsync)
		case p.at(token.ClassKeyword):
			expr = p.parseClassDeclaration(start, 0)
		default:
			expr = p.parseAssignmentExpression()
			p.parseSemicolon()
		}
		return p.tree.AddExportAssignment(start, p.prevPos(), ast.ExportAssignmentData{Expr: expr, IsExportEquals: false})
	}
	if p.at(token.Asterisk) {
		p.next()
		var starAsName ast.NodeIndex = none
		if p.optional(token.AsKeyword) {
			starAsName = p.parseIdentifierExpr()
		}
		p.expect(token.FromKeyword)
		spec := p.parsePrimaryExpression()
		p.parseSemicolon()
		return p.tree.AddExportDecl(start, p.prevPos(), ast.ExportDeclData{
			IsStarExport: true, StarAsName: starAsName, ModuleSpecifier: spec,
		})
	}

	typeOnly := false
	if p.at(token.TypeKeyword) {
		save := p.scan.Save()
		savedTok := p.tok
		p.next()
		if p.at(token.OpenBrace) || p.at(token.Asterisk) {
			typeOnly = true
		} else {
			p.scan.Restore(save)
			p.tok = savedTok
		}
	}

	if p.at(token.OpenBrace) {
		clause := p.parseNamedExports()
		var spec ast.NodeIndex = none
		if p.optional(token.FromKeyword) {
			spec = p.parsePrimaryExpression()
		}
		p.parseSemicolon()
		return p.tree.AddExportDecl(start, p.prevPos(), ast.ExportDeclData{
			ExportClause: clause, ModuleSpecifier: spec, TypeOnly: typeOnly,
		})
	}

	// `export` followed directly by a declaration: fold the export modifier
	// into the declaration and re-dispatch.
	return p.parseDeclarationWithModifiers(start, mods|ast.ModExport)
}

func (p *Parser) parseNamedExports() ast.NodeIndex {
	start := p.pos()
	p.next() // `{`
	var items []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		items = append(items, p.parseExportSpecifier())
		if !p.optional(token.Comma) {
			break
		}
	}
	p.expect(token.CloseBrace)
	return p.tree.AddNamedExports(start, p.prevPos(), p.tree.NewList(items, false))
}

func (p *Parser) parseExportSpecifier() ast.NodeIndex {
	start := p.pos()
	typeOnly := false
	if p.at(token.TypeKeyword) {
		save := p.scan.Save()
		savedTok := p.tok
		p.next()
		if !p.at(token.AsKeyword) && !p.at(token.Comma) && !p.at(token.CloseBrace) {
			typeOnly = true
		} else {
			p.scan.Restore(save)
			p.tok = savedTok
		}
	}
	name := p.parseIdentifierName()
	var propertyName ast.NodeIndex = none
	if p.optional(token.AsKeyword) {
		propertyName = name
		name = p.parseIdentifierName()
	}
	return p.tree.AddExportSpecifier(start, p.prevPos(), ast.ExportSpecifierData{
		PropertyName: propertyName, Name: name, TypeOnly: typeOnly,
	})
}
