package parser

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/token"
)

// parseStatement is the top-level statement dispatcher, also reused for
// class/module/namespace bodies and block contents.
func (p *Parser) parseStatement() ast.NodeIndex {
	start := p.pos()

	switch p.tok.Kind {
	case token.OpenBrace:
		return p.parseBlock()
	case token.VarKeyword:
		return p.parseVariableStatement(start, token.VarKeyword, 0)
	case token.Semicolon:
		p.next()
		return p.tree.AddSimpleStatement(ast.KindEmptyStatement, start, p.prevPos())
	case token.IfKeyword:
		return p.parseIfStatement(start)
	case token.ForKeyword:
		return p.parseForStatement(start)
	case token.WhileKeyword:
		return p.parseWhileStatement(start)
	case token.DoKeyword:
		return p.parseDoStatement(start)
	case token.ReturnKeyword:
		return p.parseReturnStatement(start)
	case token.ThrowKeyword:
		return p.parseThrowStatement(start)
	case token.BreakKeyword:
		return p.parseJumpStatement(start, ast.KindBreakStatement)
	case token.ContinueKeyword:
		return p.parseJumpStatement(start, ast.KindContinueStatement)
	case token.TryKeyword:
		return p.parseTryStatement(start)
	case token.SwitchKeyword:
		return p.parseSwitchStatement(start)
	case token.DebuggerKeyword:
		p.next()
		p.parseSemicolon()
		return p.tree.AddSimpleStatement(ast.KindDebuggerStatement, start, p.prevPos())
	case token.FunctionKeyword:
		return p.parseFunctionDeclaration(start, 0)
	case token.ClassKeyword:
		return p.parseClassDeclaration(start, 0)
	case token.ImportKeyword:
		return p.parseImportDeclaration(start)
	case token.ExportKeyword:
		return p.parseExportDeclaration(start, 0)
	case token.InterfaceKeyword:
		return p.parseInterfaceDeclaration(start)
	case token.TypeKeyword:
		if p.looksLikeTypeAlias() {
			return p.parseTypeAliasDeclaration(start)
		}
	case token.EnumKeyword:
		return p.parseEnumDeclaration(start, false)
	case token.NamespaceKeyword, token.ModuleKeyword:
		if p.looksLikeModuleDeclaration() {
			return p.parseModuleDeclaration(start, 0)
		}
	}

	if mods, ok := p.tryParseLeadingModifiers(); ok {
		return p.parseDeclarationWithModifiers(start, mods)
	}

	if p.at(token.ConstKeyword) {
		save := p.scan.Save()
		savedTok := p.tok
		p.next()
		if p.at(token.EnumKeyword) {
			return p.parseEnumDeclaration(start, true)
		}
		p.scan.Restore(save)
		p.tok = savedTok
		return p.parseVariableStatement(start, token.ConstKeyword, 0)
	}
	if p.at(token.LetKeyword) && p.looksLikeLetDeclaration() {
		return p.parseVariableStatement(start, token.LetKeyword, 0)
	}

	if p.at(token.Identifier) && p.isLabelAhead() {
		return p.parseLabeledStatement(start)
	}

	return p.parseExpressionStatement(start)
}

// parseDeclarationWithModifiers parses a declaration already known to start
// with at least one modifier keyword (export/declare/abstract/async/const,
// in any combination the grammar allows), dispatching on whatever follows.
func (p *Parser) parseDeclarationWithModifiers(start uint32, mods ast.Modifiers) ast.NodeIndex {
	switch {
	case p.at(token.ClassKeyword):
		return p.parseClassDeclaration(start, mods)
	case p.at(token.AsyncKeyword):
		p.next()
		return p.parseFunctionDeclaration(start, mods|ast.ModAsync)
	case p.at(token.FunctionKeyword):
		return p.parseFunctionDeclaration(start, mods)
	case p.at(token.InterfaceKeyword):
		return p.parseInterfaceDeclaration(start)
	case p.at(token.TypeKeyword):
		return p.parseTypeAliasDeclaration(start)
	case p.at(token.EnumKeyword):
		return p.parseEnumDeclaration(start, mods.Has(ast.ModConst))
	case p.at(token.ConstKeyword):
		save := p.scan.Save()
		savedTok := p.tok
		p.next()
		if p.at(token.EnumKeyword) {
			return p.parseEnumDeclaration(start, true)
		}
		p.scan.Restore(save)
		p.tok = savedTok
		return p.parseVariableStatement(start, token.ConstKeyword, mods)
	case p.at(token.VarKeyword):
		return p.parseVariableStatement(start, token.VarKeyword, mods)
	case p.at(token.LetKeyword):
		return p.parseVariableStatement(start, token.LetKeyword, mods)
	case p.at(token.NamespaceKeyword), p.at(token.ModuleKeyword), p.at(token.GlobalKeyword):
		return p.parseModuleDeclaration(start, mods)
	case p.at(token.ImportKeyword):
		return p.parseImportDeclaration(start)
	default:
		p.error(diagnostics.CodeExpectedToken, "expected a declaration")
		return p.parseExpressionStatement(start)
	}
}

// tryParseLeadingModifiers speculatively consumes a run of declaration
// modifiers (export/declare/abstract/public/.../async), restoring the
// scanner if what follows doesn't look like a declaration — so a bare
// expression statement that happens to start with e.g. `async` used as an
// identifier is never misparsed as a declaration.
func (p *Parser) tryParseLeadingModifiers() (ast.Modifiers, bool) {
	switch p.tok.Kind {
	case token.DeclareKeyword, token.AbstractKeyword:
	case token.AsyncKeyword:
		// `async function` is a declaration; bare `async` is an expression.
		save := p.scan.Save()
		savedTok := p.tok
		p.next()
		isDecl := p.at(token.FunctionKeyword) && !p.tok.Flags.Has(token.PrecedingLineBreak)
		p.scan.Restore(save)
		p.tok = savedTok
		if !isDecl {
			return 0, false
		}
	default:
		return 0, false
	}

	save := p.scan.Save()
	savedTok := p.tok
	var mods ast.Modifiers
	for {
		bit, isModifier := modifierKeywords[p.tok.Kind]
		if !isModifier {
			break
		}
		mods |= bit
		p.next()
	}
	switch p.tok.Kind {
	case token.ClassKeyword, token.FunctionKeyword, token.InterfaceKeyword, token.TypeKeyword,
		token.EnumKeyword, token.ConstKeyword, token.VarKeyword, token.LetKeyword,
		token.NamespaceKeyword, token.ModuleKeyword, token.GlobalKeyword, token.ImportKeyword,
		token.AsyncKeyword:
		return mods, true
	default:
		p.scan.Restore(save)
		p.tok = savedTok
		return 0, false
	}
}

func declKindFor(k token.Kind) ast.DeclKind {
	switch k {
	case token.ConstKeyword:
		return ast.DeclConst
	case token.LetKeyword:
		return ast.DeclLet
	default:
		return ast.DeclVar
	}
}

func (p *Parser) parseVariableStatement(start uint32, kw token.Kind, mods ast.Modifiers) ast.NodeIndex {
	p.next() // var/let/const
	list := p.parseVariableDeclarationList(declKindFor(kw))
	p.parseSemicolon()
	return p.tree.AddVariableStatement(start, p.prevPos(), list, mods)
}

func (p *Parser) parseVariableDeclarationList(flags ast.DeclKind) ast.NodeIndex {
	start := p.pos()
	var decls []ast.NodeIndex
	for {
		decls = append(decls, p.parseVariableDeclaration())
		if !p.optional(token.Comma) {
			break
		}
	}
	list := p.tree.NewList(decls, false)
	return p.tree.AddVariableDeclarationList(start, p.prevPos(), list, flags)
}

func (p *Parser) parseVariableDeclaration() ast.NodeIndex {
	start := p.pos()
	name := p.parseBindingName()
	definite := p.optional(token.Exclamation)
	var typ ast.NodeIndex = none
	if p.optional(token.Colon) {
		typ = p.parseType()
	}
	var init ast.NodeIndex = none
	if p.optional(token.Equals) {
		ctx := p.ctx
		p.ctx &^= CtxDisallowIn
		init = p.parseAssignmentExpression()
		p.ctx = ctx
	}
	return p.tree.AddVariableDeclaration(start, p.prevPos(), name, typ, init, definite)
}

func (p *Parser) parseIfStatement(start uint32) ast.NodeIndex {
	p.next()
	p.expect(token.OpenParen)
	cond := p.parseExpression()
	p.expect(token.CloseParen)
	then := p.parseStatement()
	var els ast.NodeIndex = none
	if p.optional(token.ElseKeyword) {
		els = p.parseStatement()
	}
	return p.tree.AddIf(start, p.prevPos(), cond, then, els)
}

// parseForStatement handles the classic three-clause form plus for-in/for-of
// (including `for await (... of ...)`), disambiguating after the opening
// paren by scanning the initializer then checking for `in`/`of`.
func (p *Parser) parseForStatement(start uint32) ast.NodeIndex {
	p.next()
	isAwait := p.optional(token.AwaitKeyword)
	p.expect(token.OpenParen)

	var init ast.NodeIndex = none
	if !p.at(token.Semicolon) {
		switch p.tok.Kind {
		case token.VarKeyword, token.ConstKeyword:
			kw := p.tok.Kind
			p.next()
			ctx := p.ctx
			p.ctx |= CtxDisallowIn
			init = p.parseVariableDeclarationList(declKindFor(kw))
			p.ctx = ctx
		case token.LetKeyword:
			if p.looksLikeLetDeclaration() {
				p.next()
				ctx := p.ctx
				p.ctx |= CtxDisallowIn
				init = p.parseVariableDeclarationList(ast.DeclLet)
				p.ctx = ctx
			} else {
				ctx := p.ctx
				p.ctx |= CtxDisallowIn
				init = p.parseExpression()
				p.ctx = ctx
			}
		default:
			ctx := p.ctx
			p.ctx |= CtxDisallowIn
			init = p.parseExpression()
			p.ctx = ctx
		}
	}

	if p.at(token.InKeyword) || p.at(token.OfKeyword) {
		isOf := p.at(token.OfKeyword)
		p.next()
		var expr ast.NodeIndex
		if isOf {
			expr = p.parseAssignmentExpression()
		} else {
			expr = p.parseExpression()
		}
		p.expect(token.CloseParen)
		stmt := p.parseStatement()
		kind := ast.KindForInStatement
		if isOf {
			kind = ast.KindForOfStatement
		}
		return p.tree.AddForInOf(kind, start, p.prevPos(), ast.ForInOfData{
			Initializer: init, Expr: expr, Statement: stmt, IsOf: isOf, IsAwait: isAwait,
		})
	}

	p.expect(token.Semicolon)
	var cond ast.NodeIndex = none
	if !p.at(token.Semicolon) {
		cond = p.parseExpression()
	}
	p.expect(token.Semicolon)
	var incr ast.NodeIndex = none
	if !p.at(token.CloseParen) {
		incr = p.parseExpression()
	}
	p.expect(token.CloseParen)
	stmt := p.parseStatement()
	return p.tree.AddFor(start, p.prevPos(), ast.ForData{
		Initializer: init, Condition: cond, Incrementor: incr, Statement: stmt,
	})
}

func (p *Parser) parseWhileStatement(start uint32) ast.NodeIndex {
	p.next()
	p.expect(token.OpenParen)
	cond := p.parseExpression()
	p.expect(token.CloseParen)
	stmt := p.parseStatement()
	return p.tree.AddWhile(start, p.prevPos(), cond, stmt)
}

func (p *Parser) parseDoStatement(start uint32) ast.NodeIndex {
	p.next()
	stmt := p.parseStatement()
	p.expect(token.WhileKeyword)
	p.expect(token.OpenParen)
	cond := p.parseExpression()
	p.expect(token.CloseParen)
	p.optional(token.Semicolon) // ASI always permitted after do-while
	return p.tree.AddDo(start, p.prevPos(), stmt, cond)
}

func (p *Parser) parseReturnStatement(start uint32) ast.NodeIndex {
	p.next()
	var expr ast.NodeIndex = none
	if !p.tok.Flags.Has(token.PrecedingLineBreak) && !p.canParseSemicolon() {
		expr = p.parseExpression()
	}
	p.parseSemicolon()
	return p.tree.AddReturn(start, p.prevPos(), expr)
}

func (p *Parser) parseThrowStatement(start uint32) ast.NodeIndex {
	p.next()
	expr := p.parseExpression()
	p.parseSemicolon()
	return p.tree.AddThrow(start, p.prevPos(), expr)
}

func (p *Parser) parseJumpStatement(start uint32, kind ast.Kind) ast.NodeIndex {
	p.next()
	var label ast.NodeIndex = none
	if p.at(token.Identifier) && !p.tok.Flags.Has(token.PrecedingLineBreak) {
		label = p.parseIdentifierExpr()
	}
	p.parseSemicolon()
	return p.tree.AddJump(kind, start, p.prevPos(), label)
}

func (p *Parser) parseTryStatement(start uint32) ast.NodeIndex {
	p.next()
	tryBlock := p.parseBlock()
	var catch ast.NodeIndex = none
	if p.at(token.CatchKeyword) {
		catch = p.parseCatchClause()
	}
	var finallyBlock ast.NodeIndex = none
	if p.optional(token.FinallyKeyword) {
		finallyBlock = p.parseBlock()
	}
	return p.tree.AddTry(start, p.prevPos(), tryBlock, catch, finallyBlock)
}

func (p *Parser) parseCatchClause() ast.NodeIndex {
	start := p.pos()
	p.next()
	var param ast.NodeIndex = none
	var typ ast.NodeIndex = none
	if p.optional(token.OpenParen) {
		param = p.parseBindingName()
		if p.optional(token.Colon) {
			typ = p.parseType()
		}
		p.expect(token.CloseParen)
	}
	block := p.parseBlock()
	return p.tree.AddCatchClause(start, p.prevPos(), param, typ, block)
}

func (p *Parser) parseSwitchStatement(start uint32) ast.NodeIndex {
	p.next()
	p.expect(token.OpenParen)
	expr := p.parseExpression()
	p.expect(token.CloseParen)
	p.expect(token.OpenBrace)
	var clauses []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		clauses = append(clauses, p.parseCaseOrDefaultClause())
	}
	p.expect(token.CloseBrace)
	return p.tree.AddSwitch(start, p.prevPos(), expr, p.tree.NewList(clauses, false))
}

func (p *Parser) parseCaseOrDefaultClause() ast.NodeIndex {
	start := p.pos()
	kind := ast.KindCaseClause
	var expr ast.NodeIndex = none
	if p.at(token.DefaultKeyword) {
		kind = ast.KindDefaultClause
		p.next()
	} else {
		p.expect(token.CaseKeyword)
		expr = p.parseExpression()
	}
	p.expect(token.Colon)
	var stmts []ast.NodeIndex
	for !p.at(token.CaseKeyword) && !p.at(token.DefaultKeyword) && !p.at(token.CloseBrace) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	return p.tree.AddCaseClause(kind, start, p.prevPos(), expr, p.tree.NewList(stmts, false))
}

func (p *Parser) parseLabeledStatement(start uint32) ast.NodeIndex {
	label := p.parseIdentifierExpr()
	p.expect(token.Colon)
	stmt := p.parseStatement()
	return p.tree.AddLabeled(start, p.prevPos(), label, stmt)
}

func (p *Parser) parseExpressionStatement(start uint32) ast.NodeIndex {
	expr := p.parseExpression()
	p.parseSemicolon()
	return p.tree.AddExpressionStatement(start, p.prevPos(), expr)
}

// isLabelAhead peeks past a leading identifier for a following `:` that is
// not part of a conditional expression (a label can't be confused with
// anything else at statement-start since `a ? b : c` only reaches `:` after
// `?`, which parseExpression would already have consumed).
func (p *Parser) isLabelAhead() bool {
	save := p.scan.Save()
	savedTok := p.tok
	p.next()
	ok := p.at(token.Colon)
	p.scan.Restore(save)
	p.tok = savedTok
	return ok
}

// looksLikeLetDeclaration disambiguates `let` the contextual declaration
// keyword from `let` used as an ordinary identifier (`let.x`, `let()`,
// `let = 1` as an assignment target in sloppy mode).
func (p *Parser) looksLikeLetDeclaration() bool {
	save := p.scan.Save()
	savedTok := p.tok
	p.next()
	ok := p.at(token.Identifier) || p.at(token.OpenBracket) || p.at(token.OpenBrace)
	p.scan.Restore(save)
	p.tok = savedTok
	return ok
}

// looksLikeTypeAlias disambiguates the `type` declaration keyword from an
// identifier named `type` used as an expression (`type(x)`, `type.foo`).
func (p *Parser) looksLikeTypeAlias() bool {
	save := p.scan.Save()
	savedTok := p.tok
	p.next()
	ok := p.at(token.Identifier) && !p.tok.Flags.Has(token.PrecedingLineBreak)
	p.scan.Restore(save)
	p.tok = savedTok
	return ok
}

// looksLikeModuleDeclaration disambiguates `namespace`/`module` the
// contextual declaration keywords from identifiers of the same spelling.
func (p *Parser) looksLikeModuleDeclaration() bool {
	save := p.scan.Save()
	savedTok := p.tok
	p.next()
	ok := p.at(token.Identifier) || p.at(token.StringLiteral)
	p.scan.Restore(save)
	p.tok = savedTok
	return ok
}
