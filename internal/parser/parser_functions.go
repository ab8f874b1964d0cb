package parser

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/token"
)

func (p *Parser) parseFunctionExpression(async bool) ast.NodeIndex {
	start := p.pos()
	if !async {
		p.next() // `function`
	} else {
		p.next() // `function`, `async` already consumed by caller
	}
	generator := p.optional(token.Asterisk)
	var name ast.NodeIndex = none
	if p.at(token.Identifier) {
		name = p.parseIdentifierExpr()
	}
	typeParams := p.tryParseTypeParameters()
	ctx := p.ctx
	if generator {
		p.ctx |= CtxYield
	} else {
		p.ctx &^= CtxYield
	}
	if async {
		p.ctx |= CtxAwait
	} else {
		p.ctx &^= CtxAwait
	}
	params := p.parseParameterList()
	var returnType ast.NodeIndex = none
	if p.optional(token.Colon) {
		returnType = p.parseType()
	}
	body := p.parseFunctionBody()
	p.ctx = ctx

	flags := ast.FunctionFlags(0)
	if generator {
		flags |= ast.FuncGenerator
	}
	if async {
		flags |= ast.FuncAsync
	}
	return p.tree.AddFunction(ast.KindFunctionExpression, start, p.prevPos(), ast.FunctionData{
		Name: name, TypeParams: typeParams, Params: params, ReturnType: returnType, Body: body, Flags: flags,
	})
}

func (p *Parser) parseParameterList() ast.ListIndex {
	p.expect(token.OpenParen)
	var items []ast.NodeIndex
	for !p.at(token.CloseParen) && !p.at(token.EOF) {
		items = append(items, p.parseParameter())
		if !p.optional(token.Comma) {
			break
		}
	}
	p.expect(token.CloseParen)
	return p.tree.NewList(items, false)
}

func (p *Parser) parseParameter() ast.NodeIndex {
	start := p.pos()
	mods := p.parseModifiers(true)
	dotdotdot := p.optional(token.DotDotDot)
	name := p.parseBindingName()
	optional := p.optional(token.Question)
	var typ ast.NodeIndex = none
	if p.optional(token.Colon) {
		typ = p.parseType()
	}
	var init ast.NodeIndex = none
	if p.optional(token.Equals) {
		init = p.parseAssignmentExpression()
	}
	return p.tree.AddParameter(start, p.prevPos(), ast.ParameterData{
		Name: name, Type: typ, Initializer: init, DotDotDot: dotdotdot, Optional: optional, Modifiers: mods,
	})
}

// parseBindingName parses an identifier or a destructuring pattern used as a
// binding target (parameter, variable declaration, catch clause, etc.).
func (p *Parser) parseBindingName() ast.NodeIndex {
	switch p.tok.Kind {
	case token.OpenBracket:
		return p.parseArrayBindingPattern()
	case token.OpenBrace:
		return p.parseObjectBindingPattern()
	default:
		return p.parseIdentifierExpr()
	}
}

func (p *Parser) parseArrayBindingPattern() ast.NodeIndex {
	start := p.pos()
	p.next()
	var items []ast.NodeIndex
	for !p.at(token.CloseBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			items = append(items, p.tree.AddKeywordLiteral(ast.KindOmittedExpression, p.pos(), p.pos()))
			p.next()
			continue
		}
		items = append(items, p.parseBindingElement(false))
		if !p.optional(token.Comma) {
			break
		}
	}
	p.expect(token.CloseBracket)
	list := p.tree.NewList(items, false)
	return p.tree.AddElements(ast.KindArrayLiteralExpression, start, p.prevPos(), list)
}

func (p *Parser) parseObjectBindingPattern() ast.NodeIndex {
	start := p.pos()
	p.next()
	var items []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		items = append(items, p.parseBindingElement(true))
		if !p.optional(token.Comma) {
			break
		}
	}
	p.expect(token.CloseBrace)
	list := p.tree.NewList(items, false)
	return p.tree.AddElements(ast.KindObjectLiteralExpression, start, p.prevPos(), list)
}

func (p *Parser) parseBindingElement(objectStyle bool) ast.NodeIndex {
	start := p.pos()
	dotdotdot := p.optional(token.DotDotDot)
	var propertyName ast.NodeIndex = none
	name := p.parseBindingName()
	if objectStyle && p.optional(token.Colon) {
		propertyName = name
		name = p.parseBindingName()
	}
	var init ast.NodeIndex = none
	if p.optional(token.Equals) {
		init = p.parseAssignmentExpression()
	}
	return p.tree.AddBindingElement(ast.KindBindingElement, start, p.prevPos(), ast.BindingElementData{
		PropertyName: propertyName, Name: name, Initializer: init, DotDotDot: dotdotdot,
	})
}

func (p *Parser) parseFunctionBody() ast.NodeIndex {
	return p.parseBlock()
}

func (p *Parser) parseBlock() ast.NodeIndex {
	start := p.pos()
	p.expect(token.OpenBrace)
	var stmts []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.CloseBrace)
	list := p.tree.NewList(stmts, false)
	return p.tree.AddBlock(ast.KindBlock, start, p.prevPos(), list)
}

// tryParseArrowFunction attempts to parse `(params) => body` or
// `ident => body`, including `async` variants, backtracking via the
// scanner's save/restore if the lookahead doesn't pan out.
func (p *Parser) tryParseArrowFunction() (ast.NodeIndex, bool) {
	start := p.pos()
	async := false
	save := p.scan.Save()
	savedTok := p.tok

	if p.at(token.AsyncKeyword) {
		peekSave := p.scan.Save()
		peekTok := p.tok
		p.next()
		if p.tok.Flags.Has(token.PrecedingLineBreak) || (!p.at(token.OpenParen) && !p.at(token.Identifier)) {
			p.scan.Restore(peekSave)
			p.tok = peekTok
			return none, false
		}
		async = true
	}

	if !p.at(token.OpenParen) && !p.at(token.Identifier) {
		if async {
			p.scan.Restore(save)
			p.tok = savedTok
		}
		return none, false
	}

	var params ast.ListIndex
	if p.at(token.Identifier) {
		name := p.parseIdentifierExpr()
		pNode := p.tree.AddParameter(start, p.prevPos(), ast.ParameterData{Name: name})
		params = p.tree.NewList([]ast.NodeIndex{pNode}, false)
	} else {
		okParams, ok := p.tryParseParenthesizedParameterList()
		if !ok {
			p.scan.Restore(save)
			p.tok = savedTok
			return none, false
		}
		params = okParams
	}

	var returnType ast.NodeIndex = none
	if p.at(token.Colon) {
		colonSave := p.scan.Save()
		colonTok := p.tok
		p.next()
		ty, ok := p.tryParseTypeNoFail()
		if !ok || !p.at(token.EqualsGreaterThan) {
			p.scan.Restore(colonSave)
			p.tok = colonTok
		} else {
			returnType = ty
		}
	}

	if !p.at(token.EqualsGreaterThan) {
		p.scan.Restore(save)
		p.tok = savedTok
		return none, false
	}
	p.next()

	ctx := p.ctx
	if async {
		p.ctx |= CtxAwait
	}
	var body ast.NodeIndex
	concise := !p.at(token.OpenBrace)
	if concise {
		body = p.parseAssignmentExpression()
	} else {
		body = p.parseBlock()
	}
	p.ctx = ctx

	flags := ast.FuncArrow
	if async {
		flags |= ast.FuncAsync
	}
	return p.tree.AddFunction(ast.KindArrowFunction, start, p.prevPos(), ast.FunctionData{
		Params: params, ReturnType: returnType, Body: body, Flags: flags, ConciseBody: concise,
	}), true
}

// tryParseParenthesizedParameterList speculatively parses `(params)`,
// reporting failure instead of diagnostics so the caller can fall back to
// parsing a parenthesized expression.
func (p *Parser) tryParseParenthesizedParameterList() (list ast.ListIndex, ok bool) {
	if !p.at(token.OpenParen) {
		return ast.EmptyList, false
	}
	// Diagnostics raised while speculating go to a scratch bag; any of them
	// means the tokens are not a parameter list, and the caller restores
	// scanner state and parses a parenthesized expression instead.
	outer := p.diag
	scratch := &diagnostics.Bag{}
	p.diag = scratch
	defer func() {
		p.diag = outer
		if recover() != nil || scratch.Len() > 0 {
			list, ok = ast.EmptyList, false
		}
	}()
	return p.parseParameterList(), true
}

func (p *Parser) tryParseTypeNoFail() (ast.NodeIndex, bool) {
	ty := p.parseType()
	return ty, ty != none
}
