package parser

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/token"
)

// parseExpression parses a full expression, including the comma operator.
func (p *Parser) parseExpression() ast.NodeIndex {
	start := p.pos()
	expr := p.parseAssignmentExpression()
	for p.at(token.Comma) {
		p.next()
		right := p.parseAssignmentExpression()
		expr = p.tree.AddBinaryExpr(start, p.prevPos(), token.Comma, expr, right)
	}
	return expr
}

func (p *Parser) prevPos() uint32 { return p.tok.Span.Pos }

// parseAssignmentExpression handles arrow functions, yield, and assignment
// operators atop the conditional-expression grammar (spec §4.4).
func (p *Parser) parseAssignmentExpression() ast.NodeIndex {
	if p.at(token.YieldKeyword) && p.ctx.has(CtxYield) {
		return p.parseYieldExpression()
	}
	if arrow, ok := p.tryParseArrowFunction(); ok {
		return arrow
	}

	start := p.pos()
	left := p.parseConditionalExpression()

	if isAssignmentOperator(p.tok.Kind) {
		op := p.tok.Kind
		p.next()
		right := p.parseAssignmentExpression()
		return p.tree.AddBinaryExpr(start, p.prevPos(), op, left, right)
	}
	return left
}

func (p *Parser) parseYieldExpression() ast.NodeIndex {
	start := p.pos()
	p.next()
	delegate := p.optional(token.Asterisk)
	if p.canParseSemicolon() && !delegate {
		return p.tree.AddYield(start, p.prevPos(), none, false)
	}
	expr := p.parseAssignmentExpression()
	return p.tree.AddYield(start, p.prevPos(), expr, delegate)
}

func (p *Parser) parseConditionalExpression() ast.NodeIndex {
	start := p.pos()
	cond := p.parseBinaryExpression(0)
	if !p.at(token.Question) {
		return cond
	}
	p.next()
	ctx := p.ctx
	p.ctx &^= CtxDisallowIn
	whenTrue := p.parseAssignmentExpression()
	p.ctx = ctx
	p.expect(token.Colon)
	whenFalse := p.parseAssignmentExpression()
	return p.tree.AddConditionalExpr(start, p.prevPos(), cond, whenTrue, whenFalse)
}

func (p *Parser) parseBinaryExpression(minPrec int) ast.NodeIndex {
	start := p.pos()
	left := p.parseUnaryExpression()
	for {
		if p.at(token.AsKeyword) || p.at(token.SatisfiesKeyword) {
			kind := ast.KindAsExpression
			if p.at(token.SatisfiesKeyword) {
				kind = ast.KindSatisfiesExpression
			}
			p.next()
			ty := p.parseType()
			left = p.tree.AddTypeCast(kind, start, p.prevPos(), left, ty)
			continue
		}
		prec := binaryPrecedence(p.tok.Kind, p.ctx.has(CtxDisallowIn))
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.tok.Kind
		p.next()
		nextMin := prec + 1
		if isRightAssociative(op) {
			nextMin = prec
		}
		right := p.parseBinaryExpression(nextMin)
		left = p.tree.AddBinaryExpr(start, p.prevPos(), op, left, right)
	}
}

var prefixUnaryOps = map[token.Kind]bool{
	token.Plus: true, token.Minus: true, token.Tilde: true, token.Exclamation: true,
	token.PlusPlus: true, token.MinusMinus: true, token.TypeOfKeyword: true,
	token.VoidKeyword: true, token.DeleteKeyword: true,
}

func (p *Parser) parseUnaryExpression() ast.NodeIndex {
	start := p.pos()
	switch {
	case p.at(token.AwaitKeyword) && p.ctx.has(CtxAwait):
		p.next()
		operand := p.parseUnaryExpression()
		return p.tree.AddUnaryLike(ast.KindAwaitExpression, start, p.prevPos(), operand)
	case p.at(token.TypeOfKeyword):
		p.next()
		return p.tree.AddUnaryLike(ast.KindTypeOfExpression, start, p.prevPos(), p.parseUnaryExpression())
	case p.at(token.VoidKeyword):
		p.next()
		return p.tree.AddUnaryLike(ast.KindVoidExpression, start, p.prevPos(), p.parseUnaryExpression())
	case p.at(token.DeleteKeyword):
		p.next()
		return p.tree.AddUnaryLike(ast.KindDeleteExpression, start, p.prevPos(), p.parseUnaryExpression())
	case prefixUnaryOps[p.tok.Kind]:
		op := p.tok.Kind
		p.next()
		operand := p.parseUnaryExpression()
		return p.tree.AddUnaryExpr(ast.KindPrefixUnaryExpression, start, p.prevPos(), op, operand)
	case p.at(token.LessThan) && !p.jsx:
		return p.parseTypeAssertion()
	}
	return p.parsePostfixExpression()
}

func (p *Parser) parseTypeAssertion() ast.NodeIndex {
	start := p.pos()
	p.next()
	ty := p.parseType()
	p.expect(token.GreaterThan)
	expr := p.parseUnaryExpression()
	return p.tree.AddTypeCast(ast.KindAsExpression, start, p.prevPos(), expr, ty)
}

func (p *Parser) parsePostfixExpression() ast.NodeIndex {
	start := p.pos()
	expr := p.parseLeftHandSideExpression()
	if !p.tok.Flags.Has(token.PrecedingLineBreak) && (p.at(token.PlusPlus) || p.at(token.MinusMinus)) {
		op := p.tok.Kind
		p.next()
		expr = p.tree.AddUnaryExpr(ast.KindPostfixUnaryExpression, start, p.prevPos(), op, expr)
	}
	return expr
}

func (p *Parser) parseLeftHandSideExpression() ast.NodeIndex {
	start := p.pos()
	var expr ast.NodeIndex
	if p.at(token.NewKeyword) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	return p.parseCallAndMemberExpressionRest(start, expr)
}

func (p *Parser) parseNewExpression() ast.NodeIndex {
	start := p.pos()
	p.next()
	if p.at(token.Dot) { // new.target
		p.next()
		p.next() // `target`
		return p.tree.AddKeywordLiteral(ast.KindThisExpression, start, p.prevPos())
	}
	callee := p.parseMemberExpressionNoCall()
	var typeArgs, args ast.ListIndex = ast.EmptyList, ast.EmptyList
	if p.at(token.LessThan) {
		if ta, ok := p.tryParseTypeArguments(); ok {
			typeArgs = ta
		}
	}
	if p.at(token.OpenParen) {
		args = p.parseArgumentList()
	}
	return p.tree.AddCallExpr(ast.KindNewExpression, start, p.prevPos(), callee, typeArgs, args, false)
}

// parseMemberExpressionNoCall parses the callee of `new X.Y.Z` without
// consuming a call's argument list, per the grammar's NewExpression rule.
func (p *Parser) parseMemberExpressionNoCall() ast.NodeIndex {
	start := p.pos()
	var expr ast.NodeIndex
	if p.at(token.NewKeyword) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	for {
		switch {
		case p.at(token.Dot):
			p.next()
			name := p.parseIdentifierName()
			expr = p.tree.AddAccessExpr(ast.KindPropertyAccessExpression, start, p.prevPos(), expr, name, false)
		case p.at(token.OpenBracket):
			p.next()
			index := p.parseExpression()
			p.expect(token.CloseBracket)
			expr = p.tree.AddAccessExpr(ast.KindElementAccessExpression, start, p.prevPos(), expr, index, false)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallAndMemberExpressionRest(start uint32, expr ast.NodeIndex) ast.NodeIndex {
	for {
		switch {
		case p.at(token.Dot):
			p.next()
			name := p.parseIdentifierName()
			expr = p.tree.AddAccessExpr(ast.KindPropertyAccessExpression, start, p.prevPos(), expr, name, false)
		case p.at(token.QuestionDot):
			p.next()
			if p.at(token.OpenParen) {
				args := p.parseArgumentList()
				expr = p.tree.AddCallExpr(ast.KindCallExpression, start, p.prevPos(), expr, ast.EmptyList, args, true)
				continue
			}
			if p.at(token.OpenBracket) {
				p.next()
				index := p.parseExpression()
				p.expect(token.CloseBracket)
				expr = p.tree.AddAccessExpr(ast.KindElementAccessExpression, start, p.prevPos(), expr, index, true)
				continue
			}
			name := p.parseIdentifierName()
			expr = p.tree.AddAccessExpr(ast.KindPropertyAccessExpression, start, p.prevPos(), expr, name, true)
		case p.at(token.OpenBracket):
			p.next()
			index := p.parseExpression()
			p.expect(token.CloseBracket)
			expr = p.tree.AddAccessExpr(ast.KindElementAccessExpression, start, p.prevPos(), expr, index, false)
		case p.at(token.OpenParen):
			args := p.parseArgumentList()
			expr = p.tree.AddCallExpr(ast.KindCallExpression, start, p.prevPos(), expr, ast.EmptyList, args, false)
		case p.at(token.LessThan):
			save := p.scan.Save()
			savedTok := p.tok
			if ta, ok := p.tryParseTypeArguments(); ok && p.at(token.OpenParen) {
				args := p.parseArgumentList()
				expr = p.tree.AddCallExpr(ast.KindCallExpression, start, p.prevPos(), expr, ta, args, false)
				continue
			}
			p.scan.Restore(save)
			p.tok = savedTok
			return expr
		case p.at(token.NoSubstitutionTemplateLiteral) || p.at(token.TemplateHead):
			tpl := p.parseTemplateLiteral()
			expr = p.tree.AddAccessExpr(ast.KindTaggedTemplateExpression, start, p.prevPos(), expr, tpl, false)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgumentList() ast.ListIndex {
	p.expect(token.OpenParen)
	var items []ast.NodeIndex
	trailing := false
	for !p.at(token.CloseParen) && !p.at(token.EOF) {
		start := p.pos()
		if p.at(token.DotDotDot) {
			p.next()
			expr := p.parseAssignmentExpression()
			items = append(items, p.tree.AddUnaryLike(ast.KindSpreadElement, start, p.prevPos(), expr))
		} else {
			items = append(items, p.parseAssignmentExpression())
		}
		if p.optional(token.Comma) {
			trailing = p.at(token.CloseParen)
			continue
		}
		break
	}
	p.expect(token.CloseParen)
	return p.tree.NewList(items, trailing)
}

func (p *Parser) parseIdentifierName() ast.NodeIndex {
	start := p.pos()
	text := p.tok.Text
	if p.tok.Kind != token.Identifier && !p.tok.Kind.IsKeyword() && !isContextualKeyword(p.tok.Kind) {
		p.error(diagnostics.CodeExpectedToken, "expected identifier")
	}
	end := p.tok.Span.End
	if text == "" {
		text = p.tok.Kind.String()
	}
	p.next()
	return p.tree.AddIdentifier(ast.KindIdentifier, start, end, p.internAtom(text))
}

func isContextualKeyword(k token.Kind) bool {
	return k >= token.AnyKeyword && k <= token.OutKeyword
}

func (p *Parser) parsePrimaryExpression() ast.NodeIndex {
	start := p.pos()
	switch p.tok.Kind {
	case token.Identifier:
		return p.parseIdentifierExpr()
	case token.PrivateIdentifier:
		text := p.internAtom(p.tok.Text)
		end := p.tok.Span.End
		p.next()
		return p.tree.AddIdentifier(ast.KindPrivateIdentifier, start, end, text)
	case token.ThisKeyword:
		p.next()
		return p.tree.AddKeywordLiteral(ast.KindThisExpression, start, p.prevPos())
	case token.SuperKeyword:
		p.next()
		return p.tree.AddKeywordLiteral(ast.KindSuperExpression, start, p.prevPos())
	case token.TrueKeyword:
		p.next()
		return p.tree.AddKeywordLiteral(ast.KindTrueLiteral, start, p.prevPos())
	case token.FalseKeyword:
		p.next()
		return p.tree.AddKeywordLiteral(ast.KindFalseLiteral, start, p.prevPos())
	case token.NullKeyword:
		p.next()
		return p.tree.AddKeywordLiteral(ast.KindNullLiteral, start, p.prevPos())
	case token.NumericLiteral:
		text, fl := p.internAtom(p.tok.Text), p.tok.Flags
		end := p.tok.Span.End
		p.next()
		return p.tree.AddLiteral(ast.KindNumericLiteral, start, end, text, fl)
	case token.BigIntLiteral:
		text, fl := p.internAtom(p.tok.Text), p.tok.Flags
		end := p.tok.Span.End
		p.next()
		return p.tree.AddLiteral(ast.KindBigIntLiteral, start, end, text, fl)
	case token.StringLiteral:
		text, fl := p.internAtom(p.tok.Text), p.tok.Flags
		end := p.tok.Span.End
		p.next()
		return p.tree.AddLiteral(ast.KindStringLiteral, start, end, text, fl)
	case token.NoSubstitutionTemplateLiteral, token.TemplateHead:
		return p.parseTemplateLiteral()
	case token.OpenBracket:
		return p.parseArrayLiteral()
	case token.OpenBrace:
		return p.parseObjectLiteral()
	case token.OpenParen:
		return p.parseParenthesizedExpression()
	case token.FunctionKeyword:
		return p.parseFunctionExpression(false)
	case token.AsyncKeyword:
		return p.parseAsyncExpressionOrIdentifier()
	case token.ClassKeyword:
		return p.parseClassExpression()
	default:
		if isIdentifierLikeKeyword(p.tok.Kind) {
			return p.parseIdentifierExpr()
		}
		p.error(diagnostics.CodeUnexpectedToken, "unexpected token in expression")
		p.next()
		return none
	}
}

func isIdentifierLikeKeyword(k token.Kind) bool {
	return isContextualKeyword(k)
}

func (p *Parser) parseIdentifierExpr() ast.NodeIndex {
	start := p.pos()
	text := p.internAtom(p.tok.Text)
	end := p.tok.Span.End
	p.next()
	return p.tree.AddIdentifier(ast.KindIdentifier, start, end, text)
}

func (p *Parser) parseAsyncExpressionOrIdentifier() ast.NodeIndex {
	if arrow, ok := p.tryParseArrowFunction(); ok {
		return arrow
	}
	save := p.scan.Save()
	savedTok := p.tok
	p.next()
	if !p.tok.Flags.Has(token.PrecedingLineBreak) && p.at(token.FunctionKeyword) {
		return p.parseFunctionExpression(true)
	}
	p.scan.Restore(save)
	p.tok = savedTok
	return p.parseIdentifierExpr()
}

func (p *Parser) parseParenthesizedExpression() ast.NodeIndex {
	start := p.pos()
	p.next()
	ctx := p.ctx
	p.ctx &^= CtxDisallowIn
	expr := p.parseExpression()
	p.ctx = ctx
	p.expect(token.CloseParen)
	return p.tree.AddUnaryLike(ast.KindParenthesizedExpression, start, p.prevPos(), expr)
}

func (p *Parser) parseArrayLiteral() ast.NodeIndex {
	start := p.pos()
	p.next()
	var items []ast.NodeIndex
	trailing := false
	for !p.at(token.CloseBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			items = append(items, p.tree.AddKeywordLiteral(ast.KindOmittedExpression, p.pos(), p.pos()))
			p.next()
			continue
		}
		if p.at(token.DotDotDot) {
			s := p.pos()
			p.next()
			expr := p.parseAssignmentExpression()
			items = append(items, p.tree.AddUnaryLike(ast.KindSpreadElement, s, p.prevPos(), expr))
		} else {
			items = append(items, p.parseAssignmentExpression())
		}
		if p.optional(token.Comma) {
			trailing = p.at(token.CloseBracket)
			continue
		}
		break
	}
	p.expect(token.CloseBracket)
	list := p.tree.NewList(items, trailing)
	return p.tree.AddElements(ast.KindArrayLiteralExpression, start, p.prevPos(), list)
}

func (p *Parser) parseObjectLiteral() ast.NodeIndex {
	start := p.pos()
	p.next()
	var items []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		items = append(items, p.parseObjectLiteralMember())
		if !p.optional(token.Comma) {
			break
		}
	}
	p.expect(token.CloseBrace)
	list := p.tree.NewList(items, false)
	return p.tree.AddElements(ast.KindObjectLiteralExpression, start, p.prevPos(), list)
}

func (p *Parser) parseObjectLiteralMember() ast.NodeIndex {
	start := p.pos()
	if p.at(token.DotDotDot) {
		p.next()
		expr := p.parseAssignmentExpression()
		return p.tree.AddPropertyAssignment(ast.KindSpreadAssignment, start, p.prevPos(), none, expr)
	}
	name := p.parsePropertyName()
	if p.at(token.Colon) {
		p.next()
		value := p.parseAssignmentExpression()
		return p.tree.AddPropertyAssignment(ast.KindPropertyAssignment, start, p.prevPos(), name, value)
	}
	if p.at(token.OpenParen) || p.at(token.LessThan) {
		fn := p.parseMethodBody(start)
		return p.tree.AddPropertyAssignment(ast.KindPropertyAssignment, start, p.prevPos(), name, fn)
	}
	if p.optional(token.Equals) {
		def := p.parseAssignmentExpression()
		return p.tree.AddPropertyAssignment(ast.KindShorthandPropertyAssignment, start, p.prevPos(), name, def)
	}
	return p.tree.AddPropertyAssignment(ast.KindShorthandPropertyAssignment, start, p.prevPos(), name, none)
}

func (p *Parser) parsePropertyName() ast.NodeIndex {
	start := p.pos()
	switch p.tok.Kind {
	case token.StringLiteral:
		text, fl := p.internAtom(p.tok.Text), p.tok.Flags
		end := p.tok.Span.End
		p.next()
		return p.tree.AddLiteral(ast.KindStringLiteral, start, end, text, fl)
	case token.NumericLiteral:
		text, fl := p.internAtom(p.tok.Text), p.tok.Flags
		end := p.tok.Span.End
		p.next()
		return p.tree.AddLiteral(ast.KindNumericLiteral, start, end, text, fl)
	case token.OpenBracket:
		p.next()
		expr := p.parseAssignmentExpression()
		p.expect(token.CloseBracket)
		return expr
	default:
		return p.parseIdentifierName()
	}
}

func (p *Parser) parseMethodBody(start uint32) ast.NodeIndex {
	typeParams := p.tryParseTypeParameters()
	params := p.parseParameterList()
	var returnType ast.NodeIndex = none
	if p.optional(token.Colon) {
		returnType = p.parseType()
	}
	body := p.parseFunctionBody()
	return p.tree.AddFunction(ast.KindFunctionExpression, start, p.prevPos(), ast.FunctionData{
		TypeParams: typeParams, Params: params, ReturnType: returnType, Body: body,
	})
}

func (p *Parser) parseTemplateLiteral() ast.NodeIndex {
	start := p.pos()
	headText, headFlags := p.internAtom(p.tok.Text), p.tok.Flags
	headKind := p.tok.Kind
	headEnd := p.tok.Span.End
	head := p.tree.AddLiteral(ast.KindNoSubstitutionTemplateLiteral, start, headEnd, headText, headFlags)
	if headKind == token.NoSubstitutionTemplateLiteral {
		p.next()
		return head
	}
	p.next()
	var spans []ast.NodeIndex
	for {
		spanStart := p.pos()
		expr := p.parseExpression()
		// The scanner's pointer is already positioned just past the `}` that
		// closes this substitution once it appears as the current token; do
		// not call p.next() here, which would lex past it in normal mode and
		// corrupt the following template text.
		if p.tok.Kind != token.CloseBrace {
			p.error(diagnostics.CodeExpectedToken, "expected '}'")
		}
		lit := p.scan.ScanTemplateContinuation()
		litNode := p.tree.AddLiteral(ast.KindStringLiteral, uint32(lit.Span.Pos), uint32(lit.Span.End), p.internAtom(lit.Text), lit.Flags)
		spans = append(spans, p.tree.AddTemplateSpan(spanStart, uint32(lit.Span.End), expr, litNode))
		done := lit.Kind == token.TemplateTail
		p.next()
		if done {
			break
		}
	}
	list := p.tree.NewList(spans, false)
	return p.tree.AddTemplateExpr(start, p.prevPos(), head, list)
}
