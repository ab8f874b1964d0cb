package parser

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/token"
)

// expectGreaterThan closes a type-argument/type-parameter list. `>>` and
// `>>>` lex as single composite operators, so closing a generic list must
// split one `>` off the front and leave the rest for the next token (the
// scanner's ">>" in `Foo<Bar<Baz>>` would otherwise never close the inner
// list) — the same trick the teacher's own tokenizer documents as "re-scan".
func (p *Parser) expectGreaterThan() {
	if splitGreaterThan(p, false) {
		return
	}
	p.error(diagnostics.CodeExpectedToken, "expected '>'")
}

func looksLikeGreaterThan(k token.Kind) bool {
	switch k {
	case token.GreaterThan, token.GreaterThanEquals, token.GreaterThanGreaterThan,
		token.GreaterThanGreaterThanEquals, token.GreaterThanGreaterThanGreaterThan,
		token.GreaterThanGreaterThanGreaterThanEquals:
		return true
	default:
		return false
	}
}

// splitGreaterThan consumes exactly one `>` from the current token if it
// begins with one, repositioning the scanner at the remaining characters
// (e.g. turning `>>` into a consumed `>` plus a fresh `>` token next time
// Next is called). Returns false (and leaves state untouched) if the
// current token does not start with `>`.
func splitGreaterThan(p *Parser, dryRun bool) bool {
	if !looksLikeGreaterThan(p.tok.Kind) {
		return false
	}
	if dryRun {
		return true
	}
	p.scan.SplitGreaterThan(int(p.tok.Span.Pos))
	p.next()
	return true
}

// tryParseTypeArguments speculatively parses `<Type, Type, ...>`, restoring
// scanner state and reporting failure (rather than a diagnostic) if the
// lookahead doesn't pan out — used where `<` is ambiguous with a
// less-than comparison (call/new expressions, type references).
func (p *Parser) tryParseTypeArguments() (ast.ListIndex, bool) {
	save := p.scan.Save()
	savedTok := p.tok
	outer := p.diag
	scratch := &diagnostics.Bag{}
	p.diag = scratch
	defer func() { p.diag = outer }()
	p.next() // `<`

	var items []ast.NodeIndex
	for {
		if !isStartOfType(p.tok.Kind) {
			p.scan.Restore(save)
			p.tok = savedTok
			return ast.EmptyList, false
		}
		items = append(items, p.parseType())
		if p.optional(token.Comma) {
			continue
		}
		break
	}

	if scratch.Len() > 0 || !splitGreaterThan(p, false) {
		p.scan.Restore(save)
		p.tok = savedTok
		return ast.EmptyList, false
	}
	return p.tree.NewList(items, false), true
}

// tryParseTypeParameters parses an optional `<T, U extends C = D, ...>` list
// heading a function, class, interface, type alias, or method declaration.
// Returns ast.EmptyList when no `<` is present; there is nothing speculative
// here since a leading `<` in these positions is unambiguous.
func (p *Parser) tryParseTypeParameters() ast.ListIndex {
	if !p.at(token.LessThan) {
		return ast.EmptyList
	}
	p.next()
	var items []ast.NodeIndex
	for !p.at(token.EOF) {
		items = append(items, p.parseTypeParameter())
		if p.optional(token.Comma) {
			continue
		}
		break
	}
	p.expectGreaterThan()
	return p.tree.NewList(items, false)
}

func (p *Parser) parseTypeParameter() ast.NodeIndex {
	start := p.pos()
	var mods ast.Modifiers
	if p.at(token.InKeyword) {
		mods |= ast.ModIn
		p.next()
	} else if p.at(token.OutKeyword) {
		mods |= ast.ModOut
		p.next()
	}
	name := p.parseIdentifierExpr()
	var constraint ast.NodeIndex = none
	if p.optional(token.ExtendsKeyword) {
		constraint = p.parseType()
	}
	var def ast.NodeIndex = none
	if p.optional(token.Equals) {
		def = p.parseType()
	}
	return p.tree.AddTypeParameter(start, p.prevPos(), ast.TypeParameterData{
		Name: name, Constraint: constraint, Default: def, Modifiers: mods,
	})
}

func isStartOfType(k token.Kind) bool {
	switch k {
	case token.Identifier, token.OpenBrace, token.OpenBracket, token.OpenParen, token.LessThan,
		token.NewKeyword, token.TypeOfKeyword, token.ImportKeyword, token.InferKeyword,
		token.KeyOfKeyword, token.UniqueKeyword, token.ReadonlyKeyword,
		token.StringLiteral, token.NumericLiteral, token.BigIntLiteral,
		token.TrueKeyword, token.FalseKeyword, token.NullKeyword, token.Minus,
		token.TemplateHead, token.NoSubstitutionTemplateLiteral, token.VoidKeyword,
		token.AnyKeyword, token.UnknownKeyword, token.NumberKeyword, token.BooleanKeyword,
		token.StringKeyword, token.SymbolKeyword, token.BigIntKeyword, token.ObjectKeyword,
		token.UndefinedKeyword, token.NeverKeyword, token.Dot:
		return true
	default:
		return isContextualKeyword(k)
	}
}

// parseType is the entry point for the whole type grammar (spec §4.4's type
// productions), dispatching to function/constructor types before falling
// into the conditional-type descent.
func (p *Parser) parseType() ast.NodeIndex {
	if p.at(token.NewKeyword) {
		return p.parseConstructorType()
	}
	if ft, ok := p.tryParseFunctionType(); ok {
		return ft
	}
	return p.parseConditionalType()
}

func (p *Parser) tryParseFunctionType() (ast.NodeIndex, bool) {
	if !p.at(token.OpenParen) && !p.at(token.LessThan) {
		return none, false
	}
	save := p.scan.Save()
	savedTok := p.tok
	start := p.pos()

	typeParams := p.tryParseTypeParameters()
	if !p.at(token.OpenParen) {
		p.scan.Restore(save)
		p.tok = savedTok
		return none, false
	}
	params, ok := p.tryParseParenthesizedParameterList()
	if !ok || !p.at(token.EqualsGreaterThan) {
		p.scan.Restore(save)
		p.tok = savedTok
		return none, false
	}
	p.next()
	ret := p.parseType()
	return p.tree.AddFunctionType(ast.KindFunctionType, start, p.prevPos(), ast.FunctionTypeData{
		TypeParams: typeParams, Params: params, ReturnType: ret,
	}), true
}

func (p *Parser) parseConstructorType() ast.NodeIndex {
	start := p.pos()
	p.next() // `new`
	typeParams := p.tryParseTypeParameters()
	params := p.parseParameterList()
	p.expect(token.EqualsGreaterThan)
	ret := p.parseType()
	return p.tree.AddFunctionType(ast.KindConstructorType, start, p.prevPos(), ast.FunctionTypeData{
		TypeParams: typeParams, Params: params, ReturnType: ret,
	})
}

func (p *Parser) parseConditionalType() ast.NodeIndex {
	start := p.pos()
	checkType := p.parseUnionType()
	if !p.at(token.ExtendsKeyword) {
		return checkType
	}
	p.next()
	extendsType := p.parseUnionType()
	p.expect(token.Question)
	trueType := p.parseType()
	p.expect(token.Colon)
	falseType := p.parseType()
	return p.tree.AddConditionalType(start, p.prevPos(), ast.ConditionalTypeData{
		CheckType: checkType, ExtendsType: extendsType, TrueType: trueType, FalseType: falseType,
	})
}

func (p *Parser) parseUnionType() ast.NodeIndex {
	start := p.pos()
	p.optional(token.Bar)
	first := p.parseIntersectionType()
	if !p.at(token.Bar) {
		return first
	}
	items := []ast.NodeIndex{first}
	for p.optional(token.Bar) {
		items = append(items, p.parseIntersectionType())
	}
	list := p.tree.NewList(items, false)
	return p.tree.AddElements(ast.KindUnionType, start, p.prevPos(), list)
}

func (p *Parser) parseIntersectionType() ast.NodeIndex {
	start := p.pos()
	p.optional(token.Ampersand)
	first := p.parseTypeOperatorOrHigher()
	if !p.at(token.Ampersand) {
		return first
	}
	items := []ast.NodeIndex{first}
	for p.optional(token.Ampersand) {
		items = append(items, p.parseTypeOperatorOrHigher())
	}
	list := p.tree.NewList(items, false)
	return p.tree.AddElements(ast.KindIntersectionType, start, p.prevPos(), list)
}

func (p *Parser) parseTypeOperatorOrHigher() ast.NodeIndex {
	start := p.pos()
	switch p.tok.Kind {
	case token.KeyOfKeyword, token.UniqueKeyword, token.ReadonlyKeyword:
		op := p.tok.Kind
		p.next()
		ty := p.parseTypeOperatorOrHigher()
		return p.tree.AddTypeOperator(start, p.prevPos(), op, ty)
	case token.InferKeyword:
		p.next()
		name := p.parseIdentifierExpr()
		var constraint ast.NodeIndex = none
		if p.at(token.ExtendsKeyword) {
			save := p.scan.Save()
			savedTok := p.tok
			p.next()
			ty, ok := p.tryParseTypeNoFail()
			if ok && !p.at(token.Question) {
				constraint = ty
			} else {
				p.scan.Restore(save)
				p.tok = savedTok
			}
		}
		tp := p.tree.AddTypeParameter(start, p.prevPos(), ast.TypeParameterData{Name: name, Constraint: constraint})
		return p.tree.AddInferType(start, p.prevPos(), tp)
	default:
		return p.parsePostfixTypeOrHigher()
	}
}

func (p *Parser) parsePostfixTypeOrHigher() ast.NodeIndex {
	start := p.pos()
	ty := p.parseNonArrayType()
	for !p.tok.Flags.Has(token.PrecedingLineBreak) && p.at(token.OpenBracket) {
		p.next()
		if p.at(token.CloseBracket) {
			p.next()
			ty = p.tree.AddUnaryLikeType(ast.KindArrayType, start, p.prevPos(), ty)
			continue
		}
		index := p.parseType()
		p.expect(token.CloseBracket)
		ty = p.tree.AddIndexedAccessType(start, p.prevPos(), ty, index)
	}
	return ty
}

func (p *Parser) parseEntityName() ast.NodeIndex {
	start := p.pos()
	left := p.parseIdentifierName()
	for p.at(token.Dot) {
		p.next()
		right := p.parseIdentifierName()
		left = p.tree.AddQualifiedName(start, p.prevPos(), left, right)
	}
	return left
}

var keywordTypeTokens = map[token.Kind]bool{
	token.AnyKeyword: true, token.UnknownKeyword: true, token.NumberKeyword: true,
	token.BooleanKeyword: true, token.StringKeyword: true, token.VoidKeyword: true,
	token.NeverKeyword: true, token.ObjectKeyword: true, token.SymbolKeyword: true,
	token.BigIntKeyword: true, token.UndefinedKeyword: true,
}

func (p *Parser) parseNonArrayType() ast.NodeIndex {
	start := p.pos()
	switch {
	case keywordTypeTokens[p.tok.Kind]:
		kw := p.tok.Kind
		p.next()
		return p.tree.AddKeywordType(start, p.prevPos(), kw)
	case p.at(token.NullKeyword):
		p.next()
		lit := p.tree.AddKeywordLiteral(ast.KindNullLiteral, start, p.prevPos())
		return p.tree.AddUnaryLikeType(ast.KindLiteralType, start, p.prevPos(), lit)
	case p.at(token.TrueKeyword), p.at(token.FalseKeyword):
		kind := ast.KindTrueLiteral
		if p.at(token.FalseKeyword) {
			kind = ast.KindFalseLiteral
		}
		p.next()
		lit := p.tree.AddKeywordLiteral(kind, start, p.prevPos())
		return p.tree.AddUnaryLikeType(ast.KindLiteralType, start, p.prevPos(), lit)
	case p.at(token.StringLiteral), p.at(token.NumericLiteral), p.at(token.BigIntLiteral):
		lit := p.parsePrimaryExpression()
		return p.tree.AddUnaryLikeType(ast.KindLiteralType, start, p.prevPos(), lit)
	case p.at(token.Minus):
		p.next()
		lit := p.parsePrimaryExpression()
		neg := p.tree.AddUnaryExpr(ast.KindPrefixUnaryExpression, start, p.prevPos(), token.Minus, lit)
		return p.tree.AddUnaryLikeType(ast.KindLiteralType, start, p.prevPos(), neg)
	case p.at(token.TemplateHead), p.at(token.NoSubstitutionTemplateLiteral):
		return p.parseTemplateLiteralType()
	case p.at(token.TypeOfKeyword):
		p.next()
		if p.at(token.ImportKeyword) {
			return p.parseImportType(start, true)
		}
		name := p.parseEntityName()
		return p.tree.AddUnaryLikeType(ast.KindTypeQuery, start, p.prevPos(), name)
	case p.at(token.ImportKeyword):
		return p.parseImportType(start, false)
	case p.at(token.OpenBrace):
		return p.parseTypeLiteralOrMappedType()
	case p.at(token.OpenBracket):
		return p.parseTupleType()
	case p.at(token.OpenParen):
		p.next()
		ty := p.parseType()
		p.expect(token.CloseParen)
		return p.tree.AddUnaryLikeType(ast.KindParenthesizedType, start, p.prevPos(), ty)
	case p.at(token.Identifier) || isContextualKeyword(p.tok.Kind):
		return p.parseTypeReferenceOrPredicate(start)
	default:
		p.error(diagnostics.CodeUnexpectedToken, "unexpected token in type")
		p.next()
		return none
	}
}

// parseTypeReferenceOrPredicate handles `Name<Args>` and the common
// `x is T` type-predicate shorthand that appears in the same grammar slot.
func (p *Parser) parseTypeReferenceOrPredicate(start uint32) ast.NodeIndex {
	if p.at(token.AssertsKeyword) {
		p.next()
		p.parseIdentifierName()
		if p.optional(token.IsKeyword) {
			p.parseType()
		}
		return p.tree.AddKeywordType(start, p.prevPos(), token.BooleanKeyword)
	}
	name := p.parseEntityName()
	if p.at(token.IsKeyword) {
		p.next()
		p.parseType()
		return p.tree.AddKeywordType(start, p.prevPos(), token.BooleanKeyword)
	}
	var typeArgs ast.ListIndex = ast.EmptyList
	if p.at(token.LessThan) {
		if ta, ok := p.tryParseTypeArguments(); ok {
			typeArgs = ta
		}
	}
	return p.tree.AddTypeReference(start, p.prevPos(), ast.TypeReferenceData{Name: name, TypeArgs: typeArgs})
}

func (p *Parser) parseImportType(start uint32, isTypeOf bool) ast.NodeIndex {
	p.next() // `import`
	p.expect(token.OpenParen)
	arg := p.parseAssignmentExpression()
	p.expect(token.CloseParen)
	var qualifier ast.NodeIndex = none
	if p.optional(token.Dot) {
		qualifier = p.parseEntityName()
	}
	var typeArgs ast.ListIndex = ast.EmptyList
	if p.at(token.LessThan) {
		if ta, ok := p.tryParseTypeArguments(); ok {
			typeArgs = ta
		}
	}
	return p.tree.AddImportType(start, p.prevPos(), ast.ImportTypeData{
		Argument: arg, Qualifier: qualifier, TypeArgs: typeArgs, IsTypeOf: isTypeOf,
	})
}

func (p *Parser) parseTemplateLiteralType() ast.NodeIndex {
	start := p.pos()
	headText, headFlags := p.internAtom(p.tok.Text), p.tok.Flags
	headKind := p.tok.Kind
	headEnd := p.tok.Span.End
	head := p.tree.AddLiteral(ast.KindStringLiteral, start, headEnd, headText, headFlags)
	if headKind == token.NoSubstitutionTemplateLiteral {
		p.next()
		return head
	}
	p.next()
	var spans []ast.NodeIndex
	for {
		spanStart := p.pos()
		ty := p.parseType()
		if p.tok.Kind != token.CloseBrace {
			p.error(diagnostics.CodeExpectedToken, "expected '}'")
		}
		lit := p.scan.ScanTemplateContinuation()
		litNode := p.tree.AddLiteral(ast.KindStringLiteral, uint32(lit.Span.Pos), uint32(lit.Span.End), p.internAtom(lit.Text), lit.Flags)
		spans = append(spans, p.tree.AddTemplateLiteralTypeSpan(spanStart, uint32(lit.Span.End), ty, litNode))
		done := lit.Kind == token.TemplateTail
		p.next()
		if done {
			break
		}
	}
	list := p.tree.NewList(spans, false)
	return p.tree.AddTemplateLiteralType(start, p.prevPos(), head, list)
}

func (p *Parser) parseTupleType() ast.NodeIndex {
	start := p.pos()
	p.next()
	var items []ast.NodeIndex
	for !p.at(token.CloseBracket) && !p.at(token.EOF) {
		items = append(items, p.parseTupleElement())
		if !p.optional(token.Comma) {
			break
		}
	}
	p.expect(token.CloseBracket)
	list := p.tree.NewList(items, false)
	return p.tree.AddElements(ast.KindTupleType, start, p.prevPos(), list)
}

func (p *Parser) parseTupleElement() ast.NodeIndex {
	start := p.pos()
	dotdotdot := p.optional(token.DotDotDot)

	if (p.at(token.Identifier) || isContextualKeyword(p.tok.Kind)) && p.isNamedTupleMemberAhead() {
		name := p.parseIdentifierName()
		optional := p.optional(token.Question)
		p.expect(token.Colon)
		ty := p.parseType()
		return p.tree.AddNamedTupleMember(start, p.prevPos(), ast.NamedTupleMemberData{
			Name: name, Type: ty, Optional: optional, DotDotDot: dotdotdot,
		})
	}

	ty := p.parseType()
	if dotdotdot {
		return p.tree.AddUnaryLike(ast.KindSpreadElement, start, p.prevPos(), ty)
	}
	return ty
}

// isNamedTupleMemberAhead speculatively checks for `ident ?? :` (labeled
// tuple element) ahead of the current identifier without disturbing parser
// state on failure.
func (p *Parser) isNamedTupleMemberAhead() bool {
	save := p.scan.Save()
	savedTok := p.tok
	p.next()
	p.optional(token.Question)
	ok := p.at(token.Colon)
	p.scan.Restore(save)
	p.tok = savedTok
	return ok
}

// parseTypeLiteralOrMappedType disambiguates `{ [K in Keys]: T }` (mapped
// type) from an ordinary type-literal/index-signature member list by
// peeking for the `in` keyword inside a bracketed member name.
func (p *Parser) parseTypeLiteralOrMappedType() ast.NodeIndex {
	start := p.pos()
	if p.looksLikeMappedType() {
		return p.parseMappedType(start)
	}
	p.next()
	var items []ast.NodeIndex
	for !p.at(token.CloseBrace) && !p.at(token.EOF) {
		items = append(items, p.parseTypeMember())
		p.optional(token.Semicolon)
		p.optional(token.Comma)
	}
	p.expect(token.CloseBrace)
	list := p.tree.NewList(items, false)
	return p.tree.AddElements(ast.KindTypeLiteral, start, p.prevPos(), list)
}

func (p *Parser) looksLikeMappedType() bool {
	save := p.scan.Save()
	savedTok := p.tok
	p.next() // `{`
	ok := false
	if p.optional(token.Plus) || p.optional(token.Minus) {
		ok = p.at(token.ReadonlyKeyword)
		if ok {
			p.next()
			ok = p.at(token.OpenBracket)
		}
	} else if p.at(token.ReadonlyKeyword) {
		p.next()
		ok = p.at(token.OpenBracket)
	} else {
		ok = p.at(token.OpenBracket)
	}
	if ok {
		p.next() // `[`
		ok = p.at(token.Identifier)
		if ok {
			p.next()
			ok = p.at(token.InKeyword)
		}
	}
	p.scan.Restore(save)
	p.tok = savedTok
	return ok
}

func (p *Parser) parseMappedType(start uint32) ast.NodeIndex {
	p.next() // `{`
	readonlyToken := token.Kind(0)
	if p.optional(token.Plus) {
		p.expect(token.ReadonlyKeyword)
		readonlyToken = token.Plus
	} else if p.optional(token.Minus) {
		p.expect(token.ReadonlyKeyword)
		readonlyToken = token.Minus
	} else if p.optional(token.ReadonlyKeyword) {
		readonlyToken = token.ReadonlyKeyword
	}
	p.expect(token.OpenBracket)
	tpStart := p.pos()
	name := p.parseIdentifierExpr()
	p.expect(token.InKeyword)
	constraint := p.parseType()
	typeParam := p.tree.AddTypeParameter(tpStart, p.prevPos(), ast.TypeParameterData{Name: name, Constraint: constraint})
	var nameType ast.NodeIndex = none
	if p.optional(token.AsKeyword) {
		nameType = p.parseType()
	}
	p.expect(token.CloseBracket)
	questionToken := token.Kind(0)
	if p.optional(token.Plus) {
		p.expect(token.Question)
		questionToken = token.Plus
	} else if p.optional(token.Minus) {
		p.expect(token.Question)
		questionToken = token.Minus
	} else if p.optional(token.Question) {
		questionToken = token.Question
	}
	var ty ast.NodeIndex = none
	if p.optional(token.Colon) {
		ty = p.parseType()
	}
	p.optional(token.Semicolon)
	p.expect(token.CloseBrace)
	return p.tree.AddMappedType(start, p.prevPos(), ast.MappedTypeData{
		TypeParam: typeParam, NameType: nameType, Type: ty,
		ReadonlyToken: readonlyToken, QuestionToken: questionToken,
	})
}

// parseTypeMember parses one interface/type-literal member: a property
// signature, method signature, index signature, or call/construct
// signature.
func (p *Parser) parseTypeMember() ast.NodeIndex {
	start := p.pos()

	if p.at(token.OpenParen) || p.at(token.LessThan) {
		typeParams := p.tryParseTypeParameters()
		params := p.parseParameterList()
		var ret ast.NodeIndex = none
		if p.optional(token.Colon) {
			ret = p.parseType()
		}
		return p.tree.AddMethodDecl(ast.KindCallSignature, start, p.prevPos(), ast.MethodDeclData{
			TypeParams: typeParams, Params: params, ReturnType: ret,
		})
	}
	if p.at(token.NewKeyword) {
		p.next()
		typeParams := p.tryParseTypeParameters()
		params := p.parseParameterList()
		var ret ast.NodeIndex = none
		if p.optional(token.Colon) {
			ret = p.parseType()
		}
		return p.tree.AddMethodDecl(ast.KindConstructSignature, start, p.prevPos(), ast.MethodDeclData{
			TypeParams: typeParams, Params: params, ReturnType: ret,
		})
	}
	if p.at(token.OpenBracket) && p.looksLikeIndexSignature() {
		return p.parseIndexSignature(start, 0)
	}
	readonly := false
	if p.at(token.ReadonlyKeyword) {
		readonly = true
		p.next()
	}
	if p.at(token.OpenBracket) && p.looksLikeIndexSignature() {
		mods := ast.Modifiers(0)
		if readonly {
			mods = ast.ModReadonly
		}
		return p.parseIndexSignature(start, mods)
	}

	getSet := token.Kind(0)
	if p.at(token.GetKeyword) || p.at(token.SetKeyword) {
		save := p.scan.Save()
		savedTok := p.tok
		kw := p.tok.Kind
		p.next()
		if p.at(token.Identifier) || isContextualKeyword(p.tok.Kind) || p.at(token.StringLiteral) || p.at(token.NumericLiteral) || p.at(token.OpenBracket) {
			getSet = kw
		} else {
			p.scan.Restore(save)
			p.tok = savedTok
		}
	}

	name := p.parsePropertyName()
	optional := p.optional(token.Question)

	if getSet != 0 {
		kind := ast.KindGetAccessor
		if getSet == token.SetKeyword {
			kind = ast.KindSetAccessor
		}
		params := p.parseParameterList()
		var ret ast.NodeIndex = none
		if p.optional(token.Colon) {
			ret = p.parseType()
		}
		mods := ast.Modifiers(0)
		if readonly {
			mods |= ast.ModReadonly
		}
		return p.tree.AddMethodDecl(kind, start, p.prevPos(), ast.MethodDeclData{
			Name: name, Params: params, ReturnType: ret, Optional: optional, Modifiers: mods,
		})
	}

	if p.at(token.OpenParen) || p.at(token.LessThan) {
		typeParams := p.tryParseTypeParameters()
		params := p.parseParameterList()
		var ret ast.NodeIndex = none
		if p.optional(token.Colon) {
			ret = p.parseType()
		}
		return p.tree.AddMethodDecl(ast.KindMethodDeclaration, start, p.prevPos(), ast.MethodDeclData{
			Name: name, TypeParams: typeParams, Params: params, ReturnType: ret, Optional: optional,
		})
	}

	var ty ast.NodeIndex = none
	if p.optional(token.Colon) {
		ty = p.parseType()
	}
	mods := ast.Modifiers(0)
	if readonly {
		mods |= ast.ModReadonly
	}
	return p.tree.AddPropertyDecl(start, p.prevPos(), ast.PropertyDeclData{
		Name: name, Type: ty, Optional: optional, Modifiers: mods,
	})
}

func (p *Parser) looksLikeIndexSignature() bool {
	save := p.scan.Save()
	savedTok := p.tok
	p.next() // `[`
	ok := (p.at(token.Identifier) || isContextualKeyword(p.tok.Kind))
	if ok {
		p.next()
		ok = p.at(token.Colon)
	}
	p.scan.Restore(save)
	p.tok = savedTok
	return ok
}

func (p *Parser) parseIndexSignature(start uint32, mods ast.Modifiers) ast.NodeIndex {
	p.expect(token.OpenBracket)
	paramName := p.parseIdentifierExpr()
	p.expect(token.Colon)
	paramType := p.parseType()
	p.expect(token.CloseBracket)
	p.expect(token.Colon)
	ty := p.parseType()
	return p.tree.AddIndexSignature(start, p.prevPos(), ast.IndexSignatureData{
		ParamName: paramName, ParamType: paramType, Type: ty, Modifiers: mods,
	})
}
