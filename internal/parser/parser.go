// Package parser implements a recursive-descent, Pratt-expression parser
// that builds an internal/ast.Tree directly into its arena as it goes — no
// intermediate CST, no backtracking beyond the scanner's O(1) save/restore
// (spec §4.2/§4.4 "Parser").
package parser

import (
	"github.com/gotsc/gotsc/internal/arena"
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/scanner"
	"github.com/gotsc/gotsc/internal/token"
)

// ContextFlags tracks the grammar-ambiguity state a production needs to
// thread through recursive descent without a parameter per function (spec
// §4.4: in/yield/await/disallow-in/generator/async/ambient context bits).
type ContextFlags uint16

const (
	CtxDisallowIn ContextFlags = 1 << iota
	CtxYield
	CtxAwait
	CtxAmbient
	CtxInClass
	CtxConstructorParams
)

func (c ContextFlags) has(f ContextFlags) bool { return c&f != 0 }

// Parser holds the single-threaded, single-file parse state. A Parser value
// is never shared across goroutines; the compiler pipeline runs one per
// file concurrently (spec §5).
type Parser struct {
	scan *scanner.Scanner
	tree *ast.Tree
	in   *atom.Interner
	diag *diagnostics.Bag
	file string

	tok   token.Token
	ctx   ContextFlags

	jsx bool // true for .tsx files: `<` in expression position may open JSX
}

// New creates a Parser ready to parse file's text into a fresh ast.Tree.
func New(file, src string, in *atom.Interner, diag *diagnostics.Bag, jsx bool) *Parser {
	p := &Parser{
		scan: scanner.New(file, src),
		tree: ast.NewTree(file, src),
		in:   in,
		diag: diag,
		file: file,
		jsx:  jsx,
	}
	if sb, ok := p.scan.ScanShebang(); ok {
		_ = sb
	}
	p.next()
	return p
}

func (p *Parser) next() {
	p.tok = p.scan.Next(scanner.ModeNormal)
}

func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

func (p *Parser) error(code diagnostics.Code, msg string) {
	p.diag.Add(diagnostics.Errorf(code, p.file, p.tok.Span, "%s", msg))
}

// expect consumes tok.Kind if it matches k, else records a diagnostic and
// leaves the token stream unchanged so callers can still recover.
func (p *Parser) expect(k token.Kind) token.Span {
	if p.tok.Kind != k {
		p.error(diagnostics.CodeExpectedToken, "expected "+k.String()+" but found "+p.tok.Kind.String())
		return p.tok.Span
	}
	sp := p.tok.Span
	p.next()
	return sp
}

func (p *Parser) optional(k token.Kind) bool {
	if p.tok.Kind == k {
		p.next()
		return true
	}
	return false
}

// ParseSourceFile parses the whole file and returns the owning Tree plus the
// root node index.
func ParseSourceFile(file, src string, in *atom.Interner, diag *diagnostics.Bag, jsx bool) (*ast.Tree, ast.NodeIndex) {
	p := New(file, src, in, diag, jsx)
	start := uint32(0)
	var stmts []ast.NodeIndex
	for !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	end := p.tok.Span.Pos
	list := p.tree.NewList(stmts, false)
	root := p.tree.AddSourceFile(start, end, list)
	return p.tree, root
}

// internAtom turns the current token's text into an Atom without forcing
// the caller to reach into the interner directly.
func (p *Parser) internAtom(text string) atom.Atom { return p.in.Intern(text) }

// canParseSemicolon implements ASI (spec §4.4): a statement terminator is
// satisfied by an explicit `;`, an upcoming `}`, EOF, or a preceding line
// break. Restricted productions are not handled here: the return, break and
// continue parsers check for a line break after the keyword themselves, and
// throw is parsed without that check.
func (p *Parser) canParseSemicolon() bool {
	if p.at(token.Semicolon) {
		return true
	}
	if p.at(token.CloseBrace) || p.at(token.EOF) {
		return true
	}
	return p.tok.Flags.Has(token.PrecedingLineBreak)
}

func (p *Parser) parseSemicolon() {
	if p.optional(token.Semicolon) {
		return
	}
	if !p.canParseSemicolon() {
		p.error(diagnostics.CodeExpectedSemicolon, "expected ';'")
	}
}

// none is shorthand for the "missing subterm" sentinel produced by error
// recovery (spec's NodeIndex::NONE).
const none = ast.NodeIndex(arena.None)

func (p *Parser) pos() uint32 { return p.tok.Span.Pos }
func (p *Parser) prevEnd(sp token.Span) uint32 { return sp.End }
