// Package scanner turns source text into a stream of token.Token values
// (spec §4.2 "Lexical Scanner"). It is a hand-written, switch-dispatched
// scanner in the style of a classic single-pass lexer: no regex-based
// tokenization, no external lexer generator.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gotsc/gotsc/internal/token"
)

// Mode selects whether Next scans an ordinary token or a raw JSX text run.
// In either mode a `/` scans as an operator; regex literals are scanned only
// through ScanRegex.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeJSXText
)

// Scanner produces tokens lazily, one at a time, from a single source file's
// text. It never allocates per character: position/readPosition/ch mirror a
// classic two-pointer lexer, advanced one rune at a time.
type Scanner struct {
	file string
	src  string

	position     int // byte offset of ch
	readPosition int // byte offset just past ch
	ch           rune
	chWidth      int

	line int

	precedingLineBreak bool
}

// New creates a Scanner over src. file is stored on the Scanner but not read
// by it; the scanner reports no diagnostics itself.
func New(file, src string) *Scanner {
	s := &Scanner{file: file, src: src, line: 1}
	s.readChar()
	return s
}

func (s *Scanner) readChar() {
	if s.readPosition >= len(s.src) {
		s.ch = 0
		s.chWidth = 0
		s.position = len(s.src)
		s.readPosition = len(s.src) + 1
		return
	}
	r, w := utf8.DecodeRuneInString(s.src[s.readPosition:])
	if s.ch == '\n' {
		s.line++
	}
	s.ch = r
	s.chWidth = w
	s.position = s.readPosition
	s.readPosition += w
}

func (s *Scanner) peekChar() rune {
	if s.readPosition >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.readPosition:])
	return r
}

func (s *Scanner) peekAt(offset int) rune {
	p := s.readPosition
	var r rune
	for i := 0; i <= offset; i++ {
		if p >= len(s.src) {
			return 0
		}
		var w int
		r, w = utf8.DecodeRuneInString(s.src[p:])
		if i == offset {
			return r
		}
		p += w
	}
	return r
}

func (s *Scanner) atEOF() bool { return s.position >= len(s.src) }

// Pos returns the current byte offset, for parser save/restore checkpoints.
func (s *Scanner) Pos() int { return s.position }

// SplitGreaterThan repositions the scanner immediately after a single `>`
// character starting at startPos, so a token the scanner lexed as a wider
// operator (`>>`, `>>>`, `>=`, ...) can be reinterpreted as closing a type
// argument or type parameter list one `>` at a time. The caller is
// responsible for having already matched a token whose span begins with
// `>` at startPos.
func (s *Scanner) SplitGreaterThan(startPos int) {
	p := startPos + 1
	var r rune
	var w int
	if p < len(s.src) {
		r, w = utf8.DecodeRuneInString(s.src[p:])
	}
	s.position = p
	s.ch = r
	s.chWidth = w
	s.readPosition = p + w
}

// ScannerState is an opaque checkpoint for O(1) backtracking, used by the
// parser's speculative parses (arrow functions, type arguments and other
// lookahead) to rewind the scanner.
type ScannerState struct {
	position, readPosition int
	ch                      rune
	chWidth                 int
	line                    int
}

func (s *Scanner) Save() ScannerState {
	return ScannerState{s.position, s.readPosition, s.ch, s.chWidth, s.line}
}

func (s *Scanner) Restore(st ScannerState) {
	s.position, s.readPosition, s.ch, s.chWidth, s.line = st.position, st.readPosition, st.ch, st.chWidth, st.line
}

// Next scans and returns the next token in mode m.
func (s *Scanner) Next(m Mode) token.Token {
	if m == ModeJSXText {
		return s.scanJSXText()
	}

	s.precedingLineBreak = false
	s.skipTrivia()

	startPos := s.position
	flags := token.FlagNone
	if s.precedingLineBreak {
		flags |= token.PrecedingLineBreak
	}

	if s.atEOF() {
		return token.Token{Kind: token.EOF, Span: span(startPos, startPos), Flags: flags}
	}

	ch := s.ch

	switch {
	case isIdentifierStart(ch):
		return s.scanIdentifierOrKeyword(startPos, flags)
	case ch == '#':
		return s.scanPrivateIdentifier(startPos, flags)
	case isDigit(ch):
		return s.scanNumber(startPos, flags)
	case ch == '.' && isDigit(s.peekChar()):
		return s.scanNumber(startPos, flags)
	case ch == '"' || ch == '\'':
		return s.scanString(startPos, flags, ch)
	case ch == '`':
		return s.scanTemplate(startPos, flags, true)
	}

	return s.scanPunctuator(startPos, flags)
}

// skipTrivia consumes whitespace and comments, recording whether a line
// terminator was crossed (consumed by ASI).
func (s *Scanner) skipTrivia() {
	for {
		switch {
		case s.ch == '\n' || s.ch == '\r' || s.ch == ' ' || s.ch == ' ':
			s.precedingLineBreak = true
			s.readChar()
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\v' || s.ch == '\f' || s.ch == 0xFEFF:
			s.readChar()
		case unicode.IsSpace(s.ch):
			s.readChar()
		case s.ch == '/' && s.peekChar() == '/':
			for s.ch != '\n' && s.ch != 0 && !s.atEOF() {
				s.readChar()
			}
		case s.ch == '/' && s.peekChar() == '*':
			s.readChar()
			s.readChar()
			for {
				if s.atEOF() {
					return
				}
				if s.ch == '\n' {
					s.precedingLineBreak = true
				}
				if s.ch == '*' && s.peekChar() == '/' {
					s.readChar()
					s.readChar()
					break
				}
				s.readChar()
			}
		default:
			return
		}
	}
}

// ScanShebang consumes a leading `#!...` line if present; call once before
// the first Next on a fresh file.
func (s *Scanner) ScanShebang() (token.Token, bool) {
	if s.position != 0 || s.ch != '#' || s.peekChar() != '!' {
		return token.Token{}, false
	}
	start := s.position
	for s.ch != '\n' && !s.atEOF() {
		s.readChar()
	}
	return token.Token{Kind: token.EOF, Span: span(start, s.position), Flags: token.Shebang, Text: s.src[start:s.position]}, true
}

func isIdentifierStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) || r == 0x200C || r == 0x200D
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func span(pos, end int) token.Span { return token.Span{Pos: uint32(pos), End: uint32(end)} }

func (s *Scanner) scanIdentifierOrKeyword(start int, flags token.Flags) token.Token {
	containsEscape := false
	for isIdentifierPart(s.ch) || (s.ch == '\\' && s.peekChar() == 'u') {
		if s.ch == '\\' {
			containsEscape = true
			s.readChar() // backslash
			s.readChar() // 'u'
			if s.ch == '{' {
				for s.ch != '}' && !s.atEOF() {
					s.readChar()
				}
				s.readChar()
			} else {
				for i := 0; i < 4 && !s.atEOF(); i++ {
					s.readChar()
				}
			}
			continue
		}
		s.readChar()
	}
	text := s.src[start:s.position]
	if containsEscape {
		flags |= token.ContainsEscape
	}
	kind := token.Identifier
	if !containsEscape {
		if kw, ok := keywords[text]; ok {
			kind = kw
		}
	}
	return token.Token{Kind: kind, Span: span(start, s.position), Flags: flags, Text: text}
}

func (s *Scanner) scanPrivateIdentifier(start int, flags token.Flags) token.Token {
	s.readChar() // '#'
	for isIdentifierPart(s.ch) {
		s.readChar()
	}
	return token.Token{Kind: token.PrivateIdentifier, Span: span(start, s.position), Flags: flags, Text: s.src[start:s.position]}
}

// keywords maps reserved/contextual keyword spellings to their Kind. Built
// once; the scanner never allocates this per call.
var keywords = map[string]token.Kind{
	"break": token.BreakKeyword, "case": token.CaseKeyword, "catch": token.CatchKeyword,
	"class": token.ClassKeyword, "const": token.ConstKeyword, "continue": token.ContinueKeyword,
	"debugger": token.DebuggerKeyword, "default": token.DefaultKeyword, "delete": token.DeleteKeyword,
	"do": token.DoKeyword, "else": token.ElseKeyword, "enum": token.EnumKeyword,
	"export": token.ExportKeyword, "extends": token.ExtendsKeyword, "false": token.FalseKeyword,
	"finally": token.FinallyKeyword, "for": token.ForKeyword, "function": token.FunctionKeyword,
	"if": token.IfKeyword, "implements": token.ImplementsKeyword, "import": token.ImportKeyword, "in": token.InKeyword,
	"instanceof": token.InstanceOfKeyword, "new": token.NewKeyword, "null": token.NullKeyword,
	"return": token.ReturnKeyword, "super": token.SuperKeyword, "switch": token.SwitchKeyword,
	"this": token.ThisKeyword, "throw": token.ThrowKeyword, "true": token.TrueKeyword,
	"try": token.TryKeyword, "typeof": token.TypeOfKeyword, "var": token.VarKeyword,
	"void": token.VoidKeyword, "while": token.WhileKeyword, "with": token.WithKeyword,
	"yield": token.YieldKeyword,

	"any": token.AnyKeyword, "as": token.AsKeyword, "asserts": token.AssertsKeyword,
	"async": token.AsyncKeyword, "await": token.AwaitKeyword, "boolean": token.BooleanKeyword,
	"declare": token.DeclareKeyword, "get": token.GetKeyword, "infer": token.InferKeyword,
	"interface": token.InterfaceKeyword, "is": token.IsKeyword, "keyof": token.KeyOfKeyword,
	"let": token.LetKeyword, "module": token.ModuleKeyword, "namespace": token.NamespaceKeyword,
	"never": token.NeverKeyword, "number": token.NumberKeyword, "of": token.OfKeyword,
	"override": token.OverrideKeyword, "private": token.PrivateKeyword, "protected": token.ProtectedKeyword,
	"public": token.PublicKeyword, "readonly": token.ReadonlyKeyword, "require": token.RequireKeyword,
	"satisfies": token.SatisfiesKeyword, "set": token.SetKeyword, "static": token.StaticKeyword,
	"string": token.StringKeyword, "symbol": token.SymbolKeyword, "type": token.TypeKeyword,
	"undefined": token.UndefinedKeyword, "unique": token.UniqueKeyword, "unknown": token.UnknownKeyword,
	"from": token.FromKeyword, "global": token.GlobalKeyword, "bigint": token.BigIntKeyword,
	"object": token.ObjectKeyword, "abstract": token.AbstractKeyword, "accessor": token.AccessorKeyword,
	"out": token.OutKeyword,
}

func (s *Scanner) scanString(start int, flags token.Flags, quote rune) token.Token {
	s.readChar() // opening quote
	var b strings.Builder
	for {
		if s.atEOF() || s.ch == '\n' {
			flags |= token.Unterminated
			break
		}
		if s.ch == quote {
			s.readChar()
			break
		}
		if s.ch == '\\' {
			esc, octal := s.scanEscapeSequence()
			if octal {
				flags |= token.OctalEscape
			}
			b.WriteString(esc)
			continue
		}
		b.WriteRune(s.ch)
		s.readChar()
	}
	return token.Token{Kind: token.StringLiteral, Span: span(start, s.position), Flags: flags, Text: b.String()}
}

// scanEscapeSequence consumes one `\x` escape starting at the backslash and
// returns its decoded text plus whether it was a legacy octal escape.
func (s *Scanner) scanEscapeSequence() (string, bool) {
	start := s.position
	s.readChar() // backslash
	switch s.ch {
	case 'n':
		s.readChar()
		return "\n", false
	case 't':
		s.readChar()
		return "\t", false
	case 'r':
		s.readChar()
		return "\r", false
	case 'b':
		s.readChar()
		return "\b", false
	case 'f':
		s.readChar()
		return "\f", false
	case 'v':
		s.readChar()
		return "\v", false
	case '0':
		if !isDigit(s.peekChar()) {
			s.readChar()
			return "\x00", false
		}
	case '\n':
		s.readChar()
		return "", false
	case 'x':
		s.readChar()
		for i := 0; i < 2 && isHexDigit(s.ch); i++ {
			s.readChar()
		}
		return s.src[start:s.position], false
	case 'u':
		s.readChar()
		if s.ch == '{' {
			for s.ch != '}' && !s.atEOF() {
				s.readChar()
			}
			s.readChar()
		} else {
			for i := 0; i < 4 && isHexDigit(s.ch); i++ {
				s.readChar()
			}
		}
		return s.src[start:s.position], false
	}
	if isDigit(s.ch) && s.ch != '8' && s.ch != '9' {
		for isDigit(s.ch) && s.ch != '8' && s.ch != '9' {
			s.readChar()
		}
		return s.src[start:s.position], true
	}
	r := s.ch
	s.readChar()
	return string(r), false
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// scanTemplate scans a template literal chunk starting at a backtick (head)
// or, when resuming after a `${...}` substitution, at a `}` (middle/tail).
// isHead distinguishes the two entry points.
func (s *Scanner) scanTemplate(start int, flags token.Flags, isHead bool) token.Token {
	s.readChar() // ` or }
	var b strings.Builder
	for {
		if s.atEOF() {
			flags |= token.Unterminated
			kind := token.TemplateTail
			if isHead {
				kind = token.NoSubstitutionTemplateLiteral
			}
			return token.Token{Kind: kind, Span: span(start, s.position), Flags: flags, Text: b.String()}
		}
		if s.ch == '`' {
			s.readChar()
			kind := token.NoSubstitutionTemplateLiteral
			if !isHead {
				kind = token.TemplateTail
			}
			return token.Token{Kind: kind, Span: span(start, s.position), Flags: flags, Text: b.String()}
		}
		if s.ch == '$' && s.peekChar() == '{' {
			s.readChar()
			s.readChar()
			kind := token.TemplateHead
			if !isHead {
				kind = token.TemplateMiddle
			}
			return token.Token{Kind: kind, Span: span(start, s.position), Flags: flags, Text: b.String()}
		}
		if s.ch == '\\' {
			esc, octal := s.scanEscapeSequence()
			if octal {
				flags |= token.OctalEscape
			}
			b.WriteString(esc)
			continue
		}
		b.WriteRune(s.ch)
		s.readChar()
	}
}

// ScanTemplateContinuation resumes template scanning after the parser has
// consumed the matching `}` of a substitution; call instead of Next when the
// parser knows it is back inside template text.
func (s *Scanner) ScanTemplateContinuation() token.Token {
	flags := token.FlagNone
	if s.precedingLineBreak {
		flags |= token.PrecedingLineBreak
	}
	// The `}` was the last token scanned, so it is the byte just before the
	// current position; step back onto it, where scanTemplate starts.
	start := s.position - 1
	s.position, s.readPosition, s.ch, s.chWidth = start, start+1, '}', 1
	return s.scanTemplate(start, flags, false)
}

func (s *Scanner) scanPunctuator(start int, flags token.Flags) token.Token {
	ch := s.ch
	two := func(next rune, k2 token.Kind, k1 token.Kind) token.Token {
		if s.peekChar() == next {
			s.readChar()
			s.readChar()
			return token.Token{Kind: k2, Span: span(start, s.position), Flags: flags, Text: s.src[start:s.position]}
		}
		s.readChar()
		return token.Token{Kind: k1, Span: span(start, s.position), Flags: flags, Text: s.src[start:s.position]}
	}

	switch ch {
	case '{':
		s.readChar()
		return tok(token.OpenBrace, start, s.position, flags)
	case '}':
		s.readChar()
		return tok(token.CloseBrace, start, s.position, flags)
	case '(':
		s.readChar()
		return tok(token.OpenParen, start, s.position, flags)
	case ')':
		s.readChar()
		return tok(token.CloseParen, start, s.position, flags)
	case '[':
		s.readChar()
		return tok(token.OpenBracket, start, s.position, flags)
	case ']':
		s.readChar()
		return tok(token.CloseBracket, start, s.position, flags)
	case ';':
		s.readChar()
		return tok(token.Semicolon, start, s.position, flags)
	case ',':
		s.readChar()
		return tok(token.Comma, start, s.position, flags)
	case '@':
		s.readChar()
		return tok(token.At, start, s.position, flags)
	case '~':
		s.readChar()
		return tok(token.Tilde, start, s.position, flags)
	case '.':
		if s.peekChar() == '.' && s.peekAt(1) == '.' {
			s.readChar()
			s.readChar()
			s.readChar()
			return tok(token.DotDotDot, start, s.position, flags)
		}
		s.readChar()
		return tok(token.Dot, start, s.position, flags)
	case '?':
		if s.peekChar() == '?' {
			s.readChar()
			if s.peekChar() == '=' {
				s.readChar()
				s.readChar()
				return tok(token.QuestionQuestionEquals, start, s.position, flags)
			}
			s.readChar()
			return tok(token.QuestionQuestion, start, s.position, flags)
		}
		if s.peekChar() == '.' && !isDigit(s.peekAt(1)) {
			s.readChar()
			s.readChar()
			return tok(token.QuestionDot, start, s.position, flags)
		}
		s.readChar()
		return tok(token.Question, start, s.position, flags)
	case ':':
		s.readChar()
		return tok(token.Colon, start, s.position, flags)
	case '=':
		if s.peekChar() == '=' {
			s.readChar()
			if s.peekChar() == '=' {
				s.readChar()
				s.readChar()
				return tok(token.EqualsEqualsEquals, start, s.position, flags)
			}
			s.readChar()
			return tok(token.EqualsEquals, start, s.position, flags)
		}
		if s.peekChar() == '>' {
			s.readChar()
			s.readChar()
			return tok(token.EqualsGreaterThan, start, s.position, flags)
		}
		s.readChar()
		return tok(token.Equals, start, s.position, flags)
	case '!':
		if s.peekChar() == '=' {
			s.readChar()
			if s.peekChar() == '=' {
				s.readChar()
				s.readChar()
				return tok(token.ExclamationEqualsEquals, start, s.position, flags)
			}
			s.readChar()
			return tok(token.ExclamationEquals, start, s.position, flags)
		}
		s.readChar()
		return tok(token.Exclamation, start, s.position, flags)
	case '+':
		if s.peekChar() == '+' {
			s.readChar()
			s.readChar()
			return tok(token.PlusPlus, start, s.position, flags)
		}
		return two('=', token.PlusEquals, token.Plus)
	case '-':
		if s.peekChar() == '-' {
			s.readChar()
			s.readChar()
			return tok(token.MinusMinus, start, s.position, flags)
		}
		return two('=', token.MinusEquals, token.Minus)
	case '*':
		if s.peekChar() == '*' {
			s.readChar()
			if s.peekChar() == '=' {
				s.readChar()
				s.readChar()
				return tok(token.AsteriskAsteriskEquals, start, s.position, flags)
			}
			s.readChar()
			return tok(token.AsteriskAsterisk, start, s.position, flags)
		}
		return two('=', token.AsteriskEquals, token.Asterisk)
	case '/':
		return two('=', token.SlashEquals, token.Slash)
	case '%':
		return two('=', token.PercentEquals, token.Percent)
	case '&':
		if s.peekChar() == '&' {
			s.readChar()
			if s.peekChar() == '=' {
				s.readChar()
				s.readChar()
				return tok(token.AmpersandAmpersandEquals, start, s.position, flags)
			}
			s.readChar()
			return tok(token.AmpersandAmpersand, start, s.position, flags)
		}
		return two('=', token.AmpersandEquals, token.Ampersand)
	case '|':
		if s.peekChar() == '|' {
			s.readChar()
			if s.peekChar() == '=' {
				s.readChar()
				s.readChar()
				return tok(token.BarBarEquals, start, s.position, flags)
			}
			s.readChar()
			return tok(token.BarBar, start, s.position, flags)
		}
		return two('=', token.BarEquals, token.Bar)
	case '^':
		return two('=', token.CaretEquals, token.Caret)
	case '<':
		if s.peekChar() == '<' {
			s.readChar()
			return two('=', token.LessThanLessThanEquals, token.LessThanLessThan)
		}
		return two('=', token.LessThanEquals, token.LessThan)
	case '>':
		if s.peekChar() == '>' {
			s.readChar()
			if s.peekChar() == '>' {
				s.readChar()
				return two('=', token.GreaterThanGreaterThanGreaterThanEquals, token.GreaterThanGreaterThanGreaterThan)
			}
			return two('=', token.GreaterThanGreaterThanEquals, token.GreaterThanGreaterThan)
		}
		return two('=', token.GreaterThanEquals, token.GreaterThan)
	default:
		s.readChar()
		return token.Token{Kind: token.Invalid, Span: span(start, s.position), Flags: flags, Text: string(ch)}
	}
}

func tok(k token.Kind, start, end int, flags token.Flags) token.Token {
	return token.Token{Kind: k, Span: span(start, end), Flags: flags}
}

// scanJSXText consumes raw JSX child text up to the next `<` or `{`.
func (s *Scanner) scanJSXText() token.Token {
	start := s.position
	for !s.atEOF() && s.ch != '<' && s.ch != '{' {
		s.readChar()
	}
	return token.Token{Kind: token.JSXText, Span: span(start, s.position), Text: s.src[start:s.position]}
}
