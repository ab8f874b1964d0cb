// Package token defines the lexical token kinds and flags produced by the
// scanner and consumed by the parser.
package token

import "fmt"

// Kind identifies the syntactic category of a token.
type Kind uint16

const (
	Invalid Kind = iota
	EOF

	// Names and literals.
	Identifier
	PrivateIdentifier // #name
	NumericLiteral
	BigIntLiteral
	StringLiteral
	NoSubstitutionTemplateLiteral
	TemplateHead
	TemplateMiddle
	TemplateTail
	RegularExpressionLiteral
	JSXText

	// Punctuators.
	OpenBrace
	CloseBrace
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	Dot
	DotDotDot
	Semicolon
	Comma
	LessThan
	GreaterThan
	LessThanEquals
	GreaterThanEquals
	EqualsEquals
	ExclamationEquals
	EqualsEqualsEquals
	ExclamationEqualsEquals
	Plus
	Minus
	Asterisk
	AsteriskAsterisk
	Slash
	Percent
	PlusPlus
	MinusMinus
	LessThanLessThan
	GreaterThanGreaterThan
	GreaterThanGreaterThanGreaterThan
	Ampersand
	Bar
	Caret
	Exclamation
	Tilde
	AmpersandAmpersand
	BarBar
	QuestionQuestion
	Question
	QuestionDot
	Colon
	Equals
	PlusEquals
	MinusEquals
	AsteriskEquals
	AsteriskAsteriskEquals
	SlashEquals
	PercentEquals
	LessThanLessThanEquals
	GreaterThanGreaterThanEquals
	GreaterThanGreaterThanGreaterThanEquals
	AmpersandEquals
	BarEquals
	CaretEquals
	AmpersandAmpersandEquals
	BarBarEquals
	QuestionQuestionEquals
	EqualsGreaterThan
	At

	// Keywords (identifier-shaped reserved words).
	BreakKeyword
	CaseKeyword
	CatchKeyword
	ClassKeyword
	ConstKeyword
	ContinueKeyword
	DebuggerKeyword
	DefaultKeyword
	DeleteKeyword
	DoKeyword
	ElseKeyword
	EnumKeyword
	ExportKeyword
	ExtendsKeyword
	FalseKeyword
	FinallyKeyword
	ForKeyword
	FunctionKeyword
	IfKeyword
	ImplementsKeyword
	ImportKeyword
	InKeyword
	InstanceOfKeyword
	NewKeyword
	NullKeyword
	ReturnKeyword
	SuperKeyword
	SwitchKeyword
	ThisKeyword
	ThrowKeyword
	TrueKeyword
	TryKeyword
	TypeOfKeyword
	VarKeyword
	VoidKeyword
	WhileKeyword
	WithKeyword
	YieldKeyword

	// Contextual keywords.
	AnyKeyword
	AsKeyword
	AssertsKeyword
	AsyncKeyword
	AwaitKeyword
	BooleanKeyword
	DeclareKeyword
	GetKeyword
	InferKeyword
	InterfaceKeyword
	IsKeyword
	KeyOfKeyword
	LetKeyword
	ModuleKeyword
	NamespaceKeyword
	NeverKeyword
	NumberKeyword
	OfKeyword
	OverrideKeyword
	PrivateKeyword
	ProtectedKeyword
	PublicKeyword
	ReadonlyKeyword
	RequireKeyword
	SatisfiesKeyword
	SetKeyword
	StaticKeyword
	StringKeyword
	SymbolKeyword
	TypeKeyword
	UndefinedKeyword
	UniqueKeyword
	UnknownKeyword
	FromKeyword
	GlobalKeyword
	BigIntKeyword
	ObjectKeyword
	AbstractKeyword
	AccessorKeyword
	OutKeyword

	// JSX.
	JSXOpenFragment
	JSXCloseFragment

	// Sentinel used to close the enumeration; NOT a valid token.
	maxKind
)

var names = map[Kind]string{
	Invalid:                   "invalid",
	EOF:                       "end of file",
	Identifier:                "identifier",
	PrivateIdentifier:         "private identifier",
	NumericLiteral:            "numeric literal",
	BigIntLiteral:             "bigint literal",
	StringLiteral:             "string literal",
	RegularExpressionLiteral:  "regular expression literal",
	NoSubstitutionTemplateLiteral: "template literal",
	TemplateHead:              "template head",
	TemplateMiddle:            "template middle",
	TemplateTail:              "template tail",
	OpenBrace:                 "{",
	CloseBrace:                "}",
	OpenParen:                 "(",
	CloseParen:                ")",
	OpenBracket:               "[",
	CloseBracket:              "]",
	Semicolon:                 ";",
	Comma:                     ",",
	Colon:                     ":",
	Dot:                       ".",
	DotDotDot:                 "...",
	EqualsGreaterThan:         "=>",
}

// String returns a human-readable name for diagnostics. Unregistered kinds
// fall back to a numeric label rather than panicking.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint16(k))
}

// IsKeyword reports whether k lexes from an identifier-shaped reserved word.
func (k Kind) IsKeyword() bool {
	return k >= BreakKeyword && k <= OutKeyword
}

// Flags is a bitset of per-token attributes that do not warrant their own
// Kind, mirroring the scanner contract in spec §4.2.
type Flags uint32

const (
	FlagNone Flags = 0
	// PrecedingLineBreak is set when a line terminator occurred in the
	// trivia preceding this token. Consumed by ASI and restricted
	// productions.
	PrecedingLineBreak Flags = 1 << iota
	// Unterminated is set on open string, template and regex literals; the
	// scanner still produces a token so the parser can continue. An
	// unterminated block comment is skipped to end of file without it.
	Unterminated
	// ContainsEscape marks identifiers containing a `\uXXXX` or `\u{X...}`
	// escape, which affects keyword recognition (escaped keywords are never
	// keywords) and reserved-word diagnostics. String literals never carry it.
	ContainsEscape
	// OctalEscape marks legacy octal escape sequences in string literals
	// (illegal in strict mode / template literals).
	OctalEscape

	// Numeric literal shape flags (mutually informative, not mutually
	// exclusive with each other beyond what the grammar allows).
	HexSpecifier
	OctalSpecifier
	BinarySpecifier
	NumericSeparator
	Scientific

	// Regex flag bits, one per letter actually present on the literal.
	RegexGlobal
	RegexIgnoreCase
	RegexMultiline
	RegexDotAll
	RegexUnicode
	RegexUnicodeSets
	RegexSticky
	RegexHasIndices

	// Set for the first token of a file when it is a shebang line.
	Shebang
)

// Has reports whether every bit in mask is set in f.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Span is a half-open byte-offset range [Pos, End) into the source text.
type Span struct {
	Pos, End uint32
}

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 { return s.End - s.Pos }

// Contains reports whether offset lies within the span.
func (s Span) Contains(offset uint32) bool { return offset >= s.Pos && offset < s.End }

// Token is the immutable value produced by the scanner for one lexeme.
type Token struct {
	Kind  Kind
	Span  Span
	Flags Flags
	// Text is set by the scanner for identifiers, keywords, literals, shebang
	// lines, JSX text and the operators built by its two-character helper
	// (for string and template literals it holds the decoded value);
	// punctuators built by tok() leave it empty. The parser interns
	// identifier and literal text from here into the node arena's side pools.
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s@[%d,%d)", t.Kind, t.Span.Pos, t.Span.End)
}
