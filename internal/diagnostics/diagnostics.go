// Package diagnostics defines the compiler's single error/warning/suggestion
// type and the per-compilation bag that collects them, per spec §6 and §7.
package diagnostics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gotsc/gotsc/internal/token"
)

// Severity classifies how a Diagnostic should be surfaced to the user.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeveritySuggestion
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeveritySuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// Code is a stable integer diagnostic code. The ranges follow spec §7:
// lexical/syntactic/grammar codes below 2000, binder codes in the 2000s,
// checker codes in the 2200-7999 range (mirroring familiar TS numbering so
// the concrete end-to-end scenarios in spec §8 line up), ICEs in the 8000s,
// and sound-mode checks in the 9000s.
type Code uint32

const (
	// Lexical.
	CodeUnterminatedString         Code = 1002
	CodeUnterminatedTemplate       Code = 1003
	CodeUnterminatedRegex          Code = 1161
	CodeUnterminatedComment        Code = 1010
	CodeDuplicateRegexFlag         Code = 1500
	CodeUnknownRegexFlag           Code = 1501
	CodeIncompatibleRegexFlags     Code = 1502

	// Syntactic / grammar.
	CodeExpectedToken      Code = 1005
	CodeExpectedSemicolon  Code = 1005
	CodeUnexpectedToken    Code = 1109
	CodeDuplicateModifier  Code = 1030
	CodeModifierOrder      Code = 1029
	CodeIllegalModifier    Code = 1042
	CodeDeclarationNotAllowedHere Code = 1184

	// Binder.
	CodeDuplicateDeclaration Code = 2300
	CodeCannotFindName       Code = 2304
	CodeConflictingMerge     Code = 2301

	// Checker / type errors (kept TS-numbering-compatible for the scenarios
	// in spec §8).
	CodeTypeNotAssignable  Code = 2322
	CodeNoOverloadMatches  Code = 2769
	CodePropertyMissing    Code = 2339
	CodeImplicitAny        Code = 7006
	CodeImplicitThis       Code = 2683
	CodeNoImplicitReturns  Code = 7030
	CodeUnreachableCode    Code = 7027
	CodeUnusedLocal        Code = 6133
	CodeUnusedParameter    Code = 6133

	// Module resolution.
	CodeCannotFindModule         Code = 2307
	CodeNoJSONModuleFlag         Code = 2732
	CodeWrongResolutionMode      Code = 2792
	CodeExtensionRequired        Code = 2834
	CodeExtensionSuggested       Code = 2835
	CodeTSExtensionNotAllowed    Code = 5097
	CodeModuleResolvedJSXOff     Code = 6142
	CodeDeclarationMissing       Code = 7016

	// Internal compiler errors.
	CodeInternalError Code = 8000

	// Sound-mode diagnostics (spec §9 open question).
	CodeSoundMutableArrayCovariance   Code = 9001
	CodeSoundMethodBivariance         Code = 9002
	CodeSoundExcessPropertyViaAlias   Code = 9003
	CodeSoundAnyEscape                Code = 9004
)

// RelatedInformation attaches secondary spans to a Diagnostic, e.g. pointing
// back at a conflicting declaration.
type RelatedInformation struct {
	File    string
	Span    token.Span
	Message string
}

// Diagnostic is the single error/warning/suggestion shape, per spec §6.
type Diagnostic struct {
	Code     Code
	File     string
	Span     token.Span
	Severity Severity
	Message  string
	Related  []RelatedInformation
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d: %s TS%d: %s", d.File, d.Span.Pos, d.Severity, d.Code, d.Message)
}

// New builds a Diagnostic. Kept as a constructor (rather than literal
// everywhere) so every call site is forced to supply a span.
func New(code Code, severity Severity, file string, span token.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		File:     file,
		Span:     span,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Errorf is a convenience constructor for SeverityError diagnostics.
func Errorf(code Code, file string, span token.Span, format string, args ...any) *Diagnostic {
	return New(code, SeverityError, file, span, format, args...)
}

// Bag collects diagnostics across every stage of a single compilation. A
// stage only ever appends; it never inspects or mutates another stage's
// entries, per spec §2's "shared bag" rule. Safe for concurrent Add from the
// parallel per-file parse+bind stage (spec §5).
type Bag struct {
	mu    sync.Mutex
	items []*Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d *Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, d)
}

// Addf builds and appends an error diagnostic in one call.
func (b *Bag) Addf(code Code, file string, span token.Span, format string, args ...any) {
	b.Add(Errorf(code, file, span, format, args...))
}

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Sorted returns every diagnostic ordered by (file, start offset), the
// deterministic authoritative order required by spec §7.
func (b *Bag) Sorted() []*Diagnostic {
	b.mu.Lock()
	out := make([]*Diagnostic, len(b.items))
	copy(out, b.items)
	b.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Span.Pos < out[j].Span.Pos
	})
	return out
}

// Len returns the number of diagnostics recorded so far.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
