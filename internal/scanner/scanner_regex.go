package scanner

import "github.com/gotsc/gotsc/internal/token"

// RegexFlagErrorKind classifies a problem found while validating a regex
// literal's flag letters (spec §9's per-flag regex diagnostics).
type RegexFlagErrorKind uint8

const (
	RegexFlagDuplicate RegexFlagErrorKind = iota
	RegexFlagUnknown
	RegexFlagIncompatible // e.g. both 'u' and 'v' present
)

// RegexFlagError locates one invalid flag letter within the flags segment of
// a regex literal so the caller can build a Diagnostic with an exact span.
type RegexFlagError struct {
	Pos  uint32
	End  uint32
	Flag byte
	Kind RegexFlagErrorKind
}

var regexFlagBits = map[byte]token.Flags{
	'g': token.RegexGlobal,
	'i': token.RegexIgnoreCase,
	'm': token.RegexMultiline,
	's': token.RegexDotAll,
	'u': token.RegexUnicode,
	'v': token.RegexUnicodeSets,
	'y': token.RegexSticky,
	'd': token.RegexHasIndices,
}

// ScanRegex scans a regular expression literal starting at the current `/`.
// The parser calls this only after deciding (from grammar context) that `/`
// begins a regex rather than division or a `/=` operator.
func (s *Scanner) ScanRegex(start int) (token.Token, []RegexFlagError) {
	s.readChar() // opening '/'

	inClass := false
	for {
		if s.atEOF() || s.ch == '\n' {
			return token.Token{
				Kind: token.RegularExpressionLiteral, Span: span(start, s.position),
				Flags: token.Unterminated, Text: s.src[start:s.position],
			}, nil
		}
		if s.ch == '\\' {
			s.readChar()
			if !s.atEOF() {
				s.readChar()
			}
			continue
		}
		if s.ch == '[' {
			inClass = true
		} else if s.ch == ']' {
			inClass = false
		} else if s.ch == '/' && !inClass {
			s.readChar()
			break
		}
		s.readChar()
	}

	flagsStart := s.position
	for isIdentifierPart(s.ch) {
		s.readChar()
	}
	flagsText := s.src[flagsStart:s.position]

	var flags token.Flags
	var errs []RegexFlagError
	seen := map[byte]bool{}
	pos := flagsStart
	for i := 0; i < len(flagsText); i++ {
		c := flagsText[i]
		bit, known := regexFlagBits[c]
		switch {
		case !known:
			errs = append(errs, RegexFlagError{Pos: uint32(pos), End: uint32(pos + 1), Flag: c, Kind: RegexFlagUnknown})
		case seen[c]:
			errs = append(errs, RegexFlagError{Pos: uint32(pos), End: uint32(pos + 1), Flag: c, Kind: RegexFlagDuplicate})
		default:
			seen[c] = true
			flags |= bit
		}
		pos++
	}
	if seen['u'] && seen['v'] {
		errs = append(errs, RegexFlagError{Pos: uint32(flagsStart), End: uint32(s.position), Flag: 'v', Kind: RegexFlagIncompatible})
	}

	return token.Token{
		Kind: token.RegularExpressionLiteral, Span: span(start, s.position),
		Flags: flags, Text: s.src[start:s.position],
	}, errs
}
