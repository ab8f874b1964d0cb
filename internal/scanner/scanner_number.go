package scanner

import "github.com/gotsc/gotsc/internal/token"

// scanNumber scans decimal, hex, octal, and binary numeric literals, their
// BigInt `n` suffix, numeric separators (`1_000`), and the exponent suffix
// (spec §4.2's numeric literal shape flags).
func (s *Scanner) scanNumber(start int, flags token.Flags) token.Token {
	if s.ch == '0' && (s.peekChar() == 'x' || s.peekChar() == 'X') {
		s.readChar()
		s.readChar()
		flags |= token.HexSpecifier
		s.scanDigits(isHexDigit, &flags)
		return s.finishNumber(start, flags)
	}
	if s.ch == '0' && (s.peekChar() == 'o' || s.peekChar() == 'O') {
		s.readChar()
		s.readChar()
		flags |= token.OctalSpecifier
		s.scanDigits(isOctalDigit, &flags)
		return s.finishNumber(start, flags)
	}
	if s.ch == '0' && (s.peekChar() == 'b' || s.peekChar() == 'B') {
		s.readChar()
		s.readChar()
		flags |= token.BinarySpecifier
		s.scanDigits(isBinaryDigit, &flags)
		return s.finishNumber(start, flags)
	}

	s.scanDigits(isDigit, &flags)

	if s.ch == '.' {
		s.readChar()
		s.scanDigits(isDigit, &flags)
	}

	if s.ch == 'e' || s.ch == 'E' {
		peek := s.peekChar()
		if isDigit(peek) || ((peek == '+' || peek == '-') && isDigit(s.peekAt(1))) {
			flags |= token.Scientific
			s.readChar()
			if s.ch == '+' || s.ch == '-' {
				s.readChar()
			}
			s.scanDigits(isDigit, &flags)
		}
	}

	return s.finishNumber(start, flags)
}

func (s *Scanner) finishNumber(start int, flags token.Flags) token.Token {
	if s.ch == 'n' {
		s.readChar()
		return token.Token{Kind: token.BigIntLiteral, Span: span(start, s.position), Flags: flags, Text: s.src[start:s.position]}
	}
	return token.Token{Kind: token.NumericLiteral, Span: span(start, s.position), Flags: flags, Text: s.src[start:s.position]}
}

func (s *Scanner) scanDigits(pred func(rune) bool, flags *token.Flags) {
	for pred(s.ch) || s.ch == '_' {
		if s.ch == '_' {
			*flags |= token.NumericSeparator
		}
		s.readChar()
	}
}

func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }
func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }
