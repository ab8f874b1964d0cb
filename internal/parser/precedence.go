package parser

import "github.com/gotsc/gotsc/internal/token"

// binaryPrecedence returns the binding power of a binary operator token, or
// 0 if k is not a binary operator at all (spec §4.4's operator-precedence
// table, collapsed to one climbing loop rather than one grammar rule per
// level).
func binaryPrecedence(k token.Kind, disallowIn bool) int {
	switch k {
	case token.BarBar, token.QuestionQuestion:
		return 4
	case token.AmpersandAmpersand:
		return 5
	case token.Bar:
		return 6
	case token.Caret:
		return 7
	case token.Ampersand:
		return 8
	case token.EqualsEquals, token.ExclamationEquals, token.EqualsEqualsEquals, token.ExclamationEqualsEquals:
		return 9
	case token.LessThan, token.GreaterThan, token.LessThanEquals, token.GreaterThanEquals, token.InstanceOfKeyword:
		return 10
	case token.InKeyword:
		if disallowIn {
			return 0
		}
		return 10
	case token.LessThanLessThan, token.GreaterThanGreaterThan, token.GreaterThanGreaterThanGreaterThan:
		return 11
	case token.Plus, token.Minus:
		return 12
	case token.Asterisk, token.Slash, token.Percent:
		return 13
	case token.AsteriskAsterisk:
		return 14
	default:
		return 0
	}
}

func isAssignmentOperator(k token.Kind) bool {
	switch k {
	case token.Equals, token.PlusEquals, token.MinusEquals, token.AsteriskEquals, token.AsteriskAsteriskEquals,
		token.SlashEquals, token.PercentEquals, token.LessThanLessThanEquals, token.GreaterThanGreaterThanEquals,
		token.GreaterThanGreaterThanGreaterThanEquals, token.AmpersandEquals, token.BarEquals, token.CaretEquals,
		token.AmpersandAmpersandEquals, token.BarBarEquals, token.QuestionQuestionEquals:
		return true
	default:
		return false
	}
}

func isRightAssociative(k token.Kind) bool {
	return k == token.AsteriskAsterisk
}
