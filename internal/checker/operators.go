package checker

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/token"
	"github.com/gotsc/gotsc/internal/types"
)

// typeOfBinary dispatches a BinaryExpression's operator token to its result
// type (spec §4.6): arithmetic operators produce number/bigint, comparisons
// and the `in`/`instanceof` relational operators produce boolean, logical
// and nullish-coalescing operators produce a union of operand types with the
// narrowing spec §4.6 describes for `&&`/`||`/`??`, and `=` produces its
// right-hand operand's type while compound and logical assignment operators
// produce the left-hand operand's type.
func (c *Checker) typeOfBinary(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetBinaryExpr(node)
	left := c.TypeOf(data.Left)
	right := c.TypeOf(data.Right)

	switch data.Operator {
	case token.Plus:
		if c.isStringLike(left) || c.isStringLike(right) {
			return types.StringT
		}
		if left == types.BigIntT || right == types.BigIntT {
			return types.BigIntT
		}
		return types.NumberT
	case token.Minus, token.Asterisk, token.AsteriskAsterisk, token.Slash, token.Percent,
		token.Ampersand, token.Bar, token.Caret, token.LessThanLessThan, token.GreaterThanGreaterThan,
		token.GreaterThanGreaterThanGreaterThan:
		if left == types.BigIntT && right == types.BigIntT {
			return types.BigIntT
		}
		return types.NumberT

	case token.LessThan, token.GreaterThan, token.LessThanEquals, token.GreaterThanEquals,
		token.EqualsEquals, token.ExclamationEquals, token.EqualsEqualsEquals, token.ExclamationEqualsEquals,
		token.InKeyword, token.InstanceOfKeyword:
		return types.BooleanT

	case token.AmpersandAmpersand:
		return c.Types.MakeUnion([]types.TypeId{c.Types.NarrowFalsy(left), right})
	case token.BarBar:
		return c.Types.MakeUnion([]types.TypeId{c.Types.NarrowTruthy(left), right})
	case token.QuestionQuestion:
		return c.Types.MakeUnion([]types.TypeId{c.nonNull(left), right})

	case token.Equals:
		if !c.Types.Assignable(right, left, c.Opts.StrictNullChecks) {
			c.addErrorf(diagnostics.CodeTypeNotAssignable, data.Right, "Type '%s' is not assignable to type '%s'.", c.Types.String(right), c.Types.String(left))
		}
		return right
	case token.PlusEquals, token.MinusEquals, token.AsteriskEquals, token.AsteriskAsteriskEquals,
		token.SlashEquals, token.PercentEquals, token.LessThanLessThanEquals, token.GreaterThanGreaterThanEquals,
		token.GreaterThanGreaterThanGreaterThanEquals, token.AmpersandEquals, token.BarEquals, token.CaretEquals:
		return left
	case token.AmpersandAmpersandEquals, token.BarBarEquals, token.QuestionQuestionEquals:
		return left

	default:
		return types.Any
	}
}

func (c *Checker) isStringLike(t types.TypeId) bool {
	if t == types.StringT {
		return true
	}
	return c.Types.Key(t).Kind == types.KindLiteralString
}

// typeOfUnary covers prefix/postfix unary operators: -/~ give number (or
// bigint on a bigint operand), unary + always gives number, `!` gives
// boolean, and
// ++/-- (both prefix and postfix) give the operand's numeric type.
func (c *Checker) typeOfUnary(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetUnaryExpr(node)
	operand := c.TypeOf(data.Operand)
	switch data.Operator {
	case token.Exclamation:
		return types.BooleanT
	case token.Minus, token.Tilde:
		if operand == types.BigIntT {
			return types.BigIntT
		}
		return types.NumberT
	case token.Plus:
		return types.NumberT
	case token.PlusPlus, token.MinusMinus:
		if operand == types.BigIntT {
			return types.BigIntT
		}
		return types.NumberT
	default:
		return types.Any
	}
}

// typeOfConditional gives `c ? a : b` the union of its two branches, spec
// §4.6's rule for the ternary.
func (c *Checker) typeOfConditional(node ast.NodeIndex) types.TypeId {
	data, _ := c.Tree.GetConditionalExpr(node)
	return c.Types.MakeUnion([]types.TypeId{c.TypeOf(data.WhenTrue), c.TypeOf(data.WhenFalse)})
}
