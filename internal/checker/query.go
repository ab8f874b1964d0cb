package checker

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/binder"
	"github.com/gotsc/gotsc/internal/types"
)

// TypeOf is the memoized type_of(node) query (spec §4.6, Module 7's
// centerpiece): the first call for a given node computes and caches the
// result, every later call returns the cached TypeId directly. A node
// re-entered while still in progress (a recursive function calling itself,
// a self-referential interface) gets types.Any back rather than recursing
// forever, grounded on the teacher's IsHeadersAnalyzing/IsBodiesAnalyzing
// in-progress flag and its "cycle in bodies is allowed - skip"
// (internal/analyzer/declarations.go).
func (c *Checker) TypeOf(node ast.NodeIndex) types.TypeId {
	if node.IsNone() {
		return types.Any
	}
	entry, ok := c.nodeMemo[node]
	if !ok {
		entry = &memoEntry{state: stateInProgress}
		c.nodeMemo[node] = entry
		entry.typ = c.typeOfExpression(node)
		entry.state = stateDone
		return entry.typ
	}
	switch entry.state {
	case stateInProgress:
		return types.Any
	default:
		return entry.typ
	}
}

// SymbolType resolves the value-space type of a Symbol: what an identifier
// expression referencing sym evaluates to (a variable's widened type, a
// function's callable signature, a class's constructor surface, ...). This
// is the analogue of TypeOf for declaration identity rather than a single
// node.
func (c *Checker) SymbolType(sym *binder.Symbol) types.TypeId {
	return memoLookup(c.symbolMemo, sym, c.typeOfDeclaration)
}

// DeclaredType resolves the type-space meaning of sym: what a TypeReference
// naming sym resolves to (a class/interface's instance shape, a type
// alias's aliased type, an enum's member-value type). Kept separate from
// SymbolType because a class/enum symbol carries two different types
// depending on which space referenced it (spec §4.5's "a single Symbol can
// occupy more than one meaning").
func (c *Checker) DeclaredType(sym *binder.Symbol) types.TypeId {
	return memoLookup(c.typeMemo, sym, c.typeOfTypeDeclaration)
}

func memoLookup(table map[*binder.Symbol]*memoEntry, sym *binder.Symbol, compute func(*binder.Symbol) types.TypeId) types.TypeId {
	if sym == nil {
		return types.Any
	}
	entry, ok := table[sym]
	if !ok {
		entry = &memoEntry{state: stateInProgress}
		table[sym] = entry
		entry.typ = compute(sym)
		entry.state = stateDone
		return entry.typ
	}
	if entry.state == stateInProgress {
		return types.Any
	}
	return entry.typ
}
