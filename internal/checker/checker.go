// Package checker implements the query-based semantic checking pass (spec
// §4.6, Module 7): type_of(node), the strict-mode diagnostics that depend on
// it, reachability, and the sound-mode 9000-series checks. It consumes
// package binder's Result and package types' Interner; it does not itself
// intern or solve types, it only drives them against one file's AST.
//
// Grounded on the teacher's internal/analyzer package: a walker holding a
// TypeMap (here, the per-node memo table), an error set deduplicated by
// position+code, and an AnalysisMode distinguishing header-only passes from
// full-body passes with an IsHeadersAnalyzing-style in-progress flag for
// cycle detection (internal/analyzer/analyzer.go, internal/analyzer/
// declarations.go's "cycle in bodies is allowed - skip").
package checker

import (
	"github.com/gotsc/gotsc/internal/arena"
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/binder"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/types"
)

// Options mirrors the subset of tsc's compiler options that change checking
// behavior (spec §4.6). Every flag defaults to false/off, matching
// TypeScript's own non-strict default.
type Options struct {
	StrictNullChecks              bool
	StrictFunctionTypes           bool
	StrictBindCallApply           bool
	StrictPropertyInitialization  bool
	NoImplicitAny                 bool
	NoImplicitThis                bool
	UseUnknownInCatchVariables    bool
	NoUncheckedIndexedAccess      bool
	ExactOptionalPropertyTypes    bool
	NoImplicitReturns             bool
	NoUnusedLocals                bool
	NoUnusedParameters            bool
	AllowUnreachableCode          bool // nil/unset in tsc means "warn"; false here means "report"

	// Sound turns on the 9000-series checks in sound.go, which reject a
	// handful of classically-unsound TypeScript patterns (spec §9).
	Sound bool
}

// Strict returns the Options produced by tsc's `strict: true` umbrella,
// useful as the common starting point for a compilation.
func Strict() Options {
	return Options{
		StrictNullChecks:             true,
		StrictFunctionTypes:          true,
		StrictBindCallApply:          true,
		StrictPropertyInitialization: true,
		NoImplicitAny:                true,
		NoImplicitThis:               true,
		UseUnknownInCatchVariables:   true,
	}
}

type queryState uint8

const (
	stateNone queryState = iota
	stateInProgress
	stateDone
)

type memoEntry struct {
	state queryState
	typ   types.TypeId
}

// Checker holds everything one file's worth of type_of queries needs. One
// Checker is built per file (spec §5: per-file parallelism), sharing the
// Types interner and Atoms table across the whole compilation.
type Checker struct {
	Tree  *ast.Tree
	Bind  *binder.Result
	Types *types.Interner
	Atoms *atom.Interner
	Diags *diagnostics.Bag
	File  string
	Opts  Options

	nodeMemo   map[ast.NodeIndex]*memoEntry
	symbolMemo map[*binder.Symbol]*memoEntry // value-space: the type an identifier referencing sym carries
	typeMemo   map[*binder.Symbol]*memoEntry // type-space: the type a TypeReference to sym resolves to

	// enclosingFunctionReturn, set while type_of walks into a function body,
	// lets return-statement checking (noImplicitReturns, 2322 against the
	// declared return type) find its target without threading an explicit
	// parameter through every statement-level call.
	enclosingFunctionReturn []types.TypeId
}

// New creates a Checker for one file's bind Result.
func New(tree *ast.Tree, file string, bind *binder.Result, ti *types.Interner, atoms *atom.Interner, diags *diagnostics.Bag, opts Options) *Checker {
	return &Checker{
		Tree:       tree,
		Bind:       bind,
		Types:      ti,
		Atoms:      atoms,
		Diags:      diags,
		File:       file,
		Opts:       opts,
		nodeMemo:   make(map[ast.NodeIndex]*memoEntry),
		symbolMemo: make(map[*binder.Symbol]*memoEntry),
		typeMemo:   make(map[*binder.Symbol]*memoEntry),
	}
}

// Check runs every checking pass over the file's source-file root: it forces
// type_of on every statement reachable from root (triggering every
// diagnostic-producing side effect along the way), then runs reachability
// and, if Options.Sound is set, the sound-mode pass.
func (c *Checker) Check(root ast.NodeIndex) {
	sf, ok := c.Tree.GetSourceFile(root)
	if !ok {
		return
	}
	list := c.Tree.List(sf.Statements)
	for _, stmt := range list.Items {
		c.checkStatement(stmt)
	}
	c.CheckReachability(root)
	if c.Opts.Sound {
		c.CheckSound(root)
	}
}

func (c *Checker) addErrorf(code diagnostics.Code, node ast.NodeIndex, format string, args ...any) {
	span := c.Tree.Node(node).Span()
	c.Diags.Addf(code, c.File, span, format, args...)
}

func (c *Checker) resolveSym(node ast.NodeIndex) *binder.Symbol {
	return c.Bind.Symbols[node]
}

var _ = arena.None // retained: most *.go files in this package key maps by arena.Index (ast.NodeIndex)
