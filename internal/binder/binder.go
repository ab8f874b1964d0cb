// Package binder implements the single pass over the AST that allocates and
// merges Symbols, builds the scope tree, resolves references structurally,
// and annotates reachability/control-flow anchors for the checker (spec
// §4.5). It knows nothing about types: type_of belongs to package checker.
package binder

import (
	"github.com/gotsc/gotsc/internal/ast"
	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/diagnostics"
)

// Meaning is the table a Symbol lives in: value, type, or namespace space.
// A single declaration can occupy more than one (a class occupies both
// value and type space under the same Symbol).
type Meaning uint8

const (
	MeaningValue Meaning = 1 << iota
	MeaningType
	MeaningNamespace
)

func meaningBits(m Meaning) []Meaning {
	var out []Meaning
	if m&MeaningValue != 0 {
		out = append(out, MeaningValue)
	}
	if m&MeaningType != 0 {
		out = append(out, MeaningType)
	}
	if m&MeaningNamespace != 0 {
		out = append(out, MeaningNamespace)
	}
	return out
}

// SymbolFlags classifies both what kind of declaration produced a Symbol
// (used for merge-legality checks) and the declaration-site attributes
// spec §4.5's last bullet asks the binder to flag.
type SymbolFlags uint32

const (
	FlagVariable SymbolFlags = 1 << iota // var, function-scoped
	FlagBlockScopedVariable              // let/const
	FlagFunction
	FlagClass
	FlagInterface
	FlagRegularEnum
	FlagConstEnum
	FlagTypeAlias
	FlagNamespace
	FlagImport
	FlagParameter

	FlagOptional
	FlagReadonly
	FlagStatic
	FlagAbstract
	FlagExported
	FlagAmbient
	FlagDefaultExport
)

// kindMask isolates the "what declared this" bits from the attribute bits,
// so merge legality only ever compares declaration shape.
const kindMask = FlagVariable | FlagBlockScopedVariable | FlagFunction | FlagClass |
	FlagInterface | FlagRegularEnum | FlagConstEnum | FlagTypeAlias | FlagNamespace |
	FlagImport | FlagParameter

func (f SymbolFlags) Has(g SymbolFlags) bool { return f&g != 0 }

// Symbol is the merged identity of one or more declarations sharing a name
// and meaning in a scope.
type Symbol struct {
	Name             atom.Atom
	Meaning          Meaning
	Flags            SymbolFlags
	Declarations     []ast.NodeIndex
	ValueDeclaration ast.NodeIndex // the declaration carrying the runtime value, if any
	Members          *Scope        // class/interface/enum/type-literal member table
	Exports          *Scope        // module/namespace export table
}

// ScopeKind distinguishes why a Scope was pushed; the checker's narrowing
// pass and the lowering stage both care which kind encloses a node.
type ScopeKind uint8

const (
	ScopeSourceFile ScopeKind = iota
	ScopeModule                // namespace/module body
	ScopeFunction
	ScopeBlock
	ScopeClass
	ScopeConditionalExtends // a conditional type's extends clause, for `infer`
	ScopeTypeParameters     // type alias / function-type / mapped-type parameter list
)

// Scope is one entry in the lexical scope tree. Lookup walks the outer
// chain: check this scope's table, else delegate to outer — the same
// pattern the teacher's symbol table uses for its nested environments.
type Scope struct {
	Kind ScopeKind
	Node ast.NodeIndex
	outer *Scope

	values     map[atom.Atom]*Symbol
	types      map[atom.Atom]*Symbol
	namespaces map[atom.Atom]*Symbol
}

func newScope(kind ScopeKind, node ast.NodeIndex, outer *Scope) *Scope {
	return &Scope{
		Kind:       kind,
		Node:       node,
		outer:      outer,
		values:     make(map[atom.Atom]*Symbol),
		types:      make(map[atom.Atom]*Symbol),
		namespaces: make(map[atom.Atom]*Symbol),
	}
}

func (s *Scope) table(m Meaning) map[atom.Atom]*Symbol {
	switch m {
	case MeaningValue:
		return s.values
	case MeaningType:
		return s.types
	case MeaningNamespace:
		return s.namespaces
	default:
		panic("binder: table: meaning must be a single bit")
	}
}

// Lookup walks from s outward, returning the first symbol found under any
// of meaning's bits. Cross-file import resolution is not attempted here
// (spec §4.5): an unresolved name is left nil for the caller to diagnose.
func (s *Scope) Lookup(name atom.Atom, meaning Meaning) *Symbol {
	for sc := s; sc != nil; sc = sc.outer {
		for _, m := range meaningBits(meaning) {
			if sym, ok := sc.table(m)[name]; ok {
				return sym
			}
		}
	}
	return nil
}

// LookupLocal checks only this scope's tables, without walking outer.
func (s *Scope) LookupLocal(name atom.Atom, meaning Meaning) *Symbol {
	for _, m := range meaningBits(meaning) {
		if sym, ok := s.table(m)[name]; ok {
			return sym
		}
	}
	return nil
}

// declare allocates or merges a Symbol for name/meaning in s, recording
// node as one of its declarations. It enforces the merge-legality rules
// spec §4.5 calls out (class+interface OK, class+class error) via
// mergeAllowed, and always still records the declaration for error
// recovery even when the merge is illegal.
func (s *Scope) declare(name atom.Atom, meaning Meaning, flags SymbolFlags, node ast.NodeIndex) (*Symbol, bool) {
	var existing *Symbol
	for _, m := range meaningBits(meaning) {
		if sym, ok := s.table(m)[name]; ok {
			existing = sym
			break
		}
	}

	if existing == nil {
		sym := &Symbol{Name: name, Meaning: meaning, Flags: flags, Declarations: []ast.NodeIndex{node}}
		if flags.Has(FlagVariable | FlagBlockScopedVariable | FlagFunction | FlagClass | FlagParameter) {
			sym.ValueDeclaration = node
		}
		for _, m := range meaningBits(meaning) {
			s.table(m)[name] = sym
		}
		return sym, true
	}

	ok := mergeAllowed(existing.Flags, flags)
	existing.Meaning |= meaning
	existing.Flags |= flags
	existing.Declarations = append(existing.Declarations, node)
	if existing.ValueDeclaration.IsNone() && flags.Has(FlagVariable|FlagBlockScopedVariable|FlagFunction|FlagClass|FlagParameter) {
		existing.ValueDeclaration = node
	}
	for _, m := range meaningBits(meaning) {
		if _, present := s.table(m)[name]; !present {
			s.table(m)[name] = existing
		}
	}
	return existing, ok
}

// mergeAllowed compares only the kindMask bits of two flag sets against the
// declaration-merging combinations spec §4.5 names. This is a deliberately
// pragmatic subset of TypeScript's full merge table (see DESIGN.md), not an
// exhaustive reimplementation of every legal/illegal pairing.
func mergeAllowed(existing, incoming SymbolFlags) bool {
	ex := existing & kindMask
	nw := incoming & kindMask

	switch {
	case ex&FlagFunction != 0 && nw&FlagFunction != 0:
		return true // overload signatures, or a later body
	case ex&FlagVariable != 0 && nw&FlagVariable != 0:
		return true // repeated `var`
	case ex&FlagInterface != 0 && nw&FlagInterface != 0:
		return true // interface reopening
	case ex&FlagClass != 0 && nw&FlagInterface != 0:
		return true
	case ex&FlagInterface != 0 && nw&FlagClass != 0:
		return true
	case ex&FlagRegularEnum != 0 && nw&FlagRegularEnum != 0:
		return true
	case ex&FlagConstEnum != 0 && nw&FlagConstEnum != 0:
		return true
	case ex&FlagNamespace != 0 && nw&(FlagNamespace|FlagClass|FlagFunction|FlagRegularEnum) != 0:
		return true
	case ex&(FlagClass|FlagFunction|FlagRegularEnum) != 0 && nw&FlagNamespace != 0:
		return true
	default:
		return false
	}
}

// AnchorKind classifies a recorded control-flow anchor.
type AnchorKind uint8

const (
	AnchorBranch AnchorKind = iota
	AnchorLoop
	AnchorThrow
	AnchorLabeledJump
)

// CFGAnchor is one point of interest for the checker's narrowing pass.
type CFGAnchor struct {
	Kind AnchorKind
	Node ast.NodeIndex
}

// Result is everything one Bind call produces for a single file.
type Result struct {
	Tree *ast.Tree
	Root *Scope

	// Symbols maps both declaration identifiers and resolved references to
	// their Symbol, per spec §4.5 ("record node -> symbol" for each).
	Symbols map[ast.NodeIndex]*Symbol

	// Reachable records, per statement node, whether control flow can reach
	// it at all.
	Reachable map[ast.NodeIndex]bool

	Anchors []CFGAnchor
}

// Bind runs the binder over one parsed file, given its root KindSourceFile
// node, and returns the scope tree plus every annotation spec §4.5
// requires.
func Bind(tree *ast.Tree, file string, root ast.NodeIndex, diags *diagnostics.Bag) *Result {
	b := &binder{
		tree: tree,
		file: file,
		diags: diags,
		result: &Result{
			Tree:      tree,
			Symbols:   make(map[ast.NodeIndex]*Symbol),
			Reachable: make(map[ast.NodeIndex]bool),
		},
	}
	b.scope = newScope(ScopeSourceFile, root, nil)
	b.result.Root = b.scope

	sf, ok := tree.GetSourceFile(root)
	if !ok {
		return b.result
	}
	b.bindStatementList(sf.Statements)
	return b.result
}
