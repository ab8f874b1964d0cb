// Package arena implements the append-only, cache-dense storage the parser
// builds the AST into (spec §4.3). It deliberately knows nothing about AST
// node kinds: it is the generic "Vec-backed... one side-pool per family"
// mechanism that package ast composes into a typed tree.
package arena

// Index is an opaque handle into a Pool. Index(0) is reserved as the "no
// value" sentinel (spec's NodeIndex::NONE) for every pool, so pool 0 is
// always an unused placeholder entry.
type Index uint32

// None is the sentinel index meaning "no node" (a missing subterm produced
// by parser error recovery, or an absent optional child).
const None Index = 0

// IsNone reports whether i is the sentinel.
func (i Index) IsNone() bool { return i == None }

// Pool is an append-only vector of T, indexed by Index. Entries are never
// removed or reallocated in place: a returned Index stays valid for the
// lifetime of the Pool.
type Pool[T any] struct {
	items []T
}

// NewPool returns a Pool with slot 0 reserved for the None sentinel.
func NewPool[T any]() *Pool[T] {
	var zero T
	return &Pool[T]{items: []T{zero}}
}

// Add appends v and returns its Index.
func (p *Pool[T]) Add(v T) Index {
	p.items = append(p.items, v)
	return Index(len(p.items) - 1)
}

// Get returns the value at i. Callers that accept a possibly-None Index
// should check IsNone first; Get(None) returns the zero value.
func (p *Pool[T]) Get(i Index) T {
	return p.items[i]
}

// Ptr returns a pointer to the stored value, so callers can mutate data
// recorded during a later pass (e.g. the checker annotating a literal node
// with its widened type) without copying the whole struct.
func (p *Pool[T]) Ptr(i Index) *T {
	return &p.items[i]
}

// Len returns the number of real (non-sentinel) entries.
func (p *Pool[T]) Len() int {
	if len(p.items) == 0 {
		return 0
	}
	return len(p.items) - 1
}

// List is an ordered sequence of Index values plus a trailing-comma flag,
// used for statement lists, argument lists, type argument lists, and so on
// (spec's NodeList). It carries no span of its own.
type List struct {
	Items            []Index
	HasTrailingComma bool
}

// Len returns the number of elements, treating a None list as empty so
// callers never need a nil check.
func (l List) Len() int {
	return len(l.Items)
}
