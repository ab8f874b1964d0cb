// Package atom interns identifier and literal text into small integer
// handles so that every later stage of the compiler compares names by
// integer equality instead of string comparison.
package atom

import (
	"hash/fnv"
	"sync"
)

// Atom is a stable handle for an interned string. Atom(0) is the empty-string
// sentinel and is always present without being interned.
type Atom uint32

// Empty is the sentinel atom for the empty string.
const Empty Atom = 0

const shardCount = 64

type shard struct {
	mu      sync.RWMutex
	byText  map[string]Atom
	strings []string // not written; atom texts are stored in Interner.byID
}

// Interner deduplicates string text into Atoms. It is safe for concurrent
// use from many goroutines (one parser per file, scanning in parallel, all
// sharing a single Interner for the compilation).
type Interner struct {
	shards [shardCount]*shard
	// global sequence guarantees atoms are unique across shards; guarded by
	// seqMu rather than an atomic so that the two-step "allocate id, store
	// text" sequence is observed consistently by readers.
	seqMu sync.Mutex
	seq    uint32
	byID   []string // seq -> text, index 0 is Empty
	byIDMu sync.RWMutex
}

// New creates an Interner with the empty-string sentinel pre-registered.
func New() *Interner {
	in := &Interner{}
	for i := range in.shards {
		in.shards[i] = &shard{byText: make(map[string]Atom, 256)}
	}
	in.byID = append(in.byID, "")
	return in
}

func (in *Interner) shardFor(s string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return in.shards[h.Sum32()%shardCount]
}

// Intern returns the Atom for s, allocating a new one on first sight.
// intern(a) == intern(b) iff a == b.
func (in *Interner) Intern(s string) Atom {
	if s == "" {
		return Empty
	}
	sh := in.shardFor(s)

	sh.mu.RLock()
	if a, ok := sh.byText[s]; ok {
		sh.mu.RUnlock()
		return a
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if a, ok := sh.byText[s]; ok {
		return a
	}

	in.seqMu.Lock()
	in.seq++
	id := Atom(in.seq)
	in.byIDMu.Lock()
	in.byID = append(in.byID, s)
	in.byIDMu.Unlock()
	in.seqMu.Unlock()

	sh.byText[s] = id
	return id
}

// Resolve returns the text for an Atom. The empty atom resolves to "" and is
// reported as absent by Lookup, per spec §4.1.
func (in *Interner) Resolve(a Atom) string {
	if a == Empty {
		return ""
	}
	in.byIDMu.RLock()
	defer in.byIDMu.RUnlock()
	if int(a) >= len(in.byID) {
		return ""
	}
	return in.byID[a]
}

// Lookup reports whether s has already been interned, without allocating a
// new atom for it.
func (in *Interner) Lookup(s string) (Atom, bool) {
	if s == "" {
		return Empty, false
	}
	sh := in.shardFor(s)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	a, ok := sh.byText[s]
	return a, ok
}

// Len returns the number of distinct non-empty strings interned so far.
func (in *Interner) Len() int {
	in.byIDMu.RLock()
	defer in.byIDMu.RUnlock()
	return len(in.byID) - 1
}
