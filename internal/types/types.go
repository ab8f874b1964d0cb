// Package types implements the Type Interner and the pure, structural half
// of the Type Solver (spec §3's TypeId/TypeKey data model and §4.6's
// assignable/identical/instantiate/narrow/resolve_overload/
// index_signature_resolve operations). It knows nothing about the AST or
// about checking a program: package checker drives this package's queries
// from type_of(node).
package types

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"

	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/binder"
)

// TypeId is a 32-bit handle into the Type Interner (spec §3).
type TypeId uint32

// Well-known ids are reserved below any id the interner allocates itself,
// so every compilation shares the same small-integer identity for them.
const (
	Invalid TypeId = iota
	Any
	Unknown
	Never
	Void
	Null
	Undefined
	StringT
	NumberT
	BigIntT
	BooleanT
	SymbolT
	ObjectT

	firstAllocated // first id the interner hands out itself
)

// Kind tags which fields of a TypeKey are meaningful, mirroring spec §3's
// closed TypeKey sum.
type Kind uint8

const (
	// KindNone is the Kind of the zero TypeKey that Key returns for the
	// well-known ids; no interned key has it.
	KindNone Kind = iota
	KindLiteralString
	KindLiteralNumber
	KindLiteralBigInt
	KindLiteralBoolean
	KindUniqueSymbol
	KindArray
	KindTuple
	KindReadonlyTuple
	KindUnion
	KindIntersection
	KindObject
	KindObjectWithIndex
	KindCallable
	KindTypeReference
	KindTypeParameter
	KindConditional
	KindMapped
	KindIndexedAccess
	KindIndex // keyof
	KindTemplateLiteral
	KindTypeQuery
	KindModuleNamespace
	KindLazy
	KindEnum
)

// DefId names a type definition (a class/interface/type-alias/enum
// declaration's Symbol) for Lazy-placeholder cycle breaking and for
// TypeParameter/Conditional/Enum identity, per spec §3 and §9.
type DefId struct {
	Sym *binder.Symbol
}

// MappedModifiers carries the +/-readonly and +/-? modifiers a mapped type
// can apply to every property it produces.
type MappedModifiers struct {
	ReadonlyPlus, ReadonlyMinus bool
	OptionalPlus, OptionalMinus bool
}

// TemplateLiteralPart is one `${Type}` hole or literal chunk of a template
// literal type, in source order; Literal is valid when Type is Invalid.
type TemplateLiteralPart struct {
	Literal string
	Type    TypeId
}

// TypeKey is the structural content behind every TypeId other than the
// reserved well-known ids above. Only the fields relevant to Kind are
// populated; this single struct (rather than one Go type per variant)
// keeps interning a plain content-equality problem, the same way the
// teacher's TCon/TApp/TUnion/... family is compared via String().
type TypeKey struct {
	Kind Kind

	LitString string
	LitNumber string // formatted so NaN/-0/Infinity compare as written
	LitBigInt string
	LitBool   bool

	Elem     TypeId // Array / Readonly(tuple)'s element carrier is Tuple itself
	Tuple    TupleShape
	Set      []TypeId // Union / Intersection, canonical sorted+deduped
	Object   ObjectShapeId
	Callable CallableShapeId

	RefSymbol *binder.Symbol
	Args      []TypeId // TypeReference / instantiation arguments

	Def        DefId
	Constraint TypeId
	Default    TypeId

	Check, Extends, True, False TypeId // Conditional

	Param     TypeId // Mapped: the synthesized type-parameter TypeId (keyof constraint)
	NameType  TypeId
	ValueType TypeId
	Modifiers MappedModifiers

	Object2 TypeId // IndexedAccess: object
	Index   TypeId // IndexedAccess: index: also reused for Index(of) below
	Of      TypeId // Index (keyof T)

	Parts []TemplateLiteralPart

	ModuleSymbol *binder.Symbol

	EnumMembers map[atom.Atom]EnumMemberValue
}

// EnumMemberValue is one resolved `Enum(def_id, member -> value map)` entry.
type EnumMemberValue struct {
	Name        atom.Atom
	StringValue string
	NumberValue float64
	IsString    bool
}

func wellKnownName(id TypeId) string {
	switch id {
	case Any:
		return "any"
	case Unknown:
		return "unknown"
	case Never:
		return "never"
	case Void:
		return "void"
	case Null:
		return "null"
	case Undefined:
		return "undefined"
	case StringT:
		return "string"
	case NumberT:
		return "number"
	case BigIntT:
		return "bigint"
	case BooleanT:
		return "boolean"
	case SymbolT:
		return "symbol"
	case ObjectT:
		return "object"
	default:
		return ""
	}
}

const shardCount = 64

type shard struct {
	mu         sync.RWMutex
	byFingerprint map[string]TypeId
}

// Interner deduplicates TypeKeys into TypeIds (spec §3: "interned TypeIds
// are deduplicated: equal keys <=> equal ids") and owns the structural
// ObjectShape/CallableShape interners that TypeKey.Object/Callable point
// into. Sharded the same way package atom shards string interning, so
// concurrent per-file type resolution (spec §5) never serializes on a
// single lock.
type Interner struct {
	shards [shardCount]*shard

	seqMu sync.Mutex
	seq   uint32

	byIDMu sync.RWMutex
	byID   []TypeKey // index firstAllocated.. ; index 0..firstAllocated-1 unused

	Objects   *ObjectShapeInterner
	Callables *CallableShapeInterner

	// Atoms resolves the atom.Atom names carried by Symbols/Members back to
	// text, for String() rendering only; nothing else in this package keys
	// off string content.
	Atoms *atom.Interner

	// lazy maps a DefId to the TypeId finally substituted for its Lazy
	// placeholder once resolution completes (spec §9 "atomically substitute").
	lazyMu sync.Mutex
	lazy   map[*binder.Symbol]TypeId
}

// New creates an Interner with every well-known id pre-registered. atoms is
// the same atom.Interner the scanner/parser/binder used for this
// compilation, so Symbol/Member names resolve to the same text.
func New(atoms *atom.Interner) *Interner {
	in := &Interner{
		byID:      make([]TypeKey, firstAllocated),
		Objects:   newObjectShapeInterner(),
		Callables: newCallableShapeInterner(),
		Atoms:     atoms,
		lazy:      make(map[*binder.Symbol]TypeId),
	}
	for i := range in.shards {
		in.shards[i] = &shard{byFingerprint: make(map[string]TypeId, 256)}
	}
	return in
}

func (in *Interner) shardFor(fp string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fp))
	return in.shards[h.Sum32()%shardCount]
}

// Intern returns the TypeId for key, allocating a new one on first sight.
// Equal keys (by fingerprint) always produce the same id.
func (in *Interner) Intern(key TypeKey) TypeId {
	key = canonicalize(key)
	fp := fingerprint(key)

	sh := in.shardFor(fp)
	sh.mu.RLock()
	if id, ok := sh.byFingerprint[fp]; ok {
		sh.mu.RUnlock()
		return id
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if id, ok := sh.byFingerprint[fp]; ok {
		return id
	}

	in.seqMu.Lock()
	in.seq++
	id := TypeId(firstAllocated) + TypeId(in.seq) - 1
	in.seqMu.Unlock()

	in.byIDMu.Lock()
	for TypeId(len(in.byID)) <= id {
		in.byID = append(in.byID, TypeKey{})
	}
	in.byID[id] = key
	in.byIDMu.Unlock()

	sh.byFingerprint[fp] = id
	return id
}

// Key resolves id back to its structural content. Calling Key on a
// well-known id returns the zero TypeKey; callers should check IsWellKnown
// first.
func (in *Interner) Key(id TypeId) TypeKey {
	if id < firstAllocated {
		return TypeKey{}
	}
	in.byIDMu.RLock()
	defer in.byIDMu.RUnlock()
	if int(id) >= len(in.byID) {
		return TypeKey{}
	}
	return in.byID[id]
}

// IsWellKnown reports whether id is one of the reserved primitive ids.
func (id TypeId) IsWellKnown() bool { return id != Invalid && id < firstAllocated }

// NewLazy allocates a fresh Lazy(DefId) placeholder for def, installed by
// the checker on entry to a definition's type resolution so a recursive
// reference sees a concrete (if temporary) TypeId instead of looping
// forever (spec §4.6, §9 "cross-file cycles").
func (in *Interner) NewLazy(def DefId) TypeId {
	return in.Intern(TypeKey{Kind: KindLazy, Def: def})
}

// ResolveLazy records that every Lazy placeholder for def should now be
// read as resolved, per spec §9's "register the placeholder... resolve the
// definition, then atomically substitute". Resolution is looked up via
// ResolvedLazy; existing TypeIds referring to the Lazy key are not
// mutated (TypeIds are immutable once interned), so callers that cached a
// Lazy TypeId must re-resolve it via ResolvedLazy before using it.
func (in *Interner) ResolveLazy(def DefId, resolved TypeId) {
	in.lazyMu.Lock()
	defer in.lazyMu.Unlock()
	in.lazy[def.Sym] = resolved
}

// ResolvedLazy follows id through to its final resolution if id is a Lazy
// placeholder that has since been resolved; otherwise it returns id
// unchanged. Call this whenever a TypeId taken from the interner might be
// stale across a cycle-breaking boundary.
func (in *Interner) ResolvedLazy(id TypeId) TypeId {
	for {
		key := in.Key(id)
		if key.Kind != KindLazy {
			return id
		}
		in.lazyMu.Lock()
		resolved, ok := in.lazy[key.Def.Sym]
		in.lazyMu.Unlock()
		if !ok || resolved == id {
			return id
		}
		id = resolved
	}
}

// String renders id for diagnostics and golden tests.
func (in *Interner) String(id TypeId) string {
	if name := wellKnownName(id); name != "" {
		return name
	}
	if id == Invalid {
		return "<invalid>"
	}
	return in.render(in.Key(id))
}

func (in *Interner) render(k TypeKey) string {
	switch k.Kind {
	case KindLiteralString:
		return strconv_Quote(k.LitString)
	case KindLiteralNumber:
		return k.LitNumber
	case KindLiteralBigInt:
		return k.LitBigInt + "n"
	case KindLiteralBoolean:
		if k.LitBool {
			return "true"
		}
		return "false"
	case KindUniqueSymbol:
		return "unique symbol"
	case KindArray:
		return in.String(k.Elem) + "[]"
	case KindTuple:
		return in.renderTuple(k.Tuple, false)
	case KindReadonlyTuple:
		return "readonly " + in.renderTuple(k.Tuple, false)
	case KindUnion:
		parts := make([]string, len(k.Set))
		for i, t := range k.Set {
			parts[i] = in.String(t)
		}
		return strings.Join(parts, " | ")
	case KindIntersection:
		parts := make([]string, len(k.Set))
		for i, t := range k.Set {
			parts[i] = in.String(t)
		}
		return strings.Join(parts, " & ")
	case KindObject, KindObjectWithIndex:
		return in.Objects.String(in, k.Object)
	case KindCallable:
		return in.Callables.String(in, k.Callable)
	case KindTypeReference:
		name := "?"
		if k.RefSymbol != nil {
			name = in.symbolName(k.RefSymbol)
		}
		if len(k.Args) == 0 {
			return name
		}
		parts := make([]string, len(k.Args))
		for i, a := range k.Args {
			parts[i] = in.String(a)
		}
		return name + "<" + strings.Join(parts, ", ") + ">"
	case KindTypeParameter:
		return in.symbolName(k.Def.Sym)
	case KindConditional:
		return fmt.Sprintf("%s extends %s ? %s : %s", in.String(k.Check), in.String(k.Extends), in.String(k.True), in.String(k.False))
	case KindMapped:
		return "{ [K in keyof " + in.String(k.Constraint) + "]: " + in.String(k.ValueType) + " }"
	case KindIndexedAccess:
		return in.String(k.Object2) + "[" + in.String(k.Index) + "]"
	case KindIndex:
		return "keyof " + in.String(k.Of)
	case KindTemplateLiteral:
		var b strings.Builder
		b.WriteByte('`')
		for _, p := range k.Parts {
			if p.Type == Invalid {
				b.WriteString(p.Literal)
			} else {
				b.WriteString("${")
				b.WriteString(in.String(p.Type))
				b.WriteByte('}')
			}
		}
		b.WriteByte('`')
		return b.String()
	case KindTypeQuery:
		return "typeof " + in.symbolName(k.RefSymbol)
	case KindModuleNamespace:
		return "Namespace(" + in.symbolName(k.ModuleSymbol) + ")"
	case KindLazy:
		return "Lazy(" + in.symbolName(k.Def.Sym) + ")"
	case KindEnum:
		return in.symbolName(k.Def.Sym)
	default:
		return "<?>"
	}
}

func (in *Interner) symbolName(sym *binder.Symbol) string {
	if sym == nil {
		return "?"
	}
	if in.Atoms == nil {
		return fmt.Sprintf("Sym(%p)", sym)
	}
	return in.Atoms.Resolve(sym.Name)
}

func (in *Interner) renderTuple(shape TupleShape, readonly bool) string {
	parts := make([]string, len(shape.Elements))
	for i, el := range shape.Elements {
		s := in.String(el.Type)
		if el.Optional {
			s += "?"
		}
		if el.Rest {
			s = "..." + s
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func strconv_Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func fingerprint(k TypeKey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", k.Kind)
	switch k.Kind {
	case KindLiteralString:
		b.WriteString(k.LitString)
	case KindLiteralNumber:
		b.WriteString(k.LitNumber)
	case KindLiteralBigInt:
		b.WriteString(k.LitBigInt)
	case KindLiteralBoolean:
		fmt.Fprintf(&b, "%v", k.LitBool)
	case KindArray:
		fmt.Fprintf(&b, "%d", k.Elem)
	case KindTuple, KindReadonlyTuple:
		for _, el := range k.Tuple.Elements {
			fmt.Fprintf(&b, "%d,%v,%v;", el.Type, el.Optional, el.Rest)
		}
	case KindUnion, KindIntersection:
		for _, t := range k.Set {
			fmt.Fprintf(&b, "%d,", t)
		}
	case KindObject, KindObjectWithIndex:
		fmt.Fprintf(&b, "%d", k.Object)
	case KindCallable:
		fmt.Fprintf(&b, "%d", k.Callable)
	case KindTypeReference:
		fmt.Fprintf(&b, "%p|", k.RefSymbol)
		for _, a := range k.Args {
			fmt.Fprintf(&b, "%d,", a)
		}
	case KindTypeParameter:
		fmt.Fprintf(&b, "%p|%d|%d", k.Def.Sym, k.Constraint, k.Default)
	case KindConditional:
		fmt.Fprintf(&b, "%d|%d|%d|%d", k.Check, k.Extends, k.True, k.False)
	case KindMapped:
		fmt.Fprintf(&b, "%d|%d|%d|%+v", k.Constraint, k.NameType, k.ValueType, k.Modifiers)
	case KindIndexedAccess:
		fmt.Fprintf(&b, "%d|%d", k.Object2, k.Index)
	case KindIndex:
		fmt.Fprintf(&b, "%d", k.Of)
	case KindTemplateLiteral:
		for _, p := range k.Parts {
			fmt.Fprintf(&b, "%s|%d;", p.Literal, p.Type)
		}
	case KindTypeQuery:
		fmt.Fprintf(&b, "%p", k.RefSymbol)
	case KindModuleNamespace:
		fmt.Fprintf(&b, "%p", k.ModuleSymbol)
	case KindLazy, KindEnum:
		fmt.Fprintf(&b, "%p", k.Def.Sym)
	}
	return b.String()
}

// canonicalize normalizes Union/Intersection member order/dedup before
// fingerprinting so structurally-equal sets always intern to one id (spec
// §3 and §8 property 3: "Union([A,B]) == Union([B,A])").
func canonicalize(k TypeKey) TypeKey {
	if k.Kind == KindUnion || k.Kind == KindIntersection {
		k.Set = sortDedupIds(k.Set)
	}
	return k
}

func sortDedupIds(ids []TypeId) []TypeId {
	seen := make(map[TypeId]bool, len(ids))
	out := make([]TypeId, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
