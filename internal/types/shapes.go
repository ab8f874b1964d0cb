package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/binder"
)

// ObjectShapeId and CallableShapeId are handles into their respective
// structural interners, referenced from TypeKey.Object/Callable.
type ObjectShapeId uint32
type CallableShapeId uint32

// TupleElement is one position of a Tuple/ReadonlyTuple TypeKey.
type TupleElement struct {
	Type     TypeId
	Optional bool
	Rest bool // true on at most the trailing element(s), per spec §4.6 variadic tuples
}

// TupleShape is the structural content behind KindTuple/KindReadonlyTuple.
type TupleShape struct {
	Elements []TupleElement
}

// Member is one property/method of an ObjectShape.
type Member struct {
	Name       atom.Atom
	Type       TypeId
	Optional   bool
	Readonly   bool
	// Private/protected members still occupy a Member slot so assignability
	// can reject them across unrelated classes (spec §4.6 nominal checks for
	// private members); Declaring records which class/interface contributed
	// the member so that check can compare declaring symbols.
	Declaring  *binder.Symbol
}

// IndexInfo is one `[key: string]: T` / `[key: number]: T` index signature.
type IndexInfo struct {
	KeyType  TypeId // StringT or NumberT
	ValueType TypeId
	Readonly bool
}

// ObjectShape is the structural content of an object type: its own members
// plus call/construct signatures and index signatures (spec §3).
type ObjectShape struct {
	// Members is kept both as an ordered slice (for declaration-order
	// iteration, e.g. ObjectShapeInterner.String) and implicitly indexed by
	// name via MemberIndex for O(1) lookup.
	Members     []Member
	MemberIndex map[atom.Atom]int

	CallSignatures      []CallableShapeId
	ConstructSignatures []CallableShapeId

	StringIndex *IndexInfo
	NumberIndex *IndexInfo

	// NominalSymbol is set for shapes that originate from a class/interface
	// declaration, used by assignability's nominal private-member rule and
	// by ObjectShapeInterner.String to render a declared type's name instead
	// of expanding its full structural shape.
	NominalSymbol *binder.Symbol
}

// CallableParameter is one parameter of a CallableShape.
type CallableParameter struct {
	Name     atom.Atom
	Type     TypeId
	Optional bool
	Rest     bool
	ThisParam bool
}

// CallableShape is the structural content of a call or construct signature,
// and of function types generally (spec §3).
type CallableShape struct {
	TypeParameters []TypeId // TypeParameter TypeIds scoped to this signature
	Parameters     []CallableParameter
	ReturnType     TypeId
	HasRestTuple   bool // true when the trailing parameter is a rest tuple type
	IsAbstractCtor bool
}

func shapeFingerprint(s ObjectShape) string {
	var b strings.Builder
	for _, m := range s.Members {
		fmt.Fprintf(&b, "%d:%d:%v:%v:%p;", m.Name, m.Type, m.Optional, m.Readonly, m.Declaring)
	}
	for _, c := range s.CallSignatures {
		fmt.Fprintf(&b, "call%d;", c)
	}
	for _, c := range s.ConstructSignatures {
		fmt.Fprintf(&b, "new%d;", c)
	}
	if s.StringIndex != nil {
		fmt.Fprintf(&b, "si%d:%v;", s.StringIndex.ValueType, s.StringIndex.Readonly)
	}
	if s.NumberIndex != nil {
		fmt.Fprintf(&b, "ni%d:%v;", s.NumberIndex.ValueType, s.NumberIndex.Readonly)
	}
	fmt.Fprintf(&b, "nom%p", s.NominalSymbol)
	return b.String()
}

func callableFingerprint(c CallableShape) string {
	var b strings.Builder
	for _, tp := range c.TypeParameters {
		fmt.Fprintf(&b, "tp%d;", tp)
	}
	for _, p := range c.Parameters {
		fmt.Fprintf(&b, "%d:%d:%v:%v:%v;", p.Name, p.Type, p.Optional, p.Rest, p.ThisParam)
	}
	fmt.Fprintf(&b, "ret%d;rest%v;abs%v", c.ReturnType, c.HasRestTuple, c.IsAbstractCtor)
	return b.String()
}

// ObjectShapeInterner structurally dedupes ObjectShapes, mirroring
// Interner's own fingerprint-keyed table.
type ObjectShapeInterner struct {
	mu    sync.RWMutex
	byFP  map[string]ObjectShapeId
	byID  []ObjectShape
}

func newObjectShapeInterner() *ObjectShapeInterner {
	return &ObjectShapeInterner{byFP: make(map[string]ObjectShapeId, 256), byID: make([]ObjectShape, 1)}
}

// Intern returns the id for shape, building MemberIndex if the caller left
// it nil.
func (in *ObjectShapeInterner) Intern(shape ObjectShape) ObjectShapeId {
	if shape.MemberIndex == nil && len(shape.Members) > 0 {
		shape.MemberIndex = make(map[atom.Atom]int, len(shape.Members))
		for i, m := range shape.Members {
			shape.MemberIndex[m.Name] = i
		}
	}
	fp := shapeFingerprint(shape)

	in.mu.RLock()
	if id, ok := in.byFP[fp]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.byFP[fp]; ok {
		return id
	}
	id := ObjectShapeId(len(in.byID))
	in.byID = append(in.byID, shape)
	in.byFP[fp] = id
	return id
}

// Get resolves id back to its ObjectShape.
func (in *ObjectShapeInterner) Get(id ObjectShapeId) ObjectShape {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.byID[id]
}

// String renders shape id for diagnostics.
func (in *ObjectShapeInterner) String(ti *Interner, id ObjectShapeId) string {
	shape := in.Get(id)
	if shape.NominalSymbol != nil {
		if ti.Atoms != nil {
			return ti.Atoms.Resolve(shape.NominalSymbol.Name)
		}
		return fmt.Sprintf("Sym(%p)", shape.NominalSymbol)
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range shape.Members {
		if i > 0 {
			b.WriteString("; ")
		}
		if m.Readonly {
			b.WriteString("readonly ")
		}
		if ti.Atoms != nil {
			b.WriteString(ti.Atoms.Resolve(m.Name))
		}
		if m.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		b.WriteString(ti.String(m.Type))
	}
	if shape.StringIndex != nil {
		fmt.Fprintf(&b, "; [key: string]: %s", ti.String(shape.StringIndex.ValueType))
	}
	if shape.NumberIndex != nil {
		fmt.Fprintf(&b, "; [key: number]: %s", ti.String(shape.NumberIndex.ValueType))
	}
	b.WriteByte('}')
	return b.String()
}

// CallableShapeInterner structurally dedupes CallableShapes.
type CallableShapeInterner struct {
	mu   sync.RWMutex
	byFP map[string]CallableShapeId
	byID []CallableShape
}

func newCallableShapeInterner() *CallableShapeInterner {
	return &CallableShapeInterner{byFP: make(map[string]CallableShapeId, 256), byID: make([]CallableShape, 1)}
}

// Intern returns the id for shape.
func (in *CallableShapeInterner) Intern(shape CallableShape) CallableShapeId {
	fp := callableFingerprint(shape)

	in.mu.RLock()
	if id, ok := in.byFP[fp]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.byFP[fp]; ok {
		return id
	}
	id := CallableShapeId(len(in.byID))
	in.byID = append(in.byID, shape)
	in.byFP[fp] = id
	return id
}

// Get resolves id back to its CallableShape.
func (in *CallableShapeInterner) Get(id CallableShapeId) CallableShape {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.byID[id]
}

// String renders shape id for diagnostics.
func (in *CallableShapeInterner) String(ti *Interner, id CallableShapeId) string {
	shape := in.Get(id)
	var b strings.Builder
	if len(shape.TypeParameters) > 0 {
		b.WriteByte('<')
		for i, tp := range shape.TypeParameters {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ti.String(tp))
		}
		b.WriteByte('>')
	}
	b.WriteByte('(')
	for i, p := range shape.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Rest {
			b.WriteString("...")
		}
		if ti.Atoms != nil {
			b.WriteString(ti.Atoms.Resolve(p.Name))
		}
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		b.WriteString(ti.String(p.Type))
	}
	b.WriteString(") => ")
	b.WriteString(ti.String(shape.ReturnType))
	return b.String()
}
