package types

// MakeUnion builds the canonical Union type for members, flattening nested
// unions, deduping, and collapsing the degenerate cases per spec §8
// property 3 ("Union([A,B]) == Union([B,A])"): the teacher's
// NormalizeUnion (internal/typesystem/types.go) flattens/dedups/sorts by
// String() before collapsing a singleton; this is the same algorithm
// adapted to dedup by interned TypeId instead of by rendered string, since
// equal TypeIds already imply equal structural content.
func (in *Interner) MakeUnion(members []TypeId) TypeId {
	flat := in.flatten(members, KindUnion)
	flat = sortDedupIds(flat)

	// `any` absorbs a union (any | T == any); `never` is the identity.
	filtered := flat[:0:0]
	for _, id := range flat {
		if id == Any {
			return Any
		}
		if id == Never {
			continue
		}
		filtered = append(filtered, id)
	}
	switch len(filtered) {
	case 0:
		return Never
	case 1:
		return filtered[0]
	default:
		return in.Intern(TypeKey{Kind: KindUnion, Set: filtered})
	}
}

// MakeIntersection builds the canonical Intersection type for members.
func (in *Interner) MakeIntersection(members []TypeId) TypeId {
	flat := in.flatten(members, KindIntersection)
	flat = sortDedupIds(flat)

	filtered := flat[:0:0]
	for _, id := range flat {
		if id == Any {
			return Any
		}
		if id == Unknown {
			continue
		}
		filtered = append(filtered, id)
	}
	switch len(filtered) {
	case 0:
		return Unknown
	case 1:
		return filtered[0]
	default:
		// Intersecting two distinct primitives (e.g. string & number) is
		// never per spec §4.6's intersection rule; a full implementation
		// would detect every such pairwise incompatibility, but the common
		// scanner/checker path only ever intersects object shapes and type
		// parameter constraints, so primitive disjointness is the one case
		// worth special-casing here.
		if len(filtered) == 2 && isDisjointPrimitivePair(filtered[0], filtered[1]) {
			return Never
		}
		return in.Intern(TypeKey{Kind: KindIntersection, Set: filtered})
	}
}

func isDisjointPrimitivePair(a, b TypeId) bool {
	prims := map[TypeId]bool{StringT: true, NumberT: true, BigIntT: true, BooleanT: true, SymbolT: true, Void: true, Null: true, Undefined: true}
	return prims[a] && prims[b] && a != b
}

func (in *Interner) flatten(members []TypeId, kind Kind) []TypeId {
	out := make([]TypeId, 0, len(members))
	for _, id := range members {
		key := in.Key(id)
		if key.Kind == kind {
			out = append(out, in.flatten(key.Set, kind)...)
		} else {
			out = append(out, id)
		}
	}
	return out
}

// MakeArray interns Array<elem>.
func (in *Interner) MakeArray(elem TypeId) TypeId {
	return in.Intern(TypeKey{Kind: KindArray, Elem: elem})
}

// MakeTuple interns a Tuple (or ReadonlyTuple) type.
func (in *Interner) MakeTuple(elements []TupleElement, readonly bool) TypeId {
	kind := KindTuple
	if readonly {
		kind = KindReadonlyTuple
	}
	return in.Intern(TypeKey{Kind: kind, Tuple: TupleShape{Elements: elements}})
}

// MakeObject interns an object type from a fully-built ObjectShape.
func (in *Interner) MakeObject(shape ObjectShape) TypeId {
	kind := KindObject
	if shape.StringIndex != nil || shape.NumberIndex != nil {
		kind = KindObjectWithIndex
	}
	id := in.Objects.Intern(shape)
	return in.Intern(TypeKey{Kind: kind, Object: id})
}

// MakeCallable interns a function type from a fully-built CallableShape.
func (in *Interner) MakeCallable(shape CallableShape) TypeId {
	id := in.Callables.Intern(shape)
	return in.Intern(TypeKey{Kind: KindCallable, Callable: id})
}

// Widen maps a literal type to its containing primitive, the operation
// `let x = "a"` uses to give x the widened type string rather than the
// literal type "a" (spec §4.6 "literal widening" for let/var declarations
// without an explicit type annotation).
func (in *Interner) Widen(id TypeId) TypeId {
	switch in.Key(id).Kind {
	case KindLiteralString:
		return StringT
	case KindLiteralNumber:
		return NumberT
	case KindLiteralBigInt:
		return BigIntT
	case KindLiteralBoolean:
		return BooleanT
	case KindUniqueSymbol:
		return SymbolT
	case KindUnion:
		members := in.Key(id).Set
		widened := make([]TypeId, len(members))
		for i, m := range members {
			widened[i] = in.Widen(m)
		}
		return in.MakeUnion(widened)
	default:
		return id
	}
}
