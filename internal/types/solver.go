package types

// This file is the Type Solver half of package types: the pure structural
// operations spec §4.6 names (assignable, identical, instantiate, narrow,
// resolve_overload, index_signature_resolve). All of them are grounded on
// the teacher's unifyInternal (internal/typesystem/unify.go): a
// co-inductive recursive comparison that records the pair of types
// currently being compared and assumes success if the same pair recurs,
// which is how both unify.go and this file break cycles through recursive
// type aliases/interfaces without a separate reachability analysis.

type pairKey struct{ a, b TypeId }

// Identical reports whether a and b are the same type up to structural
// equality (spec §4.6); distinct from Go's ==, since two structurally
// identical TypeKeys always already intern to the same TypeId, so in
// practice Identical(a, b) reduces to a == b except across Lazy
// placeholders, which must be resolved first.
func (in *Interner) Identical(a, b TypeId) bool {
	return in.identical(in.ResolvedLazy(a), in.ResolvedLazy(b), map[pairKey]bool{})
}

func (in *Interner) identical(a, b TypeId, visited map[pairKey]bool) bool {
	a, b = in.ResolvedLazy(a), in.ResolvedLazy(b)
	if a == b {
		return true
	}
	pk := pairKey{a, b}
	if visited[pk] {
		return true
	}
	visited[pk] = true

	ka, kb := in.Key(a), in.Key(b)
	if ka.Kind != kb.Kind {
		return false
	}
	switch ka.Kind {
	case KindUnion, KindIntersection:
		if len(ka.Set) != len(kb.Set) {
			return false
		}
		// Both sets are kept canonically sorted by construction (MakeUnion
		// /MakeIntersection), so pairwise comparison is valid.
		for i := range ka.Set {
			if !in.identical(ka.Set[i], kb.Set[i], visited) {
				return false
			}
		}
		return true
	case KindArray:
		return in.identical(ka.Elem, kb.Elem, visited)
	case KindTuple, KindReadonlyTuple:
		if len(ka.Tuple.Elements) != len(kb.Tuple.Elements) {
			return false
		}
		for i := range ka.Tuple.Elements {
			ea, eb := ka.Tuple.Elements[i], kb.Tuple.Elements[i]
			if ea.Optional != eb.Optional || ea.Rest != eb.Rest {
				return false
			}
			if !in.identical(ea.Type, eb.Type, visited) {
				return false
			}
		}
		return true
	case KindObject, KindObjectWithIndex:
		return in.identicalObject(ka.Object, kb.Object, visited)
	case KindCallable:
		return in.identicalCallable(ka.Callable, kb.Callable, visited)
	case KindTypeReference:
		if ka.RefSymbol != kb.RefSymbol || len(ka.Args) != len(kb.Args) {
			return false
		}
		for i := range ka.Args {
			if !in.identical(ka.Args[i], kb.Args[i], visited) {
				return false
			}
		}
		return true
	case KindTypeParameter, KindEnum:
		return ka.Def.Sym == kb.Def.Sym
	case KindIndexedAccess:
		return in.identical(ka.Object2, kb.Object2, visited) && in.identical(ka.Index, kb.Index, visited)
	case KindIndex:
		return in.identical(ka.Of, kb.Of, visited)
	case KindConditional:
		return in.identical(ka.Check, kb.Check, visited) && in.identical(ka.Extends, kb.Extends, visited) &&
			in.identical(ka.True, kb.True, visited) && in.identical(ka.False, kb.False, visited)
	default:
		return false
	}
}

func (in *Interner) identicalObject(a, b ObjectShapeId, visited map[pairKey]bool) bool {
	if a == b {
		return true
	}
	sa, sb := in.Objects.Get(a), in.Objects.Get(b)
	if len(sa.Members) != len(sb.Members) {
		return false
	}
	for _, ma := range sa.Members {
		j, ok := sb.MemberIndex[ma.Name]
		if !ok {
			return false
		}
		mb := sb.Members[j]
		if ma.Optional != mb.Optional || ma.Readonly != mb.Readonly {
			return false
		}
		if !in.identical(ma.Type, mb.Type, visited) {
			return false
		}
	}
	return true
}

func (in *Interner) identicalCallable(a, b CallableShapeId, visited map[pairKey]bool) bool {
	if a == b {
		return true
	}
	sa, sb := in.Callables.Get(a), in.Callables.Get(b)
	if len(sa.Parameters) != len(sb.Parameters) {
		return false
	}
	for i := range sa.Parameters {
		if !in.identical(sa.Parameters[i].Type, sb.Parameters[i].Type, visited) {
			return false
		}
	}
	return in.identical(sa.ReturnType, sb.ReturnType, visited)
}

// Assignable reports whether a value of type source can be assigned where
// target is expected (spec §4.6's central relation). strictNull controls
// whether null/undefined are excluded from every non-nullable target, the
// same switch package checker exposes as Options.StrictNullChecks.
func (in *Interner) Assignable(source, target TypeId, strictNull bool) bool {
	return in.assignable(in.ResolvedLazy(source), in.ResolvedLazy(target), strictNull, map[pairKey]bool{})
}

func (in *Interner) assignable(source, target TypeId, strictNull bool, visited map[pairKey]bool) bool {
	source, target = in.ResolvedLazy(source), in.ResolvedLazy(target)
	if source == target {
		return true
	}
	// any is assignable to/from everything; unknown only flows in, never out.
	if source == Any || target == Any || target == Unknown {
		return true
	}
	if source == Never {
		return true
	}
	if target == Never {
		return false
	}
	if !strictNull && (source == Null || source == Undefined) {
		return true
	}

	pk := pairKey{source, target}
	if visited[pk] {
		return true
	}
	visited[pk] = true

	ks, kt := in.Key(source), in.Key(target)

	// source union: every member must be assignable to target (spec §4.6,
	// mirrors unify.go's TUnion/default branch subtyping check).
	if ks.Kind == KindUnion {
		for _, m := range ks.Set {
			if !in.assignable(m, target, strictNull, visited) {
				return false
			}
		}
		return true
	}
	// target union: source must be assignable to at least one member.
	if kt.Kind == KindUnion {
		for _, m := range kt.Set {
			if in.assignable(source, m, strictNull, visited) {
				return true
			}
		}
		return false
	}
	// target intersection: source must satisfy every member.
	if kt.Kind == KindIntersection {
		for _, m := range kt.Set {
			if !in.assignable(source, m, strictNull, visited) {
				return false
			}
		}
		return true
	}
	// source intersection: satisfying any member is enough.
	if ks.Kind == KindIntersection {
		for _, m := range ks.Set {
			if in.assignable(m, target, strictNull, visited) {
				return true
			}
		}
		return false
	}

	// Literal types are assignable to their widened primitive.
	if widened := in.Widen(source); widened != source && in.assignable(widened, target, strictNull, visited) {
		return true
	}

	if ks.Kind != kt.Kind {
		return in.assignableCrossKind(source, ks, target, kt, strictNull, visited)
	}

	switch ks.Kind {
	case KindLiteralString, KindLiteralNumber, KindLiteralBigInt, KindLiteralBoolean:
		return in.identical(source, target, map[pairKey]bool{})
	case KindArray:
		return in.assignable(ks.Elem, kt.Elem, strictNull, visited)
	case KindTuple, KindReadonlyTuple:
		return in.assignableTuple(ks.Tuple, kt.Tuple, strictNull, visited)
	case KindObject, KindObjectWithIndex:
		return in.assignableObject(ks.Object, kt.Object, strictNull, visited)
	case KindCallable:
		return in.assignableCallable(ks.Callable, kt.Callable, strictNull, visited)
	case KindTypeParameter:
		if ks.Def.Sym == kt.Def.Sym {
			return true
		}
		return ks.Constraint != Invalid && in.assignable(ks.Constraint, target, strictNull, visited)
	case KindEnum:
		return ks.Def.Sym == kt.Def.Sym
	default:
		return in.identical(source, target, map[pairKey]bool{})
	}
}

// assignableCrossKind covers the handful of legal assignments between
// differently-tagged TypeKeys: a tuple is an array-like, an object with
// only call signatures can satisfy a bare callable target, and so on.
func (in *Interner) assignableCrossKind(source TypeId, ks TypeKey, target TypeId, kt TypeKey, strictNull bool, visited map[pairKey]bool) bool {
	if (ks.Kind == KindTuple || ks.Kind == KindReadonlyTuple) && kt.Kind == KindArray {
		for _, el := range ks.Tuple.Elements {
			if !in.assignable(el.Type, kt.Elem, strictNull, visited) {
				return false
			}
		}
		return true
	}
	if ks.Kind == KindObject && kt.Kind == KindCallable {
		shape := in.Objects.Get(ks.Object)
		for _, sig := range shape.CallSignatures {
			if in.assignableCallable(sig, kt.Callable, strictNull, visited) {
				return true
			}
		}
		return false
	}
	if ks.Kind == KindCallable && kt.Kind == KindObject {
		// A function value satisfies an object type with no required members.
		shape := in.Objects.Get(kt.Object)
		for _, m := range shape.Members {
			if !m.Optional {
				return false
			}
		}
		return true
	}
	return false
}

func (in *Interner) assignableTuple(s, t TupleShape, strictNull bool, visited map[pairKey]bool) bool {
	minLen := len(t.Elements)
	for minLen > 0 && (t.Elements[minLen-1].Optional || t.Elements[minLen-1].Rest) {
		minLen--
	}
	if len(s.Elements) < minLen {
		return false
	}
	for i, te := range t.Elements {
		if te.Rest {
			for j := i; j < len(s.Elements); j++ {
				if !in.assignable(s.Elements[j].Type, te.Type, strictNull, visited) {
					return false
				}
			}
			return true
		}
		if i >= len(s.Elements) {
			return te.Optional
		}
		if !in.assignable(s.Elements[i].Type, te.Type, strictNull, visited) {
			return false
		}
	}
	return true
}

// assignableObject implements width+depth subtyping (spec §4.6): every
// member target requires must be present on source with an assignable
// type; source may carry extra members (structural width subtyping, the
// same relaxation unify.go's allowExtra/UnifyAllowExtra gives records).
// Private/protected members (Declaring != nil and not exported) are only
// compatible across the same declaring class, spec §4.6's nominal carve-out
// for an otherwise fully structural type system.
func (in *Interner) assignableObject(s, t ObjectShapeId, strictNull bool, visited map[pairKey]bool) bool {
	if s == t {
		return true
	}
	sourceShape, targetShape := in.Objects.Get(s), in.Objects.Get(t)
	for _, tm := range targetShape.Members {
		j, ok := sourceShape.MemberIndex[tm.Name]
		if !ok {
			if tm.Optional {
				continue
			}
			return false
		}
		sm := sourceShape.Members[j]
		if tm.Declaring != nil && sm.Declaring != tm.Declaring {
			return false
		}
		if !in.assignable(sm.Type, tm.Type, strictNull, visited) {
			return false
		}
	}
	if targetShape.StringIndex != nil {
		for _, sm := range sourceShape.Members {
			if !in.assignable(sm.Type, targetShape.StringIndex.ValueType, strictNull, visited) {
				return false
			}
		}
	}
	return true
}

// assignableCallable applies spec §4.6 variance: parameters contravariant,
// return type covariant (mirrors unify.go's TFunc case, which notes return
// type is covariant and simplifies parameters to strict equality; here
// parameters always use the contravariant check. There is no bivariant
// mode: package checker does not read Options.StrictFunctionTypes).
func (in *Interner) assignableCallable(s, t CallableShapeId, strictNull bool, visited map[pairKey]bool) bool {
	if s == t {
		return true
	}
	ss, ts := in.Callables.Get(s), in.Callables.Get(t)
	required := 0
	for _, p := range ts.Parameters {
		if !p.Optional && !p.Rest {
			required++
		}
	}
	if len(ss.Parameters) > len(ts.Parameters) && !hasRestOrOptional(ss.Parameters[len(ts.Parameters):]) {
		return false
	}
	for i := 0; i < len(ts.Parameters) && i < len(ss.Parameters); i++ {
		// contravariant: target's parameter type must be assignable to source's.
		if !in.assignable(ts.Parameters[i].Type, ss.Parameters[i].Type, strictNull, visited) {
			return false
		}
	}
	return in.assignable(ss.ReturnType, ts.ReturnType, strictNull, visited)
}

func hasRestOrOptional(params []CallableParameter) bool {
	for _, p := range params {
		if !p.Optional && !p.Rest {
			return false
		}
	}
	return true
}

// Instantiate substitutes every occurrence of each type parameter in subst
// through typ, grounded on the teacher's ApplyWithCycleCheck
// (internal/typesystem/types.go): a recursive Apply over every TypeKey
// variant, short-circuited by a visited set so a self-referential
// substitution (a recursive generic alias) terminates instead of looping
// forever. This is spec §4.6's "instantiate", driven by package checker at
// every generic call/instantiation site with subst built from each type
// parameter's KindTypeParameter TypeId.
func (in *Interner) Instantiate(typ TypeId, subst map[TypeId]TypeId) TypeId {
	if len(subst) == 0 {
		return typ
	}
	for typeParam, replacement := range subst {
		typ = in.substitute(typ, typeParam, replacement, map[pairKey]bool{})
	}
	return typ
}

func (in *Interner) substitute(typ, typeParam, replacement TypeId, visited map[pairKey]bool) TypeId {
	if typ == typeParam {
		return replacement
	}
	pk := pairKey{typ, typeParam}
	if visited[pk] {
		return typ
	}
	visited[pk] = true

	key := in.Key(typ)
	switch key.Kind {
	case KindArray:
		return in.MakeArray(in.substitute(key.Elem, typeParam, replacement, visited))
	case KindTuple, KindReadonlyTuple:
		elems := make([]TupleElement, len(key.Tuple.Elements))
		for i, e := range key.Tuple.Elements {
			elems[i] = TupleElement{Type: in.substitute(e.Type, typeParam, replacement, visited), Optional: e.Optional, Rest: e.Rest}
		}
		return in.MakeTuple(elems, key.Kind == KindReadonlyTuple)
	case KindUnion:
		members := make([]TypeId, len(key.Set))
		for i, m := range key.Set {
			members[i] = in.substitute(m, typeParam, replacement, visited)
		}
		return in.MakeUnion(members)
	case KindIntersection:
		members := make([]TypeId, len(key.Set))
		for i, m := range key.Set {
			members[i] = in.substitute(m, typeParam, replacement, visited)
		}
		return in.MakeIntersection(members)
	case KindObject, KindObjectWithIndex:
		shape := in.Objects.Get(key.Object)
		members := make([]Member, len(shape.Members))
		for i, m := range shape.Members {
			m.Type = in.substitute(m.Type, typeParam, replacement, visited)
			members[i] = m
		}
		return in.MakeObject(ObjectShape{Members: members, CallSignatures: shape.CallSignatures, ConstructSignatures: shape.ConstructSignatures, StringIndex: shape.StringIndex, NumberIndex: shape.NumberIndex, NominalSymbol: shape.NominalSymbol})
	case KindCallable:
		shape := in.Callables.Get(key.Callable)
		params := make([]CallableParameter, len(shape.Parameters))
		for i, p := range shape.Parameters {
			p.Type = in.substitute(p.Type, typeParam, replacement, visited)
			params[i] = p
		}
		return in.MakeCallable(CallableShape{TypeParameters: shape.TypeParameters, Parameters: params, ReturnType: in.substitute(shape.ReturnType, typeParam, replacement, visited), HasRestTuple: shape.HasRestTuple, IsAbstractCtor: shape.IsAbstractCtor})
	case KindTypeReference:
		args := make([]TypeId, len(key.Args))
		for i, a := range key.Args {
			args[i] = in.substitute(a, typeParam, replacement, visited)
		}
		return in.Intern(TypeKey{Kind: KindTypeReference, RefSymbol: key.RefSymbol, Args: args})
	case KindIndexedAccess:
		return in.Intern(TypeKey{Kind: KindIndexedAccess, Object2: in.substitute(key.Object2, typeParam, replacement, visited), Index: in.substitute(key.Index, typeParam, replacement, visited)})
	case KindConditional:
		return in.Intern(TypeKey{
			Kind:    KindConditional,
			Check:   in.substitute(key.Check, typeParam, replacement, visited),
			Extends: in.substitute(key.Extends, typeParam, replacement, visited),
			True:    in.substitute(key.True, typeParam, replacement, visited),
			False:   in.substitute(key.False, typeParam, replacement, visited),
		})
	default:
		return typ
	}
}

// NarrowByTypeof implements `typeof x === "..."` narrowing (spec §4.6): it
// filters a union down to members consistent with tag, or returns Never if
// negate is false and no member matches (an impossible branch).
func (in *Interner) NarrowByTypeof(source TypeId, tag string, negate bool) TypeId {
	matches := func(id TypeId) bool { return typeofTag(in, id) == tag }
	return in.narrowUnionBy(source, matches, negate)
}

func typeofTag(in *Interner, id TypeId) string {
	switch in.Widen(id) {
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
	case Undefined:
		return "undefined"
	default:
		key := in.Key(id)
		if key.Kind == KindCallable {
			return "function"
		}
		return "object"
	}
}

// NarrowTruthy/NarrowFalsy implement `if (x)`/`if (!x)` narrowing, removing
// or keeping only the always-falsy members (null, undefined, literal false,
// literal 0, literal "").
func (in *Interner) NarrowTruthy(source TypeId) TypeId {
	return in.narrowUnionBy(source, func(id TypeId) bool { return !isAlwaysFalsy(in, id) }, false)
}

func (in *Interner) NarrowFalsy(source TypeId) TypeId {
	return in.narrowUnionBy(source, func(id TypeId) bool { return isAlwaysFalsy(in, id) }, false)
}

func (in *Interner) narrowUnionBy(source TypeId, pred func(TypeId) bool, negate bool) TypeId {
	key := in.Key(source)
	if key.Kind != KindUnion {
		ok := pred(source)
		if negate {
			ok = !ok
		}
		if ok {
			return source
		}
		return Never
	}
	kept := make([]TypeId, 0, len(key.Set))
	for _, m := range key.Set {
		ok := pred(m)
		if negate {
			ok = !ok
		}
		if ok {
			kept = append(kept, m)
		}
	}
	return in.MakeUnion(kept)
}

func isAlwaysFalsy(in *Interner, id TypeId) bool {
	if id == Null || id == Undefined || id == Void {
		return true
	}
	key := in.Key(id)
	switch key.Kind {
	case KindLiteralBoolean:
		return !key.LitBool
	case KindLiteralNumber:
		return key.LitNumber == "0" || key.LitNumber == "-0"
	case KindLiteralString:
		return key.LitString == ""
	default:
		return false
	}
}

// ResolveOverload implements spec §4.6's resolve_overload: the first
// candidate signature every argument is assignable to wins, matching
// TypeScript's own first-match overload resolution rather than
// best-match scoring.
func (in *Interner) ResolveOverload(candidates []CallableShapeId, argTypes []TypeId, strictNull bool) (CallableShapeId, bool) {
	for _, c := range candidates {
		shape := in.Callables.Get(c)
		if !in.argsMatch(shape, argTypes, strictNull) {
			continue
		}
		return c, true
	}
	return 0, false
}

func (in *Interner) argsMatch(shape CallableShape, argTypes []TypeId, strictNull bool) bool {
	required := 0
	for _, p := range shape.Parameters {
		if !p.Optional && !p.Rest {
			required++
		}
	}
	if len(argTypes) < required {
		return false
	}
	hasRest := len(shape.Parameters) > 0 && shape.Parameters[len(shape.Parameters)-1].Rest
	if !hasRest && len(argTypes) > len(shape.Parameters) {
		return false
	}
	for i, p := range shape.Parameters {
		if p.Rest {
			for j := i; j < len(argTypes); j++ {
				if !in.Assignable(argTypes[j], p.Type, strictNull) {
					return false
				}
			}
			return true
		}
		if i >= len(argTypes) {
			return p.Optional
		}
		if !in.Assignable(argTypes[i], p.Type, strictNull) {
			return false
		}
	}
	return true
}

// IndexSignatureResolve implements spec §4.6's index_signature_resolve: the
// type produced by `obj[key]`, preferring an exact member over a falling
// back to the matching string/number index signature (spec §9's
// noUncheckedIndexedAccess note is applied by package checker, which
// unions in `| undefined` itself when that option is set).
func (in *Interner) IndexSignatureResolve(obj ObjectShapeId, keyType TypeId) (TypeId, bool) {
	shape := in.Objects.Get(obj)
	keyKey := in.Key(keyType)
	if keyKey.Kind == KindLiteralString {
		name := keyKey.LitString
		for _, m := range shape.Members {
			if in.Atoms != nil && in.Atoms.Resolve(m.Name) == name {
				return m.Type, true
			}
		}
	}
	switch keyType {
	case StringT:
		if shape.StringIndex != nil {
			return shape.StringIndex.ValueType, true
		}
	case NumberT:
		if shape.NumberIndex != nil {
			return shape.NumberIndex.ValueType, true
		}
		if shape.StringIndex != nil {
			return shape.StringIndex.ValueType, true
		}
	}
	if keyKey.Kind == KindLiteralNumber && shape.NumberIndex != nil {
		return shape.NumberIndex.ValueType, true
	}
	return Invalid, false
}
