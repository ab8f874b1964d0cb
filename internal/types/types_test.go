package types_test

import (
	"testing"

	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/types"
)

func TestInternDedupesEqualLiterals(t *testing.T) {
	in := types.New(atom.New())
	a := in.Intern(types.TypeKey{Kind: types.KindLiteralString, LitString: "x"})
	b := in.Intern(types.TypeKey{Kind: types.KindLiteralString, LitString: "x"})
	if a != b {
		t.Fatalf("equal literal keys should intern to the same id, got %d and %d", a, b)
	}
}

func TestInternDistinguishesDifferentLiterals(t *testing.T) {
	in := types.New(atom.New())
	a := in.Intern(types.TypeKey{Kind: types.KindLiteralString, LitString: "x"})
	b := in.Intern(types.TypeKey{Kind: types.KindLiteralString, LitString: "y"})
	if a == b {
		t.Fatalf("distinct literal keys must not collide")
	}
}

func TestMakeUnionOrderIndependent(t *testing.T) {
	in := types.New(atom.New())
	a := in.MakeUnion([]types.TypeId{types.StringT, types.NumberT})
	b := in.MakeUnion([]types.TypeId{types.NumberT, types.StringT})
	if a != b {
		t.Fatalf("Union([A,B]) must equal Union([B,A]), got %d and %d", a, b)
	}
}

func TestMakeUnionCollapsesSingleton(t *testing.T) {
	in := types.New(atom.New())
	u := in.MakeUnion([]types.TypeId{types.StringT, types.StringT})
	if u != types.StringT {
		t.Fatalf("Union([string,string]) should collapse to string, got %d", u)
	}
}

func TestMakeUnionEmptyIsNever(t *testing.T) {
	in := types.New(atom.New())
	u := in.MakeUnion(nil)
	if u != types.Never {
		t.Fatalf("Union([]) should be never, got %d", u)
	}
}

func TestAnyAbsorbsUnion(t *testing.T) {
	in := types.New(atom.New())
	u := in.MakeUnion([]types.TypeId{types.StringT, types.Any})
	if u != types.Any {
		t.Fatalf("a union containing any must collapse to any, got %d", u)
	}
}

func TestAssignableWideningPrimitives(t *testing.T) {
	in := types.New(atom.New())
	lit := in.Intern(types.TypeKey{Kind: types.KindLiteralString, LitString: "hi"})
	if !in.Assignable(lit, types.StringT, true) {
		t.Fatalf("string literal \"hi\" should be assignable to string")
	}
	if in.Assignable(types.StringT, lit, true) {
		t.Fatalf("string should not be assignable to the narrower literal \"hi\"")
	}
}

func TestAssignableNullRequiresNonStrict(t *testing.T) {
	in := types.New(atom.New())
	if !in.Assignable(types.Null, types.StringT, false) {
		t.Fatalf("null should be assignable to string under non-strict null checks")
	}
	if in.Assignable(types.Null, types.StringT, true) {
		t.Fatalf("null should not be assignable to string under strict null checks")
	}
}

func TestAssignableObjectWidthSubtyping(t *testing.T) {
	in := types.New(atom.New())
	atoms := in.Atoms
	nameX := atoms.Intern("x")
	nameY := atoms.Intern("y")

	wide := in.MakeObject(types.ObjectShape{Members: []types.Member{
		{Name: nameX, Type: types.NumberT},
		{Name: nameY, Type: types.NumberT},
	}})
	narrow := in.MakeObject(types.ObjectShape{Members: []types.Member{
		{Name: nameX, Type: types.NumberT},
	}})
	if !in.Assignable(wide, narrow, true) {
		t.Fatalf("{x,y} should be assignable to {x} (width subtyping)")
	}
	if in.Assignable(narrow, wide, true) {
		t.Fatalf("{x} should not be assignable to {x,y}, missing member y")
	}
}

func TestAssignableCallableContravariantParams(t *testing.T) {
	in := types.New(atom.New())
	numToVoid := in.MakeCallable(types.CallableShape{
		Parameters: []types.CallableParameter{{Type: types.NumberT}},
		ReturnType: types.Void,
	})
	anyToVoid := in.MakeCallable(types.CallableShape{
		Parameters: []types.CallableParameter{{Type: types.Any}},
		ReturnType: types.Void,
	})
	if !in.Assignable(anyToVoid, numToVoid, true) {
		t.Fatalf("(any)=>void should be assignable to (number)=>void: wider parameter accepted contravariantly")
	}
}

func TestIdenticalResolvesLazyPlaceholder(t *testing.T) {
	in := types.New(atom.New())
	def := types.DefId{}
	lazy := in.NewLazy(def)
	in.ResolveLazy(def, types.NumberT)
	if !in.Identical(in.ResolvedLazy(lazy), types.NumberT) {
		t.Fatalf("a resolved Lazy placeholder should be identical to its resolution")
	}
}

func TestNarrowByTypeofFiltersUnion(t *testing.T) {
	in := types.New(atom.New())
	u := in.MakeUnion([]types.TypeId{types.StringT, types.NumberT})
	narrowed := in.NarrowByTypeof(u, "string", false)
	if narrowed != types.StringT {
		t.Fatalf("typeof x === \"string\" should narrow string|number down to string, got %d", narrowed)
	}
}

func TestNarrowTruthyRemovesNullish(t *testing.T) {
	in := types.New(atom.New())
	u := in.MakeUnion([]types.TypeId{types.StringT, types.Null, types.Undefined})
	narrowed := in.NarrowTruthy(u)
	if narrowed != types.StringT {
		t.Fatalf("truthiness narrowing should remove null/undefined, got %s", in.String(narrowed))
	}
}

func TestIndexSignatureResolveExactMemberWins(t *testing.T) {
	in := types.New(atom.New())
	name := in.Atoms.Intern("count")
	shape := types.ObjectShape{
		Members:     []types.Member{{Name: name, Type: types.NumberT}},
		StringIndex: &types.IndexInfo{KeyType: types.StringT, ValueType: types.BooleanT},
	}
	obj := in.Objects.Intern(shape)
	key := in.Intern(types.TypeKey{Kind: types.KindLiteralString, LitString: "count"})
	resolved, ok := in.IndexSignatureResolve(obj, key)
	if !ok || resolved != types.NumberT {
		t.Fatalf("an exact member should win over the string index signature, got %v ok=%v", resolved, ok)
	}
}

func TestIndexSignatureResolveFallsBackToStringIndex(t *testing.T) {
	in := types.New(atom.New())
	shape := types.ObjectShape{StringIndex: &types.IndexInfo{KeyType: types.StringT, ValueType: types.BooleanT}}
	obj := in.Objects.Intern(shape)
	resolved, ok := in.IndexSignatureResolve(obj, types.StringT)
	if !ok || resolved != types.BooleanT {
		t.Fatalf("expected the string index signature's value type, got %v ok=%v", resolved, ok)
	}
}

func TestResolveOverloadPicksFirstMatch(t *testing.T) {
	in := types.New(atom.New())
	strSig := in.Callables.Intern(types.CallableShape{Parameters: []types.CallableParameter{{Type: types.StringT}}, ReturnType: types.StringT})
	numSig := in.Callables.Intern(types.CallableShape{Parameters: []types.CallableParameter{{Type: types.NumberT}}, ReturnType: types.NumberT})
	chosen, ok := in.ResolveOverload([]types.CallableShapeId{strSig, numSig}, []types.TypeId{types.NumberT}, true)
	if !ok || chosen != numSig {
		t.Fatalf("expected the number overload to be chosen, got %v ok=%v", chosen, ok)
	}
}

func TestInstantiateSubstitutesTypeParameter(t *testing.T) {
	in := types.New(atom.New())
	tp := in.Intern(types.TypeKey{Kind: types.KindTypeParameter, Def: types.DefId{}})
	arr := in.MakeArray(tp)
	instantiated := in.Instantiate(arr, map[types.TypeId]types.TypeId{tp: types.StringT})
	want := in.MakeArray(types.StringT)
	if instantiated != want {
		t.Fatalf("instantiating Array<T> with T=string should give Array<string>, got %s", in.String(instantiated))
	}
}
