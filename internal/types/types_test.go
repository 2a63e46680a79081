package types_test

import (
	"testing"

	"nominalc/internal/types"
)

// fakeClassInfo is a minimal ClassInfoProvider standing in for
// symbols.Table, keyed by the opaque "owner" uint32 each test assigns its
// stub classes.
type fakeClassInfo struct {
	info map[uint32]types.ClassInfo
}

func (f *fakeClassInfo) ClassInfo(owner uint32) (types.ClassInfo, bool) {
	ci, ok := f.info[owner]
	return ci, ok
}

func TestErasure_RawClassIsItsOwnErasure(t *testing.T) {
	s := types.NewStore()
	raw := s.Class(1, types.NoTypeID, nil)
	if got := s.Erasure(raw); got != raw {
		t.Errorf("Erasure(raw class) = %v, want itself (%v)", got, raw)
	}
}

func TestErasure_ParameterizedClassErasesArgs(t *testing.T) {
	s := types.NewStore()
	arg := s.Class(2, types.NoTypeID, nil)
	parameterized := s.Class(1, types.NoTypeID, []types.TypeID{arg})

	erased := s.Erasure(parameterized)
	if erased == parameterized {
		t.Fatalf("Erasure(List<String>) should not equal the parameterized type itself")
	}
	got := s.Get(erased)
	if got.Payload != 0 {
		t.Errorf("erased class still carries type arguments (payload %d)", got.Payload)
	}
	if !s.SameType(erased, s.Erasure(erased)) {
		t.Errorf("erasure of an erased type must be itself (idempotent)")
	}
}

func TestErasure_ArrayErasesElement(t *testing.T) {
	s := types.NewStore()
	arg := s.Class(2, types.NoTypeID, nil)
	listOfArg := s.Class(1, types.NoTypeID, []types.TypeID{arg})
	arr := s.Array(listOfArg)

	erased := s.Erasure(arr)
	erasedElem := s.Get(erased).Elem
	if s.Get(erasedElem).Payload != 0 {
		t.Errorf("Erasure(List<String>[]) left the element type parameterized")
	}
}

func TestSameType_StructuralEqualityModuloInterning(t *testing.T) {
	s := types.NewStore()
	b := s.Builtins()

	if !s.SameType(b.Int, b.Int) {
		t.Errorf("Int should be SameType as itself")
	}
	if s.SameType(b.Int, b.Long) {
		t.Errorf("Int must not be SameType as Long")
	}

	arg := s.Class(2, types.NoTypeID, nil)
	a := s.Class(1, types.NoTypeID, []types.TypeID{arg})
	c := s.Class(1, types.NoTypeID, []types.TypeID{arg})
	if a == c {
		t.Fatalf("test setup: two separately-allocated class occurrences must not share a TypeID")
	}
	if !s.SameType(a, c) {
		t.Errorf("two List<String> occurrences with the same owner/args must be SameType")
	}

	other := s.Class(1, types.NoTypeID, []types.TypeID{s.Class(3, types.NoTypeID, nil)})
	if s.SameType(a, other) {
		t.Errorf("List<String> and List<Integer> must not be SameType")
	}
}

func TestIsSubClass_WalksSupertypeChain(t *testing.T) {
	s := types.NewStore()
	b := s.Builtins()

	const (
		ownerObject = 1
		ownerA      = 2
		ownerB      = 3
	)
	object := s.Class(ownerObject, types.NoTypeID, nil)
	a := s.Class(ownerA, types.NoTypeID, nil)
	bb := s.Class(ownerB, types.NoTypeID, nil)

	fake := &fakeClassInfo{info: map[uint32]types.ClassInfo{
		ownerObject: {},
		ownerA:      {Supertype: object},
		ownerB:      {Supertype: a},
	}}
	s.SetClassInfoProvider(fake)

	if !s.IsSubClass(bb, a) {
		t.Errorf("B (extends A) should be a subclass of A")
	}
	if !s.IsSubClass(bb, object) {
		t.Errorf("B should transitively be a subclass of Object via A")
	}
	if s.IsSubClass(a, bb) {
		t.Errorf("A must not be a subclass of its own subclass B")
	}
	if !s.IsSubClass(b.Int, b.Int) {
		t.Errorf("SameType reflexivity must make IsSubClass(t, t) true even for non-class types")
	}
}
