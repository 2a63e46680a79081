package symbols_test

import (
	"testing"

	"nominalc/internal/names"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// buildABC declares three classes, Object <- A <- B, with A.f() and an
// overriding B.f(), mirroring transtypes_test.go's construction style
// (direct Table.Declare calls, no AST) since hierarchy queries only need
// symbol/type data, not an attributed tree.
func buildABC(t *testing.T) (tab *symbols.Table, aID, bID, objectID, aMethod, bMethod symbols.SymbolID) {
	t.Helper()
	namesTab := names.NewTable()
	typeStore := types.NewStore()
	tab = symbols.NewTable(symbols.Hints{}, namesTab, typeStore)

	objectName := namesTab.Intern("Object")
	aName := namesTab.Intern("A")
	bName := namesTab.Intern("B")
	fName := namesTab.Intern("f")

	objectID = tab.Declare(tab.Root(), objectName, symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{}})
	objectType := typeStore.Class(uint32(objectID), types.NoTypeID, nil)
	tab.Symbol(objectID).Type = objectType

	aScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	aID = tab.Declare(tab.Root(), aName, symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{MemberScope: aScope, Supertype: objectType},
	})
	tab.Scopes.Get(aScope).Owner = aID
	aType := typeStore.Class(uint32(aID), types.NoTypeID, nil)
	tab.Symbol(aID).Type = aType

	aMethodType := typeStore.Method(nil, objectType, nil)
	aMethod = tab.Declare(aScope, fName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   aMethodType,
		Flags:  symbols.FlagPublic,
		Method: &symbols.MethodData{Return: objectType, Owner: aID},
	})

	bScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	bID = tab.Declare(tab.Root(), bName, symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{MemberScope: bScope, Supertype: aType},
	})
	tab.Scopes.Get(bScope).Owner = bID
	bType := typeStore.Class(uint32(bID), aType, nil)
	tab.Symbol(bID).Type = bType

	bMethodType := typeStore.Method(nil, objectType, nil)
	bMethod = tab.Declare(bScope, fName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   bMethodType,
		Flags:  symbols.FlagPublic,
		Method: &symbols.MethodData{Return: objectType, Owner: bID},
	})

	return tab, aID, bID, objectID, aMethod, bMethod
}

func TestIsSubClass_ClassChain(t *testing.T) {
	tab, aID, bID, objectID, _, _ := buildABC(t)

	if !tab.IsSubClass(bID, aID) {
		t.Errorf("B (extends A) should be a subclass of A")
	}
	if !tab.IsSubClass(bID, objectID) {
		t.Errorf("B should transitively be a subclass of Object via A")
	}
	if tab.IsSubClass(aID, bID) {
		t.Errorf("A must not be a subclass of its own subclass B")
	}
	if !tab.IsSubClass(aID, aID) {
		t.Errorf("IsSubClass(A, A) should be true (reflexive)")
	}
}

func TestOverrides_SameNameSameErasedParamsSubclass(t *testing.T) {
	tab, _, _, _, aMethod, bMethod := buildABC(t)

	if !tab.Overrides(bMethod, aMethod) {
		t.Errorf("B.f should override A.f (same name, same erased params, B <: A)")
	}
	if tab.Overrides(aMethod, bMethod) {
		t.Errorf("A.f must not override B.f (A is not a subclass of B)")
	}
}

func TestIsMemberOf_InheritedMethod(t *testing.T) {
	tab, aID, bID, _, aMethod, _ := buildABC(t)

	if !tab.IsMemberOf(aMethod, aID) {
		t.Errorf("A.f should be a member of A (declared directly)")
	}
	if !tab.IsMemberOf(aMethod, bID) {
		t.Errorf("A.f should be inherited as a member of B")
	}
}

func TestIsInheritedIn_PublicVisibleEverywhereInSubclass(t *testing.T) {
	tab, _, bID, _, aMethod, _ := buildABC(t)

	if !tab.IsInheritedIn(aMethod, bID) {
		t.Errorf("a public method declared on A should be inherited-visible in subclass B")
	}
}
