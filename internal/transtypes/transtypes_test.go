package transtypes_test

import (
	"testing"

	"nominalc/internal/diag"
	"nominalc/internal/names"
	"nominalc/internal/symbols"
	"nominalc/internal/transtypes"
	"nominalc/internal/types"
)

// S4. Covariant override + bridge.
// Input: class A { Object f() {...} }  class B extends A { @Override String f() {...} }
// Expected: after erasing B, B has two methods: the original String f() and
// a synthetic bridge Object f() {public, synthetic} forwarding to it.
func TestEraseAndAddBridges_CovariantOverride(t *testing.T) {
	namesTab := names.NewTable()
	typeStore := types.NewStore()
	symTab := symbols.NewTable(symbols.Hints{}, namesTab, typeStore)

	objectName := namesTab.Intern("Object")
	stringName := namesTab.Intern("String")
	aName := namesTab.Intern("A")
	bName := namesTab.Intern("B")
	fName := namesTab.Intern("f")

	// Object and String only need their own identity for this scenario, not
	// a declared member set.
	objectID := symTab.Declare(symTab.Root(), objectName, symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{}})
	objectType := typeStore.Class(uint32(objectID), types.NoTypeID, nil)
	symTab.Symbol(objectID).Type = objectType

	stringID := symTab.Declare(symTab.Root(), stringName, symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{}})
	stringType := typeStore.Class(uint32(stringID), types.NoTypeID, nil)
	symTab.Symbol(stringID).Type = stringType

	// class A { Object f() {...} }
	aScope := symTab.NewScope(symbols.ScopeClass, symTab.Root(), symbols.NoSymbolID)
	aID := symTab.Declare(symTab.Root(), aName, symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{MemberScope: aScope}})
	symTab.Scopes.Get(aScope).Owner = aID
	aType := typeStore.Class(uint32(aID), types.NoTypeID, nil)
	symTab.Symbol(aID).Type = aType

	aMethodType := typeStore.Method(nil, objectType, nil)
	symTab.Declare(aScope, fName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   aMethodType,
		Method: &symbols.MethodData{Return: objectType, Owner: aID},
	})

	// class B extends A { @Override String f() {...} }
	bScope := symTab.NewScope(symbols.ScopeClass, symTab.Root(), symbols.NoSymbolID)
	bID := symTab.Declare(symTab.Root(), bName, symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{MemberScope: bScope, Supertype: aType},
	})
	symTab.Scopes.Get(bScope).Owner = bID
	bType := typeStore.Class(uint32(bID), aType, nil)
	symTab.Symbol(bID).Type = bType

	bMethodType := typeStore.Method(nil, stringType, nil)
	bMethodID := symTab.Declare(bScope, fName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   bMethodType,
		Method: &symbols.MethodData{Return: stringType, Owner: bID},
	})

	translator := transtypes.New(symTab, diag.Nop)
	bridges := translator.EraseAndAddBridges(bID)

	if len(bridges) != 1 {
		t.Fatalf("EraseAndAddBridges(B) returned %d bridges, want 1: %+v", len(bridges), bridges)
	}
	br := bridges[0]
	if br.Forwards != bMethodID {
		t.Errorf("bridge forwards = %v, want B.f (%v)", br.Forwards, bMethodID)
	}

	bridgeSym := findOtherMember(symTab, bScope, fName, bMethodID)
	if bridgeSym == nil {
		t.Fatalf("no synthesized bridge method found in B's member scope")
	}
	if !bridgeSym.Flags.Has(symbols.FlagSynthetic) || !bridgeSym.Flags.Has(symbols.FlagPublic) {
		t.Errorf("bridge flags = %v, want {public, synthetic}", bridgeSym.Flags)
	}
	if bridgeSym.Method.Return != objectType {
		t.Errorf("bridge return type = %v, want Object's type %v (A.f's erased signature)", bridgeSym.Method.Return, objectType)
	}
	if bridgeSym.Method.Overrides != bMethodID {
		t.Errorf("bridge Method.Overrides = %v, want B.f (%v)", bridgeSym.Method.Overrides, bMethodID)
	}
}

func findOtherMember(tab *symbols.Table, scope symbols.ScopeID, name symbols.Name, exclude symbols.SymbolID) *symbols.Symbol {
	sc := tab.Scopes.Get(scope)
	for _, id := range sc.Lookup(name) {
		if id == exclude {
			continue
		}
		return tab.Symbol(id)
	}
	return nil
}
