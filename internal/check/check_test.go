package check_test

import (
	"testing"

	"nominalc/internal/check"
	"nominalc/internal/diag"
	"nominalc/internal/names"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// buildOverrideHierarchy declares Object <- A <- B, with A.f the override
// target and B.f the candidate, mirroring symbols/hierarchy_test.go's
// construction style so override/clash checks can be exercised without an
// attributed tree.
func buildOverrideHierarchy(t *testing.T) (tab *symbols.Table, aMethod, bMethod symbols.SymbolID) {
	t.Helper()
	namesTab := names.NewTable()
	typeStore := types.NewStore()
	tab = symbols.NewTable(symbols.Hints{}, namesTab, typeStore)

	objectName := namesTab.Intern("Object")
	aName := namesTab.Intern("A")
	bName := namesTab.Intern("B")
	cName := namesTab.Intern("C")
	fName := namesTab.Intern("f")

	objectID := tab.Declare(tab.Root(), objectName, symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{}})
	objectType := typeStore.Class(uint32(objectID), types.NoTypeID, nil)
	tab.Symbol(objectID).Type = objectType

	cID := tab.Declare(tab.Root(), cName, symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{},
	})
	cType := typeStore.Class(uint32(cID), types.NoTypeID, nil)
	tab.Symbol(cID).Type = cType

	aScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	aID := tab.Declare(tab.Root(), aName, symbols.Symbol{
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
		Flags:  symbols.FlagPublic | symbols.FlagFinal,
		Method: &symbols.MethodData{Return: objectType, Owner: aID},
	})

	bScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	bID := tab.Declare(tab.Root(), bName, symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{MemberScope: bScope, Supertype: aType},
	})
	tab.Scopes.Get(bScope).Owner = bID

	// B.f returns C, unrelated to Object, and is declared weaker (package,
	// no modifier) than A.f's public — both an incompatible-return and a
	// weaker-access violation, plus A.f is final so overriding it at all
	// is itself illegal.
	bMethodType := typeStore.Method(nil, cType, nil)
	bMethod = tab.Declare(bScope, fName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   bMethodType,
		Method: &symbols.MethodData{Return: cType, Owner: bID},
	})

	return tab, aMethod, bMethod
}

func TestCheckOverride_RejectsFinalIncompatibleReturnAndWeakerAccess(t *testing.T) {
	tab, aMethod, bMethod := buildOverrideHierarchy(t)
	bag := diag.NewBag(16)
	c := check.New(tab, bag)

	if c.CheckOverride(diag.Span{}, bMethod, aMethod) {
		t.Fatalf("CheckOverride should reject B.f overriding A.f")
	}

	keys := map[string]bool{}
	for _, d := range bag.Items() {
		keys[d.Key] = true
	}
	for _, want := range []string{"check.override-final", "check.override-weaker-access", "check.override-incompatible-return"} {
		if !keys[want] {
			t.Errorf("expected diagnostic %q, got %v", want, bag.Items())
		}
	}
}

func TestCheckOverride_AcceptsCompatibleOverride(t *testing.T) {
	namesTab := names.NewTable()
	typeStore := types.NewStore()
	tab := symbols.NewTable(symbols.Hints{}, namesTab, typeStore)

	objectName := namesTab.Intern("Object")
	aName := namesTab.Intern("A")
	bName := namesTab.Intern("B")
	fName := namesTab.Intern("f")

	objectID := tab.Declare(tab.Root(), objectName, symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{}})
	objectType := typeStore.Class(uint32(objectID), types.NoTypeID, nil)
	tab.Symbol(objectID).Type = objectType

	aScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	aID := tab.Declare(tab.Root(), aName, symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{MemberScope: aScope, Supertype: objectType},
	})
	tab.Scopes.Get(aScope).Owner = aID
	aType := typeStore.Class(uint32(aID), types.NoTypeID, nil)
	tab.Symbol(aID).Type = aType

	aMethodType := typeStore.Method(nil, objectType, nil)
	aMethod := tab.Declare(aScope, fName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   aMethodType,
		Flags:  symbols.FlagPublic,
		Method: &symbols.MethodData{Return: objectType, Owner: aID},
	})

	bScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	bID := tab.Declare(tab.Root(), bName, symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{MemberScope: bScope, Supertype: aType},
	})
	tab.Scopes.Get(bScope).Owner = bID

	bMethodType := typeStore.Method(nil, objectType, nil)
	bMethod := tab.Declare(bScope, fName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   bMethodType,
		Flags:  symbols.FlagPublic,
		Method: &symbols.MethodData{Return: objectType, Owner: bID},
	})

	bag := diag.NewBag(16)
	c := check.New(tab, bag)
	if !c.CheckOverride(diag.Span{}, bMethod, aMethod) {
		t.Errorf("same-signature public override should be accepted, got %v", bag.Items())
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics for a compatible override, got %v", bag.Items())
	}
}

func TestCheckClashingOverloads_SameErasureDifferentSignature(t *testing.T) {
	namesTab := names.NewTable()
	typeStore := types.NewStore()
	tab := symbols.NewTable(symbols.Hints{}, namesTab, typeStore)

	objectName := namesTab.Intern("Object")
	aName := namesTab.Intern("A")
	mName := namesTab.Intern("m")

	objectID := tab.Declare(tab.Root(), objectName, symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{}})
	objectType := typeStore.Class(uint32(objectID), types.NoTypeID, nil)
	tab.Symbol(objectID).Type = objectType

	aScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	aID := tab.Declare(tab.Root(), aName, symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{MemberScope: aScope, Supertype: objectType},
	})
	tab.Scopes.Get(aScope).Owner = aID

	tvName := namesTab.Intern("T")
	tvID := tab.Declare(aScope, tvName, symbols.Symbol{Kind: symbols.SymTypeVariable})
	tvType := typeStore.TypeVar(uint32(tvID), objectType)
	tab.Symbol(tvID).Type = tvType

	// m(T) erases to m(Object), same as m(Object) below, but the two
	// declared method types differ — the classic generic-erasure clash.
	mTType := typeStore.Method([]types.TypeID{tvType}, objectType, nil)
	mT := tab.Declare(aScope, mName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   mTType,
		Flags:  symbols.FlagPublic,
		Method: &symbols.MethodData{Return: objectType, Owner: aID},
	})

	mObjectType := typeStore.Method([]types.TypeID{objectType}, objectType, nil)
	mObject := tab.Declare(aScope, mName, symbols.Symbol{
		Kind:   symbols.SymMethod,
		Type:   mObjectType,
		Flags:  symbols.FlagPublic,
		Method: &symbols.MethodData{Return: objectType, Owner: aID},
	})

	bag := diag.NewBag(16)
	c := check.New(tab, bag)
	if c.CheckClashingOverloads(diag.Span{}, mT, mObject) {
		t.Fatalf("m(T) and m(Object) should clash once T is erased to Object")
	}
	if bag.Len() != 1 || bag.Items()[0].Key != "check.name-clash-erasure" {
		t.Errorf("expected a single check.name-clash-erasure diagnostic, got %v", bag.Items())
	}
}

func TestCheckClashingOverloads_DifferentNamesNeverClash(t *testing.T) {
	namesTab := names.NewTable()
	typeStore := types.NewStore()
	tab := symbols.NewTable(symbols.Hints{}, namesTab, typeStore)

	objectID := tab.Declare(tab.Root(), namesTab.Intern("Object"), symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{}})
	objectType := typeStore.Class(uint32(objectID), types.NoTypeID, nil)
	tab.Symbol(objectID).Type = objectType

	aScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	aID := tab.Declare(tab.Root(), namesTab.Intern("A"), symbols.Symbol{
		Kind:  symbols.SymClass,
		Class: &symbols.ClassData{MemberScope: aScope, Supertype: objectType},
	})
	tab.Scopes.Get(aScope).Owner = aID

	mType := typeStore.Method(nil, objectType, nil)
	mID := tab.Declare(aScope, namesTab.Intern("m"), symbols.Symbol{
		Kind: symbols.SymMethod, Type: mType, Method: &symbols.MethodData{Return: objectType, Owner: aID},
	})
	nType := typeStore.Method(nil, objectType, nil)
	nID := tab.Declare(aScope, namesTab.Intern("n"), symbols.Symbol{
		Kind: symbols.SymMethod, Type: nType, Method: &symbols.MethodData{Return: objectType, Owner: aID},
	})

	bag := diag.NewBag(16)
	c := check.New(tab, bag)
	if !c.CheckClashingOverloads(diag.Span{}, mID, nID) {
		t.Errorf("methods with different names must never clash, got %v", bag.Items())
	}
}

// buildCapturedList declares a one-type-parameter class List<T> and returns
// a TypeID instantiated with a single "? extends Object" wildcard argument,
// captured per types.Store.Capture (spec.md §3 invariant (d)).
func buildCapturedList(t *testing.T) (store *types.Store, captured, objectType types.TypeID) {
	t.Helper()
	namesTab := names.NewTable()
	store = types.NewStore()
	tab := symbols.NewTable(symbols.Hints{}, namesTab, store)

	objectID := tab.Declare(tab.Root(), namesTab.Intern("Object"), symbols.Symbol{Kind: symbols.SymClass, Class: &symbols.ClassData{}})
	objectType = store.Class(uint32(objectID), types.NoTypeID, nil)
	tab.Symbol(objectID).Type = objectType

	listScope := tab.NewScope(symbols.ScopeClass, tab.Root(), symbols.NoSymbolID)
	tvID := tab.Declare(listScope, namesTab.Intern("T"), symbols.Symbol{Kind: symbols.SymTypeVariable})
	tvType := store.TypeVar(uint32(tvID), objectType)
	tab.Symbol(tvID).Type = tvType

	listID := tab.Declare(tab.Root(), namesTab.Intern("List"), symbols.Symbol{
		Kind: symbols.SymClass,
		Class: &symbols.ClassData{
			MemberScope: listScope,
			Supertype:   objectType,
			TypeParams:  []symbols.SymbolID{tvID},
		},
	})
	tab.Scopes.Get(listScope).Owner = listID

	wildcard := store.Wildcard(types.WildcardExtends, objectType)
	raw := store.Class(uint32(listID), types.NoTypeID, []types.TypeID{wildcard})
	captured = store.Capture(raw)
	return store, captured, objectType
}

func TestCheckNoCapturedEscape_RejectsEscapeToUnrelatedDeclaredType(t *testing.T) {
	store, captured, objectType := buildCapturedList(t)
	bag := diag.NewBag(16)
	c := &check.Checker{Symbols: nil, Types: store, Reporter: bag}

	if c.CheckNoCapturedEscape(diag.Span{}, captured, objectType) {
		t.Fatalf("a captured wildcard type must not be allowed to escape into a declared Object-typed position")
	}
	if bag.Len() != 1 || bag.Items()[0].Key != "check.captured-type-escapes" {
		t.Errorf("expected a single check.captured-type-escapes diagnostic, got %v", bag.Items())
	}
}

func TestCheckNoCapturedEscape_AllowsNonCapturedType(t *testing.T) {
	store, _, objectType := buildCapturedList(t)
	bag := diag.NewBag(16)
	c := &check.Checker{Symbols: nil, Types: store, Reporter: bag}

	if !c.CheckNoCapturedEscape(diag.Span{}, objectType, objectType) {
		t.Errorf("a plain (non-captured) type must never be rejected, got %v", bag.Items())
	}
}
