package names_test

import (
	"testing"

	"nominalc/internal/names"
)

func TestIntern_SameStringYieldsSameName(t *testing.T) {
	tab := names.NewTable()
	a := tab.Intern("foo")
	b := tab.Intern("foo")
	if a != b {
		t.Errorf("Intern(\"foo\") twice = %v, %v; want identical Names", a, b)
	}
}

func TestIntern_DistinctStringsYieldDistinctNames(t *testing.T) {
	tab := names.NewTable()
	a := tab.Intern("foo")
	b := tab.Intern("bar")
	if a == b {
		t.Errorf("Intern(\"foo\") and Intern(\"bar\") collided on %v", a)
	}
}

func TestIntern_NFCNormalization(t *testing.T) {
	tab := names.NewTable()
	// "e" + combining acute accent (U+0065 U+0301) vs precomposed "é" (U+00E9).
	decomposed := tab.Intern("café")
	precomposed := tab.Intern("café")
	if decomposed != precomposed {
		t.Errorf("NFC-equivalent spellings interned to different Names: %v vs %v", decomposed, precomposed)
	}
}

func TestLookup_RoundTrips(t *testing.T) {
	tab := names.NewTable()
	n := tab.Intern("widget")
	s, ok := tab.Lookup(n)
	if !ok || s != "widget" {
		t.Errorf("Lookup(Intern(\"widget\")) = %q, %v; want \"widget\", true", s, ok)
	}
}

func TestLookup_UnknownNameFails(t *testing.T) {
	tab := names.NewTable()
	_, ok := tab.Lookup(names.Name(9999))
	if ok {
		t.Errorf("Lookup of a never-interned Name should fail")
	}
}

func TestInternWellKnown_InternsFixedSet(t *testing.T) {
	tab := names.NewTable()
	wk := names.InternWellKnown(tab)
	if wk.This == names.NoName || wk.Super == names.NoName || wk.Init == names.NoName {
		t.Errorf("InternWellKnown left a well-known name as NoName")
	}
	if wk.This == wk.Super {
		t.Errorf("\"this\" and \"super\" must intern to distinct Names")
	}
	if got := tab.Intern("this"); got != wk.This {
		t.Errorf("re-interning \"this\" = %v, want the same Name as WellKnown.This (%v)", got, wk.This)
	}
}
