// Package names provides process-wide interning of identifier strings.
//
// A Name is never freed once interned: the table lives for the lifetime of
// the process, and identity equality on Name values stands in for string
// equality everywhere else in the core.
package names

import (
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Name is an interned identifier. The zero value is NoName.
type Name uint32

// NoName marks the absence of a name.
const NoName Name = 0

// Table interns identifier strings to Name values.
//
// Identifiers are normalized to Unicode NFC before hashing, so that two
// source files spelling the same identifier with different combining-mark
// sequences resolve to the same Name — the surrounding pipeline then never
// needs to reason about Unicode equivalence again.
type Table struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]Name
}

// NewTable creates an empty interning table.
func NewTable() *Table {
	return &Table{
		byID:  []string{""},
		index: map[string]Name{"": NoName},
	}
}

// Intern returns the Name for s, normalizing and allocating one if needed.
func (t *Table) Intern(s string) Name {
	normalized := norm.NFC.String(s)

	t.mu.RLock()
	if id, ok := t.index[normalized]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.index[normalized]; ok {
		return id
	}
	id := Name(len(t.byID))
	t.byID = append(t.byID, normalized)
	t.index[normalized] = id
	return id
}

// Lookup returns the string for a Name, or "" and false if it was never
// interned in this table.
func (t *Table) Lookup(n Name) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(n) >= len(t.byID) {
		return "", false
	}
	return t.byID[n], true
}

// MustLookup panics if the Name is unknown; callers hold an id they
// obtained from this table, so an unknown id means a programming error.
func (t *Table) MustLookup(n Name) string {
	s, ok := t.Lookup(n)
	if !ok {
		panic("names: unknown Name")
	}
	return s
}

// Len reports how many distinct names (including NoName) are interned.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}

// Well-known names used by the core itself, interned eagerly so components
// can compare against them by identity without a lookup.
type WellKnown struct {
	Init     Name // constructor method name
	ClInit   Name // static initializer name
	This     Name
	Super    Name
	Length   Name // array .length
	Clone    Name // array .clone()
	GetClass Name
	Object   Name
	Apply    Name // single-abstract-method name convention fallback
}

// InternWellKnown interns the fixed set of names the core special-cases.
func InternWellKnown(t *Table) WellKnown {
	return WellKnown{
		Init:     t.Intern("<init>"),
		ClInit:   t.Intern("<clinit>"),
		This:     t.Intern("this"),
		Super:    t.Intern("super"),
		Length:   t.Intern("length"),
		Clone:    t.Intern("clone"),
		GetClass: t.Intern("getClass"),
		Object:   t.Intern("Object"),
		Apply:    t.Intern("apply"),
	}
}
