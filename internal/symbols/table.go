package symbols

import (
	"nominalc/internal/names"
	"nominalc/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas plus the shared interners a
// compilation needs, mirroring the teacher's Table aggregate but scoped to
// this pipeline's data (names.Table instead of a raw string interner,
// types.Store instead of a value-less type slot).
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Names   *names.Table
	Types   *types.Store

	root ScopeID // the single top-level scope holding package symbols
}

// NewTable builds a fresh table with optional capacity hints. If names or
// typeStore is nil, fresh instances are allocated.
func NewTable(h Hints, nameTable *names.Table, typeStore *types.Store) *Table {
	if nameTable == nil {
		nameTable = names.NewTable()
	}
	if typeStore == nil {
		typeStore = types.NewStore()
	}
	t := &Table{
		Scopes:  NewScopes(uint32(h.Scopes)),
		Symbols: NewSymbols(uint32(h.Symbols)),
		Names:   nameTable,
		Types:   typeStore,
	}
	t.root = t.Scopes.New(ScopeCompilationUnit, NoScopeID, NoSymbolID)
	typeStore.SetClassInfoProvider(t)
	typeStore.SetFunctionalDescriptorProvider(t)
	return t
}

// Root returns the top-level scope new packages are declared into.
func (t *Table) Root() ScopeID { return t.root }

// Declare allocates sym, binds it into scope under name, and returns its id.
func (t *Table) Declare(scope ScopeID, name Name, sym Symbol) SymbolID {
	sym.Name = name
	sym.Scope = scope
	id := t.Symbols.New(sym)
	if sc := t.Scopes.Get(scope); sc != nil {
		sc.Declare(name, id)
	}
	return id
}

// NewScope allocates a child scope of parent, owned by owner.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner SymbolID) ScopeID {
	return t.Scopes.New(kind, parent, owner)
}

// Symbol is a convenience accessor over Symbols.Get.
func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }
