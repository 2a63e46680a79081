// Package resolve implements name and overload resolution (spec.md §4.5):
// finding the symbol(s) an identifier or member-select could denote, and
// picking the applicable method/constructor among overloads across the
// three-phase search (BASIC, BOX, VARARITY).
package resolve

import (
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// Resolver carries the shared tables every resolution query consults.
type Resolver struct {
	Symbols *symbols.Table
	Types   *types.Store
}

// New builds a Resolver over the given symbol table (and its wired Types store).
func New(tab *symbols.Table) *Resolver {
	return &Resolver{Symbols: tab, Types: tab.Types}
}
