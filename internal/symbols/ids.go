// Package symbols models declared entities (classes, methods, fields,
// type variables, packages, modules, operators) and the lexical scopes
// that bind names to them. Symbols and scopes live in process-wide arenas,
// addressed by SymbolID/ScopeID, following the same arena-of-structs
// convention as internal/types and internal/source.
package symbols

// ScopeID identifies a scope in the symbol table arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID identifies a symbol inside the symbol table arena.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol reference.
const NoSymbolID SymbolID = 0

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
