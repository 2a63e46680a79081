package symbols

import "nominalc/internal/names"

// Name is re-exported for readability within this package's signatures.
type Name = names.Name

// ScopeKind enumerates the lexical scope categories spec.md §3 lists.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeCompilationUnit
	ScopePackage
	ScopeClass
	ScopeMethod
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeCompilationUnit:
		return "compilation-unit"
	case ScopePackage:
		return "package"
	case ScopeClass:
		return "class"
	case ScopeMethod:
		return "method"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is a lexical binding environment: a name can map to more than one
// symbol (method overloading), so lookups return all bindings for a name
// and callers filter by kind/arity/applicability as needed.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Owner    SymbolID // the class/method/package symbol this scope belongs to
	Children []ScopeID

	names map[Name][]SymbolID
	order []SymbolID // declaration order, for deterministic iteration/snapshotting
}

// Declare binds name to sym in this scope, appending to any existing
// bindings (shadowing is resolved at lookup time by walking enclosing
// scopes outward, not by overwriting here — spec.md §3's scope semantics).
func (sc *Scope) Declare(name Name, sym SymbolID) {
	sc.names[name] = append(sc.names[name], sym)
	sc.order = append(sc.order, sym)
}

// Lookup returns every symbol directly bound to name in this scope (not
// its ancestors).
func (sc *Scope) Lookup(name Name) []SymbolID {
	return sc.names[name]
}

// Snapshot returns the symbols declared in this scope in declaration order,
// independent of later mutation (copy, not alias) — used when a consumer
// needs a stable iteration order (e.g. member listing for diagnostics).
func (sc *Scope) Snapshot() []SymbolID {
	out := make([]SymbolID, len(sc.order))
	copy(out, sc.order)
	return out
}

// Lookup resolves name by walking from scope outward through its parent
// chain, returning the bindings from the first (innermost) scope that
// declares it — shadowing, per spec.md's scope model.
func (t *Table) Lookup(scope ScopeID, name Name) []SymbolID {
	for cur := scope; cur.IsValid(); {
		sc := t.Scopes.Get(cur)
		if sc == nil {
			return nil
		}
		if bindings := sc.Lookup(name); len(bindings) > 0 {
			return bindings
		}
		cur = sc.Parent
	}
	return nil
}

// LookupChain is like Lookup but returns bindings from every enclosing
// scope that declares name, innermost first.
func (t *Table) LookupChain(scope ScopeID, name Name) [][]SymbolID {
	var out [][]SymbolID
	for cur := scope; cur.IsValid(); {
		sc := t.Scopes.Get(cur)
		if sc == nil {
			break
		}
		if bindings := sc.Lookup(name); len(bindings) > 0 {
			out = append(out, bindings)
		}
		cur = sc.Parent
	}
	return out
}
