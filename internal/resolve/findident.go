package resolve

import (
	"nominalc/internal/env"
	"nominalc/internal/symbols"
)

// FindIdent resolves a bare identifier from within env: scope lookup
// outward, then (if unmatched) the enclosing class's inherited member
// scope, then the enclosing package, following Java's simple-name
// resolution order (spec.md §4.5). The package step finds nothing:
// findIdentInPackage always returns nil.
func (r *Resolver) FindIdent(e *env.Env[env.AttrContext], name symbols.Name) []symbols.SymbolID {
	if bindings := r.Symbols.Lookup(e.Info.Scope, name); len(bindings) > 0 {
		return bindings
	}
	if e.Class != 0 {
		if found := r.findIdentInType(symbols.SymbolID(e.Class), name); len(found) > 0 {
			return found
		}
	}
	return r.findIdentInPackage(e.Unit, name)
}

// findIdentInType searches a class's own and inherited member scopes.
func (r *Resolver) findIdentInType(class symbols.SymbolID, name symbols.Name) []symbols.SymbolID {
	seen := map[symbols.SymbolID]bool{}
	var walk func(symbols.SymbolID) []symbols.SymbolID
	walk = func(cur symbols.SymbolID) []symbols.SymbolID {
		if cur == symbols.NoSymbolID || seen[cur] {
			return nil
		}
		seen[cur] = true
		sym := r.Symbols.Symbol(cur)
		if sym == nil || sym.Class == nil {
			return nil
		}
		_ = r.Symbols.Complete(cur)
		if scope := r.Symbols.Scopes.Get(sym.Class.MemberScope); scope != nil {
			if found := scope.Lookup(name); len(found) > 0 {
				return found
			}
		}
		for _, iface := range sym.Class.Interfaces {
			ifaceSym := symbols.SymbolID(r.Types.Get(iface).Owner)
			if found := walk(ifaceSym); len(found) > 0 {
				return found
			}
		}
		if sym.Class.Supertype != 0 {
			supSym := symbols.SymbolID(r.Types.Get(sym.Class.Supertype).Owner)
			return walk(supSym)
		}
		return nil
	}
	return walk(class)
}

// findIdentInPackage searches the enclosing package's own scope.
func (r *Resolver) findIdentInPackage(unit uint32, name symbols.Name) []symbols.SymbolID {
	// unit is an opaque compilation-unit id and resolve has no
	// unit->package-scope mapping, so no package-level lookup is made.
	return nil
}

// FindIdentInScope is the AST-agnostic primitive: search starting at scope.
func (r *Resolver) FindIdentInScope(scope symbols.ScopeID, name symbols.Name) []symbols.SymbolID {
	return r.Symbols.Lookup(scope, name)
}

// FindMemberType resolves name as a member of site's class (its own and
// inherited member scopes), returning the symbols found; no type arguments
// are substituted.
func (r *Resolver) FindMemberType(site symbols.SymbolID, name symbols.Name) []symbols.SymbolID {
	return r.findIdentInType(site, name)
}
