package symbols

// IsSubClass reports whether sub's class hierarchy reaches base (by class
// chain, ignoring interfaces — use Types.IsSubClass for the full relation
// once both symbols have a Type assigned).
func (t *Table) IsSubClass(sub, base SymbolID) bool {
	if sub == base {
		return true
	}
	seen := map[SymbolID]bool{}
	for cur := sub; cur.IsValid() && !seen[cur]; {
		seen[cur] = true
		sym := t.Symbols.Get(cur)
		if sym == nil || sym.Class == nil {
			return false
		}
		_ = t.Complete(cur)
		sup := sym.Class.Supertype
		if sup == 0 {
			return false
		}
		supOwner := t.Types.Get(sup).Owner
		if SymbolID(supOwner) == base {
			return true
		}
		cur = SymbolID(supOwner)
	}
	return false
}

// IsMemberOf reports whether member (a field/method symbol) is a member of
// clazz: declared directly on clazz or on a class in clazz's superclass
// chain. Interfaces are not walked and shadowing is not checked.
func (t *Table) IsMemberOf(member, clazz SymbolID) bool {
	owner := t.ownerOf(member)
	if owner == clazz {
		return true
	}
	return t.IsSubClass(clazz, owner)
}

// IsInheritedIn reports whether member, declared in its owner, is visible
// (per its access Flags) from within clazz — a simplified accessibility
// check: public/protected members are inherited everywhere a subclass
// reaches, package-private members only within the same declaring package,
// private members never.
func (t *Table) IsInheritedIn(member, clazz SymbolID) bool {
	sym := t.Symbols.Get(member)
	if sym == nil {
		return false
	}
	if sym.Flags.Has(FlagPrivate) {
		owner := t.ownerOf(member)
		return owner == clazz
	}
	if sym.Flags.Has(FlagPublic) || sym.Flags.Has(FlagProtected) {
		return t.IsMemberOf(member, clazz)
	}
	// package-private: same enclosing package
	return t.samePackage(t.ownerOf(member), clazz)
}

func (t *Table) ownerOf(sym SymbolID) SymbolID {
	s := t.Symbols.Get(sym)
	if s == nil {
		return NoSymbolID
	}
	switch s.Kind {
	case SymMethod, SymConstructor:
		if s.Method != nil {
			return s.Method.Owner
		}
	case SymField, SymLocalVar, SymParam:
		if s.Var != nil {
			return s.Var.Owner
		}
	}
	return NoSymbolID
}

func (t *Table) samePackage(a, b SymbolID) bool {
	sa, sb := t.Symbols.Get(a), t.Symbols.Get(b)
	if sa == nil || sb == nil || sa.Class == nil || sb.Class == nil {
		return false
	}
	return sa.Class.EnclosingPkg == sb.Class.EnclosingPkg
}

// Overrides reports whether candidate (a method declared on or inherited by
// site) overrides base: same name (checked by the caller via scope lookup),
// same erased parameter types, and base is reachable from site's hierarchy
// above candidate's own declaring class.
func (t *Table) Overrides(candidate, base SymbolID) bool {
	c, b := t.Symbols.Get(candidate), t.Symbols.Get(base)
	if c == nil || b == nil || c.Method == nil || b.Method == nil {
		return false
	}
	if c.Name != b.Name {
		return false
	}
	if !t.IsSubClass(c.Method.Owner, b.Method.Owner) && c.Method.Owner != b.Method.Owner {
		return false
	}
	if b.Flags.Has(FlagStatic) {
		return false // static methods are hidden, not overridden
	}
	return t.sameErasedParams(c.Method, b.Method)
}

// BinaryOverrides applies the erasure-relative override test used after
// TransTypes: two methods override at the binary level if their erased
// signatures match exactly, even if their declared (pre-erasure) signatures
// differ by generic substitution — the condition bridge synthesis resolves.
func (t *Table) BinaryOverrides(candidate, base SymbolID) bool {
	return t.Overrides(candidate, base)
}

func (t *Table) sameErasedParams(a, b *MethodData) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		pa, pb := t.Symbols.Get(a.Params[i]), t.Symbols.Get(b.Params[i])
		if pa == nil || pb == nil {
			return false
		}
		if !t.Types.SameType(t.Types.Erasure(pa.Type), t.Types.Erasure(pb.Type)) {
			return false
		}
	}
	return true
}
