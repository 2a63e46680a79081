package symbols

import (
	"nominalc/internal/names"
	"nominalc/internal/types"
)

// ClassInfo implements types.ClassInfoProvider: it forces completion of the
// requested class symbol (lazily filling in supertype/interfaces/members on
// first demand, spec.md §4.3) and reports its hierarchy facts.
func (t *Table) ClassInfo(owner uint32) (types.ClassInfo, bool) {
	id := SymbolID(owner)
	sym := t.Symbols.Get(id)
	if sym == nil || sym.Class == nil {
		return types.ClassInfo{}, false
	}
	_ = t.Complete(id) // best-effort; a failed completer still yields partial data
	tps := make([]types.TypeID, len(sym.Class.TypeParams))
	for i, tv := range sym.Class.TypeParams {
		tps[i] = t.Symbols.Get(tv).Type
	}
	return types.ClassInfo{
		Supertype:   sym.Class.Supertype,
		Interfaces:  sym.Class.Interfaces,
		TypeParams:  tps,
		IsInterface: sym.Class.IsInterface,
	}, true
}

// AbstractMethods implements types.FunctionalDescriptorProvider: it returns
// every method directly declared on owner that has neither a body
// (FlagDefault) nor a static qualification excluding it from
// functional-interface descriptor search, skipping Object-equivalent
// methods (equals/hashCode/toString) per the lambda conversion rules.
func (t *Table) AbstractMethods(owner uint32) []types.AbstractMethod {
	id := SymbolID(owner)
	sym := t.Symbols.Get(id)
	if sym == nil || sym.Class == nil {
		return nil
	}
	_ = t.Complete(id)
	scope := t.Scopes.Get(sym.Class.MemberScope)
	if scope == nil {
		return nil
	}
	var out []types.AbstractMethod
	for _, mid := range scope.Snapshot() {
		m := t.Symbols.Get(mid)
		if m == nil || m.Kind != SymMethod || m.Method == nil {
			continue
		}
		if m.Flags.Has(FlagDefault) || m.Flags.Has(FlagStatic) {
			continue
		}
		if isObjectMethodName(t.Names, m.Name) {
			continue
		}
		out = append(out, types.AbstractMethod{Owner: uint32(mid), Sig: m.Type})
	}
	return out
}

func isObjectMethodName(tab *names.Table, n Name) bool {
	s, ok := tab.Lookup(n)
	if !ok {
		return false
	}
	switch s {
	case "equals", "hashCode", "toString":
		return true
	default:
		return false
	}
}
