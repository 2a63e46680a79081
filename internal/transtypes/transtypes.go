// Package transtypes implements the erasure and bridge-method-synthesis pass
// (spec.md §4's TransTypes component), the last stage of the pipeline: once
// a compilation unit is fully attributed, every generic class and method
// declaration is rewritten to its erased signature, and synthetic bridge
// methods are added wherever an override's erasure no longer matches its
// overridden method's erasure (javac's TransTypes, adapted from the
// teacher's monomorphizing rewrite pass to erasure-with-bridges instead of
// full specialization, since spec.md's generics model is erasure-based).
package transtypes

import (
	"nominalc/internal/diag"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// Translator rewrites a symbol table's generic declarations to their erased
// form and records the bridge methods erasure makes necessary.
type Translator struct {
	Symbols  *symbols.Table
	Types    *types.Store
	Reporter diag.Reporter

	bridgeSpans map[bridgeKey]symbols.SymbolID
}

// bridgeKey identifies one already-synthesized bridge by its owning class
// and erased signature, so a second erasure-coincidence for the same class
// doesn't synthesize a duplicate forwarding method.
type bridgeKey struct {
	class uint32
	name  symbols.Name
	sig   string
}

// New builds a Translator over tab, reporting clashes through rep.
func New(tab *symbols.Table, rep diag.Reporter) *Translator {
	if rep == nil {
		rep = diag.Nop
	}
	return &Translator{
		Symbols:     tab,
		Types:       tab.Types,
		Reporter:    rep,
		bridgeSpans: map[bridgeKey]symbols.SymbolID{},
	}
}

// Bridge describes one synthesized forwarding method: a synthetic,
// FlagSynthetic-tagged method with the overridden method's erased
// signature, whose body (conceptually) is "return this.impl(args...)" —
// impl being the class's own, more specific, override.
type Bridge struct {
	Owner  symbols.SymbolID // the class the bridge is added to
	Name   symbols.Name
	ErasedSig types.TypeID
	Forwards symbols.SymbolID // the actual (non-erased) override it forwards to
}

// EraseAndAddBridges is transtypes' entry point (spec.md's
// core.EraseAndAddBridges): erases classSym's own declared member
// signatures in place and returns the bridge methods erasure now requires
// between classSym and its supertype/interfaces.
func (t *Translator) EraseAndAddBridges(classSym symbols.SymbolID) []Bridge {
	sym := t.Symbols.Symbol(classSym)
	if sym == nil || sym.Class == nil {
		return nil
	}
	t.eraseClassType(classSym)
	scope := t.Symbols.Scopes.Get(sym.Class.MemberScope)
	if scope == nil {
		return nil
	}
	var bridges []Bridge
	for _, memberID := range scope.Snapshot() {
		member := t.Symbols.Symbol(memberID)
		if member == nil || member.Method == nil {
			continue
		}
		t.eraseMethodType(memberID)
		bridges = append(bridges, t.bridgesFor(classSym, memberID)...)
	}
	return bridges
}

// eraseClassType rewrites classSym's own Type (a KindClass referencing its
// declared type parameters) to its erasure — the raw class type.
func (t *Translator) eraseClassType(classSym symbols.SymbolID) {
	sym := t.Symbols.Symbol(classSym)
	if sym == nil {
		return
	}
	sym.Type = t.Types.Erasure(sym.Type)
}

// eraseMethodType rewrites a method symbol's Type (a KindMethod/KindForAll)
// to its erasure: type parameters dropped, every parameter/return/thrown
// type replaced by its own erasure.
func (t *Translator) eraseMethodType(methodID symbols.SymbolID) {
	sym := t.Symbols.Symbol(methodID)
	if sym == nil || sym.Method == nil {
		return
	}
	params := make([]types.TypeID, len(sym.Method.Params))
	for i, p := range sym.Method.Params {
		if pSym := t.Symbols.Symbol(p); pSym != nil {
			params[i] = t.Types.Erasure(pSym.Type)
		}
	}
	ret := t.Types.Erasure(sym.Method.Return)
	thrown := make([]types.TypeID, len(sym.Method.Thrown))
	for i, th := range sym.Method.Thrown {
		thrown[i] = t.Types.Erasure(th)
	}
	sym.Method.Return = ret
	sym.Method.Thrown = thrown
	sym.Type = t.Types.Method(params, ret, thrown)
}

// bridgesFor checks overrideID (a just-erased method of classSym) against
// every method it overrides in the supertype/interface hierarchy: if the
// overridden method's own erased signature differs from overrideID's
// (because the override narrowed a generic parameter/return type before
// erasure), a bridge with the overridden method's erasure is required.
func (t *Translator) bridgesFor(classSym, overrideID symbols.SymbolID) []Bridge {
	overrideSym := t.Symbols.Symbol(overrideID)
	if overrideSym == nil || overrideSym.Method == nil {
		return nil
	}
	var out []Bridge
	for _, baseID := range t.inheritedCandidates(classSym, overrideSym.Name) {
		if baseID == overrideID {
			continue
		}
		baseSym := t.Symbols.Symbol(baseID)
		if baseSym == nil || baseSym.Method == nil {
			continue
		}
		if !t.Symbols.Overrides(overrideID, baseID) {
			continue
		}
		// Overrides already requires equal erased parameters, so only the
		// erased return types can differ.
		if t.Types.SameType(t.Types.Erasure(baseSym.Method.Return), overrideSym.Method.Return) {
			continue // erasures already agree, no bridge needed
		}
		key := bridgeKey{class: uint32(classSym), name: overrideSym.Name, sig: sigKey(t.Types, baseSym.Type)}
		if _, ok := t.bridgeSpans[key]; ok {
			continue
		}
		bridgeID := t.synthesizeBridge(classSym, overrideID, baseSym)
		t.bridgeSpans[key] = bridgeID
		out = append(out, Bridge{Owner: classSym, Name: overrideSym.Name, ErasedSig: baseSym.Type, Forwards: overrideID})
	}
	return out
}

// inheritedCandidates returns every method named name reachable from
// classSym's supertype/interface hierarchy (not classSym's own scope).
func (t *Translator) inheritedCandidates(classSym symbols.SymbolID, name symbols.Name) []symbols.SymbolID {
	sym := t.Symbols.Symbol(classSym)
	if sym == nil || sym.Class == nil {
		return nil
	}
	var out []symbols.SymbolID
	var walk func(owner symbols.SymbolID)
	seen := map[symbols.SymbolID]bool{classSym: true}
	walk = func(owner symbols.SymbolID) {
		if owner == symbols.NoSymbolID || seen[owner] {
			return
		}
		seen[owner] = true
		ownerSym := t.Symbols.Symbol(owner)
		if ownerSym == nil || ownerSym.Class == nil {
			return
		}
		if scope := t.Symbols.Scopes.Get(ownerSym.Class.MemberScope); scope != nil {
			out = append(out, scope.Lookup(name)...)
		}
		for _, iface := range ownerSym.Class.Interfaces {
			walk(symbols.SymbolID(t.Types.Get(iface).Owner))
		}
		if ownerSym.Class.Supertype != types.NoTypeID {
			walk(symbols.SymbolID(t.Types.Get(ownerSym.Class.Supertype).Owner))
		}
	}
	for _, iface := range sym.Class.Interfaces {
		walk(symbols.SymbolID(t.Types.Get(iface).Owner))
	}
	if sym.Class.Supertype != types.NoTypeID {
		walk(symbols.SymbolID(t.Types.Get(sym.Class.Supertype).Owner))
	}
	return out
}

// synthesizeBridge declares a new FlagSynthetic method on classSym carrying
// baseSym's erased signature, forwarding to impl (conceptually: "return
// this.impl(args)", or "super.impl(args)" when impl is itself inherited).
func (t *Translator) synthesizeBridge(classSym, impl symbols.SymbolID, baseSym *symbols.Symbol) symbols.SymbolID {
	classData := t.Symbols.Symbol(classSym).Class
	return t.Symbols.Declare(classData.MemberScope, baseSym.Name, symbols.Symbol{
		Kind:  symbols.SymMethod,
		Flags: symbols.FlagSynthetic | symbols.FlagPublic,
		Type:  baseSym.Type,
		Method: &symbols.MethodData{
			Params:    baseSym.Method.Params,
			Return:    baseSym.Method.Return,
			Thrown:    baseSym.Method.Thrown,
			Overrides: impl,
			Owner:     classSym,
		},
	})
}

func sigKey(store *types.Store, sig types.TypeID) string {
	full := store.Sig(store.Get(sig).Sig)
	key := ""
	for _, p := range full.Params {
		key += ",p" + itoa(uint32(p))
	}
	key += ";r" + itoa(uint32(full.Return))
	return key
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
