package check

import (
	"nominalc/internal/diag"
	"nominalc/internal/symbols"
)

// CheckOverride validates that candidate, declared to override base (per
// symbols.Overrides), does not weaken access, narrows neither its return
// type incompatibly nor widens its thrown-checked-exception set, and is
// not attempting to override a final method.
func (c *Checker) CheckOverride(primary diag.Span, candidate, base symbols.SymbolID) bool {
	cand, b := c.Symbols.Symbol(candidate), c.Symbols.Symbol(base)
	if cand == nil || b == nil || cand.Method == nil || b.Method == nil {
		return true
	}
	ok := true
	if b.Flags.Has(symbols.FlagFinal) {
		c.Reporter.Report(diag.SevError, primary, "check.override-final", base)
		ok = false
	}
	if accessRank(cand.Flags) < accessRank(b.Flags) {
		c.Reporter.Report(diag.SevError, primary, "check.override-weaker-access", candidate, base)
		ok = false
	}
	if !c.Types.Subtype(cand.Method.Return, b.Method.Return) && !c.Types.SameType(cand.Method.Return, b.Method.Return) {
		c.Reporter.Report(diag.SevError, primary, "check.override-incompatible-return", candidate, base)
		ok = false
	}
	for _, thrown := range cand.Method.Thrown {
		covered := false
		for _, baseThrown := range b.Method.Thrown {
			if c.Types.Subtype(thrown, baseThrown) {
				covered = true
				break
			}
		}
		if !covered {
			c.Reporter.Report(diag.SevError, primary, "check.override-incompatible-throws", candidate, thrown)
			ok = false
		}
	}
	return ok
}

// accessRank orders access modifiers from most to least restrictive for
// the override-widening comparison (private < package < protected < public).
func accessRank(f symbols.Flags) int {
	switch {
	case f.Has(symbols.FlagPublic):
		return 3
	case f.Has(symbols.FlagProtected):
		return 2
	case f.Has(symbols.FlagPrivate):
		return 0
	default:
		return 1
	}
}

// CheckClashingOverloads reports two methods declared in the same class
// whose erased signatures coincide despite differing declared signatures
// (the classic generic-erasure override clash).
func (c *Checker) CheckClashingOverloads(primary diag.Span, a, b symbols.SymbolID) bool {
	symA, symB := c.Symbols.Symbol(a), c.Symbols.Symbol(b)
	if symA == nil || symB == nil || symA.Method == nil || symB.Method == nil {
		return true
	}
	if symA.Name != symB.Name {
		return true
	}
	if c.Types.SameType(c.Types.Erasure(symA.Type), c.Types.Erasure(symB.Type)) &&
		!c.Types.SameType(symA.Type, symB.Type) {
		c.Reporter.Report(diag.SevError, primary, "check.name-clash-erasure", a, b)
		return false
	}
	return true
}
