// Package check implements the compatibility, override-clash, capture, and
// raw-usage checks spec.md §4 lists for the Check component: the "is this
// attributed tree legal" rules consulted from internal/core and
// internal/attr after Resolve and Infer have produced a candidate type.
package check

import (
	"nominalc/internal/diag"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// Checker bundles the shared tables check queries consult.
type Checker struct {
	Symbols  *symbols.Table
	Types    *types.Store
	Reporter diag.Reporter
}

// New builds a Checker over tab, reporting through rep.
func New(tab *symbols.Table, rep diag.Reporter) *Checker {
	if rep == nil {
		rep = diag.Nop
	}
	return &Checker{Symbols: tab, Types: tab.Types, Reporter: rep}
}

// CheckType reports whether actual is compatible with expected in an
// assignment/return context, emitting a diagnostic and returning false if
// not. Error/Unknown/Recovery types are always accepted (cascading
// suppression, spec.md §9).
func (c *Checker) CheckType(primary diag.Span, actual, expected types.TypeID) bool {
	if expected == types.NoTypeID {
		return true
	}
	at, et := c.Types.Get(actual), c.Types.Get(expected)
	if at.Kind == types.KindError || at.Kind == types.KindUnknown || at.Kind == types.KindRecovery {
		return true
	}
	if et.Kind == types.KindVoid {
		return at.Kind == types.KindVoid
	}
	if c.Types.IsConvertible(actual, expected) {
		return true
	}
	c.Reporter.Report(diag.SevError, primary, "check.incompatible-types", actual, expected)
	return false
}

// CheckCast reports whether an explicit cast from actual to target is legal,
// emitting an "inconvertible types" diagnostic if not, and an "unchecked
// cast" warning if the cast only succeeds modulo generic erasure.
func (c *Checker) CheckCast(primary diag.Span, actual, target types.TypeID, lintUnchecked bool) bool {
	if !c.Types.IsCastable(actual, target) {
		c.Reporter.Report(diag.SevError, primary, "check.inconvertible-types", actual, target)
		return false
	}
	if lintUnchecked && c.isUncheckedCast(actual, target) {
		c.Reporter.Report(diag.SevWarning, primary, "check.unchecked-cast", actual, target)
	}
	return true
}

func (c *Checker) isUncheckedCast(actual, target types.TypeID) bool {
	targetTy := c.Types.Get(target)
	if targetTy.Kind != types.KindClass || targetTy.Raw {
		return false
	}
	if len(c.Types.TypeArgs(targetTy.Payload)) == 0 {
		return false
	}
	return !c.Types.Subtype(actual, target)
}

// CheckRawUsage reports a raw-type-usage warning when a generic class type
// is referenced without type arguments outside of an erased context.
func (c *Checker) CheckRawUsage(primary diag.Span, t types.TypeID, lintRawTypes bool) {
	if !lintRawTypes {
		return
	}
	ty := c.Types.Get(t)
	if ty.Kind == types.KindClass && ty.Raw {
		if info, ok := c.Symbols.ClassInfo(ty.Owner); ok && len(info.TypeParams) > 0 {
			c.Reporter.Report(diag.SevWarning, primary, "check.raw-type", t)
		}
	}
}
