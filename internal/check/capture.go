package check

import (
	"nominalc/internal/diag"
	"nominalc/internal/types"
)

// CheckNoCapturedEscape reports a use of a captured wildcard type variable
// (produced by types.Capture) in a position where it would escape its
// originating expression's scope, e.g. assigned into a field or returned
// with a declared non-wildcard type — captured variables are only valid
// within the single expression whose typing produced them (spec.md §3's
// capture invariant).
func (c *Checker) CheckNoCapturedEscape(primary diag.Span, t types.TypeID, declared types.TypeID) bool {
	if !c.mentionsCapture(t) {
		return true
	}
	if c.mentionsCapture(declared) {
		return true // the declared type itself is expressed in terms of a wildcard; fine
	}
	c.Reporter.Report(diag.SevError, primary, "check.captured-type-escapes", t)
	return false
}

func (c *Checker) mentionsCapture(t types.TypeID) bool {
	found := false
	c.Types.Walk(t, types.VisitorFunc(func(cur types.TypeID) bool {
		if c.Types.IsCaptured(cur) {
			found = true
		}
		return !found
	}))
	return found
}
