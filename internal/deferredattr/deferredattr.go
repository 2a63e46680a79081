// Package deferredattr implements poly-expression deferral (spec.md §4.6):
// lambdas, method references, and context-dependent calls are attributed
// lazily, once their surrounding method-resolution context fixes a target
// type, rather than eagerly during the first attribution pass.
package deferredattr

import (
	"nominalc/internal/ast"
	"nominalc/internal/env"
	"nominalc/internal/infer"
	"nominalc/internal/types"
)

// Mode selects how DeferredType.Check behaves (spec.md §4.6).
type Mode uint8

const (
	ModeSpeculative Mode = iota
	ModeCheck
)

// AttribFunc attributes expr under env/resultInfo and returns its type; it
// is supplied by internal/attr to avoid deferredattr importing attr (which
// would cycle, since attr drives deferredattr for poly arguments).
type AttribFunc func(e *env.Env[env.AttrContext], expr ast.ExprID, result env.ResultInfo) types.TypeID

// SpeculativeCacheKey identifies one speculative attribution of a deferred
// expression against a specific candidate method and resolution phase.
type SpeculativeCacheKey struct {
	Candidate uint32 // symbols.SymbolID, opaque here
	Phase     env.ResolutionPhase
}

// DeferredType is the placeholder produced in place of a poly expression's
// ground type (spec.md §3's DeferredType).
type DeferredType struct {
	Expr ast.ExprID
	Env  *env.Env[env.AttrContext]

	speculative map[SpeculativeCacheKey]types.TypeID
	stuckVars   []infer.VarID
}

// NewDeferredType wraps expr/env as a not-yet-attributed poly expression.
func NewDeferredType(expr ast.ExprID, e *env.Env[env.AttrContext]) *DeferredType {
	return &DeferredType{Expr: expr, Env: e, speculative: map[SpeculativeCacheKey]types.TypeID{}}
}

// StuckPolicy decides whether a deferred type should remain stuck (return
// the "no type" sentinel) given the inference context's currently
// unresolved variables (spec.md §4.6's dummy/check/overload variants).
type StuckPolicy interface {
	IsStuck(dt *DeferredType, ctx *infer.Context) bool
}

// DummyPolicy never reports a node as stuck (used for recovery/error
// contexts where forcing an answer immediately is preferable to deferring).
type DummyPolicy struct{}

func (DummyPolicy) IsStuck(*DeferredType, *infer.Context) bool { return false }

// CheckPolicy reports stuck iff a free variable of the watched target type
// is among the expression's dependent (not-yet-instantiated) variables.
type CheckPolicy struct {
	Store  *types.Store
	Target types.TypeID
}

func (p CheckPolicy) IsStuck(dt *DeferredType, ctx *infer.Context) bool {
	for _, t := range p.Store.FreeTypeVars(p.Target) {
		if p.Store.Get(t).Kind == types.KindUndetermined {
			if v, ok := ctx.Var(t); ok && !ctx.IsInstantiated(v) {
				return true
			}
		}
	}
	return false
}

// OverloadPolicy extends CheckPolicy: implicitly-typed lambdas and
// overloaded method references are always stuck while overload resolution
// is still choosing among candidates (spec.md §4.6).
type OverloadPolicy struct {
	CheckPolicy
	IsImplicitLambda bool
	IsOverloadedRef  bool
}

func (p OverloadPolicy) IsStuck(dt *DeferredType, ctx *infer.Context) bool {
	if p.IsImplicitLambda || p.IsOverloadedRef {
		return true
	}
	return p.CheckPolicy.IsStuck(dt, ctx)
}
