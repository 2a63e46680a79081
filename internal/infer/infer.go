// Package infer implements type-parameter inference for generic method and
// constructor invocations (spec.md §4.6), modeled on the Go compiler's own
// constraint-based unifier (cmd/compile/internal/types2/infer.go) rather
// than the teacher's monomorphizing direct-substitution approach, since the
// teacher generalizes by direct substitution and spec.md's generics-with-
// wildcards model instead needs bound propagation and incorporation.
package infer

import "nominalc/internal/types"

// VarID identifies an UndetVar within a single Context.
type VarID uint32

// UndetVar is one not-yet-determined type variable: a placeholder the
// solver narrows by accumulating upper bounds (from argument/expected
// types), lower bounds (from return-type/target-type constraints) and, if
// ever pinned exactly, a single equality bound (spec.md §3's UndetVar).
type UndetVar struct {
	Declared types.TypeID // the KindTypeVar this placeholder stands for
	Upper    []types.TypeID
	Lower    []types.TypeID
	Eq       types.TypeID // NoTypeID until pinned
}

// Listener is invoked once every variable in Watch has been instantiated
// (spec.md §4.6: "free-type listeners... called when every variable in
// their watched list has been instantiated"). Invocation order is LIFO with
// respect to registration.
type Listener struct {
	Watch []VarID
	Run   func(ctx *Context) error
}

// Context is a single method-applicability check's inference state: local,
// mutable, and snapshot/rollback-able around speculative rounds (spec.md
// §9: "Inference contexts are mutable but local to a single method-
// applicability check; they are snapshotted (save/rollback) around
// speculative rounds").
type Context struct {
	store *types.Store
	vars  []UndetVar

	listeners []Listener
	fired     map[int]bool // listener index -> already run
}

// NewContext allocates an inference context over the given store, seeded
// with one UndetVar per declared type parameter.
func NewContext(store *types.Store, typeParams []types.TypeID) *Context {
	ctx := &Context{store: store, fired: make(map[int]bool)}
	for _, tp := range typeParams {
		ctx.vars = append(ctx.vars, UndetVar{Declared: tp})
	}
	return ctx
}

// Var returns the declared-type-variable-relative index for tv, or
// (0, false) if tv is not one of this context's type parameters.
func (c *Context) Var(tv types.TypeID) (VarID, bool) {
	for i, v := range c.vars {
		if c.store.SameType(v.Declared, tv) {
			return VarID(i), true
		}
	}
	return 0, false
}

// Undet returns the TypeID this variable should be substituted as in
// not-yet-instantiated expressions: a KindUndetermined placeholder that
// the types.Store and rest of the pipeline treat opaquely until Solve.
func (c *Context) Undet(id VarID) types.TypeID {
	return c.store.Undetermined(uint32(id))
}

// AddUpperBound records that the variable's instantiation must be a
// subtype of bound (arises from an argument's actual type flowing into a
// generic parameter position). Incorporation immediately checks the new
// bound against existing lower bounds for consistency.
func (c *Context) AddUpperBound(id VarID, bound types.TypeID) error {
	v := &c.vars[id]
	for _, existing := range v.Upper {
		if c.store.SameType(existing, bound) {
			return nil
		}
	}
	v.Upper = append(v.Upper, bound)
	return c.incorporate(id)
}

// AddLowerBound records that bound must be a subtype of the variable's
// instantiation (arises from a target-type/return-type constraint).
func (c *Context) AddLowerBound(id VarID, bound types.TypeID) error {
	v := &c.vars[id]
	for _, existing := range v.Lower {
		if c.store.SameType(existing, bound) {
			return nil
		}
	}
	v.Lower = append(v.Lower, bound)
	return c.incorporate(id)
}

// AddEqBound pins the variable's exact instantiation (arises from an
// explicit type-witness argument, e.g. a diamond with an exact hint).
func (c *Context) AddEqBound(id VarID, t types.TypeID) error {
	v := &c.vars[id]
	if v.Eq != types.NoTypeID && !c.store.SameType(v.Eq, t) {
		return errInconsistent
	}
	v.Eq = t
	return c.incorporate(id)
}

var errInconsistent = inferError("infer: inconsistent bounds")
var errUnresolved = inferError("infer: could not instantiate all type variables")

type inferError string

func (e inferError) Error() string { return string(e) }

// incorporate checks id's current bound set for consistency (every lower
// bound must be a subtype of every upper bound) and fires any listener now
// fully satisfied. This is "incorporation": propagating a newly-added
// bound's consequences immediately rather than deferring to solve time.
func (c *Context) incorporate(id VarID) error {
	v := &c.vars[id]
	if v.Eq != types.NoTypeID {
		for _, u := range v.Upper {
			if !c.store.Subtype(v.Eq, u) {
				return errInconsistent
			}
		}
		for _, l := range v.Lower {
			if !c.store.Subtype(l, v.Eq) {
				return errInconsistent
			}
		}
	}
	for _, l := range v.Lower {
		for _, u := range v.Upper {
			if !c.isUndetermined(l) && !c.isUndetermined(u) && !c.store.Subtype(l, u) {
				return errInconsistent
			}
		}
	}
	if c.isInstantiated(id) {
		c.fireListeners()
	}
	return nil
}

func (c *Context) isUndetermined(t types.TypeID) bool {
	return c.store.Get(t).Kind == types.KindUndetermined
}

func (c *Context) isInstantiated(id VarID) bool {
	_, ok := c.resolve(id)
	return ok
}

// IsInstantiated reports whether id currently resolves to a ground type.
// Exported for deferredattr's stuck-policy checks.
func (c *Context) IsInstantiated(id VarID) bool { return c.isInstantiated(id) }

// resolve computes the best current instantiation for id without mutating
// state: the equality bound if pinned, else the lub of its lower bounds
// (the least type satisfying every observed use), else the glb of its
// upper bounds, else not yet resolvable.
func (c *Context) resolve(id VarID) (types.TypeID, bool) {
	v := c.vars[id]
	if v.Eq != types.NoTypeID {
		return v.Eq, true
	}
	if len(v.Lower) > 0 && allGround(c, v.Lower) {
		return c.store.Lub(v.Lower...), true
	}
	if len(v.Upper) > 0 && allGround(c, v.Upper) {
		return c.store.Glb(v.Upper...), true
	}
	return types.NoTypeID, false
}

func allGround(c *Context, ts []types.TypeID) bool {
	for _, t := range ts {
		if c.isUndetermined(t) {
			return false
		}
	}
	return true
}

// RegisterListener adds a free-type listener watching the given variables.
func (c *Context) RegisterListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// fireListeners runs, in LIFO registration order, every not-yet-fired
// listener whose watch set is now fully instantiated. A listener registered
// by a running listener is not visited in this pass; it is considered the
// next time fireListeners runs.
func (c *Context) fireListeners() {
	for i := len(c.listeners) - 1; i >= 0; i-- {
		if c.fired[i] {
			continue
		}
		ready := true
		for _, w := range c.listeners[i].Watch {
			if !c.isInstantiated(w) {
				ready = false
				break
			}
		}
		if ready {
			c.fired[i] = true
			_ = c.listeners[i].Run(c) // the error is discarded; neither incorporate nor Solve reports it
		}
	}
}

// Solve resolves every variable to a ground TypeID, processing the
// variable-dependency graph in strongly-connected-component order so a
// variable whose bounds mention another undetermined variable waits for
// that variable to resolve first (spec.md §4.6's SCC-based solver).
func (c *Context) Solve() ([]types.TypeID, error) {
	order := c.sccOrder()
	for _, id := range order {
		if _, ok := c.resolve(id); ok {
			continue
		}
		// Still unresolved with no constraints at all: default to the
		// variable's own declared upper bound (Object if unconstrained).
		v := &c.vars[id]
		if len(v.Upper) == 0 && len(v.Lower) == 0 {
			v.Eq = c.store.TypeVarBound(v.Declared)
		} else {
			return nil, errUnresolved
		}
	}
	out := make([]types.TypeID, len(c.vars))
	for i := range c.vars {
		t, ok := c.resolve(VarID(i))
		if !ok {
			return nil, errUnresolved
		}
		out[i] = t
	}
	return out, nil
}

// sccOrder returns variable indices ordered so that a variable depending on
// another (through a bound mentioning that other variable's Undetermined
// placeholder) is ordered after it. Cycles (mutual dependency) are grouped
// and resolved together on a best-effort basis by resolve's lub/glb.
func (c *Context) sccOrder() []VarID {
	n := len(c.vars)
	deps := make([][]VarID, n)
	for i, v := range c.vars {
		bounds := append(append([]types.TypeID{}, v.Upper...), v.Lower...)
		for _, b := range bounds {
			c.collectUndetDeps(b, VarID(i), deps)
		}
	}
	visited := make([]bool, n)
	var order []VarID
	var visit func(VarID)
	visit = func(id VarID) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, d := range deps[id] {
			visit(d)
		}
		order = append(order, id)
	}
	for i := 0; i < n; i++ {
		visit(VarID(i))
	}
	return order
}

// collectUndetDeps walks t for KindUndetermined placeholders and records
// that owner depends on each one found, directly (t itself is a
// placeholder) or structurally (t contains one, e.g. List<#2>).
func (c *Context) collectUndetDeps(t types.TypeID, owner VarID, deps [][]VarID) {
	if t == types.NoTypeID {
		return
	}
	c.store.Walk(t, types.VisitorFunc(func(cur types.TypeID) bool {
		ty := c.store.Get(cur)
		if ty.Kind == types.KindUndetermined && VarID(ty.UndetVar) != owner {
			deps[owner] = append(deps[owner], VarID(ty.UndetVar))
		}
		return true
	}))
}
