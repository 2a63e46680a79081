package deferredattr

import (
	"nominalc/internal/env"
	"nominalc/internal/infer"
	"nominalc/internal/types"
)

// node is one not-yet-resolved deferred-attr-node tracked by a
// DeferredAttrContext: a DeferredType plus the policy that decides whether
// it is still stuck and the inference variables its resolution depends on.
type node struct {
	dt     *DeferredType
	policy StuckPolicy
	result env.ResultInfo
}

// DeferredAttrContext accumulates the deferred-attr-nodes of a single
// method-check scope (spec.md §4.6's DeferredAttrContext).
type DeferredAttrContext struct {
	nodes  []*node
	ctx    *infer.Context
	attrib AttribFunc
}

// NewContext builds a DeferredAttrContext over the given inference context,
// using attrib to perform ground attribution once a node is no longer stuck.
func NewContext(ctx *infer.Context, attrib AttribFunc) *DeferredAttrContext {
	return &DeferredAttrContext{ctx: ctx, attrib: attrib}
}

// Add registers dt for completion under policy/result.
func (d *DeferredAttrContext) Add(dt *DeferredType, policy StuckPolicy, result env.ResultInfo) {
	d.nodes = append(d.nodes, &node{dt: dt, policy: policy, result: result})
}

// Complete drives every registered node to completion, per spec.md §4.6's
// loop: attribute whatever is no longer stuck, and when nothing is making
// progress, force-solve the whole inference context once and retry.
func (d *DeferredAttrContext) Complete() error {
	for len(d.nodes) > 0 {
		progressed := d.attributeReady()
		if progressed {
			continue
		}
		if _, err := d.ctx.Solve(); err != nil {
			return err
		}
		if !d.attributeReady() {
			return errStuckForever
		}
	}
	return nil
}

func (d *DeferredAttrContext) attributeReady() bool {
	progressed := false
	remaining := d.nodes[:0]
	for _, n := range d.nodes {
		if n.policy.IsStuck(n.dt, d.ctx) {
			remaining = append(remaining, n)
			continue
		}
		n.dt.Env.Info.Speculative = false
		_ = d.attrib(n.dt.Env, n.dt.Expr, n.result)
		progressed = true
	}
	d.nodes = remaining
	return progressed
}

var errStuckForever = deferredError("deferredattr: no progress possible, deferred nodes remain stuck")

type deferredError string

func (e deferredError) Error() string { return string(e) }

// Check implements spec.md §4.6's check(deferredType, resultInfo): in
// ModeSpeculative it sets Speculative on dt.Env itself (the env is shared,
// not copied), so AttribExpr does not write types onto the tree, and caches
// the result per (candidate, phase); in ModeCheck it clears that flag and
// attributes the live tree. The stuck state is not consulted here.
func (dt *DeferredType) Check(mode Mode, key SpeculativeCacheKey, result env.ResultInfo, attrib AttribFunc, rollback func()) types.TypeID {
	if mode == ModeSpeculative {
		if cached, ok := dt.speculative[key]; ok {
			return cached
		}
		speculativeEnv := dt.Env
		speculativeEnv.Info.Speculative = true
		t := attrib(speculativeEnv, dt.Expr, result)
		dt.speculative[key] = t
		if rollback != nil {
			rollback() // un-enter any class symbols the speculative round entered
		}
		return t
	}
	dt.Env.Info.Speculative = false
	return attrib(dt.Env, dt.Expr, result)
}
