package env

import (
	"nominalc/internal/diag"
	"nominalc/internal/symbols"
)

// ResolutionPhase records which overload-resolution phase produced the
// currently-attributed method invocation, per spec.md §4.5's three-phase
// search (BASIC, then BOX, then VARARITY).
type ResolutionPhase uint8

const (
	PhaseNone ResolutionPhase = iota
	PhaseBasic
	PhaseBox
	PhaseVarArity
)

func (p ResolutionPhase) String() string {
	switch p {
	case PhaseBasic:
		return "basic"
	case PhaseBox:
		return "box"
	case PhaseVarArity:
		return "vararity"
	default:
		return "none"
	}
}

// Lint carries the subset of diagnostic toggles attribution consults while
// walking a subtree (spec.md's Open Question on configurable warnings,
// resolved in internal/config).
type Lint struct {
	RawTypes      bool // warn on raw-type usage
	UncheckedCast bool // warn on unchecked generic casts
	Deprecation   bool // warn on use of a FlagDeprecated member
}

// AttrContext is the Env[A] payload used by internal/attr and
// internal/deferredattr (spec.md §3's Env<A> description).
type AttrContext struct {
	Scope symbols.ScopeID

	StaticNestingDepth int
	SelfCall           bool // attributing the target of this()/super() itself
	SelectSuper        bool // a "super.member" select is being resolved
	PendingPhase       ResolutionPhase
	Lint               Lint

	EnclosingInitVar symbols.SymbolID // the field being initialized, if any
	ReturnResult     ResultInfo       // expected-type descriptor for return statements

	DefaultSuperCallSite uint32 // AST node id of an implicit super() call site, opaque

	IsSerializableLambda bool
	IsLambda             bool
	Speculative          bool

	Reporter diag.Reporter
}

// ResultInfo is the expected-type/check-context descriptor threaded through
// attribTree's check guard (spec.md §4.7).
type ResultInfo struct {
	// ExpectedType carries an internal/types TypeID and AllowedKinds an
	// attr.ExprKindMask by opaque value, so env imports neither types nor
	// attr (attr imports env).
	ExpectedType uint32 // types.TypeID, carried opaquely
	AllowedKinds uint32 // bitmask of acceptable expression "own kinds"
	Speculative  bool
}

// Dup produces the child AttrContext for a nested Env frame: most fields
// are inherited, but per-node flags (SelfCall, SelectSuper) reset, matching
// spec.md's "dup(node) creates a new frame with a fresh info (sharing most
// fields)".
func (a AttrContext) Dup() AttrContext {
	child := a
	child.SelfCall = false
	child.SelectSuper = false
	return child
}
