package resolve

import (
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// Phase identifies one of the three applicability searches spec.md §4.5
// defines (and env.ResolutionPhase mirrors for recording on the Env).
type Phase uint8

const (
	PhaseBasic Phase = iota
	PhaseBox
	PhaseVarArity
)

// Candidate is one method/constructor overload under consideration.
type Candidate struct {
	Symbol symbols.SymbolID
	Sig    types.TypeID // KindMethod/KindForAll, substituted for the call site
}

// ResolveMethod searches candidates (already name-filtered by the caller
// via FindIdent/FindMemberType) for the applicable overload given argTypes,
// trying BASIC, then BOX, then VARARITY in turn and stopping at the first
// phase that yields at least one applicable candidate (spec.md §4.5:
// "if BASIC produced ≥1 applicable candidate, stop with that result").
func (r *Resolver) ResolveMethod(candidates []Candidate, argTypes []types.TypeID) (Candidate, Phase, []Candidate, bool) {
	for _, phase := range []Phase{PhaseBasic, PhaseBox, PhaseVarArity} {
		applicable := r.filterApplicable(candidates, argTypes, phase)
		if len(applicable) == 0 {
			continue
		}
		best, ambiguous := r.mostSpecific(applicable)
		if ambiguous {
			return Candidate{}, phase, applicable, false
		}
		return best, phase, applicable, true
	}
	return Candidate{}, PhaseVarArity, nil, false
}

func (r *Resolver) filterApplicable(candidates []Candidate, argTypes []types.TypeID, phase Phase) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if r.applicable(c, argTypes, phase) {
			out = append(out, c)
		}
	}
	return out
}

// applicable checks argument-to-parameter convertibility for one candidate
// under the given phase's rules: BASIC requires strict (no boxing, no
// varargs) convertibility, BOX additionally allows primitive<->wrapper
// conversion (modeled here as ordinary IsConvertible, since this pipeline
// does not model separate wrapper classes), and VARARITY additionally
// allows the final declared parameter to absorb a variable number of
// trailing arguments.
func (r *Resolver) applicable(c Candidate, argTypes []types.TypeID, phase Phase) bool {
	sig := r.Types.Get(c.Sig)
	if sig.Kind != types.KindMethod && sig.Kind != types.KindForAll {
		return false
	}
	full := r.Types.Sig(sig.Sig)
	params := full.Params
	sym := r.Symbols.Symbol(c.Symbol)
	varargs := sym != nil && sym.Flags.Has(symbols.FlagVarargs)

	if phase != PhaseVarArity || !varargs {
		if len(params) != len(argTypes) {
			return false
		}
		for i, p := range params {
			if !r.Types.IsConvertible(argTypes[i], p) {
				return false
			}
		}
		return true
	}
	if len(params) == 0 || len(argTypes) < len(params)-1 {
		return false
	}
	for i := 0; i < len(params)-1; i++ {
		if !r.Types.IsConvertible(argTypes[i], params[i]) {
			return false
		}
	}
	variadicElem := r.Types.Get(params[len(params)-1]).Elem
	for i := len(params) - 1; i < len(argTypes); i++ {
		if !r.Types.IsConvertible(argTypes[i], variadicElem) {
			return false
		}
	}
	return true
}

// mostSpecific picks the single candidate whose parameter types are all
// subtypes of every other applicable candidate's corresponding parameter
// type (JLS 15.12.2.5's most-specific-method rule, simplified to a
// pairwise dominance check). Reports ambiguous=true if no single candidate
// dominates all others.
func (r *Resolver) mostSpecific(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 1 {
		return candidates[0], false
	}
	for _, c := range candidates {
		dominatesAll := true
		for _, other := range candidates {
			if other.Symbol == c.Symbol {
				continue
			}
			if !r.moreSpecificThan(c, other) {
				dominatesAll = false
				break
			}
		}
		if dominatesAll {
			return c, false
		}
	}
	return Candidate{}, true
}

func (r *Resolver) moreSpecificThan(a, b Candidate) bool {
	sigA, sigB := r.Types.Sig(r.Types.Get(a.Sig).Sig), r.Types.Sig(r.Types.Get(b.Sig).Sig)
	if len(sigA.Params) != len(sigB.Params) {
		return false
	}
	for i := range sigA.Params {
		if !r.Types.Subtype(sigA.Params[i], sigB.Params[i]) {
			return false
		}
	}
	return true
}

// ResolveConstructor is ResolveMethod specialized for constructor overload
// sets (the candidates are the class's "<init>" members, collected by the
// caller).
func (r *Resolver) ResolveConstructor(candidates []Candidate, argTypes []types.TypeID) (Candidate, Phase, []Candidate, bool) {
	return r.ResolveMethod(candidates, argTypes)
}

// ResolveDiamond infers a class instantiation's omitted type arguments
// (the "<>" diamond operator) from the constructor's declared parameter
// types and the argument types. The target parameter is not consulted: no
// bound is taken from the assignment target type.
func (r *Resolver) ResolveDiamond(classTypeParams []types.TypeID, ctorSig types.TypeID, argTypes []types.TypeID, target types.TypeID) ([]types.TypeID, bool) {
	sig := r.Types.Sig(r.Types.Get(ctorSig).Sig)
	if len(sig.Params) != len(argTypes) {
		return nil, false
	}
	// Simple per-parameter unification: walk declared parameter types,
	// and wherever a class type-variable appears directly, bind it to the
	// corresponding argument's type (a second binding for the same
	// variable is merged with the first by lub).
	bound := map[types.TypeID]types.TypeID{}
	var unify func(decl, actual types.TypeID)
	unify = func(decl, actual types.TypeID) {
		dt := r.Types.Get(decl)
		if dt.Kind == types.KindTypeVar {
			for _, tp := range classTypeParams {
				if r.Types.SameType(tp, decl) {
					if existing, ok := bound[decl]; ok {
						bound[decl] = r.Types.Lub(existing, actual)
					} else {
						bound[decl] = actual
					}
					return
				}
			}
			return
		}
		if dt.Kind == types.KindArray && r.Types.Get(actual).Kind == types.KindArray {
			unify(dt.Elem, r.Types.Get(actual).Elem)
		}
	}
	for i, p := range sig.Params {
		unify(p, argTypes[i])
	}
	out := make([]types.TypeID, len(classTypeParams))
	for i, tp := range classTypeParams {
		if t, ok := bound[tp]; ok {
			out[i] = t
		} else {
			out[i] = r.Types.TypeVarBound(tp)
		}
	}
	return out, true
}
