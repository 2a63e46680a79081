package resolve

import (
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// MemberRefKind distinguishes the four method-reference shapes (JLS
// 15.13): a static method, an instance method bound to a specific
// receiver expression, an instance method unbound (receiver becomes the
// descriptor's first parameter), and a constructor.
type MemberRefKind uint8

const (
	MemberRefStatic MemberRefKind = iota
	MemberRefBound
	MemberRefUnbound
	MemberRefConstructor
)

// ResolveMemberReference picks the overload of name on receiverType whose
// (possibly receiver-prepended) signature matches descriptor, the
// functional interface's single abstract method found via
// types.FindDescriptorType.
func (r *Resolver) ResolveMemberReference(receiverType types.TypeID, name symbols.Name, descriptor types.TypeID, isTypeReceiver bool) (Candidate, MemberRefKind, bool) {
	ownerSym := symbols.SymbolID(r.Types.Get(receiverType).Owner)
	candidatesRaw := r.findIdentInType(ownerSym, name)
	descSig := r.Types.Sig(r.Types.Get(descriptor).Sig)

	var candidates []Candidate
	for _, c := range candidatesRaw {
		sym := r.Symbols.Symbol(c)
		if sym == nil || (sym.Kind != symbols.SymMethod && sym.Kind != symbols.SymConstructor) {
			continue
		}
		candidates = append(candidates, Candidate{Symbol: c, Sig: sym.Type})
	}

	// Unbound form: receiver supplies the descriptor's first argument.
	if isTypeReceiver && len(descSig.Params) > 0 {
		if best, _, _, ok := r.ResolveMethod(candidates, descSig.Params[1:]); ok {
			if sym := r.Symbols.Symbol(best.Symbol); sym != nil && !sym.Flags.Has(symbols.FlagStatic) {
				return best, MemberRefUnbound, true
			}
		}
	}
	// Static or bound form: full descriptor argument list applies directly.
	if best, _, _, ok := r.ResolveMethod(candidates, descSig.Params); ok {
		sym := r.Symbols.Symbol(best.Symbol)
		if sym != nil && sym.Flags.Has(symbols.FlagStatic) {
			return best, MemberRefStatic, true
		}
		return best, MemberRefBound, true
	}
	return Candidate{}, 0, false
}
