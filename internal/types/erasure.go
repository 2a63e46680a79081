package types

// Erasure projects a parameterized type to its unparameterized runtime
// form (spec.md §3 invariant (b): erasure of an erased type is itself).
func (s *Store) Erasure(t TypeID) TypeID {
	ty := s.Get(t)
	switch ty.Kind {
	case KindClass:
		if ty.Payload == 0 && ty.Enclosing == NoTypeID {
			return t // already erased (raw, no enclosing instance)
		}
		return s.Class(ty.Owner, s.Erasure(ty.Enclosing), nil)
	case KindArray:
		erasedElem := s.Erasure(ty.Elem)
		if erasedElem == ty.Elem {
			return t
		}
		return s.Array(erasedElem)
	case KindTypeVar:
		// Erasure of a type variable is the erasure of its first bound.
		bound := s.TypeVarBound(t)
		if bound == NoTypeID {
			return s.builtins.Error
		}
		if b := s.Get(bound); b.Kind == KindIntersection {
			comps := s.Components(b.Components)
			if len(comps) == 0 {
				return s.builtins.Error
			}
			return s.Erasure(comps[0])
		}
		return s.Erasure(bound)
	case KindWildcard:
		if ty.WildcardOf == WildcardExtends {
			return s.Erasure(ty.WildcardRef)
		}
		return t // super/unbound erase to Object conceptually; caller substitutes
	case KindMethod, KindForAll:
		sig := s.Sig(ty.Sig)
		params := make([]TypeID, len(sig.Params))
		for i, p := range sig.Params {
			params[i] = s.Erasure(p)
		}
		return s.Method(params, s.Erasure(sig.Return), sig.Thrown)
	default:
		return t
	}
}

// SameType reports structural identity modulo interning (two occurrences of
// "the same" class instantiation compare equal iff owner, enclosing and
// type arguments are all sameType, recursively).
func (s *Store) SameType(a, b TypeID) bool {
	if a == b {
		return true
	}
	ta, tb := s.Get(a), s.Get(b)
	if ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case KindPrimitive:
		return ta.Primitive == tb.Primitive
	case KindVoid, KindBottom, KindError, KindRecovery, KindUnknown:
		return true
	case KindArray:
		return s.SameType(ta.Elem, tb.Elem)
	case KindClass:
		if ta.Owner != tb.Owner {
			return false
		}
		if ta.Raw != tb.Raw {
			return false
		}
		if !s.SameType(ta.Enclosing, tb.Enclosing) && !(ta.Enclosing == NoTypeID && tb.Enclosing == NoTypeID) {
			return false
		}
		argsA, argsB := s.TypeArgs(ta.Payload), s.TypeArgs(tb.Payload)
		if len(argsA) != len(argsB) {
			return false
		}
		for i := range argsA {
			if !s.SameType(argsA[i], argsB[i]) {
				return false
			}
		}
		return true
	case KindTypeVar:
		return ta.TVarOwner == tb.TVarOwner && ta.TVarIndex == tb.TVarIndex
	case KindWildcard:
		return ta.WildcardOf == tb.WildcardOf && s.SameType(ta.WildcardRef, tb.WildcardRef)
	default:
		return a == b
	}
}
