package types

// Substitute replaces each occurrence of from[i] with to[i] inside t,
// recursively. It is the core operation behind generic instantiation:
// member types, supertypes, and method signatures are all expressed in
// terms of a class's own type variables and substituted at each use site.
func (s *Store) Substitute(t TypeID, from, to []TypeID) TypeID {
	if len(from) == 0 || t == NoTypeID {
		return t
	}
	ty := s.Get(t)
	switch ty.Kind {
	case KindTypeVar:
		for i, f := range from {
			if s.SameType(f, t) || (s.Get(f).Kind == KindTypeVar && s.Get(f).TVarOwner == ty.TVarOwner && s.Get(f).TVarIndex == ty.TVarIndex) {
				return to[i]
			}
		}
		return t
	case KindArray:
		elem := s.Substitute(ty.Elem, from, to)
		if elem == ty.Elem {
			return t
		}
		return s.Array(elem)
	case KindClass:
		args := s.TypeArgs(ty.Payload)
		newArgs := substituteList(s, args, from, to)
		enclosing := s.Substitute(ty.Enclosing, from, to)
		if sameTypeList(s, args, newArgs) && enclosing == ty.Enclosing {
			return t
		}
		if len(newArgs) == 0 && len(args) != 0 {
			return s.Class(ty.Owner, enclosing, args) // shouldn't shrink; keep original length
		}
		return s.Class(ty.Owner, enclosing, newArgs)
	case KindWildcard:
		if ty.WildcardOf == WildcardUnbound {
			return t
		}
		ref := s.Substitute(ty.WildcardRef, from, to)
		if ref == ty.WildcardRef {
			return t
		}
		return s.Wildcard(ty.WildcardOf, ref)
	case KindIntersection, KindUnion:
		comps := s.Components(ty.Components)
		newComps := substituteList(s, comps, from, to)
		if sameTypeList(s, comps, newComps) {
			return t
		}
		if ty.Kind == KindIntersection {
			return s.Intersection(newComps)
		}
		return s.Union(newComps)
	case KindMethod, KindForAll:
		sig := s.Sig(ty.Sig)
		params := substituteList(s, sig.Params, from, to)
		ret := s.Substitute(sig.Return, from, to)
		thrown := substituteList(s, sig.Thrown, from, to)
		if ty.Kind == KindForAll {
			return s.ForAll(sig.TypeParams, params, ret, thrown)
		}
		return s.Method(params, ret, thrown)
	default:
		return t
	}
}

func substituteList(s *Store, list, from, to []TypeID) []TypeID {
	if len(list) == 0 {
		return list
	}
	out := make([]TypeID, len(list))
	for i, t := range list {
		out[i] = s.Substitute(t, from, to)
	}
	return out
}

func sameTypeList(s *Store, a, b []TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !s.SameType(a[i], b[i]) {
			return false
		}
	}
	return true
}
