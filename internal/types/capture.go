package types

// Capture implements wildcard capture conversion (JLS 5.1.10): each
// wildcard type argument of a parameterized class type is replaced by a
// fresh type variable whose bound derives from the wildcard and the
// corresponding formal type parameter's own bound. Capture is idempotent
// on already-captured types and a no-op on non-class/non-parameterized
// types, matching spec.md §3 invariant (d).
func (s *Store) Capture(t TypeID) TypeID {
	ty := s.Get(t)
	if ty.Kind != KindClass || ty.Raw || s.classInfo == nil {
		return t
	}
	args := s.TypeArgs(ty.Payload)
	if len(args) == 0 {
		return t
	}
	info, ok := s.classInfo.ClassInfo(ty.Owner)
	if !ok || len(info.TypeParams) != len(args) {
		return t
	}
	anyWildcard := false
	for _, a := range args {
		if s.Get(a).Kind == KindWildcard {
			anyWildcard = true
			break
		}
	}
	if !anyWildcard {
		return t
	}
	newArgs := make([]TypeID, len(args))
	freshVars := make([]TypeID, len(args))
	for i, a := range args {
		wc := s.Get(a)
		if wc.Kind != KindWildcard {
			newArgs[i] = a
			freshVars[i] = a
			continue
		}
		formalBound := s.TypeVarBound(info.TypeParams[i])
		var bound TypeID
		switch wc.WildcardOf {
		case WildcardExtends:
			bound = s.glbPair(wc.WildcardRef, formalBound)
		default:
			bound = formalBound
		}
		fresh := s.TypeVar(ty.Owner, bound)
		s.markCaptured(fresh)
		newArgs[i] = fresh
		freshVars[i] = fresh
	}
	// Lower bounds (super wildcards) participate in the substitution that
	// resolves F-bounded formal bounds referencing sibling parameters.
	for i, a := range args {
		wc := s.Get(a)
		if wc.Kind == KindWildcard {
			substituted := s.Substitute(s.TypeVarBound(freshVars[i]), info.TypeParams, newArgs)
			s.SetTypeVarBound(freshVars[i], substituted)
		}
	}
	return s.Class(ty.Owner, ty.Enclosing, newArgs)
}

func (s *Store) glbPair(a, b TypeID) TypeID {
	if b == NoTypeID || s.SameType(a, b) {
		return a
	}
	if s.Subtype(a, b) {
		return a
	}
	if s.Subtype(b, a) {
		return b
	}
	return s.Intersection([]TypeID{a, b})
}
