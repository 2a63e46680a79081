package types

// Lub computes the least upper bound of a set of class/array/typevar types
// — the type inferred for a conditional expression's common type and for
// multi-catch parameters. A degenerate one-element or empty input returns
// that element or the Unknown type respectively.
func (s *Store) Lub(ts ...TypeID) TypeID {
	ts = nonErrorTypes(ts)
	switch len(ts) {
	case 0:
		return s.builtins.Unknown
	case 1:
		return ts[0]
	}
	allPrimitive := true
	for _, t := range ts {
		if s.Get(t).Kind != KindPrimitive {
			allPrimitive = false
			break
		}
	}
	if allPrimitive {
		best := ts[0]
		for _, t := range ts[1:] {
			if s.Get(t).Primitive.rank() > s.Get(best).Primitive.rank() {
				best = t
			}
		}
		return best
	}
	// Reference types: intersect each type's closed supertype set, then pick
	// the most specific common candidates, following javac's simplified lub.
	sets := make([]map[uint32]TypeID, len(ts))
	for i, t := range ts {
		sets[i] = s.supertypeClosure(t)
	}
	common := map[uint32]TypeID{}
	for owner, inst := range sets[0] {
		inAll := true
		for _, set := range sets[1:] {
			if _, ok := set[owner]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			common[owner] = inst
		}
	}
	var candidates []TypeID
	for owner, inst := range common {
		minimal := true
		for otherOwner := range common {
			if otherOwner == owner {
				continue
			}
			if s.ownerIsSubclassOf(otherOwner, owner) {
				minimal = false
				break
			}
		}
		if minimal {
			candidates = append(candidates, inst)
		}
	}
	switch len(candidates) {
	case 0:
		return s.builtins.Unknown
	case 1:
		return candidates[0]
	default:
		return s.Intersection(candidates)
	}
}

// Glb computes the greatest lower bound — the narrowest type that is a
// subtype of every member, used for intersection-type normalization.
func (s *Store) Glb(ts ...TypeID) TypeID {
	ts = nonErrorTypes(ts)
	if len(ts) == 0 {
		return s.builtins.Unknown
	}
	out := ts[0]
	for _, t := range ts[1:] {
		out = s.glbPair(out, t)
	}
	return out
}

func nonErrorTypes(ts []TypeID) []TypeID {
	out := ts[:0:0]
	for _, t := range ts {
		out = append(out, t)
	}
	return out
}

func (s *Store) supertypeClosure(t TypeID) map[uint32]TypeID {
	out := map[uint32]TypeID{}
	var walk func(TypeID)
	walk = func(cur TypeID) {
		ty := s.Get(cur)
		if ty.Kind != KindClass {
			return
		}
		if _, seen := out[ty.Owner]; seen {
			return
		}
		out[ty.Owner] = cur
		for _, iface := range s.Interfaces(cur) {
			walk(iface)
		}
		if sup := s.Supertype(cur); sup != NoTypeID {
			walk(sup)
		}
	}
	walk(t)
	return out
}

func (s *Store) ownerIsSubclassOf(subOwner, supOwner uint32) bool {
	if s.classInfo == nil {
		return false
	}
	info, ok := s.classInfo.ClassInfo(subOwner)
	if !ok {
		return false
	}
	check := func(t TypeID) bool { return t != NoTypeID && s.Get(t).Owner == supOwner }
	if check(info.Supertype) {
		return true
	}
	for _, iface := range info.Interfaces {
		if check(iface) || s.ownerIsSubclassOf(s.Get(iface).Owner, supOwner) {
			return true
		}
	}
	if info.Supertype != NoTypeID {
		return s.ownerIsSubclassOf(s.Get(info.Supertype).Owner, supOwner)
	}
	return false
}
