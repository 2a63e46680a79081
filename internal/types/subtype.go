package types

// Supertype returns t's direct superclass instantiation, substituted for
// t's own type arguments, or NoTypeID if t has none (Object, interfaces,
// primitives). Requires a ClassInfoProvider (see SetClassInfoProvider).
func (s *Store) Supertype(t TypeID) TypeID {
	ty := s.Get(t)
	if ty.Kind != KindClass || s.classInfo == nil {
		return NoTypeID
	}
	info, ok := s.classInfo.ClassInfo(ty.Owner)
	if !ok || info.Supertype == NoTypeID {
		return NoTypeID
	}
	return s.substituteOwn(t, info.Supertype)
}

// Interfaces returns t's directly declared interface instantiations,
// substituted for t's own type arguments.
func (s *Store) Interfaces(t TypeID) []TypeID {
	ty := s.Get(t)
	if ty.Kind != KindClass || s.classInfo == nil {
		return nil
	}
	info, ok := s.classInfo.ClassInfo(ty.Owner)
	if !ok {
		return nil
	}
	out := make([]TypeID, len(info.Interfaces))
	for i, iface := range info.Interfaces {
		out[i] = s.substituteOwn(t, iface)
	}
	return out
}

// substituteOwn substitutes site's own type arguments for its declared type
// parameters inside target (e.g. class List<T> extends Collection<T>, with
// site = List<String>, target = Collection<T> yields Collection<String>).
func (s *Store) substituteOwn(site, target TypeID) TypeID {
	siteTy := s.Get(site)
	if s.classInfo == nil {
		return target
	}
	info, ok := s.classInfo.ClassInfo(siteTy.Owner)
	if !ok || len(info.TypeParams) == 0 {
		return target
	}
	args := s.TypeArgs(siteTy.Payload)
	if len(args) == 0 {
		// Raw type: erase the target too (raw-type propagation, JLS 4.8).
		return s.Erasure(target)
	}
	return s.Substitute(target, info.TypeParams, args)
}

// IsSubClass reports whether sub's class hierarchy reaches base, by class
// chain if base is a class or by interface closure if base is an interface.
func (s *Store) IsSubClass(sub, base TypeID) bool {
	if s.SameType(sub, base) {
		return true
	}
	baseTy := s.Get(base)
	if s.classInfo == nil || baseTy.Kind != KindClass {
		return false
	}
	info, ok := s.classInfo.ClassInfo(baseTy.Owner)
	if ok && info.IsInterface {
		return s.implementsInterface(sub, base)
	}
	for cur := s.Supertype(sub); cur != NoTypeID; cur = s.Supertype(cur) {
		if s.sameErasedOwner(cur, base) {
			return true
		}
	}
	return false
}

func (s *Store) sameErasedOwner(a, b TypeID) bool {
	ta, tb := s.Get(a), s.Get(b)
	return ta.Kind == KindClass && tb.Kind == KindClass && ta.Owner == tb.Owner
}

func (s *Store) implementsInterface(t, iface TypeID) bool {
	seen := map[uint32]bool{}
	var walk func(TypeID) bool
	walk = func(cur TypeID) bool {
		curTy := s.Get(cur)
		if curTy.Kind != KindClass || seen[curTy.Owner] {
			return false
		}
		seen[curTy.Owner] = true
		if s.sameErasedOwner(cur, iface) {
			return true
		}
		for _, parent := range s.Interfaces(cur) {
			if walk(parent) {
				return true
			}
		}
		if sup := s.Supertype(cur); sup != NoTypeID && walk(sup) {
			return true
		}
		return false
	}
	return walk(t)
}

// Subtype implements the core <: relation (spec.md §3 invariant (c):
// reflexive and transitive on ground types).
func (s *Store) Subtype(sub, sup TypeID) bool {
	if s.SameType(sub, sup) {
		return true
	}
	subTy, supTy := s.Get(sub), s.Get(sup)
	if subTy.Kind == KindError || supTy.Kind == KindError || subTy.Kind == KindUnknown || supTy.Kind == KindUnknown {
		return true // error types silently propagate, never cascade diagnostics
	}
	if subTy.Kind == KindBottom {
		return supTy.Kind == KindClass || supTy.Kind == KindArray || supTy.Kind == KindBottom || supTy.Kind == KindTypeVar
	}
	if subTy.Kind == KindPrimitive && supTy.Kind == KindPrimitive {
		return subTy.Primitive.rank() != 0 && supTy.Primitive.rank() != 0 &&
			subTy.Primitive.rank() <= supTy.Primitive.rank() &&
			(subTy.Primitive.IsFloating() == supTy.Primitive.IsFloating() || supTy.Primitive.IsFloating()) &&
			subTy.Primitive != PrimBoolean && supTy.Primitive != PrimBoolean || subTy.Primitive == supTy.Primitive
	}
	if supTy.Kind == KindTypeVar {
		return false // only identity subtypes a type variable directly (captures are typevars too but compared above)
	}
	if subTy.Kind == KindTypeVar {
		return s.Subtype(s.TypeVarBound(sub), sup)
	}
	if subTy.Kind == KindArray && supTy.Kind == KindArray {
		if s.Get(subTy.Elem).Kind == KindPrimitive || s.Get(supTy.Elem).Kind == KindPrimitive {
			return s.SameType(subTy.Elem, supTy.Elem)
		}
		return s.Subtype(subTy.Elem, supTy.Elem) // covariant array subtyping
	}
	if subTy.Kind == KindIntersection {
		for _, c := range s.Components(subTy.Components) {
			if s.Subtype(c, sup) {
				return true
			}
		}
		return false
	}
	if supTy.Kind == KindIntersection {
		for _, c := range s.Components(supTy.Components) {
			if !s.Subtype(sub, c) {
				return false
			}
		}
		return true
	}
	if subTy.Kind != KindClass || supTy.Kind != KindClass {
		return false
	}
	if s.sameErasedOwner(sub, sup) {
		argsSub, argsSup := s.TypeArgs(subTy.Payload), s.TypeArgs(supTy.Payload)
		if subTy.Raw || supTy.Raw {
			return true // unchecked compatibility with raw types
		}
		if len(argsSub) != len(argsSup) {
			return false
		}
		for i := range argsSup {
			if !s.containmentOK(argsSub[i], argsSup[i]) {
				return false
			}
		}
		return true
	}
	if sup2, ok := s.classInfo.ClassInfo(supTy.Owner); ok && sup2.IsInterface {
		return s.implementsInterface(sub, sup)
	}
	for cur := s.Supertype(sub); cur != NoTypeID; cur = s.Supertype(cur) {
		if s.Subtype(cur, sup) {
			return true
		}
	}
	return false
}

// containmentOK implements wildcard containment: T <= S (T is contained by
// S) used when comparing two parameterized types with equal erasure.
func (s *Store) containmentOK(arg, param TypeID) bool {
	if s.SameType(arg, param) {
		return true
	}
	p := s.Get(param)
	if p.Kind == KindWildcard {
		switch p.WildcardOf {
		case WildcardUnbound:
			return true
		case WildcardExtends:
			return s.Subtype(arg, p.WildcardRef)
		case WildcardSuper:
			return s.Subtype(p.WildcardRef, arg)
		}
	}
	return false
}

// AsSuper returns the instantiation of sym (identified by its SymbolID,
// the ClassInfoProvider's key space) such that t <: that instantiation, or
// NoTypeID if t is not a subtype of sym at all.
func (s *Store) AsSuper(t TypeID, sym uint32) TypeID {
	ty := s.Get(t)
	if ty.Kind != KindClass {
		return NoTypeID
	}
	if ty.Owner == sym {
		return t
	}
	for _, iface := range s.Interfaces(t) {
		if found := s.AsSuper(iface, sym); found != NoTypeID {
			return found
		}
	}
	if sup := s.Supertype(t); sup != NoTypeID {
		return s.AsSuper(sup, sym)
	}
	return NoTypeID
}

// MemberType substitutes site's type arguments into a member's declared
// type, as seen from site (e.g. a field of type T in List<T>, viewed from
// List<String>, has member type String).
func (s *Store) MemberType(site TypeID, memberOwner uint32, declared TypeID) TypeID {
	siteTy := s.Get(site)
	if siteTy.Kind != KindClass || s.classInfo == nil {
		return declared
	}
	asSuper := s.AsSuper(site, memberOwner)
	if asSuper == NoTypeID {
		return declared
	}
	info, ok := s.classInfo.ClassInfo(memberOwner)
	if !ok || len(info.TypeParams) == 0 {
		return declared
	}
	args := s.TypeArgs(s.Get(asSuper).Payload)
	if len(args) == 0 {
		return s.Erasure(declared)
	}
	return s.Substitute(declared, info.TypeParams, args)
}

// IsCastable reports whether an explicit cast from s to t could succeed at
// runtime (a conservative check: same hierarchy in either direction, or
// either side is an interface, or numeric-to-numeric).
func (s *Store) IsCastable(from, to TypeID) bool {
	fromTy, toTy := s.Get(from), s.Get(to)
	if fromTy.Kind == KindPrimitive && toTy.Kind == KindPrimitive {
		return fromTy.Primitive != PrimBoolean && toTy.Primitive != PrimBoolean || fromTy.Primitive == toTy.Primitive
	}
	if s.Subtype(from, to) || s.Subtype(to, from) {
		return true
	}
	if fromTy.Kind == KindClass && toTy.Kind == KindClass && s.classInfo != nil {
		fi, _ := s.classInfo.ClassInfo(fromTy.Owner)
		ti, _ := s.classInfo.ClassInfo(toTy.Owner)
		if fi.IsInterface || ti.IsInterface {
			return true // interfaces can always be attempted, verified at runtime
		}
	}
	return false
}

// IsConvertible reports assignment-context convertibility (subtyping plus
// unboxing/widening handled by the caller via Operators' promotion rules).
func (s *Store) IsConvertible(from, to TypeID) bool {
	return s.Subtype(from, to)
}
