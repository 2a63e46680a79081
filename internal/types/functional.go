package types

// AbstractMethod describes a single unimplemented method signature as seen
// from a functional-interface candidate, enough for findDescriptorType to
// report its (possibly substituted) signature.
type AbstractMethod struct {
	Owner uint32 // symbols.SymbolID of the MethodSymbol, opaque here
	Sig   TypeID // KindMethod or KindForAll type, relative to the declaring interface
}

// FunctionalDescriptorProvider resolves the set of abstract methods an
// interface declares or inherits, mirroring ClassInfoProvider's role: the
// symbols package is the only component with method-symbol knowledge, so
// types borrows it through an explicit interface rather than importing
// symbols directly.
type FunctionalDescriptorProvider interface {
	AbstractMethods(owner uint32) []AbstractMethod
}

// SetFunctionalDescriptorProvider wires the symbols table as the source of
// abstract-method facts for isFunctionalInterface/findDescriptorType.
func (s *Store) SetFunctionalDescriptorProvider(p FunctionalDescriptorProvider) {
	s.funcProvider = p
}

// IsFunctionalInterface reports whether t denotes an interface with exactly
// one abstract method modulo object-method overrides (spec.md's lambda
// target-typing precondition).
func (s *Store) IsFunctionalInterface(t TypeID) bool {
	_, ok := s.FindDescriptorType(t)
	return ok
}

// FindDescriptorType returns the single functional-method signature of t,
// substituted for t's own type arguments, so a lambda or method reference
// can be attributed against it. Returns ok=false if t is not a class type,
// is not an interface, or does not have exactly one abstract method.
func (s *Store) FindDescriptorType(t TypeID) (TypeID, bool) {
	ty := s.Get(t)
	if ty.Kind != KindClass || s.classInfo == nil || s.funcProvider == nil {
		return NoTypeID, false
	}
	info, ok := s.classInfo.ClassInfo(ty.Owner)
	if !ok || !info.IsInterface {
		return NoTypeID, false
	}
	methods := s.collectAbstractMethods(t, map[uint32]bool{})
	if len(methods) != 1 {
		return NoTypeID, false
	}
	return methods[0].Sig, true
}

func (s *Store) collectAbstractMethods(t TypeID, seen map[uint32]bool) []AbstractMethod {
	ty := s.Get(t)
	if ty.Kind != KindClass || seen[ty.Owner] {
		return nil
	}
	seen[ty.Owner] = true
	var out []AbstractMethod
	for _, m := range s.funcProvider.AbstractMethods(ty.Owner) {
		out = append(out, AbstractMethod{Owner: m.Owner, Sig: s.MemberType(t, ty.Owner, m.Sig)})
	}
	for _, iface := range s.Interfaces(t) {
		out = append(out, s.collectAbstractMethods(iface, seen)...)
	}
	return dedupMethods(s, out)
}

func dedupMethods(s *Store, in []AbstractMethod) []AbstractMethod {
	var out []AbstractMethod
	for _, m := range in {
		dup := false
		for _, o := range out {
			if s.SameType(s.Erasure(m.Sig), s.Erasure(o.Sig)) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	return out
}
