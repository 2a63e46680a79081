package types

import "fmt"

// Builtins caches the TypeIDs of the primitive/void/bottom/error/unknown
// types every pipeline stage needs by identity.
type Builtins struct {
	Boolean, Byte, Short, Char, Int, Long, Float, Double TypeID
	Void                                                 TypeID
	Null                                                 TypeID // bottom type
	Error                                                TypeID
	Recovery                                             TypeID
	Unknown                                              TypeID
}

// Store is the process-wide arena of Type values. Structurally simple kinds
// (primitives, void, bottom, arrays, wildcards, error/recovery/unknown) are
// interned so identical descriptors share a TypeID; nominal kinds (classes,
// type variables, undetermined/deferred placeholders) are allocated fresh
// per occurrence because their identity, not their structure, is what
// matters (two class instantiations with equal type arguments are still
// distinguishable occurrences until sameType proves them equal).
type Store struct {
	types []Type // index 0 unused (NoTypeID)
	index map[structKey]TypeID

	typeArgLists  [][]TypeID // class type-argument lists, index 0 = empty/raw
	typeVarBounds []TypeID   // type-variable declared bound, parallel to TVarIndex
	componentLists [][]TypeID
	methodSigs    []MethodSig

	builtins Builtins

	classInfo    ClassInfoProvider
	funcProvider FunctionalDescriptorProvider

	captured map[TypeID]bool
}

// markCaptured flags t (a type variable allocated by Capture) as a capture
// variable rather than a declared one, so check.CheckNoCapturedEscape can
// tell the two apart.
func (s *Store) markCaptured(t TypeID) {
	if s.captured == nil {
		s.captured = make(map[TypeID]bool)
	}
	s.captured[t] = true
}

// IsCaptured reports whether t is a capture-conversion type variable.
func (s *Store) IsCaptured(t TypeID) bool { return s.captured[t] }

// structKey hashes the structural kinds we intern.
type structKey struct {
	kind      Kind
	primitive Primitive
	elem      TypeID
	wildKind  WildcardKind
	wildRef   TypeID
}

// ClassInfo is the subset of class-symbol data the types package needs to
// compute supertype/interfaces/erasure without importing the symbols
// package (which itself imports types for Symbol.Type) — see spec.md §9's
// note on replacing global service locators with an explicit, borrowed
// context. The symbols package registers the one live Table as the
// provider once symbol construction begins.
type ClassInfo struct {
	Supertype   TypeID
	Interfaces  []TypeID
	TypeParams  []TypeID // the class's own declared type-variable TypeIDs
	IsInterface bool
}

// ClassInfoProvider resolves a class type's owner (a symbols.SymbolID,
// carried here as an opaque uint32) to its hierarchy info.
type ClassInfoProvider interface {
	ClassInfo(owner uint32) (ClassInfo, bool)
}

// NewStore builds a Store seeded with the primitive/void/bottom/error types.
func NewStore() *Store {
	s := &Store{
		index:          make(map[structKey]TypeID, 64),
		typeArgLists:   [][]TypeID{nil},
		typeVarBounds:  []TypeID{NoTypeID},
		componentLists: [][]TypeID{nil},
		methodSigs:     []MethodSig{{}},
	}
	s.types = append(s.types, Type{}) // NoTypeID sentinel
	s.builtins.Boolean = s.internPrimitive(PrimBoolean)
	s.builtins.Byte = s.internPrimitive(PrimByte)
	s.builtins.Short = s.internPrimitive(PrimShort)
	s.builtins.Char = s.internPrimitive(PrimChar)
	s.builtins.Int = s.internPrimitive(PrimInt)
	s.builtins.Long = s.internPrimitive(PrimLong)
	s.builtins.Float = s.internPrimitive(PrimFloat)
	s.builtins.Double = s.internPrimitive(PrimDouble)
	s.builtins.Void = s.intern(structKey{kind: KindVoid}, Type{Kind: KindVoid})
	s.builtins.Null = s.intern(structKey{kind: KindBottom}, Type{Kind: KindBottom})
	s.builtins.Error = s.intern(structKey{kind: KindError}, Type{Kind: KindError})
	s.builtins.Recovery = s.intern(structKey{kind: KindRecovery}, Type{Kind: KindRecovery})
	s.builtins.Unknown = s.intern(structKey{kind: KindUnknown}, Type{Kind: KindUnknown})
	return s
}

// Builtins returns the cached primitive/sentinel TypeIDs.
func (s *Store) Builtins() Builtins { return s.builtins }

// SetClassInfoProvider wires the symbols table as the source of class
// hierarchy facts. Must be called once before subtype/supertype queries run
// against class types.
func (s *Store) SetClassInfoProvider(p ClassInfoProvider) { s.classInfo = p }

func (s *Store) internPrimitive(p Primitive) TypeID {
	return s.intern(structKey{kind: KindPrimitive, primitive: p}, Type{Kind: KindPrimitive, Primitive: p})
}

func (s *Store) intern(key structKey, t Type) TypeID {
	if id, ok := s.index[key]; ok {
		return id
	}
	id := s.alloc(t)
	s.index[key] = id
	return id
}

func (s *Store) alloc(t Type) TypeID {
	s.types = append(s.types, t)
	n := len(s.types) - 1
	if n < 0 || n > int(^uint32(0)) {
		panic(fmt.Errorf("types: store overflow"))
	}
	return TypeID(n)
}

// Get returns the Type value for id. The zero Type (KindInvalid) is
// returned for NoTypeID or any out-of-range id.
func (s *Store) Get(id TypeID) Type {
	if int(id) <= 0 || int(id) >= len(s.types) {
		return Type{}
	}
	return s.types[id]
}

// Array returns (and interns) the array-of-elem type.
func (s *Store) Array(elem TypeID) TypeID {
	return s.intern(structKey{kind: KindArray, elem: elem}, Type{Kind: KindArray, Elem: elem})
}

// Wildcard returns (and interns) a wildcard type. ref is ignored for unbound.
func (s *Store) Wildcard(kind WildcardKind, ref TypeID) TypeID {
	if kind == WildcardUnbound {
		ref = NoTypeID
	}
	return s.intern(structKey{kind: KindWildcard, wildKind: kind, wildRef: ref}, Type{Kind: KindWildcard, WildcardOf: kind, WildcardRef: ref})
}

// internTypeArgs stores a type-argument list and returns its payload index.
func (s *Store) internTypeArgs(args []TypeID) uint32 {
	if len(args) == 0 {
		return 0
	}
	cp := make([]TypeID, len(args))
	copy(cp, args)
	s.typeArgLists = append(s.typeArgLists, cp)
	return uint32(len(s.typeArgLists) - 1)
}

// TypeArgs returns the type-argument list for a class Type's Payload index.
func (s *Store) TypeArgs(payload uint32) []TypeID {
	if int(payload) >= len(s.typeArgLists) {
		return nil
	}
	return s.typeArgLists[payload]
}

// Class allocates a fresh (non-interned) class type. owner is the
// symbols.SymbolID of the ClassSymbol, carried opaquely. Passing a nil/empty
// args slice produces a raw type per spec.md §3 invariant (a).
func (s *Store) Class(owner uint32, enclosing TypeID, args []TypeID) TypeID {
	raw := len(args) == 0
	return s.alloc(Type{
		Kind:      KindClass,
		Owner:     owner,
		Enclosing: enclosing,
		Payload:   s.internTypeArgs(args),
		Raw:       raw,
	})
}

// TypeVar allocates a fresh type-variable type bound to owner (the
// SymbolID of the TypeVariableSymbol) with the given declared bound.
func (s *Store) TypeVar(owner uint32, bound TypeID) TypeID {
	s.typeVarBounds = append(s.typeVarBounds, bound)
	idx := uint32(len(s.typeVarBounds) - 1)
	return s.alloc(Type{Kind: KindTypeVar, TVarOwner: owner, TVarIndex: idx})
}

// TypeVarBound returns the declared bound of a type variable.
func (s *Store) TypeVarBound(t TypeID) TypeID {
	ty := s.Get(t)
	if ty.Kind != KindTypeVar || int(ty.TVarIndex) >= len(s.typeVarBounds) {
		return s.builtins.Error
	}
	return s.typeVarBounds[ty.TVarIndex]
}

// SetTypeVarBound updates a type variable's declared bound in place
// (needed because a type parameter's bound may reference the type
// parameter's own enclosing class, which is only fully built after the
// type variable itself is allocated — an F-bounded declaration).
func (s *Store) SetTypeVarBound(t TypeID, bound TypeID) {
	ty := s.Get(t)
	if ty.Kind != KindTypeVar || int(ty.TVarIndex) >= len(s.typeVarBounds) {
		return
	}
	s.typeVarBounds[ty.TVarIndex] = bound
}

func (s *Store) internComponents(components []TypeID) uint32 {
	cp := make([]TypeID, len(components))
	copy(cp, components)
	s.componentLists = append(s.componentLists, cp)
	return uint32(len(s.componentLists) - 1)
}

// Components returns the component list for an intersection/union Type.
func (s *Store) Components(idx uint32) []TypeID {
	if int(idx) >= len(s.componentLists) {
		return nil
	}
	return s.componentLists[idx]
}

// Intersection allocates an intersection type (lambda/generic bound lists).
func (s *Store) Intersection(components []TypeID) TypeID {
	return s.alloc(Type{Kind: KindIntersection, Components: s.internComponents(components)})
}

// Union allocates a union type (multi-catch parameter types).
func (s *Store) Union(components []TypeID) TypeID {
	return s.alloc(Type{Kind: KindUnion, Components: s.internComponents(components)})
}

func (s *Store) internSig(sig MethodSig) uint32 {
	s.methodSigs = append(s.methodSigs, sig)
	return uint32(len(s.methodSigs) - 1)
}

// Sig returns the MethodSig payload for a KindMethod/KindForAll Type.
func (s *Store) Sig(idx uint32) MethodSig {
	if int(idx) >= len(s.methodSigs) {
		return MethodSig{}
	}
	return s.methodSigs[idx]
}

// Method allocates a method type (no type parameters of its own).
func (s *Store) Method(params []TypeID, ret TypeID, thrown []TypeID) TypeID {
	return s.alloc(Type{Kind: KindMethod, Sig: s.internSig(MethodSig{Params: append([]TypeID(nil), params...), Return: ret, Thrown: append([]TypeID(nil), thrown...)})})
}

// ForAll allocates a generic method signature: a KindMethod type universally
// quantified over the given type parameters.
func (s *Store) ForAll(typeParams []TypeID, params []TypeID, ret TypeID, thrown []TypeID) TypeID {
	return s.alloc(Type{Kind: KindForAll, Sig: s.internSig(MethodSig{
		TypeParams: append([]TypeID(nil), typeParams...),
		Params:     append([]TypeID(nil), params...),
		Return:     ret,
		Thrown:     append([]TypeID(nil), thrown...),
	})})
}

// Package allocates a package type for the given PackageSymbol id.
func (s *Store) Package(owner uint32) TypeID {
	return s.alloc(Type{Kind: KindPackage, Owner: owner})
}

// Module allocates a module type for the given ModuleSymbol id.
func (s *Store) Module(owner uint32) TypeID {
	return s.alloc(Type{Kind: KindModule, Owner: owner})
}

// Deferred allocates a deferred-type placeholder; ref is an opaque index
// into deferredattr's own DeferredType table.
func (s *Store) Deferred(ref uint32) TypeID {
	return s.alloc(Type{Kind: KindDeferred, DeferredRef: ref})
}

// Undetermined allocates an undetermined-type placeholder; ref is an opaque
// index into infer's own UndetVar table.
func (s *Store) Undetermined(ref uint32) TypeID {
	return s.alloc(Type{Kind: KindUndetermined, UndetVar: ref})
}
