// Package types holds the shared type descriptors every other component
// attributes against: primitives, classes, type variables, wildcards,
// method signatures and the handful of synthetic kinds (undetermined,
// deferred, error, recovery, unknown) the pipeline needs internally.
//
// Types live in a process-wide arena (Store) and are addressed by TypeID,
// following the arena-of-structs convention used throughout this module
// (see internal/source.Arena): a Type is a small tagged value, and anything
// variable-length (type arguments, thrown types, struct-style payloads)
// lives in a side arena indexed by a Payload field.
package types

import "nominalc/internal/names"

// TypeID addresses a Type inside a Store. The zero value, NoTypeID, means
// "no type" (as opposed to ErrorType, which means "a type that failed to
// resolve").
type TypeID uint32

// NoTypeID marks the absence of a type constraint (used by ResultInfo).
const NoTypeID TypeID = 0

// Kind tags the Type union.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindVoid
	KindBottom // the null type
	KindArray
	KindClass
	KindTypeVar
	KindWildcard
	KindIntersection
	KindUnion // multi-catch
	KindForAll
	KindMethod
	KindPackage
	KindModule
	KindUndetermined // see infer.UndetVar
	KindDeferred     // see deferredattr.DeferredType
	KindError
	KindRecovery
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindVoid:
		return "void"
	case KindBottom:
		return "bottom"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	case KindTypeVar:
		return "typevar"
	case KindWildcard:
		return "wildcard"
	case KindIntersection:
		return "intersection"
	case KindUnion:
		return "union"
	case KindForAll:
		return "forall"
	case KindMethod:
		return "method"
	case KindPackage:
		return "package"
	case KindModule:
		return "module"
	case KindUndetermined:
		return "undetermined"
	case KindDeferred:
		return "deferred"
	case KindError:
		return "error"
	case KindRecovery:
		return "recovery"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Primitive enumerates the small fixed set of primitive types.
type Primitive uint8

const (
	PrimNone Primitive = iota
	PrimBoolean
	PrimByte
	PrimShort
	PrimChar
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
)

func (p Primitive) String() string {
	switch p {
	case PrimBoolean:
		return "boolean"
	case PrimByte:
		return "byte"
	case PrimShort:
		return "short"
	case PrimChar:
		return "char"
	case PrimInt:
		return "int"
	case PrimLong:
		return "long"
	case PrimFloat:
		return "float"
	case PrimDouble:
		return "double"
	default:
		return "<none>"
	}
}

// IsIntegral reports whether p is one of the integral primitives.
func (p Primitive) IsIntegral() bool {
	switch p {
	case PrimByte, PrimShort, PrimChar, PrimInt, PrimLong:
		return true
	default:
		return false
	}
}

// IsFloating reports whether p is float or double.
func (p Primitive) IsFloating() bool {
	return p == PrimFloat || p == PrimDouble
}

// rank orders numeric primitives for widening/promotion (higher widens lower).
func (p Primitive) rank() int {
	switch p {
	case PrimByte, PrimShort, PrimChar:
		return 1
	case PrimInt:
		return 2
	case PrimLong:
		return 3
	case PrimFloat:
		return 4
	case PrimDouble:
		return 5
	default:
		return 0
	}
}

// WildcardKind distinguishes the three wildcard shapes.
type WildcardKind uint8

const (
	WildcardUnbound WildcardKind = iota
	WildcardExtends
	WildcardSuper
)

// Metadata carries the optional per-type annotation/constant payload spec.md
// §3 mentions ("Every type carries an optional... metadata record").
type Metadata struct {
	Annotations []names.Name
	ConstValue  any
}

// Type is a compact tagged descriptor. Only the fields relevant to Kind are
// meaningful; the rest are zero. Variable-length data (type arguments,
// thrown types, intersection/union components, method parameters) is kept
// out-of-line in Store side-tables, indexed by Payload, so Type itself stays
// small and copyable.
type Type struct {
	Kind Kind

	Primitive Primitive // KindPrimitive

	Elem TypeID // KindArray: element type

	// KindClass
	Owner     uint32 // symbols.SymbolID of the ClassSymbol, opaque here
	Enclosing TypeID // enclosing-type reference for nested classes, or NoTypeID
	Payload   uint32 // index into Store.typeArgLists for this class's type arguments (0 = raw)
	Raw       bool

	// KindTypeVar
	TVarOwner uint32 // owning generic element (symbols.SymbolID), opaque here
	TVarIndex uint32 // index into Store.typeVarBounds

	// KindWildcard
	WildcardOf  WildcardKind
	WildcardRef TypeID // the extends/super bound; NoTypeID for unbound

	// KindIntersection / KindUnion: index into Store.componentLists
	Components uint32

	// KindForAll / KindMethod: index into Store.methodSigs
	Sig uint32

	// KindUndetermined: opaque index into infer's UndetVar table
	UndetVar uint32

	// KindDeferred: opaque index into deferredattr's DeferredType table
	DeferredRef uint32

	Meta *Metadata
}

// MethodSig is the payload for KindMethod and KindForAll.
type MethodSig struct {
	TypeParams []TypeID // only for KindForAll; each a KindTypeVar TypeID
	Params     []TypeID
	Return     TypeID
	Thrown     []TypeID
}
