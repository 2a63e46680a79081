// Package operators resolves unary and binary operator applications to a
// concrete signature (operand types plus result type), following the
// promotion rules spec.md §4.4 describes. The table-driven design mirrors
// the teacher's FamilyMask/BinarySpec approach (internal/types/operators.go
// in the reference surge compiler), adapted from surge's type families to
// this language's primitive numeric-promotion ladder.
package operators

import "nominalc/internal/types"

// BinaryOp enumerates the binary operator tags the AST can produce.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpUShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLogicalAnd
	OpLogicalOr
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

// UnaryOp enumerates the unary operator tags the AST can produce.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpPos
	OpBitNot
	OpLogicalNot
	OpPreIncr
	OpPreDecr
	OpPostIncr
	OpPostDecr
)

// FamilyMask describes the broad operand categories an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyBool FamilyMask = 1 << iota
	FamilyIntegral
	FamilyFloating
	FamilyReference
	FamilyString
)

const FamilyNumeric = FamilyIntegral | FamilyFloating

// ResultRule describes how to derive a binary operator's result type from
// its (already-promoted) operand type.
type ResultRule uint8

const (
	ResultPromoted ResultRule = iota // the binary-numeric-promotion type of both operands
	ResultBool                       // always boolean (comparisons, logical ops)
	ResultString                     // string concatenation
)

// BinarySpec is one candidate signature for a binary operator tag.
type BinarySpec struct {
	Left, Right  FamilyMask
	Result       ResultRule
	ShortCircuit bool
}

var binaryTable = map[BinaryOp][]BinarySpec{
	OpAdd:        {{Left: FamilyString, Right: FamilyReference, Result: ResultString}, {Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultPromoted}},
	OpSub:        {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultPromoted}},
	OpMul:        {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultPromoted}},
	OpDiv:        {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultPromoted}},
	OpMod:        {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultPromoted}},
	OpShl:        {{Left: FamilyIntegral, Right: FamilyIntegral, Result: ResultPromoted}},
	OpShr:        {{Left: FamilyIntegral, Right: FamilyIntegral, Result: ResultPromoted}},
	OpUShr:       {{Left: FamilyIntegral, Right: FamilyIntegral, Result: ResultPromoted}},
	OpBitAnd:     {{Left: FamilyBool, Right: FamilyBool, Result: ResultBool}, {Left: FamilyIntegral, Right: FamilyIntegral, Result: ResultPromoted}},
	OpBitOr:      {{Left: FamilyBool, Right: FamilyBool, Result: ResultBool}, {Left: FamilyIntegral, Right: FamilyIntegral, Result: ResultPromoted}},
	OpBitXor:     {{Left: FamilyBool, Right: FamilyBool, Result: ResultBool}, {Left: FamilyIntegral, Right: FamilyIntegral, Result: ResultPromoted}},
	OpLogicalAnd: {{Left: FamilyBool, Right: FamilyBool, Result: ResultBool, ShortCircuit: true}},
	OpLogicalOr:  {{Left: FamilyBool, Right: FamilyBool, Result: ResultBool, ShortCircuit: true}},
	OpLt:         {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultBool}},
	OpLe:         {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultBool}},
	OpGt:         {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultBool}},
	OpGe:         {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultBool}},
	OpEq:         {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultBool}, {Left: FamilyBool, Right: FamilyBool, Result: ResultBool}, {Left: FamilyReference, Right: FamilyReference, Result: ResultBool}},
	OpNe:         {{Left: FamilyNumeric, Right: FamilyNumeric, Result: ResultBool}, {Left: FamilyBool, Right: FamilyBool, Result: ResultBool}, {Left: FamilyReference, Right: FamilyReference, Result: ResultBool}},
}

// BinarySpecs returns the candidate signatures for a binary operator tag.
func BinarySpecs(op BinaryOp) []BinarySpec { return binaryTable[op] }

// UnarySpec is one candidate signature for a unary operator tag.
type UnarySpec struct {
	Operand FamilyMask
	Result  ResultRule
}

var unaryTable = map[UnaryOp]UnarySpec{
	OpNeg:      {Operand: FamilyNumeric, Result: ResultPromoted},
	OpPos:      {Operand: FamilyNumeric, Result: ResultPromoted},
	OpBitNot:   {Operand: FamilyIntegral, Result: ResultPromoted},
	OpLogicalNot: {Operand: FamilyBool, Result: ResultBool},
	OpPreIncr:  {Operand: FamilyNumeric, Result: ResultPromoted},
	OpPreDecr:  {Operand: FamilyNumeric, Result: ResultPromoted},
	OpPostIncr: {Operand: FamilyNumeric, Result: ResultPromoted},
	OpPostDecr: {Operand: FamilyNumeric, Result: ResultPromoted},
}

// UnarySpecFor returns the candidate signature for a unary operator tag.
func UnarySpecFor(op UnaryOp) (UnarySpec, bool) {
	spec, ok := unaryTable[op]
	return spec, ok
}

// family classifies a primitive/reference type into its FamilyMask.
func family(s *types.Store, t types.TypeID) FamilyMask {
	ty := s.Get(t)
	switch ty.Kind {
	case types.KindPrimitive:
		switch {
		case ty.Primitive == types.PrimBoolean:
			return FamilyBool
		case ty.Primitive.IsIntegral():
			return FamilyIntegral
		case ty.Primitive.IsFloating():
			return FamilyFloating
		}
	case types.KindClass, types.KindArray, types.KindTypeVar, types.KindBottom:
		return FamilyReference
	}
	return FamilyNone
}

// Matches reports whether t belongs to mask's family set.
func Matches(s *types.Store, t types.TypeID, mask FamilyMask) bool {
	return family(s, t)&mask != 0
}

// BinaryPromote implements binary numeric promotion (JLS 5.6.2): both
// operands widen to the wider of the two, with the floating/integral
// distinction taking precedence over bit width.
func BinaryPromote(s *types.Store, a, b types.TypeID) types.TypeID {
	ta, tb := s.Get(a), s.Get(b)
	if ta.Kind != types.KindPrimitive || tb.Kind != types.KindPrimitive {
		return s.Builtins().Error
	}
	pa, pb := ta.Primitive, tb.Primitive
	widest := pa
	if pb.IsFloating() && !pa.IsFloating() {
		widest = pb
	} else if pa.IsFloating() == pb.IsFloating() {
		if rankOf(pb) > rankOf(pa) {
			widest = pb
		}
	}
	if !widest.IsFloating() && rankOf(widest) < PrimIntRank {
		widest = 0 // unary/binary numeric promotion never narrows below int
	}
	return primitiveType(s, widest)
}

const PrimIntRank = 2 // matches types.Primitive.rank() for PrimInt

func rankOf(p types.Primitive) int {
	switch p {
	case types.PrimByte, types.PrimShort, types.PrimChar:
		return 1
	case types.PrimInt:
		return 2
	case types.PrimLong:
		return 3
	case types.PrimFloat:
		return 4
	case types.PrimDouble:
		return 5
	default:
		return 0
	}
}

func primitiveType(s *types.Store, p types.Primitive) types.TypeID {
	b := s.Builtins()
	switch p {
	case types.PrimByte:
		return b.Byte
	case types.PrimShort:
		return b.Short
	case types.PrimChar:
		return b.Char
	case types.PrimInt, 0:
		return b.Int
	case types.PrimLong:
		return b.Long
	case types.PrimFloat:
		return b.Float
	case types.PrimDouble:
		return b.Double
	default:
		return b.Error
	}
}
