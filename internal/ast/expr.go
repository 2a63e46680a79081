package ast

import (
	"nominalc/internal/names"
	"nominalc/internal/operators"
	"nominalc/internal/source"
	"nominalc/internal/types"
)

// ExprKind tags the Expr union.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLiteral
	ExprThis
	ExprSuper
	ExprBinary
	ExprUnary
	ExprAssign
	ExprSelect   // e.member
	ExprCall     // e.method(args) or method(args)
	ExprNew      // new Class<...>(args) [ { anonymous body } ]
	ExprNewArray
	ExprArrayAccess
	ExprLambda
	ExprMethodRef // Type::method, expr::method, Type::new
	ExprConditional
	ExprCast
	ExprInstanceOf
	ExprParenthesized
)

// LambdaParam is one (possibly implicitly-typed) lambda parameter.
type LambdaParam struct {
	Name     names.Name
	Declared TypeExprID // NoTypeExprID if implicitly typed
}

// Expr is a compact tagged expression node. Attr fills in ResolvedType
// (and, for poly expressions, a deferred-type placeholder) in place.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Name names.Name // ExprIdent

	LiteralKind LiteralKind
	LiteralText string

	BinOp operators.BinaryOp
	UnOp  operators.UnaryOp
	Left  ExprID
	Right ExprID // ExprBinary/ExprAssign rhs

	Operand ExprID // ExprUnary/ExprCast/ExprInstanceOf/ExprParenthesized

	Target ExprID // ExprSelect/ExprCall/ExprArrayAccess receiver; NoExprID for an unqualified call
	Member names.Name

	Args         []ExprID          // ExprCall/ExprNew
	TypeArgs     []TypeExprID      // explicit <T> witnesses; empty for diamond/inferred
	IsDiamond    bool              // ExprNew: "<>" with no explicit type arguments

	NewType       TypeExprID // ExprNew/ExprNewArray element/class type
	AnonymousBody DeclID     // ExprNew: NoDeclID unless an anonymous-class body follows
	ArrayDims     []ExprID   // ExprNewArray: explicit dimension size expressions (outer to inner)
	ArrayExtraDims int       // ExprNewArray: trailing empty [] dims with no size expr

	LambdaParams []LambdaParam // ExprLambda
	LambdaBody   StmtID        // ExprLambda: statement-bodied (block)
	LambdaExpr   ExprID        // ExprLambda: expression-bodied; NoExprID if statement-bodied

	RefReceiver    ExprID     // ExprMethodRef: an expression receiver (Bound form)
	RefType        TypeExprID // ExprMethodRef: a type receiver (Static/Unbound/Constructor form)
	RefMethod      names.Name // ExprMethodRef; empty name denotes "::new"
	RefIsNew       bool

	CondTest ExprID // ExprConditional
	CondThen ExprID
	CondElse ExprID

	CastType TypeExprID // ExprCast/ExprInstanceOf
	InstanceOfBinding names.Name // pattern-variable form; empty if absent

	// Filled in by attribution.
	ResolvedType types.TypeID
	IsPoly       bool // a poly expression attributed via a deferred type
}

// LiteralKind distinguishes literal token shapes.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitLong
	LitFloat
	LitDouble
	LitBoolean
	LitChar
	LitString
	LitNull
)

// Exprs stores every expression node for a compilation unit.
type Exprs struct {
	data []Expr // index 0 unused
}

func NewExprs() *Exprs { return &Exprs{data: make([]Expr, 1, 256)} }

func (e *Exprs) New(expr Expr) ExprID {
	e.data = append(e.data, expr)
	return ExprID(len(e.data) - 1)
}

func (e *Exprs) Get(id ExprID) Expr {
	if !id.IsValid() || int(id) >= len(e.data) {
		return Expr{}
	}
	return e.data[id]
}

func (e *Exprs) GetPtr(id ExprID) *Expr {
	if !id.IsValid() || int(id) >= len(e.data) {
		return nil
	}
	return &e.data[id]
}

// Len reports the number of allocated expression nodes excluding the sentinel.
func (e *Exprs) Len() int { return len(e.data) - 1 }
