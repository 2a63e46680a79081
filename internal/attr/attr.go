// Package attr implements the attribution visitor (spec.md §4.7): the
// recursive walk that assigns a type to every expression and statement,
// driving Resolve, Infer, Check, and Operators at each node and producing
// deferred types for poly expressions (handed off to internal/deferredattr).
package attr

import (
	"nominalc/internal/ast"
	"nominalc/internal/check"
	"nominalc/internal/diag"
	"nominalc/internal/env"
	"nominalc/internal/names"
	"nominalc/internal/operators"
	"nominalc/internal/resolve"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// ExprKindMask bits describe what "own kind" an attributed expression may
// report through its surrounding ResultInfo.AllowedKinds mask. AttribExpr
// does not consult AllowedKinds: no expression is rejected for its kind.
type ExprKindMask uint32

const (
	MaskValue ExprKindMask = 1 << iota
	MaskType
	MaskPackage
	MaskVoid
)

// Attributor walks a Unit's AST, consulting Resolve/Check/Operators and
// producing types.TypeID for every expression node.
type Attributor struct {
	Unit     *ast.Unit
	Symbols  *symbols.Table
	Types    *types.Store
	Resolve  *resolve.Resolver
	Check    *check.Checker
	Names    *names.Table
	Reporter diag.Reporter
}

// New builds an Attributor over a parsed unit and the shared tables.
func New(unit *ast.Unit, tab *symbols.Table, rep diag.Reporter) *Attributor {
	if rep == nil {
		rep = diag.Nop
	}
	return &Attributor{
		Unit:     unit,
		Symbols:  tab,
		Types:    tab.Types,
		Resolve:  resolve.New(tab),
		Check:    check.New(tab, rep),
		Names:    tab.Names,
		Reporter: rep,
	}
}

// AttribExpr is the recursive entry point: attributes expr under e and the
// expected type in result, returning its computed type. The computed type
// is written back onto the node (unless the env is speculative) and then,
// when result carries an ExpectedType, checked against it.
func (a *Attributor) AttribExpr(e *env.Env[env.AttrContext], id ast.ExprID, result env.ResultInfo) types.TypeID {
	expr := a.Unit.Exprs.GetPtr(id)
	if expr == nil {
		return a.Types.Builtins().Error
	}
	computed := a.dispatch(e, id, expr, result)
	if !e.Info.Speculative {
		expr.ResolvedType = computed
	}
	if result.ExpectedType != 0 {
		expected := types.TypeID(result.ExpectedType)
		a.Check.CheckType(expr.Span, computed, expected)
		a.Check.CheckNoCapturedEscape(expr.Span, computed, expected)
	}
	return computed
}

func (a *Attributor) dispatch(e *env.Env[env.AttrContext], id ast.ExprID, expr *ast.Expr, result env.ResultInfo) types.TypeID {
	switch expr.Kind {
	case ast.ExprIdent:
		return a.attribIdent(e, expr)
	case ast.ExprLiteral:
		return a.attribLiteral(expr)
	case ast.ExprThis:
		return a.classType(e)
	case ast.ExprSuper:
		return a.superType(e)
	case ast.ExprBinary:
		return a.attribBinary(e, expr)
	case ast.ExprUnary:
		return a.attribUnary(e, expr)
	case ast.ExprAssign:
		return a.attribAssign(e, expr)
	case ast.ExprSelect:
		return a.attribSelect(e, expr)
	case ast.ExprCall:
		return a.attribCall(e, expr)
	case ast.ExprNew:
		return a.attribNew(e, expr)
	case ast.ExprNewArray:
		return a.attribNewArray(e, expr)
	case ast.ExprArrayAccess:
		return a.attribArrayAccess(e, expr)
	case ast.ExprConditional:
		return a.attribConditional(e, expr, result)
	case ast.ExprCast:
		return a.attribCast(e, expr)
	case ast.ExprInstanceOf:
		return a.attribInstanceOf(e, expr)
	case ast.ExprParenthesized:
		return a.AttribExpr(e, expr.Operand, result)
	case ast.ExprLambda, ast.ExprMethodRef:
		// Poly expressions: call arguments are routed through
		// deferredattr.DeferredAttrContext by completePolyArgs once a
		// candidate method fixes their target types. Reaching here directly
		// means the target was already established some other way (e.g. a
		// lambda as the initializer of a typed local), so we attribute it
		// immediately rather than deferring.
		if result.ExpectedType != 0 {
			return a.AttribPoly(e, id, expr, types.TypeID(result.ExpectedType))
		}
		a.Reporter.Report(diag.SevError, expr.Span, "attr.poly-without-target")
		return a.Types.Builtins().Error
	default:
		return a.Types.Builtins().Error
	}
}

func (a *Attributor) classType(e *env.Env[env.AttrContext]) types.TypeID {
	if e.Class == 0 {
		return a.Types.Builtins().Error
	}
	sym := a.Symbols.Symbol(symbols.SymbolID(e.Class))
	if sym == nil {
		return a.Types.Builtins().Error
	}
	return sym.Type
}

func (a *Attributor) superType(e *env.Env[env.AttrContext]) types.TypeID {
	t := a.classType(e)
	if sup := a.Types.Supertype(t); sup != types.NoTypeID {
		return sup
	}
	return a.Types.Builtins().Error
}

func (a *Attributor) attribLiteral(expr *ast.Expr) types.TypeID {
	b := a.Types.Builtins()
	switch expr.LiteralKind {
	case ast.LitInt:
		return b.Int
	case ast.LitLong:
		return b.Long
	case ast.LitFloat:
		return b.Float
	case ast.LitDouble:
		return b.Double
	case ast.LitBoolean:
		return b.Boolean
	case ast.LitChar:
		return b.Char
	case ast.LitString:
		return a.stringClassType()
	case ast.LitNull:
		return b.Null
	default:
		return b.Error
	}
}

// stringClassType returns the String class's type. Resolved by looking it
// up in the root scope; when no class named String is declared there, the
// Error type is returned.
func (a *Attributor) stringClassType() types.TypeID {
	name := a.wellKnown().String
	if bindings := a.Symbols.Lookup(a.Symbols.Root(), name); len(bindings) > 0 {
		if sym := a.Symbols.Symbol(bindings[0]); sym != nil {
			return sym.Type
		}
	}
	return a.Types.Builtins().Error
}

// WellKnown mirrors names.WellKnown with the additional names attr itself
// needs (String, in addition to names.InternWellKnown's Object etc.).
type wellKnownNames struct {
	String names.Name
}

func (a *Attributor) wellKnown() wellKnownNames {
	return wellKnownNames{String: a.Names.Intern("String")}
}

func (a *Attributor) attribIdent(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	candidates := a.Resolve.FindIdent(e, expr.Name)
	if len(candidates) == 0 {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.cannot-find-symbol", expr.Name)
		return a.Types.Builtins().Error
	}
	sym := a.Symbols.Symbol(candidates[0])
	if sym == nil {
		return a.Types.Builtins().Error
	}
	_ = a.Symbols.Complete(candidates[0])
	return sym.Type
}

func (a *Attributor) attribBinary(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	lt := a.AttribExpr(e, expr.Left, env.ResultInfo{})
	rt := a.AttribExpr(e, expr.Right, env.ResultInfo{})
	specs := operators.BinarySpecs(expr.BinOp)
	for _, spec := range specs {
		if operators.Matches(a.Types, lt, spec.Left) && operators.Matches(a.Types, rt, spec.Right) {
			switch spec.Result {
			case operators.ResultBool:
				return a.Types.Builtins().Boolean
			case operators.ResultString:
				return a.stringClassType()
			default:
				return operators.BinaryPromote(a.Types, lt, rt)
			}
		}
	}
	a.Reporter.Report(diag.SevError, expr.Span, "attr.bad-operand-types", expr.BinOp)
	return a.Types.Builtins().Error
}

func (a *Attributor) attribUnary(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	operandT := a.AttribExpr(e, expr.Operand, env.ResultInfo{})
	spec, ok := operators.UnarySpecFor(expr.UnOp)
	if !ok || !operators.Matches(a.Types, operandT, spec.Operand) {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.bad-operand-type", expr.UnOp)
		return a.Types.Builtins().Error
	}
	if spec.Result == operators.ResultBool {
		return a.Types.Builtins().Boolean
	}
	return operandT
}

func (a *Attributor) attribAssign(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	lt := a.AttribExpr(e, expr.Left, env.ResultInfo{})
	a.AttribExpr(e, expr.Right, env.ResultInfo{ExpectedType: uint32(lt)})
	return lt
}

func (a *Attributor) attribArrayAccess(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	arrT := a.AttribExpr(e, expr.Target, env.ResultInfo{})
	a.AttribExpr(e, expr.Left, env.ResultInfo{ExpectedType: uint32(a.Types.Builtins().Int)})
	arr := a.Types.Get(arrT)
	if arr.Kind != types.KindArray {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.array-required")
		return a.Types.Builtins().Error
	}
	return arr.Elem
}

func (a *Attributor) attribConditional(e *env.Env[env.AttrContext], expr *ast.Expr, result env.ResultInfo) types.TypeID {
	a.AttribExpr(e, expr.CondTest, env.ResultInfo{ExpectedType: uint32(a.Types.Builtins().Boolean)})
	thenT := a.AttribExpr(e, expr.CondThen, result)
	elseT := a.AttribExpr(e, expr.CondElse, result)
	return a.Types.Lub(thenT, elseT)
}

func (a *Attributor) attribCast(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	target := a.resolveTypeExpr(expr.CastType)
	operandT := a.AttribExpr(e, expr.Operand, env.ResultInfo{})
	a.Check.CheckCast(expr.Span, operandT, target, e.Info.Lint.UncheckedCast)
	return target
}

func (a *Attributor) attribInstanceOf(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	operandT := a.AttribExpr(e, expr.Operand, env.ResultInfo{})
	target := a.resolveTypeExpr(expr.CastType)
	if !a.Types.IsCastable(operandT, target) {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.inconvertible-types", operandT, target)
	}
	return a.Types.Builtins().Boolean
}

// resolveTypeExpr turns an as-written TypeExpr into a types.TypeID. A named
// reference is looked up by its simple name in the root scope only and must
// name a class there; type variables and nested classes are not found and
// yield the Error type.
// ResolveTypeExpr is the exported entry point other packages (core's
// top-level decl walk, a future declaration-entry pass) use to resolve a
// type-expression node without going through expression attribution.
func (a *Attributor) ResolveTypeExpr(id ast.TypeExprID) types.TypeID {
	return a.resolveTypeExpr(id)
}

func (a *Attributor) resolveTypeExpr(id ast.TypeExprID) types.TypeID {
	te := a.Unit.TypeExprs.GetPtr(id)
	if te == nil {
		return a.Types.Builtins().Error
	}
	if te.Resolved != types.NoTypeID {
		return te.Resolved
	}
	var resolved types.TypeID
	switch te.Kind {
	case ast.TypeExprPrimitive:
		resolved = a.primitiveType(te.Primitive)
	case ast.TypeExprVoid:
		resolved = a.Types.Builtins().Void
	case ast.TypeExprArray:
		resolved = a.Types.Array(a.resolveTypeExpr(te.Elem))
	case ast.TypeExprWildcard:
		var ref types.TypeID
		if te.WildcardRef != 0 {
			ref = a.resolveTypeExpr(te.WildcardRef)
		}
		resolved = a.Types.Wildcard(te.WildcardKind, ref)
	case ast.TypeExprNamed:
		resolved = a.resolveNamedType(te)
	default:
		resolved = a.Types.Builtins().Error
	}
	te.Resolved = resolved
	return resolved
}

func (a *Attributor) primitiveType(p types.Primitive) types.TypeID {
	b := a.Types.Builtins()
	switch p {
	case types.PrimBoolean:
		return b.Boolean
	case types.PrimByte:
		return b.Byte
	case types.PrimShort:
		return b.Short
	case types.PrimChar:
		return b.Char
	case types.PrimInt:
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

func (a *Attributor) resolveNamedType(te *ast.TypeExpr) types.TypeID {
	bindings := a.Symbols.Lookup(a.Symbols.Root(), te.Name)
	if len(bindings) == 0 {
		return a.Types.Builtins().Error
	}
	sym := a.Symbols.Symbol(bindings[0])
	if sym == nil || sym.Class == nil {
		return a.Types.Builtins().Error
	}
	if len(te.TypeArgs) == 0 {
		return sym.Type
	}
	args := make([]types.TypeID, len(te.TypeArgs))
	for i, arg := range te.TypeArgs {
		args[i] = a.resolveTypeExpr(arg)
	}
	return a.Types.Class(uint32(bindings[0]), types.NoTypeID, args)
}
