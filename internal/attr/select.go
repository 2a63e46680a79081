package attr

import (
	"nominalc/internal/ast"
	"nominalc/internal/diag"
	"nominalc/internal/env"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// attribSelect attributes "target.member": a qualifier is first classified
// as a value, a type, or a package (spec.md §4.7's selectSym dispatch),
// then the member is looked up in the resulting namespace.
func (a *Attributor) attribSelect(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	if expr.Target == ast.NoExprID {
		return a.Types.Builtins().Error
	}
	qualifier := a.Unit.Exprs.GetPtr(expr.Target)
	if qualifier != nil && qualifier.Kind == ast.ExprIdent {
		if sym := a.resolveAsTypeOrPackage(qualifier.Name); sym != nil {
			return a.selectStaticMember(expr, sym)
		}
	}
	targetT := a.AttribExpr(e, expr.Target, env.ResultInfo{})
	return a.selectInstanceMember(e, expr, targetT)
}

// resolveAsTypeOrPackage classifies a bare identifier qualifier as a type
// or package symbol, returning nil if it instead denotes an ordinary value
// (in which case attribSelect falls back to attributing it as an expression).
func (a *Attributor) resolveAsTypeOrPackage(name symbols.Name) *symbols.Symbol {
	bindings := a.Symbols.Lookup(a.Symbols.Root(), name)
	for _, id := range bindings {
		sym := a.Symbols.Symbol(id)
		if sym != nil && (sym.Kind == symbols.SymClass || sym.Kind == symbols.SymInterface || sym.Kind == symbols.SymPackage) {
			return sym
		}
	}
	return nil
}

func (a *Attributor) selectStaticMember(expr *ast.Expr, owner *symbols.Symbol) types.TypeID {
	if owner.Class == nil {
		return a.Types.Builtins().Error
	}
	scope := a.Symbols.Scopes.Get(owner.Class.MemberScope)
	if scope == nil {
		return a.Types.Builtins().Error
	}
	found := scope.Lookup(expr.Member)
	if len(found) == 0 {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.cannot-find-symbol", expr.Member)
		return a.Types.Builtins().Error
	}
	memberSym := a.Symbols.Symbol(found[0])
	if memberSym == nil {
		return a.Types.Builtins().Error
	}
	_ = a.Symbols.Complete(found[0])
	return memberSym.Type
}

func (a *Attributor) selectInstanceMember(e *env.Env[env.AttrContext], expr *ast.Expr, targetT types.TypeID) types.TypeID {
	ty := a.Types.Get(targetT)
	if ty.Kind == types.KindArray && a.Names.MustLookup(expr.Member) == "length" {
		return a.Types.Builtins().Int
	}
	owner := symbols.SymbolID(ty.Owner)
	candidates := a.Resolve.FindMemberType(owner, expr.Member)
	if len(candidates) == 0 {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.cannot-find-symbol", expr.Member)
		return a.Types.Builtins().Error
	}
	memberSym := a.Symbols.Symbol(candidates[0])
	if memberSym == nil {
		return a.Types.Builtins().Error
	}
	_ = a.Symbols.Complete(candidates[0])
	return a.Types.MemberType(targetT, uint32(owner), memberSym.Type)
}
