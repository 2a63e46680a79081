package attr

import (
	"nominalc/internal/ast"
	"nominalc/internal/diag"
	"nominalc/internal/env"
	"nominalc/internal/resolve"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// attribNew attributes "new Class<T>(args) [ { anonymous body } ]": the
// class type is resolved and its "<init>" overload set is searched the
// same way attribCall resolves an ordinary method. A diamond ("<>") takes
// its type arguments from the constructor arguments alone, before
// constructor lookup; no result-type context is consulted.
func (a *Attributor) attribNew(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	classType := a.resolveTypeExpr(expr.NewType)
	argTypes := make([]types.TypeID, len(expr.Args))
	for i, argID := range expr.Args {
		argTypes[i] = a.AttribExpr(e, argID, env.ResultInfo{})
	}
	if expr.IsDiamond {
		classType = a.resolveDiamond(classType, argTypes)
	}
	ownerSym := symbols.SymbolID(a.Types.Get(classType).Owner)
	classSym := a.Symbols.Symbol(ownerSym)
	if classSym == nil || classSym.Class == nil {
		return a.Types.Builtins().Error
	}
	if classSym.Flags.Has(symbols.FlagAbstract) && expr.AnonymousBody == ast.NoDeclID {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.abstract-class-instantiation")
	}
	scope := a.Symbols.Scopes.Get(classSym.Class.MemberScope)
	var ctorCandidates []symbols.SymbolID
	if scope != nil {
		ctorCandidates = scope.Lookup(a.Names.Intern("<init>"))
	}
	if len(ctorCandidates) > 0 {
		var resolveCandidates []resolve.Candidate
		for _, id := range ctorCandidates {
			sym := a.Symbols.Symbol(id)
			if sym == nil || sym.Method == nil {
				continue
			}
			resolveCandidates = append(resolveCandidates, resolve.Candidate{Symbol: id, Sig: sym.Type})
		}
		if _, _, _, ok := a.Resolve.ResolveConstructor(resolveCandidates, argTypes); !ok {
			a.Reporter.Report(diag.SevError, expr.Span, "attr.no-applicable-constructor")
		}
	}
	if expr.AnonymousBody != ast.NoDeclID {
		// The anonymous body is neither declared nor attributed; the
		// expression's type is the instantiated class type.
		return classType
	}
	return classType
}

func (a *Attributor) resolveDiamond(rawClassType types.TypeID, argTypes []types.TypeID) types.TypeID {
	classSym := a.Symbols.Symbol(symbols.SymbolID(a.Types.Get(rawClassType).Owner))
	if classSym == nil || classSym.Class == nil || len(classSym.Class.TypeParams) == 0 {
		return rawClassType
	}
	typeParams := make([]types.TypeID, len(classSym.Class.TypeParams))
	for i, tp := range classSym.Class.TypeParams {
		if tpSym := a.Symbols.Symbol(tp); tpSym != nil {
			typeParams[i] = tpSym.Type
		}
	}
	scope := a.Symbols.Scopes.Get(classSym.Class.MemberScope)
	var ctorSig types.TypeID
	if scope != nil {
		if ctors := scope.Lookup(a.Names.Intern("<init>")); len(ctors) > 0 {
			if sym := a.Symbols.Symbol(ctors[0]); sym != nil {
				ctorSig = sym.Type
			}
		}
	}
	if ctorSig == types.NoTypeID {
		return rawClassType
	}
	args, ok := a.Resolve.ResolveDiamond(typeParams, ctorSig, argTypes, types.NoTypeID)
	if !ok {
		return rawClassType
	}
	return a.Types.Class(a.Types.Get(rawClassType).Owner, a.Types.Get(rawClassType).Enclosing, args)
}

// attribNewArray attributes "new T[dims]" / "new T[]{...}" array creation.
func (a *Attributor) attribNewArray(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	elemType := a.resolveTypeExpr(expr.NewType)
	for _, dim := range expr.ArrayDims {
		a.AttribExpr(e, dim, env.ResultInfo{ExpectedType: uint32(a.Types.Builtins().Int)})
	}
	result := elemType
	for i := 0; i < len(expr.ArrayDims)+expr.ArrayExtraDims; i++ {
		result = a.Types.Array(result)
	}
	if len(expr.Args) > 0 {
		// Array initializer form: each element must convert to the
		// (possibly still-array) element type one level down.
		initElem := elemType
		for i := 1; i < expr.ArrayExtraDims+len(expr.ArrayDims); i++ {
			initElem = a.Types.Array(initElem)
		}
		for _, el := range expr.Args {
			a.AttribExpr(e, el, env.ResultInfo{ExpectedType: uint32(initElem)})
		}
	}
	return result
}
