package attr

import (
	"nominalc/internal/ast"
	"nominalc/internal/deferredattr"
	"nominalc/internal/diag"
	"nominalc/internal/env"
	"nominalc/internal/infer"
	"nominalc/internal/resolve"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// attribCall attributes a method invocation, splitting the this()/super()
// constructor-delegation form from an ordinary call (spec.md §4.7).
func (a *Attributor) attribCall(e *env.Env[env.AttrContext], expr *ast.Expr) types.TypeID {
	if expr.Target != ast.NoExprID {
		if qualifier := a.Unit.Exprs.GetPtr(expr.Target); qualifier != nil {
			switch qualifier.Kind {
			case ast.ExprThis:
				return a.attribSelfCall(e, expr, e.Class)
			case ast.ExprSuper:
				supT := a.superType(e)
				return a.attribSelfCall(e, expr, uint32(a.Types.Get(supT).Owner))
			}
		}
	}

	var candidates []symbols.SymbolID
	if expr.Target != ast.NoExprID {
		targetT := a.AttribExpr(e, expr.Target, env.ResultInfo{})
		candidates = a.Resolve.FindMemberType(symbols.SymbolID(a.Types.Get(targetT).Owner), expr.Member)
	} else {
		candidates = a.Resolve.FindIdent(e, expr.Member)
	}
	return a.resolveAndAttribCall(e, expr, candidates)
}

// attribSelfCall handles this(...)/super(...) constructor delegation: the
// candidate set is the target class's own declared constructors.
func (a *Attributor) attribSelfCall(e *env.Env[env.AttrContext], expr *ast.Expr, classOwner uint32) types.TypeID {
	classSym := a.Symbols.Symbol(symbols.SymbolID(classOwner))
	if classSym == nil || classSym.Class == nil {
		return a.Types.Builtins().Void
	}
	scope := a.Symbols.Scopes.Get(classSym.Class.MemberScope)
	if scope == nil {
		return a.Types.Builtins().Void
	}
	candidates := scope.Lookup(a.Names.Intern("<init>"))
	a.resolveAndAttribCall(e, expr, candidates)
	return a.Types.Builtins().Void
}

func (a *Attributor) resolveAndAttribCall(e *env.Env[env.AttrContext], expr *ast.Expr, candidates []symbols.SymbolID) types.TypeID {
	if len(candidates) == 0 {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.cannot-find-method", expr.Member)
		return a.Types.Builtins().Error
	}

	argTypes := make([]types.TypeID, len(expr.Args))
	for i, argID := range expr.Args {
		arg := a.Unit.Exprs.GetPtr(argID)
		if arg != nil && (arg.Kind == ast.ExprLambda || arg.Kind == ast.ExprMethodRef) {
			argTypes[i] = types.NoTypeID // bound in the second pass below, once a target is chosen
			continue
		}
		argTypes[i] = a.AttribExpr(e, argID, env.ResultInfo{})
	}

	var resolveCandidates []resolve.Candidate
	for _, id := range candidates {
		sym := a.Symbols.Symbol(id)
		if sym == nil || sym.Method == nil {
			continue
		}
		_ = a.Symbols.Complete(id)
		resolveCandidates = append(resolveCandidates, resolve.Candidate{Symbol: id, Sig: sym.Type})
	}
	chosen, _, applicable, ok := a.Resolve.ResolveMethod(resolveCandidates, argTypes)
	if !ok {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.no-applicable-method", expr.Member)
		return a.Types.Builtins().Error
	}

	sig := a.Types.Sig(a.Types.Get(chosen.Sig).Sig)
	a.completePolyArgs(e, expr, sig, len(applicable) > 1)
	return sig.Return
}

// completePolyArgs drives every lambda/method-ref argument of a resolved
// call through deferredattr's DeferredAttrContext (spec.md §4.6), now that
// resolveAndAttribCall has fixed a candidate and its parameter types: each
// poly argument becomes a deferred node, stuck under OverloadPolicy while
// more than one candidate survived the winning phase, and Complete drives
// every node that is not stuck to ground attribution (force-solving the
// call's inference context if nothing is progressing); nodes still stuck
// after that are reported as attr.deferred-attribution-stuck.
func (a *Attributor) completePolyArgs(e *env.Env[env.AttrContext], expr *ast.Expr, sig types.MethodSig, wasAmbiguous bool) {
	var polyArgs int
	for _, argID := range expr.Args {
		if arg := a.Unit.Exprs.GetPtr(argID); arg != nil && (arg.Kind == ast.ExprLambda || arg.Kind == ast.ExprMethodRef) {
			polyArgs++
		}
	}
	if polyArgs == 0 {
		return
	}

	ctx := infer.NewContext(a.Types, nil)
	attrib := func(env *env.Env[env.AttrContext], argID ast.ExprID, result env.ResultInfo) types.TypeID {
		return a.AttribPoly(env, argID, a.Unit.Exprs.GetPtr(argID), types.TypeID(result.ExpectedType))
	}
	dctx := deferredattr.NewContext(ctx, attrib)

	for i, argID := range expr.Args {
		arg := a.Unit.Exprs.GetPtr(argID)
		if arg == nil || (arg.Kind != ast.ExprLambda && arg.Kind != ast.ExprMethodRef) {
			continue
		}
		var target types.TypeID
		if i < len(sig.Params) {
			target = sig.Params[i]
		}
		dt := deferredattr.NewDeferredType(argID, e)
		policy := deferredattr.OverloadPolicy{
			CheckPolicy:      deferredattr.CheckPolicy{Store: a.Types, Target: target},
			IsImplicitLambda: wasAmbiguous && arg.Kind == ast.ExprLambda && allImplicit(arg.LambdaParams),
			IsOverloadedRef:  wasAmbiguous,
		}
		dctx.Add(dt, policy, env.ResultInfo{ExpectedType: uint32(target)})
	}

	if err := dctx.Complete(); err != nil {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.deferred-attribution-stuck", expr.Member)
	}
}

func allImplicit(params []ast.LambdaParam) bool {
	for _, p := range params {
		if p.Declared != ast.NoTypeExprID {
			return false
		}
	}
	return true
}

// AttribPoly attributes a poly expression (lambda or method reference)
// against a known target type, per spec.md §4.6/§4.7: for a functional
// interface target, it resolves the descriptor, binds implicit lambda
// parameter types from it, and checks the body/referenced method against
// the descriptor's return and thrown types.
func (a *Attributor) AttribPoly(e *env.Env[env.AttrContext], id ast.ExprID, expr *ast.Expr, target types.TypeID) types.TypeID {
	expr.IsPoly = true
	if target == types.NoTypeID || !a.Types.IsFunctionalInterface(target) {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.target-not-functional-interface")
		return a.Types.Builtins().Error
	}
	descriptor, ok := a.Types.FindDescriptorType(target)
	if !ok {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.no-descriptor")
		return a.Types.Builtins().Error
	}
	switch expr.Kind {
	case ast.ExprLambda:
		a.attribLambdaBody(e, expr, descriptor)
	case ast.ExprMethodRef:
		a.attribMethodRefBody(e, expr, descriptor)
	}
	return target
}

func (a *Attributor) attribLambdaBody(e *env.Env[env.AttrContext], expr *ast.Expr, descriptor types.TypeID) {
	sig := a.Types.Sig(a.Types.Get(descriptor).Sig)
	lambdaEnv := e.Dup(0, e.Info.Dup())
	lambdaEnv.Info.IsLambda = true
	if expr.LambdaExpr != ast.NoExprID {
		a.AttribExpr(lambdaEnv, expr.LambdaExpr, env.ResultInfo{ExpectedType: uint32(sig.Return)})
		return
	}
	if expr.LambdaBody != ast.NoStmtID {
		a.attribLambdaStmtBody(lambdaEnv, expr.LambdaBody, sig.Return)
	}
}

// attribLambdaStmtBody attributes a statement-bodied lambda's block, typing
// any return statements against the descriptor's declared return type.
func (a *Attributor) attribLambdaStmtBody(e *env.Env[env.AttrContext], body ast.StmtID, returnType types.TypeID) {
	a.AttribStmt(e, body, returnType)
}

func (a *Attributor) attribMethodRefBody(e *env.Env[env.AttrContext], expr *ast.Expr, descriptor types.TypeID) {
	var receiverType types.TypeID
	isTypeReceiver := expr.RefReceiver == ast.NoExprID
	if isTypeReceiver {
		receiverType = a.resolveTypeExpr(expr.RefType)
	} else {
		receiverType = a.AttribExpr(e, expr.RefReceiver, env.ResultInfo{})
	}
	_, _, ok := a.Resolve.ResolveMemberReference(receiverType, expr.RefMethod, descriptor, isTypeReceiver)
	if !ok {
		a.Reporter.Report(diag.SevError, expr.Span, "attr.cannot-find-method", expr.RefMethod)
	}
}
