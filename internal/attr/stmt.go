package attr

import (
	"nominalc/internal/ast"
	"nominalc/internal/diag"
	"nominalc/internal/env"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// AttribStmt attributes one statement, recursing into nested statements and
// expressions. returnType is the enclosing method's declared return type,
// consulted by StmtReturn (the Void type inside a void method or a
// constructor; NoTypeID when no return type is known).
func (a *Attributor) AttribStmt(e *env.Env[env.AttrContext], id ast.StmtID, returnType types.TypeID) {
	stmt := a.Unit.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtBlock:
		for _, s := range stmt.Stmts {
			a.AttribStmt(e, s, returnType)
		}
	case ast.StmtLocalVar:
		a.attribLocalVar(e, stmt.Local)
	case ast.StmtExpr:
		a.AttribExpr(e, stmt.Expr, env.ResultInfo{})
	case ast.StmtIf:
		a.AttribExpr(e, stmt.Expr, env.ResultInfo{ExpectedType: uint32(a.Types.Builtins().Boolean)})
		a.AttribStmt(e, stmt.Then, returnType)
		if stmt.Else != ast.NoStmtID {
			a.AttribStmt(e, stmt.Else, returnType)
		}
	case ast.StmtWhile, ast.StmtDoWhile:
		a.AttribExpr(e, stmt.Expr, env.ResultInfo{ExpectedType: uint32(a.Types.Builtins().Boolean)})
		a.AttribStmt(e, stmt.Body, returnType)
	case ast.StmtFor:
		for _, s := range stmt.ForInit {
			a.AttribStmt(e, s, returnType)
		}
		if stmt.ForCond != ast.NoExprID {
			a.AttribExpr(e, stmt.ForCond, env.ResultInfo{ExpectedType: uint32(a.Types.Builtins().Boolean)})
		}
		for _, ex := range stmt.ForPost {
			a.AttribExpr(e, ex, env.ResultInfo{})
		}
		a.AttribStmt(e, stmt.Body, returnType)
	case ast.StmtForEach:
		a.attribForEach(e, stmt, returnType)
	case ast.StmtReturn:
		a.attribReturn(e, stmt, returnType)
	case ast.StmtThrow:
		a.AttribExpr(e, stmt.Expr, env.ResultInfo{})
	case ast.StmtTry:
		a.attribTry(e, stmt, returnType)
	case ast.StmtSwitch:
		a.attribSwitch(e, stmt, returnType)
	case ast.StmtBreak, ast.StmtContinue:
		// no expression to attribute; label validity (does it name an
		// enclosing loop/switch) is a Resolve-time scope concern, not Attr's.
	}
}

func (a *Attributor) attribLocalVar(e *env.Env[env.AttrContext], declID ast.DeclID) {
	decl := a.Unit.Decls.GetPtr(declID)
	if decl == nil {
		return
	}
	declared := a.resolveTypeExpr(decl.ValueType)
	sym := a.Symbols.Declare(e.Info.Scope, decl.Name, symbols.Symbol{
		Kind: symbols.SymLocalVar,
		Type: declared,
		Var:  &symbols.VarData{},
	})
	_ = sym
	if decl.Init != ast.NoExprID {
		a.AttribExpr(e, decl.Init, env.ResultInfo{ExpectedType: uint32(declared)})
	}
}

func (a *Attributor) attribForEach(e *env.Env[env.AttrContext], stmt ast.Stmt, returnType types.TypeID) {
	iterableT := a.AttribExpr(e, stmt.ForEachIterable, env.ResultInfo{})
	var elemType types.TypeID
	if ty := a.Types.Get(iterableT); ty.Kind == types.KindArray {
		elemType = ty.Elem
	} else {
		elemType = a.Types.Builtins().Error
	}
	if varDecl := a.Unit.Decls.GetPtr(stmt.ForEachVar); varDecl != nil {
		declared := elemType
		if varDecl.ValueType != ast.NoTypeExprID {
			declared = a.resolveTypeExpr(varDecl.ValueType)
		}
		a.Symbols.Declare(e.Info.Scope, varDecl.Name, symbols.Symbol{
			Kind: symbols.SymLocalVar,
			Type: declared,
			Var:  &symbols.VarData{},
		})
	}
	a.AttribStmt(e, stmt.Body, returnType)
}

func (a *Attributor) attribReturn(e *env.Env[env.AttrContext], stmt ast.Stmt, returnType types.TypeID) {
	if stmt.Expr == ast.NoExprID {
		if returnType != types.NoTypeID && a.Types.Get(returnType).Kind != types.KindVoid {
			a.Reporter.Report(diag.SevError, stmt.Span, "attr.missing-return-value")
		}
		return
	}
	a.AttribExpr(e, stmt.Expr, env.ResultInfo{ExpectedType: uint32(returnType)})
}

func (a *Attributor) attribTry(e *env.Env[env.AttrContext], stmt ast.Stmt, returnType types.TypeID) {
	a.AttribStmt(e, stmt.TryBody, returnType)
	for _, c := range stmt.Catches {
		if paramDecl := a.Unit.Decls.GetPtr(c.Param); paramDecl != nil {
			var declared types.TypeID
			if len(c.ExceptionTypes) > 0 {
				declared = a.resolveTypeExpr(c.ExceptionTypes[0])
				for _, extra := range c.ExceptionTypes[1:] {
					declared = a.Types.Intersection([]types.TypeID{declared, a.resolveTypeExpr(extra)})
				}
			}
			a.Symbols.Declare(e.Info.Scope, paramDecl.Name, symbols.Symbol{
				Kind: symbols.SymLocalVar,
				Type: declared,
				Var:  &symbols.VarData{},
			})
		}
		a.AttribStmt(e, c.Body, returnType)
	}
	if stmt.Finally != ast.NoStmtID {
		a.AttribStmt(e, stmt.Finally, returnType)
	}
}

func (a *Attributor) attribSwitch(e *env.Env[env.AttrContext], stmt ast.Stmt, returnType types.TypeID) {
	tagType := a.AttribExpr(e, stmt.SwitchTag, env.ResultInfo{})
	for _, c := range stmt.SwitchCases {
		for _, label := range c.Labels {
			a.AttribExpr(e, label, env.ResultInfo{ExpectedType: uint32(tagType)})
		}
		for _, s := range c.Stmts {
			a.AttribStmt(e, s, returnType)
		}
	}
}
