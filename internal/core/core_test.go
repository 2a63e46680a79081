package core_test

import (
	"testing"

	"nominalc/internal/ast"
	"nominalc/internal/core"
	"nominalc/internal/diag"
	"nominalc/internal/operators"
	"nominalc/internal/source"
	"nominalc/internal/types"
)

// recordingReporter collects every diagnostic key reported, so tests can
// assert on exactly which diagnostics fired without needing a real
// message-rendering layer (spec.md's diagnostic sink is keys+args only).
type recordingReporter struct {
	keys []string
}

func (r *recordingReporter) Report(sev diag.Severity, span diag.Span, key string, args ...any) {
	r.keys = append(r.keys, key)
}

func (r *recordingReporter) count(key string) int {
	n := 0
	for _, k := range r.keys {
		if k == key {
			n++
		}
	}
	return n
}

func primitiveTE(unit *ast.Unit, p types.Primitive) ast.TypeExprID {
	return unit.TypeExprs.New(ast.TypeExpr{Kind: ast.TypeExprPrimitive, Primitive: p})
}

// S1. Simple typing: class C { int f(int x) { return x + 1; } }
// Expected: f's type is (int) -> int, the "+"  resolves to int+int, the
// return type is int.
func TestAttribute_SimpleTyping(t *testing.T) {
	p := core.New()
	unit := ast.NewUnit(source.FileID(1))

	intTE := primitiveTE(unit, types.PrimInt)
	intTE2 := primitiveTE(unit, types.PrimInt)

	xParam := unit.Decls.New(ast.Decl{Kind: ast.DeclParam, Name: p.Names.Intern("x"), ValueType: intTE})

	identX := unit.Exprs.New(ast.Expr{Kind: ast.ExprIdent, Name: p.Names.Intern("x")})
	litOne := unit.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LitInt})
	addExpr := unit.Exprs.New(ast.Expr{Kind: ast.ExprBinary, BinOp: operators.OpAdd, Left: identX, Right: litOne})

	returnStmt := unit.Stmts.New(ast.Stmt{Kind: ast.StmtReturn, Expr: addExpr})
	block := unit.Stmts.New(ast.Stmt{Kind: ast.StmtBlock, Stmts: []ast.StmtID{returnStmt}})

	method := unit.Decls.New(ast.Decl{
		Kind:   ast.DeclMethod,
		Name:   p.Names.Intern("f"),
		Params: []ast.DeclID{xParam},
		Return: intTE2,
		Body:   block,
	})

	class := unit.Decls.New(ast.Decl{
		Kind:     ast.DeclClass,
		Name:     p.Names.Intern("C"),
		Children: []ast.DeclID{method},
	})

	unit.Root = unit.Decls.New(ast.Decl{Kind: ast.DeclCompilationUnit, Children: []ast.DeclID{class}})

	p.Attribute(unit)

	fSym := p.FindSymbol("C.f")
	if !fSym.IsValid() {
		t.Fatalf("FindSymbol(C.f) did not resolve")
	}
	sym := p.Symbols.Symbol(fSym)
	if sym.Method == nil {
		t.Fatalf("C.f did not declare as a method")
	}
	b := p.Types.Builtins()
	if sym.Method.Return != b.Int {
		t.Errorf("f's return type = %v, want Int (%v)", sym.Method.Return, b.Int)
	}
	if len(sym.Method.Params) != 1 || p.Symbols.Symbol(sym.Method.Params[0]).Type != b.Int {
		t.Fatalf("f's param type did not resolve to Int")
	}

	addResult := unit.Exprs.Get(addExpr).ResolvedType
	if addResult != b.Int {
		t.Errorf("x + 1's resolved type = %v, want Int (int+int promotion)", addResult)
	}
}

// S6. Cyclic inheritance: class A extends B {}  class B extends A {}
// Expected: completing A fires the cycle check; exactly one
// "cyclic inheritance" diagnostic is reported (for A); A's type becomes an
// error type; a second Complete(A) call does not report again.
func TestAttribute_CyclicInheritance(t *testing.T) {
	rep := &recordingReporter{}
	p := core.New(core.WithReporter(rep))
	unit := ast.NewUnit(source.FileID(1))

	aName := p.Names.Intern("A")
	bName := p.Names.Intern("B")

	aSuperTE := unit.TypeExprs.New(ast.TypeExpr{Kind: ast.TypeExprNamed, Name: bName})
	bSuperTE := unit.TypeExprs.New(ast.TypeExpr{Kind: ast.TypeExprNamed, Name: aName})

	classA := unit.Decls.New(ast.Decl{Kind: ast.DeclClass, Name: aName, Supertype: aSuperTE})
	classB := unit.Decls.New(ast.Decl{Kind: ast.DeclClass, Name: bName, Supertype: bSuperTE})

	unit.Root = unit.Decls.New(ast.Decl{Kind: ast.DeclCompilationUnit, Children: []ast.DeclID{classA, classB}})

	p.Attribute(unit)

	if got := rep.count("symbols.cyclic-inheritance"); got != 1 {
		t.Fatalf("cyclic-inheritance diagnostics = %d, want exactly 1; all reported keys: %v", got, rep.keys)
	}

	aID := p.FindSymbol("A")
	if !aID.IsValid() {
		t.Fatalf("FindSymbol(A) did not resolve")
	}
	aSym := p.Symbols.Symbol(aID)
	if aSym.Type != p.Types.Builtins().Error {
		t.Errorf("A's type = %v after a cyclic failure, want the Error type", aSym.Type)
	}

	// Re-completing A must not re-invoke its completer or report again
	// (terminalCompleter idempotence, spec.md §8 invariant 2).
	_ = p.Symbols.Complete(aID)
	if got := rep.count("symbols.cyclic-inheritance"); got != 1 {
		t.Errorf("a second Complete(A) reported again: count = %d", got)
	}
}
