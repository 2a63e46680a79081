// Package scenario hand-builds the compilation units for spec.md's named
// end-to-end scenarios (S1 and S6; see Catalog), since this front end has no
// parser of its own: every AST node a real parser would emit is constructed
// directly through the arena allocators. cmd/nominalc's "scenario" and
// "snapshot" commands build on these constructors; internal/core's tests
// duplicate the same construction rather than importing this package.
package scenario

import (
	"fmt"
	"strings"

	"nominalc/internal/ast"
	"nominalc/internal/names"
	"nominalc/internal/operators"
	"nominalc/internal/source"
	"nominalc/internal/types"
)

// Info describes one named scenario for listing/selection purposes.
type Info struct {
	Name        string
	Title       string
	Description string
}

// Catalog lists every scenario this package can build. S2, S3 and S5
// require modeling generic container/functional-interface classes (List,
// ArrayList, Callable, Runnable) that this hand-built-AST approach does not
// stub out, so only the scenarios with a full worked AST are listed here;
// see DESIGN.md's internal/scenario entry.
var Catalog = []Info{
	{Name: "s1", Title: "Simple typing", Description: "class C { int f(int x) { return x + 1; } }"},
	{Name: "s6", Title: "Cyclic inheritance", Description: "class A extends B {}  class B extends A {}"},
}

// Build constructs the hand-built ast.Unit for the named scenario, interning
// identifiers through tab (normally a Pipeline's own Names table), and a
// FileSet holding that scenario's own Description text as a single virtual
// file under the FileID the unit's nodes carry in their Span.File — so
// diagfmt.Pretty can resolve real line:col positions for a scenario's
// diagnostics instead of only the raw file/offset pair.
func Build(name string, tab *names.Table) (*ast.Unit, *source.FileSet, error) {
	info, ok := lookup(name)
	if !ok {
		return nil, nil, fmt.Errorf("scenario: unknown scenario %q", name)
	}
	files := source.NewFileSet()
	fileID := files.AddVirtual(name+".src", []byte(info.Description))

	var unit *ast.Unit
	switch name {
	case "s1":
		unit = buildS1(tab, fileID, info.Description)
	case "s6":
		unit = buildS6(tab, fileID, info.Description)
	}
	return unit, files, nil
}

func lookup(name string) (Info, bool) {
	for _, info := range Catalog {
		if info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}

// spanOf locates substr's first occurrence in src and returns the Span it
// occupies, falling back to a zero-length span at the start of the file if
// substr isn't found (keeps scenario construction from panicking if a
// Description string drifts out of sync with its builder).
func spanOf(fileID source.FileID, src, substr string) source.Span {
	i := strings.Index(src, substr)
	if i < 0 {
		return source.Span{File: fileID}
	}
	return source.Span{File: fileID, Start: uint32(i), End: uint32(i + len(substr))}
}

// buildS1 builds: class C { int f(int x) { return x + 1; } }
func buildS1(tab *names.Table, fileID source.FileID, src string) *ast.Unit {
	unit := ast.NewUnit(fileID)

	intTE := unit.TypeExprs.New(ast.TypeExpr{Kind: ast.TypeExprPrimitive, Primitive: types.PrimInt})
	intTE2 := unit.TypeExprs.New(ast.TypeExpr{Kind: ast.TypeExprPrimitive, Primitive: types.PrimInt})

	xParam := unit.Decls.New(ast.Decl{Kind: ast.DeclParam, Name: tab.Intern("x"), ValueType: intTE, Span: spanOf(fileID, src, "int x")})

	identX := unit.Exprs.New(ast.Expr{Kind: ast.ExprIdent, Name: tab.Intern("x"), Span: spanOf(fileID, src, "x + 1")})
	litOne := unit.Exprs.New(ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LitInt, Span: spanOf(fileID, src, "1")})
	addExpr := unit.Exprs.New(ast.Expr{Kind: ast.ExprBinary, BinOp: operators.OpAdd, Left: identX, Right: litOne, Span: spanOf(fileID, src, "x + 1")})

	returnStmt := unit.Stmts.New(ast.Stmt{Kind: ast.StmtReturn, Expr: addExpr, Span: spanOf(fileID, src, "return x + 1;")})
	block := unit.Stmts.New(ast.Stmt{Kind: ast.StmtBlock, Stmts: []ast.StmtID{returnStmt}})

	method := unit.Decls.New(ast.Decl{
		Kind:   ast.DeclMethod,
		Name:   tab.Intern("f"),
		Params: []ast.DeclID{xParam},
		Return: intTE2,
		Body:   block,
		Span:   spanOf(fileID, src, "int f(int x) { return x + 1; }"),
	})

	class := unit.Decls.New(ast.Decl{
		Kind:     ast.DeclClass,
		Name:     tab.Intern("C"),
		Children: []ast.DeclID{method},
		Span:     spanOf(fileID, src, src),
	})

	unit.Root = unit.Decls.New(ast.Decl{Kind: ast.DeclCompilationUnit, Children: []ast.DeclID{class}})
	return unit
}

// buildS6 builds: class A extends B {}  class B extends A {}
func buildS6(tab *names.Table, fileID source.FileID, src string) *ast.Unit {
	unit := ast.NewUnit(fileID)

	aName := tab.Intern("A")
	bName := tab.Intern("B")

	aSuperTE := unit.TypeExprs.New(ast.TypeExpr{Kind: ast.TypeExprNamed, Name: bName})
	bSuperTE := unit.TypeExprs.New(ast.TypeExpr{Kind: ast.TypeExprNamed, Name: aName})

	classA := unit.Decls.New(ast.Decl{Kind: ast.DeclClass, Name: aName, Supertype: aSuperTE, Span: spanOf(fileID, src, "class A extends B {}")})
	classB := unit.Decls.New(ast.Decl{Kind: ast.DeclClass, Name: bName, Supertype: bSuperTE, Span: spanOf(fileID, src, "class B extends A {}")})

	unit.Root = unit.Decls.New(ast.Decl{Kind: ast.DeclCompilationUnit, Children: []ast.DeclID{classA, classB}})
	return unit
}
