package ast

import "nominalc/internal/source"

// Unit is one parsed compilation unit: its own declaration/statement/
// expression/type-expression arenas plus the file it was parsed from.
// Every DeclID/StmtID/ExprID/TypeExprID a Decl, Stmt, or Expr carries is
// relative to its own Unit's arenas (they are never shared across units).
type Unit struct {
	File       source.FileID
	Decls      *File
	Stmts      *Stmts
	Exprs      *Exprs
	TypeExprs  *TypeExprs
	Root       DeclID // the DeclCompilationUnit node
}

// NewUnit allocates an empty Unit for the given source file.
func NewUnit(file source.FileID) *Unit {
	return &Unit{
		File:      file,
		Decls:     NewFile(),
		Stmts:     NewStmts(),
		Exprs:     NewExprs(),
		TypeExprs: NewTypeExprs(),
	}
}
