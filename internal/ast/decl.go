package ast

import (
	"nominalc/internal/names"
	"nominalc/internal/source"
)

// DeclKind tags the Decl union: every top-level or member declaration this
// language's grammar produces.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclCompilationUnit
	DeclPackage
	DeclImport
	DeclClass
	DeclInterface
	DeclMethod
	DeclConstructor
	DeclField
	DeclParam
	DeclTypeParam
)

// Modifier mirrors the source-level access/shape keywords; symbols.Flags is
// derived from these during declaration entry.
type Modifier uint16

const (
	ModPublic Modifier = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModAbstract
	ModDefault
)

// TypeParamBound is one "extends" clause element of a type parameter.
type TypeParamBound struct {
	Type TypeExprID
}

// Decl is a compact tagged declaration node. Only the fields relevant to
// Kind are meaningful; children reference other arenas by id so the node
// itself stays small.
type Decl struct {
	Kind     DeclKind
	Name     names.Name
	Span     source.Span
	Mods     Modifier
	Children []DeclID // import list, compilation-unit decls, class members

	// DeclClass / DeclInterface
	TypeParams []DeclID
	Supertype  TypeExprID
	Interfaces []TypeExprID

	// DeclMethod / DeclConstructor
	Params     []DeclID
	Return     TypeExprID
	Thrown     []TypeExprID
	Body       StmtID // NoStmtID for abstract/interface methods without a body
	IsVarargs  bool

	// DeclField / DeclParam
	ValueType TypeExprID
	Init      ExprID // NoExprID if absent

	// DeclTypeParam
	Bounds []TypeParamBound

	// DeclImport
	ImportPath []names.Name
	Wildcard   bool
}

// File stores one compilation unit's declarations.
type File struct {
	decls []Decl // index 0 unused
}

// NewFile returns an empty per-file declaration arena.
func NewFile() *File {
	return &File{decls: make([]Decl, 1, 64)}
}

// New allocates a declaration and returns its id.
func (f *File) New(d Decl) DeclID {
	f.decls = append(f.decls, d)
	return DeclID(len(f.decls) - 1)
}

// Get returns the Decl value for id.
func (f *File) Get(id DeclID) Decl {
	if !id.IsValid() || int(id) >= len(f.decls) {
		return Decl{}
	}
	return f.decls[id]
}

// GetPtr returns a pointer aliasing the arena storage, for in-place edits
// (e.g. recording a resolved symbol back onto the declaration during attr).
func (f *File) GetPtr(id DeclID) *Decl {
	if !id.IsValid() || int(id) >= len(f.decls) {
		return nil
	}
	return &f.decls[id]
}
