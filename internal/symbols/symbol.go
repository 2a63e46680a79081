package symbols

import (
	"nominalc/internal/source"
	"nominalc/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol (spec.md §3's
// "every declared entity" list).
type SymbolKind uint8

const (
	SymInvalid SymbolKind = iota
	SymPackage
	SymModule
	SymClass
	SymInterface
	SymMethod
	SymConstructor
	SymField
	SymLocalVar
	SymParam
	SymTypeVariable
	SymOperator
)

func (k SymbolKind) String() string {
	switch k {
	case SymPackage:
		return "package"
	case SymModule:
		return "module"
	case SymClass:
		return "class"
	case SymInterface:
		return "interface"
	case SymMethod:
		return "method"
	case SymConstructor:
		return "constructor"
	case SymField:
		return "field"
	case SymLocalVar:
		return "local-var"
	case SymParam:
		return "param"
	case SymTypeVariable:
		return "type-variable"
	case SymOperator:
		return "operator"
	default:
		return "invalid"
	}
}

// Flags records cross-cutting modifiers; exact bit meaning is interpreted
// per SymbolKind (e.g. FlagAbstract only applies to SymClass/SymMethod).
type Flags uint16

const (
	FlagPublic Flags = 1 << iota
	FlagPrivate
	FlagProtected
	FlagStatic
	FlagFinal
	FlagAbstract
	FlagSynthetic  // bridge methods, default constructors
	FlagEnumClass  // class declares no explicit members beyond its constants
	FlagVarargs    // method's last parameter is a variable-arity parameter
	FlagDefault    // interface method has a body (default method)
	FlagDeprecated
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Decl anchors a symbol back to the AST node it was declared from, for
// diagnostics and for completers to re-walk declaration syntax. The ast
// package defines the concrete node-id types; symbols only needs a source
// span and an opaque, package-agnostic reference a completer can interpret.
type Decl struct {
	Span source.Span
	Ref  uint32 // opaque index into the declaring package's own AST arena
}

// ClassData holds fields specific to SymClass/SymInterface symbols.
type ClassData struct {
	Supertype    types.TypeID
	Interfaces   []types.TypeID
	TypeParams   []SymbolID // each a SymTypeVariable symbol, in declaration order
	MemberScope  ScopeID
	IsInterface  bool
	EnclosingPkg SymbolID
}

// MethodData holds fields specific to SymMethod/SymConstructor symbols.
type MethodData struct {
	TypeParams []SymbolID
	Params     []SymbolID // each a SymParam symbol, in declaration order
	Return     types.TypeID
	Thrown     []types.TypeID
	Overrides  SymbolID // on a transtypes bridge, the method it forwards to; otherwise unset
	Owner      SymbolID // declaring class/interface
	Scope      ScopeID  // this method's own scope: params plus its body's locals
}

// VarData holds fields specific to SymField/SymLocalVar/SymParam symbols.
type VarData struct {
	ConstValue any // non-nil for a compile-time constant field
	Owner      SymbolID
}

// TypeVarData holds fields specific to SymTypeVariable symbols.
type TypeVarData struct {
	Bound types.TypeID // intersection of declared bounds, or Object if none
	Owner SymbolID     // the class/method declaring this type parameter
	Index int          // position among the owner's type parameters
}

// Symbol is a tagged-union descriptor: only the fields relevant to Kind are
// meaningful. Kind-specific data lives in a pointer field so unrelated
// kinds don't pay for each other's storage.
type Symbol struct {
	Name  Name
	Kind  SymbolKind
	Flags Flags
	Type  types.TypeID // the symbol's own type (class type, method type, field type, ...)
	Scope ScopeID       // the scope this symbol is declared IN (its enclosing scope)
	Decl  Decl

	Class    *ClassData
	Method   *MethodData
	Var      *VarData
	TypeVar  *TypeVarData

	completionState CompletionState
	completionErr   error
	completer       Completer
}
