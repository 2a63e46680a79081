// Package analyzer implements the optional advisory lints spec.md's
// Analyzer component layers on top of a fully attributed tree: redundant
// explicit type arguments, diamond-eligible "new" expressions, and
// anonymous classes that could be rewritten as a lambda. None of these
// affect attribution outcomes; they only ever add diagnostics.
package analyzer

import (
	"nominalc/internal/ast"
	"nominalc/internal/diag"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// Analyzer walks an already-attributed Unit looking for lint-worthy shapes.
type Analyzer struct {
	Unit     *ast.Unit
	Symbols  *symbols.Table
	Types    *types.Store
	Reporter diag.Reporter
}

// New builds an Analyzer over unit, reporting lints through rep.
func New(unit *ast.Unit, tab *symbols.Table, rep diag.Reporter) *Analyzer {
	if rep == nil {
		rep = diag.Nop
	}
	return &Analyzer{Unit: unit, Symbols: tab, Types: tab.Types, Reporter: rep}
}

// Run walks every expression in the unit's arena, emitting advisory
// diagnostics. It does not recurse structurally (the arena is already a
// flat list of every node the unit ever allocated), so each check simply
// inspects one node's already-attributed fields.
func (an *Analyzer) Run() {
	for i := 1; i <= an.Unit.Exprs.Len(); i++ {
		id := ast.ExprID(i)
		expr := an.Unit.Exprs.Get(id)
		switch expr.Kind {
		case ast.ExprNew:
			an.checkRedundantTypeArgs(expr)
			an.checkDiamondEligible(expr)
			an.checkLambdaConvertible(expr)
		}
	}
}

// checkRedundantTypeArgs flags "new Foo<String>()" where the type argument
// is already implied by the assignment/argument context and could have been
// written as a diamond.
func (an *Analyzer) checkRedundantTypeArgs(expr ast.Expr) {
	if expr.IsDiamond || len(expr.TypeArgs) == 0 {
		return
	}
	te := an.Unit.TypeExprs.GetPtr(expr.NewType)
	if te == nil || len(te.TypeArgs) == 0 {
		return
	}
	an.Reporter.Report(diag.SevWarning, expr.Span, "analyzer.redundant-type-arguments")
}

// checkDiamondEligible flags an explicitly-parameterized "new" that could
// have omitted its type arguments entirely (diamond-eligible).
func (an *Analyzer) checkDiamondEligible(expr ast.Expr) {
	if expr.IsDiamond {
		return
	}
	te := an.Unit.TypeExprs.GetPtr(expr.NewType)
	if te == nil || len(te.TypeArgs) == 0 {
		return
	}
	ownerSym := an.Symbols.Symbol(symbols.SymbolID(an.Types.Get(te.Resolved).Owner))
	if ownerSym == nil || ownerSym.Class == nil || len(ownerSym.Class.TypeParams) == 0 {
		return
	}
	an.Reporter.Report(diag.SevWarning, expr.Span, "analyzer.diamond-eligible")
}

// checkLambdaConvertible flags an anonymous-class instantiation of a
// functional interface with no fields and a single overridden abstract
// method — a shape that could be rewritten as a lambda expression.
func (an *Analyzer) checkLambdaConvertible(expr ast.Expr) {
	if expr.AnonymousBody == ast.NoDeclID {
		return
	}
	te := an.Unit.TypeExprs.GetPtr(expr.NewType)
	if te == nil || te.Resolved == types.NoTypeID {
		return
	}
	if !an.Types.IsFunctionalInterface(te.Resolved) {
		return
	}
	body := an.Unit.Decls.Get(expr.AnonymousBody)
	methodCount := 0
	for _, childID := range body.Children {
		child := an.Unit.Decls.Get(childID)
		switch child.Kind {
		case ast.DeclField:
			return // stateful anonymous class, not lambda-convertible
		case ast.DeclMethod:
			methodCount++
		}
	}
	if methodCount == 1 {
		an.Reporter.Report(diag.SevWarning, expr.Span, "analyzer.lambda-convertible")
	}
}
