// Package core wires Names, Types, Symbols, Resolve, Check, Attr,
// DeferredAttr, Analyzer, and TransTypes into the single orchestration
// entry point spec.md §4 calls out: Attribute a compilation unit, then
// (optionally) run the advisory Analyzer and the TransTypes erasure pass
// over its declared classes.
package core

import (
	"strings"
	"time"

	"nominalc/internal/analyzer"
	"nominalc/internal/ast"
	"nominalc/internal/attr"
	"nominalc/internal/check"
	"nominalc/internal/config"
	"nominalc/internal/diag"
	"nominalc/internal/env"
	"nominalc/internal/names"
	"nominalc/internal/resolve"
	"nominalc/internal/symbols"
	"nominalc/internal/trace"
	"nominalc/internal/transtypes"
	"nominalc/internal/types"
)

// Pipeline bundles the tables and passes one compilation shares, mirroring
// the teacher's top-level driver struct but scoped to this front end's
// components instead of a full lex/parse/borrow/codegen chain.
type Pipeline struct {
	Names   *names.Table
	Types   *types.Store
	Symbols *symbols.Table

	Resolver   *resolve.Resolver
	Checker    *check.Checker
	Translator *transtypes.Translator

	Config   config.Config
	Reporter diag.Reporter
	Tracer   trace.Tracer
}

// Option customizes a new Pipeline.
type Option func(*Pipeline)

// WithReporter overrides the diagnostic sink (default: diag.Nop).
func WithReporter(rep diag.Reporter) Option {
	return func(p *Pipeline) { p.Reporter = rep }
}

// WithConfig overrides the lint configuration (default: config.Default()).
func WithConfig(cfg config.Config) Option {
	return func(p *Pipeline) { p.Config = cfg }
}

// WithTracer attaches a trace.Tracer the pipeline emits span events to
// around each phase (default: trace.Nop).
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) { p.Tracer = t }
}

// New builds a fresh Pipeline with its own Names/Types/Symbols tables.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		Names:    names.NewTable(),
		Reporter: diag.Nop,
		Tracer:   trace.Nop,
		Config:   config.Default(),
	}
	p.Types = types.NewStore()
	p.Symbols = symbols.NewTable(symbols.Hints{}, p.Names, p.Types)
	for _, opt := range opts {
		opt(p)
	}
	p.Resolver = resolve.New(p.Symbols)
	p.Checker = check.New(p.Symbols, p.Reporter)
	p.Translator = transtypes.New(p.Symbols, p.Reporter)
	return p
}

// span emits a begin/end point pair around fn, the same shape the teacher's
// driver uses to bound each compilation phase (internal/trace's Tracer is
// otherwise unwired anywhere else in this pipeline).
func (p *Pipeline) span(name string, fn func()) {
	if !p.Tracer.Enabled() {
		fn()
		return
	}
	id := trace.NextSpanID()
	p.Tracer.Emit(&trace.Event{Time: time.Now(), Seq: trace.NextSeq(), Kind: trace.KindSpanBegin, Scope: trace.ScopePass, SpanID: id, Name: name})
	fn()
	p.Tracer.Emit(&trace.Event{Time: time.Now(), Seq: trace.NextSeq(), Kind: trace.KindSpanEnd, Scope: trace.ScopePass, SpanID: id, Name: name})
}

// Attribute is spec.md's core.Attribute(compilationUnit): it first declares
// every package/class/interface/method/field the unit contains (javac's
// Enter/MemberEnter, folded into lazy per-class completers so a forward
// reference or cycle surfaces only on demand), forces top-level class
// completion, then walks every declaration's body with the attribution
// visitor.
func (p *Pipeline) Attribute(unit *ast.Unit) {
	a := attr.New(unit, p.Symbols, p.Reporter)
	p.span("attribute", func() {
		if !unit.Root.IsValid() {
			return
		}
		root := unit.Decls.Get(unit.Root)
		declared := p.declareUnit(a, unit)
		for _, symID := range declared {
			if sym := p.Symbols.Symbol(symID); sym != nil && sym.Class != nil {
				_ = p.Symbols.Complete(symID)
			}
		}
		e := env.New(uint32(unit.Root), env.AttrContext{
			Scope:    p.Symbols.Root(),
			Lint:     p.Config.ToEnvLint(),
			Reporter: p.Reporter,
		})
		p.attribDecl(a, e, unit.Root, root, declared)
	})
}

// attribDecl recurses over the declaration tree, attributing method/field
// bodies and descending into nested class members. declared maps each
// class/interface DeclID to the SymbolID declareUnit allocated for it, so
// the pushed Env frame's Class field carries a symbol id (what
// Attributor.classType expects) rather than a raw AST node id.
func (p *Pipeline) attribDecl(a *attr.Attributor, e *env.Env[env.AttrContext], id ast.DeclID, d ast.Decl, declared map[ast.DeclID]symbols.SymbolID) {
	switch d.Kind {
	case ast.DeclCompilationUnit, ast.DeclPackage:
		for _, childID := range d.Children {
			p.attribDecl(a, e, childID, a.Unit.Decls.Get(childID), declared)
		}
	case ast.DeclClass, ast.DeclInterface:
		classID := declared[id]
		classInfo := e.Info.Dup()
		if sym := p.Symbols.Symbol(classID); sym != nil && sym.Class != nil {
			classInfo.Scope = sym.Class.MemberScope
		}
		classEnv := e.PushClass(uint32(id), uint32(classID), classInfo)
		for _, childID := range d.Children {
			p.attribDecl(a, classEnv, childID, a.Unit.Decls.Get(childID), declared)
		}
	case ast.DeclMethod, ast.DeclConstructor:
		methodID := declared[id]
		methodInfo := e.Info.Dup()
		if sym := p.Symbols.Symbol(methodID); sym != nil && sym.Method != nil {
			methodInfo.Scope = sym.Method.Scope
		}
		methodEnv := e.PushMethod(uint32(id), uint32(methodID), methodInfo)
		returnType := p.Types.Builtins().Void
		if d.Kind == ast.DeclMethod && d.Return.IsValid() {
			returnType = a.ResolveTypeExpr(d.Return)
		}
		if d.Body.IsValid() {
			a.AttribStmt(methodEnv, d.Body, returnType)
		}
	case ast.DeclField:
		if d.Init.IsValid() {
			a.AttribExpr(e, d.Init, env.ResultInfo{ExpectedType: uint32(a.ResolveTypeExpr(d.ValueType))})
		}
	}
}

// Analyze runs the optional advisory Analyzer over an already-attributed
// unit (spec.md's Open Question: Analyzer's inclusion is optional/advisory
// and never affects attribution outcomes).
func (p *Pipeline) Analyze(unit *ast.Unit) {
	p.span("analyze", func() {
		analyzer.New(unit, p.Symbols, p.Reporter).Run()
	})
}

// EraseClass runs TransTypes over one class/interface symbol, rewriting its
// declared signatures to their erasure and returning any bridge methods
// the erasure now requires (spec.md's core.EraseAndAddBridges).
func (p *Pipeline) EraseClass(classSym symbols.SymbolID) []transtypes.Bridge {
	var bridges []transtypes.Bridge
	p.span("erase", func() {
		bridges = p.Translator.EraseAndAddBridges(classSym)
	})
	return bridges
}

// FindSymbol resolves a dotted qualified name ("pkg.Outer.Inner") against
// the root scope, descending into each matched class's member scope for
// the next segment. It returns symbols.NoSymbolID if any segment fails to
// resolve, or if a segment is ambiguous between more than one same-named
// symbol (qualified lookup only makes sense for non-overloaded entities:
// packages, classes, and interfaces).
func (p *Pipeline) FindSymbol(qualifiedName string) symbols.SymbolID {
	segments := strings.Split(qualifiedName, ".")
	scope := p.Symbols.Root()
	var current symbols.SymbolID = symbols.NoSymbolID
	for _, seg := range segments {
		if seg == "" {
			return symbols.NoSymbolID
		}
		name := p.Names.Intern(seg)
		candidates := p.Symbols.Lookup(scope, name)
		if len(candidates) != 1 {
			return symbols.NoSymbolID
		}
		current = candidates[0]
		if err := p.Symbols.Complete(current); err != nil {
			return symbols.NoSymbolID
		}
		sym := p.Symbols.Symbol(current)
		if sym == nil {
			return symbols.NoSymbolID
		}
		switch sym.Kind {
		case symbols.SymPackage:
			// Packages have no member scope of their own in this model:
			// top-level classes are declared flat into the root scope
			// alongside their package symbol, so qualified lookup just
			// continues searching root for the next segment.
			scope = p.Symbols.Root()
		case symbols.SymClass, symbols.SymInterface:
			if sym.Class != nil {
				scope = sym.Class.MemberScope
			}
		}
	}
	return current
}
