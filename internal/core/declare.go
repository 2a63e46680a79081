package core

import (
	"nominalc/internal/ast"
	"nominalc/internal/attr"
	"nominalc/internal/diag"
	"nominalc/internal/symbols"
	"nominalc/internal/types"
)

// completerFunc adapts a plain function to symbols.Completer, the same
// function-pointer-as-completer shape spec.md §9's design notes call for
// ("the completer is a function pointer ... stored on the symbol").
type completerFunc func(symbols.SymbolID) error

func (f completerFunc) Complete(id symbols.SymbolID) error { return f(id) }

// declareUnit performs declaration entry (javac's Enter + MemberEnter,
// folded into one pass here since this front end has no separate class-file
// reader): it allocates a Symbol for each class/interface the unit
// declares and defers resolving supertypes and interfaces, and declaring
// the class's methods, fields and params, to each class's lazy Completer,
// so a forward reference (or a cycle) is only discovered on first demand,
// exactly as spec.md §4.3 and the completion state machine require.
func (p *Pipeline) declareUnit(a *attr.Attributor, unit *ast.Unit) map[ast.DeclID]symbols.SymbolID {
	declared := map[ast.DeclID]symbols.SymbolID{}
	if !unit.Root.IsValid() {
		return declared
	}
	root := unit.Decls.Get(unit.Root)
	p.declareChildren(a, unit, p.Symbols.Root(), root.Children, declared)
	return declared
}

func (p *Pipeline) declareChildren(a *attr.Attributor, unit *ast.Unit, scope symbols.ScopeID, children []ast.DeclID, declared map[ast.DeclID]symbols.SymbolID) {
	for _, id := range children {
		d := unit.Decls.Get(id)
		switch d.Kind {
		case ast.DeclPackage:
			pkgID := p.Symbols.Declare(scope, d.Name, symbols.Symbol{Kind: symbols.SymPackage})
			declared[id] = pkgID
			// Flat namespace: a package's own members are declared straight
			// into the enclosing scope alongside the package symbol (see
			// Pipeline.FindSymbol's matching assumption).
			p.declareChildren(a, unit, scope, d.Children, declared)
		case ast.DeclClass, ast.DeclInterface:
			p.declareClass(a, unit, scope, id, d, declared)
		}
	}
}

func (p *Pipeline) declareClass(a *attr.Attributor, unit *ast.Unit, scope symbols.ScopeID, id ast.DeclID, d ast.Decl, declared map[ast.DeclID]symbols.SymbolID) {
	kind := symbols.SymClass
	if d.Kind == ast.DeclInterface {
		kind = symbols.SymInterface
	}
	memberScope := p.Symbols.NewScope(symbols.ScopeClass, scope, symbols.NoSymbolID)
	classID := p.Symbols.Declare(scope, d.Name, symbols.Symbol{
		Kind:  kind,
		Flags: modifierFlags(d.Mods),
		Class: &symbols.ClassData{MemberScope: memberScope, IsInterface: d.Kind == ast.DeclInterface},
	})
	p.Symbols.Scopes.Get(memberScope).Owner = classID
	declared[id] = classID

	sym := p.Symbols.Symbol(classID)
	for _, tpID := range d.TypeParams {
		tp := unit.Decls.Get(tpID)
		bound := types.NoTypeID
		if len(tp.Bounds) > 0 {
			bound = a.ResolveTypeExpr(tp.Bounds[0].Type)
		}
		owner := p.Symbols.Declare(memberScope, tp.Name, symbols.Symbol{
			Kind:    symbols.SymTypeVariable,
			TypeVar: &symbols.TypeVarData{Owner: classID, Index: len(sym.Class.TypeParams)},
		})
		tv := p.Types.TypeVar(uint32(owner), bound)
		p.Symbols.Symbol(owner).Type = tv
		sym.Class.TypeParams = append(sym.Class.TypeParams, owner)
	}
	typeParamTypes := make([]types.TypeID, len(sym.Class.TypeParams))
	for i, tp := range sym.Class.TypeParams {
		typeParamTypes[i] = p.Symbols.Symbol(tp).Type
	}
	sym.Type = p.Types.Class(uint32(classID), types.NoTypeID, typeParamTypes)

	p.Symbols.SetCompleter(classID, completerFunc(func(self symbols.SymbolID) error {
		return p.completeClass(a, unit, self, d, memberScope, declared)
	}))
}

// completeClass is classID's deferred completer: resolves its supertype and
// interfaces (forcing their own completion to surface inheritance cycles,
// spec.md S6), then declares its members into memberScope.
func (p *Pipeline) completeClass(a *attr.Attributor, unit *ast.Unit, classID symbols.SymbolID, d ast.Decl, memberScope symbols.ScopeID, declared map[ast.DeclID]symbols.SymbolID) error {
	sym := p.Symbols.Symbol(classID)
	if d.Supertype.IsValid() {
		supType := a.ResolveTypeExpr(d.Supertype)
		sym.Class.Supertype = supType
		if err, direct := p.completeOwnerOf(supType); err != nil {
			if symbols.IsCyclicCompletion(err) {
				sym.Type = p.Types.Builtins().Error
				if direct {
					p.Reporter.Report(diag.SevError, d.Span, "symbols.cyclic-inheritance")
				}
			}
			return err
		}
	}
	for _, ifaceTE := range d.Interfaces {
		ifaceType := a.ResolveTypeExpr(ifaceTE)
		sym.Class.Interfaces = append(sym.Class.Interfaces, ifaceType)
		if err, direct := p.completeOwnerOf(ifaceType); err != nil {
			if symbols.IsCyclicCompletion(err) {
				sym.Type = p.Types.Builtins().Error
				if direct {
					p.Reporter.Report(diag.SevError, d.Span, "symbols.cyclic-inheritance")
				}
			}
			return err
		}
	}
	p.declareMembers(a, unit, memberScope, classID, d.Children, declared)
	p.checkOverridesAndClashes(d, sym, memberScope)
	return nil
}

// checkOverridesAndClashes runs Check's override-compatibility and
// clashing-overload rules (spec.md §4.1) once a class's members and
// supertype are both known: CheckClashingOverloads compares every pair of
// same-named methods declared directly in the class, and CheckOverride
// compares each of those against any same-named, Overrides-related method
// inherited from the supertype.
func (p *Pipeline) checkOverridesAndClashes(d ast.Decl, sym *symbols.Symbol, memberScope symbols.ScopeID) {
	scope := p.Symbols.Scopes.Get(memberScope)
	if scope == nil {
		return
	}
	byName := map[symbols.Name][]symbols.SymbolID{}
	for _, id := range scope.Snapshot() {
		m := p.Symbols.Symbol(id)
		if m == nil || m.Kind != symbols.SymMethod || m.Method == nil {
			continue
		}
		byName[m.Name] = append(byName[m.Name], id)
	}
	for _, ids := range byName {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				p.Checker.CheckClashingOverloads(d.Span, ids[i], ids[j])
			}
		}
	}

	if sym.Class == nil || sym.Class.Supertype == types.NoTypeID {
		return
	}
	superOwner := symbols.SymbolID(p.Types.Get(sym.Class.Supertype).Owner)
	superSym := p.Symbols.Symbol(superOwner)
	if superSym == nil || superSym.Class == nil {
		return
	}
	superScope := p.Symbols.Scopes.Get(superSym.Class.MemberScope)
	if superScope == nil {
		return
	}
	for name, candidateIDs := range byName {
		for _, baseID := range superScope.Lookup(name) {
			base := p.Symbols.Symbol(baseID)
			if base == nil || base.Method == nil {
				continue
			}
			for _, candID := range candidateIDs {
				if p.Symbols.Overrides(candID, baseID) {
					p.Checker.CheckOverride(d.Span, candID, baseID)
				}
			}
		}
	}
}

// completeOwnerOf forces t's owning symbol to complete and reports whether
// this call is the one that directly observed a cyclic-completion sentinel
// (owner was already InProgress when we called in), as opposed to merely
// relaying a cyclic failure some nested completer already reported. The
// sentinel value itself (errCyclicCompletion) is a shared singleton that
// propagates unchanged through every level of re-entrant Complete calls, so
// an equality check alone can't tell "I discovered this" from "someone
// upstream already reported this" — only the owner's pre-call state can.
// Reporting only at the direct site is what keeps S6-style cycles (two
// classes extending each other) down to exactly one diagnostic.
func (p *Pipeline) completeOwnerOf(t types.TypeID) (err error, direct bool) {
	owner := symbols.SymbolID(p.Types.Get(t).Owner)
	if !owner.IsValid() {
		return nil, false
	}
	wasInProgress := p.Symbols.CompletionState(owner) == symbols.InProgress
	err = p.Symbols.Complete(owner)
	direct = err != nil && symbols.IsCyclicCompletion(err) && wasInProgress
	return err, direct
}

func (p *Pipeline) declareMembers(a *attr.Attributor, unit *ast.Unit, memberScope symbols.ScopeID, ownerID symbols.SymbolID, children []ast.DeclID, declared map[ast.DeclID]symbols.SymbolID) {
	for _, id := range children {
		d := unit.Decls.Get(id)
		switch d.Kind {
		case ast.DeclClass, ast.DeclInterface:
			p.declareClass(a, unit, memberScope, id, d, declared)
		case ast.DeclMethod, ast.DeclConstructor:
			p.declareMethod(a, unit, memberScope, ownerID, id, d, declared)
		case ast.DeclField:
			p.declareField(a, memberScope, ownerID, id, d, declared)
		}
	}
}

func (p *Pipeline) declareMethod(a *attr.Attributor, unit *ast.Unit, memberScope symbols.ScopeID, ownerID symbols.SymbolID, id ast.DeclID, d ast.Decl, declared map[ast.DeclID]symbols.SymbolID) {
	kind := symbols.SymMethod
	if d.Kind == ast.DeclConstructor {
		kind = symbols.SymConstructor
	}
	methodScope := p.Symbols.NewScope(symbols.ScopeMethod, memberScope, symbols.NoSymbolID)
	paramIDs := make([]symbols.SymbolID, len(d.Params))
	paramTypes := make([]types.TypeID, len(d.Params))
	for i, pid := range d.Params {
		pd := unit.Decls.Get(pid)
		paramTypes[i] = a.ResolveTypeExpr(pd.ValueType)
		paramIDs[i] = p.Symbols.Declare(methodScope, pd.Name, symbols.Symbol{
			Kind: symbols.SymParam,
			Var:  &symbols.VarData{Owner: ownerID},
			Type: paramTypes[i],
		})
	}
	returnType := p.Types.Builtins().Void
	if d.Kind == ast.DeclMethod && d.Return.IsValid() {
		returnType = a.ResolveTypeExpr(d.Return)
	}
	thrown := make([]types.TypeID, len(d.Thrown))
	for i, te := range d.Thrown {
		thrown[i] = a.ResolveTypeExpr(te)
	}
	flags := modifierFlags(d.Mods)
	if d.IsVarargs {
		flags |= symbols.FlagVarargs
	}
	methodID := p.Symbols.Declare(memberScope, d.Name, symbols.Symbol{
		Kind:  kind,
		Flags: flags,
		Type:  p.Types.Method(paramTypes, returnType, thrown),
		Method: &symbols.MethodData{
			Params: paramIDs,
			Return: returnType,
			Thrown: thrown,
			Owner:  ownerID,
			Scope:  methodScope,
		},
	})
	p.Symbols.Scopes.Get(methodScope).Owner = methodID
	declared[id] = methodID
}

func (p *Pipeline) declareField(a *attr.Attributor, memberScope symbols.ScopeID, ownerID symbols.SymbolID, id ast.DeclID, d ast.Decl, declared map[ast.DeclID]symbols.SymbolID) {
	fieldType := a.ResolveTypeExpr(d.ValueType)
	fieldID := p.Symbols.Declare(memberScope, d.Name, symbols.Symbol{
		Kind:  symbols.SymField,
		Flags: modifierFlags(d.Mods),
		Type:  fieldType,
		Var:   &symbols.VarData{Owner: ownerID},
	})
	declared[id] = fieldID
}

func modifierFlags(m ast.Modifier) symbols.Flags {
	var f symbols.Flags
	if m&ast.ModPublic != 0 {
		f |= symbols.FlagPublic
	}
	if m&ast.ModPrivate != 0 {
		f |= symbols.FlagPrivate
	}
	if m&ast.ModProtected != 0 {
		f |= symbols.FlagProtected
	}
	if m&ast.ModStatic != 0 {
		f |= symbols.FlagStatic
	}
	if m&ast.ModFinal != 0 {
		f |= symbols.FlagFinal
	}
	if m&ast.ModAbstract != 0 {
		f |= symbols.FlagAbstract
	}
	if m&ast.ModDefault != 0 {
		f |= symbols.FlagDefault
	}
	return f
}
