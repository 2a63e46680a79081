package symbols

// CompletionState tracks a symbol's lazy-completion progress (spec.md §4.3:
// class members, supertype, and signatures are filled in on first demand,
// not eagerly at declaration time).
type CompletionState uint8

const (
	Uncompleted CompletionState = iota
	InProgress
	Completed
	Failed
)

func (c CompletionState) String() string {
	switch c {
	case Uncompleted:
		return "uncompleted"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Completer fills in a symbol's deferred data (supertype, interfaces,
// members, method signature) the first time it is needed. The
// implementation is internal/core's class completer, which walks the AST
// node a symbol was declared from; symbols itself only drives the state
// machine.
type Completer interface {
	Complete(sym SymbolID) error
}

// terminalCompleter is installed on a symbol once its completion finishes
// (successfully or not), so a stray second call to Complete is a clear bug
// rather than silently re-running completion logic (spec.md §4.3: completion
// must be idempotent and a completer is invoked at most once per symbol).
type terminalCompleter struct{ err error }

func (t *terminalCompleter) Complete(SymbolID) error { return t.err }

var errCyclicCompletion = completionError("symbols: cyclic completion")

type completionError string

func (e completionError) Error() string { return string(e) }

// IsCyclicCompletion reports whether err is the sentinel Complete returns
// for re-entrant completion, letting a completer distinguish "my
// dependency is cyclic" (report once, at the symbol that discovers it)
// from an ordinary completion failure (propagate without re-reporting).
func IsCyclicCompletion(err error) bool { return err == errCyclicCompletion }

// Complete drives sym's completion state machine to Completed or Failed,
// invoking its registered Completer exactly once. A symbol observed
// InProgress (re-entrant completion, e.g. a class referencing its own
// supertype's member during that supertype's own completion) fails with
// errCyclicCompletion rather than deadlocking or infinitely recursing.
func (t *Table) Complete(id SymbolID) error {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return nil
	}
	switch sym.completionState {
	case Completed:
		return nil
	case Failed:
		return sym.completionErr
	case InProgress:
		return errCyclicCompletion
	}
	sym.completionState = InProgress
	completer := sym.completer
	if completer == nil {
		sym.completionState = Completed
		return nil
	}
	err := completer.Complete(id)
	sym = t.Symbols.Get(id) // re-fetch: completion may have reallocated the arena backing store
	if err != nil {
		sym.completionState = Failed
		sym.completionErr = err
	} else {
		sym.completionState = Completed
	}
	sym.completer = &terminalCompleter{err: err}
	return err
}

// SetCompleter registers the lazy completer for a freshly-declared symbol.
// A symbol with no completer (e.g. a primitive-backed VarSymbol) completes
// trivially on first Complete call.
func (t *Table) SetCompleter(id SymbolID, c Completer) {
	if sym := t.Symbols.Get(id); sym != nil {
		sym.completer = c
		sym.completionState = Uncompleted
	}
}

// CompletionState reports sym's current state without forcing completion.
func (t *Table) CompletionState(id SymbolID) CompletionState {
	if sym := t.Symbols.Get(id); sym != nil {
		return sym.completionState
	}
	return Completed
}
