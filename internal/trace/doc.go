// Package trace provides a tracing subsystem for the nominalc semantic core.
//
// The trace package enables tracking of attribution phases, per-class
// processing, and other operations to help diagnose performance issues and
// hangs in a host driver that embeds the core.
//
// # Usage
//
// A host driver attaches a tracer via context before calling core.Attribute:
//
//	ctx = trace.WithTracer(ctx, trace.NewStreamTracer(os.Stderr, trace.LevelPhase, trace.FormatText))
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Pipeline phase boundaries (attribute, analyze, erase)
//   - LevelDetail: Per-class/per-method events
//   - LevelDebug: Everything including per-expression attribution
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level host-driver operations
//   - ScopeModule: Per-compilation-unit processing
//   - ScopePass: Pipeline passes (attribute, analyze, erase)
//   - ScopeNode: AST node level (most detailed)
//
// # Context Propagation
//
// Tracers are propagated through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "attr", parentID)
//	defer span.End("")
package trace
