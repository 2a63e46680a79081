package diag

// DedupReporter wraps another Reporter and suppresses diagnostics with the
// same (key, severity, primary span) already reported once. This implements
// the "downstream expressions that consume an error-typed subexpression
// must silently produce error types to avoid cascades" requirement (spec
// §7) at the reporting boundary, rather than forcing every call site to
// track whether it already reported for a given node.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	key   string
	sev   Severity
	file  uint32
	start uint32
	end   uint32
}

// NewDedupReporter returns a Reporter that forwards only first occurrences.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(severity Severity, primary Span, key string, args ...any) {
	if r == nil {
		return
	}
	k := dedupKey{key: key, sev: severity, file: uint32(primary.File), start: primary.Start, end: primary.End}
	if _, ok := r.seen[k]; ok {
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(severity, primary, key, args...)
	}
}
