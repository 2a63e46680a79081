package diag

import (
	"fmt"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a capacity, implementing Reporter.
// Reports past the capacity are dropped, which bounds memory growth on
// pathological input.
type Bag struct {
	items   []Diagnostic
	maximum uint16
}

// NewBag creates a Bag with a capacity limit.
func NewBag(maximum int) *Bag {
	cap16, err := safecast.Conv[uint16](maximum)
	if err != nil {
		panic(fmt.Errorf("diag: bag maximum overflow: %w", err))
	}
	return &Bag{items: make([]Diagnostic, 0, cap16), maximum: cap16}
}

// Report implements Reporter.
func (b *Bag) Report(severity Severity, primary Span, key string, args ...any) {
	if b == nil || len(b.items) >= int(b.maximum) {
		return
	}
	b.items = append(b.items, Diagnostic{Severity: severity, Primary: primary, Key: key, Args: args})
}

// Items returns the collected diagnostics in report order.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// HasErrors reports whether any collected diagnostic is SevError or worse.
func (b *Bag) HasErrors() bool {
	if b == nil {
		return false
	}
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Len reports the number of collected diagnostics.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}
