package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a generic typed arena allocator. Index 0 is reserved so the
// zero value of an ID type
// always means "absent" without a separate validity flag.
type Arena[T any] struct {
	data []*T
}

// NewArena creates an arena with an optional capacity hint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]*T, 0, capHint)}
}

// Allocate appends a value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	elem := new(T)
	*elem = value
	a.data = append(a.data, elem)
	return a.Len()
}

// Get returns a pointer to the element at the given 1-based index, or nil
// for index 0. The pointer aliases arena storage: mutate through it to
// update the node in place (this is how attribution writes back into AST
// nodes without a separate side-table).
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return a.data[index-1]
}

// Len returns the number of elements in the arena.
func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena len overflow: %w", err))
	}
	return n
}

// All returns a snapshot-safe view over 1-based indices currently in the
// arena. The slice is taken before iteration so concurrent appends made by
// the caller's own loop body (e.g. while lowering) do not invalidate it.
func (a *Arena[T]) All() []uint32 {
	ids := make([]uint32, len(a.data))
	for i := range ids {
		ids[i] = uint32(i + 1)
	}
	return ids
}
