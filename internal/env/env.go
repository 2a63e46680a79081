// Package env implements the generic Env[A] frame stack every attribution
// pass walks: a linked list of enclosing-construct frames carrying a
// pluggable per-pass info payload (spec.md §3's Env<A>).
package env

// Env is one frame of the attribution stack. Node/Class/Method/Unit are
// opaque references the owning pass interprets (attr puts ast node ids in
// Node and symbol ids in Class and Method);
// env itself only threads the linkage.
type Env[A any] struct {
	Node uint32 // the AST node this frame was pushed for, opaque here

	Next *Env[A] // next enclosing frame (the frame this one was dup'd/pushed from)
	Outer *Env[A] // nearest enclosing-class frame, skipping intermediate block/method frames

	Unit   uint32 // enclosing compilation unit, opaque
	Class  uint32 // enclosing class, opaque; 0 if none
	Method uint32 // enclosing method, opaque; 0 if none

	Info A
}

// New starts a fresh, top-level frame (no enclosing frames) with info.
func New[A any](node uint32, info A) *Env[A] {
	return &Env[A]{Node: node, Info: info}
}

// Dup creates a new frame for node, chained after e, sharing e's
// Unit/Class/Method/Outer linkage and a copy of e's info (spec.md: "dup(node)
// creates a new frame with a fresh info, sharing most fields").
func (e *Env[A]) Dup(node uint32, info A) *Env[A] {
	return &Env[A]{
		Node:   node,
		Next:   e,
		Outer:  e.Outer,
		Unit:   e.Unit,
		Class:  e.Class,
		Method: e.Method,
		Info:   info,
	}
}

// PushClass starts a new class-body frame: Outer becomes e itself (the new
// nearest enclosing-class frame), and Class is updated to class.
func (e *Env[A]) PushClass(node uint32, class uint32, info A) *Env[A] {
	next := &Env[A]{
		Node:   node,
		Next:   e,
		Class:  class,
		Method: e.Method,
		Unit:   e.Unit,
		Info:   info,
	}
	next.Outer = next
	return next
}

// PushMethod starts a new method-body frame.
func (e *Env[A]) PushMethod(node uint32, method uint32, info A) *Env[A] {
	return &Env[A]{
		Node:   node,
		Next:   e,
		Outer:  e.Outer,
		Unit:   e.Unit,
		Class:  e.Class,
		Method: method,
		Info:   info,
	}
}
