package vdom

import "sync"

// Ref holds a mutable reference to a value.
// The renderer sets refs attached with UseRef to the element they mark.
//
// Ref[T] is safe for concurrent access.
type Ref[T any] struct {
	value T
	isSet bool
	mu    sync.RWMutex
}

// NodeRef is a reference to a rendered element.
type NodeRef = Ref[*VNode]

// NewRef creates a new Ref with the given initial value.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{value: initial}
}

// NewNodeRef creates an empty element reference.
func NewNodeRef() *NodeRef {
	return NewRef[*VNode](nil)
}

// Current returns the current value of the ref.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set sets the ref's value.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
	r.isSet = true
}

// IsSet returns true if the ref has been set.
func (r *Ref[T]) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// Clear resets the ref to its zero value.
func (r *Ref[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.value = zero
	r.isSet = false
}

// UseRef attaches ref to the element it is passed to.
// A nil ref yields an empty attribute, which element factories ignore.
func UseRef(ref *NodeRef) Attr {
	if ref == nil {
		return Attr{}
	}
	return attr(refProp, ref)
}
