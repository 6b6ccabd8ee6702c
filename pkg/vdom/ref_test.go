package vdom

import (
	"sync"
	"testing"
)

func TestRefLifecycle(t *testing.T) {
	ref := NewNodeRef()
	if ref.IsSet() {
		t.Error("new ref should not be set")
	}
	if ref.Current() != nil {
		t.Error("new ref should be empty")
	}

	node := Div()
	ref.Set(node)
	if !ref.IsSet() || ref.Current() != node {
		t.Error("ref should hold the node after Set")
	}

	ref.Clear()
	if ref.IsSet() || ref.Current() != nil {
		t.Error("ref should be empty after Clear")
	}
}

func TestUseRef(t *testing.T) {
	ref := NewNodeRef()
	node := Div(UseRef(ref))

	if node.Ref() != ref {
		t.Error("Ref() should return the attached ref")
	}
	if ref.IsSet() {
		t.Error("attaching a ref must not populate it")
	}

	plain := Div(UseRef(nil))
	if plain.Ref() != nil {
		t.Error("nil ref should not be attached")
	}
	if _, ok := plain.Props["_ref"]; ok {
		t.Error("nil ref should leave no prop")
	}
}

func TestRefConcurrentAccess(t *testing.T) {
	ref := NewRef(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			ref.Set(v)
		}(i)
		go func() {
			defer wg.Done()
			_ = ref.Current()
		}()
	}
	wg.Wait()
	if !ref.IsSet() {
		t.Error("ref should be set")
	}
}
