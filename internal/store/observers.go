package store

import "sync"

// Observers is an ordered list of callbacks receiving values of type T.
//
// Notify iterates a snapshot taken when it starts. An observer removed while
// a pass is running is skipped if it has not been reached yet; an observer
// added while a pass is running is not called by that pass. Callbacks run
// without the internal lock held, so they may add, remove or notify again.
type Observers[T any] struct {
	mu      sync.Mutex
	entries []*entry[T]
}

type entry[T any] struct {
	fn     func(T)
	active bool
}

// Add appends fn and returns a function removing it. Removing twice is a no-op.
func (o *Observers[T]) Add(fn func(T)) (remove func()) {
	e := &entry[T]{fn: fn, active: true}

	o.mu.Lock()
	o.entries = append(o.entries, e)
	o.mu.Unlock()

	return func() { o.remove(e) }
}

func (o *Observers[T]) remove(e *entry[T]) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !e.active {
		return
	}
	e.active = false
	for i, cur := range o.entries {
		if cur == e {
			o.entries = append(o.entries[:i:i], o.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered observers.
func (o *Observers[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}

// Notify calls every observer in registration order. value is evaluated per
// call, so observers reached after a nested Notify see whatever value returns
// at that point.
func (o *Observers[T]) Notify(value func() T) {
	o.mu.Lock()
	snapshot := make([]*entry[T], len(o.entries))
	copy(snapshot, o.entries)
	o.mu.Unlock()

	for _, e := range snapshot {
		if !o.isActive(e) {
			continue
		}
		e.fn(value())
	}
}

func (o *Observers[T]) isActive(e *entry[T]) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return e.active
}
