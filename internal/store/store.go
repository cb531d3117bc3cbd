// Package store implements the reactive store the berry views share.
//
// A Store owns exactly one berry.State. SetState merges a typed patch into it
// and synchronously notifies every listener, in subscription order, on the
// calling goroutine. There is no diffing: a listener runs on every SetState
// even when nothing changed.
//
// Listeners may call back into the store. A nested SetState runs its own full
// notification pass before returning; the outer pass then continues, and the
// listeners it still has to reach receive the newest state.
//
// The store does not validate patches. A threshold outside [0,1] or a
// selection pointing at missing items is stored and forwarded as given.
package store

import (
	"sync"

	"github.com/idlab-discover/berryroc/internal/berry"
)

// Listener receives the store's state.
type Listener func(berry.State)

// Store is an observable berry.State container. Create one per independent
// group of views with New.
type Store struct {
	mu        sync.RWMutex
	state     berry.State
	listeners Observers[berry.State]
	name      string
}

// Option configures a Store.
type Option func(*Store)

// WithName labels the store in debug logs.
func WithName(name string) Option {
	return func(s *Store) { s.name = name }
}

// New returns a store holding initial.
func New(initial berry.State, opts ...Option) *Store {
	s := &Store{state: initial}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state. The returned value shares slices and maps
// with the store; treat it as read-only and build replacements instead.
func (s *Store) State() berry.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState merges p into the current state and notifies every listener.
func (s *Store) SetState(p berry.Patch) {
	s.mu.Lock()
	s.state = s.state.Merge(p)
	s.mu.Unlock()

	logf(s.name, "set %s (listeners=%d)", describePatch(p), s.listeners.Len())
	s.listeners.Notify(s.State)
}

// Subscribe registers l and calls it once with the current state before
// returning. The returned function unsubscribes l; calling it more than once
// is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	remove := s.listeners.Add(l)
	logf(s.name, "subscribe (listeners=%d)", s.listeners.Len())
	l(s.State())
	return remove
}

// Len returns the number of active listeners.
func (s *Store) Len() int { return s.listeners.Len() }
