package reactive

import (
	"sync"
)

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Watcher observes a State change.
type Watcher[T any] func(old, new T)

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Set(T)
	Watch(fn Watcher[T]) (unwatch func())
}

// State represents a reactive state value
type State[T any] struct {
	value T
	mu    sync.RWMutex

	// Watchers run in registration order on every Set.
	watchers   map[uint64]Watcher[T]
	order      []uint64
	nextID     uint64
	watchersMu sync.RWMutex
}

var _ Signal[int] = (*State[int])(nil)

// NewState creates a new reactive state
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value:    initial,
		watchers: make(map[uint64]Watcher[T]),
	}
}

// Get returns the current value
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value and notifies watchers, even when the value is unchanged,
// so re-applying a value re-runs its side effects.
func (s *State[T]) Set(value T) {
	if debugLog != nil {
		debugLog("[State] Set called with value:", value)
	}

	s.mu.Lock()
	old := s.value
	s.value = value
	s.mu.Unlock()

	s.notify(old, value)
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	old := s.value
	s.value = fn(old)
	value := s.value
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[State] Update called, old:", old, "new:", value)
	}

	s.notify(old, value)
	return value
}

// Watch registers fn and returns a function that removes it.
func (s *State[T]) Watch(fn Watcher[T]) (unwatch func()) {
	s.watchersMu.Lock()
	defer s.watchersMu.Unlock()

	s.nextID++
	id := s.nextID
	s.watchers[id] = fn
	s.order = append(s.order, id)

	return func() {
		s.watchersMu.Lock()
		defer s.watchersMu.Unlock()
		delete(s.watchers, id)
		for i, other := range s.order {
			if other == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// notify calls watchers outside the locks so they may read or write s.
func (s *State[T]) notify(old, value T) {
	s.watchersMu.RLock()
	fns := make([]Watcher[T], 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.watchers[id])
	}
	s.watchersMu.RUnlock()

	if debugLog != nil {
		debugLog("[State] Notifying", len(fns), "watchers")
	}

	for _, fn := range fns {
		fn(old, value)
	}
}
