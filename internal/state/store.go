package state

import "sync"

// Store serializes state changes. State() returns a snapshot, so readers
// never observe a half-applied action.
type Store struct {
	mu    sync.RWMutex
	state AppState
}

// NewStore creates a store seeded with the initial state.
func NewStore() *Store {
	return &Store{state: NewState()}
}

// Dispatch applies an action through its reducer and returns the new state.
func (s *Store) Dispatch(action Action) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = action.reduce(s.state)
	return s.state
}

// State returns a snapshot of the current state tree.
func (s *Store) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
