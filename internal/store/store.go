package store

import (
	"errors"
	"sync"

	"matchd/pkg/types"
)

// ErrExists is returned by Create when the match id is already taken.
var ErrExists = errors.New("match already exists")

// Store holds matches and their event logs behind a single RWMutex.
type Store struct {
	mu      sync.RWMutex
	matches map[string]types.Match
	order   []string // insertion order for List
	events  map[string][]types.MatchEvent
}

func New() *Store {
	return &Store{
		matches: make(map[string]types.Match),
		events:  make(map[string][]types.MatchEvent),
	}
}

// Create registers a new match record. The id must be unused.
func (s *Store) Create(m types.Match) (types.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[m.ID]; ok {
		return types.Match{}, ErrExists
	}
	s.matches[m.ID] = m
	s.order = append(s.order, m.ID)
	s.events[m.ID] = nil
	return m, nil
}

// Get returns a copy of the match, or false if the id is unknown.
func (s *Store) Get(id string) (types.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	return m, ok
}

// List returns a snapshot of all matches in insertion order.
func (s *Store) List() []types.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Match, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.matches[id])
	}
	return out
}

// Apply merges fn's changes onto the match under the write lock and returns
// the updated copy. fn receives a copy; mutations outside the returned value
// are not persisted. Returns false if the id is unknown.
func (s *Store) Apply(id string, fn func(types.Match) types.Match) (types.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return types.Match{}, false
	}
	m = fn(m)
	s.matches[id] = m
	return m, true
}

// AppendEvent appends ev to the match's log and returns the log length after
// the append. The sequence number gives subscribers a total order to de-dup
// replay against live pushes. Appending to an unknown match is a no-op and
// returns 0.
func (s *Store) AppendEvent(id string, ev types.MatchEvent) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[id]; !ok {
		return 0
	}
	s.events[id] = append(s.events[id], ev)
	return len(s.events[id])
}

// Events returns a copy of the match's event log in append order. Unknown
// ids yield an empty slice.
func (s *Store) Events(id string) []types.MatchEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	evs := s.events[id]
	out := make([]types.MatchEvent, len(evs))
	copy(out, evs)
	return out
}
