package repository

import (
	"errors"
	"sync"

	"github.com/stemsi/rollcall/internal/model"
)

// ErrIndexOutOfRange is returned for an index outside [0, Len()).
var ErrIndexOutOfRange = errors.New("roster index out of range")

// RosterStore holds the loaded roster together with each entry's mark.
// It is replaced wholesale on every load and never merged.
type RosterStore struct {
	mu      sync.RWMutex
	entries []model.MarkedEntry
	source  string
	loaded  bool
}

// NewRosterStore creates an empty store.
func NewRosterStore() *RosterStore {
	return &RosterStore{}
}

// Load replaces the roster and resets every mark to Unmarked.
func (s *RosterStore) Load(entries []model.RosterEntry, source string) {
	next := make([]model.MarkedEntry, len(entries))
	for i, e := range entries {
		next[i] = model.MarkedEntry{Index: i, Entry: e, Mark: model.Unmarked}
	}

	s.mu.Lock()
	s.entries = next
	s.source = source
	s.loaded = true
	s.mu.Unlock()
}

// Loaded reports whether any roster has been loaded.
func (s *RosterStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Source returns the name of the file the current roster came from.
func (s *RosterStore) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Len returns the number of roster entries.
func (s *RosterStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Get returns the entry at index with its mark.
func (s *RosterStore) Get(index int) (model.MarkedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.entries) {
		return model.MarkedEntry{}, ErrIndexOutOfRange
	}
	return s.entries[index], nil
}

// Snapshot returns a copy of all entries in roster order.
func (s *RosterStore) Snapshot() []model.MarkedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MarkedEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Summary counts marks across the roster.
func (s *RosterStore) Summary() model.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum model.Summary
	for _, e := range s.entries {
		sum.Add(e.Mark)
	}
	return sum
}

// Toggle advances the mark at index one step through the cycle and
// returns the entry as this call left it.
func (s *RosterStore) Toggle(index int) (model.MarkedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.entries) {
		return model.MarkedEntry{}, ErrIndexOutOfRange
	}
	s.entries[index].Mark = s.entries[index].Mark.Next()
	return s.entries[index], nil
}

// SetMark sets the mark at index regardless of its current value and
// returns the updated entry.
func (s *RosterStore) SetMark(index int, mark model.Mark) (model.MarkedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.entries) {
		return model.MarkedEntry{}, ErrIndexOutOfRange
	}
	s.entries[index].Mark = mark
	return s.entries[index], nil
}

// SetAll sets every entry to mark.
func (s *RosterStore) SetAll(mark model.Mark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		s.entries[i].Mark = mark
	}
}
