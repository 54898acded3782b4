// Package session holds the single last generated report of an operator
// session as an explicit, race-safe object, so "clear and redo" is a store
// operation instead of ambient shared state.
package session

import (
	"sync"

	"github.com/consultpro/interviewdoc/internal/pipeline"
)

// Store keeps the last pipeline result. One store per running server.
type Store struct {
	mu   sync.Mutex
	last *pipeline.Result
}

func NewStore() *Store {
	return &Store{}
}

// Set replaces the stored result.
func (s *Store) Set(r *pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = r
}

// Last returns the stored result, or nil when none exists.
func (s *Store) Last() *pipeline.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Clear discards the stored result.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
}
