package store

import (
	"maps"
	"sync"
)

// ScoreLedger maps participant handles to their cumulative score
type ScoreLedger struct {
	scores map[string]int
	mu     sync.RWMutex
}

// NewScoreLedger creates an empty ledger
func NewScoreLedger() *ScoreLedger {
	return &ScoreLedger{
		scores: make(map[string]int),
	}
}

// Set stores a score
func (s *ScoreLedger) Set(handle string, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[handle] = score
}

// Ensure creates a zero entry unless one already exists
func (s *ScoreLedger) Ensure(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.scores[handle]; !exists {
		s.scores[handle] = 0
	}
}

// Add credits points to an existing entry and returns the new total
func (s *ScoreLedger) Add(handle string, points int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	score, exists := s.scores[handle]
	if !exists {
		return 0, false
	}
	score += points
	s.scores[handle] = score
	return score, true
}

// Delete removes an entry
func (s *ScoreLedger) Delete(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scores, handle)
}

// Snapshot returns a copy safe to hand to encoders
func (s *ScoreLedger) Snapshot() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.scores)
}
