package results

import (
	"context"
	"sync"

	"cleanroom/internal/monitoring"
)

// InMemoryStore keeps the current snapshot in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	current *RunResults
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) ReplaceCurrent(_ context.Context, results RunResults) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := results.Clone()
	s.current = &snapshot
	return nil
}

func (s *InMemoryStore) Current(_ context.Context) (*RunResults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoResults
	}
	snapshot := s.current.Clone()
	return &snapshot, nil
}

// InMemoryHistory is the in-process append-only run history.
type InMemoryHistory struct {
	mu   sync.RWMutex
	runs []monitoring.RunMetrics
}

func NewInMemoryHistory() *InMemoryHistory {
	return &InMemoryHistory{}
}

func (s *InMemoryHistory) AppendRun(_ context.Context, run monitoring.RunMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

func (s *InMemoryHistory) Recent(_ context.Context, limit int) ([]monitoring.RunMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := s.runs
	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}
	return append([]monitoring.RunMetrics{}, runs...), nil
}
