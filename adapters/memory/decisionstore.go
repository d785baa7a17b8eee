// Package memory provides in-memory store implementations.
// Suitable for tests and single-process deployments without persistence.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/artpar/actiongate/domain/decision"
	"github.com/artpar/actiongate/ports"
)

// DecisionStore is an in-memory implementation of ports.DecisionStore.
type DecisionStore struct {
	mu        sync.RWMutex
	decisions []decision.Decision
}

// NewDecisionStore creates a new in-memory decision store.
func NewDecisionStore() *DecisionStore {
	return &DecisionStore{
		decisions: make([]decision.Decision, 0),
	}
}

// RecordBatch stores multiple decisions.
func (s *DecisionStore) RecordBatch(ctx context.Context, decisions []decision.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decisions = append(s.decisions, decisions...)
	return nil
}

// Recent returns the most recent decisions, newest first.
func (s *DecisionStore) Recent(ctx context.Context, limit int) ([]decision.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matching []decision.Decision
	for i := len(s.decisions) - 1; i >= 0 && len(matching) < limit; i-- {
		matching = append(matching, s.decisions[i])
	}

	return matching, nil
}

// Summary returns aggregated counts for decisions checked in [from, to).
func (s *DecisionStore) Summary(ctx context.Context, from, to time.Time) (decision.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matching []decision.Decision
	for _, d := range s.decisions {
		if !d.CheckedAt.Before(from) && d.CheckedAt.Before(to) {
			matching = append(matching, d)
		}
	}

	return decision.Aggregate(matching, from, to), nil
}

// GetAll returns all decisions (for testing).
func (s *DecisionStore) GetAll() []decision.Decision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]decision.Decision{}, s.decisions...)
}

// Clear removes all decisions (for testing).
func (s *DecisionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = make([]decision.Decision, 0)
}

// Ensure interface compliance.
var _ ports.DecisionStore = (*DecisionStore)(nil)
