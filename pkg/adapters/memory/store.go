// Package memory provides in-process implementations of the carebot ports.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/carebot/pkg/domain"
)

// Store implements ports.ContextStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.FlowState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.FlowState),
	}
}

// Set stores the flow for a user.
func (s *Store) Set(ctx context.Context, userID string, flow domain.FlowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = flow
	return nil
}

// Get retrieves the flow for a user.
func (s *Store) Get(ctx context.Context, userID string) (domain.FlowState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flow, ok := s.data[userID]
	if !ok {
		return "", domain.ErrContextNotFound
	}
	return flow, nil
}

// Delete removes the stored flow.
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}
