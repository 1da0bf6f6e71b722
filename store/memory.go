package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store for ephemeral use and tests. It is not
// durable across process restarts.
type MemoryStore struct {
	mu          sync.RWMutex
	checkpoints map[string]*Checkpoint
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		checkpoints: make(map[string]*Checkpoint),
	}
}

// Save stores a copy of the checkpoint, replacing any existing one.
func (s *MemoryStore) Save(ctx context.Context, checkpoint *Checkpoint) error {
	cp := *checkpoint
	cp.State = append([]byte(nil), checkpoint.State...)

	s.mu.Lock()
	s.checkpoints[cp.ThreadID] = &cp
	s.mu.Unlock()
	return nil
}

// Load retrieves a copy of the thread's checkpoint.
func (s *MemoryStore) Load(ctx context.Context, threadID string) (*Checkpoint, error) {
	s.mu.RLock()
	stored, ok := s.checkpoints[threadID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, threadID)
	}

	cp := *stored
	cp.State = append([]byte(nil), stored.State...)
	return &cp, nil
}

// Delete removes a thread's checkpoint.
func (s *MemoryStore) Delete(ctx context.Context, threadID string) error {
	s.mu.Lock()
	delete(s.checkpoints, threadID)
	s.mu.Unlock()
	return nil
}
