package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by Load when a thread has no checkpoint yet.
var ErrNotFound = errors.New("checkpoint not found")

// Checkpoint is the persisted snapshot of one conversation thread. A thread
// has at most one checkpoint: Save overwrites the previous snapshot at the
// end of every run. Retention beyond that is an external concern.
type Checkpoint struct {
	// ThreadID is the caller-supplied, opaque conversation identifier.
	ThreadID string `json:"thread_id"`

	// State is the serialized conversation state.
	State json.RawMessage `json:"state"`

	// Timestamp records when the snapshot was written.
	Timestamp time.Time `json:"timestamp"`

	// Version increments on every save, for diagnostics.
	Version int `json:"version"`
}

// Store persists thread checkpoints. Implementations must guarantee that a
// Save for a thread is visible to the next Load for the same thread.
type Store interface {
	// Save stores a checkpoint, replacing any existing one for the thread.
	Save(ctx context.Context, checkpoint *Checkpoint) error

	// Load retrieves the checkpoint for a thread. It returns ErrNotFound
	// for a thread id that has never been saved.
	Load(ctx context.Context, threadID string) (*Checkpoint, error)

	// Delete removes a thread's checkpoint. Deleting an absent thread is
	// not an error.
	Delete(ctx context.Context, threadID string) error
}
