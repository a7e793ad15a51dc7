package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a checkpoint does not exist.
var ErrNotFound = errors.New("checkpoint not found")

// Checkpoint is a saved snapshot of a conversation thread at the end of
// an agent round.
type Checkpoint struct {
	ID        string         `json:"id"`
	ThreadID  string         `json:"thread_id"`
	Step      int            `json:"step"`
	State     any            `json:"state"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp time.Time      `json:"timestamp"`
	Version   int            `json:"version"`
}

// CheckpointStore defines the interface for checkpoint persistence.
// Checkpoints are keyed by their own ID and indexed by the conversation
// thread they belong to.
type CheckpointStore interface {
	// Save stores a checkpoint
	Save(ctx context.Context, checkpoint *Checkpoint) error

	// Load retrieves a checkpoint by ID
	Load(ctx context.Context, checkpointID string) (*Checkpoint, error)

	// List returns all checkpoints for a thread, oldest first
	List(ctx context.Context, threadID string) ([]*Checkpoint, error)

	// Latest returns the most recent checkpoint for a thread
	Latest(ctx context.Context, threadID string) (*Checkpoint, error)

	// Delete removes a checkpoint
	Delete(ctx context.Context, checkpointID string) error

	// Clear removes all checkpoints for a thread
	Clear(ctx context.Context, threadID string) error

	// Close releases the underlying resources
	Close() error
}

// NewCheckpointID generates a unique checkpoint identifier.
func NewCheckpointID() string {
	return fmt.Sprintf("checkpoint_%s", uuid.New().String())
}

// NextVersion returns the version number the next checkpoint of a
// thread should carry, based on the checkpoints already stored.
func NextVersion(checkpoints []*Checkpoint) int {
	version := 1
	for _, cp := range checkpoints {
		if cp.Version >= version {
			version = cp.Version + 1
		}
	}
	return version
}
