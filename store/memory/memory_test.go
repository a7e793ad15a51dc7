package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/TrungNguyen1409/langchain-academy/store"
)

func TestMemoryCheckpointStore_New(t *testing.T) {
	t.Parallel()

	ms := NewMemoryCheckpointStore()

	if ms == nil {
		t.Fatal("Store should not be nil")
	}
}

func TestMemoryCheckpointStore_BasicOperations(t *testing.T) {
	t.Parallel()

	t.Run("save and load", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryCheckpointStore()
		ctx := context.Background()

		cp := &store.Checkpoint{
			ID:        "checkpoint-abc",
			ThreadID:  "conversation_1",
			Step:      1,
			State:     "user asked about Paris weather",
			Timestamp: time.Now(),
			Version:   1,
			Metadata: map[string]any{
				"user_id":    "user123",
				"session_id": "session456",
			},
		}

		if err := ms.Save(ctx, cp); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		loaded, err := ms.Load(ctx, cp.ID)
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}

		if loaded.ID != cp.ID {
			t.Errorf("ID mismatch: got %s, want %s", loaded.ID, cp.ID)
		}
		if loaded.ThreadID != cp.ThreadID {
			t.Errorf("ThreadID mismatch: got %s, want %s", loaded.ThreadID, cp.ThreadID)
		}
		if loaded.State != cp.State {
			t.Errorf("State mismatch: got %v, want %v", loaded.State, cp.State)
		}
	})

	t.Run("load missing", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryCheckpointStore()

		_, err := ms.Load(context.Background(), "no-such-checkpoint")
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("save overwrites same id", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryCheckpointStore()
		ctx := context.Background()

		cp := &store.Checkpoint{ID: "cp-1", ThreadID: "t-1", State: "first", Version: 1}
		if err := ms.Save(ctx, cp); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		cp.State = "second"
		if err := ms.Save(ctx, cp); err != nil {
			t.Fatalf("Failed to re-save: %v", err)
		}

		loaded, err := ms.Load(ctx, "cp-1")
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}
		if loaded.State != "second" {
			t.Errorf("Expected overwritten state, got %v", loaded.State)
		}

		checkpoints, err := ms.List(ctx, "t-1")
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(checkpoints) != 1 {
			t.Errorf("Expected 1 checkpoint after overwrite, got %d", len(checkpoints))
		}
	})
}

func TestMemoryCheckpointStore_ListAndLatest(t *testing.T) {
	t.Parallel()

	ms := NewMemoryCheckpointStore()
	ctx := context.Background()
	threadID := "thread_2"

	for i := 1; i <= 3; i++ {
		cp := &store.Checkpoint{
			ID:        fmt.Sprintf("cp-%d", i),
			ThreadID:  threadID,
			Step:      i,
			State:     fmt.Sprintf("round %d", i),
			Timestamp: time.Now(),
			Version:   i,
		}
		if err := ms.Save(ctx, cp); err != nil {
			t.Fatalf("Failed to save checkpoint %d: %v", i, err)
		}
	}

	checkpoints, err := ms.List(ctx, threadID)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(checkpoints) != 3 {
		t.Fatalf("Expected 3 checkpoints, got %d", len(checkpoints))
	}
	if checkpoints[0].Version != 1 || checkpoints[2].Version != 3 {
		t.Error("Checkpoints should be ordered oldest first")
	}

	latest, err := ms.Latest(ctx, threadID)
	if err != nil {
		t.Fatalf("Failed to get latest: %v", err)
	}
	if latest.Version != 3 {
		t.Errorf("Expected latest version 3, got %d", latest.Version)
	}

	// Unknown thread has no latest
	if _, err := ms.Latest(ctx, "unknown-thread"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown thread, got %v", err)
	}
}

func TestMemoryCheckpointStore_DeleteAndClear(t *testing.T) {
	t.Parallel()

	ms := NewMemoryCheckpointStore()
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		cp := &store.Checkpoint{
			ID:       fmt.Sprintf("cp-%d", i),
			ThreadID: "t-1",
			Version:  i,
		}
		if err := ms.Save(ctx, cp); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}
	}

	if err := ms.Delete(ctx, "cp-1"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := ms.Load(ctx, "cp-1"); !errors.Is(err, store.ErrNotFound) {
		t.Error("Deleted checkpoint should not load")
	}

	checkpoints, _ := ms.List(ctx, "t-1")
	if len(checkpoints) != 1 {
		t.Errorf("Expected 1 checkpoint after delete, got %d", len(checkpoints))
	}

	if err := ms.Clear(ctx, "t-1"); err != nil {
		t.Fatalf("Failed to clear: %v", err)
	}
	checkpoints, _ = ms.List(ctx, "t-1")
	if len(checkpoints) != 0 {
		t.Errorf("Expected no checkpoints after clear, got %d", len(checkpoints))
	}
}

func TestNextVersion(t *testing.T) {
	t.Parallel()

	if v := store.NextVersion(nil); v != 1 {
		t.Errorf("Expected version 1 for empty history, got %d", v)
	}

	checkpoints := []*store.Checkpoint{
		{Version: 1},
		{Version: 4},
		{Version: 2},
	}
	if v := store.NextVersion(checkpoints); v != 5 {
		t.Errorf("Expected version 5, got %d", v)
	}
}
