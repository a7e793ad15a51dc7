package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"github.com/TrungNguyen1409/langchain-academy/store"
)

func TestRedisCheckpointStore(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	s := NewRedisCheckpointStore(RedisOptions{
		Addr: mr.Addr(),
	})
	defer s.Close()

	ctx := context.Background()
	threadID := "conversation_1"

	cp := &store.Checkpoint{
		ID:        "cp-1",
		ThreadID:  threadID,
		Step:      1,
		State:     map[string]any{"foo": "bar"},
		Timestamp: time.Now(),
		Version:   1,
		Metadata: map[string]any{
			"user_id": "user123",
		},
	}

	// Save
	err = s.Save(ctx, cp)
	assert.NoError(t, err)

	// Load
	loaded, err := s.Load(ctx, "cp-1")
	assert.NoError(t, err)
	assert.Equal(t, cp.ID, loaded.ID)
	assert.Equal(t, cp.ThreadID, loaded.ThreadID)
	state, ok := loaded.State.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "bar", state["foo"])

	// Load missing
	_, err = s.Load(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	// Second checkpoint on the same thread
	cp2 := &store.Checkpoint{
		ID:        "cp-2",
		ThreadID:  threadID,
		Step:      2,
		State:     "round two",
		Timestamp: time.Now(),
		Version:   2,
	}
	assert.NoError(t, s.Save(ctx, cp2))

	// List is ordered by version
	checkpoints, err := s.List(ctx, threadID)
	assert.NoError(t, err)
	assert.Len(t, checkpoints, 2)
	assert.Equal(t, "cp-1", checkpoints[0].ID)
	assert.Equal(t, "cp-2", checkpoints[1].ID)

	// Latest
	latest, err := s.Latest(ctx, threadID)
	assert.NoError(t, err)
	assert.Equal(t, "cp-2", latest.ID)

	// Delete removes value and index entry
	assert.NoError(t, s.Delete(ctx, "cp-1"))
	checkpoints, err = s.List(ctx, threadID)
	assert.NoError(t, err)
	assert.Len(t, checkpoints, 1)

	// Clear empties the thread
	assert.NoError(t, s.Clear(ctx, threadID))
	checkpoints, err = s.List(ctx, threadID)
	assert.NoError(t, err)
	assert.Empty(t, checkpoints)
}

func TestRedisCheckpointStore_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	s := NewRedisCheckpointStore(RedisOptions{
		Addr: mr.Addr(),
		TTL:  time.Minute,
	})
	defer s.Close()

	ctx := context.Background()

	cp := &store.Checkpoint{
		ID:        "cp-ttl",
		ThreadID:  "t-1",
		State:     "expiring",
		Timestamp: time.Now(),
		Version:   1,
	}
	assert.NoError(t, s.Save(ctx, cp))

	// Past the TTL the checkpoint and its index are gone
	mr.FastForward(2 * time.Minute)

	_, err = s.Load(ctx, "cp-ttl")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
