package memory

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrungNguyen1409/langchain-academy/config"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "memory.db"), SQLiteOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"buffer": NewBufferStore(0),
		"sqlite": sqliteStore,
	}
}

func TestAppendAndHistory(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, s.Append(ctx, "thread_1", &Message{Role: "human", Content: "hello", Timestamp: base}))
			require.NoError(t, s.Append(ctx, "thread_1", &Message{Role: "ai", Content: "hi there", Timestamp: base.Add(time.Second)}))
			require.NoError(t, s.Append(ctx, "thread_2", &Message{Role: "human", Content: "other thread", Timestamp: base}))

			history, err := s.History(ctx, "thread_1")
			require.NoError(t, err)
			require.Len(t, history, 2)
			assert.Equal(t, "hello", history[0].Content)
			assert.Equal(t, "hi there", history[1].Content)
			assert.NotEmpty(t, history[0].ID)

			other, err := s.History(ctx, "thread_2")
			require.NoError(t, err)
			assert.Len(t, other, 1)
		})
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Append(ctx, "thread_1", &Message{Role: "human", Content: "hello"}))
			require.NoError(t, s.Clear(ctx, "thread_1"))

			history, err := s.History(ctx, "thread_1")
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestTokenBudgetTrimsOldest(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("x", 400) // ~100 tokens

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "memory.db"), SQLiteOptions{MaxTokens: 150})
	require.NoError(t, err)
	defer sqliteStore.Close()

	for name, s := range map[string]Store{
		"buffer": NewBufferStore(150),
		"sqlite": sqliteStore,
	} {
		t.Run(name, func(t *testing.T) {
			base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, s.Append(ctx, "thread_1", &Message{Role: "human", Content: long, Timestamp: base}))
			require.NoError(t, s.Append(ctx, "thread_1", &Message{Role: "ai", Content: long, Timestamp: base.Add(time.Second)}))

			history, err := s.History(ctx, "thread_1")
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, "ai", history[0].Role)
		})
	}
}

func TestSQLiteRetentionExpiresOldRows(t *testing.T) {
	ctx := context.Background()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "memory.db"), SQLiteOptions{RetentionDays: 30})
	require.NoError(t, err)
	defer s.Close()

	old := time.Now().UTC().AddDate(0, 0, -45)
	require.NoError(t, s.Append(ctx, "thread_1", &Message{Role: "human", Content: "stale", Timestamp: old}))
	require.NoError(t, s.Append(ctx, "thread_1", &Message{Role: "human", Content: "fresh"}))

	history, err := s.History(ctx, "thread_1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "fresh", history[0].Content)
}

func TestSQLiteCustomTable(t *testing.T) {
	ctx := context.Background()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "memory.db"), SQLiteOptions{Table: "chat_log"})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(ctx, "thread_1", &Message{Role: "human", Content: "hello"}))
	history, err := s.History(ctx, "thread_1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSQLiteRejectsBadTableName(t *testing.T) {
	_, err := NewSQLiteStore(filepath.Join(t.TempDir(), "memory.db"), SQLiteOptions{Table: "chat; DROP TABLE x"})
	assert.Error(t, err)
}

func TestOpenDispatch(t *testing.T) {
	tmp := t.TempDir()

	s, err := Open(&config.MemoryConfig{
		Type: "sqlite",
		Options: map[string]any{
			"path":           filepath.Join(tmp, "memory.db"),
			"table":          "conversation_memory",
			"max_tokens":     4000,
			"retention_days": 30,
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(&config.MemoryConfig{Type: "buffer"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(&config.MemoryConfig{Type: "vector"})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Open(nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}
