package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnhancedConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := NewEnhancedConfig("")
	require.NoError(t, err)

	c := cfg.Configurable
	assert.Equal(t, "1", c.ThreadID)
	assert.Equal(t, "user123", c.UserID)
	assert.Equal(t, "session456", c.SessionID)
	assert.Equal(t, SQLiteGraph{Path: "./knowledge_graph.db"}, c.GraphDB)
	assert.NotNil(t, c.CheckpointStore)

	require.NotNil(t, c.Memory)
	assert.Equal(t, "sqlite", c.Memory.Type)
	assert.Equal(t, "conversation_memory", c.Memory.Options["table"])
	assert.Equal(t, 4000, c.Memory.Options["max_tokens"])
	assert.Equal(t, 30, c.Memory.Options["retention_days"])

	require.NotNil(t, c.Metadata)
	assert.Equal(t, "development", c.Metadata["environment"])
	assert.Equal(t, "1.0.0", c.Metadata["version"])
	assert.Equal(t, []string{"graph_db", "memory", "checkpointing"}, c.Metadata["features"])

	queries, ok := c.Metadata["graph_queries"].(map[string]string)
	require.True(t, ok)
	assert.Len(t, queries, 2)
	assert.Contains(t, queries, "find_related")
	assert.Contains(t, queries, "get_entities")
}

func TestNewEnhancedConfig_ThreadID(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := NewEnhancedConfig("conversation_1")
	require.NoError(t, err)

	assert.Equal(t, "conversation_1", cfg.Configurable.ThreadID)
}

func TestWithThreadID(t *testing.T) {
	cfg := WithThreadID("thread-123")

	assert.Equal(t, "thread-123", cfg.Configurable.ThreadID)
	assert.Nil(t, cfg.Configurable.GraphDB)
	assert.Nil(t, cfg.Configurable.Memory)
}
