package config

// NewEnhancedConfig returns a fully populated configuration for the
// enhanced agent example: a local knowledge graph, sqlite-backed
// conversation memory, a freshly opened sqlite checkpoint store and
// fixed example metadata. An empty threadID defaults to
// DefaultThreadID. The only failure mode is the checkpoint store
// constructor failing to open its backing file.
func NewEnhancedConfig(threadID string) (*Config, error) {
	if threadID == "" {
		threadID = DefaultThreadID
	}

	checkpointStore, err := OpenCheckpointStore("sqlite:///checkpoints.db")
	if err != nil {
		return nil, err
	}

	return &Config{
		Configurable: Configurable{
			ThreadID:  threadID,
			UserID:    "user123",
			SessionID: "session456",

			GraphDB: SQLiteGraph{Path: "./knowledge_graph.db"},

			Memory: &MemoryConfig{
				Type: "sqlite",
				Options: map[string]any{
					"table":          "conversation_memory",
					"max_tokens":     4000,
					"retention_days": 30,
				},
			},

			CheckpointStore: checkpointStore,

			Metadata: map[string]any{
				"environment": "development",
				"version":     "1.0.0",
				"features":    []string{"graph_db", "memory", "checkpointing"},
				"graph_schema": map[string]any{
					"nodes": []string{"concepts", "entities", "relationships"},
					"edges": []string{"relates_to", "part_of", "similar_to"},
				},
				"graph_queries": map[string]string{
					"find_related": "MATCH (n)-[r]->(m) WHERE n.id = $node_id RETURN m, r",
					"get_entities": "MATCH (n:entity) RETURN n LIMIT 10",
				},
			},
		},
	}, nil
}
