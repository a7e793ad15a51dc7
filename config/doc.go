// Package config assembles the per-run configuration record handed to
// an agent invocation.
//
// A Config carries a single Configurable record: conversation
// identifiers (thread, user, session), a tagged graph database
// variant (SQLiteGraph or Neo4jGraph), a conversation memory
// description, an opaque checkpoint store handle and free-form
// metadata.
//
// Records can be produced two ways: NewEnhancedConfig returns a
// fully populated example record from literals, and Builder assembles
// one incrementally through chained calls:
//
//	cfg, err := config.NewBuilder().
//		WithThreadID("conversation_1").
//		WithUserContext("user123", "session456").
//		WithNeo4jGraph("bolt://localhost:7687", "neo4j", password, "langgraph").
//		WithMemory("neo4j", map[string]any{"collection": "conversations", "max_tokens": 4000}).
//		WithCheckpointing("sqlite:///checkpoints.db").
//		WithMetadata(map[string]any{"environment": "production"}).
//		Build()
//
// Setters overwrite on each call (last write wins, no merging), and
// Build may be called repeatedly without freezing the builder.
package config
