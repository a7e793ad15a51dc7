package config

import (
	"github.com/TrungNguyen1409/langchain-academy/store"
)

// Builder assembles a Config through chained calls. Every setter
// mutates the builder's single record and returns the builder, so
// calls can be chained fluently. Fields overwrite on each call; there
// is no merging and no terminal state.
//
//	cfg, err := config.NewBuilder().
//		WithThreadID("thread_2").
//		WithSQLiteGraph("./knowledge_graph.db").
//		WithMemory("sqlite", map[string]any{"table": "conversation_memory"}).
//		Build()
type Builder struct {
	config Config
	err    error
}

// NewBuilder creates an empty configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithThreadID sets the conversation thread id.
func (b *Builder) WithThreadID(threadID string) *Builder {
	b.config.Configurable.ThreadID = threadID
	return b
}

// WithUserContext sets the user and session identifiers.
func (b *Builder) WithUserContext(userID, sessionID string) *Builder {
	b.config.Configurable.UserID = userID
	b.config.Configurable.SessionID = sessionID
	return b
}

// WithNeo4jGraph points the record at a Neo4j graph database.
// An empty database name defaults to DefaultNeo4jDatabase. Replaces
// any previously set graph database variant.
func (b *Builder) WithNeo4jGraph(uri, user, password, database string) *Builder {
	if database == "" {
		database = DefaultNeo4jDatabase
	}
	b.config.Configurable.GraphDB = Neo4jGraph{
		URI:      uri,
		User:     user,
		Password: password,
		Database: database,
	}
	return b
}

// WithSQLiteGraph points the record at a local SQLite graph database.
// Replaces any previously set graph database variant.
func (b *Builder) WithSQLiteGraph(path string) *Builder {
	b.config.Configurable.GraphDB = SQLiteGraph{Path: path}
	return b
}

// WithMemory sets the conversation memory configuration. The options
// map is stored as given; a later call replaces the whole record.
func (b *Builder) WithMemory(memType string, options map[string]any) *Builder {
	b.config.Configurable.Memory = &MemoryConfig{
		Type:    memType,
		Options: options,
	}
	return b
}

// WithCheckpointing constructs a checkpoint store from a connection
// string (see OpenCheckpointStore) and stores the handle. A
// construction failure is remembered and returned by Build.
func (b *Builder) WithCheckpointing(connString string) *Builder {
	cs, err := OpenCheckpointStore(connString)
	if err != nil {
		b.err = err
		return b
	}
	b.config.Configurable.CheckpointStore = cs
	return b
}

// WithCheckpointStore stores an externally constructed checkpoint
// store handle.
func (b *Builder) WithCheckpointStore(cs store.CheckpointStore) *Builder {
	b.config.Configurable.CheckpointStore = cs
	return b
}

// WithMetadata sets the custom metadata mapping. The previous mapping
// is discarded wholesale; there is no merge.
func (b *Builder) WithMetadata(metadata map[string]any) *Builder {
	b.config.Configurable.Metadata = metadata
	return b
}

// Build returns the accumulated record, or the first error recorded
// by a chained call. Build may be called any number of times; it does
// not freeze the builder, and each call reflects the state accumulated
// so far.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := b.config
	return &out, nil
}
