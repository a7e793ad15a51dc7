package config

import (
	"github.com/TrungNguyen1409/langchain-academy/store"
)

// DefaultThreadID is used when a thread id is not supplied.
const DefaultThreadID = "1"

// DefaultNeo4jDatabase is the database name used when none is given.
const DefaultNeo4jDatabase = "neo4j"

// GraphDB identifies the knowledge graph backing a conversation.
// Exactly one variant is carried by a Configurable at a time; setting
// a new variant replaces the previous one.
type GraphDB interface {
	// Type returns the variant tag, "sqlite" or "neo4j".
	Type() string
}

// SQLiteGraph is the local-file graph database variant.
type SQLiteGraph struct {
	Path string
}

// Type returns "sqlite"
func (SQLiteGraph) Type() string { return "sqlite" }

// Neo4jGraph is the network-backed graph database variant. It carries
// connection parameters only; no driver is bundled here.
type Neo4jGraph struct {
	URI      string
	User     string
	Password string
	Database string
}

// Type returns "neo4j"
func (Neo4jGraph) Type() string { return "neo4j" }

// MemoryConfig names a conversation memory backend plus its
// backend-specific options (table, max_tokens, collection, ...).
// Options are carried verbatim and interpreted by the memory package.
type MemoryConfig struct {
	Type    string
	Options map[string]any
}

// Configurable is the per-run parameter record handed to an agent
// invocation. All fields are optional; identifiers are opaque and
// unvalidated.
type Configurable struct {
	ThreadID  string
	UserID    string
	SessionID string

	// GraphDB points the run at a knowledge graph. nil when unset.
	GraphDB GraphDB

	// Memory names the conversation memory backend. nil when unset.
	Memory *MemoryConfig

	// CheckpointStore is an externally constructed persistence handle.
	// The record references it, it does not own it.
	CheckpointStore store.CheckpointStore

	// Metadata is an arbitrary, unvalidated key/value mapping.
	Metadata map[string]any
}

// Config is the top-level record passed alongside the input messages
// when invoking an agent.
type Config struct {
	Configurable Configurable
}

// WithThreadID returns a minimal Config carrying only a thread id.
// Convenient for resuming a checkpointed conversation.
func WithThreadID(threadID string) *Config {
	return &Config{
		Configurable: Configurable{
			ThreadID: threadID,
		},
	}
}
