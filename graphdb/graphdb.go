package graphdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/TrungNguyen1409/langchain-academy/config"
)

// ErrUnsupported is returned by Open for graph database variants this
// module does not bundle a driver for.
var ErrUnsupported = errors.New("unsupported graph database")

// Entity is a node in the knowledge graph.
type Entity struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Relationship is a directed edge between two entities.
type Relationship struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Properties map[string]any `json:"properties,omitempty"`
}

// KnowledgeGraph is the interface over a node/edge knowledge store.
type KnowledgeGraph interface {
	// AddEntity upserts an entity
	AddEntity(ctx context.Context, entity *Entity) error

	// AddRelationship upserts a relationship between stored entities
	AddRelationship(ctx context.Context, rel *Relationship) error

	// GetEntity retrieves an entity by ID
	GetEntity(ctx context.Context, id string) (*Entity, error)

	// GetRelationship retrieves a relationship by ID
	GetRelationship(ctx context.Context, id string) (*Relationship, error)

	// EntitiesByType returns entities with the given type tag
	EntitiesByType(ctx context.Context, entityType string, limit int) ([]*Entity, error)

	// GetRelatedEntities walks outgoing relationships up to maxDepth
	// hops from the given entity
	GetRelatedEntities(ctx context.Context, entityID string, maxDepth int) ([]*Entity, error)

	// Close releases the underlying resources
	Close() error
}

// Open constructs a knowledge graph from the configuration record's
// graph database variant. The sqlite variant is backed by a local
// file; the neo4j variant carries connection parameters only and
// yields ErrUnsupported until a driver is wired in.
func Open(cfg config.GraphDB) (KnowledgeGraph, error) {
	switch g := cfg.(type) {
	case config.SQLiteGraph:
		return NewSQLiteGraph(g.Path)
	case config.Neo4jGraph:
		return nil, fmt.Errorf("%w: no neo4j driver bundled (uri %s)", ErrUnsupported, g.URI)
	case nil:
		return nil, fmt.Errorf("%w: no graph database configured", ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, cfg.Type())
	}
}
