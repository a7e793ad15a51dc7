package graphdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/TrungNguyen1409/langchain-academy/log"
)

// SQLiteGraph implements KnowledgeGraph on a local SQLite file, one
// table for nodes and one for edges.
type SQLiteGraph struct {
	db *sql.DB
}

var _ KnowledgeGraph = (*SQLiteGraph)(nil)

// NewSQLiteGraph opens (creating if necessary) a SQLite-backed
// knowledge graph at the given path.
func NewSQLiteGraph(path string) (*SQLiteGraph, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open graph database: %w", err)
	}

	g := &SQLiteGraph{db: db}
	if err := g.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("opened sqlite knowledge graph at %s", path)
	return g, nil
}

func (g *SQLiteGraph) initSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			name TEXT,
			properties TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_type ON nodes (type);
		CREATE TABLE IF NOT EXISTS edges (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			properties TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges (source);
	`

	_, err := g.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create graph schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (g *SQLiteGraph) Close() error {
	return g.db.Close()
}

// AddEntity upserts an entity
func (g *SQLiteGraph) AddEntity(ctx context.Context, entity *Entity) error {
	propsJSON, err := json.Marshal(entity.Properties)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}

	query := `
		INSERT INTO nodes (id, type, name, properties)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			name = excluded.name,
			properties = excluded.properties
	`

	_, err = g.db.ExecContext(ctx, query, entity.ID, entity.Type, entity.Name, string(propsJSON))
	if err != nil {
		return fmt.Errorf("failed to add entity: %w", err)
	}

	return nil
}

// AddRelationship upserts a relationship
func (g *SQLiteGraph) AddRelationship(ctx context.Context, rel *Relationship) error {
	propsJSON, err := json.Marshal(rel.Properties)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}

	query := `
		INSERT INTO edges (id, type, source, target, properties)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			source = excluded.source,
			target = excluded.target,
			properties = excluded.properties
	`

	_, err = g.db.ExecContext(ctx, query, rel.ID, rel.Type, rel.Source, rel.Target, string(propsJSON))
	if err != nil {
		return fmt.Errorf("failed to add relationship: %w", err)
	}

	return nil
}

// GetEntity retrieves an entity by ID
func (g *SQLiteGraph) GetEntity(ctx context.Context, id string) (*Entity, error) {
	row := g.db.QueryRowContext(ctx, "SELECT id, type, name, properties FROM nodes WHERE id = ?", id)

	entity, err := scanEntity(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("entity not found: %s", id)
		}
		return nil, fmt.Errorf("failed to load entity: %w", err)
	}

	return entity, nil
}

// GetRelationship retrieves a relationship by ID
func (g *SQLiteGraph) GetRelationship(ctx context.Context, id string) (*Relationship, error) {
	row := g.db.QueryRowContext(ctx, "SELECT id, type, source, target, properties FROM edges WHERE id = ?", id)

	var rel Relationship
	var propsJSON string
	if err := row.Scan(&rel.ID, &rel.Type, &rel.Source, &rel.Target, &propsJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("relationship not found: %s", id)
		}
		return nil, fmt.Errorf("failed to load relationship: %w", err)
	}

	if err := unmarshalProps(propsJSON, &rel.Properties); err != nil {
		return nil, err
	}

	return &rel, nil
}

// EntitiesByType returns entities with the given type tag
func (g *SQLiteGraph) EntitiesByType(ctx context.Context, entityType string, limit int) ([]*Entity, error) {
	query := "SELECT id, type, name, properties FROM nodes WHERE type = ?"
	args := []any{entityType}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entities []*Entity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity rows: %w", err)
	}

	return entities, nil
}

// GetRelatedEntities walks outgoing relationships up to maxDepth hops
func (g *SQLiteGraph) GetRelatedEntities(ctx context.Context, entityID string, maxDepth int) ([]*Entity, error) {
	if _, err := g.GetEntity(ctx, entityID); err != nil {
		return nil, err
	}

	visited := map[string]bool{entityID: true}
	frontier := []string{entityID}
	var related []*Entity

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			rows, err := g.db.QueryContext(ctx, `
				SELECT n.id, n.type, n.name, n.properties
				FROM edges e JOIN nodes n ON n.id = e.target
				WHERE e.source = ?
			`, id)
			if err != nil {
				return nil, fmt.Errorf("failed to query related entities: %w", err)
			}

			for rows.Next() {
				entity, err := scanEntity(rows)
				if err != nil {
					rows.Close()
					return nil, fmt.Errorf("failed to scan entity row: %w", err)
				}
				if visited[entity.ID] {
					continue
				}
				visited[entity.ID] = true
				related = append(related, entity)
				next = append(next, entity.ID)
			}
			if err := rows.Err(); err != nil {
				rows.Close()
				return nil, fmt.Errorf("error iterating entity rows: %w", err)
			}
			rows.Close()
		}
		frontier = next
	}

	return related, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*Entity, error) {
	var entity Entity
	var propsJSON string

	if err := row.Scan(&entity.ID, &entity.Type, &entity.Name, &propsJSON); err != nil {
		return nil, err
	}

	if err := unmarshalProps(propsJSON, &entity.Properties); err != nil {
		return nil, err
	}

	return &entity, nil
}

func unmarshalProps(propsJSON string, dst *map[string]any) error {
	if propsJSON == "" || propsJSON == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(propsJSON), dst); err != nil {
		return fmt.Errorf("failed to unmarshal properties: %w", err)
	}
	return nil
}
