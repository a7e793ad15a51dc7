package graphdb

import (
	"context"
	"fmt"
	"sync"
)

// MemoryGraph implements an in-memory knowledge graph. Useful for
// tests and single-run programs.
type MemoryGraph struct {
	mu            sync.RWMutex
	entities      map[string]Entity
	relationships map[string]Relationship
	entityIndex   map[string][]string
}

var _ KnowledgeGraph = (*MemoryGraph)(nil)

// NewMemoryGraph creates an empty in-memory knowledge graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		entities:      make(map[string]Entity),
		relationships: make(map[string]Relationship),
		entityIndex:   make(map[string][]string),
	}
}

// AddEntity upserts an entity
func (m *MemoryGraph) AddEntity(ctx context.Context, entity *Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entities[entity.ID]; !exists {
		m.entityIndex[entity.Type] = append(m.entityIndex[entity.Type], entity.ID)
	}
	m.entities[entity.ID] = *entity

	return nil
}

// AddRelationship upserts a relationship
func (m *MemoryGraph) AddRelationship(ctx context.Context, rel *Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entities[rel.Source]; !ok {
		return fmt.Errorf("entity not found: %s", rel.Source)
	}
	if _, ok := m.entities[rel.Target]; !ok {
		return fmt.Errorf("entity not found: %s", rel.Target)
	}
	m.relationships[rel.ID] = *rel

	return nil
}

// GetEntity retrieves an entity by ID
func (m *MemoryGraph) GetEntity(ctx context.Context, id string) (*Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, exists := m.entities[id]
	if !exists {
		return nil, fmt.Errorf("entity not found: %s", id)
	}
	return &entity, nil
}

// GetRelationship retrieves a relationship by ID
func (m *MemoryGraph) GetRelationship(ctx context.Context, id string) (*Relationship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rel, exists := m.relationships[id]
	if !exists {
		return nil, fmt.Errorf("relationship not found: %s", id)
	}
	return &rel, nil
}

// EntitiesByType returns entities with the given type tag
func (m *MemoryGraph) EntitiesByType(ctx context.Context, entityType string, limit int) ([]*Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.entityIndex[entityType]
	entities := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		if entity, exists := m.entities[id]; exists {
			e := entity
			entities = append(entities, &e)
		}
		if limit > 0 && len(entities) >= limit {
			break
		}
	}

	return entities, nil
}

// GetRelatedEntities walks outgoing relationships up to maxDepth hops
func (m *MemoryGraph) GetRelatedEntities(ctx context.Context, entityID string, maxDepth int) ([]*Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, exists := m.entities[entityID]; !exists {
		return nil, fmt.Errorf("entity not found: %s", entityID)
	}

	visited := map[string]bool{entityID: true}
	frontier := []string{entityID}
	var related []*Entity

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, rel := range m.relationships {
				if rel.Source != id || visited[rel.Target] {
					continue
				}
				visited[rel.Target] = true
				if entity, exists := m.entities[rel.Target]; exists {
					e := entity
					related = append(related, &e)
					next = append(next, rel.Target)
				}
			}
		}
		frontier = next
	}

	return related, nil
}

// Close is a no-op for the in-memory graph
func (m *MemoryGraph) Close() error {
	return nil
}
