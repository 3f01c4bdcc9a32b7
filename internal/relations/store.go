// Package relations provides the skill-relation capability used by the graph
// scorer for one-hop set expansion. Two interchangeable variants exist: an
// in-memory store computed from the ontology (always available) and a
// PostgreSQL-backed store for deployments that curate relations externally.
// Scorers depend only on the Store interface and never know which is active.
package relations

import (
	"context"

	"github.com/jonathan/resume-fit-analyzer/internal/ontology"
)

// Store answers one-hop relation queries over canonical skill ids.
type Store interface {
	// RelatedSkills returns the skill ids directly related to skillID,
	// sorted and deduplicated. Relation direction is ignored.
	RelatedSkills(ctx context.Context, skillID string) ([]string, error)
	// Close releases any held resources.
	Close()
}

// MemoryStore serves relation queries from the loaded ontology.
type MemoryStore struct {
	ont *ontology.Ontology
}

// NewMemoryStore creates the in-memory relation store.
func NewMemoryStore(ont *ontology.Ontology) *MemoryStore {
	return &MemoryStore{ont: ont}
}

// RelatedSkills returns the ontology's one-hop neighbors of skillID.
func (m *MemoryStore) RelatedSkills(_ context.Context, skillID string) ([]string, error) {
	return m.ont.Neighbors(skillID), nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() {}
