package relations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit-analyzer/internal/ontology"
)

const testOntology = `{
  "skills": [
    {"id": "docker", "name": "Docker", "category": "DevOps"},
    {"id": "kubernetes", "name": "Kubernetes", "category": "DevOps"},
    {"id": "terraform", "name": "Terraform", "category": "DevOps"}
  ],
  "relations": [
    {"source": "kubernetes", "target": "docker", "kind": "related_to", "weight": 0.9},
    {"source": "terraform", "target": "kubernetes", "kind": "related_to", "weight": 0.5}
  ]
}`

func TestMemoryStore(t *testing.T) {
	ont, err := ontology.Parse([]byte(testOntology))
	require.NoError(t, err)

	store := NewMemoryStore(ont)
	defer store.Close()
	ctx := context.Background()

	t.Run("returns symmetric one-hop neighbors", func(t *testing.T) {
		related, err := store.RelatedSkills(ctx, "kubernetes")
		require.NoError(t, err)
		assert.Equal(t, []string{"docker", "terraform"}, related)

		related, err = store.RelatedSkills(ctx, "docker")
		require.NoError(t, err)
		assert.Equal(t, []string{"kubernetes"}, related)
	})

	t.Run("unknown skill has no relations", func(t *testing.T) {
		related, err := store.RelatedSkills(ctx, "cobol")
		require.NoError(t, err)
		assert.Empty(t, related)
	})
}
