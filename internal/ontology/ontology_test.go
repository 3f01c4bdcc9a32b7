package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOntology = `{
  "skills": [
    {"id": "go", "name": "Go", "category": "Programming Language", "aliases": ["golang"]},
    {"id": "kubernetes", "name": "Kubernetes", "category": "DevOps", "aliases": ["k8s"]},
    {"id": "docker", "name": "Docker", "category": "DevOps"}
  ],
  "relations": [
    {"source": "kubernetes", "target": "docker", "kind": "related_to", "weight": 0.9},
    {"source": "go", "target": "kubernetes", "kind": "related_to", "weight": 0.5}
  ]
}`

func TestParse(t *testing.T) {
	o, err := Parse([]byte(validOntology))
	require.NoError(t, err)

	assert.Equal(t, 3, o.Size())
	assert.Equal(t, []string{"docker", "go", "kubernetes"}, o.SkillIDs())
	assert.Len(t, o.Relations(), 2)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "schema violation",
			data:    `{"skills": [{"id": "go"}]}`,
			wantErr: "validation failed",
		},
		{
			name: "duplicate skill id",
			data: `{"skills": [
				{"id": "go", "name": "Go", "category": "Lang"},
				{"id": "go", "name": "Golang", "category": "Lang"}
			]}`,
			wantErr: `duplicate skill id "go"`,
		},
		{
			name: "term claimed by two skills",
			data: `{"skills": [
				{"id": "go", "name": "Go", "category": "Lang", "aliases": ["golang"]},
				{"id": "golang", "name": "Golang", "category": "Lang"}
			]}`,
			wantErr: "claimed by both",
		},
		{
			name: "self-loop relation",
			data: `{"skills": [{"id": "go", "name": "Go", "category": "Lang"}],
				"relations": [{"source": "go", "target": "go", "kind": "related_to", "weight": 0.5}]}`,
			wantErr: "self-loop",
		},
		{
			name: "relation to unknown skill",
			data: `{"skills": [{"id": "go", "name": "Go", "category": "Lang"}],
				"relations": [{"source": "go", "target": "rust", "kind": "related_to", "weight": 0.5}]}`,
			wantErr: `unknown skill "rust"`,
		},
		{
			name: "out-of-range relation weight",
			data: `{"skills": [
				{"id": "go", "name": "Go", "category": "Lang"},
				{"id": "rust", "name": "Rust", "category": "Lang"}
			], "relations": [{"source": "go", "target": "rust", "kind": "related_to", "weight": 0}]}`,
			wantErr: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveTerm(t *testing.T) {
	o, err := Parse([]byte(validOntology))
	require.NoError(t, err)

	t.Run("canonical name", func(t *testing.T) {
		skill, ok := o.ResolveTerm("Kubernetes")
		require.True(t, ok)
		assert.Equal(t, "kubernetes", skill.ID)
	})

	t.Run("alias, case-insensitive, trimmed", func(t *testing.T) {
		skill, ok := o.ResolveTerm("  K8S ")
		require.True(t, ok)
		assert.Equal(t, "kubernetes", skill.ID)
	})

	t.Run("unknown term", func(t *testing.T) {
		_, ok := o.ResolveTerm("cobol")
		assert.False(t, ok)
	})
}

func TestNeighborsAreSymmetric(t *testing.T) {
	o, err := Parse([]byte(validOntology))
	require.NoError(t, err)

	assert.Equal(t, []string{"docker", "go"}, o.Neighbors("kubernetes"))
	assert.Equal(t, []string{"kubernetes"}, o.Neighbors("docker"))
	assert.Equal(t, []string{"kubernetes"}, o.Neighbors("go"))
	assert.Empty(t, o.Neighbors("unknown"))
}

func TestTermsOrder(t *testing.T) {
	o, err := Parse([]byte(validOntology))
	require.NoError(t, err)

	terms := o.Terms()
	require.Len(t, terms, 5)
	// Canonical name precedes aliases within each skill, skills sorted by id.
	assert.Equal(t, Term{Text: "Docker", SkillID: "docker"}, terms[0])
	assert.Equal(t, Term{Text: "Go", SkillID: "go"}, terms[1])
	assert.Equal(t, Term{Text: "golang", SkillID: "go"}, terms[2])
	assert.Equal(t, Term{Text: "Kubernetes", SkillID: "kubernetes"}, terms[3])
	assert.Equal(t, Term{Text: "k8s", SkillID: "kubernetes"}, terms[4])
}

func TestLexiconTermsLongestFirst(t *testing.T) {
	o, err := Parse([]byte(validOntology))
	require.NoError(t, err)

	terms := o.LexiconTerms()
	require.NotEmpty(t, terms)
	for i := 1; i < len(terms); i++ {
		assert.GreaterOrEqual(t, len(terms[i-1]), len(terms[i]))
	}
	assert.Equal(t, "Kubernetes", terms[0])
}

func TestLoadShippedOntology(t *testing.T) {
	o, err := Load("../../data/skill_ontology.json")
	require.NoError(t, err)

	assert.Greater(t, o.Size(), 30)

	skill, ok := o.ResolveTerm("k8s")
	require.True(t, ok)
	assert.Equal(t, "Kubernetes", skill.Name)

	// Every shipped skill must carry a category for the graph scorer.
	for _, id := range o.SkillIDs() {
		assert.NotEmpty(t, o.Category(id), "skill %s has no category", id)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does/not/exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read ontology file")
}
