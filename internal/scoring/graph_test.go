package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit-analyzer/internal/ontology"
	"github.com/jonathan/resume-fit-analyzer/internal/relations"
)

const graphTestOntology = `{
  "skills": [
    {"id": "python", "name": "Python", "category": "Programming Language"},
    {"id": "go", "name": "Go", "category": "Programming Language"},
    {"id": "pytorch", "name": "PyTorch", "category": "AI/ML Framework"},
    {"id": "nlp", "name": "Natural Language Processing", "category": "AI/ML"},
    {"id": "machine-learning", "name": "Machine Learning", "category": "AI/ML"}
  ],
  "relations": [
    {"source": "pytorch", "target": "machine-learning", "kind": "related_to", "weight": 0.9},
    {"source": "nlp", "target": "machine-learning", "kind": "part_of", "weight": 0.8}
  ]
}`

func newGraphScorer(t *testing.T, expand bool) *GraphScorer {
	t.Helper()
	ont, err := ontology.Parse([]byte(graphTestOntology))
	require.NoError(t, err)
	return NewGraphScorer(ont, relations.NewMemoryStore(ont), 0.6, 0.4, expand)
}

func TestGraphScoreEmptyJobIsNeutral(t *testing.T) {
	g := newGraphScorer(t, false)

	score, err := g.Score(context.Background(), []string{"python"}, nil)
	require.NoError(t, err)
	assert.Equal(t, NeutralScore, score)
}

func TestGraphScoreIdenticalSets(t *testing.T) {
	g := newGraphScorer(t, false)

	score, err := g.Score(context.Background(), []string{"python", "pytorch"}, []string{"python", "pytorch"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestGraphScoreDisjointUnrelatedSets(t *testing.T) {
	g := newGraphScorer(t, false)

	score, err := g.Score(context.Background(), []string{"go"}, []string{"nlp"})
	require.NoError(t, err)
	// No shared skills and no shared categories.
	assert.Equal(t, 0.0, score)
}

func TestGraphScoreCategoryOverlapWithoutSkillOverlap(t *testing.T) {
	g := newGraphScorer(t, false)

	// nlp and machine-learning share a category but are different skills.
	score, err := g.Score(context.Background(), []string{"nlp"}, []string{"machine-learning"})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, score, 1e-9)
}

func TestGraphScoreOneHopExpansion(t *testing.T) {
	ctx := context.Background()
	resume := []string{"pytorch"}
	job := []string{"machine-learning"}

	plain := newGraphScorer(t, false)
	plainScore, err := plain.Score(ctx, resume, job)
	require.NoError(t, err)

	expanded := newGraphScorer(t, true)
	expandedScore, err := expanded.Score(ctx, resume, job)
	require.NoError(t, err)

	// pytorch relates to machine-learning, so expansion creates Jaccard
	// overlap that the plain scorer cannot see.
	assert.Greater(t, expandedScore, plainScore)
}

func TestGraphScoreExpansionIsSingleHop(t *testing.T) {
	g := newGraphScorer(t, true)

	// nlp—machine-learning—pytorch is a two-hop path; go shares nothing.
	// Expanding nlp adds machine-learning but must not add pytorch's
	// whole neighborhood recursively, so go stays disconnected.
	score, err := g.Score(context.Background(), []string{"go"}, []string{"nlp"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestGraphScoreBounds(t *testing.T) {
	g := newGraphScorer(t, true)

	score, err := g.Score(context.Background(),
		[]string{"python", "pytorch", "nlp", "machine-learning"},
		[]string{"python", "pytorch", "nlp", "machine-learning", "go"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
