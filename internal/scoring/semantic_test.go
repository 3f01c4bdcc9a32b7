package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
)

func embedAll(t *testing.T, texts ...string) [][]float32 {
	t.Helper()
	emb := embedding.NewHashingEmbedder()
	vectors, err := emb.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	return vectors
}

func TestSemanticScoreEmptyJobIsNeutral(t *testing.T) {
	s := NewSemanticScorer(0.5)

	score, matches := s.Score(nil, embedAll(t, "Python"))
	assert.Equal(t, NeutralScore, score)
	assert.Nil(t, matches)
}

func TestSemanticScoreEmptyResumeReportsZeroMatches(t *testing.T) {
	s := NewSemanticScorer(0.5)
	vecs := embedAll(t, "Python")

	score, matches := s.Score([]JobSkillVector{{Name: "Python", Vector: vecs[0], Required: true}}, nil)
	assert.Equal(t, 0.0, score)
	require.Len(t, matches, 1)
	assert.Equal(t, 0.0, matches[0].Similarity)
}

func TestSemanticScorePerfectCoverage(t *testing.T) {
	s := NewSemanticScorer(0.5)
	vecs := embedAll(t, "Python", "Kubernetes")

	job := []JobSkillVector{
		{Name: "Python", Vector: vecs[0], Required: true},
		{Name: "Kubernetes", Vector: vecs[1], Required: true},
	}
	score, matches := s.Score(job, vecs)

	assert.InDelta(t, 1.0, score, 1e-6)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.InDelta(t, 1.0, m.Similarity, 1e-6)
	}
}

func TestSemanticScoreBestMatchIsAsymmetric(t *testing.T) {
	s := NewSemanticScorer(0.5)
	jobVecs := embedAll(t, "Python")
	resumeVecs := embedAll(t, "Python", "completely unrelated pottery")

	// Extra resume skills never penalize: the job side drives the query.
	score, _ := s.Score([]JobSkillVector{{Name: "Python", Vector: jobVecs[0], Required: true}}, resumeVecs)
	assert.InDelta(t, 1.0, score, 1e-6)
}

func TestSemanticScorePreferredWeight(t *testing.T) {
	vecs := embedAll(t, "Python", "Terraform")

	// Resume covers only the required skill; the uncovered skill is
	// preferred in one run and required in the other.
	resume := [][]float32{vecs[0]}
	asPreferred := []JobSkillVector{
		{Name: "Python", Vector: vecs[0], Required: true},
		{Name: "Terraform", Vector: vecs[1], Required: false},
	}
	asRequired := []JobSkillVector{
		{Name: "Python", Vector: vecs[0], Required: true},
		{Name: "Terraform", Vector: vecs[1], Required: true},
	}

	s := NewSemanticScorer(0.5)
	preferredScore, _ := s.Score(asPreferred, resume)
	requiredScore, _ := s.Score(asRequired, resume)

	// A gap on a preferred skill costs less than the same gap on a
	// required one.
	assert.Greater(t, preferredScore, requiredScore)
}

func TestSemanticScoreBounds(t *testing.T) {
	s := NewSemanticScorer(0.5)
	vecs := embedAll(t, "Go", "Rust", "React", "GraphQL")

	job := []JobSkillVector{
		{Name: "Go", Vector: vecs[0], Required: true},
		{Name: "Rust", Vector: vecs[1], Required: false},
	}
	score, matches := s.Score(job, vecs[2:])

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Similarity, 0.0)
		assert.LessOrEqual(t, m.Similarity, 1.0)
	}
}
