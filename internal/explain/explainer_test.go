package explain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

func sampleResult() *types.MatchResult {
	return &types.MatchResult{
		OverallScore: 0.78,
		FitLabel:     types.FitStrong,
		Breakdown: types.ScoreBreakdown{
			SemanticScore:    0.85,
			GraphScore:       0.70,
			ExperienceScore:  0.73,
			SemanticWeight:   0.5,
			GraphWeight:      0.3,
			ExperienceWeight: 0.2,
		},
		MatchedSkills: []types.SkillMatch{
			{Name: "Python", Similarity: 1.0, Matched: true},
			{Name: "Machine Learning", Similarity: 0.92, Matched: true},
			{Name: "Rust", Similarity: 0.1, Matched: false},
		},
		MissingSkills: []string{"Rust"},
		PreferredGaps: []string{"Terraform"},
	}
}

func TestExplainIsDeterministic(t *testing.T) {
	e := New()
	result := sampleResult()

	first := e.Explain(result, "Backend Engineer", 12)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Explain(result, "Backend Engineer", 12))
	}
}

func TestExplainSections(t *testing.T) {
	e := New()
	out := e.Explain(sampleResult(), "ML Engineer", 12)

	assert.Contains(t, out, "Match Analysis: Resume → ML Engineer")
	assert.Contains(t, out, "Overall Score: 78.0% (Strong Fit)")
	assert.Contains(t, out, "Score Breakdown:")
	assert.Contains(t, out, "Semantic Similarity: 85.0% (weight: 50.0%) → contributes 42.5%")
	assert.Contains(t, out, "Matched Skills (2):")
	assert.Contains(t, out, "Missing Required Skills (1):")
	assert.Contains(t, out, "✗ Rust")
	assert.Contains(t, out, "Preferred Skills Not Covered (1):")
	assert.Contains(t, out, "- Terraform")
	assert.Contains(t, out, "Coverage Summary:")
	assert.Contains(t, out, "Job requires 3 skills")
	assert.Contains(t, out, "Resume covers 2 (66.7% coverage)")
	assert.Contains(t, out, "Resume lists 12 skills in total")
}

func TestExplainMatchedSkillsSortedBySimilarity(t *testing.T) {
	e := New()
	out := e.Explain(sampleResult(), "ML Engineer", 12)

	python := strings.Index(out, "Python")
	ml := strings.Index(out, "Machine Learning")
	require.Positive(t, python)
	require.Positive(t, ml)
	assert.Less(t, python, ml, "higher-similarity skill should render first")
}

func TestExplainSimilarityBars(t *testing.T) {
	e := New()
	out := e.Explain(sampleResult(), "ML Engineer", 12)

	assert.Contains(t, out, "[██████████] 100.0%  Python")
	assert.Contains(t, out, "[█████████░] 92.0%  Machine Learning")
}

func TestExplainOmitsEmptySections(t *testing.T) {
	e := New()
	result := sampleResult()
	result.MatchedSkills = []types.SkillMatch{{Name: "Go", Similarity: 1.0, Matched: true}}
	result.MissingSkills = nil
	result.PreferredGaps = nil

	out := e.Explain(result, "Go Engineer", 3)
	assert.NotContains(t, out, "Missing Required Skills")
	assert.NotContains(t, out, "Preferred Skills Not Covered")
	assert.Contains(t, out, "Job requires 1 skills")
}

func TestExplainNoRequiredSkills(t *testing.T) {
	e := New()
	result := sampleResult()
	result.MatchedSkills = nil
	result.MissingSkills = nil
	result.PreferredGaps = nil

	out := e.Explain(result, "Any Role", 0)
	assert.Contains(t, out, "Matched Skills: None")
	assert.Contains(t, out, "Coverage Summary: No required skills specified")
}
