// Package scoring computes the three independent match signals (semantic,
// graph, experience) and aggregates them into one auditable verdict.
package scoring

import (
	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
)

// NeutralScore is the documented constant returned by the semantic and graph
// scorers when either side's skill set is empty. Zero keeps an empty job or
// empty resume from inflating the overall score and can never divide by zero.
const NeutralScore = 0.0

// JobSkillVector is one job skill prepared for semantic scoring.
type JobSkillVector struct {
	Name     string
	Vector   []float32
	Required bool
}

// BestMatch records the best resume-side similarity found for one job skill.
type BestMatch struct {
	Name       string
	Similarity float64
	Required   bool
}

// SemanticScorer computes embedding-space similarity between a job's skill
// list and a resume's skills via asymmetric best-match: the job side drives
// the query, so the score answers "how well does the resume cover the job",
// not whether the two sets are alike.
type SemanticScorer struct {
	preferredWeight float64
}

// NewSemanticScorer creates a scorer where preferred skills contribute
// preferredWeight relative to the 1.0 of required skills.
func NewSemanticScorer(preferredWeight float64) *SemanticScorer {
	return &SemanticScorer{preferredWeight: preferredWeight}
}

// Score computes the weighted average of per-job-skill best matches against
// the resume vectors. Empty job or resume sides yield the neutral constant;
// with an empty resume every best match is reported with similarity 0.
func (s *SemanticScorer) Score(jobSkills []JobSkillVector, resumeVectors [][]float32) (float64, []BestMatch) {
	if len(jobSkills) == 0 {
		return NeutralScore, nil
	}

	matches := make([]BestMatch, 0, len(jobSkills))
	var weightedSum, totalWeight float64

	for _, job := range jobSkills {
		best := 0.0
		for _, rv := range resumeVectors {
			if sim := embedding.ClampScore(embedding.Cosine(job.Vector, rv)); sim > best {
				best = sim
			}
		}

		weight := 1.0
		if !job.Required {
			weight = s.preferredWeight
		}
		weightedSum += weight * best
		totalWeight += weight

		matches = append(matches, BestMatch{Name: job.Name, Similarity: best, Required: job.Required})
	}

	if totalWeight == 0 {
		return NeutralScore, matches
	}
	return embedding.ClampScore(weightedSum / totalWeight), matches
}
