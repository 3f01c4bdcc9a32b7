package scoring

import (
	"math"

	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
)

// ExperienceScorer maps years of experience to a smooth fit score using a
// logistic curve: meeting the minimum scores exactly 0.5, exceeding it
// approaches 1.0, and falling short decays toward 0 without a hard cliff.
type ExperienceScorer struct {
	steepness    float64 // logistic k
	unknownScore float64 // conservative score when candidate years are unknown but a minimum is set
}

// NewExperienceScorer creates an experience scorer.
func NewExperienceScorer(steepness, unknownScore float64) *ExperienceScorer {
	return &ExperienceScorer{steepness: steepness, unknownScore: unknownScore}
}

// Score computes the experience fit. A nil minYears means the requirement is
// not binding and scores 1.0. Nil candidate years with a minimum set scores
// the configured conservative constant rather than zero. The score is
// monotonically non-decreasing in candidate years for any fixed minimum.
func (e *ExperienceScorer) Score(candidateYears, minYears *float64) float64 {
	if minYears == nil || *minYears <= 0 {
		return 1.0
	}
	if candidateYears == nil {
		return e.unknownScore
	}

	score := 1.0 / (1.0 + math.Exp(-e.steepness*(*candidateYears-*minYears)))
	return embedding.ClampScore(score)
}
