package scoring

import (
	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

// Dimension descriptions for the contribution breakdown.
const (
	semanticDescription   = "How well resume skills match job requirements by meaning"
	graphDescription      = "Structural overlap in skill categories and relationships"
	experienceDescription = "How well candidate experience matches job requirements"
)

// Aggregator combines the three dimension scores into the overall verdict.
// Weights are validated to sum to 1.0 at configuration load, before any
// aggregator exists, so combination here is pure arithmetic.
type Aggregator struct {
	semanticWeight   float64
	graphWeight      float64
	experienceWeight float64

	strongThreshold    float64
	moderateThreshold  float64
	potentialThreshold float64
}

// NewAggregator creates an aggregator with pre-validated weights and
// fit-label thresholds.
func NewAggregator(semanticWeight, graphWeight, experienceWeight, strong, moderate, potential float64) *Aggregator {
	return &Aggregator{
		semanticWeight:     semanticWeight,
		graphWeight:        graphWeight,
		experienceWeight:   experienceWeight,
		strongThreshold:    strong,
		moderateThreshold:  moderate,
		potentialThreshold: potential,
	}
}

// Breakdown combines the dimension scores into a ScoreBreakdown carrying the
// weights used, with every value clamped to [0,1].
func (a *Aggregator) Breakdown(semantic, graph, experience float64) types.ScoreBreakdown {
	return types.ScoreBreakdown{
		SemanticScore:    embedding.ClampScore(semantic),
		GraphScore:       embedding.ClampScore(graph),
		ExperienceScore:  embedding.ClampScore(experience),
		SemanticWeight:   a.semanticWeight,
		GraphWeight:      a.graphWeight,
		ExperienceWeight: a.experienceWeight,
	}
}

// Overall returns the weighted combination of a breakdown's scores.
func (a *Aggregator) Overall(b types.ScoreBreakdown) float64 {
	overall := a.semanticWeight*b.SemanticScore +
		a.graphWeight*b.GraphScore +
		a.experienceWeight*b.ExperienceScore
	return embedding.ClampScore(overall)
}

// Label derives the fit label from the overall score. Thresholds are checked
// high to low and are inclusive at the lower bound of each band.
func (a *Aggregator) Label(overall float64) types.FitLabel {
	switch {
	case overall >= a.strongThreshold:
		return types.FitStrong
	case overall >= a.moderateThreshold:
		return types.FitModerate
	case overall >= a.potentialThreshold:
		return types.FitPotential
	default:
		return types.FitWeak
	}
}

// Contributions returns the per-dimension contribution rows for a breakdown.
func (a *Aggregator) Contributions(b types.ScoreBreakdown) []types.ScoreContribution {
	return []types.ScoreContribution{
		{
			Dimension:            "Semantic Similarity",
			RawScore:             b.SemanticScore,
			Weight:               b.SemanticWeight,
			WeightedContribution: b.SemanticScore * b.SemanticWeight,
			Description:          semanticDescription,
		},
		{
			Dimension:            "Graph Structure",
			RawScore:             b.GraphScore,
			Weight:               b.GraphWeight,
			WeightedContribution: b.GraphScore * b.GraphWeight,
			Description:          graphDescription,
		},
		{
			Dimension:            "Experience Fit",
			RawScore:             b.ExperienceScore,
			Weight:               b.ExperienceWeight,
			WeightedContribution: b.ExperienceScore * b.ExperienceWeight,
			Description:          experienceDescription,
		},
	}
}
