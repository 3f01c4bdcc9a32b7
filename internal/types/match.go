package types

import "strings"

// FitLabel is the categorical verdict derived from the overall score.
type FitLabel string

const (
	FitStrong    FitLabel = "Strong Fit"
	FitModerate  FitLabel = "Moderate Fit"
	FitPotential FitLabel = "Potential Fit"
	FitWeak      FitLabel = "Weak Fit"
)

// ScoreBreakdown carries each scoring dimension alongside the weight it was
// combined with, so a result is auditable without access to the live config.
type ScoreBreakdown struct {
	SemanticScore    float64 `json:"semantic_score"`
	GraphScore       float64 `json:"graph_score"`
	ExperienceScore  float64 `json:"experience_score"`
	SemanticWeight   float64 `json:"semantic_weight"`
	GraphWeight      float64 `json:"graph_weight"`
	ExperienceWeight float64 `json:"experience_weight"`
}

// SkillMatch reports how well one job skill was covered by the resume.
type SkillMatch struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
	Matched    bool    `json:"matched"`
}

// ScoreContribution is one row of the per-dimension contribution breakdown,
// intended for client-side visualization.
type ScoreContribution struct {
	Dimension            string  `json:"dimension"`
	RawScore             float64 `json:"raw_score"`
	Weight               float64 `json:"weight"`
	WeightedContribution float64 `json:"weighted_contribution"`
	Description          string  `json:"description"`
}

// MatchResult is the complete output of one (resume, job) match.
// MatchedSkills and MissingSkills together cover exactly the distinct
// required skills of the job; preferred-skill gaps are tracked separately.
type MatchResult struct {
	RequestID     string              `json:"request_id"`
	OverallScore  float64             `json:"overall_score"`
	FitLabel      FitLabel            `json:"fit_label"`
	Breakdown     ScoreBreakdown      `json:"breakdown"`
	MatchedSkills []SkillMatch        `json:"matched_skills"`
	MissingSkills []string            `json:"missing_skills"`
	PreferredGaps []string            `json:"preferred_gaps,omitempty"`
	Contributions []ScoreContribution `json:"contributions,omitempty"`
	Explanation   string              `json:"explanation"`
	Degraded      bool                `json:"degraded"`
}

// normalizeKey lowercases and trims a skill string for case-insensitive
// set membership. Shared by job deduplication and match bookkeeping.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeKey exposes the canonical case-insensitive key for a skill string.
func NormalizeKey(s string) string {
	return normalizeKey(s)
}
