// Package explain renders match results into deterministic human-readable
// text. No model or network call is involved: identical inputs always
// produce byte-identical output.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

// barWidth is the length of the similarity bar rendered per matched skill.
const barWidth = 10

// Explainer builds the plain-text explanation section of a MatchResult.
type Explainer struct{}

// New creates an Explainer.
func New() *Explainer {
	return &Explainer{}
}

// Explain renders the full explanation for a computed result. The result's
// MatchedSkills, MissingSkills, and PreferredGaps must already be populated.
func (e *Explainer) Explain(result *types.MatchResult, jobTitle string, resumeSkillCount int) string {
	sections := []string{
		e.header(result, jobTitle),
		e.scoreBreakdown(result.Breakdown),
		e.matchedSkills(result.MatchedSkills),
	}

	if len(result.MissingSkills) > 0 {
		sections = append(sections, e.missingSkills(result.MissingSkills))
	}
	if len(result.PreferredGaps) > 0 {
		sections = append(sections, e.preferredGaps(result.PreferredGaps))
	}

	sections = append(sections, e.coverage(result, resumeSkillCount))

	return strings.Join(sections, "\n\n")
}

func (e *Explainer) header(result *types.MatchResult, jobTitle string) string {
	return fmt.Sprintf("Match Analysis: Resume → %s\nOverall Score: %s (%s)",
		jobTitle, percent(result.OverallScore), result.FitLabel)
}

func (e *Explainer) scoreBreakdown(b types.ScoreBreakdown) string {
	lines := []string{
		"Score Breakdown:",
		breakdownLine("Semantic Similarity:", b.SemanticScore, b.SemanticWeight),
		breakdownLine("Graph Structure:    ", b.GraphScore, b.GraphWeight),
		breakdownLine("Experience Fit:     ", b.ExperienceScore, b.ExperienceWeight),
	}
	return strings.Join(lines, "\n")
}

func breakdownLine(label string, score, weight float64) string {
	return fmt.Sprintf("  %s %s (weight: %s) → contributes %s",
		label, percent(score), percent(weight), percent(score*weight))
}

func (e *Explainer) matchedSkills(matched []types.SkillMatch) string {
	covered := make([]types.SkillMatch, 0, len(matched))
	for _, m := range matched {
		if m.Matched {
			covered = append(covered, m)
		}
	}
	if len(covered) == 0 {
		return "Matched Skills: None"
	}

	sort.Slice(covered, func(i, j int) bool {
		if covered[i].Similarity != covered[j].Similarity {
			return covered[i].Similarity > covered[j].Similarity
		}
		return covered[i].Name < covered[j].Name
	})

	lines := []string{fmt.Sprintf("Matched Skills (%d):", len(covered))}
	for _, m := range covered {
		lines = append(lines, fmt.Sprintf("  [%s] %s  %s", bar(m.Similarity), percent(m.Similarity), m.Name))
	}
	return strings.Join(lines, "\n")
}

func (e *Explainer) missingSkills(missing []string) string {
	sorted := make([]string, len(missing))
	copy(sorted, missing)
	sort.Strings(sorted)

	lines := []string{fmt.Sprintf("Missing Required Skills (%d):", len(sorted))}
	for _, s := range sorted {
		lines = append(lines, "  ✗ "+s)
	}
	return strings.Join(lines, "\n")
}

func (e *Explainer) preferredGaps(gaps []string) string {
	sorted := make([]string, len(gaps))
	copy(sorted, gaps)
	sort.Strings(sorted)

	lines := []string{fmt.Sprintf("Preferred Skills Not Covered (%d):", len(sorted))}
	for _, s := range sorted {
		lines = append(lines, "  - "+s)
	}
	return strings.Join(lines, "\n")
}

func (e *Explainer) coverage(result *types.MatchResult, resumeSkillCount int) string {
	matched := 0
	for _, m := range result.MatchedSkills {
		if m.Matched {
			matched++
		}
	}
	required := matched + len(result.MissingSkills)
	if required == 0 {
		return "Coverage Summary: No required skills specified"
	}

	coverage := float64(matched) / float64(required)
	return fmt.Sprintf("Coverage Summary:\n"+
		"  Job requires %d skills\n"+
		"  Resume covers %d (%s coverage)\n"+
		"  Missing %d skills\n"+
		"  Resume lists %d skills in total",
		required, matched, percent(coverage), len(result.MissingSkills), resumeSkillCount)
}

// percent formats a [0,1] score as a fixed one-decimal percentage. fmt's
// formatting is locale-independent, which keeps output byte-stable.
func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func bar(similarity float64) string {
	filled := int(similarity * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
