// Package normalize maps raw skill mentions to canonical ontology entries
// using exact alias matching and embedding nearest-neighbor search.
package normalize

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
	"github.com/jonathan/resume-fit-analyzer/internal/ontology"
	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

// unresolvedCategory labels skills that could not be matched to the ontology.
const unresolvedCategory = "Unknown"

// Normalizer resolves mentions against an immutable ontology and index.
// Normalization is a pure function of (mention text, ontology, index state):
// identical input always yields the identical canonical id and similarity.
type Normalizer struct {
	ont       *ontology.Ontology
	embedder  embedding.Embedder
	index     *embedding.Index
	threshold float64
}

// New creates a Normalizer with the given resolution threshold.
func New(ont *ontology.Ontology, embedder embedding.Embedder, index *embedding.Index, threshold float64) *Normalizer {
	return &Normalizer{ont: ont, embedder: embedder, index: index, threshold: threshold}
}

// Normalize resolves one mention. An exact (case-insensitive) match against a
// canonical name or alias short-circuits with similarity 1.0 and no index
// lookup, which also makes normalization idempotent for canonical names.
// Otherwise the mention is embedded and resolved to the nearest ontology
// skill when its similarity meets the threshold; ties prefer the
// lexicographically smallest skill id. Below-threshold mentions are kept
// unresolved with their literal text.
func (n *Normalizer) Normalize(ctx context.Context, mention types.ExtractedMention) (types.CanonicalSkill, error) {
	raw := strings.TrimSpace(mention.Text)
	if raw == "" {
		return types.CanonicalSkill{}, fmt.Errorf("empty mention text")
	}

	if skill, ok := n.ont.ResolveTerm(raw); ok {
		return types.CanonicalSkill{
			SkillID:    skill.ID,
			Name:       skill.Name,
			Category:   skill.Category,
			Similarity: 1.0,
			Confidence: mention.Confidence,
			Resolved:   true,
			Raw:        raw,
		}, nil
	}

	vec, err := n.embedder.Embed(ctx, raw)
	if err != nil {
		return types.CanonicalSkill{}, fmt.Errorf("failed to embed mention %q: %w", raw, err)
	}

	neighbors := n.index.Search(vec, 1)
	if len(neighbors) > 0 && neighbors[0].Similarity >= n.threshold {
		top := neighbors[0]
		skill, _ := n.ont.Skill(top.SkillID)
		return types.CanonicalSkill{
			SkillID:    skill.ID,
			Name:       skill.Name,
			Category:   skill.Category,
			Similarity: top.Similarity,
			Confidence: mention.Confidence,
			Resolved:   true,
			Raw:        raw,
		}, nil
	}

	similarity := 0.0
	if len(neighbors) > 0 {
		similarity = neighbors[0].Similarity
	}
	return types.CanonicalSkill{
		Name:       raw,
		Category:   unresolvedCategory,
		Similarity: similarity,
		Confidence: mention.Confidence,
		Resolved:   false,
		Raw:        raw,
	}, nil
}

// NormalizeAll resolves a batch of mentions in order.
func (n *Normalizer) NormalizeAll(ctx context.Context, mentions []types.ExtractedMention) ([]types.CanonicalSkill, error) {
	skills := make([]types.CanonicalSkill, 0, len(mentions))
	for _, m := range mentions {
		skill, err := n.Normalize(ctx, m)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

// BuildProfile collapses normalized skills into a ResumeProfile. Duplicates
// are merged by skill id (unresolved skills by lowercased literal text),
// keeping the maximum similarity and maximum confidence. Output order is
// deterministic: resolved skills sorted by id, then unresolved by name.
func BuildProfile(skills []types.CanonicalSkill, experienceYears *float64) types.ResumeProfile {
	merged := make(map[string]types.CanonicalSkill, len(skills))
	for _, s := range skills {
		key := s.SkillID
		if !s.Resolved {
			key = "raw:" + strings.ToLower(s.Name)
		}
		cur, seen := merged[key]
		if !seen {
			merged[key] = s
			continue
		}
		if s.Similarity > cur.Similarity {
			cur.Similarity = s.Similarity
		}
		if s.Confidence > cur.Confidence {
			cur.Confidence = s.Confidence
		}
		merged[key] = cur
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := strings.HasPrefix(keys[i], "raw:"), strings.HasPrefix(keys[j], "raw:")
		if ri != rj {
			return !ri
		}
		return keys[i] < keys[j]
	})

	profile := types.ResumeProfile{
		Skills:          make([]types.CanonicalSkill, 0, len(keys)),
		ExperienceYears: experienceYears,
	}
	for _, k := range keys {
		profile.Skills = append(profile.Skills, merged[k])
	}
	return profile
}
