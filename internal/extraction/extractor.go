package extraction

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

// Extractor runs the hybrid extraction: a model pass for recall on free-form
// phrasing, and a lexicon pass that catches niche terms the model misses.
// The model pass is optional; without it extraction runs in degraded mode.
type Extractor struct {
	model   ModelExtractor // nil means lexicon-only
	lexicon *Lexicon
}

// New creates an extractor. model may be nil, in which case every extraction
// reports degraded mode.
func New(model ModelExtractor, lexicon *Lexicon) *Extractor {
	return &Extractor{model: model, lexicon: lexicon}
}

// HasModel reports whether the model pass is configured.
func (e *Extractor) HasModel() bool {
	return e.model != nil
}

// Extract returns the deduplicated skill mentions found in text and whether
// the extraction ran degraded (without the model pass). It never returns an
// error: a model failure downgrades to lexicon-only.
func (e *Extractor) Extract(ctx context.Context, text string) ([]types.ExtractedMention, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, e.model == nil
	}

	degraded := false
	var modelHits []types.ExtractedMention
	if e.model == nil {
		degraded = true
	} else {
		hits, err := e.model.ExtractSkills(ctx, text)
		if err != nil {
			log.Printf("model extraction failed, falling back to lexicon: %v", err)
			degraded = true
		} else {
			modelHits = hits
		}
	}

	ruleHits := e.lexicon.Scan(text)
	return MergeMentions(modelHits, ruleHits), degraded
}

// MergeMentions merges the two extraction passes. Model output is
// authoritative: a rule hit is dropped when its normalized text exactly
// matches, contains, or is contained in any model hit. Survivors keep their
// fixed rule confidence. The merge is a pure function of its inputs.
func MergeMentions(modelHits, ruleHits []types.ExtractedMention) []types.ExtractedMention {
	merged := make([]types.ExtractedMention, 0, len(modelHits)+len(ruleHits))
	modelKeys := make([]string, 0, len(modelHits))
	seen := make(map[string]bool, len(modelHits))

	for _, m := range modelHits {
		key := types.NormalizeKey(m.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		modelKeys = append(modelKeys, key)
		merged = append(merged, m)
	}

	for _, r := range ruleHits {
		key := types.NormalizeKey(r.Text)
		if key == "" || seen[key] {
			continue
		}
		if overlapsAny(key, modelKeys) {
			continue
		}
		seen[key] = true
		merged = append(merged, r)
	}

	return merged
}

func overlapsAny(ruleKey string, modelKeys []string) bool {
	for _, mk := range modelKeys {
		if strings.Contains(mk, ruleKey) || strings.Contains(ruleKey, mk) {
			return true
		}
	}
	return false
}
