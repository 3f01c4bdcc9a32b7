package scoring

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
	"github.com/jonathan/resume-fit-analyzer/internal/ontology"
	"github.com/jonathan/resume-fit-analyzer/internal/relations"
)

// GraphScorer computes structural similarity between two canonical skill-id
// sets: a weighted blend of Jaccard overlap and category coverage, with
// optional one-hop relation expansion of both sides before the Jaccard term.
// Expansion is bounded to a single hop so related expertise is rewarded
// without unbounded graph walks inflating the score.
type GraphScorer struct {
	ont            *ontology.Ontology
	store          relations.Store
	jaccardWeight  float64
	categoryWeight float64
	expand         bool
}

// NewGraphScorer creates a graph scorer. store supplies one-hop relations
// and may be backed by the ontology or an external database; the scorer does
// not know which.
func NewGraphScorer(ont *ontology.Ontology, store relations.Store, jaccardWeight, categoryWeight float64, expand bool) *GraphScorer {
	return &GraphScorer{
		ont:            ont,
		store:          store,
		jaccardWeight:  jaccardWeight,
		categoryWeight: categoryWeight,
		expand:         expand,
	}
}

// Score computes the structural score for resume and job canonical skill-id
// sets. An empty job set yields the neutral constant.
func (g *GraphScorer) Score(ctx context.Context, resumeIDs, jobIDs []string) (float64, error) {
	if len(jobIDs) == 0 {
		return NeutralScore, nil
	}

	resumeSet := toSet(resumeIDs)
	jobSet := toSet(jobIDs)

	jaccardResume, jaccardJob := resumeSet, jobSet
	if g.expand {
		var err error
		if jaccardResume, err = g.expandOneHop(ctx, resumeSet); err != nil {
			return 0, err
		}
		if jaccardJob, err = g.expandOneHop(ctx, jobSet); err != nil {
			return 0, err
		}
	}

	jaccard := jaccardSimilarity(jaccardResume, jaccardJob)
	category := g.categoryOverlap(resumeSet, jobSet)

	score := g.jaccardWeight*jaccard + g.categoryWeight*category
	return embedding.ClampScore(score), nil
}

// expandOneHop returns the set plus each member's direct relations. The
// expansion never recurses: neighbors of neighbors are not added.
func (g *GraphScorer) expandOneHop(ctx context.Context, ids map[string]bool) (map[string]bool, error) {
	expanded := make(map[string]bool, len(ids)*2)
	for id := range ids {
		expanded[id] = true
		related, err := g.store.RelatedSkills(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to expand relations for %s: %w", id, err)
		}
		for _, r := range related {
			expanded[r] = true
		}
	}
	return expanded, nil
}

// categoryOverlap returns the fraction of job skill categories also present
// among resume skill categories.
func (g *GraphScorer) categoryOverlap(resumeSet, jobSet map[string]bool) float64 {
	jobCategories := g.categories(jobSet)
	if len(jobCategories) == 0 {
		return 0
	}
	resumeCategories := g.categories(resumeSet)

	shared := 0
	for cat := range jobCategories {
		if resumeCategories[cat] {
			shared++
		}
	}
	return float64(shared) / float64(len(jobCategories))
}

func (g *GraphScorer) categories(ids map[string]bool) map[string]bool {
	cats := make(map[string]bool)
	for id := range ids {
		if cat := g.ont.Category(id); cat != "" {
			cats[cat] = true
		}
	}
	return cats
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for id := range a {
		if b[id] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
