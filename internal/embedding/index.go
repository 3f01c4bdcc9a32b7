package embedding

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonathan/resume-fit-analyzer/internal/ontology"
)

// Neighbor is one k-nearest-neighbor search result.
type Neighbor struct {
	SkillID    string
	Term       string
	Similarity float64
}

type indexEntry struct {
	skillID string
	term    string
	vector  []float32
}

// Index is an exact cosine-similarity index over ontology term embeddings.
//
// A flat scan is deliberate: ontologies range from tens to tens of thousands
// of entries, rebuilds must be cheap and always correct after an ontology
// edit, and no structure requiring a training or clustering phase is
// acceptable. Construction is idempotent and order-independent.
type Index struct {
	entries []indexEntry
	skills  map[string][]float32 // skill id -> canonical-name embedding
	dim     int
}

// BuildIndex embeds every ontology term with the given embedder and builds
// the index. The first term of each skill is its canonical name; that vector
// is retained as the skill's representative embedding.
func BuildIndex(ctx context.Context, emb Embedder, terms []ontology.Term) (*Index, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("no ontology terms to index")
	}

	texts := make([]string, len(terms))
	for i, t := range terms {
		texts[i] = t.Text
	}

	vectors, err := emb.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed ontology terms: %w", err)
	}
	if len(vectors) != len(terms) {
		return nil, fmt.Errorf("embedding count mismatch: %d terms, %d vectors", len(terms), len(vectors))
	}

	ix := &Index{
		entries: make([]indexEntry, len(terms)),
		skills:  make(map[string][]float32),
		dim:     emb.Dimension(),
	}
	for i, t := range terms {
		if len(vectors[i]) != ix.dim {
			return nil, fmt.Errorf("term %q: dimension mismatch: expected %d, got %d", t.Text, ix.dim, len(vectors[i]))
		}
		ix.entries[i] = indexEntry{skillID: t.SkillID, term: t.Text, vector: vectors[i]}
		if _, ok := ix.skills[t.SkillID]; !ok {
			ix.skills[t.SkillID] = vectors[i]
		}
	}

	return ix, nil
}

// Size returns the number of indexed terms.
func (ix *Index) Size() int {
	return len(ix.entries)
}

// Dimension returns the vector size the index was built with.
func (ix *Index) Dimension() int {
	return ix.dim
}

// SkillVector returns the representative (canonical-name) embedding for a
// skill id.
func (ix *Index) SkillVector(skillID string) ([]float32, bool) {
	v, ok := ix.skills[skillID]
	return v, ok
}

// Search returns the top-k distinct skills by cosine similarity to the query
// vector, descending. Each skill appears once with its best-matching term.
// Equal similarities are broken by lexicographically smallest skill id, so
// results are deterministic regardless of construction order.
func (ix *Index) Search(query []float32, k int) []Neighbor {
	if len(ix.entries) == 0 || len(query) == 0 || k <= 0 {
		return nil
	}

	best := make(map[string]Neighbor, len(ix.skills))
	for _, e := range ix.entries {
		sim := ClampScore(Cosine(query, e.vector))
		cur, seen := best[e.skillID]
		if !seen || sim > cur.Similarity || (sim == cur.Similarity && e.term < cur.Term) {
			best[e.skillID] = Neighbor{SkillID: e.skillID, Term: e.term, Similarity: sim}
		}
	}

	results := make([]Neighbor, 0, len(best))
	for _, n := range best {
		results = append(results, n)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].SkillID < results[j].SkillID
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}
