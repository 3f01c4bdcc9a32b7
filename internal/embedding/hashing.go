package embedding

import (
	"context"
	"hash/fnv"
	"strings"
)

// defaultHashingDimension is sized so bucket collisions between unrelated
// short skill strings stay rare enough that surface overlap, not hash noise,
// orders similarities.
const defaultHashingDimension = 1024

// HashingEmbedder is a deterministic, dependency-free embedder based on
// character trigram feature hashing. It backs tests and keyless deployments:
// identical input always yields the identical vector, which keeps skill
// normalization a pure function of its inputs.
//
// It is not a semantic model. Similarity reflects surface overlap
// ("postgres" ~ "postgresql"), not meaning ("k8s" vs "Kubernetes" is handled
// by the alias short-circuit, not by this embedder).
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates a hashing embedder with the default dimension.
func NewHashingEmbedder() *HashingEmbedder {
	return &HashingEmbedder{dim: defaultHashingDimension}
}

// NewHashingEmbedderWithDimension creates a hashing embedder with a custom
// dimension. Dimensions below 8 fall back to the default.
func NewHashingEmbedderWithDimension(dim int) *HashingEmbedder {
	if dim < 8 {
		dim = defaultHashingDimension
	}
	return &HashingEmbedder{dim: dim}
}

// Dimension returns the vector size.
func (h *HashingEmbedder) Dimension() int {
	return h.dim
}

// Embed hashes character trigrams and whole words of the lowercased text
// into a fixed-size vector and L2-normalizes it.
func (h *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dim)

	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return vec, nil
	}

	// Pad so leading and trailing characters form their own trigrams.
	padded := " " + normalized + " "
	runes := []rune(padded)
	for i := 0; i+3 <= len(runes); i++ {
		vec[h.bucket(string(runes[i:i+3]))]++
	}

	// Whole words carry extra weight so exact token overlap dominates.
	for _, word := range strings.Fields(normalized) {
		vec[h.bucket("w:"+word)] += 2
	}

	return Normalize(vec), nil
}

// EmbedBatch embeds each text independently.
func (h *HashingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := h.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (h *HashingEmbedder) bucket(feature string) int {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(feature))
	return int(hasher.Sum32() % uint32(h.dim))
}
