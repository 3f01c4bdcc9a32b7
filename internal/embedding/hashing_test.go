package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingEmbedderDeterminism(t *testing.T) {
	emb := NewHashingEmbedder()
	ctx := context.Background()

	a, err := emb.Embed(ctx, "Machine Learning")
	require.NoError(t, err)
	b, err := emb.Embed(ctx, "Machine Learning")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestHashingEmbedderUnitNorm(t *testing.T) {
	emb := NewHashingEmbedder()

	vec, err := emb.Embed(context.Background(), "PostgreSQL")
	require.NoError(t, err)
	require.Len(t, vec, emb.Dimension())

	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

func TestHashingEmbedderSurfaceSimilarity(t *testing.T) {
	emb := NewHashingEmbedder()
	ctx := context.Background()

	postgres, err := emb.Embed(ctx, "postgres")
	require.NoError(t, err)
	postgresql, err := emb.Embed(ctx, "postgresql")
	require.NoError(t, err)
	react, err := emb.Embed(ctx, "react")
	require.NoError(t, err)

	near := Cosine(postgres, postgresql)
	far := Cosine(postgres, react)
	assert.Greater(t, near, far, "shared-prefix strings should score above unrelated ones")
	assert.Greater(t, near, 0.5, "shared-prefix pairs should clear the default match threshold")
	assert.Less(t, far, 0.5, "unrelated pairs must stay below the default match threshold")
}

func TestHashingEmbedderCaseInsensitive(t *testing.T) {
	emb := NewHashingEmbedder()
	ctx := context.Background()

	a, err := emb.Embed(ctx, "PyTorch")
	require.NoError(t, err)
	b, err := emb.Embed(ctx, "pytorch")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, Cosine(a, b), 1e-9)
}

func TestHashingEmbedderEmptyText(t *testing.T) {
	emb := NewHashingEmbedder()

	vec, err := emb.Embed(context.Background(), "   ")
	require.NoError(t, err)
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func TestHashingEmbedderBatchMatchesSingle(t *testing.T) {
	emb := NewHashingEmbedderWithDimension(64)
	ctx := context.Background()

	batch, err := emb.EmbedBatch(ctx, []string{"go", "rust"})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	single, err := emb.Embed(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, single, batch[0])
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, Cosine([]float32{1}, []float32{1, 0}), "mismatched lengths")
	assert.Zero(t, Cosine([]float32{0, 0}, []float32{1, 0}), "zero vector")
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-0.3))
	assert.Equal(t, 0.5, ClampScore(0.5))
	assert.Equal(t, 1.0, ClampScore(1.2))
}

func TestNormalize(t *testing.T) {
	v := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)

	zero := Normalize([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.False(t, math.IsNaN(sum))
}
