package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit-analyzer/internal/config"
	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
)

// countingEmbedder tracks the peak number of concurrent Embed calls.
type countingEmbedder struct {
	inner embedding.Embedder

	mu      sync.Mutex
	current int
	peak    int
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.mu.Lock()
	c.current++
	if c.current > c.peak {
		c.peak = c.current
	}
	c.mu.Unlock()

	vec, err := c.inner.Embed(ctx, text)

	c.mu.Lock()
	c.current--
	c.mu.Unlock()
	return vec, err
}

func (c *countingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.EmbedBatch(ctx, texts)
}

func (c *countingEmbedder) Dimension() int {
	return c.inner.Dimension()
}

func TestLimitedEmbedderAcceptsConfiguredBound(t *testing.T) {
	cfg := config.DefaultConfig()
	limited := newLimitedEmbedder(embedding.NewHashingEmbedder(), cfg.MaxConcurrentEmbeds)

	vec, err := limited.Embed(context.Background(), "python")
	require.NoError(t, err)
	assert.Len(t, vec, limited.Dimension())
}

func TestLimitedEmbedderBoundsConcurrency(t *testing.T) {
	counting := &countingEmbedder{inner: embedding.NewHashingEmbedder()}
	limited := newLimitedEmbedder(counting, 2)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := limited.Embed(context.Background(), "kubernetes")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, counting.peak, 2)
}

func TestLimitedEmbedderFloorsAtOne(t *testing.T) {
	limited := newLimitedEmbedder(embedding.NewHashingEmbedder(), 0)

	vec, err := limited.Embed(context.Background(), "go")
	require.NoError(t, err)
	assert.NotEmpty(t, vec)
}
