package pipeline

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-fit-analyzer/internal/embedding"
)

// limitedEmbedder bounds concurrent embedding calls with a weighted
// semaphore so parallel match requests cannot fan out unbounded work to the
// embedding backend.
type limitedEmbedder struct {
	inner embedding.Embedder
	sem   *semaphore.Weighted
}

func newLimitedEmbedder(inner embedding.Embedder, maxConcurrent int64) *limitedEmbedder {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &limitedEmbedder{
		inner: inner,
		sem:   semaphore.NewWeighted(maxConcurrent),
	}
}

func (l *limitedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)
	return l.inner.Embed(ctx, text)
}

// EmbedBatch holds a single permit for the whole batch. The backends already
// batch server-side, so one permit per call keeps request fan-out bounded
// without serializing every vector.
func (l *limitedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)
	return l.inner.EmbedBatch(ctx, texts)
}

func (l *limitedEmbedder) Dimension() int {
	return l.inner.Dimension()
}
