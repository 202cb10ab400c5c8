package executor

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/logger"
)

// minChunk keeps tiny corpora on a single goroutine.
const minChunk = 256

type Executor struct {
	scorer  *ranker.Scorer
	workers int
}

// New returns an Executor scoring with up to workers goroutines. workers <= 0
// means GOMAXPROCS.
func New(scorer *ranker.Scorer, workers int) *Executor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Executor{
		scorer:  scorer,
		workers: workers,
	}
}

// ScoreAll scores every tokenized document against stats. Each score lands
// in its own slot, so the result is identical whatever the fan-out.
func (e *Executor) ScoreAll(ctx context.Context, corpus string, docs [][]string, plan *parser.QueryPlan, stats *index.Stats) ([]float64, error) {
	scores := make([]float64, len(docs))
	if len(docs) == 0 {
		return scores, nil
	}
	chunk := (len(docs) + e.workers - 1) / e.workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for start := 0; start < len(docs); start += chunk {
		end := min(start+chunk, len(docs))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("scoring %s documents %d-%d: %w", corpus, start, end, err)
			}
			for i := start; i < end; i++ {
				scores[i] = e.scorer.Score(docs[i], plan.Terms, stats)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	termStats := make(map[string]int, len(plan.Terms))
	for _, term := range plan.UniqueTerms() {
		termStats[term] = stats.DocFreq(term)
	}
	logger.FromContext(ctx).With("component", "query-executor").Debug("corpus scored",
		"corpus", corpus,
		"docs", len(docs),
		"stats_n", stats.N,
		"avgdl", stats.AvgDocLength,
		"term_df", termStats,
	)
	return scores, nil
}
