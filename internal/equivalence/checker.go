// Package equivalence runs the dedup equivalence check: score FULL and
// REDUCED with BM25, select FULL's top K, rebuild a top K from REDUCED by
// multiplicity, and compare the two lists rank by rank.
package equivalence

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/ingestion/validator"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/expander"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/tracing"
)

// Input is everything one check needs, already loaded.
type Input struct {
	Full    *ingestion.Corpus
	Reduced *ingestion.Corpus
	Counts  *ingestion.Counts
	Queries []string
	K       int
}

// Result is the outcome of one check. ReducedStats is the same pointer as
// FullStats under PolicyLocked.
type Result struct {
	Policy        Policy
	Input         Input
	Plan          *parser.QueryPlan
	FullStats     *index.Stats
	ReducedStats  *index.Stats
	FullTop       []ranker.RankedDoc
	Reconstructed []ranker.RankedDoc
	Mismatches    []Mismatch
	Findings      *validator.Findings
}

// Passed reports whether every compared rank holds the same document.
func (r *Result) Passed() bool {
	return len(r.Mismatches) == 0
}

type Options struct {
	Params  ranker.Params
	Workers int
	// Metrics is optional.
	Metrics *metrics.Metrics
}

type Checker struct {
	policy   Policy
	executor *executor.Executor
	metrics  *metrics.Metrics
}

func New(policy Policy, opts Options) *Checker {
	return &Checker{
		policy:   policy,
		executor: executor.New(ranker.NewScorer(opts.Params), opts.Workers),
		metrics:  opts.Metrics,
	}
}

func (c *Checker) Policy() Policy {
	return c.policy
}

// Run executes the check. Comparison failures are part of the Result; the
// returned error is only for runs that could not complete.
func (c *Checker) Run(ctx context.Context, in Input) (*Result, error) {
	if in.Full == nil || in.Reduced == nil || in.Counts == nil {
		return nil, fmt.Errorf("check input incomplete: full, reduced and counts are required")
	}
	if in.K < 0 {
		return nil, fmt.Errorf("k must be >= 0, got %d", in.K)
	}
	log := logger.FromContext(ctx).With("component", "checker", "policy", c.policy.String())
	res := &Result{
		Policy: c.policy,
		Input:  in,
		Plan:   parser.Parse(in.Queries),
	}

	_, span := tracing.StartChildSpan(ctx, "stats")
	fullTokens := tokenizeAll(in.Full.Docs)
	reducedTokens := tokenizeAll(in.Reduced.Docs)
	res.FullStats = index.BuildStats(fullTokens)
	switch c.policy {
	case PolicyLocked:
		res.ReducedStats = res.FullStats
	default:
		res.ReducedStats = index.BuildStats(reducedTokens)
	}
	span.SetAttr("full_terms", res.FullStats.Terms())
	span.End()
	log.Info("corpus statistics built",
		"full_docs", res.FullStats.N,
		"full_avgdl", res.FullStats.AvgDocLength,
		"reduced_docs", len(reducedTokens),
		"reduced_stats_n", res.ReducedStats.N,
		"query_terms", len(res.Plan.Terms),
	)

	res.Findings = validator.ValidateCounts(in.Counts, in.Reduced)
	if !res.Findings.Empty() {
		log.Warn("counts do not line up with the reduced corpus", "findings", res.Findings.String())
		for _, doc := range res.Findings.NonPositive {
			log.Debug("non-positive count, class will not be expanded", "doc", doc)
		}
	}

	scoreCtx, span := tracing.StartChildSpan(ctx, "score")
	var fullScores, reducedScores []float64
	g, gctx := errgroup.WithContext(scoreCtx)
	g.Go(func() error {
		var err error
		fullScores, err = c.executor.ScoreAll(gctx, "full", fullTokens, res.Plan, res.FullStats)
		return err
	})
	g.Go(func() error {
		var err error
		reducedScores, err = c.executor.ScoreAll(gctx, "reduced", reducedTokens, res.Plan, res.ReducedStats)
		return err
	})
	err := g.Wait()
	span.End()
	if err != nil {
		return nil, err
	}

	_, span = tracing.StartChildSpan(ctx, "select")
	res.FullTop = merger.TopK(in.Full.Docs, fullScores, in.K)
	span.End()

	_, span = tracing.StartChildSpan(ctx, "reconstruct")
	res.Reconstructed = expander.Reconstruct(in.Reduced.Docs, reducedScores, in.Counts, in.K)
	span.End()

	_, span = tracing.StartChildSpan(ctx, "diff")
	res.Mismatches = Diff(res.FullTop, res.Reconstructed)
	span.SetAttr("mismatches", len(res.Mismatches))
	span.End()

	c.observe(res)
	log.Info("check complete",
		"k", in.K,
		"full_top", len(res.FullTop),
		"reconstructed_top", len(res.Reconstructed),
		"mismatches", len(res.Mismatches),
		"passed", res.Passed(),
	)
	if len(res.Reconstructed) < len(res.FullTop) {
		log.Warn("reconstructed list is shorter than the full list",
			"full_top", len(res.FullTop),
			"reconstructed_top", len(res.Reconstructed),
		)
	}
	return res, nil
}

func (c *Checker) observe(res *Result) {
	if c.metrics == nil {
		return
	}
	m := c.metrics
	m.CorpusDocuments.WithLabelValues("full").Set(float64(len(res.Input.Full.Docs)))
	m.CorpusDocuments.WithLabelValues("reduced").Set(float64(len(res.Input.Reduced.Docs)))
	m.DocumentsScored.WithLabelValues("full").Add(float64(len(res.Input.Full.Docs)))
	m.DocumentsScored.WithLabelValues("reduced").Add(float64(len(res.Input.Reduced.Docs)))
	m.TopKEntries.WithLabelValues("full").Set(float64(len(res.FullTop)))
	m.TopKEntries.WithLabelValues("reconstructed").Set(float64(len(res.Reconstructed)))
	m.Mismatches.Set(float64(len(res.Mismatches)))
	if res.Passed() {
		m.CheckPassed.Set(1)
	} else {
		m.CheckPassed.Set(0)
	}
}

func tokenizeAll(docs []string) [][]string {
	out := make([][]string, len(docs))
	for i, doc := range docs {
		out[i] = tokenizer.Tokenize(doc)
	}
	return out
}
