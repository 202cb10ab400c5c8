package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/equivalence"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/expander"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/ranker"
)

// dedupCorpus collapses raw into first-seen unique lines and their counts.
func dedupCorpus(raw []string) ([]string, map[string]int) {
	counts := make(map[string]int)
	unique := make([]string, 0, len(raw))
	for _, doc := range raw {
		if counts[doc] == 0 {
			unique = append(unique, doc)
		}
		counts[doc]++
	}
	return unique, counts
}

// BenchmarkQueryParse measures query parsing latency for queries of varying
// size.
func BenchmarkQueryParse(b *testing.B) {
	queries := []struct {
		name    string
		queries []string
	}{
		{"single", []string{"disk"}},
		{"phrase", []string{"upstream timeout"}},
		{"repeated", []string{"error", "error disk", "disk"}},
		{"long", []string{"error warn disk timeout retry upstream shard replica queue latency"}},
	}

	for _, q := range queries {
		b.Run(q.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				plan := parser.Parse(q.queries)
				_ = plan
			}
		})
	}
}

// BenchmarkBM25Score measures scoring a single document.
func BenchmarkBM25Score(b *testing.B) {
	_, docs := syntheticCorpus(10000)
	stats := index.BuildStats(docs)
	plan := parser.Parse([]string{"error timeout", "replica"})
	scorer := ranker.NewScorer(ranker.DefaultParams())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		score := scorer.Score(docs[i%len(docs)], plan.Terms, stats)
		_ = score
	}
}

// BenchmarkScoreAll measures corpus-wide scoring for different worker counts.
func BenchmarkScoreAll(b *testing.B) {
	_, docs := syntheticCorpus(100000)
	stats := index.BuildStats(docs)
	plan := parser.Parse([]string{"error timeout", "replica"})
	scorer := ranker.NewScorer(ranker.DefaultParams())

	for _, workers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			exec := executor.New(scorer, workers)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				scores, err := exec.ScoreAll(context.Background(), "full", docs, plan, stats)
				if err != nil {
					b.Fatal(err)
				}
				_ = scores
			}
		})
	}
}

// BenchmarkTopK measures bounded-heap selection over 100 000 scores.
func BenchmarkTopK(b *testing.B) {
	raw, docs := syntheticCorpus(100000)
	scorer := ranker.NewScorer(ranker.DefaultParams())
	scores, err := executor.New(scorer, 0).ScoreAll(context.Background(), "full", docs,
		parser.Parse([]string{"error"}), index.BuildStats(docs))
	if err != nil {
		b.Fatal(err)
	}

	for _, k := range []int{10, 50, 1000} {
		b.Run(fmt.Sprintf("k_%d", k), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				top := merger.TopK(raw, scores, k)
				_ = top
			}
		})
	}
}

func BenchmarkReconstruct(b *testing.B) {
	raw, _ := syntheticCorpus(100000)
	unique, counts := dedupCorpus(raw)
	tokens := make([][]string, len(unique))
	for i, doc := range unique {
		tokens[i] = tokenizer.Tokenize(doc)
	}
	stats := index.BuildStats(tokens)
	scorer := ranker.NewScorer(ranker.DefaultParams())
	scores, err := executor.New(scorer, 0).ScoreAll(context.Background(), "reduced", tokens,
		parser.Parse([]string{"error"}), stats)
	if err != nil {
		b.Fatal(err)
	}
	mult := ingestion.NewCounts(counts)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		recon := expander.Reconstruct(unique, scores, mult, 50)
		_ = recon
	}
}

// BenchmarkCheck measures a whole check for both statistics policies.
func BenchmarkCheck(b *testing.B) {
	raw, _ := syntheticCorpus(50000)
	unique, counts := dedupCorpus(raw)
	in := equivalence.Input{
		Full:    &ingestion.Corpus{Docs: raw},
		Reduced: &ingestion.Corpus{Docs: unique},
		Counts:  ingestion.NewCounts(counts),
		Queries: []string{"error timeout", "replica"},
		K:       50,
	}

	for _, policy := range []equivalence.Policy{equivalence.PolicyIndependent, equivalence.PolicyLocked} {
		b.Run(policy.String(), func(b *testing.B) {
			checker := equivalence.New(policy, equivalence.Options{Params: ranker.DefaultParams()})
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				res, err := checker.Run(context.Background(), in)
				if err != nil {
					b.Fatal(err)
				}
				if !res.Passed() && policy == equivalence.PolicyLocked {
					b.Fatalf("locked check failed with %d mismatches", len(res.Mismatches))
				}
			}
		})
	}
}
