// Package expander rebuilds the ranking a full corpus would have produced
// from a deduplicated corpus and the occurrence count of each unique
// document. All copies of a document share its score and occupy consecutive
// ranks.
package expander

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/ranker"
)

// Multiplicities reports how many times a document occurred before
// deduplication.
type Multiplicities interface {
	Multiplicity(doc string) int
}

// Reconstruct orders the unique documents with merger.Before and emits
// min(count, remaining) copies of each until k entries exist. Classes past
// the k-th slot are never visited; a non-positive count emits nothing.
func Reconstruct(docs []string, scores []float64, counts Multiplicities, k int) []ranker.RankedDoc {
	out := make([]ranker.RankedDoc, 0, max(0, min(k, len(docs))))
	if k <= 0 {
		return out
	}
	order := make([]ranker.ScoredDoc, len(docs))
	for i, doc := range docs {
		order[i] = ranker.ScoredDoc{Doc: doc, Score: scores[i], Index: i}
	}
	sort.Slice(order, func(i, j int) bool {
		return merger.Before(order[i], order[j])
	})

	for _, entry := range order {
		if len(out) >= k {
			break
		}
		take := min(counts.Multiplicity(entry.Doc), k-len(out))
		for range take {
			out = append(out, ranker.RankedDoc{
				Rank:      len(out) + 1,
				ScoredDoc: entry,
			})
		}
	}
	return out
}
