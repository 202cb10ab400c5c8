package merger

import (
	"container/heap"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/ranker"
)

// Before is the ranking order: higher score first, then the
// lexicographically greater document, then the earlier corpus position.
// It is a strict total order over entries with distinct indexes.
func Before(a, b ranker.ScoredDoc) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Doc != b.Doc {
		return a.Doc > b.Doc
	}
	return a.Index < b.Index
}

// TopK selects the best k entries from the parallel docs/scores slices and
// assigns 1-based ranks. The result has min(k, len(docs)) entries.
func TopK(docs []string, scores []float64, k int) []ranker.RankedDoc {
	if k <= 0 || len(docs) == 0 {
		return []ranker.RankedDoc{}
	}
	h := &scoredDocHeap{}
	heap.Init(h)
	for i, doc := range docs {
		heap.Push(h, ranker.ScoredDoc{Doc: doc, Score: scores[i], Index: i})
		if h.Len() > k {
			heap.Pop(h)
		}
	}
	result := make([]ranker.RankedDoc, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = ranker.RankedDoc{
			Rank:      i + 1,
			ScoredDoc: heap.Pop(h).(ranker.ScoredDoc),
		}
	}
	return result
}

// scoredDocHeap keeps the worst retained entry on top.
type scoredDocHeap []ranker.ScoredDoc

func (h scoredDocHeap) Len() int { return len(h) }

func (h scoredDocHeap) Less(i, j int) bool {
	return Before(h[j], h[i])
}

func (h scoredDocHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *scoredDocHeap) Push(x interface{}) {
	*h = append(*h, x.(ranker.ScoredDoc))
}

func (h *scoredDocHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
