package equivalence

import "github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/ranker"

// Mismatch records a rank at which the two lists hold different documents.
type Mismatch struct {
	Rank       int
	FullDoc    string
	FullScore  float64
	ReconDoc   string
	ReconScore float64
}

// Diff compares full and reconstructed position by position over their
// common length. Only document identity counts; equal documents with
// different scores are not a mismatch.
func Diff(full, reconstructed []ranker.RankedDoc) []Mismatch {
	mismatches := make([]Mismatch, 0)
	n := min(len(full), len(reconstructed))
	for i := 0; i < n; i++ {
		if full[i].Doc == reconstructed[i].Doc {
			continue
		}
		mismatches = append(mismatches, Mismatch{
			Rank:       i + 1,
			FullDoc:    full[i].Doc,
			FullScore:  full[i].Score,
			ReconDoc:   reconstructed[i].Doc,
			ReconScore: reconstructed[i].Score,
		})
	}
	return mismatches
}
