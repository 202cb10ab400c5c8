// Package index builds the corpus statistics BM25 needs: document count,
// per-document length, average length, and document frequency per term.
// Document frequency is backed by one roaring bitmap of document ordinals per
// term, so repeated occurrences inside a document count once.
package index

import (
	"github.com/RoaringBitmap/roaring"
)

// Stats is a read-only snapshot of one corpus. It is never mutated after
// BuildStats returns and is safe for concurrent readers.
type Stats struct {
	N            int
	DocLengths   []int
	AvgDocLength float64
	totalTokens  int64
	postings     map[string]*roaring.Bitmap
}

// BuildStats computes statistics over tokenized documents in a single pass.
// An empty corpus yields N=0 and AvgDocLength=0.
func BuildStats(docs [][]string) *Stats {
	s := &Stats{
		N:          len(docs),
		DocLengths: make([]int, len(docs)),
		postings:   make(map[string]*roaring.Bitmap),
	}
	for i, tokens := range docs {
		s.DocLengths[i] = len(tokens)
		s.totalTokens += int64(len(tokens))
		for _, term := range tokens {
			bm, exists := s.postings[term]
			if !exists {
				bm = roaring.New()
				s.postings[term] = bm
			}
			bm.Add(uint32(i))
		}
	}
	for _, bm := range s.postings {
		bm.RunOptimize()
	}
	if s.N > 0 {
		s.AvgDocLength = float64(s.totalTokens) / float64(s.N)
	}
	return s
}

// DocFreq returns the number of documents containing term at least once.
func (s *Stats) DocFreq(term string) int {
	bm, exists := s.postings[term]
	if !exists {
		return 0
	}
	return int(bm.GetCardinality())
}

// TotalTokens is the sum of all document lengths.
func (s *Stats) TotalTokens() int64 {
	return s.totalTokens
}

// Terms returns the vocabulary size.
func (s *Stats) Terms() int {
	return len(s.postings)
}
