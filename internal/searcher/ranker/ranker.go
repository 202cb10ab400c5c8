package ranker

import (
	"math"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/index"
)

const (
	DefaultK1 = 1.2
	DefaultB  = 0.75
)

type ScoredDoc struct {
	Doc   string
	Score float64
	Index int
}

type RankedDoc struct {
	Rank int
	ScoredDoc
}

type Params struct {
	K1 float64
	B  float64
}

func DefaultParams() Params {
	return Params{K1: DefaultK1, B: DefaultB}
}

// Scorer computes Okapi BM25. It carries only the tuning parameters; which
// corpus statistics a document is scored against is the caller's choice.
type Scorer struct {
	params Params
}

func NewScorer(params Params) *Scorer {
	return &Scorer{params: params}
}

func (s *Scorer) Params() Params {
	return s.params
}

// Score sums the BM25 contribution of every query term, in order. A term
// listed twice contributes twice; a term absent from the document
// contributes nothing.
func (s *Scorer) Score(docTokens []string, queryTerms []string, stats *index.Stats) float64 {
	if len(queryTerms) == 0 || len(docTokens) == 0 {
		return 0
	}
	termFreqs := make(map[string]int, len(docTokens))
	for _, tok := range docTokens {
		termFreqs[tok]++
	}
	docLength := float64(len(docTokens))
	score := 0.0
	for _, term := range queryTerms {
		tf := termFreqs[term]
		if tf == 0 {
			continue
		}
		idf := computeIDF(int64(stats.N), int64(stats.DocFreq(term)))
		tfNorm := s.computeTFNorm(float64(tf), docLength, stats.AvgDocLength)
		score += idf * tfNorm
	}
	return score
}

func computeIDF(totalDocs int64, docFreq int64) float64 {
	numerator := float64(totalDocs) - float64(docFreq) + 0.5
	denominator := float64(docFreq) + 0.5
	return math.Log(numerator/denominator + 1)
}

func (s *Scorer) computeTFNorm(termFreq float64, docLength float64, avgDocLength float64) float64 {
	k1, b := s.params.K1, s.params.B
	lengthRatio := 0.0
	if avgDocLength != 0 {
		lengthRatio = docLength / avgDocLength
	}
	denominator := termFreq + k1*(1-b+b*lengthRatio)
	return (termFreq * (k1 + 1)) / denominator
}
