package parser

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/tokenizer"
)

// QueryPlan is the flat term sequence scored against every document. Query
// boundaries are not kept, and repeated terms stay repeated: each occurrence
// adds its own contribution to the score.
type QueryPlan struct {
	Terms      []string
	RawQueries []string
}

func Parse(queries []string) *QueryPlan {
	plan := &QueryPlan{
		Terms:      make([]string, 0),
		RawQueries: append([]string(nil), queries...),
	}
	for _, q := range queries {
		plan.Terms = append(plan.Terms, tokenizer.Tokenize(q)...)
	}
	return plan
}

// Display joins the raw queries the way the report prints them.
func (p *QueryPlan) Display() string {
	return strings.Join(p.RawQueries, " | ")
}

// UniqueTerms returns the distinct terms in first-seen order.
func (p *QueryPlan) UniqueTerms() []string {
	seen := make(map[string]struct{}, len(p.Terms))
	out := make([]string, 0, len(p.Terms))
	for _, term := range p.Terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}
