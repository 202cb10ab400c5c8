// Package validator cross-checks the COUNTS map against the REDUCED corpus.
// Nothing it finds stops a run: missing counts default to 1 and the rest are
// reported as warnings, since they are exactly the kind of pipeline defect
// the comparison is meant to surface.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/ingestion"
)

// Findings lists the inconsistencies between COUNTS and REDUCED. Every list
// is sorted.
type Findings struct {
	// Uncounted documents appear in REDUCED with no COUNTS entry.
	Uncounted []string
	// NonPositive documents have a count below 1 and are never expanded.
	NonPositive []string
	// Unmatched keys in COUNTS name no REDUCED document.
	Unmatched []string
	// Duplicates appear more than once in REDUCED.
	Duplicates []string
}

func (f *Findings) Empty() bool {
	return len(f.Uncounted) == 0 && len(f.NonPositive) == 0 &&
		len(f.Unmatched) == 0 && len(f.Duplicates) == 0
}

func (f *Findings) String() string {
	var parts []string
	add := func(name string, docs []string) {
		if len(docs) > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", name, len(docs)))
		}
	}
	add("uncounted", f.Uncounted)
	add("non_positive", f.NonPositive)
	add("unmatched", f.Unmatched)
	add("duplicates", f.Duplicates)
	return strings.Join(parts, " ")
}

func ValidateCounts(counts *ingestion.Counts, reduced *ingestion.Corpus) *Findings {
	f := &Findings{}
	seen := make(map[string]int, reduced.Len())
	for _, doc := range reduced.Docs {
		seen[doc]++
		if seen[doc] != 1 {
			continue
		}
		n, ok := counts.Lookup(doc)
		switch {
		case !ok:
			f.Uncounted = append(f.Uncounted, doc)
		case n < 1:
			f.NonPositive = append(f.NonPositive, doc)
		}
	}
	for doc, n := range seen {
		if n > 1 {
			f.Duplicates = append(f.Duplicates, doc)
		}
	}
	for _, key := range counts.Keys() {
		if _, ok := seen[key]; !ok {
			f.Unmatched = append(f.Unmatched, key)
		}
	}
	sort.Strings(f.Uncounted)
	sort.Strings(f.NonPositive)
	sort.Strings(f.Duplicates)
	return f
}
