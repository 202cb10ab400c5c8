// Package ingestion loads the checker inputs: the FULL and REDUCED corpora
// (one document per line) and the COUNTS multiplicity map (a JSON object).
package ingestion

import "sort"

// Corpus is an ordered list of normalized documents read from Path. Lines
// that are blank after normalization are not part of it.
type Corpus struct {
	Path   string
	Docs   []string
	Digest string
}

func (c *Corpus) Len() int {
	return len(c.Docs)
}

// Counts maps a normalized document to the number of times it occurred in
// the FULL corpus before deduplication.
type Counts struct {
	Path   string
	Digest string
	values map[string]int
}

func NewCounts(values map[string]int) *Counts {
	if values == nil {
		values = make(map[string]int)
	}
	return &Counts{values: values}
}

// Multiplicity returns the recorded count for doc, or 1 when doc has no entry.
func (c *Counts) Multiplicity(doc string) int {
	if n, ok := c.values[doc]; ok {
		return n
	}
	return 1
}

func (c *Counts) Lookup(doc string) (int, bool) {
	n, ok := c.values[doc]
	return n, ok
}

func (c *Counts) Len() int {
	return len(c.values)
}

// Keys returns the documents with an entry, sorted.
func (c *Counts) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
