// bm25equiv checks that ranking a deduplicated corpus and expanding each
// document by its recorded multiplicity reproduces the BM25 top-K of the
// full corpus. Each corpus is scored against its own statistics.
package main

import (
	"os"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/app"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/equivalence"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr, equivalence.PolicyIndependent))
}
