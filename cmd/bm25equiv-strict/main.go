// bm25equiv-strict is bm25equiv with the FULL corpus statistics (document
// frequencies, N and average length) locked in for scoring REDUCED.
package main

import (
	"os"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/app"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/equivalence"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr, equivalence.PolicyLocked))
}
