// Package report turns a check result into the run's artifacts: the two
// ranked lists and the mismatch list as JSON, and a plain-text summary whose
// last status line reads PASS or FAIL.
package report

import (
	"fmt"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/equivalence"
)

const (
	DefaultPreviewLength = 80
	DefaultMaxMismatches = 10
	digestPrefix         = 16
)

type RenderOptions struct {
	PreviewLength int
	MaxMismatches int
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		PreviewLength: DefaultPreviewLength,
		MaxMismatches: DefaultMaxMismatches,
	}
}

// Render produces the human-readable report.
func Render(res *equivalence.Result, opts RenderOptions) string {
	var b strings.Builder
	in := res.Input

	switch res.Policy {
	case equivalence.PolicyLocked:
		b.WriteString("BM25 Strict Equivalence Check (FULL-IDF locked; FULL avgdl locked)\n")
	default:
		b.WriteString("BM25 Equivalence Check (FULL vs REDUCED+COUNTS reconstruction)\n")
	}
	fmt.Fprintf(&b, "FULL   : %s\n", in.Full.Path)
	fmt.Fprintf(&b, "REDUCED: %s\n", in.Reduced.Path)
	fmt.Fprintf(&b, "COUNTS : %s\n", in.Counts.Path)
	fmt.Fprintf(&b, "K      : %d\n", in.K)
	fmt.Fprintf(&b, "QUERY  : %s\n", res.Plan.Display())
	fmt.Fprintf(&b, "N(full) : %d  avgdl(full): %.6f\n", res.FullStats.N, res.FullStats.AvgDocLength)
	if res.Policy == equivalence.PolicyIndependent {
		fmt.Fprintf(&b, "N(reduced) : %d  avgdl(reduced): %.6f\n", res.ReducedStats.N, res.ReducedStats.AvgDocLength)
	}
	fmt.Fprintf(&b, "BLAKE3 : full=%s reduced=%s counts=%s\n",
		shortDigest(in.Full.Digest), shortDigest(in.Reduced.Digest), shortDigest(in.Counts.Digest))
	if len(res.Reconstructed) < len(res.FullTop) {
		fmt.Fprintf(&b, "NOTE   : reconstructed top-K has %d entries, full top-K has %d; only the first %d ranks are compared\n",
			len(res.Reconstructed), len(res.FullTop), len(res.Reconstructed))
	}
	if res.Findings != nil && !res.Findings.Empty() {
		fmt.Fprintf(&b, "COUNTS CHECK: %s\n", res.Findings.String())
	}
	b.WriteString("\n")

	if res.Passed() {
		switch res.Policy {
		case equivalence.PolicyLocked:
			b.WriteString("STATUS: PASS ✅ (top-K doc identity matches under strict reconstruction)\n")
		default:
			b.WriteString("STATUS: PASS ✅ (top-K doc identity matches under reconstruction)\n")
		}
		return b.String()
	}

	fmt.Fprintf(&b, "STATUS: FAIL ❌  mismatches=%d\n", len(res.Mismatches))
	shown := res.Mismatches[:min(opts.MaxMismatches, len(res.Mismatches))]
	fmt.Fprintf(&b, "First %d mismatches:\n", opts.MaxMismatches)
	for _, m := range shown {
		fmt.Fprintf(&b, "- rank %d: FULL='%s...' vs RECON='%s...'\n",
			m.Rank, preview(m.FullDoc, opts.PreviewLength), preview(m.ReconDoc, opts.PreviewLength))
	}
	return b.String()
}

// preview keeps the first n characters of doc.
func preview(doc string, n int) string {
	runes := []rune(doc)
	if len(runes) <= n {
		return doc
	}
	return string(runes[:n])
}

func shortDigest(d string) string {
	if d == "" {
		return "-"
	}
	return d[:min(digestPrefix, len(d))]
}
