package benchmark

import (
	"fmt"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/tokenizer"
)

var vocabulary = []string{"error", "warn", "disk", "timeout", "retry", "upstream", "shard", "replica", "queue", "latency"}

// syntheticCorpus returns n tokenized log lines drawn from a small
// vocabulary, with roughly one line in four repeated.
func syntheticCorpus(n int) ([]string, [][]string) {
	raw := make([]string, n)
	tokens := make([][]string, n)
	for i := 0; i < n; i++ {
		id := i
		if i%4 == 3 {
			id = i - 1
		}
		raw[i] = fmt.Sprintf("%s %s node-%d %s", vocabulary[id%len(vocabulary)],
			vocabulary[(id*7)%len(vocabulary)], id%97, vocabulary[(id/3)%len(vocabulary)])
		tokens[i] = tokenizer.Tokenize(raw[i])
	}
	return raw, tokens
}

// BenchmarkBuildStats measures document-frequency table construction for
// corpora of increasing size.
func BenchmarkBuildStats(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		_, docs := syntheticCorpus(n)
		b.Run(fmt.Sprintf("docs_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				stats := index.BuildStats(docs)
				_ = stats
			}
		})
	}
}

func BenchmarkDocFreq(b *testing.B) {
	_, docs := syntheticCorpus(50000)
	stats := index.BuildStats(docs)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			df := stats.DocFreq(vocabulary[i%len(vocabulary)])
			_ = df
			i++
		}
	})
}
