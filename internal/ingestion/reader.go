package ingestion

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/errors"
)

// LoadCorpus reads one document per line. Invalid UTF-8 sequences are
// dropped, every line is normalized, and lines that end up empty are skipped.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInputUnreadable, err, "reading corpus %s", path)
	}
	text := strings.ToValidUTF8(string(data), "")
	lines := tokenizer.SplitLines(text)
	docs := make([]string, 0, len(lines))
	for _, line := range lines {
		if doc := tokenizer.Normalize(line); doc != "" {
			docs = append(docs, doc)
		}
	}
	return &Corpus{
		Path:   path,
		Docs:   docs,
		Digest: digest(data),
	}, nil
}

// LoadCounts reads the multiplicity map. The file is a JSON object from
// document to count; // comments and trailing commas are tolerated. Counts
// may be JSON numbers or numeric strings; fractional values truncate toward
// zero. Keys are used verbatim.
func LoadCounts(path string) (*Counts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInputUnreadable, err, "reading counts %s", path)
	}
	values, err := ParseCounts(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMalformedCounts, err, "parsing counts %s", path)
	}
	counts := NewCounts(values)
	counts.Path = path
	counts.Digest = digest(data)
	return counts, nil
}

// ParseCounts decodes a COUNTS document.
func ParseCounts(data []byte) (map[string]int, error) {
	var raw map[string]json.Number
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	values := make(map[string]int, len(raw))
	for doc, num := range raw {
		n, err := toCount(num)
		if err != nil {
			return nil, fmt.Errorf("count for %q: %w", doc, err)
		}
		values[doc] = n
	}
	return values, nil
}

// toCount accepts any integer that fits in an int. Fractional values
// truncate toward zero.
func toCount(num json.Number) (int, error) {
	if n, err := num.Int64(); err == nil {
		if n > math.MaxInt || n < math.MinInt {
			return 0, fmt.Errorf("%s is out of range", num)
		}
		return int(n), nil
	}
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a number", num.String())
	}
	f = math.Trunc(f)
	if f >= math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("%s is out of range", num)
	}
	return int(f), nil
}

func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
