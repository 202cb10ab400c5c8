package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/equivalence"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/errors"
)

// Artifact file names inside the output directory.
const (
	FullTopKFile      = "bm25_topk_full.json"
	ReconstructedFile = "bm25_topk_reconstructed.json"
	DiffFile          = "bm25_diff.json"
	ReportFile        = "bm25_report.txt"
)

// Score is always written as a JSON float: 0 becomes 0.0 and whole numbers
// keep a ".0", so consumers never see an integer in a score field.
type Score float64

func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("unsupported score %v", f)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.AppendFloat(nil, f, 'e', -1, 64), nil
	}
	out := strconv.AppendFloat(nil, f, 'f', -1, 64)
	if !bytes.ContainsRune(out, '.') {
		out = append(out, '.', '0')
	}
	return out, nil
}

type fullEntry struct {
	Rank  int    `json:"rank"`
	Score Score  `json:"score"`
	Doc   string `json:"doc"`
	I     int    `json:"i"`
}

type reconEntry struct {
	Rank  int    `json:"rank"`
	Score Score  `json:"score"`
	Doc   string `json:"doc"`
}

type mismatchEntry struct {
	Rank       int    `json:"rank"`
	FullDoc    string `json:"full_doc"`
	FullScore  Score  `json:"full_score"`
	ReconDoc   string `json:"recon_doc"`
	ReconScore Score  `json:"recon_score"`
}

// Writer puts the four artifacts of a check into one directory.
type Writer struct {
	dir  string
	opts RenderOptions
}

func NewWriter(dir string, opts RenderOptions) *Writer {
	return &Writer{dir: dir, opts: opts}
}

// WriteAll writes every artifact and returns the report path. Each file is
// written to a .tmp sibling and renamed on success.
func (w *Writer) WriteAll(res *equivalence.Result) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", apperrors.Wrap(apperrors.ErrOutputWrite, err, "creating output directory %s", w.dir)
	}

	full := make([]fullEntry, len(res.FullTop))
	for i, e := range res.FullTop {
		full[i] = fullEntry{Rank: e.Rank, Score: Score(e.Score), Doc: e.Doc, I: e.Index}
	}
	if err := w.writeJSON(FullTopKFile, full); err != nil {
		return "", err
	}
	if err := w.writeJSON(ReconstructedFile, reconEntries(res.Reconstructed)); err != nil {
		return "", err
	}
	diff := make([]mismatchEntry, len(res.Mismatches))
	for i, m := range res.Mismatches {
		diff[i] = mismatchEntry{
			Rank:       m.Rank,
			FullDoc:    m.FullDoc,
			FullScore:  Score(m.FullScore),
			ReconDoc:   m.ReconDoc,
			ReconScore: Score(m.ReconScore),
		}
	}
	if err := w.writeJSON(DiffFile, diff); err != nil {
		return "", err
	}

	reportPath := filepath.Join(w.dir, ReportFile)
	if err := writeAtomic(reportPath, []byte(Render(res, w.opts))); err != nil {
		return "", err
	}
	return reportPath, nil
}

func reconEntries(list []ranker.RankedDoc) []reconEntry {
	out := make([]reconEntry, len(list))
	for i, e := range list {
		out[i] = reconEntry{Rank: e.Rank, Score: Score(e.Score), Doc: e.Doc}
	}
	return out
}

// writeJSON keeps non-ASCII and HTML characters literal so documents read
// back exactly as they appear in the corpus.
func (w *Writer) writeJSON(name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err, "encoding %s", name)
	}
	return writeAtomic(filepath.Join(w.dir, name), buf.Bytes())
}

// writeAtomic writes data to a .tmp sibling of finalPath, syncs and closes
// it, then renames it into place. The .tmp file never outlives a failure.
func writeAtomic(finalPath string, data []byte) (err error) {
	tmpPath := finalPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrOutputWrite, err, "creating %s", tmpPath)
	}
	closed := false
	defer func() {
		if !closed {
			f.Close()
		}
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return apperrors.Wrap(apperrors.ErrOutputWrite, err, "writing %s", tmpPath)
	}
	if err := f.Sync(); err != nil {
		return apperrors.Wrap(apperrors.ErrOutputWrite, err, "syncing %s", tmpPath)
	}
	closed = true
	if err := f.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrOutputWrite, err, "closing %s", tmpPath)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return apperrors.Wrap(apperrors.ErrOutputWrite, err, "renaming %s to %s", tmpPath, finalPath)
	}
	return nil
}
