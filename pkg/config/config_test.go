package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1.2, cfg.BM25.K1)
	assert.Equal(t, 0.75, cfg.BM25.B)
	assert.Equal(t, 50, cfg.Check.TopK)
	assert.Equal(t, 80, cfg.Check.PreviewLength)
	assert.Equal(t, 10, cfg.Check.MaxReportedMismatches)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.yaml")
	data := []byte("bm25:\n  k1: 2.0\ncheck:\n  topK: 5\n  workers: 3\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.BM25.K1)
	assert.Equal(t, 0.75, cfg.BM25.B, "unset keys keep their defaults")
	assert.Equal(t, 5, cfg.Check.TopK)
	assert.Equal(t, 3, cfg.Check.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative k1":    "bm25:\n  k1: -1\n",
		"b above one":    "bm25:\n  b: 1.5\n",
		"negative topK":  "check:\n  topK: -3\n",
		"negative pool":  "check:\n  workers: -1\n",
		"malformed yaml": "bm25: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
