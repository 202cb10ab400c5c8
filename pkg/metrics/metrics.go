// Package metrics defines the Prometheus collectors describing one checker
// run and exports them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for a single run on a private registry.
type Metrics struct {
	Registry         *prometheus.Registry
	CorpusDocuments  *prometheus.GaugeVec
	DocumentsScored  *prometheus.CounterVec
	TopKEntries      *prometheus.GaugeVec
	Mismatches       prometheus.Gauge
	CheckPassed      prometheus.Gauge
	PhaseDuration    *prometheus.GaugeVec
	LastRunTimestamp prometheus.Gauge
}

// New creates and registers the run metrics. policy is attached as a constant
// label so the two binaries can share one textfile directory.
func New(policy string) *Metrics {
	constLabels := prometheus.Labels{"policy": policy}
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		CorpusDocuments: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "bm25_equiv_corpus_documents",
				Help:        "Documents loaded per corpus after normalization.",
				ConstLabels: constLabels,
			},
			[]string{"corpus"},
		),
		DocumentsScored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "bm25_equiv_documents_scored_total",
				Help:        "Documents scored per corpus.",
				ConstLabels: constLabels,
			},
			[]string{"corpus"},
		),
		TopKEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "bm25_equiv_topk_entries",
				Help:        "Entries in each ranked list (full, reconstructed).",
				ConstLabels: constLabels,
			},
			[]string{"list"},
		),
		Mismatches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "bm25_equiv_mismatches",
				Help:        "Ranks at which full and reconstructed document identity differ.",
				ConstLabels: constLabels,
			},
		),
		CheckPassed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "bm25_equiv_check_passed",
				Help:        "1 if the last check passed, 0 if it failed.",
				ConstLabels: constLabels,
			},
		),
		PhaseDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "bm25_equiv_phase_duration_seconds",
				Help:        "Wall time spent in each phase of the last run.",
				ConstLabels: constLabels,
			},
			[]string{"phase"},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "bm25_equiv_last_run_timestamp_seconds",
				Help:        "Unix time the last run finished.",
				ConstLabels: constLabels,
			},
		),
	}

	m.Registry.MustRegister(
		m.CorpusDocuments,
		m.DocumentsScored,
		m.TopKEntries,
		m.Mismatches,
		m.CheckPassed,
		m.PhaseDuration,
		m.LastRunTimestamp,
	)

	return m
}

// ObservePhases records one gauge sample per phase.
func (m *Metrics) ObservePhases(durations map[string]time.Duration) {
	for phase, d := range durations {
		m.PhaseDuration.WithLabelValues(phase).Set(d.Seconds())
	}
}

// WriteTextfile writes the registry to path atomically, as expected by the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	m.LastRunTimestamp.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, m.Registry)
}
