// Package app is the command-line entry point shared by bm25equiv and
// bm25equiv-strict. The binaries differ only in the statistics policy they
// pass to Run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/equivalence"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/report"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/bm25-equivalence/pkg/tracing"
)

type options struct {
	full            string
	reduced         string
	counts          string
	queries         []string
	outdir          string
	k               int
	configPath      string
	logLevel        string
	logFormat       string
	metricsTextfile string
	workers         int
}

// ProgramName is the binary name for policy, used in usage output.
func ProgramName(policy equivalence.Policy) string {
	if policy == equivalence.PolicyLocked {
		return "bm25equiv-strict"
	}
	return "bm25equiv"
}

// Run parses args, performs one check and writes its artifacts. On success
// the report path is the only line written to stdout; diagnostics and logs go
// to stderr. The return value is the process exit status.
func Run(args []string, stdout, stderr io.Writer, policy equivalence.Policy) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, args, stdout, stderr, policy)
	switch {
	case err == nil:
		return apperrors.ExitOK
	case errors.Is(err, pflag.ErrHelp):
		return apperrors.ExitOK
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return apperrors.ExitCode(err)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, policy equivalence.Policy) error {
	opts, flagSet, err := parseFlags(args, stderr, policy)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidArgument, err, "loading configuration")
	}
	applyOverrides(cfg, opts, flagSet)
	if err := cfg.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidArgument, err, "checking flags")
	}

	logger.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)
	runID := logger.NewRunID()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx).With("component", "app")
	log.Info("starting check",
		"policy", policy.String(),
		"full", opts.full,
		"reduced", opts.reduced,
		"counts", opts.counts,
		"queries", len(opts.queries),
		"k", cfg.Check.TopK,
	)

	ctx, root := tracing.StartSpan(ctx, "check", runID)
	root.SetAttr("policy", policy.String())

	in, err := loadInputs(ctx, opts)
	if err != nil {
		return err
	}
	in.Queries = opts.queries
	in.K = cfg.Check.TopK

	m := metrics.New(policy.String())
	checker := equivalence.New(policy, equivalence.Options{
		Params:  ranker.Params{K1: cfg.BM25.K1, B: cfg.BM25.B},
		Workers: cfg.Check.Workers,
		Metrics: m,
	})
	res, err := checker.Run(ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err, "check interrupted")
		}
		return apperrors.Wrap(apperrors.ErrInternal, err, "running check")
	}

	_, span := tracing.StartChildSpan(ctx, "write")
	writer := report.NewWriter(opts.outdir, report.RenderOptions{
		PreviewLength: cfg.Check.PreviewLength,
		MaxMismatches: cfg.Check.MaxReportedMismatches,
	})
	reportPath, err := writer.WriteAll(res)
	span.SetAttr("outdir", opts.outdir)
	span.End()
	if err != nil {
		return err
	}
	root.End()

	if cfg.Metrics.Textfile != "" {
		m.ObservePhases(root.Durations())
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return apperrors.Wrap(apperrors.ErrOutputWrite, err, "writing metrics textfile %s", cfg.Metrics.Textfile)
		}
		log.Debug("metrics textfile written", "path", cfg.Metrics.Textfile)
	}
	root.Log(log)

	status := "PASS"
	if !res.Passed() {
		status = "FAIL"
	}
	log.Info("check finished",
		"status", status,
		"mismatches", len(res.Mismatches),
		"report", reportPath,
		"duration_ms", root.Duration.Milliseconds(),
	)
	fmt.Fprintln(stdout, reportPath)
	return nil
}

func parseFlags(args []string, stderr io.Writer, policy equivalence.Policy) (*options, *pflag.FlagSet, error) {
	defaults := config.Default()
	opts := &options{}

	flagSet := pflag.NewFlagSet(ProgramName(policy), pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.full, "full", "", "FULL corpus, one document per line (required)")
	flagSet.StringVar(&opts.reduced, "reduced", "", "REDUCED corpus, one document per line (required)")
	flagSet.StringVar(&opts.counts, "counts", "", "JSON object mapping REDUCED documents to their FULL multiplicity (required)")
	flagSet.StringArrayVar(&opts.queries, "q", nil, "query string; repeat to concatenate terms (required)")
	flagSet.StringVar(&opts.outdir, "outdir", "", "directory for the report and JSON artifacts (required)")
	flagSet.IntVar(&opts.k, "k", defaults.Check.TopK, "number of top-ranked documents to compare")
	flagSet.StringVar(&opts.configPath, "config", "", "optional YAML config file")
	flagSet.StringVar(&opts.logLevel, "log-level", defaults.Logging.Level, "log level: debug, info, warn, error")
	flagSet.StringVar(&opts.logFormat, "log-format", defaults.Logging.Format, "log format: text or json")
	flagSet.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
	flagSet.IntVar(&opts.workers, "workers", defaults.Check.Workers, "scoring goroutines per corpus (0 = GOMAXPROCS)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInvalidArgument, err, "parsing flags")
	}
	if flagSet.NArg() > 0 {
		return nil, nil, apperrors.Newf(apperrors.ErrInvalidArgument, apperrors.ExitUsage,
			"unexpected arguments: %v", flagSet.Args())
	}

	var missing []string
	for _, name := range []string{"full", "reduced", "counts", "outdir"} {
		if v, _ := flagSet.GetString(name); v == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(opts.queries) == 0 {
		missing = append(missing, "--q")
	}
	if len(missing) > 0 {
		fmt.Fprint(stderr, flagSet.FlagUsages())
		return nil, nil, apperrors.Newf(apperrors.ErrInvalidArgument, apperrors.ExitUsage,
			"missing required flags: %v", missing)
	}
	if opts.k < 0 {
		return nil, nil, apperrors.Newf(apperrors.ErrInvalidArgument, apperrors.ExitUsage,
			"--k must be >= 0, got %d", opts.k)
	}
	return opts, flagSet, nil
}

// applyOverrides lets explicitly set flags win over the config file.
func applyOverrides(cfg *config.Config, opts *options, flagSet *pflag.FlagSet) {
	if flagSet.Changed("k") {
		cfg.Check.TopK = opts.k
	}
	if flagSet.Changed("workers") {
		cfg.Check.Workers = opts.workers
	}
	if flagSet.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flagSet.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
	if flagSet.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = opts.metricsTextfile
	}
}

// loadInputs reads the three input files concurrently. Nothing is written
// until all of them have loaded.
func loadInputs(ctx context.Context, opts *options) (equivalence.Input, error) {
	_, span := tracing.StartChildSpan(ctx, "load")
	defer span.End()

	var in equivalence.Input
	var g errgroup.Group
	g.Go(func() error {
		var err error
		in.Full, err = ingestion.LoadCorpus(opts.full)
		return err
	})
	g.Go(func() error {
		var err error
		in.Reduced, err = ingestion.LoadCorpus(opts.reduced)
		return err
	})
	g.Go(func() error {
		var err error
		in.Counts, err = ingestion.LoadCounts(opts.counts)
		return err
	})
	if err := g.Wait(); err != nil {
		return in, err
	}

	span.SetAttr("full_docs", in.Full.Len())
	span.SetAttr("reduced_docs", in.Reduced.Len())
	span.SetAttr("counts", in.Counts.Len())
	logger.FromContext(ctx).Debug("inputs loaded",
		"full_docs", in.Full.Len(),
		"reduced_docs", in.Reduced.Len(),
		"counts", in.Counts.Len(),
	)
	return in, nil
}
