package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DucHai972/Questionnaire/internal/bench"
	"github.com/DucHai972/Questionnaire/internal/dataset"
	"github.com/DucHai972/Questionnaire/internal/encoding"
	"github.com/DucHai972/Questionnaire/internal/llm"
	"github.com/DucHai972/Questionnaire/internal/report"
	"github.com/DucHai972/Questionnaire/internal/store"
)

type runOptions struct {
	datasetName string
	all         bool
	provider    string
	iterations  int
	seed        int64
	dataDir     string
	reportDir   string
	noSave      bool
	quiet       bool
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark matrix",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.datasetName, "dataset", "", "dataset name to benchmark")
	cmd.Flags().BoolVar(&opts.all, "all", false, "benchmark every registered dataset")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "LLM provider: simulated|claude|openai (overrides config)")
	cmd.Flags().IntVar(&opts.iterations, "iterations", -1, "iterations per task/format cell (overrides config)")
	cmd.Flags().Int64Var(&opts.seed, "seed", -1, "base random seed (overrides config)")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "directory holding pre-rendered dataset files (overrides config)")
	cmd.Flags().StringVar(&opts.reportDir, "report-dir", "", "write markdown report and detailed JSON to this directory")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "skip persisting the run")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "suppress per-test progress output")

	return cmd
}

func runBenchmark(cmd *cobra.Command, st *cliState, opts *runOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}

	datasetName := strings.TrimSpace(opts.datasetName)
	switch {
	case opts.all && datasetName != "":
		return fmt.Errorf("run: --all and --dataset are mutually exclusive")
	case !opts.all && datasetName == "":
		return fmt.Errorf("run: specify either --dataset <name> or --all")
	}

	cfg := st.cfg
	dataDir := strings.TrimSpace(opts.dataDir)
	if dataDir == "" {
		dataDir = cfg.Benchmark.DataDir
	}
	iterations := cfg.Benchmark.Iterations
	if opts.iterations > 0 {
		iterations = opts.iterations
	}
	seed := cfg.Benchmark.Seed
	if opts.seed >= 0 {
		seed = opts.seed
	}
	providerName := strings.TrimSpace(opts.provider)
	if providerName == "" {
		providerName = cfg.LLM.DefaultProvider
	}

	provider, err := llm.NewProvider(cfg, providerName, seed)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	registry := dataset.NewRegistry(dataDir)
	names := []string{datasetName}
	if opts.all {
		names = registry.Names()
	}

	var st2 store.Store
	if !opts.noSave {
		st2, err = store.Open(cfg)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer st2.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := &bench.Runner{
		Registry:   registry,
		Encoded:    encoding.NewAccessor(dataDir),
		Provider:   provider,
		Iterations: iterations,
		Seed:       seed,
	}
	if !opts.quiet {
		runner.OnResult = func(res bench.ScoredResult) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-22s %-9s iter %d  score %.3f  (%s)\n",
				res.Task, res.Encoding, res.Iteration+1, res.Score, res.Duration.Round(time.Millisecond))
		}
	}

	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "Benchmarking dataset %q with provider %q (%d iterations, seed %d)\n",
			name, provider.Name(), iterations, seed)

		run, err := runner.Run(ctx, name, iterations)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}

		printSummary(cmd, run)

		if st2 != nil {
			if err := st2.SaveRun(ctx, run); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nRun saved: %s\n", run.ID)
		}
		if dir := strings.TrimSpace(opts.reportDir); dir != "" {
			mdPath, jsonPath, err := report.WriteFiles(run, dir, "")
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\nDetailed data: %s\n", mdPath, jsonPath)
		}
	}

	return nil
}

func printSummary(cmd *cobra.Command, run *bench.RunSummary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\nFormat ranking for %s (%d tests):\n", run.Dataset, len(run.Results))
	for i, enc := range run.Ranking {
		fmt.Fprintf(out, "  %d. %-9s %.3f\n", i+1, strings.ToUpper(string(enc)), run.EncodingAverages[enc])
	}

	fmt.Fprintln(out, "\nTask summaries:")
	for _, ts := range run.Tasks {
		fmt.Fprintf(out, "  %-28s avg %.3f  best %s (%.3f)  worst %s (%.3f)\n",
			ts.Task.Title(), ts.Average,
			strings.ToUpper(string(ts.Best)), ts.EncodingScores[ts.Best],
			strings.ToUpper(string(ts.Worst)), ts.EncodingScores[ts.Worst])
	}
}
