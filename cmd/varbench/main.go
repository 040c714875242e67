// Package main provides the CLI entry point for varbench, a decode
// throughput harness for LEB128 varint streams.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/weiihann/varbench/config"
	"github.com/weiihann/varbench/harness"
	"github.com/weiihann/varbench/report"
	"github.com/weiihann/varbench/stream"
	"github.com/weiihann/varbench/varint"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)
	if err := root.Execute(); err != nil {
		logger.Error("benchmark aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var (
		envFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:   "varbench",
		Short: "Varint decode throughput benchmark",
		Long: `Varbench decodes pre-generated LEB128 streams from FS_BENCH_DATA_DIR
and reports nanoseconds per value, bytes per value and GiB/s for each
scenario. Running without a subcommand is the same as "varbench run".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				level.Set(slog.LevelDebug)
			}

			return config.LoadEnvFile(envFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFromFlags(cmd, logger)
		},
	}

	persistent := root.PersistentFlags()
	persistent.StringVar(&envFile, "env-file", ".env",
		"Dotenv file loaded before reading the environment (skipped if absent)")
	persistent.BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	addRunFlags(root.Flags())

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newScenariosCmd())

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every decode scenario",
		Long: `Load each scenario stream, decode it ITERS times and print one
result line per scenario. Any missing or truncated data file aborts the
run before results are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFromFlags(cmd, logger)
		},
	}

	addRunFlags(cmd.Flags())

	return cmd
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List benchmark scenarios and their data files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, s := range harness.Scenarios() {
				if _, err := fmt.Fprintf(out, "%s\t%s\t%s%s\n",
					s.Name, s.Width, s.Name, stream.Ext); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.String("data-dir", "",
		"Directory holding <scenario>.bin files (env FS_BENCH_DATA_DIR)")
	flags.Int("iters", 0,
		fmt.Sprintf("Iterations per scenario (env ITERS, default %d)",
			config.DefaultIterations))
	flags.String("impl", string(varint.Dennwc),
		fmt.Sprintf("Decoder implementation %v (env VARBENCH_IMPL)",
			varint.Impls()))
	flags.String("textfile", "",
		"Also write metrics to this Prometheus textfile")
}

func runFromFlags(cmd *cobra.Command, logger *slog.Logger) error {
	v, err := config.New(cmd.Flags())
	if err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	return runBenchmark(cmd.Context(), logger, cmd.OutOrStdout(), cfg)
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	out io.Writer,
	cfg config.Config,
) error {
	scenarios := harness.Scenarios()

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("data_dir", cfg.DataDir),
		slog.Int("iterations", cfg.Iterations),
		slog.String("impl", string(cfg.Impl)),
		slog.Int("scenarios", len(scenarios)),
	)

	// Fail on a broken data directory before anything reaches stdout.
	counts, err := harness.Preflight(cfg.DataDir, scenarios)
	if err != nil {
		return fmt.Errorf("preflight: %w", err)
	}

	for i, s := range scenarios {
		logger.DebugContext(ctx, "scenario file ready",
			slog.String("path", harness.ResolvePath(cfg.DataDir, s)),
			slog.Uint64("records", counts[i]),
		)
	}

	if err := report.WriteBanner(out, report.Banner{
		DataDir:    cfg.DataDir,
		Iterations: cfg.Iterations,
	}); err != nil {
		return fmt.Errorf("write banner: %w", err)
	}

	runner := harness.NewRunner(cfg.Impl, cfg.Iterations, logger)
	results := make([]report.Stats, 0, len(scenarios))

	for _, s := range scenarios {
		st, err := stream.Load(cfg.DataDir, s.Name)
		if err != nil {
			return err
		}

		totals, err := runner.Run(ctx, s, st)
		if err != nil {
			return err
		}

		stats := report.Compute(*totals)
		if err := report.WriteLine(out, stats); err != nil {
			return fmt.Errorf("write result: %w", err)
		}

		logger.InfoContext(ctx, "scenario complete",
			slog.String("scenario", s.Name),
			slog.Uint64("values", stats.Values),
			slog.String("decoded", report.FormatBytes(stats.TotalBytes)),
			slog.Float64("ns_per_value", stats.NsPerValue),
		)

		results = append(results, stats)
	}

	if cfg.Textfile != "" {
		if err := report.WriteTextfile(cfg.Textfile, results); err != nil {
			return err
		}

		logger.InfoContext(ctx, "metrics written",
			slog.String("path", cfg.Textfile),
		)
	}

	logger.InfoContext(ctx, "benchmark complete")

	return nil
}
