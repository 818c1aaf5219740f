package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/squadplan/squadplan/core/metrics"
	"github.com/squadplan/squadplan/core/planner"
	"github.com/squadplan/squadplan/core/solve"
	"github.com/squadplan/squadplan/infra/logger"
	inframetrics "github.com/squadplan/squadplan/infra/metrics"
	"github.com/squadplan/squadplan/infra/roster"
	"github.com/squadplan/squadplan/pkg/export"
)

var (
	rosterPath string
	outPath    string
	outFormat  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the week's schedule for the current roster",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&rosterPath, "roster", "", "roster file (overrides the configured path)")
	generateCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout when omitted)")
	generateCmd.Flags().StringVarP(&outFormat, "format", "f", "table", "output format: table, json or csv")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Logging.Apply()
	logg := logger.New("generate")

	cal, err := cfg.Coverage.Calendar()
	if err != nil {
		return err
	}

	var sink metrics.Sink = metrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		prom, err := inframetrics.NewPromSink()
		if err != nil {
			return fmt.Errorf("prometheus sink: %w", err)
		}
		sink = prom
		go func() {
			if err := inframetrics.StartPromServer(ctx, cfg.Metrics.PrometheusAddr); err != nil {
				logg.Errorf("metrics server: %v", err)
			}
		}()
	}

	path := cfg.Roster.Path
	if rosterPath != "" {
		path = rosterPath
	}
	staff, err := roster.NewStore(path).Load()
	if err != nil {
		return err
	}

	engine := solve.NewSearchEngine(cfg.Solver, logg)
	pl := planner.New(cal, cfg.Rules, engine, logg, sink)

	outcome, err := pl.Generate(ctx, staff)
	if errors.Is(err, planner.ErrNoSchedule) {
		fmt.Fprintln(cmd.ErrOrStderr(), "no schedule satisfies the active rules; relax a rule or adjust the roster")
		return err
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logg.Errorf("close %s: %v", outPath, cerr)
			}
		}()
		out = f
	}

	switch outFormat {
	case "table":
		return renderWeek(out, outcome)
	case "json":
		return export.WriteJSON(out, outcome.Week)
	case "csv":
		if err := export.WriteCSV(out, outcome.Week); err != nil {
			return err
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
		return export.WriteCountsCSV(out, outcome.Week)
	default:
		return fmt.Errorf("unknown format %q", outFormat)
	}
}
