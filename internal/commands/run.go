package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pulselab/linkpulse/internal/alert"
	"github.com/pulselab/linkpulse/internal/pipeline"
	"github.com/pulselab/linkpulse/internal/report"
	"github.com/pulselab/linkpulse/internal/snapshot"
	"github.com/pulselab/linkpulse/internal/store"
	"github.com/pulselab/linkpulse/pkg/types"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	var withRetry bool

	cmd := &cobra.Command{
		Use:   "run [date]",
		Short: "Run the full pipeline for a date",
		Long:  "Extracts posts from the database, cleans and derives features, and writes every KPI report. The date defaults to today (UTC).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runPipeline(arg, withRetry)
		},
	}

	cmd.Flags().BoolVar(&withRetry, "retry", false, "Retry per the configured policy on retryable failures")
	return cmd
}

func runPipeline(dateArg string, withRetry bool) error {
	date, err := parseDate(dateArg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	st, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	runner, err := buildRunner(st, cfg, slog.Default())
	if err != nil {
		return err
	}

	var state types.RunState
	if withRetry {
		state, err = runner.RunWithRetry(ctx, date)
	} else {
		state, err = runner.Run(ctx, date)
	}

	printRunState(state)
	return err
}

// buildRunner wires the runner from config: snapshots, report sinks,
// alert sinks.
func buildRunner(st store.Store, cfg *types.ProjectConfig, logger *slog.Logger) (*pipeline.Runner, error) {
	snaps, err := snapshot.NewWriter(cfg.SnapshotDir)
	if err != nil {
		return nil, err
	}

	reports, err := report.NewDispatcher(cfg.Reports)
	if err != nil {
		return nil, fmt.Errorf("creating report sinks: %w", err)
	}

	alerts, err := alert.NewDispatcher(cfg.Alerts, logger)
	if err != nil {
		return nil, fmt.Errorf("creating alert sinks: %w", err)
	}

	return pipeline.NewRunner(st, snaps, reports.Write, alerts.AlertFunc(), cfg, logger), nil
}

func printRunState(state types.RunState) {
	fmt.Println()
	for _, stage := range state.Stages {
		switch stage.Status {
		case types.StageSucceeded:
			color.Green("  ✓ %-10s %d → %d rows (%s)", stage.Stage, stage.RowsIn, stage.RowsOut, stage.Duration.Round(time.Millisecond))
		case types.StageFailed:
			color.Red("  ✗ %-10s %s [%s]", stage.Stage, stage.Error, stage.FailureCategory)
		default:
			color.Yellow("  - %-10s %s", stage.Stage, stage.Status)
		}
	}
	fmt.Println()

	if state.Status == types.RunCompleted {
		color.Green("Run %s completed", state.RunID)
	} else {
		color.Red("Run %s failed", state.RunID)
	}
}
