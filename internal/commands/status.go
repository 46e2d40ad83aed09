package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pulselab/linkpulse/internal/store"
	"github.com/pulselab/linkpulse/pkg/types"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "status [date]",
		Short: "Show recent runs, or the run for one date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := ""
			if len(args) > 0 {
				date = args[0]
			}
			return runStatus(date, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	return cmd
}

func runStatus(date string, limit int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if date != "" {
		if _, err := parseDate(date); err != nil {
			return err
		}
		return showRun(ctx, st, date)
	}
	return showRecentRuns(ctx, st, limit)
}

func showRecentRuns(ctx context.Context, st store.Store, limit int) error {
	entries, err := st.ListRunLogs(ctx, limit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	bold := color.New(color.Bold)
	_, _ = bold.Println("Recent Runs:")
	fmt.Println()

	for _, e := range entries {
		fmt.Printf("  %s  %-10s attempt=%d  %s\n",
			e.Date, colorStatus(e.Status), e.AttemptNumber, e.RunID)
	}
	fmt.Println()
	return nil
}

func showRun(ctx context.Context, st store.Store, date string) error {
	entry, err := st.GetRunLog(ctx, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no run recorded for %s", date)
		}
		return err
	}

	bold := color.New(color.Bold)
	_, _ = bold.Printf("Run for %s\n", entry.Date)
	fmt.Printf("  Status:    %s\n", colorStatus(entry.Status))
	fmt.Printf("  Run ID:    %s\n", entry.RunID)
	fmt.Printf("  Attempts:  %d\n", entry.AttemptNumber)
	fmt.Printf("  Started:   %s\n", entry.StartedAt.Format(time.RFC3339))
	if entry.CompletedAt != nil {
		fmt.Printf("  Completed: %s\n", entry.CompletedAt.Format(time.RFC3339))
	}
	if entry.FailureMessage != "" {
		fmt.Println()
		color.Red("  Failure [%s]: %s", entry.FailureCategory, entry.FailureMessage)
		if entry.AlertSent {
			fmt.Println("  Alert dispatched.")
		}
	}
	fmt.Println()
	return nil
}

func colorStatus(status types.RunStatus) string {
	switch status {
	case types.RunCompleted:
		return color.GreenString(string(status))
	case types.RunFailed:
		return color.RedString(string(status))
	case types.RunRunning:
		return color.CyanString(string(status))
	default:
		return string(status)
	}
}
