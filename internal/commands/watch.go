package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the pipeline daily at the scheduled time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}
}

func runWatch() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.Schedule == nil {
		return fmt.Errorf("schedule is not configured")
	}

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	runner, err := buildRunner(st, cfg, slog.Default())
	if err != nil {
		return err
	}

	err = runner.Watch(ctx, *cfg.Schedule)
	if errors.Is(err, context.Canceled) {
		color.Yellow("\nWatch loop stopped")
		return nil
	}
	return err
}
