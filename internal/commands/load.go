package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pulselab/linkpulse/internal/metrics"
	"github.com/pulselab/linkpulse/internal/store"
)

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [file]",
		Short: "Load a scrape export into the posts table",
		Long:  "Reads a JSON or JSONL scrape export, coerces missing fields, and inserts new posts. Already-loaded ids are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args[0])
		},
	}
}

func runLoad(path string) error {
	raw, err := readRawPosts(path)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		color.Yellow("No posts found in %s", path)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	posts := store.CoercePosts(raw)
	inserted, err := st.InsertPosts(ctx, posts)
	if err != nil {
		return fmt.Errorf("loading posts: %w", err)
	}
	metrics.RowsLoaded.Add(int64(inserted))

	color.Green("✓ Loaded %d posts (%d new, %d already present)", len(posts), inserted, len(posts)-inserted)
	return nil
}
