package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulselab/linkpulse/internal/commands"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "linkpulse",
		Short: "KPI pipeline for scraped LinkedIn post analytics",
		Long: `linkpulse turns raw scraped LinkedIn posts into daily KPI reports.
It loads scrape exports into Postgres, cleans and rebalances the dataset,
derives engagement features, and writes a fixed set of statistical reports
to the configured sinks.`,
		Version: version,
	}

	root.AddCommand(
		commands.NewInitCmd(),
		commands.NewLoadCmd(),
		commands.NewRunCmd(),
		commands.NewStatusCmd(),
		commands.NewServeCmd(),
		commands.NewWatchCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
