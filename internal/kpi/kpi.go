// Package kpi implements the aggregation engine: independent statistical
// reports computed over one immutable feature table.
package kpi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pulselab/linkpulse/internal/metrics"
	"github.com/pulselab/linkpulse/pkg/types"
)

// WriteFunc persists one finished report. Implementations must be safe for
// concurrent use; each report targets a distinct output location.
type WriteFunc func(ctx context.Context, report types.Report) error

// Options tunes the aggregation thresholds and ranking cutoffs.
type Options struct {
	EngagementQuantile float64 // default 0.9
	TopHashtags        int     // default 15
	HashtagImpactRows  int     // default 10
	Concurrency        int     // max reports in flight; default 4
}

func (o Options) withDefaults() Options {
	if o.EngagementQuantile == 0 {
		o.EngagementQuantile = 0.9
	}
	if o.TopHashtags == 0 {
		o.TopHashtags = 15
	}
	if o.HashtagImpactRows == 0 {
		o.HashtagImpactRows = 10
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	return o
}

// Aggregator computes every KPI report for a feature table and hands each
// one to a write function.
type Aggregator struct {
	write  WriteFunc
	opts   Options
	logger *slog.Logger
}

// New creates an Aggregator.
func New(write WriteFunc, opts Options, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{write: write, opts: opts.withDefaults(), logger: logger}
}

// Run computes and writes all reports for one feature table. Reports are
// independent reads of the same table and run concurrently; the first
// failure cancels the remaining computations and fails the whole pass.
// Reports already written stay written; the pass is atomic per report
// file, not across reports.
func (a *Aggregator) Run(ctx context.Context, runID string, rows []types.FeatureRow) error {
	// Populations are materialized once, up front. The high-engagement
	// population comes from re-encoding the full table, not from the
	// transform-time category column.
	encoded := EncodeEngagement(rows, a.opts.EngagementQuantile)
	fort := HighEngagement(encoded)
	viral := Viral(rows)

	a.logger.Info("aggregation pass starting",
		"run_id", runID,
		"rows", len(rows),
		"high_engagement", len(fort),
		"viral", len(viral))

	jobs := []struct {
		name    string
		compute func() interface{}
	}{
		{types.ReportVolumeSummary, func() interface{} { return Volume(rows, fort, viral) }},
		{types.ReportEngagementTierProfile, func() interface{} { return TierProfile(encoded) }},
		{types.ReportViralityProfile, func() interface{} { return ViralityProfile(rows) }},
		{types.ReportHashtagImpact, func() interface{} { return HashtagImpact(rows, a.opts.HashtagImpactRows) }},
		{types.ReportTopHashtagsViral, func() interface{} { return TopHashtags(viral, a.opts.TopHashtags) }},
		{types.ReportTopHashtagsEngagement, func() interface{} { return TopHashtags(fort, a.opts.TopHashtags) }},
		{types.ReportThemesViral, func() interface{} { return ThemeDistribution(viral) }},
		{types.ReportThemesEngagement, func() interface{} { return ThemeDistribution(fort) }},
		{types.ReportViralTiming, func() interface{} { return TemporalEngagement(viral) }},
		{types.ReportViralSharesTiming, func() interface{} { return TemporalShares(viral) }},
		{types.ReportEngagementTiming, func() interface{} { return TemporalEngagement(fort) }},
		{types.ReportEngagementSharesTiming, func() interface{} { return TemporalShares(fort) }},
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)

	for _, job := range jobs {
		g.Go(func() error {
			// A failed sibling cancels the group; skip work that would be
			// thrown away.
			if err := ctx.Err(); err != nil {
				return err
			}
			rep := types.Report{
				Name:        job.name,
				RunID:       runID,
				GeneratedAt: time.Now().UTC(),
				Rows:        job.compute(),
			}
			if err := a.write(ctx, rep); err != nil {
				metrics.ReportsFailed.Add(1)
				return fmt.Errorf("writing report %s: %w", job.name, err)
			}
			metrics.ReportsWritten.Add(1)
			a.logger.Debug("report written", "report", job.name, "run_id", runID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("aggregation pass aborted: %w", err)
	}
	return nil
}
