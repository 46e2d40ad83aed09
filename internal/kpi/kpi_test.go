package kpi

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulselab/linkpulse/pkg/types"
)

func aggregatorInput(n int) []types.FeatureRow {
	rows := make([]types.FeatureRow, n)
	for i := range rows {
		rows[i] = types.FeatureRow{
			Post: types.Post{
				ID:     int64(i + 1),
				Theme:  "IA",
				Shares: i,
				Date:   time.Date(2026, 8, 3, i%24, 0, 0, 0, time.UTC),
			},
			EngagementTotal: i * 3,
			TextLength:      5,
			DayOfWeek:       1 + i%7,
			Hour:            i % 24,
			Hashtags:        "#go",
			NbrHashtags:     1,
			IsViral:         i >= n-n/10,
		}
	}
	return rows
}

type reportCollector struct {
	mu      sync.Mutex
	reports map[string]types.Report
}

func newReportCollector() *reportCollector {
	return &reportCollector{reports: map[string]types.Report{}}
}

func (c *reportCollector) write(_ context.Context, rep types.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[rep.Name] = rep
	return nil
}

func TestAggregator_WritesEveryReport(t *testing.T) {
	collector := newReportCollector()
	agg := New(collector.write, Options{}, nil)

	err := agg.Run(context.Background(), "run-1", aggregatorInput(100))
	require.NoError(t, err)

	require.Len(t, collector.reports, len(types.ReportNames))
	for _, name := range types.ReportNames {
		rep, ok := collector.reports[name]
		require.True(t, ok, "missing report %s", name)
		assert.Equal(t, "run-1", rep.RunID)
		assert.False(t, rep.GeneratedAt.IsZero())
	}

	volume, ok := collector.reports[types.ReportVolumeSummary].Rows.(types.VolumeSummary)
	require.True(t, ok)
	assert.Equal(t, 100, volume.TotalPosts)
	assert.Equal(t, 10, volume.ViralPosts)
}

func TestAggregator_EmptyTableStillWritesReports(t *testing.T) {
	collector := newReportCollector()
	agg := New(collector.write, Options{}, nil)

	err := agg.Run(context.Background(), "run-1", nil)
	require.NoError(t, err)
	require.Len(t, collector.reports, len(types.ReportNames))

	volume := collector.reports[types.ReportVolumeSummary].Rows.(types.VolumeSummary)
	assert.Equal(t, types.VolumeSummary{}, volume)
}

func TestAggregator_AbortsOnWriteFailure(t *testing.T) {
	wantErr := errors.New("sink unavailable")
	var calls int
	var mu sync.Mutex
	write := func(context.Context, types.Report) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return wantErr
	}

	agg := New(write, Options{Concurrency: 1}, nil)
	err := agg.Run(context.Background(), "run-1", aggregatorInput(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)

	mu.Lock()
	defer mu.Unlock()
	assert.Less(t, calls, len(types.ReportNames), "remaining reports must be cancelled after the first failure")
}

func TestAggregator_HighEngagementIsRecomputed(t *testing.T) {
	// Feed rows whose transform-time category is deliberately wrong; the
	// aggregator must re-encode rather than trust the column.
	rows := aggregatorInput(100)
	for i := range rows {
		rows[i].EngagementCategory = types.EngagementHigh
	}

	collector := newReportCollector()
	agg := New(collector.write, Options{}, nil)
	require.NoError(t, agg.Run(context.Background(), "run-1", rows))

	volume := collector.reports[types.ReportVolumeSummary].Rows.(types.VolumeSummary)
	assert.Equal(t, 10, volume.HighEngagementPosts)
}
