// Package pipeline orchestrates one analytics run: extract posts from the
// store, clean and derive features, then fan out the KPI reports.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sony/gobreaker"

	"github.com/pulselab/linkpulse/internal/kpi"
	"github.com/pulselab/linkpulse/internal/metrics"
	"github.com/pulselab/linkpulse/internal/snapshot"
	"github.com/pulselab/linkpulse/internal/store"
	"github.com/pulselab/linkpulse/internal/transform"
	"github.com/pulselab/linkpulse/pkg/types"
)

// Snapshot names for the two stage handoffs.
const (
	SnapshotCleaned  = "cleaned"
	SnapshotFeatures = "features"
)

// AlertFunc receives failure notifications from the runner.
type AlertFunc func(ctx context.Context, alert types.Alert)

// Runner executes pipeline runs against a store and a report writer.
type Runner struct {
	store   store.Store
	snaps   *snapshot.Writer
	write   kpi.WriteFunc
	alert   AlertFunc
	cfg     *types.ProjectConfig
	logger  *slog.Logger
	breaker *gobreaker.CircuitBreaker
}

// NewRunner creates a Runner. The alert function may be nil.
func NewRunner(st store.Store, snaps *snapshot.Writer, write kpi.WriteFunc, alert AlertFunc, cfg *types.ProjectConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if alert == nil {
		alert = func(context.Context, types.Alert) {}
	}
	return &Runner{
		store:  st,
		snaps:  snaps,
		write:  write,
		alert:  alert,
		cfg:    cfg,
		logger: logger,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "store",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Run executes one full pipeline run for the given date (YYYY-MM-DD) and
// returns the run state with one StageResult per executed stage. The
// returned error is non-nil when any stage failed.
func (r *Runner) Run(ctx context.Context, date string) (types.RunState, error) {
	runID := ulid.Make().String()
	metrics.RunsStarted.Add(1)

	state := types.RunState{
		RunID:     runID,
		Date:      date,
		Status:    types.RunRunning,
		StartedAt: time.Now().UTC(),
	}
	attempt := r.nextAttempt(ctx, date)
	r.recordRunLog(ctx, state, attempt, nil)

	logger := r.logger.With("run_id", runID, "date", date, "attempt", attempt)
	logger.Info("pipeline run starting")

	posts, res := r.extract(ctx)
	state.Stages = append(state.Stages, res)
	if res.Status == types.StageFailed {
		return r.fail(ctx, state, attempt, res, logger)
	}

	features, results := r.transform(ctx, posts)
	state.Stages = append(state.Stages, results...)
	if last := state.Stages[len(state.Stages)-1]; last.Status == types.StageFailed {
		return r.fail(ctx, state, attempt, last, logger)
	}

	res = r.aggregate(ctx, runID, features)
	state.Stages = append(state.Stages, res)
	if res.Status == types.StageFailed {
		return r.fail(ctx, state, attempt, res, logger)
	}

	state.Status = types.RunCompleted
	state.CompletedAt = time.Now().UTC()
	r.recordRunLog(ctx, state, attempt, nil)
	metrics.RunsCompleted.Add(1)
	logger.Info("pipeline run completed",
		"rows", res.RowsIn,
		"duration", state.CompletedAt.Sub(state.StartedAt))
	return state, nil
}

// RunWithRetry runs the pipeline for a date, retrying per the configured
// policy when the failure category allows it.
func (r *Runner) RunWithRetry(ctx context.Context, date string) (types.RunState, error) {
	policy := r.cfg.Retry
	var state types.RunState
	var err error

	for attempt := 1; ; attempt++ {
		state, err = r.Run(ctx, date)
		if err == nil {
			return state, nil
		}

		category := Classify(err)
		if attempt >= policy.MaxAttempts || !IsRetryable(policy, category) {
			return state, err
		}

		backoff := CalculateBackoff(policy, attempt)
		metrics.RetriesScheduled.Add(1)
		r.logger.Warn("run failed, retrying",
			"date", date,
			"attempt", attempt,
			"category", category,
			"backoff", backoff,
			"error", err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

func (r *Runner) extract(ctx context.Context) ([]types.Post, types.StageResult) {
	res := types.StageResult{Stage: types.StageExtract, StartedAt: time.Now().UTC()}

	out, err := r.breaker.Execute(func() (interface{}, error) {
		return r.store.FetchPosts(ctx)
	})
	res.Duration = time.Since(res.StartedAt)
	if err != nil {
		return nil, r.failStage(res, &StageError{
			Stage:    types.StageExtract,
			Category: Classify(err),
			Err:      err,
		})
	}

	posts := out.([]types.Post)
	res.Status = types.StageSucceeded
	res.RowsIn = len(posts)
	res.RowsOut = len(posts)
	metrics.RowsExtracted.Add(int64(len(posts)))
	return posts, res
}

// transform runs cleaning and feature derivation, snapshotting each
// handoff table.
func (r *Runner) transform(ctx context.Context, posts []types.Post) ([]types.FeatureRow, []types.StageResult) {
	res := types.StageResult{Stage: types.StageTransform, StartedAt: time.Now().UTC(), RowsIn: len(posts)}

	var src *rand.Rand
	if seed := r.cfg.Sampling.Seed; seed != 0 {
		src = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
	cleaned, err := transform.Clean(posts, transform.CleanOptions{
		SampledTheme: r.cfg.Sampling.Theme,
		SampleCap:    r.cfg.Sampling.Cap,
		Rand:         src,
	})
	if err != nil {
		return nil, []types.StageResult{r.failStage(res, &StageError{
			Stage: types.StageTransform, Category: types.FailureUpstream, Err: err,
		})}
	}

	features, err := transform.DeriveFeatures(cleaned, transform.FeatureOptions{
		ViralQuantile:      r.cfg.KPI.ViralQuantile,
		EngagementQuantile: r.cfg.KPI.EngagementQuantile,
	})
	if err != nil {
		return nil, []types.StageResult{r.failStage(res, &StageError{
			Stage: types.StageTransform, Category: types.FailureUpstream, Err: err,
		})}
	}

	if r.snaps != nil {
		if err := snapshot.Write(r.snaps, SnapshotCleaned, cleaned); err != nil {
			return nil, []types.StageResult{r.failStage(res, &StageError{
				Stage: types.StageTransform, Category: types.FailureTransient, Err: err,
			})}
		}
		if err := snapshot.Write(r.snaps, SnapshotFeatures, features); err != nil {
			return nil, []types.StageResult{r.failStage(res, &StageError{
				Stage: types.StageTransform, Category: types.FailureTransient, Err: err,
			})}
		}
	}

	res.Status = types.StageSucceeded
	res.RowsOut = len(features)
	res.Duration = time.Since(res.StartedAt)
	return features, []types.StageResult{res}
}

func (r *Runner) aggregate(ctx context.Context, runID string, rows []types.FeatureRow) types.StageResult {
	res := types.StageResult{Stage: types.StageAggregate, StartedAt: time.Now().UTC(), RowsIn: len(rows)}

	agg := kpi.New(r.write, kpi.Options{
		EngagementQuantile: r.cfg.KPI.EngagementQuantile,
		TopHashtags:        r.cfg.KPI.TopHashtags,
		HashtagImpactRows:  r.cfg.KPI.HashtagImpactRows,
	}, r.logger)
	if err := agg.Run(ctx, runID, rows); err != nil {
		return r.failStage(res, &StageError{
			Stage:    types.StageAggregate,
			Category: Classify(err),
			Err:      err,
		})
	}

	res.Status = types.StageSucceeded
	res.RowsOut = len(types.ReportNames)
	res.Duration = time.Since(res.StartedAt)
	return res
}

func (r *Runner) failStage(res types.StageResult, err *StageError) types.StageResult {
	res.Status = types.StageFailed
	res.Error = err.Error()
	res.FailureCategory = err.Category
	if res.Duration == 0 {
		res.Duration = time.Since(res.StartedAt)
	}
	metrics.StageFailures.Add(1)
	return res
}

// fail finalizes a failed run: run log, metrics, alert.
func (r *Runner) fail(ctx context.Context, state types.RunState, attempt int, res types.StageResult, logger *slog.Logger) (types.RunState, error) {
	state.Status = types.RunFailed
	state.CompletedAt = time.Now().UTC()
	metrics.RunsFailed.Add(1)

	err := &StageError{
		Stage:    res.Stage,
		Category: res.FailureCategory,
		Err:      fmt.Errorf("%s", res.Error),
	}
	logger.Error("pipeline run failed",
		"stage", res.Stage,
		"category", res.FailureCategory,
		"error", res.Error)

	r.alert(ctx, types.Alert{
		Level:     types.AlertLevelError,
		Stage:     res.Stage,
		RunID:     state.RunID,
		Message:   fmt.Sprintf("run for %s failed in %s stage: %s", state.Date, res.Stage, res.Error),
		Timestamp: time.Now().UTC(),
	})
	r.recordRunLog(ctx, state, attempt, err)
	return state, err
}

func (r *Runner) nextAttempt(ctx context.Context, date string) int {
	entry, err := r.store.GetRunLog(ctx, date)
	if err != nil {
		return 1
	}
	return entry.AttemptNumber + 1
}

func (r *Runner) recordRunLog(ctx context.Context, state types.RunState, attempt int, runErr *StageError) {
	entry := types.RunLogEntry{
		Date:          state.Date,
		Status:        state.Status,
		AttemptNumber: attempt,
		RunID:         state.RunID,
		StartedAt:     state.StartedAt,
		UpdatedAt:     time.Now().UTC(),
	}
	if !state.CompletedAt.IsZero() {
		t := state.CompletedAt
		entry.CompletedAt = &t
	}
	if runErr != nil {
		entry.FailureMessage = runErr.Error()
		entry.FailureCategory = runErr.Category
		entry.AlertSent = true
	}
	if err := r.store.UpsertRunLog(ctx, entry); err != nil {
		r.logger.Error("recording run log failed", "date", state.Date, "error", err)
	}
}
