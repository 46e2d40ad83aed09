// Package metrics exposes runtime counters via expvar.
package metrics

import "expvar"

var (
	RunsStarted      = expvar.NewInt("runs_started")
	RunsCompleted    = expvar.NewInt("runs_completed")
	RunsFailed       = expvar.NewInt("runs_failed")
	StageFailures    = expvar.NewInt("stage_failures")
	RetriesScheduled = expvar.NewInt("retries_scheduled")
	RowsExtracted    = expvar.NewInt("rows_extracted")
	RowsLoaded       = expvar.NewInt("rows_loaded")
	ReportsWritten   = expvar.NewInt("reports_written")
	ReportsFailed    = expvar.NewInt("reports_failed")
	AlertsDispatched = expvar.NewInt("alerts_dispatched")
	AlertsFailed     = expvar.NewInt("alerts_failed")
)
