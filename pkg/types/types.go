// Package types defines the public domain types for the linkpulse KPI pipeline.
package types

import "time"

// Post is one scraped social-media post as persisted in the posts table.
// Numeric columns default to 0 and Text to "N/A" when the scrape left them
// empty, matching what the loader writes.
type Post struct {
	ID         int64     `json:"id"`
	Author     string    `json:"author,omitempty"`
	AuthorLink string    `json:"author_link,omitempty"`
	Text       string    `json:"text"`
	Date       time.Time `json:"date"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Shares     int       `json:"shares"`
	Followers  int       `json:"followers"`
	Theme      string    `json:"theme"`
}

// FeatureRow is a Post plus the derived analytical columns. It is a
// disposable artifact recomputed on every run, never updated in place.
type FeatureRow struct {
	Post

	EngagementTotal    int                `json:"engagement_total"`
	TextLength         int                `json:"text_length"`
	DayOfWeek          int                `json:"day_of_week"` // ISO weekday, 1=Monday .. 7=Sunday
	Hour               int                `json:"hour"`        // 0..23
	Hashtags           string             `json:"hashtags"`    // space-joined #tokens from Text
	NbrHashtags        int                `json:"nbr_hashtags"`
	IsViral            bool               `json:"is_viral"`
	EngagementCategory EngagementCategory `json:"engagement_category"`
}

// Report is one self-contained aggregation output, written independently
// of all other reports.
type Report struct {
	Name        string      `json:"name"`
	RunID       string      `json:"run_id,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	Rows        interface{} `json:"rows"`
}

// StageResult is the explicit outcome of one pipeline stage. The runner
// records one per stage instead of inferring failure from logs.
type StageResult struct {
	Stage           Stage           `json:"stage"`
	Status          StageStatus     `json:"status"`
	RowsIn          int             `json:"rows_in"`
	RowsOut         int             `json:"rows_out"`
	Error           string          `json:"error,omitempty"`
	FailureCategory FailureCategory `json:"failure_category,omitempty"`
	StartedAt       time.Time       `json:"started_at"`
	Duration        time.Duration   `json:"duration"`
}

// RunState tracks one pipeline execution from extract to aggregate.
type RunState struct {
	RunID       string        `json:"run_id"`
	Date        string        `json:"date"` // YYYY-MM-DD the run covers
	Status      RunStatus     `json:"status"`
	Stages      []StageResult `json:"stages"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at,omitempty"`
}

// RunLogEntry is the durable per-date record of pipeline attempts.
type RunLogEntry struct {
	Date            string          `json:"date"`
	Status          RunStatus       `json:"status"`
	AttemptNumber   int             `json:"attempt_number"`
	RunID           string          `json:"run_id"`
	FailureMessage  string          `json:"failure_message,omitempty"`
	FailureCategory FailureCategory `json:"failure_category,omitempty"`
	AlertSent       bool            `json:"alert_sent"`
	StartedAt       time.Time       `json:"started_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Alert is a pipeline failure notification dispatched to alert sinks.
type Alert struct {
	Level     AlertLevel `json:"level"`
	Stage     Stage      `json:"stage,omitempty"`
	RunID     string     `json:"run_id,omitempty"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
}
