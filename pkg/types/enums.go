package types

// EngagementCategory is the two-tier engagement classification. The labels
// are the canonical dataset values and flow through to report output.
type EngagementCategory string

// EngagementCategory values. "Fort" marks posts whose total engagement is
// at or above the 90th percentile of the population being classified.
const (
	EngagementHigh EngagementCategory = "Fort"
	EngagementLow  EngagementCategory = "Faible"
)

// Stage identifies one pipeline stage.
type Stage string

// Stage values in execution order.
const (
	StageExtract   Stage = "extract"
	StageTransform Stage = "transform"
	StageAggregate Stage = "aggregate"
)

// StageStatus is the outcome of a single stage.
type StageStatus string

const (
	StageSucceeded StageStatus = "SUCCEEDED"
	StageFailed    StageStatus = "FAILED"
	StageSkipped   StageStatus = "SKIPPED"
)

// RunStatus represents the lifecycle state of a pipeline run.
type RunStatus string

// RunStatus values represent the lifecycle states of a pipeline run.
const (
	RunPending   RunStatus = "PENDING"
	RunRunning   RunStatus = "RUNNING"
	RunCompleted RunStatus = "COMPLETED"
	RunFailed    RunStatus = "FAILED"
)

// FailureCategory classifies why a stage failed, and drives retry decisions.
type FailureCategory string

const (
	FailureTransient FailureCategory = "TRANSIENT"
	FailurePermanent FailureCategory = "PERMANENT"
	FailureTimeout   FailureCategory = "TIMEOUT"
	FailureUpstream  FailureCategory = "UPSTREAM_DATA"
)

// SinkType defines the report sink type.
type SinkType string

// SinkType values enumerate the supported report sink backends.
const (
	SinkFile     SinkType = "file"
	SinkConsole  SinkType = "console"
	SinkS3       SinkType = "s3"
	SinkDynamoDB SinkType = "dynamodb"
)

// AlertType defines the alert sink type.
type AlertType string

// AlertType values enumerate the supported alert sink backends.
const (
	AlertConsole AlertType = "console"
	AlertWebhook AlertType = "webhook"
	AlertFile    AlertType = "file"
	AlertSNS     AlertType = "sns"
)

// AlertLevel is the severity of a dispatched alert.
type AlertLevel string

const (
	AlertLevelError   AlertLevel = "error"
	AlertLevelWarning AlertLevel = "warning"
	AlertLevelInfo    AlertLevel = "info"
)
