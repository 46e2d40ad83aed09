package types

// DatabaseConfig points the pipeline at the raw-post store.
type DatabaseConfig struct {
	DSN          string `yaml:"dsn,omitempty" json:"dsn,omitempty"`
	DSNSecretARN string `yaml:"dsnSecretArn,omitempty" json:"dsnSecretArn,omitempty"` // resolved via Secrets Manager when set
}

// SamplingConfig controls the over-represented-theme downsampling applied
// during cleaning.
type SamplingConfig struct {
	Theme string `yaml:"theme,omitempty" json:"theme,omitempty"` // theme to cap, default "IA"
	Cap   int    `yaml:"cap,omitempty" json:"cap,omitempty"`     // max rows kept for that theme, default 220
	Seed  int64  `yaml:"seed,omitempty" json:"seed,omitempty"`   // 0 = time-seeded
}

// KPIConfig tunes the aggregation thresholds and ranking cutoffs.
type KPIConfig struct {
	ViralQuantile      float64 `yaml:"viralQuantile,omitempty" json:"viralQuantile,omitempty"`           // default 0.9
	EngagementQuantile float64 `yaml:"engagementQuantile,omitempty" json:"engagementQuantile,omitempty"` // default 0.9
	TopHashtags        int     `yaml:"topHashtags,omitempty" json:"topHashtags,omitempty"`               // default 15
	HashtagImpactRows  int     `yaml:"hashtagImpactRows,omitempty" json:"hashtagImpactRows,omitempty"`   // default 10
}

// ReportSinkConfig defines one report destination.
type ReportSinkConfig struct {
	Type      SinkType `yaml:"type" json:"type"`
	Dir       string   `yaml:"dir,omitempty" json:"dir,omitempty"`             // file
	Bucket    string   `yaml:"bucket,omitempty" json:"bucket,omitempty"`       // s3
	Prefix    string   `yaml:"prefix,omitempty" json:"prefix,omitempty"`       // s3
	TableName string   `yaml:"tableName,omitempty" json:"tableName,omitempty"` // dynamodb
}

// AlertConfig defines one alert destination.
type AlertConfig struct {
	Type     AlertType `yaml:"type" json:"type"`
	URL      string    `yaml:"url,omitempty" json:"url,omitempty"`           // webhook
	Path     string    `yaml:"path,omitempty" json:"path,omitempty"`         // file
	TopicARN string    `yaml:"topicArn,omitempty" json:"topicArn,omitempty"` // sns
}

// RetryPolicy configures automatic retry behavior for failed runs.
type RetryPolicy struct {
	MaxAttempts       int               `yaml:"maxAttempts" json:"maxAttempts"`
	BackoffSeconds    int               `yaml:"backoffSeconds" json:"backoffSeconds"`
	BackoffMultiplier float64           `yaml:"backoffMultiplier,omitempty" json:"backoffMultiplier,omitempty"`
	RetryableFailures []FailureCategory `yaml:"retryableFailures,omitempty" json:"retryableFailures,omitempty"`
}

// ScheduleConfig defines the daily watch window.
type ScheduleConfig struct {
	At       string `yaml:"at" json:"at"`                                 // "HH:MM" local to Timezone
	Timezone string `yaml:"timezone,omitempty" json:"timezone,omitempty"` // e.g. "Europe/Paris", default UTC
}

// ServerConfig configures the read-only report API.
type ServerConfig struct {
	Addr   string `yaml:"addr" json:"addr"`
	APIKey string `yaml:"apiKey,omitempty" json:"apiKey,omitempty"` // empty disables auth
}

// ProjectConfig is the root linkpulse.yaml structure.
type ProjectConfig struct {
	Database    DatabaseConfig     `yaml:"database" json:"database"`
	SnapshotDir string             `yaml:"snapshotDir,omitempty" json:"snapshotDir,omitempty"`
	Sampling    SamplingConfig     `yaml:"sampling,omitempty" json:"sampling,omitempty"`
	KPI         KPIConfig          `yaml:"kpi,omitempty" json:"kpi,omitempty"`
	Reports     []ReportSinkConfig `yaml:"reports" json:"reports"`
	Alerts      []AlertConfig      `yaml:"alerts,omitempty" json:"alerts,omitempty"`
	Retry       RetryPolicy        `yaml:"retry,omitempty" json:"retry,omitempty"`
	Schedule    *ScheduleConfig    `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	Server      *ServerConfig      `yaml:"server,omitempty" json:"server,omitempty"`
}
