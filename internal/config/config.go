// Package config handles loading and validation of linkpulse.yaml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pulselab/linkpulse/internal/transform"
	"github.com/pulselab/linkpulse/pkg/types"
)

// Load reads and parses linkpulse.yaml from the given directory.
func Load(dir string) (*types.ProjectConfig, error) {
	path := filepath.Join(dir, "linkpulse.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg types.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *types.ProjectConfig) {
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = "snapshots"
	}
	if cfg.Sampling.Theme == "" {
		cfg.Sampling.Theme = transform.DefaultSampledTheme
	}
	if cfg.Sampling.Cap == 0 {
		cfg.Sampling.Cap = transform.DefaultSampleCap
	}
	if cfg.KPI.ViralQuantile == 0 {
		cfg.KPI.ViralQuantile = 0.9
	}
	if cfg.KPI.EngagementQuantile == 0 {
		cfg.KPI.EngagementQuantile = 0.9
	}
	if cfg.KPI.TopHashtags == 0 {
		cfg.KPI.TopHashtags = 15
	}
	if cfg.KPI.HashtagImpactRows == 0 {
		cfg.KPI.HashtagImpactRows = 10
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.BackoffSeconds == 0 {
		cfg.Retry.BackoffSeconds = 60
	}
	if cfg.Retry.BackoffMultiplier == 0 {
		cfg.Retry.BackoffMultiplier = 2.0
	}
	if len(cfg.Retry.RetryableFailures) == 0 {
		cfg.Retry.RetryableFailures = []types.FailureCategory{
			types.FailureTransient, types.FailureTimeout,
		}
	}
	if cfg.Schedule != nil && cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "UTC"
	}
}

func validate(cfg *types.ProjectConfig) error {
	if cfg.Database.DSN == "" && cfg.Database.DSNSecretARN == "" {
		return fmt.Errorf("database.dsn or database.dsnSecretArn is required")
	}
	if len(cfg.Reports) == 0 {
		return fmt.Errorf("at least one report sink is required")
	}
	if cfg.Sampling.Cap < 0 {
		return fmt.Errorf("sampling.cap must not be negative")
	}
	if q := cfg.KPI.ViralQuantile; q <= 0 || q > 1 {
		return fmt.Errorf("kpi.viralQuantile must be in (0, 1]")
	}
	if q := cfg.KPI.EngagementQuantile; q <= 0 || q > 1 {
		return fmt.Errorf("kpi.engagementQuantile must be in (0, 1]")
	}
	if cfg.Schedule != nil {
		if _, err := time.Parse("15:04", cfg.Schedule.At); err != nil {
			return fmt.Errorf("schedule.at must be HH:MM: %w", err)
		}
		if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
			return fmt.Errorf("schedule.timezone: %w", err)
		}
	}
	return nil
}
