package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pulselab/linkpulse/pkg/types"
)

// FileSink writes each report as one JSON snapshot file named after the
// report. Writes go through a temp file and rename, so a reader never
// observes a half-written snapshot.
type FileSink struct {
	dir string
}

// NewFileSink creates a file report sink rooted at dir.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report dir: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// Name returns the sink identifier.
func (s *FileSink) Name() string { return "file" }

// Write replaces the report's snapshot file atomically.
func (s *FileSink) Write(_ context.Context, report types.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	final := filepath.Join(s.dir, report.Name+".json")
	tmp, err := os.CreateTemp(s.dir, report.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("publishing snapshot: %w", err)
	}
	return nil
}
