package report

import (
	"context"
	"fmt"
	"reflect"

	"github.com/fatih/color"

	"github.com/pulselab/linkpulse/pkg/types"
)

// ConsoleSink prints a one-line summary per report. Meant for interactive
// runs alongside a canonical file sink, not as a durable destination.
type ConsoleSink struct{}

// NewConsoleSink creates a new console report sink.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{}
}

// Name returns the sink identifier.
func (s *ConsoleSink) Name() string { return "console" }

// Write prints the report name and row count.
func (s *ConsoleSink) Write(_ context.Context, report types.Report) error {
	fmt.Printf("%s %-32s %d rows\n", color.CyanString("[report]"), report.Name, rowCount(report.Rows))
	return nil
}

func rowCount(rows interface{}) int {
	if rows == nil {
		return 0
	}
	v := reflect.ValueOf(rows)
	if v.Kind() == reflect.Slice {
		return v.Len()
	}
	return 1
}
