// Package report implements KPI report persistence to multiple sinks.
package report

import (
	"context"
	"fmt"

	"github.com/pulselab/linkpulse/pkg/types"
)

// Sink is a report destination. Implementations must be safe for
// concurrent use and must never leave a partially written snapshot
// visible to readers.
type Sink interface {
	Write(ctx context.Context, report types.Report) error
	Name() string
}

// Dispatcher fans one report out to all configured sinks. Unlike alert
// dispatch, report writes are not best-effort: a failed sink fails the
// aggregation pass.
type Dispatcher struct {
	sinks []Sink
}

// NewDispatcher creates a dispatcher from report sink configs.
func NewDispatcher(configs []types.ReportSinkConfig) (*Dispatcher, error) {
	d := &Dispatcher{}
	for _, cfg := range configs {
		sink, err := newSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating %s sink: %w", cfg.Type, err)
		}
		d.sinks = append(d.sinks, sink)
	}
	return d, nil
}

// Write sends a report to every configured sink, stopping at the first
// failure.
func (d *Dispatcher) Write(ctx context.Context, report types.Report) error {
	for _, sink := range d.sinks {
		if err := sink.Write(ctx, report); err != nil {
			return fmt.Errorf("sink %s: %w", sink.Name(), err)
		}
	}
	return nil
}

func newSink(cfg types.ReportSinkConfig) (Sink, error) {
	switch cfg.Type {
	case types.SinkFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file sink dir required")
		}
		return NewFileSink(cfg.Dir)
	case types.SinkConsole:
		return NewConsoleSink(), nil
	case types.SinkS3:
		return NewS3Sink(cfg.Bucket, cfg.Prefix)
	case types.SinkDynamoDB:
		return NewDynamoDBSink(cfg.TableName)
	default:
		return nil, fmt.Errorf("unknown report sink type %q", cfg.Type)
	}
}
