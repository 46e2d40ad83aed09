// Package store defines the persistence interface for scraped posts and
// pipeline run logs.
package store

import (
	"context"
	"errors"

	"github.com/pulselab/linkpulse/pkg/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is the persistence boundary used by the pipeline and the CLI.
type Store interface {
	// InsertPosts inserts posts, skipping ids already present, and
	// returns the number of rows actually inserted.
	InsertPosts(ctx context.Context, posts []types.Post) (int, error)
	// FetchPosts returns all posts ordered by id.
	FetchPosts(ctx context.Context) ([]types.Post, error)

	UpsertRunLog(ctx context.Context, entry types.RunLogEntry) error
	// GetRunLog returns the run log for a date, or ErrNotFound.
	GetRunLog(ctx context.Context, date string) (types.RunLogEntry, error)
	// ListRunLogs returns recent run logs, most recent date first.
	ListRunLogs(ctx context.Context, limit int) ([]types.RunLogEntry, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}
