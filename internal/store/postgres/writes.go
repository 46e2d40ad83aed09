package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pulselab/linkpulse/pkg/types"
)

// InsertPosts inserts posts inside one transaction, skipping ids that
// already exist, and returns the number of rows actually inserted.
func (s *Store) InsertPosts(ctx context.Context, posts []types.Post) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted := 0
	for _, p := range posts {
		var date sql.NullTime
		if !p.Date.IsZero() {
			date = sql.NullTime{Time: p.Date, Valid: true}
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO posts (id, author, author_link, text, date, likes, comments, shares, followers, theme)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Author, p.AuthorLink, p.Text, date,
			p.Likes, p.Comments, p.Shares, p.Followers, p.Theme)
		if err != nil {
			return 0, fmt.Errorf("insert post %d: %w", p.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// UpsertRunLog upserts the run log entry for its date.
func (s *Store) UpsertRunLog(ctx context.Context, entry types.RunLogEntry) error {
	var completed sql.NullTime
	if entry.CompletedAt != nil {
		completed = sql.NullTime{Time: *entry.CompletedAt, Valid: true}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO run_logs (date, status, attempt_number, run_id,
			failure_message, failure_category, alert_sent, started_at, completed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (date) DO UPDATE SET
			status           = EXCLUDED.status,
			attempt_number   = EXCLUDED.attempt_number,
			run_id           = EXCLUDED.run_id,
			failure_message  = EXCLUDED.failure_message,
			failure_category = EXCLUDED.failure_category,
			alert_sent       = EXCLUDED.alert_sent,
			completed_at     = EXCLUDED.completed_at,
			updated_at       = EXCLUDED.updated_at
	`, entry.Date, string(entry.Status), entry.AttemptNumber, entry.RunID,
		entry.FailureMessage, string(entry.FailureCategory), entry.AlertSent,
		entry.StartedAt, completed, entry.UpdatedAt)
	return err
}
