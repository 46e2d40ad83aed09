package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pulselab/linkpulse/internal/store"
	"github.com/pulselab/linkpulse/pkg/types"
)

// FetchPosts returns all posts ordered by id.
func (s *Store) FetchPosts(ctx context.Context) ([]types.Post, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, COALESCE(author, ''), COALESCE(author_link, ''), text,
			date, likes, comments, shares, followers, theme
		FROM posts
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []types.Post
	for rows.Next() {
		var p types.Post
		var date sql.NullTime
		if err := rows.Scan(&p.ID, &p.Author, &p.AuthorLink, &p.Text,
			&date, &p.Likes, &p.Comments, &p.Shares, &p.Followers, &p.Theme); err != nil {
			return nil, err
		}
		// NULL dates stay the zero time so the feature stage treats
		// them as missing.
		if date.Valid {
			p.Date = date.Time
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetRunLog returns the run log entry for a date.
func (s *Store) GetRunLog(ctx context.Context, date string) (types.RunLogEntry, error) {
	var e types.RunLogEntry
	var failCat string
	var completed sql.NullTime
	err := s.pool.QueryRow(ctx, `
		SELECT date, status, attempt_number, run_id,
			COALESCE(failure_message, ''), COALESCE(failure_category, ''),
			alert_sent, started_at, completed_at, updated_at
		FROM run_logs
		WHERE date = $1
	`, date).Scan(&e.Date, &e.Status, &e.AttemptNumber, &e.RunID,
		&e.FailureMessage, &failCat, &e.AlertSent, &e.StartedAt, &completed, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.RunLogEntry{}, store.ErrNotFound
		}
		return types.RunLogEntry{}, err
	}
	e.FailureCategory = types.FailureCategory(failCat)
	if completed.Valid {
		t := completed.Time
		e.CompletedAt = &t
	}
	return e, nil
}

// ListRunLogs returns recent run log entries, most recent date first.
func (s *Store) ListRunLogs(ctx context.Context, limit int) ([]types.RunLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT date, status, attempt_number, run_id,
			COALESCE(failure_message, ''), COALESCE(failure_category, ''),
			alert_sent, started_at, completed_at, updated_at
		FROM run_logs
		ORDER BY date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.RunLogEntry
	for rows.Next() {
		var e types.RunLogEntry
		var failCat string
		var completed sql.NullTime
		if err := rows.Scan(&e.Date, &e.Status, &e.AttemptNumber, &e.RunID,
			&e.FailureMessage, &failCat, &e.AlertSent,
			&e.StartedAt, &completed, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.FailureCategory = types.FailureCategory(failCat)
		if completed.Valid {
			t := completed.Time
			e.CompletedAt = &t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
