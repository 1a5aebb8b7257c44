package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timestampLayout is fixed width so created_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// Submission is one dispatched trigger and the outcome it produced.
type Submission struct {
	ID         string
	URL        string
	Trigger    string
	Kind       string
	Message    string
	HTTPStatus int
	Duration   time.Duration
	CreatedAt  time.Time
}

// RecordSubmission appends a submission row. CreatedAt defaults to now.
func (s *Store) RecordSubmission(ctx context.Context, sub Submission) error {
	if sub.ID == "" {
		return fmt.Errorf("record submission: missing id")
	}
	created := sub.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO submissions (id, url, trigger, kind, message, http_status, duration_ms, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.URL,
		sub.Trigger,
		sub.Kind,
		sub.Message,
		nullableStatus(sub.HTTPStatus),
		sub.Duration.Milliseconds(),
		created.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// RecentSubmissions returns up to limit submissions, newest first.
func (s *Store) RecentSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, url, trigger, kind, message, http_status, duration_ms, created_at
         FROM submissions ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub        Submission
			status     sql.NullInt64
			durationMS int64
			created    string
		)
		if err := rows.Scan(&sub.ID, &sub.URL, &sub.Trigger, &sub.Kind, &sub.Message, &status, &durationMS, &created); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if status.Valid {
			sub.HTTPStatus = int(status.Int64)
		}
		sub.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(timestampLayout, created); err == nil {
			sub.CreatedAt = ts
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

func nullableStatus(status int) any {
	if status <= 0 {
		return nil
	}
	return status
}
