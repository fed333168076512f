// Package quota enforces per-user, per-endpoint sliding-window request limits.
// Counters live in the shared SQLite store so that concurrent requests across
// replicas observe a consistent window; nothing is cached in-process.
package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store is the atomic check-and-increment primitive the limiter depends on.
type Store interface {
	// CheckAndIncrement returns true and consumes one unit when the caller is
	// within (userID, endpoint)'s window, false when the window is exhausted.
	CheckAndIncrement(ctx context.Context, userID, endpoint string, maxRequests, windowSeconds int) (bool, error)
}

// SQLStore implements Store on the quota_windows table.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time // injectable clock for window-expiry tests
}

// NewSQLStore creates a SQLStore over db.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// CheckAndIncrement runs the whole read-decide-write cycle in one transaction;
// SQLite serializes writers, so two racing requests cannot both consume the
// final unit of a window.
func (s *SQLStore) CheckAndIncrement(ctx context.Context, userID, endpoint string, maxRequests, windowSeconds int) (bool, error) {
	if userID == "" || endpoint == "" {
		return false, errors.New("quota: user id and endpoint are required")
	}
	if maxRequests <= 0 || windowSeconds <= 0 {
		return false, fmt.Errorf("quota: non-positive policy %d/%ds", maxRequests, windowSeconds)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("quota: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback after commit is a no-op
	}()

	now := s.now().Unix()

	var windowStart int64
	var count int
	err = tx.QueryRowContext(ctx, `
		SELECT window_start, request_count
		FROM quota_windows
		WHERE user_id = ? AND endpoint = ?
	`, userID, endpoint).Scan(&windowStart, &count)

	switch {
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		// A real read failure must surface so the limiter can apply its
		// fail-open policy; falling through would clobber the stored window.
		return false, fmt.Errorf("quota: read window: %w", err)

	case errors.Is(err, sql.ErrNoRows) || now >= windowStart+int64(windowSeconds):
		// No window yet, or the previous one elapsed: start fresh at count 1.
		if _, execErr := tx.ExecContext(ctx, `
			INSERT INTO quota_windows (user_id, endpoint, window_start, request_count)
			VALUES (?, ?, ?, 1)
			ON CONFLICT (user_id, endpoint) DO UPDATE SET
				window_start = excluded.window_start,
				request_count = 1
		`, userID, endpoint, now); execErr != nil {
			return false, fmt.Errorf("quota: reset window: %w", execErr)
		}
		return true, tx.Commit()

	case count >= maxRequests:
		// Window exhausted. Commit anyway so the read does not linger.
		return false, tx.Commit()

	default:
		if _, execErr := tx.ExecContext(ctx, `
			UPDATE quota_windows SET request_count = request_count + 1
			WHERE user_id = ? AND endpoint = ?
		`, userID, endpoint); execErr != nil {
			return false, fmt.Errorf("quota: increment: %w", execErr)
		}
		return true, tx.Commit()
	}
}
