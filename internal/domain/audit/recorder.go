// Package audit persists provider attempt outcomes to the append-only
// request_log table. This is the only place detailed per-provider failure
// reasons are durably kept; client-facing responses stay generic.
package audit

import (
	"context"
	"database/sql"
	"log"

	"github.com/batasnatin/lexgate/internal/infra/eventbus"
	"github.com/batasnatin/lexgate/pkg/uuid"
)

// Recorder consumes provider attempt events and appends them to request_log.
// Recording is best-effort: a write failure is logged and dropped, never
// propagated into a request.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a Recorder over db.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one attempt row.
func (r *Recorder) Record(ctx context.Context, attempt eventbus.ProviderAttempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO request_log (id, user_id, endpoint, provider, outcome, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewV7().String(), attempt.UserID, attempt.Endpoint, attempt.Provider, attempt.Outcome, attempt.Detail)
	return err
}

// Start consumes attempt events from bus until ctx is done.
// Run it on its own goroutine.
func (r *Recorder) Start(ctx context.Context, bus *eventbus.Bus) {
	events := bus.Subscribe(eventbus.TopicProviderAttempt)
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-events:
			if err := r.Record(ctx, evt.Payload); err != nil {
				log.Printf("audit: record attempt: %v", err)
			}
		}
	}
}
