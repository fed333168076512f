// Shared context helpers for API middleware and handlers.
package api

import (
	"context"

	"github.com/batasnatin/lexgate/internal/api/ctxkeys"
)

// WithUserID adds the authenticated user id to the request context.
// Uses ctxkeys.UserID — shared key used by middleware and handlers alike.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxkeys.UserID, userID)
}

// GetUserID retrieves the authenticated user id from context.
func GetUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(ctxkeys.UserID).(string)
	if !ok || userID == "" {
		return "", ErrMissingUserID
	}
	return userID, nil
}
