// API error definitions.
package api

import "errors"

var (
	// ErrMissingUserID is returned when no authenticated user id is in context.
	ErrMissingUserID = errors.New("missing user_id in context")
)
