package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the adapter interface every backend implements. The orchestrator
// never branches on a concrete provider type: capability differences are
// expressed through RichContent and handled inside each adapter.
type Provider interface {
	// Invoke performs one completion call. Implementations bound the call
	// with their own timeout so a slow upstream cannot starve the failover
	// budget.
	Invoke(ctx context.Context, inv Invocation) (*Result, error)

	// Name identifies the provider in results, logs, and the request log.
	Name() string

	// RichContent reports the capability class: true means the backend
	// accepts inline multimodal parts and fetches URLs itself; false means
	// it only accepts flattened text.
	RichContent() bool

	// Configured reports whether the adapter has a usable credential.
	// Unconfigured adapters fail Invoke immediately without any network call.
	Configured() bool
}

// ErrNotConfigured is returned by Invoke when the adapter's credential is
// missing or the placeholder sentinel. Kept cheap and distinguishable in logs
// from a genuine upstream failure.
var ErrNotConfigured = errors.New("provider not configured")

// placeholderAPIKey is the sentinel scaffolding tools leave in env files.
const placeholderAPIKey = "PLACEHOLDER_API_KEY"

// keyConfigured reports whether an API key is usable.
func keyConfigured(key string) bool {
	return key != "" && key != placeholderAPIKey
}

// ProviderError wraps an upstream failure with the adapter's name so the
// orchestrator can record which backend failed and why.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
