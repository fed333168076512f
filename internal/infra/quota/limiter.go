package quota

import (
	"context"
	"log"

	"github.com/batasnatin/lexgate/internal/infra/config"
)

// Outcome is the named result of a quota check. StoreUnavailable exists so
// the fail-open policy is visible in code and tests instead of being buried
// in error handling.
type Outcome int

const (
	// Allowed means the request is within its window (one unit consumed).
	Allowed Outcome = iota
	// Denied means the window is exhausted; the caller must reply 429.
	Denied
	// StoreUnavailable means the quota store could not be consulted. The
	// request proceeds: an unavailable limiter must never take the product
	// down with it.
	StoreUnavailable
)

// Proceed reports whether the request may go ahead.
func (o Outcome) Proceed() bool { return o != Denied }

// Limiter applies per-endpoint policies on top of the atomic store.
type Limiter struct {
	store    Store
	policies map[string]config.QuotaPolicy
}

// NewLimiter creates a Limiter with the given endpoint policies.
func NewLimiter(store Store, policies map[string]config.QuotaPolicy) *Limiter {
	return &Limiter{store: store, policies: policies}
}

// defaultPolicy applies to endpoints with no explicit entry.
var defaultPolicy = config.QuotaPolicy{MaxRequests: 20, WindowSeconds: 60}

// Allow checks and consumes one quota unit for (userID, endpoint).
// Store errors fail open and are logged; they never block a request.
func (l *Limiter) Allow(ctx context.Context, userID, endpoint string) Outcome {
	policy, ok := l.policies[endpoint]
	if !ok {
		policy = defaultPolicy
	}

	allowed, err := l.store.CheckAndIncrement(ctx, userID, endpoint, policy.MaxRequests, policy.WindowSeconds)
	if err != nil {
		log.Printf("quota: store unavailable, failing open: %v", err)
		return StoreUnavailable
	}
	if !allowed {
		return Denied
	}
	return Allowed
}
