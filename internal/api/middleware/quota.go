// Per-endpoint quota middleware.
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/batasnatin/lexgate/internal/api/ctxkeys"
	"github.com/batasnatin/lexgate/internal/infra/quota"
)

// QuotaMiddleware consumes one quota unit for (user, endpoint) before the
// handler runs. Denied requests get a 429; a store outage lets the request
// through (the limiter fails open). Runs after AuthMiddleware, so a missing
// user id means a wiring bug and is rejected as unauthorized.
func QuotaMiddleware(limiter *quota.Limiter, endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value(ctxkeys.UserID).(string)
			if !ok || userID == "" {
				writeUnauthorized(w, "missing user context")
				return
			}

			if !limiter.Allow(r.Context(), userID, endpoint).Proceed() {
				writeRateLimited(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeRateLimited writes a 429 JSON response.
func writeRateLimited(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded, try again later"}) //nolint:errcheck
}
