package handlers

import "net/http"

// Health is the unauthenticated liveness probe used by load balancers.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(headerContentType, mimeJSON)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}
