// Package identity verifies inbound bearer credentials against the external
// identity service. The gateway owns no identity state of its own: every
// request revalidates its token, trading a little latency for simplicity.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only error callers ever see for a failed
// verification. Network failures and genuinely bad tokens collapse into it
// on purpose: telling a caller which one happened aids credential probing.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier turns a bearer token into an opaque user identifier.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// HTTPVerifier verifies tokens against a GoTrue-style identity endpoint
// (GET {base}/auth/v1/user) authenticated with a service API key.
type HTTPVerifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPVerifier creates an HTTPVerifier with a 10s request timeout.
func NewHTTPVerifier(baseURL, apiKey string) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// userResponse is the subset of the identity service's user payload we read.
type userResponse struct {
	ID string `json:"id"`
}

// Verify resolves token to a stable opaque user ID.
//
// A cheap local parse runs first: tokens that are not structurally valid JWTs
// or are already expired are rejected without spending a network round-trip.
// The remote call remains authoritative for everything else (revocation,
// signature, audience).
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (string, error) {
	if err := precheckToken(token); err != nil {
		return "", ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", ErrInvalidToken
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		log.Printf("identity: verification call failed: %v", err)
		return "", ErrInvalidToken
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidToken
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		log.Printf("identity: decode user payload: %v", err)
		return "", ErrInvalidToken
	}
	if user.ID == "" {
		return "", ErrInvalidToken
	}

	return user.ID, nil
}

// precheckToken rejects tokens that cannot possibly verify remotely:
// structurally broken JWTs and tokens whose exp claim already passed.
// The signature is NOT checked here — that is the identity service's job.
func precheckToken(token string) error {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("malformed token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("read exp claim: %w", err)
	}
	if exp != nil && exp.Before(time.Now()) {
		return errors.New("token expired")
	}

	return nil
}
