// Covers: remote success, remote rejection, network failure, structural
// pre-check (garbage and expired tokens never reach the wire).
package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signedToken builds a structurally valid HS256 token. The signature secret
// is irrelevant: the pre-check never verifies signatures.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestVerify_Success(t *testing.T) {
	t.Parallel()

	var gotAuth, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-123","email":"x@example.com"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	token := signedToken(t, time.Now().Add(time.Hour))
	v := NewHTTPVerifier(srv.URL, "anon-key")

	userID, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("userID = %q, want 'user-123'", userID)
	}
	if gotAuth != "Bearer "+token {
		t.Errorf("Authorization header = %q, token not forwarded", gotAuth)
	}
	if gotAPIKey != "anon-key" {
		t.Errorf("apikey header = %q, want 'anon-key'", gotAPIKey)
	}
}

func TestVerify_RemoteRejection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, "anon-key")
	_, err := v.Verify(context.Background(), signedToken(t, time.Now().Add(time.Hour)))
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_NetworkFailureLooksLikeInvalidToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	v := NewHTTPVerifier(srv.URL, "anon-key")
	_, err := v.Verify(context.Background(), signedToken(t, time.Now().Add(time.Hour)))
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken — network failure must be indistinguishable", err)
	}
}

func TestVerify_GarbageTokenSkipsNetwork(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, "anon-key")
	_, err := v.Verify(context.Background(), "not-a-jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
	if called {
		t.Error("identity service should not be called for a structurally broken token")
	}
}

func TestVerify_ExpiredTokenSkipsNetwork(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, "anon-key")
	_, err := v.Verify(context.Background(), signedToken(t, time.Now().Add(-time.Hour)))
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
	if called {
		t.Error("identity service should not be called for an already-expired token")
	}
}

func TestVerify_EmptyUserIDRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, "anon-key")
	_, err := v.Verify(context.Background(), signedToken(t, time.Now().Add(time.Hour)))
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken for empty user id", err)
	}
}
