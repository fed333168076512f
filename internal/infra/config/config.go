// Package config provides gateway-wide configuration loaded once at startup.
// Values come from environment variables with safe defaults; an optional YAML
// file (LEXGATE_CONFIG) can override quota policies, provider order, and
// timeouts. Env always wins over file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PlaceholderAPIKey is the sentinel scaffolding tools leave in env files.
// An adapter whose key equals this value is treated as not configured.
const PlaceholderAPIKey = "PLACEHOLDER_API_KEY"

// QuotaPolicy bounds requests per user for one endpoint within a sliding window.
type QuotaPolicy struct {
	MaxRequests   int `yaml:"max_requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

// Config holds runtime configuration for the lexgate gateway.
type Config struct {
	// Identity service (token verification). Absence is fatal at startup.
	IdentityBaseURL string
	IdentityAPIKey  string

	// Provider credentials. An empty or placeholder key disables that adapter only.
	GeminiAPIKey   string
	DeepSeekAPIKey string
	OpenAIAPIKey   string

	// ProviderOrder is the fixed failover priority (first entry is primary).
	ProviderOrder []string

	// ProviderTimeout bounds each upstream completion call so one slow
	// provider cannot starve the remaining failover budget.
	ProviderTimeout time.Duration

	// QuotaPolicies maps endpoint name to its per-user window policy.
	QuotaPolicies map[string]QuotaPolicy

	// DBPath is the SQLite database location for quota windows and the request log.
	DBPath string
}

const (
	envKeyIdentityBaseURL = "IDENTITY_BASE_URL"
	envKeyIdentityAPIKey  = "IDENTITY_API_KEY"
	envKeyGeminiAPIKey    = "GEMINI_API_KEY"
	envKeyDeepSeekAPIKey  = "DEEPSEEK_API_KEY"
	envKeyOpenAIAPIKey    = "OPENAI_API_KEY"
	envKeyProviderTimeout = "PROVIDER_TIMEOUT_SECONDS"
	envKeyDBPath          = "LEXGATE_DB_PATH"
	envKeyConfigFile      = "LEXGATE_CONFIG"
)

// Endpoint names used for quota policy lookup. Shared with the API layer.
const (
	EndpointChat        = "chat"
	EndpointSuggestions = "suggestions"
)

// DefaultQuotaPolicies returns the built-in per-endpoint quota policies.
func DefaultQuotaPolicies() map[string]QuotaPolicy {
	return map[string]QuotaPolicy{
		EndpointChat:        {MaxRequests: 20, WindowSeconds: 60},
		EndpointSuggestions: {MaxRequests: 10, WindowSeconds: 60},
	}
}

// DefaultProviderOrder is the fixed failover priority: Gemini (rich content)
// first, then the two text-only backends.
func DefaultProviderOrder() []string {
	return []string{"gemini", "deepseek", "openai"}
}

// Load reads configuration from the optional YAML file and the environment,
// applying defaults for missing values. Returns an error only for a fatal
// misconfiguration (missing identity service settings).
func Load() (Config, error) {
	cfg := Config{
		IdentityBaseURL: os.Getenv(envKeyIdentityBaseURL),
		IdentityAPIKey:  os.Getenv(envKeyIdentityAPIKey),
		GeminiAPIKey:    os.Getenv(envKeyGeminiAPIKey),
		DeepSeekAPIKey:  os.Getenv(envKeyDeepSeekAPIKey),
		OpenAIAPIKey:    os.Getenv(envKeyOpenAIAPIKey),
		ProviderOrder:   DefaultProviderOrder(),
		ProviderTimeout: 30 * time.Second,
		QuotaPolicies:   DefaultQuotaPolicies(),
		DBPath:          envOr(envKeyDBPath, "lexgate.db"),
	}

	if path := os.Getenv(envKeyConfigFile); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	if secs := os.Getenv(envKeyProviderTimeout); secs != "" {
		n, err := strconv.Atoi(secs)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: invalid %s %q", envKeyProviderTimeout, secs)
		}
		cfg.ProviderTimeout = time.Duration(n) * time.Second
	}

	if cfg.IdentityBaseURL == "" || cfg.IdentityAPIKey == "" {
		return Config{}, fmt.Errorf("config: %s and %s are required", envKeyIdentityBaseURL, envKeyIdentityAPIKey)
	}
	cfg.IdentityBaseURL = strings.TrimRight(cfg.IdentityBaseURL, "/")

	return cfg, nil
}

// ProviderKeyConfigured reports whether key is usable: non-empty and not the
// placeholder sentinel.
func ProviderKeyConfigured(key string) bool {
	return key != "" && key != PlaceholderAPIKey
}

// QuotaPolicyFor returns the policy for endpoint. Unknown endpoints get the
// default chat policy rather than being rejected outright.
func (c Config) QuotaPolicyFor(endpoint string) QuotaPolicy {
	if p, ok := c.QuotaPolicies[endpoint]; ok {
		return p
	}
	return QuotaPolicy{MaxRequests: 20, WindowSeconds: 60}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
