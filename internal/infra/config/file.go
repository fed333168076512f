package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of the optional LEXGATE_CONFIG file.
// Only operational knobs live here; credentials stay in the environment.
type fileConfig struct {
	ProviderOrder          []string               `yaml:"provider_order"`
	ProviderTimeoutSeconds int                    `yaml:"provider_timeout_seconds"`
	Quota                  map[string]QuotaPolicy `yaml:"quota"`
	DBPath                 string                 `yaml:"db_path"`
}

// applyFile overlays values from the YAML file at path onto cfg.
// Missing keys leave the existing value untouched.
func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if len(fc.ProviderOrder) > 0 {
		cfg.ProviderOrder = fc.ProviderOrder
	}
	if fc.ProviderTimeoutSeconds > 0 {
		cfg.ProviderTimeout = time.Duration(fc.ProviderTimeoutSeconds) * time.Second
	}
	for endpoint, policy := range fc.Quota {
		if policy.MaxRequests <= 0 || policy.WindowSeconds <= 0 {
			return fmt.Errorf("quota policy for %q must be positive", endpoint)
		}
		cfg.QuotaPolicies[endpoint] = policy
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}

	return nil
}
