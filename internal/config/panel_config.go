package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// PanelConfig represents the file-based configuration for the panel's
// external collaborators: the messaging provider and the export archive.
type PanelConfig struct {
	Provider MessagingProvider `toml:"provider"`
	Exports  ExportsConfig     `toml:"exports"`
	Cache    CacheConfig       `toml:"cache"`
}

// MessagingProvider contains the server-held credentials for the templates
// API. These are never accepted from callers.
type MessagingProvider struct {
	BaseURL           string `toml:"base_url"`
	APIToken          string `toml:"api_token"`
	BusinessAccountID string `toml:"business_account_id"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
}

// ExportsConfig controls archiving of generated export files.
type ExportsConfig struct {
	Bucket  string `toml:"bucket"`
	Archive bool   `toml:"archive"`
}

// CacheConfig contains TTL and refresh settings for the template cache.
type CacheConfig struct {
	TemplateTTLMinutes     int `toml:"template_ttl_minutes"`
	RefreshIntervalMinutes int `toml:"refresh_interval_minutes"`
}

// LoadPanelConfig loads configuration from a TOML file
func LoadPanelConfig(filename string) (*PanelConfig, error) {
	config := &PanelConfig{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if config.Provider.TimeoutSeconds <= 0 {
		config.Provider.TimeoutSeconds = 10
	}
	if config.Exports.Bucket == "" {
		config.Exports.Bucket = "panel-exports"
	}
	if config.Cache.TemplateTTLMinutes <= 0 {
		config.Cache.TemplateTTLMinutes = 15
	}
	if config.Cache.RefreshIntervalMinutes <= 0 {
		config.Cache.RefreshIntervalMinutes = 10
	}
	return config, nil
}
