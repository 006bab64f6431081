package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".solrkit"))
		}

		// Check /etc
		v.AddConfigPath("/etc/solrkit/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Solr defaults
	v.SetDefault("solr.url", "http://localhost:8983")
	v.SetDefault("solr.id_field", "id")
	v.SetDefault("solr.page_size", 100)
	v.SetDefault("solr.timeout", 30)
	v.SetDefault("solr.retries", 10)
	v.SetDefault("solr.backoff", 4.0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Solr.URL == "" {
		return fmt.Errorf("solr.url is required")
	}

	if cfg.Solr.Endpoint == "" {
		return fmt.Errorf("solr.endpoint is required (e.g. solr/mycore)")
	}

	if cfg.Solr.PageSize <= 0 {
		return fmt.Errorf("solr.page_size must be positive")
	}

	if cfg.Solr.Timeout <= 0 {
		return fmt.Errorf("solr.timeout must be positive")
	}

	if cfg.Solr.Retries < 0 {
		return fmt.Errorf("solr.retries must not be negative")
	}

	if cfg.Solr.Backoff <= 0 {
		return fmt.Errorf("solr.backoff must be positive")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
