package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. Every setting has a default,
// so a missing config file is fine unless an explicit path was given.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// The API credential can come from the environment.
	if err := v.BindEnv("tmdb.api_key", "TMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

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
			v.AddConfigPath(filepath.Join(home, ".showbook"))
		}

		// Check /etc
		v.AddConfigPath("/etc/showbook/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %w", err)
			}
			// Defaults only.
		} else {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
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
	// TMDB defaults
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.region", "US")
	v.SetDefault("tmdb.max_pages", 500) // TMDB discover caps out at 500 pages
	v.SetDefault("tmdb.max_retries", 3)
	v.SetDefault("tmdb.request_delay_ms", 260)

	// Output defaults
	v.SetDefault("output.path", "showbook.pdf")

	// Cache defaults
	v.SetDefault("cache.dir", ".")

	// Book defaults
	v.SetDefault("book.max_pages", 828)
	v.SetDefault("book.allow_oversize", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb.base_url is required")
	}

	if cfg.TMDB.Region == "" {
		return fmt.Errorf("tmdb.region is required")
	}

	if cfg.TMDB.MaxPages < 1 {
		return fmt.Errorf("tmdb.max_pages must be at least 1")
	}

	if cfg.TMDB.MaxRetries < 0 {
		return fmt.Errorf("tmdb.max_retries must not be negative")
	}

	if cfg.Book.MaxPages < 2 {
		return fmt.Errorf("book.max_pages must be at least 2")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
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
