package config

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Output  OutputConfig  `mapstructure:"output"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Book    BookConfig    `mapstructure:"book"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection and fetch settings
type TMDBConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Region         string `mapstructure:"region"`
	MaxPages       int    `mapstructure:"max_pages"`
	MaxRetries     int    `mapstructure:"max_retries"`
	RequestDelayMS int    `mapstructure:"request_delay_ms"`
}

// OutputConfig holds the document output settings
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds the snapshot cache settings
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// BookConfig holds the physical layout limits
type BookConfig struct {
	MaxPages      int  `mapstructure:"max_pages"`
	AllowOversize bool `mapstructure:"allow_oversize"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
