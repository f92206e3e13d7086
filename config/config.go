package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Limits LimitsConfig `mapstructure:"limits"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey            string `mapstructure:"api_key"`
	Model             string `mapstructure:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// CacheConfig holds the job-description cache configuration
type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// LimitsConfig holds upload and text-length limits
type LimitsConfig struct {
	MaxResumeSizeBytes int64 `mapstructure:"max_resume_size_bytes"`
	MinResumeChars     int   `mapstructure:"min_resume_chars"`
	MinJobChars        int   `mapstructure:"min_job_chars"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/resumatch/")

	// Environment variable settings
	v.SetEnvPrefix("RESUMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Gemini defaults
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.requests_per_minute", 15)

	// Cache defaults
	v.SetDefault("cache.capacity", 100)

	// Limit defaults
	v.SetDefault("limits.max_resume_size_bytes", 10*1024*1024) // 10MB
	v.SetDefault("limits.min_resume_chars", 50)
	v.SetDefault("limits.min_job_chars", 50)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Gemini.APIKey == "" {
		return fmt.Errorf("Gemini API key is required (set RESUMATCH_GEMINI_API_KEY)")
	}

	if config.Cache.Capacity <= 0 {
		return fmt.Errorf("cache capacity must be positive, got: %d", config.Cache.Capacity)
	}

	if config.Limits.MaxResumeSizeBytes <= 0 {
		return fmt.Errorf("max resume size must be positive, got: %d", config.Limits.MaxResumeSizeBytes)
	}

	return nil
}
