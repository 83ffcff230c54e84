package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"namecorrector/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	GBIF      GBIFConfig
	Upload    UploadConfig
	Session   SessionConfig
	Locale    string
	LogLevel  string
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// GBIFConfig holds species-match service settings. A zero Timeout leaves the
// HTTP client without a deadline.
type GBIFConfig struct {
	BaseURL string
	Timeout time.Duration
	Strict  bool
	Kingdom string
}

// UploadConfig holds spreadsheet upload limits
type UploadConfig struct {
	MaxMB int
}

// MaxBytes returns the upload limit in bytes
func (u UploadConfig) MaxBytes() int64 {
	return int64(u.MaxMB) * 1024 * 1024
}

// SessionConfig holds in-memory session settings
type SessionConfig struct {
	TTL time.Duration
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// fileConfig mirrors Config in the optional TOML file. Durations are strings.
type fileConfig struct {
	Port     string `toml:"port"`
	GinMode  string `toml:"gin_mode"`
	Locale   string `toml:"locale"`
	LogLevel string `toml:"log_level"`
	GBIF     struct {
		BaseURL string `toml:"base_url"`
		Timeout string `toml:"timeout"`
		Strict  bool   `toml:"strict"`
		Kingdom string `toml:"kingdom"`
	} `toml:"gbif"`
	Upload struct {
		MaxMB int `toml:"max_mb"`
	} `toml:"upload"`
	Session struct {
		TTL string `toml:"ttl"`
	} `toml:"session"`
	Profiling struct {
		Enabled bool   `toml:"enabled"`
		Port    string `toml:"port"`
	} `toml:"profiling"`
}

// Supported UI locales
var SupportedLocales = []string{"es", "en"}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "release",
		},
		GBIF: GBIFConfig{
			BaseURL: "https://api.gbif.org/v1",
		},
		Upload:   UploadConfig{MaxMB: 50},
		Session:  SessionConfig{TTL: time.Hour},
		Locale:   "es",
		LogLevel: "INFO",
		Profiling: ProfilingConfig{
			Port:    "6060",
			Enabled: false,
		},
	}
}

// Load reads configuration from the optional CONFIG_FILE and environment
// variables (env wins) and validates it
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(config, path); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func applyFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return errors.Wrapf(errors.WithCode(errors.CodeConfigInvalid, err), "failed to parse TOML in %s", path)
	}

	config.Server.Port = orDefault(fc.Port, config.Server.Port)
	config.Server.GinMode = orDefault(fc.GinMode, config.Server.GinMode)
	config.Locale = orDefault(fc.Locale, config.Locale)
	config.LogLevel = orDefault(fc.LogLevel, config.LogLevel)
	config.GBIF.BaseURL = orDefault(fc.GBIF.BaseURL, config.GBIF.BaseURL)
	config.GBIF.Strict = fc.GBIF.Strict
	config.GBIF.Kingdom = orDefault(fc.GBIF.Kingdom, config.GBIF.Kingdom)
	if fc.Upload.MaxMB != 0 {
		config.Upload.MaxMB = fc.Upload.MaxMB
	}
	config.Profiling.Enabled = fc.Profiling.Enabled
	config.Profiling.Port = orDefault(fc.Profiling.Port, config.Profiling.Port)

	if fc.GBIF.Timeout != "" {
		d, err := time.ParseDuration(fc.GBIF.Timeout)
		if err != nil {
			return errors.ConfigInvalid("gbif.timeout must be a duration such as 10s")
		}
		config.GBIF.Timeout = d
	}
	if fc.Session.TTL != "" {
		d, err := time.ParseDuration(fc.Session.TTL)
		if err != nil {
			return errors.ConfigInvalid("session.ttl must be a duration such as 30m")
		}
		config.Session.TTL = d
	}
	return nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)
	config.Locale = strings.ToLower(getEnvOrDefault("LOCALE", config.Locale))
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)

	config.GBIF.BaseURL = getEnvOrDefault("GBIF_BASE_URL", config.GBIF.BaseURL)
	config.GBIF.Timeout = getEnvDurationOrDefault("GBIF_TIMEOUT", config.GBIF.Timeout)
	config.GBIF.Strict = getEnvBoolOrDefault("GBIF_STRICT", config.GBIF.Strict)
	config.GBIF.Kingdom = getEnvOrDefault("GBIF_KINGDOM", config.GBIF.Kingdom)

	config.Upload.MaxMB = getEnvIntOrDefault("UPLOAD_MAX_MB", config.Upload.MaxMB)
	config.Session.TTL = getEnvDurationOrDefault("SESSION_TTL", config.Session.TTL)

	config.Profiling.Port = getEnvOrDefault("PPROF_PORT", config.Profiling.Port)
	config.Profiling.Enabled = getEnvBoolOrDefault("PPROF_ENABLED", config.Profiling.Enabled)
}

// Validate checks the fields the server cannot run without
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	u, err := url.Parse(c.GBIF.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigInvalid("GBIF base URL must be an absolute http(s) URL")
	}
	if c.GBIF.Timeout < 0 {
		return errors.ConfigInvalid("GBIF timeout cannot be negative")
	}
	if c.Upload.MaxMB <= 0 {
		return errors.ConfigInvalid("upload limit must be positive")
	}
	if c.Session.TTL <= 0 {
		return errors.ConfigInvalid("session TTL must be positive")
	}
	supported := false
	for _, l := range SupportedLocales {
		if c.Locale == l {
			supported = true
			break
		}
	}
	if !supported {
		return errors.ConfigInvalid("unsupported locale " + strconv.Quote(c.Locale))
	}
	return nil
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
