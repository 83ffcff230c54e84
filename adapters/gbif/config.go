package gbif

import (
	"time"

	"namecorrector/internal/errors"
)

// DefaultBaseURL is the public GBIF API root
const DefaultBaseURL = "https://api.gbif.org/v1"

// Config holds configuration for the species-match client
type Config struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"` // zero keeps the http.Client default (no deadline)
	Strict  bool          `json:"strict"`  // disable fuzzy matching
	Kingdom string        `json:"kingdom"` // optional classification hint, e.g. "Plantae"
}

// DefaultConfig returns the public endpoint with no timeout override
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL}
}

// Validate checks if the configuration is usable
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.ConfigInvalid("gbif base URL is required")
	}
	if c.Timeout < 0 {
		return errors.ConfigInvalid("gbif timeout cannot be negative")
	}
	return nil
}
