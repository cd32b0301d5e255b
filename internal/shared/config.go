package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variable names for customer.io credentials.
const (
	EnvSiteID = "CUSTOMERIO_SITE_ID"
	EnvAPIKey = "CUSTOMERIO_API_KEY"
)

// Config represents the application configuration loaded from a TOML file.
//
// Credentials are intentionally absent: the site ID and API key only come from
// the process environment (see [LoadCredentials]).
type Config struct {
	CustomerIO CustomerIOConfig `toml:"customerio"`
	Engine     EngineConfig     `toml:"engine"`
	Audit      AuditConfig      `toml:"audit"`
}

// CustomerIOConfig contains non-secret customer.io API settings.
type CustomerIOConfig struct {
	Region string `toml:"region"` // "us" or "eu"
}

// EngineConfig contains purge engine tuning values.
//
// The jitter range and progress interval defaults are hand-tuned rather than
// derived, so everything here is overridable.
type EngineConfig struct {
	Workers       int     `toml:"workers"`
	JitterMinMs   int     `toml:"jitter_min_ms"`
	JitterMaxMs   int     `toml:"jitter_max_ms"`
	ProgressEvery int     `toml:"progress_every"`
	RateLimit     float64 `toml:"rate_limit"` // requests per second, 0 disables
	BatchSize     int     `toml:"batch_size"` // sequential mode
	FlatDelayMs   int     `toml:"flat_delay_ms"`
}

// AuditConfig contains settings for the local outcome audit log.
type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Credentials holds the customer.io Track API credential pair.
type Credentials struct {
	SiteID string
	APIKey string
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadCredentials reads the customer.io credential pair from the environment.
//
// Both values are required; a missing one is fatal before any API traffic
// happens, so callers should check this before reading input files.
func LoadCredentials() (*Credentials, error) {
	siteID := os.Getenv(EnvSiteID)
	apiKey := os.Getenv(EnvAPIKey)

	if siteID == "" || apiKey == "" {
		return nil, fmt.Errorf("%w: set %s and %s in the environment or a .env file",
			ErrMissingCredentials, EnvSiteID, EnvAPIKey)
	}

	return &Credentials{SiteID: siteID, APIKey: apiKey}, nil
}
