package config

import "time"

// Config holds runtime settings for the FileTrack CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - SessionTimeout: inactivity window after which the session expires.
//   - RequestTimeout: per-request HTTP timeout.
//   - CredentialsDSN: path of the SQLite credential cache.
type Config struct {
	ServerBaseURL  string
	SessionTimeout time.Duration
	RequestTimeout time.Duration
	CredentialsDSN string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000/api"
	c.SessionTimeout = 3 * time.Minute
	c.RequestTimeout = 30 * time.Second
	c.CredentialsDSN = "filetrack.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
