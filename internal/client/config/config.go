package config

import "time"

// Config holds runtime settings for the terminal snake client.
//
// Fields:
//   - ServerURL: base URL of the snake server (scheme, host and port).
//   - TickInterval: time between game ticks.
//   - Verbose: log at debug level.
type Config struct {
	ServerURL    string
	TickInterval time.Duration
	Verbose      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.TickInterval = 200 * time.Millisecond
	c.Verbose = false
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
