// Package config handles configuration for the snake server: defaults,
// an optional JSON file, the environment (and a .env file), and
// command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the snake server.
//
// Fields:
//   - EndpointAddr: HTTP listen address (":3000").
//   - DatabaseDSN: storage location. A SQLite file path (or ":memory:"),
//     or a postgres:// URL which selects the pgx driver.
//   - SecretKey: HMAC secret for signing session tokens (HS256). When empty
//     a random key is generated at startup and sessions do not survive a restart.
//   - SessionValidityDuration: lifetime of a login session.
//   - BcryptCost: work factor for password hashing.
type Config struct {
	EndpointAddr            string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	BcryptCost              int
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.DatabaseDSN = "snake.db"
	c.SecretKey = "snake-secret"
	c.SessionValidityDuration = 24 * time.Hour
	c.BcryptCost = 10
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg, ".env")
	parseFlags(cfg)
	return cfg
}
