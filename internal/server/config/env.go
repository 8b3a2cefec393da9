package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig lists the environment variables understood by the server.
// PORT and DB_PATH keep the names used by earlier deployments.
type EnvConfig struct {
	Port            string        `env:"PORT"`
	DatabaseDSN     string        `env:"DB_PATH"`
	SecretKey       string        `env:"SECRET_KEY"`
	SessionValidity time.Duration `env:"SESSION_VALIDITY"`
	BcryptCost      int           `env:"BCRYPT_COST"`
}

// parseEnv loads dotEnvFile (if it exists; real environment variables win)
// and overlays every variable that is set. Malformed values panic.
func parseEnv(config *Config, dotEnvFile string) {
	if dotEnvFile != "" {
		if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Errorf("load %s: %w", dotEnvFile, err))
		}
	}

	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}

	if e.Port != "" {
		config.EndpointAddr = portToAddr(e.Port)
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.SessionValidity > 0 {
		config.SessionValidityDuration = e.SessionValidity
	}
	if e.BcryptCost > 0 {
		config.BcryptCost = e.BcryptCost
	}
}

// portToAddr turns a bare port ("8080") into a listen address (":8080").
func portToAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
