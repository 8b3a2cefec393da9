package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DB_PATH", "SECRET_KEY", "SESSION_VALIDITY", "BCRYPT_COST"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3000", c.EndpointAddr)
	assert.Equal(t, "snake.db", c.DatabaseDSN)
	assert.Equal(t, "snake-secret", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	clearEnv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"snakeserver"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, ":3000", c.EndpointAddr)
	assert.Equal(t, "snake.db", c.DatabaseDSN)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/data/env.db")

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"snakeserver", "-d", "/data/flag.db"}

	c := LoadConfig()

	assert.Equal(t, ":8080", c.EndpointAddr, "env applies when no flag given")
	assert.Equal(t, "/data/flag.db", c.DatabaseDSN, "flag wins over env")
}
