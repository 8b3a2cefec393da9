package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://10.0.0.2:3000", "-t", "120", "-v"}, expectPanic: false,
			expected: &Config{ServerURL: "http://10.0.0.2:3000", TickInterval: 120 * time.Millisecond, Verbose: true}},
		{name: "no flags keeps defaults", args: []string{"cmd"}, expectPanic: false,
			expected: &Config{ServerURL: "http://127.0.0.1:3000", TickInterval: 200 * time.Millisecond}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "x.json", "-t=80"}, expectPanic: false,
			expected: &Config{ServerURL: "http://127.0.0.1:3000", TickInterval: 80 * time.Millisecond}},
		{name: "incorrect tick interval", args: []string{"cmd", "-t", "fast"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}
			config.LoadDefaults()

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
