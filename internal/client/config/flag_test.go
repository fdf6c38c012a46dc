package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-d", "x.db", "-k", "key", "-m", "m1", "-t", "10m", "-s", "math", "-l", "error"}, expectPanic: false,
			expected: &Config{DatabaseDSN: "x.db", APIKey: "key", Model: "m1", ResetTokenTTL: 10 * time.Minute, TokenSource: "math", LogLevel: slog.LevelError}},
		{name: "Test2 unrelated flags ignored", args: []string{"cmd", "-c", "cfg.json", "-o", "http://o", "-u", "http://u"}, expectPanic: false,
			expected: &Config{AppOrigin: "http://o", APIBaseURL: "http://u"}},
		{name: "Test3 incorrect ttl", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
		{name: "Test4 incorrect level", args: []string{"cmd", "-l", "loud"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
