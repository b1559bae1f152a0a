package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"server_addr":   "http://remote:9000",
		"store_dsn":     "other.db",
		"poll_interval": "10s",
	})

	t.Run("loads from flag-named file", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJSON(cfg)

		assert.Equal(t, "http://remote:9000", cfg.ServerAddr)
		assert.Equal(t, "other.db", cfg.StoreDSN)
		assert.Equal(t, 10*time.Second, cfg.PollInterval)
		// not present in the file, default survives
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	})

	t.Run("no config flag leaves cfg untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerAddr: "http://defaults:1234", PollInterval: 42 * time.Second}
		parseJSON(cfg)

		assert.Equal(t, "http://defaults:1234", cfg.ServerAddr)
		assert.Equal(t, 42*time.Second, cfg.PollInterval)
	})

	t.Run("unreadable file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "missing.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJSON(cfg) })
	})
}
