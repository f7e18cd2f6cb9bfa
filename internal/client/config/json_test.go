package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url":"http://json:3000","timeout":"2s"}`), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, []string{"-c", path})

	assert.Equal(t, "http://json:3000", cfg.ServerURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestParseJson_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url":"http://json:3000"}`), 0o600))

	cfg := loadConfig([]string{"-config", path, "-a", "http://flag:3000"})

	assert.Equal(t, "http://flag:3000", cfg.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestParseJson_Panics(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))

	assert.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	assert.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(dir, "missing.json")}) })
}
