package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.MT940.StrictBalances = true
	cfg.CSV.Timezone = "Europe/Moscow"

	path := filepath.Join(t.TempDir(), "stmtconv.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.MT940.StrictBalances)
	assert.Equal(t, "Local", cfg.CSV.Timezone)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stmtconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mt940:\n  strict_balances: true\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, got.MT940.StrictBalances)
	assert.Equal(t, "warn", got.Log.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stmtconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stmtconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))

	t.Setenv("STMTCONV_LOG_LEVEL", "error")
	t.Setenv("STMTCONV_LOG_FORMAT", "json")
	t.Setenv("STMTCONV_MT940_STRICT_BALANCES", "true")
	t.Setenv("STMTCONV_CSV_TIMEZONE", "UTC")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", got.Log.Level)
	assert.Equal(t, "json", got.Log.Format)
	assert.True(t, got.MT940.StrictBalances)
	assert.Equal(t, "UTC", got.CSV.Timezone)
}

func TestLoadBadEnvValue(t *testing.T) {
	t.Setenv("STMTCONV_MT940_STRICT_BALANCES", "maybe")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing environment")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stmtconv.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "level: warn")
	assert.Contains(t, contents, "strict_balances: false")
	assert.Contains(t, contents, "timezone: Local")
}

func TestLocation(t *testing.T) {
	cfg := Default()
	cfg.CSV.Timezone = "UTC"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.CSV.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty values", func(c *Config) { *c = Config{} }, ""},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "Level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "Format"},
		{"bad timezone", func(c *Config) { c.CSV.Timezone = "Mars/Olympus" }, "Timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("STMTCONV_LOG_LEVEL", "loud")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
