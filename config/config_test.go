package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-flyweight/internal/logging"
	"github.com/goliatone/go-flyweight/pkg/testsupport"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestFromFile(t *testing.T) {
	s, err := FromFile(testsupport.FixturePath("settings.toml"))
	require.NoError(t, err)

	assert.Equal(t, 2048, s.Cache.Capacity)
	assert.Equal(t, 32, s.Cache.NumShards)
	assert.Equal(t, 5*time.Minute, s.Cache.TTL)
	require.NotNil(t, s.Cache.EarlyRefresh)
	assert.Equal(t, time.Minute, s.Cache.EarlyRefresh.MinAsyncRefreshTime)
	assert.Equal(t, logging.FormatConsole, s.Log.Format)
	assert.Equal(t, "calendar", s.Log.App)
	assert.True(t, s.Metrics.Enabled)
}

func TestFromFile_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := testsupport.TempFile(t, "partial.toml", []byte("[log]\nlevel = \"warn\"\n"))

	s, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, Default().Cache, s.Cache)
}

func TestFromFile_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[cache]\nsize = 10\n"},
		{"invalid value", "[cache]\ncapacity = 0\n"},
		{"invalid level", "[log]\nlevel = \"loud\"\n"},
		{"malformed", "[cache\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromFile(testsupport.TempFile(t, "bad.toml", []byte(tt.content)))
			assert.Error(t, err)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("FLYWEIGHT_CACHE_CAPACITY", "64")
	t.Setenv("FLYWEIGHT_CACHE_NUM_SHARDS", "4")
	t.Setenv("FLYWEIGHT_CACHE_TTL", "30s")
	t.Setenv("FLYWEIGHT_LOG_LEVEL", "error")
	t.Setenv("FLYWEIGHT_METRICS_ENABLED", "true")

	s, err := FromEnv(Default())
	require.NoError(t, err)

	assert.Equal(t, 64, s.Cache.Capacity)
	assert.Equal(t, 4, s.Cache.NumShards)
	assert.Equal(t, 30*time.Second, s.Cache.TTL)
	assert.Equal(t, "error", s.Log.Level)
	assert.True(t, s.Metrics.Enabled)
}

func TestFromEnv_DotEnvFile(t *testing.T) {
	path := testsupport.TempFile(t, "test.env", []byte("FLYWEIGHT_LOG_APP=from-file\nFLYWEIGHT_LOG_LEVEL=debug\n"))
	t.Setenv("FLYWEIGHT_LOG_LEVEL", "warn")
	// godotenv sets variables process wide; t.Setenv restores the original
	t.Setenv("FLYWEIGHT_LOG_APP", "")
	require.NoError(t, os.Unsetenv("FLYWEIGHT_LOG_APP"))

	s, err := FromEnv(Default(), path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", s.Log.App)
	assert.Equal(t, "warn", s.Log.Level, "existing variables win over the file")
}

func TestFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("FLYWEIGHT_CACHE_CAPACITY", "many")

	_, err := FromEnv(Default())
	assert.Error(t, err)
}
