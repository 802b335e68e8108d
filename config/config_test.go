package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load from picking up a real config file or API key.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("JINA_API_KEY", "")
	t.Setenv("LINKHARVEST_API_KEY", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, "https://r.jina.ai", cfg.Endpoint)
	assert.Equal(t, time.Second, cfg.Delay)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, ReaderEndpoint, cfg.Reader)
	assert.Equal(t, "markdown", cfg.LocalFormat)
	assert.True(t, cfg.RespectRobots)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "linkharvest.yaml")
	content := `
api_key: from-file
delay: 250ms
reader: LOCAL
local_format: text
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.Equal(t, ReaderLocal, cfg.Reader)
	assert.Equal(t, "text", cfg.LocalFormat)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("LINKHARVEST_DELAY", "2s")
	t.Setenv("LINKHARVEST_LOGGING_LEVEL", "warn")
	t.Setenv("JINA_API_KEY", "from-jina-env")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Delay)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "from-jina-env", cfg.APIKey)

	t.Setenv("LINKHARVEST_API_KEY", "from-prefixed-env")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-prefixed-env", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Endpoint:    "https://r.jina.ai",
			Delay:       time.Second,
			Timeout:     time.Minute,
			Reader:      ReaderEndpoint,
			LocalFormat: "markdown",
			Logging:     LoggingConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad reader", func(c *Config) { c.Reader = "browser" }},
		{"bad endpoint", func(c *Config) { c.Endpoint = "not a url" }},
		{"bad local format", func(c *Config) { c.LocalFormat = "pdf" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
