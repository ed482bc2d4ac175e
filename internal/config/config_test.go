package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ARXIVQUERY_") {
			key := strings.SplitN(env, "=", 2)[0]
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Server defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)

	// Metrics defaults
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	// arXiv defaults
	assert.Equal(t, "https://export.arxiv.org/api", cfg.ArXiv.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.ArXiv.Timeout)
	assert.InDelta(t, 1.0/3.0, cfg.ArXiv.RateLimit, 1e-9)
	assert.Equal(t, 1, cfg.ArXiv.BurstSize)
	assert.Equal(t, 10, cfg.ArXiv.MaxResults)

	// Parser defaults
	assert.Equal(t, -9, cfg.Parser.TimezoneOffsetHours)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("ARXIVQUERY_SERVER_HTTP_PORT", "8888")
	t.Setenv("ARXIVQUERY_LOGGING_LEVEL", "debug")
	t.Setenv("ARXIVQUERY_LOGGING_FORMAT", "console")
	t.Setenv("ARXIVQUERY_ARXIV_BASE_URL", "http://localhost:9999/api")
	t.Setenv("ARXIVQUERY_ARXIV_MAX_RESULTS", "50")
	t.Setenv("ARXIVQUERY_PARSER_TIMEZONE_OFFSET_HOURS", "9")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8888, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "http://localhost:9999/api", cfg.ArXiv.BaseURL)
	assert.Equal(t, 50, cfg.ArXiv.MaxResults)
	assert.Equal(t, 9, cfg.Parser.TimezoneOffsetHours)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "0.0.0.0", HTTPPort: 8080},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "json",
			},
			ArXiv: ArXivConfig{
				BaseURL:    "https://export.arxiv.org/api",
				RateLimit:  1.0 / 3.0,
				MaxResults: 10,
			},
			Parser: ParserConfig{TimezoneOffsetHours: -9},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name        string
		modify      func(*Config)
		expectedErr string
	}{
		{
			name:        "invalid HTTP port",
			modify:      func(c *Config) { c.Server.HTTPPort = 0 },
			expectedErr: "invalid HTTP port",
		},
		{
			name:        "port above range",
			modify:      func(c *Config) { c.Server.HTTPPort = 70000 },
			expectedErr: "invalid HTTP port",
		},
		{
			name:        "invalid log level",
			modify:      func(c *Config) { c.Logging.Level = "verbose" },
			expectedErr: "invalid log level",
		},
		{
			name:        "invalid log format",
			modify:      func(c *Config) { c.Logging.Format = "logfmt" },
			expectedErr: "invalid log format",
		},
		{
			name:        "missing arxiv base URL",
			modify:      func(c *Config) { c.ArXiv.BaseURL = "" },
			expectedErr: "arxiv base URL is required",
		},
		{
			name:        "non-positive rate limit",
			modify:      func(c *Config) { c.ArXiv.RateLimit = 0 },
			expectedErr: "rate limit must be positive",
		},
		{
			name:        "non-positive max results",
			modify:      func(c *Config) { c.ArXiv.MaxResults = -1 },
			expectedErr: "max_results must be positive",
		},
		{
			name:        "timezone offset out of range",
			modify:      func(c *Config) { c.Parser.TimezoneOffsetHours = -15 },
			expectedErr: "timezone offset out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestServerConfig_HTTPAddress(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", HTTPPort: 8080}
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddress())
}
