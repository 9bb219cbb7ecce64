package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
logger:
  level: ${NOTES_TEST_LOG_LEVEL:-debug}
server:
  port_grpc: ${NOTES_TEST_GRPC_PORT:-6000}
  port_http: 7000
  use_reflection: true
gateway:
  cors_allowed_origins: "http://a.test, http://b.test"
swagger:
  enabled: ${NOTES_TEST_SWAGGER:-false}
events:
  topic_url: mem://notes
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("NOTES_TEST_SET", "value")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "set variable", in: "${NOTES_TEST_SET}", want: "value"},
		{name: "set variable ignores default", in: "${NOTES_TEST_SET:-other}", want: "value"},
		{name: "unset variable uses default", in: "${NOTES_TEST_UNSET:-fallback}", want: "fallback"},
		{name: "unset variable without default", in: "${NOTES_TEST_UNSET}", want: ""},
		{name: "embedded", in: "http://${NOTES_TEST_UNSET:-localhost}:8080", want: "http://localhost:8080"},
		{name: "plain string", in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnvWithDefaults(tt.in))
		})
	}
}

func TestLoad_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("NOTES_TEST_GRPC_PORT", "6001")
	t.Setenv("NOTES_TEST_SWAGGER", "true")
	path := writeConfig(t, testConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 6001, cfg.Server.PortGRPC)
	assert.Equal(t, 7000, cfg.Server.PortHTTP)
	assert.True(t, cfg.Server.UseReflection)
	assert.True(t, cfg.Swagger.Enabled)
	assert.Equal(t, "mem://notes", cfg.Events.TopicURL)

	// Незаданные значения заполняются по умолчанию
	assert.Equal(t, DefaultGracefulShutdownTimeout, cfg.Server.GracefulShutdownTimeout)
	assert.Equal(t, DefaultRateLimitRPS, cfg.Gateway.RateLimitRPS)
	assert.Equal(t, DefaultEventBufferSize, cfg.Events.BufferSize)
	require.NotNil(t, cfg.NewRelic)
	assert.False(t, cfg.NewRelic.Enabled)
	assert.Equal(t, DefaultNewRelicAppName, cfg.NewRelic.AppName)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v.ReadInConfig")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultLogLevel, cfg.Logger.Level)
	assert.Equal(t, DefaultPortHTTP, cfg.Server.PortHTTP)
	assert.Equal(t, DefaultCORSAllowedOrigins, cfg.Gateway.CORSAllowedOrigins)
	assert.Equal(t, DefaultSwaggerProtocol, cfg.Swagger.Protocol)
}

func TestWatchConfig_ReloadsOnChange(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: info\n")

	var level atomic.Value
	err := WatchConfig(path, func(cfg *Config, err error) {
		if err == nil {
			level.Store(cfg.Logger.Level)
		}
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("logger:\n  level: warn\n"), 0o600))

	require.Eventually(t, func() bool {
		v, _ := level.Load().(string)
		return v == "warn"
	}, 5*time.Second, 50*time.Millisecond, "Expected reloaded level to be warn")
}
