package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  server:
    http:
      address: ":9090"
      read_timeout_seconds: 7
    cors: "https://vault.example.com, https://app.example.com"
instrument:
  enabled: true
  trace_sample_ratio: 0.25
  log_mask_fields:
    - secret
    - " uri "
    - ""
modules:
  authenticator:
    stream_max_seconds: 120
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.GetString("app.server.http.address"))
	assert.Equal(t, 7*time.Second, cfg.GetSecond("app.server.http.read_timeout_seconds"))
	assert.True(t, cfg.GetBool("instrument.enabled"))
	assert.InDelta(t, 0.25, cfg.GetFloat64("instrument.trace_sample_ratio"), 1e-9)
	assert.Equal(t, 120, cfg.GetInt("modules.authenticator.stream_max_seconds"))
	assert.Equal(t, uint(120), cfg.GetUint("modules.authenticator.stream_max_seconds"))
	assert.Equal(t, []string{"https://vault.example.com", "https://app.example.com"}, cfg.GetArray("app.server.cors"))
	assert.Equal(t, []string{"secret", "uri"}, cfg.GetArray("instrument.log_mask_fields"))
	assert.NoError(t, cfg.Close())
}

func TestNewViperFromBytes_Defaults(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte("app: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetString("app.server.http.address"))
	assert.Equal(t, 25*time.Second, cfg.GetSecond("modules.authenticator.heartbeat_seconds"))
	assert.True(t, cfg.GetBool("modules.authenticator.enabled"))
	assert.Equal(t, []string{"secret", "uri", "authorization"}, cfg.GetArray("instrument.log_mask_fields"))
	assert.Empty(t, cfg.GetArray("app.maintenance.endpoints"))
}

func TestNewViperFromBytes_EnvOverride(t *testing.T) {
	t.Setenv("AUTHENTICATOR_APP_SERVER_HTTP_ADDRESS", ":7070")

	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.GetString("app.server.http.address"))
}

func TestNewViperFromBytes_Errors(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sampleYAML))
	assert.Error(t, err)

	_, err = NewViperFromBytes("yaml", []byte("app: [unterminated"))
	assert.Error(t, err)
}

func TestNewViper(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sampleYAML), 0o600))

	cfg, err := NewViper(file)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.GetString("app.server.http.address"))

	_, err = NewViper(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
