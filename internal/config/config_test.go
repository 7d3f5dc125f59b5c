package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "OPENAI_API_KEY", cfg.CredentialVar())
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	assert.Error(t, err)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: anthropic
model: claude-test
max_iterations: 2
cleanup_timeout: 2s
scratchpad:
  backend: memory
  ttl: 10m
`), 0o644))

	cfg, err := Load(path, env(map[string]string{
		"TPER_MAX_ITERATIONS": "4",
		"TPER_REDIS_URL":      "redis://localhost:6379/0",
	}))
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-test", cfg.Model)
	assert.Equal(t, 4, cfg.MaxIterations)
	assert.Equal(t, 5, cfg.MaxSteps)
	assert.Equal(t, 2*time.Second, cfg.CleanupTimeout)
	assert.Equal(t, BackendRedis, cfg.Scratchpad.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Scratchpad.RedisURL)
	assert.Equal(t, 10*time.Minute, cfg.Scratchpad.TTL)
	assert.Equal(t, "ANTHROPIC_API_KEY", cfg.CredentialVar())
}

func TestLoad_BadEnvNumber(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("", env(map[string]string{"TPER_MAX_ITERATIONS": "three"}))
	assert.ErrorContains(t, err, "TPER_MAX_ITERATIONS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Provider = "acme" }},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"zero steps", func(c *Config) { c.MaxSteps = 0 }},
		{"zero tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"zero cleanup timeout", func(c *Config) { c.CleanupTimeout = 0 }},
		{"redis without url", func(c *Config) { c.Scratchpad.Backend = BackendRedis }},
		{"unknown backend", func(c *Config) { c.Scratchpad.Backend = "etcd" }},
		{"short encryption key", func(c *Config) { c.Scratchpad.EncryptionKey = "c2hvcnQ=" }},
		{"bad redact pattern", func(c *Config) { c.Scratchpad.Redact = []string{"("} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_ScratchpadKeyFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	key := "AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE="

	cfg, err := Load("", env(map[string]string{"TPER_SCRATCHPAD_KEY": key}))
	require.NoError(t, err)
	assert.Equal(t, key, cfg.Scratchpad.EncryptionKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ProviderIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tper.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: \" Anthropic \"\n"), 0o644))

	cfg, err := Load(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.NoError(t, cfg.Validate())

	cfg, err = Load(path, env(map[string]string{"TPER_PROVIDER": "GROQ"}))
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.Provider)
}
