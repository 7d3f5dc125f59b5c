// Package config loads tper settings from defaults, an optional YAML file,
// environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/tper/pkg/llm"
	"github.com/aretw0/tper/pkg/persistence/middleware"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "tper.yaml"

// Scratchpad backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds every tunable of a session.
type Config struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`

	MaxIterations  int           `yaml:"max_iterations"`
	MaxSteps       int           `yaml:"max_steps"`
	CleanupTimeout time.Duration `yaml:"cleanup_timeout"`

	Scratchpad ScratchpadConfig `yaml:"scratchpad"`

	MetricsAddr string `yaml:"metrics_addr"`
	Debug       bool   `yaml:"debug"`
}

// ScratchpadConfig selects where phase artifacts live while a workflow runs.
type ScratchpadConfig struct {
	Backend  string        `yaml:"backend"`
	RedisURL string        `yaml:"redis_url"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`

	// EncryptionKey is a base64 AES-256 key; when set, artifact values are sealed at rest.
	EncryptionKey string `yaml:"encryption_key"`
	// Redact lists regular expressions masked out of artifacts before storage.
	Redact []string `yaml:"redact"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider:       "openai",
		Temperature:    0.7,
		MaxTokens:      2048,
		MaxIterations:  3,
		MaxSteps:       5,
		CleanupTimeout: 5 * time.Second,
		Scratchpad: ScratchpadConfig{
			Backend: BackendMemory,
			TTL:     time.Hour,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and the environment.
// An empty path means DefaultFile, which may be absent; an explicit path must exist.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	c.Provider = NormalizeProvider(c.Provider)
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("TPER_PROVIDER"); v != "" {
		c.Provider = NormalizeProvider(v)
	}
	if v := getenv("TPER_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("TPER_MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TPER_MAX_ITERATIONS: %w", err)
		}
		c.MaxIterations = n
	}
	if v := getenv("TPER_REDIS_URL"); v != "" {
		c.Scratchpad.Backend = BackendRedis
		c.Scratchpad.RedisURL = v
	}
	if v := getenv("TPER_SCRATCHPAD_KEY"); v != "" {
		c.Scratchpad.EncryptionKey = v
	}
	return nil
}

// NormalizeProvider folds a provider name from any source to its canonical form.
func NormalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate rejects settings the session cannot run with.
func (c *Config) Validate() error {
	if _, ok := llm.CredentialVar(c.Provider); !ok {
		return fmt.Errorf("unknown provider %q (supported: %s)", c.Provider, strings.Join(llm.Providers(), ", "))
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.CleanupTimeout <= 0 {
		return fmt.Errorf("cleanup_timeout must be positive, got %s", c.CleanupTimeout)
	}
	switch c.Scratchpad.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Scratchpad.RedisURL == "" {
			return errors.New("scratchpad backend redis requires redis_url")
		}
	default:
		return fmt.Errorf("unknown scratchpad backend %q", c.Scratchpad.Backend)
	}
	if c.Scratchpad.EncryptionKey != "" {
		if _, err := middleware.ParseKey(c.Scratchpad.EncryptionKey); err != nil {
			return fmt.Errorf("scratchpad encryption_key: %w", err)
		}
	}
	for _, p := range c.Scratchpad.Redact {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("scratchpad redact pattern %q: %w", p, err)
		}
	}
	return nil
}

// CredentialVar returns the environment variable that must hold the provider's API key.
func (c *Config) CredentialVar() string {
	v, _ := llm.CredentialVar(c.Provider)
	return v
}
