package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/teilomillet/gollm"
)

// Config describes the provider backend.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	MaxTokens   int
	Temperature float64
	Retry       *RetryPolicy
	Logger      *slog.Logger
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case "anthropic":
		return "claude-sonnet-4-5-20250514"
	case "groq":
		return "llama-3.3-70b-versatile"
	case "mistral":
		return "mistral-large-latest"
	default:
		return "gpt-4o-mini"
	}
}

type generateFunc func(ctx context.Context, prompt *gollm.Prompt) (string, error)

// Client implements ports.Completer on top of a gollm.LLM.
type Client struct {
	provider string
	model    string
	generate generateFunc
	retry    RetryPolicy
	logger   *slog.Logger
}

// New creates a Client for the configured provider.
// If APIKey is empty, gollm reads the provider's key from the environment.
func New(cfg Config) (*Client, error) {
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	opts := []gollm.ConfigOption{
		gollm.SetProvider(cfg.Provider),
		gollm.SetModel(cfg.Model),
		gollm.SetMaxTokens(cfg.MaxTokens),
		gollm.SetTemperature(cfg.Temperature),
		gollm.SetMaxRetries(0), // We handle retries ourselves.
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if cfg.APIKey != "" {
		opts = append(opts, gollm.SetAPIKey(cfg.APIKey))
	}

	model, err := gollm.NewLLM(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gollm LLM for provider %s: %w", cfg.Provider, err)
	}

	generate := func(ctx context.Context, prompt *gollm.Prompt) (string, error) {
		return model.Generate(ctx, prompt)
	}
	return newClient(cfg, generate), nil
}

func newClient(cfg Config, generate generateFunc) *Client {
	retry := DefaultRetryPolicy()
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if retry.OnRetry == nil {
		retry.OnRetry = func(err error, attempt int, delay time.Duration) {
			logger.Warn("Retrying completion", "provider", cfg.Provider, "attempt", attempt, "delay", delay, "err", err)
		}
	}
	return &Client{
		provider: cfg.Provider,
		model:    cfg.Model,
		generate: generate,
		retry:    retry,
		logger:   logger,
	}
}

// Provider returns the provider identifier.
func (c *Client) Provider() string {
	return c.provider
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends system and prompt to the model and returns the generated text.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	var promptOpts []gollm.PromptOption
	if s := strings.TrimSpace(system); s != "" {
		promptOpts = append(promptOpts, gollm.WithSystemPrompt(s, gollm.CacheTypeEphemeral))
	}
	p := gollm.NewPrompt(prompt, promptOpts...)

	text, err := Retry(ctx, c.retry, func(ctx context.Context) (string, error) {
		out, err := c.generate(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("completion aborted: %w", ctx.Err())
			}
			return "", classify(c.provider, err)
		}
		if strings.TrimSpace(out) == "" {
			return "", &Error{Kind: KindProvider, Provider: c.provider, Message: "empty completion"}
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}

	c.logger.Debug("Completion received", "provider", c.provider, "model", c.model, "chars", len(text))
	return text, nil
}
