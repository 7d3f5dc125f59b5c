package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a provider failure.
type Kind string

const (
	KindAuth          Kind = "auth"
	KindAccessDenied  Kind = "access_denied"
	KindNotFound      Kind = "not_found"
	KindRateLimit     Kind = "rate_limit"
	KindContextLength Kind = "context_length"
	KindServer        Kind = "server"
	KindTimeout       Kind = "timeout"
	KindContentFilter Kind = "content_filter"
	KindAborted       Kind = "aborted"
	KindProvider      Kind = "provider"
)

// Error is a classified LLM failure.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is transient.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimit, KindServer, KindTimeout, KindProvider:
		return true
	default:
		return false
	}
}

// IsRetryable returns true if the error is safe to retry.
// Unclassified errors default to retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Retryable()
	}
	return true
}

// classify converts a gollm error into the taxonomy based on its message.
// gollm does not expose status codes, so message inspection is all there is.
func classify(provider string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	lower := strings.ToLower(msg)

	kind := KindProvider
	switch {
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized") || strings.Contains(lower, "invalid api key") || strings.Contains(lower, "invalid key"):
		kind = KindAuth
	case strings.Contains(lower, "403") || strings.Contains(lower, "forbidden"):
		kind = KindAccessDenied
	case strings.Contains(lower, "404") || strings.Contains(lower, "not found"):
		kind = KindNotFound
	case strings.Contains(lower, "429") || strings.Contains(lower, "rate limit"):
		kind = KindRateLimit
	case strings.Contains(lower, "context length") || strings.Contains(lower, "too many tokens"):
		kind = KindContextLength
	case strings.Contains(lower, "500") || strings.Contains(lower, "502") || strings.Contains(lower, "503") || strings.Contains(lower, "internal server"):
		kind = KindServer
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		kind = KindTimeout
	case strings.Contains(lower, "content filter") || strings.Contains(lower, "safety"):
		kind = KindContentFilter
	}

	return &Error{Kind: kind, Provider: provider, Message: msg, Cause: err}
}
