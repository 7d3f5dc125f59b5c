package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/tper/pkg/ports"
)

// Mask replaces every redacted match.
const Mask = "***"

type redactMiddleware struct {
	next     ports.Scratchpad
	patterns []*regexp.Regexp
}

// NewRedactMiddleware masks substrings of artifact values matching any of the
// patterns before they reach the backend. Reads return the masked text.
func NewRedactMiddleware(patterns []string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return func(next ports.Scratchpad) ports.Scratchpad {
		return &redactMiddleware{next: next, patterns: compiled}
	}, nil
}

func (m *redactMiddleware) Put(ctx context.Context, workflowID, key, value string) error {
	for _, p := range m.patterns {
		value = p.ReplaceAllString(value, Mask)
	}
	return m.next.Put(ctx, workflowID, key, value)
}

func (m *redactMiddleware) Get(ctx context.Context, workflowID, key string) (string, error) {
	return m.next.Get(ctx, workflowID, key)
}

func (m *redactMiddleware) List(ctx context.Context, workflowID string) ([]string, error) {
	return m.next.List(ctx, workflowID)
}

func (m *redactMiddleware) Purge(ctx context.Context, workflowID string) error {
	return m.next.Purge(ctx, workflowID)
}
