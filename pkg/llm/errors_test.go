package llm

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		errMsg    string
		expected  Kind
		retryable bool
	}{
		{"401 Unauthorized", KindAuth, false},
		{"invalid api key", KindAuth, false},
		{"403 Forbidden", KindAccessDenied, false},
		{"404 not found", KindNotFound, false},
		{"429 rate limit exceeded", KindRateLimit, true},
		{"context length exceeded", KindContextLength, false},
		{"500 internal server error", KindServer, true},
		{"timeout waiting for response", KindTimeout, true},
		{"content filter triggered", KindContentFilter, false},
		{"something unknown", KindProvider, true},
	}

	for _, tt := range tests {
		err := classify("openai", errors.New(tt.errMsg))

		var llmErr *Error
		if !errors.As(err, &llmErr) {
			t.Fatalf("for %q: expected *Error, got %T", tt.errMsg, err)
		}
		if llmErr.Kind != tt.expected {
			t.Errorf("for %q: expected kind %s, got %s", tt.errMsg, tt.expected, llmErr.Kind)
		}
		if IsRetryable(err) != tt.retryable {
			t.Errorf("for %q: expected retryable=%v", tt.errMsg, tt.retryable)
		}
		if llmErr.Provider != "openai" {
			t.Errorf("for %q: provider not recorded", tt.errMsg)
		}
	}
}

func TestClassify_Nil(t *testing.T) {
	if classify("openai", nil) != nil {
		t.Error("classify(nil) should be nil")
	}
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("429 rate limit")
	err := classify("anthropic", cause)

	if !errors.Is(err, cause) {
		t.Error("classified error should unwrap to its cause")
	}
	if got := err.Error(); got != "[anthropic] rate_limit: 429 rate limit" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestIsRetryable_Unclassified(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
	if !IsRetryable(errors.New("mystery")) {
		t.Error("unclassified errors default to retryable")
	}
}
