package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teilomillet/gollm"
)

func testConfig() Config {
	return Config{
		Provider: "openai",
		Model:    "test-model",
		Retry: &RetryPolicy{
			MaxRetries:        2,
			BaseDelay:         time.Millisecond,
			MaxDelay:          time.Millisecond,
			BackoffMultiplier: 1,
		},
	}
}

func TestClient_Complete(t *testing.T) {
	calls := 0
	c := newClient(testConfig(), func(ctx context.Context, p *gollm.Prompt) (string, error) {
		calls++
		if p == nil {
			t.Fatal("prompt should not be nil")
		}
		return "an answer", nil
	})

	got, err := c.Complete(context.Background(), "be brief", "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "an answer" || calls != 1 {
		t.Errorf("expected single call returning the answer, got %q after %d", got, calls)
	}
	if c.Provider() != "openai" || c.Model() != "test-model" {
		t.Errorf("unexpected identity %s/%s", c.Provider(), c.Model())
	}
}

func TestClient_Complete_RetriesTransient(t *testing.T) {
	calls := 0
	c := newClient(testConfig(), func(ctx context.Context, p *gollm.Prompt) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("503 service unavailable")
		}
		return "recovered", nil
	})

	got, err := c.Complete(context.Background(), "", "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" || calls != 2 {
		t.Errorf("expected recovery on second call, got %q after %d", got, calls)
	}
}

func TestClient_Complete_EmptyCompletionIsError(t *testing.T) {
	c := newClient(testConfig(), func(ctx context.Context, p *gollm.Prompt) (string, error) {
		return "   ", nil
	})

	_, err := c.Complete(context.Background(), "", "question")
	var llmErr *Error
	if !errors.As(err, &llmErr) || llmErr.Kind != KindProvider {
		t.Fatalf("expected provider error for empty completion, got %v", err)
	}
}

func TestClient_Complete_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	c := newClient(testConfig(), func(ctx context.Context, p *gollm.Prompt) (string, error) {
		calls++
		cancel()
		return "", errors.New("request failed")
	})

	_, err := c.Complete(ctx, "", "question")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("cancelled completions must not be retried, got %d calls", calls)
	}
}

func TestDefaultModel(t *testing.T) {
	if DefaultModel("openai") != "gpt-4o-mini" {
		t.Error("unexpected openai default")
	}
	if DefaultModel("anthropic") == "" || DefaultModel("unknown") == "" {
		t.Error("every provider needs a default model")
	}
}
