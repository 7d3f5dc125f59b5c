package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialVar(t *testing.T) {
	v, ok := CredentialVar("openai")
	assert.True(t, ok)
	assert.Equal(t, "OPENAI_API_KEY", v)

	_, ok = CredentialVar("ollama")
	assert.False(t, ok)

	assert.Equal(t, []string{"anthropic", "groq", "mistral", "openai"}, Providers())
}
