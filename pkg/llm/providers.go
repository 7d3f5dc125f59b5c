package llm

import "sort"

var credentialVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"groq":      "GROQ_API_KEY",
	"mistral":   "MISTRAL_API_KEY",
}

// CredentialVar returns the environment variable holding the API key for provider.
func CredentialVar(provider string) (string, bool) {
	v, ok := credentialVars[provider]
	return v, ok
}

// Providers lists the supported provider names.
func Providers() []string {
	names := make([]string, 0, len(credentialVars))
	for name := range credentialVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
