package domain

import "strings"

// ExitCommands are the inputs that end an interactive session.
var ExitCommands = []string{"quit", "exit", "q"}

// IsExitCommand reports whether input matches an exit keyword, ignoring case
// and surrounding whitespace.
func IsExitCommand(input string) bool {
	input = strings.TrimSpace(input)
	for _, cmd := range ExitCommands {
		if strings.EqualFold(input, cmd) {
			return true
		}
	}
	return false
}

// ValidateRequest trims the request and rejects it when nothing is left.
func ValidateRequest(input string) (string, error) {
	request := strings.TrimSpace(input)
	if request == "" {
		return "", ErrEmptyRequest
	}
	return request, nil
}
