package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateDispatchID creates a standardized, human-readable dispatch ID.
// Format: {kebab-cased request name}-{8charHexUUID}
//
// Example:
//   - Input: requestName="GreetCommand"
//   - Output: "greet-command-a3f8e2b1"
//
// The generated IDs are:
//   - Human-readable with a clear request type
//   - Globally unique via UUID suffix
//   - Stable in format across all request types, so log lines correlate
func GenerateDispatchID(requestName string) string {
	name := kebabCase(requestName)
	if name == "" {
		name = "request"
	}
	return name + "-" + generateShortUUID()
}

// kebabCase converts a CamelCase type name to kebab-case.
// Handles acronym runs:
//   - "GreetCommand" -> "greet-command"
//   - "GetHTTPStatusQuery" -> "get-http-status-query"
//   - "greeted" -> "greeted"
func kebabCase(name string) string {
	var b strings.Builder
	runes := []rune(name)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Break before an upper rune that starts a new word: either the
			// previous rune is lower, or the next rune is lower (end of an
			// acronym run like "HTTPStatus")
			if i > 0 {
				prevLower := unicode.IsLower(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || nextLower {
					b.WriteRune('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	// Remove hyphens and take first 8 characters
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
