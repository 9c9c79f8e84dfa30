package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "URL contains invalid control characters")
		}
	}

	return nil
}

// languageCodeRegex matches three-letter ISO 639-2 T language codes.
var languageCodeRegex = regexp.MustCompile(`^[a-z]{3}$`)

// ValidateLanguage validates an ISO 639-2 T language override.
// An empty string is valid and means automatic language detection.
func ValidateLanguage(code string) error {
	if code == "" {
		return nil
	}
	if !languageCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidLanguage, "language must be a three-letter ISO 639-2 T code (e.g., 'eng'), got %q", code)
	}
	return nil
}

// endpointRegex matches Rosette endpoint names like "syntax/dependencies"
// or the legacy underscore spelling "syntax_dependencies".
var endpointRegex = regexp.MustCompile(`^[a-z]+([/_][a-z]+)*$`)

// ValidateEndpoint validates an API endpoint name.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return New(ErrCodeInvalidInput, "endpoint cannot be empty")
	}
	if !endpointRegex.MatchString(endpoint) {
		return New(ErrCodeInvalidInput, "invalid endpoint name: %q", endpoint)
	}
	return nil
}
