package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxInputLength bounds every free-text search field.
const maxInputLength = 200

// ValidateInput validates a free-text search field (department, course ids,
// gen-ed tag, professor name). Empty input is valid; it means "not given".
//
// The validation rules are intentionally conservative:
//   - No control characters or null bytes
//   - No path separators or traversal sequences, since course ids end up
//     in URL paths
//   - Maximum length of 200 characters
func ValidateInput(field, value string) error {
	if value == "" {
		return nil
	}

	if len(value) > maxInputLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, maxInputLength)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "?", "#"} {
		if strings.Contains(value, pattern) {
			return New(ErrCodeInvalidInput, "%s contains invalid characters: %q", field, pattern)
		}
	}

	return nil
}

var semesterRegex = regexp.MustCompile(`^[0-9]{6}$`)

// ValidateSemester validates a YYYYMM semester code. Empty means unset.
func ValidateSemester(code string) error {
	if code == "" {
		return nil
	}
	if !semesterRegex.MatchString(code) {
		return New(ErrCodeInvalidSemester, "semester must be a 6-digit YYYYMM code: %q", code)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "URL must use http or https scheme")
	}

	return nil
}
