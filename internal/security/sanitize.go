// Package security holds the pure input-hygiene helpers the registration
// workflow depends on: field sanitization, format validation, password
// strength scoring, and CSRF token shape handling.
package security

import (
	"regexp"
	"strings"

	"portal/internal/errors"
)

// ErrUnsafeInput is returned when a value still looks like an injection
// attempt after sanitization stripped the usual markup vectors.
var ErrUnsafeInput = errors.New("input contains disallowed content")

// Sanitize runs on every field update, so the patterns are compiled once
// and applied as a single pass each.
var (
	scriptTagPattern    = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	htmlTagPattern      = regexp.MustCompile(`(?s)<[^>]*>`)
	jsURIPattern        = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	quotePattern        = regexp.MustCompile("[\"'`\\\\]")
	sqlKeywordPattern   = regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER)\b`)
)

// Sanitize strips script tags, remaining HTML tags, javascript: URIs, inline
// event-handler attributes, and quote/backslash characters, then trims
// whitespace. The cleaned value is rejected outright when it still matches a
// whole-word SQL keyword, since no legitimate form field contains one.
func Sanitize(input string) (string, error) {
	cleaned := scriptTagPattern.ReplaceAllString(input, "")
	cleaned = htmlTagPattern.ReplaceAllString(cleaned, "")
	cleaned = jsURIPattern.ReplaceAllString(cleaned, "")
	cleaned = eventHandlerPattern.ReplaceAllString(cleaned, "")
	cleaned = quotePattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if sqlKeywordPattern.MatchString(cleaned) {
		return "", errors.Wrapf(ErrUnsafeInput, "sanitize %q", input)
	}

	return cleaned, nil
}
