// Package redact removes personally identifying substrings from free text
// before it is sent to the model. Replacement is irreversible: each match is
// substituted with a fixed placeholder token.
package redact

import "regexp"

// Placeholder tokens are part of the observable contract and must not change.
const (
	EmailPlaceholder = "[email redacted]"
	LinkPlaceholder  = "[link redacted]"
	PhonePlaceholder = "[phone number redacted]"
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlRegex   = regexp.MustCompile(`https?://[^\s]+`)
	phoneRegex = regexp.MustCompile(`(\+\d{1,2}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
)

// Redact replaces email addresses, URLs, and phone numbers with their
// placeholder tokens. All three passes run unconditionally; the patterns do
// not overlap, so the order does not affect the result.
func Redact(text string) string {
	text = emailRegex.ReplaceAllString(text, EmailPlaceholder)
	text = urlRegex.ReplaceAllString(text, LinkPlaceholder)
	text = phoneRegex.ReplaceAllString(text, PhonePlaceholder)
	return text
}
