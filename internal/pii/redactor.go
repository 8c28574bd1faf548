// Package pii masks recognizable personal data in free text before it
// leaves the service. This is best-effort pattern masking: PII that does
// not match these shapes passes through, and a 10-digit order number will
// be masked like a phone number.
package pii

import "regexp"

var (
	phonePattern = regexp.MustCompile(`\b\d{10}\b`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	// A number followed by one or two words and a street-suffix token.
	addressPattern = regexp.MustCompile(`(?i)\d+\s+\w+(?:\s+\w+)?\s+(?:Street|St|Road|Rd|Nagar|Colony)\b`)
)

// Redact replaces phone numbers, email addresses and street-address
// fragments with placeholder tokens. Empty input is returned unchanged.
func Redact(text string) string {
	if text == "" {
		return text
	}
	text = phonePattern.ReplaceAllString(text, "[PHONE]")
	text = emailPattern.ReplaceAllString(text, "[EMAIL]")
	text = addressPattern.ReplaceAllString(text, "[ADDRESS]")
	return text
}
