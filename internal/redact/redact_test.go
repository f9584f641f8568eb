package redact

import (
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text untouched", "hey, are we still on for lunch?", "hey, are we still on for lunch?"},
		{"email", "write to alice@example.com today", "write to " + EmailPlaceholder + " today"},
		{"http url", "click http://scam.example/login now", "click " + LinkPlaceholder + " now"},
		{"https url", "see https://example.com/a?b=c", "see " + LinkPlaceholder},
		{"plain phone", "call 555-123-4567 please", "call " + PhonePlaceholder + " please"},
		{"phone with country code", "call +1 (555) 123-4567", "call " + PhonePlaceholder},
		{"phone with dots", "call 555.123.4567", "call " + PhonePlaceholder},
		{"multiple emails", "a@b.com and c@d.org", EmailPlaceholder + " and " + EmailPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.input); got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactCoverage(t *testing.T) {
	input := "contact me at a@b.com or http://x.co or 555-123-4567"
	got := Redact(input)

	for _, raw := range []string{"a@b.com", "http://x.co", "555-123-4567"} {
		if strings.Contains(got, raw) {
			t.Errorf("output %q still contains %q", got, raw)
		}
	}

	// All three placeholders present, in the original relative order.
	want := "contact me at " + EmailPlaceholder + " or " + LinkPlaceholder + " or " + PhonePlaceholder
	if got != want {
		t.Errorf("Redact(%q) = %q, want %q", input, got, want)
	}
}

func TestRedactIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"no sensitive data here",
		"contact me at a@b.com or http://x.co or 555-123-4567",
		EmailPlaceholder + " " + LinkPlaceholder + " " + PhonePlaceholder,
		"mixed a@b.com text with " + PhonePlaceholder + " already redacted",
	}

	for _, input := range inputs {
		once := Redact(input)
		twice := Redact(once)
		if once != twice {
			t.Errorf("Redact not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
