package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SanitizeText keeps only the characters legacy accounting imports accept in
// reference/description fields: alphanumerics, space, underscore and hyphen.
// The result is trimmed and truncated to maxLen (0 means no limit).
func SanitizeText(s string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if maxLen > 0 && len(out) > maxLen {
		out = strings.TrimSpace(out[:maxLen])
	}
	return out
}

// SanitizeGLCode strips the separators clubs habitually type into GL codes
// ("8400/000", "1000-000") so the code matches what the external package
// stores internally.
func SanitizeGLCode(code string) string {
	replacer := strings.NewReplacer("/", "", " ", "", "-", "")
	return replacer.Replace(strings.TrimSpace(code))
}

// DigitsOnly drops every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatAmount renders a monetary value with exactly two decimals, the way
// flat-file accounting imports expect it.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
