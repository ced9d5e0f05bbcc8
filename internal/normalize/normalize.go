// Package normalize reduces raw identifier strings (CPF, phone) to their
// canonical digit-only form.
package normalize

import "strings"

// Digits returns only the decimal digit characters of s, in original order.
// Idempotent and total: empty input yields an empty string.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
