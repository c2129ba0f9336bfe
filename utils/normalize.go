package utils

import (
	"strings"
	"unicode"
)

// CollapseLower lower-cases s and collapses runs of whitespace to single
// spaces, trimming the ends.
func CollapseLower(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// DigitsOnly strips everything but decimal digits from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CustomerKey builds the normalized customer identity used as a fallback
// when payment records lack a reliable call id. Two distinct customers with
// identical name, phone and address will alias to the same key; results
// built on this key are labelled Heuristic so they can be audited.
func CustomerKey(name, phone, address string) string {
	return CollapseLower(name) + "|" + DigitsOnly(phone) + "|" + strings.ToLower(strings.TrimSpace(address))
}
