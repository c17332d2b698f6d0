// Package privacy masks voter contact details before they leave the process.
package privacy

import "strings"

const visibleDigits = 4

// MaskMobile keeps the last four digits of a mobile number and replaces the
// rest with '*' (e.g. "9876543210" -> "******3210"). Blank input stays blank;
// anything of four characters or fewer is masked entirely.
func MaskMobile(mobile string) string {
	m := strings.TrimSpace(mobile)
	if m == "" {
		return ""
	}
	runes := []rune(m)
	if len(runes) <= visibleDigits {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-visibleDigits) + string(runes[len(runes)-visibleDigits:])
}

// MaskName reduces a name to its initials, e.g. "Ram Kumar" -> "R. K.".
func MaskName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	initials := make([]string, len(parts))
	for i, p := range parts {
		initials[i] = string([]rune(p)[0]) + "."
	}
	return strings.Join(initials, " ")
}
