package internal

import "strings"

// Hyphenate converts identifier-safe keys into DNS-label safe names.
func Hyphenate(value string) string {
	return strings.ReplaceAll(value, "_", "-")
}
