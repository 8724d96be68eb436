// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookup.
// Emails are compared case-insensitively throughout the app, so every
// path that touches the users collection must go through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// URL trims surrounding whitespace from a URL field.
func URL(s string) string {
	return strings.TrimSpace(s)
}
