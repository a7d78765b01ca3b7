package storage

import "strings"

// NormalizeHandle strips the leading "@" marker and lowercases the handle so
// lookups are case-insensitive regardless of how the user typed it.
func NormalizeHandle(handle string) string {
	h := strings.TrimSpace(handle)
	h = strings.TrimPrefix(h, "@")
	return strings.ToLower(h)
}
