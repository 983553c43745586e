package neuroner

import (
	"path/filepath"
	"strings"
)

// ReplaceUnicodeWhitespacesWithASCIIWhitespace collapses every run of
// Unicode whitespace to a single ASCII space and trims both ends.
func ReplaceUnicodeWhitespacesWithASCIIWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetBasenameWithoutExtension returns the last path element of `path` with
// its final extension removed.
func GetBasenameWithoutExtension(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
