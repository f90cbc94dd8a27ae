package widget

import (
	"strings"
	"unicode/utf8"
)

const maxNameLength = 100

// DeriveName turns a page path into a counter name: query and fragment
// are dropped, slashes trimmed, and the root path maps to "index". The
// result is clamped to the service's 100-character limit on a rune
// boundary so multi-byte paths never yield invalid UTF-8.
func DeriveName(page string) string {
	if i := strings.IndexAny(page, "?#"); i >= 0 {
		page = page[:i]
	}
	name := strings.Trim(page, "/")
	if name == "" {
		name = "index"
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		runes := []rune(name)
		name = string(runes[:maxNameLength])
	}
	return name
}
