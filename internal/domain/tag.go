package domain

import "strings"

// TagOccurrence is one appearance of a tag within a document. Start and End
// are zero-based line numbers; End is the last line of the block the tag
// belongs to. Multiple occurrences of the same tag may exist per document.
type TagOccurrence struct {
	Name  string
	Start int
	End   int
}

// NormalizeTag trims whitespace and ensures the leading '#'.
func NormalizeTag(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return s
}
