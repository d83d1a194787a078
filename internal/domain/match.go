package domain

import "strings"

// Match is a resolved text region: an inclusive line range and its joined
// content. Matches are produced fresh per tag occurrence and never mutated.
type Match struct {
	Start int
	End   int
	Text  string
}

// Extract joins lines[start..end] inclusive. Callers guarantee
// 0 <= start <= end < len(lines); bounds are not re-checked here.
func Extract(lines []string, start, end int) Match {
	return Match{
		Start: start,
		End:   end,
		Text:  strings.Join(lines[start:end+1], "\n"),
	}
}

// ResolveTag resolves one tag occurrence to its text region. When the tag
// sits on the first line of a list item and includeChildren is set, the
// region expands to the enclosing root-level item and its whole subtree;
// otherwise the tag's own line range is used. The second return is false
// when root resolution degraded to the fallback item (malformed index);
// the caller decides whether to log it.
func ResolveTag(tag TagOccurrence, lines []string, items []ListItem, includeChildren bool) (Match, bool) {
	if !includeChildren || len(items) == 0 {
		return Extract(lines, tag.Start, tag.End), true
	}
	idx, ok := ItemAtLine(items, tag.Start)
	if !ok {
		return Extract(lines, tag.Start, tag.End), true
	}
	root, found := FindEnclosingRoot(items, idx)
	start, end := SubtreeSpan(items, root, idx)
	return Extract(lines, start, end), found
}
