package domain

import "strings"

// Selectors holds the three tag selector categories of one summary request:
// Any (OR), All (AND), None (exclusion). An empty category does not
// constrain. Parsed once per request and immutable afterwards.
type Selectors struct {
	Any  []string
	All  []string
	None []string
}

// ParseSelectors parses user input into selector categories. Tokens are
// separated by commas or whitespace; a leading '+' puts the tag in All,
// a leading '!' in None, anything else in Any. The '#' prefix is optional.
func ParseSelectors(input string) Selectors {
	var sel Selectors
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	for _, field := range fields {
		switch {
		case strings.HasPrefix(field, "+"):
			if tag := NormalizeTag(field[1:]); tag != "" {
				sel.All = append(sel.All, tag)
			}
		case strings.HasPrefix(field, "!"):
			if tag := NormalizeTag(field[1:]); tag != "" {
				sel.None = append(sel.None, tag)
			}
		default:
			if tag := NormalizeTag(field); tag != "" {
				sel.Any = append(sel.Any, tag)
			}
		}
	}
	return sel
}

// Match reports whether a block carrying blockTags is included. Checks run
// in fixed order: Any requires at least one shared tag, All requires every
// member present, None requires no member present. Empty categories are
// vacuously satisfied.
func (s Selectors) Match(blockTags []string) bool {
	if len(s.Any) > 0 {
		found := false
		for _, tag := range blockTags {
			if containsTag(s.Any, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, required := range s.All {
		if !containsTag(blockTags, required) {
			return false
		}
	}
	for _, excluded := range s.None {
		if containsTag(blockTags, excluded) {
			return false
		}
	}
	return true
}

// Union returns Any ∪ All without duplicates, the tag set used for the
// coarse document-level filter.
func (s Selectors) Union() []string {
	seen := make(map[string]bool)
	var union []string
	for _, tag := range s.Any {
		if !seen[tag] {
			seen[tag] = true
			union = append(union, tag)
		}
	}
	for _, tag := range s.All {
		if !seen[tag] {
			seen[tag] = true
			union = append(union, tag)
		}
	}
	return union
}

// Empty reports whether no category constrains anything.
func (s Selectors) Empty() bool {
	return len(s.Any) == 0 && len(s.All) == 0 && len(s.None) == 0
}

func containsTag(set []string, tag string) bool {
	for _, t := range set {
		if t == tag {
			return true
		}
	}
	return false
}
