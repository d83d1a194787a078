package domain

import "slices"

// Document identifies one markdown file in the vault.
type Document struct {
	Path string // relative path from vault root, unique
	Name string // display name (filename without extension)
}

// SortDocuments sorts documents by path in ascending ordinal order.
// Summary output depends on this ordering being deterministic.
func SortDocuments(docs []Document) {
	slices.SortFunc(docs, func(a, b Document) int {
		if a.Path < b.Path {
			return -1
		}
		if a.Path > b.Path {
			return 1
		}
		return 0
	})
}

// FileMetadata is the structural index extracted from one markdown file.
type FileMetadata struct {
	Tags            []TagOccurrence
	Items           []ListItem
	FrontmatterTags []string
}

// TagNames returns the unique tag names of the file, inline occurrences
// and frontmatter tags combined, in first-seen order.
func (m *FileMetadata) TagNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range m.Tags {
		if !seen[t.Name] {
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	for _, name := range m.FrontmatterTags {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
