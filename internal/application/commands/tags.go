package commands

import (
	"context"
	"sort"

	"github.com/chmac/tag-summary/internal/ports"
)

// TagCount pairs a tag name with the number of documents carrying it.
type TagCount struct {
	Name  string
	Count int
}

// ListTagsCommand lists every tag in the vault with its document count
type ListTagsCommand struct {
	store ports.DocumentStore
}

// NewListTagsCommand creates a new ListTagsCommand
func NewListTagsCommand(store ports.DocumentStore) *ListTagsCommand {
	return &ListTagsCommand{store: store}
}

// Execute runs the list tags command. Results are sorted by count
// descending, then name ascending.
func (c *ListTagsCommand) Execute(ctx context.Context) ([]TagCount, error) {
	docs, err := c.store.ListDocuments()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, doc := range docs {
		for _, name := range c.store.TagNames(doc) {
			counts[name]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, TagCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}
