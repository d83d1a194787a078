package commands

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/chmac/tag-summary/internal/domain"
	"github.com/chmac/tag-summary/internal/ports"
	"github.com/chmac/tag-summary/internal/render"
)

const defaultWorkers = 4

// BuildSummaryCommand builds a summary document from tag selectors.
// Documents are resolved concurrently; results are joined in corpus order,
// so the output is deterministic for identical inputs.
type BuildSummaryCommand struct {
	store ports.DocumentStore
	log   *slog.Logger

	Selectors domain.Selectors
	Options   domain.Options
	Workers   int
}

// NewBuildSummaryCommand creates a new BuildSummaryCommand
func NewBuildSummaryCommand(store ports.DocumentStore, log *slog.Logger, sel domain.Selectors, opts domain.Options) *BuildSummaryCommand {
	return &BuildSummaryCommand{
		store:     store,
		log:       log,
		Selectors: sel,
		Options:   opts,
	}
}

// Execute runs the build and returns the rendered summary text.
func (c *BuildSummaryCommand) Execute(ctx context.Context) (string, error) {
	docs, err := c.store.ListDocuments()
	if err != nil {
		return "", err
	}

	docs = c.filterDocuments(docs)
	domain.SortDocuments(docs)

	workers := c.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(docs) {
		workers = len(docs)
	}

	// Each worker writes only its own slots, so no locking is needed.
	results := make([]render.DocumentMatches, len(docs))
	jobs := make(chan int, len(docs))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = render.DocumentMatches{
					Doc:     docs[i],
					Matches: c.resolveDocument(docs[i]),
				}
			}
		}()
	}
	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return render.Compose(results, c.Options), nil
}

// filterDocuments keeps documents whose flat tag set intersects Any ∪ All.
// This is a coarse pre-filter; per-block AND/NOT refinement happens at match
// time against each block's own tags.
func (c *BuildSummaryCommand) filterDocuments(docs []domain.Document) []domain.Document {
	union := c.Selectors.Union()
	var kept []domain.Document
	for _, doc := range docs {
		if intersects(c.store.TagNames(doc), union) {
			kept = append(kept, doc)
		}
	}
	return kept
}

// resolveDocument produces the matches one document contributes. Any data
// irregularity degrades the document to zero matches; the build never aborts
// on a single document.
func (c *BuildSummaryCommand) resolveDocument(doc domain.Document) []domain.Match {
	tags, ok := c.store.Tags(doc)
	if !ok {
		c.log.Debug("no structural index, skipping", "doc", doc.Path)
		return nil
	}
	items, _ := c.store.ListItems(doc)

	content, err := c.store.Content(doc)
	if err != nil {
		c.log.Warn("failed to read document, skipping", "doc", doc.Path, "err", err)
		return nil
	}
	lines := strings.Split(content, "\n")

	var matches []domain.Match
	for _, tag := range tags {
		if tag.Start < 0 || tag.Start > tag.End || tag.End >= len(lines) {
			c.log.Warn("tag position out of range, skipping", "doc", doc.Path, "tag", tag.Name, "line", tag.Start)
			continue
		}
		m, clean := domain.ResolveTag(tag, lines, items, c.Options.IncludeChildren)
		if !clean {
			c.log.Warn("list-item index has no root for non-first item", "doc", doc.Path, "line", tag.Start)
		}
		if !c.Selectors.Match(tagsInSpan(tags, m.Start, m.End)) {
			continue
		}
		matches = append(matches, m)
	}
	return dedupe(matches)
}

// tagsInSpan collects the unique tag names whose occurrence starts within
// the inclusive line span, the block's candidate tag set for evaluation.
func tagsInSpan(tags []domain.TagOccurrence, start, end int) []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range tags {
		if t.Start >= start && t.Start <= end && !seen[t.Name] {
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	return names
}

// dedupe drops matches whose span is contained in another match's span,
// which happens when a parent and a child list item carry the same tag.
// The containing match survives; for identical spans the first one does.
func dedupe(matches []domain.Match) []domain.Match {
	if len(matches) < 2 {
		return matches
	}
	var kept []domain.Match
	for i, m := range matches {
		contained := false
		for j, other := range matches {
			if i == j {
				continue
			}
			if other.Start <= m.Start && m.End <= other.End {
				larger := other.End-other.Start > m.End-m.Start
				if larger || j < i {
					contained = true
					break
				}
			}
		}
		if !contained {
			kept = append(kept, m)
		}
	}
	return kept
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
