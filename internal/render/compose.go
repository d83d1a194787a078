// Package render turns resolved matches into the final summary text.
// It owns every decoration toggle; the resolution algorithm never sees them.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chmac/tag-summary/internal/domain"
)

// NoMatchesMessage is returned when a build produces no output. It is a
// normal result, not an error.
const NoMatchesMessage = "No blocks found matching the given tags."

// DocumentMatches pairs a document with its resolved matches, in document
// order. A slice of these is always ordered by document path.
type DocumentMatches struct {
	Doc     domain.Document
	Matches []domain.Match
}

// Same token shape the extractor matches: purely numeric hashes are not tags.
var tagToken = regexp.MustCompile(`#[\p{L}\p{N}_/-]*[\p{L}_][\p{L}\p{N}_/-]*`)

var bulletPrefix = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+`)

// Compose concatenates per-document matches into the summary text. Results
// must already be in corpus order; Compose is a pure reduction and never
// reorders them.
func Compose(results []DocumentMatches, opts domain.Options) string {
	var sb strings.Builder
	for _, dm := range results {
		for _, m := range dm.Matches {
			sb.WriteString(block(dm.Doc, m, opts))
			sb.WriteString("\n")
		}
	}
	if sb.Len() == 0 {
		return NoMatchesMessage
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// block renders one match with its provenance line.
func block(doc domain.Document, m domain.Match, opts domain.Options) string {
	text := m.Text
	if opts.RemoveTags {
		text = stripTags(text)
	}
	if opts.ListParagraph {
		text = flattenBullets(text)
	}

	source := doc.Name
	if opts.IncludeLink {
		source = fmt.Sprintf("[[%s|%s]]", strings.TrimSuffix(doc.Path, ".md"), doc.Name)
	}

	if opts.IncludeCallout {
		var sb strings.Builder
		fmt.Fprintf(&sb, "> [!quote] %s\n", source)
		for _, line := range strings.Split(text, "\n") {
			sb.WriteString("> ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		return sb.String()
	}

	return fmt.Sprintf("**%s**\n\n%s\n", source, text)
}

// stripTags removes tag tokens and collapses the whitespace they leave.
func stripTags(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = tagToken.ReplaceAllString(line, "")
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// flattenBullets turns list lines into plain paragraph lines.
func flattenBullets(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = bulletPrefix.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n")
}
