// Package markdown derives the structural index consumed by summary builds:
// tag occurrences and the flat, parent-indexed list-item slice, both carrying
// zero-based line positions.
package markdown

import (
	"regexp"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/chmac/tag-summary/internal/domain"
	"github.com/chmac/tag-summary/internal/ports"
)

// Tag token: '#' followed by word characters, with at least one that is not
// a digit (Obsidian rejects purely numeric tags).
var tagPattern = regexp.MustCompile(`#[\p{L}\p{N}_/-]*[\p{L}_][\p{L}\p{N}_/-]*`)

// Extractor implements ports.MetadataExtractor using a goldmark AST walk.
type Extractor struct {
	md goldmark.Markdown
}

// Ensure Extractor implements MetadataExtractor
var _ ports.MetadataExtractor = (*Extractor)(nil)

// NewExtractor creates a new markdown Extractor
func NewExtractor() *Extractor {
	return &Extractor{md: goldmark.New()}
}

// span is an inclusive line range.
type span struct {
	start, end int
}

// Extract parses content and returns its structural metadata. List items
// come out in document order with parent back-references; an item's End line
// covers only its own text, not nested items.
func (e *Extractor) Extract(content []byte) (*domain.FileMetadata, error) {
	meta := &domain.FileMetadata{}

	fmTags, fmEnd := parseFrontmatter(content)
	meta.FrontmatterTags = fmTags

	offsets := lineOffsets(content)
	lineAt := func(off int) int {
		if off < 0 {
			return 0
		}
		return sort.Search(len(offsets), func(i int) bool { return offsets[i] > off }) - 1
	}

	doc := e.md.Parser().Parse(text.NewReader(content))

	var (
		blocks   []span // leaf text blocks, for tag end expansion
		excluded []span // code and raw html, no tags inside
	)

	// Stack of enclosing list-item indices. An item goldmark gives us no
	// text for is pushed as pass-through so its children attach to the
	// grandparent and index bookkeeping stays balanced.
	type frame struct {
		index int
		has   bool
	}
	var stack []frame

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.ListItem:
			if !entering {
				stack = stack[:len(stack)-1]
				return ast.WalkContinue, nil
			}
			start, end, ok := itemOwnSpan(node, lineAt)
			if !ok {
				top := frame{}
				if len(stack) > 0 {
					top = stack[len(stack)-1]
				}
				stack = append(stack, top)
				return ast.WalkContinue, nil
			}
			item := domain.ListItem{Start: start, End: end}
			if len(stack) > 0 && stack[len(stack)-1].has {
				item.Parent = stack[len(stack)-1].index
				item.HasParent = true
			}
			meta.Items = append(meta.Items, item)
			stack = append(stack, frame{index: len(meta.Items) - 1, has: true})

		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			if entering {
				if s, ok := nodeSpan(n, lineAt); ok {
					blocks = append(blocks, s)
				}
			}

		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			if entering {
				if s, ok := nodeSpan(n, lineAt); ok {
					excluded = append(excluded, s)
				}
			}
		}
		return ast.WalkContinue, nil
	})

	firstBodyLine := lineAt(fmEnd)
	meta.Tags = scanTags(content, offsets, firstBodyLine, blocks, excluded)
	return meta, nil
}

// itemOwnSpan computes the line span of a list item's own content, skipping
// nested lists.
func itemOwnSpan(item ast.Node, lineAt func(int) int) (start, end int, ok bool) {
	start, end = -1, -1
	ownSegments(item, func(seg text.Segment) {
		if seg.Stop <= seg.Start {
			return
		}
		ls := lineAt(seg.Start)
		le := lineAt(seg.Stop - 1)
		if start == -1 || ls < start {
			start = ls
		}
		if le > end {
			end = le
		}
	})
	return start, end, start != -1
}

// ownSegments visits the text segments of n's block descendants, not
// descending into nested lists.
func ownSegments(n ast.Node, fn func(text.Segment)) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, isList := c.(*ast.List); isList {
			continue
		}
		if c.Type() != ast.TypeBlock {
			continue
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			fn(lines.At(i))
		}
		ownSegments(c, fn)
	}
}

// nodeSpan returns the line span of a block node's text segments.
func nodeSpan(n ast.Node, lineAt func(int) int) (span, bool) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return span{}, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	if last.Stop <= first.Start {
		return span{}, false
	}
	return span{start: lineAt(first.Start), end: lineAt(last.Stop - 1)}, true
}

// scanTags finds tag tokens line by line. Lines inside the frontmatter block
// or a code block carry no tags. A tag's End is the last line of the
// innermost text block containing it, so multi-line paragraphs resolve as a
// whole.
func scanTags(content []byte, offsets []int, firstBodyLine int, blocks, excluded []span) []domain.TagOccurrence {
	var tags []domain.TagOccurrence

	lineEnd := func(i int) int {
		if i+1 < len(offsets) {
			return offsets[i+1] - 1
		}
		return len(content)
	}

	for i := firstBodyLine; i < len(offsets); i++ {
		if inAnySpan(excluded, i) {
			continue
		}
		line := content[offsets[i]:lineEnd(i)]
		for _, loc := range tagPattern.FindAllIndex(line, -1) {
			// Skip heading markers and in-word hits like "C#5".
			if loc[0] > 0 {
				prev := line[loc[0]-1]
				if prev != ' ' && prev != '\t' && prev != '(' {
					continue
				}
			}
			tags = append(tags, domain.TagOccurrence{
				Name:  string(line[loc[0]:loc[1]]),
				Start: i,
				End:   blockEnd(blocks, i),
			})
		}
	}
	return tags
}

// blockEnd returns the end line of the smallest block containing line.
func blockEnd(blocks []span, line int) int {
	end := line
	best := -1
	for _, b := range blocks {
		if line < b.start || line > b.end {
			continue
		}
		size := b.end - b.start
		if best == -1 || size < best {
			best = size
			end = b.end
		}
	}
	return end
}

func inAnySpan(spans []span, line int) bool {
	for _, s := range spans {
		if line >= s.start && line <= s.end {
			return true
		}
	}
	return false
}

// lineOffsets returns the byte offset of the start of every line.
func lineOffsets(content []byte) []int {
	offsets := []int{0}
	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
