package markdown

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chmac/tag-summary/internal/domain"
)

// tagList accepts both YAML forms Obsidian allows for frontmatter tags:
// a sequence, or a single scalar with comma or space separated names.
type tagList []string

func (t *tagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*t = items
	case yaml.ScalarNode:
		*t = strings.FieldsFunc(value.Value, func(r rune) bool {
			return r == ',' || r == ' '
		})
	}
	return nil
}

type frontmatter struct {
	Tags tagList `yaml:"tags"`
}

// parseFrontmatter extracts frontmatter tags and returns them, normalized,
// together with the byte offset where the document body starts. Malformed
// frontmatter yields no tags rather than an error: the document still
// participates in builds through its inline tags.
func parseFrontmatter(content []byte) ([]string, int) {
	rest, ok := bytes.CutPrefix(content, []byte("---\n"))
	if !ok {
		return nil, 0
	}

	end := bytes.Index(rest, []byte("\n---\n"))
	var body, bodyStart = []byte(nil), 0
	if end >= 0 {
		body = rest[:end]
		bodyStart = 4 + end + 5
	} else if bytes.HasSuffix(rest, []byte("\n---")) {
		body = rest[:len(rest)-4]
		bodyStart = len(content)
	} else {
		return nil, 0
	}

	var fm frontmatter
	if err := yaml.Unmarshal(body, &fm); err != nil {
		return nil, bodyStart
	}

	var tags []string
	for _, raw := range fm.Tags {
		if tag := domain.NormalizeTag(raw); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, bodyStart
}
