package domain

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	lines := []string{"zero", "one", "two", "three"}

	tests := []struct {
		name       string
		start, end int
		wantText   string
	}{
		{name: "single line", start: 1, end: 1, wantText: "one"},
		{name: "multi line", start: 1, end: 3, wantText: "one\ntwo\nthree"},
		{name: "full document", start: 0, end: 3, wantText: "zero\none\ntwo\nthree"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Extract(lines, tt.start, tt.end)
			if m.Text != tt.wantText {
				t.Errorf("expected %q, got %q", tt.wantText, m.Text)
			}
			if m.Start != tt.start || m.End != tt.end {
				t.Errorf("expected range [%d,%d], got [%d,%d]", tt.start, tt.end, m.Start, m.End)
			}
			gotLines := len(strings.Split(m.Text, "\n"))
			if gotLines != tt.end-tt.start+1 {
				t.Errorf("expected %d lines, got %d", tt.end-tt.start+1, gotLines)
			}
		})
	}
}

func TestResolveTag(t *testing.T) {
	lines := []string{"- root #a", "  - child", "- next root"}
	items := []ListItem{
		{Start: 0, End: 0},
		{Start: 1, End: 1, Parent: 0, HasParent: true},
		{Start: 2, End: 2},
	}

	t.Run("tag on child expands to root subtree", func(t *testing.T) {
		tag := TagOccurrence{Name: "#a", Start: 1, End: 1}
		m, clean := ResolveTag(tag, lines, items, true)
		if !clean {
			t.Error("unexpected degraded resolution")
		}
		if m.Start != 0 || m.End != 1 {
			t.Errorf("expected span [0,1], got [%d,%d]", m.Start, m.End)
		}
		if m.Text != "- root #a\n  - child" {
			t.Errorf("unexpected text %q", m.Text)
		}
	})

	t.Run("tag on root excludes next root", func(t *testing.T) {
		tag := TagOccurrence{Name: "#a", Start: 0, End: 0}
		m, _ := ResolveTag(tag, lines, items, true)
		if m.End != 1 {
			t.Errorf("expected span to end at line 1, got %d", m.End)
		}
	})

	t.Run("includeChildren false uses plain line range", func(t *testing.T) {
		tag := TagOccurrence{Name: "#a", Start: 1, End: 1}
		m, clean := ResolveTag(tag, lines, items, false)
		if !clean {
			t.Error("unexpected degraded resolution")
		}
		if m.Start != 1 || m.End != 1 {
			t.Errorf("expected span [1,1], got [%d,%d]", m.Start, m.End)
		}
	})

	t.Run("tag not on an item start line falls through", func(t *testing.T) {
		tag := TagOccurrence{Name: "#a", Start: 1, End: 2}
		shifted := []ListItem{{Start: 0, End: 1}}
		m, _ := ResolveTag(tag, lines, shifted, true)
		if m.Start != 1 || m.End != 2 {
			t.Errorf("expected span [1,2], got [%d,%d]", m.Start, m.End)
		}
	})

	t.Run("no list items uses plain line range", func(t *testing.T) {
		tag := TagOccurrence{Name: "#a", Start: 2, End: 2}
		m, clean := ResolveTag(tag, lines, nil, true)
		if !clean {
			t.Error("unexpected degraded resolution")
		}
		if m.Text != "- next root" {
			t.Errorf("unexpected text %q", m.Text)
		}
	})

	t.Run("malformed index reports degraded resolution", func(t *testing.T) {
		malformed := []ListItem{
			{Start: 0, End: 0, Parent: 5, HasParent: true},
			{Start: 1, End: 1, Parent: 0, HasParent: true},
		}
		tag := TagOccurrence{Name: "#a", Start: 1, End: 1}
		m, clean := ResolveTag(tag, lines, malformed, true)
		if clean {
			t.Error("expected degraded resolution to be reported")
		}
		if m.Start != 1 {
			t.Errorf("expected fallback span starting at 1, got %d", m.Start)
		}
	})
}
