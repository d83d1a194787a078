package commands

import (
	"context"
	"testing"

	"github.com/chmac/tag-summary/internal/domain"
)

func TestListTags(t *testing.T) {
	store := &fakeStore{docs: map[string]fakeDoc{
		"a.md": {tags: []domain.TagOccurrence{
			{Name: "#common", Start: 0, End: 0},
			{Name: "#rare", Start: 1, End: 1},
			{Name: "#common", Start: 2, End: 2},
		}},
		"b.md": {tags: []domain.TagOccurrence{
			{Name: "#common", Start: 0, End: 0},
			{Name: "#beta", Start: 1, End: 1},
		}},
	}}

	got, err := NewListTagsCommand(store).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// Counts are per document, not per occurrence; ties sort by name.
	want := []TagCount{
		{Name: "#common", Count: 2},
		{Name: "#beta", Count: 1},
		{Name: "#rare", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tags, got %+v", len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("tag %d: expected %+v, got %+v", i, w, got[i])
		}
	}
}

func TestListTags_EmptyVault(t *testing.T) {
	got, err := NewListTagsCommand(&fakeStore{docs: map[string]fakeDoc{}}).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no tags, got %+v", got)
	}
}
