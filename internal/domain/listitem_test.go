package domain

import "testing"

// items: root, two children, root, child — document order by start line.
func nestedItems() []ListItem {
	return []ListItem{
		{Start: 0, End: 0},
		{Start: 1, End: 1, Parent: 0, HasParent: true},
		{Start: 2, End: 2, Parent: 1, HasParent: true},
		{Start: 3, End: 3},
		{Start: 4, End: 5, Parent: 3, HasParent: true},
	}
}

func TestFindEnclosingRoot(t *testing.T) {
	tests := []struct {
		name      string
		items     []ListItem
		target    int
		wantStart int
		wantOK    bool
	}{
		{
			name:      "root item returns itself",
			items:     nestedItems(),
			target:    0,
			wantStart: 0,
			wantOK:    true,
		},
		{
			name:      "direct child resolves to preceding root",
			items:     nestedItems(),
			target:    1,
			wantStart: 0,
			wantOK:    true,
		},
		{
			name:      "grandchild resolves to same root",
			items:     nestedItems(),
			target:    2,
			wantStart: 0,
			wantOK:    true,
		},
		{
			name:      "child of second root resolves to closest root",
			items:     nestedItems(),
			target:    4,
			wantStart: 3,
			wantOK:    true,
		},
		{
			name: "first item treated as root regardless of parent",
			items: []ListItem{
				{Start: 0, End: 0, Parent: 7, HasParent: true},
				{Start: 1, End: 1},
			},
			target:    0,
			wantStart: 0,
			wantOK:    true,
		},
		{
			name: "no preceding root falls back to target",
			items: []ListItem{
				{Start: 0, End: 0, Parent: 9, HasParent: true},
				{Start: 1, End: 1, Parent: 0, HasParent: true},
			},
			target:    1,
			wantStart: 1,
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, ok := FindEnclosingRoot(tt.items, tt.target)
			if root.Start != tt.wantStart {
				t.Errorf("expected root starting at line %d, got %d", tt.wantStart, root.Start)
			}
			if ok != tt.wantOK {
				t.Errorf("expected ok=%v, got %v", tt.wantOK, ok)
			}
		})
	}
}

func TestFindEnclosingRoot_ClosestRoot(t *testing.T) {
	// The returned root must be the nearest preceding root: no root-level
	// item may sit between it and the target.
	items := nestedItems()
	for target := range items {
		root, ok := FindEnclosingRoot(items, target)
		if !ok {
			t.Fatalf("target %d: unexpected fallback", target)
		}
		if !root.IsRoot() && target != 0 {
			t.Errorf("target %d: returned non-root item", target)
		}
		// Locate the returned root's index.
		rootIdx := -1
		for i, it := range items {
			if it == root {
				rootIdx = i
				break
			}
		}
		if rootIdx > target {
			t.Errorf("target %d: root index %d after target", target, rootIdx)
		}
		for i := rootIdx + 1; i <= target; i++ {
			if i != target && items[i].IsRoot() {
				t.Errorf("target %d: closer root exists at %d", target, i)
			}
		}
	}
}

func TestFindEnclosingRoot_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty items")
		}
	}()
	FindEnclosingRoot(nil, 0)
}

func TestSubtreeSpan(t *testing.T) {
	items := nestedItems()

	t.Run("span stops before next root", func(t *testing.T) {
		root, _ := FindEnclosingRoot(items, 1)
		start, end := SubtreeSpan(items, root, 1)
		if start != 0 || end != 2 {
			t.Errorf("expected span [0,2], got [%d,%d]", start, end)
		}
	})

	t.Run("span of last subtree runs to final item", func(t *testing.T) {
		root, _ := FindEnclosingRoot(items, 4)
		start, end := SubtreeSpan(items, root, 4)
		if start != 3 || end != 5 {
			t.Errorf("expected span [3,5], got [%d,%d]", start, end)
		}
	})

	t.Run("end is never before the root's own end", func(t *testing.T) {
		for target := range items {
			root, _ := FindEnclosingRoot(items, target)
			_, end := SubtreeSpan(items, root, target)
			if end < root.End {
				t.Errorf("target %d: span end %d before root end %d", target, end, root.End)
			}
		}
	})
}

func TestItemAtLine(t *testing.T) {
	items := nestedItems()

	if idx, ok := ItemAtLine(items, 3); !ok || idx != 3 {
		t.Errorf("expected index 3, got %d (ok=%v)", idx, ok)
	}
	// Line 5 is inside the last item but not its first line.
	if _, ok := ItemAtLine(items, 5); ok {
		t.Error("mid-item line should not match")
	}
	if _, ok := ItemAtLine(items, 42); ok {
		t.Error("unknown line should not match")
	}
}
