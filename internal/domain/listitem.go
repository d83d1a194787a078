package domain

// ListItem is one entry in a document's flat list-item index. Items are
// stored in document order (ascending start line), with hierarchy expressed
// only through Parent: the index of the structural parent within the same
// slice. A root-level item has HasParent false.
//
// Document order implies that all descendants of a root-level item sit
// between that root and the next root-level item. Both resolution operations
// below depend on this layout.
type ListItem struct {
	Start     int
	End       int
	Parent    int
	HasParent bool
}

// IsRoot reports whether the item sits at the root of its list.
func (it ListItem) IsRoot() bool {
	return !it.HasParent
}

// FindEnclosingRoot returns the nearest root-level item enclosing the item
// at target. The first item of a document is always treated as a root: it
// cannot have a preceding one. The second return is false when no root
// precedes a non-root item, which means the index is malformed; the target
// item itself is returned so resolution can continue on a single item, and
// the caller should log the condition.
//
// Panics when items is empty: dispatching on emptiness is the caller's job.
func FindEnclosingRoot(items []ListItem, target int) (ListItem, bool) {
	if len(items) == 0 {
		panic("domain: FindEnclosingRoot on empty list-item index")
	}
	if target == 0 || items[target].IsRoot() {
		return items[target], true
	}
	for i := target - 1; i >= 0; i-- {
		if items[i].IsRoot() {
			return items[i], true
		}
	}
	return items[target], false
}

// SubtreeSpan returns the inclusive line span covering root and every
// descendant of root up to, but excluding, the next root-level item after
// target. With no further root-level item the span runs to the end of the
// last item in the document.
func SubtreeSpan(items []ListItem, root ListItem, target int) (start, end int) {
	if len(items) == 0 {
		panic("domain: SubtreeSpan on empty list-item index")
	}
	for j := target + 1; j < len(items); j++ {
		if items[j].IsRoot() {
			return root.Start, items[j-1].End
		}
	}
	return root.Start, items[len(items)-1].End
}

// ItemAtLine returns the index of the item whose first line is exactly line.
// A tag sitting mid-item does not count as attached to that item.
func ItemAtLine(items []ListItem, line int) (int, bool) {
	for i, it := range items {
		if it.Start == line {
			return i, true
		}
	}
	return -1, false
}
