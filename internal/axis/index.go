package axis

import "sort"

// prefixIndex records, for every run, how many elements and how many pixels
// precede it. Both slices are non-decreasing, which lets lookups binary
// search instead of walking the runs.
//
// Starts are strictly increasing because runs are never empty. Offsets may
// repeat when a run has zero-size elements.
type prefixIndex struct {
	starts  []int
	offsets []int
	valid   bool
}

// rebuild recomputes the index from scratch.
func (ix *prefixIndex) rebuild(runs []Run) {
	ix.starts = ix.starts[:0]
	ix.offsets = ix.offsets[:0]

	start, offset := 0, 0
	for _, r := range runs {
		ix.starts = append(ix.starts, start)
		ix.offsets = append(ix.offsets, offset)
		start += r.count
		offset += r.VisualLength()
	}
	ix.valid = true
}

// push records a new trailing run. Ignored while the index is stale.
func (ix *prefixIndex) push(start, offset int) {
	if !ix.valid {
		return
	}
	ix.starts = append(ix.starts, start)
	ix.offsets = append(ix.offsets, offset)
}

// truncate drops entries for runs at or beyond n.
func (ix *prefixIndex) truncate(n int) {
	if !ix.valid || n >= len(ix.starts) {
		return
	}
	ix.starts = ix.starts[:n]
	ix.offsets = ix.offsets[:n]
}

// invalidate marks the index stale; it is rebuilt on the next lookup.
func (ix *prefixIndex) invalidate() {
	ix.valid = false
}

// runAt returns the index of the run containing logical position pos.
// pos must be within [0, length).
func (ix *prefixIndex) runAt(pos int) int {
	return sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > pos
	}) - 1
}

// runAtOffset returns the index of the last run starting at or before
// visualPos. When zero-size runs share a start offset with the following
// run, the later run is chosen, which is the one with pixel extent.
// visualPos must be within [0, visual length).
func (ix *prefixIndex) runAtOffset(visualPos int) int {
	return sort.Search(len(ix.offsets), func(i int) bool {
		return ix.offsets[i] > visualPos
	}) - 1
}
