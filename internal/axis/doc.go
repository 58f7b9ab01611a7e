// Package axis provides a run-length compressed sequence of element sizes.
//
// An Axis models one dimension of a virtualized grid: the heights of its rows
// or the widths of its columns. Consecutive elements that share a size are
// stored as a single Run, so memory is proportional to the number of size
// changes rather than the number of elements. A million rows of one height
// occupy a single run.
//
// Key properties:
//   - No run is empty and no two adjacent runs share a size, after every
//     public operation
//   - Appends are O(1); removals and lookups are O(log runs)
//   - Lookups work in both directions: logical index to pixel offset (Get,
//     OffsetOf) and pixel offset to logical index (VisualGet)
//   - Pixel intervals are half-open: an element of size s at offset o covers
//     [o, o+s)
//
// Basic usage:
//
//	a := axis.New()
//	a.Append(100)
//	a.Append(100)
//	a.Append(50)              // runs: 2x100, 1x50
//	e, ok := a.VisualGet(150) // e.Index == 1, e.Offset == 100, e.Size == 100
//	a.RemoveAt(2)             // runs: 2x100
//
// An Axis is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package axis
