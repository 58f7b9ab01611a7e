package viewport

import "github.com/dshills/vgrid/internal/table"

// Diff describes how the set of visible cells changed.
// Both slices are sorted row-major.
type Diff struct {
	// Added holds cells that became visible.
	Added []table.Cell

	// Removed holds cells that are no longer visible.
	Removed []table.Cell
}

// Empty returns true if nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// span is a possibly empty cell range.
type span struct {
	cells table.CellRange
	ok    bool
}

func (s span) contains(c table.Cell) bool {
	return s.ok && s.cells.Contains(c)
}

// diffSpans walks both ranges once; the cost is proportional to the cells
// visible before and after, never to the size of the table.
func diffSpans(before, after span) Diff {
	var d Diff
	if before.ok {
		before.cells.Each(func(c table.Cell) bool {
			if !after.contains(c) {
				d.Removed = append(d.Removed, c)
			}
			return true
		})
	}
	if after.ok {
		after.cells.Each(func(c table.Cell) bool {
			if !before.contains(c) {
				d.Added = append(d.Added, c)
			}
			return true
		})
	}
	return d
}
