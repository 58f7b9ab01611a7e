package table

import "fmt"

// Cell is a logical grid coordinate.
type Cell struct {
	Row    int
	Column int
}

// NewCell creates a cell.
func NewCell(row, column int) Cell {
	return Cell{Row: row, Column: column}
}

// Compare orders cells row-major: by row, then by column.
// It returns -1, 0 or +1.
func (c Cell) Compare(other Cell) int {
	switch {
	case c.Row < other.Row:
		return -1
	case c.Row > other.Row:
		return 1
	case c.Column < other.Column:
		return -1
	case c.Column > other.Column:
		return 1
	}
	return 0
}

// Less returns true if c sorts before other.
func (c Cell) Less(other Cell) bool {
	return c.Compare(other) < 0
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// CellRange is an inclusive rectangle of cells.
type CellRange struct {
	First Cell
	Last  Cell
}

// Rows returns the number of rows in the range.
func (r CellRange) Rows() int {
	return r.Last.Row - r.First.Row + 1
}

// Columns returns the number of columns in the range.
func (r CellRange) Columns() int {
	return r.Last.Column - r.First.Column + 1
}

// Len returns the number of cells in the range.
func (r CellRange) Len() int {
	return r.Rows() * r.Columns()
}

// Contains returns true if c lies inside the range.
func (r CellRange) Contains(c Cell) bool {
	return c.Row >= r.First.Row && c.Row <= r.Last.Row &&
		c.Column >= r.First.Column && c.Column <= r.Last.Column
}

// Each calls fn for every cell in row-major order until fn returns false.
func (r CellRange) Each(fn func(Cell) bool) {
	for row := r.First.Row; row <= r.Last.Row; row++ {
		for column := r.First.Column; column <= r.Last.Column; column++ {
			if !fn(Cell{Row: row, Column: column}) {
				return
			}
		}
	}
}

// Cells returns every cell in the range in row-major order.
func (r CellRange) Cells() []Cell {
	cells := make([]Cell, 0, r.Len())
	r.Each(func(c Cell) bool {
		cells = append(cells, c)
		return true
	})
	return cells
}

// String returns a string representation of the range.
func (r CellRange) String() string {
	return fmt.Sprintf("%s..%s", r.First, r.Last)
}
