package table

import (
	"fmt"

	"github.com/dshills/vgrid/internal/axis"
	"github.com/dshills/vgrid/internal/geom"
)

// Table is a grid of cells whose column widths and row heights are held by
// two axes.
type Table struct {
	xAxis *axis.Axis
	yAxis *axis.Axis
}

// New creates an empty table.
func New() *Table {
	return &Table{
		xAxis: axis.New(),
		yAxis: axis.New(),
	}
}

// FromAxes creates a table that takes ownership of the given axes.
// Nil axes are replaced with empty ones.
func FromAxes(columns, rows *axis.Axis) *Table {
	if columns == nil {
		columns = axis.New()
	}
	if rows == nil {
		rows = axis.New()
	}
	return &Table{xAxis: columns, yAxis: rows}
}

// XAxis returns the column axis.
func (t *Table) XAxis() *axis.Axis {
	return t.xAxis
}

// YAxis returns the row axis.
func (t *Table) YAxis() *axis.Axis {
	return t.yAxis
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return t.xAxis.Len()
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.yAxis.Len()
}

// BoundingRect returns the pixel rectangle covered by the table.
// It is derived from the axes on every call.
func (t *Table) BoundingRect() geom.Rect {
	return geom.FromXY(0, 0, t.xAxis.VisualLen(), t.yAxis.VisualLen())
}

// SetBoundingRect always fails: the bounding rectangle is derived from the
// axes. Append to or remove from the axes instead.
func (t *Table) SetBoundingRect(geom.Rect) error {
	return fmt.Errorf("table bounding rect: %w", ErrReadOnly)
}

// VisibleRange returns the range of cells overlapping the pixel rectangle
// rect. Returns false if rect does not overlap the table.
func (t *Table) VisibleRange(rect geom.Rect) (CellRange, bool) {
	clamped, ok := rect.Intersection(t.BoundingRect())
	if !ok {
		return CellRange{}, false
	}

	// Right and bottom are exclusive; the last covered pixel is one before.
	columnMin, okMin := t.xAxis.VisualGet(clamped.Left())
	columnMax, okMax := t.xAxis.VisualGet(clamped.Right() - 1)
	if !okMin || !okMax {
		return CellRange{}, false
	}

	rowMin, okMin := t.yAxis.VisualGet(clamped.Top())
	rowMax, okMax := t.yAxis.VisualGet(clamped.Bottom() - 1)
	if !okMin || !okMax {
		return CellRange{}, false
	}

	return CellRange{
		First: Cell{Row: rowMin.Index, Column: columnMin.Index},
		Last:  Cell{Row: rowMax.Index, Column: columnMax.Index},
	}, true
}

// CellsInVisualRect returns the cells overlapping the pixel rectangle rect,
// sorted by row and then by column. Returns nil if rect does not overlap
// the table or has no area.
func (t *Table) CellsInVisualRect(rect geom.Rect) []Cell {
	r, ok := t.VisibleRange(rect)
	if !ok {
		return nil
	}
	return r.Cells()
}

// CellAt returns the cell covering pixel p.
// Returns false if p lies outside the table.
func (t *Table) CellAt(p geom.Point) (Cell, bool) {
	column, ok := t.xAxis.VisualGet(p.X)
	if !ok {
		return Cell{}, false
	}
	row, ok := t.yAxis.VisualGet(p.Y)
	if !ok {
		return Cell{}, false
	}
	return Cell{Row: row.Index, Column: column.Index}, true
}

// CellRect returns the pixel rectangle of cell c.
// Returns false if c is outside the table.
func (t *Table) CellRect(c Cell) (geom.Rect, bool) {
	column, ok := t.xAxis.Get(c.Column)
	if !ok {
		return geom.Rect{}, false
	}
	row, ok := t.yAxis.Get(c.Row)
	if !ok {
		return geom.Rect{}, false
	}
	return geom.FromXY(column.Offset, row.Offset, column.End(), row.End()), true
}
