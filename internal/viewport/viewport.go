// Package viewport tracks the visible area of a table and reports which
// cells enter or leave it.
//
// The grid engine answers "which cells are inside this rectangle" but keeps
// no memory of earlier answers. A Viewport remembers the last visible range
// so a view layer can create proxies only for cells in Diff.Added and drop
// those in Diff.Removed. Rendering identities stay with the caller, keyed by
// table.Cell.
package viewport

import (
	"github.com/rs/zerolog"

	"github.com/dshills/vgrid/internal/geom"
	"github.com/dshills/vgrid/internal/table"
)

// Viewport represents the visible portion of a table.
// It is not safe for concurrent use.
type Viewport struct {
	table *table.Table

	// Visible pixel area in table coordinates
	area geom.Rect

	// Cells inside area as of the last update
	visible span

	// Scroll margins in pixels (keep revealed cells this far from edges)
	marginX int
	marginY int

	logger zerolog.Logger
}

// Option configures a Viewport during creation.
type Option func(*Viewport)

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Viewport) {
		v.logger = l
	}
}

// WithMargins sets the scroll margins used by ScrollToReveal.
// Negative values are ignored.
func WithMargins(x, y int) Option {
	return func(v *Viewport) {
		if x >= 0 {
			v.marginX = x
		}
		if y >= 0 {
			v.marginY = y
		}
	}
}

// New creates a viewport over t with an empty visible area.
func New(t *table.Table, opts ...Option) *Viewport {
	v := &Viewport{
		table:  t,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Table returns the table being viewed.
func (v *Viewport) Table() *table.Table {
	return v.table
}

// SetTable replaces the table being viewed and returns the change in
// visible cells. The visible area is kept.
func (v *Viewport) SetTable(t *table.Table) Diff {
	v.table = t
	return v.update("table replaced")
}

// Replace swaps the table and the visible area together, reporting a single
// Diff for both changes.
func (v *Viewport) Replace(t *table.Table, area geom.Rect) Diff {
	v.table = t
	v.area = area
	return v.update("table and area replaced")
}

// VisibleArea returns the visible pixel area.
func (v *Viewport) VisibleArea() geom.Rect {
	return v.area
}

// VisibleRange returns the range of visible cells.
// Returns false if no cell is visible.
func (v *Viewport) VisibleRange() (table.CellRange, bool) {
	return v.visible.cells, v.visible.ok
}

// Visible returns the visible cells sorted row-major.
func (v *Viewport) Visible() []table.Cell {
	if !v.visible.ok {
		return nil
	}
	return v.visible.cells.Cells()
}

// IsVisible returns true if c is currently visible.
func (v *Viewport) IsVisible(c table.Cell) bool {
	return v.visible.contains(c)
}

// SetVisibleArea sets the visible pixel area and returns the change in
// visible cells. Setting the current area again returns an empty Diff.
func (v *Viewport) SetVisibleArea(area geom.Rect) Diff {
	if area.Equals(v.area) {
		return Diff{}
	}
	v.area = area
	return v.update("visible area changed")
}

// Resize changes the size of the visible area, keeping its origin.
func (v *Viewport) Resize(width, height int) Diff {
	return v.SetVisibleArea(geom.FromPointAndSize(v.area.TopLeft, width, height))
}

// Refresh recomputes the visible cells. Call it after mutating the table's
// axes; the table raises no change notifications.
func (v *Viewport) Refresh() Diff {
	return v.update("refresh")
}

// update recomputes the visible range and diffs it against the previous one.
func (v *Viewport) update(reason string) Diff {
	var next span
	if v.table != nil {
		next.cells, next.ok = v.table.VisibleRange(v.area)
	}

	d := diffSpans(v.visible, next)
	v.visible = next

	if !d.Empty() {
		v.logger.Debug().
			Str("reason", reason).
			Stringer("area", v.area).
			Int("added", len(d.Added)).
			Int("removed", len(d.Removed)).
			Msg("visible cells changed")
	}
	return d
}
