package viewport

import (
	"github.com/dshills/vgrid/internal/geom"
	"github.com/dshills/vgrid/internal/table"
)

// ScrollTo moves the visible area so its top-left corner is at p.
// The origin is clamped so the area stays inside the table where possible.
func (v *Viewport) ScrollTo(p geom.Point) Diff {
	return v.SetVisibleArea(v.area.MoveTo(v.clampOrigin(p)))
}

// ScrollBy moves the visible area by a pixel delta.
func (v *Viewport) ScrollBy(dx, dy int) Diff {
	return v.ScrollTo(v.area.TopLeft.Add(dx, dy))
}

// ScrollToReveal scrolls minimally so cell c is inside the visible area,
// keeping the configured margins around it.
// Returns false if c is outside the table or no scrolling was needed.
func (v *Viewport) ScrollToReveal(c table.Cell) (Diff, bool) {
	if v.table == nil {
		return Diff{}, false
	}
	target, ok := v.table.CellRect(c)
	if !ok {
		return Diff{}, false
	}

	x := revealStart(v.area.Left(), v.area.Width(), target.Left(), target.Right(), v.marginX)
	y := revealStart(v.area.Top(), v.area.Height(), target.Top(), target.Bottom(), v.marginY)

	origin := v.clampOrigin(geom.Point{X: x, Y: y})
	if origin.Equals(v.area.TopLeft) {
		return Diff{}, false
	}
	return v.SetVisibleArea(v.area.MoveTo(origin)), true
}

// revealStart returns the new start of a visible span [start, start+size)
// so that [lo, hi) fits inside it with margin pixels on either side.
// Spans too small for the target align to the target's start.
func revealStart(start, size, lo, hi, margin int) int {
	switch {
	case lo-margin < start:
		return lo - margin
	case hi+margin > start+size:
		if hi-lo+2*margin > size {
			return lo - margin
		}
		return hi + margin - size
	}
	return start
}

// clampOrigin keeps the area inside the table's bounding rect.
// An area larger than the table is pinned to the origin.
func (v *Viewport) clampOrigin(p geom.Point) geom.Point {
	if v.table == nil {
		return p
	}
	bounds := v.table.BoundingRect()
	return geom.Point{
		X: clamp(p.X, 0, bounds.Width()-v.area.Width()),
		Y: clamp(p.Y, 0, bounds.Height()-v.area.Height()),
	}
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(n, hi))
}
