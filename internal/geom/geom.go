// Package geom provides the integer pixel geometry shared by the grid engine:
// points and half-open rectangles.
package geom

import "fmt"

// Point represents a pixel position. X grows to the right, Y grows down.
type Point struct {
	X int
	Y int
}

// NewPoint creates a point.
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns a new point offset by the given delta.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Equals returns true if two points are the same.
func (p Point) Equals(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Compare orders points by X, then by Y.
// It returns -1, 0 or +1.
func (p Point) Compare(other Point) int {
	switch {
	case p.X < other.X:
		return -1
	case p.X > other.X:
		return 1
	case p.Y < other.Y:
		return -1
	case p.Y > other.Y:
		return 1
	}
	return 0
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect represents a rectangular pixel region.
// TopLeft is inclusive, BottomRight is exclusive on both axes.
type Rect struct {
	TopLeft     Point
	BottomRight Point
}

// NewRect creates a rectangle from its corners.
func NewRect(topLeft, bottomRight Point) Rect {
	return Rect{TopLeft: topLeft, BottomRight: bottomRight}
}

// FromXY creates a rectangle from edge coordinates.
func FromXY(left, top, right, bottom int) Rect {
	return Rect{
		TopLeft:     Point{X: left, Y: top},
		BottomRight: Point{X: right, Y: bottom},
	}
}

// FromPointAndSize creates a rectangle from its top-left corner and size.
func FromPointAndSize(topLeft Point, width, height int) Rect {
	return Rect{
		TopLeft:     topLeft,
		BottomRight: Point{X: topLeft.X + width, Y: topLeft.Y + height},
	}
}

// Left returns the left edge (inclusive).
func (r Rect) Left() int { return r.TopLeft.X }

// Top returns the top edge (inclusive).
func (r Rect) Top() int { return r.TopLeft.Y }

// Right returns the right edge (exclusive).
func (r Rect) Right() int { return r.BottomRight.X }

// Bottom returns the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.BottomRight.Y }

// Width returns the width of the rectangle.
func (r Rect) Width() int { return r.BottomRight.X - r.TopLeft.X }

// Height returns the height of the rectangle.
func (r Rect) Height() int { return r.BottomRight.Y - r.TopLeft.Y }

// SetWidth moves the right edge so the rectangle has the given width.
func (r *Rect) SetWidth(width int) {
	r.BottomRight.X = r.TopLeft.X + width
}

// SetHeight moves the bottom edge so the rectangle has the given height.
func (r *Rect) SetHeight(height int) {
	r.BottomRight.Y = r.TopLeft.Y + height
}

// IsValid returns true if the corners are ordered.
// Zero-area rectangles are valid.
func (r Rect) IsValid() bool {
	return r.TopLeft.X <= r.BottomRight.X && r.TopLeft.Y <= r.BottomRight.Y
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains returns true if p is within the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X < r.Right() &&
		p.Y >= r.Top() && p.Y < r.Bottom()
}

// Intersects returns true if two rectangles overlap.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() && r.Right() > other.Left() &&
		r.Top() < other.Bottom() && r.Bottom() > other.Top()
}

// Intersection returns the overlapping region of two rectangles.
// The second result is false when they don't overlap or the overlap has no area.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	if !r.Intersects(other) {
		return Rect{}, false
	}
	result := Rect{
		TopLeft: Point{
			X: max(r.Left(), other.Left()),
			Y: max(r.Top(), other.Top()),
		},
		BottomRight: Point{
			X: min(r.Right(), other.Right()),
			Y: min(r.Bottom(), other.Bottom()),
		},
	}
	if result.TopLeft.X >= result.BottomRight.X || result.TopLeft.Y >= result.BottomRight.Y {
		return Rect{}, false
	}
	return result, true
}

// Translate returns the rectangle moved by the given delta.
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{
		TopLeft:     r.TopLeft.Add(dx, dy),
		BottomRight: r.BottomRight.Add(dx, dy),
	}
}

// MoveTo returns the rectangle moved so its top-left corner is p.
func (r Rect) MoveTo(p Point) Rect {
	return FromPointAndSize(p, r.Width(), r.Height())
}

// Equals returns true if two rectangles are identical.
func (r Rect) Equals(other Rect) bool {
	return r.TopLeft.Equals(other.TopLeft) && r.BottomRight.Equals(other.BottomRight)
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("[%s-%s]", r.TopLeft, r.BottomRight)
}
