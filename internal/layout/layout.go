// Package layout reads table layout documents and builds tables from them.
//
// A layout lists column widths and row heights as runs of {size, count},
// plus an optional initial viewport:
//
//	columns:
//	  - {size: 100, count: 1000}
//	rows:
//	  - {size: 30, count: 100000}
//	  - size: 60
//	viewport: {x: 0, y: 0, width: 800, height: 600}
//
// The same document can be written in TOML, YAML or JSON; the format is
// chosen by file extension.
package layout

import (
	"errors"
	"fmt"

	"github.com/dshills/vgrid/internal/axis"
	"github.com/dshills/vgrid/internal/geom"
	"github.com/dshills/vgrid/internal/table"
)

// Entry is a run of elements in a layout document.
type Entry struct {
	Size int `toml:"size" yaml:"size" json:"size"`

	// Count defaults to 1 when omitted. Zero is allowed and adds nothing.
	Count *int `toml:"count,omitempty" yaml:"count,omitempty" json:"count,omitempty"`
}

// Elements returns the number of elements the entry adds.
func (e Entry) Elements() int {
	if e.Count == nil {
		return 1
	}
	return *e.Count
}

// Area is a pixel rectangle given by origin and size.
type Area struct {
	X      int `toml:"x" yaml:"x" json:"x"`
	Y      int `toml:"y" yaml:"y" json:"y"`
	Width  int `toml:"width" yaml:"width" json:"width"`
	Height int `toml:"height" yaml:"height" json:"height"`
}

// Rect converts the area to a rectangle.
func (a Area) Rect() geom.Rect {
	return geom.FromPointAndSize(geom.Point{X: a.X, Y: a.Y}, a.Width, a.Height)
}

// Layout is a decoded layout document.
type Layout struct {
	Columns  []Entry `toml:"columns" yaml:"columns" json:"columns"`
	Rows     []Entry `toml:"rows" yaml:"rows" json:"rows"`
	Viewport *Area   `toml:"viewport,omitempty" yaml:"viewport,omitempty" json:"viewport,omitempty"`
}

// VisibleArea returns the initial viewport rectangle.
// Returns false if the document does not set one.
func (l *Layout) VisibleArea() (geom.Rect, bool) {
	if l.Viewport == nil {
		return geom.Rect{}, false
	}
	return l.Viewport.Rect(), true
}

// Validate checks every entry and the viewport. All problems are reported,
// joined; each is a *ValidationError.
func (l *Layout) Validate() error {
	var errs []error
	errs = appendEntryErrors(errs, "columns", l.Columns)
	errs = appendEntryErrors(errs, "rows", l.Rows)

	if l.Viewport != nil {
		if l.Viewport.Width < 0 {
			errs = append(errs, &ValidationError{Field: "viewport.width", Value: l.Viewport.Width, Err: ErrNegativeSize})
		}
		if l.Viewport.Height < 0 {
			errs = append(errs, &ValidationError{Field: "viewport.height", Value: l.Viewport.Height, Err: ErrNegativeSize})
		}
	}
	return errors.Join(errs...)
}

// appendEntryErrors checks the entries of one axis. Running totals catch
// element counts or pixel lengths that would overflow; only the first entry
// that overflows is reported.
func appendEntryErrors(errs []error, name string, entries []Entry) []error {
	var length, visualLength int
	overflowed := false

	for i, e := range entries {
		n := e.Elements()
		if e.Size < 0 {
			errs = append(errs, &ValidationError{
				Field: fmt.Sprintf("%s[%d].size", name, i),
				Value: e.Size,
				Err:   ErrNegativeSize,
			})
		}
		if n < 0 {
			errs = append(errs, &ValidationError{
				Field: fmt.Sprintf("%s[%d].count", name, i),
				Value: n,
				Err:   ErrNegativeCount,
			})
		}
		if overflowed || e.Size < 0 || n <= 0 {
			continue
		}

		if !axis.Fits(length, visualLength, n, e.Size) {
			errs = append(errs, &ValidationError{
				Field: fmt.Sprintf("%s[%d].count", name, i),
				Value: n,
				Err:   ErrTooLarge,
			})
			overflowed = true
			continue
		}
		length += n
		visualLength += n * e.Size
	}
	return errs
}

// Build validates the layout and creates a table from it.
func (l *Layout) Build() (*table.Table, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	t := table.New()
	for _, e := range l.Columns {
		t.XAxis().AppendRun(e.Elements(), e.Size)
	}
	for _, e := range l.Rows {
		t.YAxis().AppendRun(e.Elements(), e.Size)
	}
	return t, nil
}
