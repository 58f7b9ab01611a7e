package viewport

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vgrid/internal/axis"
	"github.com/dshills/vgrid/internal/geom"
	"github.com/dshills/vgrid/internal/table"
)

// newTestTable builds 10 columns of width 100 and 10 rows of height 50,
// a 1000x500 pixel table.
func newTestTable() *table.Table {
	tbl := table.New()
	tbl.XAxis().AppendRun(10, 100)
	tbl.YAxis().AppendRun(10, 50)
	return tbl
}

func cells(pairs ...int) []table.Cell {
	out := make([]table.Cell, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, table.NewCell(pairs[i], pairs[i+1]))
	}
	return out
}

func TestNewViewport(t *testing.T) {
	v := New(newTestTable())

	assert.True(t, v.VisibleArea().IsEmpty())
	assert.Nil(t, v.Visible())
	_, ok := v.VisibleRange()
	assert.False(t, ok)
	assert.True(t, v.Refresh().Empty())
}

func TestSetVisibleArea(t *testing.T) {
	v := New(newTestTable())

	d := v.SetVisibleArea(geom.FromXY(0, 0, 200, 100))
	assert.Equal(t, cells(0, 0, 0, 1, 1, 0, 1, 1), d.Added)
	assert.Empty(t, d.Removed)
	assert.Equal(t, cells(0, 0, 0, 1, 1, 0, 1, 1), v.Visible())
	assert.True(t, v.IsVisible(table.NewCell(1, 1)))
	assert.False(t, v.IsVisible(table.NewCell(2, 0)))

	// Same area again changes nothing.
	assert.True(t, v.SetVisibleArea(geom.FromXY(0, 0, 200, 100)).Empty())

	// Moving inside the same cells changes nothing either.
	assert.True(t, v.SetVisibleArea(geom.FromXY(10, 10, 190, 90)).Empty())

	// Leaving the table removes everything.
	d = v.SetVisibleArea(geom.FromXY(2000, 2000, 2100, 2100))
	assert.Empty(t, d.Added)
	assert.Equal(t, cells(0, 0, 0, 1, 1, 0, 1, 1), d.Removed)
	assert.Nil(t, v.Visible())
}

func TestResize(t *testing.T) {
	v := New(newTestTable())
	v.SetVisibleArea(geom.FromXY(0, 0, 100, 50))

	d := v.Resize(200, 50)
	assert.Equal(t, cells(0, 1), d.Added)
	assert.Empty(t, d.Removed)
	assert.Equal(t, geom.FromXY(0, 0, 200, 50), v.VisibleArea())

	d = v.Resize(100, 100)
	assert.Equal(t, cells(1, 0), d.Added)
	assert.Equal(t, cells(0, 1), d.Removed)

	d = v.Resize(0, 0)
	assert.Empty(t, d.Added)
	assert.Equal(t, cells(0, 0, 1, 0), d.Removed)
}

func TestScrollBy(t *testing.T) {
	v := New(newTestTable())
	v.SetVisibleArea(geom.FromXY(0, 0, 200, 100))

	d := v.ScrollBy(100, 0)
	assert.Equal(t, geom.FromXY(100, 0, 300, 100), v.VisibleArea())
	assert.Equal(t, cells(0, 2, 1, 2), d.Added)
	assert.Equal(t, cells(0, 0, 1, 0), d.Removed)

	d = v.ScrollBy(0, 50)
	assert.Equal(t, cells(2, 1, 2, 2), d.Added)
	assert.Equal(t, cells(0, 1, 0, 2), d.Removed)
}

func TestScrollToClamps(t *testing.T) {
	v := New(newTestTable())
	v.SetVisibleArea(geom.FromXY(0, 0, 200, 100))

	v.ScrollTo(geom.Point{X: 5000, Y: 5000})
	assert.Equal(t, geom.FromXY(800, 400, 1000, 500), v.VisibleArea())
	assert.Equal(t, cells(8, 8, 8, 9, 9, 8, 9, 9), v.Visible())

	v.ScrollTo(geom.Point{X: -10, Y: -10})
	assert.Equal(t, geom.FromXY(0, 0, 200, 100), v.VisibleArea())

	v.ScrollBy(-1, -1)
	assert.Equal(t, geom.FromXY(0, 0, 200, 100), v.VisibleArea())
}

func TestScrollAreaLargerThanTable(t *testing.T) {
	v := New(newTestTable())
	v.SetVisibleArea(geom.FromXY(0, 0, 2000, 1000))
	require.Len(t, v.Visible(), 100)

	d := v.ScrollBy(10, 10)
	assert.True(t, d.Empty())
	assert.Equal(t, geom.Point{}, v.VisibleArea().TopLeft)
}

func TestScrollToReveal(t *testing.T) {
	v := New(newTestTable())
	v.SetVisibleArea(geom.FromXY(0, 0, 200, 100))

	d, moved := v.ScrollToReveal(table.NewCell(5, 7))
	require.True(t, moved)
	assert.Equal(t, geom.FromXY(600, 200, 800, 300), v.VisibleArea())
	assert.Equal(t, cells(4, 6, 4, 7, 5, 6, 5, 7), d.Added)
	assert.Equal(t, cells(0, 0, 0, 1, 1, 0, 1, 1), d.Removed)
	assert.True(t, v.IsVisible(table.NewCell(5, 7)))

	// Already visible.
	_, moved = v.ScrollToReveal(table.NewCell(5, 7))
	assert.False(t, moved)

	// Scrolling back up and left aligns to the cell's start.
	_, moved = v.ScrollToReveal(table.NewCell(1, 2))
	require.True(t, moved)
	assert.Equal(t, geom.FromXY(200, 50, 400, 150), v.VisibleArea())

	// Outside the table.
	_, moved = v.ScrollToReveal(table.NewCell(10, 0))
	assert.False(t, moved)
	_, moved = v.ScrollToReveal(table.NewCell(-1, 0))
	assert.False(t, moved)
}

func TestScrollToRevealMargins(t *testing.T) {
	v := New(newTestTable(), WithMargins(50, 0))
	v.SetVisibleArea(geom.FromXY(0, 0, 200, 100))

	_, moved := v.ScrollToReveal(table.NewCell(0, 3))
	require.True(t, moved)
	assert.Equal(t, geom.FromXY(250, 0, 450, 100), v.VisibleArea())

	// The margin is clamped at the table edge.
	_, moved = v.ScrollToReveal(table.NewCell(0, 9))
	require.True(t, moved)
	assert.Equal(t, geom.FromXY(800, 0, 1000, 100), v.VisibleArea())
}

func TestScrollToRevealWideCell(t *testing.T) {
	tbl := table.FromAxes(axis.FromSizes(100, 500, 100), axis.FromSizes(50))
	v := New(tbl)
	v.SetVisibleArea(geom.FromXY(0, 0, 200, 50))

	// A cell wider than the area aligns to its left edge.
	_, moved := v.ScrollToReveal(table.NewCell(0, 1))
	require.True(t, moved)
	assert.Equal(t, geom.FromXY(100, 0, 300, 50), v.VisibleArea())
}

func TestRefreshAfterMutation(t *testing.T) {
	tbl := newTestTable()
	v := New(tbl)
	v.SetVisibleArea(geom.FromXY(0, 0, 1000, 500))
	require.Len(t, v.Visible(), 100)

	require.True(t, tbl.XAxis().RemoveAt(9))
	d := v.Refresh()
	assert.Empty(t, d.Added)
	require.Len(t, d.Removed, 10)
	for row, c := range d.Removed {
		assert.Equal(t, table.NewCell(row, 9), c)
	}

	tbl.YAxis().AppendRun(2, 50)
	d = v.Refresh()
	assert.Empty(t, d.Added, "new rows lie below the visible area")
	assert.Empty(t, d.Removed)
}

func TestSetTable(t *testing.T) {
	v := New(newTestTable())
	v.SetVisibleArea(geom.FromXY(0, 0, 200, 100))

	d := v.SetTable(table.FromAxes(axis.FromSizes(200), axis.FromSizes(100)))
	assert.Equal(t, cells(0, 1, 1, 0, 1, 1), d.Removed)
	assert.Empty(t, d.Added)
	assert.Equal(t, cells(0, 0), v.Visible())

	d = v.SetTable(nil)
	assert.Equal(t, cells(0, 0), d.Removed)
	assert.Nil(t, v.Visible())
}

func TestDiffLogging(t *testing.T) {
	var buf bytes.Buffer
	v := New(newTestTable(), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	v.SetVisibleArea(geom.FromXY(0, 0, 100, 50))
	assert.Contains(t, buf.String(), `"message":"visible cells changed"`)
	assert.Contains(t, buf.String(), `"added":1`)

	buf.Reset()
	v.Refresh()
	assert.Empty(t, buf.String())
}

// TestDiffsReplayToVisible applies every diff to a tracked set and checks it
// always matches the viewport's own view.
func TestDiffsReplayToVisible(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	tbl := table.FromAxes(axis.FromSizes(30, 30, 0, 80, 10, 10, 10, 120, 45), axis.FromSizes(20, 20, 20, 60, 5, 0, 40))
	v := New(tbl)
	tracked := map[table.Cell]bool{}

	apply := func(d Diff) {
		require.True(t, slices.IsSortedFunc(d.Added, table.Cell.Compare))
		require.True(t, slices.IsSortedFunc(d.Removed, table.Cell.Compare))
		for _, c := range d.Removed {
			require.True(t, tracked[c], "removed %s was not visible", c)
			delete(tracked, c)
		}
		for _, c := range d.Added {
			require.False(t, tracked[c], "added %s was already visible", c)
			tracked[c] = true
		}
	}

	for step := 0; step < 500; step++ {
		switch rng.IntN(4) {
		case 0:
			apply(v.SetVisibleArea(geom.FromPointAndSize(
				geom.Point{X: rng.IntN(400) - 50, Y: rng.IntN(200) - 50},
				rng.IntN(200), rng.IntN(120))))
		case 1:
			apply(v.ScrollBy(rng.IntN(101)-50, rng.IntN(61)-30))
		case 2:
			apply(v.Resize(rng.IntN(250), rng.IntN(150)))
		case 3:
			d, _ := v.ScrollToReveal(table.NewCell(rng.IntN(7), rng.IntN(9)))
			apply(d)
		}

		visible := v.Visible()
		require.Len(t, tracked, len(visible), "step %d", step)
		for _, c := range visible {
			require.True(t, tracked[c], "step %d: %s missing", step, c)
		}
		assert.Equal(t, tbl.CellsInVisualRect(v.VisibleArea()), visible)
	}
}

func TestReplace(t *testing.T) {
	v := New(newTestTable())
	v.SetVisibleArea(geom.FromXY(0, 0, 200, 100))

	wide := table.FromAxes(axis.FromSizes(50, 50, 50, 50), axis.FromSizes(100))
	d := v.Replace(wide, geom.FromXY(0, 0, 150, 100))

	assert.Equal(t, cells(0, 2), d.Added)
	assert.Equal(t, cells(1, 0, 1, 1), d.Removed)
	assert.Equal(t, cells(0, 0, 0, 1, 0, 2), v.Visible())
	assert.Same(t, wide, v.Table())
}
