package layout

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vgrid/internal/geom"
)

const gridTOML = `
[[columns]]
size = 100
count = 3

[[columns]]
size = 40

[[rows]]
size = 30
count = 1000

[[rows]]
size = 60
count = 0

[[rows]]
size = 60
count = 2

[viewport]
x = 10
y = 20
width = 800
height = 600
`

const gridYAML = `
columns:
  - {size: 100, count: 3}
  - size: 40
rows:
  - {size: 30, count: 1000}
  - {size: 60, count: 0}
  - {size: 60, count: 2}
viewport: {x: 10, y: 20, width: 800, height: 600}
`

const gridJSON = `{
  "columns": [{"size": 100, "count": 3}, {"size": 40}],
  "rows": [{"size": 30, "count": 1000}, {"size": 60, "count": 0}, {"size": 60, "count": 2}],
  "viewport": {"x": 10, "y": 20, "width": 800, "height": 600}
}`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"grid.toml": {Data: []byte(gridTOML)},
		"grid.yaml": {Data: []byte(gridYAML)},
		"grid.yml":  {Data: []byte(gridYAML)},
		"grid.json": {Data: []byte(gridJSON)},
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.toml", FormatTOML, true},
		{"dir/a.yaml", FormatYAML, true},
		{"a.YML", FormatYAML, true},
		{"a.json", FormatJSON, true},
		{"a.ini", "", false},
		{"layout", "", false},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrUnknownFormat, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestLoadAllFormatsBuildSameTable(t *testing.T) {
	loader := NewLoaderWithFS(testFS())

	for _, name := range []string{"grid.toml", "grid.yaml", "grid.yml", "grid.json"} {
		t.Run(name, func(t *testing.T) {
			l, err := loader.Load(name)
			require.NoError(t, err)

			tbl, err := l.Build()
			require.NoError(t, err)

			assert.Equal(t, "[3x100 1x40]", tbl.XAxis().String())
			assert.Equal(t, "[1000x30 2x60]", tbl.YAxis().String())
			assert.Equal(t, 4, tbl.ColumnCount())
			assert.Equal(t, 1002, tbl.RowCount())
			assert.Equal(t, geom.FromXY(0, 0, 340, 30120), tbl.BoundingRect())

			area, ok := l.VisibleArea()
			require.True(t, ok)
			assert.Equal(t, geom.FromXY(10, 20, 810, 620), area)
		})
	}
}

func TestLoadFromReader(t *testing.T) {
	l, err := NewLoader().LoadFromReader(strings.NewReader(gridYAML), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, l.Columns, 2)
	assert.Equal(t, 1, l.Columns[1].Elements())
}

func TestParseEmptyDocument(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		l, err := Parse(nil, format)
		require.NoError(t, err, format)

		tbl, err := l.Build()
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.ColumnCount())

		_, ok := l.VisibleArea()
		assert.False(t, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml syntax", FormatTOML, "[[columns]\nsize = 1"},
		{"toml unknown field", FormatTOML, "[[columns]]\nwidth = 1"},
		{"yaml syntax", FormatYAML, "columns: [size: 1"},
		{"yaml unknown field", FormatYAML, "columns:\n  - width: 1"},
		{"yaml wrong type", FormatYAML, "columns:\n  - size: wide"},
		{"json syntax", FormatJSON, `{"columns": [`},
		{"json unknown field", FormatJSON, `{"cols": []}`},
		{"json empty", FormatJSON, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.format, pe.Format)
			assert.NotEmpty(t, pe.Message)
			assert.NotNil(t, errors.Unwrap(pe))
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse([]byte("[[columns]]\nsize = = 1\n"), FormatTOML)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, pe.Error(), "at line 2")
}

func TestParseErrorYAMLLine(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
	}{
		{"wrong type", "columns:\n  - size: 10\n  - size: wide\n", 3},
		{"unknown field", "rows:\n  - size: 1\n  - height: 1\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line, pe.Message)
			assert.Zero(t, pe.Column)
			assert.Contains(t, pe.Error(), fmt.Sprintf("at line %d:", tt.line))
		})
	}
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse([]byte("x"), Format("ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoaderWithFS(fstest.MapFS{}).Load("missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	neg := -2
	l := &Layout{
		Columns:  []Entry{{Size: 10}, {Size: -5}},
		Rows:     []Entry{{Size: 10, Count: &neg}},
		Viewport: &Area{Width: -1, Height: 10},
	}

	err := l.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeSize)
	assert.ErrorIs(t, err, ErrNegativeCount)
	assert.Contains(t, err.Error(), "columns[1].size")
	assert.Contains(t, err.Error(), "rows[0].count")
	assert.Contains(t, err.Error(), "viewport.width")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "columns[1].size", ve.Field)
	assert.Equal(t, -5, ve.Value)

	_, err = l.Build()
	assert.ErrorIs(t, err, ErrNegativeSize)
}

func TestValidateOverflow(t *testing.T) {
	const huge = 1 << 62

	tests := []struct {
		name  string
		data  string
		field string
	}{
		{
			name:  "pixel length of one run",
			data:  `{"rows": [{"size": 3, "count": 4611686018427387904}]}`,
			field: "rows[0].count",
		},
		{
			name:  "summed pixel length",
			data:  `{"rows": [{"size": 1, "count": 4611686018427387904}, {"size": 2, "count": 4611686018427387904}]}`,
			field: "rows[1].count",
		},
		{
			name:  "summed element count",
			data:  `{"columns": [{"size": 0, "count": 9223372036854775807}, {"size": 1}]}`,
			field: "columns[1].count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse([]byte(tt.data), FormatJSON)
			require.NoError(t, err)

			err = l.Validate()
			require.ErrorIs(t, err, ErrTooLarge)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)

			tbl, err := l.Build()
			assert.ErrorIs(t, err, ErrTooLarge)
			assert.Nil(t, tbl)
		})
	}

	// Large but representable axes still build.
	first, rest := huge, math.MaxInt-huge
	l := &Layout{Rows: []Entry{{Size: 1, Count: &first}, {Size: 0, Count: &rest}}}
	tbl, err := l.Build()
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, tbl.RowCount())
	assert.Equal(t, huge, tbl.YAxis().VisualLen())
	e, ok := tbl.YAxis().VisualGet(5)
	require.True(t, ok)
	assert.Equal(t, 5, e.Index)
}

func TestBuildZeroSizes(t *testing.T) {
	zero := 0
	l := &Layout{
		Columns: []Entry{{Size: 0, Count: &zero}, {Size: 0}, {Size: 10}},
		Rows:    []Entry{{Size: 5}},
	}
	tbl, err := l.Build()
	require.NoError(t, err)
	assert.Equal(t, "[1x0 1x10]", tbl.XAxis().String())
	assert.Equal(t, geom.FromXY(0, 0, 10, 5), tbl.BoundingRect())
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func waitReload(t *testing.T, w *Watcher) Reload {
	t.Helper()
	select {
	case r, ok := <-w.Reloads():
		require.True(t, ok, "reload channel closed")
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	return Reload{}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.yaml")
	writeFile(t, path, "columns: [{size: 10}]\nrows: [{size: 10}]\n")

	w, err := NewWatcher(path, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, path, w.Path())

	// Writes to neighbours are ignored.
	writeFile(t, filepath.Join(dir, "other.yaml"), "columns: []\n")
	writeFile(t, path, "columns: [{size: 10, count: 5}]\nrows: [{size: 10}]\n")

	r := waitReload(t, w)
	require.NoError(t, r.Err)
	require.NotNil(t, r.Layout)
	require.Len(t, r.Layout.Columns, 1)
	assert.Equal(t, 5, r.Layout.Columns[0].Elements())

	// A broken document is reported, not fatal.
	writeFile(t, path, "columns: [")
	r = waitReload(t, w)
	var pe *ParseError
	assert.ErrorAs(t, r.Err, &pe)
	assert.Nil(t, r.Layout)

	writeFile(t, path, "columns: [{size: 7}]\n")
	r = waitReload(t, w)
	require.NoError(t, r.Err)
	assert.Equal(t, 7, r.Layout.Columns[0].Size)
}

func TestWatcherCoalescesRapidWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	writeFile(t, path, "columns: [{size: 1}]\n")

	w, err := NewWatcher(path, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	for _, size := range []int{2, 3, 4} {
		writeFile(t, path, fmt.Sprintf("columns: [{size: %d}]\n", size))
	}

	r := waitReload(t, w)
	require.NoError(t, r.Err)
	assert.Equal(t, 4, r.Layout.Columns[0].Size)

	select {
	case extra := <-w.Reloads():
		t.Fatalf("unexpected second reload: %+v", extra)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherMissingFile(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	writeFile(t, path, "{}")

	w, err := NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Reloads()
	assert.False(t, ok)
}
