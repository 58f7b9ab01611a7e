package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/dshills/vgrid/internal/geom"
	"github.com/dshills/vgrid/internal/table"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	}
	return fmt.Errorf("invalid output format %q (must be text or json)", format)
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeJSONLine writes v as a single line of JSON.
func writeJSONLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// rectJSON is the JSON form of a rectangle.
type rectJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func toRectJSON(r geom.Rect) rectJSON {
	return rectJSON{X: r.Left(), Y: r.Top(), Width: r.Width(), Height: r.Height()}
}

// cellJSON is the JSON form of a cell, optionally with its rectangle.
type cellJSON struct {
	Row    int       `json:"row"`
	Column int       `json:"column"`
	Rect   *rectJSON `json:"rect,omitempty"`
}

func toCellJSON(c table.Cell) cellJSON {
	return cellJSON{Row: c.Row, Column: c.Column}
}

func toCellsJSON(cells []table.Cell) []cellJSON {
	out := make([]cellJSON, len(cells))
	for i, c := range cells {
		out[i] = toCellJSON(c)
	}
	return out
}

// rangeJSON is the JSON form of a cell range.
type rangeJSON struct {
	First cellJSON `json:"first"`
	Last  cellJSON `json:"last"`
}

func toRangeJSON(r table.CellRange, ok bool) *rangeJSON {
	if !ok {
		return nil
	}
	return &rangeJSON{First: toCellJSON(r.First), Last: toCellJSON(r.Last)}
}
