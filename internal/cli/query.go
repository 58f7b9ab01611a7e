package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dshills/vgrid/internal/geom"
	"github.com/dshills/vgrid/internal/table"
)

// defaultQueryLimit caps the cells listed by query.
const defaultQueryLimit = 100

func newQueryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "query [X Y WIDTH HEIGHT]",
		Short: "List the cells covered by a pixel rectangle",
		Long: `Lists the cells overlapping the pixel rectangle at (X, Y) with the given
size, sorted by row and then by column. Without arguments the layout's
viewport is used. The rectangle is clipped to the table.`,
		Example: `  vgrid query 0 0 800 600 --layout grid.yaml
  vgrid query --layout grid.yaml --limit 0 --output json`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 4 {
				return fmt.Errorf("query takes 0 or 4 arguments, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.OutOrStdout(), opts, args, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultQueryLimit, "maximum number of cells to list (0 for no limit)")

	return cmd
}

type queryJSON struct {
	Rect      rectJSON   `json:"rect"`
	Range     *rangeJSON `json:"range,omitempty"`
	Count     int        `json:"count"`
	Cells     []cellJSON `json:"cells"`
	Truncated bool       `json:"truncated"`
}

func runQuery(w io.Writer, opts *options, args []string, limit int) error {
	l, t, err := opts.loadTable()
	if err != nil {
		return err
	}

	var rect geom.Rect
	if len(args) == 4 {
		n, err := parseInts(args)
		if err != nil {
			return err
		}
		rect = geom.FromPointAndSize(geom.Point{X: n[0], Y: n[1]}, n[2], n[3])
	} else {
		area, ok := l.VisibleArea()
		if !ok {
			return fmt.Errorf("%s sets no viewport; pass X Y WIDTH HEIGHT", opts.layoutPath)
		}
		rect = area
	}

	r, ok := t.VisibleRange(rect)
	count := 0
	if ok {
		count = r.Len()
	}

	var cells []cellJSON
	if ok {
		r.Each(func(c table.Cell) bool {
			if limit > 0 && len(cells) >= limit {
				return false
			}
			cj := toCellJSON(c)
			if cr, found := t.CellRect(c); found {
				rj := toRectJSON(cr)
				cj.Rect = &rj
			}
			cells = append(cells, cj)
			return true
		})
	}

	opts.logger.Debug().Stringer("rect", rect).Int("cells", count).Msg("query")

	if opts.output == outputJSON {
		if cells == nil {
			cells = []cellJSON{}
		}
		return writeJSON(w, queryJSON{
			Rect:      toRectJSON(rect),
			Range:     toRangeJSON(r, ok),
			Count:     count,
			Cells:     cells,
			Truncated: len(cells) < count,
		})
	}

	fmt.Fprintf(w, "rect:  %s\n", rect)
	if ok {
		fmt.Fprintf(w, "range: %s\n", r)
	}
	fmt.Fprintf(w, "cells: %s\n", humanize.Comma(int64(count)))
	for _, c := range cells {
		fmt.Fprintf(w, "(%d,%d) %s\n", c.Row, c.Column, cellRectString(c.Rect))
	}
	if more := count - len(cells); more > 0 {
		fmt.Fprintf(w, "... %s more\n", humanize.Comma(int64(more)))
	}
	return nil
}

func newHitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hit X Y",
		Short: "Find the cell under a pixel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args)
			if err != nil {
				return err
			}
			return runHit(cmd.OutOrStdout(), opts, geom.Point{X: n[0], Y: n[1]})
		},
	}
}

type pointJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type hitJSON struct {
	Point pointJSON `json:"point"`
	Found bool      `json:"found"`
	Cell  *cellJSON `json:"cell,omitempty"`
}

func runHit(w io.Writer, opts *options, p geom.Point) error {
	_, t, err := opts.loadTable()
	if err != nil {
		return err
	}

	res := hitJSON{Point: pointJSON{X: p.X, Y: p.Y}}
	if c, ok := t.CellAt(p); ok {
		cj := toCellJSON(c)
		if r, found := t.CellRect(c); found {
			rj := toRectJSON(r)
			cj.Rect = &rj
		}
		res.Found = true
		res.Cell = &cj
	}

	if opts.output == outputJSON {
		return writeJSON(w, res)
	}
	if !res.Found {
		fmt.Fprintf(w, "no cell at %s\n", p)
		return nil
	}
	fmt.Fprintf(w, "(%d,%d) %s\n", res.Cell.Row, res.Cell.Column, cellRectString(res.Cell.Rect))
	return nil
}

func newCellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cell ROW COLUMN",
		Short: "Print the pixel rectangle of a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args)
			if err != nil {
				return err
			}
			return runCell(cmd.OutOrStdout(), opts, table.NewCell(n[0], n[1]))
		},
	}
}

type cellResultJSON struct {
	Cell  cellJSON `json:"cell"`
	Found bool     `json:"found"`
}

func runCell(w io.Writer, opts *options, c table.Cell) error {
	_, t, err := opts.loadTable()
	if err != nil {
		return err
	}

	res := cellResultJSON{Cell: toCellJSON(c)}
	if r, ok := t.CellRect(c); ok {
		rj := toRectJSON(r)
		res.Cell.Rect = &rj
		res.Found = true
	}

	if opts.output == outputJSON {
		return writeJSON(w, res)
	}
	if !res.Found {
		fmt.Fprintf(w, "%s is outside the table (%s rows, %s columns)\n",
			c, humanize.Comma(int64(t.RowCount())), humanize.Comma(int64(t.ColumnCount())))
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", c, cellRectString(res.Cell.Rect))
	return nil
}

// cellRectString formats a cell rectangle the way geom.Rect prints.
func cellRectString(r *rectJSON) string {
	if r == nil {
		return ""
	}
	return geom.FromPointAndSize(geom.Point{X: r.X, Y: r.Y}, r.Width, r.Height).String()
}

// parseInts converts positional arguments to integers.
func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", a)
		}
		out[i] = n
	}
	return out, nil
}
