package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/dshills/vgrid/internal/axis"
	"github.com/dshills/vgrid/internal/layout"
	"github.com/dshills/vgrid/internal/table"
)

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Summarize a layout",
		Long: `Prints the number of columns and rows, how they are stored as runs,
the table's bounding rectangle, and the initial viewport if the layout
sets one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd.OutOrStdout(), opts)
		},
	}
}

type runJSON struct {
	Count int `json:"count"`
	Size  int `json:"size"`
}

type axisJSON struct {
	Count  int       `json:"count"`
	Pixels int       `json:"pixels"`
	Runs   []runJSON `json:"runs"`
}

func toAxisJSON(a *axis.Axis) axisJSON {
	runs := a.Runs()
	out := axisJSON{
		Count:  a.Len(),
		Pixels: a.VisualLen(),
		Runs:   make([]runJSON, len(runs)),
	}
	for i, r := range runs {
		out.Runs[i] = runJSON{Count: r.Count(), Size: r.Size()}
	}
	return out
}

type infoJSON struct {
	Layout       string     `json:"layout"`
	Columns      axisJSON   `json:"columns"`
	Rows         axisJSON   `json:"rows"`
	Bounds       rectJSON   `json:"bounds"`
	Viewport     *rectJSON  `json:"viewport,omitempty"`
	VisibleRange *rangeJSON `json:"visible_range,omitempty"`
	VisibleCells int        `json:"visible_cells"`
}

func runInfo(w io.Writer, opts *options) error {
	l, t, err := opts.loadTable()
	if err != nil {
		return err
	}

	if opts.output == outputJSON {
		return writeJSON(w, buildInfo(opts.layoutPath, l, t))
	}

	fmt.Fprintf(w, "layout:   %s\n", opts.layoutPath)
	fmt.Fprintf(w, "columns:  %s\n", describeAxis(t.XAxis()))
	fmt.Fprintf(w, "rows:     %s\n", describeAxis(t.YAxis()))
	fmt.Fprintf(w, "bounds:   %s\n", t.BoundingRect())
	if area, ok := l.VisibleArea(); ok {
		r, visible := t.VisibleRange(area)
		if visible {
			fmt.Fprintf(w, "viewport: %s, %s %s\n", area, humanize.Comma(int64(r.Len())), english.PluralWord(r.Len(), "cell", ""))
		} else {
			fmt.Fprintf(w, "viewport: %s, no cells\n", area)
		}
	}
	return nil
}

func buildInfo(path string, l *layout.Layout, t *table.Table) infoJSON {
	info := infoJSON{
		Layout:  path,
		Columns: toAxisJSON(t.XAxis()),
		Rows:    toAxisJSON(t.YAxis()),
		Bounds:  toRectJSON(t.BoundingRect()),
	}
	if area, ok := l.VisibleArea(); ok {
		rj := toRectJSON(area)
		info.Viewport = &rj
		r, visible := t.VisibleRange(area)
		info.VisibleRange = toRangeJSON(r, visible)
		if visible {
			info.VisibleCells = r.Len()
		}
	}
	return info
}

// describeAxis renders e.g. "1,000 in 1 run [1000x100], 100,000 px".
func describeAxis(a *axis.Axis) string {
	return fmt.Sprintf("%s in %d %s %s, %s px",
		humanize.Comma(int64(a.Len())),
		a.RunCount(), english.PluralWord(a.RunCount(), "run", ""),
		a,
		humanize.Comma(int64(a.VisualLen())))
}
