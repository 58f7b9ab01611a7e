package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/vgrid/internal/geom"
	"github.com/dshills/vgrid/internal/layout"
	"github.com/dshills/vgrid/internal/logging"
	"github.com/dshills/vgrid/internal/viewport"
)

// defaultWatchArea is used when the layout sets no viewport.
var defaultWatchArea = geom.FromXY(0, 0, 800, 600)

func newWatchCmd(opts *options) *cobra.Command {
	var (
		debounce  time.Duration
		listCells bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report visible cell changes whenever the layout file changes",
		Long: `Keeps a viewport over the layout and reloads the file each time it is
saved. After every reload the cells that entered and left the viewport are
reported. A layout without a viewport is watched through an 800x600 area at
the origin; a reloaded layout without one keeps the current area.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts, debounce, listCells)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", layout.DefaultDebounce, "quiet period before reloading")
	cmd.Flags().BoolVar(&listCells, "cells", false, "list added and removed cells in text output")

	return cmd
}

type watchEventJSON struct {
	Event   string     `json:"event"`
	Area    rectJSON   `json:"area"`
	Visible *rangeJSON `json:"visible,omitempty"`
	Count   int        `json:"count"`
	Added   []cellJSON `json:"added"`
	Removed []cellJSON `json:"removed"`
	Error   string     `json:"error,omitempty"`
}

func runWatch(cmd *cobra.Command, opts *options, debounce time.Duration, listCells bool) error {
	l, t, err := opts.loadTable()
	if err != nil {
		return err
	}

	area, ok := l.VisibleArea()
	if !ok {
		area = defaultWatchArea
	}

	vp := viewport.New(t, viewport.WithLogger(logging.Component(opts.logger, "viewport")))
	initial := vp.SetVisibleArea(area)

	w, err := layout.NewWatcher(opts.layoutPath,
		layout.WithDebounce(debounce),
		layout.WithLogger(logging.Component(opts.logger, "watcher")))
	if err != nil {
		return err
	}
	defer w.Close()

	out := cmd.OutOrStdout()
	p := watchPrinter{w: out, json: opts.output == outputJSON, listCells: listCells}
	if err := p.print("initial", vp, initial, nil); err != nil {
		return err
	}

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			opts.logger.Debug().Msg("watch stopped")
			return nil

		case r, ok := <-w.Reloads():
			if !ok {
				return nil
			}
			if r.Err != nil {
				if err := p.print("error", vp, viewport.Diff{}, r.Err); err != nil {
					return err
				}
				continue
			}

			next, err := r.Layout.Build()
			if err != nil {
				if err := p.print("error", vp, viewport.Diff{}, err); err != nil {
					return err
				}
				continue
			}

			nextArea, ok := r.Layout.VisibleArea()
			if !ok {
				nextArea = vp.VisibleArea()
			}
			if err := p.print("reload", vp, vp.Replace(next, nextArea), nil); err != nil {
				return err
			}
		}
	}
}

type watchPrinter struct {
	w         io.Writer
	json      bool
	listCells bool
}

func (p watchPrinter) print(event string, vp *viewport.Viewport, d viewport.Diff, cause error) error {
	r, ok := vp.VisibleRange()
	count := 0
	if ok {
		count = r.Len()
	}

	if p.json {
		ev := watchEventJSON{
			Event:   event,
			Area:    toRectJSON(vp.VisibleArea()),
			Visible: toRangeJSON(r, ok),
			Count:   count,
			Added:   toCellsJSON(d.Added),
			Removed: toCellsJSON(d.Removed),
		}
		if cause != nil {
			ev.Error = cause.Error()
		}
		return writeJSONLine(p.w, ev)
	}

	if cause != nil {
		_, err := fmt.Fprintf(p.w, "%s: %v\n", event, cause)
		return err
	}

	visible := "nothing visible"
	if ok {
		visible = fmt.Sprintf("visible %s (%d cells)", r, count)
	}
	if _, err := fmt.Fprintf(p.w, "%s: %s in %s, +%d -%d\n", event, visible, vp.VisibleArea(), len(d.Added), len(d.Removed)); err != nil {
		return err
	}
	if p.listCells {
		for _, c := range d.Removed {
			fmt.Fprintf(p.w, "- %s\n", c)
		}
		for _, c := range d.Added {
			fmt.Fprintf(p.w, "+ %s\n", c)
		}
	}
	return nil
}
