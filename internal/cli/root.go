// Package cli implements the vgrid command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/vgrid/internal/layout"
	"github.com/dshills/vgrid/internal/logging"
	"github.com/dshills/vgrid/internal/table"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvLogLevel  = "VGRID_LOG_LEVEL"
	EnvLogFormat = "VGRID_LOG_FORMAT"
	EnvLayout    = "VGRID_LAYOUT"
)

// ErrNoLayout is returned by commands that need a layout file when none
// was given.
var ErrNoLayout = errors.New("no layout file (use --layout or " + EnvLayout + ")")

// options holds the persistent flag values and the state set up from them.
type options struct {
	debug      bool
	logLevel   string
	logFormat  string
	layoutPath string
	output     string

	logger zerolog.Logger
}

// NewRootCmd creates the root command for the vgrid CLI.
func NewRootCmd(ver string) *cobra.Command {
	opts := &options{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "vgrid",
		Short: "Query virtualized grid layouts",
		Long: `vgrid loads a grid layout (column widths and row heights stored as runs)
and answers geometry questions about it: which cells a pixel rectangle
covers, which cell is under a pixel, and where a cell is drawn.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging (console format)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	pf.StringVar(&opts.logFormat, "log-format", logging.FormatAuto, "log format: auto, console, or json")
	pf.StringVarP(&opts.layoutPath, "layout", "l", "", "layout file (.toml, .yaml, .yml, or .json)")
	pf.StringVarP(&opts.output, "output", "o", outputText, "output format: text or json")

	cmd.AddCommand(
		newInfoCmd(opts),
		newQueryCmd(opts),
		newHitCmd(opts),
		newCellCmd(opts),
		newWatchCmd(opts),
	)

	return cmd
}

const rootCmdExample = `  # Summarize a layout
  vgrid info --layout grid.yaml

  # List the cells covered by an 800x600 viewport at (100, 2000)
  vgrid query 100 2000 800 600 --layout grid.yaml

  # Find the cell under a pixel, as JSON
  vgrid hit 450 12345 --layout grid.toml --output json

  # Print visible cell changes whenever the layout file is saved
  vgrid watch --layout grid.yaml`

// setup applies environment overrides, validates flags, and creates the
// logger.
func (o *options) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if v := os.Getenv(EnvLogLevel); v != "" && !flags.Changed("log-level") {
		o.logLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" && !flags.Changed("log-format") {
		o.logFormat = v
	}
	if v := os.Getenv(EnvLayout); v != "" && !flags.Changed("layout") {
		o.layoutPath = v
	}

	cfg := logging.Config{
		Level:  o.logLevel,
		Format: o.logFormat,
		Output: cmd.ErrOrStderr(),
	}
	if o.debug {
		cfg.Level = "debug"
		cfg.Format = logging.FormatConsole
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	o.logger = logging.Component(logger, "cli")

	if err := validateOutput(o.output); err != nil {
		return err
	}

	o.logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

// loadLayout reads the layout named by --layout.
func (o *options) loadLayout() (*layout.Layout, error) {
	if o.layoutPath == "" {
		return nil, ErrNoLayout
	}
	l, err := layout.Load(o.layoutPath)
	if err != nil {
		return nil, err
	}
	o.logger.Debug().
		Str("path", o.layoutPath).
		Int("column_runs", len(l.Columns)).
		Int("row_runs", len(l.Rows)).
		Msg("layout loaded")
	return l, nil
}

// loadTable reads and builds the layout named by --layout.
func (o *options) loadTable() (*layout.Layout, *table.Table, error) {
	l, err := o.loadLayout()
	if err != nil {
		return nil, nil, err
	}
	t, err := l.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("building %s: %w", o.layoutPath, err)
	}
	return l, t, nil
}
