package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnknownFormat indicates a file extension or format name that is not
	// one of toml, yaml or json.
	ErrUnknownFormat = errors.New("unknown layout format")

	// ErrNegativeSize indicates a run with a negative element size.
	ErrNegativeSize = errors.New("negative size")

	// ErrNegativeCount indicates a run with a negative element count.
	ErrNegativeCount = errors.New("negative count")

	// ErrTooLarge indicates an axis whose element count or pixel length
	// does not fit in an int.
	ErrTooLarge = errors.New("axis too large")
)

// ParseError represents an error while decoding a layout document.
type ParseError struct {
	Path    string
	Format  Format
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s (%s) at line %d, column %d: %s", e.Path, e.Format, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s (%s) at line %d: %s", e.Path, e.Format, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s (%s): %s", e.Path, e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a field holding an invalid value.
type ValidationError struct {
	// Field is the path of the offending field, e.g. "rows[2].count".
	Field string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid layout: %s: %v (%d)", e.Field, e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
