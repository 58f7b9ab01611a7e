package table

import "github.com/dshills/vgrid/internal/axis"

// Errors returned by table operations.
var (
	// ErrReadOnly indicates an attempt to assign a derived value.
	ErrReadOnly = axis.ErrReadOnly
)
