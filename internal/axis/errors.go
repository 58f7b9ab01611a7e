package axis

import "errors"

// Errors returned by axis operations.
var (
	// ErrReadOnly indicates an attempt to assign a derived value.
	ErrReadOnly = errors.New("read-only property")
)
