package axis

import "fmt"

// Run describes count consecutive elements that all have the same size.
// Runs are values; only the owning Axis changes a run's count.
type Run struct {
	count int
	size  int
}

// NewRun creates a run of count elements of the given size.
func NewRun(count, size int) Run {
	return Run{count: count, size: size}
}

// Count returns the number of elements in the run.
func (r Run) Count() int {
	return r.count
}

// Size returns the pixel size of each element.
func (r Run) Size() int {
	return r.size
}

// VisualLength returns the total pixel length covered by the run.
func (r Run) VisualLength() int {
	return r.count * r.size
}

// Empty returns true if the run holds no elements.
func (r Run) Empty() bool {
	return r.count <= 0
}

// SetVisualLength always fails: the visual length is derived from the
// count and the element size.
func (r Run) SetVisualLength(int) error {
	return fmt.Errorf("run visual length: %w", ErrReadOnly)
}

// String returns a string representation of the run, e.g. "3x100".
func (r Run) String() string {
	return fmt.Sprintf("%dx%d", r.count, r.size)
}
