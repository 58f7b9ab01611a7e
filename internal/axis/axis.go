package axis

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Element describes one logical element of an axis.
type Element struct {
	// Index is the zero-based logical position of the element.
	Index int

	// Offset is the pixel offset of the element's first pixel.
	Offset int

	// Size is the pixel size of the element.
	Size int
}

// End returns the pixel offset just past the element.
func (e Element) End() int {
	return e.Offset + e.Size
}

// Axis is an ordered, run-length compressed sequence of element sizes.
// The zero value is an empty axis ready to use.
type Axis struct {
	runs []Run

	// Cached totals, maintained by every mutation.
	length       int
	visualLength int

	index prefixIndex
}

// New creates an empty axis.
func New() *Axis {
	return &Axis{}
}

// FromSizes creates an axis by appending each size in order.
func FromSizes(sizes ...int) *Axis {
	a := New()
	for _, size := range sizes {
		a.Append(size)
	}
	return a
}

// FromRuns creates an axis from raw runs. Empty runs are dropped and
// adjacent runs of equal size are merged.
// It panics if any run has a negative size or the totals overflow an int.
func FromRuns(runs ...Run) *Axis {
	a := &Axis{runs: slices.Clone(runs)}
	for _, r := range a.runs {
		checkSize(r.size)
	}
	a.compact()
	for _, r := range a.runs {
		checkGrowth(a.length, a.visualLength, r.count, r.size)
		a.length += r.count
		a.visualLength += r.VisualLength()
	}
	return a
}

// Append adds one element of the given size at the end of the axis.
// It panics if size is negative.
func (a *Axis) Append(size int) {
	a.AppendRun(1, size)
}

// AppendRun adds count elements of the given size at the end of the axis.
// A count of zero or less is a no-op. It panics if size is negative or if
// the element count or pixel length of the axis would overflow an int.
func (a *Axis) AppendRun(count, size int) {
	checkSize(size)
	if count <= 0 {
		return
	}
	checkGrowth(a.length, a.visualLength, count, size)

	if n := len(a.runs); n > 0 && a.runs[n-1].size == size {
		a.runs[n-1].count += count
	} else {
		a.index.push(a.length, a.visualLength)
		a.runs = append(a.runs, Run{count: count, size: size})
	}

	a.length += count
	a.visualLength += count * size
}

// RemoveAt removes the element at logical position pos.
// Returns false if pos is out of range.
func (a *Axis) RemoveAt(pos int) bool {
	if pos < 0 || pos >= a.length {
		return false
	}

	a.ensureIndex()
	i := a.index.runAt(pos)
	last := i == len(a.runs)-1

	a.runs[i].count--
	a.length--
	a.visualLength -= a.runs[i].size

	if a.runs[i].Empty() {
		a.pruneAt(i)
	}

	// Removing from the last run leaves every earlier run's start untouched.
	if last {
		a.index.truncate(len(a.runs))
	} else {
		a.index.invalidate()
	}
	return true
}

// VisualRemoveAt removes the element covering pixel offset visualPos.
// Returns false if no element covers that offset.
func (a *Axis) VisualRemoveAt(visualPos int) bool {
	e, ok := a.VisualGet(visualPos)
	if !ok {
		return false
	}
	return a.RemoveAt(e.Index)
}

// Len returns the number of elements.
func (a *Axis) Len() int {
	return a.length
}

// VisualLen returns the total pixel length of all elements.
func (a *Axis) VisualLen() int {
	return a.visualLength
}

// RunCount returns the number of runs used to store the elements.
func (a *Axis) RunCount() int {
	return len(a.runs)
}

// Runs returns a copy of the runs.
func (a *Axis) Runs() []Run {
	return slices.Clone(a.runs)
}

// Get returns the element at logical position pos.
// Returns false if pos is out of range.
func (a *Axis) Get(pos int) (Element, bool) {
	if pos < 0 || pos >= a.length {
		return Element{}, false
	}

	a.ensureIndex()
	i := a.index.runAt(pos)
	size := a.runs[i].size

	return Element{
		Index:  pos,
		Offset: a.index.offsets[i] + (pos-a.index.starts[i])*size,
		Size:   size,
	}, true
}

// VisualGet returns the element whose pixel interval contains visualPos.
// Returns false for negative offsets and offsets at or past VisualLen.
func (a *Axis) VisualGet(visualPos int) (Element, bool) {
	if visualPos < 0 || visualPos >= a.visualLength {
		return Element{}, false
	}

	a.ensureIndex()
	i := a.index.runAtOffset(visualPos)
	size := a.runs[i].size
	start := a.index.offsets[i]
	k := (visualPos - start) / size

	return Element{
		Index:  a.index.starts[i] + k,
		Offset: start + k*size,
		Size:   size,
	}, true
}

// OffsetOf returns the pixel offset of the element at logical position pos.
// Returns false if pos is out of range.
func (a *Axis) OffsetOf(pos int) (int, bool) {
	e, ok := a.Get(pos)
	if !ok {
		return 0, false
	}
	return e.Offset, true
}

// String returns a compact description of the runs, e.g. "[2x100 1x50]".
func (a *Axis) String() string {
	parts := make([]string, len(a.runs))
	for i, r := range a.runs {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ensureIndex rebuilds the prefix index if a mutation left it stale.
func (a *Axis) ensureIndex() {
	if !a.index.valid {
		a.index.rebuild(a.runs)
	}
}

// pruneAt removes the empty run at i and merges the two runs it separated
// if they now sit next to each other with equal sizes.
func (a *Axis) pruneAt(i int) {
	a.runs = slices.Delete(a.runs, i, i+1)
	if i > 0 && i < len(a.runs) && a.runs[i-1].size == a.runs[i].size {
		a.runs[i-1].count += a.runs[i].count
		a.runs = slices.Delete(a.runs, i, i+1)
	}
}

// compact folds adjacent runs of equal size and drops empty runs.
// Compacting an already compact axis leaves it unchanged.
func (a *Axis) compact() {
	runs := a.runs[:0]
	for _, r := range a.runs {
		if r.Empty() {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].size == r.size {
			runs[n-1].count += r.count
			continue
		}
		runs = append(runs, r)
	}
	clear(a.runs[len(runs):])
	a.runs = runs
	a.index.invalidate()
}

func checkSize(size int) {
	if size < 0 {
		panic(fmt.Sprintf("axis: negative element size %d", size))
	}
}

// checkGrowth panics unless count more elements of size fit in the totals.
func checkGrowth(length, visualLength, count, size int) {
	if !Fits(length, visualLength, count, size) {
		panic(fmt.Sprintf("axis: %d elements of size %d overflow the axis", count, size))
	}
}

// Fits reports whether count elements of size can be added to an axis
// holding length elements over visualLength pixels without overflowing an
// int. count and size must not be negative.
func Fits(length, visualLength, count, size int) bool {
	if count > math.MaxInt-length {
		return false
	}
	return size == 0 || count <= (math.MaxInt-visualLength)/size
}
