package core

import "fmt"

// TouchTrackingView is a rectangular window over an AssignmentStore's flat
// vector, presented to a constraint predicate as an M-dimensional grid of
// shape Shape(). Every Read marks the cell it visited; a constraint's
// search-time behavior is reconstructed later purely from which cells it
// marked, not from its source.
//
// Indices are mixed-radix, first-index-fastest (column-major): the stride
// of dimension 0 is 1, and the stride of dimension d is the product of the
// sizes of dimensions 0..d-1. This matches the layout AssignmentStore uses
// to pack a Variable's cells into the flat vector.
//
// Writes never go through a view — only the odometer mutates the flat
// vector, via AssignmentStore.SetCell/IncCell. That asymmetry is what makes
// a view's touch record a faithful read-set: nothing else can set touched.
type TouchTrackingView struct {
	store   *AssignmentStore
	offset  int   // first cell of this view inside store.flat
	shape   []int // declared dimensions, first dimension fastest (see strides)
	strides []int // strides[d] = product of shape[0:d]
	touched []bool
}

// viewErrorf wraps err with the view's method and the offending indices,
// mirroring the offset/index context a caller needs to diagnose a bad read.
func viewErrorf(method string, indices []int, err error) error {
	return fmt.Errorf("TouchTrackingView.%s(%v): %w", method, indices, err)
}

func newTouchTrackingView(store *AssignmentStore, offset int, shape []int) *TouchTrackingView {
	// Defensive copy: the caller's shape slice must not alias ours.
	shapeCopy := make([]int, len(shape))
	copy(shapeCopy, shape)

	strides := make([]int, len(shapeCopy))
	running := 1
	for d := 0; d < len(shapeCopy); d++ {
		strides[d] = running
		running *= shapeCopy[d]
	}

	return &TouchTrackingView{
		store:   store,
		offset:  offset,
		shape:   shapeCopy,
		strides: strides,
		touched: make([]bool, running),
	}
}

// Shape returns a copy of the view's declared dimensions.
// Complexity: O(len(shape)).
func (v *TouchTrackingView) Shape() []int {
	out := make([]int, len(v.shape))
	copy(out, v.shape)

	return out
}

// Length returns the total number of cells in the view (product of Shape()).
// Complexity: O(1).
func (v *TouchTrackingView) Length() int {
	return len(v.touched)
}

// Offset returns the view's first cell position inside the owning
// AssignmentStore's flat vector. It exists for the search engine's solution
// capture, which copies cells directly rather than through Read — Offset is
// not meant for constraint predicates.
// Complexity: O(1).
func (v *TouchTrackingView) Offset() int {
	return v.offset
}

// linearIndex maps per-dimension indices to a 0-based offset within the
// view, validating each dimension independently so the caller learns which
// index was bad.
// Complexity: O(len(indices)).
func (v *TouchTrackingView) linearIndex(indices []int) (int, error) {
	if len(indices) != len(v.shape) {
		return 0, viewErrorf("Read", indices, fmt.Errorf("expected %d indices, got %d: %w", len(v.shape), len(indices), ErrIndexOutOfRange))
	}

	linear := 0
	for d, idx := range indices {
		if idx < 0 || idx >= v.shape[d] {
			return 0, viewErrorf("Read", indices, ErrIndexOutOfRange)
		}
		linear += idx * v.strides[d]
	}

	return linear, nil
}

// Read returns the value at indices, marking that cell touched. Index
// mapping is mixed-radix, first index fastest (see the type doc).
// Out-of-range indices fail with ErrIndexOutOfRange and do not mark
// anything touched.
// Complexity: O(len(indices)).
func (v *TouchTrackingView) Read(indices ...int) (int, error) {
	linear, err := v.linearIndex(indices)
	if err != nil {
		return 0, err
	}

	v.touched[linear] = true

	return v.store.Cell(v.offset + linear), nil
}

// ClearTouches resets every entry of the touch grid to false.
// Complexity: O(Length()).
func (v *TouchTrackingView) ClearTouches() {
	for i := range v.touched {
		v.touched[i] = false
	}
}

// SnapshotTouches copies the touch grid, in linear order, into out. out
// must have length Length(); a mismatched length fails with
// ErrIndexOutOfRange rather than silently truncating.
// Complexity: O(Length()).
func (v *TouchTrackingView) SnapshotTouches(out []bool) error {
	if len(out) != len(v.touched) {
		return viewErrorf("SnapshotTouches", nil, fmt.Errorf("destination length %d != view length %d: %w", len(out), len(v.touched), ErrIndexOutOfRange))
	}

	copy(out, v.touched)

	return nil
}
