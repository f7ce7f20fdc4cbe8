package core_test

import (
	"testing"

	"github.com/finitedomain/cellcsp/core"
	"github.com/stretchr/testify/require"
)

func gridStore(t *testing.T) (*core.AssignmentStore, *core.TouchTrackingView) {
	t.Helper()
	store, views, err := core.NewAssignmentStore([]core.VariableSpec{
		{Name: "g", Shape: []int{2, 2}, Lower: []int{0, 0, 0, 0}, Upper: []int{9, 9, 9, 9}},
	})
	require.NoError(t, err)
	v, ok := views.Get("g")
	require.True(t, ok)

	return store, v
}

// TestTouchTrackingView_ReadMarksTouched asserts Read returns the live
// cell value and marks exactly the read cell touched, column-major.
func TestTouchTrackingView_ReadMarksTouched(t *testing.T) {
	store, v := gridStore(t)
	store.SetCell(v.Offset()+1, 42) // linear index 1 == (1,0) in a 2x2, first dim fastest

	val, err := v.Read(1, 0)
	require.NoError(t, err)
	require.Equal(t, 42, val)

	touched := make([]bool, v.Length())
	require.NoError(t, v.SnapshotTouches(touched))
	require.Equal(t, []bool{false, true, false, false}, touched)
}

// TestTouchTrackingView_OutOfRange asserts both a bad dimension value and a
// wrong index count fail with ErrIndexOutOfRange, marking nothing touched.
func TestTouchTrackingView_OutOfRange(t *testing.T) {
	_, v := gridStore(t)

	_, err := v.Read(2, 0)
	require.ErrorIs(t, err, core.ErrIndexOutOfRange)

	_, err = v.Read(0)
	require.ErrorIs(t, err, core.ErrIndexOutOfRange)

	touched := make([]bool, v.Length())
	require.NoError(t, v.SnapshotTouches(touched))
	for _, tv := range touched {
		require.False(t, tv)
	}
}

// TestTouchTrackingView_ClearTouches asserts clearing resets every cell.
func TestTouchTrackingView_ClearTouches(t *testing.T) {
	_, v := gridStore(t)
	_, err := v.Read(0, 0)
	require.NoError(t, err)

	v.ClearTouches()

	touched := make([]bool, v.Length())
	require.NoError(t, v.SnapshotTouches(touched))
	for _, tv := range touched {
		require.False(t, tv)
	}
}

// TestViews_ClearAllAndSnapshotAll asserts the Views-level helpers compose
// per-view touch state into one flat vector at the right offsets.
func TestViews_ClearAllAndSnapshotAll(t *testing.T) {
	_, views, err := core.NewAssignmentStore([]core.VariableSpec{
		{Name: "a", Shape: []int{1}, Lower: []int{0}, Upper: []int{1}},
		{Name: "b", Shape: []int{2}, Lower: []int{0, 0}, Upper: []int{1, 1}},
	})
	require.NoError(t, err)

	a, _ := views.Get("a")
	b, _ := views.Get("b")
	_, err = a.Read(0)
	require.NoError(t, err)
	_, err = b.Read(1)
	require.NoError(t, err)

	dst := make([]bool, 3)
	require.NoError(t, views.SnapshotAll(dst))
	require.Equal(t, []bool{true, false, true}, dst)
	require.Equal(t, 2, views.TouchCount())

	views.ClearAll()
	require.NoError(t, views.SnapshotAll(dst))
	require.Equal(t, []bool{false, false, false}, dst)
}
