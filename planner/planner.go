// Package planner derives the odometer's increment order: the permutation
// of cell positions the search engine increments fastest-first.
//
// The derivation is a dry run of every constraint against the
// all-lower-bound assignment, in two passes (design §4.4):
//
//  1. Fast-failer-first: score each constraint by how few cells it touched
//     (fewer touches ⇒ cheaper and more selective), sort constraints
//     descending by that score.
//  2. Touch-minimizing order: replay the constraints in the sorted order,
//     accumulating which cells have been read by any constraint so far,
//     and stably sort the cell order so untouched positions stay at the
//     front and positions read by cheaper constraints move to the back.
//
// The rationale (unchanged from the design notes): the odometer's
// low-order positions are incremented most often, so those should be the
// positions constraints read last — a failure should bubble up into a
// high position so the engine can skip a large subtree.
package planner

import (
	"fmt"
	"sort"

	"github.com/finitedomain/cellcsp/core"
	"github.com/finitedomain/cellcsp/problem"
)

func wrapPredicateErr(c *problem.Constraint, err error) error {
	return fmt.Errorf("planner: constraint over %v: %w: %v", c.Vars, core.ErrConstraintEvaluationFailed, err)
}

// Plan evaluates every constraint in table against the assignment already
// loaded into store/views (the caller must have just built them, so every
// cell sits at its lower bound) and returns the increment order. As a side
// effect, table is sorted by EstimatedQuality descending — the same
// fast-failer-first order the search engine starts iterating from.
// Complexity: O(C · (view resolution + predicate cost)) for pass one, the
// same again for pass two, plus O(C · N log N) for the repeated stable
// sorts of the order vector.
func Plan(store *core.AssignmentStore, views *core.Views, table *problem.ConstraintTable) ([]int, error) {
	n := store.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n == 0 || table.Len() == 0 {
		return order, nil
	}

	if err := scoreFastFailers(views, table, n); err != nil {
		return nil, err
	}
	table.SortByQualityDesc()

	if err := minimizeTouchOrder(views, table, order); err != nil {
		return nil, err
	}

	return order, nil
}

// scoreFastFailers runs pass one: EstimatedQuality = N - total touches.
func scoreFastFailers(views *core.Views, table *problem.ConstraintTable, n int) error {
	for _, c := range table.All() {
		vs, err := views.Resolve(c.Vars)
		if err != nil {
			return err
		}

		for _, v := range vs {
			v.ClearTouches()
		}
		if _, err := c.Predicate(vs...); err != nil {
			return wrapPredicateErr(c, err)
		}

		touched := 0
		for _, v := range vs {
			touched += touchCount(v)
		}
		c.EstimatedQuality = n - touched
	}

	return nil
}

// minimizeTouchOrder runs pass two: replay constraints in their (now
// sorted) order, accumulating touched cells into C and resorting order
// after every constraint, exactly as the design specifies — not once at
// the end, since intermediate resorts are not equivalent to a final one.
func minimizeTouchOrder(views *core.Views, table *problem.ConstraintTable, order []int) error {
	cumulative := make([]bool, len(order))

	for _, c := range table.All() {
		vs, err := views.Resolve(c.Vars)
		if err != nil {
			return err
		}

		for _, v := range vs {
			v.ClearTouches()
		}
		if _, err := c.Predicate(vs...); err != nil {
			return wrapPredicateErr(c, err)
		}

		orTouchesInto(cumulative, vs)

		sort.SliceStable(order, func(i, j int) bool {
			return !cumulative[order[i]] && cumulative[order[j]]
		})
	}

	return nil
}

func touchCount(v *core.TouchTrackingView) int {
	buf := make([]bool, v.Length())
	_ = v.SnapshotTouches(buf)

	count := 0
	for _, t := range buf {
		if t {
			count++
		}
	}

	return count
}

// orTouchesInto ORs every view's touched cells, at their global offset,
// into dst.
func orTouchesInto(dst []bool, vs []*core.TouchTrackingView) {
	for _, v := range vs {
		buf := make([]bool, v.Length())
		_ = v.SnapshotTouches(buf)
		for i, touched := range buf {
			if touched {
				dst[v.Offset()+i] = true
			}
		}
	}
}
