package problem

import "sort"

// ConstraintTable owns the constraint slice for one solve and the mutable
// EstimatedQuality scores the planner and the search engine maintain on
// it. No constraint is ever added or removed once a table is built —
// Freeze hands out a ConstraintTable that lives for exactly one solve.
type ConstraintTable struct {
	constraints []*Constraint
}

func newConstraintTable(constraints []*Constraint) *ConstraintTable {
	return &ConstraintTable{constraints: constraints}
}

// Len returns the number of constraints.
// Complexity: O(1).
func (t *ConstraintTable) Len() int {
	return len(t.constraints)
}

// All returns the constraints in current table order. The returned slice
// aliases the table's backing array; callers must not retain it across a
// SortByQualityDesc.
// Complexity: O(1).
func (t *ConstraintTable) All() []*Constraint {
	return t.constraints
}

// SortByQualityDesc stably sorts constraints by EstimatedQuality,
// descending: satisfied constraints sink to EstimatedQuality==0 and end up
// last; heavy failers with deep skip indices rise to the front, to be
// tried first on the next candidate.
// Complexity: O(C log C).
func (t *ConstraintTable) SortByQualityDesc() {
	sort.SliceStable(t.constraints, func(i, j int) bool {
		return t.constraints[i].EstimatedQuality > t.constraints[j].EstimatedQuality
	})
}
