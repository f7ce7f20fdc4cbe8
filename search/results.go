package search

// Grid is an independently-owned copy of one variable's cells at the
// moment a solution was captured, shaped exactly as the variable was
// declared.
type Grid struct {
	Shape  []int
	Values []int
}

// Solution maps each variable name to its Grid in a discovered assignment.
type Solution map[string]Grid

// Results is what Solve returns: every solution found, in discovery
// order, and the total number of candidates considered (Nodes), including
// the final odometer-overflow candidate.
type Results struct {
	Solutions []Solution
	Nodes     int64
}
