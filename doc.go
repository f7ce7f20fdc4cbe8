// Package cellcsp is a finite-domain constraint satisfaction solver over
// grid-shaped integer variables.
//
// A caller declares variables (named, multi-dimensional, per-cell bounded)
// with problem.Problem, attaches predicate constraints that read subsets of
// those variables, and asks search.Solve for up to N satisfying assignments.
//
// The engine's job is the search: an enumerator over the Cartesian product
// of per-cell ranges that observes which cells each constraint reads, uses
// that to pick an increment order which moves the cells constraints read
// toward the most-significant odometer positions, and uses the deepest cell a failing
// constraint touched to skip whole subtrees of candidates it has already
// ruled out. Constraints are reordered as the search runs so the fastest
// failers are tried first.
//
// Packages:
//
//	core/     — Cell bounds, the read-recording TouchTrackingView, and the
//	            flat AssignmentStore backing every variable's cells.
//	problem/  — Variable and Constraint declarations, Problem construction,
//	            and the ConstraintTable used for dynamic reordering.
//	planner/  — IncrementOrderPlanner: derives the odometer's significance
//	            order from a dry run of every constraint.
//	search/   — SearchEngine: the odometer + conflict-directed skip loop,
//	            and the Solve entry point.
//
//	go get github.com/finitedomain/cellcsp
package cellcsp
