// Package core defines the flat assignment storage, the per-variable
// read-recording views over it, and the sentinel errors shared by every
// layer of the solver built on top of it.
//
// This file declares every sentinel error the solver can surface, in one
// place, so a caller never needs to hunt across packages for errors.Is
// targets.
//
// Errors:
//
//	ErrShapeMismatch              - variable lower/upper/shape disagree.
//	ErrIndexOutOfRange            - a view was read outside its shape.
//	ErrUnknownVariable            - a constraint names an undeclared variable.
//	ErrEmptyProblem               - solve invoked with no constraints.
//	ErrConstraintEvaluationFailed - a predicate returned an error.
//	ErrNoCellsRead                - a failing predicate touched zero cells.
package core

import "errors"

// Sentinel errors for the solver. Callers branch on these with errors.Is;
// they are never reconstructed with formatted strings, only wrapped with %w.
var (
	// ErrShapeMismatch indicates a variable's lower/upper bounds disagree in
	// length, or disagree with the product of its declared shape.
	ErrShapeMismatch = errors.New("cellcsp: variable shape mismatch")

	// ErrIndexOutOfRange indicates a TouchTrackingView was read at indices
	// outside its declared shape.
	ErrIndexOutOfRange = errors.New("cellcsp: index out of range")

	// ErrUnknownVariable indicates a constraint references a variable name
	// that was never added to the Problem.
	ErrUnknownVariable = errors.New("cellcsp: unknown variable")

	// ErrEmptyProblem indicates Solve was invoked on a Problem with no
	// constraints.
	ErrEmptyProblem = errors.New("cellcsp: problem has no constraints")

	// ErrConstraintEvaluationFailed indicates a constraint predicate
	// returned a non-nil error; the solve aborts and surfaces it wrapped
	// in this sentinel.
	ErrConstraintEvaluationFailed = errors.New("cellcsp: constraint evaluation failed")

	// ErrNoCellsRead indicates a failing predicate recorded zero touched
	// cells, so the engine has no cell to compute a skip index from. This
	// is a contract bug in the predicate (or the planner), not a normal
	// search outcome.
	ErrNoCellsRead = errors.New("cellcsp: failing predicate touched no cells")
)
