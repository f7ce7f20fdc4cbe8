package core

import "fmt"

// VariableSpec describes one variable's contribution to the global
// assignment: its name, its grid shape, and its per-cell bounds flattened
// in the column-major order Variable cells are laid out in (§3 of the
// design: "cells within a variable are laid out column-major... so that a
// linear index matches the standard mixed-radix mapping the engine uses").
type VariableSpec struct {
	Name  string
	Shape []int
	Lower []int
	Upper []int
}

func shapeProduct(shape []int) int {
	product := 1
	for _, s := range shape {
		product *= s
	}

	return product
}

// validate checks the internal consistency of one spec: lower/upper must
// agree in length with each other and with the product of Shape.
func (vs VariableSpec) validate() error {
	if len(vs.Lower) != len(vs.Upper) {
		return fmt.Errorf("variable %q: len(lower)=%d != len(upper)=%d: %w", vs.Name, len(vs.Lower), len(vs.Upper), ErrShapeMismatch)
	}
	if want := shapeProduct(vs.Shape); want != len(vs.Lower) {
		return fmt.Errorf("variable %q: shape %v holds %d cells, got %d bounds: %w", vs.Name, vs.Shape, want, len(vs.Lower), ErrShapeMismatch)
	}

	return nil
}

// ValidateVariableSpec exposes the same shape/bounds check NewAssignmentStore
// runs on every spec, for callers (problem.Problem.AddVariable) that want to
// fail fast at declaration time instead of waiting for a solve.
// Complexity: O(len(Shape)).
func ValidateVariableSpec(vs VariableSpec) error {
	return vs.validate()
}

// AssignmentStore owns the flat vector of cell values plus the parallel
// lower/upper bound vectors, for every cell of every variable in
// declaration order. It is allocated once per solve and mutated in place
// by the odometer; views never write through it.
type AssignmentStore struct {
	flat  []int
	lower []int
	upper []int
}

// Views is the ordered collection of per-variable TouchTrackingViews handed
// out by NewAssignmentStore, preserving declaration order so that discovery
// order stays reproducible (design note: "declaration order of variables
// must be preserved for reproducibility of discovery order").
type Views struct {
	names  []string
	byName map[string]*TouchTrackingView
}

// NewAssignmentStore builds the flat assignment vector for specs, in the
// order given, and hands back the store plus a Views set with one view per
// variable at its consecutive offset. The flat vector is initialized to
// the lower bound of every cell.
//
// Stage 1 (Validate): each spec's lower/upper/shape must be internally
// consistent.
// Stage 2 (Prepare): concatenate every spec's bounds into the global
// lower/upper vectors and initialize flat to lower.
// Stage 3 (Finalize): allocate one TouchTrackingView per variable at its
// offset.
// Complexity: O(N) where N is the total cell count.
func NewAssignmentStore(specs []VariableSpec) (*AssignmentStore, *Views, error) {
	n := 0
	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, nil, err
		}
		n += len(spec.Lower)
	}

	store := &AssignmentStore{
		flat:  make([]int, 0, n),
		lower: make([]int, 0, n),
		upper: make([]int, 0, n),
	}
	views := &Views{
		names:  make([]string, 0, len(specs)),
		byName: make(map[string]*TouchTrackingView, len(specs)),
	}

	offset := 0
	for _, spec := range specs {
		store.lower = append(store.lower, spec.Lower...)
		store.upper = append(store.upper, spec.Upper...)
		store.flat = append(store.flat, spec.Lower...) // flat starts at lower bound

		views.names = append(views.names, spec.Name)
		views.byName[spec.Name] = newTouchTrackingView(store, offset, spec.Shape)
		offset += len(spec.Lower)
	}

	return store, views, nil
}

// Len returns N, the total number of cells across every variable.
// Complexity: O(1).
func (s *AssignmentStore) Len() int {
	return len(s.flat)
}

// Cell returns the current value of cell i.
// Complexity: O(1).
func (s *AssignmentStore) Cell(i int) int {
	return s.flat[i]
}

// SetCell assigns v to cell i.
// Complexity: O(1).
func (s *AssignmentStore) SetCell(i, v int) {
	s.flat[i] = v
}

// IncCell increments cell i by one.
// Complexity: O(1).
func (s *AssignmentStore) IncCell(i int) {
	s.flat[i]++
}

// Lower returns the lower bound of cell i.
// Complexity: O(1).
func (s *AssignmentStore) Lower(i int) int {
	return s.lower[i]
}

// Upper returns the upper bound of cell i.
// Complexity: O(1).
func (s *AssignmentStore) Upper(i int) int {
	return s.upper[i]
}

// Snapshot copies length cells starting at offset into a freshly allocated
// slice, independent of the store. Used to capture a variable's grid into
// a Solution at the moment it is found, so callers may retain it across
// further iteration.
// Complexity: O(length).
func (s *AssignmentStore) Snapshot(offset, length int) []int {
	out := make([]int, length)
	copy(out, s.flat[offset:offset+length])

	return out
}

// Names returns the variable names in declaration order.
// Complexity: O(len(Names())).
func (vs *Views) Names() []string {
	out := make([]string, len(vs.names))
	copy(out, vs.names)

	return out
}

// Get returns the view for name, if any.
// Complexity: O(1).
func (vs *Views) Get(name string) (*TouchTrackingView, bool) {
	v, ok := vs.byName[name]

	return v, ok
}

// Resolve returns the views for names, in order, failing with
// ErrUnknownVariable at the first name that was never declared.
// Complexity: O(len(names)).
func (vs *Views) Resolve(names []string) ([]*TouchTrackingView, error) {
	out := make([]*TouchTrackingView, len(names))
	for i, name := range names {
		v, ok := vs.byName[name]
		if !ok {
			return nil, fmt.Errorf("Resolve(%q): %w", name, ErrUnknownVariable)
		}
		out[i] = v
	}

	return out, nil
}

// ClearAll clears the touch record of every view.
// Complexity: O(N).
func (vs *Views) ClearAll() {
	for _, name := range vs.names {
		vs.byName[name].ClearTouches()
	}
}

// SnapshotAll copies the touch record of every view, in declaration order,
// into dst, which must have length equal to the sum of every view's
// Length(). This is the flat boolean vector T the planner and the search
// engine read the skip index from.
// Complexity: O(N).
func (vs *Views) SnapshotAll(dst []bool) error {
	pos := 0
	for _, name := range vs.names {
		v := vs.byName[name]
		n := v.Length()
		if pos+n > len(dst) {
			return fmt.Errorf("SnapshotAll: destination too short for %d cells at offset %d: %w", n, pos, ErrIndexOutOfRange)
		}
		if err := v.SnapshotTouches(dst[pos : pos+n]); err != nil {
			return err
		}
		pos += n
	}

	return nil
}

// TouchCount returns the total number of touched cells across every view.
// Complexity: O(N).
func (vs *Views) TouchCount() int {
	count := 0
	for _, name := range vs.names {
		for _, touched := range vs.byName[name].touched {
			if touched {
				count++
			}
		}
	}

	return count
}
