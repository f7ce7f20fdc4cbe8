// Package problem declares the collaborator interface the search engine is
// driven through: Variable and Constraint declarations, the Problem that
// collects them, and the ConstraintTable used for dynamic reordering.
//
// A Problem is populated once (AddVariable, AddConstraint, in any order),
// then frozen at Freeze — called internally by search.Solve — which
// validates every invariant the search engine relies on and returns an
// immutable snapshot.
package problem

import (
	"fmt"
	"sync"

	"github.com/finitedomain/cellcsp/core"
)

// Predicate reads a subset of a Problem's variables, through the views
// passed to it in the order the Constraint declared them, and reports
// whether the candidate assignment satisfies it. A returned error aborts
// the solve with ErrConstraintEvaluationFailed.
type Predicate func(views ...*core.TouchTrackingView) (bool, error)

// Variable is a declared name bound to a shape and per-cell bounds,
// flattened column-major. It is an alias of core.VariableSpec: the two
// packages agree on exactly one representation of "a variable", so there
// is nothing to keep in sync between them.
type Variable = core.VariableSpec

// Constraint is an ordered list of variable names a Predicate reads, plus
// the mutable EstimatedQuality score the planner and the search engine
// update as they go. No Constraint is ever added or removed mid-solve.
type Constraint struct {
	Vars             []string
	Predicate        Predicate
	EstimatedQuality int
}

// Problem collects variables and constraints before a solve. It is safe
// for concurrent use while being built — AddVariable and AddConstraint
// take a write lock — matching the way a host application might populate
// it from a setup goroutine pool before handing it to search.Solve.
type Problem struct {
	mu          sync.RWMutex
	variables   []Variable
	variableIdx map[string]int
	constraints []*Constraint
}

// NewProblem returns an empty Problem.
// Complexity: O(1).
func NewProblem() *Problem {
	return &Problem{
		variableIdx: make(map[string]int),
	}
}

func problemErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("Problem.%s: %w", method, fmt.Errorf(format, args...))
}

// AddVariable declares a variable named name with the given flattened
// lower/upper bounds. shape defaults to a single dimension of length
// len(lower) when omitted; otherwise the product of shape must equal
// len(lower). Returns name for chaining.
//
// Stage 1 (Validate): name non-empty, len(lower)==len(upper), shape product
// matches.
// Stage 2 (Execute): append under the write lock, indexing the new
// variable by name for AddConstraint's lookups.
// Complexity: O(len(lower)).
func (p *Problem) AddVariable(name string, lower, upper []int, shape ...int) (string, error) {
	if name == "" {
		return "", problemErrorf("AddVariable", "variable name must not be empty: %w", core.ErrShapeMismatch)
	}
	if len(shape) == 0 {
		shape = []int{len(lower)}
	}

	spec := Variable{Name: name, Shape: append([]int(nil), shape...), Lower: lower, Upper: upper}
	if err := core.ValidateVariableSpec(spec); err != nil {
		return "", problemErrorf("AddVariable", "%q: %w", name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.variableIdx[name]; exists {
		return "", problemErrorf("AddVariable", "variable %q already declared: %w", name, core.ErrShapeMismatch)
	}
	p.variableIdx[name] = len(p.variables)
	p.variables = append(p.variables, spec)

	return name, nil
}

// AddConstraint attaches predicate over vars, invoked with their views in
// the order listed. The variables need not exist yet at call time; they
// are resolved when the Problem is frozen for a solve.
// Complexity: O(len(vars)).
func (p *Problem) AddConstraint(vars []string, predicate Predicate) error {
	if predicate == nil {
		return problemErrorf("AddConstraint", "predicate must not be nil")
	}

	names := append([]string(nil), vars...)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.constraints = append(p.constraints, &Constraint{Vars: names, Predicate: predicate})

	return nil
}

// AddConstraint1 is the single-variable convenience form of AddConstraint.
func (p *Problem) AddConstraint1(v string, predicate Predicate) error {
	return p.AddConstraint([]string{v}, predicate)
}

// Frozen is the immutable snapshot search.Solve drives: variables in
// declaration order and a ConstraintTable ready for the planner.
type Frozen struct {
	Variables []Variable
	Table     *ConstraintTable
}

// Freeze validates the Problem's build-time invariants and returns an
// immutable snapshot: at least one constraint (ErrEmptyProblem), and every
// constraint's variables declared (ErrUnknownVariable).
// Complexity: O(V + Σ len(constraint.Vars)).
func (p *Problem) Freeze() (*Frozen, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.constraints) == 0 {
		return nil, core.ErrEmptyProblem
	}

	for _, c := range p.constraints {
		for _, name := range c.Vars {
			if _, ok := p.variableIdx[name]; !ok {
				return nil, fmt.Errorf("Problem.Freeze: constraint references %q: %w", name, core.ErrUnknownVariable)
			}
		}
	}

	variables := make([]Variable, len(p.variables))
	copy(variables, p.variables)

	constraints := make([]*Constraint, len(p.constraints))
	copy(constraints, p.constraints)

	return &Frozen{Variables: variables, Table: newConstraintTable(constraints)}, nil
}
