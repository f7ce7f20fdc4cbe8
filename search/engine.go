// Package search implements SearchEngine: the odometer enumeration over a
// problem.Problem's Cartesian product of cell ranges, driven by the
// increment order planner.Plan derives and the conflict-directed skip
// index each failing constraint reports.
//
// Solve is the only entry point; everything else in this package is the
// walker the engine steps once per candidate.
package search

import (
	"context"
	"fmt"

	"github.com/finitedomain/cellcsp/core"
	"github.com/finitedomain/cellcsp/planner"
	"github.com/finitedomain/cellcsp/problem"
)

// engine holds the per-solve state: a tight loop with no suspension points
// besides the context check, matching the single-threaded, cooperative
// concurrency model the design specifies.
type engine struct {
	ctx   context.Context
	store *core.AssignmentStore
	views *core.Views
	order []int
	table *problem.ConstraintTable
	cfg   *config

	touchBuf []bool // scratch, length N; reused every iteration
	results  Results
}

// Solve runs the search engine on p until either every solution has been
// found, cfg.maxSolutions has been reached, or ctx is done, returning the
// solutions found so far in discovery order and the number of candidates
// considered.
//
// Stage 1 (Freeze): validate p's build-time invariants.
// Stage 2 (Allocate): build the flat assignment and its per-variable
// views.
// Stage 3 (Plan): derive the increment order and the initial
// fast-failer-first constraint order.
// Stage 4 (Run): the odometer + conflict-directed skip loop.
// Complexity: O(nodes visited · constraints tried per node), dominated by
// the search itself; see the design's per-iteration procedure.
func Solve(ctx context.Context, p *problem.Problem, opts ...Option) (Results, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	frozen, err := p.Freeze()
	if err != nil {
		return Results{}, err
	}

	store, views, err := core.NewAssignmentStore(frozen.Variables)
	if err != nil {
		return Results{}, err
	}

	order, err := planner.Plan(store, views, frozen.Table)
	if err != nil {
		return Results{}, err
	}

	e := &engine{
		ctx:      ctx,
		store:    store,
		views:    views,
		order:    order,
		table:    frozen.Table,
		cfg:      newConfig(opts...),
		touchBuf: make([]bool, store.Len()),
	}

	return e.run()
}

// run is the main odometer + conflict-directed skip loop (design §4.6).
func (e *engine) run() (Results, error) {
	n := len(e.order)

	for {
		if e.cfg.solutionCapReached(len(e.results.Solutions)) {
			return e.results, nil
		}
		if err := e.ctx.Err(); err != nil {
			return e.results, err
		}

		exploring := e.results.Nodes%int64(e.cfg.reorderInterval) == 0

		incrementIndex, solutionOK, err := e.evaluateConstraints(exploring)
		if err != nil {
			return e.results, err
		}

		if exploring {
			e.table.SortByQualityDesc()
		}

		if solutionOK {
			sol, err := e.captureSolution()
			if err != nil {
				return e.results, err
			}
			e.results.Solutions = append(e.results.Solutions, sol)
			incrementIndex = 1
		}

		if incrementIndex < 1 {
			return e.results, fmt.Errorf("search.Solve: increment index %d < 1: %w", incrementIndex, core.ErrNoCellsRead)
		}

		finished := e.step(incrementIndex, n)
		e.results.Nodes++

		if finished {
			return e.results, nil
		}
	}
}

// evaluateConstraints runs step 3 of the per-iteration procedure: try each
// constraint in the table's current order, tracking the deepest skip index
// any failure reported. When exploring is false, it stops at the first
// failure (no need to keep scoring constraints it is not about to
// reorder).
func (e *engine) evaluateConstraints(exploring bool) (incrementIndex int, solutionOK bool, err error) {
	solutionOK = true

	for _, c := range e.table.All() {
		vs, err := e.views.Resolve(c.Vars)
		if err != nil {
			return 0, false, err
		}

		e.views.ClearAll()
		ok, err := c.Predicate(vs...)
		if err != nil {
			return 0, false, searchErrorf("Solve", c.Vars, fmt.Errorf("%w: %v", core.ErrConstraintEvaluationFailed, err))
		}

		if ok {
			c.EstimatedQuality = 0
			continue
		}

		solutionOK = false
		if err := e.views.SnapshotAll(e.touchBuf); err != nil {
			return 0, false, err
		}
		skip, err := firstTouchedRank(e.touchBuf, e.order)
		if err != nil {
			return 0, false, searchErrorf("Solve", c.Vars, err)
		}
		c.EstimatedQuality = skip
		if skip > incrementIndex {
			incrementIndex = skip
		}

		if !exploring {
			break
		}
	}

	return incrementIndex, solutionOK, nil
}

// firstTouchedRank returns the smallest k>=1 such that touched[order[k-1]]
// is true — the 1-based position, in odometer order, of the first cell a
// failing constraint read. A predicate that touched nothing is a contract
// bug, reported as ErrNoCellsRead.
func firstTouchedRank(touched []bool, order []int) (int, error) {
	for k := 1; k <= len(order); k++ {
		if touched[order[k-1]] {
			return k, nil
		}
	}

	return 0, core.ErrNoCellsRead
}

// captureSolution copies every variable's current cells into an
// independently-owned Grid, in declaration order.
func (e *engine) captureSolution() (Solution, error) {
	names := e.views.Names()
	sol := make(Solution, len(names))
	for _, name := range names {
		v, ok := e.views.Get(name)
		if !ok {
			return nil, fmt.Errorf("search.Solve: captureSolution: %w", core.ErrUnknownVariable)
		}
		sol[name] = Grid{
			Shape:  v.Shape(),
			Values: e.store.Snapshot(v.Offset(), v.Length()),
		}
	}

	return sol, nil
}

// step performs the odometer step (design §4.6 step 6) and reports whether
// the search is finished: the top position overflowed its upper bound.
func (e *engine) step(incrementIndex, n int) bool {
	for i := 0; i < incrementIndex-1; i++ {
		pos := e.order[i]
		e.store.SetCell(pos, e.store.Lower(pos))
	}

	e.store.IncCell(e.order[incrementIndex-1])

	for i := incrementIndex - 1; i < n-1; i++ {
		j := e.order[i]
		if e.store.Cell(j) > e.store.Upper(j) {
			e.store.SetCell(j, e.store.Lower(j))
			e.store.IncCell(e.order[i+1])
		} else {
			break
		}
	}

	last := e.order[n-1]

	return e.store.Cell(last) > e.store.Upper(last)
}
