package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/limaJavier/firefighter/pkg/game"
	"github.com/limaJavier/firefighter/pkg/sat"
	"github.com/samber/lo"
)

type satFirefighter struct {
	solver sat.SATSolver
	logger *log.Logger
}

// NewSatFirefighter encodes the game over the horizon as CNF and binary searches the objective: each probe
// asks the solver for a schedule that keeps at least k vertices unburned.
func NewSatFirefighter(solver sat.SATSolver, logger *log.Logger) Firefighter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &satFirefighter{
		solver: solver,
		logger: logger,
	}
}

func (firefighter *satFirefighter) Solve(ctx context.Context, instance Instance) (Solution, error) {
	if instance.Budget < 0 {
		return Solution{}, fmt.Errorf("model: defense budget must not be negative, got %d", instance.Budget)
	}

	horizon, saved, err := baseline(instance)
	if err != nil {
		return Solution{}, err
	}

	best := Solution{
		Saved:    saved,
		Schedule: game.Pad(nil, horizon),
		Optimal:  true,
		Horizon:  horizon,
	}
	if horizon == 0 {
		return best, nil
	}

	//** Build the base instance
	n := instance.Graph.Order()
	state := constraintState{
		graph:   instance.Graph,
		indexer: newIndexer(n, horizon),
		root:    instance.Root,
		rounds:  horizon,
		budget:  instance.Budget,
	}
	base := buildSat(gameConstraints, state)
	next := int64(base.Variables) + 1
	base.Clauses = append(base.Clauses, budgetConstraints(state, &next)...)
	base.Variables = uint64(next - 1)

	firefighter.logger.Debug("sat model built",
		"variables", base.Variables,
		"clauses", len(base.Clauses),
		"horizon", horizon,
	)

	//** Binary search the objective: lower is achievable, anything above upper is not
	lower, upper := saved, n-1
	for lower < upper {
		target := (lower + upper + 1) / 2
		start := time.Now()

		schedule, achieved, err := firefighter.probe(ctx, base, state, target)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			best.Optimal = false
			return best, nil
		} else if err != nil {
			return Solution{}, err
		}

		firefighter.logger.Debug("sat probe",
			"target", target,
			"satisfiable", schedule != nil,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)

		if schedule == nil {
			upper = target - 1
			continue
		}
		if achieved < target {
			return Solution{}, fmt.Errorf("%w: probe for %d saved only %d", ErrInconsistentModel, target, achieved)
		}
		best.Saved, best.Schedule = achieved, schedule
		lower = achieved
	}

	return best, nil
}

// probe returns a schedule saving at least target vertices, or nil when none exists.
func (firefighter *satFirefighter) probe(ctx context.Context, base sat.SAT, state constraintState, target int) (game.Schedule, int, error) {
	n := state.graph.Order()
	next := int64(base.Variables) + 1

	final := lo.Map(lo.Range(n), func(v int, _ int) int64 { return state.b(v, state.rounds) })
	objective := atMost(final, n-target, &next)

	instance := sat.SAT{
		Variables: uint64(next - 1),
		Clauses:   append(append(make([][]int64, 0, len(base.Clauses)+len(objective)), base.Clauses...), objective...),
	}

	solution, err := firefighter.solver.Solve(ctx, instance)
	if err != nil {
		return nil, 0, err
	} else if solution == nil {
		return nil, 0, nil
	}

	values := solution.Values(instance.Variables)
	return decode(func(index int64) bool { return values[index] }, state, state.budget)
}

func (firefighter *satFirefighter) Verify(solution Solution, instance Instance) bool {
	return verify(solution, instance)
}

// At most budget placements per round. Counter variables are allocated from *next.
func budgetConstraints(state constraintState, next *int64) [][]int64 {
	n := state.graph.Order()
	clauses := make([][]int64, 0)
	for t := 1; t <= state.rounds; t++ {
		placed := lo.Map(lo.Range(n), func(v int, _ int) int64 { return state.p(v, t) })
		clauses = append(clauses, atMost(placed, state.budget, next)...)
	}
	return clauses
}
