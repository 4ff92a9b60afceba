package model

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/crillab/gophersat/maxsat"
	"github.com/limaJavier/firefighter/pkg/game"
	"github.com/samber/lo"
)

type maxsatFirefighter struct {
	logger *log.Logger
}

// NewMaxsatFirefighter hands the game to gophersat's MaxSAT solver in a single call: every rule is a hard
// clause, the per-round budget a hard cardinality constraint, and every vertex left unburned at the
// horizon a unit soft clause.
func NewMaxsatFirefighter(logger *log.Logger) Firefighter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &maxsatFirefighter{
		logger: logger,
	}
}

type maxsatResult struct {
	model maxsat.Model
	cost  int
}

func (firefighter *maxsatFirefighter) Solve(ctx context.Context, instance Instance) (Solution, error) {
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

	//** Build the weighted instance
	n := instance.Graph.Order()
	state := constraintState{
		graph:   instance.Graph,
		indexer: newIndexer(n, horizon),
		root:    instance.Root,
		rounds:  horizon,
		budget:  instance.Budget,
	}
	base := buildSat(gameConstraints, state)

	constrs := lo.Map(base.Clauses, func(clause []int64, _ int) maxsat.Constr {
		return maxsat.HardClause(lo.Map(clause, func(literal int64, _ int) maxsat.Lit { return maxsatLiteral(literal) })...)
	})
	if instance.Budget < n {
		for t := 1; t <= horizon; t++ {
			unplaced := lo.Map(lo.Range(n), func(v int, _ int) maxsat.Lit { return maxsatLiteral(-state.p(v, t)) })
			constrs = append(constrs, maxsat.HardPBConstr(unplaced, lo.Times(n, func(int) int { return 1 }), n-instance.Budget))
		}
	}
	for v := range n {
		constrs = append(constrs, maxsat.SoftClause(maxsatLiteral(-state.b(v, horizon))))
	}

	firefighter.logger.Debug("maxsat model built",
		"variables", base.Variables,
		"constraints", len(constrs),
		"horizon", horizon,
	)
	start := time.Now()

	// gophersat cannot be interrupted, so a cancelled call leaves the goroutine running to completion
	results := make(chan maxsatResult, 1)
	go func() {
		model, cost := maxsat.New(constrs...).Solve()
		results <- maxsatResult{model: model, cost: cost}
	}()

	var result maxsatResult
	select {
	case <-ctx.Done():
		best.Optimal = false
		return best, nil
	case result = <-results:
	}

	if result.model == nil {
		return Solution{}, fmt.Errorf("%w: hard constraints are unsatisfiable", ErrInconsistentModel)
	}

	schedule, achieved, err := decode(func(index int64) bool { return result.model[variableName(index)] }, state, instance.Budget)
	if err != nil {
		return Solution{}, err
	} else if achieved != n-result.cost {
		return Solution{}, fmt.Errorf("%w: cost %d but %d saved", ErrInconsistentModel, result.cost, achieved)
	}

	firefighter.logger.Debug("maxsat solved",
		"saved", achieved,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	best.Saved, best.Schedule = achieved, schedule
	return best, nil
}

func (firefighter *maxsatFirefighter) Verify(solution Solution, instance Instance) bool {
	return verify(solution, instance)
}

func variableName(index int64) string {
	return fmt.Sprintf("x%d", index)
}

func maxsatLiteral(literal int64) maxsat.Lit {
	if literal < 0 {
		return maxsat.Not(variableName(-literal))
	}
	return maxsat.Var(variableName(literal))
}
