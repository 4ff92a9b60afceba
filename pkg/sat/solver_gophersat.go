package sat

import (
	"context"

	gophersat "github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

// gophersatSolver solves the instance in-process, so it needs no binary on the host.
type gophersatSolver struct{}

func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (solver *gophersatSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	clauses := lo.Map(sat.Clauses, func(clause []int64, _ int) []int {
		return lo.Map(clause, func(literal int64, _ int) int { return int(literal) })
	})

	// gophersat cannot be interrupted, so a cancelled call leaves the goroutine running to completion
	solutions := make(chan SATSolution, 1)
	go func() {
		s := gophersat.New(gophersat.ParseSlice(clauses))
		if s.Solve() != gophersat.Sat {
			solutions <- nil
			return
		}

		model := s.Model()
		solution := make(SATSolution, sat.Variables)
		for i := range solution {
			solution[i] = int64(i + 1)
			if i >= len(model) || !model[i] {
				solution[i] = -solution[i]
			}
		}
		solutions <- solution
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case solution := <-solutions:
		return solution, nil
	}
}
