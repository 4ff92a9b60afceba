package sat

import (
	"context"
	"fmt"
	"strings"
)

// SATSolution lists one literal per variable: v if the variable is true, -v otherwise.
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

type SATSolver interface {
	Solve(ctx context.Context, sat SAT) (SATSolution, error) // Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// Values turns a solution into a lookup table indexed by variable (index 0 is unused).
// Variables missing from the solution are false.
func (solution SATSolution) Values(variables uint64) []bool {
	values := make([]bool, variables+1)
	for _, literal := range solution {
		if literal > 0 && uint64(literal) <= variables {
			values[literal] = true
		}
	}
	return values
}
