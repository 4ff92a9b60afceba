// Package model solves firefighter instances with interchangeable strategies: the branch-and-bound
// search engine and a declarative time-expanded model handed to a SAT or a MaxSAT solver.
package model

import (
	"context"
	"errors"
	"strconv"

	"github.com/limaJavier/firefighter/pkg/game"
	"github.com/limaJavier/firefighter/pkg/graph"
)

// ErrInconsistentModel is returned when a solver model does not replay to the state it encodes.
var ErrInconsistentModel = errors.New("solver model is inconsistent with the game rules")

type Instance struct {
	Graph  *graph.Graph
	Root   int
	Budget int
	Labels []string // Labels[v] is the name vertex v had in the input; optional
}

type Solution struct {
	Saved    int
	Schedule game.Schedule
	Optimal  bool // False when the time budget ran out before optimality was proven
	Horizon  int
}

type Firefighter interface {
	Solve(
		ctx context.Context,
		instance Instance,
	) (Solution, error)

	Verify(
		solution Solution,
		instance Instance,
	) bool
}

// Label returns the input name of v, or its number when the instance carries no labels.
func (instance Instance) Label(v int) string {
	if v >= 0 && v < len(instance.Labels) {
		return instance.Labels[v]
	}
	return strconv.Itoa(v)
}
