package model

import (
	"github.com/limaJavier/firefighter/pkg/graph"
	"github.com/samber/lo"
)

// Every constraint below is an equivalence or an implication over the time-expanded variables, written
// as CNF clauses. Together they pin down b, d and s completely once the placements p are chosen, so any
// model replays exactly through the round transition.

type constraintState struct {
	graph   *graph.Graph
	indexer indexer
	root    int
	rounds  int
	budget  int
}

func (state constraintState) b(v, t int) int64 { return state.indexer.Index(burnedVariable, v, t) }
func (state constraintState) d(v, t int) int64 { return state.indexer.Index(defendedVariable, v, t) }
func (state constraintState) p(v, t int) int64 { return state.indexer.Index(placedVariable, v, t) }
func (state constraintState) s(v, t int) int64 { return state.indexer.Index(shieldedVariable, v, t) }

// Round 0: only the root burns and nothing is defended
func initialConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0, 2*state.graph.Order())
	for v := range state.graph.Order() {
		if v == state.root {
			clauses = append(clauses, []int64{state.b(v, 0)})
		} else {
			clauses = append(clauses, []int64{-state.b(v, 0)})
		}
		clauses = append(clauses, []int64{-state.d(v, 0)})
	}
	return clauses
}

// b(v, t) + d(v, t) <= 1
func exclusivityConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for t := 0; t <= state.rounds; t++ {
		for v := range state.graph.Order() {
			clauses = append(clauses, []int64{-state.b(v, t), -state.d(v, t)})
		}
	}
	return clauses
}

// b(v, t-1) => b(v, t), d(v, t-1) => d(v, t)
func permanenceConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for t := 1; t <= state.rounds; t++ {
		for v := range state.graph.Order() {
			clauses = append(clauses,
				[]int64{-state.b(v, t-1), state.b(v, t)},
				[]int64{-state.d(v, t-1), state.d(v, t)},
			)
		}
	}
	return clauses
}

// p(v, t) => v unaffected at t-1, s(v, t) <=> d(v, t-1) | p(v, t)
func placementConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for t := 1; t <= state.rounds; t++ {
		for v := range state.graph.Order() {
			clauses = append(clauses,
				[]int64{-state.p(v, t), -state.b(v, t-1)},
				[]int64{-state.p(v, t), -state.d(v, t-1)},
				[]int64{-state.d(v, t-1), state.s(v, t)},
				[]int64{-state.p(v, t), state.s(v, t)},
				[]int64{-state.s(v, t), state.d(v, t-1), state.p(v, t)},
			)
		}
	}
	return clauses
}

// b(v, t) <=> b(v, t-1) | (!s(v, t) & OR_{u in N(v)} b(u, t-1))
func fireConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for t := 1; t <= state.rounds; t++ {
		for v := range state.graph.Order() {
			neighbors := state.graph.Neighbors(v)

			// Fire reaches v from any burning neighbor unless v is shielded
			for _, u := range neighbors {
				clauses = append(clauses, []int64{-state.b(u, t-1), state.s(v, t), state.b(v, t)})
			}

			// v only catches fire unshielded and next to fire
			clauses = append(clauses,
				[]int64{-state.b(v, t), state.b(v, t-1), -state.s(v, t)},
				append([]int64{-state.b(v, t), state.b(v, t-1)}, lo.Map(neighbors, func(u int, _ int) int64 { return state.b(u, t-1) })...),
			)
		}
	}
	return clauses
}

// d(v, t) <=> s(v, t) | (!b(v, t) & OR_{u in N(v)} s(u, t))
func defenseConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for t := 1; t <= state.rounds; t++ {
		for v := range state.graph.Order() {
			neighbors := state.graph.Neighbors(v)

			clauses = append(clauses, []int64{-state.s(v, t), state.d(v, t)})
			// Defense reaches v from any shielded neighbor unless v caught fire this round
			for _, u := range neighbors {
				clauses = append(clauses, []int64{-state.s(u, t), state.b(v, t), state.d(v, t)})
			}

			clauses = append(clauses,
				[]int64{-state.d(v, t), state.s(v, t), -state.b(v, t)},
				append([]int64{-state.d(v, t), state.s(v, t)}, lo.Map(neighbors, func(u int, _ int) int64 { return state.s(u, t) })...),
			)
		}
	}
	return clauses
}

var gameConstraints = []func(state constraintState) [][]int64{
	initialConstraints,
	exclusivityConstraints,
	permanenceConstraints,
	placementConstraints,
	fireConstraints,
	defenseConstraints,
}
