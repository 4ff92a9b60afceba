package model

import (
	"fmt"

	"github.com/limaJavier/firefighter/pkg/game"
	"github.com/limaJavier/firefighter/pkg/sat"
	"github.com/samber/lo"
)

// verify replays the schedule and checks that it is legal, fits the horizon and saves what it claims.
func verify(solution Solution, instance Instance) bool {
	horizon, err := instance.Graph.Eccentricity(instance.Root)
	if err != nil || len(solution.Schedule) > horizon {
		return false
	}

	saved, err := game.Evaluate(instance.Graph, instance.Root, instance.Budget, game.Pad(solution.Schedule, horizon))
	return err == nil && saved == solution.Saved
}

// baseline returns the horizon and the objective of the empty schedule, the starting point of every strategy.
func baseline(instance Instance) (horizon int, saved int, err error) {
	distances, err := instance.Graph.Distances(instance.Root)
	if err != nil {
		return 0, 0, err
	}
	return lo.Max(distances), lo.Count(distances, -1), nil
}

func buildSat(constraints []func(state constraintState) [][]int64, state constraintState) sat.SAT {
	satInstance := sat.SAT{
		Variables: state.indexer.Variables(),
		Clauses:   [][]int64{},
	}

	constraintsChannel := make(chan [][]int64) // Channel to collect constraints

	// Execute constraints functions on different goroutines to improve performance
	for _, constraint := range constraints {
		go func(constraint func(state constraintState) [][]int64) {
			constraintsChannel <- constraint(state)
		}(constraint)
	}

	// Collect generated constraints
	for range constraints {
		satInstance.Clauses = append(satInstance.Clauses, <-constraintsChannel...)
	}

	return satInstance
}

// decode reads the schedule out of a model and replays it. The replayed trajectory must match the burning
// and defended variables of the model round by round, otherwise the encoding and the game disagree.
func decode(values func(index int64) bool, state constraintState, budget int) (game.Schedule, int, error) {
	n := state.graph.Order()

	schedule := make(game.Schedule, state.rounds)
	for round := 1; round <= state.rounds; round++ {
		schedule[round-1] = lo.Filter(lo.Range(n), func(v int, _ int) bool {
			return values(state.indexer.Index(placedVariable, v, round))
		})
	}

	trajectory, err := game.Replay(state.graph, state.root, budget, schedule)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInconsistentModel, err)
	}

	for round, replayed := range trajectory {
		encoded := game.FromFlags(
			lo.Map(lo.Range(n), func(v int, _ int) bool { return values(state.indexer.Index(burnedVariable, v, round)) }),
			lo.Map(lo.Range(n), func(v int, _ int) bool { return values(state.indexer.Index(defendedVariable, v, round)) }),
		)
		if !game.ExclusivityHolds(encoded) || !encoded.Equal(replayed) {
			return nil, 0, fmt.Errorf("%w: round %d encodes %v but replays to %v", ErrInconsistentModel, round, encoded, replayed)
		} else if round > 0 && !game.PermanenceHolds(trajectory[round-1], encoded) {
			return nil, 0, fmt.Errorf("%w: round %d breaks permanence", ErrInconsistentModel, round)
		}
	}

	return schedule, trajectory[len(trajectory)-1].Saved(), nil
}
