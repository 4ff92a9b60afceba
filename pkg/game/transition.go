package game

import (
	"fmt"

	"github.com/limaJavier/firefighter/pkg/graph"
)

// Placement is the set of vertices newly defended at the start of a round.
type Placement []int

// Schedule holds one Placement per round; Schedule[0] is played in round 1.
type Schedule []Placement

type BudgetExceededError struct {
	Size   int
	Budget int
}

func (err BudgetExceededError) Error() string {
	return fmt.Sprintf("placement of %d vertices exceeds the defense budget of %d", err.Size, err.Budget)
}

type IllegalPlacementError struct {
	Vertex int
	Reason string
}

func (err IllegalPlacementError) Error() string {
	return fmt.Sprintf("cannot defend vertex %d: %s", err.Vertex, err.Reason)
}

// Transition plays one round on state and returns the resulting state. The three sub-steps run in order:
//  1. every placed vertex becomes defended;
//  2. fire moves one hop from every burning vertex to every neighbor that is not defended;
//  3. defense moves one hop from every defended vertex to every neighbor that is not burning.
//
// Each spread reads the state left by the previous sub-step, so a vertex that catches fire in step 2
// cannot be defended in step 3. The input state is left untouched.
func Transition(g *graph.Graph, state RoundState, placement Placement, budget int) (RoundState, error) {
	if len(placement) > budget {
		return RoundState{}, BudgetExceededError{Size: len(placement), Budget: budget}
	}

	next := FromFlags(state.burning, state.defended)

	//** Placement
	for _, v := range placement {
		if v < 0 || v >= state.Len() {
			return RoundState{}, IllegalPlacementError{Vertex: v, Reason: "unknown vertex"}
		} else if next.defended[v] {
			// Either defended before this round or listed twice in the placement
			return RoundState{}, IllegalPlacementError{Vertex: v, Reason: "already defended"}
		} else if next.burning[v] {
			return RoundState{}, IllegalPlacementError{Vertex: v, Reason: "already burning"}
		}
		next.defended[v] = true
	}

	//** Fire spread
	ignited := make([]int, 0)
	for v := range next.Len() {
		if !next.burning[v] {
			continue
		}
		for _, u := range g.Neighbors(v) {
			if !next.burning[u] && !next.defended[u] {
				ignited = append(ignited, u)
			}
		}
	}
	for _, v := range ignited {
		next.burning[v] = true
	}

	//** Defense spread
	protected := make([]int, 0)
	for v := range next.Len() {
		if !next.defended[v] {
			continue
		}
		for _, u := range g.Neighbors(v) {
			if !next.burning[u] && !next.defended[u] {
				protected = append(protected, u)
			}
		}
	}
	for _, v := range protected {
		next.defended[v] = true
	}

	return next, nil
}
