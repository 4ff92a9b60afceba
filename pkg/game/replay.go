package game

import (
	"fmt"

	"github.com/limaJavier/firefighter/pkg/graph"
)

// ScheduleError locates the round at which a replayed schedule broke a rule.
type ScheduleError struct {
	Round int
	Err   error
}

func (err ScheduleError) Error() string {
	return fmt.Sprintf("round %d: %v", err.Round, err.Err)
}

func (err ScheduleError) Unwrap() error {
	return err.Err
}

// Replay plays schedule from the initial state and returns every round state, starting with round 0.
// Rounds past the end of the schedule are not played; callers wanting the state at a given horizon
// pad the schedule with empty placements. Besides the placement rules, every produced state is checked
// against the exclusivity and permanence invariants.
func Replay(g *graph.Graph, root, budget int, schedule Schedule) ([]RoundState, error) {
	state, err := Initial(g, root)
	if err != nil {
		return nil, err
	}

	trajectory := make([]RoundState, 0, len(schedule)+1)
	trajectory = append(trajectory, state)
	for i, placement := range schedule {
		next, err := Transition(g, state, placement, budget)
		if err != nil {
			return nil, ScheduleError{Round: i + 1, Err: err}
		} else if !ExclusivityHolds(next) || !PermanenceHolds(state, next) {
			// Transition guarantees both, reaching this is a bug
			return nil, ScheduleError{Round: i + 1, Err: fmt.Errorf("invariant violated: %v -> %v", state, next)}
		}
		trajectory = append(trajectory, next)
		state = next
	}

	return trajectory, nil
}

// Evaluate replays schedule and returns the number of vertices that are not burning after the last round.
func Evaluate(g *graph.Graph, root, budget int, schedule Schedule) (int, error) {
	trajectory, err := Replay(g, root, budget, schedule)
	if err != nil {
		return 0, err
	}
	return trajectory[len(trajectory)-1].Saved(), nil
}

// Pad returns a copy of schedule extended with empty placements up to horizon rounds.
func Pad(schedule Schedule, horizon int) Schedule {
	padded := make(Schedule, max(horizon, len(schedule)))
	for i, placement := range schedule {
		padded[i] = append(Placement{}, placement...)
	}
	for i := len(schedule); i < len(padded); i++ {
		padded[i] = Placement{}
	}
	return padded
}
