// Package game models the firefighter game on a graph: the per-vertex status lattice,
// the invariants that relate consecutive round states and the round transition itself.
package game

import (
	"fmt"
	"strings"

	"github.com/limaJavier/firefighter/pkg/graph"
	"github.com/samber/lo"
)

type Status uint8

const (
	Unaffected Status = iota
	Burning
	Defended
)

func (status Status) String() string {
	switch status {
	case Unaffected:
		return "unaffected"
	case Burning:
		return "burning"
	case Defended:
		return "defended"
	}
	return fmt.Sprintf("status(%d)", uint8(status))
}

// RoundState is the status of every vertex at a round boundary. The burning and defended flags are
// kept apart, like the time-expanded variables they mirror, so that ExclusivityHolds is a real check
// for states decoded from a declarative model. A RoundState is never modified once built.
type RoundState struct {
	burning  []bool
	defended []bool
}

// Initial returns the round-0 state: root burning, everything else unaffected.
func Initial(g *graph.Graph, root int) (RoundState, error) {
	if !g.HasVertex(root) {
		return RoundState{}, graph.InvalidGraphError{Reason: fmt.Sprintf("root %d is not in [0, %d)", root, g.Order())}
	}

	state := RoundState{
		burning:  make([]bool, g.Order()),
		defended: make([]bool, g.Order()),
	}
	state.burning[root] = true
	return state, nil
}

// FromFlags builds a state from raw burning/defended flags without checking any invariant.
func FromFlags(burning, defended []bool) RoundState {
	return RoundState{
		burning:  append([]bool(nil), burning...),
		defended: append([]bool(nil), defended...),
	}
}

func (state RoundState) Len() int {
	return len(state.burning)
}

func (state RoundState) Burning(v int) bool {
	return state.burning[v]
}

func (state RoundState) Defended(v int) bool {
	return state.defended[v]
}

func (state RoundState) Status(v int) Status {
	if state.burning[v] {
		return Burning
	} else if state.defended[v] {
		return Defended
	}
	return Unaffected
}

func (state RoundState) Count(status Status) int {
	return lo.CountBy(lo.Range(state.Len()), func(v int) bool { return state.Status(v) == status })
}

// Saved is the objective: the number of vertices that are not burning.
func (state RoundState) Saved() int {
	return state.Len() - lo.Count(state.burning, true)
}

// Vertices returns, in ascending order, the vertices currently holding the given status.
func (state RoundState) Vertices(status Status) []int {
	return lo.Filter(lo.Range(state.Len()), func(v int, _ int) bool { return state.Status(v) == status })
}

// Threatened returns the unaffected vertices adjacent to fire. These are the only vertices the fire
// can take next round.
func (state RoundState) Threatened(g *graph.Graph) []int {
	return lo.Filter(lo.Range(state.Len()), func(v int, _ int) bool {
		return state.Status(v) == Unaffected && lo.SomeBy(g.Neighbors(v), state.Burning)
	})
}

// Contained reports whether the fire can no longer spread: no burning vertex has an unaffected neighbor.
func (state RoundState) Contained(g *graph.Graph) bool {
	for v := range state.Len() {
		if !state.burning[v] {
			continue
		}
		for _, u := range g.Neighbors(v) {
			if !state.burning[u] && !state.defended[u] {
				return false
			}
		}
	}
	return true
}

func (state RoundState) Equal(other RoundState) bool {
	return state.Len() == other.Len() &&
		lo.EveryBy(lo.Range(state.Len()), func(v int) bool {
			return state.burning[v] == other.burning[v] && state.defended[v] == other.defended[v]
		})
}

func (state RoundState) String() string {
	var builder strings.Builder
	for v := range state.Len() {
		switch {
		case state.burning[v] && state.defended[v]:
			builder.WriteByte('!')
		case state.burning[v]:
			builder.WriteByte('B')
		case state.defended[v]:
			builder.WriteByte('D')
		default:
			builder.WriteByte('.')
		}
	}
	return builder.String()
}

// ExclusivityHolds reports whether no vertex is burning and defended at once.
func ExclusivityHolds(state RoundState) bool {
	return !lo.SomeBy(lo.Range(state.Len()), func(v int) bool { return state.burning[v] && state.defended[v] })
}

// PermanenceHolds reports whether every vertex burning or defended in prev keeps that status in next.
func PermanenceHolds(prev, next RoundState) bool {
	if prev.Len() != next.Len() {
		return false
	}
	return lo.EveryBy(lo.Range(prev.Len()), func(v int) bool {
		return (!prev.burning[v] || next.burning[v]) && (!prev.defended[v] || next.defended[v])
	})
}
