package search

import (
	"bytes"
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/limaJavier/firefighter/pkg/game"
	"github.com/limaJavier/firefighter/pkg/graph"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveFixedInstances(t *testing.T) {
	disconnected := lo.Must(graph.New(5, [][2]int{{0, 1}, {1, 2}, {3, 4}}))

	cases := []struct {
		name     string
		graph    *graph.Graph
		root     int
		budget   int
		saved    int
		horizon  int
		baseline int
	}{
		// Defending vertex 1 in round 1 seals the fire at the root; defense then covers the rest
		{"path of 5 from an end", graph.Path(5), 0, 1, 4, 4, 0},
		// Fire reaches every leaf in round 1 except the single placed one
		{"star of 4 leaves from the center", graph.Star(4), 0, 1, 1, 1, 0},
		// Defending the center in round 1 shields the three other leaves
		{"star of 4 leaves from a leaf", graph.Star(4), 1, 1, 4, 2, 0},
		{"path of 5 from the middle", graph.Path(5), 2, 1, 3, 2, 0},
		{"path of 5 from the middle with budget 2", graph.Path(5), 2, 2, 4, 2, 0},
		{"cycle of 6", graph.Cycle(6), 0, 1, 4, 3, 0},
		{"disconnected", disconnected, 0, 1, 4, 2, 2},
		{"single vertex", graph.Path(1), 0, 1, 0, 0, 0},
		{"zero budget", graph.Path(4), 0, 0, 0, 3, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			//** Arrange
			engine, err := New(c.graph, c.root, WithBudget(c.budget))
			require.NoError(t, err)

			//** Act
			result, err := engine.Solve(context.Background())

			//** Assert
			require.NoError(t, err)
			assert.Equal(t, c.saved, result.Saved)
			assert.True(t, result.Optimal)
			assert.Equal(t, c.horizon, result.Horizon)
			assert.Equal(t, c.baseline, engine.Baseline())
			assert.Len(t, result.Schedule, c.horizon)

			saved, err := game.Evaluate(c.graph, c.root, c.budget, result.Schedule)
			require.NoError(t, err)
			assert.Equal(t, c.saved, saved)
		})
	}
}

func TestSolveSchedule(t *testing.T) {
	engine := lo.Must(New(graph.Path(5), 0))

	result, err := engine.Solve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, game.Schedule{{1}, {}, {}, {}}, result.Schedule)
}

// Unreachable vertices survive every schedule, the empty one included.
func TestDisconnectedBaseline(t *testing.T) {
	g := lo.Must(graph.New(7, [][2]int{{0, 1}, {1, 2}, {0, 2}, {3, 4}, {5, 6}}))
	engine := lo.Must(New(g, 0))

	saved, err := game.Evaluate(g, 0, 1, game.Pad(nil, engine.Horizon()))
	require.NoError(t, err)
	assert.Equal(t, 4, saved)
	assert.Equal(t, 4, engine.Baseline())

	result, err := engine.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.Saved)
}

func TestPruningSoundness(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for i := range 150 {
		n := rng.IntN(8) + 1
		g := graph.Random(n, 0.3+rng.Float64()*0.3, rng)
		root := rng.IntN(n)
		budget := rng.IntN(2) + 1

		exhaustive := solve(t, g, root, WithBudget(budget), WithBound(BoundNone))
		simple := solve(t, g, root, WithBudget(budget), WithBound(BoundSimple))
		tight := solve(t, g, root, WithBudget(budget), WithBound(BoundTight))
		parallel := solve(t, g, root, WithBudget(budget), WithBound(BoundTight), WithWorkers(3))

		assert.Equal(t, exhaustive.Saved, simple.Saved, "instance %d: simple bound", i)
		assert.Equal(t, exhaustive.Saved, tight.Saved, "instance %d: tight bound", i)
		assert.Equal(t, exhaustive.Saved, parallel.Saved, "instance %d: parallel", i)
		assert.LessOrEqual(t, tight.Nodes, exhaustive.Nodes)

		for _, result := range []Result{exhaustive, simple, tight, parallel} {
			saved, err := game.Evaluate(g, root, budget, result.Schedule)
			require.NoError(t, err)
			assert.Equal(t, result.Saved, saved, "instance %d: schedule does not reach its objective", i)
		}
	}
}

// Compares the engine against a plain enumeration of every schedule over the whole horizon,
// without containment short-cuts or bounds.
func TestAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))

	for i := range 60 {
		n := rng.IntN(6) + 1
		g := graph.Random(n, 0.45, rng)
		root := rng.IntN(n)
		horizon := lo.Must(g.Eccentricity(root))

		expected := bruteForce(g, lo.Must(game.Initial(g, root)), horizon)
		result := solve(t, g, root)

		assert.Equal(t, expected, result.Saved, "instance %d", i)
	}
}

func TestSolveInterrupted(t *testing.T) {
	g := graph.Grid(5, 5)
	engine := lo.Must(New(g, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Solve(ctx)

	require.NoError(t, err)
	assert.False(t, result.Optimal)
	assert.Equal(t, engine.Baseline(), result.Saved)
	assert.Len(t, result.Schedule, engine.Horizon())
}

func TestSolveTimeBudget(t *testing.T) {
	g := graph.Random(40, 0.08, rand.New(rand.NewPCG(1, 1)))
	engine := lo.Must(New(g, 0, WithTimeBudget(50*time.Millisecond), WithWorkers(2)))

	start := time.Now()
	result, err := engine.Solve(context.Background())

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.GreaterOrEqual(t, result.Saved, engine.Baseline())

	saved, err := game.Evaluate(g, 0, 1, result.Schedule)
	require.NoError(t, err)
	assert.Equal(t, result.Saved, saved)
}

func TestNew(t *testing.T) {
	_, err := New(graph.Path(3), 0, WithBudget(-1))
	assert.ErrorIs(t, err, ErrInvalidBudget)

	_, err = New(graph.Path(3), 3)
	var invalid graph.InvalidGraphError
	assert.ErrorAs(t, err, &invalid)
}

func TestSolveLogs(t *testing.T) {
	var buffer bytes.Buffer
	logger := log.NewWithOptions(&buffer, log.Options{Level: log.DebugLevel})
	engine := lo.Must(New(graph.Path(5), 0, WithLogger(logger)))

	_, err := engine.Solve(context.Background())

	require.NoError(t, err)
	assert.Contains(t, buffer.String(), "search started")
	assert.Contains(t, buffer.String(), "incumbent improved")
	assert.Contains(t, buffer.String(), "search finished")
}

func TestTracker(t *testing.T) {
	var shared atomic.Int64
	tracker := NewTracker(2, 3, &shared)

	best, schedule := tracker.Best()
	assert.Equal(t, 2, best)
	assert.Equal(t, game.Schedule{{}, {}, {}}, schedule)

	assert.False(t, tracker.Offer(2, []game.Placement{{4}}))
	assert.True(t, tracker.Offer(3, []game.Placement{{1}}))
	assert.False(t, tracker.Offer(3, []game.Placement{{2}}), "ties keep the first schedule")

	best, schedule = tracker.Best()
	assert.Equal(t, 3, best)
	assert.Equal(t, game.Schedule{{1}, {}, {}}, schedule)
	assert.Equal(t, int64(3), shared.Load())

	other := NewTracker(0, 3, &shared)
	assert.Equal(t, 3, other.Bar())
	shared.Store(7)
	assert.Equal(t, 7, tracker.Bar())
}

func TestForEachPlacement(t *testing.T) {
	placements := make([]game.Placement, 0)
	err := forEachPlacement([]int{1, 2, 3}, 2, func(placement game.Placement) error {
		placements = append(placements, placement)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []game.Placement{{1, 2}, {1, 3}, {2, 3}, {1}, {2}, {3}, {}}, placements)

	count := 0
	require.NoError(t, forEachPlacement(nil, 3, func(placement game.Placement) error {
		assert.Empty(t, placement)
		count++
		return nil
	}))
	assert.Equal(t, 1, count)
}

func TestParseBound(t *testing.T) {
	bound, err := ParseBound("Tight")
	require.NoError(t, err)
	assert.Equal(t, BoundTight, bound)
	assert.Equal(t, "simple", BoundSimple.String())

	_, err = ParseBound("loose")
	assert.Error(t, err)
}

func solve(t *testing.T, g *graph.Graph, root int, opts ...Option) Result {
	t.Helper()
	engine, err := New(g, root, opts...)
	require.NoError(t, err)
	result, err := engine.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, result.Optimal)
	return result
}

func bruteForce(g *graph.Graph, state game.RoundState, rounds int) int {
	if rounds == 0 {
		return state.Saved()
	}
	best := 0
	_ = forEachPlacement(state.Vertices(game.Unaffected), 1, func(placement game.Placement) error {
		best = max(best, bruteForce(g, lo.Must(game.Transition(g, state, placement, 1)), rounds-1))
		return nil
	})
	return best
}
