package graph

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid graph", func(t *testing.T) {
		g, err := New(4, [][2]int{{0, 1}, {2, 1}, {1, 3}})

		require.NoError(t, err)
		assert.Equal(t, 4, g.Order())
		assert.Equal(t, 3, g.Size())
		assert.Equal(t, []int{0, 2, 3}, g.Neighbors(1))
		assert.Equal(t, []int{1}, g.Neighbors(2))
		assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {1, 3}}, g.Edges())
	})

	t.Run("Invalid graphs", func(t *testing.T) {
		cases := map[string][][2]int{
			"unknown vertex":  {{0, 4}},
			"negative vertex": {{-1, 0}},
			"self-loop":       {{2, 2}},
			"duplicate edge":  {{0, 1}, {1, 0}},
		}

		for name, edges := range cases {
			_, err := New(4, edges)

			var invalid InvalidGraphError
			assert.True(t, errors.As(err, &invalid), name)
		}
	})

	t.Run("Empty graph", func(t *testing.T) {
		g, err := New(0, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, g.Order())
		assert.Empty(t, g.Edges())
	})
}

func TestDistances(t *testing.T) {
	t.Run("Path", func(t *testing.T) {
		distances, err := Path(5).Distances(0)

		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, distances)
	})

	t.Run("Disconnected", func(t *testing.T) {
		g, err := New(5, [][2]int{{0, 1}, {1, 2}, {3, 4}})
		require.NoError(t, err)

		distances, err := g.Distances(1)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0, 1, Unreachable, Unreachable}, distances)

		reachable, err := g.Reachable(1)
		require.NoError(t, err)
		assert.Equal(t, []bool{true, true, true, false, false}, reachable)
	})

	t.Run("Unknown root", func(t *testing.T) {
		_, err := Path(3).Distances(3)

		var invalid InvalidGraphError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestEccentricity(t *testing.T) {
	cases := []struct {
		name     string
		graph    *Graph
		root     int
		expected int
	}{
		{"path from end", Path(5), 0, 4},
		{"path from middle", Path(5), 2, 2},
		{"star from center", Star(4), 0, 1},
		{"star from leaf", Star(4), 1, 2},
		{"cycle", Cycle(6), 0, 3},
		{"grid corner", Grid(3, 3), 0, 4},
		{"single vertex", Path(1), 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			eccentricity, err := c.graph.Eccentricity(c.root)

			require.NoError(t, err)
			assert.Equal(t, c.expected, eccentricity)
		})
	}

	t.Run("Ignores other components", func(t *testing.T) {
		g, err := New(6, [][2]int{{0, 1}, {2, 3}, {3, 4}, {4, 5}})
		require.NoError(t, err)

		eccentricity, err := g.Eccentricity(0)
		require.NoError(t, err)
		assert.Equal(t, 1, eccentricity)
	})
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for range 20 {
		g := Random(8, 0.4, rng)

		for _, edge := range g.Edges() {
			assert.Less(t, edge[0], edge[1])
			assert.Contains(t, g.Neighbors(edge[1]), edge[0])
		}
	}

	assert.Equal(t, 0, Random(6, 0, rng).Size())
	assert.Equal(t, 15, Random(6, 1, rng).Size())
}
