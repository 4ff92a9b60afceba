package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/firefighter/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFromFile(t *testing.T) {
	t.Run("JSON with string labels", func(t *testing.T) {
		rawInput, err := InputFromFile(filepath.Join(testDirectory, "star_from_leaf.json"))
		require.NoError(t, err)

		instance, err := ProcessRawInput(rawInput)
		require.NoError(t, err)

		assert.Equal(t, 5, instance.Graph.Order())
		assert.Equal(t, 4, instance.Graph.Size())
		assert.Equal(t, 1, instance.Root)
		assert.Equal(t, "north", instance.Label(instance.Root))
		assert.Equal(t, 1, instance.Budget)
	})

	t.Run("TOML with numeric labels", func(t *testing.T) {
		rawInput, err := InputFromFile(filepath.Join(testDirectory, "path.toml"))
		require.NoError(t, err)

		assert.Equal(t, "0", rawInput.Root)
		assert.Equal(t, []string{"3", "4"}, rawInput.Edges[3])
	})

	t.Run("Nodes derived from edges", func(t *testing.T) {
		rawInput, err := InputFromFile(filepath.Join(testDirectory, "disconnected.json"))
		require.NoError(t, err)

		instance, err := ProcessRawInput(rawInput)
		require.NoError(t, err)

		assert.Equal(t, 5, instance.Graph.Order())
		assert.Equal(t, 3, instance.Graph.Size()) // 1-0 repeats 0-1
		assert.Equal(t, 1, instance.Budget)
		assert.Equal(t, []string{"0", "1", "2", "3", "4"}, instance.Labels)
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		file := writeFile(t, "instance.yaml", "root: 0")

		_, err := InputFromFile(file)

		assert.Error(t, err)
	})

	t.Run("Unknown key", func(t *testing.T) {
		file := writeFile(t, "instance.json", `{"root": "a", "edges": [["a", "b"]], "colour": "red"}`)

		_, err := InputFromFile(file)

		assert.Error(t, err)
	})

	t.Run("Malformed document", func(t *testing.T) {
		file := writeFile(t, "instance.toml", "root = ")

		_, err := InputFromFile(file)

		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := InputFromFile(filepath.Join(t.TempDir(), "absent.json"))

		assert.Error(t, err)
	})
}

func TestProcessRawInput(t *testing.T) {
	tests := []struct {
		name  string
		input RawInput
	}{
		{"Unknown root", RawInput{Edges: [][]string{{"a", "b"}}, Root: "c"}},
		{"Missing root", RawInput{Edges: [][]string{{"a", "b"}}}},
		{"Duplicate node", RawInput{Nodes: []string{"a", "a"}, Root: "a"}},
		{"Unknown endpoint", RawInput{Nodes: []string{"a", "b"}, Edges: [][]string{{"a", "c"}}, Root: "a"}},
		{"Self-loop", RawInput{Edges: [][]string{{"a", "a"}}, Root: "a"}},
		{"Hyperedge", RawInput{Edges: [][]string{{"a", "b", "c"}}, Root: "a"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ProcessRawInput(test.input)

			var invalid graph.InvalidGraphError
			assert.ErrorAs(t, err, &invalid)
		})
	}

	t.Run("Negative budget", func(t *testing.T) {
		_, err := ProcessRawInput(RawInput{Nodes: []string{"a"}, Root: "a", Budget: -2})

		assert.Error(t, err)
	})

	t.Run("Isolated nodes", func(t *testing.T) {
		instance, err := ProcessRawInput(RawInput{Nodes: []string{"x", "y", "z"}, Edges: [][]string{{"z", "x"}}, Root: "y", Budget: 3})

		require.NoError(t, err)
		assert.Equal(t, 3, instance.Graph.Order())
		assert.Equal(t, [][2]int{{0, 2}}, instance.Graph.Edges())
		assert.Equal(t, 1, instance.Root)
		assert.Equal(t, 3, instance.Budget)
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}
