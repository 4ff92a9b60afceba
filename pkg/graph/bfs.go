package graph

import (
	"fmt"

	"github.com/samber/lo"
)

// Distances runs a breadth-first search from root and returns the hop distance to every vertex,
// or Unreachable for vertices in other components.
func (g *Graph) Distances(root int) ([]int, error) {
	if !g.HasVertex(root) {
		return nil, InvalidGraphError{Reason: fmt.Sprintf("root %d is not in [0, %d)", root, g.Order())}
	}

	distances := make([]int, g.Order())
	for i := range distances {
		distances[i] = Unreachable
	}
	distances[root] = 0

	queue := make([]int, 0, g.Order())
	queue = append(queue, root)
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, v := range g.adjacency[u] {
			if distances[v] == Unreachable {
				distances[v] = distances[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return distances, nil
}

// Eccentricity returns the largest distance from root to a vertex of its component.
// Vertices in other components are ignored: fire can never reach them.
func (g *Graph) Eccentricity(root int) (int, error) {
	distances, err := g.Distances(root)
	if err != nil {
		return 0, err
	}
	return lo.Max(distances), nil
}

// Reachable marks the vertices that share a component with root.
func (g *Graph) Reachable(root int) ([]bool, error) {
	distances, err := g.Distances(root)
	if err != nil {
		return nil, err
	}
	return lo.Map(distances, func(distance int, _ int) bool { return distance != Unreachable }), nil
}
