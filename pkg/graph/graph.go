// Package graph holds the immutable undirected graph the fire spreads on.
// Vertices are dense integers in [0, n).
package graph

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Unreachable is the distance reported for vertices outside the root's component.
const Unreachable = -1

type InvalidGraphError struct {
	Reason string
}

func (err InvalidGraphError) Error() string {
	return "invalid graph: " + err.Reason
}

// Graph is an undirected simple graph. It is never mutated after New returns,
// so it can be shared between goroutines freely.
type Graph struct {
	adjacency [][]int
	edges     int
}

// New builds a graph over vertices [0, n) from an edge list. Edges that reference an unknown vertex,
// self-loops and repeated edges are rejected.
func New(n int, edges [][2]int) (*Graph, error) {
	if n < 0 {
		return nil, InvalidGraphError{Reason: fmt.Sprintf("negative vertex count %d", n)}
	}

	adjacency := make([][]int, n)
	seen := make(map[[2]int]bool, len(edges))
	for _, edge := range edges {
		u, v := edge[0], edge[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, InvalidGraphError{Reason: fmt.Sprintf("edge (%d, %d) references a vertex outside [0, %d)", u, v, n)}
		} else if u == v {
			return nil, InvalidGraphError{Reason: fmt.Sprintf("self-loop on vertex %d", u)}
		}

		key := [2]int{min(u, v), max(u, v)}
		if seen[key] {
			return nil, InvalidGraphError{Reason: fmt.Sprintf("duplicate edge (%d, %d)", u, v)}
		}
		seen[key] = true

		adjacency[u] = append(adjacency[u], v)
		adjacency[v] = append(adjacency[v], u)
	}

	// Sorted neighbor lists keep every traversal deterministic
	for v := range adjacency {
		slices.Sort(adjacency[v])
	}

	return &Graph{adjacency: adjacency, edges: len(seen)}, nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int {
	return len(g.adjacency)
}

// Size returns the number of edges.
func (g *Graph) Size() int {
	return g.edges
}

func (g *Graph) HasVertex(v int) bool {
	return v >= 0 && v < len(g.adjacency)
}

// Neighbors returns the vertices adjacent to v in ascending order. The slice is shared and must not be modified.
func (g *Graph) Neighbors(v int) []int {
	return g.adjacency[v]
}

func (g *Graph) Degree(v int) int {
	return len(g.adjacency[v])
}

// Edges returns every edge once, as (u, v) with u < v.
func (g *Graph) Edges() [][2]int {
	edges := make([][2]int, 0, g.edges)
	for u, neighbors := range g.adjacency {
		edges = append(edges, lo.FilterMap(neighbors, func(v int, _ int) ([2]int, bool) {
			return [2]int{u, v}, u < v
		})...)
	}
	return edges
}
