package graph

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

// The generators below build well-formed graphs, so they panic instead of returning an error.

// Path returns 0 - 1 - ... - (n-1).
func Path(n int) *Graph {
	edges := lo.Times(max(n-1, 0), func(i int) [2]int { return [2]int{i, i + 1} })
	return lo.Must(New(n, edges))
}

// Star returns a star whose center is vertex 0 and whose leaves are 1..leaves.
func Star(leaves int) *Graph {
	edges := lo.Times(leaves, func(i int) [2]int { return [2]int{0, i + 1} })
	return lo.Must(New(leaves+1, edges))
}

func Cycle(n int) *Graph {
	if n < 3 {
		return Path(n)
	}
	edges := lo.Times(n, func(i int) [2]int { return [2]int{i, (i + 1) % n} })
	return lo.Must(New(n, edges))
}

// Grid returns a width x height grid where vertex (x, y) is numbered y*width + x.
func Grid(width, height int) *Graph {
	edges := make([][2]int, 0, 2*width*height)
	for y := range height {
		for x := range width {
			v := y*width + x
			if x+1 < width {
				edges = append(edges, [2]int{v, v + 1})
			}
			if y+1 < height {
				edges = append(edges, [2]int{v, v + width})
			}
		}
	}
	return lo.Must(New(width*height, edges))
}

// Random returns an Erdős–Rényi graph where every pair of vertices is joined with probability p.
func Random(n int, p float64, rng *rand.Rand) *Graph {
	edges := make([][2]int, 0)
	for u := range n {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < p {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return lo.Must(New(n, edges))
}
