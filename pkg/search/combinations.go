package search

import "github.com/limaJavier/firefighter/pkg/game"

// forEachPlacement calls fn with every subset of candidates holding at most budget vertices, largest
// subsets first and, within a size, in lexicographic order of candidate positions. Each call receives
// a fresh slice. Iteration stops at the first error.
func forEachPlacement(candidates []int, budget int, fn func(game.Placement) error) error {
	for size := min(budget, len(candidates)); size >= 0; size-- {
		indices := make([]int, size)
		for i := range indices {
			indices[i] = i
		}

		for {
			placement := make(game.Placement, size)
			for i, index := range indices {
				placement[i] = candidates[index]
			}
			if err := fn(placement); err != nil {
				return err
			}

			// Advance to the next combination: bump the rightmost index that still has room
			i := size - 1
			for i >= 0 && indices[i] == len(candidates)-size+i {
				i--
			}
			if i < 0 {
				break
			}
			indices[i]++
			for j := i + 1; j < size; j++ {
				indices[j] = indices[j-1] + 1
			}
		}
	}
	return nil
}
