package model

// atMost encodes "at most k of literals are true" with Sinz's sequential counter. Auxiliary variables are
// taken from *next onwards, which is advanced past them.
func atMost(literals []int64, k int, next *int64) [][]int64 {
	m := len(literals)
	if k >= m {
		return nil
	} else if k <= 0 {
		clauses := make([][]int64, 0, m)
		for _, literal := range literals {
			clauses = append(clauses, []int64{-literal})
		}
		return clauses
	}

	// counter[i][j] is true when at least j+1 of literals[0..i] are true
	counter := make([][]int64, m-1)
	for i := range counter {
		counter[i] = make([]int64, k)
		for j := range counter[i] {
			counter[i][j] = *next
			*next++
		}
	}

	clauses := make([][]int64, 0, 2*m*k)
	clauses = append(clauses, []int64{-literals[0], counter[0][0]})
	for j := 1; j < k; j++ {
		clauses = append(clauses, []int64{-counter[0][j]})
	}

	for i := 1; i < m-1; i++ {
		clauses = append(clauses,
			[]int64{-literals[i], counter[i][0]},
			[]int64{-counter[i-1][0], counter[i][0]},
		)
		for j := 1; j < k; j++ {
			clauses = append(clauses,
				[]int64{-literals[i], -counter[i-1][j-1], counter[i][j]},
				[]int64{-counter[i-1][j], counter[i][j]},
			)
		}
		clauses = append(clauses, []int64{-literals[i], -counter[i-1][k-1]})
	}

	clauses = append(clauses, []int64{-literals[m-1], -counter[m-2][k-1]})
	return clauses
}

// atLeast encodes "at least k of literals are true" as "at most len-k of their negations are true".
func atLeast(literals []int64, k int, next *int64) [][]int64 {
	if k > len(literals) {
		// Unsatisfiable: x and !x for a fresh x
		fresh := *next
		*next++
		return [][]int64{{fresh}, {-fresh}}
	}

	negated := make([]int64, len(literals))
	for i, literal := range literals {
		negated[i] = -literal
	}
	return atMost(negated, len(literals)-k, next)
}
