package sat

import (
	"context"
	"math/rand/v2"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGophersat(t *testing.T) {
	solver := NewGophersatSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, solver)
	})
}

func TestKissat(t *testing.T) {
	externalExecution(t, "kissat")
}

func TestCadical(t *testing.T) {
	externalExecution(t, "cadical")
}

func TestCryptominisat(t *testing.T) {
	externalExecution(t, "cryptominisat")
}

func TestMinisat(t *testing.T) {
	externalExecution(t, "minisat")
}

func TestGlucoseSimp(t *testing.T) {
	externalExecution(t, "glucosesimp")
}

func TestGophersatCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either outcome is fine as long as a cancelled context never yields a wrong model
	solution, err := NewGophersatSolver().Solve(ctx, SAT{Variables: 1, Clauses: [][]int64{{1}}})
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	} else {
		assert.Equal(t, SATSolution{1}, solution)
	}
}

func TestNewSolver(t *testing.T) {
	solver, err := NewSolver("kissat", map[string]string{"kissat": "/opt/kissat"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/kissat", solver.(*processSolver).path)

	solver, err = NewSolver("minisat", nil)
	require.NoError(t, err)
	assert.Equal(t, "minisat", solver.(*processSolver).path)
	assert.True(t, solver.(*processSolver).fileBased)

	_, err = NewSolver("picosat", nil)
	assert.Error(t, err)

	assert.Contains(t, Names(), "gophersat")
	assert.Equal(t, "", DefaultPath("gophersat"))
}

func TestMissingBinary(t *testing.T) {
	solver := NewKissatSolver("/nonexistent/kissat")

	_, err := solver.Solve(context.Background(), SAT{Variables: 1, Clauses: [][]int64{{1}}})

	assert.Error(t, err)
}

func TestToDIMACS(t *testing.T) {
	instance := SAT{Variables: 3, Clauses: [][]int64{{1, -2}, {3}}}

	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", instance.ToDIMACS())
}

func TestParseSolution(t *testing.T) {
	solution, err := parseSolution("c comment\ns SATISFIABLE\nv 1 -2 3\nv -4 0\n")
	require.NoError(t, err)
	assert.Equal(t, SATSolution{1, -2, 3, -4}, solution)

	solution, err = parseModelFile("SAT\n-1 2 0\n")
	require.NoError(t, err)
	assert.Equal(t, SATSolution{-1, 2}, solution)

	_, err = parseModelFile("UNSAT\n")
	assert.Error(t, err)

	_, err = parseSolution("v 1 x 0\n")
	assert.Error(t, err)

	assert.Equal(t, []bool{false, true, false, true}, SATSolution{1, -2, 3}.Values(3))
}

func externalExecution(t *testing.T, name string) {
	if _, err := exec.LookPath(DefaultPath(name)); err != nil {
		t.Skipf("%v is not installed", name)
	}
	solver, err := NewSolver(name, nil)
	require.NoError(t, err)

	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, solver)
	})
}

func randomExecution(t *testing.T, solver SATSolver) {
	rng := rand.New(rand.NewPCG(42, 24))

	for range 10 {
		//** Arrange
		literals := uint64(rng.IntN(30) + 1)
		clauses := rng.IntN(60) + 1
		instance := GenerateSATInstance(literals, clauses, rng)

		//** Act
		solution, err := solver.Solve(context.Background(), instance)

		//** Assert
		require.NoError(t, err)
		if solution == nil {
			continue
		}
		assert.True(t, AssertSATSolution(instance, solution))
	}
}

func unsatisfiableExecution(t *testing.T, solver SATSolver) {
	instance := SAT{Variables: 2, Clauses: [][]int64{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}}

	solution, err := solver.Solve(context.Background(), instance)

	require.NoError(t, err)
	assert.Nil(t, solution)
}
