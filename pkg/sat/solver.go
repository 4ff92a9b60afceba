package sat

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Default executable names, used when no path is configured for a solver.
var defaultPaths = map[string]string{
	"kissat":        "kissat",
	"cadical":       "cadical",
	"cryptominisat": "cryptominisat5",
	"minisat":       "minisat",
	"glucosesimp":   "glucose-simp",
}

var solvers = map[string]func(path string) SATSolver{
	"kissat":        NewKissatSolver,
	"cadical":       NewCadicalSolver,
	"cryptominisat": NewCryptominisatSolver,
	"minisat":       NewMinisatSolver,
	"glucosesimp":   NewGlucoseSimpSolver,
	"gophersat":     func(string) SATSolver { return NewGophersatSolver() },
}

func NewKissatSolver(path string) SATSolver {
	return &processSolver{name: "kissat", path: path, args: []string{"-q", "--relaxed"}}
}

func NewCadicalSolver(path string) SATSolver {
	return &processSolver{name: "cadical", path: path, args: []string{"-q"}}
}

func NewCryptominisatSolver(path string) SATSolver {
	return &processSolver{name: "cryptominisat", path: path, args: []string{"--verb", "0"}}
}

func NewMinisatSolver(path string) SATSolver {
	return &processSolver{name: "minisat", path: path, args: []string{"-verb=0"}, fileBased: true}
}

func NewGlucoseSimpSolver(path string) SATSolver {
	return &processSolver{name: "glucose-simp", path: path, args: []string{"-verb=0"}, fileBased: true}
}

// Names lists the accepted solver names in alphabetical order.
func Names() []string {
	names := lo.Keys(solvers)
	slices.Sort(names)
	return names
}

// DefaultPath returns the executable looked up when no path is configured for name, or "" for in-process solvers.
func DefaultPath(name string) string {
	return defaultPaths[name]
}

// NewSolver builds the solver called name. paths overrides the executable of external solvers.
func NewSolver(name string, paths map[string]string) (SATSolver, error) {
	constructor, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%v is not a valid solver", name)
	}

	path, ok := paths[name]
	if !ok || path == "" {
		path = defaultPaths[name]
	}
	return constructor(path), nil
}
