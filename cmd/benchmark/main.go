package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/limaJavier/firefighter/pkg/graph"
	"github.com/limaJavier/firefighter/pkg/model"
	"github.com/limaJavier/firefighter/pkg/sat"
	"github.com/limaJavier/firefighter/pkg/search"
	"github.com/samber/lo"
)

const (
	outputFile         = "benchmark_results.csv"
	timeout            = 30 * time.Second
	MB         float32 = 1024 * 1024
)

type ResultType int

const (
	solved ResultType = iota
	timedOut
	failed
)

var resultTypes = map[ResultType]string{
	solved:   "solved",
	timedOut: "timeout",
	failed:   "failed",
}

type TestMetadata struct {
	Name     string
	Instance model.Instance
	Vertices int
	Edges    int
	Horizon  int
}

type StrategyMetadata struct {
	Name        string
	Firefighter model.Firefighter
}

type BenchmarkResult struct {
	Strategy string
	Test     TestMetadata
	Duration int64 // Milliseconds
	Memory   float32
	Saved    int
	Result   ResultType
}

func main() {
	tests := getTests()
	strategies := getStrategies()
	results := make([]BenchmarkResult, 0, len(tests)*len(strategies))

	for _, test := range tests {
		for _, strategy := range strategies {
			log.Info("Benchmarking", "test", test.Name, "strategy", strategy.Name)

			results = append(results, measure(context.Background(), strategy, test))
		}
	}

	if err := toCsv(results, outputFile); err != nil {
		log.Fatal("cannot write results", "err", err)
	}
	log.Info("Results written", "file", outputFile, "rows", len(results))
}

func getTests() []TestMetadata {
	rng := rand.New(rand.NewPCG(42, 42))

	graphs := []lo.Tuple2[string, *graph.Graph]{
		lo.T2("path-30", graph.Path(30)),
		lo.T2("star-20", graph.Star(20)),
		lo.T2("cycle-20", graph.Cycle(20)),
		lo.T2("grid-4x4", graph.Grid(4, 4)),
		lo.T2("grid-5x5", graph.Grid(5, 5)),
		lo.T2("random-15", graph.Random(15, 0.2, rng)),
		lo.T2("random-20", graph.Random(20, 0.15, rng)),
	}

	tests := make([]TestMetadata, 0, 2*len(graphs))
	for _, tuple := range graphs {
		name, g := tuple.Unpack()
		for _, budget := range []int{1, 2} {
			horizon := lo.Must(g.Eccentricity(0))
			tests = append(tests, TestMetadata{
				Name:     fmt.Sprintf("%v/b%d", name, budget),
				Instance: model.Instance{Graph: g, Root: 0, Budget: budget},
				Vertices: g.Order(),
				Edges:    g.Size(),
				Horizon:  horizon,
			})
		}
	}
	return tests
}

func getStrategies() []StrategyMetadata {
	strategies := []StrategyMetadata{
		{"search", model.NewSearchFirefighter()},
		{"search-simple", model.NewSearchFirefighter(search.WithBound(search.BoundSimple))},
		{"search-parallel", model.NewSearchFirefighter(search.WithWorkers(runtime.NumCPU()))},
		{"sat-gophersat", model.NewSatFirefighter(sat.NewGophersatSolver(), nil)},
		{"maxsat", model.NewMaxsatFirefighter(nil)},
	}

	// External solvers join only when installed
	for _, name := range sat.Names() {
		path := sat.DefaultPath(name)
		if path == "" {
			continue
		} else if _, err := exec.LookPath(path); err != nil {
			continue
		}
		solver := lo.Must(sat.NewSolver(name, nil))
		strategies = append(strategies, StrategyMetadata{"sat-" + name, model.NewSatFirefighter(solver, nil)})
	}

	return strategies
}

func measure(ctx context.Context, strategy StrategyMetadata, test TestMetadata) BenchmarkResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()

	solution, err := strategy.Firefighter.Solve(ctx, test.Instance)

	duration := time.Since(start).Milliseconds()
	runtime.ReadMemStats(&after)

	result := BenchmarkResult{
		Strategy: strategy.Name,
		Test:     test,
		Duration: duration,
		Memory:   float32(after.TotalAlloc-before.TotalAlloc) / MB,
		Saved:    solution.Saved,
		Result:   solved,
	}

	if err != nil {
		log.Error("Solve failed", "test", test.Name, "strategy", strategy.Name, "err", err)
		result.Result = failed
	} else if !strategy.Firefighter.Verify(solution, test.Instance) {
		log.Error("Schedule does not verify", "test", test.Name, "strategy", strategy.Name)
		result.Result = failed
	} else if !solution.Optimal || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.Result = timedOut
	}
	return result
}

func toCsv(results []BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Strategy", "Test", "Vertices", "Edges", "Budget", "Horizon", "Saved", "Duration(ms)", "Memory(MB)", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Strategy,
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Vertices),
			fmt.Sprintf("%d", result.Test.Edges),
			fmt.Sprintf("%d", result.Test.Instance.Budget),
			fmt.Sprintf("%d", result.Test.Horizon),
			fmt.Sprintf("%d", result.Saved),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
