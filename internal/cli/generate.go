package cli

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/limaJavier/firefighter/pkg/graph"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var graphKinds = []string{"path", "star", "cycle", "grid", "random"}

type generateOpts struct {
	kind   string
	n      int
	height int
	p      float64
	seed   uint64
	root   int
	budget int
	out    string
}

// instanceOutput is an instance document in the format read by solve.
type instanceOutput struct {
	Nodes  []int    `json:"nodes"`
	Edges  [][2]int `json:"edges"`
	Root   int      `json:"root"`
	Budget int      `json:"budget"`
}

func newGenerateCmd() *cobra.Command {
	opts := generateOpts{kind: "random", n: 10, p: 0.3, seed: 42, budget: 1}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic instance as JSON",
		Long: `Generate builds a graph of the given kind and writes it as an instance document.

Kinds:
  path    0 - 1 - ... - (n-1)
  star    center 0 joined to n-1 leaves
  cycle   path with (n-1) - 0 closed
  grid    n columns by --height rows
  random  every pair joined with probability --p`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := generateGraph(opts)
			if err != nil {
				return err
			}
			if !g.HasVertex(opts.root) {
				return fmt.Errorf("root %d is not a vertex of a graph with %d vertices", opts.root, g.Order())
			}

			loggerFromContext(cmd.Context()).Debug("Generated graph", "kind", opts.kind, "vertices", g.Order(), "edges", g.Size())
			return writeJSON(cmd, opts.out, instanceOutput{
				Nodes:  lo.Range(g.Order()),
				Edges:  g.Edges(),
				Root:   opts.root,
				Budget: opts.budget,
			})
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", opts.kind, fmt.Sprintf("graph kind: %v", graphKinds))
	cmd.Flags().IntVarP(&opts.n, "n", "n", opts.n, "number of vertices (grid: columns)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "rows of a grid (default n)")
	cmd.Flags().Float64VarP(&opts.p, "p", "p", opts.p, "edge probability of a random graph")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed")
	cmd.Flags().IntVar(&opts.root, "root", 0, "vertex where the fire starts")
	cmd.Flags().IntVarP(&opts.budget, "budget", "b", opts.budget, "vertices defended per round")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func generateGraph(opts generateOpts) (*graph.Graph, error) {
	if !slices.Contains(graphKinds, opts.kind) {
		return nil, fmt.Errorf("%q is not a valid graph kind, expected one of %v", opts.kind, graphKinds)
	} else if opts.n <= 0 {
		return nil, fmt.Errorf("n must be positive, got %d", opts.n)
	} else if opts.p < 0 || opts.p > 1 {
		return nil, fmt.Errorf("p must lie in [0, 1], got %v", opts.p)
	} else if opts.budget <= 0 {
		return nil, fmt.Errorf("budget must be positive, got %d", opts.budget)
	}

	switch opts.kind {
	case "path":
		return graph.Path(opts.n), nil
	case "star":
		return graph.Star(opts.n - 1), nil
	case "cycle":
		if opts.n < 3 {
			return nil, fmt.Errorf("a cycle needs at least 3 vertices, got %d", opts.n)
		}
		return graph.Cycle(opts.n), nil
	case "grid":
		height := opts.height
		if height <= 0 {
			height = opts.n
		}
		return graph.Grid(opts.n, height), nil
	default:
		return graph.Random(opts.n, opts.p, rand.New(rand.NewPCG(opts.seed, opts.seed))), nil
	}
}
