package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/limaJavier/firefighter/internal/config"
	"github.com/limaJavier/firefighter/pkg/model"
	"github.com/limaJavier/firefighter/pkg/sat"
	"github.com/limaJavier/firefighter/pkg/search"
	"github.com/spf13/cobra"
)

// solveOpts holds the command-line flags of solve. Flags that were set override the config file.
type solveOpts struct {
	file       string
	root       string
	out        string
	configFile string
	flags      config.Config
}

func newSolveCmd() *cobra.Command {
	opts := solveOpts{flags: config.Default()}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute an optimal defense schedule for an instance",
		Long: `Solve reads a JSON or TOML instance and prints the best schedule found as JSON.

Strategies:
  search  branch-and-bound over round states (default)
  sat     time-expanded CNF model, binary search on the saved count
  maxsat  time-expanded model solved by gophersat's MaxSAT solver

If the timeout expires or the command is interrupted, the best schedule found so far is printed with
"optimal": false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			cfg = mergeFlags(cmd, cfg, opts.flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSolve(cmd, opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "instance file (.json or .toml)")
	cmd.Flags().StringVar(&opts.root, "root", "", "label of the vertex where the fire starts (overrides the instance)")
	cmd.Flags().IntVarP(&opts.flags.Budget, "budget", "b", opts.flags.Budget, "vertices defended per round (overrides the instance)")
	cmd.Flags().StringVarP(&opts.flags.Strategy, "strategy", "s", opts.flags.Strategy, "solving strategy: search, sat or maxsat")
	cmd.Flags().StringVar(&opts.flags.Solver, "solver", opts.flags.Solver, fmt.Sprintf("SAT backend of the sat strategy: %v", sat.Names()))
	cmd.Flags().DurationVarP(&opts.flags.Timeout, "timeout", "t", 0, "stop and report the best schedule after this long (0 = no limit)")
	cmd.Flags().IntVarP(&opts.flags.Workers, "workers", "w", opts.flags.Workers, "goroutines of the search strategy")
	cmd.Flags().StringVar(&opts.flags.Bound, "bound", opts.flags.Bound, "pruning bound of the search strategy: none, simple or tight")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "TOML config file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func mergeFlags(cmd *cobra.Command, cfg, flags config.Config) config.Config {
	changed := cmd.Flags().Changed
	if changed("budget") {
		cfg.Budget = flags.Budget
	}
	if changed("strategy") {
		cfg.Strategy = flags.Strategy
	}
	if changed("solver") {
		cfg.Solver = flags.Solver
	}
	if changed("timeout") {
		cfg.Timeout = flags.Timeout
	}
	if changed("workers") {
		cfg.Workers = flags.Workers
	}
	if changed("bound") {
		cfg.Bound = flags.Bound
	}
	return cfg
}

func runSolve(cmd *cobra.Command, opts solveOpts, cfg config.Config) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	//** Extract input
	rawInput, err := model.InputFromFile(opts.file)
	if err != nil {
		return err
	}
	if opts.root != "" {
		rawInput.Root = opts.root
	}
	if cmd.Flags().Changed("budget") || rawInput.Budget == 0 {
		rawInput.Budget = cfg.Budget
	}
	instance, err := model.ProcessRawInput(rawInput)
	if err != nil {
		return err
	}
	logger.Info("Loaded instance", "file", opts.file, "vertices", instance.Graph.Order(), "edges", instance.Graph.Size(), "budget", instance.Budget)

	//** Solve
	firefighter, err := newFirefighter(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	prog := newProgress(logger)
	solution, err := firefighter.Solve(ctx, instance)
	if err != nil {
		return fmt.Errorf("cannot solve %v: %w", opts.file, err)
	}
	if !firefighter.Verify(solution, instance) {
		return errors.New("the schedule found does not replay to its objective")
	}
	prog.done("Solved", "strategy", cfg.Strategy, "saved", solution.Saved, "optimal", solution.Optimal)
	if !solution.Optimal {
		logger.Warn("Search was interrupted; the schedule may not be optimal")
	}

	return writeJSON(cmd, opts.out, newSolutionOutput(cfg.Strategy, solution, instance))
}

// newFirefighter builds the strategy named by cfg.
func newFirefighter(cfg config.Config, logger *log.Logger) (model.Firefighter, error) {
	switch cfg.Strategy {
	case "search":
		bound, err := search.ParseBound(cfg.Bound)
		if err != nil {
			return nil, err
		}
		return model.NewSearchFirefighter(
			search.WithBound(bound),
			search.WithWorkers(cfg.Workers),
			search.WithLogger(logger),
		), nil
	case "sat":
		solver, err := sat.NewSolver(cfg.Solver, cfg.Solvers)
		if err != nil {
			return nil, err
		}
		return model.NewSatFirefighter(solver, logger), nil
	case "maxsat":
		return model.NewMaxsatFirefighter(logger), nil
	default:
		return nil, fmt.Errorf("%q is not a valid strategy", cfg.Strategy)
	}
}
