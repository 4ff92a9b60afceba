package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/limaJavier/firefighter/pkg/game"
	"github.com/limaJavier/firefighter/pkg/model"
	"github.com/spf13/cobra"
)

type verifyOpts struct {
	file     string
	schedule string
	root     string
	budget   int
}

func newVerifyCmd() *cobra.Command {
	var opts verifyOpts

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay a schedule produced by solve against its instance",
		Long: `Verify replays every round of the schedule through the game rules. It reports the number of vertices
saved, or the first round that breaks a rule. It fails when the saved count differs from the one the
schedule claims.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "instance file (.json or .toml)")
	cmd.Flags().StringVar(&opts.schedule, "schedule", "", "solution file written by solve")
	cmd.Flags().StringVar(&opts.root, "root", "", "label of the vertex where the fire starts (overrides the instance)")
	cmd.Flags().IntVarP(&opts.budget, "budget", "b", 0, "vertices defended per round (overrides the instance)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("schedule")

	return cmd
}

func runVerify(cmd *cobra.Command, opts verifyOpts) error {
	logger := loggerFromContext(cmd.Context())

	rawInput, err := model.InputFromFile(opts.file)
	if err != nil {
		return err
	}
	if opts.root != "" {
		rawInput.Root = opts.root
	}
	if opts.budget > 0 {
		rawInput.Budget = opts.budget
	}
	instance, err := model.ProcessRawInput(rawInput)
	if err != nil {
		return err
	}

	bytes, err := os.ReadFile(opts.schedule)
	if err != nil {
		return err
	}
	var output solutionOutput
	if err := json.Unmarshal(bytes, &output); err != nil {
		return fmt.Errorf("cannot parse %v: %w", opts.schedule, err)
	}
	schedule, err := output.schedule(instance)
	if err != nil {
		return err
	}

	horizon, err := instance.Graph.Eccentricity(instance.Root)
	if err != nil {
		return err
	}
	if len(schedule) > horizon {
		return fmt.Errorf("schedule has %d rounds but the fire is settled after %d", len(schedule), horizon)
	}

	trajectory, err := game.Replay(instance.Graph, instance.Root, instance.Budget, game.Pad(schedule, horizon))
	if err != nil {
		return err
	}
	for round, state := range trajectory {
		logger.Debug("Replayed round", "round", round, "state", state.String())
	}

	saved := trajectory[len(trajectory)-1].Saved()
	if saved != output.Saved {
		return fmt.Errorf("schedule saves %d vertices but claims %d", saved, output.Saved)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "valid schedule: %d of %d vertices saved\n", saved, instance.Graph.Order())
	return err
}
