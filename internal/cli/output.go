package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/limaJavier/firefighter/pkg/game"
	"github.com/limaJavier/firefighter/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// solutionOutput is the document written by solve and read back by verify. Vertices carry their input labels.
type solutionOutput struct {
	Strategy string     `json:"strategy"`
	Saved    int        `json:"saved"`
	Optimal  bool       `json:"optimal"`
	Horizon  int        `json:"horizon"`
	Schedule [][]string `json:"schedule"`
}

func newSolutionOutput(strategy string, solution model.Solution, instance model.Instance) solutionOutput {
	return solutionOutput{
		Strategy: strategy,
		Saved:    solution.Saved,
		Optimal:  solution.Optimal,
		Horizon:  solution.Horizon,
		Schedule: lo.Map(solution.Schedule, func(placement game.Placement, _ int) []string {
			return lo.Map(placement, func(v int, _ int) string { return instance.Label(v) })
		}),
	}
}

// schedule maps the labelled placements back to vertex ids.
func (output solutionOutput) schedule(instance model.Instance) (game.Schedule, error) {
	ids := make(map[string]int, instance.Graph.Order())
	for v := range instance.Graph.Order() {
		ids[instance.Label(v)] = v
	}

	schedule := make(game.Schedule, len(output.Schedule))
	for round, labels := range output.Schedule {
		schedule[round] = make(game.Placement, 0, len(labels))
		for _, label := range labels {
			v, ok := ids[label]
			if !ok {
				return nil, fmt.Errorf("round %d places unknown vertex %q", round+1, label)
			}
			schedule[round] = append(schedule[round], v)
		}
	}
	return schedule, nil
}

// writeJSON writes value to file, or to the command's output when file is empty.
func writeJSON(cmd *cobra.Command, file string, value any) error {
	bytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	bytes = append(bytes, '\n')

	if file == "" {
		_, err = cmd.OutOrStdout().Write(bytes)
		return err
	}
	return os.WriteFile(file, bytes, 0o644)
}
