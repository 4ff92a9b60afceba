package sat

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// processSolver runs a SAT solver binary that follows the SAT-competition conventions:
// exit-code 10 stands for satisfiable and exit-code 20 stands for unsatisfiable.
type processSolver struct {
	name string
	path string
	args []string
	// The minisat family reads the DIMACS file named by the first argument and writes the model
	// to the file named by the second one instead of using the standard streams
	fileBased bool
}

func (solver *processSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	cmd := exec.CommandContext(ctx, solver.path, solver.args...)

	var outputPath string
	if solver.fileBased {
		// Create a temporary file to hold the DIMACS content
		inputTempFile, err := os.CreateTemp("", "dimacs-*.cnf")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary file: %v", err)
		}
		defer os.Remove(inputTempFile.Name()) // Ensure the file is removed after execution

		outputTempFile, err := os.CreateTemp("", solver.name+"_output-*.cnf")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary file: %v", err)
		}
		outputTempFile.Close()
		defer os.Remove(outputTempFile.Name())

		// Write the DIMACS content to the temporary file
		if _, err := inputTempFile.WriteString(dimacs); err != nil {
			return nil, fmt.Errorf("failed to write DIMACS to temporary file: %v", err)
		}
		if err := inputTempFile.Close(); err != nil {
			return nil, fmt.Errorf("failed to close temporary file: %v", err)
		}

		outputPath = outputTempFile.Name()
		cmd.Args = append(cmd.Args, inputTempFile.Name(), outputPath)
	} else {
		cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input
	}

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	} else if cmd.ProcessState == nil { // The process never started (e.g. binary not found)
		return nil, fmt.Errorf("cannot run %v: %w", solver.name, err)
	} else if err != nil && cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		return nil, fmt.Errorf("an error occurred during %v execution: %v : %v", solver.name, err.Error(), stderr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		return nil, nil
	}

	if !solver.fileBased {
		return parseSolution(stdOut.String())
	}

	output, err := os.ReadFile(outputPath) // Read the output file
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %v", err)
	}
	return parseModelFile(string(output))
}
