package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/limaJavier/firefighter/pkg/graph"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// RawInput is an instance as written by hand: vertices are arbitrary labels.
type RawInput struct {
	Nodes  []string   `mapstructure:"nodes"`
	Edges  [][]string `mapstructure:"edges"`
	Root   string     `mapstructure:"root"`
	Budget int        `mapstructure:"budget"`
}

// InputFromFile reads a .json or .toml instance. Labels may be numbers or strings.
func InputFromFile(file string) (RawInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return RawInput{}, err
	}

	var document map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		err = json.Unmarshal(bytes, &document)
	case ".toml":
		err = toml.Unmarshal(bytes, &document)
	default:
		return RawInput{}, fmt.Errorf("unsupported input format %q: expected .json or .toml", filepath.Ext(file))
	}
	if err != nil {
		return RawInput{}, fmt.Errorf("cannot parse %v: %w", file, err)
	}

	return decodeRawInput(document)
}

func decodeRawInput(document map[string]any) (RawInput, error) {
	var rawInput RawInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &rawInput,
	})
	if err != nil {
		return RawInput{}, err
	}
	if err := decoder.Decode(document); err != nil {
		return RawInput{}, fmt.Errorf("invalid instance: %w", err)
	}
	return rawInput, nil
}

// ProcessRawInput relabels the vertices densely in order of first appearance (nodes first, then edges)
// and builds the instance. Repeated edges are collapsed.
func ProcessRawInput(rawInput RawInput) (Instance, error) {
	if rawInput.Budget < 0 {
		return Instance{}, fmt.Errorf("defense budget must not be negative, got %d", rawInput.Budget)
	}

	labels := make([]string, 0, len(rawInput.Nodes))
	ids := make(map[string]int)
	for _, label := range rawInput.Nodes {
		if _, ok := ids[label]; ok {
			return Instance{}, graph.InvalidGraphError{Reason: fmt.Sprintf("node %q is listed twice", label)}
		}
		ids[label] = len(labels)
		labels = append(labels, label)
	}
	declared := len(labels) > 0

	edges := make([][2]int, 0, len(rawInput.Edges))
	for _, edge := range rawInput.Edges {
		if len(edge) != 2 {
			return Instance{}, graph.InvalidGraphError{Reason: fmt.Sprintf("edge %v must have exactly two endpoints", edge)}
		}

		var endpoints [2]int
		for i, label := range edge {
			id, ok := ids[label]
			if !ok && declared {
				return Instance{}, graph.InvalidGraphError{Reason: fmt.Sprintf("edge %v references unknown node %q", edge, label)}
			} else if !ok {
				id = len(labels)
				ids[label] = id
				labels = append(labels, label)
			}
			endpoints[i] = id
		}
		edges = append(edges, [2]int{min(endpoints[0], endpoints[1]), max(endpoints[0], endpoints[1])})
	}
	edges = lo.Uniq(edges)

	root, ok := ids[rawInput.Root]
	if !ok {
		return Instance{}, graph.InvalidGraphError{Reason: fmt.Sprintf("root %q is not a node", rawInput.Root)}
	}

	g, err := graph.New(len(labels), edges)
	if err != nil {
		return Instance{}, err
	}

	return Instance{
		Graph:  g,
		Root:   root,
		Budget: max(rawInput.Budget, 1),
		Labels: labels,
	}, nil
}
