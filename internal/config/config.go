// Package config loads solver settings from an optional TOML file. Command-line flags are applied on top
// by the caller.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/limaJavier/firefighter/pkg/sat"
	"github.com/limaJavier/firefighter/pkg/search"
	"github.com/mitchellh/mapstructure"
)

var Strategies = []string{"search", "sat", "maxsat"}

type Config struct {
	Strategy string            `mapstructure:"strategy"`
	Solver   string            `mapstructure:"solver"` // SAT backend of the sat strategy
	Budget   int               `mapstructure:"budget"`
	Timeout  time.Duration     `mapstructure:"timeout"` // Zero means unlimited
	Workers  int               `mapstructure:"workers"`
	Bound    string            `mapstructure:"bound"`
	Solvers  map[string]string `mapstructure:"solvers"` // Executable path per external solver
}

func Default() Config {
	return Config{
		Strategy: "search",
		Solver:   "gophersat",
		Budget:   1,
		Workers:  1,
		Bound:    search.BoundTight.String(),
		Solvers:  map[string]string{},
	}
}

// Load reads file over the defaults. An empty file name yields the defaults.
func Load(file string) (Config, error) {
	config := Default()
	if file == "" {
		return config, nil
	}

	var document map[string]any
	if _, err := toml.DecodeFile(file, &document); err != nil {
		return Config{}, fmt.Errorf("cannot read config %v: %w", file, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(document); err != nil {
		return Config{}, fmt.Errorf("invalid config %v: %w", file, err)
	}

	return config, config.Validate()
}

func (config Config) Validate() error {
	if !slices.Contains(Strategies, config.Strategy) {
		return fmt.Errorf("%q is not a valid strategy, expected one of %v", config.Strategy, Strategies)
	} else if !slices.Contains(sat.Names(), config.Solver) {
		return fmt.Errorf("%q is not a valid solver, expected one of %v", config.Solver, sat.Names())
	} else if config.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %d", config.Budget)
	} else if config.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", config.Timeout)
	} else if config.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", config.Workers)
	}

	if _, err := search.ParseBound(config.Bound); err != nil {
		return err
	}
	for name := range config.Solvers {
		if sat.DefaultPath(name) == "" {
			return fmt.Errorf("solver %q takes no executable path", name)
		}
	}
	return nil
}
