package search

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Bound selects the optimistic estimate used to prune subtrees.
type Bound int

const (
	// BoundNone disables pruning. Only useful to cross-check the other bounds.
	BoundNone Bound = iota
	// BoundSimple assumes every vertex not yet burning survives.
	BoundSimple
	// BoundTight additionally subtracts the threatened vertices that cannot all be defended next round.
	BoundTight
)

var bounds = map[string]Bound{
	"none":   BoundNone,
	"simple": BoundSimple,
	"tight":  BoundTight,
}

func ParseBound(name string) (Bound, error) {
	bound, ok := bounds[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%q is not a valid bound", name)
	}
	return bound, nil
}

func (bound Bound) String() string {
	for name, value := range bounds {
		if value == bound {
			return name
		}
	}
	return fmt.Sprintf("bound(%d)", int(bound))
}

type Options struct {
	Budget     int           // Vertices that may be newly defended each round
	Bound      Bound         // Pruning policy
	Workers    int           // Goroutines splitting the first-round branches; 1 searches sequentially
	TimeBudget time.Duration // Zero means unlimited
	Logger     *log.Logger
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Budget:  1,
		Bound:   BoundTight,
		Workers: 1,
		Logger:  log.New(io.Discard),
	}
}

func WithBudget(budget int) Option {
	return func(o *Options) { o.Budget = budget }
}

func WithBound(bound Bound) Option {
	return func(o *Options) { o.Bound = bound }
}

func WithWorkers(workers int) Option {
	return func(o *Options) { o.Workers = max(workers, 1) }
}

func WithTimeBudget(budget time.Duration) Option {
	return func(o *Options) { o.TimeBudget = budget }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
