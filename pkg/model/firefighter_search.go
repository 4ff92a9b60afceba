package model

import (
	"context"

	"github.com/limaJavier/firefighter/pkg/search"
)

type searchFirefighter struct {
	opts []search.Option
}

// NewSearchFirefighter solves instances with the branch-and-bound engine. The budget always comes from the
// instance; opts configure everything else.
func NewSearchFirefighter(opts ...search.Option) Firefighter {
	return &searchFirefighter{
		opts: opts,
	}
}

func (firefighter *searchFirefighter) Solve(ctx context.Context, instance Instance) (Solution, error) {
	opts := append(append([]search.Option{}, firefighter.opts...), search.WithBudget(instance.Budget))

	engine, err := search.New(instance.Graph, instance.Root, opts...)
	if err != nil {
		return Solution{}, err
	}

	result, err := engine.Solve(ctx)
	if err != nil {
		return Solution{}, err
	}

	return Solution{
		Saved:    result.Saved,
		Schedule: result.Schedule,
		Optimal:  result.Optimal,
		Horizon:  result.Horizon,
	}, nil
}

func (firefighter *searchFirefighter) Verify(solution Solution, instance Instance) bool {
	return verify(solution, instance)
}
