// Package search finds an optimal defense schedule by depth-first branch-and-bound over round states.
//
// Every node of the search tree is a round state; its children are the states produced by each legal
// placement of up to Budget unaffected vertices (combinations, largest first). A branch stops as soon as
// the horizon is reached or the fire is contained, and is pruned whenever its optimistic bound cannot
// beat the incumbent. The horizon is the eccentricity of the root: after that many rounds every vertex
// of the root's component is burning or defended.
package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/limaJavier/firefighter/pkg/game"
	"github.com/limaJavier/firefighter/pkg/graph"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidBudget = errors.New("search: defense budget must not be negative")
	// ErrNoFeasiblePlacement means a round offered no placement at all, not even the empty one.
	// The empty placement is always legal, so this signals a fault in the engine.
	ErrNoFeasiblePlacement = errors.New("search: no feasible placement")
)

type Result struct {
	Saved    int
	Schedule game.Schedule // One placement per round, padded to Horizon
	Optimal  bool          // False when the search was interrupted before proving optimality
	Horizon  int
	Nodes    int64
	Pruned   int64
}

type Engine struct {
	graph     *graph.Graph
	root      int
	opts      Options
	horizon   int
	baseline  int
	reachable []bool
	order     []int // Reachable vertices by distance from root, then by id
}

func New(g *graph.Graph, root int, opts ...Option) (*Engine, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Budget < 0 {
		return nil, ErrInvalidBudget
	}

	distances, err := g.Distances(root)
	if err != nil {
		return nil, err
	}

	reachable := lo.Map(distances, func(distance int, _ int) bool { return distance != graph.Unreachable })
	order := lo.Filter(lo.Range(g.Order()), func(v int, _ int) bool { return reachable[v] })
	slices.SortStableFunc(order, func(a, b int) int { return distances[a] - distances[b] })

	return &Engine{
		graph:     g,
		root:      root,
		opts:      options,
		horizon:   lo.Max(distances),
		baseline:  lo.Count(reachable, false),
		reachable: reachable,
		order:     order,
	}, nil
}

// Horizon is the number of rounds after which no state can change.
func (engine *Engine) Horizon() int {
	return engine.horizon
}

// Baseline is the objective of the empty schedule: only vertices out of the fire's reach survive.
func (engine *Engine) Baseline() int {
	return engine.baseline
}

// Solve runs the search until it completes, ctx is done or the time budget runs out. An interrupted
// search is not an error: it returns the incumbent with Optimal set to false.
func (engine *Engine) Solve(ctx context.Context) (Result, error) {
	if engine.opts.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, engine.opts.TimeBudget)
		defer cancel()
	}

	logger := engine.opts.Logger
	logger.Debug("search started",
		"vertices", engine.graph.Order(),
		"reachable", len(engine.order),
		"horizon", engine.horizon,
		"baseline", engine.baseline,
		"budget", engine.opts.Budget,
		"bound", engine.opts.Bound,
		"workers", engine.opts.Workers,
	)
	start := time.Now()

	initial, err := game.Initial(engine.graph, engine.root)
	if err != nil {
		return Result{}, err
	}

	var (
		shared      atomic.Int64
		counters    stats
		tracker     *Tracker
		interrupted bool
	)
	if engine.opts.Workers <= 1 || engine.terminal(initial, 1) {
		w := engine.newWorker(ctx, &shared, &counters)
		if err := w.descend(initial, 1); err != nil {
			return Result{}, err
		}
		tracker, interrupted = w.tracker, w.interrupted
	} else {
		tracker, interrupted, err = engine.solveParallel(ctx, initial, &shared, &counters)
		if err != nil {
			return Result{}, err
		}
	}

	saved, schedule := tracker.Best()
	result := Result{
		Saved:    saved,
		Schedule: schedule,
		Optimal:  !interrupted,
		Horizon:  engine.horizon,
		Nodes:    counters.nodes.Load(),
		Pruned:   counters.pruned.Load(),
	}

	logger.Debug("search finished",
		"saved", result.Saved,
		"optimal", result.Optimal,
		"nodes", result.Nodes,
		"pruned", result.Pruned,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return result, nil
}

// solveParallel hands every first-round placement to its own worker. Workers only share the best
// objective found so far, which tightens everyone's pruning.
func (engine *Engine) solveParallel(ctx context.Context, initial game.RoundState, shared *atomic.Int64, counters *stats) (*Tracker, bool, error) {
	placements := make([]game.Placement, 0)
	err := forEachPlacement(engine.candidates(initial), engine.opts.Budget, func(placement game.Placement) error {
		placements = append(placements, placement)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	counters.nodes.Add(1)
	trackers := make([]*Tracker, len(placements))
	interrupted := make([]bool, len(placements))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(engine.opts.Workers)
	for i, placement := range placements {
		group.Go(func() error {
			next, err := game.Transition(engine.graph, initial, placement, engine.opts.Budget)
			if err != nil {
				return fmt.Errorf("round 1: %w", err)
			}

			w := engine.newWorker(groupCtx, shared, counters)
			w.path = append(w.path, placement)
			if err := w.descend(next, 2); err != nil {
				return err
			}
			trackers[i], interrupted[i] = w.tracker, w.interrupted
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, false, err
	}

	// Ties go to the earliest branch, like in the sequential search
	best := NewTracker(engine.baseline, engine.horizon, nil)
	for _, tracker := range trackers {
		if tracker.best > best.best {
			best = tracker
		}
	}
	return best, lo.Contains(interrupted, true), nil
}

// terminal reports whether no later round can change the objective of state.
func (engine *Engine) terminal(state game.RoundState, round int) bool {
	return round > engine.horizon || state.Contained(engine.graph)
}

// upperBound never underestimates the best objective reachable from state.
func (engine *Engine) upperBound(state game.RoundState) int {
	bound := state.Saved()
	if engine.opts.Bound == BoundTight {
		// A threatened vertex escapes next round's fire only if it is placed now
		threatened := lo.CountBy(engine.order, func(v int) bool {
			return state.Status(v) == game.Unaffected && lo.SomeBy(engine.graph.Neighbors(v), state.Burning)
		})
		bound -= max(threatened-engine.opts.Budget, 0)
	}
	return bound
}

// candidates lists the unaffected vertices of the root's component, threatened ones first. Placing a
// vertex the fire can never reach cannot change the objective, so other components are left out.
func (engine *Engine) candidates(state game.RoundState) []int {
	threatened := make([]int, 0)
	rest := make([]int, 0)
	for _, v := range engine.order {
		if state.Status(v) != game.Unaffected {
			continue
		} else if lo.SomeBy(engine.graph.Neighbors(v), state.Burning) {
			threatened = append(threatened, v)
		} else {
			rest = append(rest, v)
		}
	}
	return append(threatened, rest...)
}

type stats struct {
	nodes  atomic.Int64
	pruned atomic.Int64
}

type worker struct {
	engine      *Engine
	ctx         context.Context
	tracker     *Tracker
	counters    *stats
	path        []game.Placement
	interrupted bool
}

func (engine *Engine) newWorker(ctx context.Context, shared *atomic.Int64, counters *stats) *worker {
	return &worker{
		engine:   engine,
		ctx:      ctx,
		tracker:  NewTracker(engine.baseline, engine.horizon, shared),
		counters: counters,
		path:     make([]game.Placement, 0, engine.horizon),
	}
}

// descend explores every schedule continuing w.path from state, which is the state before round is played.
func (w *worker) descend(state game.RoundState, round int) error {
	if w.interrupted {
		return nil
	}
	select {
	case <-w.ctx.Done():
		w.interrupted = true
		return nil
	default:
	}
	w.counters.nodes.Add(1)

	engine := w.engine
	if engine.terminal(state, round) {
		if w.tracker.Offer(state.Saved(), w.path) {
			engine.opts.Logger.Debug("incumbent improved", "saved", state.Saved(), "round", round-1)
		}
		return nil
	}

	if engine.opts.Bound != BoundNone && engine.upperBound(state) <= w.tracker.Bar() {
		w.counters.pruned.Add(1)
		return nil
	}

	expanded := false
	err := forEachPlacement(engine.candidates(state), engine.opts.Budget, func(placement game.Placement) error {
		next, err := game.Transition(engine.graph, state, placement, engine.opts.Budget)
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		expanded = true

		w.path = append(w.path, placement)
		err = w.descend(next, round+1)
		w.path = w.path[:len(w.path)-1]
		return err
	})
	if err != nil {
		return err
	} else if !expanded {
		return ErrNoFeasiblePlacement
	}
	return nil
}
