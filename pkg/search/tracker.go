package search

import (
	"sync/atomic"

	"github.com/limaJavier/firefighter/pkg/game"
)

// Tracker keeps the incumbent of one depth-first search: the best objective seen so far and the schedule
// reaching it. A Tracker belongs to a single goroutine; workers exchange progress through the shared
// best value only.
type Tracker struct {
	horizon  int
	best     int
	schedule game.Schedule
	shared   *atomic.Int64
}

// NewTracker starts from the objective of the empty schedule, which is always achievable.
func NewTracker(baseline, horizon int, shared *atomic.Int64) *Tracker {
	if shared == nil {
		shared = &atomic.Int64{}
	}
	raise(shared, baseline)

	return &Tracker{
		horizon:  horizon,
		best:     baseline,
		schedule: game.Pad(nil, horizon),
		shared:   shared,
	}
}

// Offer records a terminal evaluation. Only a strict improvement replaces the incumbent, so the first
// schedule found for a given objective is kept.
func (tracker *Tracker) Offer(objective int, prefix []game.Placement) bool {
	if objective <= tracker.best {
		return false
	}
	tracker.best = objective
	tracker.schedule = game.Pad(prefix, tracker.horizon)
	raise(tracker.shared, objective)
	return true
}

// Bar is the value a subtree must beat to be worth exploring: the best objective known to any worker.
func (tracker *Tracker) Bar() int {
	return max(tracker.best, int(tracker.shared.Load()))
}

func (tracker *Tracker) Best() (int, game.Schedule) {
	return tracker.best, tracker.schedule
}

func raise(shared *atomic.Int64, value int) {
	for {
		current := shared.Load()
		if int64(value) <= current || shared.CompareAndSwap(current, int64(value)) {
			return
		}
	}
}
