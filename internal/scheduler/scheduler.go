// Package scheduler runs named triggers against calendar rules on a
// single-threaded, cooperative poll loop.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Trigger binds a calendar rule to a callback. Triggers are registered at
// startup and evaluated every tick in registration order; they are never
// removed before shutdown.
type Trigger struct {
	name    string
	rule    Rule
	fn      func(ctx context.Context) error
	lastRun time.Time
}

// Scheduler evaluates all registered triggers on a fixed poll interval and
// invokes due callbacks synchronously, one at a time. A long-running
// callback delays subsequent checks; nothing here runs concurrently. The
// loop is the last line of defense: an error or panic escaping a callback is
// logged and answered with a longer back-off sleep, never a crash.
type Scheduler struct {
	triggers     []*Trigger
	clock        Clock
	interval     time.Duration
	faultBackoff time.Duration
	logger       *zap.Logger
}

func New(clock Clock, interval, faultBackoff time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		clock:        clock,
		interval:     interval,
		faultBackoff: faultBackoff,
		logger:       logger,
	}
}

// Register adds a named trigger. Not safe to call after Run has started.
func (s *Scheduler) Register(name string, rule Rule, fn func(ctx context.Context) error) {
	s.triggers = append(s.triggers, &Trigger{name: name, rule: rule, fn: fn})
	s.logger.Info("trigger registered",
		zap.String("trigger", name),
		zap.Stringer("rule", rule),
	)
}

// Run blocks until ctx is cancelled. Occurrences that predate the loop start
// do not fire: each trigger's last run is initialized to startup time.
func (s *Scheduler) Run(ctx context.Context) {
	start := s.clock.Now()
	for _, t := range s.triggers {
		t.lastRun = start
	}

	s.logger.Info("scheduler started",
		zap.Int("triggers", len(s.triggers)),
		zap.Duration("poll_interval", s.interval),
	)

	for {
		// Cancellation is observed at the top of each iteration, after any
		// callback has persisted its state.
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		default:
		}

		faults := s.Evaluate(ctx)

		sleep := s.interval
		if faults > 0 {
			sleep = s.faultBackoff
			s.logger.Warn("backing off after trigger faults",
				zap.Int("faults", faults),
				zap.Duration("backoff", sleep),
			)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-time.After(sleep):
		}
	}
}

// Evaluate runs every due trigger once, in registration order, and returns
// the number of callbacks that failed or panicked. Run calls it once per
// tick; tests drive it directly with a fake clock.
func (s *Scheduler) Evaluate(ctx context.Context) int {
	faults := 0
	for _, t := range s.triggers {
		now := s.clock.Now()
		if !t.rule.Due(now, t.lastRun) {
			continue
		}
		t.lastRun = now

		s.logger.Info("trigger firing", zap.String("trigger", t.name))
		if err := s.invoke(ctx, t); err != nil {
			s.logger.Error("trigger failed",
				zap.String("trigger", t.name),
				zap.Error(err),
			)
			faults++
			continue
		}
		s.logger.Info("trigger completed", zap.String("trigger", t.name))
	}
	return faults
}

// invoke converts a callback panic into an error so the loop survives it.
func (s *Scheduler) invoke(ctx context.Context, t *Trigger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("trigger panic: %v", r)
		}
	}()
	return t.fn(ctx)
}
