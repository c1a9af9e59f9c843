package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/scheduler"
)

// fakeClock hands out a settable instant.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

// always is a rule that is due whenever the clock has moved past lastRun.
type always struct{}

func (always) Due(now, lastRun time.Time) bool { return now.After(lastRun) }
func (always) String() string                  { return "always" }

// never is a rule that is never due.
type never struct{}

func (never) Due(time.Time, time.Time) bool { return false }
func (never) String() string                { return "never" }

func newScheduler(clock scheduler.Clock) *scheduler.Scheduler {
	return scheduler.New(clock, time.Minute, 5*time.Minute, zap.NewNop())
}

func TestScheduler_FiresInRegistrationOrder(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)}
	s := newScheduler(clock)

	var fired []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			fired = append(fired, name)
			return nil
		}
	}
	s.Register("second", always{}, record("second"))
	s.Register("first", always{}, record("first"))
	s.Register("skipped", never{}, record("skipped"))

	if faults := s.Evaluate(context.Background()); faults != 0 {
		t.Fatalf("expected no faults, got %d", faults)
	}
	if len(fired) != 2 || fired[0] != "second" || fired[1] != "first" {
		t.Fatalf("expected registration-order firing [second first], got %v", fired)
	}
}

func TestScheduler_DueTriggerFiresOncePerOccurrence(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)}
	s := newScheduler(clock)

	calls := 0
	s.Register("daily", scheduler.DailyAt(9, 0), func(context.Context) error {
		calls++
		return nil
	})

	// lastRun is zero before the first tick, so the 9:00 occurrence fires.
	s.Evaluate(context.Background())
	if calls != 1 {
		t.Fatalf("expected one firing, got %d", calls)
	}

	// Later ticks the same day see lastRun past the occurrence.
	clock.t = clock.t.Add(time.Minute)
	s.Evaluate(context.Background())
	clock.t = clock.t.Add(3 * time.Hour)
	s.Evaluate(context.Background())
	if calls != 1 {
		t.Fatalf("trigger re-fired within the same day: %d calls", calls)
	}

	// Next day's occurrence fires again.
	clock.t = clock.t.AddDate(0, 0, 1)
	s.Evaluate(context.Background())
	if calls != 2 {
		t.Fatalf("expected second firing next day, got %d calls", calls)
	}
}

func TestScheduler_CallbackErrorIsCountedAndIsolated(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)}
	s := newScheduler(clock)

	var survivorRan bool
	s.Register("failing", always{}, func(context.Context) error {
		return errors.New("provider down")
	})
	s.Register("survivor", always{}, func(context.Context) error {
		survivorRan = true
		return nil
	})

	if faults := s.Evaluate(context.Background()); faults != 1 {
		t.Fatalf("expected 1 fault, got %d", faults)
	}
	if !survivorRan {
		t.Fatal("a failing trigger must not stop later triggers from firing")
	}
}

func TestScheduler_CallbackPanicIsRecovered(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)}
	s := newScheduler(clock)

	s.Register("panicky", always{}, func(context.Context) error {
		panic("nil map write")
	})

	if faults := s.Evaluate(context.Background()); faults != 1 {
		t.Fatalf("expected the panic to count as 1 fault, got %d", faults)
	}

	// The trigger's lastRun advanced, so the panic does not re-fire on a
	// tick at the same instant.
	if faults := s.Evaluate(context.Background()); faults != 0 {
		t.Fatalf("expected no re-fire at the same instant, got %d faults", faults)
	}
}

func TestScheduler_RunStopsOnContextCancel(t *testing.T) {
	s := newScheduler(scheduler.SystemClock())
	s.Register("idle", never{}, func(context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
