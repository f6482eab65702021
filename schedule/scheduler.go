// Package schedule provides cancellable timers whose callbacks run serialized behind the lock of the state they mutate.
package schedule

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Scheduler creates timers that share one clock and one lock. Callbacks run with the lock held, so they may mutate
// the guarded state exactly like any locked operation does.
type Scheduler struct {
	clock   clock.Clock
	locker  sync.Locker
	logger  *zap.Logger
	onPanic func(recovered interface{})
}

// Creates a new scheduler. The locker must be the lock that guards everything the timer callbacks touch.
func New(clk clock.Clock, locker sync.Locker, logger *zap.Logger) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{clock: clk, locker: locker, logger: logger}
}

// OnPanic installs the hook called, with the lock held, after a callback panicked. The hook is expected to abandon the
// guarded state.
func (s *Scheduler) OnPanic(hook func(recovered interface{})) {
	s.onPanic = hook
}

// NewTimer returns an idle timer. The name only shows up in logs.
func (s *Scheduler) NewTimer(name string) *Timer {
	return &Timer{scheduler: s, name: name}
}

func (s *Scheduler) fire(t *Timer, generation uint64, fn func()) {
	s.locker.Lock()
	defer s.locker.Unlock()

	if !t.armed || t.generation != generation {
		return
	}
	t.armed = false

	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.Error("Timer callback panicked",
				zap.String("timer", t.name),
				zap.Any("panic", recovered),
				zap.Stack("stack"))
			if s.onPanic != nil {
				s.onPanic(recovered)
			}
		}
	}()

	s.logger.Debug("Timer fired", zap.String("timer", t.name))
	fn()
}

// Timer is a one-shot resumption. All methods must be called with the scheduler's lock held.
type Timer struct {
	scheduler  *Scheduler
	name       string
	timer      *clock.Timer
	generation uint64
	armed      bool
}

// Arm cancels any pending firing and schedules fn to run after d.
func (t *Timer) Arm(d time.Duration, fn func()) {
	t.Cancel()

	t.generation++
	generation := t.generation
	t.armed = true
	t.timer = t.scheduler.clock.AfterFunc(d, func() {
		t.scheduler.fire(t, generation, fn)
	})
}

// Cancel suppresses the pending firing, if any, and reports whether there was one. Cancelling a timer that already
// fired, or was never armed, does nothing.
func (t *Timer) Cancel() bool {
	if !t.armed {
		return false
	}

	t.armed = false
	t.generation++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	return true
}

// Armed reports whether a firing is pending.
func (t *Timer) Armed() bool {
	return t.armed
}
