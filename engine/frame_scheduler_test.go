package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeVisibility is a minimal VisibilitySource for tests
type fakeVisibility struct {
	mu   sync.Mutex
	subs []func(bool)
}

func (f *fakeVisibility) Subscribe(fn func(visible bool)) func() {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
	fn(true)
	return func() {}
}

func (f *fakeVisibility) set(visible bool) {
	f.mu.Lock()
	subs := append([]func(bool){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(visible)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSchedulerTicksAndMeasuresDelta(t *testing.T) {
	clock := NewPausableClock()
	fs := NewFrameScheduler(clock, 5*time.Millisecond, nil)

	var badDelta atomic.Bool
	fs.Start(func(now time.Time, dt time.Duration) {
		if dt <= 0 {
			badDelta.Store(true)
		}
	})
	defer fs.Stop()

	waitFor(t, time.Second, func() bool { return fs.TickCount() >= 3 })
	if badDelta.Load() {
		t.Error("observed non-positive measured delta")
	}
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 5*time.Millisecond, nil)
	fs.Start(func(time.Time, time.Duration) {})

	fs.Stop()
	fs.Stop()

	count := fs.TickCount()
	time.Sleep(30 * time.Millisecond)
	if fs.TickCount() != count {
		t.Error("ticks continued after Stop")
	}
}

func TestSchedulerStartTwiceRunsOneLoop(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 5*time.Millisecond, nil)

	var calls atomic.Int64
	tick := func(time.Time, time.Duration) { calls.Add(1) }
	fs.Start(tick)
	fs.Start(tick)

	waitFor(t, time.Second, func() bool { return calls.Load() >= 2 })
	fs.Stop()

	if calls.Load() != int64(fs.TickCount()) {
		t.Errorf("calls %d != tick count %d, second loop leaked", calls.Load(), fs.TickCount())
	}
}

func TestSchedulerPauseFreezesTickCounter(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 5*time.Millisecond, nil)
	fs.Start(func(time.Time, time.Duration) {})
	defer fs.Stop()

	waitFor(t, time.Second, func() bool { return fs.TickCount() >= 2 })

	fs.Pause()
	// The tick in flight may still complete; sample after a settle period
	time.Sleep(20 * time.Millisecond)
	frozen := fs.TickCount()
	time.Sleep(60 * time.Millisecond)

	if got := fs.TickCount(); got != frozen {
		t.Errorf("tick counter advanced while paused: %d -> %d", frozen, got)
	}

	fs.Resume()
	waitFor(t, time.Second, func() bool { return fs.TickCount() > frozen })
}

func TestSchedulerSurvivesPanickingTick(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 5*time.Millisecond, nil)

	var calls atomic.Int64
	fs.Start(func(time.Time, time.Duration) {
		if calls.Add(1) == 1 {
			panic("broken effect")
		}
	})
	defer fs.Stop()

	waitFor(t, time.Second, func() bool { return calls.Load() >= 3 })
}

func TestSchedulerVisibilityBinding(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 5*time.Millisecond, nil)
	vis := &fakeVisibility{}
	fs.BindVisibility(vis)

	fs.Start(func(time.Time, time.Duration) {})
	defer fs.Stop()

	waitFor(t, time.Second, func() bool { return fs.TickCount() >= 2 })

	vis.set(false)
	if !fs.IsPaused() {
		t.Fatal("hidden notification did not pause the scheduler")
	}
	time.Sleep(20 * time.Millisecond)
	frozen := fs.TickCount()
	time.Sleep(60 * time.Millisecond)
	if got := fs.TickCount(); got != frozen {
		t.Errorf("ticks while hidden: %d -> %d", frozen, got)
	}

	vis.set(true)
	if fs.IsPaused() {
		t.Fatal("visible notification did not resume the scheduler")
	}
	waitFor(t, time.Second, func() bool { return fs.TickCount() > frozen })
}

func TestSchedulerStopBeforeStartPreventsLaterStart(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 5*time.Millisecond, nil)
	fs.Stop()

	var calls atomic.Int64
	fs.Start(func(time.Time, time.Duration) { calls.Add(1) })

	time.Sleep(40 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("stopped scheduler ticked %d times after a late Start", got)
	}
	fs.Stop()
}

func TestSchedulerNilVisibilitySourceIsIgnored(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 5*time.Millisecond, nil)
	fs.BindVisibility(nil)

	fs.Start(func(time.Time, time.Duration) {})
	defer fs.Stop()

	waitFor(t, time.Second, func() bool { return fs.TickCount() >= 1 })
}

func TestSchedulerNilTickIsNoop(t *testing.T) {
	fs := NewFrameScheduler(NewPausableClock(), 5*time.Millisecond, nil)
	fs.Start(nil)
	fs.Stop()
}
