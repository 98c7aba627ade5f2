package engine

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glimmer/parameter"
)

// TickFunc receives the current effect time and the measured delta since the
// previous tick. Delta is measured, never assumed constant; dropped frames
// arrive as a larger dt
type TickFunc func(now time.Time, dt time.Duration)

// FrameScheduler drives effects on a fixed target interval
// Pause-aware without busy-wait; visibility loss pauses both the loop and
// the effect clock so nothing burns CPU in a hidden surface
type FrameScheduler struct {
	clock  *PausableClock
	logger *zap.Logger

	// Tick configuration
	tickInterval     time.Duration
	lastTickTime     time.Time // Last tick in effect time
	nextTickDeadline time.Time // Next deadline for drift correction
	mu               sync.RWMutex

	isPaused  atomic.Bool
	tickCount atomic.Uint64

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	unbind   func()
}

// NewFrameScheduler creates a scheduler ticking at interval
// interval <= 0 selects the default ~60Hz target; interval doubles as the
// frame-rate ceiling on fast hosts
func NewFrameScheduler(clock *PausableClock, interval time.Duration, logger *zap.Logger) *FrameScheduler {
	if interval <= 0 {
		interval = parameter.DefaultTickInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FrameScheduler{
		clock:        clock,
		logger:       logger,
		tickInterval: interval,
		stopChan:     make(chan struct{}),
	}
}

// BindVisibility pauses the scheduler while src reports hidden
// A nil source leaves the scheduler always-running
func (fs *FrameScheduler) BindVisibility(src VisibilitySource) {
	if src == nil {
		return
	}
	fs.unbind = src.Subscribe(func(visible bool) {
		if visible {
			fs.Resume()
		} else {
			fs.Pause()
		}
	})
}

// Start begins the tick loop; second Start and Start after Stop are no-ops
func (fs *FrameScheduler) Start(onTick TickFunc) {
	if onTick == nil {
		return
	}
	select {
	case <-fs.stopChan:
		return
	default:
	}
	if fs.running.CompareAndSwap(false, true) {
		fs.wg.Add(1)
		go fs.loop(onTick)
	}
}

// Stop halts the loop and joins it; idempotent
// stopChan closes even when the loop never started, so a later Start cannot
// launch a loop with no way to terminate it
func (fs *FrameScheduler) Stop() {
	fs.stopOnce.Do(func() {
		close(fs.stopChan)
		if fs.running.CompareAndSwap(true, false) {
			fs.wg.Wait()
		}
		if fs.unbind != nil {
			fs.unbind()
		}
	})
}

// Pause suspends ticking and freezes the effect clock
func (fs *FrameScheduler) Pause() {
	if fs.isPaused.CompareAndSwap(false, true) {
		fs.clock.Pause()
	}
}

// Resume continues ticking; the first deadline is pushed out one interval so
// a long pause never replays as a tick burst
func (fs *FrameScheduler) Resume() {
	if fs.isPaused.CompareAndSwap(true, false) {
		fs.clock.Resume()
		now := fs.clock.Now()
		fs.mu.Lock()
		fs.lastTickTime = now
		fs.nextTickDeadline = now.Add(fs.tickInterval)
		fs.mu.Unlock()
	}
}

// IsPaused returns current pause state
func (fs *FrameScheduler) IsPaused() bool {
	return fs.isPaused.Load()
}

// TickCount returns the number of completed ticks
func (fs *FrameScheduler) TickCount() uint64 {
	return fs.tickCount.Load()
}

// loop is the scheduler body, adapted to sleep long while paused and to
// snap the deadline forward instead of replaying missed ticks
func (fs *FrameScheduler) loop(onTick TickFunc) {
	defer fs.wg.Done()

	fs.mu.Lock()
	fs.lastTickTime = fs.clock.Now()
	fs.nextTickDeadline = fs.lastTickTime.Add(fs.tickInterval)
	fs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-fs.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if fs.isPaused.Load() {
			sleepDuration = fs.tickInterval * parameter.PausedSleepMultiplier
		} else {
			gameNow := fs.clock.Now()

			fs.mu.RLock()
			deadline := fs.nextTickDeadline
			fs.mu.RUnlock()

			if !gameNow.Before(deadline) {
				fs.mu.Lock()
				dt := gameNow.Sub(fs.lastTickTime)
				fs.lastTickTime = gameNow
				fs.nextTickDeadline = fs.nextTickDeadline.Add(fs.tickInterval)

				maxBehind := fs.tickInterval * parameter.MaxTickBehind
				if gameNow.Sub(fs.nextTickDeadline) > maxBehind {
					fs.nextTickDeadline = gameNow.Add(fs.tickInterval)
				}
				deadline = fs.nextTickDeadline
				fs.mu.Unlock()

				fs.safeTick(onTick, gameNow, dt)
				fs.tickCount.Add(1)

				sleepDuration = deadline.Sub(fs.clock.Now())
				if sleepDuration < 0 {
					sleepDuration = 0
				}
			} else {
				sleepDuration = deadline.Sub(gameNow)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-fs.stopChan:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				return
			}
		}
	}
}

// safeTick isolates callback panics; a broken effect must not take the host
// loop down with it
func (fs *FrameScheduler) safeTick(onTick TickFunc, now time.Time, dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			fs.logger.Error("tick callback panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	onTick(now, dt)
}
