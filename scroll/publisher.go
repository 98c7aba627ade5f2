package scroll

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glimmer/parameter"
	"github.com/lixenwraith/glimmer/vmath"
)

var ErrUnknownTarget = errors.New("scroll: target did not resolve to an offset")

// Target resolves to an absolute offset at scroll time
type Target interface {
	ResolveOffset() (offset float64, ok bool)
}

// OffsetTarget is a plain absolute offset target
type OffsetTarget float64

func (t OffsetTarget) ResolveOffset() (float64, bool) {
	return float64(t), true
}

type subscriber struct {
	id string
	fn func(State)
}

// Publisher converts raw scroll offsets into normalized State and fans it
// out to subscribers in subscription order
type Publisher struct {
	mu     sync.Mutex
	logger *zap.Logger

	state      State
	lastOffset float64
	subs       []subscriber

	// Debounce: one pending timer, canceled and rearmed on every event
	// gen invalidates a timer that already fired but has not delivered yet;
	// Stop alone cannot cancel those
	quiet time.Duration
	timer *time.Timer
	gen   uint64

	source OffsetSource
	smooth SmoothScroller
}

// NewPublisher creates a publisher over the native source
// quiet <= 0 selects the default quiet period
func NewPublisher(source OffsetSource, quiet time.Duration, logger *zap.Logger) *Publisher {
	if quiet <= 0 {
		quiet = parameter.ScrollQuietPeriod
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		logger: logger,
		quiet:  quiet,
		source: source,
	}
}

// Acquire negotiates the optional smooth scroller once at startup
// probe is retried until it succeeds or timeout elapses; the typed result is
// recorded so callers branch a single time, not per call
func (p *Publisher) Acquire(probe func() (SmoothScroller, bool), timeout time.Duration) Capability {
	if probe == nil {
		return Capability{Available: false, Err: ErrSmoothUnavailable}
	}

	deadline := time.Now().Add(timeout)
	for {
		if s, ok := probe(); ok && s != nil {
			p.mu.Lock()
			p.smooth = s
			p.mu.Unlock()
			return Capability{Available: true}
		}
		if timeout <= 0 || !time.Now().Before(deadline) {
			p.logger.Warn("smooth scroll unavailable, deriving progress from native offsets",
				zap.Duration("waited", timeout))
			return Capability{Available: false, Err: ErrSmoothUnavailable}
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Feed publishes the state derived from a raw offset event
// progress = offset/maxExtent clamped to [0,1]; direction from the delta
// sign, unchanged on a zero delta
func (p *Publisher) Feed(offset, maxExtent float64) State {
	p.mu.Lock()

	if maxExtent > 0 {
		p.state.Progress = vmath.Clamp01(offset / maxExtent)
	} else {
		p.state.Progress = 0
	}

	delta := offset - p.lastOffset
	p.lastOffset = offset
	if delta > 0 {
		p.state.Direction = DirectionDown
	} else if delta < 0 {
		p.state.Direction = DirectionUp
	}

	p.state.Scrolling = true

	// Last-write-wins: each event cancels the pending quiet transition
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.quiet, func() { p.quietElapsed(gen) })

	st := p.state
	subs := p.snapshotLocked()
	p.mu.Unlock()

	p.deliver(subs, st)
	return st
}

// Sync reads the active offset source and publishes the derived state
// Uses the smooth scroller when acquired, native metrics otherwise
func (p *Publisher) Sync() State {
	p.mu.Lock()
	smooth := p.smooth
	source := p.source
	p.mu.Unlock()

	if smooth != nil {
		return p.Feed(smooth.Offset(), smooth.MaxExtent())
	}
	if source != nil {
		return p.Feed(source.Offset(), source.MaxExtent())
	}
	return p.State()
}

// ScrollTo requests an animated scroll to target
// Falls back to an instant native jump when the smooth scroller is absent or
// failing; only an unresolvable target is an error
func (p *Publisher) ScrollTo(target Target, d time.Duration) error {
	offset, ok := target.ResolveOffset()
	if !ok {
		return ErrUnknownTarget
	}
	if d <= 0 {
		d = parameter.ScrollToDefaultDuration
	}

	p.mu.Lock()
	smooth := p.smooth
	source := p.source
	p.mu.Unlock()

	if smooth != nil {
		if err := smooth.AnimateTo(offset, d); err == nil {
			p.Sync()
			return nil
		} else {
			p.logger.Warn("animated scroll failed, jumping instantly",
				zap.Float64("offset", offset), zap.Error(err))
		}
	}

	if source != nil {
		source.SetOffset(offset)
		p.Feed(source.Offset(), source.MaxExtent())
		return nil
	}

	// No source at all: still honor the contract by publishing the target
	p.Feed(offset, offset)
	return nil
}

// Subscribe registers fn under id; delivery is synchronous, in subscription
// order. Re-subscribing an id replaces the callback in its original slot
func (p *Publisher) Subscribe(id string, fn func(State)) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.subs {
		if p.subs[i].id == id {
			p.subs[i].fn = fn
			return
		}
	}
	p.subs = append(p.subs, subscriber{id: id, fn: fn})
}

// Unsubscribe removes id; unknown ids are ignored
func (p *Publisher) Unsubscribe(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.subs {
		if p.subs[i].id == id {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			return
		}
	}
}

// State returns a copy of the current snapshot
func (p *Publisher) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close cancels the pending quiet transition, including one already in flight
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// quietElapsed publishes Scrolling=false for generation gen
// A stale generation means a newer event or Close raced the fired timer;
// its transition must not be delivered
func (p *Publisher) quietElapsed(gen uint64) {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.state.Scrolling = false
	st := p.state
	subs := p.snapshotLocked()
	p.mu.Unlock()

	p.deliver(subs, st)
}

func (p *Publisher) snapshotLocked() []subscriber {
	subs := make([]subscriber, len(p.subs))
	copy(subs, p.subs)
	return subs
}

func (p *Publisher) deliver(subs []subscriber, st State) {
	for _, s := range subs {
		p.safeNotify(s, st)
	}
}

// safeNotify isolates a panicking subscriber from the rest of the fan-out
func (p *Publisher) safeNotify(s subscriber, st State) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("scroll subscriber panicked",
				zap.String("id", s.id),
				zap.Any("panic", r))
		}
	}()
	s.fn(st)
}
