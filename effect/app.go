package effect

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glimmer/config"
	"github.com/lixenwraith/glimmer/engine"
	"github.com/lixenwraith/glimmer/input"
	"github.com/lixenwraith/glimmer/render"
	"github.com/lixenwraith/glimmer/scroll"
)

// App owns one explicitly constructed instance of each effect with an
// explicit start/stop lifecycle. Nothing here is a package-level singleton;
// whoever needs an effect receives it from the App by reference
type App struct {
	// Input events arrive on the host event loop goroutine; one mutex
	// serializes them with the tick so spawn always lands before advance
	mu sync.Mutex

	Logger    *zap.Logger
	Clock     *engine.PausableClock
	Scheduler *engine.FrameScheduler
	Canvas    render.Canvas
	Publisher *scroll.Publisher
	Trail     *Trail
	Field     *Field

	tracker input.Tracker
}

// NewApp wires clock, scheduler, publisher and effects from cfg
// A failing effect constructor aborts; a degraded canvas does not
func NewApp(cfg config.Config, canvas render.Canvas, source scroll.OffsetSource, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clock := engine.NewPausableClock()
	sched := engine.NewFrameScheduler(clock, cfg.TickInterval(), logger)
	pub := scroll.NewPublisher(source, cfg.QuietPeriod(), logger)

	trailOpts := DefaultTrailOptions()
	trailOpts.PoolSize = cfg.Trail.PoolSize
	trailOpts.DecayRate = cfg.Trail.DecayRate
	trailOpts.SegmentSteps = cfg.Trail.SegmentSteps
	trailOpts.VelocityCarry = cfg.Trail.VelocityCarry

	trail, err := NewTrail(trailOpts, canvas.Factory())
	if err != nil {
		return nil, err
	}

	fieldOpts := DefaultFieldOptions()
	fieldOpts.PoolSize = cfg.Field.PoolSize
	fieldOpts.DecayRate = cfg.Field.DecayRate
	fieldOpts.SpawnBudget = cfg.Field.SpawnBudget
	fieldOpts.MinIntensity = cfg.Field.MinIntensity
	fieldOpts.DriftSpeed = cfg.Field.DriftSpeed

	field, err := NewField(fieldOpts, canvas.Factory())
	if err != nil {
		trail.Dispose()
		return nil, err
	}

	w, h := canvas.Size()
	field.SetBounds(w, h)
	field.BindScroll(pub)

	return &App{
		Logger:    logger,
		Clock:     clock,
		Scheduler: sched,
		Canvas:    canvas,
		Publisher: pub,
		Trail:     trail,
		Field:     field,
	}, nil
}

// Start begins ticking. present draws the frame and runs on the tick
// goroutine after both effects advanced, inside the input mutex
func (a *App) Start(present engine.TickFunc) {
	a.Scheduler.Start(func(now time.Time, dt time.Duration) {
		sec := dt.Seconds()

		a.mu.Lock()
		a.Trail.Advance(sec)
		a.Field.Advance(sec)
		if present != nil {
			present(now, dt)
		}
		a.mu.Unlock()
	})
}

// Stop tears everything down; idempotent through the scheduler
func (a *App) Stop() {
	a.Scheduler.Stop()
	a.Publisher.Close()

	a.mu.Lock()
	a.Trail.Dispose()
	a.Field.Dispose()
	a.mu.Unlock()

	a.Canvas.Fini()
}

// BindVisibility wires hidden/visible notifications into pause/resume
func (a *App) BindVisibility(src engine.VisibilitySource) {
	a.Scheduler.BindVisibility(src)
}

// PointerMoved feeds a pointer sample; movement spawns trail particles
func (a *App) PointerMoved(p input.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tracker.Update(p)
	if a.tracker.Moved() {
		from, to := a.tracker.Segment()
		a.Trail.PointerMoved(from, to)
	}
}

// Pointer returns the latest pointer sample
func (a *App) Pointer() input.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.Current()
}

// Resize updates the field spawn extent after a surface resize
func (a *App) Resize(w, h int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Field.SetBounds(w, h)
}
