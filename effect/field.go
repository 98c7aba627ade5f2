package effect

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/glimmer/parameter"
	"github.com/lixenwraith/glimmer/particle"
	"github.com/lixenwraith/glimmer/render"
	"github.com/lixenwraith/glimmer/scroll"
	"github.com/lixenwraith/glimmer/vmath"
)

// FieldOptions tunes the ambient background field
type FieldOptions struct {
	PoolSize     int
	DecayRate    float64 // life lost per second
	SpawnBudget  float64 // respawns per second at full intensity
	MinIntensity float64 // floor so the field never fully dies
	DriftSpeed   float64 // base horizontal drift (cells/sec)
	Integrator   particle.Integrator
}

// DefaultFieldOptions returns the stock tuning
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{
		PoolSize:     parameter.FieldPoolSize,
		DecayRate:    parameter.FieldDecayRateFloat,
		SpawnBudget:  parameter.FieldSpawnBudgetPerSecond,
		MinIntensity: parameter.FieldMinIntensity,
		DriftSpeed:   parameter.FieldDriftSpeedFloat,
		Integrator:   particle.DefaultIntegrator(),
	}
}

// fieldSeq numbers Field instances so each gets its own subscriber id
var fieldSeq atomic.Uint64

// Field keeps slow ambient particles drifting across the surface
// Intensity scales the respawn cadence; scroll progress drives intensity
type Field struct {
	pool  *particle.Pool
	opts  FieldOptions
	rng   *vmath.FastRand
	subID string

	w, h int
	debt float64 // fractional spawns carried between ticks

	// Scroll events arrive on the publisher's delivery goroutine while
	// Advance runs on the tick goroutine; mu covers the shared tuning
	mu        sync.Mutex
	intensity float64
	driftSign float64
}

// NewField allocates the field's fixed pool against factory
func NewField(opts FieldOptions, factory render.HandleFactory) (*Field, error) {
	pool, err := particle.NewPool(opts.PoolSize, factory)
	if err != nil {
		return nil, err
	}
	return &Field{
		pool:      pool,
		opts:      opts,
		rng:       vmath.NewFastRand(uint64(time.Now().UnixNano())),
		subID:     fmt.Sprintf("effect.field.%d", fieldSeq.Add(1)),
		intensity: opts.MinIntensity,
		driftSign: 1,
	}, nil
}

// SetBounds sets the spawn extent in cells
func (f *Field) SetBounds(w, h int) {
	f.w, f.h = w, h
}

// SetSeed reseeds spawn placement for deterministic tests
func (f *Field) SetSeed(seed uint64) {
	f.rng = vmath.NewFastRand(seed)
}

// SetIntensity clamps and stores the respawn intensity
func (f *Field) SetIntensity(v float64) {
	f.mu.Lock()
	f.intensity = vmath.Clamp(v, f.opts.MinIntensity, 1)
	f.mu.Unlock()
}

// Intensity returns the current respawn intensity
func (f *Field) Intensity() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.intensity
}

// BindScroll subscribes the field to scroll state: progress raises intensity,
// direction flips the drift
func (f *Field) BindScroll(pub *scroll.Publisher) {
	pub.Subscribe(f.subID, func(st scroll.State) {
		f.mu.Lock()
		f.intensity = vmath.Clamp(
			f.opts.MinIntensity+(1-f.opts.MinIntensity)*st.Progress,
			f.opts.MinIntensity, 1)
		if st.Direction == scroll.DirectionUp {
			f.driftSign = -1
		} else {
			f.driftSign = 1
		}
		f.mu.Unlock()
	})
}

// Advance accrues the spawn budget and steps the pool by dt seconds
func (f *Field) Advance(dt float64) {
	f.mu.Lock()
	intensity := f.intensity
	sign := f.driftSign
	f.mu.Unlock()

	if f.w > 0 && f.h > 0 {
		f.debt += f.opts.SpawnBudget * intensity * dt
		for f.debt >= 1 {
			f.debt--
			f.spawnOne(sign)
		}
	}
	f.pool.Advance(dt, f.opts.DecayRate, f.opts.Integrator)
}

func (f *Field) spawnOne(sign float64) {
	pos := vmath.Vec2{
		X: f.rng.Range(0, float64(f.w)),
		Y: f.rng.Range(0, float64(f.h)),
	}
	bias := vmath.Vec2{
		X: sign * f.rng.Range(0.5, 1) * f.opts.DriftSpeed,
	}
	f.pool.Spawn(pos, bias)
}

// Dispose releases all field visuals
func (f *Field) Dispose() {
	f.pool.DisposeAll()
}

// Pool exposes the underlying pool for inspection
func (f *Field) Pool() *particle.Pool {
	return f.pool
}
