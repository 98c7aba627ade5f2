package effect

import (
	"github.com/lixenwraith/glimmer/parameter"
	"github.com/lixenwraith/glimmer/particle"
	"github.com/lixenwraith/glimmer/render"
	"github.com/lixenwraith/glimmer/vmath"
)

// TrailOptions tunes the cursor trail effect
type TrailOptions struct {
	PoolSize      int
	DecayRate     float64 // life lost per second
	SegmentSteps  int     // particles laid along one movement segment
	VelocityCarry float64 // share of pointer velocity carried into particles
	Integrator    particle.Integrator
}

// DefaultTrailOptions returns the stock tuning
func DefaultTrailOptions() TrailOptions {
	return TrailOptions{
		PoolSize:      parameter.TrailPoolSize,
		DecayRate:     parameter.TrailDecayRateFloat,
		SegmentSteps:  parameter.TrailSegmentSteps,
		VelocityCarry: parameter.TrailVelocityCarryFloat,
		Integrator:    particle.DefaultIntegrator(),
	}
}

// Trail renders a fading particle wake behind the pointer
type Trail struct {
	pool *particle.Pool
	opts TrailOptions
}

// NewTrail allocates the trail's fixed pool against factory
func NewTrail(opts TrailOptions, factory render.HandleFactory) (*Trail, error) {
	pool, err := particle.NewPool(opts.PoolSize, factory)
	if err != nil {
		return nil, err
	}
	return &Trail{pool: pool, opts: opts}, nil
}

// PointerMoved lays particles along the movement segment from→to
// Later points carry more of the pointer velocity, so the wake stretches in
// the movement direction
func (t *Trail) PointerMoved(from, to vmath.Vec2) {
	steps := t.opts.SegmentSteps
	if steps < 1 {
		steps = 1
	}
	delta := vmath.VSub(to, from)
	bias := vmath.VScale(delta, t.opts.VelocityCarry)

	for i := 1; i <= steps; i++ {
		progress := float64(i) / float64(steps)
		pos := vmath.VLerp(from, to, progress)
		t.pool.Spawn(pos, vmath.VScale(bias, progress))
	}
}

// Advance steps the trail by dt seconds
func (t *Trail) Advance(dt float64) {
	t.pool.Advance(dt, t.opts.DecayRate, t.opts.Integrator)
}

// Dispose releases all trail visuals
func (t *Trail) Dispose() {
	t.pool.DisposeAll()
}

// Pool exposes the underlying pool for inspection
func (t *Trail) Pool() *particle.Pool {
	return t.pool
}
