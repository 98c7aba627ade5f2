package particle

import (
	"errors"
	"time"

	"github.com/lixenwraith/glimmer/parameter"
	"github.com/lixenwraith/glimmer/render"
	"github.com/lixenwraith/glimmer/vmath"
)

var (
	ErrEmptyPool  = errors.New("particle: pool size must be positive")
	ErrNilFactory = errors.New("particle: handle factory is required")
)

// Particle is one reusable slot of a fixed pool
// Slots are never allocated or freed individually; Spawn overwrites content
type Particle struct {
	Pos  vmath.Vec2
	Vel  vmath.Vec2
	Life float64 // remaining life in [0,1], 0 means dead

	// Active mirrors Life > 0, kept explicit for cheap scans
	Active bool

	visual render.Handle
}

// Pool is a fixed-capacity ring of particle slots
// O(1) spawn, O(size) advance, zero allocation in the steady state;
// rapid input can never grow the pool past its hard ceiling
type Pool struct {
	slots    []Particle
	next     int // round-robin spawn cursor, wraps at len(slots)
	live     int
	jitter   float64
	rng      *vmath.FastRand
	disposed bool
}

// NewPool allocates size slots, each given its visual by factory
// All slots start inactive
func NewPool(size int, factory render.HandleFactory) (*Pool, error) {
	if size <= 0 {
		return nil, ErrEmptyPool
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	p := &Pool{
		slots:  make([]Particle, size),
		jitter: parameter.ParticleJitterFloat,
		rng:    vmath.NewFastRand(uint64(time.Now().UnixNano())),
	}
	for i := range p.slots {
		p.slots[i].visual = factory(i)
	}
	return p, nil
}

// SetJitter overrides the spawn velocity jitter amplitude (cells/sec)
func (p *Pool) SetJitter(amp float64) {
	p.jitter = amp
}

// SetSeed reseeds the jitter source for deterministic replay
func (p *Pool) SetSeed(seed uint64) {
	p.rng = vmath.NewFastRand(seed)
}

// Spawn claims the next slot round-robin and overwrites it as a fresh
// particle at pos with velocityBias plus bounded jitter
// Never fails; a still-live slot may be overwritten early, trading strict
// lifetime for bounded memory
func (p *Pool) Spawn(pos, velocityBias vmath.Vec2) {
	if p.disposed {
		return
	}

	s := &p.slots[p.next]
	p.next = (p.next + 1) % len(p.slots)

	if !s.Active {
		p.live++
	}
	s.Active = true
	s.Life = 1.0
	s.Pos = pos
	s.Vel = vmath.Vec2{
		X: velocityBias.X + p.rng.Symmetric(p.jitter),
		Y: velocityBias.Y + p.rng.Symmetric(p.jitter),
	}

	s.visual.SetTransform(pos, Scale(1))
	s.visual.SetOpacity(Opacity(1))
}

// Advance steps every active slot by dt seconds
// Life decays by decayRate*dt; a slot whose life runs out is deactivated
// with its visual hidden, otherwise it is integrated and its visual updated
func (p *Pool) Advance(dt, decayRate float64, integ Integrator) {
	if p.disposed {
		return
	}

	for i := range p.slots {
		s := &p.slots[i]
		if !s.Active {
			continue
		}

		s.Life -= decayRate * dt
		if s.Life <= 0 {
			s.Life = 0
			s.Active = false
			p.live--
			s.visual.SetOpacity(0)
			continue
		}

		s.Pos, s.Vel = integ.Step(s.Pos, s.Vel, dt)
		s.visual.SetTransform(s.Pos, Scale(s.Life))
		s.visual.SetOpacity(Opacity(s.Life))
	}
}

// DisposeAll releases every visual; the pool is unusable afterward
func (p *Pool) DisposeAll() {
	if p.disposed {
		return
	}
	for i := range p.slots {
		p.slots[i].Active = false
		p.slots[i].Life = 0
		p.slots[i].visual.Dispose()
	}
	p.live = 0
	p.disposed = true
}

// LiveCount returns the number of active slots
func (p *Pool) LiveCount() int {
	return p.live
}

// Size returns the fixed slot count
func (p *Pool) Size() int {
	return len(p.slots)
}

// Slot returns a copy of slot i for inspection
func (p *Pool) Slot(i int) Particle {
	return p.slots[i]
}
