package particle

import (
	"math"

	"github.com/lixenwraith/glimmer/parameter"
	"github.com/lixenwraith/glimmer/vmath"
)

// Integrator holds the explicit Euler step coefficients
// It is pure state in, state out, so physics is testable without a surface
type Integrator struct {
	// Drag is the per-second velocity retention in (0,1]; 1 disables damping
	// Applied as Drag^dt so the result is frame-rate independent
	Drag float64

	// Bias is constant external acceleration, e.g. buoyancy (cells/sec²)
	Bias vmath.Vec2
}

// DefaultIntegrator returns the tuning used by the stock effects
func DefaultIntegrator() Integrator {
	return Integrator{
		Drag: parameter.ParticleDragFloat,
		Bias: vmath.Vec2{Y: parameter.ParticleBuoyancyFloat},
	}
}

// Step advances one particle state by dt seconds
func (in Integrator) Step(pos, vel vmath.Vec2, dt float64) (vmath.Vec2, vmath.Vec2) {
	pos = vmath.VAdd(pos, vmath.VScale(vel, dt))

	if in.Drag > 0 && in.Drag < 1 {
		vel = vmath.VScale(vel, math.Pow(in.Drag, dt))
	}
	vel = vmath.VAdd(vel, vmath.VScale(in.Bias, dt))

	return pos, vel
}

// Opacity maps remaining life to visibility
// Squared so the fade is slow at first and rapid near death
func Opacity(life float64) float64 {
	life = vmath.Clamp01(life)
	return life * life
}

// Scale maps remaining life to visual size in [ScaleFloor, ScaleFloor+ScaleRange]
func Scale(life float64) float64 {
	return parameter.ScaleFloor + vmath.Clamp01(life)*parameter.ScaleRange
}
