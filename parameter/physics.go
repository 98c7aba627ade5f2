package parameter

// Particle Integration
const (
	// ParticleDragFloat is the per-second velocity damping factor
	// Velocity is multiplied by drag^dt each step, so 1.0 disables damping
	ParticleDragFloat = 0.12

	// ParticleBuoyancyFloat is upward acceleration (cells/sec²), negative Y is up
	ParticleBuoyancyFloat = -1.5

	// ParticleJitterFloat is spawn velocity jitter amplitude (cells/sec)
	ParticleJitterFloat = 3.0

	// ScaleFloor is the minimum visual scale of a particle at zero life
	ScaleFloor = 0.2

	// ScaleRange is added to ScaleFloor proportionally to remaining life
	ScaleRange = 0.8
)
