package parameter

// Cursor Trail
const (
	// TrailPoolSize is the fixed particle slot count for the trail effect
	TrailPoolSize = 64

	// TrailSegmentSteps is how many particles are laid along one pointer movement segment
	TrailSegmentSteps = 8

	// TrailDecayRateFloat is life lost per second (1/sec), 2.0 means a 500ms trail
	TrailDecayRateFloat = 2.0

	// TrailVelocityCarryFloat scales pointer velocity into spawned particle bias
	TrailVelocityCarryFloat = 0.25
)
