package parameter

// Proximity / Reveal
const (
	// ProximityRadiusFloat is the distance (cells) at which glow intensity reaches zero
	ProximityRadiusFloat = 12.0

	// RevealThresholdFloat is the intensity above which a hidden element is shown
	RevealThresholdFloat = 0.1
)
