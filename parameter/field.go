package parameter

// Ambient Field
const (
	// FieldPoolSize is the fixed particle slot count for the background field
	FieldPoolSize = 96

	// FieldDecayRateFloat is life lost per second (1/sec), slow fade for ambience
	FieldDecayRateFloat = 0.25

	// FieldSpawnBudgetPerSecond is the respawn cadence at full intensity
	FieldSpawnBudgetPerSecond = 24.0

	// FieldMinIntensity keeps a faint field alive even at zero scroll progress
	FieldMinIntensity = 0.15

	// FieldDriftSpeedFloat is the base horizontal drift magnitude (cells/sec)
	FieldDriftSpeedFloat = 2.0
)
