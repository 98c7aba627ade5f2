package parameter

import (
	"time"
)

// Frame Scheduler
const (
	// DefaultTickInterval targets ~60 ticks per second
	DefaultTickInterval = 16 * time.Millisecond

	// PausedSleepMultiplier stretches the scheduler sleep while paused to save CPU
	PausedSleepMultiplier = 4

	// MaxTickBehind is how far the deadline may lag before it snaps forward
	// instead of replaying missed ticks after a stall
	MaxTickBehind = 2
)
