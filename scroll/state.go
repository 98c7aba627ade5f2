package scroll

// Direction is the vertical scroll direction derived from offset deltas
type Direction uint8

const (
	DirectionDown Direction = iota
	DirectionUp
)

// String returns human-readable direction name
func (d Direction) String() string {
	if d == DirectionUp {
		return "Up"
	}
	return "Down"
}

// State is the published scroll snapshot
// Mutated exclusively by the publisher; subscribers receive copies
type State struct {
	// Progress is normalized position in [0,1] within the scrollable range
	Progress float64

	// Direction reflects the sign of the last non-zero offset delta
	Direction Direction

	// Scrolling is true from the first event until a quiet period elapses
	Scrolling bool
}
