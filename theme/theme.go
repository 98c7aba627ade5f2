package theme

// Theme selects the particle accent palette
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
	Mono  Theme = "mono"
)

// Accent returns the particle tint for the theme, components in [0,1]
func (t Theme) Accent() (r, g, b float64) {
	switch t {
	case Light:
		return 1.0, 0.85, 0.4
	case Mono:
		return 0.8, 0.8, 0.8
	default:
		return 0.4, 0.75, 1.0
	}
}

// Next cycles through the themes in a fixed order
func Next(t Theme) Theme {
	switch t {
	case Dark:
		return Light
	case Light:
		return Mono
	default:
		return Dark
	}
}

// Valid reports whether t names a known theme
func Valid(t Theme) bool {
	switch t {
	case Dark, Light, Mono:
		return true
	}
	return false
}
