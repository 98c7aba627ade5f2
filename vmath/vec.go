package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector used for particle position and velocity
// Float math keeps the per-frame integration hot path conversion-free
type Vec2 struct {
	X, Y float64
}

func VAdd(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func VSub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func VScale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func VMagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func VMag(v Vec2) float64 {
	return math.Sqrt(VMagSq(v))
}

func VNormalize(v Vec2) Vec2 {
	mag := VMag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// VClampMag limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func VClampMag(v Vec2, maxMag float64) Vec2 {
	magSq := VMagSq(v)
	if magSq <= maxMag*maxMag || magSq == 0 {
		return v
	}
	return VScale(v, maxMag/math.Sqrt(magSq))
}

// VLerp interpolates between a and b, t in [0,1] is not enforced
func VLerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// VDist returns Euclidean distance between two points
func VDist(a, b Vec2) float64 {
	return VMag(VSub(a, b))
}
