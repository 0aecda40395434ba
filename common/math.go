package common

import "math"

// SinDeg returns the sine of an angle given in degrees.
func SinDeg(deg float64) float64 {
	return math.Sin(deg * math.Pi / 180)
}

// WrapDegrees folds deg into [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// ClampDelta caps a frame delta at max. Negative deltas become zero.
func ClampDelta(dt, max float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if max > 0 && dt > max {
		return max
	}
	return dt
}
