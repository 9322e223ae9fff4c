package score

import "math"

// Clamp bounds v to [0, 100]. NaN collapses to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(100, math.Max(0, v))
}

// Normalize linearly scales value from [min, max] onto 0-100 and clamps the result.
// A degenerate range yields 0.
func Normalize(value, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return Clamp((value - min) / (max - min) * 100)
}

// ramp maps a raw count onto 0-100 with a floor and a saturation cap.
// Counts at or below floor are 0, counts at or above ceiling are 100.
func ramp(count, floor, ceiling float64) float64 {
	if count <= floor {
		return 0
	}
	if count >= ceiling {
		return 100
	}
	return (count - floor) / (ceiling - floor) * 100
}

// toScore rounds a clamped float into an integer score.
func toScore(v float64) int {
	return int(math.Round(Clamp(v)))
}
