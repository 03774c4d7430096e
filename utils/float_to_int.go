// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 maps a normalized sample in [-1,1] to the nearest int16,
// clamping out-of-range input.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(math.Round(float64(x) * 32767.0))
}

// Int16ToFloat32 is the inverse of Float32ToInt16 for in-range values.
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32767.0
}

// SaturateInt16 rounds an unnormalized amplitude to the nearest int16,
// saturating at the type bounds. NaN maps to 0.
func SaturateInt16(x float32) int16 {
	if x != x {
		return 0
	}

	r := math.Round(float64(x))
	switch {
	case r > math.MaxInt16:
		return math.MaxInt16
	case r < math.MinInt16:
		return math.MinInt16
	}

	return int16(r)
}
