package exocomets

import (
	"math"
)

const (
	deg2rad = math.Pi / 180
)

// Round rounds x to the provided number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

// Rad2deg converts a periastron longitude to degrees in [0, 360).
func Rad2deg(ω float64) float64 {
	deg := math.Mod(ω/deg2rad, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
