package exocomets

import (
	"fmt"
	"strings"
)

const (
	// G is the gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67430e-11
	// SolarRadius is the nominal solar radius in meters.
	SolarRadius = 6.957e8
	// SolarMass is the nominal solar mass in kilograms.
	SolarMass = 1.98847e30
	// SpeedOfLight in m/s.
	SpeedOfLight = 299792458
)

// Star defines the host star of the exocomets.
type Star struct {
	Name   string
	Radius float64 // meters
	Mass   float64 // kilograms
}

// NewStar returns a star from its radius and mass in solar units.
func NewStar(name string, radiusSun, massSun float64) Star {
	return Star{Name: name, Radius: radiusSun * SolarRadius, Mass: massSun * SolarMass}
}

// GM returns the standard gravitational parameter μ in m^3/s^2.
func (s Star) GM() float64 {
	return G * s.Mass
}

// InRadii returns the provided length in stellar radii.
func (s Star) InRadii(x float64) float64 {
	return x / s.Radius
}

// Radii returns the length in meters of n stellar radii.
func (s Star) Radii(n float64) float64 {
	return n * s.Radius
}

// Validate returns an error if the star cannot host a transit computation.
func (s Star) Validate() error {
	if !(s.Radius > 0) {
		return fmt.Errorf("%w: %s radius must be positive (got %g)", ErrDomain, s.Name, s.Radius)
	}
	if !(s.Mass > 0) {
		return fmt.Errorf("%w: %s mass must be positive (got %g)", ErrDomain, s.Name, s.Mass)
	}
	return nil
}

// String implements the Stringer interface.
func (s Star) String() string {
	return fmt.Sprintf("%s (R=%.2f R☉ M=%.2f M☉)", s.Name, s.Radius/SolarRadius, s.Mass/SolarMass)
}

// StarFromString returns the star from its name.
func StarFromString(name string) (Star, error) {
	switch strings.ToLower(strings.Replace(name, " ", "", -1)) {
	case "sun":
		return Sun, nil
	case "betapic", "betapictoris", "βpic":
		return BetaPic, nil
	default:
		return Star{}, fmt.Errorf("undefined star '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = NewStar("Sun", 1, 1)

// BetaPic hosts the best studied exocomet population.
var BetaPic = NewStar("Beta Pictoris", 1.8, 2)
