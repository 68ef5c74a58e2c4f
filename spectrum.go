package exocomets

// RadialVelocityFromWavelength returns the radial velocity (m/s) in the star's
// rest frame of an absorption observed at wavelength `observed`, for a line of
// laboratory wavelength `rest` and a star with a systemic radial velocity of
// `systemic` m/s. Both wavelengths must share the same unit.
func RadialVelocityFromWavelength(observed, rest, systemic float64) float64 {
	rest += rest * systemic / SpeedOfLight // rest wavelength in the star's frame
	return (observed - rest) / rest * SpeedOfLight
}
