package exocomets

import (
	"fmt"
	"math"
	"time"
)

// Transit is the maximum transit duration estimate of an exocomet.
type Transit struct {
	Tildeω     float64       // periastron longitude (rad)
	Q          float64       // periastron distance (m)
	Duration   time.Duration // maximum transit duration
	Err        float64       // ΔT uncertainty (hours), sigma-ratio combination
	Propagated float64       // ΔT uncertainty (hours), first-order quadrature
}

// Hours returns the transit duration in hours.
func (t Transit) Hours() float64 {
	return t.Duration.Hours()
}

// Report formats the estimate with Q in radii of the provided star.
func (t Transit) Report(s Star) string {
	return fmt.Sprintf("ω̄=%.2f rad Q=%.2f R ΔT=%.1f±%.1f h", t.Tildeω, s.InRadii(t.Q), t.Hours(), t.Err)
}

// TransitDuration returns ΔT = sqrt(2)·R/sqrt(Q·dv/dt) for a star of radius r, a
// periastron distance q (m) and a radial acceleration dvdt (m/s^2).
func TransitDuration(r, q, dvdt float64) (time.Duration, error) {
	if !(r > 0) {
		return 0, fmt.Errorf("%w: stellar radius must be positive (got %g)", ErrDomain, r)
	}
	if !(q > 0) {
		return 0, fmt.Errorf("%w: periastron distance must be positive (got %g)", ErrDomain, q)
	}
	if !(dvdt > 0) {
		return 0, fmt.Errorf("%w: acceleration must be positive (got %g)", ErrDomain, dvdt)
	}
	seconds := math.Sqrt2 * r / math.Sqrt(q*dvdt)
	if math.IsInf(seconds, 0) || seconds > float64(math.MaxInt64)/float64(time.Second) {
		return 0, fmt.Errorf("%w: transit duration overflows (%g s)", ErrDomain, seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// TransitDurationErr returns the ΔT uncertainty in hours as 1/(sqrt(d/σd) + sqrt(a/σa)).
// This combines the significance of the distance and of the acceleration; it is
// not a propagation of variances, see PropagatedTransitErr for that.
func TransitDurationErr(d, dvdt Measurement) (float64, error) {
	sd, sa := d.Sigma(), dvdt.Sigma()
	if !(sd > 0) || math.IsInf(sd, 0) {
		return 0, fmt.Errorf("%w: distance significance must be positive and finite (got %g)", ErrDomain, sd)
	}
	if !(sa > 0) || math.IsInf(sa, 0) {
		return 0, fmt.Errorf("%w: acceleration significance must be positive and finite (got %g)", ErrDomain, sa)
	}
	return 1 / (math.Sqrt(sd) + math.Sqrt(sa)), nil
}

// PropagatedTransitErr returns the first-order ΔT uncertainty in hours.
// On the near-parabolic branch Q = d - v²d²/(2GM), so dQ/dd = 1 - v²d/GM, and
// ΔT ∝ (Q·a)^(-1/2) gives σΔT/ΔT = ½·sqrt((σQ/Q)² + (σa/a)²).
func PropagatedTransitErr(s Star, v float64, d, dvdt Measurement, q float64) (float64, error) {
	ΔT, err := TransitDuration(s.Radius, q, dvdt.Value)
	if err != nil {
		return 0, err
	}
	σQ := math.Abs(1-v*v*d.Value/s.GM()) * math.Abs(d.Err)
	rel := 0.5 * math.Hypot(σQ/q, math.Abs(dvdt.Err)/dvdt.Value)
	return ΔT.Hours() * rel, nil
}
