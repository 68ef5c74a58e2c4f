package exocomets

import "errors"

var (
	// ErrNoConvergence is returned when the periastron longitude solver gives up.
	ErrNoConvergence = errors.New("solver did not converge")
	// ErrSingular is returned alongside ErrNoConvergence when an iterate reaches cos ω = -1.
	ErrSingular = errors.New("cos ω reached -1")
	// ErrDomain is returned when an input is outside the domain of a formula.
	ErrDomain = errors.New("domain error")
	// ErrShapeMismatch is returned when paired sequences do not line up.
	ErrShapeMismatch = errors.New("shape mismatch")
)
