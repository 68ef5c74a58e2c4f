package exocomets

import (
	"fmt"
	"math"
)

// Method defines the root finding method used to solve for the periastron longitude.
type Method uint8

const (
	// Newton uses the analytical derivative of the residual.
	Newton Method = iota + 1
	// Secant only uses residual evaluations.
	Secant
)

func (m Method) String() string {
	switch m {
	case Newton:
		return "newton"
	case Secant:
		return "secant"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// MethodFromString returns the method from its name.
func MethodFromString(name string) (Method, error) {
	switch name {
	case "newton", "":
		return Newton, nil
	case "secant":
		return Secant, nil
	default:
		return 0, fmt.Errorf("unknown solver method '%s'", name)
	}
}

const (
	// DefaultGuess is the initial periastron longitude guess in radians.
	DefaultGuess = 1.2
	// DefaultMaxIterations bounds the number of solver iterations.
	DefaultMaxIterations = 100
	// DefaultTolerance is the residual tolerance relative to sqrt(GM/d).
	DefaultTolerance = 1e-12
	singularε        = 1e-12 // 1+cos ω below which the residual blows up
	stepε            = 1e-15 // radians
	secantΔω         = 1e-2  // offset of the second secant point
	// MaxScanSamples bounds the number of residual samples of a scan.
	MaxScanSamples = 1 << 20
)

// Solver finds the periastron longitude matching an observed radial velocity.
// The zero value is a Newton solver with the default tolerance and iteration cap.
type Solver struct {
	Method        Method
	Tolerance     float64
	MaxIterations int
}

// Solution is a converged periastron longitude.
type Solution struct {
	Tildeω     float64 // periastron longitude (rad)
	Iterations int
	Residual   float64 // m/s
}

func (s Solution) String() string {
	return fmt.Sprintf("ω̄=%.4f rad (%d iterations, residual %.3e m/s)", s.Tildeω, s.Iterations, s.Residual)
}

func (s Solver) method() Method {
	if s.Method == 0 {
		return Newton
	}
	return s.Method
}

func (s Solver) tolerance() float64 {
	if s.Tolerance <= 0 {
		return DefaultTolerance
	}
	return s.Tolerance
}

func (s Solver) maxIterations() int {
	if s.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return s.MaxIterations
}

// RadialVelocity returns the radial velocity of a near-parabolic comet seen at a
// distance d with periastron longitude ω around a star of parameter gm.
func RadialVelocity(ω, d, gm float64) float64 {
	sinω, cosω := math.Sincos(ω)
	return math.Sqrt(gm/d) * sinω / math.Sqrt(1+cosω)
}

// Residual returns v - RadialVelocity(ω, d, gm).
func Residual(ω, v, d, gm float64) float64 {
	return v - RadialVelocity(ω, d, gm)
}

// residualDerivative returns d/dω of the residual.
func residualDerivative(ω, d, gm float64) float64 {
	sinω, cosω := math.Sincos(ω)
	p := 1 + cosω
	return -math.Sqrt(gm/d) * (cosω*p + sinω*sinω/2) / math.Pow(p, 1.5)
}

// ResidualScan samples the residual from `from` to `to` (inclusive) every step radians.
// It is meant for sanity checks of the solver and not for root finding.
func ResidualScan(v, d, gm, from, to, step float64) (ω, f []float64, err error) {
	for _, x := range []float64{from, to, step} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, nil, fmt.Errorf("%w: scan bounds and step must be finite", ErrDomain)
		}
	}
	if step <= 0 || to < from {
		return nil, nil, fmt.Errorf("%w: invalid scan [%g, %g] every %g", ErrDomain, from, to, step)
	}
	samples := math.Floor((to-from)/step+1e-9) + 1
	if samples > MaxScanSamples {
		return nil, nil, fmt.Errorf("%w: scan of %g samples exceeds %d", ErrDomain, samples, MaxScanSamples)
	}
	n := int(samples)
	ω = make([]float64, n)
	f = make([]float64, n)
	for i := 0; i < n; i++ {
		ω[i] = from + float64(i)*step
		f[i] = Residual(ω[i], v, d, gm)
	}
	return ω, f, nil
}

// PeriastronLongitude solves v = sqrt(GM/d)·sin ω/sqrt(1+cos ω) for ω starting from ω0.
// The residual is not monotonic over [0, 2π): the returned root is the one the
// iterations reach from ω0, hence ω0 should be near the expected solution.
func (s Solver) PeriastronLongitude(v, d, gm, ω0 float64) (Solution, error) {
	if !(d > 0) || math.IsInf(d, 0) {
		return Solution{}, fmt.Errorf("%w: distance must be positive and finite (got %g)", ErrDomain, d)
	}
	if !(gm > 0) || math.IsInf(gm, 0) {
		return Solution{}, fmt.Errorf("%w: GM must be positive and finite (got %g)", ErrDomain, gm)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(ω0) || math.IsInf(ω0, 0) {
		return Solution{}, fmt.Errorf("%w: velocity and initial guess must be finite", ErrDomain)
	}
	switch s.method() {
	case Newton:
		return s.newton(v, d, gm, ω0)
	case Secant:
		return s.secant(v, d, gm, ω0)
	default:
		return Solution{}, fmt.Errorf("unknown solver method %s", s.method())
	}
}

func (s Solver) newton(v, d, gm, ω float64) (Solution, error) {
	tol := s.tolerance() * math.Sqrt(gm/d)
	for iteration := 0; iteration < s.maxIterations(); iteration++ {
		f, err := guardedResidual(ω, v, d, gm)
		if err != nil {
			return Solution{}, err
		}
		if math.Abs(f) <= tol {
			return Solution{ω, iteration, f}, nil
		}
		fp := residualDerivative(ω, d, gm)
		if fp == 0 || math.IsNaN(fp) {
			return Solution{}, fmt.Errorf("%w: zero derivative at ω=%f", ErrNoConvergence, ω)
		}
		δ := f / fp
		ω -= δ
		if math.IsNaN(ω) || math.IsInf(ω, 0) {
			return Solution{}, fmt.Errorf("%w: diverged after %d iterations", ErrNoConvergence, iteration+1)
		}
		if math.Abs(δ) < stepε {
			// Stalled within machine precision.
			if f, err = guardedResidual(ω, v, d, gm); err == nil && math.Abs(f) <= math.Sqrt(tol) {
				return Solution{ω, iteration + 1, f}, nil
			}
			return Solution{}, fmt.Errorf("%w: stalled at ω=%f (residual %e)", ErrNoConvergence, ω, f)
		}
	}
	return Solution{}, fmt.Errorf("%w: did not converge after %d iterations", ErrNoConvergence, s.maxIterations())
}

func (s Solver) secant(v, d, gm, ω float64) (Solution, error) {
	tol := s.tolerance() * math.Sqrt(gm/d)
	ωPrev := ω
	fPrev, err := guardedResidual(ωPrev, v, d, gm)
	if err != nil {
		return Solution{}, err
	}
	if math.Abs(fPrev) <= tol {
		return Solution{ωPrev, 0, fPrev}, nil
	}
	ω += secantΔω
	for iteration := 1; iteration <= s.maxIterations(); iteration++ {
		f, err := guardedResidual(ω, v, d, gm)
		if err != nil {
			return Solution{}, err
		}
		if math.Abs(f) <= tol {
			return Solution{ω, iteration, f}, nil
		}
		if f == fPrev {
			return Solution{}, fmt.Errorf("%w: flat secant at ω=%f", ErrNoConvergence, ω)
		}
		δ := f * (ω - ωPrev) / (f - fPrev)
		ωPrev, fPrev = ω, f
		ω -= δ
		if math.IsNaN(ω) || math.IsInf(ω, 0) {
			return Solution{}, fmt.Errorf("%w: diverged after %d iterations", ErrNoConvergence, iteration)
		}
	}
	return Solution{}, fmt.Errorf("%w: did not converge after %d iterations", ErrNoConvergence, s.maxIterations())
}

// guardedResidual evaluates the residual, failing at the cos ω = -1 singularity.
func guardedResidual(ω, v, d, gm float64) (float64, error) {
	if 1+math.Cos(ω) < singularε {
		return 0, fmt.Errorf("%w: %w at ω=%f", ErrNoConvergence, ErrSingular, ω)
	}
	return Residual(ω, v, d, gm), nil
}

// PeriastronDistance returns the periastron distance of a near-parabolic orbit
// seen at distance d with periastron longitude ω, in the units of d.
func PeriastronDistance(d, ω float64) float64 {
	return d * (1 + math.Cos(ω)) / 2
}
