package exocomets

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// Reference observation of a Beta Pictoris exocomet.
var (
	refVelocity = 140e3
	refDistance = BetaPic.Radii(9.3)
)

func TestPeriastronLongitudeBetaPic(t *testing.T) {
	for _, method := range []Method{Newton, Secant} {
		sol, err := Solver{Method: method}.PeriastronLongitude(refVelocity, refDistance, BetaPic.GM(), DefaultGuess)
		if err != nil {
			t.Fatalf("[%s] %s", method, err)
		}
		if !scalar.EqualWithinAbs(sol.Tildeω, 1.43, 0.05) {
			t.Fatalf("[%s] ω̄=%f", method, sol.Tildeω)
		}
		if v := RadialVelocity(sol.Tildeω, refDistance, BetaPic.GM()); !scalar.EqualWithinAbs(v, refVelocity, 1e-6) {
			t.Fatalf("[%s] round trip gives v=%f m/s", method, v)
		}
		if sol.Iterations == 0 {
			t.Fatalf("[%s] the guess is not a root", method)
		}
		t.Logf("[OK] %s: %s", method, sol)
	}
}

func TestPeriastronLongitudeRoundTrip(t *testing.T) {
	gm := BetaPic.GM()
	for _, ω := range []float64{0.3, 0.8, 1.43, 2.0, 2.5} {
		v := RadialVelocity(ω, refDistance, gm)
		sol, err := Solver{}.PeriastronLongitude(v, refDistance, gm, DefaultGuess)
		if err != nil {
			t.Fatalf("ω=%f: %s", ω, err)
		}
		if !scalar.EqualWithinAbs(sol.Tildeω, ω, 1e-9) {
			t.Fatalf("expected ω=%f got %f", ω, sol.Tildeω)
		}
		if !scalar.EqualWithinAbs(RadialVelocity(sol.Tildeω, refDistance, gm), v, 1e-6) {
			t.Fatalf("ω=%f: round trip failed", ω)
		}
	}
	for _, ω := range []float64{0.8, 1.43, 2.0} {
		v := RadialVelocity(ω, refDistance, gm)
		sol, err := Solver{Method: Secant}.PeriastronLongitude(v, refDistance, gm, DefaultGuess)
		if err != nil {
			t.Fatalf("secant ω=%f: %s", ω, err)
		}
		if !scalar.EqualWithinAbs(sol.Tildeω, ω, 1e-9) {
			t.Fatalf("secant expected ω=%f got %f", ω, sol.Tildeω)
		}
	}
}

func TestPeriastronLongitudeFailures(t *testing.T) {
	gm := BetaPic.GM()
	k := math.Sqrt(gm / refDistance)
	// No root: the velocity exceeds the escape velocity.
	for _, method := range []Method{Newton, Secant} {
		if _, err := (Solver{Method: method}).PeriastronLongitude(2*k, refDistance, gm, DefaultGuess); !errors.Is(err, ErrNoConvergence) {
			t.Fatalf("[%s] expected no convergence, got %v", method, err)
		}
	}
	// Guess on the singularity.
	_, err := Solver{}.PeriastronLongitude(refVelocity, refDistance, gm, math.Pi)
	if !errors.Is(err, ErrSingular) || !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("expected a singular no convergence error, got %v", err)
	}
	// Iteration cap.
	_, err = Solver{MaxIterations: 1}.PeriastronLongitude(refVelocity, refDistance, gm, DefaultGuess)
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("expected no convergence after one iteration, got %v", err)
	}
	// Unknown method.
	if _, err = (Solver{Method: 42}).PeriastronLongitude(refVelocity, refDistance, gm, DefaultGuess); err == nil {
		t.Fatal("unknown method should fail")
	}
}

func TestPeriastronLongitudeDomain(t *testing.T) {
	gm := BetaPic.GM()
	tests := []struct {
		name     string
		v, d, gm float64
		ω0       float64
	}{
		{"zero distance", refVelocity, 0, gm, DefaultGuess},
		{"negative distance", refVelocity, -refDistance, gm, DefaultGuess},
		{"zero GM", refVelocity, refDistance, 0, DefaultGuess},
		{"NaN velocity", math.NaN(), refDistance, gm, DefaultGuess},
		{"infinite guess", refVelocity, refDistance, gm, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (Solver{}).PeriastronLongitude(tt.v, tt.d, tt.gm, tt.ω0); !errors.Is(err, ErrDomain) {
				t.Errorf("expected a domain error, got %v", err)
			}
		})
	}
}

func TestMethodFromString(t *testing.T) {
	for name, exp := range map[string]Method{"newton": Newton, "": Newton, "secant": Secant} {
		if m, err := MethodFromString(name); err != nil || m != exp {
			t.Fatalf("%q gave %s (%v)", name, m, err)
		}
	}
	if _, err := MethodFromString("brent"); err == nil {
		t.Fatal("brent is not supported")
	}
}

func TestResidualScan(t *testing.T) {
	ω, f, err := ResidualScan(refVelocity, refDistance, BetaPic.GM(), 0, 2, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if len(ω) != 201 || len(f) != 201 {
		t.Fatalf("expected 201 samples, got %d", len(ω))
	}
	if ω[0] != 0 || !scalar.EqualWithinAbs(ω[200], 2, 1e-12) {
		t.Fatalf("scan bounds are %f -> %f", ω[0], ω[200])
	}
	if f[0] != refVelocity {
		t.Fatalf("residual at zero should be the velocity, got %f", f[0])
	}
	crossings := 0
	for i := 1; i < len(f); i++ {
		if f[i-1] > 0 && f[i] <= 0 {
			crossings++
			if ω[i] < 1.42 || ω[i] > 1.44 {
				t.Fatalf("sign change at ω=%f", ω[i])
			}
		}
	}
	if crossings != 1 {
		t.Fatalf("expected one root in the scan, found %d", crossings)
	}
}

func TestResidualScanBounds(t *testing.T) {
	tests := []struct {
		name           string
		from, to, step float64
	}{
		{"zero step", 0, 2, 0},
		{"negative step", 0, 2, -0.01},
		{"reversed", 2, 0, 0.01},
		{"NaN end", 0, math.NaN(), 0.01},
		{"infinite end", 0, math.Inf(1), 0.01},
		{"infinite start", math.Inf(-1), 2, 0.01},
		{"NaN step", 0, 2, math.NaN()},
		{"tiny step", 0, 2, 1e-12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ω, f, err := ResidualScan(refVelocity, refDistance, BetaPic.GM(), tt.from, tt.to, tt.step)
			if !errors.Is(err, ErrDomain) {
				t.Fatalf("expected a domain error, got %v", err)
			}
			if ω != nil || f != nil {
				t.Fatal("a failed scan should not return samples")
			}
		})
	}
	if ω, _, err := ResidualScan(refVelocity, refDistance, BetaPic.GM(), 1, 1, 0.01); err != nil || len(ω) != 1 {
		t.Fatalf("single point scan gave %d samples (%v)", len(ω), err)
	}
}

func TestPeriastronDistance(t *testing.T) {
	d := refDistance
	if q := PeriastronDistance(d, 0); q != d {
		t.Fatalf("Q=%f at ω=0 instead of d", q)
	}
	if q := BetaPic.InRadii(PeriastronDistance(d, 1.4302955)); !scalar.EqualWithinAbs(q, 5.3, 0.1) {
		t.Fatalf("Q=%f R", q)
	}
	for ω := -math.Pi/2 + 1e-3; ω < math.Pi/2; ω += 0.01 {
		if q := PeriastronDistance(d, ω); q <= 0 || q > d {
			t.Fatalf("Q=%f not within (0, d] for ω=%f", q, ω)
		}
	}
	if !math.IsNaN(PeriastronDistance(math.NaN(), 1)) || !math.IsNaN(PeriastronDistance(d, math.NaN())) {
		t.Fatal("NaN should propagate")
	}
}
