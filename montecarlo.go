package exocomets

import (
	"fmt"
	"math"

	"github.com/go-kit/kit/log/level"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MonteCarlo draws the distance and the acceleration from normal distributions
// of their measured uncertainties, solves each draw and returns the mean and
// standard deviation of the transit duration in hours. Draws which cannot be
// solved (unphysical distance or acceleration, no convergence) are skipped.
func (e *Estimate) MonteCarlo(draws int, seed uint64) (Measurement, error) {
	if draws < 2 {
		return Measurement{}, fmt.Errorf("%w: need at least two draws (got %d)", ErrDomain, draws)
	}
	if err := e.Star.Validate(); err != nil {
		return Measurement{}, err
	}
	src := rand.NewSource(seed)
	dist := distuv.Normal{Mu: e.Obs.Distance.Value, Sigma: math.Abs(e.Obs.Distance.Err), Src: src}
	accel := distuv.Normal{Mu: e.Obs.Acceleration.Value, Sigma: math.Abs(e.Obs.Acceleration.Err), Src: src}

	gm := e.Star.GM()
	hours := make([]float64, 0, draws)
	for i := 0; i < draws; i++ {
		d, a := dist.Rand(), accel.Rand()
		if d <= 0 || a <= 0 {
			continue
		}
		sol, err := e.Solver.PeriastronLongitude(e.Obs.Velocity, d, gm, e.Guess)
		if err != nil {
			continue
		}
		ΔT, err := TransitDuration(e.Star.Radius, PeriastronDistance(d, sol.Tildeω), a)
		if err != nil {
			continue
		}
		hours = append(hours, ΔT.Hours())
	}
	if len(hours) < 2 {
		return Measurement{}, fmt.Errorf("%w: only %d of %d draws could be solved", ErrNoConvergence, len(hours), draws)
	}
	mean, std := stat.MeanStdDev(hours, nil)
	level.Info(e.logger).Log("message", "monte carlo", "draws", draws, "kept", len(hours), "ΔT(h)", mean, "std(h)", std)
	return Measurement{mean, std}, nil
}
