package exocomets

import (
	"fmt"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/soniakeys/meeus/v3/julian"
)

// Observation gathers what was measured on a single exocomet absorption.
type Observation struct {
	Velocity     float64     // radial velocity at transit (m/s)
	Distance     Measurement // distance to the star (m)
	Acceleration Measurement // radial acceleration (m/s^2)
	Epoch        time.Time   // time of the observation, may be zero
}

// Validate returns an error if the observation cannot be used for an estimate.
func (o Observation) Validate() error {
	if !(o.Distance.Value > 0) {
		return fmt.Errorf("%w: distance must be positive (got %g)", ErrDomain, o.Distance.Value)
	}
	if !(o.Acceleration.Value > 0) {
		return fmt.Errorf("%w: acceleration must be positive (got %g)", ErrDomain, o.Acceleration.Value)
	}
	return nil
}

// JDE returns the Julian day of the observation, or zero if the epoch is unset.
func (o Observation) JDE() float64 {
	if o.Epoch.IsZero() {
		return 0
	}
	return julian.TimeToJD(o.Epoch)
}

// Estimate chains the periastron longitude, periastron distance and transit
// duration computations for one exocomet observation.
type Estimate struct {
	Star   Star
	Obs    Observation
	Solver Solver
	Guess  float64 // initial periastron longitude guess (rad)
	logger kitlog.Logger
}

// NewEstimate returns a new Estimate. A nil logger disables logging.
func NewEstimate(s Star, obs Observation, solver Solver, guess float64, logger kitlog.Logger) *Estimate {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Estimate{s, obs, solver, guess, kitlog.With(logger, "subsys", "transit", "star", s.Name)}
}

// Transit computes the maximum transit duration and its uncertainties.
func (e *Estimate) Transit() (Transit, error) {
	if err := e.Star.Validate(); err != nil {
		return Transit{}, err
	}
	if err := e.Obs.Validate(); err != nil {
		return Transit{}, err
	}
	sol, err := e.Solver.PeriastronLongitude(e.Obs.Velocity, e.Obs.Distance.Value, e.Star.GM(), e.Guess)
	if err != nil {
		level.Error(e.logger).Log("message", "periastron longitude", "guess", e.Guess, "err", err)
		return Transit{}, fmt.Errorf("periastron longitude: %w", err)
	}
	level.Debug(e.logger).Log("message", "solved", "method", e.Solver.method(), "ω̄", sol.Tildeω, "iterations", sol.Iterations, "residual", sol.Residual)

	q := PeriastronDistance(e.Obs.Distance.Value, sol.Tildeω)
	level.Debug(e.logger).Log("message", "periastron", "Q(R)", e.Star.InRadii(q))

	ΔT, err := TransitDuration(e.Star.Radius, q, e.Obs.Acceleration.Value)
	if err != nil {
		return Transit{}, fmt.Errorf("transit duration: %w", err)
	}
	ΔTerr, err := TransitDurationErr(e.Obs.Distance, e.Obs.Acceleration)
	if err != nil {
		return Transit{}, fmt.Errorf("transit duration uncertainty: %w", err)
	}
	propagated, err := PropagatedTransitErr(e.Star, e.Obs.Velocity, e.Obs.Distance, e.Obs.Acceleration, q)
	if err != nil {
		return Transit{}, fmt.Errorf("propagated uncertainty: %w", err)
	}
	t := Transit{sol.Tildeω, q, ΔT, ΔTerr, propagated}
	level.Info(e.logger).Log("message", "transit", "ΔT(h)", t.Hours(), "err(h)", ΔTerr, "propagated(h)", propagated)
	return t, nil
}

// NewStdoutLogger returns a logfmt logger writing to stdout and filtering below debug
// unless debug is set.
func NewStdoutLogger(debug bool) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "ts", kitlog.DefaultTimestampUTC)
	if debug {
		return level.NewFilter(klog, level.AllowDebug())
	}
	return level.NewFilter(klog, level.AllowInfo())
}
