package main

import (
	"fmt"
	"time"

	"github.com/Cam-Burke/exocomets"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const dateFormat = "2006-01-02 15:04:05"

// Scenario is everything read from the scenario file.
type Scenario struct {
	Star   exocomets.Star
	Obs    exocomets.Observation
	Solver exocomets.Solver
	Guess  float64
	Output Output
}

// Output defines what is written after the estimate.
type Output struct {
	Report                 string
	Scan                   string
	Chart                  string
	ScanFrom, ScanTo, Step float64
	MonteCarlo             int
	Seed                   uint64
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s v=%.1f km/s d=%s R dv/dt=%s m/s^2 (%s, ω0=%.2f)", s.Star, s.Obs.Velocity/1e3,
		s.Obs.Distance.Scale(1/s.Star.Radius), s.Obs.Acceleration, s.Solver.Method, s.Guess)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("star.name", "Beta Pictoris")
	v.SetDefault("solver.method", "newton")
	v.SetDefault("solver.guess", exocomets.DefaultGuess)
	v.SetDefault("solver.tolerance", exocomets.DefaultTolerance)
	v.SetDefault("solver.max_iterations", exocomets.DefaultMaxIterations)
	v.SetDefault("output.scan_from", 0.0)
	v.SetDefault("output.scan_to", 2.0)
	v.SetDefault("output.scan_step", 0.01)
	v.SetDefault("output.seed", 1)
}

// readScenario reads a scenario from an already loaded viper instance.
func readScenario(v *viper.Viper) (Scenario, error) {
	setDefaults(v)
	var sc Scenario

	// Star
	star, err := exocomets.StarFromString(v.GetString("star.name"))
	if err != nil {
		star = exocomets.Star{Name: v.GetString("star.name")}
	}
	if v.IsSet("star.radius") {
		star.Radius = v.GetFloat64("star.radius") * exocomets.SolarRadius
	}
	if v.IsSet("star.mass") {
		star.Mass = v.GetFloat64("star.mass") * exocomets.SolarMass
	}
	if err := star.Validate(); err != nil {
		return sc, fmt.Errorf("star: %w", err)
	}
	sc.Star = star

	// Observation
	if v.IsSet("observation.velocity") {
		sc.Obs.Velocity = v.GetFloat64("observation.velocity") * 1e3
	} else if v.IsSet("observation.wavelength") {
		sc.Obs.Velocity = exocomets.RadialVelocityFromWavelength(v.GetFloat64("observation.wavelength"),
			v.GetFloat64("observation.rest_wavelength"), v.GetFloat64("observation.systemic")*1e3)
	} else {
		return sc, fmt.Errorf("observation: either `velocity` or `wavelength` must be set")
	}
	distance, err := confReadMeasurement(v, "observation.distance")
	if err != nil {
		return sc, err
	}
	sc.Obs.Distance = distance.Scale(star.Radius)
	if sc.Obs.Acceleration, err = confReadMeasurement(v, "observation.acceleration"); err != nil {
		return sc, err
	}
	if v.IsSet("observation.epoch") {
		if sc.Obs.Epoch, err = confReadJDEorTime(v, "observation.epoch"); err != nil {
			return sc, err
		}
	}

	// Solver
	method, err := exocomets.MethodFromString(v.GetString("solver.method"))
	if err != nil {
		return sc, err
	}
	sc.Solver = exocomets.Solver{Method: method, Tolerance: v.GetFloat64("solver.tolerance"), MaxIterations: v.GetInt("solver.max_iterations")}
	sc.Guess = v.GetFloat64("solver.guess")

	// Output
	sc.Output = Output{
		Report:     v.GetString("output.report"),
		Scan:       v.GetString("output.scan"),
		Chart:      v.GetString("output.chart"),
		ScanFrom:   v.GetFloat64("output.scan_from"),
		ScanTo:     v.GetFloat64("output.scan_to"),
		Step:       v.GetFloat64("output.scan_step"),
		MonteCarlo: v.GetInt("output.montecarlo"),
		Seed:       cast.ToUint64(v.Get("output.seed")),
	}
	return sc, nil
}

// confReadMeasurement reads `key` and `key_err`, or combines `key_values` and
// `key_errors` with a weighted average.
func confReadMeasurement(v *viper.Viper, key string) (exocomets.Measurement, error) {
	if v.IsSet(key + "_values") {
		values, err := confReadFloats(v, key+"_values")
		if err != nil {
			return exocomets.Measurement{}, err
		}
		errs, err := confReadFloats(v, key+"_errors")
		if err != nil {
			return exocomets.Measurement{}, err
		}
		m, err := exocomets.WeightedAverage(values, errs)
		if err != nil {
			return exocomets.Measurement{}, fmt.Errorf("%s: %w", key, err)
		}
		return m, nil
	}
	if !v.IsSet(key) {
		return exocomets.Measurement{}, fmt.Errorf("%s is not set", key)
	}
	return exocomets.Measurement{Value: v.GetFloat64(key), Err: v.GetFloat64(key + "_err")}, nil
}

func confReadFloats(v *viper.Viper, key string) ([]float64, error) {
	raw, err := cast.ToSliceE(v.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	floats := make([]float64, len(raw))
	for i, item := range raw {
		if floats[i], err = cast.ToFloat64E(item); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
	}
	return floats, nil
}

func confReadJDEorTime(v *viper.Viper, key string) (dt time.Time, err error) {
	if t, ok := v.Get(key).(time.Time); ok {
		return t.UTC(), nil
	}
	if jde, jerr := cast.ToFloat64E(v.Get(key)); jerr == nil && jde != 0 {
		return julian.JDToTime(jde), nil
	}
	if dt, err = time.Parse(dateFormat, v.GetString(key)); err != nil {
		return dt, fmt.Errorf("could not understand `%s`: %w", key, err)
	}
	return dt, nil
}
