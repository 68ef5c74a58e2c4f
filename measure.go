package exocomets

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Measurement is a measured quantity and its 1σ uncertainty.
type Measurement struct {
	Value, Err float64
}

// Sigma returns the signal to uncertainty ratio of the measurement.
func (m Measurement) Sigma() float64 {
	return m.Value / m.Err
}

// Scale returns the measurement with both the value and its uncertainty multiplied by k.
func (m Measurement) Scale(k float64) Measurement {
	return Measurement{m.Value * k, math.Abs(m.Err * k)}
}

func (m Measurement) String() string {
	return fmt.Sprintf("%g ± %g", m.Value, m.Err)
}

// WeightedAverage combines repeated measurements x with uncertainties σ using
// inverse variance weights.
func WeightedAverage(x, σ []float64) (Measurement, error) {
	if len(x) != len(σ) {
		return Measurement{}, fmt.Errorf("%w: %d values and %d uncertainties", ErrShapeMismatch, len(x), len(σ))
	}
	if len(x) == 0 {
		return Measurement{}, fmt.Errorf("%w: no values to average", ErrShapeMismatch)
	}
	w := make([]float64, len(σ))
	wσ := make([]float64, len(σ))
	for i, s := range σ {
		if s == 0 || math.IsNaN(s) {
			return Measurement{}, fmt.Errorf("%w: uncertainty #%d is %g", ErrDomain, i, s)
		}
		w[i] = 1 / (s * s)
		wσ[i] = w[i] * s
	}
	Σw := floats.Sum(w)
	mean := floats.Dot(x, w) / Σw
	err := floats.Norm(wσ, 2) / Σw
	return Measurement{mean, err}, nil
}
