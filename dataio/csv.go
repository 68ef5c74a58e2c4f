package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Cam-Burke/exocomets"
)

// ReportHeader is the header of the CSV written by WriteReport.
var ReportHeader = []string{
	"star", "radius_rsun", "mass_msun", "epoch", "jde",
	"v_kms", "d_R", "d_err_R", "dvdt_ms2", "dvdt_err_ms2",
	"omega_rad", "q_R", "dt_h", "dt_err_h", "dt_propagated_h",
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteReport writes the transit estimate of an observation as a two line CSV.
func WriteReport(w io.Writer, s exocomets.Star, obs exocomets.Observation, t exocomets.Transit) error {
	epoch, jde := "", ""
	if !obs.Epoch.IsZero() {
		epoch = obs.Epoch.UTC().Format("2006-01-02 15:04:05")
		jde = ftoa(obs.JDE())
	}
	cw := csv.NewWriter(w)
	records := [][]string{ReportHeader, {
		s.Name,
		ftoa(s.Radius / exocomets.SolarRadius),
		ftoa(s.Mass / exocomets.SolarMass),
		epoch,
		jde,
		ftoa(obs.Velocity / 1e3),
		ftoa(s.InRadii(obs.Distance.Value)),
		ftoa(s.InRadii(obs.Distance.Err)),
		ftoa(obs.Acceleration.Value),
		ftoa(obs.Acceleration.Err),
		ftoa(t.Tildeω),
		ftoa(s.InRadii(t.Q)),
		ftoa(t.Hours()),
		ftoa(t.Err),
		ftoa(t.Propagated),
	}}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteScan writes the residual scan as `omega_rad,residual_ms` rows.
func WriteScan(w io.Writer, ω, f []float64) error {
	if len(ω) != len(f) {
		return errors.New("abscissas and residuals differ in length")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"omega_rad", "residual_ms"}); err != nil {
		return err
	}
	for i := range ω {
		if err := cw.Write([]string{ftoa(ω[i]), ftoa(f[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
