package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Cam-Burke/exocomets"
	"github.com/Cam-Burke/exocomets/dataio"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/viper"
)

// This command estimates the maximum transit duration of an exocomet from a scenario file.

const defaultScenario = "~~unset~~"

var (
	scenario string
	debug    bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "transit scenario TOML file")
	flag.BoolVar(&debug, "debug", false, "log every solver step")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	v := viper.New()
	v.SetConfigFile(scenario)
	v.SetEnvPrefix("EXOCOMET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("%s: Error %s", scenario, err)
	}
	sc, err := readScenario(v)
	if err != nil {
		log.Fatalf("%s: %s", scenario, err)
	}

	logger := exocomets.NewStdoutLogger(debug)
	level.Info(logger).Log("subsys", "conf", "scenario", sc)

	est := exocomets.NewEstimate(sc.Star, sc.Obs, sc.Solver, sc.Guess, logger)
	transit, err := est.Transit()
	if err != nil {
		log.Fatalf("could not estimate the transit duration: %s", err)
	}

	fmt.Printf("ω̄ = %.2f rad (%.1f deg)\n", exocomets.Round(transit.Tildeω, 2), exocomets.Rad2deg(transit.Tildeω))
	fmt.Printf("Q = %.2f R\n", exocomets.Round(sc.Star.InRadii(transit.Q), 2))
	fmt.Printf("ΔT = %.1f ± %.1f hours\n", exocomets.Round(transit.Hours(), 1), exocomets.Round(transit.Err, 1))
	fmt.Printf("ΔT (first-order propagation) = %.1f ± %.1f hours\n", exocomets.Round(transit.Hours(), 1), exocomets.Round(transit.Propagated, 1))

	if sc.Output.MonteCarlo > 0 {
		mc, err := est.MonteCarlo(sc.Output.MonteCarlo, sc.Output.Seed)
		if err != nil {
			log.Printf("[WARNING] monte carlo: %s", err)
		} else {
			fmt.Printf("ΔT (monte carlo, %d draws) = %.1f ± %.1f hours\n", sc.Output.MonteCarlo, exocomets.Round(mc.Value, 1), exocomets.Round(mc.Err, 1))
		}
	}

	if sc.Output.Report != "" {
		if err := writeFile(sc.Output.Report, func(w io.Writer) error {
			return dataio.WriteReport(w, sc.Star, sc.Obs, transit)
		}); err != nil {
			log.Fatal(err)
		}
	}
	if sc.Output.Scan != "" || sc.Output.Chart != "" {
		ω, res, err := exocomets.ResidualScan(sc.Obs.Velocity, sc.Obs.Distance.Value, sc.Star.GM(), sc.Output.ScanFrom, sc.Output.ScanTo, sc.Output.Step)
		if err != nil {
			log.Fatalf("residual scan: %s", err)
		}
		if sc.Output.Scan != "" {
			if err := writeFile(sc.Output.Scan, func(w io.Writer) error {
				return dataio.WriteScan(w, ω, res)
			}); err != nil {
				log.Fatal(err)
			}
		}
		if sc.Output.Chart != "" {
			if err := writeFile(sc.Output.Chart, func(w io.Writer) error {
				return dataio.RenderResidual(w, fmt.Sprintf("Periastron longitude residual for %s", sc.Star.Name), ω, res)
			}); err != nil {
				log.Fatal(err)
			}
		}
	}
}

// writeFile creates name and writes it with write. The file is closed on every path.
func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close %s: %w", name, err)
	}
	log.Printf("[info] wrote %s", name)
	return nil
}
