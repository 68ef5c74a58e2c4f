package dataio

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ResidualChart returns a line chart of the solver residual f(ω) in km/s.
// A zero line is drawn so that the roots can be read off the crossings.
func ResidualChart(title string, ω, f []float64) (*charts.Line, error) {
	if len(ω) != len(f) {
		return nil, fmt.Errorf("%d abscissas for %d residuals", len(ω), len(f))
	}
	if len(ω) == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       title,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "ω (rad)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "residual (km/s)",
			Type:  "value",
			Show:  opts.Bool(true),
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	x := make([]string, len(ω))
	residuals := make([]opts.LineData, len(f))
	zeros := make([]opts.LineData, len(f))
	for i := range ω {
		x[i] = fmt.Sprintf("%.2f", ω[i])
		residuals[i] = opts.LineData{Value: f[i] / 1e3}
		zeros[i] = opts.LineData{Value: 0.0}
	}
	line.SetXAxis(x)
	line.AddSeries("residual", residuals)
	line.AddSeries("zero", zeros)
	return line, nil
}

// RenderResidual renders the residual chart as HTML to w.
func RenderResidual(w io.Writer, title string, ω, f []float64) error {
	line, err := ResidualChart(title, ω, f)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
