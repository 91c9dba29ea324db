package viz

import (
	"fmt"

	"github.com/cwbudde/dspcheck/measure/response"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ResponseOptions control a frequency response figure.
type ResponseOptions struct {
	Title  string
	XLabel string
	YLabel string
	// Visible dB range.
	YMin, YMax    float64
	Width, Height vg.Length
}

// DefaultResponseOptions shows -100..10 dB with grid-style axis labels.
func DefaultResponseOptions() ResponseOptions {
	return ResponseOptions{
		XLabel: "Frequency [Hz]",
		YLabel: "Amplitude [dB]",
		YMin:   -100,
		YMax:   10,
	}
}

// ResponsePlot draws every curve in dB on one set of axes with a grid.
// Curves of the same order share a color; non-analog curves are dashed.
func ResponsePlot(curves []response.Curve, opts ResponseOptions) (*Figure, error) {
	if opts.YMax <= opts.YMin {
		return nil, fmt.Errorf("viz: empty dB range [%g, %g]", opts.YMin, opts.YMax)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	colors := map[int]int{}
	series := make([]Series, 0, len(curves))
	for _, c := range curves {
		ci, ok := colors[c.Order]
		if !ok {
			ci = len(colors)
			colors[c.Order] = ci
		}
		series = append(series, Series{
			Name:   c.Label(),
			X:      c.FreqHz,
			Y:      c.DB(),
			Dashed: c.Kind != response.Analog,
			Color:  ci,
		})
	}

	// Anything below the axis is clipped; keep it finite but off-canvas.
	if err := addSeries(p, series, opts.YMin-100); err != nil {
		return nil, err
	}

	p.X.Min = 0
	if n := len(curves[0].FreqHz); n > 0 {
		p.X.Max = curves[0].FreqHz[n-1]
	}
	p.Y.Min, p.Y.Max = opts.YMin, opts.YMax
	p.Legend.Top = false
	p.Legend.Left = true

	return newFigure(p, opts.Width, opts.Height), nil
}
