package viz

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WaveformOptions control a time-domain figure.
type WaveformOptions struct {
	Title         string
	Width, Height vg.Length
}

// Waveform plots x against time in seconds.
func Waveform(x []float64, sampleRate float64, opts WaveformOptions) (*Figure, error) {
	if len(x) < 2 {
		return nil, errors.New("viz: waveform needs at least two samples")
	}
	if sampleRate <= 0 {
		return nil, errors.New("viz: sample rate must be > 0")
	}

	t := floats.Span(make([]float64, len(x)), 0, float64(len(x)-1)/sampleRate)

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Time [s]"
	p.Y.Label.Text = "Amplitude"
	p.Add(plotter.NewGrid())

	if err := addSeries(p, []Series{{X: t, Y: x}}, 0); err != nil {
		return nil, err
	}

	return newFigure(p, opts.Width, opts.Height), nil
}
