// Package viz renders response curves and waveforms with gonum/plot.
//
// A [Figure] is format-agnostic until it is written: [Figure.Save] picks the
// format from the file extension (png, svg, pdf, eps, jpg, tif), and
// [Figure.WriteTo] uses Figure.Format.
package viz

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Default figure size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// Figure is a finished plot ready to be encoded.
type Figure struct {
	Width, Height vg.Length
	// Format used by WriteTo. Defaults to "png".
	Format string

	plot *plot.Plot
}

// Plot exposes the underlying gonum plot for further styling.
func (f *Figure) Plot() *plot.Plot { return f.plot }

// WriteTo encodes the figure in f.Format.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	format := f.Format
	if format == "" {
		format = "png"
	}
	wt, err := f.plot.WriterTo(f.Width, f.Height, format)
	if err != nil {
		return 0, fmt.Errorf("viz: %w", err)
	}
	return wt.WriteTo(w)
}

// Save writes the figure to path, inferring the format from its extension.
func (f *Figure) Save(path string) error {
	if err := f.plot.Save(f.Width, f.Height, path); err != nil {
		return fmt.Errorf("viz: save %s: %w", path, err)
	}
	return nil
}

func newFigure(p *plot.Plot, w, h vg.Length) *Figure {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return &Figure{Width: w, Height: h, Format: "png", plot: p}
}

// Series is one named line.
type Series struct {
	Name string
	X, Y []float64
	// Dashed draws the line with a dash pattern.
	Dashed bool
	// Color indexes the plotutil palette; negative uses the series index.
	Color int
}

// finiteXYs copies x, y into plotter points, replacing -Inf/+Inf/NaN by
// floor. Lines are clipped to the axes when drawn.
func finiteXYs(x, y []float64, floor float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("viz: %d x values for %d y values", len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		v := y[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = floor
		}
		pts[i].X, pts[i].Y = x[i], v
	}
	return pts, nil
}

func addSeries(p *plot.Plot, series []Series, floor float64) error {
	if len(series) == 0 {
		return errors.New("viz: nothing to plot")
	}

	for i, s := range series {
		pts, err := finiteXYs(s.X, s.Y, floor)
		if err != nil {
			return fmt.Errorf("viz: series %q: %w", s.Name, err)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("viz: series %q: %w", s.Name, err)
		}

		ci := s.Color
		if ci < 0 {
			ci = i
		}
		line.Color = plotutil.Color(ci)
		line.Width = vg.Points(1.5)
		if s.Dashed {
			line.Dashes = plotutil.Dashes(1)
		}

		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}
	return nil
}
