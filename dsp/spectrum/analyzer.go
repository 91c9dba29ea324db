package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Analyzer computes amplitude-calibrated one-sided spectra of fixed-size
// frames. It is not safe for concurrent use.
type Analyzer struct {
	size       int
	sampleRate float64
	plan       *algofft.Plan[complex128]
	in, out    []complex128
}

// NewAnalyzer creates an analyzer for frames of size samples. size must be a
// power of two.
func NewAnalyzer(size int, sampleRate float64) (*Analyzer, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("spectrum: frame size must be a power of two >= 2: %d", size)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: create fft plan: %w", err)
	}

	return &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		plan:       plan,
		in:         make([]complex128, size),
		out:        make([]complex128, size),
	}, nil
}

// Size returns the frame size.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of one-sided bins (size/2 + 1).
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// BinHz returns the bin spacing in Hz.
func (a *Analyzer) BinHz() float64 { return a.sampleRate / float64(a.size) }

// Bin returns the bin nearest to freqHz, clamped to [0, size/2].
func (a *Analyzer) Bin(freqHz float64) int {
	k := int(math.Round(freqHz / a.BinHz()))
	if k < 0 {
		return 0
	}
	if k > a.size/2 {
		return a.size / 2
	}
	return k
}

// Amplitude returns |X[k]|/N for bins 0..size/2 of frame.
//
// With this scaling a tone 2*m*cos(wt) between DC and Nyquist reads m, as
// does a constant m at DC or m*(-1)^n at Nyquist.
func (a *Analyzer) Amplitude(frame []float64) ([]float64, error) {
	if len(frame) != a.size {
		return nil, fmt.Errorf("spectrum: frame length %d, want %d", len(frame), a.size)
	}

	for i, x := range frame {
		a.in[i] = complex(x, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	out := make([]float64, a.Bins())
	MagnitudeInto(out, a.out[:a.Bins()])
	vecmath.ScaleBlockInPlace(out, 1/float64(a.size))
	return out, nil
}
