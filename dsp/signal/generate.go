package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcheck/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg: core.ApplyProcessorOptions(opts...),
	}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Cosine generates amplitude*cos(2*pi*freqHz*t) for t = n/sampleRate.
func (g *Generator) Cosine(freqHz, amplitude float64, samples int) ([]float64, error) {
	out := make([]float64, samples)
	if err := g.CosineInto(out, freqHz, amplitude); err != nil {
		return nil, err
	}
	return out, nil
}

// CosineInto fills dst with amplitude*cos(2*pi*freqHz*t). Zero-alloc.
func (g *Generator) CosineInto(dst []float64, freqHz, amplitude float64) error {
	if len(dst) == 0 {
		return fmt.Errorf("cosine samples must be > 0: %d", len(dst))
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("cosine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	w := 2 * math.Pi * freqHz
	fs := g.cfg.SampleRate
	for i := range dst {
		t := float64(i) / fs
		dst[i] = amplitude * math.Cos(w*t)
	}
	return nil
}
