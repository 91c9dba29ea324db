package signal

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/dspcheck/dsp/core"
)

// ErrInvalidConfig is wrapped by every validation error returned by [NewGrid].
var ErrInvalidConfig = errors.New("invalid grid config")

const (
	// DefaultDuration is the grid signal length in seconds.
	DefaultDuration = 4.0
	// DefaultLevelDB is the target level of every grid tone.
	DefaultLevelDB = -32.0
	// DefaultClickValue is the sample value written at each click.
	DefaultClickValue = 0.5
)

// Tone is one cosine component of a grid signal.
type Tone struct {
	FreqHz  float64
	LevelDB float64
}

// Click forces the sample at TimeSec to Value.
type Click struct {
	TimeSec float64
	Value   float64
}

// GridConfig describes a grid signal: tones superimposed on silence, then
// clicks written over the result.
type GridConfig struct {
	SampleRate float64
	Duration   float64
	Tones      []Tone
	Clicks     []Click
}

// DefaultGridConfig returns the standard test grid for sampleRate:
// four tones at DC, fs/16, fs/2-fs/16 and Nyquist, all at -32 dB, and
// clicks at 0, 1, 2 and 3 seconds plus the very last sample.
func DefaultGridConfig(sampleRate float64) GridConfig {
	cfg := GridConfig{
		SampleRate: sampleRate,
		Duration:   DefaultDuration,
	}
	cfg.Tones = DefaultTones(sampleRate, DefaultLevelDB)
	cfg.Clicks = DefaultClicks(sampleRate, DefaultDuration, DefaultClickValue)
	return cfg
}

// DefaultTones returns the four grid tone frequencies at levelDB.
func DefaultTones(sampleRate, levelDB float64) []Tone {
	nyq := core.Nyquist(sampleRate)
	step := sampleRate / 16
	return []Tone{
		{FreqHz: 0, LevelDB: levelDB},
		{FreqHz: step, LevelDB: levelDB},
		{FreqHz: nyq - step, LevelDB: levelDB},
		{FreqHz: nyq, LevelDB: levelDB},
	}
}

// DefaultClicks returns clicks at every whole second of a duration-second
// buffer and at its final sample.
func DefaultClicks(sampleRate, duration, value float64) []Click {
	n := SampleCount(sampleRate, duration)
	clicks := make([]Click, 0, int(duration)+2)
	for sec := 0.0; sec < duration; sec++ {
		if clickIndex(sec, sampleRate) >= n-1 {
			break
		}
		clicks = append(clicks, Click{TimeSec: sec, Value: value})
	}
	last := float64(n-1) / sampleRate
	return append(clicks, Click{TimeSec: last, Value: value})
}

// SampleCount returns the buffer length for duration seconds at sampleRate.
func SampleCount(sampleRate, duration float64) int {
	return int(math.Round(duration * sampleRate))
}

// GridFileName returns the conventional WAV file name for a grid signal.
func GridFileName(sampleRate float64) string {
	return fmt.Sprintf("synth_grid_fs%d.wav", int(sampleRate))
}

// Grid synthesizes a grid signal.
type Grid struct {
	cfg GridConfig
	gen *Generator
	n   int
}

// NewGrid validates cfg and returns a Grid.
func NewGrid(cfg GridConfig) (*Grid, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidConfig, cfg.SampleRate)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return nil, fmt.Errorf("%w: duration must be > 0: %f", ErrInvalidConfig, cfg.Duration)
	}
	n := SampleCount(cfg.SampleRate, cfg.Duration)
	if n <= 0 {
		return nil, fmt.Errorf("%w: duration %f s holds no samples at %f Hz", ErrInvalidConfig, cfg.Duration, cfg.SampleRate)
	}

	nyq := core.Nyquist(cfg.SampleRate)
	for i, tone := range cfg.Tones {
		if tone.FreqHz < 0 || tone.FreqHz > nyq || math.IsNaN(tone.FreqHz) {
			return nil, fmt.Errorf("%w: tone %d frequency %f outside [0, %f]", ErrInvalidConfig, i, tone.FreqHz, nyq)
		}
		if math.IsNaN(tone.LevelDB) || math.IsInf(tone.LevelDB, 1) {
			return nil, fmt.Errorf("%w: tone %d level must be finite: %f", ErrInvalidConfig, i, tone.LevelDB)
		}
	}
	for i, click := range cfg.Clicks {
		idx := clickIndex(click.TimeSec, cfg.SampleRate)
		if click.TimeSec < 0 || idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: click %d at %f s outside [0, %f)", ErrInvalidConfig, i, click.TimeSec, cfg.Duration)
		}
	}

	return &Grid{
		cfg: cfg,
		gen: NewGenerator(core.WithSampleRate(cfg.SampleRate)),
		n:   n,
	}, nil
}

// Config returns a copy of the grid configuration.
func (g *Grid) Config() GridConfig {
	cfg := g.cfg
	cfg.Tones = append([]Tone(nil), g.cfg.Tones...)
	cfg.Clicks = append([]Click(nil), g.cfg.Clicks...)
	return cfg
}

// Len returns the number of samples Synthesize produces.
func (g *Grid) Len() int { return g.n }

// Tones returns the configured tones.
func (g *Grid) Tones() []Tone { return append([]Tone(nil), g.cfg.Tones...) }

// Clicks returns the configured clicks.
func (g *Grid) Clicks() []Click { return append([]Click(nil), g.cfg.Clicks...) }

// ClickIndices returns the sample index each click overwrites.
func (g *Grid) ClickIndices() []int {
	out := make([]int, len(g.cfg.Clicks))
	for i, c := range g.cfg.Clicks {
		out[i] = clickIndex(c.TimeSec, g.cfg.SampleRate)
	}
	return out
}

// Magnitude returns the linear cosine magnitude used for tone.
// Tones at DC and Nyquist have no mirrored image in a real cosine basis, so
// their magnitude is halved.
func (g *Grid) Magnitude(tone Tone) float64 {
	mag := core.DBToLinear(tone.LevelDB)
	if tone.FreqHz == 0 || tone.FreqHz == core.Nyquist(g.cfg.SampleRate) {
		mag /= 2
	}
	return mag
}

// Synthesize renders the grid signal.
func (g *Grid) Synthesize() ([]float64, error) {
	out := make([]float64, g.n)
	tone := make([]float64, g.n)

	for _, t := range g.cfg.Tones {
		if err := g.gen.CosineInto(tone, t.FreqHz, 1); err != nil {
			return nil, fmt.Errorf("synthesize %.2f Hz: %w", t.FreqHz, err)
		}
		vecmath.ScaleBlockInPlace(tone, 2*g.Magnitude(t))
		vecmath.AddBlockInPlace(out, tone)
	}

	for i, idx := range g.ClickIndices() {
		out[idx] = g.cfg.Clicks[i].Value
	}

	return out, nil
}

// clickIndex truncates timeSec*sampleRate toward zero. Products that land
// within rounding noise of an integer snap to it first, so (n-1)/fs maps
// back to n-1.
func clickIndex(timeSec, sampleRate float64) int {
	v := timeSec * sampleRate
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		v = r
	}
	return int(v)
}

// QuietFrame returns the start of the first size-sample window that holds
// no click, or false if every window of that size contains one.
func (g *Grid) QuietFrame(size int) (int, bool) {
	if size <= 0 || size > g.n {
		return 0, false
	}

	idx := g.ClickIndices()
	slices.Sort(idx)

	start := 0
	for _, c := range idx {
		if c >= start+size {
			break
		}
		if c >= start {
			start = c + 1
		}
	}
	if start+size > g.n {
		return 0, false
	}
	return start, true
}
