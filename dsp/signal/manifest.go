package signal

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Manifest records what a synthesized grid file contains so alignment and
// latency checks can locate tones and clicks without re-deriving them.
type Manifest struct {
	File       string          `yaml:"file"`
	SampleRate float64         `yaml:"sample_rate"`
	Samples    int             `yaml:"samples"`
	Duration   float64         `yaml:"duration_sec"`
	Encoding   string          `yaml:"encoding"`
	Tones      []ManifestTone  `yaml:"tones"`
	Clicks     []ManifestClick `yaml:"clicks"`
}

// ManifestTone describes one tone with its effective cosine magnitude.
type ManifestTone struct {
	FreqHz    float64 `yaml:"freq_hz"`
	LevelDB   float64 `yaml:"level_db"`
	Magnitude float64 `yaml:"magnitude"`
}

// ManifestClick describes one click and the sample it overwrites.
type ManifestClick struct {
	TimeSec float64 `yaml:"time_sec"`
	Index   int     `yaml:"index"`
	Value   float64 `yaml:"value"`
}

// Manifest builds the manifest for g written to file.
func (g *Grid) Manifest(file string) Manifest {
	m := Manifest{
		File:       file,
		SampleRate: g.cfg.SampleRate,
		Samples:    g.n,
		Duration:   g.cfg.Duration,
		Encoding:   "float32",
		Tones:      make([]ManifestTone, len(g.cfg.Tones)),
		Clicks:     make([]ManifestClick, len(g.cfg.Clicks)),
	}
	for i, t := range g.cfg.Tones {
		m.Tones[i] = ManifestTone{FreqHz: t.FreqHz, LevelDB: t.LevelDB, Magnitude: g.Magnitude(t)}
	}
	for i, idx := range g.ClickIndices() {
		c := g.cfg.Clicks[i]
		m.Clicks[i] = ManifestClick{TimeSec: c.TimeSec, Index: idx, Value: c.Value}
	}
	return m
}

// WriteTo encodes the manifest as YAML.
func (m Manifest) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := yaml.NewEncoder(cw)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return cw.n, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return cw.n, fmt.Errorf("close manifest encoder: %w", err)
	}
	return cw.n, nil
}

// ReadManifest decodes a YAML manifest.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
