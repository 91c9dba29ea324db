package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/dspcheck/dsp/signal"
	"github.com/cwbudde/dspcheck/dsp/spectrum"
	timestats "github.com/cwbudde/dspcheck/stats/time"
	"github.com/cwbudde/dspcheck/viz"
	"github.com/cwbudde/dspcheck/wavfile"
	"go.uber.org/zap"
)

// Largest and smallest FFT frames tried for tone verification.
const (
	verifyFrameMax = 4096
	verifyFrameMin = 256
)

type options struct {
	SampleRate float64
	Duration   float64
	LevelDB    float64
	ClickValue float64
	OutputDir  string
	Verify     bool
	Manifest   bool
	Plot       bool
}

// result lists the files run produced.
type result struct {
	WAV      string
	Manifest string
	Plot     string
}

func run(ctx context.Context, opts options, log *zap.Logger) (result, error) {
	var res result

	if opts.SampleRate != math.Trunc(opts.SampleRate) {
		return res, fmt.Errorf("sample rate must be a whole number of Hz: %g", opts.SampleRate)
	}

	log.Info("Synthesise clicks and sinusoids at regular time and frequencies")

	g, err := signal.NewGrid(signal.GridConfig{
		SampleRate: opts.SampleRate,
		Duration:   opts.Duration,
		Tones:      signal.DefaultTones(opts.SampleRate, opts.LevelDB),
		Clicks:     signal.DefaultClicks(opts.SampleRate, opts.Duration, opts.ClickValue),
	})
	if err != nil {
		return res, err
	}

	for _, t := range g.Tones() {
		log.Info(fmt.Sprintf("Synthesise: %8.2fHz at %gdB", t.FreqHz, t.LevelDB))
	}

	x, err := g.Synthesize()
	if err != nil {
		return res, err
	}

	st := timestats.Calculate(x)
	log.Debug("signal summary",
		zap.Int("samples", st.Length),
		zap.Float64("peak", st.Peak),
		zap.Int("peak_pos", st.PeakPos),
		zap.Float64("rms_db", st.RMS_dB),
		zap.Float64("dc", st.DC),
		zap.Ints("clicks", g.ClickIndices()),
	)

	if opts.Verify {
		if err := verify(g, x, log); err != nil {
			return res, err
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return res, err
	}

	res.WAV = filepath.Join(opts.OutputDir, signal.GridFileName(opts.SampleRate))
	if err := wavfile.WriteFile(res.WAV, x, int(opts.SampleRate)); err != nil {
		return res, err
	}
	log.Info("wrote grid signal",
		zap.String("file", res.WAV),
		zap.Int("samples", len(x)),
		zap.Float64("sample_rate", opts.SampleRate),
	)

	base := strings.TrimSuffix(res.WAV, filepath.Ext(res.WAV))

	if opts.Manifest {
		res.Manifest = base + ".yaml"
		if err := writeManifest(res.Manifest, g.Manifest(filepath.Base(res.WAV))); err != nil {
			return res, err
		}
		log.Info("wrote manifest", zap.String("file", res.Manifest))
	}

	if opts.Plot {
		fig, err := viz.Waveform(x, opts.SampleRate, viz.WaveformOptions{
			Title: filepath.Base(res.WAV),
		})
		if err != nil {
			return res, err
		}
		res.Plot = base + ".png"
		if err := fig.Save(res.Plot); err != nil {
			return res, err
		}
		log.Info("wrote waveform plot", zap.String("file", res.Plot))
	}

	return res, nil
}

var errNoQuietFrame = errors.New("verify tones: no click-free frame")

// verify checks every tone on a click-free FFT frame.
func verify(g *signal.Grid, x []float64, log *zap.Logger) error {
	size := verifyFrameMax
	start, ok := g.QuietFrame(size)
	for !ok && size > verifyFrameMin {
		size /= 2
		start, ok = g.QuietFrame(size)
	}
	if !ok {
		return fmt.Errorf("%w: need %d samples between clicks", errNoQuietFrame, verifyFrameMin)
	}

	tones := g.Tones()
	freqs := make([]float64, len(tones))
	for i, t := range tones {
		freqs[i] = t.FreqHz
	}

	rep, err := spectrum.VerifyTones(x[start:start+size], g.Config().SampleRate, freqs)
	if err != nil {
		return fmt.Errorf("verify tones: %w", err)
	}

	for _, tr := range rep.Tones {
		log.Debug("tone level",
			zap.Float64("freq_hz", tr.FreqHz),
			zap.Int("bin", tr.Bin),
			zap.Float64("level_db", tr.LevelDB),
			zap.Bool("found", tr.Found),
		)
	}
	log.Info("verified tones",
		zap.Int("frame", size),
		zap.Int("start", start),
		zap.Float64("off_tone_db", rep.OffToneDB),
	)

	if missing := rep.Missing(); len(missing) > 0 {
		var errs []error
		for _, m := range missing {
			errs = append(errs, fmt.Errorf("tone %.2f Hz not found (%.1f dB)", m.FreqHz, m.BinDB))
		}
		return errors.Join(errs...)
	}
	return nil
}

func writeManifest(path string, m signal.Manifest) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = m.WriteTo(f)
	return err
}
