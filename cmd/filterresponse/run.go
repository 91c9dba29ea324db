package main

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcheck/dsp/core"
	"github.com/cwbudde/dspcheck/measure/response"
	frequencystats "github.com/cwbudde/dspcheck/stats/frequency"
	"github.com/cwbudde/dspcheck/viz"
	"go.uber.org/zap"
)

// Measured curves are compared to the analytic digital response down to
// this level.
const measureFloorDB = -100.0

type options struct {
	Response response.Config
	Output   string
	YMin     float64
	YMax     float64
}

// run computes the curves, writes the figure and returns its path.
func run(opts options, log *zap.Logger) (string, error) {
	cfg := opts.Response
	if cfg.SampleRate != math.Trunc(cfg.SampleRate) {
		return "", fmt.Errorf("sample rate must be a whole number of Hz: %g", cfg.SampleRate)
	}

	log.Info("Show Butterworth filter response")

	curves, err := response.Compute(cfg)
	if err != nil {
		return "", err
	}

	for _, c := range curves {
		st := frequencystats.Calculate(c.FreqHz, c.Magnitude)
		fields := []zap.Field{
			zap.String("curve", c.Label()),
			zap.Float64("cutoff_db", dbAt(c, cfg.Cutoff)),
			zap.Float64("nyquist_db", dbAt(c, cfg.SampleRate/2)),
			zap.Float64("centroid_hz", st.Centroid),
			zap.Float64("rolloff_hz", st.Rolloff),
			zap.Float64("bandwidth_hz", st.Bandwidth),
			zap.Float64("flatness", st.Flatness),
		}
		if edge, ok := frequencystats.EdgeFrequency(c.FreqHz, c.Magnitude, frequencystats.HalfPowerDB); ok {
			fields = append(fields, zap.Float64("edge_3db_hz", edge))
		}
		log.Info("response", fields...)
	}

	if cfg.Digital {
		if err := checkMeasured(cfg, log); err != nil {
			return "", err
		}
	}

	fig, err := viz.ResponsePlot(curves, viz.ResponseOptions{
		Title:  fmt.Sprintf("Butterworth low-pass, fc = %g Hz, fs = %g Hz", cfg.Cutoff, cfg.SampleRate),
		XLabel: "Frequency [Hz]",
		YLabel: "Amplitude [dB]",
		YMin:   opts.YMin,
		YMax:   opts.YMax,
	})
	if err != nil {
		return "", err
	}

	path := opts.Output
	if path == "" {
		path = fmt.Sprintf("butterworth_response_fs%d.png", int(cfg.SampleRate))
	}
	if err := fig.Save(path); err != nil {
		return "", err
	}
	log.Info("wrote figure", zap.String("file", path), zap.Int("curves", len(curves)))

	return path, nil
}

// checkMeasured filters an impulse with each digital cascade and logs how
// far the result is from the analytic curve. DFT lengths that are not a
// power of two are skipped.
func checkMeasured(cfg response.Config, log *zap.Logger) error {
	if cfg.DFTLen&(cfg.DFTLen-1) != 0 {
		log.Warn("skipping measured response", zap.Int("dft_len", cfg.DFTLen))
		return nil
	}

	digital := cfg
	digital.Digital = true
	curves, err := response.Compute(digital)
	if err != nil {
		return err
	}

	for _, want := range curves[len(cfg.Orders):] {
		got, err := response.Measure(cfg, want.Order)
		if err != nil {
			return err
		}
		dev, err := response.MaxDeviationDB(got, want, measureFloorDB)
		if err != nil {
			return err
		}
		log.Debug("measured zero-phase response",
			zap.Int("order", want.Order),
			zap.Float64("max_deviation_db", dev),
		)
	}
	return nil
}

func dbAt(c response.Curve, freqHz float64) float64 {
	return core.LinearToDB(c.At(freqHz))
}
