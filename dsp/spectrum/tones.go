package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcheck/dsp/core"
)

// DefaultFloorDB is the level below which a tone counts as absent.
const DefaultFloorDB = -120.0

// ToneReport describes how one expected tone shows up in a frame.
type ToneReport struct {
	FreqHz  float64
	Bin     int
	LevelDB float64 // Goertzel level at FreqHz, amplitude-calibrated
	BinDB   float64 // FFT level at Bin
	Found   bool    // Bin is a local maximum above the floor
}

// Report is the result of [VerifyTones].
type Report struct {
	Tones []ToneReport
	// OffToneDB is the strongest FFT bin more than one bin away from any
	// expected tone.
	OffToneDB     float64
	OffToneFreqHz float64
}

// Missing returns the tones that were not found.
func (r Report) Missing() []ToneReport {
	var out []ToneReport
	for _, t := range r.Tones {
		if !t.Found {
			out = append(out, t)
		}
	}
	return out
}

// VerifyTones analyzes frame at sampleRate and reports the level of every
// frequency in freqs. len(frame) must be a power of two.
func VerifyTones(frame []float64, sampleRate float64, freqs []float64) (Report, error) {
	a, err := NewAnalyzer(len(frame), sampleRate)
	if err != nil {
		return Report{}, err
	}

	amp, err := a.Amplitude(frame)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Tones:     make([]ToneReport, len(freqs)),
		OffToneDB: math.Inf(-1),
	}
	near := make([]bool, len(amp))

	for i, f := range freqs {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return Report{}, fmt.Errorf("verify tone %d: %w", i, err)
		}
		g.ProcessBlock(frame)

		k := a.Bin(f)
		binDB := core.LinearToDB(amp[k])
		rep.Tones[i] = ToneReport{
			FreqHz:  f,
			Bin:     k,
			LevelDB: core.LinearToDB(g.Amplitude()),
			BinDB:   binDB,
			Found:   binDB > DefaultFloorDB && isLocalMax(amp, k),
		}
		for j := k - 1; j <= k+1; j++ {
			if j >= 0 && j < len(near) {
				near[j] = true
			}
		}
	}

	for k, v := range amp {
		if near[k] {
			continue
		}
		if db := core.LinearToDB(v); db > rep.OffToneDB {
			rep.OffToneDB = db
			rep.OffToneFreqHz = float64(k) * a.BinHz()
		}
	}

	return rep, nil
}

func isLocalMax(x []float64, k int) bool {
	if k > 0 && x[k-1] > x[k] {
		return false
	}
	if k < len(x)-1 && x[k+1] > x[k] {
		return false
	}
	return true
}
