// Package wavfile reads and writes mono IEEE float 32-bit WAV files.
//
// Encoding and RIFF chunk handling are delegated to github.com/go-audio/wav;
// this package only fixes the sample format and converts between float64
// buffers and the 32-bit little-endian float payload.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/wav"
)

const (
	// FormatIEEEFloat is the WAVE_FORMAT_IEEE_FLOAT format tag.
	FormatIEEEFloat = 3
	// FormatPCM is the WAVE_FORMAT_PCM format tag.
	FormatPCM = 1

	bitDepth = 32
)

// ErrNotFloat32 is returned by [Read] when the stream is a valid WAV file
// but not IEEE float 32-bit.
var ErrNotFloat32 = errors.New("wavfile: not an IEEE float 32-bit stream")

// Info describes the fmt chunk of a decoded stream.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Format     int
}

// Write encodes x as a mono float32 WAV stream at sampleRate.
// Samples are narrowed to float32 without clipping.
func Write(w io.WriteSeeker, x []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavfile: sample rate must be > 0: %d", sampleRate)
	}
	if len(x) == 0 {
		return errors.New("wavfile: no samples to write")
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, FormatIEEEFloat)
	// One frame per call keeps the encoder's data chunk size exact.
	for i, v := range x {
		if err := enc.WriteFrame(float32(v)); err != nil {
			return fmt.Errorf("wavfile: write sample %d: %w", i, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavfile: finalize header: %w", err)
	}
	return nil
}

// WriteFile creates (or truncates) path and writes x to it with [Write].
func WriteFile(path string, x []float64, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wavfile: %w", cerr)
		}
	}()
	return Write(f, x, sampleRate)
}

// Read decodes a mono or multi-channel float32 WAV stream.
// Multi-channel data is returned interleaved.
func Read(r io.ReadSeeker) ([]float64, Info, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, Info{}, fmt.Errorf("wavfile: %w", err)
		}
		return nil, Info{}, errors.New("wavfile: invalid WAV stream")
	}

	info := Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Format:     int(dec.WavAudioFormat),
	}
	if info.Format != FormatIEEEFloat || info.BitDepth != bitDepth {
		return nil, info, fmt.Errorf("%w: format %d, %d bits", ErrNotFloat32, info.Format, info.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, info, fmt.Errorf("wavfile: read samples: %w", err)
	}

	// The decoder hands back the raw 32-bit words as signed ints.
	x := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		x[i] = float64(math.Float32frombits(uint32(int32(v))))
	}
	return x, info, nil
}

// ReadFile opens path and decodes it with [Read].
func ReadFile(path string) ([]float64, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavfile: %w", err)
	}
	defer f.Close()
	return Read(f)
}
