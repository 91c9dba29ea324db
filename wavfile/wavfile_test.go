package wavfile

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")

	x := make([]float64, 16000)
	for i := range x {
		x[i] = 0.05 * math.Cos(2*math.Pi*1000*float64(i)/16000)
	}
	x[0] = 0.5
	x[len(x)-1] = 0.5

	require.NoError(t, WriteFile(path, x, 16000))

	got, info, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Info{SampleRate: 16000, Channels: 1, BitDepth: 32, Format: FormatIEEEFloat}, info)
	require.Len(t, got, len(x))

	for i := range x {
		if math.Abs(got[i]-x[i]) > 1e-7 {
			t.Fatalf("sample %d = %g, want %g", i, got[i], x[i])
		}
	}
	assert.Equal(t, 0.5, got[0])
	assert.Equal(t, 0.5, got[len(got)-1])
}

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "size.wav")
	require.NoError(t, WriteFile(path, make([]float64, 100), 8000))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	// 44-byte canonical header plus 4 bytes per sample.
	assert.Equal(t, int64(44+4*100), fi.Size())
}

func TestWriteRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	assert.Error(t, WriteFile(path, []float64{0}, 0))
	assert.Error(t, WriteFile(path, nil, 16000))
}

func TestReadRejectsPCM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pcm.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 8000, 16, 1, FormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{0, 100, -100, 0},
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	_, info, err := ReadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFloat32))
	assert.Equal(t, 16, info.BitDepth)
	assert.Equal(t, FormatPCM, info.Format)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("definitely not a riff stream")))
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
