package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/dspcheck/internal/testutil"
	"github.com/mjibson/go-dsp/fft"
)

func TestAnalyzer_MatchesReferenceFFT(t *testing.T) {
	const size = 1024
	sig := testutil.DeterministicNoise(7, 1, size)

	a, err := NewAnalyzer(size, 16000)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	got, err := a.Amplitude(sig)
	if err != nil {
		t.Fatalf("Amplitude: %v", err)
	}

	ref := fft.FFTReal(sig)
	want := make([]float64, a.Bins())
	for k := range want {
		want[k] = cmplx.Abs(ref[k]) / size
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-10)
}

func TestAnalyzer_BinMapping(t *testing.T) {
	a, err := NewAnalyzer(4096, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if a.Size() != 4096 || a.Bins() != 2049 {
		t.Fatalf("size=%d bins=%d", a.Size(), a.Bins())
	}
	if a.BinHz() != 16000.0/4096 {
		t.Fatalf("BinHz() = %v", a.BinHz())
	}

	tests := []struct {
		freq float64
		want int
	}{
		{0, 0},
		{1000, 256},
		{7000, 1792},
		{8000, 2048},
		{-5, 0},
		{9000, 2048},
	}
	for _, tt := range tests {
		if got := a.Bin(tt.freq); got != tt.want {
			t.Fatalf("Bin(%v) = %d, want %d", tt.freq, got, tt.want)
		}
	}
}

func TestAnalyzer_CosineAmplitude(t *testing.T) {
	a, err := NewAnalyzer(4096, 16000)
	if err != nil {
		t.Fatal(err)
	}
	amp, err := a.Amplitude(testutil.DeterministicCosine(1000, 16000, 2*0.05, 4096))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(amp[256]-0.05) > 1e-12 {
		t.Fatalf("amp[256] = %v, want 0.05", amp[256])
	}
	if amp[255] > 1e-12 || amp[257] > 1e-12 {
		t.Fatalf("leakage next to bin-aligned tone: %v %v", amp[255], amp[257])
	}
}

func TestAnalyzer_InvalidInputs(t *testing.T) {
	for _, size := range []int{0, 1, 1000, -4} {
		if _, err := NewAnalyzer(size, 16000); err == nil {
			t.Fatalf("NewAnalyzer(%d) expected error", size)
		}
	}
	if _, err := NewAnalyzer(64, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	a, err := NewAnalyzer(64, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Amplitude(make([]float64, 32)); err == nil {
		t.Fatal("expected error for wrong frame length")
	}
}

func TestMagnitude(t *testing.T) {
	got := Magnitude([]complex128{3 + 4i, -1, 0})
	testutil.RequireSliceNearlyEqual(t, got, []float64{5, 1, 0}, 1e-12)
	if Magnitude(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}
