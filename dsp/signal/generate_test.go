package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/dspcheck/dsp/core"
)

func TestCosineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Cosine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Cosine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
	if s[0] != 1 {
		t.Fatalf("s[0] = %v, want 1", s[0])
	}
}

func TestCosineQuarterRate(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	s, err := g.Cosine(250, 2, 4)
	if err != nil {
		t.Fatalf("Cosine() error = %v", err)
	}
	want := []float64{2, 0, -2, 0}
	for i := range want {
		if math.Abs(s[i]-want[i]) > 1e-12 {
			t.Fatalf("s[%d] = %v, want %v", i, s[i], want[i])
		}
	}
}

func TestCosineInvalid(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Cosine(100, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}

	g = &Generator{}
	if err := g.CosineInto(make([]float64, 4), 100, 1); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestGeneratorConfig(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(22050))
	if g.Config().SampleRate != 22050 {
		t.Fatalf("sample rate = %v, want 22050", g.Config().SampleRate)
	}
}
