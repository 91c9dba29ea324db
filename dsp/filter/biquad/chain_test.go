package biquad

import (
	"math"
	"testing"
)

func twoSections() []Coefficients {
	return []Coefficients{
		{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.5, A2: 0.25},
		{B0: 0.3, B1: 0.6, B2: 0.3, A1: -0.3, A2: 0.1},
	}
}

func TestChain_MatchesManualCascade(t *testing.T) {
	coeffs := twoSections()
	c := NewChain(coeffs, WithGain(0.5))
	s0, s1 := NewSection(coeffs[0]), NewSection(coeffs[1])

	for i := range 64 {
		x := math.Cos(0.2 * float64(i))
		want := s1.ProcessSample(s0.ProcessSample(0.5 * x))
		if got := c.ProcessSample(x); !almostEqual(got, want, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestChain_ProcessBlockMatchesSample(t *testing.T) {
	coeffs := twoSections()
	ref := NewChain(coeffs, WithGain(2))
	c := NewChain(coeffs, WithGain(2))

	buf := make([]float64, 128)
	want := make([]float64, len(buf))
	for i := range buf {
		buf[i] = math.Sin(0.7 * float64(i))
		want[i] = ref.ProcessSample(buf[i])
	}

	c.ProcessBlock(buf)
	for i := range buf {
		if !almostEqual(buf[i], want[i], 1e-12) {
			t.Fatalf("index %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestChain_Order(t *testing.T) {
	c := NewChain([]Coefficients{
		{B0: 1, B1: 1, B2: 1, A1: 0.1, A2: 0.1},
		{B0: 0.5, B1: 0.5, A1: -0.2},
	})
	if c.Order() != 3 {
		t.Fatalf("Order() = %d, want 3", c.Order())
	}
	if c.NumSections() != 2 {
		t.Fatalf("NumSections() = %d, want 2", c.NumSections())
	}
}

func TestChain_CoefficientsCopy(t *testing.T) {
	c := NewChain(twoSections())
	got := c.Coefficients()
	got[0].B0 = 99

	if c.Coefficients()[0].B0 == 99 {
		t.Fatal("Coefficients() exposed internal state")
	}
}

func TestChain_StableLongRun(t *testing.T) {
	c := NewChain(twoSections())
	buf := make([]float64, 100000)
	buf[0] = 1
	c.ProcessBlock(buf)

	for i, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite output at %d", i)
		}
	}
	if math.Abs(buf[len(buf)-1]) > 1e-12 {
		t.Fatalf("impulse response did not decay: %g", buf[len(buf)-1])
	}
}
