package testutil

import (
	"math"
	"testing"
)

func TestDeterministicCosine(t *testing.T) {
	s := DeterministicCosine(4000, 16000, 2, 5)
	want := []float64{2, 0, -2, 0, 2}
	for i := range want {
		if math.Abs(s[i]-want[i]) > 1e-12 {
			t.Fatalf("s[%d] = %v, want %v", i, s[i], want[i])
		}
	}
}

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestImpulseAndDC(t *testing.T) {
	imp := Impulse(4, 2)
	if imp[2] != 1 || imp[0] != 0 {
		t.Fatalf("Impulse = %v", imp)
	}
	if got := Impulse(4, 9); got[0] != 0 || got[3] != 0 {
		t.Fatalf("out-of-range impulse = %v", got)
	}
	for _, v := range DC(0.25, 3) {
		if v != 0.25 {
			t.Fatalf("DC value = %v", v)
		}
	}
}

func TestRMS(t *testing.T) {
	x := []float64{1, -1, 1, -1, 3}
	if got := RMS(x, 0, 4); got != 1 {
		t.Fatalf("RMS = %v, want 1", got)
	}
	if got := RMS(x, 4, 2); got != 0 {
		t.Fatalf("empty RMS = %v, want 0", got)
	}
	if got := RMS(x, -3, 99); math.Abs(got-math.Sqrt(13.0/5)) > 1e-12 {
		t.Fatalf("clamped RMS = %v", got)
	}
}
