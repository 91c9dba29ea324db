package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(0, 1e-13, 0) {
		t.Fatal("expected default epsilon to accept 1e-13")
	}
}

func TestDBConversions(t *testing.T) {
	tests := []struct {
		name string
		db   float64
		lin  float64
	}{
		{name: "unity", db: 0, lin: 1},
		{name: "minus 20", db: -20, lin: 0.1},
		{name: "plus 40", db: 40, lin: 100},
		{name: "grid tone level", db: -32, lin: math.Pow(10, -1.6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DBToLinear(tt.db); !NearlyEqual(got, tt.lin, 1e-12) {
				t.Fatalf("DBToLinear(%v) = %v, want %v", tt.db, got, tt.lin)
			}
			if got := LinearToDB(tt.lin); !NearlyEqual(got, tt.db, 1e-10) {
				t.Fatalf("LinearToDB(%v) = %v, want %v", tt.lin, got, tt.db)
			}
		})
	}
}

func TestLinearToDBEdges(t *testing.T) {
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestLinearToDBSlice(t *testing.T) {
	got := LinearToDBSlice(nil, []float64{1, 0.5, 0.25})
	want := []float64{0, -6.0206, -12.0412}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-4 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}

	reuse := make([]float64, 8)
	got = LinearToDBSlice(reuse, []float64{10})
	if len(got) != 1 || &got[0] != &reuse[0] {
		t.Fatal("expected dst to be reused")
	}
}

func TestNyquist(t *testing.T) {
	if got := Nyquist(16000); got != 8000 {
		t.Fatalf("Nyquist(16000) = %v, want 8000", got)
	}
}
