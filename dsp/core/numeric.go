package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
// eps is used as an absolute bound first and as a relative bound second.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
//
// This is the db2mag helper shared by the synthesizer and the response
// visualizer: DBToLinear(-32) is the linear tone magnitude.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearToDBSlice converts every element of linear into dst using
// [LinearToDB]. dst is grown when needed and returned.
func LinearToDBSlice(dst, linear []float64) []float64 {
	if cap(dst) < len(linear) {
		dst = make([]float64, len(linear))
	}
	dst = dst[:len(linear)]
	for i, v := range linear {
		dst[i] = LinearToDB(v)
	}
	return dst
}

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float64) float64 {
	return sampleRate / 2
}
