package fir

import (
	"math"
)

const besselTolerance = 1e-12

// KaiserBeta returns the Kaiser window shape parameter that reaches the
// given stopband attenuation in dB.
func KaiserBeta(attenuation float64) float64 {
	a := math.Abs(attenuation)
	switch {
	case a > 50:
		return 0.1102 * (a - 8.7)
	case a > 21:
		return 0.5842*math.Pow(a-21, 0.4) + 0.07886*(a-21)
	default:
		return 0
	}
}

// KaiserWindow returns a symmetric Kaiser window of ntaps points.
//
//	w[n] = I0(β·sqrt(1 - ((n-M)/M)²)) / I0(β), M = (ntaps-1)/2
func KaiserWindow(ntaps int, beta float64) []float64 {
	ret := make([]float64, ntaps)
	if ntaps == 1 {
		ret[0] = 1
		return ret
	}

	M := float64(ntaps-1) / 2
	i0Beta := besselI0(beta)

	for i := 0; i < ntaps; i++ {
		x := (float64(i) - M) / M
		ret[i] = besselI0(beta*math.Sqrt(1-x*x)) / i0Beta
	}

	return ret
}

// besselI0 is the zeroth order modified Bessel function of the first kind,
// summed from its power series.
func besselI0(x float64) float64 {
	half := x / 2
	sum := 1.0
	term := 1.0

	for k := 1; k < 500; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselTolerance {
			break
		}
	}

	return sum
}
