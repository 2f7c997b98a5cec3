package fir

import (
	"fmt"
	"math"
)

// MaxTaps is the longest filter MakeKaiserLowPass will design.
const MaxTaps = 2047

// MakeKaiserLowPass designs a linear phase low pass filter of ntaps
// coefficients from a Kaiser windowed sinc. cutoff is a fraction of the
// sample rate in (0, 0.5]. The taps are scaled by 2·cutoff so the passband
// gain is unity.
func MakeKaiserLowPass(ntaps int, cutoff, attenuation float64) ([]float32, error) {
	if ntaps < 1 || ntaps > MaxTaps {
		return nil, fmt.Errorf("filter length %d outside [1, %d]", ntaps, MaxTaps)
	}
	if ntaps%2 == 0 {
		return nil, fmt.Errorf("filter length %d must be odd", ntaps)
	}
	if !(cutoff > 0 && cutoff <= 0.5) {
		return nil, fmt.Errorf("normalized cutoff %f outside (0, 0.5]", cutoff)
	}
	if !(attenuation > 0) {
		return nil, fmt.Errorf("stopband attenuation %f dB must be positive", attenuation)
	}

	var taps = make([]float32, ntaps)
	var w = KaiserWindow(ntaps, KaiserBeta(attenuation))

	var M = (ntaps - 1) / 2

	for i := -M; i <= M; i++ {
		taps[i+M] = float32(2 * cutoff * sinc(2*cutoff*float64(i)) * w[i+M])
	}

	return taps, nil
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}
