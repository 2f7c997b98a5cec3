package fir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		want        float64
	}{
		{"80dB", 80, 7.857264},
		{"60dB", 60, 5.65326},
		{"30dB", 30, 2.11662},
		{"20dB", 20, 0},
		{"negative is magnitude", -60, 5.65326},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, KaiserBeta(tt.attenuation), 1e-4)
		})
	}
}

func TestBesselI0(t *testing.T) {
	assert.Equal(t, 1.0, besselI0(0))
	assert.InDelta(t, 1.2660658777520082, besselI0(1), 1e-12)
	assert.InDelta(t, 27.239871823604442, besselI0(5), 1e-9)
	assert.InDelta(t, besselI0(3), besselI0(-3), 1e-12)
}

func TestKaiserWindowShape(t *testing.T) {
	const beta = 5.65326
	w := KaiserWindow(31, beta)
	require.Len(t, w, 31)

	assert.InDelta(t, 1.0, w[15], 1e-12)
	assert.InDelta(t, 1/besselI0(beta), w[0], 1e-12)
	for i := 0; i < len(w); i++ {
		assert.InDelta(t, w[i], w[len(w)-1-i], 1e-12)
		if i > 0 && i <= 15 {
			assert.Greater(t, w[i], w[i-1])
		}
	}

	assert.Equal(t, []float64{1}, KaiserWindow(1, beta))
}

func TestMakeKaiserLowPassValidation(t *testing.T) {
	tests := []struct {
		name        string
		ntaps       int
		cutoff      float64
		attenuation float64
	}{
		{"zero length", 0, 0.1, 60},
		{"even length", 64, 0.1, 60},
		{"too long", MaxTaps + 2, 0.1, 60},
		{"zero cutoff", 31, 0, 60},
		{"cutoff above nyquist", 31, 0.51, 60},
		{"NaN cutoff", 31, math.NaN(), 60},
		{"zero attenuation", 31, 0.1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MakeKaiserLowPass(tt.ntaps, tt.cutoff, tt.attenuation)
			assert.Error(t, err)
		})
	}

	taps, err := MakeKaiserLowPass(MaxTaps, 0.5, 80)
	require.NoError(t, err)
	assert.Len(t, taps, MaxTaps)
}

func TestMakeKaiserLowPassSymmetricUnityGain(t *testing.T) {
	taps, err := MakeKaiserLowPass(101, 0.1, 60)
	require.NoError(t, err)

	var sum float64
	for i, tap := range taps {
		assert.Equal(t, tap, taps[len(taps)-1-i])
		sum += float64(tap)
	}
	assert.InDelta(t, 1.0, sum, 0.01)
	assert.InDelta(t, 0.2, taps[50], 1e-6)
}

func TestMakeKaiserLowPassResponse(t *testing.T) {
	taps, err := MakeKaiserLowPass(101, 0.1, 60)
	require.NoError(t, err)

	response := func(f float64) float64 {
		M := (len(taps) - 1) / 2
		var h float64
		for i, tap := range taps {
			h += float64(tap) * math.Cos(2*math.Pi*f*float64(i-M))
		}
		return math.Abs(h)
	}

	assert.InDelta(t, 1.0, response(0.02), 0.01)
	assert.InDelta(t, 0.5, response(0.1), 0.05)
	assert.Less(t, response(0.2), math.Pow(10, -50.0/20))
	assert.Less(t, response(0.4), math.Pow(10, -50.0/20))
}
