package testsignal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeakFrequency(t *testing.T) {
	for _, freq := range []float64{300, 1000, 2332, 3500} {
		peak := PeakFrequency(Sine(8000, freq, 8000, 0.5), 8000, 0)
		assert.InDelta(t, freq, peak, 2, "tone %g Hz", freq)
	}
}

func TestMagnitudeAt(t *testing.T) {
	s := NewSpectrum(Sum(Sine(8000, 500, 8000, 0.5), Sine(8000, 1500, 8000, 0.25)), 8000)

	assert.InDelta(t, 2, s.MagnitudeAt(500, 5)/s.MagnitudeAt(1500, 5), 0.05)
	assert.Less(t, s.MagnitudeAt(1000, 5), s.MagnitudeAt(1500, 5)/100)
	assert.InDelta(t, 500, s.Peak(0), 2)
	assert.InDelta(t, 1500, s.Peak(1000), 2)
}

func TestSumUsesShortest(t *testing.T) {
	assert.Equal(t, []float32{3, 3}, Sum([]float32{1, 1, 1}, []float32{2, 2}))
	assert.Nil(t, Sum())
}
