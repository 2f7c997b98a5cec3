// Package testsignal generates synthetic audio and inspects its spectrum in
// tests.
package testsignal

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Sine returns n samples of amplitude*sin(2*pi*freq*t).
func Sine(n int, freq, sampleRate, amplitude float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return out
}

// Sum adds signals sample by sample. The result has the length of the
// shortest input.
func Sum(signals ...[]float32) []float32 {
	if len(signals) == 0 {
		return nil
	}
	n := len(signals[0])
	for _, s := range signals[1:] {
		if len(s) < n {
			n = len(s)
		}
	}
	out := make([]float32, n)
	for _, s := range signals {
		for i := 0; i < n; i++ {
			out[i] += s[i]
		}
	}
	return out
}

// Spectrum is the one-sided magnitude spectrum of a Hann-windowed signal.
type Spectrum struct {
	Magnitudes []float64
	sampleRate float64
	fft        *fourier.FFT
}

func NewSpectrum(samples []float32, sampleRate float64) *Spectrum {
	seq := make([]float64, len(samples))
	for i, s := range samples {
		seq[i] = float64(s)
	}
	window.Hann(seq)

	fft := fourier.NewFFT(len(seq))
	coeffs := fft.Coefficients(nil, seq)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}

	return &Spectrum{Magnitudes: mags, sampleRate: sampleRate, fft: fft}
}

// Freq returns the frequency in Hz of bin i.
func (s *Spectrum) Freq(i int) float64 {
	return s.fft.Freq(i) * s.sampleRate
}

// Peak returns the frequency of the strongest bin above minFreq.
func (s *Spectrum) Peak(minFreq float64) float64 {
	best := -1
	for i, m := range s.Magnitudes {
		if s.Freq(i) < minFreq {
			continue
		}
		if best < 0 || m > s.Magnitudes[best] {
			best = i
		}
	}
	if best < 0 {
		return 0
	}
	return s.Freq(best)
}

// MagnitudeAt returns the largest magnitude within tolerance Hz of freq.
func (s *Spectrum) MagnitudeAt(freq, tolerance float64) float64 {
	var m float64
	for i, v := range s.Magnitudes {
		if math.Abs(s.Freq(i)-freq) <= tolerance && v > m {
			m = v
		}
	}
	return m
}

// PeakFrequency is shorthand for NewSpectrum(samples, sampleRate).Peak(minFreq).
func PeakFrequency(samples []float32, sampleRate, minFreq float64) float64 {
	return NewSpectrum(samples, sampleRate).Peak(minFreq)
}
