package mixer

import (
	"math"
)

const (
	tau float64 = math.Pi * 2
)

// NCO is a numerically controlled oscillator. It holds a unit phasor that
// rotates by a fixed angle on every Step.
type NCO struct {
	phase          float64
	phaseIncrement float64
}

// NewNCO creates an oscillator advancing by phaseIncrement radians per step.
func NewNCO(phaseIncrement float64) *NCO {
	return &NCO{
		phaseIncrement: phaseIncrement,
	}
}

// NewNCOFrequency creates an oscillator at frequency Hz for the given sample rate.
func NewNCOFrequency(sampleRate, frequency float64) *NCO {
	return NewNCO(frequency * tau / sampleRate)
}

// Step advances the phase by one sample. The phase is kept in [-π, π].
func (n *NCO) Step() {
	n.phase = math.Remainder(n.phase+n.phaseIncrement, tau)
}

func (n *NCO) Phase() float64 {
	return n.phase
}

func (n *NCO) PhaseIncrement() float64 {
	return n.phaseIncrement
}

// MixUp multiplies s by the phasor at the current phase. It does not advance
// the oscillator.
func (n *NCO) MixUp(s complex64) complex64 {
	sin, cos := math.Sincos(n.phase)
	re, im := float64(real(s)), float64(imag(s))

	return complex(
		float32(re*cos-im*sin),
		float32(im*cos+re*sin),
	)
}

// WorkBuffer mixes every input sample up and steps after each one.
func (n *NCO) WorkBuffer(input []complex64, output []complex64) int {
	for i := 0; i < len(input); i++ {
		output[i] = n.MixUp(input[i])
		n.Step()
	}

	return len(input)
}

func (n *NCO) Work(vals []complex64) []complex64 {
	ret := make([]complex64, len(vals))
	n.WorkBuffer(vals, ret)
	return ret
}

func (n *NCO) PredictOutputSize(inputSize int) int {
	return inputSize
}
