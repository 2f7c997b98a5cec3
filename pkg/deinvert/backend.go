package deinvert

import (
	"github.com/norasector/deinvert/pkg/dsp/filters/fir"
	"github.com/norasector/deinvert/pkg/dsp/mixer"
)

// Oscillator shifts samples in frequency. Step advances it by one sample.
type Oscillator interface {
	Step()
	MixUp(s complex64) complex64
}

type RealFilter interface {
	Push(s float32)
	Execute() float32
}

type ComplexFilter interface {
	Push(s complex64)
	Execute() complex64
}

// Backend selects the implementation of the oscillator and filters.
type Backend string

const (
	// BackendNative uses this module's own filters. It is the default.
	BackendNative Backend = "native"
	// BackendSegDSP runs the filters on segdsp's FIR implementation.
	BackendSegDSP Backend = "segdsp"
)

func (b Backend) valid() bool {
	switch b {
	case "", BackendNative, BackendSegDSP:
		return true
	}
	return false
}

func (b Backend) String() string {
	if b == "" {
		return string(BackendNative)
	}
	return string(b)
}

func (b Backend) newOscillator(phaseIncrement float64) Oscillator {
	return mixer.NewNCO(phaseIncrement)
}

func (b Backend) newRealFilter(ntaps int, cutoff, attenuation float64) (RealFilter, error) {
	taps, err := fir.MakeKaiserLowPass(ntaps, cutoff, attenuation)
	if err != nil {
		return nil, err
	}

	if b == BackendSegDSP {
		return fir.NewSegFloatFilter(taps), nil
	}
	return fir.NewRealFilter(taps), nil
}

func (b Backend) newComplexFilter(ntaps int, cutoff, attenuation float64) (ComplexFilter, error) {
	taps, err := fir.MakeKaiserLowPass(ntaps, cutoff, attenuation)
	if err != nil {
		return nil, err
	}

	if b == BackendSegDSP {
		return fir.NewSegComplexFilter(taps), nil
	}
	return fir.NewComplexFilter(taps), nil
}
