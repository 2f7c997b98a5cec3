package deinvert

import (
	"fmt"
)

const (
	MinQuality     = 0
	MaxQuality     = 3
	DefaultQuality = 2
)

// Options configures a descrambling run.
type Options struct {
	// CarrierFrequencyHigh is the inversion carrier in Hz. In split-band mode
	// it is the upper carrier.
	CarrierFrequencyHigh float64
	// CarrierFrequencyLow is the split point in Hz, used only in split-band mode.
	CarrierFrequencyLow float64
	SampleRate          float64
	// Quality selects the filtering effort from 0 (none) to 3.
	Quality   int
	SplitBand bool
	Backend   Backend
}

// Validate reports the first problem that would keep a run from starting.
func (o Options) Validate() error {
	if o.Quality < MinQuality || o.Quality > MaxQuality {
		return configErrorf("quality %d outside [%d, %d]", o.Quality, MinQuality, MaxQuality)
	}
	if !(o.SampleRate > 0) {
		return configErrorf("sample rate %g must be positive", o.SampleRate)
	}
	if !(o.CarrierFrequencyHigh > 0) {
		return configErrorf("carrier frequency %g must be positive", o.CarrierFrequencyHigh)
	}
	if o.SplitBand {
		if !(o.CarrierFrequencyLow > 0) {
			return configErrorf("split frequency %g must be positive", o.CarrierFrequencyLow)
		}
		if o.CarrierFrequencyLow >= o.CarrierFrequencyHigh {
			return configErrorf("split point %g Hz must be below the inversion carrier %g Hz",
				o.CarrierFrequencyLow, o.CarrierFrequencyHigh)
		}
	}
	if o.SampleRate < 2*o.CarrierFrequencyHigh {
		return configErrorf("sample rate %g Hz must be at least twice the inversion frequency %g Hz",
			o.SampleRate, o.CarrierFrequencyHigh)
	}
	if !o.Backend.valid() {
		return configErrorf("unknown DSP backend %q", o.Backend)
	}

	return nil
}

func (o Options) mode() string {
	if o.SplitBand {
		return "split-band"
	}
	return "simple"
}

func (o Options) String() string {
	if o.SplitBand {
		return fmt.Sprintf("split-band %g/%g Hz @ %g Hz, quality %d", o.CarrierFrequencyLow, o.CarrierFrequencyHigh, o.SampleRate, o.Quality)
	}
	return fmt.Sprintf("%g Hz @ %g Hz, quality %d", o.CarrierFrequencyHigh, o.SampleRate, o.Quality)
}
