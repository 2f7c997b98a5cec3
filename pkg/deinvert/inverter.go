package deinvert

import (
	"fmt"
	"math"

	"github.com/norasector/deinvert/pkg/dsp/filters/fir"
)

var (
	// Filter support in seconds on either side of the center tap, by quality.
	filterSupport     = [...]float64{0, 0.0006, 0.0024, 0.0064}
	filterAttenuation = [...]float64{60, 60, 60, 80}
)

// FilterLength returns the number of taps the inverter filters use at the
// given quality and sample rate. It is always odd and at most fir.MaxTaps.
func FilterLength(quality int, sampleRate float64) (int, error) {
	if quality < MinQuality || quality > MaxQuality {
		return 0, configErrorf("quality %d outside [%d, %d]", quality, MinQuality, MaxQuality)
	}
	return filterLengthInSamples(filterSupport[quality], sampleRate), nil
}

func filterLengthInSamples(seconds, sampleRate float64) int {
	half := math.Round(seconds * sampleRate)
	if half >= fir.MaxTaps/2 {
		return fir.MaxTaps
	}
	return 2*int(half) + 1
}

// InverterConfig holds the frequencies, in Hz, of one inversion channel.
type InverterConfig struct {
	FreqPrefilter  float64
	FreqShift      float64
	FreqPostfilter float64
	SampleRate     float64
	Quality        int
	Backend        Backend
}

// Inverter mirrors the spectrum of a signal around a carrier. At quality 0
// it only mixes; otherwise the signal is band limited before and after.
type Inverter struct {
	oscillator   Oscillator
	prefilter    ComplexFilter
	postfilter   RealFilter
	filterLength int
	doFilter     bool
}

func NewInverter(cfg InverterConfig) (*Inverter, error) {
	if cfg.Quality < MinQuality || cfg.Quality > MaxQuality {
		return nil, configErrorf("quality %d outside [%d, %d]", cfg.Quality, MinQuality, MaxQuality)
	}
	if !(cfg.SampleRate > 0) {
		return nil, configErrorf("sample rate %g must be positive", cfg.SampleRate)
	}
	if !cfg.Backend.valid() {
		return nil, configErrorf("unknown DSP backend %q", cfg.Backend)
	}

	inv := &Inverter{
		oscillator: cfg.Backend.newOscillator(cfg.FreqShift * 2 * math.Pi / cfg.SampleRate),
		doFilter:   cfg.Quality > 0,
	}
	if !inv.doFilter {
		return inv, nil
	}

	inv.filterLength = filterLengthInSamples(filterSupport[cfg.Quality], cfg.SampleRate)
	attenuation := filterAttenuation[cfg.Quality]

	var err error
	inv.prefilter, err = cfg.Backend.newComplexFilter(inv.filterLength, cfg.FreqPrefilter/cfg.SampleRate, attenuation)
	if err != nil {
		return nil, fmt.Errorf("%w: prefilter: %v", ErrInvalidConfig, err)
	}
	inv.postfilter, err = cfg.Backend.newRealFilter(inv.filterLength, cfg.FreqPostfilter/cfg.SampleRate, attenuation)
	if err != nil {
		return nil, fmt.Errorf("%w: postfilter: %v", ErrInvalidConfig, err)
	}

	return inv, nil
}

// FilterLength is the tap count of the inverter's filters, or 0 when it does
// not filter.
func (inv *Inverter) FilterLength() int {
	return inv.filterLength
}

// Execute inverts one sample.
func (inv *Inverter) Execute(sample float32) float32 {
	inv.oscillator.Step()

	if !inv.doFilter {
		return real(inv.oscillator.MixUp(complex(sample, 0)))
	}

	inv.prefilter.Push(complex(sample, 0))
	inv.postfilter.Push(real(inv.oscillator.MixUp(inv.prefilter.Execute())))

	return inv.postfilter.Execute()
}
