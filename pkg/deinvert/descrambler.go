package deinvert

import (
	"github.com/norasector/deinvert/pkg/dsp/dcremove"
)

// dcRemoverSeconds is the DC remover window per quality step.
const dcRemoverSeconds = 0.002

var (
	// Gain compensation for filter scaling, by quality.
	simpleGain    = [...]float32{1.0, 1.4, 2.0, 2.0}
	splitBandGain = [...]float32{0.5, 1.4, 1.8, 1.8}
)

// Descrambler removes DC bias from a stream and runs it through one inverter
// (simple mode) or two summed inverters (split-band mode).
type Descrambler struct {
	opts      Options
	dc        *dcremove.DCRemover
	inverters []*Inverter
	gain      float32
}

func NewDescrambler(opts Options) (*Descrambler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	d := &Descrambler{
		opts: opts,
		dc:   dcremove.NewDCRemover(int(float64(opts.Quality) * opts.SampleRate * dcRemoverSeconds)),
	}

	var configs []InverterConfig
	if opts.SplitBand {
		lo, hi := opts.CarrierFrequencyLow, opts.CarrierFrequencyHigh
		configs = []InverterConfig{
			{FreqPrefilter: lo, FreqShift: lo, FreqPostfilter: lo},
			{FreqPrefilter: hi, FreqShift: lo + hi, FreqPostfilter: hi},
		}
		d.gain = splitBandGain[opts.Quality]
	} else {
		f := opts.CarrierFrequencyHigh
		configs = []InverterConfig{
			{FreqPrefilter: f, FreqShift: f, FreqPostfilter: f},
		}
		d.gain = simpleGain[opts.Quality]
	}

	for _, cfg := range configs {
		cfg.SampleRate = opts.SampleRate
		cfg.Quality = opts.Quality
		cfg.Backend = opts.Backend

		inv, err := NewInverter(cfg)
		if err != nil {
			return nil, err
		}
		d.inverters = append(d.inverters, inv)
	}

	return d, nil
}

func (d *Descrambler) Options() Options {
	return d.opts
}

// FilterLength is the tap count of each inverter filter.
func (d *Descrambler) FilterLength() int {
	return d.inverters[0].FilterLength()
}

func (d *Descrambler) DCRemoverLength() int {
	return d.dc.Len()
}

// Execute descrambles one sample.
func (d *Descrambler) Execute(sample float32) float32 {
	d.dc.Push(sample)
	s := d.dc.Execute(sample)

	var out float32
	for _, inv := range d.inverters {
		out += inv.Execute(s)
	}

	return d.gain * out
}

func (d *Descrambler) WorkBuffer(input, output []float32) int {
	for i := 0; i < len(input); i++ {
		output[i] = d.Execute(input[i])
	}
	return len(input)
}

func (d *Descrambler) Work(data []float32) []float32 {
	ret := make([]float32, len(data))
	d.WorkBuffer(data, ret)
	return ret
}

func (d *Descrambler) PredictOutputSize(inputLength int) int {
	return inputLength
}
