package deinvert

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/influxdata/influxdb-client-go/api"
	"github.com/norasector/deinvert/pkg/util"
)

// Stats summarizes a run.
type Stats struct {
	Blocks         int
	SamplesRead    int64
	SamplesWritten int64
	// WriteFailures counts samples the sink rejected. They do not stop a run.
	WriteFailures int64
	Duration      time.Duration
}

// Deinverter drives a Descrambler from an AudioSource to an AudioSink.
type Deinverter struct {
	opts        Options
	descrambler *Descrambler
	writeAPI    api.WriteAPI
	logger      zerolog.Logger
}

type DeinverterOption func(d *Deinverter) error

func WithInfluxDB(writeAPI api.WriteAPI) DeinverterOption {
	return func(d *Deinverter) error {
		if writeAPI == nil {
			return fmt.Errorf("nil influxdb write api")
		}
		d.writeAPI = writeAPI
		return nil
	}
}

func WithLogger(logger zerolog.Logger) DeinverterOption {
	return func(d *Deinverter) error {
		d.logger = logger
		return nil
	}
}

// NewDeinverter validates opts and builds the DSP chain. Configuration
// problems are returned as errors wrapping ErrInvalidConfig.
func NewDeinverter(opts Options, options ...DeinverterOption) (*Deinverter, error) {
	d := &Deinverter{
		opts:     opts,
		writeAPI: &util.MockWriteAPI{}, // overwritten with option
		logger:   log.Logger,
	}

	for _, opt := range options {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	descrambler, err := NewDescrambler(opts)
	if err != nil {
		return nil, err
	}
	d.descrambler = descrambler

	return d, nil
}

func (d *Deinverter) Descrambler() *Descrambler {
	return d.descrambler
}

// Run processes src until it is exhausted. Every output sample is pushed to
// sink; rejected samples are counted and processing goes on. ctx is checked
// between blocks. Run does not close sink.
func (d *Deinverter) Run(ctx context.Context, src AudioSource, sink AudioSink) (stats Stats, err error) {
	if rate := src.SampleRate(); rate > 0 && float64(rate) != d.opts.SampleRate {
		return stats, configErrorf("source sample rate %d Hz does not match configured %g Hz", rate, d.opts.SampleRate)
	}

	logEvent := d.logger.Info().
		Str("mode", d.opts.mode()).
		Float64("carrier_hz", d.opts.CarrierFrequencyHigh).
		Float64("sample_rate", d.opts.SampleRate).
		Int("quality", d.opts.Quality).
		Str("backend", d.opts.Backend.String()).
		Int("filter_length", d.descrambler.FilterLength()).
		Int("dc_remover_length", d.descrambler.DCRemoverLength())
	if d.opts.SplitBand {
		logEvent = logEvent.Float64("split_hz", d.opts.CarrierFrequencyLow)
	}
	logEvent.Msg("starting descrambler")

	start := time.Now()
	defer func() {
		stats.Duration = time.Since(start)
		d.writeAPI.Flush()
	}()

	tags := map[string]string{
		"mode":    d.opts.mode(),
		"quality": fmt.Sprint(d.opts.Quality),
		"backend": d.opts.Backend.String(),
	}

	for !src.Exhausted() {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		block, rerr := src.ReadBlock()
		if rerr != nil {
			return stats, fmt.Errorf("reading input block %d: %w", stats.Blocks+1, rerr)
		}
		stats.Blocks++

		var written, failed int64
		elapsed := util.TimeOperation(func() {
			for _, sample := range block {
				if !sink.Push(d.descrambler.Execute(sample)) {
					failed++
					continue
				}
				written++
			}
		})

		stats.SamplesRead += int64(len(block))
		stats.SamplesWritten += written
		stats.WriteFailures += failed

		if failed > 0 {
			d.logger.Debug().
				Int("block", stats.Blocks).
				Int64("write_failures", failed).
				Msg("sink rejected samples")
		}

		d.writeAPI.WritePoint(influxdb2.NewPoint("deinvert.block",
			tags,
			map[string]interface{}{
				"samples":        len(block),
				"write_failures": failed,
				"duration_us":    elapsed.Microseconds(),
			}, time.Now()))
	}

	d.writeAPI.WritePoint(influxdb2.NewPoint("deinvert.run",
		tags,
		map[string]interface{}{
			"blocks":          stats.Blocks,
			"samples_read":    stats.SamplesRead,
			"samples_written": stats.SamplesWritten,
			"write_failures":  stats.WriteFailures,
			"duration_us":     time.Since(start).Microseconds(),
		}, time.Now()))

	d.logger.Info().
		Int("blocks", stats.Blocks).
		Int64("samples_read", stats.SamplesRead).
		Int64("samples_written", stats.SamplesWritten).
		Int64("write_failures", stats.WriteFailures).
		Dur("elapsed", time.Since(start)).
		Msg("input exhausted")

	return stats, nil
}
