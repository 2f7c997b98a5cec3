package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/norasector/deinvert/pkg/deinvert"
)

// DefaultCarrier is used when neither a frequency nor a preset is configured.
const DefaultCarrier = 2632

// SelectoneCarriers are the inversion carriers of the Selectone ST-20B
// presets 1 through 8.
var SelectoneCarriers = [...]float64{2632, 2718, 2868, 3023, 3196, 3339, 3495, 3729}

// Stdio names standard input or output in InputFile and OutputFile.
const Stdio = "-"

type Config struct {
	Frequency      float64 `yaml:"frequency"`
	Preset         int     `yaml:"preset"`
	SplitFrequency float64 `yaml:"split_frequency"`
	SampleRate     int     `yaml:"sample_rate"`
	Quality        int     `yaml:"quality"`
	Backend        string  `yaml:"backend"`
	InputFile      string  `yaml:"input_file"`
	OutputFile     string  `yaml:"output_file"`
	InfluxDB       struct {
		Host         string `yaml:"host"`
		Token        string `yaml:"token"`
		Organization string `yaml:"organization"`
		Bucket       string `yaml:"bucket"`
	} `yaml:"influxdb"`
}

func Default() Config {
	return Config{
		Quality: deinvert.DefaultQuality,
		Backend: string(deinvert.BackendNative),
	}
}

// Parse reads a YAML document on top of the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("error unmarshaling yaml: %w", err)
	}
	return c, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	c, err := Parse(data)
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// RawInput reports whether samples are read as raw PCM from standard input.
func (c Config) RawInput() bool {
	return c.InputFile == "" || c.InputFile == Stdio
}

// RawOutput reports whether samples are written as raw PCM to standard output.
func (c Config) RawOutput() bool {
	return c.OutputFile == "" || c.OutputFile == Stdio
}

// Carrier resolves the inversion carrier. An explicit frequency takes
// precedence over a preset. defaulted is true when neither was set.
func (c Config) Carrier() (freq float64, defaulted bool, err error) {
	switch {
	case c.Frequency < 0:
		return 0, false, configErrorf("frequency %g must be positive", c.Frequency)
	case c.Frequency > 0:
		return c.Frequency, false, nil
	case c.Preset != 0:
		if c.Preset < 1 || c.Preset > len(SelectoneCarriers) {
			return 0, false, configErrorf("preset %d outside [1, %d]", c.Preset, len(SelectoneCarriers))
		}
		return SelectoneCarriers[c.Preset-1], false, nil
	}
	return DefaultCarrier, true, nil
}

// Validate checks the settings that do not depend on the input file.
func (c Config) Validate() error {
	if c.RawInput() && c.SampleRate <= 0 {
		return configErrorf("raw input on stdin needs a sample rate")
	}
	if !c.RawInput() && c.SampleRate != 0 {
		return configErrorf("sample rate is read from %s and cannot be set", c.InputFile)
	}
	if c.SplitFrequency < 0 {
		return configErrorf("split frequency %g must be positive", c.SplitFrequency)
	}
	_, _, err := c.Carrier()
	return err
}

// Options builds descrambler options for input at sampleRate.
func (c Config) Options(sampleRate int) (deinvert.Options, error) {
	carrier, _, err := c.Carrier()
	if err != nil {
		return deinvert.Options{}, err
	}

	opts := deinvert.Options{
		CarrierFrequencyHigh: carrier,
		CarrierFrequencyLow:  c.SplitFrequency,
		SampleRate:           float64(sampleRate),
		Quality:              c.Quality,
		SplitBand:            c.SplitFrequency > 0,
		Backend:              deinvert.Backend(c.Backend),
	}

	return opts, opts.Validate()
}

func configErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", deinvert.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
