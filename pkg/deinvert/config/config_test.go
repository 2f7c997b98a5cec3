package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norasector/deinvert/pkg/deinvert"
)

const sampleYAML = `
preset: 3
split_frequency: 1200
quality: 3
backend: segdsp
input_file: scrambled.wav
output_file: clear.wav
influxdb:
  host: http://localhost:8086
  token: secret
  organization: radio
  bucket: deinvert
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Preset)
	assert.Equal(t, 1200.0, c.SplitFrequency)
	assert.Equal(t, 3, c.Quality)
	assert.Equal(t, "segdsp", c.Backend)
	assert.Equal(t, "scrambled.wav", c.InputFile)
	assert.Equal(t, "clear.wav", c.OutputFile)
	assert.Equal(t, "http://localhost:8086", c.InfluxDB.Host)
	assert.Equal(t, "secret", c.InfluxDB.Token)
	assert.Equal(t, "radio", c.InfluxDB.Organization)
	assert.Equal(t, "deinvert", c.InfluxDB.Bucket)
	assert.False(t, c.RawInput())
	assert.False(t, c.RawOutput())
}

func TestParseKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte("sample_rate: 8000\n"))
	require.NoError(t, err)

	assert.Equal(t, deinvert.DefaultQuality, c.Quality)
	assert.Equal(t, "native", c.Backend)
	assert.Equal(t, 8000, c.SampleRate)
	assert.True(t, c.RawInput())
	assert.True(t, c.RawOutput())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("quality: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deinvert.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Preset)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCarrier(t *testing.T) {
	tests := []struct {
		name      string
		frequency float64
		preset    int
		want      float64
		defaulted bool
		err       bool
	}{
		{name: "default", want: DefaultCarrier, defaulted: true},
		{name: "frequency", frequency: 3100, want: 3100},
		{name: "first preset", preset: 1, want: 2632},
		{name: "last preset", preset: 8, want: 3729},
		{name: "frequency wins", frequency: 3100, preset: 4, want: 3100},
		{name: "preset too high", preset: 9, err: true},
		{name: "preset negative", preset: -1, err: true},
		{name: "negative frequency", frequency: -5, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Frequency = tt.frequency
			c.Preset = tt.preset

			got, defaulted, err := c.Carrier()
			if tt.err {
				assert.ErrorIs(t, err, deinvert.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.defaulted, defaulted)
		})
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	assert.ErrorIs(t, c.Validate(), deinvert.ErrInvalidConfig, "stdin without rate")

	c.SampleRate = 8000
	assert.NoError(t, c.Validate())

	c.InputFile = Stdio
	assert.NoError(t, c.Validate())

	c.InputFile = "in.wav"
	assert.ErrorIs(t, c.Validate(), deinvert.ErrInvalidConfig, "wav with rate")

	c.SampleRate = 0
	assert.NoError(t, c.Validate())

	c.Preset = 12
	assert.ErrorIs(t, c.Validate(), deinvert.ErrInvalidConfig)
}

func TestOptions(t *testing.T) {
	c := Default()
	c.Preset = 2
	c.SplitFrequency = 1000

	opts, err := c.Options(16000)
	require.NoError(t, err)
	assert.Equal(t, deinvert.Options{
		CarrierFrequencyHigh: 2718,
		CarrierFrequencyLow:  1000,
		SampleRate:           16000,
		Quality:              2,
		SplitBand:            true,
		Backend:              deinvert.BackendNative,
	}, opts)

	// The Nyquist check runs against the effective rate.
	_, err = c.Options(5000)
	assert.ErrorIs(t, err, deinvert.ErrInvalidConfig)

	c.SplitFrequency = 3000
	_, err = c.Options(16000)
	assert.ErrorIs(t, err, deinvert.ErrInvalidConfig)
}
