package input

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/norasector/deinvert/pkg/deinvert"
)

const wavFormatPCM = 1

// WAVFile reads integer PCM WAV files. Only the first channel is used.
type WAVFile struct {
	closer    io.Closer
	dec       *wav.Decoder
	buf       *audio.IntBuffer
	partial   []int
	channels  int
	bitDepth  int
	exhausted bool
}

func OpenWAVFile(path string) (*WAVFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	w, err := NewWAVSource(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	w.closer = f

	return w, nil
}

// NewWAVSource reads WAV data from r. Close does not close r.
func NewWAVSource(r io.ReadSeeker) (*WAVFile, error) {
	dec := wav.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading WAV header: %w", err)
	}
	if dec.NumChans < 1 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("not a valid WAV file")
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("unsupported WAV audio format %d, only integer PCM is supported", dec.WavAudioFormat)
	}
	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported WAV bit depth %d", dec.BitDepth)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	return &WAVFile{
		dec:      dec,
		channels: channels,
		bitDepth: int(dec.BitDepth),
		buf: &audio.IntBuffer{
			Format: &audio.Format{NumChannels: channels, SampleRate: int(dec.SampleRate)},
			Data:   make([]int, deinvert.IOBlockSize*channels),
		},
	}, nil
}

func (w *WAVFile) ReadBlock() ([]float32, error) {
	if w.exhausted {
		return nil, nil
	}

	samples := make([]float32, 0, deinvert.IOBlockSize)
	for len(samples) < deinvert.IOBlockSize {
		want := (deinvert.IOBlockSize-len(samples))*w.channels - len(w.partial)
		w.buf.Data = w.buf.Data[:want]

		n, err := w.dec.PCMBuffer(w.buf)
		if err != nil {
			return nil, fmt.Errorf("decoding PCM: %w", err)
		}
		if n == 0 {
			break
		}

		// A read may end inside a frame; keep its samples for the next one.
		w.partial = append(w.partial, w.buf.Data[:n]...)
		frames := len(w.partial) / w.channels
		for i := 0; i < frames; i++ {
			samples = append(samples, w.scale(w.partial[i*w.channels]))
		}
		w.partial = append(w.partial[:0], w.partial[frames*w.channels:]...)
	}

	if len(samples) < deinvert.IOBlockSize {
		w.exhausted = true
	}

	return samples, nil
}

func (w *WAVFile) scale(v int) float32 {
	if w.bitDepth == 8 {
		// 8-bit WAV samples are unsigned.
		return float32(v-128) / 128
	}
	return float32(float64(v) / float64(int64(1)<<(w.bitDepth-1)))
}

func (w *WAVFile) Exhausted() bool {
	return w.exhausted
}

func (w *WAVFile) SampleRate() int {
	return int(w.dec.SampleRate)
}

func (w *WAVFile) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
