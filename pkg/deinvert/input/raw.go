package input

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/norasector/deinvert/pkg/deinvert"
)

// RawSource reads signed 16-bit little-endian mono PCM.
type RawSource struct {
	r          io.Reader
	sampleRate int
	buf        []byte
	exhausted  bool
}

func NewRawSource(r io.Reader, sampleRate int) *RawSource {
	return &RawSource{
		r:          r,
		sampleRate: sampleRate,
		buf:        make([]byte, 2*deinvert.IOBlockSize),
	}
}

func (s *RawSource) ReadBlock() ([]float32, error) {
	if s.exhausted {
		return nil, nil
	}

	n, err := io.ReadFull(s.r, s.buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.exhausted = true
	case err != nil:
		return nil, err
	}

	// A trailing odd byte is not a sample.
	samples := make([]float32, n/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / deinvert.PCMScale
	}
	if len(samples) < deinvert.IOBlockSize {
		s.exhausted = true
	}

	return samples, nil
}

func (s *RawSource) Exhausted() bool {
	return s.exhausted
}

func (s *RawSource) SampleRate() int {
	return s.sampleRate
}
