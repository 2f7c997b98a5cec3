package output

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/norasector/deinvert/pkg/deinvert"
)

// RawSink writes signed 16-bit little-endian mono PCM in blocks of
// deinvert.IOBlockSize samples.
type RawSink struct {
	dest io.Writer
	buf  []int16
}

func NewRawSink(dest io.Writer) *RawSink {
	return &RawSink{
		dest: dest,
		buf:  make([]int16, 0, deinvert.IOBlockSize),
	}
}

func (s *RawSink) Push(sample float32) bool {
	s.buf = append(s.buf, toInt16(sample))
	if len(s.buf) < deinvert.IOBlockSize {
		return true
	}
	return s.flush() == nil
}

// Close writes any buffered tail. It does not close the destination.
func (s *RawSink) Close() error {
	return s.flush()
}

func (s *RawSink) flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	err := binary.Write(s.dest, binary.LittleEndian, s.buf)
	s.buf = s.buf[:0]
	return err
}

func clip(sample float32) float32 {
	if sample > 1 {
		return 1
	}
	if sample < -1 {
		return -1
	}
	return sample
}

func toInt16(sample float32) int16 {
	v := clip(sample) * deinvert.PCMScale
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}
