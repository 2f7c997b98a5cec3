package fir

import (
	"github.com/racerxdl/segdsp/dsp"
)

type floatWorker interface {
	WorkBuffer(input, output []float32) int
}

type complexWorker interface {
	WorkBuffer(input, output []complex64) int
}

// SegFloatFilter runs a segdsp float FIR filter one sample at a time.
// Push runs the block filter on the new sample and Execute returns the
// last result.
type SegFloatFilter struct {
	worker floatWorker
	in     [1]float32
	out    [1]float32
}

func NewSegFloatFilter(taps []float32) *SegFloatFilter {
	return &SegFloatFilter{
		worker: dsp.MakeFloatFirFilter(taps),
	}
}

func (f *SegFloatFilter) Push(s float32) {
	f.in[0] = s
	f.worker.WorkBuffer(f.in[:], f.out[:])
}

func (f *SegFloatFilter) Execute() float32 {
	return f.out[0]
}

// SegComplexFilter is the complex sample counterpart of SegFloatFilter.
type SegComplexFilter struct {
	worker complexWorker
	in     [1]complex64
	out    [1]complex64
}

func NewSegComplexFilter(taps []float32) *SegComplexFilter {
	return &SegComplexFilter{
		worker: dsp.MakeFirFilter(taps),
	}
}

func (f *SegComplexFilter) Push(s complex64) {
	f.in[0] = s
	f.worker.WorkBuffer(f.in[:], f.out[:])
}

func (f *SegComplexFilter) Execute() complex64 {
	return f.out[0]
}
