package fir

// Sample is the set of sample types a Filter can run on.
type Sample interface {
	~float32 | ~complex64
}

// Filter is a streaming FIR filter. Samples go in one at a time with Push
// and Execute returns the convolution of the taps with the most recent
// len(taps) samples.
type Filter[T Sample] struct {
	taps    []T
	history []T
	// index is the slot of the oldest sample, which the next Push overwrites.
	index int
}

func newFilter[T Sample](taps []T) *Filter[T] {
	return &Filter[T]{
		taps:    taps,
		history: make([]T, len(taps)),
	}
}

// NewRealFilter returns a filter for real samples.
func NewRealFilter(taps []float32) *Filter[float32] {
	t := make([]float32, len(taps))
	copy(t, taps)
	return newFilter(t)
}

// NewComplexFilter returns a filter for complex samples with real taps.
func NewComplexFilter(taps []float32) *Filter[complex64] {
	t := make([]complex64, len(taps))
	for i, tap := range taps {
		t[i] = complex(tap, 0)
	}
	return newFilter(t)
}

func (f *Filter[T]) Len() int {
	return len(f.taps)
}

func (f *Filter[T]) Push(s T) {
	if len(f.history) == 0 {
		return
	}
	f.history[f.index] = s
	f.index++
	if f.index == len(f.history) {
		f.index = 0
	}
}

// Execute computes the filter output for the current history. It may be
// called without a preceding Push.
func (f *Filter[T]) Execute() T {
	var acc T
	n := len(f.taps)

	// Oldest sample meets the last tap.
	j := f.index
	for k := n - 1; k >= 0; k-- {
		acc += f.taps[k] * f.history[j]
		j++
		if j == n {
			j = 0
		}
	}

	return acc
}

// WorkBuffer pushes every input sample and writes the matching output.
func (f *Filter[T]) WorkBuffer(input, output []T) int {
	for i := 0; i < len(input); i++ {
		f.Push(input[i])
		output[i] = f.Execute()
	}
	return len(input)
}

func (f *Filter[T]) Work(data []T) []T {
	ret := make([]T, len(data))
	f.WorkBuffer(data, ret)
	return ret
}

func (f *Filter[T]) PredictOutputSize(inputLength int) int {
	return inputLength
}
