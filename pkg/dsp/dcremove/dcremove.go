// Package dcremove subtracts a moving-average estimate of DC bias from a
// stream of samples.
package dcremove

// DCRemover keeps the last N raw samples in a ring and subtracts their mean.
type DCRemover struct {
	buffer []float32
	index  int
	filled bool
}

// NewDCRemover creates a remover averaging over length samples. A length of
// zero disables it.
func NewDCRemover(length int) *DCRemover {
	if length < 0 {
		length = 0
	}
	return &DCRemover{
		buffer: make([]float32, length),
	}
}

func (r *DCRemover) Len() int {
	return len(r.buffer)
}

// Push stores a raw sample, overwriting the oldest one once the ring is full.
func (r *DCRemover) Push(sample float32) {
	if len(r.buffer) == 0 {
		return
	}

	r.buffer[r.index] = sample
	r.index = (r.index + 1) % len(r.buffer)

	if r.index == 0 {
		r.filled = true
	}
}

// Execute returns sample minus the mean of the stored samples.
func (r *DCRemover) Execute(sample float32) float32 {
	if len(r.buffer) == 0 {
		return sample
	}

	var sum float32
	for _, s := range r.buffer {
		sum += s
	}

	switch {
	case r.filled:
		sum /= float32(len(r.buffer))
	case r.index > 0:
		sum /= float32(r.index)
	}

	return sample - sum
}

func (r *DCRemover) PredictOutputSize(inputSize int) int {
	return inputSize
}

// WorkBuffer pushes every input sample and writes it with the bias removed.
func (r *DCRemover) WorkBuffer(input, output []float32) int {
	for i := 0; i < len(input); i++ {
		r.Push(input[i])
		output[i] = r.Execute(input[i])
	}

	return len(input)
}

func (r *DCRemover) Work(data []float32) []float32 {
	ret := make([]float32, len(data))
	r.WorkBuffer(data, ret)
	return ret
}
