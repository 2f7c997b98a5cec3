package deinvert

// IOBlockSize is the number of samples sources read and sinks buffer at a time.
const IOBlockSize = 4096

// PCMScale maps 16-bit PCM to samples in [-1, 1) and back.
const PCMScale = 32768

// AudioSource produces mono samples in [-1, 1].
type AudioSource interface {
	// ReadBlock returns up to IOBlockSize samples. A block shorter than that
	// marks the source exhausted.
	ReadBlock() ([]float32, error)
	// Exhausted reports whether the last read reached the end of the input.
	Exhausted() bool
	SampleRate() int
}

// AudioSink consumes mono samples in [-1, 1].
type AudioSink interface {
	// Push queues one sample. It returns false when a downstream write failed.
	Push(sample float32) bool
	// Close flushes buffered samples.
	Close() error
}
