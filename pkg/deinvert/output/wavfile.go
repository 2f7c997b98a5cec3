package output

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/norasector/deinvert/pkg/deinvert"
)

const (
	wavBitDepth  = 16
	wavFormatPCM = 1
)

// WAVFile writes 16-bit mono PCM WAV files. Headers are only valid after
// Close.
type WAVFile struct {
	f   *os.File
	enc *wav.Encoder
	buf *audio.IntBuffer
}

func CreateWAVFile(path string, sampleRate int) (*WAVFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &WAVFile{
		f:   f,
		enc: wav.NewEncoder(f, sampleRate, wavBitDepth, 1, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			Data:           make([]int, 0, deinvert.IOBlockSize),
			SourceBitDepth: wavBitDepth,
		},
	}, nil
}

func (w *WAVFile) Push(sample float32) bool {
	w.buf.Data = append(w.buf.Data, int(toInt16(sample)))
	if len(w.buf.Data) < deinvert.IOBlockSize {
		return true
	}
	return w.flush() == nil
}

// Close flushes buffered samples, finalizes the headers and closes the file.
func (w *WAVFile) Close() error {
	// Write always emits the header, so an empty run still yields a valid file.
	err := w.flush()
	if err == nil {
		err = w.enc.Close()
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("closing %s: %w", w.f.Name(), err)
	}
	return nil
}

func (w *WAVFile) flush() error {
	err := w.enc.Write(w.buf)
	w.buf.Data = w.buf.Data[:0]
	return err
}
