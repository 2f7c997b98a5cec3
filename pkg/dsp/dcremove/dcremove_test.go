package dcremove

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLengthIsIdentity(t *testing.T) {
	r := NewDCRemover(0)
	require.Equal(t, 0, r.Len())

	for _, s := range []float32{0.3, -1, 1, 0} {
		r.Push(s)
		assert.Equal(t, s, r.Execute(s))
	}
}

func TestNegativeLengthIsDisabled(t *testing.T) {
	r := NewDCRemover(-4)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, float32(0.5), r.Execute(0.5))
}

func TestExecuteBeforePush(t *testing.T) {
	r := NewDCRemover(8)
	assert.Equal(t, float32(0.25), r.Execute(0.25))
}

func TestConstantConverges(t *testing.T) {
	tests := []struct {
		name   string
		length int
		pushes int
	}{
		{"partially filled", 16, 5},
		{"exactly filled", 16, 16},
		{"wrapped", 16, 41},
		{"single slot", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const c = float32(0.37)
			r := NewDCRemover(tt.length)
			for i := 0; i < tt.pushes; i++ {
				r.Push(c)
			}
			assert.InDelta(t, 0, r.Execute(c), 1e-6)
		})
	}
}

func TestPartialFillTowardsZero(t *testing.T) {
	// A step from 0 to c: the residual shrinks as more of the ring holds c.
	const c = float32(1)
	r := NewDCRemover(10)
	for i := 0; i < 10; i++ {
		r.Push(0)
	}

	last := float32(math.Inf(1))
	for i := 0; i < 10; i++ {
		r.Push(c)
		got := r.Execute(c)
		assert.LessOrEqual(t, got, last)
		last = got
	}
	assert.InDelta(t, 0, last, 1e-6)
}

func TestRemovesOffsetFromTone(t *testing.T) {
	const (
		length = 100
		offset = 0.2
	)
	r := NewDCRemover(length)

	in := make([]float32, 10*length)
	for i := range in {
		// Exactly 5 periods fit the ring.
		in[i] = offset + 0.5*float32(math.Sin(2*math.Pi*float64(i)/20))
	}

	out := r.Work(in)
	require.Len(t, out, r.PredictOutputSize(len(in)))

	var mean float64
	for _, s := range out[length:] {
		mean += float64(s)
	}
	mean /= float64(len(out) - length)
	assert.InDelta(t, 0, mean, 1e-3)
}

func TestSilenceStaysSilent(t *testing.T) {
	r := NewDCRemover(32)
	for i := 0; i < 100; i++ {
		r.Push(0)
		got := r.Execute(0)
		assert.False(t, math.IsNaN(float64(got)))
		assert.Equal(t, float32(0), got)
	}
}
