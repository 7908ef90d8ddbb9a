package radio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestByteFloatRoundTrip(t *testing.T) {
	// Spec §8 invariant 9: for any unsigned byte b, b -> float -> clamp ->
	// round(((f+1)*255)/2) yields b.
	rapid.Check(t, func(t *rapid.T) {
		b := byte(rapid.IntRange(0, 255).Draw(t, "b"))
		got := floatToByte(byteToFloat(b))
		assert.Equal(t, b, got)
	})
}

func TestToFloatBlockRange(t *testing.T) {
	raw := RawBlock{IQ: []byte{0, 128, 255, 64}, Frequency: 100, DirectSampling: true}
	f := ToFloatBlock(raw, FloatBlock{})
	require.Equal(t, 2, f.Len())
	for _, v := range append(append([]float64{}, f.I...), f.Q...) {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Equal(t, raw.Frequency, f.Frequency)
	assert.True(t, f.DirectSampling)
}

func TestToRawBlockInverse(t *testing.T) {
	f := FloatBlock{I: []float64{-1, 0, 1}, Q: []float64{1, -0.5, 0}, Frequency: 7}
	raw := ToRawBlock(f, RawBlock{})
	require.Equal(t, 3, raw.Samples())
	back := ToFloatBlock(raw, FloatBlock{})
	for i := range f.I {
		assert.InDelta(t, f.I[i], back.I[i], 1.0/255)
		assert.InDelta(t, f.Q[i], back.Q[i], 1.0/255)
	}
}

func TestToFloatBlockReusesCapacity(t *testing.T) {
	dst := FloatBlock{I: make([]float64, 4), Q: make([]float64, 4)}
	raw := RawBlock{IQ: []byte{1, 2, 3, 4}}
	f := ToFloatBlock(raw, dst)
	assert.Equal(t, 2, f.Len())
}
