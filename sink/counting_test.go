package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	rate   float64
	volume float64
	plays  int
}

func (f *fakeSink) SampleRate() float64 { return f.rate }
func (f *fakeSink) Play(left, right []float64) error {
	f.plays++
	return nil
}
func (f *fakeSink) SetVolume(v float64) { f.volume = v }
func (f *fakeSink) Volume() float64     { return f.volume }

func TestCountingSinkTicksAtInterval(t *testing.T) {
	base := &fakeSink{rate: 1000}
	ticks := 0
	cs := NewCountingSink(base, 10, func() { ticks++ }) // every 100 samples

	require.NoError(t, cs.Play(make([]float64, 60), make([]float64, 60)))
	assert.Equal(t, 0, ticks)

	require.NoError(t, cs.Play(make([]float64, 60), make([]float64, 60)))
	assert.Equal(t, 1, ticks, "120 accumulated samples should have crossed one 100-sample interval")
}

func TestCountingSinkDisabledWithZeroTicksPerSecond(t *testing.T) {
	base := &fakeSink{rate: 1000}
	ticks := 0
	cs := NewCountingSink(base, 0, func() { ticks++ })

	require.NoError(t, cs.Play(make([]float64, 10_000), make([]float64, 10_000)))
	assert.Equal(t, 0, ticks)
}

func TestCountingSinkForwardsPlay(t *testing.T) {
	base := &fakeSink{rate: 1000}
	cs := NewCountingSink(base, 10, nil)
	require.NoError(t, cs.Play(make([]float64, 5), make([]float64, 5)))
	assert.Equal(t, 1, base.plays)
}
