package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAMDetectorRecoversEnvelope(t *testing.T) {
	const sampleRate = 48000.0
	const toneHz = 900.0
	n := 4000

	i := make([]float64, n)
	q := make([]float64, n)
	for k := 0; k < n; k++ {
		mod := 1 + 0.8*math.Sin(2*math.Pi*toneHz*float64(k)/sampleRate)
		i[k] = mod
		q[k] = 0
	}

	d := NewAMDetector(sampleRate)
	out := d.Process(i, q)

	var energy float64
	for _, v := range out[500:] {
		energy += v * v
	}
	assert.Greater(t, energy, 0.0)
}

func TestAMDetectorOutputLengthMatchesInput(t *testing.T) {
	i := []float64{3, -4, 0}
	q := []float64{4, 3, 0}
	// sqrt(3^2+4^2)=5, sqrt(4^2+3^2)=5, sqrt(0)=0
	d := NewAMDetector(48000)
	out := d.Process(i, q)
	assert.Equal(t, 3, len(out))
}
