package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStereoSeparatorFindsPilot(t *testing.T) {
	const sampleRate = 336000.0
	n := 200000

	composite := make([]float64, n)
	for k := 0; k < n; k++ {
		t := float64(k) / sampleRate
		// Mono content plus a clean 19kHz pilot at a realistic relative
		// amplitude (~10% of mono).
		composite[k] = math.Sin(2*math.Pi*600*t) + 0.1*math.Sin(2*math.Pi*19000*t)
	}

	s := NewStereoSeparator(sampleRate)
	var result StereoResult
	// Feed in blocks, the way a pipeline would across several reads.
	block := 4096
	for start := 0; start < n; start += block {
		end := start + block
		if end > n {
			end = n
		}
		result = s.Process(composite[start:end])
	}

	assert.True(t, result.Found, "pilot should be found after settling over many blocks")
}

func TestStereoSeparatorNoPilotMeansNotFound(t *testing.T) {
	const sampleRate = 336000.0
	n := 50000
	composite := make([]float64, n)
	for k := range composite {
		composite[k] = math.Sin(2 * math.Pi * 600 * float64(k) / sampleRate)
	}

	s := NewStereoSeparator(sampleRate)
	result := s.Process(composite)
	assert.False(t, result.Found)
	for _, v := range result.Diff {
		assert.Equal(t, 0.0, v)
	}
}
