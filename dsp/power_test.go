package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPower(t *testing.T) {
	i := []float64{1, 0, 3}
	q := []float64{0, 1, 4}
	// (1+0 + 0+1 + 9+16)/3 = 27/3 = 9
	assert.InDelta(t, 9.0, Power(i, q), 1e-9)
}

func TestSNRZeroTotalPower(t *testing.T) {
	assert.Equal(t, 0.0, SNR(1, 0, 48000, 15000))
}

func TestSNRMatchesFormula(t *testing.T) {
	got := SNR(2, 4, 48000, 15000)
	want := (2.0 * 48000 / 15000) / 4.0
	assert.InDelta(t, want, got, 1e-9)
}
