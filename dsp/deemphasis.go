package dsp

import "math"

// Default de-emphasis time constants (spec §4.8).
const (
	// DeemphasisUS is the 75 microsecond time constant used in the US
	// and South Korea.
	DeemphasisUS = 75e-6
	// DeemphasisWorld is the 50 microsecond time constant used
	// everywhere else.
	DeemphasisWorld = 50e-6
)

// Deemphasis is a one-pole de-emphasis low-pass IIR (spec §4.8):
// y[n] = y[n-1] + alpha*(x[n] - y[n-1]), with
// alpha = 1 - exp(-1/(tau*sampleRate)).
type Deemphasis struct {
	alpha float64
	y     float64
}

// NewDeemphasis builds a de-emphasis filter with time constant tauSeconds
// at the given sample rate. Pass DeemphasisWorld or DeemphasisUS for the
// standard broadcast values.
func NewDeemphasis(tauSeconds, sampleRate float64) *Deemphasis {
	alpha := 1 - math.Exp(-1/(tauSeconds*sampleRate))
	return &Deemphasis{alpha: alpha}
}

// InPlace replaces each x[n] with the de-emphasized signal, in place.
func (d *Deemphasis) InPlace(x []float64) {
	y := d.y
	for n := range x {
		y += d.alpha * (x[n] - y)
		x[n] = y
	}
	d.y = y
}
