package dsp

import "math"

// AMDetector is an envelope detector followed by a one-pole DC-blocking
// high-pass (spec §4.5): amplitude = sqrt(I^2+Q^2), then high-passed
// with a corner near 20 Hz at the output rate to remove the DC bias that
// amplitude itself, being unsigned, otherwise introduces.
type AMDetector struct {
	highpass *DCBlocker
}

// NewAMDetector builds an envelope detector whose DC blocker is tuned
// for a ~20 Hz corner at outRate.
func NewAMDetector(outRate float64) *AMDetector {
	return &AMDetector{highpass: NewDCBlocker(20, outRate)}
}

// Process computes the envelope of (I, Q) and DC-blocks it, returning a
// new slice of the same length.
func (d *AMDetector) Process(i, q []float64) []float64 {
	out := make([]float64, len(i))
	for n := range i {
		out[n] = math.Sqrt(i[n]*i[n] + q[n]*q[n])
	}
	d.highpass.InPlace(out)
	return out
}
