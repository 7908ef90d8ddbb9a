package dsp

import "math"

// FMDiscriminator recovers the instantaneous frequency of a complex
// baseband signal (spec §4.4). For each sample it multiplies the new
// sample by the conjugate of the previous one and takes the angle of the
// product, which avoids explicit phase unwrapping — the same polar
// discriminator hztools-go-fm/demodulator.go's Read loop and
// other_examples' teabreakninja-go-iq-decoder Demodulator.Process both
// use, generalized here to the spec's normalized-output form.
type FMDiscriminator struct {
	// maxDeviationNormalised is maxDeviationHz / outRate.
	maxDeviationNormalised float64
	prevI, prevQ           float64
	hasPrev                bool
}

// NewFMDiscriminator creates a discriminator that normalizes its output
// so that +-1 corresponds to +-maxDeviationHz at the given outRate.
func NewFMDiscriminator(maxDeviationHz, outRate float64) *FMDiscriminator {
	return &FMDiscriminator{
		maxDeviationNormalised: maxDeviationHz / outRate,
	}
}

// Process demodulates a block of (I, Q) samples into a real output
// signal of the same length, continuing from the last sample of any
// previous call.
func (d *FMDiscriminator) Process(i, q []float64) []float64 {
	out := make([]float64, len(i))
	pi, pq := d.prevI, d.prevQ
	hasPrev := d.hasPrev

	for n := range i {
		ci, cq := i[n], q[n]
		if !hasPrev {
			// No history yet: treat the first sample as having zero
			// instantaneous frequency, matching
			// hztools-go-fm/demodulator.go's "audio[0] = audio[1]"
			// convention of not fabricating a discontinuity.
			out[n] = 0
			pi, pq = ci, cq
			hasPrev = true
			continue
		}

		// product of current sample with conjugate of previous:
		// (ci + j*cq) * (pi - j*pq)
		num := ci*pq - cq*pi // imaginary part
		den := ci*pi + cq*pq // real part
		phi := math.Atan2(num, den)

		denom := tau * d.maxDeviationNormalised
		if denom == 0 {
			out[n] = 0
		} else {
			out[n] = phi / denom
		}

		pi, pq = ci, cq
	}

	d.prevI, d.prevQ = pi, pq
	d.hasPrev = hasPrev
	return out
}
