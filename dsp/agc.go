package dsp

import "math"

// agcEpsilon is the floor the running average is raised to before it is
// used as a divisor (spec §4.9: "epsilon prevents division blow-up on silence").
const agcEpsilon = 1e-6

// AGC tracks a running average of |x| with a single attack/release time
// constant and divides each sample by max(average, epsilon) to normalise
// perceived loudness (spec §4.9).
type AGC struct {
	alpha   float64
	average float64
}

// NewAGC builds an AGC with the given time constant in seconds at
// sampleRate.
func NewAGC(timeConstantSeconds, sampleRate float64) *AGC {
	alpha := 1 - math.Exp(-1/(timeConstantSeconds*sampleRate))
	return &AGC{alpha: alpha}
}

// InPlace normalises x in place.
func (a *AGC) InPlace(x []float64) {
	avg := a.average
	for n := range x {
		avg += a.alpha * (math.Abs(x[n]) - avg)
		div := avg
		if div < agcEpsilon {
			div = agcEpsilon
		}
		x[n] /= div
	}
	a.average = avg
}
