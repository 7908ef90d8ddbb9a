package dsp

import "math"

// DCBlocker is a one-pole high-pass IIR used to remove a DC bias from a
// signal, such as the always-positive output of AMDetector's envelope
// stage. Its corner frequency is set the same way De-emphasis's and
// AGC's time constants are: alpha = 1 - exp(-1/(tau*sampleRate)), here
// derived from a corner frequency instead of a time constant directly
// (tau = 1/(2*pi*cornerHz)).
type DCBlocker struct {
	alpha   float64
	average float64
}

// NewDCBlocker builds a DC blocker with the given corner frequency at
// sampleRate.
func NewDCBlocker(cornerHz, sampleRate float64) *DCBlocker {
	tauSeconds := 1 / (2 * math.Pi * cornerHz)
	alpha := 1 - math.Exp(-1/(tauSeconds*sampleRate))
	return &DCBlocker{alpha: alpha}
}

// InPlace subtracts a running estimate of the signal's DC component from
// x, in place.
func (d *DCBlocker) InPlace(x []float64) {
	avg := d.average
	for n := range x {
		avg += d.alpha * (x[n] - avg)
		x[n] -= avg
	}
	d.average = avg
}
