package dsp

import "math"

const tau = 2 * math.Pi

// Mixer is a complex frequency shifter (spec §4.2): it multiplies the
// complex signal I+jQ by exp(j*2*pi*f*t) sample by sample, tracking phase
// continuously across calls so that back-to-back InPlace calls behave as
// one continuous oscillator. It is the mixing half of the same
// cos/sin-accumulator oscillator hztools-go-fm/modulator.go drives for
// modulation, run here for translation instead.
type Mixer struct {
	sampleRate float64
	phase      float64 // turns, in [0, 1)
}

// NewMixer creates a mixer for the given real sample rate in Hz.
func NewMixer(sampleRate float64) *Mixer {
	return &Mixer{sampleRate: sampleRate}
}

// Phase returns the mixer's current phase in turns (0 to 1).
func (m *Mixer) Phase() float64 {
	return m.phase
}

// InPlace shifts the complex signal (I, Q) by fHz, updating I and Q in
// place. Positive fHz moves spectra up, negative moves down. Phase is
// advanced modulo 1 turn so repeated calls are phase-continuous.
func (m *Mixer) InPlace(i, q []float64, fHz float64) {
	step := fHz / m.sampleRate
	phase := m.phase
	for n := range i {
		angle := tau * phase
		c, s := math.Cos(angle), math.Sin(angle)
		oi, oq := i[n], q[n]
		i[n] = oi*c - oq*s
		q[n] = oi*s + oq*c

		phase += step
		phase -= math.Floor(phase)
	}
	m.phase = phase
}
