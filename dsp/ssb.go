package dsp

// Sideband selects which sideband an SSB demodulator recovers.
type Sideband int

const (
	// UpperSideband recovers the USB signal.
	UpperSideband Sideband = iota
	// LowerSideband recovers the LSB signal.
	LowerSideband
)

// SSBDemodulator implements the Weaver-style demodulator of spec §4.6:
// for each input (I, Q), the output is I + (+-Hilbert(Q)), with the sign
// chosen by Sideband. The upstream complex low-pass (done by the
// pipeline before calling Process) already restricts bandwidth; the
// Hilbert transform here supplies the 90 degree-shifted quadrature
// component that cancels the image of the unwanted sideband.
type SSBDemodulator struct {
	sideband Sideband
	hilbert  *FIR

	// iDelay holds the most recent GroupDelay() samples of the I rail,
	// newest last, the same way FIR's own delay line carries history
	// across calls.
	iDelay []float64
}

// NewSSBDemodulator builds an SSB demodulator for the given sideband,
// using an odd-tap-count Hilbert transformer.
func NewSSBDemodulator(sideband Sideband, hilbertTaps int) *SSBDemodulator {
	hilbert := NewFIR(HilbertKernel(hilbertTaps))
	return &SSBDemodulator{
		sideband: sideband,
		hilbert:  hilbert,
		iDelay:   make([]float64, hilbert.GroupDelay()),
	}
}

// loadIDelay advances the I-rail delay line to the tail of i, the same
// shift-and-refill FIR.Load uses.
func (d *SSBDemodulator) loadIDelay(i []float64) {
	if len(d.iDelay) == 0 || len(i) == 0 {
		return
	}
	if len(i) >= len(d.iDelay) {
		copy(d.iDelay, i[len(i)-len(d.iDelay):])
		return
	}
	shift := len(i)
	copy(d.iDelay, d.iDelay[shift:])
	copy(d.iDelay[len(d.iDelay)-shift:], i)
}

// Process recovers the selected sideband from (I, Q), returning a new
// real-valued slice of the same length.
func (d *SSBDemodulator) Process(i, q []float64) []float64 {
	qh := make([]float64, len(q))
	copy(qh, q)
	d.hilbert.InPlace(qh)

	out := make([]float64, len(i))
	delay := len(d.iDelay)
	for n := range i {
		// Align I with the Hilbert-filtered Q, which lags by the
		// filter's group delay. Indices that fall before this call's
		// i slice read the tail of the previous call's I rail, the
		// same history lookup FIR.window uses.
		idx := n - delay
		var iSample float64
		switch {
		case idx >= 0:
			iSample = i[idx]
		case -idx <= len(d.iDelay):
			iSample = d.iDelay[len(d.iDelay)+idx]
		}
		if d.sideband == LowerSideband {
			out[n] = iSample + qh[n]
		} else {
			out[n] = iSample - qh[n]
		}
	}
	d.loadIDelay(i)
	return out
}
