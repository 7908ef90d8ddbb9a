// Package dsp implements the signal-processing primitives spec.md §4
// composes into per-mode demodulators: FIR filtering, frequency
// translation, real/complex downsampling, FM/AM/SSB discrimination,
// stereo pilot recovery, de-emphasis, AGC, DC blocking, and power/SNR
// measurement.
//
// Every type here is a plain struct with methods holding its own state
// (delay lines, NCO phase, loop-filter integrators); none of it is safe
// for concurrent use, matching the single-threaded pipeline model of
// spec.md §5.
package dsp

import "math"

// HammingWindow returns the Hamming window coefficient for tap j of size
// taps, per spec §3 ("kernels used as low-pass are generated by
// windowed-sinc with the Hamming window").
func HammingWindow(taps, j int) float64 {
	if taps <= 1 {
		return 1
	}
	return 0.53836 - 0.46164*math.Cos((2*math.Pi*float64(j))/float64(taps-1))
}

// BlackmanWindow returns the Blackman window coefficient for tap j of
// size taps (spec §2 item 2: "coefficient generators... and Blackman
// window").
func BlackmanWindow(taps, j int) float64 {
	if taps <= 1 {
		return 1
	}
	n := float64(taps - 1)
	x := float64(j)
	return 0.42 - 0.5*math.Cos(2*math.Pi*x/n) + 0.08*math.Cos(4*math.Pi*x/n)
}

// LowpassKernel generates an odd-length, Hamming-windowed-sinc low-pass
// FIR kernel with the given cutoff (as a fraction of the sample rate,
// i.e. cutoffHz/sampleRate) and tap count, normalised so that DC gain is
// exactly 1 (spec §3 Filter kernel invariant). taps is forced to the next
// odd number if given even, since group delay must be an integer number
// of samples (spec §3: "odd length so group delay is an integer number
// of samples").
func LowpassKernel(cutoff float64, taps int) []float64 {
	if taps%2 == 0 {
		taps++
	}
	if taps < 3 {
		taps = 3
	}

	h := make([]float64, taps)
	center := 0.5 * float64(taps-1)

	for j := 0; j < taps; j++ {
		x := float64(j) - center
		var sinc float64
		if x == 0 {
			sinc = 2 * cutoff
		} else {
			sinc = math.Sin(2*math.Pi*cutoff*x) / (math.Pi * x)
		}
		h[j] = sinc * HammingWindow(taps, j)
	}

	var sum float64
	for _, v := range h {
		sum += v
	}
	for i := range h {
		h[i] /= sum
	}
	return h
}

// HilbertKernel generates an odd-length FIR approximation of a 90° phase
// shifter (a discrete Hilbert transformer), used by the SSB demodulator
// (spec §4.6) to derive the quadrature component it needs to cancel the
// unwanted sideband's image. Even-indexed taps (relative to the centre)
// are zero; odd-indexed taps follow the windowed 2/(pi*n) ideal response.
func HilbertKernel(taps int) []float64 {
	if taps%2 == 0 {
		taps++
	}
	if taps < 3 {
		taps = 3
	}

	h := make([]float64, taps)
	center := (taps - 1) / 2

	for j := 0; j < taps; j++ {
		n := j - center
		if n == 0 || n%2 == 0 {
			h[j] = 0
			continue
		}
		ideal := 2 / (math.Pi * float64(n))
		h[j] = ideal * BlackmanWindow(taps, j)
	}
	return h
}
