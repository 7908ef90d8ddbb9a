package radio

import "hz.tools/rf"

// RawBlock is a block of raw, unsigned 8-bit interleaved (I, Q) samples as
// they arrive from a tuner, along with the centre frequency the tuner was
// set to at the moment of capture. Length is always a multiple of two
// bytes: one byte of I, one byte of Q, repeated.
type RawBlock struct {
	// IQ is the interleaved (I, Q) byte pairs.
	IQ []byte

	// Frequency is the tuner's centre frequency at capture.
	Frequency rf.Hz

	// DirectSampling is true if the tuner captured this block while
	// bypassing its mixer (see the Tuner abstraction in package source).
	DirectSampling bool
}

// Samples returns the number of (I, Q) pairs in the block.
func (b RawBlock) Samples() int {
	return len(b.IQ) / 2
}

// FloatBlock is a block of normalised float I/Q samples, each component in
// [-1, +1], produced from a RawBlock by mapping each byte b to 2*b/255 - 1.
type FloatBlock struct {
	I, Q []float64

	// Frequency is the centre frequency the samples were captured at.
	Frequency rf.Hz

	// DirectSampling carries the tuner's direct-sampling flag through from
	// the RawBlock this was converted from.
	DirectSampling bool
}

// Len returns the number of (I, Q) pairs in the block. I and Q are always
// the same length; this is a convenience over len(b.I).
func (b FloatBlock) Len() int {
	return len(b.I)
}

// AudioBlock is a block of demodulated stereo audio, each channel in
// [-1, +1], along with whether the producing pipeline resolved a stereo
// subcarrier and a linear (not dB) signal-to-noise estimate.
type AudioBlock struct {
	Left, Right []float64

	// Stereo is true when the audio in Left/Right reflects a decoded
	// stereo difference signal rather than duplicated mono.
	Stereo bool

	// SNR is a linear signal-to-noise ratio estimate, not decibels.
	SNR float64
}

// Len returns the number of samples in the block. Left and Right are
// always the same length.
func (b AudioBlock) Len() int {
	return len(b.Left)
}

// byteToFloat maps an unsigned byte in [0, 255] to a float in [-1, +1].
func byteToFloat(b byte) float64 {
	return 2*float64(b)/255 - 1
}

// floatToByte is the inverse of byteToFloat, clamping its input to
// [-1, +1] before requantizing. It is used by simulated tuners that need
// to round-trip a float signal back through the byte-oriented wire format
// real hardware uses.
func floatToByte(f float64) byte {
	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}
	v := (f + 1) * 255 / 2
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return byte(v + 0.5)
}

// ToFloatBlock converts a RawBlock into a FloatBlock, writing into the
// (possibly reused) destination slices if they are already the right
// length. Pass a zero-valued FloatBlock to allocate fresh slices.
func ToFloatBlock(raw RawBlock, dst FloatBlock) FloatBlock {
	n := raw.Samples()
	if cap(dst.I) < n {
		dst.I = make([]float64, n)
	} else {
		dst.I = dst.I[:n]
	}
	if cap(dst.Q) < n {
		dst.Q = make([]float64, n)
	} else {
		dst.Q = dst.Q[:n]
	}

	for i := 0; i < n; i++ {
		dst.I[i] = byteToFloat(raw.IQ[2*i])
		dst.Q[i] = byteToFloat(raw.IQ[2*i+1])
	}
	dst.Frequency = raw.Frequency
	dst.DirectSampling = raw.DirectSampling
	return dst
}

// ToRawBlock is the inverse of ToFloatBlock, used by simulated tuners to
// requantize a synthetic float signal back onto the wire. dst.IQ is
// reused when it is already the right length.
func ToRawBlock(f FloatBlock, dst RawBlock) RawBlock {
	n := f.Len()
	if cap(dst.IQ) < 2*n {
		dst.IQ = make([]byte, 2*n)
	} else {
		dst.IQ = dst.IQ[:2*n]
	}
	for i := 0; i < n; i++ {
		dst.IQ[2*i] = floatToByte(f.I[i])
		dst.IQ[2*i+1] = floatToByte(f.Q[i])
	}
	dst.Frequency = f.Frequency
	dst.DirectSampling = f.DirectSampling
	return dst
}
