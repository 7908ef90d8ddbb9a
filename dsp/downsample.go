package dsp

// RealDownsampler decimates a single real stream from inRate to outRate,
// low-pass filtering first to suppress aliases above outRate/2 (spec
// §4.3). It is exact when inRate/outRate is a positive integer; for any
// other ratio it reads the filtered signal at round(k*inRate/outRate),
// which introduces nearest-neighbour jitter. Spec §4.3/§9 explicitly
// accept that distortion rather than requiring a minimal-distortion
// arbitrary-ratio resampler.
type RealDownsampler struct {
	inRate, outRate float64
	filter          *FIR
	// inputOffset is the absolute stream index of the first sample the
	// next Process call receives, and outputCount the number of output
	// samples produced so far, so that successive Process calls pick up
	// where the last one left off as if fed one continuous stream.
	inputOffset int
	outputCount int
}

// NewRealDownsampler builds a downsampler with a low-pass kernel whose
// corner is outRate/2, using the given tap count.
func NewRealDownsampler(inRate, outRate float64, taps int) *RealDownsampler {
	cutoff := (outRate / 2) / inRate
	return &RealDownsampler{
		inRate:  inRate,
		outRate: outRate,
		filter:  NewFIR(LowpassKernel(cutoff, taps)),
	}
}

// OutputLength returns floor(inputLength * outRate / inRate), the Length
// law of spec §8 invariant 2.
func (d *RealDownsampler) OutputLength(inputLength int) int {
	return int(float64(inputLength) * d.outRate / d.inRate)
}

// Process low-pass filters a copy of x (x itself is left unchanged) and
// returns a freshly allocated, decimated output. The returned slice's length follows OutputLength,
// computed from the number of output samples available given samples
// seen so far (including previous calls), so that decimation step
// boundaries are continuous across calls.
func (d *RealDownsampler) Process(x []float64) []float64 {
	filtered := make([]float64, len(x))
	copy(filtered, x)
	d.filter.InPlace(filtered)

	// We treat x as a contiguous continuation of every sample processed
	// so far. inputOffset is the absolute index of x[0] in that stream.
	startAbs := d.inputOffset
	endAbs := startAbs + len(x)

	var out []float64
	for {
		k := d.outputCount
		srcAbs := int(roundHalfAwayFromZero(float64(k) * d.inRate / d.outRate))
		if srcAbs >= endAbs {
			break
		}
		if srcAbs < startAbs {
			// Shouldn't happen in a well-formed continuous stream, but
			// guard against negative indices from a first, short block.
			d.outputCount++
			continue
		}
		out = append(out, filtered[srcAbs-startAbs])
		d.outputCount++
	}

	d.inputOffset = endAbs
	return out
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}

// ComplexDownsampler runs two RealDownsamplers, sharing the same corner
// frequency, over an (I, Q) pair (spec §4.3).
type ComplexDownsampler struct {
	i, q *RealDownsampler
}

// NewComplexDownsampler builds a complex downsampler from inRate to
// outRate using the given tap count for each rail's low-pass kernel.
func NewComplexDownsampler(inRate, outRate float64, taps int) *ComplexDownsampler {
	return &ComplexDownsampler{
		i: NewRealDownsampler(inRate, outRate, taps),
		q: NewRealDownsampler(inRate, outRate, taps),
	}
}

// OutputLength returns floor(inputLength * outRate / inRate).
func (d *ComplexDownsampler) OutputLength(inputLength int) int {
	return d.i.OutputLength(inputLength)
}

// Process decimates i and q, returning freshly allocated output slices
// of equal length.
func (d *ComplexDownsampler) Process(i, q []float64) (outI, outQ []float64) {
	return d.i.Process(i), d.q.Process(q)
}
