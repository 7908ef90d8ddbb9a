// Package pipeline composes the dsp package's primitives into the five
// mode-specific demodulators of spec.md §4.11-4.15 (WBFM, NBFM, AM,
// SSB, CW), behind a single Pipeline interface and a single dispatch
// function keyed by radio.Scheme.
//
// This replaces the source's process-wide mutable scheme registry (spec
// §9's "Extensibility registry" redesign note) with an enumerated tagged
// union and a closed switch statement; a caller that needs user-defined
// schemes passes its own constructor into the controller explicitly
// rather than mutating global state.
package pipeline

import (
	"hz.tools/radio"
)

// Pipeline is implemented by each mode-specific demodulator.
type Pipeline interface {
	// Process demodulates one block of float I/Q samples, frequency
	// shifting by freqOffsetHz first (spec §4.11-4.15 each begin with
	// "Shift by -freqOffset"; the controller owns the current offset
	// value and passes it in on every call), and returns one audio
	// block.
	Process(f radio.FloatBlock, freqOffsetHz float64) radio.AudioBlock

	// SetMode updates the pipeline's parameters in place, recomputing
	// filter kernels if bandwidth-affecting fields changed (spec §4.16
	// "forward parameters via the pipeline's own setter"). The caller is
	// responsible for only calling this when newMode.Scheme matches the
	// pipeline's own scheme; callers that need to switch schemes
	// construct a new Pipeline via New instead.
	SetMode(newMode radio.Mode)

	// Mode returns the pipeline's current parameters.
	Mode() radio.Mode
}

// New constructs a fresh Pipeline for mode.Scheme at the given input and
// output sample rates. deemphasisTau only applies to WBFM; pass
// dsp.DeemphasisWorld or dsp.DeemphasisUS (region.Preset.Deemphasis
// provides the regional default).
func New(mode radio.Mode, inRate, outRate float64, deemphasisTau float64) (Pipeline, error) {
	switch mode.Scheme {
	case radio.WBFM:
		return newWBFM(mode, inRate, outRate, deemphasisTau), nil
	case radio.NBFM:
		return newNBFM(mode, inRate, outRate), nil
	case radio.AM:
		return newAM(mode, inRate, outRate), nil
	case radio.USB, radio.LSB:
		return newSSB(mode, inRate, outRate), nil
	case radio.CW:
		return newCW(mode, inRate, outRate), nil
	default:
		return nil, radio.UnknownSchemeError(mode.Scheme)
	}
}
