package pipeline

import (
	"hz.tools/radio"
	"hz.tools/radio/dsp"
)

// wbfmInterRateCap is the cap on the WBFM intermediate rate, chosen to
// preserve the full 0-100 kHz FM composite (spec §4.11).
const wbfmInterRateCap = 336_000.0

// wbfmCompositeBandwidth is the ±75 kHz composite bandwidth stage 1's
// lowpass restricts to before discriminating (spec §4.11 step 3).
const wbfmCompositeBandwidth = 75_000.0

// wbfmSNRReferenceBandwidth is the constant 150 kHz spec §4.11 step 5
// and §9's first Open Question both call out: stage 1's SNR is scaled
// against an assumed WBFM RF bandwidth rather than a live parameter,
// unlike every other mode's pipeline. This implementation keeps that
// constant as specified.
const wbfmSNRReferenceBandwidth = 150_000.0

type wbfm struct {
	mode                radio.Mode
	inRate, outRate     float64
	interRate           float64
	deemphasisTau       float64

	mixer       *dsp.Mixer
	complexDown *dsp.ComplexDownsampler
	lpI, lpQ    *dsp.FIR
	disc        *dsp.FMDiscriminator

	monoDown  *dsp.RealDownsampler
	diffDown  *dsp.RealDownsampler
	stereoSep *dsp.StereoSeparator

	deL, deR *dsp.Deemphasis
}

func newWBFM(mode radio.Mode, inRate, outRate, deemphasisTau float64) *wbfm {
	interRate := inRate
	if interRate > wbfmInterRateCap {
		interRate = wbfmInterRateCap
	}

	p := &wbfm{
		mode:          mode,
		inRate:        inRate,
		outRate:       outRate,
		interRate:     interRate,
		deemphasisTau: deemphasisTau,

		mixer:       dsp.NewMixer(inRate),
		complexDown: dsp.NewComplexDownsampler(inRate, interRate, 65),
		lpI:         dsp.NewFIR(dsp.LowpassKernel(wbfmCompositeBandwidth/interRate, 151)),
		lpQ:         dsp.NewFIR(dsp.LowpassKernel(wbfmCompositeBandwidth/interRate, 151)),
		disc:        dsp.NewFMDiscriminator(wbfmCompositeBandwidth, interRate),

		monoDown:  dsp.NewRealDownsampler(interRate, outRate, 41),
		diffDown:  dsp.NewRealDownsampler(interRate, outRate, 41),
		stereoSep: dsp.NewStereoSeparator(interRate),

		deL: dsp.NewDeemphasis(deemphasisTau, outRate),
		deR: dsp.NewDeemphasis(deemphasisTau, outRate),
	}
	return p
}

func (p *wbfm) Mode() radio.Mode { return p.mode }

// SetMode updates whether stereo decoding is requested. WBFM has no
// bandwidth-bearing field, so no filter kernel ever needs recomputing
// here (spec §4.16's "recompute filter kernels if bandwidth changed"
// clause is a no-op for this scheme).
func (p *wbfm) SetMode(newMode radio.Mode) {
	p.mode = newMode
}

func (p *wbfm) Process(f radio.FloatBlock, freqOffsetHz float64) radio.AudioBlock {
	i := append([]float64(nil), f.I...)
	q := append([]float64(nil), f.Q...)
	p.mixer.InPlace(i, q, -freqOffsetHz)

	di, dq := p.complexDown.Process(i, q)
	totalPower := dsp.Power(di, dq)

	p.lpI.InPlace(di)
	p.lpQ.InPlace(dq)
	filteredPower := dsp.Power(di, dq)

	composite := p.disc.Process(di, dq)
	snr := dsp.SNR(filteredPower, totalPower, p.outRate, wbfmSNRReferenceBandwidth)

	left := p.monoDown.Process(composite)
	right := append([]float64(nil), left...)

	found := false
	if p.mode.Stereo {
		result := p.stereoSep.Process(composite)
		found = result.Found
		if found {
			diff := p.diffDown.Process(result.Diff)
			n := len(left)
			if len(diff) < n {
				n = len(diff)
			}
			for k := 0; k < n; k++ {
				left[k] += diff[k]
				right[k] -= diff[k]
			}
		}
	}

	p.deL.InPlace(left)
	p.deR.InPlace(right)

	return radio.AudioBlock{
		Left:   left,
		Right:  right,
		Stereo: found && p.mode.Stereo,
		SNR:    snr,
	}
}
