package pipeline

import (
	"hz.tools/radio"
	"hz.tools/radio/dsp"
)

// nbfmLowpassTaps is the tap count used for NBFM's I/Q low-pass filters.
const nbfmLowpassTaps = 101

type nbfm struct {
	mode            radio.Mode
	inRate, outRate float64

	mixer       *dsp.Mixer
	complexDown *dsp.ComplexDownsampler
	lpI, lpQ    *dsp.FIR
	disc        *dsp.FMDiscriminator
}

func newNBFM(mode radio.Mode, inRate, outRate float64) *nbfm {
	p := &nbfm{mode: mode, inRate: inRate, outRate: outRate}
	p.rebuild()
	return p
}

func (p *nbfm) rebuild() {
	maxDev := float64(p.mode.MaxDeviation)
	p.mixer = dsp.NewMixer(p.inRate)
	p.complexDown = dsp.NewComplexDownsampler(p.inRate, p.outRate, 65)
	p.lpI = dsp.NewFIR(dsp.LowpassKernel(maxDev/p.outRate, nbfmLowpassTaps))
	p.lpQ = dsp.NewFIR(dsp.LowpassKernel(maxDev/p.outRate, nbfmLowpassTaps))
	p.disc = dsp.NewFMDiscriminator(maxDev, p.outRate)
}

func (p *nbfm) Mode() radio.Mode { return p.mode }

// SetMode recomputes the I/Q low-pass kernels and discriminator scale
// when the maximum deviation changes (spec §4.16).
func (p *nbfm) SetMode(newMode radio.Mode) {
	changed := newMode.MaxDeviation != p.mode.MaxDeviation
	p.mode = newMode
	if changed {
		p.rebuild()
	}
}

func (p *nbfm) Process(f radio.FloatBlock, freqOffsetHz float64) radio.AudioBlock {
	i := append([]float64(nil), f.I...)
	q := append([]float64(nil), f.Q...)
	p.mixer.InPlace(i, q, -freqOffsetHz)

	di, dq := p.complexDown.Process(i, q)
	totalPower := dsp.Power(di, dq)

	p.lpI.InPlace(di)
	p.lpQ.InPlace(dq)
	filteredPower := dsp.Power(di, dq)

	mono := p.disc.Process(di, dq)
	snr := dsp.SNR(filteredPower, totalPower, p.outRate, 2*float64(p.mode.MaxDeviation))

	return radio.AudioBlock{
		Left:  mono,
		Right: append([]float64(nil), mono...),
		SNR:   snr,
	}
}
