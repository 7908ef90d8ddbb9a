package pipeline

import (
	"hz.tools/radio"
	"hz.tools/radio/dsp"
)

const (
	ssbHilbertTaps   = 65
	ssbLowpassTaps   = 101
	ssbAGCTimeConst  = 3.0 // seconds, spec §4.14
)

type ssb struct {
	mode            radio.Mode
	inRate, outRate float64

	mixer       *dsp.Mixer
	complexDown *dsp.ComplexDownsampler
	demod       *dsp.SSBDemodulator
	lp          *dsp.FIR
	agc         *dsp.AGC
}

func sidebandFor(scheme radio.Scheme) dsp.Sideband {
	if scheme == radio.LSB {
		return dsp.LowerSideband
	}
	return dsp.UpperSideband
}

func newSSB(mode radio.Mode, inRate, outRate float64) *ssb {
	p := &ssb{mode: mode, inRate: inRate, outRate: outRate}
	p.rebuild()
	return p
}

func (p *ssb) rebuild() {
	bw := float64(p.mode.Bandwidth)
	p.mixer = dsp.NewMixer(p.inRate)
	p.complexDown = dsp.NewComplexDownsampler(p.inRate, p.outRate, 65)
	p.demod = dsp.NewSSBDemodulator(sidebandFor(p.mode.Scheme), ssbHilbertTaps)
	p.lp = dsp.NewFIR(dsp.LowpassKernel((bw/2)/p.outRate, ssbLowpassTaps))
	p.agc = dsp.NewAGC(ssbAGCTimeConst, p.outRate)
}

func (p *ssb) Mode() radio.Mode { return p.mode }

func (p *ssb) SetMode(newMode radio.Mode) {
	changed := newMode.Bandwidth != p.mode.Bandwidth || newMode.Scheme != p.mode.Scheme
	p.mode = newMode
	if changed {
		p.rebuild()
	}
}

func (p *ssb) Process(f radio.FloatBlock, freqOffsetHz float64) radio.AudioBlock {
	i := append([]float64(nil), f.I...)
	q := append([]float64(nil), f.Q...)
	p.mixer.InPlace(i, q, -freqOffsetHz)

	di, dq := p.complexDown.Process(i, q)
	totalPower := dsp.Power(di, dq)

	recovered := p.demod.Process(di, dq)
	p.lp.InPlace(recovered)

	// Spec §4.14: SNR = getPower(I,I)*outRate/(bandwidth*2) over total
	// power, with I the recovered real signal. Power(x, x) counts the one
	// rail twice, so it equals twice RealPower(x).
	filteredPower := 2 * dsp.RealPower(recovered)
	snr := dsp.SNR(filteredPower, totalPower, p.outRate, float64(p.mode.Bandwidth)*2)

	p.agc.InPlace(recovered)

	return radio.AudioBlock{
		Left:  recovered,
		Right: append([]float64(nil), recovered...),
		SNR:   snr,
	}
}
