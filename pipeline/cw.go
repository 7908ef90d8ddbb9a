package pipeline

import (
	"hz.tools/radio"
	"hz.tools/radio/dsp"
)

// cwLowpassTaps is the 351-tap default kernel size spec §4.15 calls out.
const cwLowpassTaps = 351

// cwAGCTimeConst is CW's 10 second AGC time constant (spec §4.15).
const cwAGCTimeConst = 10.0

type cw struct {
	mode            radio.Mode
	inRate, outRate float64

	mixer       *dsp.Mixer
	complexDown *dsp.ComplexDownsampler
	lpI, lpQ    *dsp.FIR
	toneMixer   *dsp.Mixer
	agc         *dsp.AGC
}

func newCW(mode radio.Mode, inRate, outRate float64) *cw {
	p := &cw{mode: mode, inRate: inRate, outRate: outRate}
	p.rebuild()
	return p
}

func (p *cw) rebuild() {
	bw := float64(p.mode.Bandwidth)
	p.mixer = dsp.NewMixer(p.inRate)
	p.complexDown = dsp.NewComplexDownsampler(p.inRate, p.outRate, 65)
	p.lpI = dsp.NewFIR(dsp.LowpassKernel((bw/2)/p.outRate, cwLowpassTaps))
	p.lpQ = dsp.NewFIR(dsp.LowpassKernel((bw/2)/p.outRate, cwLowpassTaps))
	p.toneMixer = dsp.NewMixer(p.outRate)
	p.agc = dsp.NewAGC(cwAGCTimeConst, p.outRate)
}

func (p *cw) Mode() radio.Mode { return p.mode }

func (p *cw) SetMode(newMode radio.Mode) {
	changed := newMode.Bandwidth != p.mode.Bandwidth
	p.mode = newMode
	if changed {
		p.rebuild()
	}
}

func (p *cw) Process(f radio.FloatBlock, freqOffsetHz float64) radio.AudioBlock {
	i := append([]float64(nil), f.I...)
	q := append([]float64(nil), f.Q...)
	p.mixer.InPlace(i, q, -freqOffsetHz)

	di, dq := p.complexDown.Process(i, q)
	totalPower := dsp.Power(di, dq)

	p.lpI.InPlace(di)
	p.lpQ.InPlace(dq)
	filteredPower := dsp.Power(di, dq)

	// Shift the filtered baseband up by the tone frequency so a carrier
	// at the tuned offset becomes an audible beat note; the recovered
	// audio is the real (I) rail of the shifted signal.
	tone := float64(p.mode.ToneFrequency)
	if tone == 0 {
		tone = float64(radio.DefaultCWTone)
	}
	p.toneMixer.InPlace(di, dq, tone)

	snr := dsp.SNR(filteredPower, totalPower, p.outRate, float64(p.mode.Bandwidth))

	p.agc.InPlace(di)

	return radio.AudioBlock{
		Left:  di,
		Right: append([]float64(nil), di...),
		SNR:   snr,
	}
}
