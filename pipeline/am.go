package pipeline

import (
	"hz.tools/radio"
	"hz.tools/radio/dsp"
)

const amLowpassTaps = 101

type am struct {
	mode            radio.Mode
	inRate, outRate float64

	mixer       *dsp.Mixer
	complexDown *dsp.ComplexDownsampler
	lpI, lpQ    *dsp.FIR
	detector    *dsp.AMDetector
}

func newAM(mode radio.Mode, inRate, outRate float64) *am {
	p := &am{mode: mode, inRate: inRate, outRate: outRate}
	p.rebuild()
	return p
}

func (p *am) rebuild() {
	bw := float64(p.mode.Bandwidth)
	p.mixer = dsp.NewMixer(p.inRate)
	p.complexDown = dsp.NewComplexDownsampler(p.inRate, p.outRate, 65)
	p.lpI = dsp.NewFIR(dsp.LowpassKernel((bw/2)/p.outRate, amLowpassTaps))
	p.lpQ = dsp.NewFIR(dsp.LowpassKernel((bw/2)/p.outRate, amLowpassTaps))
	p.detector = dsp.NewAMDetector(p.outRate)
}

func (p *am) Mode() radio.Mode { return p.mode }

func (p *am) SetMode(newMode radio.Mode) {
	changed := newMode.Bandwidth != p.mode.Bandwidth
	p.mode = newMode
	if changed {
		p.rebuild()
	}
}

func (p *am) Process(f radio.FloatBlock, freqOffsetHz float64) radio.AudioBlock {
	i := append([]float64(nil), f.I...)
	q := append([]float64(nil), f.Q...)
	p.mixer.InPlace(i, q, -freqOffsetHz)

	di, dq := p.complexDown.Process(i, q)
	totalPower := dsp.Power(di, dq)

	// Restrict the pre-detection bandwidth to bandwidth/2 either side of
	// the carrier.
	p.lpI.InPlace(di)
	p.lpQ.InPlace(dq)
	filteredPower := dsp.Power(di, dq)

	mono := p.detector.Process(di, dq)
	snr := dsp.SNR(filteredPower, totalPower, p.outRate, float64(p.mode.Bandwidth))

	return radio.AudioBlock{
		Left:  mono,
		Right: append([]float64(nil), mono...),
		SNR:   snr,
	}
}
