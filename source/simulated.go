package source

import (
	"context"
	"math"

	"hz.tools/radio"
	"hz.tools/rf"
)

// Generator synthesizes n samples of (I, Q) starting at sample index
// startSample (so successive calls can keep a continuous phase),
// modulated as if received at centreFreq and sampled at sampleRate. Used
// by Simulated to stand in for real RF for the §8 concrete end-to-end
// scenarios (WBFM tone, WBFM stereo, NBFM squelch, AM tone, USB/LSB
// tone, CW beat).
type Generator func(centreFreq rf.Hz, sampleRate float64, n int, startSample int64) (i, q []float64)

// Simulated is a Tuner that manufactures its own samples via a
// Generator instead of talking to hardware, per spec §4.17: "a
// user-supplied generator function produces synthetic (I, Q) at the
// requested centre frequency, modulated by an internal gain multiplier
// ... and requantised to unsigned bytes before being converted back —
// preserving the exact code path used for real hardware." Simulated
// therefore always round-trips through radio.ToRawBlock/ToFloatBlock
// rather than handing the adapter floats directly.
type Simulated struct {
	generator Generator

	sampleRate     rf.Hz
	centreFreq     rf.Hz
	correctionPPM  int
	gain           Gain
	directSampling DirectSampling
	biasTee        bool

	sampleCount int64
}

// NewSimulated builds a simulated tuner around generator, with an
// initial sample rate and centre frequency.
func NewSimulated(generator Generator, sampleRate, centreFreq rf.Hz) *Simulated {
	return &Simulated{
		generator:  generator,
		sampleRate: sampleRate,
		centreFreq: centreFreq,
		gain:       AutoGain,
	}
}

// simulatedGainMultiplier converts a gain setting into the linear
// multiplier spec §4.17 specifies: 10^((gain-25)/20), or unity gain when
// auto (there is no physical AGC to emulate for a synthetic source).
func simulatedGainMultiplier(g Gain) float64 {
	if g.Auto {
		return 1
	}
	return math.Pow(10, (g.DB-25)/20)
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func (s *Simulated) SetSampleRate(_ context.Context, hz rf.Hz) (rf.Hz, error) {
	s.sampleRate = hz
	return s.sampleRate, nil
}

func (s *Simulated) SetCentreFrequency(_ context.Context, hz rf.Hz) (rf.Hz, error) {
	s.centreFreq = hz
	return s.centreFreq, nil
}

func (s *Simulated) SetFrequencyCorrectionPPM(_ context.Context, ppm int) error {
	s.correctionPPM = ppm
	return nil
}

func (s *Simulated) SetGain(_ context.Context, gain Gain) error {
	s.gain = gain
	return nil
}

func (s *Simulated) Gain() Gain { return s.gain }

func (s *Simulated) SetDirectSampling(_ context.Context, mode DirectSampling) error {
	s.directSampling = mode
	return nil
}

func (s *Simulated) DirectSampling() DirectSampling { return s.directSampling }

func (s *Simulated) EnableBiasTee(_ context.Context, on bool) error {
	s.biasTee = on
	return nil
}

func (s *Simulated) BiasTee() bool { return s.biasTee }

// ResetBuffer resets the generator's phase accounting so the next
// ReadSamples starts a fresh, continuous signal from sample 0.
func (s *Simulated) ResetBuffer(_ context.Context) error {
	s.sampleCount = 0
	return nil
}

// ReadSamples generates length synthetic (I, Q) pairs, applies the gain
// emulation and hard-clip, then requantizes to bytes via
// radio.ToRawBlock — the same wire format a real tuner's USB endpoint
// would deliver.
func (s *Simulated) ReadSamples(_ context.Context, length int) (radio.RawBlock, error) {
	i, q := s.generator(s.centreFreq, float64(s.sampleRate), length, s.sampleCount)
	s.sampleCount += int64(length)

	gain := simulatedGainMultiplier(s.gain)
	for n := range i {
		i[n] = clamp1(i[n] * gain)
		q[n] = clamp1(q[n] * gain)
	}

	fb := radio.FloatBlock{
		I:              i,
		Q:              q,
		Frequency:      s.centreFreq,
		DirectSampling: s.directSampling != DirectSamplingOff,
	}
	return radio.ToRawBlock(fb, radio.RawBlock{}), nil
}

func (s *Simulated) Close(_ context.Context) error {
	return nil
}
