package source

import (
	"context"
	"fmt"

	"hz.tools/radio"
	"hz.tools/rf"
	"hz.tools/sdr"
)

// SDRTuner bridges a hz.tools/sdr Reader — the library family's own
// RTL-SDR, file-replay, and other hardware backends — into the Tuner
// contract of spec §6.1. Grounded on
// hztools-go-fm/demodulator.go's Demodulate, which checks
// reader.SampleFormat() against sdr.SampleFormatC64 and reads into an
// sdr.SamplesC64 buffer via sdr.ReadFull the same way this bridge does.
//
// hz.tools/sdr's Reader interface only exposes SampleRate/SampleFormat/
// Read; gain, centre frequency, correction, direct sampling, and bias
// tee are controlled on each concrete device's own constructor
// elsewhere in hz.tools/sdr, outside the Reader contract this package
// can see. SDRTuner therefore tracks the caller's requested values for
// those fields (so Gain/DirectSampling/BiasTee getters reflect the last
// Set call) without being able to push them down to hardware itself;
// a concrete device wrapper with its own control surface should embed
// SDRTuner and override the Set* methods it can actually honour.
type SDRTuner struct {
	reader sdr.Reader

	centreFreq     rf.Hz
	correctionPPM  int
	gain           Gain
	directSampling DirectSampling
	biasTee        bool
}

// NewSDRTuner wraps reader, which must report sdr.SampleFormatC64 (the
// only format this module's DSP primitives understand).
func NewSDRTuner(reader sdr.Reader, centreFreq rf.Hz) (*SDRTuner, error) {
	if reader.SampleFormat() != sdr.SampleFormatC64 {
		return nil, sdr.ErrSampleFormatMismatch
	}
	return &SDRTuner{reader: reader, centreFreq: centreFreq, gain: AutoGain}, nil
}

func (t *SDRTuner) SetSampleRate(_ context.Context, hz rf.Hz) (rf.Hz, error) {
	// The underlying sdr.Reader's rate is fixed at construction; this
	// bridge can only report what it actually delivers.
	return rf.Hz(t.reader.SampleRate()), nil
}

func (t *SDRTuner) SetCentreFrequency(_ context.Context, hz rf.Hz) (rf.Hz, error) {
	t.centreFreq = hz
	return t.centreFreq, nil
}

func (t *SDRTuner) SetFrequencyCorrectionPPM(_ context.Context, ppm int) error {
	t.correctionPPM = ppm
	return nil
}

func (t *SDRTuner) SetGain(_ context.Context, gain Gain) error {
	t.gain = gain
	return nil
}

func (t *SDRTuner) Gain() Gain { return t.gain }

func (t *SDRTuner) SetDirectSampling(_ context.Context, mode DirectSampling) error {
	t.directSampling = mode
	return nil
}

func (t *SDRTuner) DirectSampling() DirectSampling { return t.directSampling }

func (t *SDRTuner) EnableBiasTee(_ context.Context, on bool) error {
	t.biasTee = on
	return nil
}

func (t *SDRTuner) BiasTee() bool { return t.biasTee }

// ResetBuffer is a no-op for a bridged sdr.Reader: hz.tools/sdr readers
// have no separate buffer-reset step of their own.
func (t *SDRTuner) ResetBuffer(_ context.Context) error {
	return nil
}

// ReadSamples reads length complex samples from the underlying
// sdr.Reader and requantizes them to the raw unsigned-byte wire format
// spec §6.1 specifies, via the same radio.ToRawBlock path Simulated
// uses, so the source adapter's byte->float conversion step (spec
// §4.17) is identical for real and simulated tuners.
func (t *SDRTuner) ReadSamples(_ context.Context, length int) (radio.RawBlock, error) {
	buf := make(sdr.SamplesC64, length)
	n, err := sdr.ReadFull(t.reader, buf)
	if err != nil {
		return radio.RawBlock{}, err
	}
	buf = buf[:n]

	fb := radio.FloatBlock{
		I:              make([]float64, n),
		Q:              make([]float64, n),
		Frequency:      t.centreFreq,
		DirectSampling: t.directSampling != DirectSamplingOff,
	}
	for k, c := range buf {
		fb.I[k] = float64(real(c))
		fb.Q[k] = float64(imag(c))
	}
	return radio.ToRawBlock(fb, radio.RawBlock{}), nil
}

func (t *SDRTuner) Close(_ context.Context) error {
	closer, ok := t.reader.(interface{ Close() error })
	if !ok {
		return nil
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("source: closing sdr.Reader: %w", err)
	}
	return nil
}
