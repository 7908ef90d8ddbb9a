package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hz.tools/radio"
	"hz.tools/radio/pipeline"
	"hz.tools/radio/sink"
	"hz.tools/radio/source"
	"hz.tools/rf"
)

// fakePipeline lets tests drive the controller's squelch/stereo/offset
// logic with a deterministic audio block rather than depending on real
// DSP convergence.
type fakePipeline struct {
	mode radio.Mode
	next radio.AudioBlock
	// lastOffset records the freqOffsetHz Process was called with, so
	// tests can assert the controller applied a deferred offset before
	// demodulating.
	lastOffset float64
	setModeCalls int
}

func (p *fakePipeline) Process(f radio.FloatBlock, freqOffsetHz float64) radio.AudioBlock {
	p.lastOffset = freqOffsetHz
	return p.next
}
func (p *fakePipeline) SetMode(m radio.Mode) { p.setModeCalls++; p.mode = m }
func (p *fakePipeline) Mode() radio.Mode     { return p.mode }

type fakeSink struct {
	rate   float64
	plays  [][2][]float64
	failOn int
}

func (s *fakeSink) SampleRate() float64 { return s.rate }
func (s *fakeSink) Play(left, right []float64) error {
	if s.failOn > 0 && len(s.plays)+1 == s.failOn {
		return errors.New("sink refused block")
	}
	s.plays = append(s.plays, [2][]float64{left, right})
	return nil
}
func (s *fakeSink) SetVolume(float64) {}
func (s *fakeSink) Volume() float64   { return 1 }

func newTestController(t *testing.T, mode radio.Mode, snk *fakeSink) (*Controller, *fakePipeline) {
	t.Helper()
	fp := &fakePipeline{mode: mode}
	c, err := New(Config{
		InRate: 48000,
		Mode:   mode,
		Sink:   snk,
		PipelineFactory: func(m radio.Mode, inRate, outRate, tau float64) (pipeline.Pipeline, error) {
			fp.mode = m
			return fp, nil
		},
	})
	require.NoError(t, err)
	return c, fp
}

func block(n int) radio.FloatBlock {
	return radio.FloatBlock{I: make([]float64, n), Q: make([]float64, n), Frequency: 100}
}

func TestReceiveAppliesDeferredOffsetOnMatchingFrequency(t *testing.T) {
	snk := &fakeSink{rate: 48000}
	c, fp := newTestController(t, radio.NewNBFM(5000, 0), snk)
	fp.next = radio.AudioBlock{Left: make([]float64, 10), Right: make([]float64, 10), SNR: 100}

	c.ExpectFrequencyAndSetOffset(200, 5000)

	f := block(10)
	f.Frequency = 100 // doesn't match yet
	require.NoError(t, c.Receive(f))
	assert.Equal(t, 0.0, fp.lastOffset, "offset should not apply until the matching-centre block arrives")

	f.Frequency = 200
	require.NoError(t, c.Receive(f))
	assert.Equal(t, 5000.0, fp.lastOffset)

	// Pending tuple clears: a later block at the old frequency should
	// not reapply the offset.
	f.Frequency = 100
	c.SetFrequencyOffset(0)
	require.NoError(t, c.Receive(f))
	assert.Equal(t, 0.0, fp.lastOffset)
}

func TestSquelchZeroesAfterTailWindow(t *testing.T) {
	snk := &fakeSink{rate: 48000}
	c, fp := newTestController(t, radio.NewNBFM(5000, 3), snk)

	// High SNR opens the gate and starts a hangover window of
	// 0.1*48000 = 4800 samples.
	fp.next = radio.AudioBlock{Left: []float64{1, 1}, Right: []float64{1, 1}, SNR: 100}
	require.NoError(t, c.Receive(block(2)))
	assert.Equal(t, []float64{1, 1}, snk.plays[0][0])

	// SNR drops, but the hangover window hasn't elapsed yet: audio
	// still passes.
	fp.next = radio.AudioBlock{Left: []float64{1, 1}, Right: []float64{1, 1}, SNR: 0}
	require.NoError(t, c.Receive(block(2)))
	assert.Equal(t, []float64{1, 1}, snk.plays[1][0])

	// Drain the rest of the 4800-sample tail window with low-SNR blocks.
	for c.squelchTailSamples > 0 {
		require.NoError(t, c.Receive(block(2)))
	}

	// One more low-SNR block now: the gate should be fully closed.
	require.NoError(t, c.Receive(block(2)))
	last := snk.plays[len(snk.plays)-1]
	assert.Equal(t, []float64{0, 0}, last[0])
	assert.Equal(t, []float64{0, 0}, last[1])
}

func TestSquelchAlwaysPassesModesWithoutIt(t *testing.T) {
	snk := &fakeSink{rate: 48000}
	c, fp := newTestController(t, radio.NewWBFM(false), snk)
	fp.next = radio.AudioBlock{Left: []float64{1}, Right: []float64{1}, SNR: 0}
	require.NoError(t, c.Receive(block(1)))
	assert.Equal(t, []float64{1}, snk.plays[0][0])
}

func TestStereoStatusNotifiesOnChange(t *testing.T) {
	snk := &fakeSink{rate: 48000}
	c, fp := newTestController(t, radio.NewWBFM(true), snk)

	var events []bool
	c.OnStereoStatus(func(stereo bool) { events = append(events, stereo) })

	fp.next = radio.AudioBlock{Left: []float64{0}, Right: []float64{0}, Stereo: false}
	require.NoError(t, c.Receive(block(1)))
	assert.Empty(t, events, "no transition yet: starts and stays mono")

	fp.next = radio.AudioBlock{Left: []float64{0}, Right: []float64{0}, Stereo: true}
	require.NoError(t, c.Receive(block(1)))
	require.Len(t, events, 1)
	assert.True(t, events[0])

	// Same state again: no duplicate notification.
	require.NoError(t, c.Receive(block(1)))
	assert.Len(t, events, 1)
}

func TestSetModeSameSchemeForwardsToPipeline(t *testing.T) {
	snk := &fakeSink{rate: 48000}
	c, fp := newTestController(t, radio.NewAM(10000, 0), snk)

	require.NoError(t, c.SetMode(radio.NewAM(20000, 2)))
	assert.Equal(t, 1, fp.setModeCalls)
	assert.Equal(t, rf.Hz(20000), c.Mode().Bandwidth)
}

func TestSetModeDifferentSchemeRebuildsPipeline(t *testing.T) {
	snk := &fakeSink{rate: 48000}
	calls := 0
	c, err := New(Config{
		InRate: 48000,
		Mode:   radio.NewAM(10000, 0),
		Sink:   snk,
		PipelineFactory: func(m radio.Mode, inRate, outRate, tau float64) (pipeline.Pipeline, error) {
			calls++
			return &fakePipeline{mode: m}, nil
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	require.NoError(t, c.SetMode(radio.NewUSB(2000, 0)))
	assert.Equal(t, 2, calls, "switching scheme should construct a fresh pipeline rather than forward to SetMode")
}

func TestSinkErrorIsWrapped(t *testing.T) {
	snk := &fakeSink{rate: 48000, failOn: 1}
	c, fp := newTestController(t, radio.NewAM(10000, 0), snk)
	fp.next = radio.AudioBlock{Left: []float64{0}, Right: []float64{0}, SNR: 100}

	err := c.Receive(block(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, radio.ErrSinkError))
}

// discardTuner is a minimal source.Tuner that hands back silent blocks
// until closed, used to exercise Controller.Run's two-in-flight read
// loop and stop behaviour.
type discardTuner struct {
	closed bool
}

func (d *discardTuner) SetSampleRate(context.Context, rf.Hz) (rf.Hz, error)      { return 0, nil }
func (d *discardTuner) SetCentreFrequency(context.Context, rf.Hz) (rf.Hz, error) { return 0, nil }
func (d *discardTuner) SetFrequencyCorrectionPPM(context.Context, int) error     { return nil }
func (d *discardTuner) SetGain(context.Context, source.Gain) error               { return nil }
func (d *discardTuner) Gain() source.Gain                                        { return source.AutoGain }
func (d *discardTuner) SetDirectSampling(context.Context, source.DirectSampling) error {
	return nil
}
func (d *discardTuner) DirectSampling() source.DirectSampling    { return source.DirectSamplingOff }
func (d *discardTuner) EnableBiasTee(context.Context, bool) error { return nil }
func (d *discardTuner) BiasTee() bool                             { return false }
func (d *discardTuner) ResetBuffer(context.Context) error         { return nil }
func (d *discardTuner) ReadSamples(ctx context.Context, length int) (radio.RawBlock, error) {
	return radio.RawBlock{IQ: make([]byte, 2*length), Frequency: 100}, nil
}
func (d *discardTuner) Close(context.Context) error {
	d.closed = true
	return nil
}

func TestRunStopsOnContextCancelAndClosesTuner(t *testing.T) {
	snk := &fakeSink{rate: 48000}
	c, fp := newTestController(t, radio.NewWBFM(false), snk)
	fp.next = radio.AudioBlock{Left: []float64{0}, Right: []float64{0}}

	tuner := &discardTuner{}
	adapter := source.NewAdapter(tuner, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already cancelled: Run should drain in-flight reads and stop immediately

	err := c.Run(ctx, adapter, 16)
	require.NoError(t, err)
	assert.True(t, tuner.closed)
}
