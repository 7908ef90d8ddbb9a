// Package controller implements the demodulation controller of spec.md
// §4.16: it owns the active mode pipeline, the current frequency offset,
// the squelch gate, and stereo-state notification, consuming blocks of
// raw samples from a source.Adapter and pushing stereo audio to a
// sink.Sink.
//
// Grounded on hztools-go-fm/demodulator.go's Demodulator as the
// "owns a reader, owns config" shape, generalized here to "owns a
// pipeline, owns mode, owns squelch state, owns a sink."
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"hz.tools/radio"
	"hz.tools/radio/pipeline"
	"hz.tools/radio/region"
	"hz.tools/radio/sink"
	"hz.tools/radio/source"
	"hz.tools/rf"
)

// squelchTailSeconds is the 0.1 second hangover window spec §4.16
// prescribes: once a squelch gate opens, it stays open for at least
// this long after SNR drops back below threshold.
const squelchTailSeconds = 0.1

// PipelineFactory builds a Pipeline for mode at the given rates. Spec §9
// turns the source's process-wide mutable scheme registry into "an
// explicit constructor parameter of the controller rather than global
// state"; Config.PipelineFactory is that parameter. Defaults to
// pipeline.New.
type PipelineFactory func(mode radio.Mode, inRate, outRate, deemphasisTau float64) (pipeline.Pipeline, error)

// Config configures a new Controller.
type Config struct {
	// InRate is the tuner's current sample rate in Hz.
	InRate rf.Hz

	// Mode is the initial demodulation mode.
	Mode radio.Mode

	// Sink is the audio player. Its SampleRate() fixes every pipeline's
	// output rate.
	Sink sink.Sink

	// Region resolves the WBFM de-emphasis time constant (SPEC_FULL.md
	// §10.3). The zero value resolves to region.Default.
	Region region.Preset

	// Logger receives lifecycle and fault diagnostics. A nil Logger is
	// replaced with log.Default() (SPEC_FULL.md §10.2).
	Logger *log.Logger

	// PipelineFactory overrides pipeline construction, e.g. to support
	// a user-defined scheme. A nil value defaults to pipeline.New.
	PipelineFactory PipelineFactory
}

// Controller is the demodulation controller of spec §4.16.
type Controller struct {
	logger  *log.Logger
	factory PipelineFactory
	region  region.Preset

	inRate float64
	sink   sink.Sink

	mode radio.Mode
	pipe pipeline.Pipeline

	freqOffset float64

	pendingSet    bool
	pendingCentre rf.Hz
	pendingOffset float64

	squelchTailSamples int
	lastStereo         bool
	lastSNR            float64

	listeners listeners
}

// New constructs a Controller from cfg, building the initial pipeline
// for cfg.Mode at cfg.InRate/cfg.Sink.SampleRate().
func New(cfg Config) (*Controller, error) {
	if cfg.Sink == nil {
		return nil, errors.New("controller: Config.Sink is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	factory := cfg.PipelineFactory
	if factory == nil {
		factory = pipeline.New
	}

	c := &Controller{
		logger:  logger,
		factory: factory,
		region:  cfg.Region,
		inRate:  float64(cfg.InRate),
		sink:    cfg.Sink,
		mode:    cfg.Mode,
	}
	if c.region.Deemphasis == 0 {
		c.region = region.Default
	}

	pipe, err := c.build(cfg.Mode)
	if err != nil {
		return nil, err
	}
	c.pipe = pipe
	return c, nil
}

func (c *Controller) build(mode radio.Mode) (pipeline.Pipeline, error) {
	pipe, err := c.factory(mode, c.inRate, c.sink.SampleRate(), c.region.Deemphasis)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	return pipe, nil
}

// OnStereoStatus registers a listener for stereo-status transitions
// (spec §6.3).
func (c *Controller) OnStereoStatus(fn StereoStatusListener) {
	c.listeners.onStereoStatus(fn)
}

// OnRadioState registers a listener for radio-state transitions (spec
// §6.3).
func (c *Controller) OnRadioState(fn RadioStateListener) {
	c.listeners.onRadioState(fn)
}

// Mode returns the controller's current mode record.
func (c *Controller) Mode() radio.Mode {
	return c.mode
}

// LastSNR returns the linear SNR estimate of the most recently
// demodulated audio block, computed before the squelch gate is applied.
func (c *Controller) LastSNR() float64 {
	return c.lastSNR
}

// SetMode applies newMode (spec §4.16 set_mode): if newMode's scheme
// matches the active pipeline's, the parameters are forwarded through
// the pipeline's own SetMode (which recomputes filter kernels itself if
// bandwidth changed); otherwise a fresh pipeline is constructed for the
// new scheme at the current rates.
func (c *Controller) SetMode(newMode radio.Mode) error {
	if c.pipe != nil && c.pipe.Mode().Scheme == newMode.Scheme {
		c.pipe.SetMode(newMode)
		c.mode = newMode
		return nil
	}
	pipe, err := c.build(newMode)
	if err != nil {
		return err
	}
	c.pipe = pipe
	c.mode = newMode
	return nil
}

// SetFrequencyOffset applies hz immediately as the baseband offset every
// subsequent Receive demodulates at.
func (c *Controller) SetFrequencyOffset(hz float64) {
	c.freqOffset = hz
}

// ExpectFrequencyAndSetOffset stores (centre, offset); the first
// received block whose Frequency equals centre applies offset and
// clears the pending tuple (spec §4.16), letting a caller retune the
// tuner's centre frequency and the baseband offset atomically without
// an audible glitch at the old offset.
func (c *Controller) ExpectFrequencyAndSetOffset(centre rf.Hz, offset float64) {
	c.pendingSet = true
	c.pendingCentre = centre
	c.pendingOffset = offset
}

// SetSampleRate replaces the input rate and forces pipeline
// reconstruction, since filter kernels depend on it (spec §4.16).
func (c *Controller) SetSampleRate(hz rf.Hz) error {
	c.inRate = float64(hz)
	pipe, err := c.build(c.mode)
	if err != nil {
		return err
	}
	c.pipe = pipe
	return nil
}

// Receive is the controller's core per-block operation (spec §4.16
// receive): it applies any deferred offset whose centre frequency
// matches f.Frequency, demodulates, applies the squelch gate, and hands
// the resulting audio to the sink, raising a stereo-status notification
// if the stereo flag changed since the previous block.
func (c *Controller) Receive(f radio.FloatBlock) error {
	if c.pendingSet && f.Frequency == c.pendingCentre {
		c.freqOffset = c.pendingOffset
		c.pendingSet = false
	}

	audio := c.pipe.Process(f, c.freqOffset)
	c.lastSNR = audio.SNR
	audio = c.applySquelch(audio)

	if audio.Stereo != c.lastStereo {
		c.lastStereo = audio.Stereo
		c.listeners.notifyStereoStatus(audio.Stereo)
	}

	if err := c.sink.Play(audio.Left, audio.Right); err != nil {
		return radio.SinkErrorWrap(err)
	}
	return nil
}

// applySquelch implements spec §4.16's squelch gate: modes without a
// squelch threshold (WBFM, CW) always pass through; otherwise audio
// above the threshold passes and resets a 0.1s hangover counter, audio
// below it still passes while the counter is running, and is zeroed once
// the counter has expired.
func (c *Controller) applySquelch(audio radio.AudioBlock) radio.AudioBlock {
	if !c.mode.HasSquelch() {
		return audio
	}

	threshold := float64(c.mode.Squelch)
	switch {
	case audio.SNR > threshold:
		c.squelchTailSamples = int(squelchTailSeconds * c.sink.SampleRate())
	case c.squelchTailSamples > 0:
		c.squelchTailSamples -= audio.Len()
	default:
		for n := range audio.Left {
			audio.Left[n] = 0
			audio.Right[n] = 0
		}
	}
	return audio
}

// Run drives the controller from adapter's tuner until ctx is cancelled,
// keeping exactly two reads outstanding at all times while playing (spec
// §5: "at least one read outstanding at all times while playing", here
// doubled to the two the source concurrency model calls for). This maps
// the original cooperative two-in-flight-read chain onto a small
// goroutine-and-channel pump: each completed read immediately issues the
// next one and then demodulates, so processing one block overlaps the
// next transfer.
//
// On cancellation, Run stops issuing new reads; reads already in flight
// are allowed to resolve and their blocks are discarded, then the
// tuner's Close is awaited last (spec §5 Cancellation/timeouts). A
// context cancellation is treated as a normal stop, not an error; a
// device or sink error is returned once every in-flight read has
// drained.
func (c *Controller) Run(ctx context.Context, adapter *source.Adapter, blockLength int) error {
	c.listeners.notifyRadioState(RadioStateEvent{State: StateStarting})
	c.logger.Info("radio starting", "block-length", blockLength)

	type readResult struct {
		block radio.FloatBlock
		err   error
	}
	results := make(chan readResult, 2)
	issueRead := func() {
		go func() {
			b, err := adapter.ReadBlock(ctx, blockLength)
			results <- readResult{block: b, err: err}
		}()
	}

	issueRead()
	issueRead()
	inFlight := 2

	var runErr error
	for inFlight > 0 {
		var r readResult
		if runErr == nil {
			select {
			case <-ctx.Done():
				runErr = ctx.Err()
				continue
			case r = <-results:
			}
		} else {
			r = <-results
		}
		inFlight--

		if runErr != nil {
			// Draining: discard blocks from reads that were already in
			// flight when the stop was requested.
			continue
		}
		if r.err != nil {
			c.logger.Error("tuner read failed", "err", r.err)
			c.listeners.notifyRadioState(RadioStateEvent{State: StateError, Err: r.err})
			runErr = r.err
			continue
		}
		if r.block.DirectSampling {
			c.listeners.notifyRadioState(RadioStateEvent{State: StateDirectSamplingActive})
		}
		issueRead()
		inFlight++
		if err := c.Receive(r.block); err != nil {
			c.logger.Error("demodulation failed", "err", err)
			c.listeners.notifyRadioState(RadioStateEvent{State: StateError, Err: err})
			runErr = err
			continue
		}
		adapter.ReleaseBlock(r.block)
	}

	c.listeners.notifyRadioState(RadioStateEvent{State: StateStopping})
	c.logger.Info("radio stopping")

	closeErr := adapter.Tuner().Close(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}
	if closeErr != nil {
		return radio.DeviceError(closeErr)
	}
	return nil
}
