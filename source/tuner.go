// Package source adapts a raw-byte tuner abstraction (spec.md §6.1) into
// the normalised float I/Q blocks the controller and its pipelines
// consume (spec.md §4.17), and provides a simulated tuner for testing
// and the §8 concrete end-to-end scenarios.
//
// The Tuner interface is modeled on hz.tools/sdr's Reader shape
// (SampleRate/SampleFormat/Read) seen in hztools-go-fm/demodulator.go,
// generalized to the richer device-control surface spec §6.1 names:
// frequency correction, gain, direct sampling, bias tee, and an explicit
// reset-before-first-read step.
package source

import (
	"context"

	"hz.tools/radio"
	"hz.tools/rf"
)

// DirectSampling selects whether a tuner bypasses its mixer so its ADC
// can see RF directly, and on which input (spec GLOSSARY "Direct
// sampling").
type DirectSampling int

const (
	// DirectSamplingOff uses the tuner's normal mixer path.
	DirectSamplingOff DirectSampling = iota
	// DirectSamplingI samples directly on the I-channel ADC input.
	DirectSamplingI
	// DirectSamplingQ samples directly on the Q-channel ADC input.
	DirectSamplingQ
)

// Gain is a tuner gain setting in decibels, or the explicit "no value"
// auto marker spec §6.1 calls out ("auto is an explicit 'no value'
// marker").
type Gain struct {
	Auto bool
	DB   float64
}

// AutoGain is the auto-gain marker value.
var AutoGain = Gain{Auto: true}

// Tuner is the external tuner abstraction of spec §6.1. Every operation
// may block on device I/O and may fail with a generic device error
// (wrapped with radio.DeviceError by callers), except the pure getters.
//
// Direct-sampling policy (enabling it automatically below 29 MHz) is
// owned by a concrete Tuner implementation, not by this package (spec
// §6.1: "Direct-sampling policy... owned by the tuner, not the core").
type Tuner interface {
	// SetSampleRate requests hz samples/sec and returns the rate the
	// tuner actually settled on.
	SetSampleRate(ctx context.Context, hz rf.Hz) (rf.Hz, error)

	// SetCentreFrequency requests hz as the tuner's centre frequency and
	// returns the frequency actually tuned.
	SetCentreFrequency(ctx context.Context, hz rf.Hz) (rf.Hz, error)

	// SetFrequencyCorrectionPPM sets the tuner's crystal correction.
	SetFrequencyCorrectionPPM(ctx context.Context, ppm int) error

	// SetGain sets the tuner's gain, or AutoGain for automatic gain.
	SetGain(ctx context.Context, gain Gain) error
	// Gain returns the tuner's current gain setting.
	Gain() Gain

	// SetDirectSampling sets the tuner's direct-sampling mode.
	SetDirectSampling(ctx context.Context, mode DirectSampling) error
	// DirectSampling returns the tuner's current direct-sampling mode.
	DirectSampling() DirectSampling

	// EnableBiasTee toggles DC injection onto the antenna connector.
	EnableBiasTee(ctx context.Context, on bool) error
	// BiasTee reports whether bias-tee power is currently enabled.
	BiasTee() bool

	// ResetBuffer must be called before the first ReadSamples.
	ResetBuffer(ctx context.Context) error

	// ReadSamples reads length (I, Q) pairs (length should be a
	// multiple of 512) and returns a RawBlock whose IQ is exactly
	// 2*length bytes.
	ReadSamples(ctx context.Context, length int) (radio.RawBlock, error)

	// Close releases the tuner.
	Close(ctx context.Context) error
}
