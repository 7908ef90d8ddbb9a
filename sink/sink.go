// Package sink defines the audio output contract of spec.md §6.2: any
// device that accepts interleaved or paired real-valued float buffers at
// a fixed rate, plus a counting sink used for UI-refresh ticks (§6.3).
// Concrete audio device backends are out of scope (spec §1): this
// package only specifies the contract and one contract-level decorator,
// CountingSink, that any backend can sit behind.
package sink

// Sink is the audio output contract of spec §6.2.
type Sink interface {
	// SampleRate is the fixed rate, in samples/sec, the sink expects
	// Play to be called at. Pipelines downsample to this rate.
	SampleRate() float64

	// Play writes one block of stereo audio. left and right must be the
	// same length.
	Play(left, right []float64) error

	// SetVolume sets playback volume, clamped to [0, 1] by the
	// implementation.
	SetVolume(v float64)

	// Volume returns the current playback volume.
	Volume() float64
}
