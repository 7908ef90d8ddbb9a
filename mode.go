package radio

import "hz.tools/rf"

// Scheme tags one of the six modulation schemes a Mode record can carry.
// This is the "enumerated tagged union" redesign of spec §9: the source's
// process-wide mutable scheme registry becomes a closed Go const set plus
// a single dispatch (see pipeline.New), rather than a global map anyone
// can mutate.
type Scheme int

const (
	// WBFM is wideband FM broadcast, optionally with stereo.
	WBFM Scheme = iota
	// NBFM is narrowband FM, e.g. amateur/land-mobile radio.
	NBFM
	// AM is double-sideband amplitude modulation.
	AM
	// USB is upper-sideband suppressed-carrier.
	USB
	// LSB is lower-sideband suppressed-carrier.
	LSB
	// CW is continuous-wave (morse) telegraphy.
	CW
)

// String returns the scheme's short display name.
func (s Scheme) String() string {
	switch s {
	case WBFM:
		return "WBFM"
	case NBFM:
		return "NBFM"
	case AM:
		return "AM"
	case USB:
		return "USB"
	case LSB:
		return "LSB"
	case CW:
		return "CW"
	default:
		return "UNKNOWN"
	}
}

// Range bounds (spec §3 Mode parameters table).
const (
	nbfmMinDeviation = rf.Hz(125)
	nbfmMaxDeviation = rf.Hz(15000)

	amMinBandwidth = rf.Hz(250)
	amMaxBandwidth = rf.Hz(30000)

	ssbMinBandwidth = rf.Hz(10)
	ssbMaxBandwidth = rf.Hz(15000)

	cwMinBandwidth = rf.Hz(5)
	cwMaxBandwidth = rf.Hz(1000)

	minSquelch = 0
	maxSquelch = 6
)

func clampHz(v, lo, hi rf.Hz) rf.Hz {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampSquelch(v int) int {
	if v < minSquelch {
		return minSquelch
	}
	if v > maxSquelch {
		return maxSquelch
	}
	return v
}

// Mode is an immutable record describing the active demodulation scheme
// and its parameters (spec §3 Mode parameters). Only the fields relevant
// to Scheme are meaningful; the others are zero. Mode values are handed
// to a pipeline and never mutated in place: every With* method returns a
// new, independently clamped Mode, per spec §3's lifecycle note
// ("immutable once handed to a demodulator; setter receives a new
// record").
type Mode struct {
	Scheme Scheme

	// Stereo is meaningful for WBFM only.
	Stereo bool

	// MaxDeviation is meaningful for NBFM only.
	MaxDeviation rf.Hz

	// Bandwidth is meaningful for AM, USB, LSB, and CW.
	Bandwidth rf.Hz

	// Squelch is meaningful for NBFM, AM, USB, and LSB. WBFM and CW have
	// no squelch (spec §4.16).
	Squelch int

	// ToneFrequency is meaningful for CW only: the audible beat frequency
	// the recovered carrier is shifted to (spec §4.15).
	ToneFrequency rf.Hz
}

// NewWBFM returns a WBFM mode record.
func NewWBFM(stereo bool) Mode {
	return Mode{Scheme: WBFM, Stereo: stereo}
}

// NewNBFM returns an NBFM mode record, clamping maxDeviationHz and
// squelch into their legal ranges.
func NewNBFM(maxDeviationHz rf.Hz, squelch int) Mode {
	return Mode{
		Scheme:       NBFM,
		MaxDeviation: clampHz(maxDeviationHz, nbfmMinDeviation, nbfmMaxDeviation),
		Squelch:      clampSquelch(squelch),
	}
}

// NewAM returns an AM mode record, clamping bandwidthHz and squelch.
func NewAM(bandwidthHz rf.Hz, squelch int) Mode {
	return Mode{
		Scheme:    AM,
		Bandwidth: clampHz(bandwidthHz, amMinBandwidth, amMaxBandwidth),
		Squelch:   clampSquelch(squelch),
	}
}

// NewUSB returns a USB mode record, clamping bandwidthHz and squelch.
func NewUSB(bandwidthHz rf.Hz, squelch int) Mode {
	return Mode{
		Scheme:    USB,
		Bandwidth: clampHz(bandwidthHz, ssbMinBandwidth, ssbMaxBandwidth),
		Squelch:   clampSquelch(squelch),
	}
}

// NewLSB returns an LSB mode record, clamping bandwidthHz and squelch.
func NewLSB(bandwidthHz rf.Hz, squelch int) Mode {
	return Mode{
		Scheme:    LSB,
		Bandwidth: clampHz(bandwidthHz, ssbMinBandwidth, ssbMaxBandwidth),
		Squelch:   clampSquelch(squelch),
	}
}

// DefaultCWTone is the default audible beat frequency for CW (spec
// §4.15).
const DefaultCWTone = rf.Hz(600)

// NewCW returns a CW mode record, clamping bandwidthHz. A zero
// toneFrequencyHz is replaced with DefaultCWTone.
func NewCW(bandwidthHz, toneFrequencyHz rf.Hz) Mode {
	if toneFrequencyHz == 0 {
		toneFrequencyHz = DefaultCWTone
	}
	return Mode{
		Scheme:        CW,
		Bandwidth:     clampHz(bandwidthHz, cwMinBandwidth, cwMaxBandwidth),
		ToneFrequency: toneFrequencyHz,
	}
}

// WithStereo returns a copy of m with Stereo set, clamped the same way
// NewWBFM would. It is a no-op field on non-WBFM modes.
func (m Mode) WithStereo(stereo bool) Mode {
	m.Stereo = stereo
	return m
}

// WithMaxDeviation returns a copy of m with MaxDeviation clamped to the
// NBFM range.
func (m Mode) WithMaxDeviation(hz rf.Hz) Mode {
	m.MaxDeviation = clampHz(hz, nbfmMinDeviation, nbfmMaxDeviation)
	return m
}

// WithBandwidth returns a copy of m with Bandwidth clamped to the legal
// range for m.Scheme. Calling this on WBFM or a scheme with no bandwidth
// concept is a no-op.
func (m Mode) WithBandwidth(hz rf.Hz) Mode {
	switch m.Scheme {
	case AM:
		m.Bandwidth = clampHz(hz, amMinBandwidth, amMaxBandwidth)
	case USB, LSB:
		m.Bandwidth = clampHz(hz, ssbMinBandwidth, ssbMaxBandwidth)
	case CW:
		m.Bandwidth = clampHz(hz, cwMinBandwidth, cwMaxBandwidth)
	}
	return m
}

// WithSquelch returns a copy of m with Squelch clamped to [0, 6].
func (m Mode) WithSquelch(squelch int) Mode {
	m.Squelch = clampSquelch(squelch)
	return m
}

// WithToneFrequency returns a copy of m with ToneFrequency set. Only
// meaningful for CW.
func (m Mode) WithToneFrequency(hz rf.Hz) Mode {
	m.ToneFrequency = hz
	return m
}

// HasSquelch reports whether m's scheme exposes a squelch threshold
// (spec §4.16: "Modes without squelch (WBFM, CW): always pass through").
func (m Mode) HasSquelch() bool {
	switch m.Scheme {
	case NBFM, AM, USB, LSB:
		return true
	default:
		return false
	}
}
