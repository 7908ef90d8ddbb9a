package dsp

import "math"

// pilotFrequency is the nominal 19 kHz stereo pilot tone frequency (spec
// §4.7, §GLOSSARY "Pilot tone").
const pilotFrequency = 19000.0

// StereoResult is the {found, diff[]} pair spec §4.7 returns from the
// stereo separator.
type StereoResult struct {
	Found bool
	Diff  []float64
}

// StereoSeparator implements the 19 kHz pilot phase-locked loop of spec
// §4.7: an NCO tracks the pilot's phase via a proportional+integral loop
// filter driven by a low-passed phase-error signal; once the smoothed
// pilot amplitude clears a fixed threshold, Found flips true and the
// 38 kHz-mixed L-R difference signal is returned, otherwise a zeroed
// Diff is returned.
type StereoSeparator struct {
	sampleRate float64

	phase      float64 // NCO phase, in turns
	freqOffset float64 // loop-filter output, Hz, added to the nominal pilot freq
	integrator float64

	kp, ki float64

	errorLP     float64 // one-pole lowpass of the phase-error term
	errorAlpha  float64
	amplitude   float64 // smoothed pilot amplitude
	ampAlpha    float64
	threshold   float64
	found       bool
}

// NewStereoSeparator builds a stereo separator for composite signals at
// sampleRate (the WBFM intermediate rate).
func NewStereoSeparator(sampleRate float64) *StereoSeparator {
	return &StereoSeparator{
		sampleRate: sampleRate,
		kp:         0.05,
		ki:         0.0005,
		errorAlpha: onePoleAlpha(2000, sampleRate),  // ~2kHz loop filter corner
		ampAlpha:   onePoleAlpha(10, sampleRate),     // ~100ms smoothing window
		threshold:  0.008,
	}
}

func onePoleAlpha(cornerHz, sampleRate float64) float64 {
	tauSeconds := 1 / (2 * math.Pi * cornerHz)
	return 1 - math.Exp(-1/(tauSeconds*sampleRate))
}

// Process runs the PLL over one block of composite baseband (the FM
// discriminator's output at the intermediate rate) and returns whether
// the pilot was found plus the recovered L-R difference signal.
func (s *StereoSeparator) Process(composite []float64) StereoResult {
	diff := make([]float64, len(composite))

	phase := s.phase
	integrator := s.integrator
	errorLP := s.errorLP
	amplitude := s.amplitude

	for n, c := range composite {
		theta := tau * phase

		pilotI := c * math.Cos(theta)
		pilotQ := c * math.Sin(theta)

		errorLP += s.errorAlpha * (pilotQ - errorLP)
		amplitude += s.ampAlpha * (math.Abs(pilotI) - amplitude)

		integrator += s.ki * errorLP
		freqAdj := s.kp*errorLP + integrator

		step := (pilotFrequency + freqAdj) / s.sampleRate
		phase += step
		phase -= math.Floor(phase)

		// 38 kHz mixing (twice the pilot's NCO phase) recovers L-R at
		// baseband from the DSB-suppressed-carrier subcarrier.
		diff[n] = 2 * c * math.Sin(2*theta)
	}

	s.phase = phase
	s.integrator = integrator
	s.errorLP = errorLP
	s.amplitude = amplitude
	s.found = amplitude > s.threshold

	if !s.found {
		for n := range diff {
			diff[n] = 0
		}
	}

	return StereoResult{Found: s.found, Diff: diff}
}
