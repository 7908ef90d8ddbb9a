package dsp

// Power computes power(I[], Q[]) = sum(I^2+Q^2) / N (spec §4.10).
func Power(i, q []float64) float64 {
	if len(i) == 0 {
		return 0
	}
	var sum float64
	for n := range i {
		sum += i[n]*i[n] + q[n]*q[n]
	}
	return sum / float64(len(i))
}

// RealPower computes sum(x^2)/N, the single-rail analogue of Power used
// where a pipeline only has a real signal (e.g. SSB's recovered audio)
// to measure.
func RealPower(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum / float64(len(x))
}

// SNR computes the linear signal-to-noise estimate spec §4.10
// prescribes: (filteredPower * outputSampleRate / signalBandwidthHz) /
// totalPowerBeforeFilter. Returns 0 if totalPower is 0, to avoid
// dividing by zero on a silent block.
func SNR(filteredPower, totalPower, outputSampleRate, signalBandwidthHz float64) float64 {
	if totalPower == 0 {
		return 0
	}
	return (filteredPower * outputSampleRate / signalBandwidthHz) / totalPower
}
