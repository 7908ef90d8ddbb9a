package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSSBUSBvsLSBRejectsImage(t *testing.T) {
	const sampleRate = 8000.0
	const toneHz = 750.0
	n := 4000

	// A complex tone at +toneHz (single sideband, as if already mixed to
	// baseband and low-pass filtered upstream): I=cos, Q=sin.
	i := make([]float64, n)
	q := make([]float64, n)
	for k := 0; k < n; k++ {
		angle := 2 * math.Pi * toneHz * float64(k) / sampleRate
		i[k] = math.Cos(angle)
		q[k] = math.Sin(angle)
	}

	usb := NewSSBDemodulator(UpperSideband, 65).Process(i, q)
	lsb := NewSSBDemodulator(LowerSideband, 65).Process(i, q)

	tail := 1000 // past filter settling
	var usbEnergy, lsbEnergy float64
	for _, v := range usb[tail:] {
		usbEnergy += v * v
	}
	for _, v := range lsb[tail:] {
		lsbEnergy += v * v
	}

	// A tone at +f is the "upper" image for this convention; one
	// sideband selection should pass it through with much higher
	// energy than the other.
	assert.Greater(t, math.Max(usbEnergy, lsbEnergy), 10*math.Min(usbEnergy, lsbEnergy))
}

func TestSSBProcessContinuityAcrossBlocks(t *testing.T) {
	const sampleRate = 8000.0
	const toneHz = 750.0
	n := 4000

	i := make([]float64, n)
	q := make([]float64, n)
	for k := 0; k < n; k++ {
		angle := 2 * math.Pi * toneHz * float64(k) / sampleRate
		i[k] = math.Cos(angle)
		q[k] = math.Sin(angle)
	}

	whole := NewSSBDemodulator(UpperSideband, 65).Process(i, q)

	// Feed the same signal in blocks, the way a pipeline would across
	// several reads: the per-block output should match the single-call
	// output once settled, since the I rail's group delay is carried
	// across calls rather than zeroed at each block boundary.
	chunked := make([]float64, 0, n)
	d := NewSSBDemodulator(UpperSideband, 65)
	block := 173 // deliberately not a divisor of n or the tap count
	for start := 0; start < n; start += block {
		end := start + block
		if end > n {
			end = n
		}
		chunked = append(chunked, d.Process(i[start:end], q[start:end])...)
	}

	tail := 1000 // past filter settling
	for k := tail; k < n; k++ {
		assert.InDelta(t, whole[k], chunked[k], 1e-9, "sample %d should match regardless of block boundaries", k)
	}
}
